package analysis

import (
	"strings"
	"unicode"
)

// Toxicity summarises abusive-term usage.
type Toxicity struct {
	// BySender lists senders with at least one match, most matches first.
	BySender []UserCount `json:"by_sender"`
	// TopWords lists the Options.TopToxicWords most used terms.
	TopWords []TermCount `json:"top_words"`
}

// IsEmpty reports whether no abusive term was found.
func (t Toxicity) IsEmpty() bool {
	return len(t.BySender) == 0 && len(t.TopWords) == 0
}

// Toxicity matches lower-cased, punctuation-stripped tokens of authored
// messages against the lexicon's bad-word set.
func (e *Engine) Toxicity(user string) Toxicity {
	senders := newCounter()
	words := newCounter()

	for _, r := range authored(e.selectRecords(user)) {
		for _, tok := range strings.Fields(strings.ToLower(r.Body)) {
			tok = stripPunct(tok)
			if tok == "" || !e.lex.IsBadWord(tok) {
				continue
			}
			senders.add(r.Sender)
			words.add(tok)
		}
	}

	var t Toxicity
	for _, i := range senders.ranked() {
		t.BySender = append(t.BySender, UserCount{Sender: senders.keys[i], Count: senders.count[i]})
	}
	t.TopWords = words.top(e.opts.TopToxicWords)
	return t
}

func stripPunct(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) {
			return -1
		}
		return r
	}, s)
}
