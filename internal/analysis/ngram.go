package analysis

import (
	"strings"
	"unicode"
)

// Ngrams returns the Options.TopNgrams most frequent n-word phrases of the
// selection. Bodies are lower-cased and stripped of everything but ASCII
// letters and whitespace, so digits and punctuation disappear and hyphenated
// words merge. Stop words are dropped before windowing. n < 1 yields nil.
func (e *Engine) Ngrams(user string, n int) []TermCount {
	if n < 1 {
		return nil
	}

	var tokens []string
	for _, r := range authored(e.selectRecords(user)) {
		for _, w := range strings.Fields(lettersOnly(strings.ToLower(r.Body))) {
			if !e.lex.IsStopWord(w) {
				tokens = append(tokens, w)
			}
		}
	}

	// The window runs over the concatenated stream, so a phrase can span two
	// adjacent messages. Kept for compatibility with existing reports.
	// TODO: restart the window per message once reports can be re-baselined.
	if len(tokens) < n {
		return nil
	}
	c := newCounter()
	for i := 0; i+n <= len(tokens); i++ {
		c.add(strings.Join(tokens[i:i+n], " "))
	}
	return c.top(e.opts.TopNgrams)
}

func lettersOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, s)
}
