package analysis

import (
	"strings"
)

// WordCloudText returns the selection's authored text, lower-cased with stop
// words removed, joined by single spaces. The boolean is false when no text
// remains, which callers treat as "no data".
func (e *Engine) WordCloudText(user string) (string, bool) {
	var words []string
	for _, r := range authored(e.selectRecords(user)) {
		if strings.TrimSpace(r.Body) == "" {
			continue
		}
		words = append(words, e.contentWords(r.Body)...)
	}
	if len(words) == 0 {
		return "", false
	}
	return strings.Join(words, " "), true
}

// MostCommonWords returns the Options.TopWords most frequent lower-cased
// words of the selection, ignoring stop words, system rows and media.
func (e *Engine) MostCommonWords(user string) []TermCount {
	c := newCounter()
	for _, r := range authored(e.selectRecords(user)) {
		for _, w := range e.contentWords(r.Body) {
			c.add(w)
		}
	}
	return c.top(e.opts.TopWords)
}

// contentWords splits body on whitespace, lower-cases and drops stop words.
func (e *Engine) contentWords(body string) []string {
	var out []string
	for _, w := range strings.Fields(strings.ToLower(body)) {
		if e.lex.IsStopWord(w) {
			continue
		}
		out = append(out, w)
	}
	return out
}
