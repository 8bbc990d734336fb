package analysis

import (
	"sort"

	"github.com/edgard/chatlens/internal/transcript"
)

// Records returns a copy of the records matching user.
func (e *Engine) Records(user string) []transcript.Record {
	return append([]transcript.Record(nil), e.selectRecords(user)...)
}

// selectRecords applies the user selector. The Overall selection shares the
// engine's backing array, so callers must not modify the result.
func (e *Engine) selectRecords(user string) []transcript.Record {
	if user == Overall {
		return e.records
	}
	var out []transcript.Record
	for _, r := range e.records {
		if r.Sender == user {
			out = append(out, r)
		}
	}
	return out
}

// Users lists the selectors offered for this transcript: Overall followed by
// every authoring sender in alphabetical order.
func (e *Engine) Users() []string {
	seen := make(map[string]struct{})
	var senders []string
	for _, r := range e.records {
		if r.IsNotification() {
			continue
		}
		if _, ok := seen[r.Sender]; ok {
			continue
		}
		seen[r.Sender] = struct{}{}
		senders = append(senders, r.Sender)
	}
	sort.Strings(senders)
	return append([]string{Overall}, senders...)
}
