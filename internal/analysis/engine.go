// Package analysis computes aggregate statistics over parsed chat records.
//
// An Engine holds one transcript's records and answers every statistic for a
// user selector: Overall for the whole chat, or a single sender. Operations
// never mutate the records and never fail; empty selections produce empty
// results so callers can render a neutral state.
package analysis

import (
	"sort"

	"github.com/edgard/chatlens/internal/lexicon"
	"github.com/edgard/chatlens/internal/transcript"
)

// Overall selects every record.
const Overall = "Overall"

// Default limits applied when Options leaves a field at zero.
const (
	DefaultReplyGapHours = 6
	DefaultTopUsers      = 5
	DefaultTopWords      = 20
	DefaultTopNgrams     = 20
	DefaultTopToxicWords = 10
)

// Options tunes the engine's limits.
type Options struct {
	// ReplyGapHours is the longest gap still counted as a reply.
	ReplyGapHours float64
	TopUsers      int
	TopWords      int
	TopNgrams     int
	TopToxicWords int
}

func (o Options) withDefaults() Options {
	if o.ReplyGapHours <= 0 {
		o.ReplyGapHours = DefaultReplyGapHours
	}
	if o.TopUsers <= 0 {
		o.TopUsers = DefaultTopUsers
	}
	if o.TopWords <= 0 {
		o.TopWords = DefaultTopWords
	}
	if o.TopNgrams <= 0 {
		o.TopNgrams = DefaultTopNgrams
	}
	if o.TopToxicWords <= 0 {
		o.TopToxicWords = DefaultTopToxicWords
	}
	return o
}

// Engine answers statistics over an immutable record set. It is safe for
// concurrent use.
type Engine struct {
	records []transcript.Record
	lex     *lexicon.Lexicon
	opts    Options
}

// New creates an engine over a private copy of records. A nil lexicon
// disables stop-word and toxicity filtering.
func New(records []transcript.Record, lex *lexicon.Lexicon, opts Options) *Engine {
	if lex == nil {
		lex = lexicon.New(nil, nil)
	}
	return &Engine{
		records: append([]transcript.Record(nil), records...),
		lex:     lex,
		opts:    opts.withDefaults(),
	}
}

// Options returns the effective options.
func (e *Engine) Options() Options {
	return e.opts
}

// Len returns the number of records in the engine.
func (e *Engine) Len() int {
	return len(e.records)
}

// sortedByTime returns a stably time-ordered copy of records.
func sortedByTime(records []transcript.Record) []transcript.Record {
	out := append([]transcript.Record(nil), records...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

// authored drops system rows and media placeholders.
func authored(records []transcript.Record) []transcript.Record {
	var out []transcript.Record
	for _, r := range records {
		if r.IsNotification() || r.IsMedia() {
			continue
		}
		out = append(out, r)
	}
	return out
}
