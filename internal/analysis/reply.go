package analysis

import (
	"sort"
	"time"

	"github.com/edgard/chatlens/internal/transcript"
)

// ReplyLatency is a sender's median reply time.
type ReplyLatency struct {
	Sender        string  `json:"sender"`
	MedianMinutes float64 `json:"median_minutes"`
	Replies       int     `json:"replies"`
}

// Reply is one qualifying reply: a message whose sender differs from the
// message immediately before it.
type Reply struct {
	Sender     string    `json:"sender"`
	RepliedTo  string    `json:"replied_to"`
	GapMinutes float64   `json:"gap_minutes"`
	At         time.Time `json:"at"`
}

// Replies returns every qualifying reply in chronological order. System rows
// are ignored, and gaps that are not positive or exceed the reply window are
// treated as clock anomalies or conversation restarts. The predecessor of a
// message is taken from the whole conversation; user only filters who replied.
func (e *Engine) Replies(user string) []Reply {
	var rows []transcript.Record
	for _, r := range e.records {
		if !r.IsNotification() {
			rows = append(rows, r)
		}
	}
	rows = sortedByTime(rows)

	limit := e.opts.ReplyGapHours * 60
	var out []Reply
	for i := 1; i < len(rows); i++ {
		prev, cur := rows[i-1], rows[i]
		if cur.Sender == prev.Sender {
			continue
		}
		if user != Overall && cur.Sender != user {
			continue
		}
		gap := cur.Timestamp.Sub(prev.Timestamp).Minutes()
		if gap <= 0 || gap > limit {
			continue
		}
		out = append(out, Reply{
			Sender:     cur.Sender,
			RepliedTo:  prev.Sender,
			GapMinutes: gap,
			At:         cur.Timestamp,
		})
	}
	return out
}

// ReplyTimes reports each sender's median reply latency in minutes, fastest
// first. Ties are ordered by sender name.
func (e *Engine) ReplyTimes(user string) []ReplyLatency {
	gaps := make(map[string][]float64)
	for _, r := range e.Replies(user) {
		gaps[r.Sender] = append(gaps[r.Sender], r.GapMinutes)
	}
	if len(gaps) == 0 {
		return nil
	}

	out := make([]ReplyLatency, 0, len(gaps))
	for sender, g := range gaps {
		out = append(out, ReplyLatency{
			Sender:        sender,
			MedianMinutes: median(g),
			Replies:       len(g),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MedianMinutes != out[j].MedianMinutes {
			return out[i].MedianMinutes < out[j].MedianMinutes
		}
		return out[i].Sender < out[j].Sender
	})
	return out
}

// median averages the two middle values of an even-sized sample.
func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	s := append([]float64(nil), values...)
	sort.Float64s(s)
	mid := len(s) / 2
	if len(s)%2 == 1 {
		return s[mid]
	}
	return (s[mid-1] + s[mid]) / 2
}
