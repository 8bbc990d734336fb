package analysis

import (
	"math"
	"strings"

	"mvdan.cc/xurls/v2"
)

// linkRE finds URLs with or without a scheme, like "example.com/page".
var linkRE = xurls.Relaxed()

// Stats are the headline counts for a selection.
type Stats struct {
	Messages int `json:"messages"`
	Words    int `json:"words"`
	Media    int `json:"media"`
	Links    int `json:"links"`
}

// Stats counts messages, whitespace-separated words, media placeholders and
// links for user.
func (e *Engine) Stats(user string) Stats {
	records := e.selectRecords(user)

	s := Stats{Messages: len(records)}
	for _, r := range records {
		s.Words += len(strings.Fields(r.Body))
		if r.IsMedia() {
			s.Media++
		}
		s.Links += len(linkRE.FindAllString(r.Body, -1))
	}
	return s
}

// UserCount is a sender with a count of messages or matches.
type UserCount struct {
	Sender string `json:"sender"`
	Count  int    `json:"count"`
}

// UserShare is a sender's share of all messages, in percent.
type UserShare struct {
	Sender  string  `json:"sender"`
	Percent float64 `json:"percent"`
}

// Busiest ranks senders by message count.
type Busiest struct {
	Top    []UserCount `json:"top"`
	Shares []UserShare `json:"shares"`
}

// BusiestUsers ranks every sender over the whole transcript, system rows
// included. Top holds the first Options.TopUsers senders; Shares covers all
// of them with percentages rounded to two decimals.
func (e *Engine) BusiestUsers() Busiest {
	c := newCounter()
	for _, r := range e.records {
		c.add(r.Sender)
	}
	if c.len() == 0 {
		return Busiest{}
	}

	total := float64(len(e.records))
	var b Busiest
	for n, i := range c.ranked() {
		if n < e.opts.TopUsers {
			b.Top = append(b.Top, UserCount{Sender: c.keys[i], Count: c.count[i]})
		}
		b.Shares = append(b.Shares, UserShare{
			Sender:  c.keys[i],
			Percent: round2(float64(c.count[i]) / total * 100),
		})
	}
	return b
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
