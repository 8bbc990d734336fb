// Package report assembles analysis results into a single document and
// renders it as text or JSON.
package report

import (
	"context"

	"github.com/edgard/chatlens/internal/analysis"
	"github.com/edgard/chatlens/internal/lexicon"
	"github.com/edgard/chatlens/internal/transcript"
)

// Report holds every statistic for one transcript and user selector.
type Report struct {
	Name  string         `json:"name,omitempty"`
	User  string         `json:"user"`
	Stats analysis.Stats `json:"stats"`
	// Busiest is only computed for the Overall selector.
	Busiest       *analysis.Busiest       `json:"busiest,omitempty"`
	Monthly       []analysis.MonthlyPoint `json:"monthly_timeline"`
	Daily         []analysis.DailyPoint   `json:"daily_timeline"`
	WeekActivity  []analysis.KeyCount     `json:"week_activity"`
	MonthActivity []analysis.KeyCount     `json:"month_activity"`
	Heatmap       analysis.Heatmap        `json:"heatmap"`
	WordCloud     string                  `json:"word_cloud,omitempty"`
	CommonWords   []analysis.TermCount    `json:"common_words"`
	Emojis        []analysis.TermCount    `json:"emojis"`
	ReplyTimes    []analysis.ReplyLatency `json:"reply_times"`
	Bigrams       []analysis.TermCount    `json:"bigrams"`
	Trigrams      []analysis.TermCount    `json:"trigrams"`
	Toxicity      analysis.Toxicity       `json:"toxicity"`
}

// Build runs every aggregation of e for user.
func Build(e *analysis.Engine, user string) *Report {
	r := &Report{
		User:          user,
		Stats:         e.Stats(user),
		Monthly:       e.MonthlyTimeline(user),
		Daily:         e.DailyTimeline(user),
		WeekActivity:  e.WeekActivity(user),
		MonthActivity: e.MonthActivity(user),
		Heatmap:       e.ActivityHeatmap(user),
		CommonWords:   e.MostCommonWords(user),
		Emojis:        e.Emojis(user),
		ReplyTimes:    e.ReplyTimes(user),
		Bigrams:       e.Ngrams(user, 2),
		Trigrams:      e.Ngrams(user, 3),
		Toxicity:      e.Toxicity(user),
	}
	if user == analysis.Overall {
		b := e.BusiestUsers()
		r.Busiest = &b
	}
	if text, ok := e.WordCloudText(user); ok {
		r.WordCloud = text
	}
	return r
}

// BuildTranscript builds the Overall report of a parsed transcript.
func BuildTranscript(t transcript.Transcript, lex *lexicon.Lexicon, opts analysis.Options) *Report {
	r := Build(analysis.New(t.Records, lex, opts), analysis.Overall)
	r.Name = t.Name
	return r
}

// Summary is one column of a side-by-side comparison.
type Summary struct {
	Name      string         `json:"name"`
	Stats     analysis.Stats `json:"stats"`
	Senders   int            `json:"senders"`
	TopSender string         `json:"top_sender,omitempty"`
	Toxic     int            `json:"toxic_matches"`
}

// Compare parses paths concurrently, at most limit at a time, and summarises
// each transcript's Overall statistics in input order.
func Compare(ctx context.Context, paths []string, p *transcript.Parser, lex *lexicon.Lexicon, opts analysis.Options, limit int) ([]Summary, error) {
	transcripts, err := p.ParseFiles(ctx, paths, limit)
	if err != nil {
		return nil, err
	}

	out := make([]Summary, 0, len(transcripts))
	for _, t := range transcripts {
		out = append(out, Summarize(t, lex, opts))
	}
	return out, nil
}

// Summarize reduces a transcript to its comparison column.
func Summarize(t transcript.Transcript, lex *lexicon.Lexicon, opts analysis.Options) Summary {
	e := analysis.New(t.Records, lex, opts)
	s := Summary{
		Name:    t.Name,
		Stats:   e.Stats(analysis.Overall),
		Senders: len(e.Users()) - 1,
	}
	for _, u := range e.BusiestUsers().Top {
		if u.Sender != transcript.GroupNotification {
			s.TopSender = u.Sender
			break
		}
	}
	for _, u := range e.Toxicity(analysis.Overall).BySender {
		s.Toxic += u.Count
	}
	return s
}
