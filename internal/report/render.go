package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/edgard/chatlens/internal/analysis"
	"github.com/edgard/chatlens/internal/logger"
	"github.com/edgard/chatlens/internal/transcript"
)

// Output formats accepted by Write.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// wordCloudPreview caps the word-cloud text in the text rendering.
const wordCloudPreview = 200

// Write renders r in the given format; anything but FormatJSON is text.
func Write(w io.Writer, r *Report, format string) error {
	if format == FormatJSON {
		return WriteJSON(w, r)
	}
	return WriteText(w, r)
}

// WriteJSON writes v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// WriteText writes a human-readable report. Empty sections print "(no data)".
func WriteText(w io.Writer, r *Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	p := &printer{w: tw}

	title := "Chat report: " + r.User
	if r.Name != "" {
		title = fmt.Sprintf("Chat report: %s (%s)", r.Name, r.User)
	}
	p.line(title)
	p.line(strings.Repeat("=", len(title)))

	p.section("Top statistics")
	p.row("Messages", r.Stats.Messages)
	p.row("Words", r.Stats.Words)
	p.row("Media shared", r.Stats.Media)
	p.row("Links shared", r.Stats.Links)

	if r.Busiest != nil {
		p.section("Most busy users")
		if len(r.Busiest.Shares) == 0 {
			p.empty()
		}
		for _, s := range r.Busiest.Shares {
			p.row(s.Sender, fmt.Sprintf("%.2f%%", s.Percent))
		}
	}

	p.section("Monthly timeline")
	if len(r.Monthly) == 0 {
		p.empty()
	}
	for _, m := range r.Monthly {
		p.row(m.Label, m.Messages)
	}

	p.section("Daily timeline")
	if len(r.Daily) == 0 {
		p.empty()
	}
	for _, d := range r.Daily {
		p.row(d.Date.Format(transcript.DateOnly), d.Messages)
	}

	p.keyCounts("Most busy days", r.WeekActivity)
	p.keyCounts("Most busy months", r.MonthActivity)
	p.heatmap(r.Heatmap)

	p.section("Word cloud")
	if r.WordCloud == "" {
		p.empty()
	} else {
		p.line(logger.Preview(r.WordCloud, wordCloudPreview))
	}

	p.terms("Most common words", r.CommonWords)
	p.terms("Emojis", r.Emojis)

	p.section("Median reply time")
	if len(r.ReplyTimes) == 0 {
		p.empty()
	}
	for _, rt := range r.ReplyTimes {
		p.row(rt.Sender, fmt.Sprintf("%.1f min\t(%d replies)", rt.MedianMinutes, rt.Replies))
	}

	p.terms("Most common bigrams", r.Bigrams)
	p.terms("Most common trigrams", r.Trigrams)

	p.section("Toxicity")
	if r.Toxicity.IsEmpty() {
		p.empty()
	}
	for _, u := range r.Toxicity.BySender {
		p.row(u.Sender, u.Count)
	}
	for _, t := range r.Toxicity.TopWords {
		p.row("  "+t.Term, t.Count)
	}

	if p.err != nil {
		return fmt.Errorf("failed to write report: %w", p.err)
	}
	return tw.Flush()
}

// WriteComparison writes one row per transcript.
func WriteComparison(w io.Writer, summaries []Summary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	p := &printer{w: tw}

	p.line("TRANSCRIPT\tMESSAGES\tWORDS\tMEDIA\tLINKS\tSENDERS\tTOP SENDER\tTOXIC")
	for _, s := range summaries {
		top := s.TopSender
		if top == "" {
			top = "-"
		}
		p.line(fmt.Sprintf("%s\t%d\t%d\t%d\t%d\t%d\t%s\t%d",
			s.Name, s.Stats.Messages, s.Stats.Words, s.Stats.Media, s.Stats.Links, s.Senders, top, s.Toxic))
	}

	if p.err != nil {
		return fmt.Errorf("failed to write comparison: %w", p.err)
	}
	return tw.Flush()
}

// printer keeps the first write error so sections can be emitted unchecked.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(s string) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintln(p.w, s)
}

func (p *printer) section(title string) {
	p.line("")
	p.line("## " + title)
}

func (p *printer) row(key string, value any) {
	p.line(fmt.Sprintf("%s\t%v", key, value))
}

func (p *printer) empty() {
	p.line("(no data)")
}

func (p *printer) keyCounts(title string, kc []analysis.KeyCount) {
	p.section(title)
	if len(kc) == 0 {
		p.empty()
	}
	for _, k := range kc {
		p.row(k.Key, k.Count)
	}
}

func (p *printer) terms(title string, tc []analysis.TermCount) {
	p.section(title)
	if len(tc) == 0 {
		p.empty()
	}
	for _, t := range tc {
		p.row(t.Term, t.Count)
	}
}

func (p *printer) heatmap(h analysis.Heatmap) {
	p.section("Weekly activity map")
	if h.IsEmpty() {
		p.empty()
		return
	}
	p.line("\t" + strings.Join(h.Columns, "\t"))
	for i, day := range h.Rows {
		cells := make([]string, len(h.Cells[i]))
		for j, v := range h.Cells[i] {
			cells[j] = fmt.Sprint(v)
		}
		p.line(day + "\t" + strings.Join(cells, "\t"))
	}
}
