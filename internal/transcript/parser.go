package transcript

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/edgard/chatlens/internal/logger"
)

var (
	// boundaryRE matches the timestamp that opens every message, up to and
	// including the " - " separating it from the sender.
	boundaryRE = regexp.MustCompile(`(\d{1,2}[/-]\d{1,2}[/-]\d{2,4}),?\s+(\d{1,2}:\d{2}(?:\s{0,2}[AaPp][Mm])?)\s*-\s`)

	dateRE  = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})$`)
	clockRE = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?:\s{0,2}([AaPp][Mm]))?$`)

	// senderRE is a non-greedy run up to the first colon followed by whitespace.
	senderRE = regexp.MustCompile(`(?s)^(.+?):\s`)

	whitespaceReplacer = strings.NewReplacer("\u202f", " ", "\u00a0", " ")
)

// Options configures a Parser.
type Options struct {
	// YearPivot maps two-digit years below it to 20xx and the rest to 19xx.
	// Values outside 1-100 select DefaultYearPivot.
	YearPivot int

	// Location is attached to parsed timestamps. Transcripts carry no zone,
	// so the default is UTC as a neutral wall clock.
	Location *time.Location

	Logger *slog.Logger
}

// Parser splits raw transcripts into records. It is safe for concurrent use.
type Parser struct {
	yearPivot int
	loc       *time.Location
	logger    *slog.Logger
}

// NewParser creates a parser, filling unset options with defaults.
func NewParser(opts Options) *Parser {
	p := &Parser{
		yearPivot: opts.YearPivot,
		loc:       opts.Location,
		logger:    opts.Logger,
	}
	if p.yearPivot < 1 || p.yearPivot > 100 {
		p.yearPivot = DefaultYearPivot
	}
	if p.loc == nil {
		p.loc = time.UTC
	}
	if p.logger == nil {
		p.logger = logger.Discard()
	}
	p.logger = p.logger.With("component", "parser")
	return p
}

// Parse parses text with default options.
func Parse(text string) []Record {
	return NewParser(Options{}).Parse(text)
}

// Parse splits text into records in transcript order. Rows whose timestamp
// does not parse are dropped; a transcript without any boundary yields an
// empty slice.
func (p *Parser) Parse(text string) []Record {
	text = whitespaceReplacer.Replace(text)

	matches := boundaryRE.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		p.logger.Debug("No timestamp boundaries found", "length", len(text))
		return []Record{}
	}

	timestamps := make([]string, 0, len(matches))
	chunks := make([]string, 0, len(matches))
	for i, m := range matches {
		timestamps = append(timestamps, text[m[2]:m[3]]+", "+text[m[4]:m[5]])

		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		chunks = append(chunks, text[m[1]:end])
	}

	// Pair timestamps with chunks positionally; trailing extras are ignored.
	n := min(len(timestamps), len(chunks))
	timestamps, chunks = timestamps[:n], chunks[:n]

	records := make([]Record, 0, n)
	dropped := 0
	for i := range n {
		ts, ok := p.ParseTimestamp(timestamps[i])
		if !ok {
			dropped++
			p.logger.Debug("Dropping row with unparseable timestamp",
				"timestamp", timestamps[i],
				"chunk_preview", logger.Preview(chunks[i], 40))
			continue
		}

		// Split before trimming so "Dave:\n" keeps its sender with an empty body.
		sender, body := SplitSender(chunks[i])
		r := Record{Timestamp: ts, Sender: sender, Body: strings.TrimRight(body, "\r\n")}
		DeriveFeatures(&r)
		records = append(records, r)
	}

	p.logger.Debug("Parsed transcript",
		"boundaries", len(matches),
		"records", len(records),
		"dropped", dropped)

	return records
}

// SplitSender separates "sender: body". Chunks without that prefix are
// system rows attributed to GroupNotification.
func SplitSender(chunk string) (sender, body string) {
	loc := senderRE.FindStringSubmatchIndex(chunk)
	if loc == nil {
		return GroupNotification, chunk
	}
	return chunk[loc[2]:loc[3]], chunk[loc[1]:]
}

// ParseTimestamp parses a "<date>, <time>" boundary string with the parser's
// year convention. The 12-hour grammar applies when an AM/PM marker is
// present, the 24-hour grammar otherwise. Dates are month first; "-" is
// accepted as a separator and four-digit years are taken verbatim, so such
// rows are kept rather than dropped as plain MM/DD/YY would.
func (p *Parser) ParseTimestamp(s string) (time.Time, bool) {
	datePart, clockPart, ok := strings.Cut(s, ",")
	if !ok {
		return time.Time{}, false
	}

	dm := dateRE.FindStringSubmatch(strings.TrimSpace(datePart))
	cm := clockRE.FindStringSubmatch(strings.TrimSpace(clockPart))
	if dm == nil || cm == nil {
		return time.Time{}, false
	}

	month, _ := strconv.Atoi(dm[1])
	day, _ := strconv.Atoi(dm[2])
	year, ok := p.expandYear(dm[3])
	if !ok {
		return time.Time{}, false
	}

	hour, _ := strconv.Atoi(cm[1])
	minute, _ := strconv.Atoi(cm[2])
	if minute > 59 {
		return time.Time{}, false
	}

	if marker := strings.ToUpper(cm[3]); marker != "" {
		if hour < 1 || hour > 12 {
			return time.Time{}, false
		}
		hour %= 12
		if marker == "PM" {
			hour += 12
		}
	} else if hour > 23 {
		return time.Time{}, false
	}

	if month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}
	ts := time.Date(year, time.Month(month), day, hour, minute, 0, 0, p.loc)
	if ts.Day() != day || int(ts.Month()) != month {
		// time.Date normalises 2/30 into March; treat that as invalid.
		return time.Time{}, false
	}
	return ts, true
}

func (p *Parser) expandYear(s string) (int, bool) {
	y, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	switch len(s) {
	case 2:
		if y < p.yearPivot {
			return 2000 + y, true
		}
		return 1900 + y, true
	case 4:
		return y, true
	default:
		return 0, false
	}
}
