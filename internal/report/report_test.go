package report_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/chatlens/internal/analysis"
	apperrors "github.com/edgard/chatlens/internal/errors"
	"github.com/edgard/chatlens/internal/lexicon"
	"github.com/edgard/chatlens/internal/report"
	"github.com/edgard/chatlens/internal/transcript"
)

const chat = `1/2/23, 10:00 AM - Alice: hello world 😀
1/2/23, 10:05 AM - Bob: hi Alice, you idiot
1/2/23, 10:06 AM - Bob: <Media omitted>
1/2/23, 10:30 AM - Alice added Carol
`

func newEngine(text string) *analysis.Engine {
	lex := lexicon.New([]string{"you"}, []string{"idiot"})
	return analysis.New(transcript.Parse(text), lex, analysis.Options{})
}

func TestBuild(t *testing.T) {
	t.Parallel()

	e := newEngine(chat)

	r := report.Build(e, analysis.Overall)
	assert.Equal(t, analysis.Overall, r.User)
	assert.Equal(t, analysis.Stats{Messages: 4, Words: 12, Media: 1, Links: 0}, r.Stats)
	require.NotNil(t, r.Busiest)
	assert.Equal(t, "Bob", r.Busiest.Top[0].Sender)
	assert.Equal(t, []analysis.TermCount{{Term: "😀", Count: 1}}, r.Emojis)
	assert.Equal(t, []analysis.ReplyLatency{{Sender: "Bob", MedianMinutes: 5, Replies: 1}}, r.ReplyTimes)
	assert.Equal(t, []analysis.UserCount{{Sender: "Bob", Count: 1}}, r.Toxicity.BySender)
	assert.NotEmpty(t, r.WordCloud)
	assert.NotEmpty(t, r.Bigrams)
	assert.False(t, r.Heatmap.IsEmpty())

	bob := report.Build(e, "Bob")
	assert.Nil(t, bob.Busiest)
	assert.Equal(t, 2, bob.Stats.Messages)
	assert.Empty(t, bob.Emojis)
}

func TestBuildEmpty(t *testing.T) {
	t.Parallel()

	r := report.Build(newEngine(""), analysis.Overall)
	assert.Equal(t, analysis.Stats{}, r.Stats)
	assert.Empty(t, r.WordCloud)
	assert.True(t, r.Heatmap.IsEmpty())
	assert.True(t, r.Toxicity.IsEmpty())

	var buf bytes.Buffer
	require.NoError(t, report.WriteText(&buf, r))
	assert.Contains(t, buf.String(), "(no data)")
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	r := report.Build(newEngine(chat), analysis.Overall)
	r.Name = "family.txt"

	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, r, report.FormatJSON))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "family.txt", decoded["name"])
	assert.Equal(t, analysis.Overall, decoded["user"])
	assert.Contains(t, decoded, "busiest")
	assert.Contains(t, decoded, "heatmap")

	stats, ok := decoded["stats"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 4, stats["messages"])
}

func TestWriteText(t *testing.T) {
	t.Parallel()

	r := report.Build(newEngine(chat), analysis.Overall)
	r.Name = "family.txt"

	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, r, report.FormatText))
	out := buf.String()

	for _, want := range []string{
		"Chat report: family.txt (Overall)",
		"## Top statistics",
		"## Most busy users",
		"January-2023",
		"2023-01-02",
		"## Weekly activity map",
		"10-11",
		"## Median reply time",
		"## Toxicity",
		"idiot",
	} {
		assert.Contains(t, out, want)
	}

	lines := strings.Split(out, "\n")
	assert.True(t, strings.HasPrefix(lines[1], "==="))
}

func TestWriteComparison(t *testing.T) {
	t.Parallel()

	summaries := []report.Summary{
		{Name: "a.txt", Stats: analysis.Stats{Messages: 10, Words: 40}, Senders: 3, TopSender: "Alice", Toxic: 2},
		{Name: "b.txt"},
	}

	var buf bytes.Buffer
	require.NoError(t, report.WriteComparison(&buf, summaries))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "TRANSCRIPT"))
	assert.Equal(t, []string{"a.txt", "10", "40", "0", "0", "3", "Alice", "2"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"b.txt", "0", "0", "0", "0", "0", "-", "0"}, strings.Fields(lines[2]))
}

func TestCompare(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	first := filepath.Join(dir, "first.txt")
	second := filepath.Join(dir, "second.txt")
	require.NoError(t, os.WriteFile(first, []byte(chat), 0o600))
	require.NoError(t, os.WriteFile(second, []byte("1/3/23, 09:00 - Dan: morning\n"), 0o600))

	p := transcript.NewParser(transcript.Options{})
	lex := lexicon.New(nil, []string{"idiot"})

	got, err := report.Compare(context.Background(), []string{first, second}, p, lex, analysis.Options{}, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, report.Summary{
		Name:      "first.txt",
		Stats:     analysis.Stats{Messages: 4, Words: 12, Media: 1},
		Senders:   2,
		TopSender: "Bob",
		Toxic:     1,
	}, got[0])
	assert.Equal(t, report.Summary{
		Name:      "second.txt",
		Stats:     analysis.Stats{Messages: 1, Words: 1},
		Senders:   1,
		TopSender: "Dan",
	}, got[1])

	_, err = report.Compare(context.Background(), []string{first, filepath.Join(dir, "missing.txt")}, p, lex, analysis.Options{}, 2)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInput, apperrors.Code(err))
}
