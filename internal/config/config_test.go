package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/chatlens/internal/analysis"
	"github.com/edgard/chatlens/internal/config"
	apperrors "github.com/edgard/chatlens/internal/errors"
	"github.com/edgard/chatlens/internal/transcript"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Parallel()

	for name, path := range map[string]string{
		"missing file": filepath.Join(t.TempDir(), "absent.yaml"),
		"no path":      "",
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg, err := config.LoadConfig(path)
			require.NoError(t, err)

			assert.Equal(t, config.DefaultLogLevel, cfg.Logger.Level)
			assert.False(t, cfg.Logger.JSON)
			assert.Empty(t, cfg.Lexicon.StopWordsPath)
			assert.Equal(t, transcript.DefaultYearPivot, cfg.Parser.YearPivot)
			assert.Equal(t, config.DefaultMaxConcurrency, cfg.Parser.MaxConcurrency)
			assert.Equal(t, config.DefaultReportFormat, cfg.Report.Format)
			assert.Empty(t, cfg.Report.Transcripts)

			task, ok := cfg.Scheduler.Tasks[config.ReportTaskName]
			require.True(t, ok)
			assert.False(t, task.Enabled)
			assert.Equal(t, config.DefaultReportSchedule, task.Schedule)

			assert.Equal(t, analysis.Options{
				ReplyGapHours: analysis.DefaultReplyGapHours,
				TopUsers:      analysis.DefaultTopUsers,
				TopWords:      analysis.DefaultTopWords,
				TopNgrams:     analysis.DefaultTopNgrams,
				TopToxicWords: analysis.DefaultTopToxicWords,
			}, cfg.AnalysisOptions())
		})
	}
}

func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
logger:
  level: debug
  json: true
lexicon:
  stop_words_path: /etc/chatlens/stop.txt
parser:
  year_pivot: 50
  max_concurrency: 2
analysis:
  reply_gap_hours: 1.5
  top_words: 5
report:
  transcripts:
    - a.txt
    - b.txt
  output_dir: /tmp/out
  format: json
scheduler:
  tasks:
    transcript_report:
      enabled: true
      schedule: "0 */5 * * * *"
`)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.True(t, cfg.Logger.JSON)
	assert.Equal(t, "/etc/chatlens/stop.txt", cfg.Lexicon.StopWordsPath)
	assert.Empty(t, cfg.Lexicon.BadWordsPath)
	assert.Equal(t, 50, cfg.Parser.YearPivot)
	assert.Equal(t, 2, cfg.Parser.MaxConcurrency)
	assert.Equal(t, []string{"a.txt", "b.txt"}, cfg.Report.Transcripts)
	assert.Equal(t, "/tmp/out", cfg.Report.OutputDir)
	assert.Equal(t, "json", cfg.Report.Format)

	opts := cfg.AnalysisOptions()
	assert.InDelta(t, 1.5, opts.ReplyGapHours, 1e-9)
	assert.Equal(t, 5, opts.TopWords)
	assert.Equal(t, analysis.DefaultTopUsers, opts.TopUsers)

	task := cfg.Scheduler.Tasks[config.ReportTaskName]
	assert.True(t, task.Enabled)
	assert.Equal(t, "0 */5 * * * *", task.Schedule)

	assert.Equal(t, 50, cfg.ParserOptions(nil).YearPivot)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("CHATLENS_LOGGER_LEVEL", "warn")
	t.Setenv("CHATLENS_ANALYSIS_TOP_NGRAMS", "7")

	path := writeConfig(t, "logger:\n  level: debug\n")
	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Logger.Level)
	assert.Equal(t, 7, cfg.Analysis.TopNgrams)
}

func TestLoadConfigErrors(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"malformed yaml":      "logger: [unclosed\n",
		"bad level":           "logger:\n  level: verbose\n",
		"bad format":          "report:\n  format: html\n",
		"pivot too large":     "parser:\n  year_pivot: 101\n",
		"no concurrency":      "parser:\n  max_concurrency: 0\n",
		"negative reply gap":  "analysis:\n  reply_gap_hours: -1\n",
		"empty transcript":    "report:\n  transcripts: [\"\"]\n",
		"enabled no schedule": "scheduler:\n  tasks:\n    nightly:\n      enabled: true\n",
		"wrong type":          "analysis:\n  top_words: many\n",
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg, err := config.LoadConfig(writeConfig(t, body))
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Equal(t, apperrors.CodeConfig, apperrors.Code(err))
		})
	}
}

func TestLoadConfigDisabledTaskWithoutSchedule(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadConfig(writeConfig(t, "scheduler:\n  tasks:\n    nightly:\n      enabled: false\n"))
	require.NoError(t, err)
	assert.Contains(t, cfg.Scheduler.Tasks, "nightly")
	assert.Contains(t, cfg.Scheduler.Tasks, config.ReportTaskName)
}
