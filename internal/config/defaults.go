package config

import (
	"github.com/spf13/viper"

	"github.com/edgard/chatlens/internal/analysis"
	"github.com/edgard/chatlens/internal/transcript"
)

// ReportTaskName is the scheduler key of the periodic report task.
const ReportTaskName = "transcript_report"

const (
	DefaultConfigPath     = "./config.yaml"
	DefaultLogLevel       = "info"
	DefaultMaxConcurrency = 4
	DefaultReportFormat   = "text"
	// DefaultReportSchedule runs at the top of every hour.
	DefaultReportSchedule = "0 0 * * * *"
)

// setDefaults registers every key so environment overrides resolve during
// Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", DefaultLogLevel)
	v.SetDefault("logger.json", false)

	v.SetDefault("lexicon.stop_words_path", "")
	v.SetDefault("lexicon.bad_words_path", "")

	v.SetDefault("parser.year_pivot", transcript.DefaultYearPivot)
	v.SetDefault("parser.max_concurrency", DefaultMaxConcurrency)

	v.SetDefault("analysis.reply_gap_hours", analysis.DefaultReplyGapHours)
	v.SetDefault("analysis.top_users", analysis.DefaultTopUsers)
	v.SetDefault("analysis.top_words", analysis.DefaultTopWords)
	v.SetDefault("analysis.top_ngrams", analysis.DefaultTopNgrams)
	v.SetDefault("analysis.top_toxic_words", analysis.DefaultTopToxicWords)

	v.SetDefault("report.transcripts", []string{})
	v.SetDefault("report.output_dir", "")
	v.SetDefault("report.format", DefaultReportFormat)

	v.SetDefault("scheduler.tasks."+ReportTaskName+".enabled", false)
	v.SetDefault("scheduler.tasks."+ReportTaskName+".schedule", DefaultReportSchedule)
}
