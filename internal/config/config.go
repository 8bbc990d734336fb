// Package config loads chatlens configuration from a YAML file, CHATLENS_*
// environment variables and built-in defaults, then validates the result.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/edgard/chatlens/internal/analysis"
	apperrors "github.com/edgard/chatlens/internal/errors"
	"github.com/edgard/chatlens/internal/transcript"
)

// EnvPrefix prefixes every environment override, e.g. CHATLENS_LOGGER_LEVEL.
const EnvPrefix = "CHATLENS"

// Config is the complete application configuration.
type Config struct {
	Logger    LoggerConfig    `mapstructure:"logger"`
	Lexicon   LexiconConfig   `mapstructure:"lexicon"`
	Parser    ParserConfig    `mapstructure:"parser"`
	Analysis  AnalysisConfig  `mapstructure:"analysis"`
	Report    ReportConfig    `mapstructure:"report"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

// LoggerConfig controls the slog handler.
type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// LexiconConfig points at word lists. Empty paths select the embedded lists.
type LexiconConfig struct {
	StopWordsPath string `mapstructure:"stop_words_path"`
	BadWordsPath  string `mapstructure:"bad_words_path"`
}

// ParserConfig tunes transcript parsing.
type ParserConfig struct {
	// YearPivot maps two-digit years below it to 20YY, others to 19YY.
	// Zero selects transcript.DefaultYearPivot.
	YearPivot      int `mapstructure:"year_pivot"      validate:"min=0,max=100"`
	MaxConcurrency int `mapstructure:"max_concurrency" validate:"min=1,max=64"`
}

// AnalysisConfig mirrors analysis.Options.
type AnalysisConfig struct {
	ReplyGapHours float64 `mapstructure:"reply_gap_hours" validate:"gt=0"`
	TopUsers      int     `mapstructure:"top_users"       validate:"min=1"`
	TopWords      int     `mapstructure:"top_words"       validate:"min=1"`
	TopNgrams     int     `mapstructure:"top_ngrams"      validate:"min=1"`
	TopToxicWords int     `mapstructure:"top_toxic_words" validate:"min=1"`
}

// ReportConfig drives the scheduled report task.
type ReportConfig struct {
	Transcripts []string `mapstructure:"transcripts" validate:"dive,required"`
	OutputDir   string   `mapstructure:"output_dir"`
	Format      string   `mapstructure:"format"      validate:"oneof=text json"`
}

// SchedulerConfig maps task names to their schedule.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks" validate:"dive"`
}

// TaskConfig enables a task on a six-field cron schedule (seconds first).
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule" validate:"required_if=Enabled true"`
}

// LoadConfig reads the YAML file at path (optional; a missing file leaves the
// defaults in place), applies CHATLENS_* overrides and validates the result.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
				return nil, apperrors.NewConfigError(fmt.Sprintf("failed to read config file %q", path), err)
			}
			slog.Debug("Config file not found, using defaults", "path", path)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to parse config", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks struct constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return apperrors.NewConfigError("invalid configuration", err)
	}
	return nil
}

// AnalysisOptions converts the analysis section for analysis.New.
func (c *Config) AnalysisOptions() analysis.Options {
	return analysis.Options{
		ReplyGapHours: c.Analysis.ReplyGapHours,
		TopUsers:      c.Analysis.TopUsers,
		TopWords:      c.Analysis.TopWords,
		TopNgrams:     c.Analysis.TopNgrams,
		TopToxicWords: c.Analysis.TopToxicWords,
	}
}

// ParserOptions converts the parser section for transcript.NewParser.
func (c *Config) ParserOptions(logger *slog.Logger) transcript.Options {
	return transcript.Options{
		YearPivot: c.Parser.YearPivot,
		Logger:    logger,
	}
}
