// Package main is the chatlens command: it analyses exported chat transcripts
// and prints a report, compares several transcripts side by side, or keeps
// re-analysing them on a schedule.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/edgard/chatlens/internal/analysis"
	"github.com/edgard/chatlens/internal/app"
	"github.com/edgard/chatlens/internal/config"
	apperrors "github.com/edgard/chatlens/internal/errors"
	"github.com/edgard/chatlens/internal/lexicon"
	"github.com/edgard/chatlens/internal/logger"
	"github.com/edgard/chatlens/internal/report"
	"github.com/edgard/chatlens/internal/scheduler"
	"github.com/edgard/chatlens/internal/scheduler/tasks"
	"github.com/edgard/chatlens/internal/transcript"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(exitCode)
}

type options struct {
	configPath string
	user       string
	format     string
	watch      bool
	files      []string
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("chatlens", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: chatlens [-config path] [-user name] [-format text|json] [-watch] [files...]")
		fs.PrintDefaults()
	}

	opts := &options{}
	fs.StringVar(&opts.configPath, "config", config.DefaultConfigPath, "Path to configuration file")
	fs.StringVar(&opts.user, "user", analysis.Overall, "Sender to report on")
	fs.StringVar(&opts.format, "format", "", "Output format: text or json (default from config)")
	fs.BoolVar(&opts.watch, "watch", false, "Re-analyse configured transcripts on the scheduler until interrupted")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if opts.format != "" && opts.format != report.FormatText && opts.format != report.FormatJSON {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown format %q", opts.format), nil)
	}
	opts.files = fs.Args()
	return opts, nil
}

// run wires configuration, logging, lexicon and parser, then dispatches to
// report, comparison or watch mode. It returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 1
	}

	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", opts.configPath, "error", err)
		return 1
	}

	log := logger.New(stderr, cfg.Logger.Level, cfg.Logger.JSON)
	slog.SetDefault(log)
	log.Debug("Logger initialized", "level", cfg.Logger.Level, "json", cfg.Logger.JSON)

	if opts.format == "" {
		opts.format = cfg.Report.Format
	}

	lex, err := lexicon.Load(cfg.Lexicon.StopWordsPath, cfg.Lexicon.BadWordsPath)
	if err != nil {
		log.Error("Failed to load lexicon", "error", err)
		return 1
	}
	parser := transcript.NewParser(cfg.ParserOptions(log))

	if opts.watch {
		if len(opts.files) > 0 {
			cfg.Report.Transcripts = opts.files
		}
		return watch(ctx, log, cfg, parser, lex)
	}

	files := opts.files
	if len(files) == 0 {
		files = cfg.Report.Transcripts
	}

	switch len(files) {
	case 0:
		log.Error("No transcripts given")
		return 1
	case 1:
		err = single(files[0], opts, cfg, parser, lex, stdout)
	default:
		err = compare(ctx, files, opts, cfg, parser, lex, stdout)
	}
	if err != nil {
		log.Error("Analysis failed", "error", err)
		return 1
	}
	return 0
}

func single(path string, opts *options, cfg *config.Config, parser *transcript.Parser, lex *lexicon.Lexicon, stdout io.Writer) error {
	t, err := parser.ParseFile(path)
	if err != nil {
		return err
	}

	e := analysis.New(t.Records, lex, cfg.AnalysisOptions())
	if opts.user != analysis.Overall && len(e.Records(opts.user)) == 0 {
		slog.Warn("User not found in transcript", "user", opts.user, "users", e.Users()[1:])
	}

	r := report.Build(e, opts.user)
	r.Name = t.Name
	return report.Write(stdout, r, opts.format)
}

func compare(ctx context.Context, files []string, opts *options, cfg *config.Config, parser *transcript.Parser, lex *lexicon.Lexicon, stdout io.Writer) error {
	summaries, err := report.Compare(ctx, files, parser, lex, cfg.AnalysisOptions(), cfg.Parser.MaxConcurrency)
	if err != nil {
		return err
	}
	if opts.format == report.FormatJSON {
		return report.WriteJSON(stdout, summaries)
	}
	return report.WriteComparison(stdout, summaries)
}

func watch(ctx context.Context, log *slog.Logger, cfg *config.Config, parser *transcript.Parser, lex *lexicon.Lexicon) int {
	taskMap := tasks.RegisterAll(tasks.Deps{
		Logger:  log,
		Config:  cfg,
		Parser:  parser,
		Lexicon: lex,
	})

	sched, err := scheduler.New(log, cfg.Scheduler, taskMap)
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return 1
	}

	if err := app.New(log, sched).Run(ctx); err != nil {
		return 1
	}
	return 0
}
