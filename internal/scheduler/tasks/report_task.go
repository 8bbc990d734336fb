package tasks

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/edgard/chatlens/internal/report"
)

// newReportTask re-analyses the configured transcripts and writes one Overall
// report per transcript into report.output_dir. Without an output directory
// the headline numbers are logged instead.
func newReportTask(deps Deps) Func {
	log := deps.Logger.With("task", "transcript_report")

	return func(ctx context.Context) error {
		cfg := deps.Config
		if len(cfg.Report.Transcripts) == 0 {
			log.InfoContext(ctx, "No transcripts configured, nothing to report")
			return nil
		}

		start := time.Now()
		parsed, err := deps.Parser.ParseFiles(ctx, cfg.Report.Transcripts, cfg.Parser.MaxConcurrency)
		if err != nil {
			return fmt.Errorf("failed to parse transcripts: %w", err)
		}

		opts := cfg.AnalysisOptions()
		for _, t := range parsed {
			if err := ctx.Err(); err != nil {
				return err
			}

			r := report.BuildTranscript(t, deps.Lexicon, opts)
			if cfg.Report.OutputDir == "" {
				log.InfoContext(ctx, "Transcript report",
					"name", t.Name,
					"messages", r.Stats.Messages,
					"words", r.Stats.Words,
					"media", r.Stats.Media,
					"links", r.Stats.Links)
				continue
			}

			path, err := writeReport(cfg.Report.OutputDir, r, cfg.Report.Format)
			if err != nil {
				return err
			}
			log.InfoContext(ctx, "Report written", "name", t.Name, "path", path)
		}

		log.InfoContext(ctx, "Transcript reports completed", "count", len(parsed), "duration", time.Since(start))
		return nil
	}
}

// writeReport renders r into dir as <name>.json or <name>.txt, replacing any
// previous report atomically.
func writeReport(dir string, r *report.Report, format string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}

	var buf bytes.Buffer
	if err := report.Write(&buf, r, format); err != nil {
		return "", err
	}

	ext := ".txt"
	if format == report.FormatJSON {
		ext = ".json"
	}
	base := strings.TrimSuffix(r.Name, filepath.Ext(r.Name))
	path := filepath.Join(dir, base+ext)

	tmp, err := os.CreateTemp(dir, "."+base+"-*")
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write report file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to write report file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("failed to replace report file: %w", err)
	}
	return path, nil
}
