// Package tasks defines the jobs the scheduler can run.
package tasks

import (
	"context"
	"log/slog"

	"github.com/edgard/chatlens/internal/config"
	"github.com/edgard/chatlens/internal/lexicon"
	"github.com/edgard/chatlens/internal/transcript"
)

// Func is the signature of every scheduled task. Tasks must honour ctx.
type Func func(ctx context.Context) error

// Deps carries what tasks need.
type Deps struct {
	Logger  *slog.Logger
	Config  *config.Config
	Parser  *transcript.Parser
	Lexicon *lexicon.Lexicon
}

// RegisterAll returns every task keyed by the name used under
// scheduler.tasks in the configuration.
func RegisterAll(deps Deps) map[string]Func {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	tasks := map[string]Func{
		config.ReportTaskName: newReportTask(deps),
	}

	deps.Logger.Debug("Registered scheduled tasks", "count", len(tasks))
	return tasks
}
