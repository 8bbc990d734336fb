// Package app runs the long-lived watch mode: the scheduler plus any
// components started alongside it, until the context is cancelled.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Service is a component with an explicit lifecycle.
type Service interface {
	Start() error
	Stop() error
}

// App orchestrates the services of watch mode.
type App struct {
	logger    *slog.Logger
	scheduler Service
}

// New creates an App around the scheduler.
func New(logger *slog.Logger, scheduler Service) *App {
	if logger == nil {
		logger = slog.Default()
	}
	return &App{
		logger:    logger.With("component", "app"),
		scheduler: scheduler,
	}
}

// Run starts every service and blocks until ctx is cancelled or a service
// fails, then stops them. Cancellation is a clean shutdown and returns nil.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("Starting chatlens watch mode")

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := a.scheduler.Start(); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}

		<-gCtx.Done()
		a.logger.Info("Shutdown signal received, stopping scheduler")

		if err := a.scheduler.Stop(); err != nil {
			a.logger.Error("Error stopping scheduler", "error", err)
		}
		return nil
	})

	err := g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		a.logger.Error("Watch mode stopped due to error", "error", err)
		return err
	}

	a.logger.Info("Watch mode stopped gracefully")
	return nil
}
