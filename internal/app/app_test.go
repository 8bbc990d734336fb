package app_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/chatlens/internal/app"
	"github.com/edgard/chatlens/internal/logger"
)

type fakeService struct {
	startErr error
	started  atomic.Bool
	stopped  atomic.Bool
}

func (f *fakeService) Start() error {
	if f.startErr != nil {
		return f.startErr
	}
	f.started.Store(true)
	return nil
}

func (f *fakeService) Stop() error {
	f.stopped.Store(true)
	return nil
}

func TestRunStopsOnCancel(t *testing.T) {
	t.Parallel()

	svc := &fakeService{}
	a := app.New(logger.Discard(), svc)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	require.Eventually(t, svc.started.Load, 5*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}
	assert.True(t, svc.stopped.Load())
}

func TestRunStartFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	svc := &fakeService{startErr: boom}

	err := app.New(logger.Discard(), svc).Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.False(t, svc.stopped.Load())
}
