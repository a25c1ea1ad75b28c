package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/garyjia/gov-travel-expense/internal/application/port"
	"go.uber.org/zap"
)

// CleanupConfig holds configuration for the output cleanup worker
type CleanupConfig struct {
	Interval  time.Duration // how often to sweep
	Retention time.Duration // folders older than this are removed
}

// CleanupWorker periodically removes generated form folders past their
// retention so the output directory does not grow without bound.
type CleanupWorker struct {
	config CleanupConfig
	pruner port.FolderPruner
	now    func() time.Time
	logger *zap.Logger

	mu           sync.Mutex
	cancel       context.CancelFunc
	done         chan struct{}
	removedCount int
	lastError    error
}

// NewCleanupWorker creates a new cleanup worker
func NewCleanupWorker(config CleanupConfig, pruner port.FolderPruner, logger *zap.Logger) *CleanupWorker {
	return &CleanupWorker{
		config: config,
		pruner: pruner,
		now:    time.Now,
		logger: logger,
	}
}

// Name returns the worker name for identification
func (w *CleanupWorker) Name() string {
	return "CleanupWorker"
}

// Start sweeps once immediately, then on every interval until ctx ends
func (w *CleanupWorker) Start(ctx context.Context) error {
	if w.config.Interval <= 0 || w.config.Retention <= 0 {
		return fmt.Errorf("cleanup interval and retention must be positive")
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.done != nil {
		return fmt.Errorf("cleanup worker already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.done = make(chan struct{})

	w.logger.Info("CleanupWorker started",
		zap.Duration("interval", w.config.Interval),
		zap.Duration("retention", w.config.Retention))

	go w.loop(runCtx, w.done)
	return nil
}

// Stop cancels the loop and waits for an in-flight sweep to finish
func (w *CleanupWorker) Stop() error {
	w.mu.Lock()
	cancel, done := w.cancel, w.done
	w.cancel, w.done = nil, nil
	w.mu.Unlock()

	if done == nil {
		return nil
	}
	cancel()
	<-done

	w.logger.Info("CleanupWorker stopped", zap.Int("removed_count", w.RemovedCount()))
	return nil
}

// RemovedCount returns how many folders the worker has removed
func (w *CleanupWorker) RemovedCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.removedCount
}

// LastError returns the error of the most recent failed sweep
func (w *CleanupWorker) LastError() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastError
}

func (w *CleanupWorker) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(w.config.Interval)
	defer ticker.Stop()

	w.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

// sweep runs one prune pass
func (w *CleanupWorker) sweep(ctx context.Context) {
	cutoff := w.now().Add(-w.config.Retention)
	removed, err := w.pruner.PruneOlderThan(ctx, cutoff)

	w.mu.Lock()
	w.removedCount += removed
	if err != nil && ctx.Err() == nil {
		w.lastError = err
	}
	w.mu.Unlock()

	if err != nil && ctx.Err() == nil {
		w.logger.Error("Failed to prune output folders", zap.Error(err))
	}
}
