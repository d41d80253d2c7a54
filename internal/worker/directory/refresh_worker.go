package directory

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/tripautostrade/area-directory/internal/worker"
)

// Directory is the part of the area directory driven by the worker.
type Directory interface {
	Start(ctx context.Context) <-chan error
	Refresh(ctx context.Context) error
}

// RefreshWorker запускает каталог при старте сервиса и, если задан интервал,
// периодически обновляет его из удалённого источника.
type RefreshWorker struct {
	*worker.BaseWorker
	dir      Directory
	interval time.Duration
}

func NewRefreshWorker(dir Directory, interval time.Duration, logger *zap.Logger) *RefreshWorker {
	return &RefreshWorker{
		BaseWorker: worker.NewBaseWorker("directory-refresh", logger),
		dir:        dir,
		interval:   interval,
	}
}

// Start loads the snapshot, kicks off the initial refresh and then blocks
// until the worker is stopped.
func (w *RefreshWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting directory refresh worker", zap.Duration("interval", w.interval))

	initial := w.dir.Start(ctx)

	var tick <-chan time.Time
	if w.interval > 0 {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case err, ok := <-initial:
			if !ok {
				continue
			}
			initial = nil
			if err != nil {
				logger.Warn("Initial refresh failed", zap.Error(err))
			}

		case <-tick:
			if err := w.dir.Refresh(ctx); err != nil {
				logger.Warn("Scheduled refresh failed", zap.Error(err))
			}
		}
	}
}
