package worker_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tripautostrade/area-directory/internal/worker"
)

type blockingWorker struct {
	*worker.BaseWorker
	started atomic.Bool
}

func newBlockingWorker(name string) *blockingWorker {
	return &blockingWorker{BaseWorker: worker.NewBaseWorker(name, zap.NewNop())}
}

func (w *blockingWorker) Start(ctx context.Context) error {
	w.started.Store(true)
	select {
	case <-w.StopChan():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// stubbornWorker ignores Stop.
type stubbornWorker struct {
	*worker.BaseWorker
	release chan struct{}
}

func (w *stubbornWorker) Start(ctx context.Context) error {
	<-w.release
	return nil
}

func TestWorkerManager_NoWorkers(t *testing.T) {
	m := worker.NewWorkerManager(zap.NewNop(), time.Second)
	assert.Error(t, m.Start(context.Background()))
}

func TestWorkerManager_StartStop(t *testing.T) {
	m := worker.NewWorkerManager(zap.NewNop(), time.Second)
	a := newBlockingWorker("a")
	b := newBlockingWorker("b")
	m.Register(a)
	m.Register(b)

	require.NoError(t, m.Start(context.Background()))
	assert.Eventually(t, func() bool {
		return a.started.Load() && b.started.Load()
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, m.Stop())
	assert.True(t, a.IsStopped())
	assert.True(t, b.IsStopped())

	// Stop is idempotent
	assert.NoError(t, a.Stop())
}

func TestWorkerManager_ShutdownTimeout(t *testing.T) {
	m := worker.NewWorkerManager(zap.NewNop(), 50*time.Millisecond)
	w := &stubbornWorker{
		BaseWorker: worker.NewBaseWorker("stubborn", zap.NewNop()),
		release:    make(chan struct{}),
	}
	defer close(w.release)
	m.Register(w)

	require.NoError(t, m.Start(context.Background()))
	assert.Error(t, m.Stop())
}
