package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/tripautostrade/area-directory/internal/domain"
	"github.com/tripautostrade/area-directory/internal/domain/repository"
	"github.com/tripautostrade/area-directory/internal/pkg/errors"
	"github.com/tripautostrade/area-directory/internal/pkg/metrics"
	"github.com/tripautostrade/area-directory/internal/pkg/utils"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// AreaDirectory держит список areas di servizio для сессии приложения:
// мгновенно отдаёт сохранённый снимок, обновляет его из удалённого источника
// и выполняет синхронный поиск по текущему списку.
//
// The list is replaced wholesale through an atomic pointer, so readers see
// either the old or the new slice. mu guards the state fields only.
type AreaDirectory struct {
	source         repository.AreaSource
	store          repository.SnapshotStore
	logger         *zap.Logger
	cacheKey       string
	refreshTimeout time.Duration

	areas atomic.Pointer[[]domain.ServiceArea]
	group singleflight.Group

	mu         sync.Mutex
	status     domain.DirectoryStatus
	fromCache  bool
	refreshing bool
	fetchErr   error
	subs       map[int]chan domain.DirectoryState
	nextSubID  int
}

func NewAreaDirectory(
	source repository.AreaSource,
	store repository.SnapshotStore,
	logger *zap.Logger,
	cacheKey string,
	refreshTimeout time.Duration,
) *AreaDirectory {
	d := &AreaDirectory{
		source:         source,
		store:          store,
		logger:         logger.Named("directory"),
		cacheKey:       cacheKey,
		refreshTimeout: refreshTimeout,
		status:         domain.StatusUninitialized,
		subs:           make(map[int]chan domain.DirectoryState),
	}
	empty := []domain.ServiceArea{}
	d.areas.Store(&empty)
	return d
}

// Start reads the persisted snapshot synchronously and then refreshes in the background.
// When Start returns, cached data (if any) is already visible.
// The returned channel receives the refresh result once.
func (d *AreaDirectory) Start(ctx context.Context) <-chan error {
	d.Load(ctx)

	done := make(chan error, 1)
	bg := context.WithoutCancel(ctx)
	go func() {
		done <- d.Refresh(bg)
		close(done)
	}()
	return done
}

// Load reads the persisted snapshot. It only has an effect on an uninitialized directory;
// a refresh that already completed wins over the snapshot. Refresh calls it itself
// when nothing has been loaded yet.
func (d *AreaDirectory) Load(ctx context.Context) {
	snapshot, ok := d.readSnapshot(ctx)

	d.mu.Lock()
	if d.status != domain.StatusUninitialized {
		d.mu.Unlock()
		d.logger.Debug("Snapshot ignored, directory already initialized")
		return
	}

	if ok {
		d.areas.Store(&snapshot)
		d.status = domain.StatusReady
		d.fromCache = true
		metrics.AreasLoaded.Set(float64(len(snapshot)))
	} else {
		d.status = domain.StatusLoading
	}
	state := d.stateLocked()
	d.mu.Unlock()

	d.logger.Info("Directory initialized",
		zap.String("status", string(state.Status)),
		zap.Bool("from_cache", state.FromCache),
		zap.Int("count", state.Count))
	d.notify()
}

// readSnapshot never fails: a read error or malformed content is a cache miss.
func (d *AreaDirectory) readSnapshot(ctx context.Context) ([]domain.ServiceArea, bool) {
	data, err := d.store.Get(ctx, d.cacheKey)
	if err != nil {
		metrics.SnapshotReads.WithLabelValues("error").Inc()
		d.logger.Warn("Snapshot read failed, treating as miss", zap.Error(err))
		return nil, false
	}
	if data == nil {
		metrics.SnapshotReads.WithLabelValues("miss").Inc()
		return nil, false
	}

	areas, err := decodeSnapshot(data)
	if err != nil {
		metrics.SnapshotReads.WithLabelValues("corrupt").Inc()
		d.logger.Warn("Snapshot is corrupt, treating as miss",
			zap.Int("bytes", len(data)),
			zap.Error(err))
		return nil, false
	}

	metrics.SnapshotReads.WithLabelValues("hit").Inc()
	return areas, true
}

// decodeSnapshot accepts only a JSON array of complete areas.
// One bad element rejects the whole snapshot.
func decodeSnapshot(data []byte) ([]domain.ServiceArea, error) {
	var raw []*domain.ServiceArea
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, fmt.Errorf("snapshot is not an array")
	}

	areas := make([]domain.ServiceArea, 0, len(raw))
	for i, a := range raw {
		switch {
		case a == nil:
			return nil, fmt.Errorf("element %d is null", i)
		case strings.TrimSpace(a.Name) == "":
			return nil, fmt.Errorf("element %d has no name", i)
		case !utils.ValidateCoordinates(a.Location.Latitude, a.Location.Longitude):
			return nil, fmt.Errorf("element %d has invalid coordinates", i)
		}
		areas = append(areas, *a)
	}
	return areas, nil
}

// Refresh fetches the full list from the remote source, replaces the in-memory list
// and persists it. Concurrent calls share one fetch and one write.
//
// The fetch error is always returned to the caller; whether it becomes visible to
// users (Err) depends on whether any data is being shown.
func (d *AreaDirectory) Refresh(ctx context.Context) error {
	ch := d.group.DoChan("refresh", func() (interface{}, error) {
		return nil, d.refresh(context.WithoutCancel(ctx))
	})

	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *AreaDirectory) refresh(ctx context.Context) error {
	refreshID := uuid.NewString()
	log := d.logger.With(zap.String("refresh_id", refreshID))

	// первый запрос к каталогу сначала читает снимок
	if d.State().Status == domain.StatusUninitialized {
		d.Load(ctx)
	}

	d.setRefreshing(true)
	defer d.setRefreshing(false)

	if d.refreshTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.refreshTimeout)
		defer cancel()
	}

	start := time.Now()
	areas, err := d.source.FetchAll(ctx)
	metrics.RefreshDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.Refreshes.WithLabelValues("failure").Inc()
		return d.refreshFailed(log, err)
	}
	metrics.Refreshes.WithLabelValues("success").Inc()

	fresh := slices.Clone(areas)
	if fresh == nil {
		fresh = []domain.ServiceArea{}
	}

	d.mu.Lock()
	d.areas.Store(&fresh)
	d.status = domain.StatusReady
	d.fromCache = false
	d.fetchErr = nil
	d.mu.Unlock()
	metrics.AreasLoaded.Set(float64(len(fresh)))

	log.Info("Directory refreshed",
		zap.Int("count", len(fresh)),
		zap.Duration("took", time.Since(start)))

	d.persist(ctx, log, fresh)
	return nil
}

func (d *AreaDirectory) refreshFailed(log *zap.Logger, fetchErr error) error {
	wrapped := fmt.Errorf("refresh service areas: %w", fetchErr)

	d.mu.Lock()
	if d.status == domain.StatusReady {
		d.mu.Unlock()
		// stale-but-available: the list already shown stays, nothing is surfaced
		log.Warn("Refresh failed, keeping current list", zap.Error(fetchErr))
		return wrapped
	}
	d.status = domain.StatusError
	d.fromCache = false
	d.fetchErr = errors.ErrAreasUnavailable
	d.mu.Unlock()

	log.Error("Refresh failed and no data is available", zap.Error(fetchErr))
	return wrapped
}

// persist is best effort: a write failure leaves the in-memory list untouched.
func (d *AreaDirectory) persist(ctx context.Context, log *zap.Logger, areas []domain.ServiceArea) {
	data, err := json.Marshal(areas)
	if err != nil {
		metrics.SnapshotWrites.WithLabelValues("error").Inc()
		log.Warn("Failed to encode snapshot", zap.Error(err))
		return
	}

	if err := d.store.Set(ctx, d.cacheKey, data); err != nil {
		metrics.SnapshotWrites.WithLabelValues("error").Inc()
		log.Warn("Failed to persist snapshot", zap.Error(err))
		return
	}
	metrics.SnapshotWrites.WithLabelValues("ok").Inc()
}

func (d *AreaDirectory) setRefreshing(v bool) {
	d.mu.Lock()
	d.refreshing = v
	d.mu.Unlock()
	d.notify()
}

// Areas returns the current list in source order.
func (d *AreaDirectory) Areas() []domain.ServiceArea {
	return slices.Clone(*d.areas.Load())
}

// Search filters the current list. It is evaluated on every call.
func (d *AreaDirectory) Search(filter domain.SearchFilter) []domain.ServiceArea {
	return filter.Apply(*d.areas.Load())
}

// Get looks an area up by id in the current list.
func (d *AreaDirectory) Get(id int64) (domain.ServiceArea, bool) {
	for _, a := range *d.areas.Load() {
		if a.ID == id {
			return a, true
		}
	}
	return domain.ServiceArea{}, false
}

// State returns the current state of the directory.
func (d *AreaDirectory) State() domain.DirectoryState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stateLocked()
}

// Fresh reports whether the list comes from the remote source and no refresh is pending.
func (d *AreaDirectory) Fresh() bool {
	return d.State().Fresh()
}

// Err returns the user-visible failure; it is non-nil only in the error state.
func (d *AreaDirectory) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fetchErr
}

func (d *AreaDirectory) stateLocked() domain.DirectoryState {
	return domain.DirectoryState{
		Status:     d.status,
		FromCache:  d.fromCache,
		Refreshing: d.refreshing,
		Count:      len(*d.areas.Load()),
	}
}

// Subscribe delivers the latest state after every transition. Slow subscribers
// only see the most recent state. The returned func unsubscribes.
func (d *AreaDirectory) Subscribe() (<-chan domain.DirectoryState, func()) {
	ch := make(chan domain.DirectoryState, 1)

	d.mu.Lock()
	id := d.nextSubID
	d.nextSubID++
	d.subs[id] = ch
	d.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			d.mu.Lock()
			delete(d.subs, id)
			d.mu.Unlock()
			close(ch)
		})
	}
}

func (d *AreaDirectory) notify() {
	d.mu.Lock()
	defer d.mu.Unlock()

	state := d.stateLocked()
	for _, ch := range d.subs {
		select {
		case ch <- state:
		default:
			// drop the stale value, keep the newest
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- state:
			default:
			}
		}
	}
}
