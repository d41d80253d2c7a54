package usecase_test

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tripautostrade/area-directory/internal/domain"
	"github.com/tripautostrade/area-directory/internal/pkg/errors"
	"github.com/tripautostrade/area-directory/internal/usecase"
)

const cacheKey = "@service_areas_cache"

func mustJSON(t *testing.T, v interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func waitRefresh(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("refresh did not complete")
		return nil
	}
}

func TestAreaDirectory_CachedSnapshotWithFailingFetch(t *testing.T) {
	ctx := context.Background()
	cached := testAreas(3)

	store := &MockSnapshotStore{}
	store.On("Get", mock.Anything, cacheKey).Return(mustJSON(t, cached), nil).Once()

	gate := make(chan time.Time)
	source := &MockAreaSource{}
	source.On("FetchAll", mock.Anything).WaitUntil(gate).Return(nil, stderrors.New("network unreachable")).Once()

	dir := usecase.NewAreaDirectory(source, store, zap.NewNop(), cacheKey, time.Second)
	done := dir.Start(ctx)

	// cached data is visible before the refresh resolves
	assert.Equal(t, cached, dir.Areas())
	state := dir.State()
	assert.Equal(t, domain.StatusReady, state.Status)
	assert.True(t, state.FromCache)
	assert.False(t, dir.Fresh())

	close(gate)
	err := waitRefresh(t, done)
	assert.Error(t, err, "caller still learns about the failed fetch")

	assert.Equal(t, cached, dir.Areas())
	assert.NoError(t, dir.Err(), "stale data is shown, nothing is surfaced")
	state = dir.State()
	assert.Equal(t, domain.StatusReady, state.Status)
	assert.True(t, state.FromCache)
	assert.False(t, state.Refreshing)

	store.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
	source.AssertExpectations(t)
}

func TestAreaDirectory_NoSnapshotSuccessfulFetch(t *testing.T) {
	ctx := context.Background()
	fetched := testAreas(5)

	store := newMemStore()
	source := &MockAreaSource{}
	source.On("FetchAll", mock.Anything).Return(fetched, nil).Once()

	dir := usecase.NewAreaDirectory(source, store, zap.NewNop(), cacheKey, time.Second)
	require.NoError(t, waitRefresh(t, dir.Start(ctx)))

	state := dir.State()
	assert.Equal(t, domain.StatusReady, state.Status)
	assert.False(t, state.FromCache)
	assert.True(t, dir.Fresh())
	assert.Equal(t, fetched, dir.Areas())
	assert.NoError(t, dir.Err())

	assert.Equal(t, 1, store.Writes())
	persisted, _ := store.Get(ctx, cacheKey)
	var decoded []domain.ServiceArea
	require.NoError(t, json.Unmarshal(persisted, &decoded))
	assert.Equal(t, fetched, decoded)
}

func TestAreaDirectory_NoSnapshotFailingFetch(t *testing.T) {
	ctx := context.Background()

	store := &MockSnapshotStore{}
	store.On("Get", mock.Anything, cacheKey).Return(nil, nil).Once()
	source := &MockAreaSource{}
	source.On("FetchAll", mock.Anything).Return(nil, stderrors.New("502 bad gateway")).Once()

	dir := usecase.NewAreaDirectory(source, store, zap.NewNop(), cacheKey, time.Second)
	dir.Load(ctx)
	assert.Equal(t, domain.StatusLoading, dir.State().Status)

	err := dir.Refresh(ctx)
	assert.Error(t, err)

	assert.Equal(t, domain.StatusError, dir.State().Status)
	assert.Empty(t, dir.Areas())
	assert.True(t, stderrors.Is(dir.Err(), errors.ErrAreasUnavailable))
	store.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
}

func TestAreaDirectory_UnusableSnapshotIsAMiss(t *testing.T) {
	tests := []struct {
		name    string
		payload []byte
		readErr error
	}{
		{"truncated JSON", []byte(`[{"id":1,"name":"Cantagallo"`), nil},
		{"object instead of array", []byte(`{"id":1}`), nil},
		{"null", []byte(`null`), nil},
		{"wrong element types", []byte(`[{"id":"one","name":2}]`), nil},
		{"null element", []byte(`[{"id":1,"name":"Cantagallo","brand":"Autogrill","location":{"latitude":44.0,"longitude":11.1}},null]`), nil},
		{"empty element", []byte(`[null,{}]`), nil},
		{"element without name", []byte(`[{"id":1,"brand":"Autogrill","location":{"latitude":44.0,"longitude":11.1}}]`), nil},
		{"element with coordinates out of range", []byte(`[{"id":1,"name":"Cantagallo","location":{"latitude":144.0,"longitude":11.1}}]`), nil},
		{"read error", nil, stderrors.New("connection refused")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &MockSnapshotStore{}
			store.On("Get", mock.Anything, cacheKey).Return(tt.payload, tt.readErr).Once()

			dir := usecase.NewAreaDirectory(&MockAreaSource{}, store, zap.NewNop(), cacheKey, time.Second)
			dir.Load(context.Background())

			assert.Equal(t, domain.StatusLoading, dir.State().Status)
			assert.Empty(t, dir.Areas())
		})
	}
}

func TestAreaDirectory_EmptySnapshotIsAHit(t *testing.T) {
	store := &MockSnapshotStore{}
	store.On("Get", mock.Anything, cacheKey).Return([]byte(`[]`), nil).Once()
	source := &MockAreaSource{}
	source.On("FetchAll", mock.Anything).Return(nil, stderrors.New("offline")).Once()

	dir := usecase.NewAreaDirectory(source, store, zap.NewNop(), cacheKey, time.Second)
	_ = waitRefresh(t, dir.Start(context.Background()))

	assert.Equal(t, domain.StatusReady, dir.State().Status)
	assert.NoError(t, dir.Err())
}

func TestAreaDirectory_WriteFailureIsSwallowed(t *testing.T) {
	fetched := testAreas(2)

	store := &MockSnapshotStore{}
	store.On("Get", mock.Anything, cacheKey).Return(nil, nil).Once()
	store.On("Set", mock.Anything, cacheKey, mock.Anything).Return(stderrors.New("READONLY")).Once()
	source := &MockAreaSource{}
	source.On("FetchAll", mock.Anything).Return(fetched, nil).Once()

	dir := usecase.NewAreaDirectory(source, store, zap.NewNop(), cacheKey, time.Second)
	err := waitRefresh(t, dir.Start(context.Background()))

	assert.NoError(t, err)
	assert.Equal(t, fetched, dir.Areas())
	assert.Equal(t, domain.StatusReady, dir.State().Status)
	store.AssertExpectations(t)
}

func TestAreaDirectory_ConcurrentRefreshesShareOneWrite(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	source := newGatedSource(testAreas(4))

	dir := usecase.NewAreaDirectory(source, store, zap.NewNop(), cacheKey, 5*time.Second)
	dir.Load(ctx)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = dir.Refresh(ctx)
		}(i)
		if i == 0 {
			<-source.started
		}
	}

	// let the second caller join the in-flight refresh
	time.Sleep(50 * time.Millisecond)
	assert.True(t, dir.State().Refreshing)
	close(source.release)
	wg.Wait()

	assert.NoError(t, errs[0])
	assert.NoError(t, errs[1])
	assert.Equal(t, int32(1), source.calls.Load())
	assert.Equal(t, 1, store.Writes())
	assert.False(t, store.overlapped.Load())

	persisted, _ := store.Get(ctx, cacheKey)
	var decoded []domain.ServiceArea
	require.NoError(t, json.Unmarshal(persisted, &decoded))
	assert.Equal(t, testAreas(4), decoded)
}

func TestAreaDirectory_SequentialRefreshesLastWriteWins(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()

	source := &MockAreaSource{}
	source.On("FetchAll", mock.Anything).Return(testAreas(2), nil).Once()
	source.On("FetchAll", mock.Anything).Return(testAreas(3), nil).Once()

	dir := usecase.NewAreaDirectory(source, store, zap.NewNop(), cacheKey, time.Second)
	require.NoError(t, dir.Refresh(ctx))
	require.NoError(t, dir.Refresh(ctx))

	assert.Equal(t, 2, store.Writes())
	assert.Len(t, dir.Areas(), 3)

	persisted, _ := store.Get(ctx, cacheKey)
	var decoded []domain.ServiceArea
	require.NoError(t, json.Unmarshal(persisted, &decoded))
	assert.Equal(t, testAreas(3), decoded)
}

func TestAreaDirectory_RefreshWinsOverLateSnapshot(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	require.NoError(t, store.Set(ctx, cacheKey, mustJSON(t, testAreas(1))))

	source := &MockAreaSource{}
	source.On("FetchAll", mock.Anything).Return(testAreas(5), nil).Once()

	dir := usecase.NewAreaDirectory(source, store, zap.NewNop(), cacheKey, time.Second)
	require.NoError(t, dir.Refresh(ctx))
	dir.Load(ctx)

	assert.Len(t, dir.Areas(), 5)
	assert.False(t, dir.State().FromCache)
}

func TestAreaDirectory_FirstRefreshReadsSnapshot(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	require.NoError(t, store.Set(ctx, cacheKey, mustJSON(t, testAreas(1))))

	source := &MockAreaSource{}
	source.On("FetchAll", mock.Anything).Return(nil, stderrors.New("503 service unavailable")).Once()

	dir := usecase.NewAreaDirectory(source, store, zap.NewNop(), cacheKey, time.Second)
	assert.Error(t, dir.Refresh(ctx))
	dir.Load(ctx)

	state := dir.State()
	assert.Equal(t, domain.StatusReady, state.Status)
	assert.True(t, state.FromCache)
	assert.Equal(t, testAreas(1), dir.Areas())
	assert.NoError(t, dir.Err())
}

func TestAreaDirectory_ManualRefreshRecoversFromError(t *testing.T) {
	ctx := context.Background()
	source := &MockAreaSource{}
	source.On("FetchAll", mock.Anything).Return(nil, stderrors.New("timeout")).Once()
	source.On("FetchAll", mock.Anything).Return(testAreas(3), nil).Once()

	dir := usecase.NewAreaDirectory(source, newMemStore(), zap.NewNop(), cacheKey, time.Second)
	_ = waitRefresh(t, dir.Start(ctx))
	require.Equal(t, domain.StatusError, dir.State().Status)

	require.NoError(t, dir.Refresh(ctx))
	assert.Equal(t, domain.StatusReady, dir.State().Status)
	assert.NoError(t, dir.Err())
	assert.Len(t, dir.Areas(), 3)
}

func TestAreaDirectory_FailedManualRefreshKeepsFetchedData(t *testing.T) {
	ctx := context.Background()
	source := &MockAreaSource{}
	source.On("FetchAll", mock.Anything).Return(testAreas(3), nil).Once()
	source.On("FetchAll", mock.Anything).Return(nil, stderrors.New("timeout")).Once()

	dir := usecase.NewAreaDirectory(source, newMemStore(), zap.NewNop(), cacheKey, time.Second)
	require.NoError(t, dir.Refresh(ctx))
	assert.Error(t, dir.Refresh(ctx))

	assert.Equal(t, domain.StatusReady, dir.State().Status)
	assert.NoError(t, dir.Err())
	assert.Len(t, dir.Areas(), 3)
}

func TestAreaDirectory_SearchUsesCurrentList(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	require.NoError(t, store.Set(ctx, cacheKey, mustJSON(t, testAreas(1))))

	source := &MockAreaSource{}
	source.On("FetchAll", mock.Anything).Return(testAreas(3), nil).Once()

	dir := usecase.NewAreaDirectory(source, store, zap.NewNop(), cacheKey, time.Second)
	dir.Load(ctx)

	filter := domain.SearchFilter{Query: "villo", Brand: domain.BrandAll}
	assert.Empty(t, dir.Search(filter))

	require.NoError(t, dir.Refresh(ctx))
	got := dir.Search(filter)
	require.Len(t, got, 1)
	assert.Equal(t, "Villoresi Ovest", got[0].Name)

	got = dir.Search(domain.SearchFilter{Brand: "Chef Express"})
	require.Len(t, got, 1)
	assert.Equal(t, "Secchia Ovest", got[0].Name)
}

func TestAreaDirectory_AreasReturnsACopy(t *testing.T) {
	source := &MockAreaSource{}
	source.On("FetchAll", mock.Anything).Return(testAreas(2), nil).Once()

	dir := usecase.NewAreaDirectory(source, newMemStore(), zap.NewNop(), cacheKey, time.Second)
	require.NoError(t, dir.Refresh(context.Background()))

	areas := dir.Areas()
	areas[0].Name = "changed"
	assert.Equal(t, "Cantagallo", dir.Areas()[0].Name)

	a, ok := dir.Get(2)
	require.True(t, ok)
	assert.Equal(t, "Secchia Ovest", a.Name)
	_, ok = dir.Get(42)
	assert.False(t, ok)
}

func TestAreaDirectory_Subscribe(t *testing.T) {
	source := &MockAreaSource{}
	source.On("FetchAll", mock.Anything).Return(testAreas(3), nil).Once()

	dir := usecase.NewAreaDirectory(source, newMemStore(), zap.NewNop(), cacheKey, time.Second)
	updates, unsubscribe := dir.Subscribe()
	defer unsubscribe()

	require.NoError(t, waitRefresh(t, dir.Start(context.Background())))

	// the channel holds only the newest state
	select {
	case state := <-updates:
		assert.Equal(t, domain.StatusReady, state.Status)
		assert.Equal(t, 3, state.Count)
		assert.False(t, state.Refreshing)
	case <-time.After(time.Second):
		t.Fatal("no state update received")
	}

	unsubscribe()
	_, open := <-updates
	assert.False(t, open)
}

func TestAreaDirectory_RefreshTimeout(t *testing.T) {
	source := newGatedSource(testAreas(1))
	dir := usecase.NewAreaDirectory(source, newMemStore(), zap.NewNop(), cacheKey, 20*time.Millisecond)

	err := dir.Refresh(context.Background())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, domain.StatusError, dir.State().Status)
}
