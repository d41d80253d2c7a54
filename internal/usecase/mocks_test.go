package usecase_test

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/stretchr/testify/mock"

	"github.com/tripautostrade/area-directory/internal/domain"
)

// MockAreaSource is a mock of AreaSource
type MockAreaSource struct {
	mock.Mock
}

func (m *MockAreaSource) FetchAll(ctx context.Context) ([]domain.ServiceArea, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ServiceArea), args.Error(1)
}

// MockSnapshotStore is a mock of SnapshotStore
type MockSnapshotStore struct {
	mock.Mock
}

func (m *MockSnapshotStore) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockSnapshotStore) Set(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

// MockAreaWriter is a mock of AreaWriter
type MockAreaWriter struct {
	mock.Mock
}

func (m *MockAreaWriter) InsertBatch(ctx context.Context, rows []domain.ServiceAreaRow) (int, error) {
	args := m.Called(ctx, rows)
	return args.Int(0), args.Error(1)
}

// memStore is an in-memory SnapshotStore that detects overlapping writes.
type memStore struct {
	mu         sync.Mutex
	data       map[string][]byte
	writes     int
	inFlight   atomic.Int32
	overlapped atomic.Bool
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string][]byte)}
}

func (s *memStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[key], nil
}

func (s *memStore) Set(_ context.Context, key string, value []byte) error {
	if s.inFlight.Add(1) > 1 {
		s.overlapped.Store(true)
	}
	defer s.inFlight.Add(-1)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), value...)
	s.writes++
	return nil
}

func (s *memStore) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

// gatedSource blocks every fetch until release is closed.
type gatedSource struct {
	areas   []domain.ServiceArea
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func newGatedSource(areas []domain.ServiceArea) *gatedSource {
	return &gatedSource{
		areas:   areas,
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (s *gatedSource) FetchAll(ctx context.Context) ([]domain.ServiceArea, error) {
	s.calls.Add(1)
	s.once.Do(func() { close(s.started) })
	select {
	case <-s.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return s.areas, nil
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func testAreas(n int) []domain.ServiceArea {
	base := []domain.ServiceArea{
		{ID: 1, Name: "Cantagallo", Brand: domain.BrandAutogrill, Location: domain.GeoPoint{Latitude: 44.023, Longitude: 11.124}, Highway: strPtr("A1"), Direction: strPtr("Milano → Bologna"), Km: floatPtr(260.5)},
		{ID: 2, Name: "Secchia Ovest", Brand: domain.BrandChefExpress, Location: domain.GeoPoint{Latitude: 44.679, Longitude: 10.639}, Highway: strPtr("A1")},
		{ID: 3, Name: "Villoresi Ovest", Brand: domain.BrandAutogrill, Location: domain.GeoPoint{Latitude: 45.570, Longitude: 9.025}},
		{ID: 4, Name: "Arda Est", Brand: domain.BrandSarni, Location: domain.GeoPoint{Latitude: 44.990, Longitude: 9.890}},
		{ID: 5, Name: "Badia al Pino", Brand: domain.Brand("MyChef"), Location: domain.GeoPoint{Latitude: 43.404, Longitude: 11.748}},
	}
	return base[:n]
}
