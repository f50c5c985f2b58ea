package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fszuberski/scoreboard/internal/domain/model"
	"github.com/fszuberski/scoreboard/pkg/metrics"
)

const backendMemory = "memory"

// MemoryStore is an in-memory Store backed by an identity-keyed map.
// Nothing survives a restart. A single RWMutex guards the map for the
// duration of each operation.
type MemoryStore struct {
	mu      sync.RWMutex
	matches map[uuid.UUID]model.Match

	capacity              int
	metricsUpdateInterval time.Duration

	wg       sync.WaitGroup
	stopOnce sync.Once
	stopChan chan struct{}
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{}
	for _, opt := range opts {
		opt(s)
	}
	s.matches = make(map[uuid.UUID]model.Match, s.capacity)
	s.stopChan = make(chan struct{})
	return s
}

// StartMetricsUpdater publishes the stored match count on a ticker until
// ctx is done or the store is closed.
func (s *MemoryStore) StartMetricsUpdater(ctx context.Context) {
	if s.metricsUpdateInterval <= 0 {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.metricsUpdateInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopChan:
				return
			case <-ticker.C:
				metrics.UpdateStoredMatches(backendMemory, s.Len())
			}
		}
	}()
}

// Close stops the background updater.
func (s *MemoryStore) Close() error {
	s.stopOnce.Do(func() { close(s.stopChan) })
	s.wg.Wait()
	return nil
}

// Len returns the number of stored matches.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.matches)
}

// Get implements Store.Get.
func (s *MemoryStore) Get(_ context.Context, id uuid.UUID) (model.Match, bool, error) {
	defer observe(backendMemory, "get", time.Now())

	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.matches[id]
	return m, ok, nil
}

// List implements Store.List.
func (s *MemoryStore) List(_ context.Context) ([]model.Match, error) {
	defer observe(backendMemory, "list", time.Now())

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Match, 0, len(s.matches))
	for _, m := range s.matches {
		out = append(out, m)
	}
	return out, nil
}

// Save implements Store.Save.
func (s *MemoryStore) Save(_ context.Context, m model.Match) error {
	defer observe(backendMemory, "save", time.Now())

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.matches[m.ID()]; ok {
		metrics.RecordStoreError(backendMemory, "save")
		return alreadyExists(m.ID())
	}
	s.matches[m.ID()] = m
	return nil
}

// Update implements Store.Update.
func (s *MemoryStore) Update(_ context.Context, id uuid.UUID, m model.Match) error {
	defer observe(backendMemory, "update", time.Now())

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.matches[id]; !ok {
		metrics.RecordStoreError(backendMemory, "update")
		return notFound(id)
	}
	s.matches[id] = m
	return nil
}

// Remove implements Store.Remove.
func (s *MemoryStore) Remove(_ context.Context, id uuid.UUID) error {
	defer observe(backendMemory, "remove", time.Now())

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.matches, id)
	return nil
}

func observe(backend, op string, start time.Time) {
	metrics.RecordStoreLatency(backend, op, float64(time.Since(start).Microseconds())/1000)
}
