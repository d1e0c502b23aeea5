package tasks

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/dmitrymomot/crudkit"
	"github.com/dmitrymomot/crudkit/processor"
)

// Store persists tasks. All implementations return the full collection from
// List ordered by creation time; filtering and pagination happen in the
// processors.
type Store interface {
	Insert(ctx context.Context, t Task) error
	Get(ctx context.Context, id string) (Task, bool, error)
	List(ctx context.Context) ([]Task, error)
	Update(ctx context.Context, t Task) error
	Delete(ctx context.Context, id string) error
}

// StoreSource adapts a Store to the lookup contract. Only the "id" field is
// supported; anything else is a wiring mistake.
func StoreSource(store Store) processor.Source[Task] {
	return processor.SourceFunc[Task](func(ctx context.Context, field, value string) (Task, bool, error) {
		if field != "id" {
			return Task{}, false, fmt.Errorf("tasks: unsupported lookup field %q", field)
		}
		return store.Get(ctx, value)
	})
}

// MemoryStore keeps tasks in a map. It is the default store for tests and
// local development.
type MemoryStore struct {
	mu    sync.RWMutex
	tasks map[string]Task
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tasks: make(map[string]Task)}
}

func (s *MemoryStore) Insert(_ context.Context, t Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.tasks[t.ID]; exists {
		return fmt.Errorf("%w: task %s already exists", crudkit.ErrConflict, t.ID)
	}
	s.tasks[t.ID] = t
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (Task, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tasks[id]
	return t, ok, nil
}

func (s *MemoryStore) List(_ context.Context) ([]Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) Update(_ context.Context, t Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.tasks[t.ID]; !exists {
		return fmt.Errorf("%w: task %s", crudkit.ErrNotFound, t.ID)
	}
	s.tasks[t.ID] = t
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.tasks[id]; !exists {
		return fmt.Errorf("%w: task %s", crudkit.ErrNotFound, id)
	}
	delete(s.tasks, id)
	return nil
}

var _ Store = (*MemoryStore)(nil)
