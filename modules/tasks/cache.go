package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DefaultCacheTTL bounds how stale a cached task may get.
const DefaultCacheTTL = 5 * time.Minute

// CachedStore is a read-through cache over another Store. Single-object
// reads are served from Redis when possible; every write invalidates the
// cached entry. List always goes to the underlying store since collections
// are filtered and paginated downstream.
type CachedStore struct {
	next   Store
	client *redis.Client
	ttl    time.Duration
}

// NewCachedStore wraps next with a Redis cache. A non-positive ttl falls
// back to DefaultCacheTTL.
func NewCachedStore(next Store, client *redis.Client, ttl time.Duration) *CachedStore {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedStore{next: next, client: client, ttl: ttl}
}

func cacheKey(id string) string {
	return "tasks:" + id
}

func (s *CachedStore) Insert(ctx context.Context, t Task) error {
	if err := s.next.Insert(ctx, t); err != nil {
		return err
	}
	s.invalidate(ctx, t.ID)
	return nil
}

func (s *CachedStore) Get(ctx context.Context, id string) (Task, bool, error) {
	raw, err := s.client.Get(ctx, cacheKey(id)).Bytes()
	if err == nil {
		var t Task
		if err := json.Unmarshal(raw, &t); err == nil {
			return t, true, nil
		}
		// Corrupt entry: drop it and fall through to the store.
		s.invalidate(ctx, id)
	} else if !errors.Is(err, redis.Nil) {
		return Task{}, false, fmt.Errorf("tasks: cache get: %w", err)
	}

	t, found, err := s.next.Get(ctx, id)
	if err != nil || !found {
		return t, found, err
	}

	if raw, err := json.Marshal(t); err == nil {
		_ = s.client.Set(ctx, cacheKey(id), raw, s.ttl).Err()
	}
	return t, true, nil
}

func (s *CachedStore) List(ctx context.Context) ([]Task, error) {
	return s.next.List(ctx)
}

func (s *CachedStore) Update(ctx context.Context, t Task) error {
	if err := s.next.Update(ctx, t); err != nil {
		return err
	}
	s.invalidate(ctx, t.ID)
	return nil
}

func (s *CachedStore) Delete(ctx context.Context, id string) error {
	if err := s.next.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

// invalidate is best effort: a failed DEL only shortens cache coherence to
// the TTL window.
func (s *CachedStore) invalidate(ctx context.Context, id string) {
	_ = s.client.Del(ctx, cacheKey(id)).Err()
}

var _ Store = (*CachedStore)(nil)
