package geo

import (
	"context"
	"strings"
	"sync"

	"github.com/cairnhealth/altitude-risk-service/internal/domain"
	"github.com/cairnhealth/altitude-risk-service/internal/observability"
)

// Store is a cache backend for resolved places. Implementations must be safe
// for concurrent use.
type Store interface {
	Get(ctx context.Context, key string) (domain.PlaceElevation, bool, error)
	Put(ctx context.Context, key string, value domain.PlaceElevation) error
}

// CachedResolver wraps an ElevationResolver with a cache. Lookup failures on
// the cache side degrade to calling the inner resolver; they never fail the
// resolution.
type CachedResolver struct {
	inner   domain.ElevationResolver
	store   Store
	metrics *observability.Metrics
}

// NewCachedResolver creates a cache decorator around a resolver.
func NewCachedResolver(inner domain.ElevationResolver, store Store, metrics *observability.Metrics) *CachedResolver {
	return &CachedResolver{inner: inner, store: store, metrics: metrics}
}

func (c *CachedResolver) ResolvePlace(ctx context.Context, name string) (domain.PlaceElevation, error) {
	key := "place:" + strings.ToLower(strings.TrimSpace(name))

	if result, ok, err := c.store.Get(ctx, key); err == nil && ok {
		c.metrics.ResolveCache.WithLabelValues("hit").Inc()
		return result, nil
	}
	c.metrics.ResolveCache.WithLabelValues("miss").Inc()

	result, err := c.inner.ResolvePlace(ctx, name)
	if err != nil {
		return result, err
	}

	// Only successful resolutions are cached so a transient "not found" or
	// upstream failure can be retried.
	_ = c.store.Put(ctx, key, result)
	return result, nil
}

// lruStore is a thread-safe in-process LRU cache for resolved places.
type lruStore struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value domain.PlaceElevation
	prev  *entry
	next  *entry
}

// NewLRUStore creates an in-process Store holding at most maxEntries places.
func NewLRUStore(maxEntries int) Store {
	if maxEntries <= 0 {
		maxEntries = 1
	}
	return &lruStore{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (s *lruStore) Get(_ context.Context, key string) (domain.PlaceElevation, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return domain.PlaceElevation{}, false, nil
	}
	s.moveToFront(e)
	return e.value, true, nil
}

func (s *lruStore) Put(_ context.Context, key string, value domain.PlaceElevation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[key]; ok {
		e.value = value
		s.moveToFront(e)
		return nil
	}

	e := &entry{key: key, value: value}
	s.entries[key] = e
	s.addToFront(e)

	if len(s.entries) > s.maxEntries {
		s.evictTail()
	}
	return nil
}

func (s *lruStore) moveToFront(e *entry) {
	if e == s.head {
		return
	}
	s.remove(e)
	s.addToFront(e)
}

func (s *lruStore) addToFront(e *entry) {
	e.next = s.head
	e.prev = nil
	if s.head != nil {
		s.head.prev = e
	}
	s.head = e
	if s.tail == nil {
		s.tail = e
	}
}

func (s *lruStore) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		s.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		s.tail = e.prev
	}
}

func (s *lruStore) evictTail() {
	if s.tail == nil {
		return
	}
	delete(s.entries, s.tail.key)
	s.remove(s.tail)
}
