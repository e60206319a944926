// Package flow keeps the live page flows of the service, one per browser
// tab, keyed by a ULID handed back to the client.
package flow

import (
	"log/slog"
	"sync"
	"time"

	"github.com/go-authflow/internal/domain"
	"github.com/go-authflow/internal/pkg/id"
)

// Disposable is anything a registry can tear down.
type Disposable interface {
	Dispose()
}

type entry[T Disposable] struct {
	value    T
	lastSeen time.Time
}

// Registry maps flow IDs to live flows and disposes the ones left idle
// longer than ttl. At most maxLive flows are live at once.
type Registry[T Disposable] struct {
	name    string
	ttl     time.Duration
	maxLive int
	now     func() time.Time

	mu      sync.Mutex
	entries map[string]*entry[T]

	stop chan struct{}
	once sync.Once
}

// NewRegistry starts a registry. A non-positive ttl disables eviction and a
// non-positive maxLive disables the cap.
func NewRegistry[T Disposable](name string, ttl time.Duration, maxLive int) *Registry[T] {
	r := &Registry[T]{
		name:    name,
		ttl:     ttl,
		maxLive: maxLive,
		now:     time.Now,
		entries: make(map[string]*entry[T]),
		stop:    make(chan struct{}),
	}
	if ttl > 0 {
		go r.cleanup(ttl / 2)
	}
	return r
}

// Add stores v under a fresh ID and returns the ID. When the registry is
// full, v is disposed and domain.ErrCapacity returned.
func (r *Registry[T]) Add(v T) (string, error) {
	key := id.New()
	r.mu.Lock()
	if r.maxLive > 0 && len(r.entries) >= r.maxLive {
		r.mu.Unlock()
		v.Dispose()
		slog.Warn("flow registry full", "registry", r.name, "max_live", r.maxLive)
		return "", domain.ErrCapacity
	}
	r.entries[key] = &entry[T]{value: v, lastSeen: r.now()}
	r.mu.Unlock()
	return key, nil
}

// Get returns the flow for key and marks it as seen.
func (r *Registry[T]) Get(key string) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[key]
	if !ok {
		var zero T
		return zero, domain.ErrNotFound
	}
	e.lastSeen = r.now()
	return e.value, nil
}

// Remove disposes and forgets the flow for key.
func (r *Registry[T]) Remove(key string) error {
	r.mu.Lock()
	e, ok := r.entries[key]
	delete(r.entries, key)
	r.mu.Unlock()
	if !ok {
		return domain.ErrNotFound
	}
	e.value.Dispose()
	return nil
}

// Len reports how many flows are live.
func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Sweep disposes every flow idle for longer than ttl and returns how many
// were dropped.
func (r *Registry[T]) Sweep() int {
	cutoff := r.now().Add(-r.ttl)
	var stale []T
	r.mu.Lock()
	for key, e := range r.entries {
		if e.lastSeen.Before(cutoff) {
			stale = append(stale, e.value)
			delete(r.entries, key)
		}
	}
	r.mu.Unlock()
	for _, v := range stale {
		v.Dispose()
	}
	if len(stale) > 0 {
		slog.Debug("evicted idle flows", "registry", r.name, "count", len(stale))
	}
	return len(stale)
}

func (r *Registry[T]) cleanup(every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-r.stop:
			return
		case <-t.C:
			r.Sweep()
		}
	}
}

// Close stops eviction and disposes every remaining flow.
func (r *Registry[T]) Close() {
	r.once.Do(func() {
		close(r.stop)
		r.mu.Lock()
		all := r.entries
		r.entries = make(map[string]*entry[T])
		r.mu.Unlock()
		for _, e := range all {
			e.value.Dispose()
		}
	})
}
