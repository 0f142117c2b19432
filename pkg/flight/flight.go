// Package flight coalesces concurrent identical calls and caches their
// results for a bounded time. The analyzer uses it to avoid re-sending a
// chunk prompt that is already in flight or was answered moments ago.
package flight

import (
	"sync"
	"time"
)

type Cache[K comparable, V any] struct {
	mu       sync.Mutex
	finished map[K]entry[V]
	pending  map[K]*job[V]
	ttl      time.Duration
}

type entry[V any] struct {
	val      V
	deadline time.Time // zero means the entry never expires
}

type job[V any] struct {
	val  V
	err  error
	done chan struct{}
}

// NewCache builds an empty cache. ttl <= 0 keeps results forever.
func NewCache[K comparable, V any](ttl time.Duration) *Cache[K, V] {
	return &Cache[K, V]{
		finished: make(map[K]entry[V]),
		pending:  make(map[K]*job[V]),
		ttl:      ttl,
	}
}

// Do returns the cached result for k, joins an in-flight computation of k, or
// runs fn itself and stores the outcome. Failed work is not cached, so a later
// call retries.
func (c *Cache[K, V]) Do(k K, fn func() (V, error)) (V, error) {
	c.mu.Lock()
	if e, ok := c.finished[k]; ok {
		if e.deadline.IsZero() || time.Now().Before(e.deadline) {
			c.mu.Unlock()
			return e.val, nil
		}
		delete(c.finished, k)
	}
	if p, ok := c.pending[k]; ok {
		c.mu.Unlock()
		<-p.done
		return p.val, p.err
	}
	j := &job[V]{done: make(chan struct{})}
	c.pending[k] = j
	c.mu.Unlock()

	j.val, j.err = fn()

	c.mu.Lock()
	if j.err == nil {
		e := entry[V]{val: j.val}
		if c.ttl > 0 {
			e.deadline = time.Now().Add(c.ttl)
		}
		c.finished[k] = e
	}
	delete(c.pending, k)
	close(j.done)
	c.mu.Unlock()

	return j.val, j.err
}
