// Package pool is a typed wrapper around sync.Pool.
package pool

import "sync"

type Resetter interface {
	Reset()
}

// Pool hands out values of T, resetting them on Put when they implement Resetter.
type Pool[T any] struct {
	p *sync.Pool
}

func New[T any](fn func() T) Pool[T] {
	return Pool[T]{
		p: &sync.Pool{New: func() any { return fn() }},
	}
}

func (p Pool[T]) Get() T {
	return p.p.Get().(T)
}

func (p Pool[T]) Put(v T) {
	if r, ok := any(v).(Resetter); ok {
		r.Reset()
	}
	p.p.Put(v)
}
