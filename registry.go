package obscured

import (
	"runtime"
	"sync"
	"sync/atomic"
	"weak"
)

// registry holds every payload. Keys are weak pointers to containers, so an entry never keeps its container alive, and the cleanup attached to the container removes the entry once the container is collected.
var registry store

type store struct {
	entries sync.Map

	created   atomic.Uint64
	reclaimed atomic.Uint64
	disposed  atomic.Uint64
	rejected  atomic.Uint64
}

// Stats is a snapshot of registry counters.
type Stats struct {
	// Created is the number of containers ever registered.
	Created uint64
	// Reclaimed is the number of entries removed because their container was garbage collected.
	Reclaimed uint64
	// Disposed is the number of entries removed by Dispose.
	Disposed uint64
	// Rejected is the number of Make calls that failed with ErrInvalidPayloadKind.
	Rejected uint64
	// Live is the number of entries currently held.
	Live uint64
}

// ReadStats returns the current registry counters. Counters are read independently, so a snapshot taken while other goroutines create containers may be slightly skewed.
func ReadStats() Stats {
	s := Stats{
		Created:   registry.created.Load(),
		Reclaimed: registry.reclaimed.Load(),
		Disposed:  registry.disposed.Load(),
		Rejected:  registry.rejected.Load(),
	}
	if gone := s.Reclaimed + s.Disposed; gone < s.Created {
		s.Live = s.Created - gone
	}
	return s
}

// register stores v under the identity of a new container. The container is returned only after the entry is committed.
func register[T any](v T) *Obscured[T] {
	c := &Obscured[T]{}
	key := weak.Make(c)
	registry.entries.Store(key, any(v))
	runtime.AddCleanup(c, reclaim[T], key)
	registry.created.Add(1)
	return c
}

func reclaim[T any](key weak.Pointer[Obscured[T]]) {
	if _, ok := registry.entries.LoadAndDelete(key); ok {
		registry.reclaimed.Add(1)
	}
}

func (x *store) lookup(key any) (any, bool) {
	return x.entries.Load(key)
}

func (x *store) dispose(key any) {
	if _, ok := x.entries.LoadAndDelete(key); ok {
		x.disposed.Add(1)
	}
}
