package registry

import (
	"iter"
	"sync"
)

// A Factory creates a new instance of a registered type.
type Factory[T any] func() T

// Registry maps string keys to factories for a polymorphic type T. Keys are
// iterated in the order they were first registered.
type Registry[T any] struct {
	mu        sync.RWMutex
	keys      []string
	factories map[string]Factory[T]
	closed    bool
}

// Create a new empty registry.
func New[T any]() *Registry[T] {
	return &Registry[T]{
		factories: make(map[string]Factory[T]),
	}
}

// Register a factory under key. Registering an existing key replaces the
// previous factory but keeps the key's original position in the iteration
// order. Calls after Shutdown are ignored.
func (r *Registry[T]) Register(key string, factory Factory[T]) {
	if factory == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}

	if _, exists := r.factories[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.factories[key] = factory
}

// Create a new instance for key. The second return value is false if no
// factory is registered under key.
func (r *Registry[T]) Create(key string) (T, bool) {
	r.mu.RLock()
	factory, ok := r.factories[key]
	r.mu.RUnlock()

	if !ok {
		var zero T
		return zero, false
	}
	return factory(), true
}

// Keys returns a sequence over the registered keys in registration order.
// Every iteration works on a snapshot taken when the iteration starts so the
// sequence can be consumed more than once.
func (r *Registry[T]) Keys() iter.Seq[string] {
	return func(yield func(string) bool) {
		r.mu.RLock()
		snapshot := make([]string, len(r.keys))
		copy(snapshot, r.keys)
		r.mu.RUnlock()

		for _, key := range snapshot {
			if !yield(key) {
				return
			}
		}
	}
}

// Len returns the number of registered keys.
func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.keys)
}

// Shutdown releases the factory table. Instances already created by the
// registry are not affected. It is safe to call Shutdown more than once.
func (r *Registry[T]) Shutdown() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.closed = true
	r.keys = nil
	r.factories = make(map[string]Factory[T])
}
