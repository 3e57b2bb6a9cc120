package ecs

import "reflect"

// Singleton gives typed access to a value that belongs to no entity, such
// as the one sun of a system.
type Singleton[T any] struct {
	storage *Storage
	typ     reflect.Type
}

// NewSingleton creates an accessor for T in storage. When initial is given
// the singleton is set to it; otherwise it stays absent until Set.
func NewSingleton[T any](storage *Storage, initial ...T) *Singleton[T] {
	s := &Singleton[T]{
		storage: storage,
		typ:     reflect.TypeFor[T](),
	}
	if len(initial) > 0 {
		s.Set(initial[0])
	}
	return s
}

// Set stores a copy of value, replacing the previous one.
func (s *Singleton[T]) Set(value T) {
	s.storage.AddSingleton(value)
}

// Get returns the stored value, or nil when it has not been set.
func (s *Singleton[T]) Get() *T {
	v, _ := s.storage.singleton(s.typ).(*T)
	return v
}

// Exists reports whether the singleton has been set.
func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}

// Clear removes the value.
func (s *Singleton[T]) Clear() {
	s.storage.RemoveSingleton(s.typ)
}
