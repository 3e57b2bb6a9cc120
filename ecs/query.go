package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

// iface mirrors the memory layout of an interface value.
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

// Query iterates every entity that has all the components named by T.
// T must be a struct whose fields, embedded or named, are pointers to
// component types:
//
//	type movers struct {
//		*Position
//		*Velocity
//	}
//
// Matching archetypes are cached and refreshed when new ones appear.
type Query[T any] struct {
	storage *Storage
	types   []reflect.Type
	offsets []uintptr

	matched []*Archetype
	columns [][]int
	seen    int
}

// NewQuery builds a query over storage. It panics when T is not a struct
// of pointer fields.
func NewQuery[T any](storage *Storage) *Query[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct || structType.NumField() == 0 {
		panic("Query type parameter must be a struct with at least one field")
	}

	q := &Query[T]{storage: storage}
	for i := range structType.NumField() {
		field := structType.Field(i)
		if field.Type.Kind() != reflect.Pointer {
			panic("Query struct fields must be pointer types")
		}
		q.types = append(q.types, field.Type.Elem())
		q.offsets = append(q.offsets, field.Offset)
	}
	return q
}

func (q *Query[T]) refresh() {
	for _, archetype := range q.storage.archetypes[q.seen:] {
		columns := make([]int, len(q.types))
		ok := true
		for i, t := range q.types {
			columns[i] = archetype.columnOf(t)
			if columns[i] < 0 {
				ok = false
				break
			}
		}
		if ok {
			q.matched = append(q.matched, archetype)
			q.columns = append(q.columns, columns)
		}
	}
	q.seen = len(q.storage.archetypes)
}

// fill points every field of the struct at dst to the entity's components.
func (q *Query[T]) fill(dst unsafe.Pointer, archetype *Archetype, columns []int, row int) bool {
	for i, col := range columns {
		component := archetype.columns[col].get(row)
		if component == nil {
			return false
		}
		field := unsafe.Add(dst, q.offsets[i])
		*(*unsafe.Pointer)(field) = (*iface)(unsafe.Pointer(&component)).data
	}
	return true
}

// Iter yields matching entities, archetype by archetype in creation order
// and in spawn order within each archetype.
func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	q.refresh()
	return func(yield func(EntityId, T) bool) {
		for i, archetype := range q.matched {
			var result T
			for row := range rows(archetype.columns[q.columns[i][0]]) {
				if !q.fill(unsafe.Pointer(&result), archetype, q.columns[i], row) {
					continue
				}
				if !yield(NewEntityId(archetype.id, uint32(row)), result) {
					return
				}
			}
		}
	}
}

// Values yields only the component structs.
func (q *Query[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range q.Iter() {
			if !yield(v) {
				return
			}
		}
	}
}

// Get returns the components of one entity, or nil when it does not exist
// or lacks one of them.
func (q *Query[T]) Get(id EntityId) *T {
	q.refresh()
	for i, archetype := range q.matched {
		if archetype.id != id.ArchetypeId() {
			continue
		}
		var result T
		if !q.fill(unsafe.Pointer(&result), archetype, q.columns[i], int(id.Index())) {
			return nil
		}
		return &result
	}
	return nil
}

// Count returns the number of matching entities.
func (q *Query[T]) Count() int {
	q.refresh()
	n := 0
	for _, archetype := range q.matched {
		n += archetype.Len()
	}
	return n
}
