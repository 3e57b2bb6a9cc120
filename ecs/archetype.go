package ecs

import (
	"iter"
	"reflect"
	"slices"
)

// Archetype holds every entity with one exact set of component types.
// Rows are appended and never freed, so row order is spawn order.
type Archetype struct {
	id      uint32
	types   []reflect.Type
	columns []column
}

func newArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:      id,
		types:   types,
		columns: make([]column, len(types)),
	}
	for i, typ := range types {
		c := registry.newColumn(typ)
		if c == nil {
			panic("component type " + typ.String() + " not registered")
		}
		a.columns[i] = c
	}
	return a
}

func (a *Archetype) spawn(components []any) uint32 {
	row := uint32(a.Len())
	for _, comp := range components {
		a.columns[a.columnOf(valueType(comp))].append(comp)
	}
	return row
}

func (a *Archetype) columnOf(t reflect.Type) int {
	return slices.Index(a.types, t)
}

func (a *Archetype) component(row uint32, t reflect.Type) any {
	idx := a.columnOf(t)
	if idx < 0 {
		return nil
	}
	return a.columns[idx].get(int(row))
}

// ID returns the archetype's id, which is also the upper half of every
// EntityId it holds.
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the component types, sorted by name.
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// HasComponent reports whether the archetype stores t.
func (a *Archetype) HasComponent(t reflect.Type) bool {
	return a.columnOf(t) >= 0
}

// Len returns the number of entities.
func (a *Archetype) Len() int {
	if len(a.columns) == 0 {
		return 0
	}
	return a.columns[0].len()
}

// Iter yields every entity in spawn order.
func (a *Archetype) Iter() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		if len(a.columns) == 0 {
			return
		}
		for row := range rows(a.columns[0]) {
			if !yield(NewEntityId(a.id, uint32(row))) {
				return
			}
		}
	}
}
