// Package ecs is a small entity-component store. Entities are rows of
// typed components grouped into archetypes by their exact component set,
// alongside singletons that belong to no entity.
package ecs

import (
	"iter"
	"reflect"
	"sort"
	"strings"
)

// Storage holds archetypes and singletons.
type Storage struct {
	registry   *ComponentRegistry
	archetypes []*Archetype
	bySet      map[string]*Archetype
	singletons map[reflect.Type]any
}

// NewStorage creates an empty storage for components registered in registry.
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		registry:   registry,
		bySet:      make(map[string]*Archetype),
		singletons: make(map[reflect.Type]any),
	}
}

// Spawn creates an entity from the given components, passed by value or by
// pointer. The storage keeps its own copy of each. Archetype ids are
// assigned from 1 in the order component sets are first seen.
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	types := componentTypes(components)
	key := setKey(types)

	archetype, ok := s.bySet[key]
	if !ok {
		archetype = newArchetype(uint32(len(s.archetypes)+1), types, s.registry)
		s.archetypes = append(s.archetypes, archetype)
		s.bySet[key] = archetype
	}

	return NewEntityId(archetype.id, archetype.spawn(components))
}

// Archetype returns the archetype with the given id, or nil.
func (s *Storage) Archetype(id uint32) *Archetype {
	if id == 0 || int(id) > len(s.archetypes) {
		return nil
	}
	return s.archetypes[id-1]
}

// Archetypes yields archetypes in creation order.
func (s *Storage) Archetypes() iter.Seq[*Archetype] {
	return func(yield func(*Archetype) bool) {
		for _, a := range s.archetypes {
			if !yield(a) {
				return
			}
		}
	}
}

// GetComponent returns a pointer to the component of type compType on the
// entity, or nil.
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	archetype := s.Archetype(id.ArchetypeId())
	if archetype == nil {
		return nil
	}
	return archetype.component(id.Index(), compType)
}

// HasComponent reports whether the entity's archetype stores compType.
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	archetype := s.Archetype(id.ArchetypeId())
	return archetype != nil && archetype.HasComponent(compType)
}

// AddSingleton stores a copy of value, replacing any singleton of the
// same type.
func (s *Storage) AddSingleton(value any) {
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	ptr := reflect.New(v.Type())
	ptr.Elem().Set(v)
	s.singletons[v.Type()] = ptr.Interface()
}

// RemoveSingleton drops the singleton of type t, if any.
func (s *Storage) RemoveSingleton(t reflect.Type) {
	delete(s.singletons, t)
}

func (s *Storage) singleton(t reflect.Type) any {
	return s.singletons[t]
}

// ComponentReader is anything that can look up a component by entity.
type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the T on the entity, or nil.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return comp
}

func valueType(component any) reflect.Type {
	t := reflect.TypeOf(component)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// componentTypes returns the sorted value types of components. Each type
// may appear once.
func componentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		t := valueType(comp)
		switch t.Kind() {
		case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func:
			panic("components cannot be pointers, maps, channels, or functions")
		}
		types = append(types, t)
	}

	sort.Slice(types, func(i, j int) bool {
		return types[i].String() < types[j].String()
	})
	for i := 1; i < len(types); i++ {
		if types[i] == types[i-1] {
			panic("component " + types[i].String() + " given twice")
		}
	}
	return types
}

// setKey names a sorted component set. Package paths keep same-named types
// from different packages apart.
func setKey(types []reflect.Type) string {
	var b strings.Builder
	for _, t := range types {
		b.WriteString(t.PkgPath())
		b.WriteByte('.')
		b.WriteString(t.String())
		b.WriteByte(';')
	}
	return b.String()
}
