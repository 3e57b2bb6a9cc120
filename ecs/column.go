package ecs

import (
	"iter"
	"reflect"
)

// ComponentRegistry knows how to build a column for every component type
// a Storage may hold. Each Storage has its own registry.
type ComponentRegistry struct {
	factories map[reflect.Type]func() column
}

// NewComponentRegistry creates an empty registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() column),
	}
}

// RegisterComponent makes T usable as a component in storages built on r.
func RegisterComponent[T any](r *ComponentRegistry) {
	r.factories[reflect.TypeFor[T]()] = func() column {
		return &blockColumn[T]{}
	}
}

func (r *ComponentRegistry) newColumn(t reflect.Type) column {
	factory, ok := r.factories[t]
	if !ok {
		return nil
	}
	return factory()
}

// column holds every value of one component type in one archetype.
type column interface {
	append(item any)
	get(row int) any
	len() int
}

const blockSize = 64

// blockColumn stores values in fixed-size blocks that never move, so a
// pointer returned by get stays valid for the life of the column.
type blockColumn[T any] struct {
	blocks []*[blockSize]T
	rows   int
}

func (c *blockColumn[T]) append(item any) {
	var value T
	switch v := item.(type) {
	case *T:
		value = *v
	case T:
		value = v
	default:
		panic("component " + reflect.TypeOf(item).String() + " does not belong in column of " + reflect.TypeFor[T]().String())
	}

	block, slot := c.rows/blockSize, c.rows%blockSize
	if block == len(c.blocks) {
		c.blocks = append(c.blocks, new([blockSize]T))
	}
	c.blocks[block][slot] = value
	c.rows++
}

// get returns a *T, or nil when row is out of range.
func (c *blockColumn[T]) get(row int) any {
	if row < 0 || row >= c.rows {
		return nil
	}
	return &c.blocks[row/blockSize][row%blockSize]
}

func (c *blockColumn[T]) len() int {
	return c.rows
}

// rows yields every row index of a column in order.
func rows(c column) iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := range c.len() {
			if !yield(i) {
				return
			}
		}
	}
}
