package ecs_test

import (
	"reflect"
	"testing"

	"github.com/plus3/orrery/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStorage() *ecs.Storage {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Label](registry)
	return ecs.NewStorage(registry)
}

func TestEntityIdEncoding(t *testing.T) {
	id := ecs.NewEntityId(0xDEADBEEF, 0x12345678)
	assert.Equal(t, uint32(0xDEADBEEF), id.ArchetypeId())
	assert.Equal(t, uint32(0x12345678), id.Index())
	assert.Equal(t, "2:5", ecs.NewEntityId(2, 5).String())
}

func TestSpawnGroupsByComponentSet(t *testing.T) {
	storage := newStorage()

	a := storage.Spawn(Position{X: 1}, Velocity{DX: 1})
	b := storage.Spawn(&Velocity{DX: 2}, &Position{X: 2})
	c := storage.Spawn(Position{X: 3})

	assert.Equal(t, uint32(1), a.ArchetypeId())
	assert.Equal(t, a.ArchetypeId(), b.ArchetypeId(), "order and pointer-ness do not matter")
	assert.Equal(t, uint32(2), c.ArchetypeId())
	assert.Equal(t, uint32(0), a.Index())
	assert.Equal(t, uint32(1), b.Index())

	var ids []uint32
	for archetype := range storage.Archetypes() {
		ids = append(ids, archetype.ID())
	}
	assert.Equal(t, []uint32{1, 2}, ids)

	archetype := storage.Archetype(1)
	require.NotNil(t, archetype)
	assert.Equal(t, 2, archetype.Len())
	assert.Equal(t, []reflect.Type{reflect.TypeFor[Position](), reflect.TypeFor[Velocity]()}, archetype.Types())
	assert.Nil(t, storage.Archetype(0))
	assert.Nil(t, storage.Archetype(3))
}

func TestSpawnCopiesComponents(t *testing.T) {
	storage := newStorage()
	pos := &Position{X: 1}
	id := storage.Spawn(pos)

	pos.X = 99
	assert.Equal(t, 1.0, ecs.ReadComponent[Position](storage, id).X)
}

func TestComponentPointersSurviveGrowth(t *testing.T) {
	storage := newStorage()
	first := storage.Spawn(Position{X: 1})
	ptr := ecs.ReadComponent[Position](storage, first)

	for i := range 500 {
		storage.Spawn(Position{X: float64(i)})
	}

	ptr.X = 42
	assert.Equal(t, 42.0, ecs.ReadComponent[Position](storage, first).X)
	assert.Equal(t, 501, storage.Archetype(first.ArchetypeId()).Len())
}

func TestGetComponent(t *testing.T) {
	storage := newStorage()
	id := storage.Spawn(Position{X: 1, Y: 2}, Label("rock"))

	assert.Equal(t, &Position{X: 1, Y: 2}, ecs.ReadComponent[Position](storage, id))
	assert.Equal(t, Label("rock"), *ecs.ReadComponent[Label](storage, id))
	assert.Nil(t, ecs.ReadComponent[Velocity](storage, id))
	assert.Nil(t, ecs.ReadComponent[Position](storage, ecs.NewEntityId(id.ArchetypeId(), 7)))
	assert.Nil(t, ecs.ReadComponent[Position](storage, ecs.NewEntityId(9, 0)))

	assert.True(t, storage.HasComponent(id, reflect.TypeFor[Label]()))
	assert.False(t, storage.HasComponent(id, reflect.TypeFor[Velocity]()))
}

func TestSpawnPanics(t *testing.T) {
	storage := newStorage()

	assert.Panics(t, func() { storage.Spawn() })
	assert.Panics(t, func() { storage.Spawn(Clock{}) }, "unregistered")
	assert.Panics(t, func() { storage.Spawn(Position{}, Position{}) }, "duplicate type")
	assert.Panics(t, func() { storage.Spawn(map[string]int{}) })
}

func TestSingleton(t *testing.T) {
	storage := newStorage()

	clock := ecs.NewSingleton[Clock](storage)
	assert.False(t, clock.Exists())
	assert.Nil(t, clock.Get())

	clock.Set(Clock{Ticks: 1})
	require.True(t, clock.Exists())
	clock.Get().Ticks++

	same := ecs.NewSingleton[Clock](storage)
	assert.Equal(t, 2, same.Get().Ticks)

	ecs.NewSingleton(storage, Clock{Ticks: 10})
	assert.Equal(t, 10, clock.Get().Ticks, "initial value replaces the old one")

	clock.Clear()
	assert.False(t, same.Exists())
}
