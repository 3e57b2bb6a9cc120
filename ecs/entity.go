package ecs

import "fmt"

// EntityId encodes the archetype id (upper 32 bits) and the row of the
// entity inside that archetype (lower 32 bits).
type EntityId uint64

// NewEntityId packs an archetype id and a row.
func NewEntityId(archetypeId uint32, index uint32) EntityId {
	return EntityId(uint64(archetypeId)<<32 | uint64(index))
}

// ArchetypeId extracts the archetype id.
func (e EntityId) ArchetypeId() uint32 {
	return uint32(e >> 32)
}

// Index extracts the row.
func (e EntityId) Index() uint32 {
	return uint32(e & 0xFFFFFFFF)
}

func (e EntityId) String() string {
	return fmt.Sprintf("%d:%d", e.ArchetypeId(), e.Index())
}
