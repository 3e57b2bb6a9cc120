// Package solar holds the bodies of a simulated system: a single fixed sun
// and an ordered set of planets that orbit it.
package solar

import (
	"errors"
	"fmt"
	"iter"
	"math"

	"github.com/plus3/orrery/ecs"
	"github.com/plus3/orrery/physics"
)

// ErrMissingAttractor is returned when a System is stepped before its sun
// has been set.
var ErrMissingAttractor = errors.New("system has no sun")

// planetRow is the component set every planet entity carries.
type planetRow struct {
	*Planet
}

// System owns the sun and the planets. Planets are entities in an ECS
// storage and the sun is a singleton in the same storage. Planets are
// never removed, so they all share one archetype and its row order is
// insertion order.
type System struct {
	storage   *ecs.Storage
	sun       *ecs.Singleton[Sun]
	planets   *ecs.Query[planetRow]
	archetype uint32
}

// NewSystem creates an empty system with no sun.
func NewSystem() *System {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Planet](registry)
	storage := ecs.NewStorage(registry)

	return &System{
		storage: storage,
		sun:     ecs.NewSingleton[Sun](storage),
		planets: ecs.NewQuery[planetRow](storage),
	}
}

// SetSun stores a copy of sun, replacing any previous one. A nil sun
// removes it.
func (s *System) SetSun(sun *Sun) {
	if sun == nil {
		s.sun.Clear()
		return
	}
	s.sun.Set(*sun)
}

// Sun returns the attractor and whether one has been set. Changes made
// through the pointer are seen by the system.
func (s *System) Sun() (*Sun, bool) {
	sun := s.sun.Get()
	return sun, sun != nil
}

// AddPlanet stores a copy of planet and returns its stable id. Later
// changes go through Planet(id). Names are not checked for uniqueness.
func (s *System) AddPlanet(planet *Planet) BodyId {
	eid := s.storage.Spawn(planet)
	s.archetype = eid.ArchetypeId()
	return planetId(eid)
}

// Planet returns the planet with the given id, or nil.
func (s *System) Planet(id BodyId) *Planet {
	if id.Kind() != KindPlanet || s.archetype == 0 {
		return nil
	}
	return ecs.ReadComponent[Planet](s.storage, ecs.NewEntityId(s.archetype, id.Index()))
}

// Planets iterates over planets in insertion order.
func (s *System) Planets() iter.Seq2[BodyId, *Planet] {
	return func(yield func(BodyId, *Planet) bool) {
		for eid, row := range s.planets.Iter() {
			if !yield(planetId(eid), row.Planet) {
				return
			}
		}
	}
}

// Len returns the number of planets.
func (s *System) Len() int {
	return s.planets.Count()
}

// Step advances every planet by dt. The first failure stops the pass;
// planets before it have already moved.
func (s *System) Step(dt float64) error {
	sun, ok := s.Sun()
	if !ok {
		return ErrMissingAttractor
	}

	attractor := sun.Attractor()
	for eid, row := range s.planets.Iter() {
		if err := physics.Advance(&row.Kinematics, attractor, dt); err != nil {
			return fmt.Errorf("planet %q (%s): %w", row.Name, planetId(eid), err)
		}
	}
	return nil
}

// planetId turns the entity id of a planet into its body id. The row is
// the insertion index because the planet archetype is append-only.
func planetId(eid ecs.EntityId) BodyId {
	return NewBodyId(KindPlanet, eid.Index())
}

// Stats is a snapshot of a System.
type Stats struct {
	HasSun          bool
	PlanetCount     int
	TotalPlanetMass float64
	MinRadius       float64
	MaxRadius       float64
}

// CollectStats gathers counts and the current spread of planet distances
// from the sun. Radii are zero when there is no sun or no planet.
func (s *System) CollectStats() *Stats {
	sun, hasSun := s.Sun()
	stats := &Stats{
		HasSun:      hasSun,
		PlanetCount: s.Len(),
	}

	minRadius := math.Inf(1)
	for p := range s.planets.Values() {
		stats.TotalPlanetMass += p.Mass
		if !hasSun {
			continue
		}

		r := p.Position.Sub(sun.Position).Len()
		minRadius = math.Min(minRadius, r)
		stats.MaxRadius = math.Max(stats.MaxRadius, r)
	}
	if hasSun && stats.PlanetCount > 0 {
		stats.MinRadius = minRadius
	}
	return stats
}
