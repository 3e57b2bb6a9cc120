package solar

import (
	"errors"
	"fmt"
	"math"

	"github.com/hashicorp/go-multierror"
	"github.com/plus3/orrery/physics"
)

// ErrInvalidBody is returned when a sun or planet is built from unusable
// parameters.
var ErrInvalidBody = errors.New("invalid body")

const (
	DefaultSunColor    = "yellow"
	DefaultPlanetColor = "blue"
)

// Kind is the category encoded in the upper half of a BodyId.
type Kind uint32

const (
	KindSun Kind = iota + 1
	KindPlanet
)

func (k Kind) String() string {
	switch k {
	case KindSun:
		return "sun"
	case KindPlanet:
		return "planet"
	default:
		return fmt.Sprintf("kind(%d)", uint32(k))
	}
}

// BodyId encodes both the body kind (upper 32 bits) and its insertion index
// (lower 32 bits). It has the layout of an ecs.EntityId with the kind in
// place of the archetype, which gives the sun, a singleton rather than an
// entity, an id too.
type BodyId uint64

// SunId identifies the attractor of any System.
var SunId = NewBodyId(KindSun, 0)

// NewBodyId creates a BodyId from a kind and index
func NewBodyId(kind Kind, index uint32) BodyId {
	return BodyId(uint64(kind)<<32 | uint64(index))
}

// Kind extracts the body kind from the id
func (b BodyId) Kind() Kind {
	return Kind(b >> 32)
}

// Index extracts the insertion index from the id
func (b BodyId) Index() uint32 {
	return uint32(b & 0xFFFFFFFF)
}

func (b BodyId) String() string {
	return fmt.Sprintf("%s#%d", b.Kind(), b.Index())
}

// Sun is the fixed attractor. It is never integrated.
type Sun struct {
	Name     string
	Mass     float64
	Size     float64
	Position physics.Vec2
	Color    string
}

// NewSun validates the parameters and returns a sun.
func NewSun(name string, mass, size float64, pos physics.Vec2) (*Sun, error) {
	if err := validateBody(mass, size, pos, physics.Vec2{}); err != nil {
		return nil, fmt.Errorf("sun %q: %w", name, err)
	}
	return &Sun{
		Name:     name,
		Mass:     mass,
		Size:     size,
		Position: pos,
		Color:    DefaultSunColor,
	}, nil
}

// Attractor returns the part of the sun the force law needs.
func (s *Sun) Attractor() physics.Attractor {
	return physics.Attractor{Position: s.Position, Mass: s.Mass}
}

// Planet is an orbiting body. Its Mass is carried for display and reports;
// the force law only uses the sun's mass.
type Planet struct {
	Name  string
	Mass  float64
	Size  float64
	Color string
	physics.Kinematics
}

// NewPlanet validates the parameters and returns a planet.
func NewPlanet(name string, mass, size float64, pos, vel physics.Vec2) (*Planet, error) {
	if err := validateBody(mass, size, pos, vel); err != nil {
		return nil, fmt.Errorf("planet %q: %w", name, err)
	}
	return &Planet{
		Name:       name,
		Mass:       mass,
		Size:       size,
		Color:      DefaultPlanetColor,
		Kinematics: physics.Kinematics{Position: pos, Velocity: vel},
	}, nil
}

func validateBody(mass, size float64, pos, vel physics.Vec2) error {
	var result *multierror.Error
	if !(mass > 0) || math.IsInf(mass, 0) {
		result = multierror.Append(result, fmt.Errorf("mass must be positive and finite, got %v", mass))
	}
	if !(size >= 0) || math.IsInf(size, 0) {
		result = multierror.Append(result, fmt.Errorf("size must be non-negative and finite, got %v", size))
	}
	if !pos.IsFinite() {
		result = multierror.Append(result, fmt.Errorf("position must be finite, got %v", pos))
	}
	if !vel.IsFinite() {
		result = multierror.Append(result, fmt.Errorf("velocity must be finite, got %v", vel))
	}
	if err := result.ErrorOrNil(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBody, err)
	}
	return nil
}
