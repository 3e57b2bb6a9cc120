// Package render defines what the simulation needs from a front-end and
// the pieces front-ends share: the id-to-handle table, the display scale
// and the colour palette.
package render

import (
	"errors"

	"github.com/plus3/orrery/physics"
	"github.com/plus3/orrery/solar"
)

// ErrUnknownBody is returned when a body is repositioned before it was
// registered.
var ErrUnknownBody = errors.New("body not registered with renderer")

// Body is what a renderer is told about a sun or planet.
type Body struct {
	Id       solar.BodyId
	Name     string
	Position physics.Vec2
	Size     float64
	Color    string
}

// SunBody describes the sun of a system.
func SunBody(sun *solar.Sun) Body {
	return Body{
		Id:       solar.SunId,
		Name:     sun.Name,
		Position: sun.Position,
		Size:     sun.Size,
		Color:    sun.Color,
	}
}

// PlanetBody describes a planet of a system.
func PlanetBody(id solar.BodyId, planet *solar.Planet) Body {
	return Body{
		Id:       id,
		Name:     planet.Name,
		Position: planet.Position,
		Size:     planet.Size,
		Color:    planet.Color,
	}
}

// Renderer is the contract between the driver and a front-end.
// Register creates a persistent representation of a body; Reposition moves
// it to the body's current position.
type Renderer interface {
	Register(body Body) error
	Reposition(body Body) error
}

// Presenter is implemented by renderers that want a callback once every
// body of a frame has been repositioned.
type Presenter interface {
	Present() error
}

// Discard accepts every call and draws nothing.
type Discard struct{}

func (Discard) Register(Body) error   { return nil }
func (Discard) Reposition(Body) error { return nil }
