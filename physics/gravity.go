// Package physics holds the sun-attraction force law and the semi-implicit
// Euler step used to move planets.
//
// The model is one-way: a planet is pulled toward a single fixed attractor
// and its own mass never enters the force law. Acceleration therefore
// depends only on the attractor's mass, which is the point-mass
// approximation for a light body orbiting a heavy one. Planets do not
// attract each other.
package physics

import (
	"errors"
	"math"
)

// G is the gravitational constant in dimensionless simulation units.
const G = 1.0

// ErrDegenerateSeparation is returned when a body sits exactly on the
// attractor (or its separation is not a finite number), so the direction
// and magnitude of the pull are undefined.
var ErrDegenerateSeparation = errors.New("degenerate separation from attractor")

// Attractor is the fixed body every planet is pulled toward.
type Attractor struct {
	Position Vec2
	Mass     float64
}

// Kinematics is the mutable state of an orbiting body.
type Kinematics struct {
	Position Vec2
	Velocity Vec2
}

// separation returns the vector from pos to the attractor and its length.
func separation(pos Vec2, sun Attractor) (Vec2, float64, error) {
	d := sun.Position.Sub(pos)
	r := d.Len()
	if r == 0 || math.IsNaN(r) || math.IsInf(r, 0) {
		return Vec2{}, 0, ErrDegenerateSeparation
	}
	return d, r, nil
}

// Acceleration returns the acceleration a body at pos feels toward sun.
func Acceleration(pos Vec2, sun Attractor) (Vec2, error) {
	d, r, err := separation(pos, sun)
	if err != nil {
		return Vec2{}, err
	}

	force := G * sun.Mass / (r * r)
	return Vec2{force * d.X / r, force * d.Y / r}, nil
}

// Advance moves body forward by dt. Velocity is updated first and the new
// velocity is used for the position update. On error the body is left
// untouched.
func Advance(body *Kinematics, sun Attractor, dt float64) error {
	acc, err := Acceleration(body.Position, sun)
	if err != nil {
		return err
	}

	body.Velocity = body.Velocity.Add(acc.Mul(dt))
	body.Position = body.Position.Add(body.Velocity.Mul(dt))
	return nil
}
