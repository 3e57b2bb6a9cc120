package physics

import "math"

// CircularSpeed is the speed of a circular orbit of radius r around mass.
func CircularSpeed(mass, r float64) float64 {
	return math.Sqrt(G * mass / r)
}

// CircularVelocity returns the velocity that puts a body at pos on a
// counter-clockwise circular orbit around sun.
func CircularVelocity(pos Vec2, sun Attractor) (Vec2, error) {
	_, r, err := separation(pos, sun)
	if err != nil {
		return Vec2{}, err
	}

	radial := pos.Sub(sun.Position)
	return radial.Perp().Mul(CircularSpeed(sun.Mass, r) / r), nil
}

// OrbitalPeriod is the period of a circular orbit of radius r around mass.
func OrbitalPeriod(mass, r float64) float64 {
	return 2 * math.Pi * math.Sqrt(r*r*r/(G*mass))
}

// SpecificEnergy is the orbital energy per unit planet mass. It is constant
// for an exact orbit, so its change over a run measures integration drift.
func SpecificEnergy(body Kinematics, sun Attractor) (float64, error) {
	_, r, err := separation(body.Position, sun)
	if err != nil {
		return 0, err
	}
	v := body.Velocity
	return 0.5*v.Dot(v) - G*sun.Mass/r, nil
}
