package sim

import (
	"math"

	"github.com/plus3/orrery/physics"
	"github.com/plus3/orrery/render"
	"github.com/plus3/orrery/solar"
)

// IntegrateStage advances every planet by the frame's time step.
type IntegrateStage struct{}

func (IntegrateStage) Execute(frame *Frame) error {
	return frame.System.Step(frame.DeltaTime)
}

// RenderStage queues a reposition for every planet, in insertion order,
// followed by a Present when the renderer supports it.
type RenderStage struct {
	Renderer render.Renderer
}

func (s *RenderStage) Execute(frame *Frame) error {
	for id, planet := range frame.System.Planets() {
		body := render.PlanetBody(id, planet)
		frame.Commands.Defer(func() error {
			return s.Renderer.Reposition(body)
		})
	}

	if presenter, ok := s.Renderer.(render.Presenter); ok {
		frame.Commands.Defer(presenter.Present)
	}
	return nil
}

// OrbitRecord tracks how far one planet strayed over a run.
type OrbitRecord struct {
	Id            solar.BodyId
	Name          string
	MinRadius     float64
	MaxRadius     float64
	InitialEnergy float64
	Energy        float64
}

// EnergyDrift is the relative change of specific orbital energy since the
// first observation.
func (r OrbitRecord) EnergyDrift() float64 {
	if r.InitialEnergy == 0 {
		return 0
	}
	return (r.Energy - r.InitialEnergy) / math.Abs(r.InitialEnergy)
}

// OrbitMonitor records, per planet, the radius band and energy drift seen
// after each step. Register it after IntegrateStage.
type OrbitMonitor struct {
	records []OrbitRecord
}

// Observe records the current state of every planet. The driver calls it
// once before the first step so the initial orbit is included.
func (m *OrbitMonitor) Observe(system *solar.System) error {
	sun, ok := system.Sun()
	if !ok {
		return solar.ErrMissingAttractor
	}
	attractor := sun.Attractor()

	for id, planet := range system.Planets() {
		idx := int(id.Index())
		r := planet.Position.Sub(sun.Position).Len()
		energy, err := physics.SpecificEnergy(planet.Kinematics, attractor)
		if err != nil {
			return err
		}

		if idx >= len(m.records) {
			m.records = append(m.records, OrbitRecord{
				Id:            id,
				Name:          planet.Name,
				MinRadius:     r,
				MaxRadius:     r,
				InitialEnergy: energy,
				Energy:        energy,
			})
			continue
		}

		rec := &m.records[idx]
		rec.MinRadius = math.Min(rec.MinRadius, r)
		rec.MaxRadius = math.Max(rec.MaxRadius, r)
		rec.Energy = energy
	}
	return nil
}

func (m *OrbitMonitor) Execute(frame *Frame) error {
	return m.Observe(frame.System)
}

// Records returns one record per planet in insertion order.
func (m *OrbitMonitor) Records() []OrbitRecord {
	return m.records
}
