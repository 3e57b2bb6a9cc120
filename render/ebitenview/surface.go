// Package ebitenview draws a running simulation in an Ebiten window.
//
// A Surface is opened explicitly, receives Register and Reposition calls
// from the driver and must be closed when the run is over:
//
//	surface, err := ebitenview.Open(render.DefaultSurface(), ebitenview.Options{Title: "orrery"})
//	if err != nil {
//		return err
//	}
//	defer surface.Close()
//	return surface.Run(driver)
package ebitenview

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/plus3/orrery/render"
	"github.com/plus3/orrery/solar"
)

// ErrSurfaceClosed is returned by every call made after Close.
var ErrSurfaceClosed = errors.New("surface closed")

// Options tune the window without affecting the simulation.
type Options struct {
	Title string
	// StepsPerUpdate is how many simulation steps run per Ebiten update
	// (60 per second). Zero means one.
	StepsPerUpdate int
	// Labels draws each body's name next to it.
	Labels bool
	// Overlay, when set, is updated and drawn on top of the bodies.
	Overlay Overlay
}

// shape is the visual for one body, in screen pixels.
type shape struct {
	id     solar.BodyId
	name   string
	x, y   float64
	radius float64
	color  color.RGBA
}

// Surface is a render.Renderer backed by an Ebiten window.
type Surface struct {
	config     render.SurfaceConfig
	options    Options
	background color.RGBA
	handles    *render.HandleTable
	shapes     []shape
	closed     bool
}

// Open validates config and prepares a surface. No window appears until
// Run is called.
func Open(config render.SurfaceConfig, options Options) (*Surface, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if options.StepsPerUpdate <= 0 {
		options.StepsPerUpdate = 1
	}
	if options.Title == "" {
		options.Title = "orrery"
	}

	return &Surface{
		config:     config,
		options:    options,
		background: render.ParseColor(config.Background),
		handles:    render.NewHandleTable(),
		shapes:     make([]shape, 0),
	}, nil
}

// Register creates the visual for body.
func (s *Surface) Register(body render.Body) error {
	if s.closed {
		return ErrSurfaceClosed
	}

	h, fresh := s.handles.Assign(body.Id)
	if !fresh {
		return fmt.Errorf("register %s: already registered", body.Id)
	}

	x, y := s.config.ToScreen(body.Position)
	s.shapes = append(s.shapes, shape{
		id:     body.Id,
		name:   body.Name,
		x:      x,
		y:      y,
		radius: render.BodyRadius(body.Size),
		color:  render.ParseColor(body.Color),
	})
	if int(h) != len(s.shapes)-1 {
		panic("surface handle out of sync")
	}
	return nil
}

// Reposition moves the visual for body to its current position.
func (s *Surface) Reposition(body render.Body) error {
	if s.closed {
		return ErrSurfaceClosed
	}

	h, err := s.handles.Lookup(body.Id)
	if err != nil {
		return err
	}

	sh := &s.shapes[h]
	sh.x, sh.y = s.config.ToScreen(body.Position)
	return nil
}

// Close releases the surface. It is safe to call more than once.
func (s *Surface) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.handles.Clear()
	s.shapes = nil
	return nil
}

// Config returns the surface settings.
func (s *Surface) Config() render.SurfaceConfig {
	return s.config
}

// SetOverlay replaces Options.Overlay. Call it before Run.
func (s *Surface) SetOverlay(overlay Overlay) {
	s.options.Overlay = overlay
}
