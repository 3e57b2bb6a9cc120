package ebitenview

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/orrery/sim"
	"golang.org/x/image/font/basicfont"
)

// Ticker is the part of a sim.Driver the window needs.
type Ticker interface {
	Tick() (sim.State, error)
	Elapsed() float64
}

// Overlay is drawn on top of the bodies every frame, e.g. a debug UI.
type Overlay interface {
	Update() error
	Draw(screen *ebiten.Image)
	Layout(outsideWidth, outsideHeight int)
}

// KeyboardCapturer is implemented by overlays that can take keyboard
// focus, such as a text field in a debug UI. While it reports true the
// window's own hotkeys are ignored.
type KeyboardCapturer interface {
	WantsKeyboard() bool
}

var hudColor = color.RGBA{200, 200, 200, 255}

// game implements ebiten.Game for a Surface.
type game struct {
	surface *Surface
	ticker  Ticker
	paused  bool
	state   sim.State
}

// Run opens the window and drives ticker until it is done, the user quits
// (Q or Escape) or a step fails. P pauses and resumes.
func (s *Surface) Run(ticker Ticker) error {
	if s.closed {
		return ErrSurfaceClosed
	}

	ebiten.SetWindowSize(s.config.Width, s.config.Height)
	ebiten.SetWindowTitle(s.options.Title)

	g := &game{surface: s, ticker: ticker}
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// hotkeys reports whether P, Q and Escape belong to the window this frame.
func (g *game) hotkeys() bool {
	capturer, ok := g.surface.options.Overlay.(KeyboardCapturer)
	return !ok || !capturer.WantsKeyboard()
}

func (g *game) Update() error {
	if g.hotkeys() {
		if ebiten.IsKeyPressed(ebiten.KeyQ) || ebiten.IsKeyPressed(ebiten.KeyEscape) {
			return ebiten.Termination
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyP) {
			g.paused = !g.paused
		}
	}

	if !g.paused {
		for range g.surface.options.StepsPerUpdate {
			state, err := g.ticker.Tick()
			if err != nil {
				return err
			}
			g.state = state
			if state == sim.Done {
				return ebiten.Termination
			}
		}
	}

	if overlay := g.surface.options.Overlay; overlay != nil {
		return overlay.Update()
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	s := g.surface
	screen.Fill(s.background)

	for _, sh := range s.shapes {
		vector.DrawFilledCircle(screen, float32(sh.x), float32(sh.y), float32(sh.radius), sh.color, true)
		if s.options.Labels {
			text.Draw(screen, sh.name, basicfont.Face7x13, int(sh.x+sh.radius)+4, int(sh.y)+4, hudColor)
		}
	}

	status := fmt.Sprintf("t=%.2f", g.ticker.Elapsed())
	if g.paused {
		status += "  [paused]"
	}
	text.Draw(screen, status, basicfont.Face7x13, 8, 16, hudColor)

	if overlay := s.options.Overlay; overlay != nil {
		overlay.Draw(screen)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if overlay := g.surface.options.Overlay; overlay != nil {
		overlay.Layout(outsideWidth, outsideHeight)
	}
	return g.surface.config.Width, g.surface.config.Height
}
