// Package term draws a simulation as coloured characters in a terminal.
package term

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"strings"

	fcolor "github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/plus3/orrery/render"
	"github.com/plus3/orrery/solar"
)

const clearScreen = "\x1b[H\x1b[2J"

// Options controls the character grid.
type Options struct {
	Cols, Rows int
	// Scale is rows per simulation unit. Columns use twice this because
	// terminal cells are about twice as tall as they are wide.
	Scale float64
	// Every draws one frame per this many presents. Zero means every one.
	Every int
}

// DefaultOptions is an 80x24 grid at 4 rows per unit.
func DefaultOptions() Options {
	return Options{Cols: 80, Rows: 24, Scale: 4, Every: 1}
}

type glyph struct {
	id       solar.BodyId
	name     string
	char     rune
	col, row int
	paint    *fcolor.Color
}

// Renderer writes frames to an io.Writer. ANSI colour and screen clearing
// are used only when the writer is a terminal.
type Renderer struct {
	out     *bufio.Writer
	options Options
	ansi    bool
	handles *render.HandleTable
	glyphs  []glyph
	frames  int
}

// New creates a renderer writing to w.
func New(w io.Writer, options Options) *Renderer {
	if options.Every <= 0 {
		options.Every = 1
	}

	ansi := false
	if f, ok := w.(*os.File); ok {
		ansi = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}

	return &Renderer{
		out:     bufio.NewWriter(w),
		options: options,
		ansi:    ansi,
		handles: render.NewHandleTable(),
	}
}

func (r *Renderer) Register(body render.Body) error {
	h, fresh := r.handles.Assign(body.Id)
	if !fresh {
		return fmt.Errorf("register %s: already registered", body.Id)
	}

	paint := fcolor.New(Attribute(body.Color))
	if r.ansi {
		paint.EnableColor()
	} else {
		paint.DisableColor()
	}

	g := glyph{
		id:    body.Id,
		name:  body.Name,
		char:  glyphFor(body),
		paint: paint,
	}
	g.col, g.row = r.cell(body)
	r.glyphs = append(r.glyphs, g)

	if int(h) != len(r.glyphs)-1 {
		panic("term handle out of sync")
	}
	return nil
}

func (r *Renderer) Reposition(body render.Body) error {
	h, err := r.handles.Lookup(body.Id)
	if err != nil {
		return err
	}
	g := &r.glyphs[h]
	g.col, g.row = r.cell(body)
	return nil
}

// Present draws a frame every Options.Every calls.
func (r *Renderer) Present() error {
	r.frames++
	if r.frames%r.options.Every != 0 {
		return nil
	}
	return r.Flush()
}

// Flush draws the current frame immediately.
func (r *Renderer) Flush() error {
	grid := make([][]int, r.options.Rows)
	for row := range grid {
		grid[row] = make([]int, r.options.Cols)
		for col := range grid[row] {
			grid[row][col] = -1
		}
	}
	for i, g := range r.glyphs {
		if g.row < 0 || g.row >= r.options.Rows || g.col < 0 || g.col >= r.options.Cols {
			continue
		}
		grid[g.row][g.col] = i
	}

	if r.ansi {
		r.out.WriteString(clearScreen)
	}
	fmt.Fprintf(r.out, "frame %d\n", r.frames)
	for _, line := range grid {
		var b strings.Builder
		for _, idx := range line {
			if idx < 0 {
				b.WriteByte(' ')
				continue
			}
			g := r.glyphs[idx]
			b.WriteString(g.paint.Sprint(string(g.char)))
		}
		r.out.WriteString(strings.TrimRight(b.String(), " "))
		r.out.WriteByte('\n')
	}
	return r.out.Flush()
}

func (r *Renderer) cell(body render.Body) (int, int) {
	col := float64(r.options.Cols)/2 + body.Position.X*r.options.Scale*2
	row := float64(r.options.Rows)/2 - body.Position.Y*r.options.Scale
	return int(math.Floor(col)), int(math.Floor(row))
}

func glyphFor(body render.Body) rune {
	if body.Id.Kind() == solar.KindSun {
		return '@'
	}
	for _, c := range body.Name {
		return c
	}
	return '*'
}

var basicColors = []struct {
	attr fcolor.Attribute
	rgb  color.RGBA
}{
	{fcolor.FgBlack, color.RGBA{0, 0, 0, 255}},
	{fcolor.FgRed, color.RGBA{205, 0, 0, 255}},
	{fcolor.FgGreen, color.RGBA{0, 205, 0, 255}},
	{fcolor.FgYellow, color.RGBA{205, 205, 0, 255}},
	{fcolor.FgBlue, color.RGBA{0, 0, 238, 255}},
	{fcolor.FgMagenta, color.RGBA{205, 0, 205, 255}},
	{fcolor.FgCyan, color.RGBA{0, 205, 205, 255}},
	{fcolor.FgWhite, color.RGBA{229, 229, 229, 255}},
}

// Attribute picks the basic terminal colour closest to a colour tag.
func Attribute(tag string) fcolor.Attribute {
	c := render.ParseColor(tag)

	best := fcolor.FgWhite
	bestDist := math.Inf(1)
	for _, bc := range basicColors {
		dr := float64(c.R) - float64(bc.rgb.R)
		dg := float64(c.G) - float64(bc.rgb.G)
		db := float64(c.B) - float64(bc.rgb.B)
		if d := dr*dr + dg*dg + db*db; d < bestDist {
			best, bestDist = bc.attr, d
		}
	}
	return best
}
