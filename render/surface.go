package render

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/plus3/orrery/physics"
	"golang.org/x/image/colornames"
)

// ErrInvalidSurface is returned for unusable surface settings.
var ErrInvalidSurface = errors.New("invalid surface config")

// SurfaceConfig describes the drawing area and how simulation units map
// onto it.
type SurfaceConfig struct {
	Width      int     `mapstructure:"width"`
	Height     int     `mapstructure:"height"`
	Background string  `mapstructure:"background"`
	Scale      float64 `mapstructure:"scale"`
}

// DefaultSurface is an 800x800 black window at 100 pixels per unit.
func DefaultSurface() SurfaceConfig {
	return SurfaceConfig{
		Width:      800,
		Height:     800,
		Background: "black",
		Scale:      100,
	}
}

// Validate reports every unusable field.
func (c SurfaceConfig) Validate() error {
	var result *multierror.Error
	if c.Width <= 0 {
		result = multierror.Append(result, fmt.Errorf("width must be positive, got %d", c.Width))
	}
	if c.Height <= 0 {
		result = multierror.Append(result, fmt.Errorf("height must be positive, got %d", c.Height))
	}
	if !(c.Scale > 0) || math.IsInf(c.Scale, 0) {
		result = multierror.Append(result, fmt.Errorf("scale must be positive and finite, got %v", c.Scale))
	}
	if err := result.ErrorOrNil(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSurface, err)
	}
	return nil
}

// ToScreen maps a simulation position to pixel coordinates. The simulation
// origin sits at the centre of the surface and y grows upward.
func (c SurfaceConfig) ToScreen(pos physics.Vec2) (float64, float64) {
	x := float64(c.Width)/2 + pos.X*c.Scale
	y := float64(c.Height)/2 - pos.Y*c.Scale
	return x, y
}

// BodyRadius is the on-screen radius in pixels for a body of the given
// size. Size 1 is a 20 pixel disc.
func BodyRadius(size float64) float64 {
	return 10 * size
}

// Fallback is used for colour tags that cannot be parsed.
var Fallback = color.RGBA{200, 200, 255, 255}

// ParseColor resolves an SVG colour name ("yellow", "steelblue") or a
// "#rrggbb" hex string. Unknown tags resolve to Fallback.
func ParseColor(tag string) color.RGBA {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if c, ok := colornames.Map[tag]; ok {
		return c
	}

	var r, g, b uint8
	if len(tag) == 7 && tag[0] == '#' {
		n, err := fmt.Sscanf(tag, "#%02x%02x%02x", &r, &g, &b)
		if err == nil && n == 3 {
			return color.RGBA{r, g, b, 255}
		}
	}
	return Fallback
}
