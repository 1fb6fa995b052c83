// Package placement decides from a texture pixel whether a tree may be
// planted at a UV coordinate.
package placement

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/1siamBot/our-earth/engine/texture"
)

// Decision is the outcome of a placement check
type Decision uint8

const (
	Denied Decision = iota
	Allowed
)

func (d Decision) String() string {
	if d == Allowed {
		return "allowed"
	}
	return "denied"
}

// Policy holds the color thresholds. A pixel passes when its green
// channel is above MinGreen OR its blue channel is below MaxBlue.
type Policy struct {
	MinGreen uint8
	MaxBlue  uint8
}

// DefaultPolicy is green > 200 || blue < 100
func DefaultPolicy() Policy {
	return Policy{MinGreen: 200, MaxBlue: 100}
}

// Sample is the pixel a UV coordinate resolved to
type Sample struct {
	X, Y       int
	R, G, B, A uint8
}

// Wrap maps x into [0,1) with a floored modulo, so Wrap(-0.25) == 0.75
func Wrap(x float64) float64 {
	w := x - math.Floor(x)
	if w >= 1 {
		// x was a tiny negative number and the subtraction rounded up
		return 0
	}
	return w
}

// PixelIndex maps a UV coordinate to a pixel of a w×h image. u grows to
// the right; v grows upward, so the row is flipped: v=0 is the bottom row.
func PixelIndex(uv mgl64.Vec2, w, h int) (x, y int) {
	x = min(int(Wrap(uv.X())*float64(w)), w-1)
	ty := min(int(Wrap(uv.Y())*float64(h)), h-1)
	return x, h - 1 - ty
}

// Sample reads the pixel under uv
func (p Policy) Sample(uv mgl64.Vec2, grid *texture.PixelGrid) Sample {
	x, y := PixelIndex(uv, grid.Width, grid.Height)
	r, g, b, a := grid.At(x, y)
	return Sample{X: x, Y: y, R: r, G: g, B: b, A: a}
}

// Allows applies the color rule to one pixel
func (p Policy) Allows(g, b uint8) bool {
	return g > p.MinGreen || b < p.MaxBlue
}

// Decide samples the grid at uv and applies the color rule
func (p Policy) Decide(uv mgl64.Vec2, grid *texture.PixelGrid) Decision {
	s := p.Sample(uv, grid)
	if p.Allows(s.G, s.B) {
		return Allowed
	}
	return Denied
}
