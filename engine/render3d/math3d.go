package render3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Ray is a half-line from Origin along Dir (Dir is normalized)
type Ray struct {
	Origin mgl64.Vec3
	Dir    mgl64.Vec3
}

// At returns the point at distance t along the ray
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// Transform moves the ray into another frame. Dir is renormalized, so
// distances measured on the result are in the target frame's units.
func (r Ray) Transform(m mgl64.Mat4) Ray {
	o := mgl64.TransformCoordinate(r.Origin, m)
	d := mgl64.TransformNormal(r.Dir, m).Normalize()
	return Ray{Origin: o, Dir: d}
}

// BasisFromUp builds a rotation whose +Y is up and whose +Z points along
// forward projected onto the plane perpendicular to up.
func BasisFromUp(up, forward mgl64.Vec3) mgl64.Mat4 {
	y := up.Normalize()
	z := forward.Sub(y.Mul(forward.Dot(y)))
	if z.Len() < 1e-9 {
		// forward is parallel to up; any perpendicular will do
		alt := mgl64.Vec3{1, 0, 0}
		if math.Abs(y.X()) > 0.9 {
			alt = mgl64.Vec3{0, 0, 1}
		}
		z = alt.Sub(y.Mul(alt.Dot(y)))
	}
	z = z.Normalize()
	x := y.Cross(z)
	return mgl64.Mat4{
		x.X(), x.Y(), x.Z(), 0,
		y.X(), y.Y(), y.Z(), 0,
		z.X(), z.Y(), z.Z(), 0,
		0, 0, 0, 1,
	}
}

// Color3 is a linear RGB color in [0,1]
type Color3 struct {
	R, G, B float64
}

// ColorFromHex converts 0xRRGGBB
func ColorFromHex(hex uint32) Color3 {
	return Color3{
		R: float64(hex>>16&0xff) / 255,
		G: float64(hex>>8&0xff) / 255,
		B: float64(hex&0xff) / 255,
	}
}

func (c Color3) Scale(s float64) Color3 {
	return Color3{c.R * s, c.G * s, c.B * s}
}

func (c Color3) Add(o Color3) Color3 {
	return Color3{
		math.Min(c.R+o.R, 1),
		math.Min(c.G+o.G, 1),
		math.Min(c.B+o.B, 1),
	}
}

func (c Color3) Mul(o Color3) Color3 {
	return Color3{c.R * o.R, c.G * o.G, c.B * o.B}
}

// Lerp blends toward o by t
func (c Color3) Lerp(o Color3, t float64) Color3 {
	return Color3{c.R + (o.R-c.R)*t, c.G + (o.G-c.G)*t, c.B + (o.B-c.B)*t}
}
