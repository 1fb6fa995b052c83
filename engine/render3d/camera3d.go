package render3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera3D is a perspective camera orbiting a target point
type Camera3D struct {
	Target mgl64.Vec3

	// Spherical position around Target. Polar is measured from +Y.
	Distance float64
	Azimuth  float64
	Polar    float64

	FovY      float64 // degrees
	Near, Far float64

	// Orbit limits
	MinDistance, MaxDistance float64
	MinPolar, MaxPolar       float64

	// Damping blends pending orbit deltas into the pose each frame (0 = instant)
	Damping float64

	ScreenW, ScreenH int

	pendingAzimuth float64
	pendingPolar   float64
	pendingZoom    float64

	viewProj mgl64.Mat4
	invVP    mgl64.Mat4
	dirty    bool
}

// NewCamera3D creates a camera at distance on +Z looking at the origin
func NewCamera3D(screenW, screenH int, fovY, distance float64) *Camera3D {
	return &Camera3D{
		Distance:    distance,
		Polar:       math.Pi / 2,
		FovY:        fovY,
		Near:        0.1,
		Far:         1000,
		MinDistance: 0,
		MaxDistance: math.Inf(1),
		MinPolar:    1e-3,
		MaxPolar:    math.Pi - 1e-3,
		ScreenW:     screenW,
		ScreenH:     screenH,
		dirty:       true,
	}
}

// Resize updates the aspect ratio after a window resize
func (c *Camera3D) Resize(w, h int) {
	if w <= 0 || h <= 0 || (w == c.ScreenW && h == c.ScreenH) {
		return
	}
	c.ScreenW, c.ScreenH = w, h
	c.dirty = true
}

// Aspect returns width / height
func (c *Camera3D) Aspect() float64 {
	if c.ScreenH == 0 {
		return 1
	}
	return float64(c.ScreenW) / float64(c.ScreenH)
}

// Rotate queues an orbit rotation in radians
func (c *Camera3D) Rotate(dAzimuth, dPolar float64) {
	c.pendingAzimuth += dAzimuth
	c.pendingPolar += dPolar
}

// Zoom queues a multiplicative zoom; positive moves closer
func (c *Camera3D) Zoom(delta float64) {
	c.pendingZoom += delta
}

// Update applies queued orbit input. With damping the pose eases toward
// the requested one over several frames.
func (c *Camera3D) Update() {
	k := 1.0
	if c.Damping > 0 {
		k = c.Damping
	}
	if c.pendingAzimuth == 0 && c.pendingPolar == 0 && c.pendingZoom == 0 {
		return
	}

	da := c.pendingAzimuth * k
	dp := c.pendingPolar * k
	dz := c.pendingZoom * k
	c.pendingAzimuth -= da
	c.pendingPolar -= dp
	c.pendingZoom -= dz
	if math.Abs(c.pendingAzimuth) < 1e-6 {
		c.pendingAzimuth = 0
	}
	if math.Abs(c.pendingPolar) < 1e-6 {
		c.pendingPolar = 0
	}
	if math.Abs(c.pendingZoom) < 1e-6 {
		c.pendingZoom = 0
	}

	c.Azimuth += da
	c.Polar = mgl64.Clamp(c.Polar+dp, c.MinPolar, c.MaxPolar)
	c.Distance = mgl64.Clamp(c.Distance*(1-dz), c.MinDistance, c.MaxDistance)
	c.dirty = true
}

// Eye returns the camera position in world space
func (c *Camera3D) Eye() mgl64.Vec3 {
	sp := math.Sin(c.Polar)
	return c.Target.Add(mgl64.Vec3{
		c.Distance * sp * math.Sin(c.Azimuth),
		c.Distance * math.Cos(c.Polar),
		c.Distance * sp * math.Cos(c.Azimuth),
	})
}

func (c *Camera3D) update() {
	if !c.dirty {
		return
	}
	c.dirty = false

	view := mgl64.LookAtV(c.Eye(), c.Target, mgl64.Vec3{0, 1, 0})
	proj := mgl64.Perspective(mgl64.DegToRad(c.FovY), c.Aspect(), c.Near, c.Far)
	c.viewProj = proj.Mul4(view)
	c.invVP = c.viewProj.Inv()
}

// ViewProj returns the combined view-projection matrix
func (c *Camera3D) ViewProj() mgl64.Mat4 {
	c.update()
	return c.viewProj
}

// Project converts a world point to screen pixels. ok is false when the
// point is behind the camera.
func (c *Camera3D) Project(p mgl64.Vec3) (sx, sy, depth float64, ok bool) {
	c.update()
	clip := c.viewProj.Mul4x1(p.Vec4(1))
	if clip.W() <= c.Near*0.5 {
		return 0, 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	sx = (ndc.X()*0.5 + 0.5) * float64(c.ScreenW)
	sy = (1 - (ndc.Y()*0.5 + 0.5)) * float64(c.ScreenH)
	return sx, sy, ndc.Z(), true
}

// RayFromNDC casts a world-space ray through a normalized device coordinate
func (c *Camera3D) RayFromNDC(ndc mgl64.Vec2) Ray {
	c.update()
	near := mgl64.TransformCoordinate(mgl64.Vec3{ndc.X(), ndc.Y(), -1}, c.invVP)
	far := mgl64.TransformCoordinate(mgl64.Vec3{ndc.X(), ndc.Y(), 1}, c.invVP)
	return Ray{Origin: near, Dir: far.Sub(near).Normalize()}
}

// ScreenToNDC converts window pixels to normalized device coordinates
func (c *Camera3D) ScreenToNDC(sx, sy int) mgl64.Vec2 {
	return ScreenToNDC(sx, sy, c.ScreenW, c.ScreenH)
}

// ScreenToNDC maps pixel (sx, sy) in a w×h viewport to [-1,1]², Y up
func ScreenToNDC(sx, sy, w, h int) mgl64.Vec2 {
	if w <= 0 || h <= 0 {
		return mgl64.Vec2{}
	}
	return mgl64.Vec2{
		float64(sx)/float64(w)*2 - 1,
		-float64(sy)/float64(h)*2 + 1,
	}
}
