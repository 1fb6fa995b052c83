package render3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Particle is a short-lived leaf in the globe's local frame
type Particle struct {
	Pos     mgl64.Vec3
	Vel     mgl64.Vec3
	Color   Color3
	Alpha   float64
	Size    float64 // screen pixels
	Life    float64
	MaxLife float64
}

// ParticleSystem manages particles
type ParticleSystem struct {
	Particles []Particle
}

func NewParticleSystem() *ParticleSystem {
	return &ParticleSystem{}
}

// AddSprout puffs a ring of leaves outward from a freshly planted tree.
// pos and normal are in globe-local coordinates.
func (ps *ParticleSystem) AddSprout(pos, normal mgl64.Vec3) {
	basis := BasisFromUp(normal, mgl64.Vec3{0, 0, 1})
	const count = 12
	for i := 0; i < count; i++ {
		angle := float64(i) / count * 2 * math.Pi
		speed := 0.04 + float64(i%3)*0.015
		local := mgl64.Vec3{math.Cos(angle) * speed, 0.08 + float64(i%4)*0.02, math.Sin(angle) * speed}
		shade := 0.7 + float64(i%5)*0.06
		ps.Particles = append(ps.Particles, Particle{
			Pos:     pos.Add(normal.Mul(CanopyOffsetY)),
			Vel:     mgl64.TransformNormal(local, basis),
			Color:   Color3{0.2 * shade, 0.8 * shade, 0.25 * shade},
			Alpha:   1.0,
			Size:    2 + float64(i%3),
			MaxLife: 0.6 + float64(i%4)*0.1,
		})
	}
}

// Update advances particles. Leaves slow down by drag instead of falling,
// since "down" differs all over the globe.
func (ps *ParticleSystem) Update(dt float64) {
	alive := ps.Particles[:0]
	for i := range ps.Particles {
		p := &ps.Particles[i]
		p.Life += dt
		if p.Life >= p.MaxLife {
			continue
		}
		p.Pos = p.Pos.Add(p.Vel.Mul(dt))
		p.Vel = p.Vel.Mul(math.Max(0, 1-3*dt))
		p.Alpha = 1.0 - p.Life/p.MaxLife
		alive = append(alive, *p)
	}
	ps.Particles = alive
}
