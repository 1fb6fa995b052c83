package core

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/1siamBot/our-earth/engine/pick"
	"github.com/1siamBot/our-earth/engine/render3d"
)

// TreeCounter counts trees planted this session. It only goes up.
type TreeCounter struct {
	n int
}

// Inc adds one tree and returns the new total
func (c *TreeCounter) Inc() int {
	c.n++
	return c.n
}

// Value returns the current total
func (c *TreeCounter) Value() int { return c.n }

// Tree is a planted tree, positioned in the globe's local frame
type Tree struct {
	Index    int // 1-based planting order
	Position mgl64.Vec3
	Normal   mgl64.Vec3
	Local    mgl64.Mat4 // tree space -> globe space
}

// Globe is the spinning textured sphere and everything attached to it
type Globe struct {
	Radius   float64
	Rotation float64 // radians around +Y
	SpinRate float64 // radians per second

	Mesh    *render3d.Mesh3D
	Trees   []*Tree
	Counter TreeCounter

	treeMesh *render3d.Mesh3D
}

// NewGlobe builds the sphere mesh and the shared tree model
func NewGlobe(radius float64, widthSegments, heightSegments int, spinRate float64) *Globe {
	return &Globe{
		Radius:   radius,
		SpinRate: spinRate,
		Mesh:     render3d.MakeSphere(radius, widthSegments, heightSegments),
		treeMesh: render3d.MakeTreeModel(),
	}
}

// Advance spins the globe by SpinRate*dt
func (g *Globe) Advance(dt float64) {
	g.Rotation += g.SpinRate * dt
}

// Model returns the globe's local -> world matrix
func (g *Globe) Model() mgl64.Mat4 {
	return mgl64.HomogRotate3DY(g.Rotation)
}

// PlantTree attaches a tree at the hit point and counts it. The tree's up
// axis follows the outward face normal, so its base faces the globe
// center, and its forward axis leans toward the north pole. Trees live in
// the globe's frame and spin with it.
func (g *Globe) PlantTree(hit pick.Hit) *Tree {
	normal := hit.Normal.Normalize()
	basis := render3d.BasisFromUp(normal, mgl64.Vec3{0, 1, 0})
	local := mgl64.Translate3D(hit.Point.Elem()).Mul4(basis)

	t := &Tree{
		Index:    g.Counter.Inc(),
		Position: hit.Point,
		Normal:   normal,
		Local:    local,
	}
	g.Trees = append(g.Trees, t)
	return t
}

// TreeMesh is the model every tree shares
func (g *Globe) TreeMesh() *render3d.Mesh3D { return g.treeMesh }

// PlacedTrees returns each tree with its world matrix for drawing
func (g *Globe) PlacedTrees() []render3d.Placed {
	model := g.Model()
	out := make([]render3d.Placed, len(g.Trees))
	for i, t := range g.Trees {
		out[i] = render3d.Placed{Mesh: g.treeMesh, Model: model.Mul4(t.Local)}
	}
	return out
}
