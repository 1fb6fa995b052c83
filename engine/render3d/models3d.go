package render3d

import "github.com/go-gl/mathgl/mgl64"

// Tree colors (CSS "brown" and "green")
var (
	TrunkBrown  = ColorFromHex(0xa52a2a)
	CanopyGreen = ColorFromHex(0x008000)
)

// Tree dimensions in globe units
const (
	TrunkWidth    = 0.016
	TrunkHeight   = 0.02
	CanopyRadius  = 0.02
	CanopyHeight  = 0.04
	CanopyOffsetY = 0.03
	CanopySides   = 32
)

// MakeTreeModel builds a tree with its base at the origin and +Y up:
// a box trunk half sunk into the surface and a cone canopy above it.
// Every tree is identical.
func MakeTreeModel() *Mesh3D {
	m := NewMesh()

	trunk := MakeBox(TrunkWidth, TrunkHeight, TrunkWidth, TrunkBrown)
	m.Append(trunk)

	canopy := MakeCone(CanopyRadius, CanopyHeight, CanopySides, CanopyGreen)
	m.Append(canopy.Transform(mgl64.Translate3D(0, CanopyOffsetY, 0)))

	return m
}
