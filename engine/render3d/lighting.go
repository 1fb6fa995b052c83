package render3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// DirectionalLight represents a sun-like light
type DirectionalLight struct {
	Direction mgl64.Vec3 // normalized direction TO the light (from surface)
	Color     Color3
	Intensity float64
}

// HemisphereLight blends a sky and a ground color by how far a normal
// points toward Up
type HemisphereLight struct {
	Up        mgl64.Vec3
	Sky       Color3
	Ground    Color3
	Intensity float64
}

// LightingSetup contains the scene lighting
type LightingSetup struct {
	Hemisphere HemisphereLight
	Sun        DirectionalLight
}

// DefaultLighting mirrors a white-sky, dark-ground hemisphere plus a
// half-strength white light from straight above.
func DefaultLighting() LightingSetup {
	return LightingSetup{
		Hemisphere: HemisphereLight{
			Up:        mgl64.Vec3{0, 1, 0},
			Sky:       ColorFromHex(0xffffff),
			Ground:    ColorFromHex(0x444444),
			Intensity: 1,
		},
		Sun: DirectionalLight{
			Direction: mgl64.Vec3{0, 1, 0},
			Color:     ColorFromHex(0xffffff),
			Intensity: 0.5,
		},
	}
}

// ComputeLighting calculates the lit color for a surface
func (ls *LightingSetup) ComputeLighting(normal mgl64.Vec3, baseColor Color3) Color3 {
	// Hemisphere: w=1 facing the sky, w=0 facing the ground
	w := 0.5*normal.Dot(ls.Hemisphere.Up) + 0.5
	hemi := ls.Hemisphere.Ground.Lerp(ls.Hemisphere.Sky, w).Scale(ls.Hemisphere.Intensity)
	result := baseColor.Mul(hemi)

	ndotl := math.Max(0, normal.Dot(ls.Sun.Direction))
	diffuse := baseColor.Mul(ls.Sun.Color).Scale(ndotl * ls.Sun.Intensity)
	result = result.Add(diffuse)

	result.R = math.Min(result.R, 1.0)
	result.G = math.Min(result.G, 1.0)
	result.B = math.Min(result.B, 1.0)
	return result
}
