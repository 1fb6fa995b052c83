// Package pick turns a pointer position into a point on the globe.
package pick

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/1siamBot/our-earth/engine/render3d"
)

// Hit is the nearest front-facing intersection with a mesh. Point and
// Normal are in the mesh's local frame; Normal is the face normal.
type Hit struct {
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
	UV       mgl64.Vec2
	Distance float64 // along the world-space ray
	Triangle int
}

const epsilon = 1e-9

// Resolve casts a ray from cam through ndc and intersects it with mesh
// placed by model. Only mesh is tested, so anything attached to it
// (trees) can never be picked.
func Resolve(ndc mgl64.Vec2, cam *render3d.Camera3D, mesh *render3d.Mesh3D, model mgl64.Mat4) (Hit, bool) {
	return Intersect(cam.RayFromNDC(ndc), mesh, model)
}

// Intersect tests a world-space ray against every front face of mesh
func Intersect(ray render3d.Ray, mesh *render3d.Mesh3D, model mgl64.Mat4) (Hit, bool) {
	local := ray.Transform(model.Inv())

	best := Hit{Distance: math.Inf(1)}
	found := false
	for i, tri := range mesh.Triangles {
		t, b1, b2, ok := intersectTriangle(local, tri)
		if !ok {
			continue
		}
		p := local.At(t)
		dist := mgl64.TransformCoordinate(p, model).Sub(ray.Origin).Len()
		if dist >= best.Distance {
			continue
		}
		b0 := 1 - b1 - b2
		uv := tri.V[0].UV.Mul(b0).Add(tri.V[1].UV.Mul(b1)).Add(tri.V[2].UV.Mul(b2))
		best = Hit{
			Point:    p,
			Normal:   tri.FaceNormal(),
			UV:       uv,
			Distance: dist,
			Triangle: i,
		}
		found = true
	}
	if !found {
		return Hit{}, false
	}
	return best, true
}

// intersectTriangle is Möller–Trumbore with back-face culling. It returns
// the ray parameter and the barycentric weights of V[1] and V[2].
func intersectTriangle(ray render3d.Ray, tri render3d.Triangle3D) (t, u, v float64, ok bool) {
	e1 := tri.V[1].Pos.Sub(tri.V[0].Pos)
	e2 := tri.V[2].Pos.Sub(tri.V[0].Pos)
	p := ray.Dir.Cross(e2)
	det := e1.Dot(p)
	if det < epsilon {
		return 0, 0, 0, false
	}
	inv := 1 / det
	s := ray.Origin.Sub(tri.V[0].Pos)
	u = s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, 0, 0, false
	}
	q := s.Cross(e1)
	v = ray.Dir.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, 0, 0, false
	}
	t = e2.Dot(q) * inv
	if t <= epsilon {
		return 0, 0, 0, false
	}
	return t, u, v, true
}

// NDC converts a pointer position in a w×h window to normalized device
// coordinates
func NDC(sx, sy, w, h int) mgl64.Vec2 {
	return render3d.ScreenToNDC(sx, sy, w, h)
}
