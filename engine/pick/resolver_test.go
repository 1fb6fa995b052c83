package pick

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/1siamBot/our-earth/engine/render3d"
)

func newCamera() *render3d.Camera3D {
	return render3d.NewCamera3D(800, 800, 75, 2.5)
}

func TestResolveCenterHitsFacingPoint(t *testing.T) {
	globe := render3d.MakeSphere(1, 32, 24)

	hit, ok := Resolve(mgl64.Vec2{0.013, 0.021}, newCamera(), globe, mgl64.Ident4())
	if !ok {
		t.Fatal("expected a hit near the screen center")
	}
	if math.Abs(hit.Point.Len()-1) > 0.02 {
		t.Errorf("hit point %v not on the unit sphere", hit.Point)
	}
	if hit.Point.Z() < 0.95 {
		t.Errorf("hit point %v, want near (0,0,1)", hit.Point)
	}
	if math.Abs(hit.UV.X()-0.25) > 0.02 || math.Abs(hit.UV.Y()-0.5) > 0.02 {
		t.Errorf("hit UV = %v, want ~(0.25,0.5)", hit.UV)
	}
	if hit.Normal.Dot(mgl64.Vec3{0, 0, 1}) < 0.95 {
		t.Errorf("face normal %v does not face the camera", hit.Normal)
	}
	// the ray starts on the near plane, 0.1 in front of the eye
	if math.Abs(hit.Distance-1.4) > 0.05 {
		t.Errorf("distance = %v, want ~1.4", hit.Distance)
	}
}

func TestResolveHonoursGlobeRotation(t *testing.T) {
	globe := render3d.MakeSphere(1, 32, 24)
	angle := math.Pi / 4

	hit, ok := Resolve(mgl64.Vec2{0.01, 0.01}, newCamera(), globe, mgl64.HomogRotate3DY(angle))
	if !ok {
		t.Fatal("expected a hit")
	}
	// the facing point moves back along u by angle/2π
	wantU := 0.25 - angle/(2*math.Pi)
	if math.Abs(hit.UV.X()-wantU) > 0.02 {
		t.Errorf("hit U = %v, want ~%v", hit.UV.X(), wantU)
	}
	// Point stays in the globe's own frame
	want := mgl64.Vec3{-math.Sin(angle), 0, math.Cos(angle)}
	if hit.Point.Sub(want).Len() > 0.05 {
		t.Errorf("local hit point = %v, want ~%v", hit.Point, want)
	}
}

func TestResolveMisses(t *testing.T) {
	globe := render3d.MakeSphere(1, 32, 24)
	cam := newCamera()

	for _, ndc := range []mgl64.Vec2{{1, 1}, {-1, -1}, {0.95, 0}, {0, -0.9}} {
		if hit, ok := Resolve(ndc, cam, globe, mgl64.Ident4()); ok {
			t.Errorf("Resolve(%v) hit %v, want miss", ndc, hit.Point)
		}
	}
}

func TestIntersectIgnoresBackFaces(t *testing.T) {
	globe := render3d.MakeSphere(1, 32, 24)

	// from inside the sphere every face is seen from behind
	ray := render3d.Ray{Origin: mgl64.Vec3{0, 0, 0}, Dir: mgl64.Vec3{0.1, 0.2, 1}.Normalize()}
	if _, ok := Intersect(ray, globe, mgl64.Ident4()); ok {
		t.Error("ray from the center hit a back face")
	}

	// through the whole globe: only the near side counts
	ray = render3d.Ray{Origin: mgl64.Vec3{0.05, 0.05, 5}, Dir: mgl64.Vec3{0, 0, -1}}
	hit, ok := Intersect(ray, globe, mgl64.Ident4())
	if !ok {
		t.Fatal("expected a hit")
	}
	if hit.Point.Z() < 0 {
		t.Errorf("hit the far side at %v", hit.Point)
	}
}

func TestIntersectNearestOfTwo(t *testing.T) {
	near := render3d.NewMesh()
	near.AddTriangle(
		render3d.Vertex3D{Pos: mgl64.Vec3{-1, -1, 1}, UV: mgl64.Vec2{0, 0}},
		render3d.Vertex3D{Pos: mgl64.Vec3{1, -1, 1}, UV: mgl64.Vec2{1, 0}},
		render3d.Vertex3D{Pos: mgl64.Vec3{0, 1, 1}, UV: mgl64.Vec2{0.5, 1}},
	)
	far := near.Transform(mgl64.Translate3D(0, 0, -2))
	mesh := render3d.NewMesh()
	mesh.Append(far)
	mesh.Append(near)

	ray := render3d.Ray{Origin: mgl64.Vec3{0, 0, 5}, Dir: mgl64.Vec3{0, 0, -1}}
	hit, ok := Intersect(ray, mesh, mgl64.Ident4())
	if !ok {
		t.Fatal("expected a hit")
	}
	if hit.Triangle != 1 {
		t.Errorf("hit triangle %d, want the nearer one (1)", hit.Triangle)
	}
	if math.Abs(hit.Distance-4) > 1e-9 {
		t.Errorf("distance = %v, want 4", hit.Distance)
	}
	// (0,0) is halfway up the triangle: barycentric UV interpolation
	if math.Abs(hit.UV.X()-0.5) > 1e-9 || math.Abs(hit.UV.Y()-0.5) > 1e-9 {
		t.Errorf("UV = %v, want (0.5,0.5)", hit.UV)
	}
}
