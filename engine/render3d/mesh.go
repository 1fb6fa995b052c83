package render3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vertex3D is a vertex with position, normal, texture coordinate and color
type Vertex3D struct {
	Pos    mgl64.Vec3
	Normal mgl64.Vec3
	UV     mgl64.Vec2
	Color  Color3
}

// Triangle3D is three vertices, counter-clockwise when seen from the front
type Triangle3D struct {
	V [3]Vertex3D
}

// FaceNormal returns the geometric normal of the triangle
func (t Triangle3D) FaceNormal() mgl64.Vec3 {
	e1 := t.V[1].Pos.Sub(t.V[0].Pos)
	e2 := t.V[2].Pos.Sub(t.V[0].Pos)
	return e1.Cross(e2).Normalize()
}

// Mesh3D is a collection of triangles
type Mesh3D struct {
	Triangles []Triangle3D
}

func NewMesh() *Mesh3D { return &Mesh3D{} }

func (m *Mesh3D) AddTriangle(v0, v1, v2 Vertex3D) {
	m.Triangles = append(m.Triangles, Triangle3D{V: [3]Vertex3D{v0, v1, v2}})
}

func (m *Mesh3D) AddQuad(v0, v1, v2, v3 Vertex3D) {
	m.AddTriangle(v0, v1, v2)
	m.AddTriangle(v0, v2, v3)
}

// Transform returns a copy with positions and normals moved by mat
func (m *Mesh3D) Transform(mat mgl64.Mat4) *Mesh3D {
	out := &Mesh3D{Triangles: make([]Triangle3D, len(m.Triangles))}
	for i, tri := range m.Triangles {
		for j := 0; j < 3; j++ {
			v := tri.V[j]
			v.Pos = mgl64.TransformCoordinate(v.Pos, mat)
			v.Normal = mgl64.TransformNormal(v.Normal, mat).Normalize()
			out.Triangles[i].V[j] = v
		}
	}
	return out
}

func (m *Mesh3D) Append(other *Mesh3D) {
	m.Triangles = append(m.Triangles, other.Triangles...)
}

// --- Primitive generators ---

// MakeSphere builds a UV sphere laid out like three.js SphereGeometry:
// rows run from the north pole (v=1) to the south pole (v=0), u grows
// with the azimuth phi where x = -cos(phi)·sin(theta), z = sin(phi)·sin(theta).
// The seam column is duplicated so u spans [0,1] without wrapping.
func MakeSphere(radius float64, widthSegments, heightSegments int) *Mesh3D {
	if widthSegments < 3 {
		widthSegments = 3
	}
	if heightSegments < 2 {
		heightSegments = 2
	}

	grid := make([][]Vertex3D, heightSegments+1)
	for iy := 0; iy <= heightSegments; iy++ {
		v := float64(iy) / float64(heightSegments)
		theta := v * math.Pi

		// pole rows get a half-step u offset so their triangles sample the
		// middle of each column
		uOffset := 0.0
		if iy == 0 {
			uOffset = 0.5 / float64(widthSegments)
		} else if iy == heightSegments {
			uOffset = -0.5 / float64(widthSegments)
		}

		row := make([]Vertex3D, widthSegments+1)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float64(ix) / float64(widthSegments)
			phi := u * 2 * math.Pi
			n := mgl64.Vec3{
				-math.Cos(phi) * math.Sin(theta),
				math.Cos(theta),
				math.Sin(phi) * math.Sin(theta),
			}
			row[ix] = Vertex3D{
				Pos:    n.Mul(radius),
				Normal: n.Normalize(),
				UV:     mgl64.Vec2{u + uOffset, 1 - v},
				Color:  Color3{1, 1, 1},
			}
		}
		grid[iy] = row
	}

	m := NewMesh()
	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]
			if iy != 0 {
				m.AddTriangle(a, b, d)
			}
			if iy != heightSegments-1 {
				m.AddTriangle(b, c, d)
			}
		}
	}
	return m
}

// MakeBox builds an axis-aligned box centered at the origin
func MakeBox(w, h, d float64, c Color3) *Mesh3D {
	m := NewMesh()
	hw, hh, hd := w/2, h/2, d/2

	v := [8]mgl64.Vec3{
		{-hw, -hh, -hd}, {hw, -hh, -hd}, {hw, hh, -hd}, {-hw, hh, -hd},
		{-hw, -hh, hd}, {hw, -hh, hd}, {hw, hh, hd}, {-hw, hh, hd},
	}

	// counter-clockwise seen from outside
	faces := [][4]int{
		{1, 0, 3, 2}, // back (-Z)
		{4, 5, 6, 7}, // front (+Z)
		{0, 4, 7, 3}, // left
		{5, 1, 2, 6}, // right
		{7, 6, 2, 3}, // top
		{0, 1, 5, 4}, // bottom
	}
	normals := []mgl64.Vec3{
		{0, 0, -1}, {0, 0, 1}, {-1, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, -1, 0},
	}

	for fi, f := range faces {
		n := normals[fi]
		mk := func(i int) Vertex3D { return Vertex3D{Pos: v[f[i]], Normal: n, Color: c} }
		m.AddQuad(mk(0), mk(1), mk(2), mk(3))
	}
	return m
}

// MakeCone builds a cone standing on the XZ plane, apex up, centered on
// its half height
func MakeCone(radius, height float64, segments int, c Color3) *Mesh3D {
	m := NewMesh()
	if segments < 4 {
		segments = 4
	}
	hh := height / 2
	tip := mgl64.Vec3{0, hh, 0}
	bot := mgl64.Vec3{0, -hh, 0}
	slopeY := radius / height

	for i := 0; i < segments; i++ {
		a0 := float64(i) / float64(segments) * 2 * math.Pi
		a1 := float64(i+1) / float64(segments) * 2 * math.Pi
		x0, z0 := radius*math.Cos(a0), radius*math.Sin(a0)
		x1, z1 := radius*math.Cos(a1), radius*math.Sin(a1)

		p0b := mgl64.Vec3{x0, -hh, z0}
		p1b := mgl64.Vec3{x1, -hh, z1}

		n0 := mgl64.Vec3{x0, slopeY * radius, z0}.Normalize()
		n1 := mgl64.Vec3{x1, slopeY * radius, z1}.Normalize()
		nTip := n0.Add(n1).Normalize()

		m.AddTriangle(
			Vertex3D{Pos: p1b, Normal: n1, Color: c},
			Vertex3D{Pos: p0b, Normal: n0, Color: c},
			Vertex3D{Pos: tip, Normal: nTip, Color: c},
		)

		botN := mgl64.Vec3{0, -1, 0}
		m.AddTriangle(
			Vertex3D{Pos: bot, Normal: botN, Color: c},
			Vertex3D{Pos: p0b, Normal: botN, Color: c},
			Vertex3D{Pos: p1b, Normal: botN, Color: c},
		)
	}
	return m
}
