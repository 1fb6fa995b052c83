package render3d

import (
	"image/color"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// CullMode selects which triangles renderMesh drops
type CullMode uint8

const (
	CullNone CullMode = iota
	CullBack          // drop clockwise (back-facing) triangles
)

// Placed is a mesh with its model matrix
type Placed struct {
	Mesh  *Mesh3D
	Model mgl64.Mat4
}

// Renderer3D draws meshes with DrawTriangles, one batch per source image
type Renderer3D struct {
	Camera    *Camera3D
	Lighting  LightingSetup
	Particles *ParticleSystem

	whiteImg *ebiten.Image
	skybox   *Mesh3D

	// scratch buffers reused across frames
	vertices []ebiten.Vertex
	indices  []uint16
	sorted   []sortedTri
}

type sortedTri struct {
	vs    [3]ebiten.Vertex
	depth float64
}

type clipVert struct {
	pos mgl64.Vec4
	uv  mgl64.Vec2
	col Color3
}

// NewRenderer3D creates the renderer around an existing camera
func NewRenderer3D(cam *Camera3D) *Renderer3D {
	r := &Renderer3D{
		Camera:    cam,
		Lighting:  DefaultLighting(),
		Particles: NewParticleSystem(),
		skybox:    MakeSkybox(50, 8),
	}

	// small white image for flat colored triangles
	r.whiteImg = ebiten.NewImage(4, 4)
	r.whiteImg.Fill(color.White)

	return r
}

// Update advances the particles
func (r *Renderer3D) Update(dt float64) {
	r.Particles.Update(dt)
}

// DrawSkybox draws a cube centered on the eye with tex on all six faces
func (r *Renderer3D) DrawSkybox(screen, tex *ebiten.Image) {
	if tex == nil {
		screen.Fill(color.RGBA{4, 6, 20, 255})
		return
	}
	model := mgl64.Translate3D(r.Camera.Eye().Elem())
	r.renderMesh(screen, r.skybox, model, tex, CullNone)
}

// DrawTextured draws an unlit textured mesh with back faces culled
func (r *Renderer3D) DrawTextured(screen *ebiten.Image, mesh *Mesh3D, model mgl64.Mat4, tex *ebiten.Image) {
	r.renderMesh(screen, mesh, model, tex, CullBack)
}

// DrawLitSorted draws small lit meshes sorted back-to-front by triangle.
// Objects whose anchor faces away from the camera across the globe are
// skipped; anchors are the model translations, assumed to sit on a
// sphere around the origin.
func (r *Renderer3D) DrawLitSorted(screen *ebiten.Image, objects []Placed) {
	eye := r.Camera.Eye()
	vp := r.Camera.ViewProj()
	r.sorted = r.sorted[:0]

	for _, obj := range objects {
		anchor := obj.Model.Col(3).Vec3()
		if anchor.Dot(eye.Sub(anchor)) <= 0 {
			continue
		}
		mvp := vp.Mul4(obj.Model)
		for _, tri := range obj.Mesh.Triangles {
			var in [3]clipVert
			depth := 0.0
			for i := 0; i < 3; i++ {
				v := tri.V[i]
				n := mgl64.TransformNormal(v.Normal, obj.Model).Normalize()
				in[i] = clipVert{
					pos: mvp.Mul4x1(v.Pos.Vec4(1)),
					col: r.Lighting.ComputeLighting(n, v.Color),
				}
				depth += in[i].pos.W()
			}
			poly := clipNear(in, r.Camera.Near)
			for k := 1; k+1 < len(poly); k++ {
				fan := [3]clipVert{poly[0], poly[k], poly[k+1]}
				var vs [3]ebiten.Vertex
				for i := range fan {
					vs[i] = r.toScreen(fan[i], nil)
				}
				r.sorted = append(r.sorted, sortedTri{vs: vs, depth: depth / 3})
			}
		}
	}

	sort.Slice(r.sorted, func(i, j int) bool {
		return r.sorted[i].depth > r.sorted[j].depth
	})

	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]
	for _, t := range r.sorted {
		r.push(screen, t.vs, r.whiteImg)
	}
	r.flush(screen, r.whiteImg)
}

// DrawParticles draws particles as dots; model places them in the world
func (r *Renderer3D) DrawParticles(screen *ebiten.Image, model mgl64.Mat4) {
	eye := r.Camera.Eye()
	for _, p := range r.Particles.Particles {
		if p.Alpha < 0.01 {
			continue
		}
		wp := mgl64.TransformCoordinate(p.Pos, model)
		if wp.Dot(eye.Sub(wp)) <= 0 {
			continue
		}
		sx, sy, _, ok := r.Camera.Project(wp)
		if !ok {
			continue
		}
		clr := color.RGBA{
			uint8(p.Color.R * p.Alpha * 255),
			uint8(p.Color.G * p.Alpha * 255),
			uint8(p.Color.B * p.Alpha * 255),
			uint8(p.Alpha * 255),
		}
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(p.Size), clr, true)
	}
}

// renderMesh projects, clips and batches an unlit mesh. With a texture,
// vertex UVs address it (v=1 is the top row); without one, vertex colors
// are drawn flat.
func (r *Renderer3D) renderMesh(screen *ebiten.Image, mesh *Mesh3D, model mgl64.Mat4, tex *ebiten.Image, cull CullMode) {
	if len(mesh.Triangles) == 0 {
		return
	}
	src := tex
	if src == nil {
		src = r.whiteImg
	}

	mvp := r.Camera.ViewProj().Mul4(model)
	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]

	for _, tri := range mesh.Triangles {
		var in [3]clipVert
		for i := 0; i < 3; i++ {
			v := tri.V[i]
			in[i] = clipVert{pos: mvp.Mul4x1(v.Pos.Vec4(1)), uv: v.UV, col: v.Color}
		}

		poly := clipNear(in, r.Camera.Near)
		for k := 1; k+1 < len(poly); k++ {
			var vs [3]ebiten.Vertex
			vs[0] = r.toScreen(poly[0], tex)
			vs[1] = r.toScreen(poly[k], tex)
			vs[2] = r.toScreen(poly[k+1], tex)

			if cull == CullBack && !frontFacing(vs) {
				continue
			}
			r.push(screen, vs, src)
		}
	}
	r.flush(screen, src)
}

func (r *Renderer3D) toScreen(v clipVert, tex *ebiten.Image) ebiten.Vertex {
	sw := float64(r.Camera.ScreenW)
	sh := float64(r.Camera.ScreenH)
	w := v.pos.W()
	sx := (v.pos.X()/w*0.5 + 0.5) * sw
	sy := (1 - (v.pos.Y()/w*0.5 + 0.5)) * sh

	out := ebiten.Vertex{
		DstX:   float32(sx),
		DstY:   float32(sy),
		SrcX:   1,
		SrcY:   1,
		ColorR: float32(v.col.R),
		ColorG: float32(v.col.G),
		ColorB: float32(v.col.B),
		ColorA: 1,
	}
	if tex != nil {
		b := tex.Bounds()
		out.SrcX = float32(v.uv.X() * float64(b.Dx()))
		out.SrcY = float32((1 - v.uv.Y()) * float64(b.Dy()))
	}
	return out
}

func (r *Renderer3D) push(screen *ebiten.Image, vs [3]ebiten.Vertex, src *ebiten.Image) {
	base := uint16(len(r.vertices))
	r.vertices = append(r.vertices, vs[0], vs[1], vs[2])
	r.indices = append(r.indices, base, base+1, base+2)

	// flush if approaching uint16 limit
	if len(r.vertices) >= 65000 {
		r.flush(screen, src)
	}
}

func (r *Renderer3D) flush(screen *ebiten.Image, src *ebiten.Image) {
	if len(r.vertices) == 0 {
		return
	}
	op := &ebiten.DrawTrianglesOptions{Filter: ebiten.FilterLinear}
	screen.DrawTriangles(r.vertices, r.indices, src, op)
	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]
}

// frontFacing reports whether a screen-space (Y down) triangle was
// counter-clockwise in NDC
func frontFacing(vs [3]ebiten.Vertex) bool {
	ax := vs[1].DstX - vs[0].DstX
	ay := vs[1].DstY - vs[0].DstY
	bx := vs[2].DstX - vs[0].DstX
	by := vs[2].DstY - vs[0].DstY
	return ax*by-ay*bx < -0.01
}

// clipNear clips a clip-space triangle against w >= near and returns the
// resulting convex polygon (0, 3 or 4 vertices)
func clipNear(in [3]clipVert, near float64) []clipVert {
	out := make([]clipVert, 0, 4)
	for i := 0; i < 3; i++ {
		a := in[i]
		b := in[(i+1)%3]
		da := a.pos.W() - near
		db := b.pos.W() - near
		if da >= 0 {
			out = append(out, a)
		}
		if (da >= 0) != (db >= 0) {
			t := da / (da - db)
			out = append(out, clipVert{
				pos: a.pos.Add(b.pos.Sub(a.pos).Mul(t)),
				uv:  a.uv.Add(b.uv.Sub(a.uv).Mul(t)),
				col: a.col.Lerp(b.col, t),
			})
		}
	}
	return out
}

// MakeSkybox builds a cube whose faces each map the full
// [0,1]² texture. Faces are subdivided so affine texture mapping stays
// close to perspective-correct.
func MakeSkybox(half float64, subdiv int) *Mesh3D {
	if subdiv < 1 {
		subdiv = 1
	}
	m := NewMesh()
	// origin corner, u axis, v axis of each face as seen from inside
	faces := [6][3]mgl64.Vec3{
		{{half, -half, half}, {0, 0, -1}, {0, 1, 0}},   // +X
		{{-half, -half, -half}, {0, 0, 1}, {0, 1, 0}},  // -X
		{{-half, half, half}, {1, 0, 0}, {0, 0, -1}},   // +Y
		{{-half, -half, -half}, {1, 0, 0}, {0, 0, 1}},  // -Y
		{{-half, -half, half}, {1, 0, 0}, {0, 1, 0}},   // +Z
		{{half, -half, -half}, {-1, 0, 0}, {0, 1, 0}},  // -Z
	}
	size := 2 * half
	step := 1.0 / float64(subdiv)
	white := Color3{1, 1, 1}
	for _, f := range faces {
		origin, ua, va := f[0], f[1], f[2]
		n := ua.Cross(va)
		vert := func(i, j int) Vertex3D {
			u := float64(i) * step
			v := float64(j) * step
			p := origin.Add(ua.Mul(u * size)).Add(va.Mul(v * size))
			return Vertex3D{Pos: p, Normal: n, UV: mgl64.Vec2{u, v}, Color: white}
		}
		for j := 0; j < subdiv; j++ {
			for i := 0; i < subdiv; i++ {
				m.AddQuad(vert(i, j), vert(i+1, j), vert(i+1, j+1), vert(i, j+1))
			}
		}
	}
	return m
}
