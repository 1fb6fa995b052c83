// Package app ties the globe, picking, placement and overlay together
// into the per-frame game loop.
package app

import (
	"log"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/1siamBot/our-earth/engine/config"
	"github.com/1siamBot/our-earth/engine/core"
	"github.com/1siamBot/our-earth/engine/pick"
	"github.com/1siamBot/our-earth/engine/placement"
	"github.com/1siamBot/our-earth/engine/render3d"
	"github.com/1siamBot/our-earth/engine/texture"
	"github.com/1siamBot/our-earth/engine/ui"
)

// PlacementState debounces picking: one planting decision per press
type PlacementState struct {
	// Processed is set once a press has produced a globe hit and cleared
	// by the next press
	Processed bool
	// Pointer is the NDC of the last press
	Pointer mgl64.Vec2
	// pending holds the hit being decided; it is filled and drained
	// within a single frame
	pending *pick.Hit
}

// FrameResult reports what a frame did
type FrameResult struct {
	Hit      bool
	Decision placement.Decision
	Tree     *core.Tree
	Fact     string
}

// Session is the whole game state. It has no ebiten dependency so it can
// be driven frame by frame in tests.
type Session struct {
	Globe    *core.Globe
	Camera   *render3d.Camera3D
	Grid     *texture.PixelGrid
	Policy   placement.Policy
	Notifier ui.Notifier
	Events   *core.EventBus
	State    PlacementState

	Facts     []string
	FactEvery int

	rng   *rand.Rand
	frame uint64
}

// NewSession builds the globe and camera from cfg. grid is the
// rasterized globe texture. rng picks facts; nil seeds one randomly.
func NewSession(cfg *config.Config, grid *texture.PixelGrid, n ui.Notifier, rng *rand.Rand) *Session {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Session{
		Globe:  core.NewGlobe(cfg.Globe.Radius, cfg.Globe.WidthSegments, cfg.Globe.HeightSegments, cfg.Globe.SpinRate),
		Camera: NewCamera(cfg.Camera, cfg.Window.Width, cfg.Window.Height),
		Grid:   grid,
		Policy: placement.Policy{
			MinGreen: cfg.Placement.MinGreen,
			MaxBlue:  cfg.Placement.MaxBlue,
		},
		Notifier: n,
		Events:   core.NewEventBus(),
		// before the first press the pointer rests in the top-right corner
		State:     PlacementState{Pointer: mgl64.Vec2{1, 1}},
		Facts:     cfg.Facts.Items,
		FactEvery: cfg.Facts.Every,
		rng:       rng,
	}
}

// NewCamera creates the orbit camera described by cfg
func NewCamera(cfg config.CameraConfig, w, h int) *render3d.Camera3D {
	cam := render3d.NewCamera3D(w, h, cfg.FOV, cfg.Distance)
	cam.Near = cfg.Near
	cam.Far = cfg.Far
	cam.MinDistance = cfg.MinDistance
	cam.MaxDistance = cfg.MaxDistance
	cam.MaxPolar = mgl64.DegToRad(cfg.MaxPolarAngle)
	cam.Damping = cfg.Damping
	return cam
}

// Press records a pointer-down at ndc and re-arms picking
func (s *Session) Press(ndc mgl64.Vec2) {
	s.State.Pointer = ndc
	s.State.Processed = false
	s.Events.Emit(core.Event{Type: core.EvtPress, Frame: s.frame, Payload: ndc})
}

// Frame advances the game by dt seconds: the globe spins, the camera
// eases, and an armed press is resolved against the globe at most once.
func (s *Session) Frame(dt float64) FrameResult {
	s.frame++
	s.Globe.Advance(dt)
	s.Camera.Update()

	var res FrameResult
	if !s.State.Processed {
		if hit, ok := pick.Resolve(s.State.Pointer, s.Camera, s.Globe.Mesh, s.Globe.Model()); ok {
			s.State.pending = &hit
			s.State.Processed = true
			res = s.decide()
			s.State.pending = nil
		}
	}

	if a, ok := s.Notifier.(interface{ Update(float64) }); ok {
		a.Update(dt)
	}
	s.Events.Dispatch()
	return res
}

func (s *Session) decide() FrameResult {
	hit := *s.State.pending
	res := FrameResult{Hit: true}
	s.Events.Emit(core.Event{Type: core.EvtGlobeHit, Frame: s.frame, Payload: hit})

	res.Decision = s.Policy.Decide(hit.UV, s.Grid)
	if res.Decision != placement.Allowed {
		smp := s.Policy.Sample(hit.UV, s.Grid)
		log.Printf("[app] planting denied at pixel (%d,%d) rgb(%d,%d,%d)", smp.X, smp.Y, smp.R, smp.G, smp.B)
		s.Events.Emit(core.Event{Type: core.EvtPlantDenied, Frame: s.frame, Payload: smp})
		return res
	}

	res.Tree = s.Globe.PlantTree(hit)
	total := s.Globe.Counter.Value()
	s.Events.Emit(core.Event{Type: core.EvtTreePlanted, Frame: s.frame, Payload: core.TreePlanted{Tree: res.Tree, Total: total}})

	if total > 0 && s.FactEvery > 0 && total%s.FactEvery == 0 && len(s.Facts) > 0 {
		res.Fact = s.Facts[s.rng.IntN(len(s.Facts))]
		s.Notifier.ShowFact(res.Fact)
		s.Events.Emit(core.Event{Type: core.EvtFactMilestone, Frame: s.frame, Payload: core.FactMilestone{Total: total, Fact: res.Fact}})
	}
	s.Notifier.UpdateTreeCount(total)
	return res
}

// Trees returns the number of trees planted so far
func (s *Session) Trees() int { return s.Globe.Counter.Value() }
