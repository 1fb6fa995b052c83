package app

import (
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/1siamBot/our-earth/engine/config"
	"github.com/1siamBot/our-earth/engine/core"
	"github.com/1siamBot/our-earth/engine/placement"
	"github.com/1siamBot/our-earth/engine/texture"
)

type recorder struct {
	facts  []string
	counts []int
	ticks  int
}

func (r *recorder) ShowFact(text string)  { r.facts = append(r.facts, text) }
func (r *recorder) UpdateTreeCount(n int) { r.counts = append(r.counts, n) }
func (r *recorder) Update(float64)        { r.ticks++ }

func solidGrid(r, g, b uint8) *texture.PixelGrid {
	const w, h = 8, 4
	pix := make([]byte, w*h*4)
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = r, g, b, 255
	}
	return &texture.PixelGrid{Width: w, Height: h, Pix: pix}
}

func newTestSession(grid *texture.PixelGrid) (*Session, *recorder) {
	rec := &recorder{}
	s := NewSession(config.Default(), grid, rec, rand.New(rand.NewPCG(3, 4)))
	return s, rec
}

var center = mgl64.Vec2{0, 0}

func TestInitialState(t *testing.T) {
	s, rec := newTestSession(solidGrid(0, 255, 0))
	if s.State.Pointer != (mgl64.Vec2{1, 1}) {
		t.Errorf("initial pointer = %v, want (1, 1)", s.State.Pointer)
	}
	if s.State.Processed {
		t.Error("latch set before any press")
	}

	// the corner ray misses the globe, so nothing is planted
	for i := 0; i < 10; i++ {
		s.Frame(1.0 / 60)
	}
	if s.Trees() != 0 || len(rec.counts) != 0 {
		t.Errorf("planted %d trees without a press", s.Trees())
	}
	if s.State.Processed {
		t.Error("latch set by a miss")
	}
	if rec.ticks != 10 {
		t.Errorf("overlay advanced %d times, want 10", rec.ticks)
	}
}

func TestOnePlantingPerPress(t *testing.T) {
	s, rec := newTestSession(solidGrid(0, 255, 0))

	s.Press(center)
	res := s.Frame(1.0 / 60)
	if !res.Hit || res.Decision != placement.Allowed || res.Tree == nil {
		t.Fatalf("first frame = %+v, want an allowed hit with a tree", res)
	}
	if !s.State.Processed {
		t.Error("latch clear after a hit")
	}

	// the hit persists every frame, but the latch holds
	for i := 0; i < 100; i++ {
		if res := s.Frame(1.0 / 60); res.Hit {
			t.Fatalf("frame %d resolved the same press again", i)
		}
	}
	if s.Trees() != 1 {
		t.Errorf("Trees() = %d, want 1", s.Trees())
	}
	if len(rec.counts) != 1 || rec.counts[0] != 1 {
		t.Errorf("counter updates = %v, want [1]", rec.counts)
	}

	s.Press(center)
	s.Frame(1.0 / 60)
	if s.Trees() != 2 {
		t.Errorf("Trees() after a second press = %d, want 2", s.Trees())
	}
}

func TestPressOffGlobeKeepsLatchClear(t *testing.T) {
	s, _ := newTestSession(solidGrid(0, 255, 0))
	s.Press(mgl64.Vec2{-0.99, 0.99})
	if res := s.Frame(1.0 / 60); res.Hit {
		t.Fatal("corner press hit the globe")
	}
	if s.State.Processed {
		t.Error("latch set by a miss")
	}
}

func TestDeniedPixel(t *testing.T) {
	s, rec := newTestSession(solidGrid(0, 0, 255))

	var denied int
	s.Events.On(core.EvtPlantDenied, func(core.Event) { denied++ })

	s.Press(center)
	res := s.Frame(1.0 / 60)
	if !res.Hit || res.Decision != placement.Denied {
		t.Fatalf("frame = %+v, want a denied hit", res)
	}
	if s.Trees() != 0 || len(rec.counts) != 0 {
		t.Errorf("denied pick planted: trees %d, counter updates %v", s.Trees(), rec.counts)
	}
	if !s.State.Processed {
		t.Error("latch clear after a denied hit")
	}
	if denied != 1 {
		t.Errorf("EvtPlantDenied fired %d times, want 1", denied)
	}

	// a denied press is not retried
	s.Frame(1.0 / 60)
	if denied != 1 {
		t.Errorf("EvtPlantDenied fired %d times after another frame, want 1", denied)
	}
}

func TestFactEveryThirdTree(t *testing.T) {
	s, rec := newTestSession(solidGrid(0, 255, 0))

	var milestones []int
	s.Events.On(core.EvtFactMilestone, func(e core.Event) {
		milestones = append(milestones, e.Payload.(core.FactMilestone).Total)
	})

	for n := 1; n <= 10; n++ {
		s.Press(center)
		res := s.Frame(1.0 / 60)
		wantFact := n%3 == 0
		if (res.Fact != "") != wantFact {
			t.Errorf("tree %d: fact %q, want fact %v", n, res.Fact, wantFact)
		}
		// extra frames never re-trigger
		s.Frame(1.0 / 60)
	}

	if len(rec.facts) != 3 {
		t.Errorf("ShowFact called %d times, want 3", len(rec.facts))
	}
	want := []int{3, 6, 9}
	if len(milestones) != len(want) {
		t.Fatalf("milestones = %v, want %v", milestones, want)
	}
	for i := range want {
		if milestones[i] != want[i] {
			t.Errorf("milestones = %v, want %v", milestones, want)
			break
		}
	}
	for i, n := range rec.counts {
		if n != i+1 {
			t.Fatalf("counter updates = %v, want 1..10", rec.counts)
		}
	}

	facts := config.Default().Facts.Items
	for _, f := range rec.facts {
		found := false
		for _, known := range facts {
			if f == known {
				found = true
			}
		}
		if !found {
			t.Errorf("fact %q is not in the configured list", f)
		}
	}
}

func TestTreePlantedEvent(t *testing.T) {
	s, _ := newTestSession(solidGrid(0, 255, 0))

	var got []core.TreePlanted
	s.Events.On(core.EvtTreePlanted, func(e core.Event) {
		got = append(got, e.Payload.(core.TreePlanted))
	})

	s.Press(center)
	s.Frame(0)
	if len(got) != 1 {
		t.Fatalf("EvtTreePlanted fired %d times, want 1", len(got))
	}
	if got[0].Total != 1 || got[0].Tree == nil {
		t.Errorf("payload = %+v, want total 1 with a tree", got[0])
	}
	// the tree sits on the side facing the camera
	if got[0].Tree.Position.Z() < 0.9 {
		t.Errorf("tree at %v, want near (0, 0, 1)", got[0].Tree.Position)
	}
}

func TestGlobeSpinsWithTime(t *testing.T) {
	s, _ := newTestSession(solidGrid(0, 255, 0))
	s.Frame(0.5)
	s.Frame(0.5)
	if got, want := s.Globe.Rotation, 0.4; got < want-1e-9 || got > want+1e-9 {
		t.Errorf("Rotation after 1s = %v, want %v", got, want)
	}
}
