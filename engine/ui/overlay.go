// Package ui draws the 2D overlay on top of the globe: the title, the
// tree counter and the fact banners.
package ui

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/1siamBot/our-earth/engine/config"
)

// Notifier receives planting results from the game loop
type Notifier interface {
	ShowFact(text string)
	UpdateTreeCount(n int)
}

// Banner is one fact shown on screen
type Banner struct {
	Text    string
	X, Y    float64
	Opacity float64
	Hidden  bool

	hold float64 // seconds left before the fade starts
	fade *gween.Tween
}

// Fading reports whether the banner's hold has ended
func (b *Banner) Fading() bool { return b.fade != nil }

// Overlay implements Notifier and draws the HUD
type Overlay struct {
	ScreenW, ScreenH int
	Banners          []*Banner
	TreeCount        int

	// settled is set once a banner's hold has ended; the next fact then
	// clears every banner on screen
	settled bool
	// holds of cleared banners keep running and still set settled
	orphanHolds []float64

	hold      float64
	fadeEnd   float64
	fadeTime  float64
	fadeEase  ease.TweenFunc
	bannerMax float64
	rng       *rand.Rand

	titleFace *text.GoTextFace
	subFace   *text.GoTextFace
	countFace *text.GoTextFace
	factFace  *text.GoTextFace
}

// NewOverlay creates an overlay for a w×h viewport. rng positions the
// banners; pass nil for a randomly seeded one.
func NewOverlay(w, h int, facts config.FactsConfig, rng *rand.Rand) (*Overlay, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to parse overlay font: %w", err)
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	steps := FadeSteps(facts.FadeFactor, facts.FadeFloor)
	step := facts.FadeStep.Seconds()
	return &Overlay{
		ScreenW:   w,
		ScreenH:   h,
		settled:   true,
		hold:      facts.Hold.Seconds(),
		fadeEnd:   math.Pow(facts.FadeFactor, float64(steps)),
		fadeTime:  float64(steps) * step,
		fadeEase:  GeometricEase(facts.FadeFactor, step),
		bannerMax: 360,
		rng:       rng,
		titleFace: &text.GoTextFace{Source: src, Size: 32},
		subFace:   &text.GoTextFace{Source: src, Size: 18},
		countFace: &text.GoTextFace{Source: src, Size: 26},
		factFace:  &text.GoTextFace{Source: src, Size: 17},
	}, nil
}

// FadeSteps returns how many multiplications by factor it takes to bring
// an opacity of 1 down to floor or below
func FadeSteps(factor, floor float64) int {
	if factor <= 0 || factor >= 1 || floor >= 1 {
		return 0
	}
	return int(math.Ceil(math.Log(floor) / math.Log(factor)))
}

// GeometricEase multiplies the start value by factor once per elapsed
// step. It ignores the change argument, so pair it with a tween whose end
// value is the last step. The running time is float32, so a step boundary
// counts as reached within a small tolerance.
func GeometricEase(factor, step float64) ease.TweenFunc {
	return func(t, b, _, _ float32) float32 {
		k := math.Floor(float64(t)/step + 1e-4)
		return b * float32(math.Pow(factor, k))
	}
}

// Resize follows the window size
func (o *Overlay) Resize(w, h int) {
	o.ScreenW, o.ScreenH = w, h
}

// UpdateTreeCount overwrites the counter readout
func (o *Overlay) UpdateTreeCount(n int) {
	o.TreeCount = n
}

// ShowFact adds a banner somewhere in the upper-left quarter of the
// screen. Once an earlier banner has started fading, the existing
// banners are cleared first.
func (o *Overlay) ShowFact(fact string) {
	if len(o.Banners) > 0 && o.settled {
		for _, b := range o.Banners {
			if b.fade == nil {
				o.orphanHolds = append(o.orphanHolds, b.hold)
			}
		}
		o.Banners = o.Banners[:0]
		o.settled = false
	}
	o.Banners = append(o.Banners, &Banner{
		Text:    fact,
		X:       o.rng.Float64() * float64(o.ScreenW) * 0.5,
		Y:       o.rng.Float64() * float64(o.ScreenH) * 0.5,
		Opacity: 1,
		hold:    o.hold,
	})
}

// Settled reports whether a banner has finished its hold since the last
// clear
func (o *Overlay) Settled() bool { return o.settled }

// Update advances banner holds and fades by dt seconds
func (o *Overlay) Update(dt float64) {
	running := o.orphanHolds[:0]
	for _, h := range o.orphanHolds {
		if h -= dt; h > 0 {
			running = append(running, h)
			continue
		}
		o.settled = true
	}
	o.orphanHolds = running

	for _, b := range o.Banners {
		if b.Hidden {
			continue
		}
		rest := dt
		if b.fade == nil {
			b.hold -= rest
			if b.hold > 0 {
				continue
			}
			rest = -b.hold
			b.fade = gween.New(1, float32(o.fadeEnd), float32(o.fadeTime), o.fadeEase)
			o.settled = true
		}
		v, done := b.fade.Update(float32(rest))
		b.Opacity = float64(v)
		if done {
			b.Hidden = true
		}
	}
}

// Visible returns the banners still on screen
func (o *Overlay) Visible() []*Banner {
	var out []*Banner
	for _, b := range o.Banners {
		if !b.Hidden {
			out = append(out, b)
		}
	}
	return out
}

// Draw renders the title, counter and banners
func (o *Overlay) Draw(screen *ebiten.Image) {
	o.drawTitle(screen)
	o.drawCount(screen)
	for _, b := range o.Banners {
		if !b.Hidden {
			o.drawBanner(screen, b)
		}
	}
}

func (o *Overlay) drawTitle(screen *ebiten.Image) {
	cx := float64(o.ScreenW) / 2

	op := &text.DrawOptions{}
	op.GeoM.Translate(cx, 16)
	op.PrimaryAlign = text.AlignCenter
	op.ColorScale.ScaleWithColor(color.White)
	text.Draw(screen, "Our Earth", o.titleFace, op)

	op = &text.DrawOptions{}
	op.GeoM.Translate(cx, 58)
	op.PrimaryAlign = text.AlignCenter
	op.ColorScale.ScaleWithColor(color.RGBA{200, 220, 200, 255})
	text.Draw(screen, "Click the land to plant trees", o.subFace, op)
}

func (o *Overlay) drawCount(screen *ebiten.Image) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(20, float64(o.ScreenH)-48)
	op.ColorScale.ScaleWithColor(color.White)
	text.Draw(screen, fmt.Sprintf("Trees Planted: %d", o.TreeCount), o.countFace, op)
}

func (o *Overlay) drawBanner(screen *ebiten.Image, b *Banner) {
	lineH := o.factFace.Metrics().HAscent + o.factFace.Metrics().HDescent + 4
	lines := WrapText(b.Text, o.bannerMax, func(s string) float64 {
		w, _ := text.Measure(s, o.factFace, lineH)
		return w
	})

	const pad = 12
	w := float32(o.bannerMax + 2*pad)
	h := float32(float64(len(lines))*lineH + 2*pad)
	alpha := float32(b.Opacity)
	bg := color.RGBA{uint8(20 * alpha), uint8(60 * alpha), uint8(30 * alpha), uint8(200 * alpha)}
	vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), w, h, bg, false)

	for i, line := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(b.X+pad, b.Y+pad+float64(i)*lineH)
		op.ColorScale.ScaleWithColor(color.White)
		op.ColorScale.ScaleAlpha(alpha)
		text.Draw(screen, line, o.factFace, op)
	}
}

// WrapText breaks s into lines no wider than maxW as reported by
// measure. A single word wider than maxW gets a line of its own.
func WrapText(s string, maxW float64, measure func(string) float64) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		candidate := line + " " + w
		if measure(candidate) > maxW {
			lines = append(lines, line)
			line = w
			continue
		}
		line = candidate
	}
	return append(lines, line)
}
