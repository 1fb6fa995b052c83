package app

import (
	"errors"
	"fmt"
	"image"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/1siamBot/our-earth/engine/audio"
	"github.com/1siamBot/our-earth/engine/config"
	"github.com/1siamBot/our-earth/engine/core"
	"github.com/1siamBot/our-earth/engine/input"
	"github.com/1siamBot/our-earth/engine/pick"
	"github.com/1siamBot/our-earth/engine/render3d"
	"github.com/1siamBot/our-earth/engine/texture"
	"github.com/1siamBot/our-earth/engine/ui"
)

// wheel notches to zoom fraction
const zoomPerNotch = 0.05

// Assets are the decoded startup images
type Assets struct {
	Earth  image.Image
	Skybox image.Image // optional
}

// Game implements ebiten.Game interface
type Game struct {
	cfg      *config.Config
	session  *Session
	renderer *render3d.Renderer3D
	overlay  *ui.Overlay
	input    *input.InputState
	audio    *audio.AudioManager
	clock    *core.FrameClock

	globeTex *ebiten.Image
	skyTex   *ebiten.Image

	screenW, screenH int
}

// NewGame wires the session to rendering, input and sound. am may be nil.
func NewGame(cfg *config.Config, assets Assets, am *audio.AudioManager) (*Game, error) {
	if assets.Earth == nil {
		return nil, errors.New("missing earth texture")
	}
	grid, err := texture.RasterizeChecked(assets.Earth)
	if err != nil {
		return nil, fmt.Errorf("failed to sample earth texture: %w", err)
	}
	overlay, err := ui.NewOverlay(cfg.Window.Width, cfg.Window.Height, cfg.Facts, nil)
	if err != nil {
		return nil, err
	}
	if am == nil {
		am = audio.NewAudioManager(nil, 0)
	}

	session := NewSession(cfg, grid, overlay, nil)
	g := &Game{
		cfg:      cfg,
		session:  session,
		renderer: render3d.NewRenderer3D(session.Camera),
		overlay:  overlay,
		input:    input.NewInputState(),
		audio:    am,
		clock:    core.NewFrameClock(),
		globeTex: ebiten.NewImageFromImage(assets.Earth),
		screenW:  cfg.Window.Width,
		screenH:  cfg.Window.Height,
	}
	if assets.Skybox != nil {
		g.skyTex = ebiten.NewImageFromImage(assets.Skybox)
	}
	g.subscribe()

	log.Printf("[app] globe texture %dx%d, %d facts", grid.Width, grid.Height, len(cfg.Facts.Items))
	return g, nil
}

// Session exposes the game state
func (g *Game) Session() *Session { return g.session }

func (g *Game) subscribe() {
	ev := g.session.Events
	ev.On(core.EvtTreePlanted, func(e core.Event) {
		p := e.Payload.(core.TreePlanted)
		g.renderer.Particles.AddSprout(p.Tree.Position, p.Tree.Normal)
		g.audio.PlaySFX(audio.SndPlant)
		log.Printf("[app] tree #%d planted (frame %d)", p.Total, e.Frame)
	})
	ev.On(core.EvtPlantDenied, func(core.Event) {
		g.audio.PlaySFX(audio.SndDenied)
	})
	ev.On(core.EvtFactMilestone, func(e core.Event) {
		p := e.Payload.(core.FactMilestone)
		g.audio.PlaySFX(audio.SndFact)
		log.Printf("[app] %d trees, showing fact: %s", p.Total, p.Fact)
	})
}

func (g *Game) Update() error {
	dt := g.clock.Tick()
	g.input.Update()

	if g.input.IsKeyJustPressed(ebiten.KeyEscape) {
		log.Printf("[app] exiting after %d frames, %d trees planted", g.clock.Frames(), g.session.Trees())
		return ebiten.Termination
	}

	if p, ok := g.input.LastPress(); ok {
		g.session.Press(pick.NDC(p.X, p.Y, g.screenW, g.screenH))
	}
	g.handleCamera(dt)

	g.session.Frame(dt)
	g.renderer.Update(dt)
	return nil
}

// handleCamera turns drags, the wheel and the arrow keys into orbit moves
func (g *Game) handleCamera(dt float64) {
	cam := g.session.Camera
	h := float64(g.screenH)
	speed := g.cfg.Camera.RotateSpeed

	// a full-height drag turns the camera once around
	if dx, dy := g.input.OrbitDelta(); (dx != 0 || dy != 0) && h > 0 {
		cam.Rotate(
			-2*math.Pi*float64(dx)/h*speed,
			-2*math.Pi*float64(dy)/h*speed,
		)
	}

	if g.input.ScrollY != 0 {
		cam.Zoom(g.input.ScrollY * zoomPerNotch)
	}

	keySpeed := g.cfg.Camera.KeyRotateSpeed * dt
	dAz := g.input.KeyAxis(ebiten.KeyLeft, ebiten.KeyRight) * keySpeed
	dPolar := g.input.KeyAxis(ebiten.KeyUp, ebiten.KeyDown) * keySpeed
	if dAz != 0 || dPolar != 0 {
		cam.Rotate(dAz, dPolar)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	globe := g.session.Globe
	model := globe.Model()

	g.renderer.DrawSkybox(screen, g.skyTex)
	g.renderer.DrawTextured(screen, globe.Mesh, model, g.globeTex)
	g.renderer.DrawLitSorted(screen, globe.PlacedTrees())
	g.renderer.DrawParticles(screen, model)
	g.overlay.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.screenW || outsideHeight != g.screenH {
		g.screenW, g.screenH = outsideWidth, outsideHeight
		g.session.Camera.Resize(outsideWidth, outsideHeight)
		g.overlay.Resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
