package main

import (
	"context"
	"flag"
	"image"
	"log"
	"os"
	"os/signal"

	"github.com/hajimehoshi/ebiten/v2"
	ebaudio "github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/1siamBot/our-earth/engine/app"
	"github.com/1siamBot/our-earth/engine/audio"
	"github.com/1siamBot/our-earth/engine/config"
	"github.com/1siamBot/our-earth/engine/texture"
)

func main() {
	configPath := flag.String("config", "", "YAML file overriding the default settings")
	earthPath := flag.String("earth", "", "globe texture (overrides assets.earth)")
	skyboxPath := flag.String("skybox", "", "skybox texture (overrides assets.skybox)")
	mute := flag.Bool("mute", false, "disable sound effects")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *earthPath != "" {
		cfg.Assets.Earth = *earthPath
	}
	if *skyboxPath != "" {
		cfg.Assets.Skybox = *skyboxPath
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// the loop starts only once every texture has decoded
	paths := []string{texture.ResolvePath(cfg.Assets.Earth)}
	if cfg.Assets.Skybox != "" {
		paths = append(paths, texture.ResolvePath(cfg.Assets.Skybox))
	}
	imgs, err := texture.LoadAll(ctx, paths...)
	if err != nil {
		log.Fatalf("failed to load textures: %v", err)
	}
	assets := app.Assets{Earth: imgs[0]}
	if len(imgs) > 1 {
		assets.Skybox = imgs[1]
	}
	logSize("earth", assets.Earth)

	var am *audio.AudioManager
	if cfg.Audio.Enabled && !*mute {
		am = audio.NewAudioManager(ebaudio.NewContext(audio.SampleRate), cfg.Audio.Volume)
	}

	game, err := app.NewGame(cfg, assets, am)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(true)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

func logSize(name string, img image.Image) {
	b := img.Bounds()
	log.Printf("[main] %s texture: %dx%d", name, b.Dx(), b.Dy())
}
