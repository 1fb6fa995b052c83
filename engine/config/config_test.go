package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Window.Title != "Our Earth" {
		t.Errorf("Window.Title = %q, want %q", cfg.Window.Title, "Our Earth")
	}
	if cfg.Globe.SpinRate != 0.4 {
		t.Errorf("Globe.SpinRate = %v, want 0.4", cfg.Globe.SpinRate)
	}
	if cfg.Camera.FOV != 75 || cfg.Camera.Distance != 2.5 {
		t.Errorf("Camera fov/distance = %v/%v, want 75/2.5", cfg.Camera.FOV, cfg.Camera.Distance)
	}
	if cfg.Placement.MinGreen != 200 || cfg.Placement.MaxBlue != 100 {
		t.Errorf("Placement = %+v, want {200 100}", cfg.Placement)
	}
	if cfg.Facts.Every != 3 {
		t.Errorf("Facts.Every = %d, want 3", cfg.Facts.Every)
	}
	if cfg.Facts.Hold != 5*time.Second {
		t.Errorf("Facts.Hold = %v, want 5s", cfg.Facts.Hold)
	}
	if cfg.Facts.FadeStep != 10*time.Millisecond {
		t.Errorf("Facts.FadeStep = %v, want 10ms", cfg.Facts.FadeStep)
	}
	if len(cfg.Facts.Items) != 14 {
		t.Errorf("len(Facts.Items) = %d, want 14", len(cfg.Facts.Items))
	}
}

func TestDefaultReturnsFreshCopy(t *testing.T) {
	a := Default()
	a.Facts.Every = 99
	if b := Default(); b.Facts.Every != 3 {
		t.Errorf("Default() shares state: Facts.Every = %d", b.Facts.Every)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.yaml")
	data := []byte("globe:\n  spinRate: 1.2\nfacts:\n  every: 5\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Globe.SpinRate != 1.2 {
		t.Errorf("Globe.SpinRate = %v, want 1.2", cfg.Globe.SpinRate)
	}
	if cfg.Facts.Every != 5 {
		t.Errorf("Facts.Every = %d, want 5", cfg.Facts.Every)
	}
	// untouched keys keep their defaults
	if cfg.Globe.Radius != 1 || len(cfg.Facts.Items) != 14 {
		t.Errorf("defaults lost: radius %v, %d facts", cfg.Globe.Radius, len(cfg.Facts.Items))
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}
	if cfg.Window.Width != 1280 {
		t.Errorf("Window.Width = %d, want 1280", cfg.Window.Width)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want os.ErrNotExist", err)
	}
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("globe: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load(bad yaml) returned nil error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"no earth texture", func(c *Config) { c.Assets.Earth = "" }},
		{"negative radius", func(c *Config) { c.Globe.Radius = -1 }},
		{"too few segments", func(c *Config) { c.Globe.WidthSegments = 2 }},
		{"fov 180", func(c *Config) { c.Camera.FOV = 180 }},
		{"far before near", func(c *Config) { c.Camera.Far = 0.05 }},
		{"min above max distance", func(c *Config) { c.Camera.MinDistance = 10 }},
		{"damping above one", func(c *Config) { c.Camera.Damping = 2 }},
		{"zero fact cadence", func(c *Config) { c.Facts.Every = 0 }},
		{"fade factor one", func(c *Config) { c.Facts.FadeFactor = 1 }},
		{"zero fade step", func(c *Config) { c.Facts.FadeStep = 0 }},
		{"no facts", func(c *Config) { c.Facts.Items = nil }},
		{"loud audio", func(c *Config) { c.Audio.Volume = 1.5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}

	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v, want nil", err)
	}
}
