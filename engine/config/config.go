// Package config holds the game settings. Defaults are embedded; a YAML
// file can override any subset of them.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid config")

// Config is the full game configuration
type Config struct {
	Window    WindowConfig    `yaml:"window"`
	Assets    AssetsConfig    `yaml:"assets"`
	Globe     GlobeConfig     `yaml:"globe"`
	Camera    CameraConfig    `yaml:"camera"`
	Placement PlacementConfig `yaml:"placement"`
	Facts     FactsConfig     `yaml:"facts"`
	Audio     AudioConfig     `yaml:"audio"`
}

// WindowConfig is the initial window
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// AssetsConfig points at the two textures loaded at startup
type AssetsConfig struct {
	Earth  string `yaml:"earth"`
	Skybox string `yaml:"skybox"`
}

// GlobeConfig shapes the sphere
type GlobeConfig struct {
	Radius         float64 `yaml:"radius"`
	WidthSegments  int     `yaml:"widthSegments"`
	HeightSegments int     `yaml:"heightSegments"`
	// SpinRate is in radians per second
	SpinRate float64 `yaml:"spinRate"`
}

// CameraConfig is the perspective orbit camera. Angles are degrees.
type CameraConfig struct {
	FOV            float64 `yaml:"fov"`
	Near           float64 `yaml:"near"`
	Far            float64 `yaml:"far"`
	Distance       float64 `yaml:"distance"`
	MinDistance    float64 `yaml:"minDistance"`
	MaxDistance    float64 `yaml:"maxDistance"`
	MaxPolarAngle  float64 `yaml:"maxPolarAngle"`
	Damping        float64 `yaml:"damping"`
	RotateSpeed    float64 `yaml:"rotateSpeed"`
	KeyRotateSpeed float64 `yaml:"keyRotateSpeed"`
}

// PlacementConfig is the planting color rule: green > MinGreen OR blue < MaxBlue
type PlacementConfig struct {
	MinGreen uint8 `yaml:"minGreen"`
	MaxBlue  uint8 `yaml:"maxBlue"`
}

// FactsConfig controls the fact banners
type FactsConfig struct {
	// Every shows a fact each time the tree total hits a multiple of it
	Every int           `yaml:"every"`
	Hold  time.Duration `yaml:"hold"`
	// Fade multiplies the opacity by FadeFactor every FadeStep until it
	// drops to FadeFloor
	FadeFactor float64       `yaml:"fadeFactor"`
	FadeStep   time.Duration `yaml:"fadeStep"`
	FadeFloor  float64       `yaml:"fadeFloor"`
	Items      []string      `yaml:"items"`
}

// AudioConfig controls the planting chime
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
}

// Default returns the embedded configuration
func Default() *Config {
	cfg, err := Parse(defaultYAML, nil)
	if err != nil {
		panic(fmt.Sprintf("config: embedded default is broken: %v", err))
	}
	return cfg
}

// Load reads a YAML file over the defaults. An empty path returns the
// defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := Parse(data, Default())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data onto base (or a zero Config when base is nil) and
// validates the result
func Parse(data []byte, base *Config) (*Config, error) {
	cfg := base
	if cfg == nil {
		cfg = &Config{}
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges the game relies on
func (c *Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Assets.Earth == "":
		return fmt.Errorf("%w: assets.earth is empty", ErrInvalid)
	case c.Globe.Radius <= 0:
		return fmt.Errorf("%w: globe.radius must be positive", ErrInvalid)
	case c.Globe.WidthSegments < 3 || c.Globe.HeightSegments < 2:
		return fmt.Errorf("%w: globe needs at least 3x2 segments", ErrInvalid)
	case c.Camera.FOV <= 0 || c.Camera.FOV >= 180:
		return fmt.Errorf("%w: camera.fov %v out of (0,180)", ErrInvalid, c.Camera.FOV)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return fmt.Errorf("%w: camera near/far %v/%v", ErrInvalid, c.Camera.Near, c.Camera.Far)
	case c.Camera.MinDistance > c.Camera.MaxDistance:
		return fmt.Errorf("%w: camera.minDistance > maxDistance", ErrInvalid)
	case c.Camera.MaxPolarAngle <= 0 || c.Camera.MaxPolarAngle > 180:
		return fmt.Errorf("%w: camera.maxPolarAngle %v out of (0,180]", ErrInvalid, c.Camera.MaxPolarAngle)
	case c.Camera.Damping < 0 || c.Camera.Damping > 1:
		return fmt.Errorf("%w: camera.damping %v out of [0,1]", ErrInvalid, c.Camera.Damping)
	case c.Facts.Every <= 0:
		return fmt.Errorf("%w: facts.every must be positive", ErrInvalid)
	case c.Facts.Hold < 0:
		return fmt.Errorf("%w: facts.hold is negative", ErrInvalid)
	case c.Facts.FadeFactor <= 0 || c.Facts.FadeFactor >= 1:
		return fmt.Errorf("%w: facts.fadeFactor %v out of (0,1)", ErrInvalid, c.Facts.FadeFactor)
	case c.Facts.FadeStep <= 0:
		return fmt.Errorf("%w: facts.fadeStep must be positive", ErrInvalid)
	case c.Facts.FadeFloor <= 0 || c.Facts.FadeFloor >= 1:
		return fmt.Errorf("%w: facts.fadeFloor %v out of (0,1)", ErrInvalid, c.Facts.FadeFloor)
	case len(c.Facts.Items) == 0:
		return fmt.Errorf("%w: facts.items is empty", ErrInvalid)
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return fmt.Errorf("%w: audio.volume %v out of [0,1]", ErrInvalid, c.Audio.Volume)
	}
	return nil
}
