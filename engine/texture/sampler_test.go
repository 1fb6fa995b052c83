package texture

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func checkerImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 10), G: uint8(y * 10), B: 7, A: 255})
		}
	}
	return img
}

func writePNG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
	return path
}

func TestRasterizeKeepsNativeResolution(t *testing.T) {
	grid := Rasterize(checkerImage(5, 3))

	if grid.Width != 5 || grid.Height != 3 {
		t.Fatalf("grid size = %dx%d, want 5x3", grid.Width, grid.Height)
	}
	if len(grid.Pix) != 5*3*4 {
		t.Fatalf("len(Pix) = %d, want %d", len(grid.Pix), 5*3*4)
	}

	tests := []struct {
		x, y       int
		r, g, b, a uint8
	}{
		{0, 0, 0, 0, 7, 255},
		{4, 0, 40, 0, 7, 255},
		{2, 2, 20, 20, 7, 255},
		{4, 2, 40, 20, 7, 255},
	}
	for _, tt := range tests {
		r, g, b, a := grid.At(tt.x, tt.y)
		if r != tt.r || g != tt.g || b != tt.b || a != tt.a {
			t.Errorf("At(%d,%d) = (%d,%d,%d,%d), want (%d,%d,%d,%d)",
				tt.x, tt.y, r, g, b, a, tt.r, tt.g, tt.b, tt.a)
		}
	}
}

func TestRasterizeOffsetBounds(t *testing.T) {
	src := checkerImage(6, 6).SubImage(image.Rect(2, 3, 5, 6))
	grid := Rasterize(src)

	if grid.Width != 3 || grid.Height != 3 {
		t.Fatalf("grid size = %dx%d, want 3x3", grid.Width, grid.Height)
	}
	r, g, _, _ := grid.At(0, 0)
	if r != 20 || g != 30 {
		t.Errorf("At(0,0) = (%d,%d), want (20,30) from source (2,3)", r, g)
	}
}

func TestRasterizeKeepsStraightAlpha(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 0, G: 255, B: 255, A: 128})
	grid := Rasterize(src)

	r, g, b, a := grid.At(0, 0)
	if r != 0 || g != 255 || b != 255 || a != 128 {
		t.Errorf("At(0,0) = (%d,%d,%d,%d), want (0,255,255,128)", r, g, b, a)
	}
}

func TestAtOutOfRangePanics(t *testing.T) {
	grid := Rasterize(checkerImage(2, 2))
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("At(%d,%d) did not panic", p[0], p[1])
				}
			}()
			grid.At(p[0], p[1])
		}()
	}
}

func TestRasterizeCheckedRejectsEmpty(t *testing.T) {
	_, err := RasterizeChecked(image.NewRGBA(image.Rect(0, 0, 0, 4)))
	if !errors.Is(err, ErrEmpty) {
		t.Errorf("RasterizeChecked(empty) error = %v, want ErrEmpty", err)
	}
	if _, err := RasterizeChecked(checkerImage(1, 1)); err != nil {
		t.Errorf("RasterizeChecked(1x1) error = %v", err)
	}
}

func TestLoadDecodesPNG(t *testing.T) {
	path := writePNG(t, t.TempDir(), "earth.png", checkerImage(4, 2))

	img, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 2 {
		t.Errorf("bounds = %v, want 4x2", b)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.png")
	if err := os.WriteFile(garbage, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "missing.jpg")},
		{"undecodable", garbage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(context.Background(), tt.path)
			var le *LoadError
			if !errors.As(err, &le) {
				t.Fatalf("Load(%q) error = %v, want *LoadError", tt.path, err)
			}
			if le.Path != tt.path {
				t.Errorf("LoadError.Path = %q, want %q", le.Path, tt.path)
			}
		})
	}
}

func TestLoadCancelled(t *testing.T) {
	path := writePNG(t, t.TempDir(), "sky.png", checkerImage(2, 2))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, path)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Load(cancelled) error = %v, want context.Canceled", err)
	}
}

func TestLoadAll(t *testing.T) {
	dir := t.TempDir()
	earth := writePNG(t, dir, "earth.png", checkerImage(8, 4))
	sky := writePNG(t, dir, "sky.png", checkerImage(2, 2))

	imgs, err := LoadAll(context.Background(), earth, sky)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(imgs) != 2 {
		t.Fatalf("len = %d, want 2", len(imgs))
	}
	if imgs[0].Bounds().Dx() != 8 || imgs[1].Bounds().Dx() != 2 {
		t.Errorf("images out of order: %v, %v", imgs[0].Bounds(), imgs[1].Bounds())
	}

	_, err = LoadAll(context.Background(), earth, filepath.Join(dir, "nope.png"))
	var le *LoadError
	if !errors.As(err, &le) {
		t.Errorf("LoadAll with missing file error = %v, want *LoadError", err)
	}
}
