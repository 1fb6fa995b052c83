// Package texture loads images once at startup and keeps a CPU-side copy
// of their pixels for color lookups.
package texture

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// LoadError reports an image that could not be read or decoded
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("texture: load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// PixelGrid is a width×height RGBA8 raster, row 0 at the top.
// It must not be modified after Rasterize returns it.
type PixelGrid struct {
	Width  int
	Height int
	Pix    []byte
}

// At returns the RGBA bytes at (x, y). Coordinates outside the grid panic.
func (g *PixelGrid) At(x, y int) (r, gr, b, a uint8) {
	if x < 0 || x >= g.Width || y < 0 || y >= g.Height {
		panic(fmt.Sprintf("texture: pixel (%d,%d) outside %dx%d grid", x, y, g.Width, g.Height))
	}
	off := (y*g.Width + x) * 4
	return g.Pix[off], g.Pix[off+1], g.Pix[off+2], g.Pix[off+3]
}

// Load opens and decodes an image file
func Load(ctx context.Context, path string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	b := img.Bounds()
	log.Printf("[texture] decoded %s (%s, %dx%d)", path, format, b.Dx(), b.Dy())
	return img, nil
}

// LoadAll decodes every path concurrently and waits for all of them.
// The first failure cancels the rest and is returned.
func LoadAll(ctx context.Context, paths ...string) ([]image.Image, error) {
	imgs := make([]image.Image, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, p := range paths {
		g.Go(func() error {
			img, err := Load(ctx, p)
			if err != nil {
				return err
			}
			imgs[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return imgs, nil
}

// ErrEmpty is returned by RasterizeChecked for zero-sized images
var ErrEmpty = errors.New("texture: image has no pixels")

// Rasterize draws img into an off-screen buffer at its native resolution
// and returns the bytes as straight (non-premultiplied) RGBA.
func Rasterize(img image.Image) *PixelGrid {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(dst, dst.Bounds(), img, b.Min, xdraw.Src)
	return &PixelGrid{Width: b.Dx(), Height: b.Dy(), Pix: dst.Pix}
}

// RasterizeChecked is Rasterize that rejects empty images, which would
// leave the placement policy nothing to sample.
func RasterizeChecked(img image.Image) (*PixelGrid, error) {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, ErrEmpty
	}
	return Rasterize(img), nil
}
