// Command generate_textures writes placeholder globe and skybox textures
// so the game runs without the photographic assets.
package main

import (
	"flag"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"log"
	"math"
	"math/rand"
	"os"
	"path/filepath"
)

func main() {
	dir := flag.String("dir", filepath.Join("assets", "textures"), "output directory")
	width := flag.Int("width", 2048, "globe texture width (height is half)")
	sky := flag.Int("sky", 1024, "skybox face size")
	force := flag.Bool("force", false, "overwrite existing files")
	flag.Parse()

	if err := os.MkdirAll(*dir, 0755); err != nil {
		log.Fatal(err)
	}

	earth := generateEarth(*width, *width/2)
	save(filepath.Join(*dir, "earth2kcolour.jpg"), earth, *force)

	stars := generateSkybox(*sky, rand.New(rand.NewSource(2024)))
	save(filepath.Join(*dir, "skybox.png"), stars, *force)
}

// generateEarth paints an equirectangular map: column 0 is longitude
// -180, row 0 is the north pole
func generateEarth(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		lat := (0.5 - (float64(y)+0.5)/float64(h)) * math.Pi
		for x := 0; x < w; x++ {
			lon := ((float64(x)+0.5)/float64(w) - 0.5) * 2 * math.Pi
			img.SetRGBA(x, y, earthColor(lon, lat))
		}
	}
	return img
}

// landHeight is a smooth function on the sphere; positive is land
func landHeight(lon, lat float64) float64 {
	cl := math.Cos(lat)
	px, py, pz := cl*math.Cos(lon), math.Sin(lat), cl*math.Sin(lon)

	h := 0.0
	amp := 1.0
	freq := 1.7
	for octave := 0; octave < 5; octave++ {
		o := float64(octave)
		h += amp * math.Sin(freq*px+1.3*o) * math.Cos(freq*pz+0.7*o) * math.Cos(freq*py*1.3+2.1*o)
		amp *= 0.5
		freq *= 2.1
	}
	return h - 0.08
}

func earthColor(lon, lat float64) color.RGBA {
	// polar ice
	if math.Abs(lat) > 1.32 {
		return color.RGBA{236, 242, 248, 255}
	}

	hgt := landHeight(lon, lat)
	if hgt <= 0 {
		depth := math.Min(1, -hgt*2.5)
		return color.RGBA{
			uint8(18 + 20*(1-depth)),
			uint8(60 + 60*(1-depth)),
			uint8(150 + 60*(1-depth)),
			255,
		}
	}

	// dry land toward the tropics, green elsewhere; blue stays low on land
	dry := math.Max(0, 1-math.Abs(math.Abs(lat)-0.4)*4) * math.Min(1, hgt*3)
	g := 120 + 60*(1-dry) + 30*math.Min(1, hgt)
	return color.RGBA{
		uint8(60 + 120*dry),
		uint8(math.Min(255, g)),
		uint8(40 + 20*dry),
		255,
	}
}

// generateSkybox scatters stars over a dark gradient
func generateSkybox(size int, rng *rand.Rand) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			t := float64(y) / float64(size)
			img.SetRGBA(x, y, color.RGBA{uint8(4 + 6*t), uint8(6 + 8*t), uint8(18 + 14*t), 255})
		}
	}
	count := size * size / 900
	for i := 0; i < count; i++ {
		x, y := rng.Intn(size), rng.Intn(size)
		v := uint8(150 + rng.Intn(106))
		img.SetRGBA(x, y, color.RGBA{v, v, uint8(math.Min(255, float64(v)+20)), 255})
		if rng.Intn(12) == 0 && x+1 < size && y+1 < size {
			dim := color.RGBA{v / 2, v / 2, v / 2, 255}
			img.SetRGBA(x+1, y, dim)
			img.SetRGBA(x, y+1, dim)
		}
	}
	return img
}

func save(path string, img image.Image, force bool) {
	// Don't overwrite existing
	if _, err := os.Stat(path); err == nil && !force {
		log.Printf("skip %s (exists)", path)
		return
	}
	f, err := os.Create(path)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	if filepath.Ext(path) == ".jpg" {
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: 92})
	} else {
		err = png.Encode(f, img)
	}
	if err != nil {
		log.Fatalf("encode %s: %v", path, err)
	}
	log.Printf("wrote %s", path)
}
