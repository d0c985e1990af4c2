package testsupport

import (
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"
)

// Textured returns a deterministic image of multi-octave value noise over a
// per-seed base colour. Corner patches vary everywhere, so different seeds
// behave like unrelated photographs while copies and crops of one image still
// match.
func Textured(w, h int, seed uint64) *image.RGBA {
	rng := rand.New(rand.NewPCG(seed, seed^0x5eed))
	var planes [3][]float64
	for c := range planes {
		plane := make([]float64, w*h)
		base := float64(70 + rng.IntN(116))
		for i := range plane {
			plane[i] = base
		}
		for _, o := range noiseOctaves {
			addValueNoise(plane, w, h, o.cell, o.amp, rng)
		}
		planes[c] = plane
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			i := y*w + x
			img.SetRGBA(x, y, color.RGBA{
				R: clampChannel(planes[0][i]),
				G: clampChannel(planes[1][i]),
				B: clampChannel(planes[2][i]),
				A: 0xff,
			})
		}
	}
	return img
}

var noiseOctaves = []struct {
	cell int
	amp  float64
}{{16, 60}, {8, 50}, {4, 40}, {2, 25}}

// addValueNoise adds bilinearly interpolated lattice noise in [-amp, amp].
func addValueNoise(plane []float64, w, h, cell int, amp float64, rng *rand.Rand) {
	gw, gh := w/cell+2, h/cell+2
	lattice := make([]float64, gw*gh)
	for i := range lattice {
		lattice[i] = (rng.Float64()*2 - 1) * amp
	}
	for y := range h {
		gy := float64(y) / float64(cell)
		iy := int(gy)
		fy := gy - float64(iy)
		for x := range w {
			gx := float64(x) / float64(cell)
			ix := int(gx)
			fx := gx - float64(ix)
			top := lattice[iy*gw+ix]*(1-fx) + lattice[iy*gw+ix+1]*fx
			bottom := lattice[(iy+1)*gw+ix]*(1-fx) + lattice[(iy+1)*gw+ix+1]*fx
			plane[y*w+x] += top*(1-fy) + bottom*fy
		}
	}
}

func clampChannel(v float64) uint8 {
	return uint8(min(255, max(0, v)))
}

// Blocks returns a deterministic image of flat colour blocks with scattered
// dark and bright rectangles. It compresses well, so it suits fixtures that
// must fit a fixed byte size.
func Blocks(w, h int, seed uint64) *image.RGBA {
	rng := rand.New(rand.NewPCG(seed, seed^0xb10c))
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	const block = 16
	for y := 0; y < h; y += block {
		for x := 0; x < w; x += block {
			c := color.RGBA{
				R: uint8(64 + rng.IntN(128)),
				G: uint8(64 + rng.IntN(128)),
				B: uint8(64 + rng.IntN(128)),
				A: 0xff,
			}
			draw.Draw(img, image.Rect(x, y, x+block, y+block), image.NewUniform(c), image.Point{}, draw.Src)
		}
	}

	for range max(8, w*h/800) {
		rw, rh := 6+rng.IntN(18), 6+rng.IntN(18)
		x, y := rng.IntN(max(1, w-rw)), rng.IntN(max(1, h-rh))
		level := uint8(10 + rng.IntN(30))
		if rng.IntN(2) == 0 {
			level = uint8(215 + rng.IntN(30))
		}
		c := color.RGBA{R: level, G: level, B: uint8(255 - int(level)/2), A: 0xff}
		draw.Draw(img, image.Rect(x, y, x+rw, y+rh), image.NewUniform(c), image.Point{}, draw.Src)
	}
	return img
}

// Flat returns a single-colour image.
func Flat(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

// Crop copies the r region of img into a new image anchored at the origin.
func Crop(img image.Image, r image.Rectangle) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(dst, dst.Bounds(), img, r.Min, draw.Src)
	return dst
}

// WritePNG encodes img as PNG at path and returns the written size.
func WritePNG(t testing.TB, path string, img image.Image) int64 {
	t.Helper()
	f := create(t, path)
	if err := png.Encode(f, img); err != nil {
		f.Close()
		t.Fatalf("encode png %s: %v", path, err)
	}
	return closeAndSize(t, f)
}

// WriteJPEG encodes img as JPEG at path and returns the written size.
func WriteJPEG(t testing.TB, path string, img image.Image, quality int) int64 {
	t.Helper()
	f := create(t, path)
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: quality}); err != nil {
		f.Close()
		t.Fatalf("encode jpeg %s: %v", path, err)
	}
	return closeAndSize(t, f)
}

func create(t testing.TB, path string) *os.File {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	return f
}

func closeAndSize(t testing.TB, f *os.File) int64 {
	t.Helper()
	if err := f.Close(); err != nil {
		t.Fatalf("close %s: %v", f.Name(), err)
	}
	info, err := os.Stat(f.Name())
	if err != nil {
		t.Fatalf("stat %s: %v", f.Name(), err)
	}
	return info.Size()
}
