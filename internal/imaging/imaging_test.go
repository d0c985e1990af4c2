package imaging_test

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"sleuth/internal/imaging"
	"sleuth/internal/testsupport"
)

func TestLoaderDecodesAndCaches(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.png")
	size := testsupport.WritePNG(t, path, testsupport.Textured(64, 48, 1))

	loader, err := imaging.NewLoader(4)
	if err != nil {
		t.Fatalf("NewLoader: %v", err)
	}
	first, err := loader.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := imaging.Info{ByteSize: size, Width: 64, Height: 48, ColorMode: "RGB", Format: "PNG"}
	if first.Info != want {
		t.Fatalf("info = %+v, want %+v", first.Info, want)
	}
	if first.Gray.Bounds().Dx() != 64 || first.RGBA.Bounds().Dy() != 48 {
		t.Fatalf("unexpected plane bounds %v %v", first.Gray.Bounds(), first.RGBA.Bounds())
	}

	second, err := loader.Load(path)
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if first != second {
		t.Fatal("expected cached image on second load")
	}
}

func TestLoaderReloadsRewrittenFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.png")
	testsupport.WritePNG(t, path, testsupport.Textured(32, 32, 1))

	loader, err := imaging.NewLoader(4)
	if err != nil {
		t.Fatalf("NewLoader: %v", err)
	}
	if _, err := loader.Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	testsupport.WritePNG(t, path, testsupport.Textured(40, 20, 2))
	img, err := loader.Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if img.Info.Width != 40 || img.Info.Height != 20 {
		t.Fatalf("expected fresh decode, got %dx%d", img.Info.Width, img.Info.Height)
	}
}

func TestLoaderReportsJPEGFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.jpg")
	testsupport.WriteJPEG(t, path, testsupport.Textured(50, 30, 3), 90)

	loader, _ := imaging.NewLoader(1)
	info, err := loader.Probe(path)
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if info.Format != "JPEG" || info.ColorMode != "RGB" {
		t.Fatalf("info = %+v", info)
	}
}

func TestLoaderRejectsUndecodable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.jpg")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	loader, _ := imaging.NewLoader(1)
	if _, err := loader.Load(path); err == nil {
		t.Fatal("expected decode error")
	}
	if _, err := loader.Load(filepath.Join(dir, "missing.png")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestColorModeName(t *testing.T) {
	tests := []struct {
		model color.Model
		want  string
	}{
		{color.RGBAModel, "RGB"},
		{color.YCbCrModel, "RGB"},
		{color.NRGBAModel, "RGBA"},
		{color.GrayModel, "L"},
		{color.Gray16Model, "I;16"},
		{color.CMYKModel, "CMYK"},
		{color.Palette{color.Black, color.White}, "P"},
	}
	for _, tt := range tests {
		if got := imaging.ColorModeName(tt.model); got != tt.want {
			t.Errorf("ColorModeName(%T) = %q, want %q", tt.model, got, tt.want)
		}
	}
}

func TestCorrelateIdenticalImages(t *testing.T) {
	img := testsupport.Textured(80, 60, 7)
	if got := imaging.Correlate(img, img); got < 1-1e-9 {
		t.Fatalf("self correlation = %v, want 1", got)
	}
}

func TestCorrelateDisjointColours(t *testing.T) {
	red := testsupport.Flat(10, 10, color.RGBA{R: 255, A: 255})
	blue := testsupport.Flat(10, 10, color.RGBA{B: 255, A: 255})
	if got := imaging.Correlate(red, blue); got >= 0 {
		t.Fatalf("correlation = %v, want negative", got)
	}
}

func TestMatchTemplateFindsCrop(t *testing.T) {
	search := imaging.ToGray(testsupport.Textured(96, 72, 11))
	tmpl := search.SubImage(image.Rect(17, 11, 57, 41)).(*image.Gray)

	v, at := imaging.MatchTemplate(search, tmpl)
	if v < 1-1e-6 {
		t.Fatalf("score = %v, want 1", v)
	}
	if at != image.Pt(17, 11) {
		t.Fatalf("location = %v, want (17,11)", at)
	}
}

func TestMatchTemplateFlatImages(t *testing.T) {
	flat := imaging.ToGray(testsupport.Flat(20, 20, color.Gray{Y: 90}))
	small := imaging.ToGray(testsupport.Flat(5, 5, color.Gray{Y: 90}))
	if v, _ := imaging.MatchTemplate(flat, small); v != 1 {
		t.Fatalf("flat match = %v, want 1", v)
	}
	other := imaging.ToGray(testsupport.Flat(5, 5, color.Gray{Y: 200}))
	if v, _ := imaging.MatchTemplate(flat, other); v != 0 {
		t.Fatalf("flat mismatch = %v, want 0", v)
	}
}

func TestMatchTemplateOversizedTemplate(t *testing.T) {
	search := imaging.ToGray(testsupport.Textured(20, 20, 1))
	tmpl := imaging.ToGray(testsupport.Textured(30, 10, 1))
	if v, at := imaging.MatchTemplate(search, tmpl); v != 0 || at != (image.Point{}) {
		t.Fatalf("oversized template = %v at %v", v, at)
	}
}

func TestMatchTemplateScaled(t *testing.T) {
	full := testsupport.Textured(400, 300, 5)
	search := imaging.ToGray(full)
	tmpl := imaging.ToGray(testsupport.Crop(full, image.Rect(100, 80, 300, 230)))

	v, at := imaging.MatchTemplateScaled(search, tmpl, 160)
	if v < 0.8 {
		t.Fatalf("scaled score = %v, want >= 0.8", v)
	}
	if abs(at.X-100) > 5 || abs(at.Y-80) > 5 {
		t.Fatalf("scaled location = %v, want near (100,80)", at)
	}
}

func TestDetectorSelfMatch(t *testing.T) {
	gray := imaging.ToGray(testsupport.Textured(240, 180, 9))
	det := imaging.Detector{MaxFeatures: 1000, Threshold: 20}

	features := det.Detect(gray)
	if len(features) < 25 {
		t.Fatalf("expected at least 25 features, got %d", len(features))
	}
	for i := 1; i < len(features); i++ {
		if features[i].Response > features[i-1].Response {
			t.Fatalf("features not ordered by response at %d", i)
		}
	}

	again := det.Detect(gray)
	if len(again) != len(features) {
		t.Fatalf("detection not deterministic: %d vs %d", len(again), len(features))
	}
	for i := range features {
		if features[i] != again[i] {
			t.Fatalf("feature %d differs between runs", i)
		}
	}

	desc := imaging.Descriptors(features)
	matches := imaging.MatchCrossCheck(desc, desc)
	if good := imaging.CountGood(matches, 60); good < 25 {
		t.Fatalf("self matches = %d, want >= 25", good)
	}
}

func TestDetectorSeparatesUnrelatedTextures(t *testing.T) {
	det := imaging.Detector{MaxFeatures: 1000, Threshold: 20}
	base := imaging.ToGray(testsupport.Textured(200, 150, 31))
	original := imaging.Descriptors(det.Detect(base))

	for _, seed := range []uint64{32, 99, 123} {
		other := imaging.Descriptors(det.Detect(imaging.ToGray(testsupport.Textured(160, 160, seed))))
		if good := imaging.CountGood(imaging.MatchCrossCheck(other, original), 60); good >= 10 {
			t.Errorf("seed %d: %d good matches against an unrelated texture, want < 10", seed, good)
		}
	}

	scaled := imaging.Descriptors(det.Detect(imaging.ScaleGray(base, 0.85)))
	if good := imaging.CountGood(imaging.MatchCrossCheck(scaled, original), 60); good < 25 {
		t.Fatalf("downscaled copy: %d good matches, want >= 25", good)
	}
}

func TestDetectorCapsFeatures(t *testing.T) {
	gray := imaging.ToGray(testsupport.Textured(240, 180, 9))
	features := imaging.Detector{MaxFeatures: 10, Threshold: 20}.Detect(gray)
	if len(features) != 10 {
		t.Fatalf("expected 10 features, got %d", len(features))
	}
}

func TestDetectorFlatAndTinyImages(t *testing.T) {
	det := imaging.Detector{MaxFeatures: 100, Threshold: 20}
	if got := det.Detect(imaging.ToGray(testsupport.Flat(100, 100, color.Gray{Y: 128}))); len(got) != 0 {
		t.Fatalf("flat image yielded %d features", len(got))
	}
	if got := det.Detect(imaging.ToGray(testsupport.Textured(20, 20, 1))); len(got) != 0 {
		t.Fatalf("tiny image yielded %d features", len(got))
	}
}

func TestDetectorDownscalesLargeImages(t *testing.T) {
	gray := imaging.ToGray(testsupport.Textured(400, 300, 4))
	features := imaging.Detector{MaxFeatures: 500, Threshold: 20, MaxSide: 200}.Detect(gray)
	for _, f := range features {
		if f.X < 0 || f.X >= 400 || f.Y < 0 || f.Y >= 300 {
			t.Fatalf("feature outside source bounds: (%v,%v)", f.X, f.Y)
		}
	}
}

func TestMatchCrossCheck(t *testing.T) {
	zero := imaging.Descriptor{}
	ones := imaging.Descriptor{^uint64(0), ^uint64(0), ^uint64(0), ^uint64(0)}
	nearZero := imaging.Descriptor{1}

	matches := imaging.MatchCrossCheck(
		[]imaging.Descriptor{zero, ones},
		[]imaging.Descriptor{ones, nearZero},
	)
	want := []imaging.DMatch{
		{QueryIdx: 0, TrainIdx: 1, Distance: 1},
		{QueryIdx: 1, TrainIdx: 0, Distance: 0},
	}
	if len(matches) != len(want) {
		t.Fatalf("matches = %+v", matches)
	}
	for i := range want {
		if matches[i] != want[i] {
			t.Fatalf("match %d = %+v, want %+v", i, matches[i], want[i])
		}
	}
}

func TestMatchCrossCheckTiesPreferLowestIndex(t *testing.T) {
	matches := imaging.MatchCrossCheck(
		[]imaging.Descriptor{{}},
		[]imaging.Descriptor{{1}, {2}},
	)
	if len(matches) != 1 || matches[0].TrainIdx != 0 {
		t.Fatalf("matches = %+v, want train 0", matches)
	}
	if got := imaging.MatchCrossCheck(nil, []imaging.Descriptor{{}}); got != nil {
		t.Fatalf("expected nil for empty query, got %+v", got)
	}
}

func TestHamming(t *testing.T) {
	a := imaging.Descriptor{0b1011, 0, 0, 1 << 63}
	if got := imaging.Hamming(a, imaging.Descriptor{}); got != 4 {
		t.Fatalf("Hamming = %d, want 4", got)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
