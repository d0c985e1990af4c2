package imaging

import (
	"cmp"
	"image"
	"math"
	"slices"
)

const (
	// descriptorBits is the length of a binary descriptor.
	descriptorBits = 256
	// patternRadius bounds the sampling pattern before rotation.
	patternRadius = 13
	// smoothHalf is the half width of the box filter applied before sampling.
	smoothHalf = 2
	// orientRadius is the radius of the intensity-centroid patch.
	orientRadius = 15
	// keypointBorder keeps every sample of a rotated pattern inside the image.
	keypointBorder = orientRadius + 1
	// fastArc is the number of contiguous circle pixels a corner needs.
	fastArc = 9
)

// Descriptor is a 256-bit binary descriptor.
type Descriptor [4]uint64

// Keypoint is a detected corner in source image coordinates.
type Keypoint struct {
	X, Y     float64
	Angle    float64
	Response int
}

// Feature pairs a keypoint with its descriptor.
type Feature struct {
	Keypoint
	Descriptor Descriptor
}

// Detector finds FAST corners and describes them with rotated BRIEF
// descriptors sampled on a box-smoothed image using a learned test pattern.
type Detector struct {
	// MaxFeatures caps the number of features, strongest first.
	MaxFeatures int
	// Threshold is the FAST intensity threshold.
	Threshold int
	// MaxSide downsamples larger images before detection. Zero disables it.
	MaxSide int
}

// Descriptors extracts the descriptors of features in order.
func Descriptors(features []Feature) []Descriptor {
	out := make([]Descriptor, len(features))
	for i, f := range features {
		out[i] = f.Descriptor
	}
	return out
}

// Detect returns up to MaxFeatures features ordered by decreasing corner
// response. Equal responses are ordered top-to-bottom then left-to-right so the
// output is deterministic.
func (d Detector) Detect(src *image.Gray) []Feature {
	img := ToGray(src)
	scale := 1.0
	if longest := max(img.Bounds().Dx(), img.Bounds().Dy()); d.MaxSide > 0 && longest > d.MaxSide {
		scale = float64(d.MaxSide) / float64(longest)
		img = ScaleGray(img, scale)
	}
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w <= 2*keypointBorder || h <= 2*keypointBorder {
		return nil
	}

	threshold := d.Threshold
	if threshold <= 0 {
		threshold = 20
	}
	corners := detectFAST(img, threshold)
	if len(corners) == 0 {
		return nil
	}
	slices.SortFunc(corners, func(a, b corner) int {
		if c := cmp.Compare(b.score, a.score); c != 0 {
			return c
		}
		if c := cmp.Compare(a.y, b.y); c != 0 {
			return c
		}
		return cmp.Compare(a.x, b.x)
	})
	if d.MaxFeatures > 0 && len(corners) > d.MaxFeatures {
		corners = corners[:d.MaxFeatures]
	}

	sum, _ := integrals(img)
	features := make([]Feature, 0, len(corners))
	for _, c := range corners {
		angle := orientation(img, c.x, c.y)
		features = append(features, Feature{
			Keypoint: Keypoint{
				X:        float64(c.x) / scale,
				Y:        float64(c.y) / scale,
				Angle:    angle,
				Response: c.score,
			},
			Descriptor: describe(sum, w+1, c.x, c.y, angle),
		})
	}
	return features
}

type corner struct {
	x, y  int
	score int
}

// circle is the Bresenham circle of radius 3 used by FAST.
var circle = [16][2]int{
	{0, -3}, {1, -3}, {2, -2}, {3, -1}, {3, 0}, {3, 1}, {2, 2}, {1, 3},
	{0, 3}, {-1, 3}, {-2, 2}, {-3, 1}, {-3, 0}, {-3, -1}, {-2, -2}, {-1, -3},
}

func detectFAST(img *image.Gray, threshold int) []corner {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	scores := make([]int, w*h)
	var offsets [16]int
	for i, p := range circle {
		offsets[i] = p[1]*img.Stride + p[0]
	}

	for y := keypointBorder; y < h-keypointBorder; y++ {
		for x := keypointBorder; x < w-keypointBorder; x++ {
			scores[y*w+x] = fastScore(img.Pix, y*img.Stride+x, &offsets, threshold)
		}
	}

	var out []corner
	for y := keypointBorder; y < h-keypointBorder; y++ {
		for x := keypointBorder; x < w-keypointBorder; x++ {
			s := scores[y*w+x]
			if s == 0 || !isLocalMax(scores, w, x, y, s) {
				continue
			}
			out = append(out, corner{x: x, y: y, score: s})
		}
	}
	return out
}

// fastScore returns the summed absolute difference beyond threshold over the
// circle when the pixel is a FAST-9 corner, otherwise 0.
func fastScore(pix []uint8, center int, offsets *[16]int, threshold int) int {
	p := int(pix[center])
	hi, lo := p+threshold, p-threshold

	var states [16]int8
	for i, off := range offsets {
		v := int(pix[center+off])
		switch {
		case v > hi:
			states[i] = 1
		case v < lo:
			states[i] = -1
		}
	}
	// Any arc of nine covers at least two of the four compass points.
	brighter, darker := 0, 0
	for _, i := range [4]int{0, 4, 8, 12} {
		switch states[i] {
		case 1:
			brighter++
		case -1:
			darker++
		}
	}
	if brighter < 2 && darker < 2 {
		return 0
	}

	var class int8
	run := 0
	for i := 0; i < 16+fastArc-1; i++ {
		s := states[i%16]
		if s != 0 && s == class {
			run++
		} else {
			class = s
			run = 1
		}
		if class != 0 && run >= fastArc {
			break
		}
	}
	if class == 0 || run < fastArc {
		return 0
	}

	score := 0
	for i, off := range offsets {
		if states[i] != class {
			continue
		}
		diff := int(pix[center+off]) - p
		if diff < 0 {
			diff = -diff
		}
		score += diff - threshold
	}
	return max(score, 1)
}

// isLocalMax keeps a corner only when no 3x3 neighbour beats it. Ties go to the
// first position in raster order.
func isLocalMax(scores []int, w, x, y, s int) bool {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			n := scores[(y+dy)*w+x+dx]
			before := dy < 0 || (dy == 0 && dx < 0)
			if n > s || (before && n == s) {
				return false
			}
		}
	}
	return true
}

// orientation is the angle of the intensity centroid of a circular patch.
func orientation(img *image.Gray, cx, cy int) float64 {
	var m01, m10 float64
	r2 := orientRadius * orientRadius
	for dy := -orientRadius; dy <= orientRadius; dy++ {
		row := img.Pix[(cy+dy)*img.Stride:]
		for dx := -orientRadius; dx <= orientRadius; dx++ {
			if dx*dx+dy*dy > r2 {
				continue
			}
			v := float64(row[cx+dx])
			m10 += float64(dx) * v
			m01 += float64(dy) * v
		}
	}
	return math.Atan2(m01, m10)
}

func describe(sum []float64, stride, cx, cy int, angle float64) Descriptor {
	sin, cos := math.Sincos(angle)
	sample := func(px, py int8) float64 {
		fx, fy := float64(px), float64(py)
		x := cx + int(math.Round(cos*fx-sin*fy))
		y := cy + int(math.Round(sin*fx+cos*fy))
		return boxSum(sum, stride, x-smoothHalf, y-smoothHalf, 2*smoothHalf+1, 2*smoothHalf+1)
	}
	var d Descriptor
	for i, p := range &briefPattern {
		if sample(p.x1, p.y1) < sample(p.x2, p.y2) {
			d[i/64] |= 1 << (uint(i) % 64)
		}
	}
	return d
}
