package imaging

import (
	"image"
	"math"
)

// HistogramBins is the number of bins per channel.
const HistogramBins = 8

const binShift = 5 // 256 / HistogramBins == 1 << binShift

// flatEpsilon is the variance below which a signal is treated as constant.
const flatEpsilon = 2.220446049250313e-16

// Histogram is a joint RGB histogram with HistogramBins bins per channel.
type Histogram [HistogramBins * HistogramBins * HistogramBins]float64

// ComputeHistogram counts the pixels of img into joint RGB bins.
func ComputeHistogram(img image.Image) Histogram {
	var h Histogram
	rgba := EnsureRGBA(img)
	bounds := rgba.Bounds()
	for y := 0; y < bounds.Dy(); y++ {
		row := rgba.Pix[y*rgba.Stride : y*rgba.Stride+bounds.Dx()*4]
		for i := 0; i < len(row); i += 4 {
			r := int(row[i]) >> binShift
			g := int(row[i+1]) >> binShift
			b := int(row[i+2]) >> binShift
			h[(r*HistogramBins+g)*HistogramBins+b]++
		}
	}
	return h
}

// Normalize scales h to unit L2 norm. An all-zero histogram is returned as is.
func (h Histogram) Normalize() Histogram {
	var sum float64
	for _, v := range h {
		sum += v * v
	}
	if sum == 0 {
		return h
	}
	norm := math.Sqrt(sum)
	for i := range h {
		h[i] /= norm
	}
	return h
}

// CorrelateHistograms returns the Pearson correlation of the bin values of a
// and b. When either histogram is flat the result is 1.
func CorrelateHistograms(a, b Histogram) float64 {
	n := float64(len(a))
	var s1, s2, s11, s22, s12 float64
	for i := range a {
		x, y := a[i], b[i]
		s1 += x
		s2 += y
		s11 += x * x
		s22 += y * y
		s12 += x * y
	}
	num := s12 - s1*s2/n
	denom := (s11 - s1*s1/n) * (s22 - s2*s2/n)
	if math.Abs(denom) <= flatEpsilon {
		return 1
	}
	return clampUnit(num / math.Sqrt(denom))
}

// Correlate compares the L2-normalized joint colour histograms of a and b.
// The result lies in [-1, 1]; identical images give 1.
func Correlate(a, b image.Image) float64 {
	return CorrelateHistograms(ComputeHistogram(a).Normalize(), ComputeHistogram(b).Normalize())
}

func clampUnit(v float64) float64 {
	switch {
	case v > 1:
		return 1
	case v < -1:
		return -1
	default:
		return v
	}
}
