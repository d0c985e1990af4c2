package imaging

import (
	"image"
	"math"
)

// flatVariance bounds the sum of squared deviations of a constant window.
// Integer samples that are not all equal always exceed it.
const flatVariance = 0.25

// MatchTemplate slides tmpl over search and returns the highest normalized
// cross-correlation coefficient together with the top-left offset where it was
// found. Means are subtracted from both windows, so the result lies in [-1, 1].
// A constant template matches a constant window of the same mean with 1.
// When tmpl does not fit inside search the result is 0 at the origin.
func MatchTemplate(search, tmpl *image.Gray) (float64, image.Point) {
	sw, sh := search.Bounds().Dx(), search.Bounds().Dy()
	tw, th := tmpl.Bounds().Dx(), tmpl.Bounds().Dy()
	if tw == 0 || th == 0 || tw > sw || th > sh {
		return 0, image.Point{}
	}

	n := float64(tw * th)
	centered := make([]float64, tw*th)
	var tsum float64
	for y := 0; y < th; y++ {
		row := tmpl.Pix[y*tmpl.Stride:]
		for x := 0; x < tw; x++ {
			v := float64(row[x])
			centered[y*tw+x] = v
			tsum += v
		}
	}
	tmean := tsum / n
	var tvar float64
	for i := range centered {
		centered[i] -= tmean
		tvar += centered[i] * centered[i]
	}
	tflat := tvar <= flatVariance

	sum, sq := integrals(search)
	stride := sw + 1
	best := math.Inf(-1)
	var at image.Point
	for y := 0; y+th <= sh; y++ {
		for x := 0; x+tw <= sw; x++ {
			wsum := boxSum(sum, stride, x, y, tw, th)
			wsq := boxSum(sq, stride, x, y, tw, th)
			wvar := wsq - wsum*wsum/n
			wflat := wvar <= flatVariance

			var r float64
			switch {
			case tflat && wflat:
				if math.Abs(wsum/n-tmean) < 0.5 {
					r = 1
				}
			case tflat || wflat:
				r = 0
			default:
				var cross float64
				for j := 0; j < th; j++ {
					srow := search.Pix[(y+j)*search.Stride+x:]
					trow := centered[j*tw : (j+1)*tw]
					for i, tv := range trow {
						cross += tv * float64(srow[i])
					}
				}
				r = cross / math.Sqrt(tvar*wvar)
			}
			if r > best {
				best = r
				at = image.Pt(x, y)
			}
		}
	}
	return clampUnit(best), at
}

// MatchTemplateScaled runs MatchTemplate after shrinking both images by one
// common factor so the longer side of search is at most maxSide. The returned
// offset is expressed in the coordinates of the unscaled search image.
func MatchTemplateScaled(search, tmpl *image.Gray, maxSide int) (float64, image.Point) {
	longest := max(search.Bounds().Dx(), search.Bounds().Dy())
	if maxSide <= 0 || longest <= maxSide {
		return MatchTemplate(search, tmpl)
	}
	factor := float64(maxSide) / float64(longest)
	v, at := MatchTemplate(ScaleGray(search, factor), ScaleGray(tmpl, factor))
	return v, image.Pt(int(float64(at.X)/factor), int(float64(at.Y)/factor))
}

// integrals returns summed-area tables of values and squared values with a
// leading zero row and column.
func integrals(img *image.Gray) ([]float64, []float64) {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	stride := w + 1
	sum := make([]float64, stride*(h+1))
	sq := make([]float64, stride*(h+1))
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride:]
		var rs, rq float64
		for x := 0; x < w; x++ {
			v := float64(row[x])
			rs += v
			rq += v * v
			sum[(y+1)*stride+x+1] = sum[y*stride+x+1] + rs
			sq[(y+1)*stride+x+1] = sq[y*stride+x+1] + rq
		}
	}
	return sum, sq
}

func boxSum(table []float64, stride, x, y, w, h int) float64 {
	return table[(y+h)*stride+x+w] - table[y*stride+x+w] - table[(y+h)*stride+x] + table[y*stride+x]
}
