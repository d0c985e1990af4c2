package imaging

import "testing"

func TestBriefPatternFitsPatch(t *testing.T) {
	if patternRadius+smoothHalf >= keypointBorder {
		t.Fatalf("pattern radius %d with smoothing %d leaves the border %d", patternRadius, smoothHalf, keypointBorder)
	}
	seen := make(map[samplePair]bool, len(briefPattern))
	for i, p := range briefPattern {
		if p.x1 == p.x2 && p.y1 == p.y2 {
			t.Errorf("test %d compares a point with itself: %+v", i, p)
		}
		for _, pt := range [2][2]int{{int(p.x1), int(p.y1)}, {int(p.x2), int(p.y2)}} {
			if pt[0]*pt[0]+pt[1]*pt[1] > patternRadius*patternRadius {
				t.Errorf("test %d samples %v outside radius %d", i, pt, patternRadius)
			}
		}
		if seen[p] {
			t.Errorf("test %d repeats %+v", i, p)
		}
		seen[p] = true
	}
}
