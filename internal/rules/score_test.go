package rules

import (
	"math"
	"testing"
)

func TestScaleScore(t *testing.T) {
	tests := []struct {
		v    float64
		max  int
		want int
	}{
		{0.9999999999, 40, 40},
		{1, 30, 30},
		{1.3, 40, 40},
		{0.5, 30, 15},
		{0.49, 10, 4},
		{-0.2, 30, 0},
		{math.NaN(), 30, 0},
	}
	for _, tt := range tests {
		if got := scaleScore(tt.v, tt.max); got != tt.want {
			t.Errorf("scaleScore(%v, %d) = %d, want %d", tt.v, tt.max, got, tt.want)
		}
	}
}

func TestRatioGuardsZero(t *testing.T) {
	if ratio(0, 10) != 0 || ratio(10, 0) != 0 {
		t.Fatal("ratio with zero operand should be 0")
	}
	if ratio(50, 100) != ratio(100, 50) {
		t.Fatal("ratio should be symmetric")
	}
}
