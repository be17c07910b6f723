//go:build fastmath

package effects

import (
	"math"
	"testing"
)

func TestFastPowExactExponents(t *testing.T) {
	for _, x := range []float64{0, 0.5, 1, 2, 3, 7.25, 10} {
		if got := mathPow(x, 1); got != x {
			t.Fatalf("mathPow(%v, 1) = %v, want %v", x, got, x)
		}

		if got := mathPow(x, 0); got != 1 {
			t.Fatalf("mathPow(%v, 0) = %v, want 1", x, got)
		}
	}
}

func TestFastPowTracksMathPow(t *testing.T) {
	for _, y := range []float64{0.1, 0.5, 0.73, 0.99} {
		for x := 0.25; x <= SineShaperCeiling; x += 0.25 {
			want := math.Pow(x, y)
			if got := mathPow(x, y); math.Abs(got-want) > 1e-4*want {
				t.Fatalf("mathPow(%v, %v) = %v, want %v", x, y, got, want)
			}
		}
	}

	if got := mathPow(0, 0.5); got != 0 {
		t.Fatalf("mathPow(0, 0.5) = %v, want 0", got)
	}
}
