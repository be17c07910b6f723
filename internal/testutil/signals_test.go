package testutil

import (
	"math"
	"testing"
)

func TestDeterministicSine(t *testing.T) {
	s := DeterministicSine(1000, 48000, 0.5, 48)
	if len(s) != 48 {
		t.Fatalf("len = %d, want 48", len(s))
	}

	if s[0] != 0 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}

	// 1 kHz at 48 kHz peaks at sample 12.
	if math.Abs(s[12]-0.5) > 1e-12 {
		t.Fatalf("s[12] = %v, want 0.5", s[12])
	}
}

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(42, 0.25, 64)
	b := DeterministicNoise(42, 0.25, 64)
	c := DeterministicNoise(43, 0.25, 64)

	RequireSliceNearlyEqual(t, a, b, 0)

	differs := false

	for i := range a {
		if a[i] < -0.25 || a[i] >= 0.25 {
			t.Fatalf("a[%d] = %v outside [-0.25, 0.25)", i, a[i])
		}

		if a[i] != c[i] {
			differs = true
		}
	}

	if !differs {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestPlanarCopies(t *testing.T) {
	src := DC(2, 5)
	block := Planar(src, 3)

	if len(block) != 3 {
		t.Fatalf("channels = %d, want 3", len(block))
	}

	block[1][0] = -1
	if src[0] != 2 || block[0][0] != 2 || block[2][0] != 2 {
		t.Fatal("channels share storage")
	}

	clone := ClonePlanar(block)
	clone[1][0] = 7

	if block[1][0] != -1 {
		t.Fatal("ClonePlanar shares storage")
	}
}
