package window

import (
	"math"
	"testing"
)

func TestGenerateShapes(t *testing.T) {
	for _, typ := range Types() {
		t.Run(typ.String(), func(t *testing.T) {
			w := Generate(typ, 65)
			if len(w) != 65 {
				t.Fatalf("len = %d, want 65", len(w))
			}

			for i := range w {
				if math.Abs(w[i]-w[len(w)-1-i]) > 1e-12 {
					t.Fatalf("symmetric window not symmetric at %d: %v vs %v", i, w[i], w[len(w)-1-i])
				}
			}

			if math.Abs(w[32]-1) > 1e-6 {
				t.Fatalf("centre = %v, want 1", w[32])
			}
		})
	}
}

func TestPeriodicHann(t *testing.T) {
	w := Generate(TypeHann, 8, WithPeriodic())
	want := []float64{0, 0.1464466, 0.5, 0.8535534, 1, 0.8535534, 0.5, 0.1464466}

	for i := range w {
		if math.Abs(w[i]-want[i]) > 1e-6 {
			t.Fatalf("w[%d] = %v, want %v", i, w[i], want[i])
		}
	}

}

func TestBinSum(t *testing.T) {
	tests := []struct {
		typ  Type
		want float64
	}{
		{TypeRectangular, 1},
		{TypeHann, 1},
		{TypeHamming, 1},
		{TypeBlackman, 1},
		{TypeBlackmanHarris4Term, 1},
	}

	for _, tt := range tests {
		if got := tt.typ.BinSum(); math.Abs(got-tt.want) > 1e-12 {
			t.Fatalf("%v.BinSum() = %v, want %v", tt.typ, got, tt.want)
		}
	}

	if !TypeFlatTop.Valid() || Type(-1).Valid() {
		t.Fatal("Valid() disagrees with Types()")
	}
}

func TestApply(t *testing.T) {
	buf := []float64{2, 2, 2}
	if err := Apply(buf, []float64{0, 0.5, 1}); err != nil {
		t.Fatal(err)
	}

	if buf[0] != 0 || buf[1] != 1 || buf[2] != 2 {
		t.Fatalf("Apply() = %v", buf)
	}

	if err := Apply(buf, []float64{1}); err == nil {
		t.Fatal("expected error for length mismatch")
	}
}

func TestParse(t *testing.T) {
	for _, typ := range Types() {
		got, err := Parse(" " + typ.String() + " ")
		if err != nil || got != typ {
			t.Fatalf("Parse(%q) = %v, %v", typ.String(), got, err)
		}
	}

	if _, err := Parse("kaiser"); err == nil {
		t.Fatal("expected error for unsupported window")
	}

	if Type(99).String() != "Type(99)" {
		t.Fatalf("unexpected name %q", Type(99).String())
	}
}

func TestGenerateEmpty(t *testing.T) {
	if Generate(TypeHann, 0) != nil {
		t.Fatal("Generate(0) should return nil")
	}

	if w := Generate(TypeHann, 1); len(w) != 1 || w[0] != 0 {
		t.Fatalf("Generate(1) = %v", w)
	}
}
