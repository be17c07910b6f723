package effects

import (
	"math"
	"testing"

	"github.com/cwbudde/bruhsine/internal/testutil"
)

func TestSineShaperValidation(t *testing.T) {
	if _, err := NewSineShaper(WithSineShaperWrapMode(SineShaperWrapMode(9))); err == nil {
		t.Fatal("expected error for invalid wrap mode")
	}

	s, err := NewSineShaper()
	if err != nil {
		t.Fatalf("NewSineShaper() error = %v", err)
	}

	if s.WrapMode() != SineShaperWrapReset {
		t.Fatalf("default wrap mode = %d, want reset", s.WrapMode())
	}

	if err := s.SetWrapMode(SineShaperWrapMode(-1)); err == nil {
		t.Fatal("expected error for invalid wrap mode")
	}
}

func TestSineShaperStereoScenario(t *testing.T) {
	s, err := NewSineShaper()
	if err != nil {
		t.Fatal(err)
	}

	p := FrameParams{Gain: 1, Increment: 1, Factor: 1, Mix: 1}
	want := []float64{0, math.Sin(1), math.Sin(2), math.Sin(3)}

	for i, w := range want {
		frame := testutil.DC(1, 2)
		s.ProcessFrame(frame, p)

		testutil.RequireSliceNearlyEqual(t, frame, testutil.DC(w, 2), 1e-12)

		if i == 3 && s.Accumulator() != 4 {
			t.Fatalf("Accumulator() = %v, want 4", s.Accumulator())
		}
	}

	if math.Abs(want[1]-0.8415) > 1e-4 || math.Abs(want[2]-0.9093) > 1e-4 || math.Abs(want[3]-0.1411) > 1e-4 {
		t.Fatalf("reference values drifted: %v", want)
	}
}

func TestSineShaperUnitFactorDriveIsExact(t *testing.T) {
	s, _ := NewSineShaper()

	for i := 0; i < 25; i++ {
		acc := s.Accumulator()
		if got, want := s.Drive(1), math.Sin(acc); got != want {
			t.Fatalf("Drive(1) at acc=%v = %v, want %v", acc, got, want)
		}

		if got := s.Drive(0); got != math.Sin(1) {
			t.Fatalf("Drive(0) at acc=%v = %v, want sin(1)", acc, got)
		}

		s.Advance(0.45)
	}
}

func TestSineShaperMixZeroIsGainOnly(t *testing.T) {
	s, _ := NewSineShaper()

	for _, gain := range []float64{1, 0.5, 3.7} {
		for i, in := range []float64{-1.2, -0.5, 0, 0.4, 1.3} {
			frame := []float64{in}
			s.ProcessFrame(frame, FrameParams{Gain: gain, Increment: 0.37, Factor: 0.6, Mix: 0})

			if frame[0] != in*gain {
				t.Fatalf("gain=%g sample %d: got %v, want %v", gain, i, frame[0], in*gain)
			}
		}
	}
}

func TestSineShaperUnityIdentity(t *testing.T) {
	s, _ := NewSineShaper()
	in := []float64{0.1, -0.9, 0.33, 1, -1, 0}
	buf := append([]float64(nil), in...)

	s.ProcessInPlace(buf, FrameParams{Gain: 1, Increment: 0.5, Factor: 1, Mix: 0})

	for i := range in {
		if buf[i] != in[i] {
			t.Fatalf("sample %d: got %v, want exactly %v", i, buf[i], in[i])
		}
	}
}

func TestSineShaperMixFullIsShapedOnly(t *testing.T) {
	s, _ := NewSineShaper()
	ref, _ := NewSineShaper()

	p := FrameParams{Gain: 2, Increment: 0.25, Factor: 0.7, Mix: 1}

	for i := 0; i < 64; i++ {
		in := math.Sin(float64(i) * 0.3)
		frame := []float64{in, -in}

		drive := ref.Drive(p.Factor)
		ref.Advance(p.Increment)

		s.ProcessFrame(frame, p)

		if frame[0] != in*drive*p.Gain || frame[1] != -in*drive*p.Gain {
			t.Fatalf("frame %d: got %v, want ±%v", i, frame, in*drive*p.Gain)
		}
	}
}

func TestSineShaperFactorZeroIsConstantAttenuation(t *testing.T) {
	s, _ := NewSineShaper()
	want := math.Sin(1)

	for i := 0; i < 30; i++ {
		frame := []float64{1}
		s.ProcessFrame(frame, FrameParams{Gain: 1, Increment: 0.5, Factor: 0, Mix: 1})

		if math.Abs(frame[0]-want) > 1e-15 {
			t.Fatalf("frame %d (acc=%v): got %v, want sin(1)", i, s.Accumulator(), frame[0])
		}
	}
}

func TestSineShaperAccumulatorWrap(t *testing.T) {
	for _, inc := range []float64{0.3, 0.7, 0.15, 0.999} {
		s, _ := NewSineShaper()
		frames := int(math.Ceil(SineShaperCeiling / inc))
		wrapped := false
		prev := 0.0

		for i := 0; i < frames; i++ {
			if s.Accumulator() > SineShaperCeiling {
				t.Fatalf("inc=%g frame %d: accumulator %v read above ceiling", inc, i, s.Accumulator())
			}

			s.Advance(inc)

			if s.Accumulator() < prev {
				wrapped = true
			}

			prev = s.Accumulator()
		}

		if !wrapped {
			t.Fatalf("inc=%g: no wrap within %d frames (acc=%v)", inc, frames, s.Accumulator())
		}
	}
}

func TestSineShaperWrapIsStrict(t *testing.T) {
	s, _ := NewSineShaper()

	for i := 0; i < 10; i++ {
		s.Advance(1)
	}

	if s.Accumulator() != 10 {
		t.Fatalf("accumulator = %v, want 10 (wrap requires exceeding the ceiling)", s.Accumulator())
	}

	s.Advance(1)

	if s.Accumulator() != 0 {
		t.Fatalf("accumulator = %v, want hard reset to 0", s.Accumulator())
	}
}

func TestSineShaperWrapModulo(t *testing.T) {
	s, err := NewSineShaper(WithSineShaperWrapMode(SineShaperWrapModulo))
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 11; i++ {
		s.Advance(0.75)
	}

	// 11 * 0.75 = 8.25; one more step reaches 9.0, two more 9.75, then 10.5 -> 0.5.
	s.Advance(0.75)
	s.Advance(0.75)
	s.Advance(0.75)

	if math.Abs(s.Accumulator()-0.5) > 1e-12 {
		t.Fatalf("accumulator = %v, want 0.5", s.Accumulator())
	}
}

func TestSineShaperReset(t *testing.T) {
	s, _ := NewSineShaper()
	s.Advance(3.5)
	s.Reset()

	if s.Accumulator() != 0 {
		t.Fatalf("accumulator = %v after Reset, want 0", s.Accumulator())
	}
}

func TestSineShaperRenderWeightsMatchesProcessFrame(t *testing.T) {
	const n = 300

	gain := make([]float64, n)
	inc := make([]float64, n)
	factor := make([]float64, n)
	mix := make([]float64, n)

	for i := 0; i < n; i++ {
		gain[i] = 0.5 + float64(i)/n
		inc[i] = 0.05 + 0.9*float64(i%17)/17
		factor[i] = float64(i%11) / 10
		mix[i] = float64(i%5) / 4
	}

	a, _ := NewSineShaper()
	b, _ := NewSineShaper()

	weights := make([]float64, n)
	a.RenderWeights(weights, gain, inc, factor, mix)

	for i := 0; i < n; i++ {
		in := math.Cos(float64(i) * 0.1)
		frame := []float64{in, 0.5 * in}
		b.ProcessFrame(frame, FrameParams{Gain: gain[i], Increment: inc[i], Factor: factor[i], Mix: mix[i]})

		if math.Abs(frame[0]-in*weights[i]) > 1e-12 || math.Abs(frame[1]-0.5*in*weights[i]) > 1e-12 {
			t.Fatalf("frame %d: ProcessFrame=%v weights=%v", i, frame, in*weights[i])
		}
	}

	if a.Accumulator() != b.Accumulator() {
		t.Fatalf("accumulators diverged: %v vs %v", a.Accumulator(), b.Accumulator())
	}
}

func TestSineShaperOutputFinite(t *testing.T) {
	s, _ := NewSineShaper()

	for i := 0; i < 10000; i++ {
		frame := []float64{1, -1}
		s.ProcessFrame(frame, FrameParams{Gain: 31.6, Increment: 1, Factor: float64(i%101) / 100, Mix: 1})

		if math.IsNaN(frame[0]) || math.IsInf(frame[0], 0) || math.Abs(frame[0]) > 31.6 {
			t.Fatalf("frame %d: non-finite or unbounded output %v", i, frame[0])
		}
	}
}

func TestSineShaperProcessFrameDoesNotAllocate(t *testing.T) {
	s, _ := NewSineShaper()
	frame := []float64{0.5, -0.5}
	p := FrameParams{Gain: 1, Increment: 0.1, Factor: 0.5, Mix: 0.5}

	allocs := testing.AllocsPerRun(100, func() {
		s.ProcessFrame(frame, p)
	})
	if allocs != 0 {
		t.Fatalf("allocs = %v, want 0", allocs)
	}
}
