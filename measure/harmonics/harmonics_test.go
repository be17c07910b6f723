package harmonics

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/bruhsine/dsp/plugin"
	"github.com/cwbudde/bruhsine/dsp/window"
	"github.com/cwbudde/bruhsine/internal/testutil"
)

const (
	testRate    = 48000.0
	testFFTSize = 4096
	// Bin 64 of a 4096-point FFT at 48 kHz.
	testFreq = 750.0
)

func TestAnalyzeKnownHarmonics(t *testing.T) {
	sig := testutil.DeterministicSine(testFreq, testRate, 1, testFFTSize)
	third := testutil.DeterministicSine(3*testFreq, testRate, 0.1, testFFTSize)
	fourth := testutil.DeterministicSine(4*testFreq, testRate, 0.05, testFFTSize)

	for i := range sig {
		sig[i] += third[i] + fourth[i]
	}

	for _, win := range window.Types() {
		t.Run(win.String(), func(t *testing.T) {
			res, err := Analyze(sig, Config{SampleRate: testRate, FFTSize: testFFTSize, Fundamental: testFreq, Window: win})
			if err != nil {
				t.Fatalf("Analyze() error = %v", err)
			}

			if res.FundamentalFreq != testFreq {
				t.Fatalf("FundamentalFreq = %v, want %v", res.FundamentalFreq, testFreq)
			}

			if math.Abs(res.FundamentalLevel-1) > 1e-9 {
				t.Fatalf("FundamentalLevel = %v, want 1", res.FundamentalLevel)
			}

			if len(res.Harmonics) != defaultMaxHarmonics {
				t.Fatalf("len(Harmonics) = %d, want %d", len(res.Harmonics), defaultMaxHarmonics)
			}

			checks := []struct {
				name      string
				got, want float64
			}{
				{"H2", res.Harmonics[0], 0},
				{"H3", res.Harmonics[1], 0.1},
				{"H4", res.Harmonics[2], 0.05},
				{"THD", res.THD, math.Hypot(0.1, 0.05)},
				{"odd", res.OddHD, 0.1},
				{"even", res.EvenHD, 0.05},
			}

			for _, c := range checks {
				if math.Abs(c.got-c.want) > 1e-9 {
					t.Fatalf("%s = %.12f, want %.12f", c.name, c.got, c.want)
				}
			}
		})
	}
}

func TestAnalyzeFindsFundamental(t *testing.T) {
	sig := testutil.DeterministicSine(2*testFreq, testRate, 0.5, testFFTSize)

	res, err := Analyze(sig, Config{SampleRate: testRate, FFTSize: testFFTSize})
	if err != nil {
		t.Fatal(err)
	}

	if res.FundamentalFreq != 2*testFreq {
		t.Fatalf("FundamentalFreq = %v, want %v", res.FundamentalFreq, 2*testFreq)
	}

	if math.Abs(res.FundamentalLevel-0.5) > 1e-9 {
		t.Fatalf("FundamentalLevel = %v, want 0.5", res.FundamentalLevel)
	}

	if res.THD > 1e-9 {
		t.Fatalf("THD = %v for a pure tone", res.THD)
	}
}

func TestAnalyzeSilence(t *testing.T) {
	res, err := Analyze(make([]float64, 256), Config{SampleRate: testRate, FFTSize: 256})
	if err != nil {
		t.Fatal(err)
	}

	if res.FundamentalLevel != 0 || res.Harmonics != nil || !math.IsInf(res.THDdB, -1) {
		t.Fatalf("silence result = %+v", res)
	}
}

func TestConfigValidation(t *testing.T) {
	bad := []Config{
		{SampleRate: 0},
		{SampleRate: math.NaN()},
		{SampleRate: testRate, FFTSize: 1000},
		{SampleRate: testRate, FFTSize: 1},
		{SampleRate: testRate, Fundamental: -1},
		{SampleRate: testRate, Fundamental: 30000},
		{SampleRate: testRate, Window: window.Type(42)},
	}

	for _, cfg := range bad {
		if _, err := NewAnalyzer(cfg); err == nil {
			t.Fatalf("NewAnalyzer(%+v) succeeded, want error", cfg)
		}
	}

	a, err := NewAnalyzer(Config{SampleRate: testRate})
	if err != nil {
		t.Fatal(err)
	}

	if got := a.Config(); got.FFTSize != defaultFFTSize || got.MaxHarmonics != defaultMaxHarmonics || got.CaptureBins != 2 {
		t.Fatalf("defaults = %+v", got)
	}

	if _, err := a.Analyze(nil); !errors.Is(err, ErrEmptySignal) {
		t.Fatalf("Analyze(nil) error = %v, want ErrEmptySignal", err)
	}
}

func TestMeasureEffect(t *testing.T) {
	probe := Probe{Frequency: testFreq, Amplitude: 0.5}
	cfg := Config{SampleRate: testRate, FFTSize: testFFTSize}

	tests := []struct {
		name      string
		values    map[string]float64
		wantLevel float64
	}{
		{
			name:      "dry",
			values:    map[string]float64{plugin.ParamMix: 0},
			wantLevel: 0.5,
		},
		{
			// acc^0 is 1 for every accumulator value, so the drive is the constant sin(1).
			name:      "constant drive",
			values:    map[string]float64{plugin.ParamFactor: 0, plugin.ParamMix: 100},
			wantLevel: 0.5 * math.Sin(1),
		},
		{
			name:      "dry with gain",
			values:    map[string]float64{plugin.ParamMix: 0, plugin.ParamOutput: 2},
			wantLevel: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := MeasureEffect(tt.values, probe, cfg)
			if err != nil {
				t.Fatalf("MeasureEffect() error = %v", err)
			}

			if math.Abs(res.FundamentalLevel-tt.wantLevel) > 1e-9 {
				t.Fatalf("FundamentalLevel = %v, want %v", res.FundamentalLevel, tt.wantLevel)
			}

			if res.THD > 1e-9 {
				t.Fatalf("THD = %v, want ~0", res.THD)
			}
		})
	}
}

func TestMeasureEffectShapesSpectrum(t *testing.T) {
	values := map[string]float64{
		plugin.ParamIncrement: 0.01,
		plugin.ParamFactor:    1,
		plugin.ParamMix:       100,
	}

	res, err := MeasureEffect(values, Probe{Frequency: testFreq, Amplitude: 1}, Config{SampleRate: testRate})
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireFinite(t, res.Harmonics)

	if res.FundamentalLevel >= 1 {
		t.Fatalf("FundamentalLevel = %v, want < 1 with the shaper engaged", res.FundamentalLevel)
	}
}

func TestRenderEffectRejectsBadInput(t *testing.T) {
	if _, err := RenderEffect(nil, Probe{Frequency: 1000, Amplitude: 1}, testRate, 0); err == nil {
		t.Fatal("expected error for zero frames")
	}

	if _, err := RenderEffect(nil, Probe{Frequency: 1000, Amplitude: 1}, 0, 16); err == nil {
		t.Fatal("expected error for zero sample rate")
	}

	if _, err := RenderEffect(nil, Probe{Frequency: testRate, Amplitude: 1}, testRate, 16); err == nil {
		t.Fatal("expected error for a probe above Nyquist")
	}

	if _, err := RenderEffect(map[string]float64{plugin.ParamMix: math.NaN()}, Probe{}, testRate, 16); err == nil {
		t.Fatal("expected error for non-finite parameter value")
	}
}

func BenchmarkAnalyzer(b *testing.B) {
	a, err := NewAnalyzer(Config{SampleRate: testRate, FFTSize: testFFTSize, Fundamental: testFreq})
	if err != nil {
		b.Fatal(err)
	}

	sig := testutil.DeterministicSine(testFreq, testRate, 1, testFFTSize)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := a.Analyze(sig); err != nil {
			b.Fatal(err)
		}
	}
}
