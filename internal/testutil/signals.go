// Package testutil holds signal generators and assertions shared by tests.
package testutil

import (
	"github.com/cwbudde/bruhsine/dsp/core"
	"github.com/cwbudde/bruhsine/dsp/signal"
)

// DeterministicSine returns length samples of a sine starting at phase 0.
// It panics on arguments signal.Generator rejects.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out, err := signal.NewGenerator(core.WithSampleRate(sampleRate)).Sine(freqHz, amplitude, length)
	if err != nil {
		panic(err)
	}

	return out
}

// DeterministicNoise returns uniform noise in [-amplitude, amplitude) from a
// fixed seed.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out, err := signal.NewGeneratorWithOptions(nil, signal.WithSeed(seed)).WhiteNoise(amplitude, length)
	if err != nil {
		panic(err)
	}

	return out
}

// DC returns a constant signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}

	return out
}

// Planar returns channels copies of src as a planar block.
func Planar(src []float64, channels int) [][]float64 {
	block := make([][]float64, channels)
	for c := range block {
		block[c] = append([]float64(nil), src...)
	}

	return block
}

// ClonePlanar deep-copies a planar block.
func ClonePlanar(block [][]float64) [][]float64 {
	out := make([][]float64, len(block))
	for c, ch := range block {
		out[c] = append([]float64(nil), ch...)
	}

	return out
}
