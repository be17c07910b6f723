// Package effects provides reusable non-I/O DSP effect kernels.
//
// Effects in this package:
//   - SineShaper: time-varying sine waveshaper driven by a phase accumulator,
//     with dry/wet mix and output gain.
//
// Kernels are designed for real-time processing with zero-allocation hot
// paths and bounded, data-independent work per sample. Parameter smoothing
// lives outside the kernels; they consume one coefficient set per frame.
package effects
