// Package buffer provides a reusable float64 buffer type and helpers for the
// block layouts hosts deliver: planar channel slices and interleaved frames.
// All DSP functions accept raw []float64 slices; Buffer is an optional
// convenience that helps callers manage allocation and reuse outside the
// real-time path.
package buffer
