//go:build !fastmath

package effects

import "math"

func mathPow(x, y float64) float64 { return math.Pow(x, y) }

func mathSin(x float64) float64 { return math.Sin(x) }
