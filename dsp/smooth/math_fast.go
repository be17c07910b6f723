//go:build fastmath

package smooth

import "github.com/meko-christian/algo-approx"

// Only the per-ramp ratio goes through these; the last step still snaps to
// the exact target, so approximation error never accumulates into it.

func mathLog(x float64) float64 { return approx.FastLog(x) }

func mathExp(x float64) float64 { return approx.FastExp(x) }
