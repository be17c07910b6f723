// Package smooth turns stepwise parameter targets into per-sample ramps.
//
// A Smoother is owned by the audio goroutine. SetTarget is called at the
// start of each block with the latest parameter target; Next is called once
// per frame. Ramps have a fixed wall-clock length, so the number of steps is
// derived from the sample rate and is independent of the host block size.
//
// Every ramp lands on its target exactly on its last step and stays there,
// regardless of the interpolation law.
package smooth
