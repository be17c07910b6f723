package buffer

import (
	"errors"
	"fmt"
)

// ErrRaggedBlock is returned when the channels of a planar block differ in length.
var ErrRaggedBlock = errors.New("channels differ in length")

// FrameCount returns the number of frames in a planar block. An empty block
// has zero frames.
func FrameCount(channels [][]float64) (int, error) {
	if len(channels) == 0 {
		return 0, nil
	}

	n := len(channels[0])
	for i, ch := range channels[1:] {
		if len(ch) != n {
			return 0, fmt.Errorf("%w: channel %d has %d samples, channel 0 has %d", ErrRaggedBlock, i+1, len(ch), n)
		}
	}

	return n, nil
}

// Interleave writes planar channels into dst frame by frame and returns the
// number of frames written. dst must hold frames*len(channels) samples.
func Interleave(dst []float64, channels [][]float64) int {
	nch := len(channels)
	if nch == 0 {
		return 0
	}

	frames := len(dst) / nch
	for _, ch := range channels {
		if len(ch) < frames {
			frames = len(ch)
		}
	}

	for c, ch := range channels {
		for i := 0; i < frames; i++ {
			dst[i*nch+c] = ch[i]
		}
	}

	return frames
}

// Deinterleave splits interleaved src into planar channels and returns the
// number of frames written.
func Deinterleave(channels [][]float64, src []float64) int {
	nch := len(channels)
	if nch == 0 {
		return 0
	}

	frames := len(src) / nch
	for _, ch := range channels {
		if len(ch) < frames {
			frames = len(ch)
		}
	}

	for c, ch := range channels {
		for i := 0; i < frames; i++ {
			ch[i] = src[i*nch+c]
		}
	}

	return frames
}
