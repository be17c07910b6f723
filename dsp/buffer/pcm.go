package buffer

import (
	"encoding/binary"
	"math"
)

// BytesPerFloat32 is the size of one encoded float32 sample.
const BytesPerFloat32 = 4

// EncodeFloat32LE writes src as little-endian float32 PCM into dst, clipping
// each sample to [-1, 1]. It returns the number of samples written, limited
// by len(dst)/4.
func EncodeFloat32LE(dst []byte, src []float64) int {
	n := len(dst) / BytesPerFloat32
	if len(src) < n {
		n = len(src)
	}

	for i := 0; i < n; i++ {
		v := src[i]
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}

		binary.LittleEndian.PutUint32(dst[i*BytesPerFloat32:], math.Float32bits(float32(v)))
	}

	return n
}
