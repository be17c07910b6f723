package buffer

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"
)

func TestFrameCount(t *testing.T) {
	n, err := FrameCount([][]float64{make([]float64, 5), make([]float64, 5)})
	if err != nil || n != 5 {
		t.Fatalf("FrameCount() = %d, %v; want 5", n, err)
	}

	n, err = FrameCount(nil)
	if err != nil || n != 0 {
		t.Fatalf("FrameCount(nil) = %d, %v; want 0", n, err)
	}

	_, err = FrameCount([][]float64{make([]float64, 5), make([]float64, 4)})
	if !errors.Is(err, ErrRaggedBlock) {
		t.Fatalf("FrameCount() error = %v, want ErrRaggedBlock", err)
	}
}

func TestInterleaveRoundTrip(t *testing.T) {
	left := []float64{1, 2, 3}
	right := []float64{-1, -2, -3}

	inter := make([]float64, 6)
	if n := Interleave(inter, [][]float64{left, right}); n != 3 {
		t.Fatalf("Interleave() = %d frames, want 3", n)
	}

	want := []float64{1, -1, 2, -2, 3, -3}
	for i := range want {
		if inter[i] != want[i] {
			t.Fatalf("inter = %v, want %v", inter, want)
		}
	}

	l2, r2 := make([]float64, 3), make([]float64, 3)
	if n := Deinterleave([][]float64{l2, r2}, inter); n != 3 {
		t.Fatalf("Deinterleave() = %d frames, want 3", n)
	}

	for i := range left {
		if l2[i] != left[i] || r2[i] != right[i] {
			t.Fatalf("deinterleaved = %v %v", l2, r2)
		}
	}
}

func TestEncodeFloat32LEClips(t *testing.T) {
	dst := make([]byte, 12)

	n := EncodeFloat32LE(dst, []float64{0.5, 3, -7, 1})
	if n != 3 {
		t.Fatalf("EncodeFloat32LE() = %d, want 3", n)
	}

	want := []float32{0.5, 1, -1}
	for i, w := range want {
		got := math.Float32frombits(binary.LittleEndian.Uint32(dst[i*4:]))
		if got != w {
			t.Fatalf("sample %d = %v, want %v", i, got, w)
		}
	}
}
