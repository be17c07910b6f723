package main

import (
	"io"

	"github.com/cwbudde/bruhsine/dsp/buffer"
	"github.com/cwbudde/bruhsine/dsp/core"
	"github.com/cwbudde/bruhsine/dsp/plugin"
	"github.com/cwbudde/bruhsine/dsp/signal"
)

// stream pulls blocks of the test tone through the effect and encodes them
// as interleaved float32 PCM. It is the io.Reader handed to the audio device,
// so Read runs on the device's goroutine.
type stream struct {
	fx         *plugin.Plugin
	src        *signal.Oscillator
	sampleRate float64
	channels   int
	blockSize  int

	planar      []*buffer.Buffer
	views       [][]float64
	interleaved *buffer.Buffer
}

func newStream(fx *plugin.Plugin, src *signal.Oscillator, cfg core.ProcessorConfig) *stream {
	s := &stream{
		fx:          fx,
		src:         src,
		sampleRate:  cfg.SampleRate,
		channels:    cfg.Channels,
		blockSize:   cfg.BlockSize,
		planar:      make([]*buffer.Buffer, cfg.Channels),
		views:       make([][]float64, cfg.Channels),
		interleaved: buffer.New(cfg.BlockSize * cfg.Channels),
	}

	for c := range s.planar {
		s.planar[c] = buffer.New(cfg.BlockSize)
	}

	return s
}

func (s *stream) frameBytes() int { return s.channels * buffer.BytesPerFloat32 }

// Read fills p with whole frames. Trailing bytes that cannot hold a full
// frame are zeroed.
func (s *stream) Read(p []byte) (int, error) {
	frames := len(p) / s.frameBytes()
	written := 0

	for frames > 0 {
		n := min(frames, s.blockSize)

		for c, b := range s.planar {
			b.Resize(n)
			s.views[c] = b.Samples()
		}

		s.src.Fill(s.views[0])

		for _, v := range s.views[1:] {
			copy(v, s.views[0])
		}

		if s.fx.Process(s.views, s.sampleRate) != plugin.StatusNormal {
			for _, v := range s.views {
				core.Zero(v)
			}
		}

		inter := s.interleaved.Samples()[:n*s.channels]
		buffer.Interleave(inter, s.views)
		buffer.EncodeFloat32LE(p[written:], inter)

		written += n * s.frameBytes()
		frames -= n
	}

	clear(p[written:])

	return len(p), nil
}

// render writes frames of processed PCM to w.
func render(w io.Writer, s *stream, frames int) error {
	chunk := make([]byte, s.blockSize*s.frameBytes())

	for frames > 0 {
		n := min(frames, s.blockSize)
		part := chunk[:n*s.frameBytes()]

		if _, err := s.Read(part); err != nil {
			return err
		}

		if _, err := w.Write(part); err != nil {
			return err
		}

		frames -= n
	}

	return nil
}
