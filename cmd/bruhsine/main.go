// Command bruhsine plays a test tone through the Bruh Sine effect and lets
// the terminal drive its parameters.
//
// Usage:
//
//	bruhsine [flags]
//
// Examples:
//
//	bruhsine -tone 110 -level 0.3
//	bruhsine -preset warm.yaml
//	bruhsine -render out.f32 -seconds 2
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ebitengine/oto/v3"
	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/bruhsine/dsp/core"
	"github.com/cwbudde/bruhsine/dsp/effects"
	"github.com/cwbudde/bruhsine/dsp/plugin"
	dspsignal "github.com/cwbudde/bruhsine/dsp/signal"
	"github.com/cwbudde/bruhsine/preset"
)

func main() {
	rate := flag.Int("rate", 48000, "sample rate in Hz")
	block := flag.Int("block", 512, "processing block size in frames")
	toneHz := flag.Float64("tone", 220, "test tone frequency in Hz")
	level := flag.Float64("level", 0.5, "test tone amplitude (0..1)")
	presetPath := flag.String("preset", "", "preset file to load at start and save to with 's'")
	wrap := flag.String("wrap", "reset", "accumulator wrap: reset or modulo")
	renderPath := flag.String("render", "", "write float32 PCM to this file instead of playing")
	seconds := flag.Float64("seconds", 5, "length of -render output in seconds")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: bruhsine [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Plays a sine test tone through the Bruh Sine effect.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	log.SetFlags(log.Lshortfile)

	if err := run(*rate, *block, *toneHz, *level, *presetPath, *wrap, *renderPath, *seconds); err != nil {
		log.Fatalf("error: %v\n", err)
	}
}

func run(rate, block int, toneHz, level float64, presetPath, wrap, renderPath string, seconds float64) error {
	cfg := core.ProcessorConfig{SampleRate: float64(rate), BlockSize: block, Channels: 2}

	mode, err := parseWrapMode(wrap)
	if err != nil {
		return err
	}

	fx, err := plugin.New(cfg, plugin.WithWrapMode(mode))
	if err != nil {
		return err
	}

	editor := defaultEditor

	if presetPath != "" {
		if err := loadPreset(presetPath, fx, &editor); err != nil {
			return err
		}
	}

	info := plugin.DefaultInfo()
	log.Printf("%s %s, %d Hz, block %d, editor %dx%d\n", info.Name, info.Version, rate, block, editor.Width, editor.Height)

	osc, err := dspsignal.NewGenerator(core.WithSampleRate(cfg.SampleRate)).Oscillator(toneHz, core.Clamp(level, 0, 1))
	if err != nil {
		return err
	}

	s := newStream(fx, osc, cfg)

	if renderPath != "" {
		return renderFile(renderPath, s, int(seconds*cfg.SampleRate))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return play(ctx, s, cfg)
	})
	g.Go(func() error {
		return runKeyboard(ctx, newController(fx, presetPath, editor, os.Stdout))
	})

	err = g.Wait()
	if errors.Is(err, errQuit) {
		return nil
	}

	return err
}

func parseWrapMode(name string) (effects.SineShaperWrapMode, error) {
	switch name {
	case "reset":
		return effects.SineShaperWrapReset, nil
	case "modulo":
		return effects.SineShaperWrapModulo, nil
	default:
		return 0, fmt.Errorf("unknown wrap mode %q (want reset or modulo)", name)
	}
}

// loadPreset applies the preset at path if it exists. A missing file is not
// an error, so -preset can name a file that 's' will create.
func loadPreset(path string, fx *plugin.Plugin, editor *editorGeometry) error {
	p, err := preset.LoadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Printf("preset %s does not exist yet; starting from defaults\n", path)
		return nil
	}

	if err != nil {
		return err
	}

	if err := p.Apply(fx.Params()); err != nil {
		log.Printf("preset %s partially applied: %v\n", path, err)
	}

	fx.Reset()

	state, err := p.EditorState()
	if err != nil {
		return err
	}

	if state != nil {
		if err := editor.UnmarshalBinary(state); err != nil {
			log.Printf("ignoring editor state: %v\n", err)
		}
	}

	return nil
}

func play(ctx context.Context, s *stream, cfg core.ProcessorConfig) error {
	otoCtx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   int(cfg.SampleRate),
		ChannelCount: cfg.Channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   time.Duration(float64(cfg.BlockSize) / cfg.SampleRate * float64(time.Second)),
	})
	if err != nil {
		return fmt.Errorf("audio: %w", err)
	}
	<-ready

	player := otoCtx.NewPlayer(s)
	player.Play()

	<-ctx.Done()

	return player.Close()
}

func renderFile(path string, s *stream, frames int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := render(f, s, frames); err != nil {
		f.Close()
		return err
	}

	log.Printf("wrote %d frames to %s\n", frames, path)

	return f.Close()
}
