package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/cwbudde/bruhsine/dsp/param"
	"github.com/cwbudde/bruhsine/dsp/plugin"
	"github.com/cwbudde/bruhsine/preset"
)

const nudgeStep = 0.02

var errQuit = errors.New("quit requested")

// controller maps key presses to parameter edits. It plays the part of an
// editor: every change goes through an accessor on the shared surface.
type controller struct {
	fx         *plugin.Plugin
	surface    *param.Surface
	ids        []string
	selected   int
	presetPath string
	editor     editorGeometry
	out        io.Writer
}

func newController(fx *plugin.Plugin, presetPath string, editor editorGeometry, out io.Writer) *controller {
	return &controller{
		fx:         fx,
		surface:    fx.Params(),
		ids:        fx.Params().IDs(),
		presetPath: presetPath,
		editor:     editor,
		out:        out,
	}
}

func (c *controller) accessor() param.Accessor {
	return param.NormalizedField(c.ids[c.selected])
}

// handleKey applies one key press. It returns errQuit when the user asks to
// leave.
func (c *controller) handleKey(key byte) error {
	switch key {
	case '1', '2', '3', '4', '5', '6', '7', '8', '9':
		if i := int(key - '1'); i < len(c.ids) {
			c.selected = i
		}
	case '+', '=':
		if err := param.Nudge(c.accessor(), c.surface, nudgeStep); err != nil {
			return err
		}
	case '-', '_':
		if err := param.Nudge(c.accessor(), c.surface, -nudgeStep); err != nil {
			return err
		}
	case 'd':
		p, _ := c.surface.Parameter(c.ids[c.selected])
		p.ResetToDefault()
	case 'D':
		c.surface.ResetToDefaults()
	case 'r':
		c.fx.RequestReset()
	case 's':
		if err := c.save(); err != nil {
			return err
		}
	case 'q', 3, 4:
		return errQuit
	default:
		return nil
	}

	c.printStatus()

	return nil
}

func (c *controller) save() error {
	if c.presetPath == "" {
		return errors.New("no preset path given; use -preset")
	}

	p := preset.Capture(strings.TrimSuffix(filepath.Base(c.presetPath), filepath.Ext(c.presetPath)), c.surface)

	blob, err := c.editor.MarshalBinary()
	if err != nil {
		return err
	}

	p.SetEditorState(blob)

	if err := p.SaveFile(c.presetPath); err != nil {
		return err
	}

	fmt.Fprintf(c.out, "\r\nsaved %s\r\n", c.presetPath)

	return nil
}

func (c *controller) status() string {
	var sb strings.Builder

	for i, id := range c.ids {
		p, _ := c.surface.Parameter(id)

		marker := " "
		if i == c.selected {
			marker = ">"
		}

		fmt.Fprintf(&sb, "%s%d %s: %s  ", marker, i+1, p.Name(), p.String())
	}

	return strings.TrimRight(sb.String(), " ")
}

func (c *controller) printStatus() {
	fmt.Fprintf(c.out, "\r\x1b[K%s", c.status())
}

// runKeyboard reads single key presses from the terminal until ctx is done
// or the user quits. Without a terminal it only waits for ctx.
func runKeyboard(ctx context.Context, c *controller) error {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		<-ctx.Done()
		return nil
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("keyboard: raw mode: %w", err)
	}
	defer func() { _ = term.Restore(fd, state) }()

	keys := make(chan byte)

	// The reader stays blocked in os.Stdin.Read after ctx is done; it ends
	// with the process, which exits as soon as run returns.
	go func() {
		defer close(keys)

		buf := make([]byte, 1)

		for {
			n, err := os.Stdin.Read(buf)
			if err != nil {
				return
			}

			if n == 0 {
				continue
			}

			select {
			case keys <- buf[0]:
			case <-ctx.Done():
				return
			}
		}
	}()

	fmt.Fprint(c.out, "1-4 select, +/- adjust, d default, D all defaults, r reset, s save, q quit\r\n")
	c.printStatus()

	for {
		select {
		case <-ctx.Done():
			fmt.Fprint(c.out, "\r\n")
			return nil
		case key, ok := <-keys:
			if !ok {
				return nil
			}

			err := c.handleKey(key)
			if errors.Is(err, errQuit) {
				fmt.Fprint(c.out, "\r\n")
				return err
			}

			if err != nil {
				fmt.Fprintf(c.out, "\r\nerror: %v\r\n", err)
			}
		}
	}
}
