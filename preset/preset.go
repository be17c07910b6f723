// Package preset saves and restores parameter values as YAML documents.
//
// A preset stores plain values keyed by parameter ID, plus an optional
// opaque blob an editor may use for its own state. Values for IDs the
// receiving surface does not know are ignored on load, so presets survive
// parameters being added or removed.
package preset

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/cwbudde/bruhsine/dsp/param"
)

// FormatVersion is written into every saved preset.
const FormatVersion = 1

// ErrUnsupportedVersion is returned for presets written by a newer format.
var ErrUnsupportedVersion = errors.New("preset: unsupported format version")

// Preset is one saved parameter state.
type Preset struct {
	Name    string             `yaml:"name"`
	Version int                `yaml:"version"`
	Params  map[string]float64 `yaml:"params"`
	// Editor is base64 so arbitrary bytes survive the YAML round trip.
	Editor string `yaml:"editor,omitempty"`
}

// Capture snapshots the current targets of s.
func Capture(name string, s *param.Surface) *Preset {
	return &Preset{
		Name:    name,
		Version: FormatVersion,
		Params:  s.Snapshot(),
	}
}

// Apply writes the preset's values to s. Unknown IDs are skipped; values are
// clamped into range; non-finite values are rejected and reported.
func (p *Preset) Apply(s *param.Surface) error {
	if err := s.Restore(p.Params); err != nil {
		return fmt.Errorf("preset %q: %w", p.Name, err)
	}

	return nil
}

// SetEditorState stores an opaque editor blob. A nil or empty blob clears it.
func (p *Preset) SetEditorState(state []byte) {
	if len(state) == 0 {
		p.Editor = ""
		return
	}

	p.Editor = base64.StdEncoding.EncodeToString(state)
}

// EditorState returns the stored editor blob, or nil if there is none.
func (p *Preset) EditorState() ([]byte, error) {
	if p.Editor == "" {
		return nil, nil
	}

	state, err := base64.StdEncoding.DecodeString(p.Editor)
	if err != nil {
		return nil, fmt.Errorf("preset %q: editor state: %w", p.Name, err)
	}

	return state, nil
}

// Load decodes a preset from r.
func Load(r io.Reader) (*Preset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("preset: read: %w", err)
	}

	var p Preset
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("preset: parse: %w", err)
	}

	// Version 0 means the field was absent.
	if p.Version > FormatVersion || p.Version < 0 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, p.Version)
	}

	if p.Params == nil {
		p.Params = map[string]float64{}
	}

	return &p, nil
}

// Save encodes p to w.
func (p *Preset) Save(w io.Writer) error {
	out := *p
	out.Version = FormatVersion

	data, err := yaml.Marshal(&out)
	if err != nil {
		return fmt.Errorf("preset: encode: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("preset: write: %w", err)
	}

	return nil
}

// LoadFile reads a preset from path.
func LoadFile(path string) (*Preset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("preset: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// SaveFile writes p to path, replacing any existing file.
func (p *Preset) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("preset: %w", err)
	}

	if err := p.Save(f); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
