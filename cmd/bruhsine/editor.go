package main

import (
	"fmt"
)

// editorGeometry is the state an editor window would persist. Presets carry
// it as an opaque blob.
type editorGeometry struct {
	Width  int
	Height int
}

var defaultEditor = editorGeometry{Width: 400, Height: 200}

func (g editorGeometry) MarshalBinary() ([]byte, error) {
	return []byte(fmt.Sprintf("%dx%d", g.Width, g.Height)), nil
}

func (g *editorGeometry) UnmarshalBinary(data []byte) error {
	var w, h int
	if _, err := fmt.Sscanf(string(data), "%dx%d", &w, &h); err != nil {
		return fmt.Errorf("editor geometry %q: %w", data, err)
	}

	if w <= 0 || h <= 0 {
		return fmt.Errorf("editor geometry must be positive: %dx%d", w, h)
	}

	g.Width, g.Height = w, h

	return nil
}
