package param

// Accessor binds an editor widget to one field of a Surface. Every widget
// reads and writes through the same two calls, so a knob does not need to
// know which parameter it drives.
//
// Get has no error return and reports 0 for an ID the Surface does not
// know. Widgets should check the binding once with Bind; Set and Nudge fail
// with ErrUnknownParameter.
type Accessor interface {
	ID() string
	Get(s *Surface) float64
	Set(s *Surface, value float64) error
}

// Bind reports whether a resolves to a parameter on s.
func Bind(a Accessor, s *Surface) error {
	_, err := s.lookup(a.ID())
	return err
}

// Field accesses the plain value of the parameter with this ID.
type Field string

// ID returns the parameter ID.
func (f Field) ID() string { return string(f) }

// Get returns the plain value, or 0 for an unknown ID.
func (f Field) Get(s *Surface) float64 {
	v, err := s.Read(string(f))
	if err != nil {
		return 0
	}

	return v
}

// Set writes a plain value.
func (f Field) Set(s *Surface, value float64) error {
	return s.Write(string(f), value)
}

// NormalizedField accesses the 0..1 position of the parameter with this ID,
// the natural unit for knob drags.
type NormalizedField string

// ID returns the parameter ID.
func (f NormalizedField) ID() string { return string(f) }

// Get returns the normalized position, or 0 for an unknown ID.
func (f NormalizedField) Get(s *Surface) float64 {
	v, err := s.ReadNormalized(string(f))
	if err != nil {
		return 0
	}

	return v
}

// Set writes a normalized position.
func (f NormalizedField) Set(s *Surface, pos float64) error {
	return s.WriteNormalized(string(f), pos)
}

// Nudge moves the accessor's value by delta, as a drag or arrow key would.
// An unbound accessor is rejected before Get can read its 0.
func Nudge(a Accessor, s *Surface, delta float64) error {
	if err := Bind(a, s); err != nil {
		return err
	}

	return a.Set(s, a.Get(s)+delta)
}
