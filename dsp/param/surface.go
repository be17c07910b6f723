package param

import (
	"errors"
	"fmt"
	"sort"

	"github.com/cwbudde/bruhsine/dsp/core"
)

// Surface is the set of parameters of one effect instance. Its membership
// is fixed at construction, so lookups need no locking; values live in each
// Parameter's atomic cell.
type Surface struct {
	params []*Parameter
	index  map[string]*Parameter
}

// NewSurface collects params in declaration order. IDs must be unique.
func NewSurface(params ...*Parameter) (*Surface, error) {
	s := &Surface{
		params: make([]*Parameter, 0, len(params)),
		index:  make(map[string]*Parameter, len(params)),
	}

	for _, p := range params {
		if p == nil {
			return nil, fmt.Errorf("surface: nil parameter")
		}

		if _, exists := s.index[p.ID()]; exists {
			return nil, fmt.Errorf("%w: %s", errDuplicateParameter, p.ID())
		}

		s.params = append(s.params, p)
		s.index[p.ID()] = p
	}

	return s, nil
}

// Parameter returns the parameter with the given ID.
func (s *Surface) Parameter(id string) (*Parameter, bool) {
	p, ok := s.index[id]
	return p, ok
}

// Parameters returns the parameters in declaration order.
func (s *Surface) Parameters() []*Parameter {
	out := make([]*Parameter, len(s.params))
	copy(out, s.params)

	return out
}

// IDs returns the parameter IDs in declaration order.
func (s *Surface) IDs() []string {
	ids := make([]string, len(s.params))
	for i, p := range s.params {
		ids[i] = p.ID()
	}

	return ids
}

// Write stores value as the new target of id. Out-of-range values are
// clamped; NaN and ±Inf are rejected with ErrNonFiniteValue.
func (s *Surface) Write(id string, value float64) error {
	p, err := s.lookup(id)
	if err != nil {
		return err
	}

	if !core.IsFinite(value) {
		return fmt.Errorf("%w: %s = %v", ErrNonFiniteValue, id, value)
	}

	p.Set(value)

	return nil
}

// WriteNormalized stores the value at normalized position pos, the form in
// which hosts deliver automation.
func (s *Surface) WriteNormalized(id string, pos float64) error {
	p, err := s.lookup(id)
	if err != nil {
		return err
	}

	if !core.IsFinite(pos) {
		return fmt.Errorf("%w: %s = %v", ErrNonFiniteValue, id, pos)
	}

	p.SetNormalized(pos)

	return nil
}

// WriteString parses text with the parameter's parser and stores the
// result. On a parse failure the prior value is kept and the returned error
// wraps ErrInvalidFormat.
func (s *Surface) WriteString(id, text string) error {
	p, err := s.lookup(id)
	if err != nil {
		return err
	}

	v, err := p.Parse(text)
	if err != nil {
		return err
	}

	return s.Write(id, v)
}

// Read returns the current target of id.
func (s *Surface) Read(id string) (float64, error) {
	p, err := s.lookup(id)
	if err != nil {
		return 0, err
	}

	return p.Value(), nil
}

// ReadNormalized returns the current target of id as a 0..1 position.
func (s *Surface) ReadNormalized(id string) (float64, error) {
	p, err := s.lookup(id)
	if err != nil {
		return 0, err
	}

	return p.NormalizedValue(), nil
}

// ReadString returns the current target of id formatted with its unit.
func (s *Surface) ReadString(id string) (string, error) {
	p, err := s.lookup(id)
	if err != nil {
		return "", err
	}

	return p.String(), nil
}

// ResetToDefaults stores every parameter's default value.
func (s *Surface) ResetToDefaults() {
	for _, p := range s.params {
		p.ResetToDefault()
	}
}

// Snapshot returns the current targets keyed by ID.
func (s *Surface) Snapshot() map[string]float64 {
	out := make(map[string]float64, len(s.params))
	for _, p := range s.params {
		out[p.ID()] = p.Value()
	}

	return out
}

// Restore writes values back. Unknown IDs are skipped so that state saved by
// another version still loads; non-finite values are rejected and reported
// together after all valid values have been applied.
func (s *Surface) Restore(values map[string]float64) error {
	ids := make([]string, 0, len(values))
	for id := range values {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	var errs []error

	for _, id := range ids {
		err := s.Write(id, values[id])
		if errors.Is(err, ErrUnknownParameter) {
			continue
		}

		if err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (s *Surface) lookup(id string) (*Parameter, error) {
	p, ok := s.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownParameter, id)
	}

	return p, nil
}
