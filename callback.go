package pxsort

import (
	"fmt"
	"slices"
)

// MapFunc is a pure function over a fixed-size numeric vector. It must not
// retain in after returning; the engine may reuse it.
type MapFunc func(in []float64) []float64

// Map is a callback with declared input and output sizes. Projections
// (C -> 1), comparator keys and mixers (2C -> C) are all Maps.
//
// Apply checks both sizes on every call, so a callback that returns a
// wrongly sized vector is reported as ErrCallbackContract instead of being
// truncated or overrun.
type Map struct {
	in, out int
	fn      func(in []float64) ([]float64, error)
}

// NewMap declares fn as taking in values and producing out values.
func NewMap(in, out int, fn MapFunc) (Map, error) {
	if in <= 0 || out <= 0 {
		return Map{}, fmt.Errorf("%w: map %d -> %d", ErrCallbackContract, in, out)
	}
	if fn == nil {
		return Map{}, fmt.Errorf("%w: nil map function", ErrCallbackContract)
	}
	return Map{in: in, out: out, fn: func(in []float64) ([]float64, error) {
		return fn(in), nil
	}}, nil
}

// MustMap is like NewMap but panics on an invalid declaration. It is meant
// for package-level canonical maps whose sizes are constants.
func MustMap(in, out int, fn MapFunc) Map {
	m, err := NewMap(in, out, fn)
	if err != nil {
		panic(err)
	}
	return m
}

// In returns the declared input size.
func (m Map) In() int { return m.in }

// Out returns the declared output size.
func (m Map) Out() int { return m.out }

// Valid reports whether m was built by a constructor.
func (m Map) Valid() bool { return m.fn != nil }

// Apply evaluates the map.
func (m Map) Apply(in []float64) ([]float64, error) {
	if m.fn == nil {
		return nil, fmt.Errorf("%w: map is not initialized", ErrCallbackContract)
	}
	if len(in) != m.in {
		return nil, fmt.Errorf("%w: map takes %d values, got %d", ErrCallbackContract, m.in, len(in))
	}
	out, err := m.fn(in)
	if err != nil {
		return nil, err
	}
	if len(out) != m.out {
		return nil, fmt.Errorf("%w: map declared %d outputs, returned %d", ErrCallbackContract, m.out, len(out))
	}
	return out, nil
}

// Compose returns f∘g: g is applied first and its output feeds f.
func Compose(f, g Map) (Map, error) {
	if !f.Valid() || !g.Valid() || g.out != f.in {
		return Map{}, fmt.Errorf("%w: cannot compose %d->%d after %d->%d", ErrCallbackContract, f.in, f.out, g.in, g.out)
	}
	return Map{in: g.in, out: f.out, fn: func(in []float64) ([]float64, error) {
		mid, err := g.Apply(in)
		if err != nil {
			return nil, fmt.Errorf("compose inner: %w", err)
		}
		out, err := f.Apply(mid)
		if err != nil {
			return nil, fmt.Errorf("compose outer: %w", err)
		}
		return out, nil
	}}, nil
}

// Concat evaluates f and g on the same input and joins their outputs.
func Concat(f, g Map) (Map, error) {
	if !f.Valid() || !g.Valid() || f.in != g.in {
		return Map{}, fmt.Errorf("%w: cannot concat %d->%d with %d->%d", ErrCallbackContract, f.in, f.out, g.in, g.out)
	}
	return Map{in: f.in, out: f.out + g.out, fn: func(in []float64) ([]float64, error) {
		return join(f, in, g, in)
	}}, nil
}

// Fork splits the input: the first f.In() values go to f, the rest to g.
// The outputs are joined.
func Fork(f, g Map) (Map, error) {
	if !f.Valid() || !g.Valid() {
		return Map{}, fmt.Errorf("%w: cannot fork uninitialized maps", ErrCallbackContract)
	}
	return Map{in: f.in + g.in, out: f.out + g.out, fn: func(in []float64) ([]float64, error) {
		return join(f, in[:f.in], g, in[f.in:])
	}}, nil
}

// join applies f to a and g to b and concatenates the results.
func join(f Map, a []float64, g Map, b []float64) ([]float64, error) {
	fa, err := f.Apply(a)
	if err != nil {
		return nil, fmt.Errorf("left: %w", err)
	}
	gb, err := g.Apply(b)
	if err != nil {
		return nil, fmt.Errorf("right: %w", err)
	}
	return slices.Concat(fa, gb), nil
}

// Index returns a map selecting the listed input positions.
func Index(in int, idx ...int) (Map, error) {
	for _, i := range idx {
		if i < 0 || i >= in {
			return Map{}, fmt.Errorf("%w: index %d outside input of %d", ErrCallbackContract, i, in)
		}
	}
	idx = slices.Clone(idx)
	return NewMap(in, len(idx), func(v []float64) []float64 {
		out := make([]float64, len(idx))
		for k, i := range idx {
			out[k] = v[i]
		}
		return out
	})
}

// Constant returns a map ignoring its input and producing values.
func Constant(in int, values ...float64) (Map, error) {
	values = slices.Clone(values)
	return NewMap(in, len(values), func([]float64) []float64 {
		return slices.Clone(values)
	})
}

// NewProjection wraps a scalar key function over channels-wide pixels.
func NewProjection(channels int, key func(Pixel) float64) (Map, error) {
	if key == nil {
		return Map{}, fmt.Errorf("%w: nil projection", ErrCallbackContract)
	}
	return NewMap(channels, 1, func(in []float64) []float64 {
		return []float64{key(in)}
	})
}

// NewMixer wraps a function combining an original and a candidate pixel.
func NewMixer(channels int, mix func(orig, cand Pixel) Pixel) (Map, error) {
	if mix == nil {
		return Map{}, fmt.Errorf("%w: nil mixer", ErrCallbackContract)
	}
	return NewMap(2*channels, channels, func(in []float64) []float64 {
		return mix(in[:channels], in[channels:])
	})
}

// project evaluates a projection and returns its single key.
func project(m Map, p Pixel) (float64, error) {
	if m.out != 1 {
		return 0, fmt.Errorf("%w: projection must produce 1 value, declares %d", ErrCallbackContract, m.out)
	}
	v, err := m.Apply(p)
	if err != nil {
		return 0, err
	}
	return v[0], nil
}

// mix evaluates a mixer on (orig, cand) and returns the pixel to commit.
func mix(m Map, orig, cand Pixel) (Pixel, error) {
	c := len(orig)
	if m.in != 2*c || m.out != c {
		return nil, fmt.Errorf("%w: mixer must map %d -> %d, declares %d -> %d", ErrCallbackContract, 2*c, c, m.in, m.out)
	}
	in := make([]float64, 0, 2*c)
	in = append(in, orig...)
	in = append(in, cand...)
	out, err := m.Apply(in)
	if err != nil {
		return nil, err
	}
	return slices.Clone(Pixel(out)), nil
}
