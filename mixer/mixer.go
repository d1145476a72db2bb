// Package mixer provides canonical mixers for pxsort effects.
//
// A mixer receives the original sample at a position followed by the
// candidate moved there, 2C values in total, and returns the C channel
// values to commit.
package mixer

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gogpu/pxsort"
)

// ErrInvalidMixer is returned for a mixer configuration that cannot be
// evaluated: bad channel indices, wrong matrix shape or all-zero rows.
var ErrInvalidMixer = errors.New("mixer: invalid configuration")

// Identity commits the candidate unchanged.
func Identity(channels int) pxsort.Map {
	return pxsort.MustMap(2*channels, channels, func(in []float64) []float64 {
		return slices.Clone(in[channels:])
	})
}

// Keep commits the original sample, which turns an effect into a no-op.
func Keep(channels int) pxsort.Map {
	return pxsort.MustMap(2*channels, channels, func(in []float64) []float64 {
		return slices.Clone(in[:channels])
	})
}

// Swap moves only the listed channels: they take the candidate's value
// while every other channel keeps the original. Swapping a subset of
// channels sorts one colour plane against the others.
func Swap(channels int, swapped ...int) (pxsort.Map, error) {
	table := make([]int, channels)
	for c := range table {
		table[c] = c
	}
	for _, c := range swapped {
		if c < 0 || c >= channels {
			return pxsort.Map{}, fmt.Errorf("%w: channel %d of %d", ErrInvalidMixer, c, channels)
		}
		table[c] = channels + c
	}
	return Copy(channels, table...)
}

// Copy routes input channels to output channels: output channel i takes
// input value table[i], where 0..C-1 address the original sample and
// C..2C-1 the candidate.
func Copy(channels int, table ...int) (pxsort.Map, error) {
	if len(table) != channels {
		return pxsort.Map{}, fmt.Errorf("%w: copy table has %d entries for %d channels", ErrInvalidMixer, len(table), channels)
	}
	for i, src := range table {
		if src < 0 || src >= 2*channels {
			return pxsort.Map{}, fmt.Errorf("%w: copy entry %d reads input %d", ErrInvalidMixer, i, src)
		}
	}
	table = slices.Clone(table)
	return pxsort.NewMap(2*channels, channels, func(in []float64) []float64 {
		out := make([]float64, len(table))
		for i, src := range table {
			out[i] = in[src]
		}
		return out
	})
}

// ParseSwap turns a channel-letter list such as "rb" into channel indices
// for RGB-ordered buffers.
func ParseSwap(s string) ([]int, error) {
	var out []int
	for _, r := range s {
		switch r {
		case 'r', 'R':
			out = append(out, 0)
		case 'g', 'G':
			out = append(out, 1)
		case 'b', 'B':
			out = append(out, 2)
		case 'a', 'A':
			out = append(out, 3)
		default:
			return nil, fmt.Errorf("%w: unknown channel %q", ErrInvalidMixer, r)
		}
	}
	return out, nil
}

// Select commits the whole candidate where pick reports true and keeps the
// original otherwise. pick must not retain its arguments.
func Select(channels int, pick func(orig, cand pxsort.Pixel) bool) (pxsort.Map, error) {
	if pick == nil {
		return pxsort.Map{}, fmt.Errorf("%w: select has no predicate", ErrInvalidMixer)
	}
	return pxsort.NewMap(2*channels, channels, func(in []float64) []float64 {
		orig, cand := pxsort.Pixel(in[:channels]), pxsort.Pixel(in[channels:])
		if pick(orig, cand) {
			return slices.Clone(in[channels:])
		}
		return slices.Clone(in[:channels])
	})
}
