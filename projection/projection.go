// Package projection provides scalar sort keys for pxsort effects.
//
// A projection maps a C-channel pixel to one value. Colour projections
// read the first three channels as sRGB in [0, 1].
package projection

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/pxsort"
)

// ErrInvalidProjection is returned when a projection cannot be built for
// the requested channel layout.
var ErrInvalidProjection = errors.New("projection: invalid configuration")

// Channel keys a pixel by one of its channels.
func Channel(channels, ch int) (pxsort.Map, error) {
	if ch < 0 || ch >= channels {
		return pxsort.Map{}, fmt.Errorf("%w: channel %d of %d", ErrInvalidProjection, ch, channels)
	}
	return pxsort.NewProjection(channels, func(p pxsort.Pixel) float64 { return p[ch] })
}

// Linear keys a pixel by weights·p + bias. The channel count is
// len(weights).
func Linear(weights []float64, bias float64) (pxsort.Map, error) {
	if len(weights) == 0 {
		return pxsort.Map{}, fmt.Errorf("%w: no weights", ErrInvalidProjection)
	}
	w := append([]float64(nil), weights...)
	return pxsort.NewProjection(len(w), func(p pxsort.Pixel) float64 {
		sum := bias
		for i, v := range w {
			sum += v * p[i]
		}
		return sum
	})
}

// Sum keys a pixel by the sum of its channels.
func Sum(channels int) (pxsort.Map, error) {
	w := make([]float64, channels)
	for i := range w {
		w[i] = 1
	}
	return Linear(w, 0)
}

// Luminance keys an RGB pixel by Rec. 709 relative luminance of its first
// three channels, taken as already linear.
func Luminance(channels int) (pxsort.Map, error) {
	if channels < 3 {
		return pxsort.Map{}, fmt.Errorf("%w: luminance needs 3 channels, have %d", ErrInvalidProjection, channels)
	}
	w := make([]float64, channels)
	w[0], w[1], w[2] = 0.2126, 0.7152, 0.0722
	return Linear(w, 0)
}

// Range bounds one channel for Threshold. Use infinities for open ends.
type Range struct {
	Min, Max float64
}

// Unbounded is a Range accepting every value.
var Unbounded = Range{Min: math.Inf(-1), Max: math.Inf(1)}

// Threshold keys a pixel by its smallest margin to the per-channel ranges:
// positive when every channel lies strictly inside its range, negative
// when any channel lies outside. It is useful with Descending order or
// with geometry filters that keep positive keys.
func Threshold(ranges ...Range) (pxsort.Map, error) {
	if len(ranges) == 0 {
		return pxsort.Map{}, fmt.Errorf("%w: no ranges", ErrInvalidProjection)
	}
	for i, r := range ranges {
		if r.Min > r.Max {
			return pxsort.Map{}, fmt.Errorf("%w: range %d is empty", ErrInvalidProjection, i)
		}
	}
	rs := append([]Range(nil), ranges...)
	return pxsort.NewProjection(len(rs), func(p pxsort.Pixel) float64 {
		margin := math.Inf(1)
		for i, r := range rs {
			margin = min(margin, p[i]-r.Min, r.Max-p[i])
		}
		return margin
	})
}
