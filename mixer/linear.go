package mixer

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/gogpu/pxsort"
)

// Linear returns a mixer applying a C×2C matrix to the concatenated
// (original, candidate) vector. Each row is normalized to unit L1 norm, so
// every output channel is a weighted blend of input values.
func Linear(channels int, rows [][]float64) (pxsort.Map, error) {
	if len(rows) != channels {
		return pxsort.Map{}, fmt.Errorf("%w: %d rows for %d channels", ErrInvalidMixer, len(rows), channels)
	}
	data := make([]float64, 0, channels*2*channels)
	for i, r := range rows {
		if len(r) != 2*channels {
			return pxsort.Map{}, fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidMixer, i, len(r), 2*channels)
		}
		norm := floats.Norm(r, 1)
		if norm == 0 {
			return pxsort.Map{}, fmt.Errorf("%w: row %d is all zero", ErrInvalidMixer, i)
		}
		row := make([]float64, len(r))
		floats.ScaleTo(row, 1/norm, r)
		data = append(data, row...)
	}
	m := mat.NewDense(channels, 2*channels, data)

	return pxsort.NewMap(2*channels, channels, func(in []float64) []float64 {
		var out mat.VecDense
		out.MulVec(m, mat.NewVecDense(len(in), in))
		return out.RawVector().Data
	})
}

// Blend mixes original and candidate as (1-t)*original + t*candidate in
// every channel. t is clamped to [0, 1].
func Blend(channels int, t float64) (pxsort.Map, error) {
	t = min(max(t, 0), 1)
	rows := make([][]float64, channels)
	for c := range rows {
		rows[c] = make([]float64, 2*channels)
		rows[c][c] = 1 - t
		rows[c][channels+c] = t
	}
	return Linear(channels, rows)
}
