package pxsort

import (
	"image"
	"testing"
)

// rampBuffer returns a buffer whose channel k at (x, y) holds
// (y*w+x)*c + k, so every sample is distinct.
func rampBuffer(t *testing.T, w, h, c int) *Buffer {
	t.Helper()
	b, err := NewBuffer(w, h, c)
	if err != nil {
		t.Fatalf("NewBuffer(%d, %d, %d) = %v", w, h, c, err)
	}
	for i := range b.Data() {
		b.Data()[i] = float64(i)
	}
	return b
}

// keyBuffer returns a single-row, single-channel buffer holding keys.
func keyBuffer(t *testing.T, keys ...float64) *Buffer {
	t.Helper()
	b, err := FromData(len(keys), 1, 1, append([]float64(nil), keys...))
	if err != nil {
		t.Fatalf("FromData() = %v", err)
	}
	return b
}

// rowSegment returns the points (0, y) .. (w-1, y).
func rowSegment(t *testing.T, y, w int) *Segment {
	t.Helper()
	pts := make([]image.Point, w)
	for x := range pts {
		pts[x] = image.Pt(x, y)
	}
	return NewSegment(pts...)
}

// copyMixer commits the candidate unchanged.
func copyMixer(t *testing.T, c int) Map {
	t.Helper()
	m, err := NewMixer(c, func(_, cand Pixel) Pixel { return cand.Clone() })
	if err != nil {
		t.Fatalf("NewMixer() = %v", err)
	}
	return m
}

// offsetMixer commits the candidate plus d in every channel, which makes
// written positions visible.
func offsetMixer(t *testing.T, c int, d float64) Map {
	t.Helper()
	m, err := NewMixer(c, func(_, cand Pixel) Pixel {
		out := cand.Clone()
		for i := range out {
			out[i] += d
		}
		return out
	})
	if err != nil {
		t.Fatalf("NewMixer() = %v", err)
	}
	return m
}

// channelKey projects a pixel to channel ch.
func channelKey(t *testing.T, c, ch int) Map {
	t.Helper()
	m, err := NewProjection(c, func(p Pixel) float64 { return p[ch] })
	if err != nil {
		t.Fatalf("NewProjection() = %v", err)
	}
	return m
}

// row returns channel ch of row y.
func row(b *Buffer, y, ch int) []float64 {
	out := make([]float64, b.Width())
	for x := range out {
		out[x], _ = b.At(x, y, ch)
	}
	return out
}

func isNonDecreasing(v []float64) bool {
	for i := 1; i < len(v); i++ {
		if v[i] < v[i-1] {
			return false
		}
	}
	return true
}

func isNonIncreasing(v []float64) bool {
	for i := 1; i < len(v); i++ {
		if v[i] > v[i-1] {
			return false
		}
	}
	return true
}
