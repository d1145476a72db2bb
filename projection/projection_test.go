package projection

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/gogpu/pxsort"
)

func key(t *testing.T, m pxsort.Map, p pxsort.Pixel) float64 {
	t.Helper()
	v, err := m.Apply(p)
	if err != nil {
		t.Fatalf("Apply(%v) = %v", p, err)
	}
	return v[0]
}

func TestChannel(t *testing.T) {
	m, err := Channel(3, 2)
	if err != nil {
		t.Fatal(err)
	}
	if got := key(t, m, pxsort.Pixel{1, 2, 3}); got != 3 {
		t.Errorf("Channel(2) = %v, want 3", got)
	}
	if _, err := Channel(3, 3); !errors.Is(err, ErrInvalidProjection) {
		t.Errorf("Channel(3) error = %v", err)
	}
}

func TestLinearSumLuminance(t *testing.T) {
	lin, _ := Linear([]float64{1, -2}, 0.5)
	if got := key(t, lin, pxsort.Pixel{3, 1}); got != 1.5 {
		t.Errorf("Linear = %v, want 1.5", got)
	}

	sum, _ := Sum(4)
	if got := key(t, sum, pxsort.Pixel{1, 2, 3, 4}); got != 10 {
		t.Errorf("Sum = %v, want 10", got)
	}

	lum, _ := Luminance(4)
	if got := key(t, lum, pxsort.Pixel{1, 1, 1, 0.5}); math.Abs(got-1) > 1e-12 {
		t.Errorf("Luminance(white) = %v, want 1", got)
	}
	if _, err := Luminance(2); !errors.Is(err, ErrInvalidProjection) {
		t.Errorf("Luminance(2) error = %v", err)
	}
	if _, err := Linear(nil, 0); !errors.Is(err, ErrInvalidProjection) {
		t.Errorf("Linear(nil) error = %v", err)
	}
}

func TestThreshold(t *testing.T) {
	m, err := Threshold(Range{0.2, 0.8}, Unbounded)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		p    pxsort.Pixel
		want float64
	}{
		{pxsort.Pixel{0.5, 9}, 0.3},
		{pxsort.Pixel{0.7, -9}, 0.1},
		{pxsort.Pixel{0.9, 0}, -0.1},
	}
	for _, tt := range tests {
		if got := key(t, m, tt.p); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Threshold(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
	if _, err := Threshold(Range{1, 0}); !errors.Is(err, ErrInvalidProjection) {
		t.Errorf("empty range error = %v", err)
	}
}

func TestColorProjections(t *testing.T) {
	light, _ := Lightness(3)
	if black, white := key(t, light, pxsort.Pixel{0, 0, 0}), key(t, light, pxsort.Pixel{1, 1, 1}); black >= white {
		t.Errorf("lightness black %v >= white %v", black, white)
	}

	hue, _ := Hue(3)
	if got := key(t, hue, pxsort.Pixel{0, 1, 0}); math.Abs(got-1.0/3) > 1e-9 {
		t.Errorf("hue(green) = %v, want 1/3", got)
	}

	sat, _ := Saturation(3)
	if got := key(t, sat, pxsort.Pixel{0.5, 0.5, 0.5}); got != 0 {
		t.Errorf("saturation(grey) = %v, want 0", got)
	}

	chroma, _ := Chroma(3)
	if grey, red := key(t, chroma, pxsort.Pixel{0.5, 0.5, 0.5}), key(t, chroma, pxsort.Pixel{1, 0, 0}); grey >= red {
		t.Errorf("chroma grey %v >= red %v", grey, red)
	}

	if _, err := Hue(1); !errors.Is(err, ErrInvalidProjection) {
		t.Errorf("Hue(1) error = %v", err)
	}
}

func TestDominantDistance(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := range 16 {
		for x := range 16 {
			img.Set(x, y, color.RGBA{R: 200, G: 30, B: 30, A: 255})
		}
	}
	m, err := DominantDistance(img, 3)
	if err != nil {
		t.Fatal(err)
	}
	near := key(t, m, pxsort.Pixel{200.0 / 255, 30.0 / 255, 30.0 / 255})
	far := key(t, m, pxsort.Pixel{0, 0, 1})
	if near >= far {
		t.Errorf("distance near %v >= far %v", near, far)
	}
}

func TestParse(t *testing.T) {
	for _, name := range []string{"sum", "Lightness", " hue ", "channel:1"} {
		if _, err := Parse(name, 3); err != nil {
			t.Errorf("Parse(%q) = %v", name, err)
		}
	}
	for _, name := range []string{"brightness", "channel:x", "channel:5"} {
		if _, err := Parse(name, 3); !errors.Is(err, ErrInvalidProjection) {
			t.Errorf("Parse(%q) error = %v, want ErrInvalidProjection", name, err)
		}
	}
}
