package imageio

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/gogpu/pxsort"
)

// ColorSpace selects how the first three channels of a buffer are encoded.
// Every space is normalised to the unit cube so that projections and mixers
// see comparable ranges. Channels beyond the third pass through unchanged.
type ColorSpace int

const (
	// RGB is gamma-encoded sRGB, the space images decode into.
	RGB ColorSpace = iota
	// LinearRGB is sRGB with the transfer curve removed.
	LinearRGB
	// Lab is CIE L*a*b* (D65) with a and b shifted into [0, 1].
	Lab
	// Luv is CIE L*u*v* (D65) with u and v shifted into [0, 1].
	Luv
	// HSV stores hue/360, saturation and value.
	HSV
	// HCL stores hue/360, scaled chroma and luminance.
	HCL
)

// Extents of the sRGB gamut in the colorful scale of each space.
const (
	labSpan   = 1.1
	uMin      = -0.84
	uSpan     = 2.6
	vMin      = -1.35
	vSpan     = 2.45
	maxChroma = 1.4
)

var spaceNames = [...]string{"rgb", "linear", "lab", "luv", "hsv", "hcl"}

func (s ColorSpace) String() string {
	if s < 0 || int(s) >= len(spaceNames) {
		return fmt.Sprintf("ColorSpace(%d)", int(s))
	}
	return spaceNames[s]
}

// ParseColorSpace returns the space with the given name.
func ParseColorSpace(name string) (ColorSpace, error) {
	for i, n := range spaceNames {
		if strings.EqualFold(n, name) {
			return ColorSpace(i), nil
		}
	}
	return 0, fmt.Errorf("%w: colour space %q", ErrUnsupportedFormat, name)
}

// Convert rewrites an RGB buffer into space s, in place.
func Convert(b *pxsort.Buffer, s ColorSpace) error {
	return apply(b, s, func(v [3]float64) [3]float64 {
		return encode(colorful.Color{R: v[0], G: v[1], B: v[2]}, s)
	})
}

// Restore rewrites a buffer in space s back to RGB, in place. Colours
// outside the sRGB gamut are clamped.
func Restore(b *pxsort.Buffer, s ColorSpace) error {
	return apply(b, s, func(v [3]float64) [3]float64 {
		c := decode(v, s).Clamped()
		return [3]float64{c.R, c.G, c.B}
	})
}

func apply(b *pxsort.Buffer, s ColorSpace, fn func([3]float64) [3]float64) error {
	if err := check(b, s); err != nil {
		return err
	}
	if s == RGB {
		return nil
	}
	data, ch := b.Data(), b.Channels()
	for i := 0; i < len(data); i += ch {
		v := fn([3]float64{data[i], data[i+1], data[i+2]})
		copy(data[i:i+3], v[:])
	}
	return nil
}

func check(b *pxsort.Buffer, s ColorSpace) error {
	if s < RGB || s > HCL {
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, s)
	}
	if s != RGB && b.Channels() < 3 {
		return fmt.Errorf("%w: %v needs 3 channels, buffer has %d", ErrUnsupportedFormat, s, b.Channels())
	}
	return nil
}

func encode(c colorful.Color, s ColorSpace) [3]float64 {
	switch s {
	case LinearRGB:
		r, g, b := c.LinearRgb()
		return [3]float64{r, g, b}
	case Lab:
		l, a, b := c.Lab()
		return [3]float64{l, (a + labSpan) / (2 * labSpan), (b + labSpan) / (2 * labSpan)}
	case Luv:
		l, u, v := c.Luv()
		return [3]float64{l, (u - uMin) / uSpan, (v - vMin) / vSpan}
	case HSV:
		h, sat, v := c.Hsv()
		return [3]float64{h / 360, sat, v}
	case HCL:
		h, ch, l := c.Hcl()
		return [3]float64{h / 360, ch / maxChroma, l}
	}
	return [3]float64{c.R, c.G, c.B}
}

func decode(v [3]float64, s ColorSpace) colorful.Color {
	switch s {
	case LinearRGB:
		return colorful.LinearRgb(v[0], v[1], v[2])
	case Lab:
		return colorful.Lab(v[0], v[1]*2*labSpan-labSpan, v[2]*2*labSpan-labSpan)
	case Luv:
		return colorful.Luv(v[0], v[1]*uSpan+uMin, v[2]*vSpan+vMin)
	case HSV:
		return colorful.Hsv(v[0]*360, v[1], v[2])
	case HCL:
		return colorful.Hcl(v[0]*360, v[1]*maxChroma, v[2])
	}
	return colorful.Color{R: v[0], G: v[1], B: v[2]}
}
