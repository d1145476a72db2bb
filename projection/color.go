package projection

import (
	"fmt"
	"image"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/gogpu/pxsort"
)

func rgb(p pxsort.Pixel) colorful.Color {
	return colorful.Color{R: p[0], G: p[1], B: p[2]}
}

func colorProjection(channels int, name string, key func(colorful.Color) float64) (pxsort.Map, error) {
	if channels < 3 {
		return pxsort.Map{}, fmt.Errorf("%w: %s needs 3 channels, have %d", ErrInvalidProjection, name, channels)
	}
	return pxsort.NewProjection(channels, func(p pxsort.Pixel) float64 {
		return key(rgb(p))
	})
}

// Lightness keys by CIE L*, scaled to [0, 1].
func Lightness(channels int) (pxsort.Map, error) {
	return colorProjection(channels, "lightness", func(c colorful.Color) float64 {
		l, _, _ := c.Lab()
		return l
	})
}

// Hue keys by HSV hue, scaled to [0, 1).
func Hue(channels int) (pxsort.Map, error) {
	return colorProjection(channels, "hue", func(c colorful.Color) float64 {
		h, _, _ := c.Hsv()
		return h / 360
	})
}

// Saturation keys by HSV saturation.
func Saturation(channels int) (pxsort.Map, error) {
	return colorProjection(channels, "saturation", func(c colorful.Color) float64 {
		_, s, _ := c.Hsv()
		return s
	})
}

// Chroma keys by HCL chroma.
func Chroma(channels int) (pxsort.Map, error) {
	return colorProjection(channels, "chroma", func(c colorful.Color) float64 {
		_, ch, _ := c.Hcl()
		return ch
	})
}

// DominantDistance keys by CIE Lab distance from the dominant colour of
// img, so that sorting pushes off-palette pixels to one end.
func DominantDistance(img image.Image, channels int) (pxsort.Map, error) {
	dom, ok := colorful.MakeColor(dominantcolor.Find(img))
	if !ok {
		return pxsort.Map{}, fmt.Errorf("%w: dominant colour is fully transparent", ErrInvalidProjection)
	}
	return DistanceFrom(dom, channels)
}

// DistanceFrom keys by CIE Lab distance from ref.
func DistanceFrom(ref colorful.Color, channels int) (pxsort.Map, error) {
	return colorProjection(channels, "distance", func(c colorful.Color) float64 {
		return c.DistanceLab(ref)
	})
}
