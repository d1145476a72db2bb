package imageio

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// Resize resamples img to w x h with a Catmull-Rom filter.
func Resize(img image.Image, w, h int) (*image.NRGBA64, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("imageio: invalid size %dx%d", w, h)
	}
	dst := image.NewNRGBA64(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst, nil
}

// Scale resamples img by factor, keeping at least one pixel per axis.
func Scale(img image.Image, factor float64) (*image.NRGBA64, error) {
	if !(factor > 0) {
		return nil, fmt.Errorf("imageio: invalid scale %v", factor)
	}
	r := img.Bounds()
	w := max(1, int(float64(r.Dx())*factor+0.5))
	h := max(1, int(float64(r.Dy())*factor+0.5))
	return Resize(img, w, h)
}
