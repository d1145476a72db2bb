package imageio

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/pxsort"
)

const max16 = 0xffff

// FromImage converts img into a buffer of the given channel count:
// 1 gray, 2 gray and alpha, 3 RGB, 4 RGBA. Colour is non-premultiplied and
// every sample is scaled to [0, 1]. Buffer coordinates start at (0, 0)
// whatever img.Bounds().Min is.
func FromImage(img image.Image, channels int) (*pxsort.Buffer, error) {
	if channels < 1 || channels > 4 {
		return nil, fmt.Errorf("%w: %d channels", ErrUnsupportedFormat, channels)
	}
	r := img.Bounds()
	b, err := pxsort.NewBuffer(r.Dx(), r.Dy(), channels)
	if err != nil {
		return nil, err
	}

	data := b.Data()
	i := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := color.NRGBA64Model.Convert(img.At(x, y)).(color.NRGBA64)
			switch channels {
			case 1, 2:
				g := color.Gray16Model.Convert(color.NRGBA64{R: c.R, G: c.G, B: c.B, A: max16}).(color.Gray16)
				data[i] = unit(g.Y)
				if channels == 2 {
					data[i+1] = unit(c.A)
				}
			default:
				data[i], data[i+1], data[i+2] = unit(c.R), unit(c.G), unit(c.B)
				if channels == 4 {
					data[i+3] = unit(c.A)
				}
			}
			i += channels
		}
	}
	return b, nil
}

// ToImage converts a buffer of 1 to 4 channels back into an image,
// clamping samples to [0, 1].
func ToImage(b *pxsort.Buffer) (*image.NRGBA64, error) {
	channels := b.Channels()
	if channels < 1 || channels > 4 {
		return nil, fmt.Errorf("%w: %d channels", ErrUnsupportedFormat, channels)
	}
	img := image.NewNRGBA64(b.Bounds())
	data := b.Data()
	i := 0
	for y := range b.Height() {
		for x := range b.Width() {
			var c color.NRGBA64
			switch channels {
			case 1, 2:
				g := sample(data[i])
				c = color.NRGBA64{R: g, G: g, B: g, A: max16}
				if channels == 2 {
					c.A = sample(data[i+1])
				}
			default:
				c = color.NRGBA64{R: sample(data[i]), G: sample(data[i+1]), B: sample(data[i+2]), A: max16}
				if channels == 4 {
					c.A = sample(data[i+3])
				}
			}
			img.SetNRGBA64(x, y, c)
			i += channels
		}
	}
	return img, nil
}

func unit(v uint16) float64 { return float64(v) / max16 }

func sample(v float64) uint16 {
	switch {
	case !(v > 0): // NaN and negatives
		return 0
	case v >= 1:
		return max16
	}
	return uint16(v*max16 + 0.5)
}
