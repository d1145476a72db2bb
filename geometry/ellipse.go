package geometry

import (
	"fmt"
	"image"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms2"

	"github.com/gogpu/pxsort"
)

// Ellipse is an ellipse in pixel space, rotated by Angle degrees
// counter-clockwise around its centre.
type Ellipse struct {
	Center  ms2.Vec
	RadiusX float32
	RadiusY float32
	Angle   float32
}

// Circle returns an ellipse with equal radii.
func Circle(center image.Point, radius float32) Ellipse {
	return Ellipse{Center: pixelCenter(center), RadiusX: radius, RadiusY: radius}
}

// Inscribed returns the axis-aligned ellipse touching the sides of r.
func Inscribed(r image.Rectangle) Ellipse {
	r = r.Canon()
	return Ellipse{
		Center:  ms2.Vec{X: float32(r.Min.X+r.Max.X) / 2, Y: float32(r.Min.Y+r.Max.Y) / 2},
		RadiusX: float32(r.Dx()) / 2,
		RadiusY: float32(r.Dy()) / 2,
	}
}

// Contains reports whether v lies inside or on the ellipse.
func (e Ellipse) Contains(v ms2.Vec) bool {
	if e.RadiusX <= 0 || e.RadiusY <= 0 {
		return false
	}
	d := rotate(ms2.Sub(v, e.Center), -e.Angle)
	x, y := d.X/e.RadiusX, d.Y/e.RadiusY
	return x*x+y*y <= 1
}

// Split partitions seg by pixel centre into the points inside the ellipse
// and the rest. Relative order is kept in both halves.
func (e Ellipse) Split(seg *pxsort.Segment) (inside, outside *pxsort.Segment, err error) {
	if e.RadiusX <= 0 || e.RadiusY <= 0 {
		return nil, nil, fmt.Errorf("%w: ellipse radii %v,%v", ErrInvalidGeometry, e.RadiusX, e.RadiusY)
	}
	in, out := Split(seg, func(pt image.Point) bool {
		return e.Contains(pixelCenter(pt))
	})
	return in, out, nil
}

// Segment returns the pixels of r whose centres lie in the ellipse.
func (e Ellipse) Segment(r image.Rectangle) (*pxsort.Segment, error) {
	in, _, err := e.Split(Rect(r))
	return in, err
}

// RotatedRect is a rectangle of size Width x Height centred on Center and
// rotated by Angle degrees.
type RotatedRect struct {
	Center ms2.Vec
	Width  float32
	Height float32
	Angle  float32
}

// Contains reports whether v lies inside or on the rectangle.
func (r RotatedRect) Contains(v ms2.Vec) bool {
	d := rotate(ms2.Sub(v, r.Center), -r.Angle)
	return math32.Abs(d.X) <= r.Width/2 && math32.Abs(d.Y) <= r.Height/2
}

// Split partitions seg into the points inside the rectangle and the rest.
func (r RotatedRect) Split(seg *pxsort.Segment) (inside, outside *pxsort.Segment, err error) {
	if r.Width <= 0 || r.Height <= 0 {
		return nil, nil, fmt.Errorf("%w: rectangle size %vx%v", ErrInvalidGeometry, r.Width, r.Height)
	}
	in, out := Split(seg, func(pt image.Point) bool {
		return r.Contains(pixelCenter(pt))
	})
	return in, out, nil
}

func rotate(v ms2.Vec, deg float32) ms2.Vec {
	rad := deg * math32.Pi / 180
	s, c := math32.Sin(rad), math32.Cos(rad)
	return ms2.Vec{X: v.X*c - v.Y*s, Y: v.X*s + v.Y*c}
}

func pixelCenter(pt image.Point) ms2.Vec {
	return ms2.Vec{X: float32(pt.X) + 0.5, Y: float32(pt.Y) + 0.5}
}
