package geometry

import (
	"image"

	"github.com/gogpu/pxsort"
)

// Rect returns every point of r in row-major order.
func Rect(r image.Rectangle) *pxsort.Segment {
	r = r.Canon()
	pts := make([]image.Point, 0, r.Dx()*r.Dy())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			pts = append(pts, image.Pt(x, y))
		}
	}
	return pxsort.NewSegment(pts...)
}

// Rows returns one left-to-right segment per row of r.
func Rows(r image.Rectangle) []*pxsort.Segment {
	r = r.Canon()
	segs := make([]*pxsort.Segment, 0, r.Dy())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		segs = append(segs, Rect(image.Rect(r.Min.X, y, r.Max.X, y+1)))
	}
	return segs
}

// Columns returns one top-to-bottom segment per column of r.
func Columns(r image.Rectangle) []*pxsort.Segment {
	r = r.Canon()
	segs := make([]*pxsort.Segment, 0, r.Dx())
	for x := r.Min.X; x < r.Max.X; x++ {
		segs = append(segs, Rect(image.Rect(x, r.Min.Y, x+1, r.Max.Y)))
	}
	return segs
}

// Line returns the Bresenham line from a to b, both ends included.
func Line(a, b image.Point) *pxsort.Segment {
	dx, dy := abs(b.X-a.X), -abs(b.Y-a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	pts := make([]image.Point, 0, max(dx, -dy)+1)
	e := dx + dy
	for p := a; ; {
		pts = append(pts, p)
		if p == b {
			break
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			p.X += sx
		}
		if e2 <= dx {
			e += dx
			p.Y += sy
		}
	}
	return pxsort.NewSegment(pts...)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
