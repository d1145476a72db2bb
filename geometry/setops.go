package geometry

import (
	"cmp"
	"image"
	"slices"

	"github.com/chewxy/math32"

	"github.com/gogpu/pxsort"
)

// Filter returns the points of seg for which keep is true, in order.
func Filter(seg *pxsort.Segment, keep func(image.Point) bool) *pxsort.Segment {
	in, _ := Split(seg, keep)
	return in
}

// Split partitions seg by pred, preserving order on both sides.
func Split(seg *pxsort.Segment, pred func(image.Point) bool) (yes, no *pxsort.Segment) {
	var a, b []image.Point
	for _, pt := range seg.Points() {
		if pred(pt) {
			a = append(a, pt)
		} else {
			b = append(b, pt)
		}
	}
	return pxsort.NewSegment(a...), pxsort.NewSegment(b...)
}

// Difference returns the points of a that are not in any of others.
func Difference(a *pxsort.Segment, others ...*pxsort.Segment) *pxsort.Segment {
	drop := pointSet(others...)
	return Filter(a, func(pt image.Point) bool {
		_, ok := drop[pt]
		return !ok
	})
}

// Intersect returns the points of a that are also in b, in a's order.
func Intersect(a, b *pxsort.Segment) *pxsort.Segment {
	keep := pointSet(b)
	return Filter(a, func(pt image.Point) bool {
		_, ok := keep[pt]
		return ok
	})
}

// Union concatenates segs, keeping only the first occurrence of each point.
func Union(segs ...*pxsort.Segment) *pxsort.Segment {
	seen := make(map[image.Point]struct{})
	var pts []image.Point
	for _, s := range segs {
		for _, pt := range s.Points() {
			if _, ok := seen[pt]; ok {
				continue
			}
			seen[pt] = struct{}{}
			pts = append(pts, pt)
		}
	}
	return pxsort.NewSegment(pts...)
}

// SortBy reorders seg by ascending key. Ties keep their relative order.
func SortBy(seg *pxsort.Segment, key func(image.Point) float64) *pxsort.Segment {
	pts := seg.Points()
	keys := make(map[image.Point]float64, len(pts))
	for _, pt := range pts {
		keys[pt] = key(pt)
	}
	slices.SortStableFunc(pts, func(a, b image.Point) int {
		return cmp.Compare(keys[a], keys[b])
	})
	return pxsort.NewSegment(pts...)
}

// SortByAngle orders seg by the angle of each pixel centre around center,
// sweeping counter-clockwise from the positive x axis.
func SortByAngle(seg *pxsort.Segment, center image.Point) *pxsort.Segment {
	return SortBy(seg, angleKey(center))
}

// SortByDistance orders seg by distance from center, nearest first.
func SortByDistance(seg *pxsort.Segment, center image.Point) *pxsort.Segment {
	return SortBy(seg, func(pt image.Point) float64 {
		d := pt.Sub(center)
		return float64(math32.Hypot(float32(d.X), float32(d.Y)))
	})
}

func angleKey(center image.Point) func(image.Point) float64 {
	return func(pt image.Point) float64 {
		d := pt.Sub(center)
		a := math32.Atan2(-float32(d.Y), float32(d.X))
		if a < 0 {
			a += 2 * math32.Pi
		}
		return float64(a)
	}
}

func pointSet(segs ...*pxsort.Segment) map[image.Point]struct{} {
	set := make(map[image.Point]struct{})
	for _, s := range segs {
		for i := range s.Len() {
			set[s.At(i)] = struct{}{}
		}
	}
	return set
}
