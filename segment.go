package pxsort

import (
	"image"
	"slices"
	"sync"
)

// Segment is an immutable ordered path of coordinates. Its order defines
// both the read order of extraction and the write order of commit.
//
// Coordinates need not lie inside any buffer; the topology in effect
// decides how out-of-range points are treated.
type Segment struct {
	points []image.Point
	bounds image.Rectangle

	// bfs maps breadth-first steps to stored positions; built on first use.
	bfsOnce sync.Once
	bfs     []int
}

// NewSegment builds a segment from a copy of pts.
func NewSegment(pts ...image.Point) *Segment {
	s := &Segment{points: slices.Clone(pts)}
	for i, p := range s.points {
		r := image.Rectangle{Min: p, Max: p.Add(image.Pt(1, 1))}
		if i == 0 {
			s.bounds = r
		} else {
			s.bounds = s.bounds.Union(r)
		}
	}
	return s
}

// Len returns the number of coordinates.
func (s *Segment) Len() int { return len(s.points) }

// At returns the i-th stored coordinate.
func (s *Segment) At(i int) image.Point { return s.points[i] }

// Visit returns the coordinate visited at step i of traversal t.
func (s *Segment) Visit(t Traversal, i int) image.Point {
	switch t {
	case Reverse:
		return s.points[len(s.points)-1-i]
	case BreadthFirst:
		s.bfsOnce.Do(func() { s.bfs = breadthFirst(len(s.points)) })
		return s.points[s.bfs[i]]
	}
	return s.points[i]
}

// breadthFirst returns the level order of a balanced binary search tree
// over positions 0..n-1. The root of each span is its middle position,
// rounding down.
func breadthFirst(n int) []int {
	type span struct{ lo, hi int }
	order := make([]int, 0, n)
	queue := []span{{0, n}}
	for len(queue) > 0 {
		sp := queue[0]
		queue = queue[1:]
		if sp.lo >= sp.hi {
			continue
		}
		mid := sp.lo + (sp.hi-sp.lo)/2
		order = append(order, mid)
		queue = append(queue, span{sp.lo, mid}, span{mid + 1, sp.hi})
	}
	return order
}

// Points returns a copy of the coordinates in stored order.
func (s *Segment) Points() []image.Point {
	return slices.Clone(s.points)
}

// Bounds returns the smallest rectangle containing every coordinate.
// It is empty for an empty segment.
func (s *Segment) Bounds() image.Rectangle { return s.bounds }

// Translate returns a new segment shifted by (dx, dy).
func (s *Segment) Translate(dx, dy int) *Segment {
	d := image.Pt(dx, dy)
	pts := make([]image.Point, len(s.points))
	for i, p := range s.points {
		pts[i] = p.Add(d)
	}
	return NewSegment(pts...)
}

// Reversed returns a new segment with the coordinate order reversed.
func (s *Segment) Reversed() *Segment {
	pts := slices.Clone(s.points)
	slices.Reverse(pts)
	return NewSegment(pts...)
}
