package geometry

import (
	"fmt"
	"image"

	"github.com/gogpu/pxsort"
)

// Grid divides a rectangle into rows x columns tiles.
//
// Tiles are stored as per-axis spans so that a tile is addressed by
// index = row*Columns + column. A grid may be shifted by an offset; shifted
// tile origins wrap around the bounds, so tiles near the far edge extend
// past it and rely on the sampling topology to be resolved.
//
// Grid is immutable after construction and safe for concurrent use.
type Grid struct {
	bounds image.Rectangle
	offset image.Point

	// xs and ys hold len+1 span starts relative to bounds.Min.
	xs []int
	ys []int
}

// NewGrid splits bounds into rows x columns tiles of near-equal size. The
// first Dx()%columns columns are one pixel wider, and likewise for rows.
// A non-positive count means one tile per pixel along that axis.
func NewGrid(bounds image.Rectangle, rows, columns int) (*Grid, error) {
	bounds = bounds.Canon()
	if bounds.Empty() {
		return nil, fmt.Errorf("%w: empty grid bounds %v", ErrInvalidGeometry, bounds)
	}
	if rows < 1 {
		rows = bounds.Dy()
	}
	if columns < 1 {
		columns = bounds.Dx()
	}
	if rows > bounds.Dy() || columns > bounds.Dx() {
		return nil, fmt.Errorf("%w: %dx%d tiles exceed %v", ErrInvalidGeometry, rows, columns, bounds)
	}
	return &Grid{
		bounds: bounds,
		xs:     evenSpans(bounds.Dx(), columns),
		ys:     evenSpans(bounds.Dy(), rows),
	}, nil
}

// NewTileGrid covers bounds with tileW x tileH tiles. Tiles on the right
// and bottom edges are smaller when the bounds are not evenly divisible.
func NewTileGrid(bounds image.Rectangle, tileW, tileH int) (*Grid, error) {
	bounds = bounds.Canon()
	if bounds.Empty() {
		return nil, fmt.Errorf("%w: empty grid bounds %v", ErrInvalidGeometry, bounds)
	}
	if tileW <= 0 || tileH <= 0 {
		return nil, fmt.Errorf("%w: tile size %dx%d", ErrInvalidGeometry, tileW, tileH)
	}
	return &Grid{
		bounds: bounds,
		xs:     fixedSpans(bounds.Dx(), tileW),
		ys:     fixedSpans(bounds.Dy(), tileH),
	}, nil
}

func evenSpans(length, n int) []int {
	size, residue := length/n, length%n
	starts := make([]int, n+1)
	for i := range n {
		w := size
		if i < residue {
			w++
		}
		starts[i+1] = starts[i] + w
	}
	return starts
}

func fixedSpans(length, size int) []int {
	n := (length + size - 1) / size
	starts := make([]int, n+1)
	for i := range n {
		starts[i+1] = min(starts[i]+size, length)
	}
	return starts
}

// WithOffset returns a copy of the grid shifted by (dx, dy). Tile origins
// wrap modulo the bounds size.
func (g *Grid) WithOffset(dx, dy int) *Grid {
	c := *g
	c.offset = image.Pt(mod(dx, g.bounds.Dx()), mod(dy, g.bounds.Dy()))
	return &c
}

// Rows returns the number of tile rows.
func (g *Grid) Rows() int { return len(g.ys) - 1 }

// Columns returns the number of tile columns.
func (g *Grid) Columns() int { return len(g.xs) - 1 }

// Len returns the number of tiles.
func (g *Grid) Len() int { return g.Rows() * g.Columns() }

// Bounds returns the rectangle the grid covers.
func (g *Grid) Bounds() image.Rectangle { return g.bounds }

// Offset returns the wrapped grid offset.
func (g *Grid) Offset() image.Point { return g.offset }

// Tile returns the rectangle of tile (column, row). It may extend beyond
// Bounds when the grid is offset.
func (g *Grid) Tile(column, row int) image.Rectangle {
	if column < 0 || column >= g.Columns() || row < 0 || row >= g.Rows() {
		return image.Rectangle{}
	}
	r := image.Rect(g.xs[column], g.ys[row], g.xs[column+1], g.ys[row+1])
	return r.Add(g.bounds.Min).Add(g.offset)
}

// TileAt returns the tile at the flat index i.
func (g *Grid) TileAt(i int) image.Rectangle {
	if i < 0 || i >= g.Len() {
		return image.Rectangle{}
	}
	return g.Tile(i%g.Columns(), i/g.Columns())
}

// IndexAt returns the flat index of the tile covering pt, taking the
// offset and wrap into account. It returns -1 for points outside Bounds.
func (g *Grid) IndexAt(pt image.Point) int {
	if !pt.In(g.bounds) {
		return -1
	}
	x := mod(pt.X-g.bounds.Min.X-g.offset.X, g.bounds.Dx())
	y := mod(pt.Y-g.bounds.Min.Y-g.offset.Y, g.bounds.Dy())
	return span(g.ys, y)*g.Columns() + span(g.xs, x)
}

// Segments returns one row-major segment per tile, in tile index order.
func (g *Grid) Segments() []*pxsort.Segment {
	segs := make([]*pxsort.Segment, g.Len())
	for i := range segs {
		segs[i] = Rect(g.TileAt(i))
	}
	return segs
}

// span returns the span containing v.
func span(starts []int, v int) int {
	lo, hi := 0, len(starts)-2
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if starts[mid] <= v {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

func mod(a, m int) int {
	if m <= 0 {
		return 0
	}
	a %= m
	if a < 0 {
		a += m
	}
	return a
}
