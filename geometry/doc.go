// Package geometry builds pxsort segments: rectangles, grids, ellipses and
// partitions of existing segments by coordinate key, pixel key or colour
// cluster.
//
// Providers only produce coordinate lists. Coordinates may fall outside
// the image; the topology of the effect using a segment decides how they
// are resolved.
package geometry

import "errors"

// ErrInvalidGeometry is returned for degenerate shapes and partitions.
var ErrInvalidGeometry = errors.New("geometry: invalid geometry")
