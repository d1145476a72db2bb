// Package pxsort implements a pixel-sort engine for float raster buffers.
//
// # Overview
//
// An image is partitioned into segments: ordered, immutable coordinate paths.
// For every segment, attached effects extract a pixel sequence (optionally
// sampling each channel from an offset location), reorder it, blend original
// and reordered samples through a mixer and commit the result back in place.
//
// # Quick Start
//
//	buf, _ := imageio.Load("in.png", 3)
//	grid, _ := geometry.NewTileGrid(buf.Bounds(), 64, 64)
//	key, _ := projection.Lightness(buf.Channels())
//
//	fx := &pxsort.BubblePass{
//	    Compare: pxsort.CompareBy(key, pxsort.Ascending),
//	    Mix:     mixer.Identity(buf.Channels()),
//	}
//
//	s := pxsort.NewSegmentation(buf, grid.Segments(), pxsort.WithWorkers(4))
//	defer s.Close()
//	_ = s.AddEffect(fx)
//	for range 100 {
//	    if err := s.ApplyEffects(); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// # Effects
//
// Three algorithms are provided:
//   - [BucketSort]: one-shot stable banding by projection key
//   - [BubblePass]: progressive, one adjacent compare-and-swap per tick
//   - [HeapifyPass]: progressive heap construction, one sift-down per tick
//
// # Coordinates
//
// Coordinates are [image.Point] values with the origin at the top-left corner.
// Out-of-range sampling coordinates are resolved by a [Topology]. Skew only
// shifts where samples are read from; writes always land on the segment's own
// coordinates.
//
// # Concurrency
//
// A [Segmentation] runs its segments sequentially or on a bounded worker
// pool. Segments sharing one Segmentation must not commit to the same
// coordinates when run in parallel.
//
// # Sub-packages
//
//   - mixer: canonical Mixer maps (identity, swap, copy, linear blend)
//   - projection: key projections and colour-science lightness/hue keys
//   - geometry: segment providers (grid, ellipse, key and colour partitions)
//   - imageio: decoding, encoding and colour-space conversion
package pxsort

// Version information
const (
	// Version is the current version of the library
	Version = "0.3.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 3

	// VersionPatch is the patch version
	VersionPatch = 0
)
