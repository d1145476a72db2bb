package pxsort

import "errors"

// Errors returned by buffer access, extraction, commit and effects.
var (
	// ErrInvalidDimensions is returned when width, height or channel count
	// is non-positive or exceeds the supported maximum.
	ErrInvalidDimensions = errors.New("pxsort: invalid dimensions")

	// ErrDataTooSmall is returned when borrowed data cannot hold the buffer.
	ErrDataTooSmall = errors.New("pxsort: data buffer too small")

	// ErrOutOfBounds is returned when a coordinate or channel index lies
	// outside the buffer.
	ErrOutOfBounds = errors.New("pxsort: coordinates out of bounds")

	// ErrSequenceLength is returned by Commit when the sequence disagrees
	// with the segment length for the active topology.
	ErrSequenceLength = errors.New("pxsort: sequence length mismatch")

	// ErrInvalidPartition is returned for a non-positive bucket count,
	// non-monotonic thresholds or an empty key set.
	ErrInvalidPartition = errors.New("pxsort: invalid partition")

	// ErrCallbackContract is returned when a projection, comparator key or
	// mixer is declared with, or returns, the wrong number of values.
	ErrCallbackContract = errors.New("pxsort: callback contract violation")

	// ErrInvalidSkew is returned when a skew does not carry exactly one
	// offset per channel.
	ErrInvalidSkew = errors.New("pxsort: invalid skew")

	// ErrUnknownSegment is returned when an effect is attached to a segment
	// index the segmentation does not hold.
	ErrUnknownSegment = errors.New("pxsort: unknown segment")

	// ErrNilEffect is returned when a nil effect is attached.
	ErrNilEffect = errors.New("pxsort: nil effect")

	// ErrClosed is returned when ticking a closed segmentation.
	ErrClosed = errors.New("pxsort: segmentation closed")
)
