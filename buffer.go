package pxsort

import (
	"fmt"
	"image"
	"slices"
)

// Limits for buffer dimensions.
const (
	// MaxDimension is the largest supported width or height.
	MaxDimension = 1 << 16

	// MaxChannels is the largest supported channel count.
	MaxChannels = 16
)

// Pixel is one sample of a buffer: a value per channel. Mixers work on
// pixels of twice the channel count (original followed by candidate).
type Pixel []float64

// Clone returns a copy of p.
func (p Pixel) Clone() Pixel {
	return slices.Clone(p)
}

// Buffer is a row-major raster of float64 channel values.
//
// Channel values are unconstrained; decoders produce values in [0, 1].
// The buffer is owned by the caller and mutated in place by effects.
//
// Thread safety: concurrent reads are safe. Concurrent writes to distinct
// coordinates are safe; writes to the same coordinate require external
// synchronization.
type Buffer struct {
	data     []float64
	width    int
	height   int
	channels int
}

// NewBuffer allocates a zeroed buffer.
func NewBuffer(width, height, channels int) (*Buffer, error) {
	if err := validateDims(width, height, channels); err != nil {
		return nil, err
	}
	return &Buffer{
		data:     make([]float64, width*height*channels),
		width:    width,
		height:   height,
		channels: channels,
	}, nil
}

// FromData wraps existing data without copying. The slice must hold at
// least width*height*channels values laid out row by row.
func FromData(width, height, channels int, data []float64) (*Buffer, error) {
	if err := validateDims(width, height, channels); err != nil {
		return nil, err
	}
	if len(data) < width*height*channels {
		return nil, fmt.Errorf("%w: have %d values, need %d", ErrDataTooSmall, len(data), width*height*channels)
	}
	return &Buffer{
		data:     data[:width*height*channels],
		width:    width,
		height:   height,
		channels: channels,
	}, nil
}

func validateDims(width, height, channels int) error {
	if width <= 0 || height <= 0 || width > MaxDimension || height > MaxDimension {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if channels <= 0 || channels > MaxChannels {
		return fmt.Errorf("%w: %d channels", ErrInvalidDimensions, channels)
	}
	return nil
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	return &Buffer{
		data:     slices.Clone(b.data),
		width:    b.width,
		height:   b.height,
		channels: b.channels,
	}
}

// Width returns the buffer width in pixels.
func (b *Buffer) Width() int { return b.width }

// Height returns the buffer height in pixels.
func (b *Buffer) Height() int { return b.height }

// Channels returns the number of channels per pixel.
func (b *Buffer) Channels() int { return b.channels }

// Bounds returns the buffer rectangle with its origin at (0, 0).
func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.width, b.height)
}

// Data returns the underlying storage. Modifying it modifies the buffer.
func (b *Buffer) Data() []float64 { return b.data }

// In reports whether pt lies inside the buffer.
func (b *Buffer) In(pt image.Point) bool {
	return pt.X >= 0 && pt.X < b.width && pt.Y >= 0 && pt.Y < b.height
}

func (b *Buffer) offset(x, y int) int {
	return (y*b.width + x) * b.channels
}

// Read returns a copy of the pixel at (x, y).
func (b *Buffer) Read(x, y int) (Pixel, error) {
	if !b.In(image.Pt(x, y)) {
		return nil, fmt.Errorf("%w: read (%d, %d)", ErrOutOfBounds, x, y)
	}
	off := b.offset(x, y)
	return slices.Clone(Pixel(b.data[off : off+b.channels])), nil
}

// At returns channel c of the pixel at (x, y).
func (b *Buffer) At(x, y, c int) (float64, error) {
	if !b.In(image.Pt(x, y)) || c < 0 || c >= b.channels {
		return 0, fmt.Errorf("%w: channel %d at (%d, %d)", ErrOutOfBounds, c, x, y)
	}
	return b.data[b.offset(x, y)+c], nil
}

// Write stores p at (x, y). The pixel must carry one value per channel.
func (b *Buffer) Write(x, y int, p Pixel) error {
	if !b.In(image.Pt(x, y)) {
		return fmt.Errorf("%w: write (%d, %d)", ErrOutOfBounds, x, y)
	}
	if len(p) != b.channels {
		return fmt.Errorf("%w: pixel has %d channels, buffer has %d", ErrInvalidDimensions, len(p), b.channels)
	}
	copy(b.data[b.offset(x, y):], p)
	return nil
}

// Fill sets every pixel to p.
func (b *Buffer) Fill(p Pixel) error {
	if len(p) != b.channels {
		return fmt.Errorf("%w: pixel has %d channels, buffer has %d", ErrInvalidDimensions, len(p), b.channels)
	}
	for off := 0; off < len(b.data); off += b.channels {
		copy(b.data[off:], p)
	}
	return nil
}

// Equal reports whether both buffers have the same shape and contents.
func (b *Buffer) Equal(other *Buffer) bool {
	if other == nil {
		return false
	}
	return b.width == other.width && b.height == other.height &&
		b.channels == other.channels && slices.Equal(b.data, other.data)
}

// Resolve maps pt into the buffer according to the topology. Wrap and Clamp
// always succeed. Discard reports false for an out-of-range point.
func (b *Buffer) Resolve(pt image.Point, t Topology) (image.Point, bool) {
	if b.In(pt) {
		return pt, true
	}
	switch t {
	case Wrap:
		return image.Pt(wrapIndex(pt.X, b.width), wrapIndex(pt.Y, b.height)), true
	case Clamp:
		return image.Pt(clampIndex(pt.X, b.width), clampIndex(pt.Y, b.height)), true
	default:
		return image.Point{}, false
	}
}
