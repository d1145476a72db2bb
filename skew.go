package pxsort

import (
	"fmt"
	"image"
	"math"
	"strconv"
	"strings"

	"seehuhn.de/go/geom/matrix"
)

// Skew holds one sampling offset per channel. Channel c of the pixel at p is
// read from p + skew[c]. A nil or empty skew samples every channel in place.
//
// Skew never affects where results are written.
type Skew []image.Point

// UniformSkew returns a skew applying the same offset to all channels.
func UniformSkew(channels int, offset image.Point) Skew {
	s := make(Skew, channels)
	for i := range s {
		s[i] = offset
	}
	return s
}

// Validate checks that s is empty or carries exactly one offset per channel.
func (s Skew) Validate(channels int) error {
	if len(s) != 0 && len(s) != channels {
		return fmt.Errorf("%w: %d offsets for %d channels", ErrInvalidSkew, len(s), channels)
	}
	return nil
}

// IsZero reports whether every offset is (0, 0).
func (s Skew) IsZero() bool {
	for _, o := range s {
		if o != (image.Point{}) {
			return false
		}
	}
	return true
}

// Offset returns the offset of channel c, or (0, 0) for an empty skew.
func (s Skew) Offset(c int) image.Point {
	if len(s) == 0 {
		return image.Point{}
	}
	return s[c]
}

// Transform applies the affine transform m to every offset and rounds the
// results to the nearest integer.
func (s Skew) Transform(m matrix.Matrix) Skew {
	if s == nil {
		return nil
	}
	out := make(Skew, len(s))
	for i, o := range s {
		x, y := float64(o.X), float64(o.Y)
		out[i] = image.Pt(
			int(math.Round(m[0]*x+m[2]*y+m[4])),
			int(math.Round(m[1]*x+m[3]*y+m[5])),
		)
	}
	return out
}

// Translate shifts every offset by (dx, dy).
func (s Skew) Translate(dx, dy int) Skew {
	return s.Transform(matrix.Identity.Translate(float64(dx), float64(dy)))
}

// Scale multiplies every offset component-wise by (sx, sy).
func (s Skew) Scale(sx, sy float64) Skew {
	return s.Transform(matrix.Scale(sx, sy))
}

// Rotate turns every offset around the origin by deg degrees.
func (s Skew) Rotate(deg float64) Skew {
	return s.Transform(matrix.RotateDeg(deg))
}

// ParseSkew parses offsets written as "dx,dy;dx,dy;...". The empty string
// yields a nil skew.
func ParseSkew(v string) (Skew, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	parts := strings.Split(v, ";")
	s := make(Skew, 0, len(parts))
	for _, part := range parts {
		xs, ys, ok := strings.Cut(strings.TrimSpace(part), ",")
		if !ok {
			return nil, fmt.Errorf("%w: offset %q is not dx,dy", ErrInvalidSkew, part)
		}
		x, err := strconv.Atoi(strings.TrimSpace(xs))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidSkew, err)
		}
		y, err := strconv.Atoi(strings.TrimSpace(ys))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidSkew, err)
		}
		s = append(s, image.Pt(x, y))
	}
	return s, nil
}
