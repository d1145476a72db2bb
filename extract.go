package pxsort

import (
	"fmt"
	"image"
)

// Sampling configures how a segment is read and written back.
type Sampling struct {
	// Skew offsets the read location of each channel. Empty means no skew.
	Skew Skew

	// Traversal selects forward or reverse visiting order.
	Traversal Traversal

	// Topology resolves out-of-range coordinates.
	Topology Topology

	// Restrict, when set, narrows the extracted sequence to the run an
	// effect reorders. Positions outside the run are neither sorted nor
	// written. Extract and Commit ignore it.
	Restrict Restriction
}

// Sequence is a pixel sequence extracted from a segment.
//
// Pixels holds the skewed samples that effects order. Base holds the
// unskewed pixel at each position's own coordinate, which is what a mixer
// receives as the original. Steps[i] is the traversal step (0-based
// position along the segment in the traversal order used for extraction)
// that Pixels[i] came from. Under Discard, dropped positions leave gaps in
// Steps.
type Sequence struct {
	Pixels []Pixel
	Base   []Pixel
	Steps  []int
}

// Len returns the number of pixels.
func (s *Sequence) Len() int { return len(s.Pixels) }

// Clone returns a deep copy of the sequence.
func (s *Sequence) Clone() *Sequence {
	out := &Sequence{
		Pixels: clonePixels(s.Pixels),
		Base:   clonePixels(s.Base),
		Steps:  append([]int(nil), s.Steps...),
	}
	return out
}

func clonePixels(ps []Pixel) []Pixel {
	if ps == nil {
		return nil
	}
	out := make([]Pixel, len(ps))
	for i, p := range ps {
		out[i] = p.Clone()
	}
	return out
}

// Extract reads the pixels along seg in traversal order. Channel c of each
// pixel is sampled at the coordinate plus skew[c], resolved through the
// topology. Under Discard a position is dropped when any of its sampling
// coordinates, or its own write coordinate, is out of range.
//
// The returned sequence is fully materialized and shares no memory with b.
func Extract(b *Buffer, seg *Segment, smp Sampling) (*Sequence, error) {
	if err := smp.Skew.Validate(b.channels); err != nil {
		return nil, err
	}
	n := seg.Len()
	seq := &Sequence{
		Pixels: make([]Pixel, 0, n),
		Base:   make([]Pixel, 0, n),
		Steps:  make([]int, 0, n),
	}
	for i := range n {
		pt := seg.Visit(smp.Traversal, i)
		dst, ok := b.Resolve(pt, smp.Topology)
		if !ok {
			continue
		}
		px, ok := b.sample(pt, smp.Skew, smp.Topology)
		if !ok {
			continue
		}
		off := b.offset(dst.X, dst.Y)
		seq.Pixels = append(seq.Pixels, px)
		seq.Base = append(seq.Base, Pixel(b.data[off:off+b.channels]).Clone())
		seq.Steps = append(seq.Steps, i)
	}
	return seq, nil
}

// extractRun extracts seg and applies the sampling restriction, if any.
func extractRun(b *Buffer, seg *Segment, smp Sampling) (*Sequence, error) {
	seq, err := Extract(b, seg, smp)
	if err != nil || smp.Restrict == nil {
		return seq, err
	}
	return seq.restrict(smp.Restrict)
}

// sample reads one skewed pixel. It reports false when a channel's
// coordinate cannot be resolved.
func (b *Buffer) sample(pt image.Point, skew Skew, t Topology) (Pixel, bool) {
	px := make(Pixel, b.channels)
	for c := range b.channels {
		r, ok := b.Resolve(pt.Add(skew.Offset(c)), t)
		if !ok {
			return nil, false
		}
		px[c] = b.data[b.offset(r.X, r.Y)+c]
	}
	return px, true
}

// Commit writes seq back along seg at the segment's own coordinates,
// visited in the same traversal order used for extraction. Skew is never
// applied to writes.
//
// When seq.Steps is nil the pixels map to steps 0..len-1. Under Wrap and
// Clamp the sequence must cover the whole segment. Commit validates the
// entire sequence before writing, so on error the buffer is unchanged.
func Commit(b *Buffer, seg *Segment, smp Sampling, seq *Sequence) error {
	steps := seq.Steps
	if steps == nil {
		steps = identitySteps(len(seq.Pixels))
	}
	if smp.Topology != Discard && len(seq.Pixels) != seg.Len() {
		return fmt.Errorf("%w: sequence has %d pixels, segment has %d", ErrSequenceLength, len(seq.Pixels), seg.Len())
	}
	return commitSteps(b, seg, smp, steps, seq.Pixels)
}

// commitSteps writes pixels[i] at traversal step steps[i]. It is used both
// for full commits and for the partial writes of progressive effects.
func commitSteps(b *Buffer, seg *Segment, smp Sampling, steps []int, pixels []Pixel) error {
	if len(steps) != len(pixels) {
		return fmt.Errorf("%w: %d pixels for %d positions", ErrSequenceLength, len(pixels), len(steps))
	}
	if len(pixels) > seg.Len() {
		return fmt.Errorf("%w: sequence has %d pixels, segment has %d", ErrSequenceLength, len(pixels), seg.Len())
	}

	seen := make(map[int]struct{}, len(steps))
	for i, st := range steps {
		if st < 0 || st >= seg.Len() {
			return fmt.Errorf("%w: position %d outside segment of length %d", ErrSequenceLength, st, seg.Len())
		}
		if _, dup := seen[st]; dup {
			return fmt.Errorf("%w: position %d written twice", ErrSequenceLength, st)
		}
		seen[st] = struct{}{}
		if len(pixels[i]) != b.channels {
			return fmt.Errorf("%w: pixel %d has %d channels, buffer has %d", ErrInvalidDimensions, i, len(pixels[i]), b.channels)
		}
	}

	for i, st := range steps {
		dst, ok := b.Resolve(seg.Visit(smp.Traversal, st), smp.Topology)
		if !ok {
			continue
		}
		copy(b.data[b.offset(dst.X, dst.Y):], pixels[i])
	}
	return nil
}

func identitySteps(n int) []int {
	steps := make([]int, n)
	for i := range steps {
		steps[i] = i
	}
	return steps
}
