package pxsort

import "fmt"

// Restriction selects the part of an extracted sequence an effect works
// on. It returns strictly increasing indices into seq.Pixels; the effect
// then sees only those pixels, in that order, and writes back only to
// their positions.
type Restriction func(seq *Sequence) ([]int, error)

// Interval restricts a sequence to one contiguous run: from the first
// pixel whose start key is non-negative through the last pixel at or after
// it whose end key is non-negative. The run is empty when no pixel passes
// the start test.
//
// This is the classic interval sort: with a lightness threshold as both
// tests, only the stretch between the first and last bright pixel moves.
func Interval(start, end Map) Restriction {
	return func(seq *Sequence) ([]int, error) {
		n := seq.Len()
		lo := 0
		for ; lo < n; lo++ {
			k, err := project(start, seq.Pixels[lo])
			if err != nil {
				return nil, fmt.Errorf("interval start: %w", err)
			}
			if k >= 0 {
				break
			}
		}
		hi := n - 1
		for ; hi >= lo; hi-- {
			k, err := project(end, seq.Pixels[hi])
			if err != nil {
				return nil, fmt.Errorf("interval end: %w", err)
			}
			if k >= 0 {
				break
			}
		}
		if hi < lo {
			return nil, nil
		}
		idx := make([]int, 0, hi-lo+1)
		for i := lo; i <= hi; i++ {
			idx = append(idx, i)
		}
		return idx, nil
	}
}

// Where restricts a sequence to the pixels whose key is non-negative,
// keeping their relative order. The selected pixels need not be adjacent.
func Where(test Map) Restriction {
	return func(seq *Sequence) ([]int, error) {
		var idx []int
		for i, px := range seq.Pixels {
			k, err := project(test, px)
			if err != nil {
				return nil, fmt.Errorf("where: %w", err)
			}
			if k >= 0 {
				idx = append(idx, i)
			}
		}
		return idx, nil
	}
}

// restrict returns the sub-sequence selected by r.
func (s *Sequence) restrict(r Restriction) (*Sequence, error) {
	idx, err := r(s)
	if err != nil {
		return nil, err
	}
	out := &Sequence{
		Pixels: make([]Pixel, len(idx)),
		Base:   make([]Pixel, len(idx)),
		Steps:  make([]int, len(idx)),
	}
	for k, i := range idx {
		if i < 0 || i >= s.Len() || (k > 0 && i <= idx[k-1]) {
			return nil, fmt.Errorf("%w: restriction index %d at %d is out of order or range", ErrSequenceLength, i, k)
		}
		out.Pixels[k] = s.Pixels[i]
		out.Base[k] = s.Base[i]
		out.Steps[k] = s.Steps[i]
	}
	return out, nil
}
