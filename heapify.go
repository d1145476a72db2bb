package pxsort

import (
	"fmt"
	"slices"
)

// HeapifyPass is a progressive effect that builds a binary heap over the
// extracted sequence, one node per step.
//
// Each step sifts the cursor node down to its place, then moves the cursor
// to the previous internal node (heap-construction order), wrapping from
// the root back to the last internal node. With Ascending order the result
// is a max-heap; Descending yields a min-heap. The extraction phase of
// heapsort is never performed, so the sequence converges to heap order,
// not sorted order.
//
// Every position moved by a sift is written as Mix(original, moved value).
type HeapifyPass struct {
	Sampling

	// Compare orders pixels. A parent comparing Less than its larger child
	// is swapped with it.
	Compare Comparator

	// Mix combines the unskewed pixel at a position with the value sifted
	// into place.
	Mix Map
}

// Attach returns a heap cursor positioned at the last internal node.
func (fx *HeapifyPass) Attach(seg *Segment) (Progress, error) {
	if fx.Compare == nil {
		return nil, fmt.Errorf("%w: heapify pass has no comparator", ErrCallbackContract)
	}
	cfg := *fx
	cfg.Skew = slices.Clone(fx.Skew)
	return &heapProgress{fx: cfg, seg: seg, cursor: heapStart(seg.Len())}, nil
}

// heapStart returns the index of the last internal node of a heap of n
// elements, or 0 when there is none.
func heapStart(n int) int {
	return max(n/2-1, 0)
}

type heapProgress struct {
	fx     HeapifyPass
	seg    *Segment
	state  State
	cursor int
}

func (p *heapProgress) State() State { return p.state }

// Cursor returns the node sifted by the next step.
func (p *heapProgress) Cursor() int { return p.cursor }

func (p *heapProgress) Step(b *Buffer) error {
	if err := checkMixer(p.fx.Mix, b.channels); err != nil {
		return err
	}
	seq, err := extractRun(b, p.seg, p.fx.Sampling)
	if err != nil {
		return err
	}
	n := seq.Len()
	p.state = Stepping
	if n < 2 {
		return nil
	}
	start := heapStart(n)
	if p.cursor > start {
		p.cursor = start
	}

	cand := slices.Clone(seq.Pixels)
	moved, err := siftDown(cand, p.cursor, p.fx.Compare)
	if err != nil {
		return err
	}
	if len(moved) > 0 {
		out, err := mixAt(p.fx.Mix, seq.Base, cand, moved)
		if err != nil {
			return err
		}
		if err := commitSteps(b, p.seg, p.fx.Sampling, stepsAt(seq, moved), out); err != nil {
			return err
		}
	}

	p.cursor--
	if p.cursor < 0 {
		p.cursor = start
	}
	return nil
}

// siftDown moves h[i] down until neither child compares Greater than it.
// It returns the positions whose value changed, in ascending order.
func siftDown(h []Pixel, i int, compare Comparator) ([]int, error) {
	var moved []int
	n := len(h)
	for {
		child := 2*i + 1
		if child >= n {
			break
		}
		if r := child + 1; r < n {
			ord, err := compare(h[child], h[r])
			if err != nil {
				return nil, err
			}
			if ord == Less {
				child = r
			}
		}
		ord, err := compare(h[i], h[child])
		if err != nil {
			return nil, err
		}
		if ord != Less {
			break
		}
		h[i], h[child] = h[child], h[i]
		if len(moved) == 0 || moved[len(moved)-1] != i {
			moved = append(moved, i)
		}
		moved = append(moved, child)
		i = child
	}
	return moved, nil
}
