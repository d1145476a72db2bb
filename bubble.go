package pxsort

import (
	"fmt"
	"slices"
)

// BubblePass is a progressive effect performing one adjacent
// compare-and-swap per step.
//
// Passes shrink as in bubble sort: pass k covers the first len-k positions,
// since the previous passes have already carried the largest elements to
// the end. After the last, one-pair pass the cursor returns to a full pass,
// so the effect cycles forever. With no other writer on the segment, a
// sequence of length n is sorted after n*(n-1)/2 steps.
//
// Only swapped positions are written, each as Mix(original, swapped value).
type BubblePass struct {
	Sampling

	// Compare orders pixels; elements comparing Greater than their right
	// neighbour are swapped.
	Compare Comparator

	// Mix combines the unskewed pixel at a position with the value swapped
	// into place.
	Mix Map
}

// Attach returns a bubble cursor positioned at the start of a full pass.
func (fx *BubblePass) Attach(seg *Segment) (Progress, error) {
	if fx.Compare == nil {
		return nil, fmt.Errorf("%w: bubble pass has no comparator", ErrCallbackContract)
	}
	cfg := *fx
	cfg.Skew = slices.Clone(fx.Skew)
	return &bubbleProgress{fx: cfg, seg: seg}, nil
}

type bubbleProgress struct {
	fx    BubblePass
	seg   *Segment
	state State

	// cursor is the left index of the next pair; pass counts the completed
	// passes of the current shrinking cycle.
	cursor int
	pass   int
}

func (p *bubbleProgress) State() State { return p.state }

// Cursor returns the left index of the pair compared by the next step.
func (p *bubbleProgress) Cursor() int { return p.cursor }

func (p *bubbleProgress) Step(b *Buffer) error {
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
	p.normalize(n)

	i := p.cursor
	ord, err := p.fx.Compare(seq.Pixels[i], seq.Pixels[i+1])
	if err != nil {
		return err
	}
	if ord == Greater {
		cand := slices.Clone(seq.Pixels)
		cand[i], cand[i+1] = cand[i+1], cand[i]
		positions := []int{i, i + 1}
		out, err := mixAt(p.fx.Mix, seq.Base, cand, positions)
		if err != nil {
			return err
		}
		if err := commitSteps(b, p.seg, p.fx.Sampling, stepsAt(seq, positions), out); err != nil {
			return err
		}
	}
	p.advance(n)
	return nil
}

// normalize keeps the cursor valid when the extracted length changed, for
// example when a Discard topology drops a different number of samples.
func (p *bubbleProgress) normalize(n int) {
	if p.pass >= n-1 {
		p.pass = 0
	}
	if p.cursor >= n-1-p.pass {
		p.cursor = 0
	}
}

func (p *bubbleProgress) advance(n int) {
	p.cursor++
	if p.cursor < n-1-p.pass {
		return
	}
	p.cursor = 0
	p.pass++
	if p.pass >= n-1 {
		p.pass = 0
	}
}
