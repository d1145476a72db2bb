package pxsort

import "fmt"

// State is the progress state of an effect attached to one segment.
type State uint8

const (
	// Idle means the effect has not stepped since it was attached.
	Idle State = iota

	// Stepping means a progressive effect has advanced at least once.
	// Progressive effects never leave this state on their own.
	Stepping

	// Done means a one-shot effect completed its last invocation.
	Done
)

// String returns the lower-case state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Stepping:
		return "stepping"
	case Done:
		return "done"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Effect is a reordering algorithm with its configuration. An effect may be
// shared by many segments; each attachment gets independent progress.
type Effect interface {
	// Attach validates the configuration and returns fresh progress state
	// bound to seg.
	Attach(seg *Segment) (Progress, error)
}

// Progress is the mutable state of one effect on one segment.
//
// Step performs one unit of progress against the current buffer contents
// and commits its writes. On error no writes are performed.
type Progress interface {
	Step(b *Buffer) error
	State() State
}

// Step attaches fx to seg and runs a single step. It is a convenience for
// one-shot effects such as BucketSort.
func Step(b *Buffer, seg *Segment, fx Effect) error {
	p, err := fx.Attach(seg)
	if err != nil {
		return err
	}
	return p.Step(b)
}

// checkMixer validates a mixer declaration against a channel count.
func checkMixer(m Map, channels int) error {
	if !m.Valid() {
		return fmt.Errorf("%w: mixer is not set", ErrCallbackContract)
	}
	if m.in != 2*channels || m.out != channels {
		return fmt.Errorf("%w: mixer must map %d -> %d, declares %d -> %d",
			ErrCallbackContract, 2*channels, channels, m.in, m.out)
	}
	return nil
}

// mixAt builds the pixels committed for the listed sequence positions:
// mixer(original, candidate) for each one.
func mixAt(m Map, orig, cand []Pixel, positions []int) ([]Pixel, error) {
	out := make([]Pixel, len(positions))
	for k, i := range positions {
		px, err := mix(m, orig[i], cand[i])
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", i, err)
		}
		out[k] = px
	}
	return out, nil
}

// stepsAt maps sequence positions to traversal steps.
func stepsAt(seq *Sequence, positions []int) []int {
	steps := make([]int, len(positions))
	for k, i := range positions {
		steps[k] = seq.Steps[i]
	}
	return steps
}
