package pxsort

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/gogpu/pxsort/internal/parallel"
)

// Segmentation groups segments of one buffer with the effects attached to
// them and drives ticks.
//
// A tick advances every attached effect by exactly one step on every
// segment it governs. The unit of work is a segment: its effects run in
// attachment order because they commit to the same coordinates. Units run
// sequentially, or on a worker pool when more than one worker is
// configured; either way ApplyEffects returns only after every unit has
// finished.
//
// For parallel ticks to match sequential ones, segments must not commit to
// overlapping coordinates. Skewed reads across segment borders may observe
// either the pre- or post-tick value of a neighbour.
//
// Thread safety: methods are safe for concurrent use; ticks and attachment
// changes are serialized.
type Segmentation struct {
	mu       sync.Mutex
	buf      *Buffer
	segments []*Segment
	attached [][]attachment
	pool     *parallel.WorkerPool
	logger   *slog.Logger
	ticks    uint64
	closed   bool
}

type attachment struct {
	effect   Effect
	progress Progress
}

// NewSegmentation creates a segmentation over buf. The segment slice is
// copied; the segments themselves are immutable and may be shared.
func NewSegmentation(buf *Buffer, segments []*Segment, opts ...Option) *Segmentation {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	s := &Segmentation{
		buf:      buf,
		segments: slices.Clone(segments),
		attached: make([][]attachment, len(segments)),
		logger:   o.logger,
	}
	if o.workers > 1 {
		s.pool = parallel.NewWorkerPool(o.workers)
	}
	s.log().Info("pxsort: segmentation created",
		"segments", len(segments), "workers", s.Workers())
	return s
}

func (s *Segmentation) log() *slog.Logger {
	if s.logger != nil {
		return s.logger
	}
	return Logger()
}

// Buffer returns the buffer the segmentation mutates.
func (s *Segmentation) Buffer() *Buffer { return s.buf }

// Len returns the number of segments.
func (s *Segmentation) Len() int { return len(s.segments) }

// Segment returns the i-th segment, or nil when i is out of range.
func (s *Segmentation) Segment(i int) *Segment {
	if i < 0 || i >= len(s.segments) {
		return nil
	}
	return s.segments[i]
}

// Workers returns the number of goroutines used per tick.
func (s *Segmentation) Workers() int {
	if s.pool == nil {
		return 1
	}
	return s.pool.Workers()
}

// Ticks returns the number of completed ApplyEffects calls.
func (s *Segmentation) Ticks() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ticks
}

// AddEffect attaches fx to every segment, each with fresh progress. If any
// attachment fails, nothing is attached.
func (s *Segmentation) AddEffect(fx Effect) error {
	idx := make([]int, len(s.segments))
	for i := range idx {
		idx[i] = i
	}
	return s.AddEffectTo(fx, idx...)
}

// AddEffectTo attaches fx to the listed segments. Attaching an effect to a
// segment that already holds it resets that segment's progress while
// keeping its position in the attachment order.
func (s *Segmentation) AddEffectTo(fx Effect, segments ...int) error {
	if fx == nil {
		return ErrNilEffect
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	progress := make([]Progress, len(segments))
	for k, i := range segments {
		if i < 0 || i >= len(s.segments) {
			return fmt.Errorf("%w: index %d of %d", ErrUnknownSegment, i, len(s.segments))
		}
		p, err := fx.Attach(s.segments[i])
		if err != nil {
			return fmt.Errorf("pxsort: attach to segment %d: %w", i, err)
		}
		progress[k] = p
	}

	for k, i := range segments {
		list := s.attached[i]
		if j := indexOfEffect(list, fx); j >= 0 {
			list[j].progress = progress[k]
			continue
		}
		s.attached[i] = append(list, attachment{effect: fx, progress: progress[k]})
	}
	return nil
}

// Detach removes fx from every segment and returns how many attachments
// were removed.
func (s *Segmentation) Detach(fx Effect) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for i, list := range s.attached {
		if j := indexOfEffect(list, fx); j >= 0 {
			s.attached[i] = slices.Delete(list, j, j+1)
			removed++
		}
	}
	return removed
}

// Effects returns the effects attached to segment i in attachment order,
// or nil when i is out of range.
func (s *Segmentation) Effects(i int) []Effect {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.attached) {
		return nil
	}
	out := make([]Effect, len(s.attached[i]))
	for k, a := range s.attached[i] {
		out[k] = a.effect
	}
	return out
}

// Progress returns the progress of fx on segment i, or nil when fx is not
// attached there or i is out of range.
func (s *Segmentation) Progress(fx Effect, i int) Progress {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.attached) {
		return nil
	}
	if j := indexOfEffect(s.attached[i], fx); j >= 0 {
		return s.attached[i][j].progress
	}
	return nil
}

func indexOfEffect(list []attachment, fx Effect) int {
	return slices.IndexFunc(list, func(a attachment) bool { return a.effect == fx })
}

// ApplyEffects runs one tick.
//
// Each (segment, effect) step either commits all of its writes or none.
// A failing step does not stop the others; their errors are joined and
// returned after the tick barrier.
func (s *Segmentation) ApplyEffects() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	start := time.Now()
	var units []func()
	var errs []error
	for i, list := range s.attached {
		if len(list) == 0 {
			continue
		}
		slot := len(errs)
		errs = append(errs, nil)
		units = append(units, func() {
			errs[slot] = s.runUnit(i, list)
		})
	}

	if s.pool == nil || !s.pool.ExecuteAll(units) {
		for _, u := range units {
			u()
		}
	}
	s.ticks++

	err := errors.Join(errs...)
	log := s.log()
	log.Debug("pxsort: tick",
		"tick", s.ticks,
		"units", len(units),
		"workers", s.Workers(),
		"elapsed", time.Since(start))
	if err != nil {
		log.Warn("pxsort: tick finished with errors", "tick", s.ticks, "err", err)
	}
	return err
}

// runUnit steps every effect attached to segment i.
func (s *Segmentation) runUnit(i int, list []attachment) error {
	var errs []error
	for _, a := range list {
		if err := a.progress.Step(s.buf); err != nil {
			errs = append(errs, fmt.Errorf("segment %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// Close releases the worker pool. Further ticks return ErrClosed.
func (s *Segmentation) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	if s.pool != nil {
		s.pool.Close()
	}
	s.log().Info("pxsort: segmentation closed", "ticks", s.ticks)
}
