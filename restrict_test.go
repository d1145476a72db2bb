package pxsort

import (
	"errors"
	"slices"
	"testing"
)

func atLeast(t *testing.T, v float64) Map {
	t.Helper()
	m, err := NewProjection(1, func(p Pixel) float64 { return p[0] - v })
	if err != nil {
		t.Fatalf("NewProjection() = %v", err)
	}
	return m
}

func TestInterval(t *testing.T) {
	b := keyBuffer(t, 1, 8, 3, 9, 2, 0.5, 7, 1)
	seq, err := Extract(b, rowSegment(t, 0, 8), Sampling{})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		start, end float64
		want       []int
	}{
		{"bright run", 2, 5, []int{1, 2, 3, 4, 5, 6}},
		{"single pixel", 9, 9, []int{3}},
		{"no start", 10, 0, nil},
		{"end before start", 8, 100, nil},
		{"whole row", 0, 0, []int{0, 1, 2, 3, 4, 5, 6, 7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Interval(atLeast(t, tt.start), atLeast(t, tt.end))(seq)
			if err != nil {
				t.Fatal(err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Interval = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWhere(t *testing.T) {
	b := keyBuffer(t, 1, 8, 3, 9, 2, 0.5, 7, 1)
	seq, err := Extract(b, rowSegment(t, 0, 8), Sampling{})
	if err != nil {
		t.Fatal(err)
	}
	got, err := Where(atLeast(t, 2))(seq)
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{1, 2, 3, 4, 6}; !slices.Equal(got, want) {
		t.Errorf("Where = %v, want %v", got, want)
	}
}

func TestRestrictedBucketSortsOnlyTheInterval(t *testing.T) {
	b := keyBuffer(t, 1, 8, 3, 9, 2, 0.5, 7, 1)
	fx := &BucketSort{
		Sampling:   Sampling{Restrict: Interval(atLeast(t, 2), atLeast(t, 5))},
		Key:        channelKey(t, 1, 0),
		Thresholds: []float64{0.5, 2, 3, 7, 8},
		Mix:        copyMixer(t, 1),
	}
	p, err := fx.Attach(rowSegment(t, 0, 8))
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Step(b); err != nil {
		t.Fatal(err)
	}
	if got, want := b.Data(), []float64{1, 0.5, 2, 3, 7, 8, 9, 1}; !slices.Equal(got, want) {
		t.Errorf("buffer = %v, want %v", got, want)
	}
}

func TestRestrictedBubbleSortsOnlySelected(t *testing.T) {
	b := keyBuffer(t, 1, 8, 3, 9, 2, 0.5, 7, 1)
	fx := &BubblePass{
		Sampling: Sampling{Restrict: Where(atLeast(t, 2))},
		Compare:  CompareBy(channelKey(t, 1, 0), Ascending),
		Mix:      copyMixer(t, 1),
	}
	p, err := fx.Attach(rowSegment(t, 0, 8))
	if err != nil {
		t.Fatal(err)
	}
	for range 10 {
		if err := p.Step(b); err != nil {
			t.Fatal(err)
		}
	}
	if got, want := b.Data(), []float64{1, 2, 3, 7, 8, 0.5, 9, 1}; !slices.Equal(got, want) {
		t.Errorf("buffer = %v, want %v", got, want)
	}
}

func TestRestrictedBucketEmptyRun(t *testing.T) {
	b := keyBuffer(t, 3, 1, 2)
	fx := &BucketSort{
		Sampling: Sampling{Restrict: Interval(atLeast(t, 10), atLeast(t, 10))},
		Key:      channelKey(t, 1, 0),
		Buckets:  2,
		Mix:      copyMixer(t, 1),
	}
	p, err := fx.Attach(rowSegment(t, 0, 3))
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Step(b); err != nil {
		t.Fatalf("Step() = %v", err)
	}
	if p.State() != Done {
		t.Errorf("State() = %v, want Done", p.State())
	}
	if got, want := b.Data(), []float64{3, 1, 2}; !slices.Equal(got, want) {
		t.Errorf("buffer = %v, want %v", got, want)
	}
}

func TestRestrictionRejectsBadIndices(t *testing.T) {
	b := keyBuffer(t, 3, 1, 2)
	for _, idx := range [][]int{{1, 0}, {0, 0}, {3}, {-1}} {
		fx := &HeapifyPass{
			Sampling: Sampling{Restrict: func(*Sequence) ([]int, error) { return idx, nil }},
			Compare:  CompareBy(channelKey(t, 1, 0), Ascending),
			Mix:      copyMixer(t, 1),
		}
		p, err := fx.Attach(rowSegment(t, 0, 3))
		if err != nil {
			t.Fatal(err)
		}
		if err := p.Step(b); !errors.Is(err, ErrSequenceLength) {
			t.Errorf("indices %v: Step() = %v, want ErrSequenceLength", idx, err)
		}
	}
}
