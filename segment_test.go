package pxsort

import (
	"image"
	"slices"
	"testing"
)

func TestSegment(t *testing.T) {
	pts := []image.Point{{2, 1}, {0, 3}, {5, 2}}
	s := NewSegment(pts...)
	pts[0] = image.Pt(99, 99)

	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	if s.At(0) != image.Pt(2, 1) {
		t.Error("NewSegment must copy its input")
	}
	if got := s.Visit(Reverse, 0); got != image.Pt(5, 2) {
		t.Errorf("Visit(Reverse, 0) = %v, want (5,2)", got)
	}
	if got := s.Visit(Forward, 1); got != image.Pt(0, 3) {
		t.Errorf("Visit(Forward, 1) = %v, want (0,3)", got)
	}
	if want := image.Rect(0, 1, 6, 4); s.Bounds() != want {
		t.Errorf("Bounds() = %v, want %v", s.Bounds(), want)
	}
}

func TestSegment_BreadthFirst(t *testing.T) {
	tests := []struct {
		n    int
		want []int
	}{
		{0, []int{}},
		{1, []int{0}},
		{2, []int{1, 0}},
		{7, []int{3, 1, 5, 0, 2, 4, 6}},
		{6, []int{3, 1, 5, 0, 2, 4}},
	}
	for _, tt := range tests {
		if got := breadthFirst(tt.n); !slices.Equal(got, tt.want) {
			t.Errorf("breadthFirst(%d) = %v, want %v", tt.n, got, tt.want)
		}
	}

	// Every position is visited exactly once.
	for n := range 40 {
		got := breadthFirst(n)
		slices.Sort(got)
		for i, v := range got {
			if v != i {
				t.Fatalf("breadthFirst(%d) is not a permutation: %v", n, breadthFirst(n))
			}
		}
	}

	s := NewSegment(image.Pt(0, 0), image.Pt(1, 0), image.Pt(2, 0), image.Pt(3, 0), image.Pt(4, 0))
	var xs []int
	for i := range s.Len() {
		xs = append(xs, s.Visit(BreadthFirst, i).X)
	}
	if want := []int{2, 1, 4, 0, 3}; !slices.Equal(xs, want) {
		t.Errorf("Visit(BreadthFirst) x = %v, want %v", xs, want)
	}
}

func TestSegment_TranslateReversed(t *testing.T) {
	s := NewSegment(image.Pt(0, 0), image.Pt(1, 0))

	moved := s.Translate(3, -1)
	if want := []image.Point{{3, -1}, {4, -1}}; !slices.Equal(moved.Points(), want) {
		t.Errorf("Translate() = %v, want %v", moved.Points(), want)
	}
	if s.At(0) != image.Pt(0, 0) {
		t.Error("Translate must not modify the receiver")
	}

	rev := s.Reversed()
	if rev.At(0) != image.Pt(1, 0) || rev.At(1) != image.Pt(0, 0) {
		t.Errorf("Reversed() = %v", rev.Points())
	}
}

func TestSegment_Empty(t *testing.T) {
	s := NewSegment()
	if s.Len() != 0 || !s.Bounds().Empty() {
		t.Errorf("empty segment: Len() = %d, Bounds() = %v", s.Len(), s.Bounds())
	}
}
