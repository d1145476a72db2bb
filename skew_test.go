package pxsort

import (
	"errors"
	"image"
	"slices"
	"testing"
)

func TestSkew_Validate(t *testing.T) {
	if err := Skew(nil).Validate(3); err != nil {
		t.Errorf("nil skew: %v", err)
	}
	if err := UniformSkew(3, image.Pt(1, 1)).Validate(3); err != nil {
		t.Errorf("uniform skew: %v", err)
	}
	if err := (Skew{{1, 0}}).Validate(3); !errors.Is(err, ErrInvalidSkew) {
		t.Errorf("short skew error = %v, want ErrInvalidSkew", err)
	}
}

func TestSkew_Transforms(t *testing.T) {
	s := Skew{{1, 2}, {-3, 0}, {0, 0}}

	tests := []struct {
		name string
		got  Skew
		want Skew
	}{
		{"translate", s.Translate(1, -1), Skew{{2, 1}, {-2, -1}, {1, -1}}},
		{"scale", s.Scale(2, 3), Skew{{2, 6}, {-6, 0}, {0, 0}}},
		{"scale rounds", s.Scale(0.5, 0.5), Skew{{1, 1}, {-2, 0}, {0, 0}}},
		{"rotate 180", s.Rotate(180), Skew{{-1, -2}, {3, 0}, {0, 0}}},
		{"rotate 360", s.Rotate(360), s},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !slices.Equal(tt.got, tt.want) {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}

	if Skew(nil).Translate(1, 1) != nil {
		t.Error("transforming a nil skew should stay nil")
	}
}

func TestSkew_OffsetAndZero(t *testing.T) {
	if Skew(nil).Offset(2) != (image.Point{}) {
		t.Error("empty skew offset should be zero")
	}
	if !(Skew{{0, 0}, {0, 0}}).IsZero() {
		t.Error("IsZero() = false for zero offsets")
	}
	if (Skew{{0, 0}, {0, 1}}).IsZero() {
		t.Error("IsZero() = true for non-zero offsets")
	}
}

func TestParseSkew(t *testing.T) {
	got, err := ParseSkew(" 1,2; -3, 4 ;0,0")
	if err != nil {
		t.Fatal(err)
	}
	want := Skew{{1, 2}, {-3, 4}, {0, 0}}
	if !slices.Equal(got, want) {
		t.Errorf("ParseSkew() = %v, want %v", got, want)
	}

	if s, err := ParseSkew(""); err != nil || s != nil {
		t.Errorf("ParseSkew(\"\") = %v, %v", s, err)
	}
	for _, bad := range []string{"1", "a,1", "1,b"} {
		if _, err := ParseSkew(bad); !errors.Is(err, ErrInvalidSkew) {
			t.Errorf("ParseSkew(%q) error = %v, want ErrInvalidSkew", bad, err)
		}
	}
}
