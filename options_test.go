package pxsort

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()
	if o.workers != 1 {
		t.Errorf("workers = %d, want 1", o.workers)
	}
	if o.logger != nil {
		t.Error("default logger should be nil")
	}
}

func TestWithWorkers(t *testing.T) {
	tests := []struct {
		n, want int
	}{
		{-3, 1},
		{0, 1},
		{1, 1},
		{4, 4},
	}
	b := rampBuffer(t, 4, 4, 1)
	for _, tt := range tests {
		s := NewSegmentation(b, nil, WithWorkers(tt.n))
		if got := s.Workers(); got != tt.want {
			t.Errorf("WithWorkers(%d): Workers() = %d, want %d", tt.n, got, tt.want)
		}
		s.Close()
	}
}

// TestWithLoggerOverridesPackageLogger checks that a per-segmentation
// logger receives records while the package logger stays silent.
func TestWithLoggerOverridesPackageLogger(t *testing.T) {
	var global, local bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&global, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })

	l := slog.New(slog.NewTextHandler(&local, &slog.HandlerOptions{Level: slog.LevelDebug}))
	b := rampBuffer(t, 3, 1, 1)
	s := NewSegmentation(b, []*Segment{rowSegment(t, 0, 3)}, WithLogger(l))
	defer s.Close()
	if err := s.ApplyEffects(); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(local.String(), "pxsort: segmentation created") {
		t.Errorf("local log missing creation record: %q", local.String())
	}
	if global.Len() != 0 {
		t.Errorf("package logger should be bypassed, got %q", global.String())
	}
}

func TestOptionsCompose(t *testing.T) {
	o := defaultOptions()
	for _, opt := range []Option{WithWorkers(8), WithWorkers(2)} {
		opt(&o)
	}
	if o.workers != 2 {
		t.Errorf("last option should win, workers = %d", o.workers)
	}
}
