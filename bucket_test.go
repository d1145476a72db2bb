package pxsort

import (
	"errors"
	"image"
	"slices"
	"testing"
)

func TestThresholds(t *testing.T) {
	tests := []struct {
		name string
		keys []float64
		n    int
		want []float64
	}{
		{"one bucket", []float64{3, 1, 2}, 1, []float64{}},
		{"even split", []float64{4, 3, 2, 1}, 2, []float64{2}},
		// 10 keys in 3 buckets: sizes 4, 3, 3.
		{"residue to first", []float64{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}, 3, []float64{4, 7}},
		// 7 keys in 3 buckets: sizes 3, 2, 2.
		{"seven in three", []float64{1, 2, 3, 4, 5, 6, 7}, 3, []float64{3, 5}},
		{"more buckets than keys", []float64{2, 1}, 4, []float64{1, 2, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Thresholds(tt.keys, tt.n)
			if err != nil {
				t.Fatal(err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Thresholds() = %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := Thresholds([]float64{1}, 0); !errors.Is(err, ErrInvalidPartition) {
		t.Errorf("zero buckets error = %v", err)
	}
	if _, err := Thresholds(nil, 2); !errors.Is(err, ErrInvalidPartition) {
		t.Errorf("empty keys error = %v", err)
	}
}

func TestBucketIndex(t *testing.T) {
	th := []float64{2, 5}
	for key, want := range map[float64]int{-1: 0, 2: 0, 2.5: 1, 5: 1, 5.1: 2, 100: 2} {
		if got := BucketIndex(th, key); got != want {
			t.Errorf("BucketIndex(%v) = %d, want %d", key, got, want)
		}
	}
}

func TestBucketSort_SingleBucketKeepsOrder(t *testing.T) {
	b := keyBuffer(t, 3, 1, 2, 5)
	fx := &BucketSort{Key: channelKey(t, 1, 0), Buckets: 1, Mix: offsetMixer(t, 1, 10)}

	if err := Step(b, rowSegment(t, 0, 4), fx); err != nil {
		t.Fatal(err)
	}
	// Order is untouched but every element still goes through the mixer.
	if got, want := row(b, 0, 0), []float64{13, 11, 12, 15}; !slices.Equal(got, want) {
		t.Errorf("row = %v, want %v", got, want)
	}
}

func TestBucketSort_Stable(t *testing.T) {
	// Channel 0 is the key, channel 1 tags the original position.
	b, _ := NewBuffer(4, 1, 2)
	for x, k := range []float64{5, 1, 5, 2} {
		_ = b.Write(x, 0, Pixel{k, float64(x)})
	}
	fx := &BucketSort{Key: channelKey(t, 2, 0), Buckets: 2, Mix: copyMixer(t, 2)}

	if err := Step(b, rowSegment(t, 0, 4), fx); err != nil {
		t.Fatal(err)
	}
	if got, want := row(b, 0, 1), []float64{1, 3, 0, 2}; !slices.Equal(got, want) {
		t.Errorf("tags = %v, want %v", got, want)
	}
}

func TestBucketSort_ExplicitThresholds(t *testing.T) {
	b := keyBuffer(t, 0.9, 0.1, 0.5, 0.3, 0.7)
	fx := &BucketSort{
		Key:        channelKey(t, 1, 0),
		Thresholds: []float64{0.4},
		Buckets:    99,
		Mix:        copyMixer(t, 1),
	}
	if err := Step(b, rowSegment(t, 0, 5), fx); err != nil {
		t.Fatal(err)
	}
	if got, want := row(b, 0, 0), []float64{0.1, 0.3, 0.9, 0.5, 0.7}; !slices.Equal(got, want) {
		t.Errorf("row = %v, want %v", got, want)
	}
}

func TestBucketSort_ManyBucketsSorts(t *testing.T) {
	keys := []float64{6, 2, 9, 1, 7, 3, 8, 5, 4, 0}
	b := keyBuffer(t, keys...)
	fx := &BucketSort{Key: channelKey(t, 1, 0), Buckets: len(keys), Mix: copyMixer(t, 1), Sampling: Sampling{Traversal: Reverse}}
	if err := Step(b, rowSegment(t, 0, len(keys)), fx); err != nil {
		t.Fatal(err)
	}
	// One element per bucket gives a total order along the reverse traversal.
	if got := row(b, 0, 0); !isNonIncreasing(got) {
		t.Errorf("row = %v, want non-increasing", got)
	}
}

func TestBucketSort_InvalidPartition(t *testing.T) {
	key := channelKey(t, 1, 0)
	seg := rowSegment(t, 0, 3)

	tests := []struct {
		name string
		fx   *BucketSort
	}{
		{"zero buckets", &BucketSort{Key: key, Buckets: 0}},
		{"negative buckets", &BucketSort{Key: key, Buckets: -2}},
		{"decreasing thresholds", &BucketSort{Key: key, Thresholds: []float64{0.5, 0.2}}},
	}
	for _, tt := range tests {
		if _, err := tt.fx.Attach(seg); !errors.Is(err, ErrInvalidPartition) {
			t.Errorf("%s: Attach() error = %v, want ErrInvalidPartition", tt.name, err)
		}
	}

	// Every sample discarded leaves nothing to partition.
	b := keyBuffer(t, 1, 2, 3)
	want := b.Clone()
	fx := &BucketSort{
		Sampling: Sampling{Skew: Skew{{10, 0}}, Topology: Discard},
		Key:      key,
		Buckets:  2,
		Mix:      copyMixer(t, 1),
	}
	if err := Step(b, seg, fx); !errors.Is(err, ErrInvalidPartition) {
		t.Errorf("empty sequence error = %v, want ErrInvalidPartition", err)
	}
	if !b.Equal(want) {
		t.Error("buffer changed after a rejected partition")
	}
}

func TestBucketSort_ContractViolation(t *testing.T) {
	seg := rowSegment(t, 0, 3)

	wideKey := MustMap(1, 1, func(v []float64) []float64 { return []float64{v[0], v[0]} })
	b := keyBuffer(t, 3, 2, 1)
	want := b.Clone()
	fx := &BucketSort{Key: wideKey, Buckets: 2, Mix: copyMixer(t, 1)}
	if err := Step(b, seg, fx); !errors.Is(err, ErrCallbackContract) {
		t.Errorf("oversized key error = %v, want ErrCallbackContract", err)
	}

	badMix := MustMap(2, 1, func([]float64) []float64 { return []float64{0, 0} })
	fx = &BucketSort{Key: channelKey(t, 1, 0), Buckets: 2, Mix: badMix}
	if err := Step(b, seg, fx); !errors.Is(err, ErrCallbackContract) {
		t.Errorf("oversized mixer error = %v, want ErrCallbackContract", err)
	}
	if !b.Equal(want) {
		t.Error("buffer changed after a contract violation")
	}

	if _, err := (&BucketSort{Buckets: 2}).Attach(seg); !errors.Is(err, ErrCallbackContract) {
		t.Errorf("missing key error = %v, want ErrCallbackContract", err)
	}
}

func TestBucketSort_State(t *testing.T) {
	fx := &BucketSort{Key: channelKey(t, 1, 0), Buckets: 2, Mix: copyMixer(t, 1)}
	p, err := fx.Attach(NewSegment(image.Pt(0, 0), image.Pt(1, 0)))
	if err != nil {
		t.Fatal(err)
	}
	if p.State() != Idle {
		t.Errorf("initial state = %v, want idle", p.State())
	}
	if err := p.Step(keyBuffer(t, 2, 1)); err != nil {
		t.Fatal(err)
	}
	if p.State() != Done {
		t.Errorf("state after step = %v, want done", p.State())
	}
}
