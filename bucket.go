package pxsort

import (
	"fmt"
	"math"
	"slices"
)

// BucketSort is a one-shot effect that bands a segment by projection key.
//
// Keys are split into buckets by thresholds: bucket 0 holds keys <= t0,
// bucket k holds t(k-1) < key <= tk and the last bucket holds keys above
// every threshold. Buckets are concatenated in ascending order and each
// bucket keeps the relative order of its elements, so the result is a
// stable coarse sort rather than a total order.
type BucketSort struct {
	Sampling

	// Key projects a pixel to its scalar sort key.
	Key Map

	// Buckets is the number of equal-population buckets. It is ignored when
	// Thresholds is non-nil.
	Buckets int

	// Thresholds lists explicit non-decreasing bucket boundaries.
	Thresholds []float64

	// Mix combines the unskewed pixel at a position with the candidate
	// moved there.
	Mix Map
}

// Attach validates the configuration.
func (fx *BucketSort) Attach(seg *Segment) (Progress, error) {
	if err := fx.check(); err != nil {
		return nil, err
	}
	cfg := *fx
	cfg.Thresholds = slices.Clone(fx.Thresholds)
	cfg.Skew = slices.Clone(fx.Skew)
	return &bucketProgress{fx: cfg, seg: seg}, nil
}

func (fx *BucketSort) check() error {
	if fx.Key.Out() != 1 {
		return fmt.Errorf("%w: bucket key must produce 1 value", ErrCallbackContract)
	}
	if fx.Thresholds != nil {
		return checkThresholds(fx.Thresholds)
	}
	if fx.Buckets <= 0 {
		return fmt.Errorf("%w: bucket count %d", ErrInvalidPartition, fx.Buckets)
	}
	return nil
}

type bucketProgress struct {
	fx    BucketSort
	seg   *Segment
	state State
}

func (p *bucketProgress) State() State { return p.state }

func (p *bucketProgress) Step(b *Buffer) error {
	if err := checkMixer(p.fx.Mix, b.channels); err != nil {
		return err
	}
	seq, err := extractRun(b, p.seg, p.fx.Sampling)
	if err != nil {
		return err
	}
	if seq.Len() == 0 && p.fx.Restrict != nil {
		p.state = Done
		return nil
	}
	keys := make([]float64, seq.Len())
	for i, px := range seq.Pixels {
		if keys[i], err = project(p.fx.Key, px); err != nil {
			return err
		}
	}

	order, err := bucketOrder(keys, p.fx.Buckets, p.fx.Thresholds)
	if err != nil {
		return err
	}
	cand := make([]Pixel, len(order))
	for i, src := range order {
		cand[i] = seq.Pixels[src]
	}
	out, err := mixAt(p.fx.Mix, seq.Base, cand, identitySteps(len(order)))
	if err != nil {
		return err
	}
	if err := commitSteps(b, p.seg, p.fx.Sampling, seq.Steps, out); err != nil {
		return err
	}
	p.state = Done
	return nil
}

// bucketOrder returns, for each output position, the input index moved
// there. Explicit thresholds take precedence over the bucket count.
func bucketOrder(keys []float64, n int, thresholds []float64) ([]int, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("%w: no keys to partition", ErrInvalidPartition)
	}
	if thresholds == nil {
		var err error
		if thresholds, err = Thresholds(keys, n); err != nil {
			return nil, err
		}
	} else if err := checkThresholds(thresholds); err != nil {
		return nil, err
	}

	buckets := make([][]int, len(thresholds)+1)
	for i, k := range keys {
		bi := BucketIndex(thresholds, k)
		buckets[bi] = append(buckets[bi], i)
	}
	return slices.Concat(buckets...), nil
}

// Thresholds derives n-1 bucket boundaries from the order statistics of
// keys so that the buckets are as close to equal population as integer
// division allows. The first len(keys)%n buckets receive one extra element.
func Thresholds(keys []float64, n int) ([]float64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: bucket count %d", ErrInvalidPartition, n)
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("%w: no keys to partition", ErrInvalidPartition)
	}
	sorted := slices.Clone(keys)
	slices.Sort(sorted)

	size, residue := len(sorted)/n, len(sorted)%n
	t := make([]float64, n-1)
	for s := range t {
		t[s] = sorted[(s+1)*size+min(s+1, residue)-1]
	}
	return t, nil
}

// BucketIndex returns the bucket of key: the number of thresholds strictly
// below it.
func BucketIndex(thresholds []float64, key float64) int {
	i, _ := slices.BinarySearch(thresholds, key)
	return i
}

func checkThresholds(t []float64) error {
	for i, v := range t {
		if math.IsNaN(v) {
			return fmt.Errorf("%w: threshold %d is NaN", ErrInvalidPartition, i)
		}
		if i > 0 && v < t[i-1] {
			return fmt.Errorf("%w: thresholds decrease at %d (%v < %v)", ErrInvalidPartition, i, v, t[i-1])
		}
	}
	return nil
}
