package geometry

import (
	"fmt"
	"image"
	"math"

	"github.com/chewxy/math32"

	"github.com/gogpu/pxsort"
)

// PartitionBy splits seg into n parts of near-equal population by the
// order statistics of key. Each part keeps the relative order of seg.
// Parts may be empty when keys tie across a threshold.
func PartitionBy(seg *pxsort.Segment, key func(image.Point) float64, n int) ([]*pxsort.Segment, error) {
	pts := seg.Points()
	keys := make([]float64, len(pts))
	for i, pt := range pts {
		keys[i] = key(pt)
	}
	t, err := pxsort.Thresholds(keys, n)
	if err != nil {
		return nil, err
	}
	return bucketize(pts, keys, t), nil
}

// PartitionAt splits seg by explicit, non-decreasing thresholds into
// len(thresholds)+1 parts. A point goes to the part whose index is the
// number of thresholds strictly below its key.
func PartitionAt(seg *pxsort.Segment, key func(image.Point) float64, thresholds []float64) ([]*pxsort.Segment, error) {
	for i, v := range thresholds {
		if math.IsNaN(v) || (i > 0 && v < thresholds[i-1]) {
			return nil, fmt.Errorf("%w: thresholds %v", pxsort.ErrInvalidPartition, thresholds)
		}
	}
	pts := seg.Points()
	keys := make([]float64, len(pts))
	for i, pt := range pts {
		keys[i] = key(pt)
	}
	return bucketize(pts, keys, thresholds), nil
}

// PartitionByImage splits seg into n parts by the projected value of the
// pixel under each point. Points that cannot be resolved under t are left
// out of every part.
func PartitionByImage(b *pxsort.Buffer, seg *pxsort.Segment, key pxsort.Map, n int, t pxsort.Topology) ([]*pxsort.Segment, error) {
	pts, keys, err := imageKeys(b, seg, key, t)
	if err != nil {
		return nil, err
	}
	th, err := pxsort.Thresholds(keys, n)
	if err != nil {
		return nil, err
	}
	return bucketize(pts, keys, th), nil
}

// FilterByKey keeps the points of seg whose projected pixel value is
// positive. It pairs with projection.Threshold.
func FilterByKey(b *pxsort.Buffer, seg *pxsort.Segment, key pxsort.Map, t pxsort.Topology) (*pxsort.Segment, error) {
	pts, keys, err := imageKeys(b, seg, key, t)
	if err != nil {
		return nil, err
	}
	kept := pts[:0]
	for i, pt := range pts {
		if keys[i] > 0 {
			kept = append(kept, pt)
		}
	}
	return pxsort.NewSegment(kept...), nil
}

// PartitionByAngle splits seg into n equal angular sectors around center,
// starting at the positive x axis and sweeping counter-clockwise.
func PartitionByAngle(seg *pxsort.Segment, center image.Point, n int) ([]*pxsort.Segment, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: sector count %d", pxsort.ErrInvalidPartition, n)
	}
	t := make([]float64, n-1)
	for i := range t {
		t[i] = float64(2 * math32.Pi * float32(i+1) / float32(n))
	}
	return PartitionAt(seg, angleKey(center), t)
}

func imageKeys(b *pxsort.Buffer, seg *pxsort.Segment, key pxsort.Map, t pxsort.Topology) ([]image.Point, []float64, error) {
	if key.Out() != 1 || key.In() != b.Channels() {
		return nil, nil, fmt.Errorf("%w: key maps %d->%d, want %d->1",
			pxsort.ErrCallbackContract, key.In(), key.Out(), b.Channels())
	}
	pts := make([]image.Point, 0, seg.Len())
	keys := make([]float64, 0, seg.Len())
	for i := range seg.Len() {
		pt := seg.At(i)
		src, ok := b.Resolve(pt, t)
		if !ok {
			continue
		}
		px, err := b.Read(src.X, src.Y)
		if err != nil {
			return nil, nil, err
		}
		v, err := key.Apply(px)
		if err != nil {
			return nil, nil, err
		}
		pts = append(pts, pt)
		keys = append(keys, v[0])
	}
	return pts, keys, nil
}

func bucketize(pts []image.Point, keys []float64, thresholds []float64) []*pxsort.Segment {
	parts := make([][]image.Point, len(thresholds)+1)
	for i, pt := range pts {
		bi := pxsort.BucketIndex(thresholds, keys[i])
		parts[bi] = append(parts[bi], pt)
	}
	segs := make([]*pxsort.Segment, len(parts))
	for i, p := range parts {
		segs[i] = pxsort.NewSegment(p...)
	}
	return segs
}
