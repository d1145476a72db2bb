package geometry

import (
	"cmp"
	"fmt"
	"image"
	"slices"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
	"gonum.org/v1/gonum/floats"

	"github.com/gogpu/pxsort"
)

// PartitionByColor clusters the pixels under seg into k groups with
// k-means over their channel values. Parts are ordered by the norm of the
// cluster centre, darkest first, and keep the relative order of seg.
// Points that cannot be resolved under t are left out.
//
// Cluster seeding is random, so assignments of pixels between nearby
// clusters can vary from run to run. Identical pixels always share a part.
func PartitionByColor(b *pxsort.Buffer, seg *pxsort.Segment, k int, t pxsort.Topology) ([]*pxsort.Segment, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: cluster count %d", pxsort.ErrInvalidPartition, k)
	}
	var (
		pts []image.Point
		obs clusters.Observations
	)
	for i := range seg.Len() {
		pt := seg.At(i)
		src, ok := b.Resolve(pt, t)
		if !ok {
			continue
		}
		px, err := b.Read(src.X, src.Y)
		if err != nil {
			return nil, err
		}
		pts = append(pts, pt)
		obs = append(obs, clusters.Coordinates(px))
	}
	if len(obs) < k {
		return nil, fmt.Errorf("%w: %d pixels for %d clusters", pxsort.ErrInvalidPartition, len(obs), k)
	}

	cc, err := kmeans.New().Partition(obs, k)
	if err != nil {
		return nil, fmt.Errorf("geometry: kmeans: %w", err)
	}
	rank := make([]int, len(cc))
	for i := range rank {
		rank[i] = i
	}
	slices.SortStableFunc(rank, func(a, b int) int {
		return cmp.Compare(floats.Norm(cc[a].Center, 2), floats.Norm(cc[b].Center, 2))
	})
	part := make([]int, len(cc))
	for p, c := range rank {
		part[c] = p
	}

	groups := make([][]image.Point, len(cc))
	for i, o := range obs {
		p := part[cc.Nearest(o)]
		groups[p] = append(groups[p], pts[i])
	}
	segs := make([]*pxsort.Segment, len(groups))
	for i, g := range groups {
		segs[i] = pxsort.NewSegment(g...)
	}
	return segs, nil
}
