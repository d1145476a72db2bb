package pxsort

import (
	"fmt"
	"strings"
)

// Topology selects how an out-of-range sampling coordinate is resolved.
type Topology uint8

const (
	// Wrap resolves coordinates modulo the buffer width and height.
	Wrap Topology = iota

	// Clamp saturates coordinates to the nearest in-range coordinate.
	Clamp

	// Discard drops samples whose coordinate is out of range.
	Discard
)

// String returns the lower-case name of the topology.
func (t Topology) String() string {
	switch t {
	case Wrap:
		return "wrap"
	case Clamp:
		return "clamp"
	case Discard:
		return "discard"
	default:
		return fmt.Sprintf("Topology(%d)", uint8(t))
	}
}

// ParseTopology parses "wrap", "clamp" or "discard" (case-insensitive).
func ParseTopology(s string) (Topology, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "wrap":
		return Wrap, nil
	case "clamp":
		return Clamp, nil
	case "discard":
		return Discard, nil
	}
	return Wrap, fmt.Errorf("pxsort: unknown topology %q", s)
}

// Traversal is the direction in which a segment's coordinates are visited.
type Traversal uint8

const (
	// Forward visits coordinates in stored order.
	Forward Traversal = iota

	// Reverse visits coordinates last to first.
	Reverse

	// BreadthFirst visits the nodes of a balanced binary tree over the
	// stored positions level by level: the middle position first, then the
	// middles of both halves, and so on. Read in this order, the midpoints
	// of a segment form the top of an implicit heap.
	BreadthFirst
)

// String returns "forward", "reverse" or "breadth-first".
func (t Traversal) String() string {
	switch t {
	case Reverse:
		return "reverse"
	case BreadthFirst:
		return "breadth-first"
	}
	return "forward"
}

// ParseTraversal parses "forward", "reverse" or "breadth-first"
// (case-insensitive).
func ParseTraversal(s string) (Traversal, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "forward", "fwd":
		return Forward, nil
	case "reverse", "rev":
		return Reverse, nil
	case "breadth-first", "bfs", "btbf":
		return BreadthFirst, nil
	}
	return Forward, fmt.Errorf("pxsort: unknown traversal %q", s)
}

// wrapIndex returns v modulo n in [0, n).
func wrapIndex(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// clampIndex saturates v to [0, n-1].
func clampIndex(v, n int) int {
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}
