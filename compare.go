package pxsort

import (
	"cmp"
	"fmt"
)

// Ordering is the result of comparing two pixels.
type Ordering int8

const (
	Less    Ordering = -1
	Equal   Ordering = 0
	Greater Ordering = 1
)

// String returns "less", "equal" or "greater".
func (o Ordering) String() string {
	switch o {
	case Less:
		return "less"
	case Greater:
		return "greater"
	default:
		return "equal"
	}
}

// Order is the sort direction of a comparator.
type Order int8

const (
	Ascending  Order = 1
	Descending Order = -1
)

// ParseOrder parses "asc"/"ascending" or "desc"/"descending".
func ParseOrder(s string) (Order, error) {
	switch s {
	case "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	}
	return Ascending, fmt.Errorf("pxsort: unknown order %q", s)
}

// Comparator orders two pixels. It must describe a consistent total
// preorder for the progressive effects to converge.
type Comparator func(a, b Pixel) (Ordering, error)

// CompareBy orders pixels by a projection key. With Ascending, a pixel
// with the smaller key compares Less. NaN keys sort before all others.
func CompareBy(key Map, order Order) Comparator {
	return func(a, b Pixel) (Ordering, error) {
		ka, err := project(key, a)
		if err != nil {
			return Equal, err
		}
		kb, err := project(key, b)
		if err != nil {
			return Equal, err
		}
		return Ordering(cmp.Compare(ka, kb)) * Ordering(order), nil
	}
}

// CompareWith adapts a plain three-way function. Descending flips it.
func CompareWith(fn func(a, b Pixel) int, order Order) Comparator {
	return func(a, b Pixel) (Ordering, error) {
		return Ordering(sign(fn(a, b))) * Ordering(order), nil
	}
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
