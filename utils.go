package tablerecon

import (
	"math"
	"sort"
)

// clamp restricts a value to a range
func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// roundTo3 rounds a value to three decimal places
func roundTo3(value float64) float64 {
	return math.Round(value*1000) / 1000
}

// interval is a closed 1-D range on an axis
type interval struct {
	lo, hi float64
}

// length returns the interval length, zero for degenerate intervals
func (iv interval) length() float64 {
	if iv.hi <= iv.lo {
		return 0
	}
	return iv.hi - iv.lo
}

// overlap1D returns the overlap of two 1-D ranges as an interval.
// A non-positive length means the ranges do not overlap.
func overlap1D(aLo, aHi, bLo, bHi float64) interval {
	return interval{lo: math.Max(aLo, bLo), hi: math.Min(aHi, bHi)}
}

// mergeIntervals coalesces overlapping intervals and returns the total
// covered length. Degenerate inputs contribute nothing.
func mergeIntervals(ivs []interval) float64 {
	if len(ivs) == 0 {
		return 0
	}

	sorted := make([]interval, len(ivs))
	copy(sorted, ivs)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].lo < sorted[j].lo
	})

	total := 0.0
	current := sorted[0]
	for _, iv := range sorted[1:] {
		if iv.lo <= current.hi {
			if iv.hi > current.hi {
				current.hi = iv.hi
			}
			continue
		}
		total += current.length()
		current = iv
	}
	total += current.length()

	return total
}

// absInt returns the absolute value of an int
func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// maxInt returns the larger of two ints
func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
