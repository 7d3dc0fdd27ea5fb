package knapsack

import (
	"fmt"
	"math/bits"
)

// Instance is the immutable problem snapshot shared by every node of a build.
type Instance struct {
	items    []Item
	capacity int64
	density  []float64 // value/weight per item, display and bound only
}

// New validates the inputs and returns a ready-to-build Instance.
//
// weights and values must have equal length (at most MaxItems), every weight
// must be strictly positive and capacity must be non-negative. Callers that
// accept user input are expected to apply their own, tighter item limit.
//
// Complexity: O(n).
func New(weights, values []int64, capacity int64) (*Instance, error) {
	// 1. Shape checks
	if len(weights) != len(values) {
		return nil, fmt.Errorf("%w: %d weights but %d values", ErrInvalidInstance, len(weights), len(values))
	}
	if len(weights) > MaxItems {
		return nil, fmt.Errorf("%w: %d items exceeds the limit of %d", ErrInvalidInstance, len(weights), MaxItems)
	}
	if capacity < 0 {
		return nil, fmt.Errorf("%w: negative capacity %d", ErrInvalidInstance, capacity)
	}

	// 2. Items and densities
	inst := &Instance{
		items:    make([]Item, len(weights)),
		capacity: capacity,
		density:  make([]float64, len(weights)),
	}
	var i int
	for i = range weights {
		if weights[i] == 0 {
			return nil, fmt.Errorf("%w: item %d has zero weight", ErrInvalidInstance, i+1)
		}
		if weights[i] < 0 {
			return nil, fmt.Errorf("%w: item %d has negative weight %d", ErrInvalidInstance, i+1, weights[i])
		}
		inst.items[i] = Item{Weight: weights[i], Value: values[i]}
		inst.density[i] = float64(values[i]) / float64(weights[i])
	}

	return inst, nil
}

// Len returns the number of items.
func (in *Instance) Len() int { return len(in.items) }

// Capacity returns the knapsack capacity.
func (in *Instance) Capacity() int64 { return in.capacity }

// Item returns item i. It panics if i is out of range, like a slice index.
func (in *Instance) Item(i int) Item { return in.items[i] }

// Items returns a copy of the items in input order.
func (in *Instance) Items() []Item {
	out := make([]Item, len(in.items))
	copy(out, in.items)

	return out
}

// Density returns value/weight of item i.
func (in *Instance) Density(i int) float64 { return in.density[i] }

// denser reports whether item i is strictly denser than item j.
// Cross-multiplication in 128 bits keeps the comparison exact for any int64
// values and positive weights.
func (in *Instance) denser(i, j int) bool {
	a, b := in.items[i], in.items[j]

	return cmpProduct(a.Value, b.Weight, b.Value, a.Weight) > 0
}

// cmpProduct compares v1*w1 with v2*w2 without overflow; w1 and w2 must be
// positive. It returns -1, 0 or +1.
func cmpProduct(v1, w1, v2, w2 int64) int {
	neg1, neg2 := v1 < 0, v2 < 0
	switch {
	case neg1 && !neg2:
		return -1
	case !neg1 && neg2:
		return 1
	}

	hi1, lo1 := bits.Mul64(magnitude(v1), uint64(w1))
	hi2, lo2 := bits.Mul64(magnitude(v2), uint64(w2))
	c := 0
	switch {
	case hi1 != hi2:
		c = cmpUint(hi1, hi2)
	default:
		c = cmpUint(lo1, lo2)
	}
	if neg1 {
		return -c
	}

	return c
}

// magnitude returns |v|; math.MinInt64 maps to 1<<63.
func magnitude(v int64) uint64 {
	if v < 0 {
		return uint64(-v)
	}

	return uint64(v)
}

func cmpUint(a, b uint64) int {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	}

	return 0
}

// DensityRank returns the undecided item with the strictly greatest density,
// breaking ties by the lowest index, or NoItem when every item is in used.
//
// Complexity: O(n).
func (in *Instance) DensityRank(used Set) int {
	best := NoItem
	for i := range in.items {
		if used.Has(i) {
			continue
		}
		if best == NoItem || in.denser(i, best) {
			best = i
		}
	}

	return best
}

// BestDensity returns the density of DensityRank(used), or 0 if none remains.
func (in *Instance) BestDensity(used Set) float64 {
	if i := in.DensityRank(used); i != NoItem {
		return in.density[i]
	}

	return 0
}

// Potential returns the bound of a partial state with the given cumulative
// weight, score and decided items. When the remaining capacity is not
// positive the bound is the score itself; otherwise the best remaining
// density is applied to the whole remaining capacity.
func (in *Instance) Potential(weight, score int64, used Set) float64 {
	remaining := in.capacity - weight
	if remaining <= 0 {
		return float64(score)
	}

	return float64(remaining)*in.BestDensity(used) + float64(score)
}
