// SPDX-License-Identifier: MIT
// Package: bbtree/gen
//
// gen.go — Random instance constructor and its options.

package gen

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/bbtree/knapsack"
)

// ErrTooFewItems indicates a non-positive item count.
var ErrTooFewItems = errors.New("gen: item count must be positive")

// ErrTooManyItems indicates an item count above knapsack.MaxItems.
var ErrTooManyItems = errors.New("gen: item count exceeds knapsack.MaxItems")

// Sample is a generated instance in raw form.
type Sample struct {
	Weights  []int64 `json:"weights" yaml:"weights"`
	Values   []int64 `json:"values" yaml:"values"`
	Capacity int64   `json:"capacity" yaml:"capacity"`
}

// Instance validates s through knapsack.New.
func (s Sample) Instance() (*knapsack.Instance, error) {
	return knapsack.New(s.Weights, s.Values, s.Capacity)
}

type config struct {
	seed          int64
	minW, maxW    int64
	minV, maxV    int64
	capacityRatio float64
}

func defaultConfig() config {
	return config{
		seed:          0,
		minW:          1,
		maxW:          10,
		minV:          1,
		maxV:          20,
		capacityRatio: 0.5,
	}
}

// Option customizes Random.
type Option func(*config)

// WithSeed fixes the RNG seed (0 ⇒ default seed).
func WithSeed(seed int64) Option {
	return func(c *config) { c.seed = seed }
}

// WithWeightRange sets the inclusive weight range. Panics unless 1 ≤ lo ≤ hi.
func WithWeightRange(lo, hi int64) Option {
	if lo < 1 || hi < lo {
		panic(fmt.Sprintf("gen: WithWeightRange(%d, %d)", lo, hi))
	}

	return func(c *config) { c.minW, c.maxW = lo, hi }
}

// WithValueRange sets the inclusive value range. Panics unless 0 ≤ lo ≤ hi.
func WithValueRange(lo, hi int64) Option {
	if lo < 0 || hi < lo {
		panic(fmt.Sprintf("gen: WithValueRange(%d, %d)", lo, hi))
	}

	return func(c *config) { c.minV, c.maxV = lo, hi }
}

// WithCapacityRatio sets capacity to ratio × total weight (rounded down).
// Panics unless 0 ≤ ratio.
func WithCapacityRatio(ratio float64) Option {
	if ratio < 0 {
		panic(fmt.Sprintf("gen: WithCapacityRatio(%v)", ratio))
	}

	return func(c *config) { c.capacityRatio = ratio }
}

// Random draws an instance with n items.
//
// Errors: ErrTooFewItems, ErrTooManyItems.
// Complexity: O(n).
func Random(n int, opts ...Option) (Sample, error) {
	if n < 1 {
		return Sample{}, ErrTooFewItems
	}
	if n > knapsack.MaxItems {
		return Sample{}, fmt.Errorf("%w: %d", ErrTooManyItems, n)
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	r := rngFromSeed(cfg.seed)
	s := Sample{
		Weights: make([]int64, n),
		Values:  make([]int64, n),
	}
	var (
		i     int
		total int64
	)
	for i = 0; i < n; i++ {
		s.Weights[i] = between(r, cfg.minW, cfg.maxW)
		s.Values[i] = between(r, cfg.minV, cfg.maxV)
		total += s.Weights[i]
	}
	s.Capacity = int64(float64(total) * cfg.capacityRatio)

	return s, nil
}
