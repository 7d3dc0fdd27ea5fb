package gen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bbtree/gen"
	"github.com/katalvlaran/bbtree/knapsack"
)

func TestRandom_Errors(t *testing.T) {
	_, err := gen.Random(0)
	assert.ErrorIs(t, err, gen.ErrTooFewItems)

	_, err = gen.Random(knapsack.MaxItems + 1)
	assert.ErrorIs(t, err, gen.ErrTooManyItems)
}

func TestRandom_DeterministicPerSeed(t *testing.T) {
	a, err := gen.Random(8, gen.WithSeed(99))
	require.NoError(t, err)
	b, err := gen.Random(8, gen.WithSeed(99))
	require.NoError(t, err)
	c, err := gen.Random(8, gen.WithSeed(100))
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)

	zero, err := gen.Random(8)
	require.NoError(t, err)
	one, err := gen.Random(8, gen.WithSeed(1))
	require.NoError(t, err)
	assert.Equal(t, one, zero, "seed 0 maps to the default seed")
}

func TestRandom_Ranges(t *testing.T) {
	sample, err := gen.Random(40,
		gen.WithSeed(5),
		gen.WithWeightRange(3, 6),
		gen.WithValueRange(0, 2),
		gen.WithCapacityRatio(0.25),
	)
	require.NoError(t, err)
	require.Len(t, sample.Weights, 40)
	require.Len(t, sample.Values, 40)

	var total int64
	for i := range sample.Weights {
		assert.GreaterOrEqual(t, sample.Weights[i], int64(3))
		assert.LessOrEqual(t, sample.Weights[i], int64(6))
		assert.GreaterOrEqual(t, sample.Values[i], int64(0))
		assert.LessOrEqual(t, sample.Values[i], int64(2))
		total += sample.Weights[i]
	}
	assert.Equal(t, int64(float64(total)*0.25), sample.Capacity)

	inst, err := sample.Instance()
	require.NoError(t, err)
	assert.Equal(t, 40, inst.Len())
}

func TestOptions_PanicOnMeaninglessInput(t *testing.T) {
	assert.Panics(t, func() { gen.WithWeightRange(0, 3) })
	assert.Panics(t, func() { gen.WithWeightRange(4, 3) })
	assert.Panics(t, func() { gen.WithValueRange(-1, 3) })
	assert.Panics(t, func() { gen.WithCapacityRatio(-0.1) })
}

func TestDeriveSeed(t *testing.T) {
	assert.Equal(t, gen.DeriveSeed(7, 1), gen.DeriveSeed(7, 1))
	assert.NotEqual(t, gen.DeriveSeed(7, 1), gen.DeriveSeed(7, 2))
	assert.NotEqual(t, gen.DeriveSeed(7, 1), gen.DeriveSeed(8, 1))
}
