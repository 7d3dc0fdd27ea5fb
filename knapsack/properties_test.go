package knapsack_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bbtree/gen"
	"github.com/katalvlaran/bbtree/knapsack"
)

// randomTrees builds one tree per (size, seed) pair for property checks.
func randomTrees(t *testing.T) map[string]*knapsack.Tree {
	t.Helper()
	out := make(map[string]*knapsack.Tree)
	for n := 1; n <= 10; n++ {
		for seed := int64(1); seed <= 12; seed++ {
			sample, err := gen.Random(n, gen.WithSeed(seed), gen.WithCapacityRatio(0.2+float64(seed%5)*0.2))
			require.NoError(t, err)
			inst, err := sample.Instance()
			require.NoError(t, err)
			tree, err := knapsack.Build(inst)
			require.NoError(t, err)
			out[fmt.Sprintf("n=%d/seed=%d", n, seed)] = tree
		}
	}

	return out
}

func TestProperty_LeavesAndBranching(t *testing.T) {
	for name, tree := range randomTrees(t) {
		stats := tree.Stats()
		var leaves, inner int
		for _, n := range tree.Nodes() {
			kids := tree.Children(n.ID)
			if n.Leaf() {
				leaves++
				assert.True(t, n.Kind.Leaf(), "%s: childless node %d is %s", name, n.ID, n.Kind)
				continue
			}
			inner++
			assert.Len(t, kids, 2, "%s: node %d", name, n.ID)
			assert.Equal(t, knapsack.KindBranch, n.Kind, "%s: node %d", name, n.ID)
		}
		assert.Equal(t, stats.Leaves(), leaves, name)
		assert.Equal(t, stats.Branches, inner, name)
		assert.Equal(t, stats.Nodes, leaves+inner, name)
		// A full binary tree has one more leaf than inner nodes.
		assert.Equal(t, inner+1, leaves, name)
	}
}

func TestProperty_UsedSizeEqualsDepth(t *testing.T) {
	for name, tree := range randomTrees(t) {
		err := knapsack.Walk(tree, knapsack.WithOnVisit(func(n *knapsack.Node) error {
			if n.Used.Len() != n.Depth {
				return fmt.Errorf("node %d: |used|=%d depth=%d", n.ID, n.Used.Len(), n.Depth)
			}
			if n.Depth > tree.Instance().Len() {
				return fmt.Errorf("node %d deeper than item count", n.ID)
			}

			return nil
		}))
		assert.NoError(t, err, name)
	}
}

func TestProperty_IncumbentNonDecreasing(t *testing.T) {
	for n := 2; n <= 10; n++ {
		for seed := int64(1); seed <= 20; seed++ {
			sample, err := gen.Random(n, gen.WithSeed(seed))
			require.NoError(t, err)
			inst, err := sample.Instance()
			require.NoError(t, err)

			var seen []float64
			_, err = knapsack.Build(inst, knapsack.WithObserver(func(e knapsack.Event) {
				seen = append(seen, e.Value)
			}))
			require.NoError(t, err)
			for i := 1; i < len(seen); i++ {
				assert.Greater(t, seen[i], seen[i-1], "n=%d seed=%d", n, seed)
			}
		}
	}
}

// Replaying creation order with a running incumbent must reproduce every
// node's kind: a node is pruned exactly when its potential is below the
// incumbent in force at its creation.
func TestProperty_PruningRule(t *testing.T) {
	for name, tree := range randomTrees(t) {
		var inc knapsack.Incumbent
		capacity := tree.Instance().Capacity()
		for _, n := range tree.Nodes() {
			switch {
			case n.Weight > capacity:
				assert.Equal(t, knapsack.KindInfeasible, n.Kind, "%s: node %d", name, n.ID)
			case inc.Dominates(n.Potential):
				assert.Equal(t, knapsack.KindPruned, n.Kind, "%s: node %d", name, n.ID)
				assert.True(t, n.Leaf(), "%s: pruned node %d has children", name, n.ID)
			case n.Chosen == knapsack.NoItem:
				assert.Equal(t, knapsack.KindExhausted, n.Kind, "%s: node %d", name, n.ID)
				inc.Observe(n.Potential)
			default:
				assert.Equal(t, knapsack.KindBranch, n.Kind, "%s: node %d", name, n.ID)
			}
		}
		want, wok := inc.Value()
		got, gok := tree.Incumbent()
		assert.Equal(t, wok, gok, name)
		assert.Equal(t, want, got, name)
	}
}

func TestProperty_ChildrenMarkChosenDecided(t *testing.T) {
	for name, tree := range randomTrees(t) {
		for _, n := range tree.Nodes() {
			if n.Kind != knapsack.KindBranch {
				continue
			}
			item := tree.Instance().Item(n.Chosen)
			inc, exc := tree.Node(n.Include), tree.Node(n.Exclude)

			assert.Equal(t, n.Used.With(n.Chosen), inc.Used, name)
			assert.Equal(t, n.Used.With(n.Chosen), exc.Used, name)
			assert.Equal(t, n.Weight+item.Weight, inc.Weight, name)
			assert.Equal(t, n.Score+item.Value, inc.Score, name)
			assert.Equal(t, n.Weight, exc.Weight, name)
			assert.Equal(t, n.Score, exc.Score, name)
			assert.Equal(t, fmt.Sprintf("+%d", n.Chosen+1), inc.Label, name)
			assert.Equal(t, fmt.Sprintf("-%d", n.Chosen+1), exc.Label, name)
			// Include subtree is created first.
			assert.Equal(t, n.ID+1, inc.ID, name)
			assert.Less(t, inc.ID, exc.ID, name)
		}
	}
}

func TestWalk_OrderAndHooks(t *testing.T) {
	inst := mustInstance(t, []int64{2, 3, 4}, []int64{3, 4, 5}, 5)
	tree, err := knapsack.Build(inst)
	require.NoError(t, err)

	var pre, post []int
	err = knapsack.Walk(tree,
		knapsack.WithOnVisit(func(n *knapsack.Node) error { pre = append(pre, n.ID); return nil }),
		knapsack.WithOnExit(func(n *knapsack.Node) error { post = append(post, n.ID); return nil }),
	)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, pre)
	assert.Equal(t, []int{4, 5, 3, 6, 2, 7, 1}, post)
}

func TestWalk_MaxDepth(t *testing.T) {
	inst := mustInstance(t, []int64{2, 3, 4}, []int64{3, 4, 5}, 5)
	tree, err := knapsack.Build(inst)
	require.NoError(t, err)

	var seen []int
	err = knapsack.Walk(tree, knapsack.WithMaxDepth(1),
		knapsack.WithOnVisit(func(n *knapsack.Node) error { seen = append(seen, n.ID); return nil }))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 7}, seen)
}

func TestWalk_Errors(t *testing.T) {
	assert.ErrorIs(t, knapsack.Walk(nil), knapsack.ErrNilTree)

	inst := mustInstance(t, []int64{2, 3, 4}, []int64{3, 4, 5}, 5)
	tree, err := knapsack.Build(inst)
	require.NoError(t, err)

	halt := errors.New("halt")
	err = knapsack.Walk(tree, knapsack.WithOnVisit(func(n *knapsack.Node) error {
		if n.ID == 3 {
			return halt
		}

		return nil
	}))
	assert.ErrorIs(t, err, halt)
	assert.Contains(t, err.Error(), "node 3")

	err = knapsack.Walk(tree, knapsack.WithOnExit(func(n *knapsack.Node) error { return halt }))
	assert.ErrorIs(t, err, halt)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = knapsack.Walk(tree, knapsack.WithContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)
}
