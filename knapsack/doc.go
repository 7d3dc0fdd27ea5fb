// Package knapsack builds branch-and-bound search trees for 0/1 knapsack
// instances and reports their shape to a trace sink for later rendering.
//
// What:
//
//   - Instance: immutable snapshot of the items (weight, value), the capacity
//     and a value-density ranking used to pick the next branching item.
//   - Build: a deterministic depth-first expansion. Every node is either
//     infeasible (weight over capacity), pruned (potential below the
//     incumbent), exhausted (no undecided items) or branched into an
//     "include next item" child followed by an "exclude next item" child.
//   - Sink: receives one NodeRecord per created node and one EdgeRecord per
//     parent→child link, synchronously and in creation order.
//   - Tree: the arena of nodes produced by a build, with inspection helpers
//     (Walk, Replay, Selection, Stats).
//
// Why:
//   - Teaching and debugging branch-and-bound: the recorded tree shows where
//     the bound cut branches and how the incumbent evolved.
//   - The same record stream feeds DOT, JSON and terminal renderers.
//
// Bound:
//
//	potential = score                                   if capacity-weight <= 0
//	potential = (capacity-weight)*bestDensity(used) + score   otherwise
//
// where bestDensity is the density of the single most attractive undecided
// item. This is deliberately weaker than the LP relaxation.
//
// Incumbent:
//
//	The incumbent is the greatest potential observed on an exhausted node so
//	far. It only moves up. A node whose potential is strictly below it is
//	reported as pruned and gets no children.
//
// Complexity:
//
//   - Build: O(2ⁿ·n) time in the worst case (n items, n ≤ MaxItems), O(2ⁿ) nodes.
//   - DensityRank / BestDensity: O(n).
//
// Errors:
//
//   - ErrInvalidInstance   malformed input sequences (New only)
//   - ErrNilInstance       Build called with a nil *Instance
//   - ErrNilTree           Walk called with a nil *Tree
//
// Functions:
//
//   - New(weights, values, capacity) (*Instance, error)
//   - Build(inst, opts...) (*Tree, error)
//   - Walk(t, opts...) error, Replay(t, sink)
//   - WithSink(), WithObserver(), WithContext(), WithOnVisit(), WithOnExit(), WithMaxDepth()
package knapsack
