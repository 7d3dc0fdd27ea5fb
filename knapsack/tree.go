package knapsack

// Tree is the result of a Build. It is immutable and safe for concurrent reads.
type Tree struct {
	inst      *Instance
	nodes     []Node
	incumbent Incumbent
}

// Stats summarizes a tree.
type Stats struct {
	Nodes      int `json:"nodes"`
	Branches   int `json:"branches"`
	Exhausted  int `json:"exhausted"`
	Infeasible int `json:"infeasible"`
	Pruned     int `json:"pruned"`
	MaxDepth   int `json:"max_depth"`
}

// Leaves returns the number of terminal nodes.
func (s Stats) Leaves() int { return s.Exhausted + s.Infeasible + s.Pruned }

// Instance returns the instance the tree was built from.
func (t *Tree) Instance() *Instance { return t.inst }

// Len returns the number of nodes.
func (t *Tree) Len() int { return len(t.nodes) }

// Root returns the root node.
func (t *Tree) Root() *Node { return &t.nodes[0] }

// Node returns the node with the given ID, or nil if there is none.
func (t *Tree) Node(id int) *Node {
	if id < 1 || id > len(t.nodes) {
		return nil
	}

	return &t.nodes[id-1]
}

// Nodes returns a copy of all nodes in creation order.
func (t *Tree) Nodes() []Node {
	out := make([]Node, len(t.nodes))
	copy(out, t.nodes)

	return out
}

// Children returns the include and exclude children of id that exist,
// include first.
func (t *Tree) Children(id int) []*Node {
	n := t.Node(id)
	if n == nil {
		return nil
	}
	out := make([]*Node, 0, 2)
	if n.Include != 0 {
		out = append(out, t.Node(n.Include))
	}
	if n.Exclude != 0 {
		out = append(out, t.Node(n.Exclude))
	}

	return out
}

// Incumbent returns the final incumbent and whether any node was exhausted.
func (t *Tree) Incumbent() (float64, bool) { return t.incumbent.Value() }

// Best returns the first exhausted node whose potential equals the final
// incumbent. The search does not promise it is the optimal packing.
func (t *Tree) Best() (int, bool) {
	v, ok := t.incumbent.Value()
	if !ok {
		return 0, false
	}
	for i := range t.nodes {
		if t.nodes[i].Kind == KindExhausted && t.nodes[i].Potential == v {
			return t.nodes[i].ID, true
		}
	}

	return 0, false
}

// Selection returns the 0-based items included on the path from the root to
// id, in ascending order.
func (t *Tree) Selection(id int) []int {
	var in Set
	for n := t.Node(id); n != nil && n.Parent != 0; n = t.Node(n.Parent) {
		p := t.Node(n.Parent)
		if p.Include == n.ID {
			in = in.With(p.Chosen)
		}
	}

	return in.Indexes()
}

// Solution describes the best exhausted node of a tree.
type Solution struct {
	Node      int     `json:"node"`
	Items     []int   `json:"items"` // 0-based, ascending
	Weight    int64   `json:"weight"`
	Score     int64   `json:"score"`
	Incumbent float64 `json:"incumbent"`
}

// Solution combines Best, Selection and the node totals.
// It reports false when no node was exhausted.
func (t *Tree) Solution() (Solution, bool) {
	id, ok := t.Best()
	if !ok {
		return Solution{}, false
	}
	n := t.Node(id)

	return Solution{
		Node:      id,
		Items:     t.Selection(id),
		Weight:    n.Weight,
		Score:     n.Score,
		Incumbent: n.Potential,
	}, true
}

// Stats counts nodes per kind and the deepest level reached.
func (t *Tree) Stats() Stats {
	s := Stats{Nodes: len(t.nodes)}
	for i := range t.nodes {
		switch t.nodes[i].Kind {
		case KindBranch:
			s.Branches++
		case KindExhausted:
			s.Exhausted++
		case KindInfeasible:
			s.Infeasible++
		case KindPruned:
			s.Pruned++
		}
		if t.nodes[i].Depth > s.MaxDepth {
			s.MaxDepth = t.nodes[i].Depth
		}
	}

	return s
}

// Replay sends the record stream of the original build to sink: every node in
// creation order, each followed by its incoming edge.
func Replay(t *Tree, sink Sink) {
	if t == nil || sink == nil {
		return
	}
	for i := range t.nodes {
		n := &t.nodes[i]
		sink.OnNode(n.Record())
		if n.Parent != 0 {
			sink.OnEdge(EdgeRecord{Parent: n.Parent, Child: n.ID, Label: n.Label})
		}
	}
}
