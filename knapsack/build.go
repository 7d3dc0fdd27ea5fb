package knapsack

import "strconv"

// EventKind identifies an incumbent change reported to an observer.
type EventKind uint8

const (
	// IncumbentSet is reported for the first exhausted node of a build.
	IncumbentSet EventKind = iota
	// IncumbentRaised is reported when an exhausted node beats the incumbent.
	IncumbentRaised
)

// String returns "set" or "raised".
func (k EventKind) String() string {
	if k == IncumbentRaised {
		return "raised"
	}

	return "set"
}

// Event describes an incumbent change.
type Event struct {
	Kind EventKind
	// Node is the exhausted node that changed the incumbent.
	Node int
	// Value is the new incumbent, Previous the old one (0 for IncumbentSet).
	Value    float64
	Previous float64
}

// Option configures a Build.
type Option func(*BuildOptions)

// BuildOptions holds the collaborators of a Build.
type BuildOptions struct {
	// Sink receives node and edge records; defaults to Discard.
	Sink Sink

	// Observer, if non-nil, is called after every incumbent change.
	Observer func(Event)
}

// DefaultOptions returns BuildOptions with the Discard sink and no observer.
func DefaultOptions() BuildOptions {
	return BuildOptions{
		Sink:     Discard,
		Observer: nil,
	}
}

// WithSink routes records to s. A nil sink keeps the default.
func WithSink(s Sink) Option {
	return func(o *BuildOptions) {
		if s != nil {
			o.Sink = s
		}
	}
}

// WithObserver installs fn as the incumbent observer.
func WithObserver(fn func(Event)) Option {
	return func(o *BuildOptions) {
		o.Observer = fn
	}
}

// searchRun is the mutable state of one Build: the node arena (whose length
// is the id counter) and the incumbent. It never outlives the call.
type searchRun struct {
	inst      *Instance
	opts      BuildOptions
	nodes     []Node
	incumbent Incumbent
}

// Build runs the branch-and-bound expansion of inst from the empty root and
// returns the resulting tree. Records are sent to the configured sink while
// the tree grows.
//
// Errors:
//   - ErrNilInstance if inst is nil.
func Build(inst *Instance, opts ...Option) (*Tree, error) {
	// 1. Validate input
	if inst == nil {
		return nil, ErrNilInstance
	}

	// 2. Apply options
	bopts := DefaultOptions()
	var fn Option
	for _, fn = range opts {
		fn(&bopts)
	}

	// 3. Fresh run state; 2^(n+1)-1 bounds the node count
	hint := 1 << 6
	if inst.Len() < 10 {
		hint = 1 << (inst.Len() + 1)
	}
	run := &searchRun{
		inst:  inst,
		opts:  bopts,
		nodes: make([]Node, 0, hint),
	}

	// 4. Expand from the root
	run.expand(0, 0, 0, 0, "")

	return &Tree{inst: inst, nodes: run.nodes, incumbent: run.incumbent}, nil
}

// newNode computes a complete node from its inputs and the incumbent in force
// at creation time. Only the child links are filled in later.
func newNode(inst *Instance, inc Incumbent, id, parent, depth int, weight, score int64, used Set, label string) Node {
	n := Node{
		ID:        id,
		Parent:    parent,
		Weight:    weight,
		Score:     score,
		Used:      used,
		Potential: inst.Potential(weight, score, used),
		Chosen:    inst.DensityRank(used),
		Label:     label,
		Depth:     depth,
	}
	n.Bounded = weight < inst.capacity && n.Chosen != NoItem
	switch {
	case weight > inst.capacity:
		n.Kind = KindInfeasible
	case inc.Dominates(n.Potential):
		n.Kind = KindPruned
	case n.Chosen == NoItem:
		n.Kind = KindExhausted
	default:
		n.Kind = KindBranch
	}

	return n
}

// expand creates one node, reports it, and recurses into its children
// (include first). It returns the new node's ID.
func (r *searchRun) expand(parent int, weight, score int64, used Set, label string) int {
	depth := 0
	if parent != 0 {
		depth = r.nodes[parent-1].Depth + 1
	}
	n := newNode(r.inst, r.incumbent, len(r.nodes)+1, parent, depth, weight, score, used, label)
	r.nodes = append(r.nodes, n)

	// Report node, then the edge from its parent.
	r.opts.Sink.OnNode(n.Record())
	if parent != 0 {
		r.opts.Sink.OnEdge(EdgeRecord{Parent: parent, Child: n.ID, Label: label})
	}

	switch n.Kind {
	case KindExhausted:
		r.offer(n.ID, n.Potential)
	case KindBranch:
		// Both children mark the item decided; it is never reconsidered.
		item := r.inst.items[n.Chosen]
		next := used.With(n.Chosen)
		k := strconv.Itoa(n.Chosen + 1)

		inc := r.expand(n.ID, weight+item.Weight, score+item.Value, next, "+"+k)
		r.nodes[n.ID-1].Include = inc

		exc := r.expand(n.ID, weight, score, next, "-"+k)
		r.nodes[n.ID-1].Exclude = exc
	}

	return n.ID
}

// offer feeds an exhausted node's potential to the incumbent.
func (r *searchRun) offer(id int, potential float64) {
	prev, had := r.incumbent.Value()
	if !r.incumbent.Observe(potential) || r.opts.Observer == nil {
		return
	}
	ev := Event{Kind: IncumbentSet, Node: id, Value: potential}
	if had {
		ev.Kind, ev.Previous = IncumbentRaised, prev
	}
	r.opts.Observer(ev)
}
