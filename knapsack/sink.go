package knapsack

// Sink collects the structure of a search as it is built.
//
// Build calls OnNode once per node, at creation time, followed by OnEdge for
// the link from its parent (the root has no edge). Calls are synchronous and
// follow creation order, so a Sink never needs locking for a single build.
type Sink interface {
	OnNode(n NodeRecord)
	OnEdge(e EdgeRecord)
}

type discard struct{}

func (discard) OnNode(NodeRecord) {}
func (discard) OnEdge(EdgeRecord) {}

// Discard is a Sink that ignores every record.
var Discard Sink = discard{}

// SinkFuncs adapts a pair of functions to the Sink interface.
// Nil functions are skipped.
type SinkFuncs struct {
	Node func(NodeRecord)
	Edge func(EdgeRecord)
}

// OnNode calls f.Node if set.
func (f SinkFuncs) OnNode(n NodeRecord) {
	if f.Node != nil {
		f.Node(n)
	}
}

// OnEdge calls f.Edge if set.
func (f SinkFuncs) OnEdge(e EdgeRecord) {
	if f.Edge != nil {
		f.Edge(e)
	}
}

type tee []Sink

func (t tee) OnNode(n NodeRecord) {
	for _, s := range t {
		s.OnNode(n)
	}
}

func (t tee) OnEdge(e EdgeRecord) {
	for _, s := range t {
		s.OnEdge(e)
	}
}

// Tee returns a Sink that forwards every record to each non-nil sink in order.
func Tee(sinks ...Sink) Sink {
	out := make(tee, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}

	return out
}
