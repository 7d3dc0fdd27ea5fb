// SPDX-License-Identifier: MIT
// Package: bbtree/trace
//
// recorder.go — buffering sink.

package trace

import "github.com/katalvlaran/bbtree/knapsack"

// entry points into Nodes (edge=false) or Edges (edge=true).
type entry struct {
	edge bool
	idx  int
}

// Recorder is a knapsack.Sink that keeps every record in arrival order.
// It is not safe for concurrent use; one Recorder serves one build.
type Recorder struct {
	Nodes []knapsack.NodeRecord
	Edges []knapsack.EdgeRecord
	order []entry
}

// NewRecorder returns an empty Recorder with room for hint nodes.
func NewRecorder(hint int) *Recorder {
	if hint < 0 {
		hint = 0
	}

	return &Recorder{
		Nodes: make([]knapsack.NodeRecord, 0, hint),
		Edges: make([]knapsack.EdgeRecord, 0, hint),
		order: make([]entry, 0, 2*hint),
	}
}

// OnNode implements knapsack.Sink.
func (r *Recorder) OnNode(n knapsack.NodeRecord) {
	r.order = append(r.order, entry{edge: false, idx: len(r.Nodes)})
	r.Nodes = append(r.Nodes, n)
}

// OnEdge implements knapsack.Sink.
func (r *Recorder) OnEdge(e knapsack.EdgeRecord) {
	r.order = append(r.order, entry{edge: true, idx: len(r.Edges)})
	r.Edges = append(r.Edges, e)
}

// Reset drops all records, keeping the allocated storage.
func (r *Recorder) Reset() {
	r.Nodes = r.Nodes[:0]
	r.Edges = r.Edges[:0]
	r.order = r.order[:0]
}

// Len returns the number of node records.
func (r *Recorder) Len() int { return len(r.Nodes) }

// Replay forwards the buffered records to sink in their original order.
func (r *Recorder) Replay(sink knapsack.Sink) {
	for _, e := range r.order {
		if e.edge {
			sink.OnEdge(r.Edges[e.idx])
		} else {
			sink.OnNode(r.Nodes[e.idx])
		}
	}
}

// children maps a parent ID to its child edges in arrival order.
func (r *Recorder) children() map[int][]knapsack.EdgeRecord {
	out := make(map[int][]knapsack.EdgeRecord, len(r.Nodes))
	for _, e := range r.Edges {
		out[e.Parent] = append(out[e.Parent], e)
	}

	return out
}

// node returns the record with the given ID, if recorded.
func (r *Recorder) node(id int) (knapsack.NodeRecord, bool) {
	// IDs follow creation order, so the fast path is a direct index.
	if id >= 1 && id <= len(r.Nodes) && r.Nodes[id-1].ID == id {
		return r.Nodes[id-1], true
	}
	for _, n := range r.Nodes {
		if n.ID == id {
			return n, true
		}
	}

	return knapsack.NodeRecord{}, false
}
