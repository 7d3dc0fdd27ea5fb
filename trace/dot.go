// SPDX-License-Identifier: MIT
// Package: bbtree/trace
//
// dot.go — graphviz source for a search tree.
//
// Layout of a node label (graphviz HTML-like label):
//
//	┌────────┬───────┐
//	│ weight │ score │
//	├────────┴───────┤
//	│   potential    │
//	└────────────────┘

package trace

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/katalvlaran/bbtree/knapsack"
)

// DefaultGraphName is the digraph name used by the original renderer.
const DefaultGraphName = "structs"

// DefaultFillColor highlights dominated (infeasible or pruned) nodes.
const DefaultFillColor = "deeppink"

// DOTOptions controls the generated source.
type DOTOptions struct {
	// Name is the digraph identifier. Default: "structs".
	Name string

	// FillColor is the fill of dominated nodes. Default: "deeppink".
	FillColor string

	// Precision is the number of decimals for potentials; -1 prints the
	// shortest exact representation. Default: -1.
	Precision int

	// RankDir, if set, adds a graph-level rankdir attribute (e.g. "LR").
	RankDir string
}

// DefaultDOTOptions returns the options matching the original renderer.
func DefaultDOTOptions() DOTOptions {
	return DOTOptions{
		Name:      DefaultGraphName,
		FillColor: DefaultFillColor,
		Precision: -1,
		RankDir:   "",
	}
}

// FormatPotential renders a potential with the given precision
// (-1 for the shortest exact representation).
func FormatPotential(p float64, precision int) string {
	return strconv.FormatFloat(p, 'f', precision, 64)
}

// labelPotential formats the potential cell of a node. With the shortest
// format, a whole bounded potential keeps one decimal ("7.0") so that it
// reads apart from a potential that is just the score ("7").
func labelPotential(n knapsack.NodeRecord, precision int) string {
	if precision < 0 && n.Bounded && n.Potential == math.Trunc(n.Potential) && !math.IsInf(n.Potential, 0) {
		return FormatPotential(n.Potential, 1)
	}

	return FormatPotential(n.Potential, precision)
}

// DOTWriter is a knapsack.Sink that streams graphviz source to an io.Writer.
// The header is written on the first record; Close writes the footer.
// The first write error is kept and returned by Close.
type DOTWriter struct {
	w       *bufio.Writer
	opts    DOTOptions
	started bool
	closed  bool
	err     error
}

// NewDOTWriter wraps w. An empty Name or FillColor falls back to the default;
// start from DefaultDOTOptions to keep the shortest potential format.
func NewDOTWriter(w io.Writer, opts DOTOptions) *DOTWriter {
	def := DefaultDOTOptions()
	if opts.Name == "" {
		opts.Name = def.Name
	}
	if opts.FillColor == "" {
		opts.FillColor = def.FillColor
	}
	if opts.Precision < -1 {
		opts.Precision = def.Precision
	}

	return &DOTWriter{w: bufio.NewWriter(w), opts: opts}
}

func (d *DOTWriter) printf(format string, args ...any) {
	if d.err != nil {
		return
	}
	_, d.err = fmt.Fprintf(d.w, format, args...)
}

func (d *DOTWriter) start() {
	if d.started {
		return
	}
	d.started = true
	d.printf("digraph %s {\n", d.opts.Name)
	if d.opts.RankDir != "" {
		d.printf("\trankdir=%s\n", d.opts.RankDir)
	}
}

// OnNode implements knapsack.Sink.
func (d *DOTWriter) OnNode(n knapsack.NodeRecord) {
	d.start()
	label := fmt.Sprintf(`<
<TABLE BORDER="0" CELLBORDER="1" CELLSPACING="0">
  <TR>
    <TD PORT="f0">%d</TD>
    <TD>%d</TD>
  </TR>
  <TR>
    <TD COLSPAN="2">%s</TD>
  </TR>
</TABLE>>`, n.Weight, n.Score, labelPotential(n, d.opts.Precision))

	if n.Style == knapsack.StyleDominated {
		d.printf("\t%d [label=%s fillcolor=%s shape=plaintext style=filled]\n", n.ID, label, d.opts.FillColor)

		return
	}
	d.printf("\t%d [label=%s shape=plaintext]\n", n.ID, label)
}

// OnEdge implements knapsack.Sink.
func (d *DOTWriter) OnEdge(e knapsack.EdgeRecord) {
	d.start()
	d.printf("\t%d -> %d [label=%s]\n", e.Parent, e.Child, strconv.Quote(e.Label))
}

// Close writes the closing brace and flushes. An empty graph is still
// written. Calling Close twice is a no-op.
func (d *DOTWriter) Close() error {
	if d.closed {
		return d.err
	}
	d.closed = true
	d.start()
	d.printf("}\n")
	if d.err == nil {
		d.err = d.w.Flush()
	}

	return d.err
}

// WriteDOT writes the recorded tree as graphviz source.
func WriteDOT(w io.Writer, r *Recorder, opts DOTOptions) error {
	d := NewDOTWriter(w, opts)
	r.Replay(d)

	return d.Close()
}
