// SPDX-License-Identifier: MIT
// Package: bbtree/trace
//
// text.go — terminal rendering through pterm's tree printer.

package trace

import (
	"errors"
	"fmt"

	"github.com/pterm/pterm"

	"github.com/katalvlaran/bbtree/knapsack"
)

// ErrEmptyTrace is returned by Text when nothing was recorded.
var ErrEmptyTrace = errors.New("trace: no nodes recorded")

// Text renders the recorded tree, one line per node:
//
//	+1 #2  w=2 s=3 p=7
//	-2 #6  w=2 s=3 p=6.75 [pruned]
//
// Dominated nodes carry their kind in brackets.
func Text(r *Recorder) (string, error) {
	if len(r.Nodes) == 0 {
		return "", ErrEmptyTrace
	}
	kids := r.children()
	root := textNode(r, kids, r.Nodes[0], "")

	return pterm.DefaultTree.WithRoot(pterm.TreeNode{Children: []pterm.TreeNode{root}}).Srender()
}

func textNode(r *Recorder, kids map[int][]knapsack.EdgeRecord, n knapsack.NodeRecord, label string) pterm.TreeNode {
	line := fmt.Sprintf("#%d  w=%d s=%d p=%s", n.ID, n.Weight, n.Score, FormatPotential(n.Potential, -1))
	if label != "" {
		line = label + " " + line
	}
	if n.Style == knapsack.StyleDominated {
		line += " [" + n.Kind.String() + "]"
	}

	tn := pterm.TreeNode{Text: line}
	for _, e := range kids[n.ID] {
		child, ok := r.node(e.Child)
		if !ok {
			continue
		}
		tn.Children = append(tn.Children, textNode(r, kids, child, e.Label))
	}

	return tn
}
