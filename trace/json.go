// SPDX-License-Identifier: MIT
// Package: bbtree/trace
//
// json.go — JSON documents for front ends.

package trace

import (
	"io"
	"strconv"

	jsoniter "github.com/json-iterator/go"

	"github.com/katalvlaran/bbtree/knapsack"
)

var qjson = jsoniter.ConfigCompatibleWithStandardLibrary

// Document is the plain JSON form of a recorded tree.
type Document struct {
	Nodes []knapsack.NodeRecord `json:"nodes"`
	Edges []knapsack.EdgeRecord `json:"edges"`
}

// NewDocument copies the records of r into a Document.
func NewDocument(r *Recorder) Document {
	doc := Document{
		Nodes: make([]knapsack.NodeRecord, len(r.Nodes)),
		Edges: make([]knapsack.EdgeRecord, len(r.Edges)),
	}
	copy(doc.Nodes, r.Nodes)
	copy(doc.Edges, r.Edges)

	return doc
}

// WriteJSON encodes the Document of r to w.
func WriteJSON(w io.Writer, r *Recorder) error {
	return qjson.NewEncoder(w).Encode(NewDocument(r))
}

// CytoGraph is a Cytoscape.js elements document.
type CytoGraph struct {
	FormatVersion            string        `json:"format_version"`
	GeneratedBy              string        `json:"generated_by"`
	TargetCytoscapeJSVersion string        `json:"target_cytoscapejs_version"`
	Data                     CytoGraphData `json:"data"`
	Elements                 []CytoElement `json:"elements"`
}

// CytoGraphData names the graph.
type CytoGraphData struct {
	SharedName string `json:"shared_name"`
	Name       string `json:"name"`
}

// CytoElement is a node or an edge.
type CytoElement struct {
	Group string         `json:"group"` // nodes or edges
	Data  map[string]any `json:"data"`
}

// Cytoscape converts the records of r; name labels the graph.
// Node data carries id, weight, score, potential, style and kind; edge data
// carries id ("e<child>"), source, target and label.
func Cytoscape(r *Recorder, name string) CytoGraph {
	g := CytoGraph{
		FormatVersion:            "1.0",
		GeneratedBy:              "bbtree",
		TargetCytoscapeJSVersion: "~3.0",
		Data:                     CytoGraphData{SharedName: name, Name: name},
		Elements:                 make([]CytoElement, 0, len(r.Nodes)+len(r.Edges)),
	}
	for _, n := range r.Nodes {
		g.Elements = append(g.Elements, CytoElement{
			Group: "nodes",
			Data: map[string]any{
				"id":        strconv.Itoa(n.ID),
				"weight":    n.Weight,
				"score":     n.Score,
				"potential": n.Potential,
				"style":     n.Style.String(),
				"kind":      n.Kind.String(),
			},
		})
	}
	for _, e := range r.Edges {
		g.Elements = append(g.Elements, CytoElement{
			Group: "edges",
			Data: map[string]any{
				"id":     "e" + strconv.Itoa(e.Child),
				"source": strconv.Itoa(e.Parent),
				"target": strconv.Itoa(e.Child),
				"label":  e.Label,
			},
		})
	}

	return g
}

// WriteCytoscape encodes Cytoscape(r, name) to w.
func WriteCytoscape(w io.Writer, r *Recorder, name string) error {
	return qjson.NewEncoder(w).Encode(Cytoscape(r, name))
}
