// SPDX-License-Identifier: MIT
// Package: bbtree/trace
//
// Package trace collects and exports the record stream of a knapsack build.
//
//   • Recorder buffers NodeRecord/EdgeRecord values in arrival order and can
//     replay them into any other knapsack.Sink.
//   • DOTWriter streams graphviz source: HTML-table labels (weight | score /
//     potential), dominated nodes filled with deeppink, "+k"/"-k" edge labels.
//   • NewDocument / Cytoscape produce JSON documents for front ends.
//   • Text renders the tree for terminals.
//
// Exports never mutate the recorder and never touch the file system; callers
// pass an io.Writer.
package trace
