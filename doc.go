// Package bbtree builds, inspects and renders branch-and-bound search trees
// for the 0/1 knapsack problem.
//
// What is in the module?
//
//	knapsack/ — instances, the depth-first tree builder, the incumbent and
//	            the Sink contract every renderer consumes
//	trace/    — Recorder sink plus DOT, JSON, Cytoscape and terminal exports
//	render/   — output formats and the graphviz pipe for pdf, svg and png
//	gen/      — deterministic random instances
//	batch/    — concurrent builds from a YAML job file
//	service/  — HTTP API (gin) with metrics, rate limiting and CORS
//	config/   — YAML configuration with BBTREE_* environment overrides
//	logging/  — zerolog setup
//	cmd/bbtree — CLI: solve, serve, batch, version
//
// Quick ASCII example (weights 2 3 4, values 3 4 5, capacity 5):
//
//	1 (0,0 | 7.5)
//	├─+1─ 2 (2,3 | 7)
//	│     ├─+2─ 3 (5,7 | 7)
//	│     │     ├─+3─ 4 (9,12 | 12)   infeasible
//	│     │     └─-3─ 5 (5,7 | 7)     incumbent 7
//	│     └─-2─ 6 (2,3 | 6.75)        pruned
//	└─-1─ 7 (0,0 | 6.67)              pruned
//
// Each node shows (weight, score | potential).
//
//	go install github.com/katalvlaran/bbtree/cmd/bbtree@latest
package bbtree
