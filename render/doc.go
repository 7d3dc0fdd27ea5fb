// Package render turns a recorded search tree into bytes in a chosen Format.
//
// dot, json and text are produced in-process by package trace. pdf, svg and
// png pipe the DOT source through the graphviz "dot" binary:
//
//	dot -Tpdf < tree.dot > tree.pdf
//
// Errors:
//
//   - ErrUnknownFormat    - ParseFormat got an unsupported name.
//   - ErrGraphvizNotFound - the dot binary is not on PATH (or not executable).
//   - ErrRenderFailed     - dot exited non-zero or timed out.
package render
