// SPDX-License-Identifier: MIT
// Package: bbtree/gen
//
// Package gen produces deterministic random knapsack instances.
//
// Contract:
//   • Same options (seed included) ⇒ identical instance on every platform.
//   • Seed 0 maps to a fixed default seed; no time-based sources.
//   • Option constructors panic on meaningless ranges; Random itself only
//     returns sentinel errors.
//
// Instances feed the CLI (`bbtree solve --random N`) and the property tests
// of the knapsack package.
package gen
