// Package dataflow implements backward liveness over storage slots.
//
// For each basic block it computes:
//
//   - UEVAR:   slots read before any local write
//   - KILL:    slots written somewhere in the block
//   - LIVEOUT: slots that may be read after the block exits
//
// # Analysis Pipeline
//
//	┌──────────────────────────────────────────────────────────┐
//	│                       Analyze()                          │
//	│  ┌──────────────────────┐     ┌────────────────────────┐ │
//	│  │  Classifier          │  →  │  Solver                │ │
//	│  │  once per block      │     │  sweeps until no       │ │
//	│  │  writes UEVAR, KILL  │     │  LIVEOUT changes       │ │
//	│  └──────────────────────┘     └────────────────────────┘ │
//	└──────────────────────────────────────────────────────────┘
//
// # Components
//
//   - Facts:      arena of per-block fact triples indexed by ir.BlockID
//   - Graph:      CFG abstraction over block handles (gonum multigraph)
//   - Classifier: strategy-pattern instruction handlers selected by Policy
//   - Solver:     basic iterative algorithm, sweep order selected by Order
//   - Observer:   optional narration hook called during classification
//
// The package is independent of any front end: it consumes ir.Function
// values, which tests build by hand with ir.Builder.
package dataflow
