// Package ssa adapts golang.org/x/tools/go/ssa to the liveness IR.
//
// The package contains:
//   - BuildPackage: builds naive-form SSA for an analysis.Pass
//   - SourceFunctions: the functions declared in the pass's files, closures included
//   - Lower: translates one *ssa.Function into an ir.Function
//
// Architecture follows mechanism vs policy separation:
//   - This package: HOW Go code maps onto slots and instructions (mechanism)
//   - internal/dataflow: WHAT counts as a use or a kill (policy)
package ssa
