package dataflow

import "github.com/mpyw/liveness/internal/ir"

// Options configures one analysis run.
type Options struct {
	Order    Order
	Policy   Policy
	Observer Observer // optional
}

// Result is the outcome of analyzing one function.
type Result struct {
	Func  *ir.Function
	Graph *Graph
	Facts *Facts
	Stats Stats
}

// Analyze computes UEVAR, KILL and LIVEOUT for every block of fn.
//
// The run proceeds in two phases:
//
//  1. CLASSIFICATION: every block is scanned once, in program order within
//     the block, to produce UEVAR and KILL. Blocks are independent.
//
//  2. FIXPOINT: LIVEOUT is refined by backward sweeps over the CFG until no
//     block changes.
//
// All state is created here and owned by the returned Result.
func Analyze(fn *ir.Function, opts Options) *Result {
	facts := NewFacts(len(fn.Blocks))
	g := GraphOf(fn)

	// PHASE 1: CLASSIFICATION
	NewClassifier(opts.Policy, opts.Observer).ClassifyAll(fn, facts)

	// PHASE 2: FIXPOINT
	stats := NewSolver(g, facts, opts.Order).Solve()

	return &Result{
		Func:  fn,
		Graph: g,
		Facts: facts,
		Stats: stats,
	}
}

// UEVar returns the names in UEVAR of the block with the given comment.
// It returns nil if no such block exists.
func (r *Result) UEVar(comment string) []string {
	return r.names(comment, (*Facts).UEVar)
}

// Kill returns the names in KILL of the block with the given comment.
func (r *Result) Kill(comment string) []string {
	return r.names(comment, (*Facts).Kill)
}

// LiveOut returns the names in LIVEOUT of the block with the given comment.
func (r *Result) LiveOut(comment string) []string {
	return r.names(comment, (*Facts).LiveOut)
}

func (r *Result) names(comment string, get func(*Facts, ir.BlockID) SlotSet) []string {
	b := r.Func.BlockByComment(comment)
	if b == nil {
		return nil
	}
	return get(r.Facts, b.ID).Names(r.Func)
}
