package dataflow

import "github.com/mpyw/liveness/internal/ir"

// =============================================================================
// Solver
//
// Solver computes LIVEOUT by the basic iterative algorithm:
//
//	repeat
//	    changed := false
//	    for each block b in the sweep order:
//	        old := LIVEOUT(b)
//	        LIVEOUT(b) := ∪ over s in succ(b) of (LIVEOUT(s) − KILL(s)) ∪ UEVAR(s)
//	        changed ||= LIVEOUT(b) has an element not in old
//	until !changed
//
// LIVEOUT only grows from sweep to sweep, so "has a new element" detects
// every change. The lattice is the powerset of the slots, so the loop ends
// after at most |blocks|·|slots|+1 sweeps.
// =============================================================================

// Stats describes one solver run.
type Stats struct {
	Sweeps int // includes the final sweep that observed no change
}

// Solver runs the backward fixpoint over a graph and a fact arena.
// UEVAR and KILL are read only; LIVEOUT is rewritten.
type Solver struct {
	graph *Graph
	facts *Facts
	order []ir.BlockID
}

// NewSolver returns a solver visiting blocks in the given order.
// An invalid order falls back to OrderReverse.
func NewSolver(g *Graph, facts *Facts, order Order) *Solver {
	return &Solver{
		graph: g,
		facts: facts,
		order: sweepOrder(g, order),
	}
}

func sweepOrder(g *Graph, order Order) []ir.BlockID {
	n := g.Len()
	switch order {
	case OrderProgram:
		ids := make([]ir.BlockID, n)
		for i := range ids {
			ids[i] = ir.BlockID(i)
		}
		return ids
	case OrderPostorder:
		return g.Postorder(0)
	default:
		ids := make([]ir.BlockID, n)
		for i := range ids {
			ids[i] = ir.BlockID(n - 1 - i)
		}
		return ids
	}
}

// Order returns the block visiting order of a sweep.
func (s *Solver) Order() []ir.BlockID {
	return s.order
}

// Sweep recomputes LIVEOUT of every block once and reports whether any block
// gained a slot.
func (s *Solver) Sweep() bool {
	changed := false
	for _, b := range s.order {
		next := NewSlotSet()
		for _, succ := range s.graph.Succs(b) {
			next.AddDifference(s.facts.LiveOut(succ), s.facts.Kill(succ))
			next.AddAll(s.facts.UEVar(succ))
		}

		bf := s.facts.Block(b)
		if next.HasAnyNotIn(bf.LiveOut) {
			changed = true
		}
		bf.LiveOut = next
	}
	return changed
}

// Solve sweeps until a sweep changes nothing.
func (s *Solver) Solve() Stats {
	var st Stats
	for {
		st.Sweeps++
		if !s.Sweep() {
			return st
		}
	}
}
