package dataflow

import "github.com/mpyw/liveness/internal/ir"

// Observer is notified while blocks are classified. It is a narration hook
// only; the analysis does not depend on it.
type Observer interface {
	EnterBlock(b *ir.Block)
	VisitInstr(b *ir.Block, in *ir.Instr)
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	OnBlock func(b *ir.Block)
	OnInstr func(b *ir.Block, in *ir.Instr)
}

// EnterBlock implements Observer.
func (o ObserverFuncs) EnterBlock(b *ir.Block) {
	if o.OnBlock != nil {
		o.OnBlock(b)
	}
}

// VisitInstr implements Observer.
func (o ObserverFuncs) VisitInstr(b *ir.Block, in *ir.Instr) {
	if o.OnInstr != nil {
		o.OnInstr(b, in)
	}
}
