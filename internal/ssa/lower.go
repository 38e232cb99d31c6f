package ssa

import (
	"fmt"
	"go/token"
	"go/types"
	"strings"

	"golang.org/x/tools/go/ssa"

	"github.com/mpyw/liveness/internal/ir"
)

// =============================================================================
// Lowering
//
// Lower translates one naive-form *ssa.Function into an ir.Function:
//
//	t0 = local int (x)     → alloc        (declares slot x)
//	*t0 = 1:int            → store        [opaque 1, slot x]
//	t1 = *t0               → load         [slot x]
//	t2 = t1 + 2:int        → add          [result t1, opaque 2]
//	t3 = t1 < t2           → cmp          [result t1, result t2]
//	if t3 goto 1 else 2    → br           [result t3]
//
// Store operands are reordered to [value, address]. Heap-escaping locals
// (new int (x)) only become slots with Options.Heap. Parameters are spilled
// to locals at entry in naive form, so they are slots killed by the entry
// block. Unnamed results (local int ()) are not slots.
//
// Only integer operands make arithmetic or comparisons: float and string
// operators lower to OpBinary.
// =============================================================================

// Options configures lowering.
type Options struct {
	// Heap treats heap-allocated locals as slots too.
	Heap bool
}

type lowerer struct {
	opts   Options
	out    *ir.Function
	slots  map[*ssa.Alloc]ir.SlotID
	instrs map[ssa.Instruction]*ir.Instr
}

// Lower translates fn. A function without a body yields no blocks.
func Lower(fn *ssa.Function, opts Options) *ir.Function {
	l := &lowerer{
		opts:   opts,
		out:    &ir.Function{Name: fn.Name(), Source: sourceOf(fn)},
		slots:  make(map[*ssa.Alloc]ir.SlotID),
		instrs: make(map[ssa.Instruction]*ir.Instr),
	}

	l.declareSlots(fn)

	// Operands may refer forward (Phi edges), so all instructions are
	// created before any operand is resolved.
	for i, b := range fn.Blocks {
		blk := &ir.Block{ID: ir.BlockID(i), Comment: b.Comment}
		for _, s := range b.Succs {
			blk.Succs = append(blk.Succs, ir.BlockID(s.Index))
		}
		for _, instr := range b.Instrs {
			in := &ir.Instr{Op: opOf(instr), Text: render(instr)}
			l.instrs[instr] = in
			blk.Instrs = append(blk.Instrs, in)
		}
		l.out.Blocks = append(l.out.Blocks, blk)
	}

	for _, b := range fn.Blocks {
		for _, instr := range b.Instrs {
			l.instrs[instr].Operands = l.operands(instr)
		}
	}
	return l.out
}

func sourceOf(fn *ssa.Function) string {
	if fn.Prog == nil || fn.Prog.Fset == nil || !fn.Pos().IsValid() {
		return ""
	}
	return fn.Prog.Fset.Position(fn.Pos()).Filename
}

func (l *lowerer) declareSlots(fn *ssa.Function) {
	for _, b := range fn.Blocks {
		for _, instr := range b.Instrs {
			alloc, ok := instr.(*ssa.Alloc)
			if !ok || (alloc.Heap && !l.opts.Heap) || synthetic(alloc) {
				continue
			}
			id := ir.SlotID(len(l.out.Slots))
			l.out.Slots = append(l.out.Slots, &ir.Slot{ID: id, Name: alloc.Comment})
			l.slots[alloc] = id
		}
	}
}

// synthetic reports whether alloc is a builder-made local: an unnamed
// result, which has no comment, or a local such as defer$stack. User
// identifiers cannot contain '$'.
func synthetic(alloc *ssa.Alloc) bool {
	return alloc.Comment == "" || strings.Contains(alloc.Comment, "$")
}

func (l *lowerer) operands(instr ssa.Instruction) []ir.Operand {
	switch instr := instr.(type) {
	case *ssa.Store:
		return []ir.Operand{l.operand(instr.Val), l.operand(instr.Addr)}
	case *ssa.BinOp:
		return []ir.Operand{l.operand(instr.X), l.operand(instr.Y)}
	case *ssa.UnOp:
		return []ir.Operand{l.operand(instr.X)}
	}

	var ops []ir.Operand
	for _, v := range instr.Operands(nil) {
		if *v != nil {
			ops = append(ops, l.operand(*v))
		}
	}
	return ops
}

func (l *lowerer) operand(v ssa.Value) ir.Operand {
	if alloc, ok := v.(*ssa.Alloc); ok {
		if id, ok := l.slots[alloc]; ok {
			return ir.SlotOperand(id)
		}
	}
	if instr, ok := v.(ssa.Instruction); ok {
		if in, ok := l.instrs[instr]; ok {
			return ir.ResultOperand(in)
		}
	}
	return ir.OpaqueOperand(v.Name())
}

func opOf(instr ssa.Instruction) ir.Op {
	switch instr := instr.(type) {
	case *ssa.Alloc:
		return ir.OpAlloc
	case *ssa.UnOp:
		if instr.Op == token.MUL {
			return ir.OpLoad
		}
	case *ssa.Store:
		return ir.OpStore
	case *ssa.BinOp:
		return binOpOf(instr)
	case *ssa.Call:
		return ir.OpCall
	case *ssa.Phi:
		return ir.OpPhi
	case *ssa.Jump:
		return ir.OpJump
	case *ssa.If:
		return ir.OpBranch
	case *ssa.Return:
		return ir.OpReturn
	}
	return ir.OpOther
}

func binOpOf(b *ssa.BinOp) ir.Op {
	if !isInteger(b.X.Type()) {
		return ir.OpBinary
	}
	switch b.Op {
	case token.ADD:
		return ir.OpAdd
	case token.SUB:
		return ir.OpSub
	case token.MUL:
		return ir.OpMul
	case token.QUO:
		if isUnsigned(b.X.Type()) {
			return ir.OpUDiv
		}
		return ir.OpSDiv
	case token.EQL, token.NEQ, token.LSS, token.LEQ, token.GTR, token.GEQ:
		return ir.OpCmp
	}
	return ir.OpBinary
}

func isInteger(t types.Type) bool {
	basic, ok := t.Underlying().(*types.Basic)
	return ok && basic.Info()&types.IsInteger != 0
}

func isUnsigned(t types.Type) bool {
	basic, ok := t.Underlying().(*types.Basic)
	return ok && basic.Info()&types.IsUnsigned != 0
}

func render(instr ssa.Instruction) string {
	if v, ok := instr.(ssa.Value); ok && v.Name() != "" {
		return fmt.Sprintf("%s = %s", v.Name(), v.String())
	}
	return instr.String()
}
