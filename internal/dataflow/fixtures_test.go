package dataflow

import "github.com/mpyw/liveness/internal/ir"

// loopFunction builds:
//
//	0.entry:  store 0, x; jump body
//	1.body:   x = x + 1; if x < n goto body else exit
//	2.exit:   return x * 2
func loopFunction() *ir.Function {
	b := ir.NewBuilder("test", "loop.go")
	x, n := b.Slot("x"), b.Slot("n")
	entry, body, exit := b.Block("entry"), b.Block("body"), b.Block("exit")

	entry.Store(ir.OpaqueOperand("0"), x)
	entry.Jump(body)

	sum := body.Arith(ir.OpAdd, body.Load(x).Value(), ir.OpaqueOperand("1"))
	body.Store(sum.Value(), x)
	cond := body.Cmp(body.Load(x).Value(), body.Load(n).Value())
	body.Branch(cond.Value(), body, exit)

	exit.Return(exit.Arith(ir.OpMul, exit.Load(x).Value(), ir.OpaqueOperand("2")).Value())
	return b.Function()
}

// chainFunction builds n blocks 0 → 1 → … → n-1 where only the last block
// reads x.
func chainFunction(n int) *ir.Function {
	b := ir.NewBuilder("test", "chain.go")
	x := b.Slot("x")

	blocks := make([]*ir.BlockBuilder, n)
	for i := range blocks {
		blocks[i] = b.Block("")
	}
	for i := 0; i < n-1; i++ {
		blocks[i].Jump(blocks[i+1])
	}
	last := blocks[n-1]
	last.Return(last.Arith(ir.OpAdd, last.Load(x).Value(), ir.OpaqueOperand("1")).Value())
	return b.Function()
}

// diamondFunction builds:
//
//	      0.entry
//	     /       \
//	 1.left     2.right      (left reads x, right reads y)
//	     \       /
//	      3.join             (join writes x and reads z)
func diamondFunction() *ir.Function {
	b := ir.NewBuilder("test", "diamond.go")
	x, y, z := b.Slot("x"), b.Slot("y"), b.Slot("z")
	entry, left, right, join := b.Block("entry"), b.Block("left"), b.Block("right"), b.Block("join")

	entry.Branch(ir.OpaqueOperand("c"), left, right)

	left.Arith(ir.OpAdd, left.Load(x).Value(), ir.OpaqueOperand("1"))
	left.Jump(join)

	right.Arith(ir.OpSub, right.Load(y).Value(), ir.OpaqueOperand("1"))
	right.Jump(join)

	join.Store(ir.OpaqueOperand("0"), x)
	join.Return(join.Arith(ir.OpMul, join.Load(z).Value(), join.Load(x).Value()).Value())
	return b.Function()
}

// shadowFunction builds a two-block function whose second block kills x
// before any read and reads y:
//
//	0.entry: jump next
//	1.next:  store 0, x; return y + x
func shadowFunction() *ir.Function {
	b := ir.NewBuilder("test", "shadow.go")
	x, y := b.Slot("x"), b.Slot("y")
	entry, next := b.Block("entry"), b.Block("next")

	entry.Jump(next)

	next.Store(ir.OpaqueOperand("0"), x)
	next.Return(next.Arith(ir.OpAdd, next.Load(y).Value(), next.Load(x).Value()).Value())
	return b.Function()
}

// unreachableFunction builds a function whose block 2 has no predecessor:
//
//	0.entry: jump exit
//	1.exit:  return x + 0
//	2.dead:  jump exit
func unreachableFunction() *ir.Function {
	b := ir.NewBuilder("test", "dead.go")
	x := b.Slot("x")
	entry, exit, dead := b.Block("entry"), b.Block("exit"), b.Block("dead")

	entry.Jump(exit)
	exit.Return(exit.Arith(ir.OpAdd, exit.Load(x).Value(), ir.OpaqueOperand("0")).Value())
	dead.Jump(exit)
	return b.Function()
}

// allFixtures returns every fixture by name.
func allFixtures() map[string]*ir.Function {
	return map[string]*ir.Function{
		"loop":        loopFunction(),
		"chain":       chainFunction(6),
		"diamond":     diamondFunction(),
		"shadow":      shadowFunction(),
		"unreachable": unreachableFunction(),
	}
}
