package ir

import "fmt"

// =============================================================================
// Builder
//
// Builder assembles a Function by hand. It is used to feed the engine with
// synthetic control-flow graphs that no front end would produce verbatim.
//
// Example (a loop whose body reads and rewrites x):
//
//	b := ir.NewBuilder("test", "loop.c")
//	x := b.Slot("x")
//	entry, body, exit := b.Block("entry"), b.Block("body"), b.Block("exit")
//
//	entry.Store(ir.OpaqueOperand("0"), x)
//	entry.Jump(body)
//
//	t := body.Load(x)
//	body.Store(body.Arith(ir.OpAdd, t.Value(), ir.OpaqueOperand("1")).Value(), x)
//	body.Branch(ir.OpaqueOperand("c"), body, exit)
//
//	exit.Return()
//	fn := b.Function()
// =============================================================================

// Builder incrementally constructs a Function.
type Builder struct {
	fn *Function
}

// NewBuilder returns a builder for a function with the given name and
// declaring source.
func NewBuilder(name, source string) *Builder {
	return &Builder{fn: &Function{Name: name, Source: source}}
}

// Slot declares a new slot.
func (b *Builder) Slot(name string) SlotID {
	id := SlotID(len(b.fn.Slots))
	b.fn.Slots = append(b.fn.Slots, &Slot{ID: id, Name: name})
	return id
}

// Block appends a new empty block.
func (b *Builder) Block(comment string) *BlockBuilder {
	blk := &Block{ID: BlockID(len(b.fn.Blocks)), Comment: comment}
	b.fn.Blocks = append(b.fn.Blocks, blk)
	return &BlockBuilder{block: blk}
}

// Function returns the function built so far.
func (b *Builder) Function() *Function {
	return b.fn
}

// BlockBuilder appends instructions to one block.
type BlockBuilder struct {
	block *Block
}

// ID returns the handle of the block under construction.
func (bb *BlockBuilder) ID() BlockID {
	return bb.block.ID
}

// Emit appends an instruction with the given kind and operands.
func (bb *BlockBuilder) Emit(op Op, operands ...Operand) *Instr {
	in := &Instr{Op: op, Operands: operands}
	in.Text = fmt.Sprintf("%s#%d", op, len(bb.block.Instrs))
	bb.block.Instrs = append(bb.block.Instrs, in)
	return in
}

// Load reads slot s.
func (bb *BlockBuilder) Load(s SlotID) *Instr {
	return bb.Emit(OpLoad, SlotOperand(s))
}

// Store writes val into slot s.
func (bb *BlockBuilder) Store(val Operand, s SlotID) *Instr {
	return bb.Emit(OpStore, val, SlotOperand(s))
}

// Arith appends a binary arithmetic operation.
func (bb *BlockBuilder) Arith(op Op, x, y Operand) *Instr {
	if !op.IsArith() {
		panic(fmt.Sprintf("ir: %s is not an arithmetic op", op))
	}
	return bb.Emit(op, x, y)
}

// Cmp appends a comparison.
func (bb *BlockBuilder) Cmp(x, y Operand) *Instr {
	return bb.Emit(OpCmp, x, y)
}

// Jump ends the block with an unconditional transfer to target.
func (bb *BlockBuilder) Jump(target *BlockBuilder) *Instr {
	bb.block.Succs = append(bb.block.Succs, target.ID())
	return bb.Emit(OpJump)
}

// Branch ends the block with a conditional transfer.
func (bb *BlockBuilder) Branch(cond Operand, then, els *BlockBuilder) *Instr {
	bb.block.Succs = append(bb.block.Succs, then.ID(), els.ID())
	return bb.Emit(OpBranch, cond)
}

// Return ends the block without successors.
func (bb *BlockBuilder) Return(results ...Operand) *Instr {
	return bb.Emit(OpReturn, results...)
}

// Value returns an operand referencing the result of in.
func (in *Instr) Value() Operand {
	return ResultOperand(in)
}
