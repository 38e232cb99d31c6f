// Package ir provides the host-independent intermediate representation
// consumed by the liveness engine.
//
// A Function is an ordered list of Blocks; each Block is an ordered list of
// Instrs plus the indices of its successors. Storage slots are referenced by
// SlotID and blocks by BlockID, so facts can be kept in plain arenas indexed
// by these handles instead of maps keyed by host pointers.
//
// The representation is deliberately small. It only distinguishes what the
// classifier needs:
//
//	t1 = load x          Op: OpLoad,  Operands: [slot x]
//	t2 = add t1, 1       Op: OpAdd,   Operands: [result t1, opaque 1]
//	store t2, y          Op: OpStore, Operands: [result t2, slot y]
//	t3 = cmp t2, t1      Op: OpCmp,   Operands: [result t2, result t1]
//	if t3 goto 1 else 2  Op: OpBranch
package ir

import "fmt"

// SlotID is the stable handle of a storage slot within one Function.
type SlotID int

// BlockID is the stable handle of a basic block within one Function.
// It equals the block's position in Function.Blocks.
type BlockID int

// Slot is an abstract storage location.
// Two slots are the same location iff their IDs are equal; names may collide.
type Slot struct {
	ID   SlotID
	Name string
}

// Function is one procedure.
type Function struct {
	Name   string
	Source string // declaring file, used to derive the report file name
	Slots  []*Slot
	Blocks []*Block
}

// Slot returns the slot with the given ID.
func (f *Function) Slot(id SlotID) *Slot {
	return f.Slots[id]
}

// Block returns the block with the given ID.
func (f *Function) Block(id BlockID) *Block {
	return f.Blocks[id]
}

// BlockByComment returns the first block whose comment equals c.
func (f *Function) BlockByComment(c string) *Block {
	for _, b := range f.Blocks {
		if b.Comment == c {
			return b
		}
	}
	return nil
}

// Block is a maximal straight-line instruction sequence.
type Block struct {
	ID      BlockID
	Comment string // e.g. "entry", "for.loop"
	Instrs  []*Instr
	Succs   []BlockID
}

// Name returns the display name of the block, e.g. "0.entry".
func (b *Block) Name() string {
	if b.Comment == "" {
		return fmt.Sprintf("%d", b.ID)
	}
	return fmt.Sprintf("%d.%s", b.ID, b.Comment)
}

// Instr is one operation in a block.
type Instr struct {
	Op       Op
	Operands []Operand
	Text     string // host rendering, used for narration only
}

func (in *Instr) String() string {
	if in.Text != "" {
		return in.Text
	}
	return in.Op.String()
}

// LoadedSlots returns, per operand, the slot read by that operand if it is
// the result of a load of a slot.
func (in *Instr) LoadedSlots() []SlotID {
	var slots []SlotID
	for _, op := range in.Operands {
		if s, ok := op.LoadedSlot(); ok {
			slots = append(slots, s)
		}
	}
	return slots
}

// StoreTarget returns the slot written by a store instruction.
func (in *Instr) StoreTarget() (SlotID, bool) {
	if in.Op != OpStore || len(in.Operands) < 2 {
		return 0, false
	}
	addr := in.Operands[1]
	if addr.Kind != OperandSlot {
		return 0, false
	}
	return addr.Slot, true
}

// LoadSource returns the slot read by a load instruction.
func (in *Instr) LoadSource() (SlotID, bool) {
	if in.Op != OpLoad || len(in.Operands) < 1 {
		return 0, false
	}
	src := in.Operands[0]
	if src.Kind != OperandSlot {
		return 0, false
	}
	return src.Slot, true
}

// OperandKind discriminates operand shapes.
type OperandKind int

const (
	// OperandOpaque is any value the analysis does not look through
	// (constants, parameters, globals, calls).
	OperandOpaque OperandKind = iota
	// OperandSlot references a slot declaration.
	OperandSlot
	// OperandResult references the result of another instruction.
	OperandResult
)

// Operand is one input of an instruction.
type Operand struct {
	Kind  OperandKind
	Slot  SlotID // valid for OperandSlot
	Instr *Instr // valid for OperandResult
	Text  string // valid for OperandOpaque
}

// SlotOperand returns an operand referencing slot s.
func SlotOperand(s SlotID) Operand {
	return Operand{Kind: OperandSlot, Slot: s}
}

// ResultOperand returns an operand referencing the result of in.
func ResultOperand(in *Instr) Operand {
	return Operand{Kind: OperandResult, Instr: in}
}

// OpaqueOperand returns an operand the analysis does not look through.
func OpaqueOperand(text string) Operand {
	return Operand{Kind: OperandOpaque, Text: text}
}

// LoadedSlot reports the slot this operand reads, if the operand is the
// result of a load whose source is a slot.
func (o Operand) LoadedSlot() (SlotID, bool) {
	if o.Kind != OperandResult || o.Instr == nil {
		return 0, false
	}
	return o.Instr.LoadSource()
}
