package dataflow

import "github.com/mpyw/liveness/internal/ir"

// =============================================================================
// InstructionHandler Interface (Strategy Pattern)
//
// Each handler is responsible for one kind of instruction. The classifier
// walks a block in program order and delegates every instruction to the
// first handler that accepts it. Instructions no handler accepts contribute
// nothing.
// =============================================================================

// HandlerContext is the state a handler may update: the facts of the block
// being classified.
type HandlerContext struct {
	Block *ir.Block
	Facts *BlockFacts
}

// InstructionHandler handles a specific kind of instruction.
type InstructionHandler interface {
	// CanHandle returns true if this handler can process the given instruction.
	CanHandle(in *ir.Instr) bool

	// Handle processes the instruction and updates UEVAR/KILL.
	Handle(in *ir.Instr, ctx *HandlerContext)
}

// use records a read of s. With checked set, a slot already killed earlier in
// the block is locally defined and the read is not upward-exposed.
func (ctx *HandlerContext) use(s ir.SlotID, checked bool) {
	if checked && ctx.Facts.Kill.Has(s) {
		return
	}
	ctx.Facts.UEVar.Add(s)
}

// =============================================================================
// Classic handlers
// =============================================================================

// ArithHandler handles add, sub, mul, udiv and sdiv.
//
// Each operand that is a load of a slot is checked independently against the
// kill set built so far:
//
//	store 1, x
//	t1 = load x
//	t2 = load y
//	t3 = add t1, t2     // x already killed → only y is upward-exposed
type ArithHandler struct{}

// CanHandle returns true for tracked arithmetic operations.
func (h *ArithHandler) CanHandle(in *ir.Instr) bool {
	return in.Op.IsArith()
}

// Handle adds not-yet-killed operand slots to UEVAR.
func (h *ArithHandler) Handle(in *ir.Instr, ctx *HandlerContext) {
	for _, s := range in.LoadedSlots() {
		ctx.use(s, true)
	}
}

// StoreHandler handles stores under the classic policy.
//
// The target is killed unconditionally. A source that is itself a load marks
// its slot upward-exposed without consulting the kill set:
//
//	store 1, x
//	t1 = load x
//	store t1, y         // KILL += y, UEVAR += x although x is killed
type StoreHandler struct{}

// CanHandle returns true for stores.
func (h *StoreHandler) CanHandle(in *ir.Instr) bool {
	return in.Op == ir.OpStore
}

// Handle updates KILL with the target and UEVAR with a loaded source.
func (h *StoreHandler) Handle(in *ir.Instr, ctx *HandlerContext) {
	if s, ok := in.StoreTarget(); ok {
		ctx.Facts.Kill.Add(s)
	}
	if len(in.Operands) > 0 {
		if s, ok := in.Operands[0].LoadedSlot(); ok {
			ctx.use(s, false)
		}
	}
}

// CompareHandler handles comparisons. Operand loads are added to UEVAR
// without consulting the kill set.
type CompareHandler struct{}

// CanHandle returns true for comparisons.
func (h *CompareHandler) CanHandle(in *ir.Instr) bool {
	return in.Op == ir.OpCmp
}

// Handle adds every loaded operand slot to UEVAR.
func (h *CompareHandler) Handle(in *ir.Instr, ctx *HandlerContext) {
	for _, s := range in.LoadedSlots() {
		ctx.use(s, false)
	}
}

// =============================================================================
// Uniform handlers
// =============================================================================

// LoadHandler treats the load itself as the read, kill-checked.
type LoadHandler struct{}

// CanHandle returns true for loads.
func (h *LoadHandler) CanHandle(in *ir.Instr) bool {
	return in.Op == ir.OpLoad
}

// Handle adds the source slot to UEVAR unless it is killed already.
func (h *LoadHandler) Handle(in *ir.Instr, ctx *HandlerContext) {
	if s, ok := in.LoadSource(); ok {
		ctx.use(s, true)
	}
}

// KillHandler kills the target of a store and nothing else. The source, if
// loaded, was accounted for by its own load.
type KillHandler struct{}

// CanHandle returns true for stores.
func (h *KillHandler) CanHandle(in *ir.Instr) bool {
	return in.Op == ir.OpStore
}

// Handle adds the store target to KILL.
func (h *KillHandler) Handle(in *ir.Instr, ctx *HandlerContext) {
	if s, ok := in.StoreTarget(); ok {
		ctx.Facts.Kill.Add(s)
	}
}

// =============================================================================
// Classifier
// =============================================================================

// Classifier computes UEVAR and KILL of single blocks.
type Classifier struct {
	handlers []InstructionHandler
	observer Observer
}

// NewClassifier returns a classifier for the given policy.
// An invalid policy falls back to PolicyClassic.
func NewClassifier(policy Policy, observer Observer) *Classifier {
	return &Classifier{
		handlers: handlersFor(policy),
		observer: observer,
	}
}

func handlersFor(policy Policy) []InstructionHandler {
	if policy == PolicyUniform {
		return []InstructionHandler{
			&LoadHandler{},
			&KillHandler{},
		}
	}
	return []InstructionHandler{
		&ArithHandler{},
		&StoreHandler{},
		&CompareHandler{},
	}
}

// Classify scans b once in program order and records its UEVAR and KILL
// into bf. bf.Kill may already hold in-progress kills; they count as earlier
// local writes.
func (c *Classifier) Classify(b *ir.Block, bf *BlockFacts) {
	ctx := &HandlerContext{Block: b, Facts: bf}
	if c.observer != nil {
		c.observer.EnterBlock(b)
	}
	for _, in := range b.Instrs {
		if c.observer != nil {
			c.observer.VisitInstr(b, in)
		}
		c.dispatch(in, ctx)
	}
}

func (c *Classifier) dispatch(in *ir.Instr, ctx *HandlerContext) {
	for _, h := range c.handlers {
		if h.CanHandle(in) {
			h.Handle(in, ctx)
			return
		}
	}
}

// ClassifyAll classifies every block of fn into facts.
func (c *Classifier) ClassifyAll(fn *ir.Function, facts *Facts) {
	for _, b := range fn.Blocks {
		c.Classify(b, facts.Block(b.ID))
	}
}
