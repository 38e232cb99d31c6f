package dataflow

import "github.com/mpyw/liveness/internal/ir"

// BlockFacts is the fact triple of one block.
type BlockFacts struct {
	UEVar   SlotSet // read before any local write
	Kill    SlotSet // written somewhere in the block
	LiveOut SlotSet // may be read after the block exits
}

// Facts is an arena of per-block facts indexed by block handle.
// It is owned by a single analysis run.
type Facts struct {
	blocks []BlockFacts
}

// NewFacts returns empty facts for n blocks.
func NewFacts(n int) *Facts {
	blocks := make([]BlockFacts, n)
	for i := range blocks {
		blocks[i] = BlockFacts{
			UEVar:   NewSlotSet(),
			Kill:    NewSlotSet(),
			LiveOut: NewSlotSet(),
		}
	}
	return &Facts{blocks: blocks}
}

// Len returns the number of blocks.
func (f *Facts) Len() int {
	return len(f.blocks)
}

// Block returns the facts of block b.
func (f *Facts) Block(b ir.BlockID) *BlockFacts {
	return &f.blocks[b]
}

// UEVar returns UEVAR(b).
func (f *Facts) UEVar(b ir.BlockID) SlotSet {
	return f.blocks[b].UEVar
}

// Kill returns KILL(b).
func (f *Facts) Kill(b ir.BlockID) SlotSet {
	return f.blocks[b].Kill
}

// LiveOut returns LIVEOUT(b).
func (f *Facts) LiveOut(b ir.BlockID) SlotSet {
	return f.blocks[b].LiveOut
}

// Exposed returns (LIVEOUT(b) minus KILL(b)) union UEVAR(b): what block b
// contributes to the LIVEOUT of each of its predecessors.
func (f *Facts) Exposed(b ir.BlockID) SlotSet {
	bf := &f.blocks[b]
	rs := NewSlotSet()
	rs.AddDifference(bf.LiveOut, bf.Kill)
	rs.AddAll(bf.UEVar)
	return rs
}
