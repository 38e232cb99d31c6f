package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/mpyw/liveness/internal/dataflow"
	"github.com/mpyw/liveness/internal/ir"
)

// Tracer narrates classification to a writer:
//
//	liveness: visiting test
//
//	block 0.entry
//	-------------
//	  t0 = local int (x) (operands: 0, op: alloc)
//	  *t0 = 1:int (operands: 2, op: store)
type Tracer struct {
	w io.Writer
}

var _ dataflow.Observer = (*Tracer)(nil)

// NewTracer returns a tracer writing to w.
func NewTracer(w io.Writer) *Tracer {
	return &Tracer{w: w}
}

// Func announces a function before selection.
func (t *Tracer) Func(name string) {
	fmt.Fprintf(t.w, "liveness: visiting %s\n", name)
}

// EnterBlock implements dataflow.Observer.
func (t *Tracer) EnterBlock(b *ir.Block) {
	title := "block " + b.Name()
	fmt.Fprintf(t.w, "\n%s\n%s\n", title, strings.Repeat("-", len(title)))
}

// VisitInstr implements dataflow.Observer.
func (t *Tracer) VisitInstr(_ *ir.Block, in *ir.Instr) {
	fmt.Fprintf(t.w, "  %s (operands: %d, op: %s)\n", in, len(in.Operands), in.Op)
}
