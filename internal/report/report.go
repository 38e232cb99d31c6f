// Package report renders liveness results for humans.
//
// A report has one section per block, in program order:
//
//	Liveness of test (basic.go)
//	===========================
//
//	0.entry
//	  UEVAR:   {y}
//	  KILL:    {x}
//	  LIVEOUT: {}
//
// Slots are listed in declaration order. Blocks on a cycle are marked
// "(loop)", blocks not reachable from the entry "(unreachable)".
package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/mpyw/liveness/internal/dataflow"
	"github.com/mpyw/liveness/internal/ir"
)

// Format returns the report of one analyzed function.
func Format(res *dataflow.Result) string {
	var buf strings.Builder

	header := fmt.Sprintf("Liveness of %s", res.Func.Name)
	if res.Func.Source != "" {
		header += fmt.Sprintf(" (%s)", filepath.Base(res.Func.Source))
	}
	fmt.Fprintf(&buf, "%s\n%s\n", header, strings.Repeat("=", len(header)))

	reachable := res.Graph.Reachable(0)
	loops := res.Graph.LoopBlocks()
	for _, b := range res.Func.Blocks {
		fmt.Fprintf(&buf, "\n%s", b.Name())
		if loops[b.ID] {
			fmt.Fprintf(&buf, " (loop)")
		}
		if !reachable[b.ID] {
			fmt.Fprintf(&buf, " (unreachable)")
		}
		fmt.Fprintf(&buf, "\n")
		fmt.Fprintf(&buf, "  UEVAR:   %s\n", SetString(res.Func, res.Facts.UEVar(b.ID)))
		fmt.Fprintf(&buf, "  KILL:    %s\n", SetString(res.Func, res.Facts.Kill(b.ID)))
		fmt.Fprintf(&buf, "  LIVEOUT: %s\n", SetString(res.Func, res.Facts.LiveOut(b.ID)))
	}
	return buf.String()
}

// Write writes the reports of results to w, separated by blank lines.
func Write(w io.Writer, results ...*dataflow.Result) error {
	for i, res := range results {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, Format(res)); err != nil {
			return err
		}
	}
	return nil
}

// SetString renders a slot set of fn as "{a, b}".
func SetString(fn *ir.Function, s dataflow.SlotSet) string {
	return "{" + strings.Join(s.Names(fn), ", ") + "}"
}

// Summary is the one-line form used for diagnostics:
// "test: 3 blocks, LIVEOUT(0.entry)={x, n}".
func Summary(res *dataflow.Result) string {
	if len(res.Func.Blocks) == 0 {
		return fmt.Sprintf("%s: no blocks", res.Func.Name)
	}
	entry := res.Func.Blocks[0]
	return fmt.Sprintf("%s: %d blocks, LIVEOUT(%s)=%s",
		res.Func.Name, len(res.Func.Blocks), entry.Name(), SetString(res.Func, res.Facts.LiveOut(entry.ID)))
}
