package dataflow

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpyw/liveness/internal/ir"
)

var allOrders = []Order{OrderReverse, OrderProgram, OrderPostorder}

// classified returns facts with UEVAR and KILL filled and LIVEOUT empty.
func classified(fn *ir.Function, policy Policy) (*Graph, *Facts) {
	facts := NewFacts(len(fn.Blocks))
	NewClassifier(policy, nil).ClassifyAll(fn, facts)
	return GraphOf(fn), facts
}

func snapshot(facts *Facts) []SlotSet {
	out := make([]SlotSet, facts.Len())
	for i := range out {
		out[i] = facts.LiveOut(ir.BlockID(i)).Clone()
	}
	return out
}

// =============================================================================
// Scenarios
// =============================================================================

func TestAnalyze_StraightLine(t *testing.T) {
	tests := []struct {
		name      string
		useFirst  bool
		wantUEVar []string
	}{
		{name: "store then use", useFirst: false, wantUEVar: []string{"y"}},
		{name: "use then store", useFirst: true, wantUEVar: []string{"x", "y"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := ir.NewBuilder("test", "")
			x, y := b.Slot("x"), b.Slot("y")
			bb := b.Block("entry")
			if !tt.useFirst {
				bb.Store(ir.OpaqueOperand("1"), x)
			}
			bb.Arith(ir.OpAdd, bb.Load(x).Value(), bb.Load(y).Value())
			if tt.useFirst {
				bb.Store(ir.OpaqueOperand("1"), x)
			}
			bb.Return()

			res := Analyze(b.Function(), Options{})
			assert.Equal(t, []string{"x"}, res.Kill("entry"))
			assert.Equal(t, tt.wantUEVar, res.UEVar("entry"))
			assert.Empty(t, res.LiveOut("entry"))
		})
	}
}

func TestAnalyze_Loop(t *testing.T) {
	for _, order := range allOrders {
		t.Run(order.String(), func(t *testing.T) {
			res := Analyze(loopFunction(), Options{Order: order})

			assert.Equal(t, []string{"x", "n"}, res.LiveOut("body"), spew.Sdump(res.Facts))
			assert.Equal(t, []string{"x", "n"}, res.LiveOut("entry"))
			assert.Empty(t, res.LiveOut("exit"))
			assert.Empty(t, res.UEVar("entry"))
			assert.Equal(t, []string{"x"}, res.Kill("entry"))
		})
	}
}

func TestAnalyze_Diamond(t *testing.T) {
	res := Analyze(diamondFunction(), Options{})

	assert.Equal(t, []string{"x", "y", "z"}, res.LiveOut("entry"))
	assert.Equal(t, []string{"z"}, res.LiveOut("left"))
	assert.Equal(t, []string{"z"}, res.LiveOut("right"))
	assert.Empty(t, res.LiveOut("join"))
	assert.Equal(t, []string{"z"}, res.UEVar("join"))
}

func TestAnalyze_KillBlocksPropagation(t *testing.T) {
	res := Analyze(shadowFunction(), Options{})

	assert.Equal(t, []string{"y"}, res.LiveOut("entry"), "x is killed in next before its read")
	assert.Equal(t, []string{"x"}, res.Kill("next"))
}

func TestAnalyze_Unreachable(t *testing.T) {
	for _, order := range allOrders {
		t.Run(order.String(), func(t *testing.T) {
			res := Analyze(unreachableFunction(), Options{Order: order})
			assert.Equal(t, []string{"x"}, res.LiveOut("entry"))
			assert.Equal(t, []string{"x"}, res.LiveOut("dead"))
		})
	}
}

func TestAnalyze_Empty(t *testing.T) {
	res := Analyze(&ir.Function{Name: "test"}, Options{})
	assert.Equal(t, 0, res.Facts.Len())
	assert.Equal(t, 1, res.Stats.Sweeps)
	assert.Nil(t, res.LiveOut("entry"))
}

func TestAnalyze_MissingBlock(t *testing.T) {
	res := Analyze(loopFunction(), Options{})
	assert.Nil(t, res.UEVar("nope"))
	assert.Nil(t, res.Kill("nope"))
	assert.Nil(t, res.LiveOut("nope"))
}

// =============================================================================
// Solver properties
// =============================================================================

func TestSolver_FixpointEquation(t *testing.T) {
	for name, fn := range allFixtures() {
		for _, order := range allOrders {
			t.Run(name+"/"+order.String(), func(t *testing.T) {
				g, facts := classified(fn, PolicyClassic)
				NewSolver(g, facts, order).Solve()

				for _, b := range fn.Blocks {
					want := NewSlotSet()
					for _, s := range g.Succs(b.ID) {
						want.AddAll(facts.Exposed(s))
					}
					assert.True(t, want.Equal(facts.LiveOut(b.ID)),
						"LIVEOUT(%s) = %s, want %s", b.Name(), facts.LiveOut(b.ID), want)
				}
			})
		}
	}
}

func TestSolver_ExitBlocksStayEmpty(t *testing.T) {
	for name, fn := range allFixtures() {
		t.Run(name, func(t *testing.T) {
			g, facts := classified(fn, PolicyClassic)
			NewSolver(g, facts, OrderReverse).Solve()

			for _, b := range fn.Blocks {
				if len(g.Succs(b.ID)) == 0 {
					assert.Empty(t, facts.LiveOut(b.ID), "LIVEOUT(%s)", b.Name())
				}
			}
		})
	}
}

func TestSolver_Monotone(t *testing.T) {
	for name, fn := range allFixtures() {
		t.Run(name, func(t *testing.T) {
			g, facts := classified(fn, PolicyClassic)
			s := NewSolver(g, facts, OrderProgram)

			prev := snapshot(facts)
			for i := 0; i < len(fn.Blocks)*len(fn.Slots)+1; i++ {
				changed := s.Sweep()
				next := snapshot(facts)
				for b := range next {
					assert.True(t, prev[b].SubsetOf(next[b]), "sweep %d shrank LIVEOUT(%d)", i, b)
				}
				prev = next
				if !changed {
					return
				}
			}
			t.Fatalf("no convergence within the lattice height")
		})
	}
}

func TestSolver_OrderIndependent(t *testing.T) {
	for name, fn := range allFixtures() {
		t.Run(name, func(t *testing.T) {
			var want []SlotSet
			for _, order := range allOrders {
				g, facts := classified(fn, PolicyClassic)
				NewSolver(g, facts, order).Solve()

				got := snapshot(facts)
				if want == nil {
					want = got
					continue
				}
				for b := range got {
					assert.True(t, want[b].Equal(got[b]), "%s: LIVEOUT(%d) = %s, want %s", order, b, got[b], want[b])
				}
			}
		})
	}
}

func TestSolver_Idempotent(t *testing.T) {
	for name, fn := range allFixtures() {
		t.Run(name, func(t *testing.T) {
			g, facts := classified(fn, PolicyClassic)
			s := NewSolver(g, facts, OrderReverse)
			s.Solve()
			before := snapshot(facts)

			assert.False(t, s.Sweep(), "an extra sweep after convergence changes nothing")
			assert.Equal(t, before, snapshot(facts))
			assert.Equal(t, Stats{Sweeps: 1}, s.Solve())
		})
	}
}

func TestSolver_Deterministic(t *testing.T) {
	for name := range allFixtures() {
		t.Run(name, func(t *testing.T) {
			first := Analyze(allFixtures()[name], Options{})
			second := Analyze(allFixtures()[name], Options{})
			require.Equal(t, first.Stats, second.Stats)
			assert.Equal(t, snapshot(first.Facts), snapshot(second.Facts))
		})
	}
}

func TestSolver_SweepCount(t *testing.T) {
	const n = 6

	tests := []struct {
		order Order
		want  int
	}{
		{OrderReverse, 2},
		{OrderPostorder, 2},
		{OrderProgram, n},
	}

	for _, tt := range tests {
		t.Run(tt.order.String(), func(t *testing.T) {
			fn := chainFunction(n)
			g, facts := classified(fn, PolicyClassic)
			st := NewSolver(g, facts, tt.order).Solve()

			assert.Equal(t, tt.want, st.Sweeps)
			assert.LessOrEqual(t, st.Sweeps, len(fn.Blocks)*len(fn.Slots)+1)
			for i := 0; i < n-1; i++ {
				assert.True(t, facts.LiveOut(ir.BlockID(i)).Has(0), "LIVEOUT(%d)", i)
			}
		})
	}
}

func TestSolver_InvalidOrderFallsBackToReverse(t *testing.T) {
	fn := chainFunction(3)
	g, facts := classified(fn, PolicyClassic)
	s := NewSolver(g, facts, Order(99))
	assert.Equal(t, []ir.BlockID{2, 1, 0}, s.Order())
}

func TestSolver_Orders(t *testing.T) {
	fn := loopFunction()
	g, facts := classified(fn, PolicyClassic)

	assert.Equal(t, []ir.BlockID{2, 1, 0}, NewSolver(g, facts, OrderReverse).Order())
	assert.Equal(t, []ir.BlockID{0, 1, 2}, NewSolver(g, facts, OrderProgram).Order())
	assert.Equal(t, []ir.BlockID{2, 1, 0}, NewSolver(g, facts, OrderPostorder).Order())
}

func TestSolver_LeavesLocalFactsAlone(t *testing.T) {
	fn := diamondFunction()
	g, facts := classified(fn, PolicyClassic)

	var ue, kill []SlotSet
	for i := 0; i < facts.Len(); i++ {
		ue = append(ue, facts.UEVar(ir.BlockID(i)).Clone())
		kill = append(kill, facts.Kill(ir.BlockID(i)).Clone())
	}
	NewSolver(g, facts, OrderReverse).Solve()

	for i := 0; i < facts.Len(); i++ {
		assert.Equal(t, ue[i], facts.UEVar(ir.BlockID(i)))
		assert.Equal(t, kill[i], facts.Kill(ir.BlockID(i)))
	}
}
