package dataflow

import (
	"sort"

	"github.com/oleiade/lane"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/multi"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/graph/traverse"

	"github.com/mpyw/liveness/internal/ir"
)

// =============================================================================
// Graph
//
// Graph is the control-flow graph seen by the solver: nodes are block
// handles, edges are the successor relation. It is decoupled from any host
// IR, so the solver can run against synthetic graphs.
//
// A multigraph is used because real CFGs contain self-loops
// (`for { x++ }` jumps back to its own block) and duplicate edges
// (`if c goto 1 else 1`).
// =============================================================================

// Graph is a directed graph over block handles.
type Graph struct {
	g     *multi.DirectedGraph
	succs [][]ir.BlockID // deduplicated, sorted; rebuilt lazily
	dirty bool
}

// NewGraph returns a graph with n blocks and no edges.
func NewGraph(n int) *Graph {
	g := multi.NewDirectedGraph()
	for i := 0; i < n; i++ {
		g.AddNode(multi.Node(i))
	}
	return &Graph{g: g, dirty: true}
}

// GraphOf returns the control-flow graph of fn.
func GraphOf(fn *ir.Function) *Graph {
	g := NewGraph(len(fn.Blocks))
	for _, b := range fn.Blocks {
		for _, s := range b.Succs {
			g.AddEdge(b.ID, s)
		}
	}
	return g
}

// Len returns the number of blocks.
func (g *Graph) Len() int {
	return g.g.Nodes().Len()
}

// AddEdge adds the control transfer from -> to.
func (g *Graph) AddEdge(from, to ir.BlockID) {
	g.g.SetLine(g.g.NewLine(multi.Node(from), multi.Node(to)))
	g.dirty = true
}

// Succs returns the distinct successors of b ordered by ID.
func (g *Graph) Succs(b ir.BlockID) []ir.BlockID {
	if g.dirty {
		g.rebuild()
	}
	return g.succs[b]
}

func (g *Graph) rebuild() {
	n := g.Len()
	g.succs = make([][]ir.BlockID, n)
	for i := 0; i < n; i++ {
		nodes := graph.NodesOf(g.g.From(int64(i)))
		succs := make([]ir.BlockID, len(nodes))
		for j, node := range nodes {
			succs[j] = ir.BlockID(node.ID())
		}
		sort.Slice(succs, func(a, b int) bool {
			return succs[a] < succs[b]
		})
		g.succs[i] = succs
	}
	g.dirty = false
}

// Reachable returns the set of blocks reachable from entry, entry included.
func (g *Graph) Reachable(entry ir.BlockID) map[ir.BlockID]bool {
	reached := make(map[ir.BlockID]bool)
	if g.Len() == 0 {
		return reached
	}
	w := traverse.DepthFirst{
		Visit: func(n graph.Node) {
			reached[ir.BlockID(n.ID())] = true
		},
	}
	w.Walk(g.g, multi.Node(entry), nil)
	return reached
}

// LoopBlocks returns the blocks that lie on a cycle: members of a strongly
// connected component of two or more blocks, and blocks that jump to
// themselves.
func (g *Graph) LoopBlocks() map[ir.BlockID]bool {
	loops := make(map[ir.BlockID]bool)
	for _, scc := range topo.TarjanSCC(g.g) {
		if len(scc) == 1 && !g.g.HasEdgeFromTo(scc[0].ID(), scc[0].ID()) {
			continue
		}
		for _, n := range scc {
			loops[ir.BlockID(n.ID())] = true
		}
	}
	return loops
}

// Postorder returns the blocks in depth-first postorder from entry, followed
// by the blocks unreachable from entry in reverse ID order.
//
// Example:
//
//	0 → 1 → 2
//	    ↑   │
//	    └───┘   (2 → 1 back-edge, 2 → 3 exit)
//	        ↓
//	        3
//
//	Postorder(0) = [3, 2, 1, 0]
//
// Visiting successors before predecessors is what makes this order converge
// quickly for a backward problem.
func (g *Graph) Postorder(entry ir.BlockID) []ir.BlockID {
	n := g.Len()
	order := make([]ir.BlockID, 0, n)
	if n == 0 {
		return order
	}

	visited := map[ir.BlockID]bool{entry: true}
	stack := lane.NewStack()
	stack.Push(entry)

	for !stack.Empty() {
		this := stack.Head().(ir.BlockID)
		tail := true

		// Descend into the first unvisited successor.
		for _, s := range g.Succs(this) {
			if !visited[s] {
				visited[s] = true
				stack.Push(s)
				tail = false
				break
			}
		}

		// All successors done: emit the block.
		if tail {
			order = append(order, stack.Pop().(ir.BlockID))
		}
	}

	for i := n - 1; i >= 0; i-- {
		if !visited[ir.BlockID(i)] {
			order = append(order, ir.BlockID(i))
		}
	}
	return order
}
