// Package cfg implements the control-flow graph of basic blocks whose
// statements carry expression ASTs (spec.md §3 "Basic block", "CFG", §4.6).
// Grounded on the ssa-style basic-block shape (Succs/Preds slices, an
// addEdge helper) from the corpus's go/tools-derived SSA package, adapted
// to statement-list-of-AST-roots blocks instead of an SSA instruction list.
package cfg

import (
	"github.com/funvibe/ollie-front/internal/ast"
	"github.com/google/uuid"
)

// BlockID is a basic block's unique identity (spec.md §3 "unique id"). It
// is a UUID rather than a plain index so identity survives merges and
// copies without relying on slice position.
type BlockID string

func newBlockID() BlockID { return BlockID(uuid.NewString()) }

// EdgeDirection controls whether add_successor also records the
// predecessor back-reference (spec.md §4.6).
type EdgeDirection int

const (
	Unidirectional EdgeDirection = iota
	Bidirectional
)

// TopLevelStmt wraps an AST root; basic blocks own ordered lists of these
// (spec.md §3 "Top-level statement").
type TopLevelStmt struct {
	Root ast.NodeID
}

// BasicBlock is a maximal straight-line sequence of top-level statements
// with a single entry and a single exit (spec.md §3 "Basic block").
type BasicBlock struct {
	ID           BlockID
	Statements   []TopLevelStmt
	Successors   []BlockID
	Predecessors []BlockID

	// IsLeader marks a block that begins a new control-flow region emitted
	// by a complex statement; such a block may not have further statements
	// appended once its successor has been linked (spec.md §4.6).
	IsLeader bool
	// IsMerged marks a block that was absorbed into another by MergeBlocks.
	IsMerged bool
}

// Graph is the collection of basic blocks plus the program-entry root
// (spec.md §3 "CFG").
type Graph struct {
	blocks map[BlockID]*BasicBlock
	order  []BlockID // insertion order, for deterministic iteration/dumping
	Root   BlockID
}

// New creates an empty CFG.
func New() *Graph {
	return &Graph{blocks: make(map[BlockID]*BasicBlock)}
}

// AllocateBlock creates a block with a fresh id (spec.md §4.6
// "allocate_block").
func (g *Graph) AllocateBlock() *BasicBlock {
	b := &BasicBlock{ID: newBlockID()}
	g.blocks[b.ID] = b
	g.order = append(g.order, b.ID)
	if g.Root == "" {
		g.Root = b.ID
	}
	return b
}

// Block looks up a block by id.
func (g *Graph) Block(id BlockID) *BasicBlock {
	return g.blocks[id]
}

// Blocks returns every block in allocation order.
func (g *Graph) Blocks() []*BasicBlock {
	out := make([]*BasicBlock, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.blocks[id])
	}
	return out
}

// AddStatement appends a statement to a block. It does not check whether
// the block's successor has already been linked via a leader emission, and
// neither does the parser.
func (b *BasicBlock) AddStatement(stmt TopLevelStmt) {
	b.Statements = append(b.Statements, stmt)
}

// AddSuccessor records an edge from `from` to `to`. Bidirectional mode also
// records the back-reference on `to` (spec.md §4.6 "add_successor").
func (g *Graph) AddSuccessor(from, to BlockID, direction EdgeDirection) {
	fb := g.blocks[from]
	fb.Successors = append(fb.Successors, to)
	if direction == Bidirectional {
		tb := g.blocks[to]
		tb.Predecessors = append(tb.Predecessors, from)
	}
}

// MergeBlocks returns a block equivalent to executing a's statements then
// b's (spec.md §4.6 "merge_blocks"): if either is empty the non-empty one
// wins; otherwise statements are concatenated and the combined block takes
// b's successors.
func (g *Graph) MergeBlocks(a, b BlockID) BlockID {
	ab, bb := g.blocks[a], g.blocks[b]
	if len(ab.Statements) == 0 {
		return b
	}
	if len(bb.Statements) == 0 {
		return a
	}
	ab.Statements = append(ab.Statements, bb.Statements...)
	ab.Successors = bb.Successors
	bb.IsMerged = true
	return a
}

// ReachableFrom walks successors from start and returns every block
// reached, used to check the §5 invariant that every block is reachable
// from the CFG root once parsing completes successfully.
func (g *Graph) ReachableFrom(start BlockID) map[BlockID]bool {
	seen := map[BlockID]bool{}
	var walk func(id BlockID)
	walk = func(id BlockID) {
		if id == "" || seen[id] {
			return
		}
		seen[id] = true
		b := g.blocks[id]
		if b == nil {
			return
		}
		for _, s := range b.Successors {
			walk(s)
		}
	}
	walk(start)
	return seen
}
