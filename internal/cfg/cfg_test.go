package cfg

import "testing"

func TestAllocateBlockSetsRootOnce(t *testing.T) {
	g := New()
	first := g.AllocateBlock()
	second := g.AllocateBlock()

	if g.Root != first.ID {
		t.Fatalf("expected the first allocated block to become root, got %s", g.Root)
	}
	if g.Root == second.ID {
		t.Fatal("expected root to stay pinned to the first block")
	}
	if len(g.Blocks()) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(g.Blocks()))
	}
}

func TestAddSuccessorDirectionality(t *testing.T) {
	g := New()
	a := g.AllocateBlock()
	b := g.AllocateBlock()
	c := g.AllocateBlock()

	g.AddSuccessor(a.ID, b.ID, Unidirectional)
	if len(b.Predecessors) != 0 {
		t.Fatal("expected a unidirectional edge not to record a predecessor back-reference")
	}

	g.AddSuccessor(a.ID, c.ID, Bidirectional)
	if len(c.Predecessors) != 1 || c.Predecessors[0] != a.ID {
		t.Fatalf("expected a bidirectional edge to record a.ID as c's predecessor, got %v", c.Predecessors)
	}
}

func TestMergeBlocksConcatenatesAndTakesSuccessors(t *testing.T) {
	g := New()
	a := g.AllocateBlock()
	b := g.AllocateBlock()
	tail := g.AllocateBlock()

	a.AddStatement(TopLevelStmt{Root: 1})
	b.AddStatement(TopLevelStmt{Root: 2})
	g.AddSuccessor(b.ID, tail.ID, Unidirectional)

	merged := g.MergeBlocks(a.ID, b.ID)
	if merged != a.ID {
		t.Fatalf("expected merge to return a's id, got %s", merged)
	}
	if len(a.Statements) != 2 {
		t.Fatalf("expected a to carry both statements after merge, got %d", len(a.Statements))
	}
	if len(a.Successors) != 1 || a.Successors[0] != tail.ID {
		t.Fatalf("expected a to inherit b's successors, got %v", a.Successors)
	}
	if !b.IsMerged {
		t.Fatal("expected b to be marked merged")
	}
}

func TestMergeBlocksEmptyOperandPassesThrough(t *testing.T) {
	g := New()
	empty := g.AllocateBlock()
	nonEmpty := g.AllocateBlock()
	nonEmpty.AddStatement(TopLevelStmt{Root: 1})

	if got := g.MergeBlocks(empty.ID, nonEmpty.ID); got != nonEmpty.ID {
		t.Fatalf("expected merge of empty+nonempty to return the nonempty id, got %s", got)
	}
	if got := g.MergeBlocks(nonEmpty.ID, empty.ID); got != nonEmpty.ID {
		t.Fatalf("expected merge of nonempty+empty to return the nonempty id, got %s", got)
	}
}

func TestReachableFromFollowsSuccessors(t *testing.T) {
	g := New()
	a := g.AllocateBlock()
	b := g.AllocateBlock()
	c := g.AllocateBlock()
	unreachable := g.AllocateBlock()

	g.AddSuccessor(a.ID, b.ID, Unidirectional)
	g.AddSuccessor(b.ID, c.ID, Unidirectional)
	g.AddSuccessor(c.ID, a.ID, Unidirectional) // a back-edge should not loop forever

	reached := g.ReachableFrom(a.ID)
	for _, id := range []BlockID{a.ID, b.ID, c.ID} {
		if !reached[id] {
			t.Fatalf("expected %s to be reachable from a", id)
		}
	}
	if reached[unreachable.ID] {
		t.Fatal("expected the unreachable block to stay unreachable")
	}
}
