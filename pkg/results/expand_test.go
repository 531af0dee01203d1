package results

import (
	"reflect"
	"testing"
)

func TestExpandToDepthZeroIsNoOp(t *testing.T) {
	tree := NewBuilder(nil).Build(sampleResults())
	tree.CollapseToRoot()
	before := tree.ExpandedPaths()

	ExpandToDepth(tree.VisibleRoot(), 0)

	if !reflect.DeepEqual(before, tree.ExpandedPaths()) {
		t.Error("depth 0 expansion must not change expanded paths")
	}
}

func TestExpandToDepthLevels(t *testing.T) {
	tree := NewBuilder(nil).Build(sampleResults())
	tree.CollapseToRoot()

	// Depth 1 expands only the visible root itself.
	ExpandToDepth(tree.VisibleRoot(), 1)
	paths := tree.ExpandedPaths()
	if !paths[""] {
		t.Error("visible root should be expanded at depth 1")
	}
	for _, fn := range tree.FileNodes() {
		if fn.Expanded {
			t.Error("file nodes should stay collapsed at depth 1")
		}
	}

	// Depth 2 reaches the file level.
	ExpandToDepth(tree.VisibleRoot(), 2)
	for _, fn := range tree.FileNodes() {
		if !fn.Expanded {
			t.Error("file nodes should be expanded at depth 2")
		}
	}
}

func TestExpandToDepthIdempotent(t *testing.T) {
	for depth := 0; depth <= DefaultExpandDepth; depth++ {
		tree := NewBuilder(nil).Build(sampleResults())
		tree.CollapseToRoot()

		ExpandToDepth(tree.VisibleRoot(), depth)
		once := tree.ExpandedPaths()
		ExpandToDepth(tree.VisibleRoot(), depth)
		twice := tree.ExpandedPaths()

		if !reflect.DeepEqual(once, twice) {
			t.Errorf("depth %d: expansion not idempotent: %v vs %v", depth, once, twice)
		}
	}
}

func TestCollapseToRoot(t *testing.T) {
	tree := NewBuilder(nil).Build(sampleResults())
	tree.ExpandAll()

	tree.CollapseToRoot()

	paths := tree.ExpandedPaths()
	if len(paths) != 1 || !paths[""] {
		t.Errorf("only the visible root should stay expanded, got %v", paths)
	}
}

func TestCollapseEmptyTree(t *testing.T) {
	tree := NewBuilder(nil).Build(nil)
	tree.CollapseToRoot()
	if !tree.VisibleRoot().Expanded {
		t.Error("visible root must remain expanded on an empty tree")
	}
}

func TestExpandNilStart(t *testing.T) {
	// Must not panic.
	ExpandToDepth(nil, 3)
}

func TestWalkOrder(t *testing.T) {
	tree := NewBuilder(nil).Build(sampleResults())

	var kinds []NodeKind
	tree.Walk(func(n *Node) bool {
		kinds = append(kinds, n.Kind)
		return true
	})

	// Depth-first: root, fileA, its two problems, fileB, its problem.
	want := []NodeKind{NodeRootLabel, NodeFileSummary, NodeProblemEntry, NodeProblemEntry, NodeFileSummary, NodeProblemEntry}
	if !reflect.DeepEqual(kinds, want) {
		t.Errorf("walk order %v, want %v", kinds, want)
	}
}

func TestWalkEarlyStop(t *testing.T) {
	tree := NewBuilder(nil).Build(sampleResults())
	visited := 0
	tree.Walk(func(n *Node) bool {
		visited++
		return visited < 2
	})
	if visited != 2 {
		t.Errorf("walk should stop after fn returns false, visited %d", visited)
	}
}
