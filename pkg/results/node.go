// Package results holds the result tree: the hierarchical model built from
// one scan snapshot, plus the expansion operations that the UI applies to
// it. The package is widget-free; rendering observes the model, it never
// owns it.
package results

import "github.com/pcranleigh/lintview/pkg/model"

// NodeKind tags the variant a Node carries.
type NodeKind int

const (
	// NodeRootLabel is the informational visible root ("no results",
	// "N problems in M files").
	NodeRootLabel NodeKind = iota
	// NodeFileSummary is one scanned file with at least one problem.
	NodeFileSummary
	// NodeProblemEntry is a single reported problem, always a leaf.
	NodeProblemEntry
)

func (k NodeKind) String() string {
	switch k {
	case NodeRootLabel:
		return "root"
	case NodeFileSummary:
		return "file"
	case NodeProblemEntry:
		return "problem"
	default:
		return "unknown"
	}
}

// Node is one entry in the result tree. Nodes are value variants: the
// builder creates them fully formed and nothing mutates them after they are
// attached, except the Expanded flag which belongs to the view state.
// Identity is pointer identity; two problems with identical text are
// distinct nodes.
type Node struct {
	Kind  NodeKind
	Label string

	// Set on FileSummary and ProblemEntry nodes. A node with both File and
	// Problem is navigable; anything else is informational.
	File    *model.ScannedFile
	Problem *model.Problem

	// ProblemCount is the aggregate on FileSummary nodes.
	ProblemCount int

	Parent   *Node
	Children []*Node
	Depth    int // 0 = visible root

	Expanded bool
}

// Navigable reports whether selecting or activating this node can produce a
// navigation target.
func (n *Node) Navigable() bool {
	return n != nil && n.File != nil && n.Problem != nil
}

// addChild attaches child, fixing up parent and depth.
func (n *Node) addChild(child *Node) {
	child.Parent = n
	child.Depth = n.Depth + 1
	n.Children = append(n.Children, child)
}

// Path returns the node's position as a slice of child indexes from the
// visible root. The visible root's path is empty.
func (n *Node) Path() []int {
	if n == nil || n.Depth <= 0 || n.Parent == nil {
		return nil
	}
	parentPath := n.Parent.Path()
	for i, sibling := range n.Parent.Children {
		if sibling == n {
			return append(parentPath, i)
		}
	}
	return nil
}

// Tree is the result tree for one scan snapshot: a hidden root owning
// exactly one visible RootLabel node, which owns the file-summary nodes.
// The tree is exclusively owned by the controller that received the scan
// results and is only ever rebuilt wholesale, never patched.
type Tree struct {
	root *Node // hidden, never rendered
}

// NewTree creates a tree whose visible root carries the given label.
func NewTree(rootLabel string) *Tree {
	t := &Tree{root: &Node{Kind: NodeRootLabel, Depth: -1, Expanded: true}}
	t.root.addChild(&Node{Kind: NodeRootLabel, Label: rootLabel, Expanded: true})
	return t
}

// VisibleRoot returns the single top-level node shown to the user.
func (t *Tree) VisibleRoot() *Node {
	if t == nil || t.root == nil || len(t.root.Children) == 0 {
		return nil
	}
	return t.root.Children[0]
}

// FileNodes returns the file-summary nodes in display order.
func (t *Tree) FileNodes() []*Node {
	root := t.VisibleRoot()
	if root == nil {
		return nil
	}
	return root.Children
}

// Walk visits every node under (and including) the visible root in
// depth-first order, children in stored order. Walking stops early when fn
// returns false.
func (t *Tree) Walk(fn func(*Node) bool) {
	root := t.VisibleRoot()
	if root == nil {
		return
	}
	stack := []*Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(n) {
			return
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
}

// TotalProblems counts the ProblemEntry leaves in the tree.
func (t *Tree) TotalProblems() int {
	n := 0
	t.Walk(func(node *Node) bool {
		if node.Kind == NodeProblemEntry {
			n++
		}
		return true
	})
	return n
}
