package results

import (
	"strconv"
	"strings"
)

// DefaultExpandDepth reveals the file and problem levels on initial display
// and after every rebuild.
const DefaultExpandDepth = 4

// expandItem pairs a node with its remaining expansion budget on the
// worklist. An explicit stack keeps deep or very wide result sets from
// growing the call stack.
type expandItem struct {
	node  *Node
	depth int
}

// ExpandToDepth marks every node reachable from start within depth levels
// as expanded, depth-first, children in stored order. Depth 0 is a no-op.
// The operation is idempotent: repeating it with the same depth leaves the
// expanded-path set unchanged.
func ExpandToDepth(start *Node, depth int) {
	if start == nil || depth <= 0 {
		return
	}
	stack := []expandItem{{node: start, depth: depth}}
	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		item.node.Expanded = true
		if item.depth <= 1 {
			continue
		}
		for i := len(item.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, expandItem{node: item.node.Children[i], depth: item.depth - 1})
		}
	}
}

// ExpandAll expands every node in the tree.
func (t *Tree) ExpandAll() {
	t.Walk(func(n *Node) bool {
		n.Expanded = true
		return true
	})
}

// ExpandToDepth applies the expansion policy from the visible root.
func (t *Tree) ExpandToDepth(depth int) {
	ExpandToDepth(t.VisibleRoot(), depth)
}

// CollapseToRoot collapses every node below the first level, leaving only
// the visible root expanded.
func (t *Tree) CollapseToRoot() {
	root := t.VisibleRoot()
	if root == nil {
		return
	}
	t.Walk(func(n *Node) bool {
		n.Expanded = n == root
		return true
	})
}

// ExpandedPaths returns the set of expanded node paths, keyed by the
// slash-joined child-index path from the visible root ("" for the root
// itself). Used to compare expansion states across operations.
func (t *Tree) ExpandedPaths() map[string]bool {
	paths := make(map[string]bool)
	t.Walk(func(n *Node) bool {
		if n.Expanded {
			paths[pathKey(n.Path())] = true
		}
		return true
	})
	return paths
}

func pathKey(path []int) string {
	if len(path) == 0 {
		return ""
	}
	parts := make([]string, len(path))
	for i, idx := range path {
		parts[i] = strconv.Itoa(idx)
	}
	return strings.Join(parts, "/")
}
