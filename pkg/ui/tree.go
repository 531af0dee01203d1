package ui

import (
	"fmt"
	"strings"

	"github.com/pcranleigh/lintview/pkg/model"
	"github.com/pcranleigh/lintview/pkg/results"
)

// TreeView is the thin view-state over a result tree: the flattened list
// of visible rows, the cursor, and the scroll window. It owns no tree
// semantics; building and expansion live in pkg/results, and the view just
// re-flattens after they run.
type TreeView struct {
	theme Theme

	tree   *results.Tree
	flat   []*results.Node
	cursor int

	width  int
	height int
	offset int // index of the first visible row

	// filter hides problem rows of other severities. Empty shows all.
	// Filtering affects visible rows only, never the underlying tree.
	filter model.Severity
}

// NewTreeView creates an empty tree view.
func NewTreeView(theme Theme) *TreeView {
	return &TreeView{theme: theme}
}

// SetSize updates the available dimensions.
func (v *TreeView) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.ensureCursorVisible()
}

// Display replaces the displayed tree wholesale and resets the cursor.
// The caller applies the expansion policy before handing the tree over.
func (v *TreeView) Display(tree *results.Tree) {
	v.tree = tree
	v.cursor = 0
	v.offset = 0
	v.rebuildFlat()
}

// Tree returns the currently displayed tree.
func (v *TreeView) Tree() *results.Tree {
	return v.tree
}

// Refresh re-flattens after expansion state changed outside the view.
func (v *TreeView) Refresh() {
	v.rebuildFlat()
	v.ensureCursorVisible()
}

// rebuildFlat rebuilds the visible row list: a node shows when every
// ancestor up to the visible root is expanded and the severity filter
// keeps it.
func (v *TreeView) rebuildFlat() {
	v.flat = v.flat[:0]
	root := v.tree.VisibleRoot()
	if root == nil {
		return
	}
	v.flat = append(v.flat, root)
	if root.Expanded {
		for _, fileNode := range root.Children {
			v.appendVisible(fileNode)
		}
	}
	if v.cursor >= len(v.flat) {
		v.cursor = len(v.flat) - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

func (v *TreeView) appendVisible(n *results.Node) {
	if !v.nodeVisible(n) {
		return
	}
	v.flat = append(v.flat, n)
	if !n.Expanded {
		return
	}
	for _, child := range n.Children {
		v.appendVisible(child)
	}
}

// nodeVisible applies the severity filter.
func (v *TreeView) nodeVisible(n *results.Node) bool {
	if v.filter == "" {
		return true
	}
	switch n.Kind {
	case results.NodeProblemEntry:
		return n.Problem != nil && n.Problem.Severity == v.filter
	case results.NodeFileSummary:
		for _, child := range n.Children {
			if child.Problem != nil && child.Problem.Severity == v.filter {
				return true
			}
		}
		return false
	default:
		return true
	}
}

// CycleFilter advances all → error → warning → all.
func (v *TreeView) CycleFilter() {
	switch v.filter {
	case "":
		v.filter = model.SeverityError
	case model.SeverityError:
		v.filter = model.SeverityWarning
	default:
		v.filter = ""
	}
	v.rebuildFlat()
	v.ensureCursorVisible()
}

// Filter returns the active severity filter, empty for all.
func (v *TreeView) Filter() model.Severity {
	return v.filter
}

// SelectedNode returns the node under the cursor, nil when the view is
// empty.
func (v *TreeView) SelectedNode() *results.Node {
	if v.cursor >= 0 && v.cursor < len(v.flat) {
		return v.flat[v.cursor]
	}
	return nil
}

// RowCount returns the number of visible rows.
func (v *TreeView) RowCount() int {
	return len(v.flat)
}

// NodeAt maps view-relative coordinates to the node rendered on that row,
// nil when the coordinates are outside every row. Implements
// navigate.RowLocator.
func (v *TreeView) NodeAt(x, y int) *results.Node {
	if x < 0 || (v.width > 0 && x >= v.width) || y < 0 {
		return nil
	}
	idx := v.offset + y
	if y >= v.viewRows() || idx >= len(v.flat) {
		return nil
	}
	return v.flat[idx]
}

// MoveDown moves the cursor down one row.
func (v *TreeView) MoveDown() {
	if v.cursor < len(v.flat)-1 {
		v.cursor++
		v.ensureCursorVisible()
	}
}

// MoveUp moves the cursor up one row.
func (v *TreeView) MoveUp() {
	if v.cursor > 0 {
		v.cursor--
		v.ensureCursorVisible()
	}
}

// JumpToTop moves the cursor to the first row.
func (v *TreeView) JumpToTop() {
	v.cursor = 0
	v.ensureCursorVisible()
}

// JumpToBottom moves the cursor to the last row.
func (v *TreeView) JumpToBottom() {
	if len(v.flat) > 0 {
		v.cursor = len(v.flat) - 1
		v.ensureCursorVisible()
	}
}

// SelectNode moves the cursor to the given node if it is visible.
func (v *TreeView) SelectNode(node *results.Node) {
	for i, n := range v.flat {
		if n == node {
			v.cursor = i
			v.ensureCursorVisible()
			return
		}
	}
}

// ToggleExpand flips the expansion of the selected node.
func (v *TreeView) ToggleExpand() {
	node := v.SelectedNode()
	if node == nil || len(node.Children) == 0 {
		return
	}
	node.Expanded = !node.Expanded
	v.rebuildFlat()
	v.ensureCursorVisible()
}

// viewRows returns how many rows fit, reserving one line for the position
// indicator when the list overflows.
func (v *TreeView) viewRows() int {
	if v.height <= 0 {
		return len(v.flat)
	}
	rows := v.height
	if len(v.flat) > v.height {
		rows--
	}
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (v *TreeView) ensureCursorVisible() {
	rows := v.viewRows()
	if rows <= 0 {
		return
	}
	if v.cursor < v.offset {
		v.offset = v.cursor
	}
	if v.cursor >= v.offset+rows {
		v.offset = v.cursor - rows + 1
	}
	if v.offset < 0 {
		v.offset = 0
	}
}

// View renders the visible rows.
func (v *TreeView) View() string {
	if v.tree == nil || len(v.flat) == 0 {
		return v.theme.MutedText.Render("No scan loaded.")
	}

	var sb strings.Builder
	rows := v.viewRows()
	end := v.offset + rows
	if end > len(v.flat) {
		end = len(v.flat)
	}

	for i := v.offset; i < end; i++ {
		sb.WriteString(v.renderRow(v.flat[i], i == v.cursor))
		if i < end-1 {
			sb.WriteString("\n")
		}
	}

	if len(v.flat) > rows {
		sb.WriteString("\n")
		sb.WriteString(v.theme.MutedText.Render(
			fmt.Sprintf(" %d-%d of %d", v.offset+1, end, len(v.flat))))
	}
	return sb.String()
}

// renderRow renders one node as a single line, clamped to the view width.
func (v *TreeView) renderRow(n *results.Node, selected bool) string {
	width := v.width
	if width <= 0 {
		width = 80
	}

	var sb strings.Builder
	switch n.Kind {
	case results.NodeRootLabel:
		sb.WriteString(v.expandIndicator(n))
		sb.WriteString(" ")
		sb.WriteString(n.Label)
	case results.NodeFileSummary:
		sb.WriteString("  ")
		sb.WriteString(v.expandIndicator(n))
		sb.WriteString(" ")
		sb.WriteString(n.Label)
	case results.NodeProblemEntry:
		sb.WriteString("    ")
		if v.isLastChild(n) {
			sb.WriteString("└── ")
		} else {
			sb.WriteString("├── ")
		}
		if n.Problem != nil {
			sb.WriteString(SeverityIcon(n.Problem.Severity))
			sb.WriteString(" ")
		}
		sb.WriteString(n.Label)
	}

	line := truncateWidth(sb.String(), width, "…")
	line = padRight(line, width)

	if selected {
		return v.theme.Selected.Render(line)
	}
	if n.Kind == results.NodeProblemEntry && n.Problem != nil {
		return v.theme.Renderer.NewStyle().
			Foreground(v.theme.SeverityColor(n.Problem.Severity)).
			Render(line)
	}
	if n.Kind == results.NodeRootLabel {
		return v.theme.Renderer.NewStyle().Foreground(v.theme.Primary).Bold(true).Render(line)
	}
	return line
}

func (v *TreeView) expandIndicator(n *results.Node) string {
	if len(n.Children) == 0 {
		return "•"
	}
	if n.Expanded {
		return "▾"
	}
	return "▸"
}

func (v *TreeView) isLastChild(n *results.Node) bool {
	if n.Parent == nil {
		return true
	}
	siblings := n.Parent.Children
	return len(siblings) > 0 && siblings[len(siblings)-1] == n
}
