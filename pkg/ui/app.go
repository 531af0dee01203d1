package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pcranleigh/lintview/pkg/config"
	"github.com/pcranleigh/lintview/pkg/debug"
	"github.com/pcranleigh/lintview/pkg/loader"
	"github.com/pcranleigh/lintview/pkg/model"
	"github.com/pcranleigh/lintview/pkg/navigate"
	"github.com/pcranleigh/lintview/pkg/results"
	"github.com/pcranleigh/lintview/pkg/watcher"
)

// doubleClickWindow is how close two presses on the same row must be to
// count as one activation.
const doubleClickWindow = 400 * time.Millisecond

// FileChangedMsg signals that the watched report file changed on disk.
type FileChangedMsg struct{}

// reloadedMsg carries the result of re-reading the report file.
type reloadedMsg struct {
	snapshot *model.ScanResults
	err      error
}

// editorFinishedMsg is sent when an external editor session ends.
type editorFinishedMsg struct{ err error }

// Model is the top-level bubbletea model: a result tree on the left, a
// source preview on the right, and a status bar.
type Model struct {
	theme   Theme
	tree    *TreeView
	preview *PreviewPane

	builder   *results.Builder
	navigator *navigate.Navigator
	editor    *navigate.EditorOpener

	cfg        config.Config
	reportPath string
	watcher    *watcher.Watcher

	snapshot *model.ScanResults

	width  int
	height int
	ready  bool

	statusMsg string

	lastClick  time.Time
	lastClickY int
}

// NewModel builds the application model around an initial snapshot. The
// report path is watched for changes when watching is enabled in cfg.
func NewModel(snapshot *model.ScanResults, reportPath string, cfg config.Config) Model {
	theme := DefaultTheme(lipgloss.DefaultRenderer())

	resolver := navigate.NewResolver()
	resolver.SetScrollToSource(cfg.UI.ScrollToSource)

	preview := NewPreviewPane(theme)

	m := Model{
		theme:      theme,
		tree:       NewTreeView(theme),
		preview:    preview,
		builder:    results.NewBuilder(nil),
		navigator:  navigate.NewNavigator(resolver, preview),
		editor:     &navigate.EditorOpener{Command: cfg.Editor.Command},
		cfg:        cfg,
		reportPath: reportPath,
	}
	m.DisplayResults(snapshot)

	if cfg.Watch.Enabled && reportPath != "" {
		w, err := watcher.New(reportPath, watcher.WithDebounce(200*time.Millisecond))
		if err != nil {
			debug.Log("watcher setup failed: %v", err)
		} else if err := w.Start(); err != nil {
			debug.Log("watcher start failed: %v", err)
		} else {
			m.watcher = w
		}
	}
	return m
}

// DisplayResults replaces the displayed results wholesale: the previous
// tree is discarded, a new one is built, and the default expansion policy
// is applied. Expansion state from the previous tree is not carried over.
func (m *Model) DisplayResults(snapshot *model.ScanResults) {
	m.snapshot = snapshot
	start := time.Now()
	tree := m.builder.Build(snapshot)
	tree.ExpandToDepth(m.cfg.UI.ExpandDepth)
	if debug.Enabled() {
		debug.LogTiming("display.rebuild", time.Since(start))
	}
	m.tree.Display(tree)
	m.preview.Clear()
}

// ExpandTree expands every node in the displayed tree.
func (m *Model) ExpandTree() {
	if t := m.tree.Tree(); t != nil {
		t.ExpandAll()
		m.tree.Refresh()
	}
}

// ExpandTreeToDepth applies the depth policy to the displayed tree.
func (m *Model) ExpandTreeToDepth(depth int) {
	if t := m.tree.Tree(); t != nil {
		t.ExpandToDepth(depth)
		m.tree.Refresh()
	}
}

// CollapseTree collapses the tree back to just the root row.
func (m *Model) CollapseTree() {
	if t := m.tree.Tree(); t != nil {
		t.CollapseToRoot()
		m.tree.Refresh()
		m.tree.JumpToTop()
	}
}

// SetScrollToSource switches activation navigation on or off. Selection
// previews are unaffected.
func (m *Model) SetScrollToSource(enabled bool) {
	m.cfg.UI.ScrollToSource = enabled
	m.navigator.Resolver().SetScrollToSource(enabled)
}

// ScrollToSource reports the activation-navigation toggle.
func (m *Model) ScrollToSource() bool {
	return m.navigator.Resolver().ScrollToSource()
}

// Stop releases background resources. Safe to call more than once.
func (m Model) Stop() {
	if m.watcher != nil {
		m.watcher.Stop()
	}
}

// watchCmd waits for the next change notification.
func watchCmd(w *watcher.Watcher) tea.Cmd {
	return func() tea.Msg {
		<-w.Changed()
		return FileChangedMsg{}
	}
}

// reloadCmd re-reads the report file off the UI goroutine.
func reloadCmd(path string) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		snapshot, err := loader.Load(path)
		if debug.Enabled() {
			debug.LogTiming("reload.load", time.Since(start))
		}
		return reloadedMsg{snapshot: snapshot, err: err}
	}
}

// Init starts the watch loop when a watcher is running.
func (m Model) Init() tea.Cmd {
	if m.watcher != nil {
		return watchCmd(m.watcher)
	}
	return nil
}

// Update routes messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case FileChangedMsg:
		cmds := []tea.Cmd{reloadCmd(m.reportPath)}
		if m.watcher != nil {
			cmds = append(cmds, watchCmd(m.watcher))
		}
		return m, tea.Batch(cmds...)

	case reloadedMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("Reload failed: %v", msg.err)
			return m, nil
		}
		m.DisplayResults(msg.snapshot)
		m.statusMsg = fmt.Sprintf("Reloaded: %d problems in %d files",
			msg.snapshot.TotalProblems(), msg.snapshot.Len())
		return m, nil

	case editorFinishedMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("Editor exited with error: %v", msg.err)
		} else {
			m.statusMsg = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.statusMsg = ""
	switch msg.String() {
	case "q", "ctrl+c":
		if m.watcher != nil {
			m.watcher.Stop()
		}
		return m, tea.Quit

	case "up", "k":
		m.tree.MoveUp()
		m.onSelectionChanged()
	case "down", "j":
		m.tree.MoveDown()
		m.onSelectionChanged()
	case "g", "home":
		m.tree.JumpToTop()
		m.onSelectionChanged()
	case "G", "end":
		m.tree.JumpToBottom()
		m.onSelectionChanged()

	case "enter":
		if !m.navigator.Activate(m.tree.SelectedNode()) && !m.ScrollToSource() {
			if node := m.tree.SelectedNode(); node != nil && node.Navigable() {
				m.statusMsg = "Scroll to source is off (press s to enable)"
			}
		}
	case " ":
		m.tree.ToggleExpand()
	case "+", "=":
		m.ExpandTree()
	case "-":
		m.CollapseTree()

	case "s":
		m.SetScrollToSource(!m.ScrollToSource())
		if m.ScrollToSource() {
			m.statusMsg = "Scroll to source: on"
		} else {
			m.statusMsg = "Scroll to source: off"
		}

	case "f":
		m.tree.CycleFilter()
		m.onSelectionChanged()

	case "y":
		if node := m.tree.SelectedNode(); node != nil && node.Navigable() {
			loc := node.Problem.Location()
			if err := clipboard.WriteAll(loc); err != nil {
				m.statusMsg = fmt.Sprintf("Clipboard unavailable: %v", err)
			} else {
				m.statusMsg = fmt.Sprintf("Copied %s", loc)
			}
		}

	case "e":
		if node := m.tree.SelectedNode(); node != nil && node.Navigable() {
			cmd, err := m.editor.Cmd(node.File, node.Problem.Offset())
			if err != nil {
				m.statusMsg = fmt.Sprintf("Editor unavailable: %v", err)
				return m, nil
			}
			return m, tea.ExecProcess(cmd, func(err error) tea.Msg {
				return editorFinishedMsg{err: err}
			})
		}

	case "ctrl+d", "pgdown":
		m.preview.ScrollDown(3)
	case "ctrl+u", "pgup":
		m.preview.ScrollUp(3)
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if msg.X < m.treeWidth() {
			m.tree.MoveUp()
			m.onSelectionChanged()
		} else {
			m.preview.ScrollUp(3)
		}
		return m, nil
	case tea.MouseButtonWheelDown:
		if msg.X < m.treeWidth() {
			m.tree.MoveDown()
			m.onSelectionChanged()
		} else {
			m.preview.ScrollDown(3)
		}
		return m, nil
	}

	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	// Tree rows start under the one-line header.
	x, y := msg.X, msg.Y-1
	node := m.tree.NodeAt(x, y)
	if node == nil {
		return m, nil
	}

	clicks := 1
	if time.Since(m.lastClick) <= doubleClickWindow && m.lastClickY == msg.Y {
		clicks = 2
	}
	m.lastClick = time.Now()
	m.lastClickY = msg.Y

	m.tree.SelectNode(node)
	if clicks >= navigate.ActivationClicks {
		m.navigator.OnActivate(m.tree, x, y, clicks)
	} else {
		m.onSelectionChanged()
	}
	return m, nil
}

// onSelectionChanged previews the newly selected node. Selection preview
// is never gated; only activation honors the scroll-to-source toggle.
func (m *Model) onSelectionChanged() {
	node := m.tree.SelectedNode()
	if node == nil || !node.Navigable() {
		return
	}
	m.navigator.OnSelect(node)
}

func (m Model) treeWidth() int {
	w := m.width * 45 / 100
	if w < 20 {
		w = 20
	}
	return w
}

func (m *Model) layout() {
	body := m.height - 2 // header and status bar
	if body < 1 {
		body = 1
	}
	tw := m.treeWidth()
	pw := m.width - tw - 1
	if pw < 1 {
		pw = 1
	}
	m.tree.SetSize(tw, body)
	m.preview.SetSize(pw, body)
}

// View renders the full screen.
func (m Model) View() string {
	if !m.ready {
		return "Loading…"
	}

	header := m.theme.Header.Render(truncateWidth(" lintview  "+m.reportPath, m.width, "…"))

	body := m.height - 2
	if body < 1 {
		body = 1
	}
	tw := m.treeWidth()
	pw := m.width - tw - 1

	left := m.theme.Renderer.NewStyle().
		Width(tw).Height(body).MaxHeight(body).
		Render(m.tree.View())
	sep := m.theme.MutedText.Render(strings.TrimRight(strings.Repeat("│\n", body), "\n"))
	right := m.theme.Renderer.NewStyle().
		Width(pw).Height(body).MaxHeight(body).
		Render(m.preview.View())

	content := lipgloss.JoinHorizontal(lipgloss.Top, left, sep, right)

	return header + "\n" + content + "\n" + m.statusBar()
}

func (m Model) statusBar() string {
	if m.statusMsg != "" {
		return m.theme.StatusBar.Render(truncateWidth(" "+m.statusMsg, m.width, "…"))
	}

	var parts []string
	if m.snapshot != nil && !m.snapshot.IsEmpty() {
		parts = append(parts, fmt.Sprintf("%d problems in %d files",
			m.snapshot.TotalProblems(), m.snapshot.Len()))
	}
	if f := m.tree.Filter(); f != "" {
		parts = append(parts, "filter:"+string(f))
	}
	if m.ScrollToSource() {
		parts = append(parts, "nav:on")
	} else {
		parts = append(parts, "nav:off")
	}
	parts = append(parts, "enter open · space fold · +/- all · s nav · f filter · y yank · e edit · q quit")

	return m.theme.StatusBar.Render(truncateWidth(" "+strings.Join(parts, "  │  "), m.width, "…"))
}
