package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"

	"github.com/pcranleigh/lintview/pkg/model"
	"github.com/pcranleigh/lintview/pkg/navigate"
)

// PreviewPane shows the source file around a problem location. It is the
// in-app navigation target: OpenAndScrollTo loads the file and centers
// the offset, so the pane satisfies navigate.Opener.
type PreviewPane struct {
	theme    Theme
	viewport viewport.Model

	path     string
	line     int
	lines    []string
	loadErr  error
	hasFile  bool
	width    int
	height   int
}

// NewPreviewPane creates an empty preview pane.
func NewPreviewPane(theme Theme) *PreviewPane {
	return &PreviewPane{
		theme:    theme,
		viewport: viewport.New(0, 0),
	}
}

// SetSize updates the pane dimensions and re-renders the content.
func (p *PreviewPane) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.viewport.Width = width
	inner := height - 1 // header line
	if inner < 1 {
		inner = 1
	}
	p.viewport.Height = inner
	p.render()
}

// OpenAndScrollTo loads the file and positions the view so the line
// containing offset is centered. Implements navigate.Opener.
func (p *PreviewPane) OpenAndScrollTo(file *model.ScannedFile, offset int) error {
	if file == nil {
		return fmt.Errorf("no file to preview")
	}
	data, err := os.ReadFile(file.Path)
	if err != nil {
		p.hasFile = false
		p.loadErr = err
		p.render()
		return fmt.Errorf("open %s: %w", file.Path, err)
	}

	p.path = file.Path
	p.lines = strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	p.line = lineForOffset(data, offset)
	p.hasFile = true
	p.loadErr = nil
	p.render()
	return nil
}

// Clear empties the pane.
func (p *PreviewPane) Clear() {
	p.hasFile = false
	p.loadErr = nil
	p.path = ""
	p.lines = nil
	p.render()
}

// Path returns the currently previewed file, empty when none.
func (p *PreviewPane) Path() string {
	if !p.hasFile {
		return ""
	}
	return p.path
}

// ScrollUp scrolls the pane content up.
func (p *PreviewPane) ScrollUp(n int) { p.viewport.LineUp(n) }

// ScrollDown scrolls the pane content down.
func (p *PreviewPane) ScrollDown(n int) { p.viewport.LineDown(n) }

func (p *PreviewPane) render() {
	if !p.hasFile {
		msg := "Select a problem to preview its source."
		if p.loadErr != nil {
			msg = "Unable to preview file."
		}
		p.viewport.SetContent(p.theme.MutedText.Render(msg))
		p.viewport.GotoTop()
		return
	}

	gutter := len(fmt.Sprintf("%d", len(p.lines)))
	var sb strings.Builder
	for i, text := range p.lines {
		lineNo := i + 1
		num := fmt.Sprintf("%*d", gutter, lineNo)
		row := num + " │ " + strings.ReplaceAll(text, "\t", "    ")
		row = truncateWidth(row, p.viewport.Width, "…")
		if lineNo == p.line {
			sb.WriteString(p.theme.Selected.Render(padRight(row, p.viewport.Width)))
		} else {
			sb.WriteString(p.theme.MutedText.Render(num) + " │ " +
				truncateWidth(strings.ReplaceAll(text, "\t", "    "), p.viewport.Width-gutter-3, "…"))
		}
		if i < len(p.lines)-1 {
			sb.WriteString("\n")
		}
	}
	p.viewport.SetContent(sb.String())

	// Center the target line in the visible window.
	top := p.line - 1 - p.viewport.Height/2
	if top < 0 {
		top = 0
	}
	p.viewport.SetYOffset(top)
}

// View renders the pane with a header line.
func (p *PreviewPane) View() string {
	header := "preview"
	if p.hasFile {
		header = fmt.Sprintf("%s:%d", p.path, p.line)
	}
	header = truncateWidth(header, p.width, "…")
	return p.theme.Header.Render(header) + "\n" + p.viewport.View()
}

// lineForOffset mirrors navigate.LineForOffset for in-memory content.
func lineForOffset(data []byte, offset int) int {
	if offset < 0 {
		offset = 0
	}
	if offset > len(data) {
		offset = len(data)
	}
	line := 1
	for _, b := range data[:offset] {
		if b == '\n' {
			line++
		}
	}
	return line
}

var _ navigate.Opener = (*PreviewPane)(nil)
