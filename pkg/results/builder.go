package results

import (
	"github.com/pcranleigh/lintview/pkg/messages"
	"github.com/pcranleigh/lintview/pkg/model"
)

// Builder turns a scan snapshot into a result tree. The catalog is injected
// so label wording is swappable without touching build logic.
type Builder struct {
	catalog messages.Catalog
}

// NewBuilder creates a builder using the given catalog, or the default
// English catalog when nil.
func NewBuilder(catalog messages.Catalog) *Builder {
	if catalog == nil {
		catalog = messages.Default()
	}
	return &Builder{catalog: catalog}
}

// Build constructs a fresh tree from the snapshot. A nil or empty snapshot
// is the first-class "no results" state: a lone visible root with the
// no-results label and no children. Files whose problem list is empty
// contribute no node.
//
// Build never reuses nodes from a previous tree; every call returns a fully
// fresh structure, so no stale node can survive a display update.
func (b *Builder) Build(snapshot *model.ScanResults) *Tree {
	if snapshot.IsEmpty() {
		return NewTree(b.catalog.Format(messages.MsgNoResults))
	}

	tree := NewTree("")
	root := tree.VisibleRoot()

	total := 0
	fileCount := 0
	for _, file := range snapshot.Files() {
		problems := snapshot.Problems(file)
		if len(problems) == 0 {
			continue
		}

		fileNode := &Node{
			Kind:         NodeFileSummary,
			Label:        b.catalog.Format(messages.MsgFileResult, file.DisplayName(), len(problems)),
			File:         file,
			ProblemCount: len(problems),
		}
		for _, p := range problems {
			fileNode.addChild(&Node{
				Kind:    NodeProblemEntry,
				Label:   b.problemLabel(p),
				File:    file,
				Problem: p,
			})
		}

		root.addChild(fileNode)
		total += len(problems)
		fileCount++
	}

	if fileCount == 0 {
		root.Label = b.catalog.Format(messages.MsgNoResults)
	} else {
		root.Label = b.catalog.Format(messages.MsgScanSummary, total, fileCount)
	}
	return tree
}

func (b *Builder) problemLabel(p *model.Problem) string {
	if p.Line > 0 {
		return b.catalog.Format(messages.MsgProblem, string(p.Severity), p.Line, p.Message)
	}
	return b.catalog.Format(messages.MsgProblemNoPos, string(p.Severity), p.Message)
}
