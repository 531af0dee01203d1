// Package model defines the data types shared between the scan-report
// loader, the result tree, and the UI: scanned files, problems, and the
// ordered results mapping produced by one scan.
package model

import (
	"fmt"
	"path/filepath"
)

// Severity classifies a reported problem.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// severityRank orders severities for display: errors first.
func severityRank(s Severity) int {
	switch s {
	case SeverityError:
		return 0
	case SeverityWarning:
		return 1
	case SeverityInfo:
		return 2
	default:
		return 3
	}
}

// Rank returns a numeric order for the severity; lower sorts first.
func (s Severity) Rank() int { return severityRank(s) }

// ScannedFile identifies one source file included in a scan. The Path is
// the identity; DisplayName is what the tree shows. Handles are owned by
// the results snapshot and stay valid for the lifetime of the displayed
// tree.
type ScannedFile struct {
	Path string // absolute or report-relative path, the file's identity
}

// DisplayName returns the name shown in file-summary labels.
func (f *ScannedFile) DisplayName() string {
	if f == nil || f.Path == "" {
		return ""
	}
	return filepath.Base(f.Path)
}

// Problem is one issue reported against a scanned file. Offset is the byte
// offset of the problem within the file; when a report only carries
// line/column the loader resolves the offset lazily on first use.
type Problem struct {
	File     *ScannedFile
	RuleID   string
	Message  string
	Severity Severity

	Line   int // 1-based, 0 when unknown
	Column int // 1-based, 0 when unknown

	offset   int
	resolved bool

	// resolveOffset computes the byte offset from Line/Column when the
	// report did not carry one. Nil means offset was set directly.
	resolveOffset func(p *Problem) int
}

// NewProblem creates a problem with a known byte offset.
func NewProblem(file *ScannedFile, rule, message string, severity Severity, offset int) *Problem {
	return &Problem{
		File:     file,
		RuleID:   rule,
		Message:  message,
		Severity: severity,
		offset:   offset,
		resolved: true,
	}
}

// NewProblemAt creates a problem addressed by line/column whose byte offset
// is resolved lazily via resolve. A nil resolve leaves the offset at 0.
func NewProblemAt(file *ScannedFile, rule, message string, severity Severity, line, column int, resolve func(p *Problem) int) *Problem {
	return &Problem{
		File:          file,
		RuleID:        rule,
		Message:       message,
		Severity:      severity,
		Line:          line,
		Column:        column,
		resolveOffset: resolve,
	}
}

// Offset returns the problem's byte offset within its file, resolving it
// from line/column on first call if necessary.
func (p *Problem) Offset() int {
	if p.resolved {
		return p.offset
	}
	if p.resolveOffset != nil {
		p.offset = p.resolveOffset(p)
	}
	p.resolved = true
	return p.offset
}

// Location renders the problem's position as "name:line" for display and
// clipboard use. Falls back to the bare name when the line is unknown.
func (p *Problem) Location() string {
	if p == nil || p.File == nil {
		return ""
	}
	if p.Line > 0 {
		return fmt.Sprintf("%s:%d", p.File.Path, p.Line)
	}
	return p.File.Path
}

// ScanResults is the immutable snapshot produced by one scan: an ordered
// mapping of scanned file to its problem list. Iteration order is insertion
// order, so callers that want stable trees add files in a stable order.
// The zero value and nil are both valid empty snapshots.
type ScanResults struct {
	order    []*ScannedFile
	problems map[string][]*Problem
}

// NewScanResults returns an empty snapshot.
func NewScanResults() *ScanResults {
	return &ScanResults{problems: make(map[string][]*Problem)}
}

// Add appends problems for a file. Repeated calls for the same file extend
// its list without disturbing the file's position in the iteration order.
func (r *ScanResults) Add(file *ScannedFile, problems ...*Problem) {
	if file == nil {
		return
	}
	if r.problems == nil {
		r.problems = make(map[string][]*Problem)
	}
	if _, seen := r.problems[file.Path]; !seen {
		r.order = append(r.order, file)
	}
	r.problems[file.Path] = append(r.problems[file.Path], problems...)
}

// Files returns the scanned files in iteration order. The returned slice is
// shared; callers must not modify it.
func (r *ScanResults) Files() []*ScannedFile {
	if r == nil {
		return nil
	}
	return r.order
}

// Problems returns the ordered problem list for a file, nil when the file
// was not scanned or reported nothing.
func (r *ScanResults) Problems(file *ScannedFile) []*Problem {
	if r == nil || file == nil {
		return nil
	}
	return r.problems[file.Path]
}

// Len returns the number of files in the snapshot, including files with
// empty problem lists.
func (r *ScanResults) Len() int {
	if r == nil {
		return 0
	}
	return len(r.order)
}

// TotalProblems sums the problem counts across all files.
func (r *ScanResults) TotalProblems() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, probs := range r.problems {
		n += len(probs)
	}
	return n
}

// IsEmpty reports whether the snapshot carries no files at all. A snapshot
// with files but only empty problem lists is not empty, but still builds a
// tree with no file nodes.
func (r *ScanResults) IsEmpty() bool {
	return r == nil || len(r.order) == 0
}
