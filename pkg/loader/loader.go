// Package loader reads scan-report files into the results snapshot the
// tree is built from.
//
// Two report shapes are accepted:
//
//   - a bare JSON array of findings, as emitted by most scanners:
//     [{"file": "src/a.go", "rule": "unused", "message": "...", ...}]
//   - an object wrapping the findings with the full scanned-file list, so
//     clean files are representable:
//     {"scanned": ["src/a.go", "src/b.go"], "findings": [...]}
//
// Findings carry either a byte offset or a line/column pair; when only the
// latter is present the offset is resolved lazily from the file contents on
// first use.
package loader

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/pcranleigh/lintview/pkg/debug"
	"github.com/pcranleigh/lintview/pkg/model"
)

// Finding is one problem as serialized in a scan report.
type Finding struct {
	File     string `json:"file"`
	RuleID   string `json:"rule"`
	Message  string `json:"message"`
	Severity string `json:"severity,omitempty"`
	Line     int    `json:"line,omitempty"`
	Column   int    `json:"column,omitempty"`
	Offset   *int   `json:"offset,omitempty"`
}

// Report is the wrapped report shape.
type Report struct {
	Tool     string    `json:"tool,omitempty"`
	Scanned  []string  `json:"scanned,omitempty"`
	Findings []Finding `json:"findings"`
}

// Load reads and parses the report at path into a results snapshot. File
// order follows the scanned list when present, then first appearance in
// the findings. Relative file paths are resolved against the report's
// directory.
func Load(path string) (*model.ScanResults, error) {
	defer debug.LogFunc("report loaded: " + path)()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}
	return Parse(data, filepath.Dir(path))
}

// Parse decodes report bytes. baseDir anchors relative file paths; empty
// leaves them as-is.
func Parse(data []byte, baseDir string) (*model.ScanResults, error) {
	report, err := decode(data)
	if err != nil {
		return nil, err
	}

	results := model.NewScanResults()
	files := make(map[string]*model.ScannedFile)

	lookup := func(raw string) *model.ScannedFile {
		p := raw
		if baseDir != "" && !filepath.IsAbs(p) {
			p = filepath.Join(baseDir, p)
		}
		if f, ok := files[p]; ok {
			return f
		}
		f := &model.ScannedFile{Path: p}
		files[p] = f
		results.Add(f)
		return f
	}

	for _, scanned := range report.Scanned {
		lookup(scanned)
	}

	for _, finding := range report.Findings {
		if finding.File == "" {
			continue
		}
		file := lookup(finding.File)
		results.Add(file, toProblem(file, finding))
	}
	return results, nil
}

// decode accepts both the bare-array and wrapped report shapes.
func decode(data []byte) (*Report, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return &Report{}, nil
	}

	if trimmed[0] == '[' {
		var findings []Finding
		if err := json.Unmarshal(data, &findings); err != nil {
			return nil, fmt.Errorf("failed to parse findings array: %w", err)
		}
		return &Report{Findings: findings}, nil
	}

	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}
	return &report, nil
}

func toProblem(file *model.ScannedFile, finding Finding) *model.Problem {
	severity := model.Severity(finding.Severity)
	if finding.Severity == "" {
		severity = model.SeverityWarning
	}
	if finding.Offset != nil {
		p := model.NewProblem(file, finding.RuleID, finding.Message, severity, *finding.Offset)
		p.Line = finding.Line
		p.Column = finding.Column
		return p
	}
	return model.NewProblemAt(file, finding.RuleID, finding.Message, severity,
		finding.Line, finding.Column, resolveOffset)
}

// resolveOffset computes a byte offset from the problem's line/column by
// scanning its file. Unreadable files and out-of-range positions resolve
// to offset 0; navigation then opens the file at the top instead of
// failing.
func resolveOffset(p *model.Problem) int {
	if p.File == nil || p.Line <= 0 {
		return 0
	}
	data, err := os.ReadFile(p.File.Path)
	if err != nil {
		return 0
	}
	offset := 0
	line := 1
	for line < p.Line {
		next := bytes.IndexByte(data[offset:], '\n')
		if next < 0 {
			return 0
		}
		offset += next + 1
		line++
	}
	if p.Column > 1 {
		col := p.Column - 1
		lineEnd := bytes.IndexByte(data[offset:], '\n')
		if lineEnd < 0 {
			lineEnd = len(data) - offset
		}
		if col > lineEnd {
			col = lineEnd
		}
		offset += col
	}
	return offset
}
