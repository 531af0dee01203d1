// Package messages supplies the display strings used by the result tree.
//
// The tree builder never hard-codes label text; it asks a Catalog for a
// formatted string by symbolic key. Swapping the catalog changes label
// wording only, never control flow, which keeps tests deterministic and
// leaves room for translated catalogs.
package messages

import "fmt"

// Message keys understood by the default catalog.
const (
	MsgNoResults    = "results.none"           // no args
	MsgScanSummary  = "results.summary"        // total problems, file count
	MsgFileResult   = "results.file"           // display name, problem count
	MsgProblem      = "results.problem"        // severity, line, message
	MsgProblemNoPos = "results.problem-nopos" // severity, message
)

// Catalog maps a message key plus positional arguments to display text.
type Catalog interface {
	Format(key string, args ...any) string
}

// catalog is the built-in English catalog.
type catalog struct {
	formats map[string]string
}

// Default returns the built-in English catalog.
func Default() Catalog {
	return &catalog{formats: map[string]string{
		MsgNoResults:    "No problems found",
		MsgScanSummary:  "%d problems in %d files",
		MsgFileResult:   "%s (%d problems)",
		MsgProblem:      "[%s] line %d: %s",
		MsgProblemNoPos: "[%s] %s",
	}}
}

// Format renders the keyed format string with args. Unknown keys render as
// the key itself so a miswired catalog stays visible instead of panicking.
func (c *catalog) Format(key string, args ...any) string {
	format, ok := c.formats[key]
	if !ok {
		return key
	}
	return fmt.Sprintf(format, args...)
}

// Static is a Catalog backed by a caller-supplied format map, mainly for
// tests and embedded alternate wordings.
type Static map[string]string

func (s Static) Format(key string, args ...any) string {
	format, ok := s[key]
	if !ok {
		return key
	}
	return fmt.Sprintf(format, args...)
}
