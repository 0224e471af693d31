package model

import (
	"fmt"
	"strings"
)

// CommentMarker is the line comment prefix of the scanned language.
const CommentMarker = "#"

// Kind identifies which debugger-invocation pattern matched a line.
type Kind string

const (
	KindPry          Kind = "pry-breakpoint"
	KindConsole      Kind = "console-breakpoint"
	KindBreak        Kind = "break-breakpoint"
	KindDebugger     Kind = "generic-debugger"
	KindByebug       Kind = "legacy-debugger"
	KindRequireBreak Kind = "debug-require-break"
)

// Breakpoint is a single source line matched by a breakpoint pattern.
// Values are produced by a scan and never modified afterwards.
type Breakpoint struct {
	File       string `json:"file"`        // Path relative to the scan root
	LineNumber int    `json:"line_number"` // 1-based line at scan time
	Content    string `json:"content"`     // Matched line, whitespace trimmed
	Type       Kind   `json:"type"`
}

// NewBreakpoint builds a Breakpoint from a raw line, trimming it for storage.
func NewBreakpoint(file string, lineNumber int, line string, kind Kind) Breakpoint {
	return Breakpoint{
		File:       file,
		LineNumber: lineNumber,
		Content:    strings.TrimSpace(line),
		Type:       kind,
	}
}

// Commented reports whether the matched line is currently inert.
func (b Breakpoint) Commented() bool {
	return strings.HasPrefix(b.Content, CommentMarker)
}

// Location returns the "file:line" identity of the breakpoint.
func (b Breakpoint) Location() string {
	return fmt.Sprintf("%s:%d", b.File, b.LineNumber)
}

// Less orders breakpoints by file, then numerically by line.
func Less(a, b Breakpoint) bool {
	if a.File != b.File {
		return a.File < b.File
	}
	return a.LineNumber < b.LineNumber
}

// Record is the exported form of a Breakpoint, carrying its derived fields.
type Record struct {
	Breakpoint
	Location  string `json:"location"`
	Commented bool   `json:"commented"`
}

// Records converts bps for output. The result is never nil.
func Records(bps []Breakpoint) []Record {
	out := make([]Record, 0, len(bps))
	for _, bp := range bps {
		out = append(out, Record{
			Breakpoint: bp,
			Location:   bp.Location(),
			Commented:  bp.Commented(),
		})
	}
	return out
}
