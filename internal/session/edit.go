package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gubed/internal/model"
)

// ErrStaleBreakpoint means the file no longer holds the breakpoint at its
// recorded line, usually because it was edited outside this session.
var ErrStaleBreakpoint = errors.New("breakpoint no longer matches file contents")

var (
	leadingSpace  = regexp.MustCompile(`^\s*`)
	commentPrefix = regexp.MustCompile(`^(\s*)` + model.CommentMarker + `\s*`)
)

// commentLine inserts "# " after the line's indentation.
func commentLine(line string) string {
	indent := leadingSpace.FindString(line)
	return indent + model.CommentMarker + " " + line[len(indent):]
}

// uncommentLine strips one comment marker and the whitespace after it.
func uncommentLine(line string) string {
	return commentPrefix.ReplaceAllString(line, "$1")
}

// splitLines splits data into lines that keep their terminators.
func splitLines(data string) []string {
	lines := strings.SplitAfter(data, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// cutEOL separates a line from its terminator.
func cutEOL(line string) (body, eol string) {
	switch {
	case strings.HasSuffix(line, "\r\n"):
		return line[:len(line)-2], "\r\n"
	case strings.HasSuffix(line, "\n"):
		return line[:len(line)-1], "\n"
	}
	return line, ""
}

// editLine loads path, checks that the breakpoint is still where the scan
// found it, and hands its line to fn. fn returns the replacement lines.
func editLine(path string, bp model.Breakpoint, fn func(body, eol string) []string) error {
	path, err := filepath.EvalSymlinks(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	lines := splitLines(string(data))
	idx := bp.LineNumber - 1
	if idx < 0 || idx >= len(lines) {
		return fmt.Errorf("%s: %w", bp.Location(), ErrStaleBreakpoint)
	}
	body, eol := cutEOL(lines[idx])
	if strings.TrimSpace(body) != bp.Content {
		return fmt.Errorf("%s: %w", bp.Location(), ErrStaleBreakpoint)
	}

	out := make([]string, 0, len(lines))
	out = append(out, lines[:idx]...)
	out = append(out, fn(body, eol)...)
	out = append(out, lines[idx+1:]...)
	return writeFileAtomic(path, []byte(strings.Join(out, "")))
}

// rewriteLine replaces the breakpoint's line in place.
func rewriteLine(path string, bp model.Breakpoint, transform func(string) string) error {
	return editLine(path, bp, func(body, eol string) []string {
		return []string{transform(body) + eol}
	})
}

// deleteLine removes the breakpoint's line; later lines shift up by one.
func deleteLine(path string, bp model.Breakpoint) error {
	return editLine(path, bp, func(string, string) []string {
		return nil
	})
}

// writeFileAtomic replaces path with data via a temp file and rename, keeping
// the original permissions.
func writeFileAtomic(path string, data []byte) (err error) {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	// Surface permission problems the way a direct write would.
	probe, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	probe.Close()

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".gubed-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), info.Mode().Perm()); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
