package scan

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gubed/internal/model"
)

// maxLineSize bounds a single line; longer lines (usually binary data) fail the file.
const maxLineSize = 10 * 1024 * 1024

// WarnFunc receives files that could not be scanned.
type WarnFunc func(path string, err error)

// Scanner walks a source tree and collects breakpoints.
type Scanner struct {
	root   string
	config Config
	warn   WarnFunc
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithWarnFunc replaces the default warning output.
func WithWarnFunc(fn WarnFunc) Option {
	return func(s *Scanner) {
		s.warn = fn
	}
}

// NewScanner creates a Scanner rooted at root, resolved to an absolute path.
func NewScanner(root string, config Config, opts ...Option) (*Scanner, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root %s: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("scan root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan root %s is not a directory", abs)
	}

	s := &Scanner{
		root:   abs,
		config: config,
		warn: func(path string, err error) {
			log.Printf("Warning: Could not scan %s: %v", path, err)
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Root returns the absolute scan root.
func (s *Scanner) Root() string {
	return s.root
}

// Config returns the configuration the scanner was built with.
func (s *Scanner) Config() Config {
	return s.config
}

// Scan walks the tree and returns every breakpoint, sorted by location.
// Unreadable files are reported through the warn function and skipped.
func (s *Scanner) Scan() []model.Breakpoint {
	var breakpoints []model.Breakpoint

	filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		rel, relErr := filepath.Rel(s.root, path)
		if relErr != nil {
			rel = path
		}
		if err != nil {
			s.warn(rel, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if s.config.Skipped(rel) {
				return fs.SkipDir
			}
			return nil
		}

		if !s.admit(path, d) {
			return nil
		}

		found, err := s.scanFile(path, filepath.ToSlash(rel))
		if err != nil {
			s.warn(rel, err)
			return nil
		}
		breakpoints = append(breakpoints, found...)
		return nil
	})

	sort.SliceStable(breakpoints, func(i, j int) bool {
		return model.Less(breakpoints[i], breakpoints[j])
	})
	return breakpoints
}

// admit reports whether a file should be scanned. The extension check runs
// first so most files are never opened.
func (s *Scanner) admit(path string, d fs.DirEntry) bool {
	if !d.Type().IsRegular() && d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	if s.config.HasSourceExtension(d.Name()) {
		return true
	}
	if s.config.ShebangMarker == "" {
		return false
	}
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() || info.Mode().Perm()&0111 == 0 {
		return false
	}
	return hasShebang(path, s.config.ShebangMarker)
}

func hasShebang(path, marker string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	first, err := bufio.NewReader(io.LimitReader(f, 4096)).ReadString('\n')
	if err != nil && err != io.EOF {
		return false
	}
	return strings.Contains(first, marker)
}

// scanFile streams one file line by line. Any read error discards the
// whole file's results.
func (s *Scanner) scanFile(path, rel string) ([]model.Breakpoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var found []model.Breakpoint
	scanner := bufio.NewScanner(f)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, maxLineSize)

	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if kind, ok := s.config.Patterns.Classify(line); ok {
			found = append(found, model.NewBreakpoint(rel, lineNumber, line, kind))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return found, nil
}
