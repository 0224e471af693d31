package scan

import (
	"path/filepath"
	"strings"
)

// Config controls which files a Scanner admits and what it matches.
type Config struct {
	SkipDirs      []string   // Directories pruned when their relative path contains one of these
	Extensions    []string   // Source file extensions, including the dot
	ShebangMarker string     // Substring an executable's first line must contain
	Patterns      PatternSet // Rules applied to every line
}

// DefaultConfig returns the configuration for Ruby source trees.
func DefaultConfig() Config {
	return Config{
		SkipDirs:      []string{".git", "vendor", "node_modules", "tmp"},
		Extensions:    []string{".rb", ".rake", ".gemspec"},
		ShebangMarker: "ruby",
		Patterns:      DefaultPatterns(),
	}
}

// Skipped reports whether a directory, given relative to the scan root,
// must not be descended into. The root itself is never skipped.
func (c Config) Skipped(rel string) bool {
	if rel == "." || rel == "" {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, dir := range c.SkipDirs {
		if dir != "" && strings.Contains(rel, dir) {
			return true
		}
	}
	return false
}

// HasSourceExtension reports whether name ends in one of the admitted extensions.
func (c Config) HasSourceExtension(name string) bool {
	for _, ext := range c.Extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
