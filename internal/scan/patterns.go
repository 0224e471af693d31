package scan

import (
	"fmt"
	"regexp"

	"gubed/internal/model"
)

// Rule pairs a breakpoint kind with the pattern that recognizes it.
type Rule struct {
	Kind    model.Kind
	Pattern *regexp.Regexp
}

// PatternSet is an ordered list of rules. The first matching rule wins, so
// order is part of the contract.
type PatternSet []Rule

// Every rule tolerates leading whitespace and an optional "#" so active and
// commented-out statements classify as the same kind.
const linePrefix = `^\s*(?:#\s*)?`

// DefaultPatterns returns the built-in rules in tie-break order.
func DefaultPatterns() PatternSet {
	return PatternSet{
		{model.KindPry, regexp.MustCompile(linePrefix + `binding\.pry\b`)},
		{model.KindConsole, regexp.MustCompile(linePrefix + `binding\.irb\b`)},
		{model.KindBreak, regexp.MustCompile(linePrefix + `binding\.break\b`)},
		{model.KindDebugger, regexp.MustCompile(linePrefix + `debugger\b`)},
		{model.KindByebug, regexp.MustCompile(linePrefix + `byebug\b`)},
		{model.KindRequireBreak, regexp.MustCompile(linePrefix + `(?:require\s+['"]debug['"];\s*)?binding\.break\b`)},
	}
}

// NewRule compiles a user supplied rule. The expression is anchored with the
// same optional indentation and comment prefix as the built-in rules.
func NewRule(kind, expr string) (Rule, error) {
	if kind == "" {
		return Rule{}, fmt.Errorf("pattern %q: kind is required", expr)
	}
	re, err := regexp.Compile(linePrefix + `(?:` + expr + `)`)
	if err != nil {
		return Rule{}, fmt.Errorf("pattern %s: %w", kind, err)
	}
	return Rule{Kind: model.Kind(kind), Pattern: re}, nil
}

// Classify returns the kind of the first rule matching line.
func (p PatternSet) Classify(line string) (model.Kind, bool) {
	for _, r := range p {
		if r.Pattern.MatchString(line) {
			return r.Kind, true
		}
	}
	return "", false
}
