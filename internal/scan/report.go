package scan

import (
	"fmt"
	"strings"

	"gubed/internal/model"
)

// GenerateReport renders scan results as plain text. Verbose adds the
// matched source line under each entry.
func GenerateReport(root string, breakpoints []model.Breakpoint, verbose bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Gubed breakpoint report (v%s)\n", model.Version)
	fmt.Fprintf(&b, "Root: %s\n", root)
	b.WriteString(strings.Repeat("=", 40))
	b.WriteString("\n\n")

	if len(breakpoints) == 0 {
		b.WriteString("No breakpoints found.\n")
		return b.String()
	}

	active := 0
	counts := make(map[model.Kind]int)
	width := len(fmt.Sprint(len(breakpoints)))
	for i, bp := range breakpoints {
		if !bp.Commented() {
			active++
		}
		counts[bp.Type]++
		fmt.Fprintf(&b, "%*d. %s %s %s\n", width, i+1, model.StatusIcon(bp), bp.Type, bp.Location())
		if verbose {
			fmt.Fprintf(&b, "%*s    %s\n", width, "", bp.Content)
		}
	}

	fmt.Fprintf(&b, "\nTotal: %d (%d active, %d commented)\n", len(breakpoints), active, len(breakpoints)-active)
	for _, rule := range DefaultPatterns() {
		if n := counts[rule.Kind]; n > 0 {
			fmt.Fprintf(&b, "  %-20s %d\n", rule.Kind, n)
			delete(counts, rule.Kind)
		}
	}
	// Kinds contributed by user patterns, in first-seen order.
	for _, bp := range breakpoints {
		if n := counts[bp.Type]; n > 0 {
			fmt.Fprintf(&b, "  %-20s %d\n", bp.Type, n)
			delete(counts, bp.Type)
		}
	}
	b.WriteString("\nLegend: [ ] = Active, [#] = Commented\n")
	return b.String()
}
