package model

// Centralized status markers shared by the TUI, the plain prompt and reports
const (
	IconActive    = "[ ]" // Breakpoint will fire
	IconCommented = "[#]" // Breakpoint is commented out
	IconCursor    = ">"   // Current selection
	IconTarget    = ">>>" // Breakpoint line inside a context window
)

// StatusIcon returns the legend marker for a breakpoint.
func StatusIcon(b Breakpoint) string {
	if b.Commented() {
		return IconCommented
	}
	return IconActive
}
