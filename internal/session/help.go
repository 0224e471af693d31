package session

// HelpEntry is one row of the command legend.
type HelpEntry struct {
	Keys        string `json:"keys"`
	Description string `json:"description"`
}

// Legend lists the commands shared by every input adapter.
var Legend = []HelpEntry{
	{"j, down", "Move selection down"},
	{"k, up", "Move selection up"},
	{"g, 1-9", "Go to a specific breakpoint by number"},
	{"v, view", "Show context around breakpoint"},
	{"t, toggle", "Toggle line comment on selected breakpoint"},
	{"c, u", "Comment / uncomment selected breakpoint"},
	{"d, delete", "Delete selected breakpoint"},
	{"r, refresh", "Rescan for breakpoints"},
	{"q, quit", "Exit program"},
	{"h, ?", "Show this help"},
}

// LegendFooter explains the status markers.
const LegendFooter = "Legend: [ ] = Active, [#] = Commented"
