package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"gubed/internal/model"
	"gubed/internal/session"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208")) // Orange

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	targetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")). // Sky Blue/Cyan
			Bold(true)
)

func (m AppModel) View() string {
	if m.Loading {
		return "\n  Scanning... please wait.\n"
	}
	if m.Empty {
		return ""
	}

	switch m.mgr.State() {
	case session.StateViewing:
		switch m.mgr.Overlay().Kind {
		case session.OverlayContext:
			return m.renderContextDialog()
		case session.OverlayHelp:
			return m.renderHelpDialog()
		}
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Gubed - Ruby Breakpoint Manager"))
	b.WriteString("\n\n")
	b.WriteString(m.renderList())
	b.WriteString("\n")

	if msg := m.mgr.Message(); msg != "" {
		b.WriteString(messageStyle.Render(msg))
		b.WriteString("\n")
	}

	switch {
	case m.mgr.State() == session.StateConfirming:
		b.WriteString(promptStyle.Render(m.mgr.Prompt()))
	case m.InputMode:
		b.WriteString(fmt.Sprintf("Go to breakpoint: %s", m.InputBuffer.View()))
	default:
		b.WriteString(m.help.View(m.keys))
	}
	return b.String()
}

// renderList draws the breakpoint rows, windowed around the cursor.
func (m AppModel) renderList() string {
	bps := m.mgr.Breakpoints()
	if len(bps) == 0 {
		return dimStyle.Render("No breakpoints found.") + "\n"
	}

	// Title, blank line, message, footer and selection line
	visibleItems := m.WindowSize.Height - 7
	if visibleItems < 1 {
		visibleItems = len(bps)
	}
	cursor := m.mgr.Cursor()
	startIdx := 0
	endIdx := len(bps)
	if len(bps) > visibleItems {
		if cursor >= visibleItems/2 {
			startIdx = cursor - (visibleItems / 2)
		}
		if startIdx+visibleItems > len(bps) {
			startIdx = len(bps) - visibleItems
		}
		endIdx = startIdx + visibleItems
	}

	var b strings.Builder
	width := len(fmt.Sprint(len(bps)))
	for i := startIdx; i < endIdx; i++ {
		bp := bps[i]
		marker := " "
		if i == cursor {
			marker = model.IconCursor
		}
		line := fmt.Sprintf("%s %*d. %s %s %s", marker, width, i+1, model.StatusIcon(bp), bp.Type, bp.Location())

		if w := m.WindowSize.Width; w > 10 {
			line = truncateLine(line, w-1)
		}

		style := normalStyle
		if i == cursor {
			style = selectedStyle
		} else if bp.Commented() {
			style = dimStyle
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Selected: %d of %d", cursor+1, len(bps))))
	b.WriteString("\n")
	return b.String()
}

func (m AppModel) dialog(title, content, footer string, border lipgloss.Color) string {
	w, h := m.WindowSize.Width, m.WindowSize.Height
	if w == 0 || h == 0 {
		return title + "\n\n" + content + "\n\n" + footer
	}
	if w < 20 || h < 10 {
		return "Window too small"
	}

	dialogWidth := w * 80 / 100
	if dialogWidth < 40 {
		dialogWidth = 40
	}
	if dialogWidth > w-4 {
		dialogWidth = w - 4
	}

	box := lipgloss.NewStyle().
		Width(dialogWidth).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Render(titleStyle.Render(title) + "\n\n" + content + "\n\n" + dimStyle.Render(footer))

	return lipgloss.Place(w, h,
		lipgloss.Center, lipgloss.Center,
		box,
	)
}

func (m AppModel) renderContextDialog() string {
	ctx := m.mgr.Overlay().Context
	title := fmt.Sprintf("Context for %s:%d", ctx.File, ctx.LineNumber)

	var content string
	if ctx.ErrorMsg != "" {
		content = messageStyle.Render(ctx.ErrorMsg)
	} else {
		var b strings.Builder
		for _, l := range ctx.Lines {
			if l.IsTarget {
				b.WriteString(targetStyle.Render(fmt.Sprintf("%s %d: %s", model.IconTarget, l.Number, l.Text)))
			} else {
				b.WriteString(fmt.Sprintf("    %d: %s", l.Number, l.Text))
			}
			b.WriteString("\n")
		}
		content = strings.TrimSuffix(b.String(), "\n")
	}
	return m.dialog(title, content, "Press any key to continue...", lipgloss.Color("63"))
}

func (m AppModel) renderHelpDialog() string {
	var b strings.Builder
	for _, e := range session.Legend {
		b.WriteString(fmt.Sprintf("  %-12s %s\n", e.Keys, e.Description))
	}
	b.WriteString("\n")
	b.WriteString(session.LegendFooter)
	return m.dialog("Commands", b.String(), "Press any key to continue...", lipgloss.Color("63"))
}

// truncateLine shortens s to at most width terminal cells, ending in "...".
func truncateLine(s string, width int) string {
	if ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "...")
}
