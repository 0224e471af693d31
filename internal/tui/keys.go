package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"gubed/internal/session"
)

// KeyMap defines the key bindings for the application
type KeyMap struct {
	// Navigation
	Up   key.Binding
	Down key.Binding
	Goto key.Binding

	// Actions
	View      key.Binding
	Toggle    key.Binding
	Comment   key.Binding
	Uncomment key.Binding
	Delete    key.Binding
	Refresh   key.Binding
	Help      key.Binding
	Quit      key.Binding
	Interrupt key.Binding

	// Confirmation
	Yes key.Binding
	No  key.Binding

	// Goto input
	Enter  key.Binding
	Escape key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Goto: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g/1-9", "goto"),
		),
		View: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "view"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle"),
		),
		Comment: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "comment"),
		),
		Uncomment: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "uncomment"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Interrupt: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "interrupt"),
		),
		Yes: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "yes"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "N"),
			key.WithHelp("n", "no"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// ShortHelp returns a short help string
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.Goto, k.View, k.Toggle, k.Delete, k.Refresh, k.Quit, k.Help}
}

// FullHelp returns the full help string
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Goto},
		{k.View, k.Toggle, k.Comment, k.Uncomment},
		{k.Delete, k.Refresh, k.Help, k.Quit},
	}
}

// Command translates a key press into a session command.
func (k KeyMap) Command(msg tea.KeyMsg) session.Command {
	raw := msg.String()
	if len(raw) == 1 && raw[0] >= '1' && raw[0] <= '9' {
		return session.Select(int(raw[0] - '0'))
	}

	bindings := []struct {
		binding key.Binding
		kind    session.CommandKind
	}{
		{k.Down, session.CmdDown},
		{k.Up, session.CmdUp},
		{k.Goto, session.CmdGoto},
		{k.View, session.CmdView},
		{k.Toggle, session.CmdToggle},
		{k.Comment, session.CmdComment},
		{k.Uncomment, session.CmdUncomment},
		{k.Delete, session.CmdDelete},
		{k.Refresh, session.CmdRefresh},
		{k.Help, session.CmdHelp},
		{k.Quit, session.CmdQuit},
		{k.Yes, session.CmdYes},
		{k.No, session.CmdNo},
	}
	for _, b := range bindings {
		if key.Matches(msg, b.binding) {
			return session.Command{Kind: b.kind, Raw: raw}
		}
	}
	return session.Command{Kind: session.CmdUnknown, Raw: raw}
}
