package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"gubed/internal/session"
)

// Changes is a source of "files changed" notifications, such as a watcher.
type Changes interface {
	Changes() <-chan struct{}
}

// AppModel holds the TUI state. The session manager owns the breakpoint
// list; this model only adds presentation state.
type AppModel struct {
	mgr     *session.Manager
	changes Changes

	// UI State
	Loading    bool
	Empty      bool // Initial scan found nothing
	WindowSize tea.WindowSizeMsg

	// Goto Input State
	InputMode   bool
	InputBuffer textinput.Model

	// A rescan requested while the manager was busy
	RefreshPending bool

	// Components
	keys KeyMap
	help help.Model
}

// InitialModel returns the initial state. changes may be nil.
func InitialModel(mgr *session.Manager, changes Changes) AppModel {
	ti := textinput.New()
	ti.Placeholder = "Breakpoint number..."
	ti.CharLimit = 6
	ti.Width = 20

	return AppModel{
		mgr:         mgr,
		changes:     changes,
		Loading:     true,
		InputBuffer: ti,
		keys:        DefaultKeyMap(),
		help:        help.New(),
	}
}

// Manager returns the session driven by this model.
func (m AppModel) Manager() *session.Manager {
	return m.mgr
}
