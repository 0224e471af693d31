package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"gubed/internal/session"
)

// MsgStart triggers the initial scan.
type MsgStart struct{}

// MsgFilesChanged indicates files under the root changed on disk.
type MsgFilesChanged struct{}

// Init starts the session and, when configured, listens for file changes.
func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{func() tea.Msg { return MsgStart{} }}
	if m.changes != nil {
		cmds = append(cmds, waitForChange(m.changes))
	}
	return tea.Batch(cmds...)
}

func waitForChange(c Changes) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-c.Changes(); !ok {
			return nil
		}
		return MsgFilesChanged{}
	}
}

// Update handles events.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.WindowSize = msg
		m.help.Width = msg.Width
		return m, nil

	case MsgStart:
		m.Loading = false
		if !m.mgr.Start() {
			m.Empty = true
			return m, tea.Quit
		}
		return m, nil

	case MsgFilesChanged:
		if !m.mgr.Refresh() {
			m.RefreshPending = true
		}
		return m, waitForChange(m.changes)

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Interrupt) {
			return m, tea.Quit
		}
		if m.Loading {
			return m, nil
		}

		if m.InputMode {
			switch {
			case key.Matches(msg, m.keys.Enter):
				m.InputMode = false
				m.InputBuffer.Blur()
				if value := strings.TrimSpace(m.InputBuffer.Value()); value != "" {
					m.mgr.Handle(session.ParseCommand("g " + value))
				}
				return m.afterCommand()
			case key.Matches(msg, m.keys.Escape):
				m.InputMode = false
				m.InputBuffer.Blur()
				m.InputBuffer.SetValue("")
				return m, nil
			}
			m.InputBuffer, cmd = m.InputBuffer.Update(msg)
			return m, cmd
		}

		command := m.keys.Command(msg)
		if command.Kind == session.CmdGoto && m.mgr.State() == session.StateBrowsing {
			m.InputMode = true
			m.InputBuffer.SetValue("")
			m.InputBuffer.Focus()
			return m, textinput.Blink
		}
		m.mgr.Handle(command)
		return m.afterCommand()
	}

	return m, cmd
}

// afterCommand quits once the manager has exited and runs any rescan that
// arrived while it was busy.
func (m AppModel) afterCommand() (tea.Model, tea.Cmd) {
	if m.mgr.State() == session.StateExited {
		return m, tea.Quit
	}
	if m.RefreshPending && m.mgr.Refresh() {
		m.RefreshPending = false
	}
	return m, nil
}
