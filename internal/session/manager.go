package session

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"gubed/internal/model"
	"gubed/internal/scan"
)

// ErrInvalidRoot is returned when the scan root cannot be used.
var ErrInvalidRoot = errors.New("invalid scan root")

// State is the manager's position in its command loop.
type State int

const (
	StateEmpty      State = iota // No breakpoints known
	StateBrowsing                // List non-empty, cursor valid
	StateViewing                 // Showing context or help until acknowledged
	StateConfirming              // Waiting for a yes/no answer
	StateExited
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateBrowsing:
		return "browsing"
	case StateViewing:
		return "viewing"
	case StateConfirming:
		return "confirming"
	case StateExited:
		return "exited"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Pending is the action a Confirming manager is waiting on.
type Pending int

const (
	PendingNone Pending = iota
	PendingDelete
	PendingQuit
)

// OverlayKind tells a renderer what a Viewing manager is showing.
type OverlayKind int

const (
	OverlayNone OverlayKind = iota
	OverlayContext
	OverlayHelp
)

// Overlay is the transient content shown while Viewing.
type Overlay struct {
	Kind    OverlayKind
	Context model.LineContext
}

// Scanner produces a fresh, sorted breakpoint list.
type Scanner interface {
	Scan() []model.Breakpoint
}

// Manager owns the breakpoint list, the cursor and the last status message,
// and applies commands to them one at a time.
type Manager struct {
	root        string
	scanner     Scanner
	confirmQuit bool

	breakpoints []model.Breakpoint
	cursor      int
	message     string
	state       State
	previous    State // State to restore after Viewing/Confirming
	pending     Pending
	overlay     Overlay
	warnings    []string
}

// Option configures a Manager.
type Option func(*Manager)

// WithScanner replaces the scanner built from the scan config.
func WithScanner(s Scanner) Option {
	return func(m *Manager) {
		m.scanner = s
	}
}

// WithConfirmQuit requires quit to be entered twice in a row.
func WithConfirmQuit(confirm bool) Option {
	return func(m *Manager) {
		m.confirmQuit = confirm
	}
}

// New creates a manager for root. The root is resolved to an absolute
// directory; failure to do so is the only fatal error.
func New(root string, config scan.Config, opts ...Option) (*Manager, error) {
	m := &Manager{state: StateEmpty}
	for _, opt := range opts {
		opt(m)
	}

	if m.scanner == nil {
		s, err := scan.NewScanner(root, config, scan.WithWarnFunc(m.warn))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRoot, err)
		}
		m.scanner = s
		m.root = s.Root()
	} else {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRoot, err)
		}
		m.root = abs
	}
	return m, nil
}

func (m *Manager) warn(path string, err error) {
	log.Printf("Warning: Could not scan %s: %v", path, err)
	m.warnings = append(m.warnings, fmt.Sprintf("Could not scan %s: %v", path, err))
}

// Start performs the initial scan. It reports whether there is anything to
// manage; callers end the session when it returns false.
func (m *Manager) Start() bool {
	m.refresh()
	return m.state == StateBrowsing
}

// Root returns the absolute scan root.
func (m *Manager) Root() string { return m.root }

// State returns the current state.
func (m *Manager) State() State { return m.state }

// Pending returns the action awaiting confirmation, if any.
func (m *Manager) Pending() Pending { return m.pending }

// Overlay returns what is being shown while Viewing.
func (m *Manager) Overlay() Overlay { return m.overlay }

// Breakpoints returns the current list. Callers must not modify it.
func (m *Manager) Breakpoints() []model.Breakpoint { return m.breakpoints }

// Cursor returns the index of the selected breakpoint.
func (m *Manager) Cursor() int { return m.cursor }

// Message returns the status line set by the last command.
func (m *Manager) Message() string { return m.message }

// Warnings returns the scan warnings from the last refresh.
func (m *Manager) Warnings() []string { return m.warnings }

// Selected returns the breakpoint under the cursor.
func (m *Manager) Selected() (model.Breakpoint, bool) {
	if len(m.breakpoints) == 0 {
		return model.Breakpoint{}, false
	}
	return m.breakpoints[m.cursor], true
}

// Prompt returns the question a Confirming manager is asking.
func (m *Manager) Prompt() string {
	switch m.pending {
	case PendingDelete:
		bp, _ := m.Selected()
		return fmt.Sprintf("Delete breakpoint at %s? (y/N): ", bp.Location())
	case PendingQuit:
		return "Press q again to exit or any other key to continue: "
	}
	return ""
}

// Path returns the filesystem path of a breakpoint's file.
func (m *Manager) Path(bp model.Breakpoint) string {
	if filepath.IsAbs(bp.File) {
		return bp.File
	}
	return filepath.Join(m.root, filepath.FromSlash(bp.File))
}

// Handle applies one command to completion.
func (m *Manager) Handle(cmd Command) {
	if m.state == StateExited {
		return
	}
	m.message = ""

	switch m.state {
	case StateViewing:
		m.overlay = Overlay{}
		m.state = m.previous
		return
	case StateConfirming:
		m.answer(cmd)
		return
	}

	switch cmd.Kind {
	case CmdRefresh:
		m.refresh()
	case CmdDown:
		m.move(1)
	case CmdUp:
		m.move(-1)
	case CmdGoto:
		m.message = "Go to breakpoint: enter a number"
	case CmdSelect:
		m.selectIndex(cmd.N)
	case CmdView:
		m.view()
	case CmdToggle:
		if bp, ok := m.requireSelection(); ok {
			m.setCommented(bp, !bp.Commented())
		}
	case CmdComment:
		if bp, ok := m.requireSelection(); ok {
			m.setCommented(bp, true)
		}
	case CmdUncomment:
		if bp, ok := m.requireSelection(); ok {
			m.setCommented(bp, false)
		}
	case CmdDelete:
		if _, ok := m.requireSelection(); ok {
			m.confirm(PendingDelete)
		}
	case CmdHelp:
		m.show(Overlay{Kind: OverlayHelp})
	case CmdQuit:
		if m.confirmQuit {
			m.confirm(PendingQuit)
		} else {
			m.state = StateExited
		}
	default:
		m.message = fmt.Sprintf("Unknown command: %q (press h for help)", cmd.Raw)
	}
}

// Refresh rescans unless the manager is in a transient state. It reports
// whether the rescan happened.
func (m *Manager) Refresh() bool {
	if m.state != StateBrowsing && m.state != StateEmpty {
		return false
	}
	m.refresh()
	return true
}

func (m *Manager) refresh() {
	m.warnings = nil
	m.breakpoints = m.scanner.Scan()
	m.clamp()

	m.message = fmt.Sprintf("Scanning... found %d breakpoints", len(m.breakpoints))
	if n := len(m.warnings); n > 0 {
		m.message += fmt.Sprintf(" (%d file(s) could not be scanned: %s)", n, m.warnings[0])
	}
}

func (m *Manager) clamp() {
	if len(m.breakpoints) == 0 {
		m.cursor = 0
		m.state = StateEmpty
		return
	}
	if m.cursor > len(m.breakpoints)-1 {
		m.cursor = len(m.breakpoints) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.state = StateBrowsing
}

func (m *Manager) requireSelection() (model.Breakpoint, bool) {
	bp, ok := m.Selected()
	if !ok {
		m.message = "No breakpoints."
	}
	return bp, ok
}

func (m *Manager) move(delta int) {
	n := len(m.breakpoints)
	if n == 0 {
		m.message = "No breakpoints."
		return
	}
	m.cursor = ((m.cursor+delta)%n + n) % n
}

func (m *Manager) selectIndex(n int) {
	if n < 1 || n > len(m.breakpoints) {
		m.message = fmt.Sprintf("Invalid selection: %d.", n)
		return
	}
	m.cursor = n - 1
}

func (m *Manager) view() {
	bp, ok := m.requireSelection()
	if !ok {
		return
	}
	ctx := model.GetLineContext(m.Path(bp), bp.LineNumber, model.ContextBefore, model.ContextAfter)
	ctx.File = bp.File
	m.show(Overlay{Kind: OverlayContext, Context: ctx})
}

func (m *Manager) show(o Overlay) {
	m.previous = m.state
	m.overlay = o
	m.state = StateViewing
}

func (m *Manager) confirm(p Pending) {
	m.previous = m.state
	m.pending = p
	m.state = StateConfirming
}

func (m *Manager) answer(cmd Command) {
	pending := m.pending
	m.pending = PendingNone
	m.state = m.previous

	switch pending {
	case PendingDelete:
		if cmd.Kind != CmdYes {
			m.message = "Delete cancelled."
			return
		}
		m.delete()
	case PendingQuit:
		if cmd.Kind == CmdQuit {
			m.state = StateExited
		}
	}
}

func (m *Manager) setCommented(bp model.Breakpoint, commented bool) {
	if bp.Commented() == commented {
		if commented {
			m.message = fmt.Sprintf("%s is already commented.", bp.Location())
		} else {
			m.message = fmt.Sprintf("%s is not commented.", bp.Location())
		}
		return
	}

	transform := uncommentLine
	verb := "Uncommented"
	if commented {
		transform = commentLine
		verb = "Commented"
	}
	if err := rewriteLine(m.Path(bp), bp, transform); err != nil {
		m.editFailed(bp, err)
		return
	}
	m.refresh()
	m.message = fmt.Sprintf("%s %s", verb, bp.Location())
}

func (m *Manager) delete() {
	bp, ok := m.Selected()
	if !ok {
		return
	}
	if err := deleteLine(m.Path(bp), bp); err != nil {
		m.editFailed(bp, err)
		return
	}
	m.refresh()
	m.message = fmt.Sprintf("Deleted %s", bp.Location())
}

// editFailed reports a failed write. The list stays as it was unless the
// file changed underneath us, in which case it is rebuilt.
func (m *Manager) editFailed(bp model.Breakpoint, err error) {
	if errors.Is(err, ErrStaleBreakpoint) {
		m.refresh()
		m.message = fmt.Sprintf("%s changed on disk; list refreshed, nothing was modified.", bp.File)
		return
	}
	m.message = fmt.Sprintf("Error: could not update %s: %s", bp.File, strings.TrimSpace(err.Error()))
}
