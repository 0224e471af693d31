package session

import (
	"strconv"
	"strings"
)

// CommandKind enumerates everything the manager can be asked to do. Both
// input adapters translate their input into these.
type CommandKind int

const (
	CmdUnknown CommandKind = iota
	CmdDown
	CmdUp
	CmdGoto   // Asks the adapter for a number
	CmdSelect // Jump to Command.N
	CmdView
	CmdToggle
	CmdComment
	CmdUncomment
	CmdDelete
	CmdRefresh
	CmdHelp
	CmdQuit
	CmdYes
	CmdNo
)

// Command is one unit of user input.
type Command struct {
	Kind CommandKind
	N    int    // 1-based index for CmdSelect
	Raw  string // Original input, used in messages
}

// Select returns a command jumping to the 1-based index n.
func Select(n int) Command {
	return Command{Kind: CmdSelect, N: n, Raw: strconv.Itoa(n)}
}

var commandWords = map[string]CommandKind{
	"j": CmdDown, "down": CmdDown,
	"k": CmdUp, "up": CmdUp,
	"g": CmdGoto, "goto": CmdGoto,
	"v": CmdView, "view": CmdView,
	"t": CmdToggle, "toggle": CmdToggle,
	"c": CmdComment, "comment": CmdComment,
	"u": CmdUncomment, "uncomment": CmdUncomment,
	"d": CmdDelete, "delete": CmdDelete,
	"r": CmdRefresh, "refresh": CmdRefresh,
	"h": CmdHelp, "help": CmdHelp, "?": CmdHelp,
	"q": CmdQuit, "quit": CmdQuit,
	"y": CmdYes, "yes": CmdYes,
	"n": CmdNo, "no": CmdNo,
}

// ParseCommand turns a line of input into a Command. A bare number, or
// "g"/"goto" followed by a number, selects by index.
func ParseCommand(input string) Command {
	raw := strings.TrimSpace(input)
	fields := strings.Fields(strings.ToLower(raw))
	if len(fields) == 0 {
		return Command{Kind: CmdUnknown, Raw: raw}
	}

	if n, err := strconv.Atoi(fields[0]); err == nil && len(fields) == 1 {
		return Command{Kind: CmdSelect, N: n, Raw: raw}
	}

	kind, ok := commandWords[fields[0]]
	if !ok {
		return Command{Kind: CmdUnknown, Raw: raw}
	}
	if kind == CmdGoto && len(fields) == 2 {
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			return Command{Kind: CmdSelect, N: 0, Raw: raw}
		}
		return Command{Kind: CmdSelect, N: n, Raw: raw}
	}
	if len(fields) > 1 {
		return Command{Kind: CmdUnknown, Raw: raw}
	}
	return Command{Kind: kind, Raw: raw}
}
