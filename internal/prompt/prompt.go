// Package prompt drives a session from line-oriented input, for terminals
// without raw mode or for scripted use.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"gubed/internal/model"
	"gubed/internal/session"
)

// Prompt reads one command per line and prints the list after each.
type Prompt struct {
	mgr *session.Manager
	in  *bufio.Scanner
	out io.Writer
}

// New creates a Prompt over in and out.
func New(mgr *session.Manager, in io.Reader, out io.Writer) *Prompt {
	return &Prompt{
		mgr: mgr,
		in:  bufio.NewScanner(in),
		out: out,
	}
}

// Run performs the initial scan and processes commands until the manager
// exits or input ends.
func (p *Prompt) Run() error {
	started := p.mgr.Start()
	p.printWarnings()
	if !started {
		fmt.Fprintln(p.out, p.mgr.Message())
		fmt.Fprintln(p.out, "No breakpoints found.")
		return nil
	}

	for p.mgr.State() != session.StateExited {
		p.render()

		line, ok := p.readLine("> ")
		if !ok {
			return p.in.Err()
		}
		cmd := session.ParseCommand(line)
		if cmd.Kind == session.CmdGoto {
			answer, ok := p.readLine("Go to breakpoint: ")
			if !ok {
				return p.in.Err()
			}
			if strings.TrimSpace(answer) == "" {
				continue
			}
			cmd = session.ParseCommand("g " + answer)
		}
		p.mgr.Handle(cmd)
		if cmd.Kind == session.CmdRefresh {
			p.printWarnings()
		}

		switch p.mgr.State() {
		case session.StateViewing:
			p.renderOverlay()
			if _, ok := p.readLine("Press Enter to continue..."); !ok {
				return p.in.Err()
			}
			p.mgr.Handle(session.Command{Kind: session.CmdYes})
		case session.StateConfirming:
			answer, ok := p.readLine(p.mgr.Prompt())
			if !ok {
				return p.in.Err()
			}
			p.mgr.Handle(session.ParseCommand(answer))
		}
	}
	return nil
}

func (p *Prompt) printWarnings() {
	for _, w := range p.mgr.Warnings() {
		fmt.Fprintf(p.out, "Warning: %s\n", w)
	}
}

func (p *Prompt) readLine(prompt string) (string, bool) {
	fmt.Fprint(p.out, prompt)
	if !p.in.Scan() {
		fmt.Fprintln(p.out)
		return "", false
	}
	return p.in.Text(), true
}

func (p *Prompt) render() {
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, "Gubed - Ruby Breakpoint Manager")
	fmt.Fprintln(p.out, strings.Repeat("=", 40))
	fmt.Fprintln(p.out)

	bps := p.mgr.Breakpoints()
	if len(bps) == 0 {
		fmt.Fprintln(p.out, "No breakpoints found.")
	} else {
		width := len(fmt.Sprint(len(bps)))
		for i, bp := range bps {
			marker := " "
			if i == p.mgr.Cursor() {
				marker = model.IconCursor
			}
			fmt.Fprintf(p.out, "%s %*d. %s %s %s\n", marker, width, i+1, model.StatusIcon(bp), bp.Type, bp.Location())
		}
		fmt.Fprintln(p.out)
		fmt.Fprintln(p.out, "Commands: [j]down [k]up [g]oto [v]iew [t]oggle [c]omment [u]ncomment [d]elete [r]efresh [q]uit [h]elp")
		fmt.Fprintf(p.out, "Selected: %d of %d\n", p.mgr.Cursor()+1, len(bps))
	}

	if msg := p.mgr.Message(); msg != "" {
		fmt.Fprintln(p.out, msg)
	}
}

func (p *Prompt) renderOverlay() {
	o := p.mgr.Overlay()
	fmt.Fprintln(p.out)
	switch o.Kind {
	case session.OverlayContext:
		fmt.Fprintf(p.out, "Context for %s:%d:\n", o.Context.File, o.Context.LineNumber)
		fmt.Fprintln(p.out, strings.Repeat("-", 40))
		fmt.Fprintln(p.out, o.Context.Format())
	case session.OverlayHelp:
		fmt.Fprintln(p.out, "Commands:")
		for _, e := range session.Legend {
			fmt.Fprintf(p.out, "  %-12s - %s\n", e.Keys, e.Description)
		}
		fmt.Fprintln(p.out)
		fmt.Fprintln(p.out, session.LegendFooter)
	}
	fmt.Fprintln(p.out)
}
