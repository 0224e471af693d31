package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"gubed/internal/config"
	"gubed/internal/model"
	"gubed/internal/prompt"
	"gubed/internal/scan"
	"gubed/internal/session"
	"gubed/internal/tui"
	"gubed/internal/watch"
	"gubed/internal/web"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"github.com/tcnksm/go-latest"
)

func checkUpdate(currentVer string) {
	githubTag := &latest.GithubTag{
		Owner:      model.RepoOwner,
		Repository: model.RepoName,
	}

	res, err := latest.Check(githubTag, currentVer)
	if err != nil {
		return // Silently fail
	}

	if res.Outdated {
		fmt.Printf("\n✨ A new version is available: %s (you have %s)\n", res.Current, currentVer)
	} else if pflag.Lookup("update").Changed {
		fmt.Printf("✅ You are using the latest version: %s\n", currentVer)
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "gubed: "+format+"\n", args...)
	os.Exit(1)
}

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: gubed [options] [root]\n\n")
		fmt.Fprintf(os.Stderr, "gubed finds debugger breakpoints left in a Ruby source tree\n")
		fmt.Fprintf(os.Stderr, "and lets you view, comment out, or delete them.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  gubed                # Manage breakpoints under the current directory\n")
		fmt.Fprintf(os.Stderr, "  gubed --watch app    # Rescan automatically while files change\n")
		fmt.Fprintf(os.Stderr, "  gubed --plain        # Line-based prompt instead of the TUI\n")
		fmt.Fprintf(os.Stderr, "  gubed --report -v    # Print every breakpoint with its source line\n")
		fmt.Fprintf(os.Stderr, "  gubed --json         # Output scan results as JSON\n")
	}

	plainFlag := pflag.BoolP("plain", "p", false, "Use a line-based prompt instead of the TUI")
	reportFlag := pflag.BoolP("report", "r", false, "Print a breakpoint report and exit")
	verboseFlag := pflag.BoolP("verbose", "v", false, "Include matched source lines in the report")
	jsonFlag := pflag.BoolP("json", "j", false, "Output scan results as JSON")
	webFlag := pflag.BoolP("web", "w", false, "Serve a read-only JSON view over HTTP")
	addrFlag := pflag.String("addr", "", "Listen address for --web (default from config, localhost:8080)")
	watchFlag := pflag.Bool("watch", false, "Rescan automatically when files change")
	noConfirmQuitFlag := pflag.Bool("no-confirm-quit", false, "Exit on the first q")
	logFileFlag := pflag.String("log-file", "", "Write warnings to this file")
	versionFlag := pflag.BoolP("version", "V", false, "Print version information")
	updateFlag := pflag.BoolP("update", "u", false, "Check for the latest version")
	helpFlag := pflag.BoolP("help", "h", false, "Show this help message")
	pflag.Parse()

	if *helpFlag {
		pflag.Usage()
		return
	}

	if *versionFlag {
		fmt.Printf("gubed version %s\n", model.Version)
		return
	}

	if *updateFlag {
		checkUpdate(model.Version)
		return
	}

	root := "."
	if pflag.NArg() > 0 {
		root = pflag.Arg(0)
	}

	cfg, err := config.Load(root)
	if err != nil {
		fatal("%v", err)
	}
	if *watchFlag {
		cfg.Watch = true
	}
	if *noConfirmQuitFlag {
		cfg.ConfirmQuit = false
	}
	if *addrFlag != "" {
		cfg.Addr = *addrFlag
	}
	scanCfg, err := cfg.Scan()
	if err != nil {
		fatal("%v", err)
	}

	if *logFileFlag != "" {
		f, err := os.OpenFile(*logFileFlag, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fatal("open log file: %v", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	switch {
	case *webFlag:
		runWebMode(root, cfg.Addr, scanCfg)
	case *reportFlag:
		runReportMode(root, scanCfg, *verboseFlag)
	case *jsonFlag:
		runJsonMode(root, scanCfg)
	case *plainFlag:
		runPlainMode(root, scanCfg)
	default:
		// Warnings would corrupt the alternate screen.
		if *logFileFlag == "" {
			log.SetOutput(io.Discard)
		}
		runTuiMode(root, cfg, scanCfg)
	}
}

func newScanner(root string, scanCfg scan.Config) *scan.Scanner {
	s, err := scan.NewScanner(root, scanCfg)
	if err != nil {
		fatal("%v", err)
	}
	return s
}

func newManager(root string, scanCfg scan.Config, confirmQuit bool) *session.Manager {
	mgr, err := session.New(root, scanCfg, session.WithConfirmQuit(confirmQuit))
	if err != nil {
		fatal("%v", err)
	}
	return mgr
}

func runReportMode(root string, scanCfg scan.Config, verbose bool) {
	s := newScanner(root, scanCfg)
	fmt.Print(scan.GenerateReport(s.Root(), s.Scan(), verbose))
}

func runJsonMode(root string, scanCfg scan.Config) {
	s := newScanner(root, scanCfg)
	bps := model.Records(s.Scan())

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(bps); err != nil {
		fatal("encode: %v", err)
	}
}

func runWebMode(root, addr string, scanCfg scan.Config) {
	s, err := web.NewServer(root, scanCfg)
	if err != nil {
		fatal("%v", err)
	}
	if err := web.StartServer(addr, s); err != nil {
		log.Fatal(err)
	}
}

func runPlainMode(root string, scanCfg scan.Config) {
	// Line input cannot detect a double key press, so quit is immediate.
	mgr := newManager(root, scanCfg, false)
	if err := prompt.New(mgr, os.Stdin, os.Stdout).Run(); err != nil {
		fatal("%v", err)
	}
}

func runTuiMode(root string, cfg *config.Config, scanCfg scan.Config) {
	mgr := newManager(root, scanCfg, cfg.ConfirmQuit)

	var changes tui.Changes
	if cfg.Watch {
		w, err := watch.New(mgr.Root(), scanCfg.Skipped, cfg.Debounce)
		if err != nil {
			fatal("watch: %v", err)
		}
		defer w.Close()
		changes = w
	}

	m := tui.InitialModel(mgr, changes)
	p := tea.NewProgram(&m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
	if fm, ok := final.(tui.AppModel); ok && fm.Empty {
		fmt.Println("No breakpoints found.")
	}
}
