package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/pcranleigh/lintview/pkg/config"
	"github.com/pcranleigh/lintview/pkg/loader"
	"github.com/pcranleigh/lintview/pkg/model"
	"github.com/pcranleigh/lintview/pkg/results"
	"github.com/pcranleigh/lintview/pkg/ui"
	"github.com/pcranleigh/lintview/pkg/version"
)

func main() {
	help := flag.Bool("help", false, "Show help")
	versionFlag := flag.Bool("version", false, "Show version")
	printFlag := flag.Bool("print", false, "Print the result tree to stdout and exit")
	noWatch := flag.Bool("no-watch", false, "Disable live reload of the report file")
	expandDepth := flag.Int("expand-depth", 0, "Initial tree expansion depth (0 uses the configured default)")
	editorFlag := flag.String("editor", "", "Editor command for opening problems (overrides config and $EDITOR)")
	configPath := flag.String("config", "", "Config file path (default ~/.config/lintview/config.yaml)")
	flag.Parse()

	if *help {
		fmt.Println("Usage: lintview [options] <report.json>")
		fmt.Println("\nA terminal viewer for static-analysis scan results.")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("lintview %s\n", version.Version)
		os.Exit(0)
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: lintview [options] <report.json>")
		os.Exit(2)
	}
	reportPath := flag.Arg(0)

	snapshot, err := loader.Load(reportPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading report: %v\n", err)
		os.Exit(1)
	}

	var cfg config.Config
	var cfgErr error
	if *configPath != "" {
		cfg, cfgErr = config.LoadFrom(*configPath)
	} else {
		cfg, cfgErr = config.Load()
	}
	if cfgErr != nil {
		// Non-fatal: continue with defaults.
		fmt.Fprintf(os.Stderr, "Warning: %v\n", cfgErr)
		cfg = config.DefaultConfig()
	}

	if *expandDepth > 0 {
		cfg.UI.ExpandDepth = *expandDepth
	}
	if *editorFlag != "" {
		cfg.Editor.Command = *editorFlag
	}
	if *noWatch {
		cfg.Watch.Enabled = false
	}

	// Fall back to plain output when stdout is not a terminal.
	if *printFlag || !term.IsTerminal(int(os.Stdout.Fd())) {
		printPlain(snapshot)
		os.Exit(0)
	}

	m := ui.NewModel(snapshot, reportPath, cfg)
	defer m.Stop()

	if err := runTUIProgram(m); err != nil {
		fmt.Fprintf(os.Stderr, "Error running lintview: %v\n", err)
		os.Exit(1)
	}
}

// printPlain writes the fully expanded result tree as indented text.
func printPlain(snapshot *model.ScanResults) {
	tree := results.NewBuilder(nil).Build(snapshot)
	tree.Walk(func(n *results.Node) bool {
		fmt.Printf("%s%s\n", strings.Repeat("  ", n.Depth), n.Label)
		return true
	})
}

func runTUIProgram(m ui.Model) error {
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithoutSignalHandler(),
	)

	runDone := make(chan struct{})
	defer close(runDone)

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-runDone:
			return
		case <-sigCh:
		}

		p.Quit()

		select {
		case <-runDone:
			return
		case <-sigCh:
		case <-time.After(5 * time.Second):
		}

		p.Kill()
	}()

	_, err := p.Run()
	return err
}
