// Package main is the entry point for the ElephAnt setup editor.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/elephant-hq/elephant/internal/app"
	"github.com/elephant-hq/elephant/internal/ui"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts, showVersion := parseFlags()

	if showVersion {
		fmt.Printf("elephant %s (%s)\n", version, commit)
		return 0
	}

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}

	shell := ui.NewShell(screen)
	application.SetShell(shell)

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-signals
		shell.Quit()
	}()

	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

func parseFlags() (app.Options, bool) {
	var opts app.Options
	var showVersion bool

	flag.StringVar(&opts.SetupPath, "setup", "", "Path to a setup file to open")
	flag.StringVar(&opts.SetupPath, "s", "", "Path to a setup file to open (shorthand)")
	flag.StringVar(&opts.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&opts.Debug, "debug", false, "Enable debug logging")
	flag.BoolVar(&opts.Debug, "d", false, "Enable debug logging (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "ElephAnt - setup editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: elephant [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys:\n")
		fmt.Fprintf(os.Stderr, "  Ctrl-N  New setup        Ctrl-O  Open setup\n")
		fmt.Fprintf(os.Stderr, "  Ctrl-S  Save             Ctrl-A  Save as\n")
		fmt.Fprintf(os.Stderr, "  Ctrl-E  Export JSON      Ctrl-W  Close setup\n")
		fmt.Fprintf(os.Stderr, "  Ctrl-T  Switch setup     Ctrl-Q  Quit\n")
	}

	flag.Parse()
	return opts, showVersion
}
