// Stranded plays data-driven text adventures from a single data file.
// Usage: stranded [--version] [--plain] [--script <file>] [--trace] [--config <file>] <datafile>
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/nathoo/stranded/cli"
	"github.com/nathoo/stranded/config"
	"github.com/nathoo/stranded/engine"
	"github.com/nathoo/stranded/loader"
	"github.com/nathoo/stranded/logging"
	"github.com/nathoo/stranded/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = "Usage: stranded [--version] [--plain] [--script <file>] [--trace] [--config <file>] <datafile>\n"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run plays the game described by args and returns the exit status.
// Returning instead of exiting lets deferred closes run on every path.
func run(args []string, stdout, stderr io.Writer) int {
	plain := false
	trace := false
	var dataFile, scriptFile, configFile string

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Fprintf(stdout, "stranded %s (commit %s, built %s)\n", version, commit, date)
			return 0
		case "--plain":
			plain = true
		case "--trace":
			trace = true
		case "--script", "--config":
			if i+1 >= len(args) {
				fmt.Fprintf(stderr, "%s requires a file path\n", args[i])
				return 1
			}
			if args[i] == "--script" {
				scriptFile = args[i+1]
			} else {
				configFile = args[i+1]
			}
			i++
		default:
			if dataFile == "" {
				dataFile = args[i]
			}
		}
	}

	if dataFile == "" {
		fmt.Fprint(stderr, usage)
		return 1
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		fmt.Fprintf(stderr, "Error reading configuration: %v\n", err)
		return 1
	}

	// The full-screen interface owns the terminal, so logs only reach
	// stderr in line mode.
	useTUI := scriptFile == "" && !plain && stdout == os.Stdout && term.IsTerminal(int(os.Stdout.Fd()))
	log, closeLog, err := logging.New(cfg, !useTUI)
	if err != nil {
		fmt.Fprintf(stderr, "Error opening log: %v\n", err)
		return 1
	}
	defer closeLog()
	slog.SetDefault(log)

	defs, err := loader.Load(dataFile)
	if err != nil {
		log.Error("loading game", "file", dataFile, "err", err)
		fmt.Fprintf(stderr, "Error loading game: %v\n", err)
		return 1
	}

	eng, err := engine.New(defs, log)
	if err != nil {
		fmt.Fprintf(stderr, "Error starting game: %v\n", err)
		return 1
	}

	if !useTUI {
		c := cli.New(eng, cfg)
		c.Out = stdout
		c.Tracing = trace
		// Script mode: read commands from the file and echo them.
		if scriptFile != "" {
			f, err := os.Open(scriptFile)
			if err != nil {
				fmt.Fprintf(stderr, "Error opening script: %v\n", err)
				return 1
			}
			defer f.Close()
			c.In = f
			c.EchoInput = true
		}
		if err := c.Run(); err != nil {
			log.Error("game stopped", "err", err)
			return 1
		}
		return 0
	}

	if err := tui.Run(eng, cfg, trace); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
