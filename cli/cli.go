// Package cli provides the plain line terminal: wrapped output, the
// tokenizing reader and meta-command dispatch.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"github.com/nathoo/stranded/config"
	"github.com/nathoo/stranded/engine"
	"github.com/nathoo/stranded/engine/parser"
	"github.com/nathoo/stranded/types"
)

// CLI handles terminal interaction with the player. It implements the
// engine's terminal and tracer interfaces.
type CLI struct {
	Engine       *engine.Engine
	In           io.Reader
	Out          io.Writer
	Width        int
	Prompt       string
	Continuation string
	Tracing      bool
	EchoInput    bool // echo each input line after the prompt (for script playback)

	scanner *bufio.Scanner
	last    []string // for "again"
}

// New creates a CLI wired to the given engine and display settings.
func New(eng *engine.Engine, cfg *config.Config) *CLI {
	return &CLI{
		Engine:       eng,
		In:           os.Stdin,
		Out:          os.Stdout,
		Width:        cfg.Width,
		Prompt:       cfg.Prompt,
		Continuation: cfg.Continuation,
	}
}

// Run plays the game until the player quits or input ends.
func (c *CLI) Run() error {
	fmt.Fprintf(c.Out, "%s\n\n", c.Engine.World.Defs.Game.Title)
	return c.Engine.Run(c)
}

// Print writes text wrapped to the configured width.
func (c *CLI) Print(text string) {
	fmt.Fprintln(c.Out, Wrap(text, c.Width, c.Continuation))
}

// Read prompts for a line and returns its tokens. Comment lines and
// meta-commands are handled here and never reach the engine. The end of
// input and /quit both return io.EOF.
func (c *CLI) Read() ([]string, error) {
	if c.scanner == nil {
		c.scanner = bufio.NewScanner(c.In)
	}
	for {
		fmt.Fprint(c.Out, c.Prompt)
		if !c.scanner.Scan() {
			fmt.Fprintln(c.Out)
			if err := c.scanner.Err(); err != nil {
				return nil, err
			}
			return nil, io.EOF
		}
		input := strings.TrimSpace(c.scanner.Text())
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			fmt.Fprintln(c.Out, input)
		}

		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return nil, io.EOF
			}
			continue
		}

		tokens := parser.Tokenize(input)
		if len(tokens) == 1 && tokens[0] == "again" {
			if _, defined := c.Engine.Commands.Lookup("again"); !defined {
				if c.last == nil {
					c.printSystem("Nothing to repeat.")
					continue
				}
				return c.last, nil
			}
		}
		if len(tokens) > 0 {
			c.last = tokens
		}
		return tokens, nil
	}
}

// handleMeta dispatches meta-commands. Returns true if the game should exit.
func (c *CLI) handleMeta(input string) bool {
	cmd := strings.Fields(input)[0]

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/help":
		c.cmdHelp()

	case "/status":
		c.cmdStatus()

	case "/trace":
		c.Tracing = !c.Tracing
		if c.Tracing {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

func (c *CLI) cmdHelp() {
	c.printSystem("System: /quit /help /status /trace")
	c.Print("Commands: " + strings.Join(c.Engine.Commands.Names(), ", "))
	c.Print("Type again to repeat your last command.")
}

func (c *CLI) cmdStatus() {
	s := c.Engine.Status()
	c.printSystem(fmt.Sprintf("%s | %s | score %d | turn %d | %d instructions | %s",
		s.Title, s.Location, s.Score, s.Turn, s.Instructions, s.State))
}

// Trace prints how an input line was processed when tracing is on.
func (c *CLI) Trace(result types.Result) {
	if !c.Tracing {
		return
	}
	c.printSystem(fmt.Sprintf("[trace] input %v -> command %q arg %q scope %d",
		result.Input, result.Command, result.Argument, result.Scope))
	for _, r := range result.Responses {
		c.printSystem(fmt.Sprintf("[trace]   response %s %q", r.Key, r.Arg))
	}
	for _, id := range result.Events {
		c.printSystem(fmt.Sprintf("[trace]   event %s", id))
	}
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}

// Wrap word-wraps each paragraph of text to width. Lines produced by
// wrapping start with glyph; explicit line breaks do not. A width of zero
// disables wrapping.
func Wrap(text string, width int, glyph string) string {
	if width <= 0 {
		return text
	}
	limit := width - len(glyph)
	if limit < 1 {
		limit = 1
	}
	paras := strings.Split(text, "\n")
	for i, para := range paras {
		lines := strings.Split(wordwrap.String(para, limit), "\n")
		for j := 1; j < len(lines); j++ {
			lines[j] = glyph + lines[j]
		}
		paras[i] = strings.Join(lines, "\n")
	}
	return strings.Join(paras, "\n")
}
