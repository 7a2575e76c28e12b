// Package command holds the command registry: the loaded command records,
// their bound handlers, the two-pass input grammar and argument dispatch.
package command

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/nathoo/stranded/engine/state"
	"github.com/nathoo/stranded/types"
)

// Terminal is the line-oriented device the game talks through.
type Terminal interface {
	Print(s string)
	Read() ([]string, error)
}

// Context is passed to every handler.
type Context struct {
	World *state.World
	Term  Terminal
	Log   *slog.Logger

	// Responses records everything printed through Say during the turn.
	Responses []types.Response
}

// NewContext returns a context over w and term.
func NewContext(w *state.World, term Terminal) *Context {
	return &Context{World: w, Term: term, Log: slog.Default()}
}

// Say formats a string-table entry and prints it.
func (c *Context) Say(key, arg string) {
	c.Responses = append(c.Responses, types.Response{Key: key, Arg: arg})
	c.Term.Print(c.World.Strings.Format(key, arg))
}

// Print writes literal text, such as a location description.
func (c *Context) Print(s string) {
	c.Term.Print(s)
}

// Ask prints the prompt key and returns the first token of the reply, or
// "" for a blank reply.
func (c *Context) Ask(key, arg string) (string, error) {
	c.Say(key, arg)
	tokens, err := c.Term.Read()
	if err != nil {
		return "", err
	}
	if len(tokens) == 0 {
		return "", nil
	}
	return tokens[0], nil
}

// Handler performs a single action. A response with an empty key prints
// nothing. Errors come only from the terminal.
type Handler func(ctx *Context, arg string, scope types.Scope) (types.Response, error)

// Command is a loaded command record bound to its handler.
type Command struct {
	Name    string
	Props   types.CommandProps
	Handler string

	run Handler
}

// Is reports whether the command has flag.
func (c *Command) Is(flag types.CommandProps) bool { return c.Props.Has(flag) }

// TakesArgument reports whether the command accepts an argument at all.
func (c *Command) TakesArgument() bool {
	return c.Is(types.CmdArgMandatory) || c.Is(types.CmdArgOptional)
}

// Scope classifies where the argument is resolved from. Inventory wins
// over Present.
func (c *Command) Scope() types.Scope {
	switch {
	case c.Is(types.CmdInventory):
		return types.ScopeInventory
	case c.Is(types.CmdPresent):
		return types.ScopePresent
	default:
		return types.ScopeAny
	}
}

// UnknownHandlerError reports a command bound to a handler that does not
// exist.
type UnknownHandlerError struct {
	Command string
	Handler string
}

func (e *UnknownHandlerError) Error() string {
	return fmt.Sprintf("command %q uses unknown handler %q", e.Command, e.Handler)
}

// Registry maps command names to commands. Never mutated after creation.
type Registry struct {
	commands map[string]*Command
	names    []string
}

// NewRegistry binds each command record to the handler it names.
func NewRegistry(defs []types.CommandDef, handlers map[string]Handler) (*Registry, error) {
	r := &Registry{commands: make(map[string]*Command, len(defs))}
	for _, def := range defs {
		if def.Name == "" {
			return nil, fmt.Errorf("command with empty name")
		}
		if _, dup := r.commands[def.Name]; dup {
			return nil, fmt.Errorf("duplicate command %q", def.Name)
		}
		run, ok := handlers[def.Handler]
		if !ok {
			return nil, &UnknownHandlerError{Command: def.Name, Handler: def.Handler}
		}
		r.commands[def.Name] = &Command{
			Name:    def.Name,
			Props:   def.Props,
			Handler: def.Handler,
			run:     run,
		}
		r.names = append(r.names, def.Name)
	}
	sort.Strings(r.names)
	return r, nil
}

// Lookup returns the command named name.
func (r *Registry) Lookup(name string) (*Command, bool) {
	c, ok := r.commands[name]
	return c, ok
}

// Names returns all command names, sorted.
func (r *Registry) Names() []string { return r.names }

// Resolve applies the two-pass grammar to at most two tokens. The first
// pass reads "command [argument]"; the second, only for two tokens, reads
// "argument command" and accepts invertible commands only.
func (r *Registry) Resolve(tokens []string) (*Command, string, bool) {
	if len(tokens) == 0 {
		return nil, "", false
	}
	if c, ok := r.commands[tokens[0]]; ok {
		arg := ""
		if len(tokens) > 1 {
			arg = tokens[1]
		}
		return c, arg, true
	}
	if len(tokens) == 2 {
		if c, ok := r.commands[tokens[1]]; ok && c.Is(types.CmdInvertible) {
			return c, tokens[0], true
		}
	}
	return nil, "", false
}

// Execute checks the argument against the command's properties, prompting
// once for a missing mandatory argument, then invokes the handler.
func (r *Registry) Execute(ctx *Context, cmd *Command, arg string) (types.Response, error) {
	if arg != "" && !cmd.TakesArgument() {
		return types.Response{Key: "unexpected", Arg: cmd.Name}, nil
	}
	if cmd.Is(types.CmdMovement) {
		arg = cmd.Name
	} else if arg == "" && cmd.Is(types.CmdArgMandatory) {
		reply, err := ctx.Ask("what", cmd.Name)
		if err != nil {
			return types.Response{}, err
		}
		if reply == "" {
			return types.Response{}, nil
		}
		arg = reply
	}
	return cmd.run(ctx, arg, cmd.Scope())
}
