// Package engine provides the turn loop that wires together tokenized
// input, command dispatch, environment checks and scripted events.
package engine

import (
	"errors"
	"io"
	"log/slog"

	"github.com/nathoo/stranded/engine/actions"
	"github.com/nathoo/stranded/engine/command"
	"github.com/nathoo/stranded/engine/events"
	"github.com/nathoo/stranded/engine/player"
	"github.com/nathoo/stranded/engine/state"
	"github.com/nathoo/stranded/types"
)

// Engine holds the live world and the command registry.
type Engine struct {
	World    *state.World
	Commands *command.Registry
	Log      *slog.Logger
}

// New creates a new engine from definitions. A nil logger uses the
// default one.
func New(defs *state.Defs, log *slog.Logger) (*Engine, error) {
	if log == nil {
		log = slog.Default()
	}
	w, err := state.NewWorld(defs)
	if err != nil {
		return nil, err
	}
	reg, err := command.NewRegistry(defs.Commands, actions.Handlers())
	if err != nil {
		return nil, err
	}
	return &Engine{World: w, Commands: reg, Log: log}, nil
}

// Status is a snapshot for status displays.
type Status struct {
	Title        string
	Location     string
	Score        int
	Turn         int
	Instructions int
	State        player.State
}

// Status returns the current status snapshot.
func (e *Engine) Status() Status {
	w := e.World
	return Status{
		Title:        w.Defs.Game.Title,
		Location:     w.Location().Short,
		Score:        w.Score(),
		Turn:         w.Turn,
		Instructions: w.Player.Instructions,
		State:        w.Player.State(),
	}
}

func (e *Engine) context(term command.Terminal) *command.Context {
	ctx := command.NewContext(e.World, term)
	ctx.Log = e.Log
	return ctx
}

// Start prints the introduction and describes the starting location.
func (e *Engine) Start(term command.Terminal) {
	ctx := e.context(term)
	if intro := e.World.Defs.Game.Intro; intro != "" {
		ctx.Print(intro)
	}
	actions.Describe(ctx, true)
}

// Step processes one tokenized input line. Blank lines do nothing. The
// only errors come from the terminal while a handler prompts for more
// input.
func (e *Engine) Step(term command.Terminal, tokens []string) (types.Result, error) {
	w := e.World
	result := types.Result{Input: tokens}
	if len(tokens) == 0 || !w.Player.Alive() {
		return result, nil
	}

	ctx := e.context(term)
	w.Player.CountInstruction()

	cmd, arg, ok := e.Commands.Resolve(tokens)
	if !ok {
		ctx.Say("unknown", tokens[0])
		result.Responses = ctx.Responses
		return result, nil
	}
	result.Command, result.Argument, result.Scope = cmd.Name, arg, cmd.Scope()
	e.Log.Debug("turn", "turn", w.Turn, "command", cmd.Name, "arg", arg, "handler", cmd.Handler)

	resp, err := e.Commands.Execute(ctx, cmd, arg)
	if err != nil {
		result.Responses = ctx.Responses
		return result, err
	}
	if resp.Key != "" {
		ctx.Say(resp.Key, resp.Arg)
	}

	if cmd.Is(types.CmdFree) {
		w.Player.Refund()
	} else {
		w.Turn++
		e.checkEnvironment(ctx)
		if w.Player.Alive() {
			fired, out := events.Evaluate(w)
			for _, line := range out {
				ctx.Print(line)
			}
			for _, id := range fired {
				e.Log.Info("event fired", "event", id, "turn", w.Turn)
			}
			result.Events = fired
		}
	}

	result.Responses = ctx.Responses
	return result, nil
}

// checkEnvironment applies the rules of the player's surroundings: no air
// or an unprotected hazard kills; no gravity leaves the player floating.
func (e *Engine) checkEnvironment(ctx *command.Context) {
	w := e.World
	p := w.Player
	if !p.Alive() {
		return
	}
	switch {
	case !w.HasAir():
		ctx.Say("suffocate", "")
		p.Die()
	case !w.Protected():
		ctx.Say("hazard", "")
		p.Die()
	case !w.HasGravity():
		if w.LocationProps(p.Location).Has(types.LocCeiling) {
			ctx.Say("float_ceiling", "")
		} else {
			ctx.Say("float", "")
		}
	}
	if !p.Alive() {
		e.Log.Info("player died", "location", p.Location, "turn", w.Turn)
	}
}

// Tracer is implemented by terminals that want every processed input.
type Tracer interface {
	Trace(result types.Result)
}

// Run plays until the player stops or input ends.
func (e *Engine) Run(term command.Terminal) error {
	tracer, _ := term.(Tracer)
	p := e.World.Player
	e.Start(term)
	for p.Playing() {
		var err error
		if p.State() == player.Dead {
			err = e.afterlife(term)
		} else {
			var tokens []string
			tokens, err = term.Read()
			if err == nil {
				var result types.Result
				result, err = e.Step(term, tokens)
				if tracer != nil && len(tokens) > 0 {
					tracer.Trace(result)
				}
			}
		}
		if errors.Is(err, io.EOF) {
			p.Stop()
			return nil
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// afterlife leaves the dead player's belongings at the nearest safe
// location and asks whether to go on.
func (e *Engine) afterlife(term command.Terminal) error {
	w := e.World
	p := w.Player
	ctx := e.context(term)

	safe := w.SafeLocation()
	for _, it := range w.Inventory() {
		it.Worn = false
		w.Items.Move(it, types.AtLocation(safe))
	}

	for {
		reply, err := ctx.Ask("reincarnate", "")
		if err != nil {
			return err
		}
		switch reply {
		case "yes", "y":
			p.Reincarnate(safe, w.Defs.Game.Penalty)
			e.Log.Info("player reincarnated", "location", safe, "deaths", p.Deaths)
			ctx.Say("reincarnated", "")
			actions.Describe(ctx, true)
			return nil
		case "no", "n":
			p.Stop()
			ctx.Say("goodbye", "")
			return nil
		default:
			ctx.Say("yes_no", "")
		}
	}
}
