package actions

import (
	"github.com/nathoo/stranded/engine/command"
	"github.com/nathoo/stranded/engine/items"
	"github.com/nathoo/stranded/engine/world"
	"github.com/nathoo/stranded/types"
)

// Go moves the player one exit. While an obstruction is present the only
// way out is back the way the player came.
func Go(ctx *command.Context, arg string, _ types.Scope) (types.Response, error) {
	w := ctx.World
	dir, ok := world.ParseDirection(arg)
	if !ok {
		return types.Response{Key: "cannot_go", Arg: arg}, nil
	}
	dest, ok := w.Location().Exit(dir)
	if !ok {
		return types.Response{Key: "cannot_go", Arg: world.DirectionName(dir)}, nil
	}
	if dest != w.Player.Previous {
		for _, it := range w.Items.At(w.Here()) {
			if it.Is(types.ItemObstruction) {
				return say("blocked", it), nil
			}
		}
	}
	w.Player.MoveTo(dest)
	Describe(ctx, false)
	return none()
}

// Look describes the current location in full, or examines arg.
func Look(ctx *command.Context, arg string, scope types.Scope) (types.Response, error) {
	if arg != "" {
		return Examine(ctx, arg, scope)
	}
	Describe(ctx, true)
	return none()
}

// Describe prints the current location and what lies there. The full text
// is shown when full is set or on the first visit; otherwise the short
// name.
func Describe(ctx *command.Context, full bool) {
	w := ctx.World
	if !w.Lit() {
		ctx.Say("dark", "")
		return
	}
	loc := w.Location()
	if full || !w.Visited[loc.ID] {
		ctx.Print(loc.Long)
		if loc.Description != "" {
			ctx.Print(loc.Description)
		}
	} else {
		ctx.Print(loc.Short)
	}
	w.Visited[loc.ID] = true

	for _, it := range w.Items.At(w.Here()) {
		if it.Is(types.ItemInvisibility) {
			continue
		}
		ctx.Say("here", w.Items.Display(it, items.Short, 0))
	}
}
