package actions

import (
	"strconv"

	"github.com/nathoo/stranded/engine/command"
	"github.com/nathoo/stranded/engine/items"
	"github.com/nathoo/stranded/types"
)

// Inventory lists what the player carries.
func Inventory(ctx *command.Context, _ string, _ types.Scope) (types.Response, error) {
	w := ctx.World
	carried := w.Inventory()
	if len(carried) == 0 {
		return types.Response{Key: "empty_handed"}, nil
	}
	ctx.Say("carrying", "")
	for _, it := range carried {
		ctx.Print(w.Items.Display(it, items.Long, 1))
	}
	return none()
}

// Score reports treasure deposited in the treasury plus banked points.
func Score(ctx *command.Context, _ string, _ types.Scope) (types.Response, error) {
	return types.Response{Key: "score", Arg: strconv.Itoa(ctx.World.Score())}, nil
}

// Hint prints the hint body for arg, or for the current location when no
// argument is given. Every request counts, answered or not.
func Hint(ctx *command.Context, arg string, _ types.Scope) (types.Response, error) {
	w := ctx.World
	w.Player.CountHint()
	key := arg
	if key == "" {
		key = strconv.Itoa(int(w.Player.Location))
	}
	body, ok := w.Hints.Raw(key)
	if !ok {
		return types.Response{Key: "no_hint", Arg: key}, nil
	}
	ctx.Print(body)
	return none()
}

// Help prints the help text.
func Help(ctx *command.Context, _ string, _ types.Scope) (types.Response, error) {
	return types.Response{Key: "help"}, nil
}

// Wait lets a turn pass.
func Wait(ctx *command.Context, _ string, _ types.Scope) (types.Response, error) {
	return types.Response{Key: "time_passes"}, nil
}

// Quit ends the game.
func Quit(ctx *command.Context, _ string, _ types.Scope) (types.Response, error) {
	ctx.World.Player.Stop()
	return types.Response{Key: "goodbye"}, nil
}
