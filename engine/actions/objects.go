package actions

import (
	"github.com/nathoo/stranded/engine/command"
	"github.com/nathoo/stranded/engine/items"
	"github.com/nathoo/stranded/engine/state"
	"github.com/nathoo/stranded/types"
)

// Take moves an item into the inventory, out of any container holding it.
// Capacity is advisory.
func Take(ctx *command.Context, arg string, scope types.Scope) (types.Response, error) {
	w := ctx.World
	it, ok := Resolve(ctx, arg, scope)
	if !ok {
		return noSuch(arg), nil
	}
	switch {
	case it.Owner() == types.Inventory:
		return say("already_have", it), nil
	case it.Is(types.ItemLiquid):
		return say("needs_container", it), nil
	case !it.Is(types.ItemMobile):
		return problem(items.NotMobile, it), nil
	}
	extract(ctx, it)
	w.Items.Move(it, types.Inventory)
	if n := len(w.Inventory()); n > w.Player.Capacity {
		ctx.Log.Debug("inventory over capacity", "carried", n, "capacity", w.Player.Capacity)
	}
	return say("taken", it), nil
}

// Drop puts a carried item down at the location, where the surroundings
// decide what becomes of it.
func Drop(ctx *command.Context, arg string, scope types.Scope) (types.Response, error) {
	it, ok := Resolve(ctx, arg, scope)
	if !ok {
		return noSuch(arg), nil
	}
	return release(ctx, it, "dropped"), nil
}

// Throw is Drop with more force: fragile items always break.
func Throw(ctx *command.Context, arg string, scope types.Scope) (types.Response, error) {
	it, ok := Resolve(ctx, arg, scope)
	if !ok {
		return noSuch(arg), nil
	}
	if it.Is(types.ItemFragile) && ctx.World.LocationProps(ctx.World.Player.Location).Has(types.LocGravity) {
		retire(ctx, it)
		return say("breaks", it), nil
	}
	return release(ctx, it, "thrown"), nil
}

// release leaves it at the player's location. Liquids evaporate, objects
// float without gravity, fall through a missing floor and sink off land.
func release(ctx *command.Context, it *items.Item, key string) types.Response {
	w := ctx.World
	here := w.Player.Location
	props := w.LocationProps(here)
	it.Worn = false

	if it.Is(types.ItemLiquid) {
		retireLiquid(ctx, it)
		return say("evaporates", it)
	}
	extract(ctx, it)

	switch {
	case !props.Has(types.LocGravity):
		w.Items.Move(it, types.AtLocation(here))
		return say("floats", it)
	case !props.Has(types.LocFloor):
		if below, ok := w.Location().Exit(types.Down); ok {
			if it.Is(types.ItemFragile) {
				w.Items.Retire(it)
				return say("breaks", it)
			}
			w.Items.Move(it, types.AtLocation(below))
			return say("falls", it)
		}
	}
	if it.Is(types.ItemLand) && !props.Has(types.LocLand) {
		w.Items.Retire(it)
		return say("sinks", it)
	}
	w.Items.Move(it, types.AtLocation(here))
	return say(key, it)
}

func retireLiquid(ctx *command.Context, it *items.Item) {
	pool := ctx.World.Items
	if owner := it.Owner(); owner.Kind == types.OwnerItem {
		pool.RemoveCertain(pool.Get(owner.Item), it.ID)
		return
	}
	pool.Move(it, types.Nursery)
}

// Put places a carried item inside a container, asking which one.
func Put(ctx *command.Context, arg string, scope types.Scope) (types.Response, error) {
	w := ctx.World
	it, ok := Resolve(ctx, arg, scope)
	if !ok {
		return noSuch(arg), nil
	}
	if p := w.Items.HasProblemInserting(it); p != items.None {
		return problem(p, it), nil
	}
	name, err := ctx.Ask("into_what", it.Short)
	if err != nil || name == "" {
		return types.Response{}, err
	}
	container, ok := Resolve(ctx, name, types.ScopePresent)
	if !ok {
		return noSuch(name), nil
	}
	if p := w.Items.HasProblemAccepting(container, it); p != items.None {
		return problem(p, container), nil
	}
	w.Items.Insert(container, it)
	return say("put", container), nil
}

// Empty tips out a container. A liquid evaporates; a solid lands here.
func Empty(ctx *command.Context, arg string, scope types.Scope) (types.Response, error) {
	w := ctx.World
	container, ok := Resolve(ctx, arg, scope)
	if !ok {
		return noSuch(arg), nil
	}
	if p := w.Items.HasProblemEmptying(container); p != items.None {
		return problem(p, container), nil
	}
	child := w.Items.Child(container)
	if child == nil {
		return say("already_empty", container), nil
	}
	w.Items.RemoveCertain(container, child.ID)
	if !child.Is(types.ItemLiquid) {
		w.Items.Move(child, w.Here())
	}
	return say("emptied", container), nil
}

// Fill scoops up a liquid lying at the location into a container.
func Fill(ctx *command.Context, arg string, scope types.Scope) (types.Response, error) {
	w := ctx.World
	container, ok := Resolve(ctx, arg, scope)
	if !ok {
		return noSuch(arg), nil
	}
	if p := w.Items.HasProblemEmptying(container); p != items.None {
		return problem(p, container), nil
	}
	if !container.Is(types.ItemLiquidContainer) {
		return problem(items.LiquidIntoSolid, container), nil
	}
	var liquid *items.Item
	for _, it := range w.Items.At(w.Here()) {
		if it.Is(types.ItemLiquid) {
			liquid = it
			break
		}
	}
	if liquid == nil {
		return say("no_liquid", container), nil
	}
	if p := w.Items.HasProblemAccepting(container, liquid); p != items.None {
		return problem(p, container), nil
	}
	w.Items.Insert(container, liquid)
	return say("filled", container), nil
}

// Give hands a carried item to a recipient present here. Treasures given
// away are banked into the score.
func Give(ctx *command.Context, arg string, scope types.Scope) (types.Response, error) {
	w := ctx.World
	it, ok := Resolve(ctx, arg, scope)
	if !ok {
		return noSuch(arg), nil
	}
	name, err := ctx.Ask("to_whom", it.Short)
	if err != nil || name == "" {
		return types.Response{}, err
	}
	to, ok := Resolve(ctx, name, types.ScopePresent)
	if !ok {
		return noSuch(name), nil
	}
	if !to.Is(types.ItemRecipient) {
		return say("not_recipient", to), nil
	}
	w.Player.Score += state.TreasureWeight * w.Items.TreasureValue(it)
	retire(ctx, it)
	return say("given", to), nil
}
