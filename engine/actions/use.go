package actions

import (
	"github.com/nathoo/stranded/engine/command"
	"github.com/nathoo/stranded/engine/items"
	"github.com/nathoo/stranded/types"
)

// Examine shows the item's long form, its contents and its description.
func Examine(ctx *command.Context, arg string, scope types.Scope) (types.Response, error) {
	w := ctx.World
	it, ok := Resolve(ctx, arg, scope)
	if !ok {
		return noSuch(arg), nil
	}
	if it.Description == "" && it.IsEmpty() && !it.Is(types.ItemSwitchable) {
		return say("nothing_special", it), nil
	}
	ctx.Print(w.Items.Display(it, items.Long, 0))
	if it.Description != "" {
		ctx.Print(it.Description)
	}
	return none()
}

// Read shows whatever is written on the item.
func Read(ctx *command.Context, arg string, scope types.Scope) (types.Response, error) {
	it, ok := Resolve(ctx, arg, scope)
	if !ok {
		return noSuch(arg), nil
	}
	if it.Writing == "" {
		return say("no_writing", it), nil
	}
	ctx.Print(it.Writing)
	return none()
}

// Burn destroys the item unless it is essential.
func Burn(ctx *command.Context, arg string, scope types.Scope) (types.Response, error) {
	return consume(ctx, arg, scope, 0, "burnt")
}

// Eat destroys an edible item.
func Eat(ctx *command.Context, arg string, scope types.Scope) (types.Response, error) {
	return consume(ctx, arg, scope, types.ItemEdible, "eaten")
}

// Drink destroys a liquid item.
func Drink(ctx *command.Context, arg string, scope types.Scope) (types.Response, error) {
	return consume(ctx, arg, scope, types.ItemLiquid, "drunk")
}

func consume(ctx *command.Context, arg string, scope types.Scope, need types.ItemProps, key string) (types.Response, error) {
	it, ok := Resolve(ctx, arg, scope)
	if !ok {
		return noSuch(arg), nil
	}
	if it.Is(types.ItemEssential) {
		return say("essential", it), nil
	}
	if need != 0 && !it.Is(need) {
		return say("inedible", it), nil
	}
	retire(ctx, it)
	return say(key, it), nil
}

// Wear puts on a wearable item, picking it up first when needed.
func Wear(ctx *command.Context, arg string, scope types.Scope) (types.Response, error) {
	w := ctx.World
	it, ok := Resolve(ctx, arg, scope)
	if !ok {
		return noSuch(arg), nil
	}
	if !it.Is(types.ItemWearable) {
		return say("not_wearable", it), nil
	}
	if it.Worn {
		return say("already_have", it), nil
	}
	if it.Owner() != types.Inventory {
		if !it.Is(types.ItemMobile) {
			return problem(items.NotMobile, it), nil
		}
		extract(ctx, it)
		w.Items.Move(it, types.Inventory)
	}
	it.Worn = true
	return say("worn", it), nil
}

// Remove takes off a worn item. It stays in the inventory.
func Remove(ctx *command.Context, arg string, scope types.Scope) (types.Response, error) {
	it, ok := Resolve(ctx, arg, scope)
	if !ok {
		return noSuch(arg), nil
	}
	if !it.Worn {
		return say("not_worn", it), nil
	}
	it.Worn = false
	return say("removed", it), nil
}

// On switches an item on.
func On(ctx *command.Context, arg string, scope types.Scope) (types.Response, error) {
	return toggle(ctx, arg, scope, true)
}

// Off switches an item off.
func Off(ctx *command.Context, arg string, scope types.Scope) (types.Response, error) {
	return toggle(ctx, arg, scope, false)
}

func toggle(ctx *command.Context, arg string, scope types.Scope, on bool) (types.Response, error) {
	it, ok := Resolve(ctx, arg, scope)
	if !ok {
		return noSuch(arg), nil
	}
	if !it.Is(types.ItemSwitchable) {
		return say("not_switchable", it), nil
	}
	if it.On == on {
		if on {
			return say("already_on", it), nil
		}
		return say("already_off", it), nil
	}
	it.On = on
	if on {
		return say("switched_on", it), nil
	}
	return say("switched_off", it), nil
}
