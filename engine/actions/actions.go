// Package actions implements the built-in action handlers bound to command
// records by handler name, and the scoped item resolution they share.
package actions

import (
	"sort"

	"github.com/nathoo/stranded/engine/command"
	"github.com/nathoo/stranded/engine/items"
	"github.com/nathoo/stranded/types"
)

var handlers = map[string]command.Handler{
	"go":        Go,
	"look":      Look,
	"examine":   Examine,
	"read":      Read,
	"inventory": Inventory,
	"take":      Take,
	"drop":      Drop,
	"put":       Put,
	"empty":     Empty,
	"fill":      Fill,
	"burn":      Burn,
	"eat":       Eat,
	"drink":     Drink,
	"wear":      Wear,
	"remove":    Remove,
	"on":        On,
	"off":       Off,
	"throw":     Throw,
	"give":      Give,
	"score":     Score,
	"hint":      Hint,
	"help":      Help,
	"wait":      Wait,
	"quit":      Quit,
}

// Handlers returns a fresh map of every built-in handler by name.
func Handlers() map[string]command.Handler {
	out := make(map[string]command.Handler, len(handlers))
	for k, v := range handlers {
		out[k] = v
	}
	return out
}

// Known reports whether name is a built-in handler.
func Known(name string) bool {
	_, ok := handlers[name]
	return ok
}

// Names returns the handler names, sorted.
func Names() []string {
	names := make([]string, 0, len(handlers))
	for k := range handlers {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Resolve finds the live item called arg within scope:
//   - ScopeInventory: carried, directly or nested.
//   - ScopePresent: carried, or at the location. Items lying at the
//     location cannot be found in the dark.
//   - ScopeAny: any live item.
func Resolve(ctx *command.Context, arg string, scope types.Scope) (*items.Item, bool) {
	w := ctx.World
	lit := w.Lit()
	for _, it := range w.Items.Live() {
		if !it.Matches(arg) {
			continue
		}
		switch scope {
		case types.ScopeInventory:
			if w.Carried(it) {
				return it, true
			}
		case types.ScopePresent:
			if w.Carried(it) || (lit && w.Present(it)) {
				return it, true
			}
		default:
			return it, true
		}
	}
	return nil, false
}

func noSuch(arg string) types.Response {
	return types.Response{Key: "no_such", Arg: arg}
}

func say(key string, it *items.Item) types.Response {
	return types.Response{Key: key, Arg: it.Short}
}

func problem(p items.Problem, it *items.Item) types.Response {
	return types.Response{Key: string(p), Arg: it.Short}
}

func none() (types.Response, error) { return types.Response{}, nil }

// extract pulls it out of any container holding it.
func extract(ctx *command.Context, it *items.Item) {
	if owner := it.Owner(); owner.Kind == types.OwnerItem {
		pool := ctx.World.Items
		pool.RemoveCertain(pool.Get(owner.Item), it.ID)
	}
}

// retire removes it from play, detaching it from its container first.
func retire(ctx *command.Context, it *items.Item) {
	pool := ctx.World.Items
	if owner := it.Owner(); owner.Kind == types.OwnerItem {
		pool.RetireCertain(pool.Get(owner.Item), it.ID)
		return
	}
	pool.Retire(it)
}
