// Package effects implements centralized world mutation for scripted events
// via the Apply function. Every effect type is one atomic operation.
package effects

import (
	"github.com/nathoo/stranded/engine/items"
	"github.com/nathoo/stranded/engine/rules"
	"github.com/nathoo/stranded/engine/state"
	"github.com/nathoo/stranded/engine/world"
	"github.com/nathoo/stranded/types"
)

// Types lists every effect type Apply understands.
var Types = []string{
	"say", "move_item", "retire", "introduce",
	"set_prop", "clear_prop", "set_flag", "switch", "kill",
}

// Apply applies effects to the world in order and returns the text they
// produce. Effects naming unknown items are skipped; the loader rejects
// such scripts.
func Apply(w *state.World, effects []types.Effect) []string {
	var output []string

	for _, eff := range effects {
		switch eff.Type {
		case "say":
			output = append(output, sayText(w, eff.Params))

		case "move_item":
			it := item(w, eff.Params)
			if it == nil {
				continue
			}
			extract(w.Items, it)
			if inv, _ := eff.Params["inventory"].(bool); inv {
				w.Items.Move(it, types.Inventory)
			} else {
				w.Items.Move(it, types.AtLocation(location(w, eff.Params)))
			}

		case "retire":
			if it := item(w, eff.Params); it != nil {
				if owner := it.Owner(); owner.Kind == types.OwnerItem {
					w.Items.RetireCertain(w.Items.Get(owner.Item), it.ID)
				} else {
					w.Items.Retire(it)
				}
			}

		case "introduce":
			// Only nursery items can be introduced.
			if it := item(w, eff.Params); it != nil && it.Owner() == types.Nursery {
				w.Items.Move(it, types.AtLocation(location(w, eff.Params)))
			}

		case "set_prop", "clear_prop":
			name, _ := eff.Params["prop"].(string)
			if p, ok := world.ParseProp(name); ok {
				w.SetLocationProp(location(w, eff.Params), p, eff.Type == "set_prop")
			}

		case "set_flag":
			flag, _ := eff.Params["flag"].(string)
			value, ok := eff.Params["value"].(bool)
			if !ok {
				value = true
			}
			w.Flags[flag] = value

		case "switch":
			if it := item(w, eff.Params); it != nil && it.Is(types.ItemSwitchable) {
				it.On, _ = eff.Params["on"].(bool)
			}

		case "kill":
			if text := sayText(w, eff.Params); text != "" {
				output = append(output, text)
			}
			w.Player.Die()

		default:
			// Unknown effect types are ignored.
		}
	}

	return output
}

// sayText renders literal text, or a string-table key with an optional
// argument.
func sayText(w *state.World, params map[string]any) string {
	if key, ok := params["key"].(string); ok {
		arg, _ := params["arg"].(string)
		return w.Strings.Format(key, arg)
	}
	text, _ := params["text"].(string)
	return text
}

func item(w *state.World, params map[string]any) *items.Item {
	return w.Items.Get(types.ItemID(rules.ToInt(params["item"])))
}

// location reads the "location" param. Zero means the player's location.
func location(w *state.World, params map[string]any) types.LocationID {
	if id := types.LocationID(rules.ToInt(params["location"])); id != 0 {
		return id
	}
	return w.Player.Location
}

func extract(pool *items.Pool, it *items.Item) {
	if owner := it.Owner(); owner.Kind == types.OwnerItem {
		pool.RemoveCertain(pool.Get(owner.Item), it.ID)
	}
}
