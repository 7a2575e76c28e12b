// Package rules evaluates the conditions attached to scripted events.
package rules

import (
	"github.com/nathoo/stranded/engine/state"
	"github.com/nathoo/stranded/types"
)

// Coverage names accepted by the "covered" condition.
var Coverage = map[string]func(w *state.World) bool{
	"air":        (*state.World).HasAir,
	"gravity":    (*state.World).HasGravity,
	"light":      (*state.World).Lit,
	"antihazard": func(w *state.World) bool { return w.Covered(types.ItemAntiHazard, false) },
}

// EvalCondition evaluates a single condition against the current world.
func EvalCondition(c types.Condition, w *state.World) bool {
	switch c.Type {
	case "in_location":
		return w.Player.Location == types.LocationID(ToInt(c.Params["location"]))

	case "carrying":
		it := w.Items.Get(types.ItemID(ToInt(c.Params["item"])))
		return it != nil && w.Carried(it)

	case "item_at":
		it := w.Items.Get(types.ItemID(ToInt(c.Params["item"])))
		if it == nil || !it.Live() {
			return false
		}
		return w.Items.Root(it) == types.AtLocation(types.LocationID(ToInt(c.Params["location"])))

	case "item_on":
		it := w.Items.Get(types.ItemID(ToInt(c.Params["item"])))
		return it != nil && it.Live() && it.On

	case "flag_set":
		flag, _ := c.Params["flag"].(string)
		return w.GetFlag(flag)

	case "flag_not":
		flag, _ := c.Params["flag"].(string)
		return !w.GetFlag(flag)

	case "covered":
		name, _ := c.Params["prop"].(string)
		check, ok := Coverage[name]
		return ok && check(w)

	case "not":
		if c.Inner == nil {
			return true
		}
		return !EvalCondition(*c.Inner, w)

	default:
		return false
	}
}

// EvalAllConditions returns true if all conditions pass (AND logic).
// An empty condition list is vacuously true.
func EvalAllConditions(conditions []types.Condition, w *state.World) bool {
	for _, c := range conditions {
		if !EvalCondition(c, w) {
			return false
		}
	}
	return true
}

// ToInt converts an any value to int, handling float64 from Lua.
func ToInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	case int64:
		return int(n)
	default:
		return 0
	}
}
