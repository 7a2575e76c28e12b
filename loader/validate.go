package loader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nathoo/stranded/engine/actions"
	"github.com/nathoo/stranded/engine/effects"
	"github.com/nathoo/stranded/engine/items"
	"github.com/nathoo/stranded/engine/rules"
	"github.com/nathoo/stranded/engine/state"
	"github.com/nathoo/stranded/engine/text"
	"github.com/nathoo/stranded/engine/world"
	"github.com/nathoo/stranded/types"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

var validEffectTypes = map[string]bool{}

func init() {
	for _, t := range effects.Types {
		validEffectTypes[t] = true
	}
}

// Known condition types.
var validConditionTypes = map[string]bool{
	"in_location": true,
	"carrying":    true,
	"item_at":     true,
	"item_on":     true,
	"flag_set":    true,
	"flag_not":    true,
	"covered":     true,
	"not":         true,
}

// requiredStrings returns every key the engine may print.
func requiredStrings() []string {
	keys := append([]string(nil), text.Required...)
	for _, p := range items.Problems {
		keys = append(keys, string(p))
	}
	return keys
}

// validate checks the assembled defs for referential integrity.
func validate(defs *state.Defs, ix *index, p *problems) {
	g := defs.Graph

	game := defs.Game
	if game.Title == "" {
		p.add("params", ix.params["title"], "title must not be empty")
	}
	if !g.Has(game.Start) {
		p.add("params", ix.params["start"], "start location %d is not defined", game.Start)
	}
	if game.Treasury != 0 && !g.Has(game.Treasury) {
		p.add("params", ix.params["treasury"], "treasury location %d is not defined", game.Treasury)
	}
	if game.Capacity <= 0 {
		p.add("params", ix.params["capacity"], "capacity must be positive, got %d", game.Capacity)
	}
	if game.Penalty < 0 {
		p.add("params", ix.params["penalty"], "penalty must not be negative, got %d", game.Penalty)
	}

	ownersOK := true
	for _, it := range defs.Items {
		if it.Owner.Kind == types.OwnerLocation && !g.Has(it.Owner.Location) {
			p.add("items", ix.items[it.ID], "item %d is placed at undefined location %d", it.ID, it.Owner.Location)
			ownersOK = false
		}
		if it.Owner.Kind == types.OwnerItem {
			if _, ok := ix.items[it.Owner.Item]; !ok {
				p.add("items", ix.items[it.ID], "item %d is inside undefined item %d", it.ID, it.Owner.Item)
				ownersOK = false
			}
		}
	}
	if ownersOK {
		// Nesting only makes sense once every owner resolves.
		if _, err := items.NewPool(defs.Items); err != nil {
			p.add("items", 0, "%v", err)
		}
	}

	seen := map[string]int{}
	for i, cmd := range defs.Commands {
		line := ix.commands[i]
		switch {
		case cmd.Name == "":
			p.add("commands", line, "command without a name")
		case seen[cmd.Name] != 0:
			p.add("commands", line, "duplicate command %q (first on line %d)", cmd.Name, seen[cmd.Name])
		case !actions.Known(cmd.Handler):
			p.add("commands", line, "command %q names unknown handler %q", cmd.Name, cmd.Handler)
		}
		if seen[cmd.Name] == 0 {
			seen[cmd.Name] = line
		}
	}

	for _, key := range defs.Strings.Missing(requiredStrings()) {
		p.add("strings", 0, "missing required string %q", key)
	}

	validateEvents(defs, ix, p)
}

func validateEvents(defs *state.Defs, ix *index, p *problems) {
	seen := map[string]bool{}
	for _, ev := range defs.Events {
		where := "event " + ev.ID
		if seen[ev.ID] {
			p.add("script", 0, "duplicate event %q", ev.ID)
		}
		seen[ev.ID] = true

		for _, c := range ev.Conditions {
			validateCondition(c, defs, ix, where, p)
		}
		for _, eff := range ev.Effects {
			if !validEffectTypes[eff.Type] {
				p.add("script", 0, "%s: unknown effect type %q", where, eff.Type)
				continue
			}
			validateRefs(eff.Params, defs, ix, where, p)
			if key, ok := eff.Params["key"].(string); ok && !defs.Strings.Has(key) {
				p.add("script", 0, "%s: unknown string %q", where, key)
			}
			if eff.Type == "set_prop" || eff.Type == "clear_prop" {
				name, _ := eff.Params["prop"].(string)
				if _, ok := world.ParseProp(name); !ok {
					p.add("script", 0, "%s: unknown location property %q", where, name)
				}
			}
		}
	}
}

func validateCondition(c types.Condition, defs *state.Defs, ix *index, where string, p *problems) {
	if !validConditionTypes[c.Type] {
		p.add("script", 0, "%s: unknown condition type %q", where, c.Type)
		return
	}
	if c.Type == "not" {
		if c.Inner != nil {
			validateCondition(*c.Inner, defs, ix, where, p)
		}
		return
	}
	if c.Type == "covered" {
		name, _ := c.Params["prop"].(string)
		if _, ok := rules.Coverage[name]; !ok {
			p.add("script", 0, "%s: unknown coverage %q", where, name)
		}
	}
	validateRefs(c.Params, defs, ix, where, p)
}

// validateRefs checks the item and location ids a condition or effect
// names. Location 0 stands for the player's location.
func validateRefs(params map[string]any, defs *state.Defs, ix *index, where string, p *problems) {
	if v, ok := params["item"]; ok {
		if _, known := ix.items[types.ItemID(rules.ToInt(v))]; !known {
			p.add("script", 0, "%s: unknown item %v", where, v)
		}
	}
	if v, ok := params["location"]; ok {
		if id := types.LocationID(rules.ToInt(v)); id != 0 && !defs.Graph.Has(id) {
			p.add("script", 0, "%s: unknown location %v", where, v)
		}
	}
}

// linkLine reports the line of the location a graph build error is about.
func linkLine(err error, ix *index) int {
	var le *world.LinkError
	if errors.As(err, &le) {
		return ix.locations[le.From]
	}
	return 0
}
