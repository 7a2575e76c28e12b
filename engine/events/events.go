// Package events runs scripted events after each turn. Events are checked
// once, in load order; effects of one event are visible to the next.
package events

import (
	"github.com/nathoo/stranded/engine/effects"
	"github.com/nathoo/stranded/engine/rules"
	"github.com/nathoo/stranded/engine/state"
	"github.com/nathoo/stranded/types"
)

// Due reports whether ev's timing allows it to fire on turn.
func Due(ev types.EventDef, turn int) bool {
	if ev.Turn > 0 && turn < ev.Turn {
		return false
	}
	if ev.Every > 0 && turn%ev.Every != 0 {
		return false
	}
	return true
}

// Evaluate fires every event that is not spent, is due and whose
// conditions hold. It returns the ids fired and the text produced. A dead
// player stops evaluation.
func Evaluate(w *state.World) (fired []string, output []string) {
	for _, ev := range w.Defs.Events {
		if !w.Player.Alive() {
			break
		}
		if w.Spent[ev.ID] || !Due(ev, w.Turn) {
			continue
		}
		if !rules.EvalAllConditions(ev.Conditions, w) {
			continue
		}
		output = append(output, effects.Apply(w, ev.Effects)...)
		fired = append(fired, ev.ID)
		if ev.Once {
			w.Spent[ev.ID] = true
		}
	}
	return fired, output
}
