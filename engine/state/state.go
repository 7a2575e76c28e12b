// Package state holds the immutable definitions produced by the loader and
// the live world built from them, with property lookups that layer runtime
// overrides on top of the loaded data.
package state

import (
	"fmt"

	"github.com/nathoo/stranded/engine/items"
	"github.com/nathoo/stranded/engine/player"
	"github.com/nathoo/stranded/engine/text"
	"github.com/nathoo/stranded/engine/world"
	"github.com/nathoo/stranded/types"
)

// TreasureWeight is the score earned per unit of treasure value.
const TreasureWeight = 10

// Defs holds the definitions loaded from a data file. The graph topology is
// frozen; everything mutable is copied into a World.
type Defs struct {
	Game     types.GameDef
	Graph    *world.Graph
	Items    []types.ItemDef
	Commands []types.CommandDef
	Strings  *text.Table
	Hints    *text.Table
	Events   []types.EventDef
}

// World is the complete mutable game state.
type World struct {
	Defs    *Defs
	Graph   *world.Graph
	Items   *items.Pool
	Player  *player.Player
	Strings *text.Table
	Hints   *text.Table

	Turn    int
	Flags   map[string]bool
	Visited map[types.LocationID]bool
	Spent   map[string]bool // events that fired and may not fire again

	props map[types.LocationID]types.LocationProps
}

// NewWorld creates a fresh world from definitions.
func NewWorld(defs *Defs) (*World, error) {
	pool, err := items.NewPool(defs.Items)
	if err != nil {
		return nil, fmt.Errorf("placing items: %w", err)
	}
	if !defs.Graph.Has(defs.Game.Start) {
		return nil, fmt.Errorf("start location %d: %w", defs.Game.Start, world.ErrNotFound)
	}
	strs, hints := defs.Strings, defs.Hints
	if strs == nil {
		strs = text.New(nil)
	}
	if hints == nil {
		hints = text.New(nil)
	}
	return &World{
		Defs:    defs,
		Graph:   defs.Graph,
		Items:   pool,
		Player:  player.New(defs.Game.Start, defs.Game.Capacity),
		Strings: strs,
		Hints:   hints,
		Flags:   map[string]bool{},
		Visited: map[types.LocationID]bool{},
		Spent:   map[string]bool{},
		props:   map[types.LocationID]types.LocationProps{},
	}, nil
}

// Location returns the player's current location.
func (w *World) Location() *world.Location {
	loc, err := w.Graph.Get(w.Player.Location)
	if err != nil {
		panic(fmt.Sprintf("player is at %v", err))
	}
	return loc
}

// Here is the owner context of the player's location.
func (w *World) Here() types.Owner {
	return types.AtLocation(w.Player.Location)
}

// LocationProps returns the effective properties of a location: the
// runtime override when one is set, else the loaded value.
func (w *World) LocationProps(id types.LocationID) types.LocationProps {
	if p, ok := w.props[id]; ok {
		return p
	}
	loc, err := w.Graph.Get(id)
	if err != nil {
		return 0
	}
	return loc.Props
}

// SetLocationProp sets or clears flag on a location.
func (w *World) SetLocationProp(id types.LocationID, flag types.LocationProps, on bool) {
	p := w.LocationProps(id)
	if on {
		p |= flag
	} else {
		p &^= flag
	}
	w.props[id] = p
}

// GetFlag returns a script flag. Unset flags are false.
func (w *World) GetFlag(name string) bool { return w.Flags[name] }

// Inventory returns the items the player carries directly.
func (w *World) Inventory() []*items.Item {
	return w.Items.At(types.Inventory)
}

// Carried reports whether it is in the inventory, directly or nested.
func (w *World) Carried(it *items.Item) bool {
	return it.Live() && w.Items.Root(it) == types.Inventory
}

// Present reports whether it is carried or at the current location,
// directly or nested.
func (w *World) Present(it *items.Item) bool {
	if !it.Live() {
		return false
	}
	root := w.Items.Root(it)
	return root == types.Inventory || root == w.Here()
}

// Covered reports whether anything the player carries provides flag.
func (w *World) Covered(flag types.ItemProps, onRequired bool) bool {
	for _, it := range w.Inventory() {
		if w.Items.EffectiveProperty(it, flag, onRequired) {
			return true
		}
	}
	return false
}

// HasAir reports breathable air for the player.
func (w *World) HasAir() bool {
	return w.LocationProps(w.Player.Location).Has(types.LocAir) || w.Covered(types.ItemAir, true)
}

// HasGravity reports whether the player is held down.
func (w *World) HasGravity() bool {
	return w.LocationProps(w.Player.Location).Has(types.LocGravity) || w.Covered(types.ItemGravity, true)
}

// Protected reports whether the player survives the current location's
// hazard, if it has one.
func (w *World) Protected() bool {
	return !w.LocationProps(w.Player.Location).Has(types.LocHazard) || w.Covered(types.ItemAntiHazard, false)
}

// Lit reports whether the player can see: the location is lit, or a light
// source is carried or lying here.
func (w *World) Lit() bool {
	if w.LocationProps(w.Player.Location).Has(types.LocLight) || w.Covered(types.ItemLight, true) {
		return true
	}
	for _, it := range w.Items.At(w.Here()) {
		if w.Items.EffectiveProperty(it, types.ItemLight, true) {
			return true
		}
	}
	return false
}

// Safe reports whether a location sustains life without equipment.
func (w *World) Safe(loc *world.Location) bool {
	p := w.LocationProps(loc.ID)
	return p.Has(types.LocAir|types.LocGravity) && !p.Has(types.LocHazard)
}

// SafeLocation returns the nearest safe location to the player, falling
// back to the start location.
func (w *World) SafeLocation() types.LocationID {
	if id, ok := w.Graph.Nearest(w.Player.Location, w.Safe); ok {
		return id
	}
	return w.Defs.Game.Start
}

// Score is the banked score plus the weighted value of every treasure
// deposited in the treasury.
func (w *World) Score() int {
	score := w.Player.Score
	if w.Defs.Game.Treasury == 0 {
		return score
	}
	for _, it := range w.Items.At(types.AtLocation(w.Defs.Game.Treasury)) {
		score += TreasureWeight * w.Items.TreasureValue(it)
	}
	return score
}

// Obstructed reports whether an obstruction lies at the current location.
func (w *World) Obstructed() bool {
	for _, it := range w.Items.At(w.Here()) {
		if it.Is(types.ItemObstruction) {
			return true
		}
	}
	return false
}
