// Package player implements the player state machine: life, death,
// reincarnation and the per-turn counters.
package player

import "github.com/nathoo/stranded/types"

// State is the life state of the player.
type State int

const (
	// Alive: playing and able to act.
	Alive State = iota
	// Dead: playing, awaiting the reincarnation choice.
	Dead
	// Stopped: the turn loop is over.
	Stopped
)

func (s State) String() string {
	switch s {
	case Alive:
		return "alive"
	case Dead:
		return "dead"
	default:
		return "stopped"
	}
}

// Player holds the mutable player state. Inventory membership lives in the
// item pool (owner == Inventory); Capacity is the declared bound.
type Player struct {
	Location     types.LocationID
	Previous     types.LocationID
	Capacity     int
	Score        int
	Instructions int
	Hints        int
	Deaths       int

	alive   bool
	playing bool
}

// New returns a living player at start.
func New(start types.LocationID, capacity int) *Player {
	return &Player{
		Location: start,
		Capacity: capacity,
		alive:    true,
		playing:  true,
	}
}

// State reports the current life state.
func (p *Player) State() State {
	switch {
	case !p.playing:
		return Stopped
	case !p.alive:
		return Dead
	default:
		return Alive
	}
}

// Alive reports whether the player is playing and alive.
func (p *Player) Alive() bool { return p.State() == Alive }

// Playing reports whether the turn loop should continue.
func (p *Player) Playing() bool { return p.playing }

// MoveTo changes location, remembering where the player came from.
func (p *Player) MoveTo(id types.LocationID) {
	p.Previous = p.Location
	p.Location = id
}

// Die moves a living player to the Dead state. It reports whether the
// transition happened.
func (p *Player) Die() bool {
	if p.State() != Alive {
		return false
	}
	p.alive = false
	return true
}

// Reincarnate brings a dead player back at location at, applying penalty
// to the score.
func (p *Player) Reincarnate(at types.LocationID, penalty int) bool {
	if p.State() != Dead {
		return false
	}
	p.alive = true
	p.Deaths++
	p.Score -= penalty
	p.Location = at
	p.Previous = 0
	return true
}

// Stop ends play from any state.
func (p *Player) Stop() { p.playing = false }

// CountInstruction records one accepted input line.
func (p *Player) CountInstruction() { p.Instructions++ }

// Refund takes back an instruction for an exempt action.
func (p *Player) Refund() {
	if p.Instructions > 0 {
		p.Instructions--
	}
}

// CountHint records a hint request.
func (p *Player) CountHint() { p.Hints++ }
