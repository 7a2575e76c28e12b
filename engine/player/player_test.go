package player

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nathoo/stranded/types"
)

func TestNew(t *testing.T) {
	p := New(3, 6)
	assert.Equal(t, Alive, p.State())
	assert.True(t, p.Playing())
	assert.Equal(t, types.LocationID(3), p.Location)
	assert.Equal(t, 6, p.Capacity)
}

func TestLifecycle(t *testing.T) {
	p := New(1, 5)
	p.Score = 20

	assert.True(t, p.Die())
	assert.Equal(t, Dead, p.State())
	assert.False(t, p.Die(), "already dead")
	assert.True(t, p.Playing(), "dead players still await the choice")

	assert.True(t, p.Reincarnate(4, 5))
	assert.Equal(t, Alive, p.State())
	assert.Equal(t, types.LocationID(4), p.Location)
	assert.Equal(t, 15, p.Score)
	assert.Equal(t, 1, p.Deaths)
	assert.False(t, p.Reincarnate(4, 5), "only the dead reincarnate")

	p.Stop()
	assert.Equal(t, Stopped, p.State())
	assert.False(t, p.Alive())
	assert.False(t, p.Die())
}

func TestMoveTo(t *testing.T) {
	p := New(1, 5)
	p.MoveTo(2)
	p.MoveTo(3)
	assert.Equal(t, types.LocationID(3), p.Location)
	assert.Equal(t, types.LocationID(2), p.Previous)
}

func TestCounters(t *testing.T) {
	p := New(1, 5)
	p.CountInstruction()
	p.CountInstruction()
	p.Refund()
	assert.Equal(t, 1, p.Instructions)

	p.Refund()
	p.Refund()
	assert.Equal(t, 0, p.Instructions, "never negative")

	p.CountHint()
	assert.Equal(t, 1, p.Hints)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "alive", Alive.String())
	assert.Equal(t, "dead", Dead.String())
	assert.Equal(t, "stopped", Stopped.String())
}
