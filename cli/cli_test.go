package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathoo/stranded/config"
	"github.com/nathoo/stranded/engine"
	"github.com/nathoo/stranded/engine/items"
	"github.com/nathoo/stranded/engine/state"
	"github.com/nathoo/stranded/engine/text"
	"github.com/nathoo/stranded/engine/world"
	"github.com/nathoo/stranded/types"
)

// testDefs returns a two-room ship with a lamp on the deck. Every string
// renders as "key:arg".
func testDefs(t *testing.T) *state.Defs {
	t.Helper()
	safe := types.LocLight | types.LocAir | types.LocGravity | types.LocFloor
	var deckExits, galleyExits [types.NumDirections]types.LocationID
	deckExits[types.North] = 2
	galleyExits[types.South] = 1
	g, err := world.Build([]types.LocationDef{
		{ID: 1, Props: safe, Exits: deckExits, Short: "Deck", Long: "You are on the deck."},
		{ID: 2, Props: safe, Exits: galleyExits, Short: "Galley", Long: "You are in the galley."},
	})
	require.NoError(t, err)

	strs := map[string]string{}
	for _, k := range text.Required {
		strs[k] = k + ":$0"
	}
	for _, p := range items.Problems {
		strs[string(p)] = string(p) + ":$0"
	}

	return &state.Defs{
		Game:  types.GameDef{Title: "Test Ship", Intro: "Welcome aboard.", Start: 1, Capacity: 3, Penalty: 5},
		Graph: g,
		Items: []types.ItemDef{
			{ID: 1, Props: types.ItemMobile, Words: []string{"lamp"}, Short: "a lamp", Long: "A brass lamp", Owner: types.AtLocation(1)},
		},
		Commands: []types.CommandDef{
			{Name: "n", Props: types.CmdMovement, Handler: "go"},
			{Name: "s", Props: types.CmdMovement, Handler: "go"},
			{Name: "take", Props: types.CmdArgMandatory | types.CmdPresent, Handler: "take"},
			{Name: "look", Props: types.CmdArgOptional | types.CmdFree, Handler: "look"},
		},
		Strings: text.New(strs),
	}
}

func newTestCLI(t *testing.T, input string) (*CLI, *bytes.Buffer) {
	t.Helper()
	eng, err := engine.New(testDefs(t), nil)
	require.NoError(t, err)
	cfg := config.Default()
	var out bytes.Buffer
	c := New(eng, &cfg)
	c.In = strings.NewReader(input)
	c.Out = &out
	return c, &out
}

func TestCLI_IntroAndStartingLocation(t *testing.T) {
	c, out := newTestCLI(t, "")
	require.NoError(t, c.Run())

	output := out.String()
	assert.True(t, strings.HasPrefix(output, "Test Ship\n"))
	assert.Contains(t, output, "Welcome aboard.")
	assert.Contains(t, output, "You are on the deck.")
	assert.Contains(t, output, "here:a lamp")
}

func TestCLI_BasicGameplay(t *testing.T) {
	c, out := newTestCLI(t, "take the lamp\nN\n")
	require.NoError(t, c.Run())

	output := out.String()
	assert.Contains(t, output, "taken:a lamp")
	assert.Contains(t, output, "You are in the galley.")
}

func TestCLI_Again(t *testing.T) {
	c, out := newTestCLI(t, "again\ntake lamp\nagain\n")
	require.NoError(t, c.Run())

	output := out.String()
	assert.Contains(t, output, "[Nothing to repeat.]")
	assert.Contains(t, output, "taken:a lamp")
	assert.Contains(t, output, "already_have:a lamp")
}

func TestCLI_QuitStopsInput(t *testing.T) {
	c, out := newTestCLI(t, "/quit\nn\n")
	require.NoError(t, c.Run())

	output := out.String()
	assert.Contains(t, output, "[Goodbye.]")
	assert.NotContains(t, output, "galley")
	assert.False(t, c.Engine.World.Player.Playing())
}

func TestCLI_ScriptPlayback(t *testing.T) {
	c, out := newTestCLI(t, "# walk north\nn\n")
	c.EchoInput = true
	require.NoError(t, c.Run())

	output := out.String()
	assert.NotContains(t, output, "walk north")
	assert.Contains(t, output, c.Prompt+"n\n")
}

func TestCLI_MetaCommands(t *testing.T) {
	c, out := newTestCLI(t, "/status\n/help\n/bogus\n")
	require.NoError(t, c.Run())

	output := out.String()
	assert.Contains(t, output, "[Test Ship | Deck | score 0 | turn 0 | 0 instructions | alive]")
	assert.Contains(t, output, "Commands: look, n, s, take")
	assert.Contains(t, output, "Unknown command: /bogus")
}

func TestCLI_Trace(t *testing.T) {
	c, out := newTestCLI(t, "/trace\ntake lamp\n")
	require.NoError(t, c.Run())

	output := out.String()
	assert.Contains(t, output, "[Trace output enabled.]")
	assert.Contains(t, output, `[[trace] input [take lamp] -> command "take" arg "lamp"`)
	assert.Contains(t, output, "[[trace]   response taken")
}

func TestCLI_PrintWraps(t *testing.T) {
	c, out := newTestCLI(t, "")
	c.Width = 14
	c.Continuation = "> "
	c.Print("the quick brown fox jumps")
	assert.Equal(t, "the quick\n> brown fox\n> jumps\n", out.String())
}

func TestWrap(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  string
	}{
		{"short", 20, "short"},
		{"alpha beta gamma", 0, "alpha beta gamma"},
		{"one two\nthree", 40, "one two\nthree"},
		{"alpha beta gamma", 12, "alpha beta\n.gamma"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Wrap(tt.text, tt.width, "."), "%q at %d", tt.text, tt.width)
	}
}
