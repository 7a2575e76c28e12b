package command

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathoo/stranded/engine/state"
	"github.com/nathoo/stranded/engine/text"
	"github.com/nathoo/stranded/engine/world"
	"github.com/nathoo/stranded/types"
)

// fakeTerm records output and replays scripted input lines.
type fakeTerm struct {
	out   []string
	input [][]string
}

func (f *fakeTerm) Print(s string) { f.out = append(f.out, s) }

func (f *fakeTerm) Read() ([]string, error) {
	if len(f.input) == 0 {
		return nil, io.EOF
	}
	line := f.input[0]
	f.input = f.input[1:]
	return line, nil
}

type call struct {
	arg   string
	scope types.Scope
}

func testRegistry(t *testing.T, calls *[]call) *Registry {
	t.Helper()
	record := func(ctx *Context, arg string, scope types.Scope) (types.Response, error) {
		*calls = append(*calls, call{arg, scope})
		return types.Response{Key: "done", Arg: arg}, nil
	}
	defs := []types.CommandDef{
		{Name: "take", Props: types.CmdArgMandatory | types.CmdPresent | types.CmdInvertible, Handler: "take"},
		{Name: "drop", Props: types.CmdArgMandatory | types.CmdInventory | types.CmdPresent, Handler: "drop"},
		{Name: "look", Props: types.CmdArgOptional, Handler: "look"},
		{Name: "score", Props: types.CmdFree, Handler: "score"},
		{Name: "north", Props: types.CmdMovement, Handler: "go"},
		{Name: "read", Props: types.CmdArgMandatory, Handler: "read"},
	}
	handlers := map[string]Handler{}
	for _, d := range defs {
		handlers[d.Handler] = record
	}
	r, err := NewRegistry(defs, handlers)
	require.NoError(t, err)
	return r
}

func testContext(t *testing.T, term *fakeTerm) *Context {
	t.Helper()
	g, err := world.Build([]types.LocationDef{{ID: 1, Short: "Room"}})
	require.NoError(t, err)
	w, err := state.NewWorld(&state.Defs{
		Game:    types.GameDef{Start: 1},
		Graph:   g,
		Strings: text.New(map[string]string{"what": "What do you want to $0?", "done": "ok $0"}),
	})
	require.NoError(t, err)
	return NewContext(w, term)
}

func TestNewRegistry_UnknownHandler(t *testing.T) {
	_, err := NewRegistry([]types.CommandDef{{Name: "fly", Handler: "fly"}}, map[string]Handler{})
	var uh *UnknownHandlerError
	require.ErrorAs(t, err, &uh)
	assert.Equal(t, "fly", uh.Command)
}

func TestNewRegistry_Duplicate(t *testing.T) {
	h := map[string]Handler{"look": func(*Context, string, types.Scope) (types.Response, error) { return types.Response{}, nil }}
	_, err := NewRegistry([]types.CommandDef{{Name: "l", Handler: "look"}, {Name: "l", Handler: "look"}}, h)
	assert.Error(t, err)
}

func TestResolve(t *testing.T) {
	var calls []call
	r := testRegistry(t, &calls)

	tests := []struct {
		name    string
		tokens  []string
		command string
		arg     string
		ok      bool
	}{
		{"verb noun", []string{"take", "lamp"}, "take", "lamp", true},
		{"noun verb invertible", []string{"lamp", "take"}, "take", "lamp", true},
		{"noun verb not invertible", []string{"lamp", "drop"}, "", "", false},
		{"bare verb", []string{"look"}, "look", "", true},
		{"unknown single", []string{"xyzzy"}, "", "", false},
		{"unknown pair", []string{"xyzzy", "plugh"}, "", "", false},
		{"empty", nil, "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, arg, ok := r.Resolve(tt.tokens)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.command, c.Name)
				assert.Equal(t, tt.arg, arg)
			}
		})
	}
}

func TestExecute_Symmetry(t *testing.T) {
	var calls []call
	r := testRegistry(t, &calls)
	ctx := testContext(t, &fakeTerm{})

	for _, tokens := range [][]string{{"take", "lamp"}, {"lamp", "take"}} {
		c, arg, ok := r.Resolve(tokens)
		require.True(t, ok)
		_, err := r.Execute(ctx, c, arg)
		require.NoError(t, err)
	}
	require.Len(t, calls, 2)
	assert.Equal(t, calls[0], calls[1])
	assert.Equal(t, types.ScopePresent, calls[0].scope)
}

func TestExecute_Unexpected(t *testing.T) {
	var calls []call
	r := testRegistry(t, &calls)
	ctx := testContext(t, &fakeTerm{})

	c, _ := r.Lookup("score")
	resp, err := r.Execute(ctx, c, "lamp")
	require.NoError(t, err)
	assert.Equal(t, "unexpected", resp.Key)
	assert.Empty(t, calls)
}

func TestExecute_PromptsForMissingArgument(t *testing.T) {
	var calls []call
	r := testRegistry(t, &calls)
	term := &fakeTerm{input: [][]string{{"book", "quickly"}}}
	ctx := testContext(t, term)

	c, _ := r.Lookup("read")
	_, err := r.Execute(ctx, c, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"What do you want to read?"}, term.out)
	require.Len(t, calls, 1)
	assert.Equal(t, "book", calls[0].arg)
}

func TestExecute_PromptEOF(t *testing.T) {
	var calls []call
	r := testRegistry(t, &calls)
	ctx := testContext(t, &fakeTerm{})

	c, _ := r.Lookup("read")
	_, err := r.Execute(ctx, c, "")
	assert.True(t, errors.Is(err, io.EOF))
	assert.Empty(t, calls)
}

func TestExecute_MovementForcesArgument(t *testing.T) {
	var calls []call
	r := testRegistry(t, &calls)
	ctx := testContext(t, &fakeTerm{})

	c, _ := r.Lookup("north")
	_, err := r.Execute(ctx, c, "")
	require.NoError(t, err)
	require.Len(t, calls, 1)
	assert.Equal(t, "north", calls[0].arg)
}

func TestScope_InventoryWins(t *testing.T) {
	var calls []call
	r := testRegistry(t, &calls)

	drop, _ := r.Lookup("drop")
	assert.Equal(t, types.ScopeInventory, drop.Scope())
	look, _ := r.Lookup("look")
	assert.Equal(t, types.ScopeAny, look.Scope())
}
