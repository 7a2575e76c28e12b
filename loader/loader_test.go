package loader

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathoo/stranded/types"
)

// fixture is a small but complete data file, one slice of lines per
// section.
type fixture struct {
	sections [numSections][]string
}

func newFixture() *fixture {
	f := &fixture{}
	f.sections[secParams] = []string{
		"title\tThe Wreck",
		"start\t1",
		"capacity\t5",
		"treasury\t2",
		"intro\tYou wake up.\\nEverything hurts.",
	}
	f.sections[secLocations] = []string{
		loc(1, map[types.Direction]int{types.North: 2}, "7", "Bridge", "You are on the bridge.", "Consoles blink."),
		loc(2, map[types.Direction]int{types.South: 1}, "0x17", "Hold", "You are in the cargo hold.", ""),
	}
	f.sections[secItems] = []string{
		"1\t1A\t1\t0\tI\tLamp,Torch\tlamp\ta brass lamp\tIt is dented.",
		"2\t1\t0\t3\tL2\tbox,crate\tbox\ta wooden box\t\tPROPERTY OF HMS",
		"3\t8002\t1\t0\tC2\tgem\tgem\ta red gem\t\t",
	}
	f.sections[secCommands] = []string{
		"N\t4\tgo",
		"take\t9\ttake",
		"look\t2\tlook",
	}
	for _, key := range requiredStrings() {
		f.sections[secStrings] = append(f.sections[secStrings], key+"\t"+key+":$0")
	}
	f.sections[secHints] = []string{"1\tTry the lamp."}
	f.sections[secScript] = []string{
		`Event "hum" {`,
		`  every = 2,`,
		`  when = { InLocation(1), Not(FlagSet("quiet")) },`,
		`  run = { Say("The engines hum.") },`,
		`}`,
		`Event "alarm" { turn = 3, once = true, run = { SetFlag("alarm"), SetProp(0, "hazard"), Message("here", "siren"), Retire(3) } }`,
	}
	return f
}

func loc(id int, exits map[types.Direction]int, props, short, long, desc string) string {
	fields := []string{strconv.Itoa(id)}
	for d := types.Direction(0); d < types.NumDirections; d++ {
		if to, ok := exits[d]; ok {
			fields = append(fields, strconv.Itoa(to))
		} else {
			fields = append(fields, "")
		}
	}
	fields = append(fields, props, short, long, desc)
	return strings.Join(fields, "\t")
}

func (f *fixture) String() string {
	var sb strings.Builder
	for _, lines := range f.sections {
		for _, l := range lines {
			sb.WriteString(l)
			sb.WriteByte('\n')
		}
		sb.WriteString(Terminator + "\n")
	}
	return sb.String()
}

// without drops every line of section sec that starts with prefix.
func (f *fixture) without(sec int, prefix string) *fixture {
	var kept []string
	for _, l := range f.sections[sec] {
		if !strings.HasPrefix(l, prefix) {
			kept = append(kept, l)
		}
	}
	f.sections[sec] = kept
	return f
}

func (f *fixture) with(sec int, lines ...string) *fixture {
	f.sections[sec] = append(f.sections[sec], lines...)
	return f
}

func writeFile(t *testing.T, name, content string, compress bool) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	out, err := os.Create(path)
	require.NoError(t, err)
	defer out.Close()
	if !compress {
		_, err = out.WriteString(content)
		require.NoError(t, err)
		return path
	}
	zw := gzip.NewWriter(out)
	_, err = zw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return path
}

func TestParse_Fixture(t *testing.T) {
	defs, err := Parse(strings.NewReader(newFixture().String()))
	require.NoError(t, err)

	assert.Equal(t, types.GameDef{
		Title:    "The Wreck",
		Intro:    "You wake up.\nEverything hurts.",
		Start:    1,
		Treasury: 2,
		Capacity: 5,
		Penalty:  DefaultPenalty,
	}, defs.Game)

	assert.Equal(t, 2, defs.Graph.Len())
	bridge, err := defs.Graph.Get(1)
	require.NoError(t, err)
	to, ok := bridge.Exit(types.North)
	assert.True(t, ok)
	assert.Equal(t, types.LocationID(2), to)
	assert.Equal(t, types.LocLight|types.LocAir|types.LocGravity, bridge.Props)
	hold, _ := defs.Graph.Get(2)
	assert.True(t, hold.Props.Has(types.LocFloor))

	require.Len(t, defs.Items, 3)
	lamp := defs.Items[0]
	assert.Equal(t, []string{"lamp", "torch"}, lamp.Words, "words are case-folded")
	assert.Equal(t, types.Inventory, lamp.Owner)
	assert.True(t, lamp.Props.Has(types.ItemMobile|types.ItemSwitchable|types.ItemLight))
	assert.Empty(t, lamp.Writing, "writing field may be omitted")
	assert.Equal(t, "PROPERTY OF HMS", defs.Items[1].Writing)
	assert.Equal(t, types.InItem(2), defs.Items[2].Owner)
	assert.True(t, defs.Items[2].Props.Has(types.ItemTreasure))

	require.Len(t, defs.Commands, 3)
	assert.Equal(t, types.CommandDef{Name: "n", Props: types.CmdMovement, Handler: "go"}, defs.Commands[0])
	assert.Equal(t, types.CmdArgMandatory|types.CmdPresent, defs.Commands[1].Props)

	assert.Equal(t, "taken:lamp", defs.Strings.Format("taken", "lamp"))
	body, ok := defs.Hints.Raw("1")
	assert.True(t, ok)
	assert.Equal(t, "Try the lamp.", body)
}

func TestParse_Events(t *testing.T) {
	defs, err := Parse(strings.NewReader(newFixture().String()))
	require.NoError(t, err)
	require.Len(t, defs.Events, 2)

	hum := defs.Events[0]
	assert.Equal(t, "hum", hum.ID)
	assert.Equal(t, 2, hum.Every)
	assert.False(t, hum.Once)
	require.Len(t, hum.Conditions, 2)
	assert.Equal(t, "in_location", hum.Conditions[0].Type)
	assert.Equal(t, 1, hum.Conditions[0].Params["location"])
	assert.Equal(t, "not", hum.Conditions[1].Type)
	require.NotNil(t, hum.Conditions[1].Inner)
	assert.Equal(t, "flag_set", hum.Conditions[1].Inner.Type)
	assert.Equal(t, []types.Effect{{Type: "say", Params: map[string]any{"text": "The engines hum."}}}, hum.Effects)

	alarm := defs.Events[1]
	assert.Equal(t, 3, alarm.Turn)
	assert.True(t, alarm.Once)
	require.Len(t, alarm.Effects, 4)
	assert.Equal(t, map[string]any{"flag": "alarm", "value": true}, alarm.Effects[0].Params)
	assert.Equal(t, map[string]any{"location": 0, "prop": "hazard"}, alarm.Effects[1].Params)
	assert.Equal(t, map[string]any{"key": "here", "arg": "siren"}, alarm.Effects[2].Params)
	assert.Equal(t, "retire", alarm.Effects[3].Type)
}

func TestParse_EmptyScript(t *testing.T) {
	f := newFixture()
	f.sections[secScript] = nil
	defs, err := Parse(strings.NewReader(f.String()))
	require.NoError(t, err)
	assert.Empty(t, defs.Events)
}

func TestLoad_GzipMatchesPlain(t *testing.T) {
	content := newFixture().String()
	plain, err := Load(writeFile(t, "wreck.dat", content, false))
	require.NoError(t, err)
	packed, err := Load(writeFile(t, "wreck.dat.gz", content, true))
	require.NoError(t, err)

	assert.Equal(t, plain.Game, packed.Game)
	assert.Equal(t, plain.Items, packed.Items)
	assert.Equal(t, plain.Commands, packed.Commands)
	assert.Equal(t, plain.Events, packed.Events)
	assert.Equal(t, plain.Strings.Keys(), packed.Strings.Keys())
	assert.Equal(t, plain.Graph.IDs(), packed.Graph.IDs())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.dat"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening data file")
}

func TestParse_MissingSection(t *testing.T) {
	content := strings.TrimSuffix(newFixture().String(), Terminator+"\n")
	_, err := Parse(strings.NewReader(content))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing script section terminator")
}

func TestParse_TrailingData(t *testing.T) {
	_, err := Parse(strings.NewReader(newFixture().String() + "stray\n"))
	var le *LineError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "end", le.Section)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		modify func(f *fixture)
		want   string
	}{
		{"short location", func(f *fixture) { f.with(secLocations, "3\t1\t2") }, "short record"},
		{"bad props", func(f *fixture) {
			f.without(secLocations, "2\t").with(secLocations, loc(2, nil, "zz", "Hold", "", ""))
		}, `bad property mask "zz"`},
		{"unresolved exit", func(f *fixture) {
			f.with(secLocations, loc(3, map[types.Direction]int{types.Up: 9}, "7", "Shaft", "", ""))
		}, "points to undefined location 9"},
		{"duplicate location", func(f *fixture) { f.with(secLocations, loc(1, nil, "7", "Again", "", "")) }, "duplicate location id 1"},
		{"duplicate item", func(f *fixture) { f.with(secItems, "1\t2\t1\t0\tN\tspare\tspare\ta spare\t") }, "duplicate item id 1"},
		{"bad owner", func(f *fixture) { f.with(secItems, "4\t2\t1\t0\tQ7\tcoin\tcoin\ta coin\t") }, `bad owner "Q7"`},
		{"owner location", func(f *fixture) { f.with(secItems, "4\t2\t1\t0\tL42\tcoin\tcoin\ta coin\t") }, "undefined location 42"},
		{"owner item", func(f *fixture) { f.with(secItems, "4\t2\t1\t0\tC42\tcoin\tcoin\ta coin\t") }, "undefined item 42"},
		{"bad nesting", func(f *fixture) {
			f.without(secItems, "3\t").with(secItems, "3\t8002\t5\t0\tC2\tgem\tgem\ta red gem\t")
		}, "too_big"},
		{"unknown handler", func(f *fixture) { f.with(secCommands, "grab\t1\tsnatch") }, `unknown handler "snatch"`},
		{"duplicate command", func(f *fixture) { f.with(secCommands, "look\t2\tlook") }, `duplicate command "look"`},
		{"missing string", func(f *fixture) { f.without(secStrings, "dark\t") }, `missing required string "dark"`},
		{"missing problem string", func(f *fixture) { f.without(secStrings, "too_big\t") }, `missing required string "too_big"`},
		{"missing param", func(f *fixture) { f.without(secParams, "capacity") }, `missing required parameter "capacity"`},
		{"bad start", func(f *fixture) { f.without(secParams, "start").with(secParams, "start\t7") }, "start location 7"},
		{"event item", func(f *fixture) { f.with(secScript, `Event "x" { run = { Retire(99) } }`) }, "unknown item 99"},
		{"event location", func(f *fixture) { f.with(secScript, `Event "x" { when = { InLocation(8) }, run = { Say("hi") } }`) }, "unknown location 8"},
		{"event string", func(f *fixture) { f.with(secScript, `Event "x" { run = { Message("nope") } }`) }, `unknown string "nope"`},
		{"event prop", func(f *fixture) { f.with(secScript, `Event "x" { run = { SetProp(1, "sparkle") } }`) }, `unknown location property "sparkle"`},
		{"event coverage", func(f *fixture) { f.with(secScript, `Event "x" { when = { Covered("luck") }, run = { Say("hi") } }`) }, `unknown coverage "luck"`},
		{"duplicate event", func(f *fixture) { f.with(secScript, `Event "hum" { run = { Say("again") } }`) }, `duplicate event "hum"`},
		{"no effects", func(f *fixture) { f.with(secScript, `Event "x" { once = true }`) }, "no effects"},
		{"syntax", func(f *fixture) { f.with(secScript, `Event "x" {`) }, "parsing script"},
		{"sandboxed", func(f *fixture) { f.with(secScript, `dofile("/etc/passwd")`) }, "running script"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			tt.modify(f)
			_, err := Parse(strings.NewReader(f.String()))
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Contains(t, strings.Join(ve.Errors, "\n"), tt.want)
		})
	}
}

func TestParse_ErrorsCarryLines(t *testing.T) {
	f := newFixture()
	f.with(secCommands, "grab\t1\tsnatch")
	_, err := Parse(strings.NewReader(f.String()))
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)

	// params(5) + %% + locations(2) + %% + items(3) + %% + commands(4)
	assert.Contains(t, ve.Errors[0], "line 17 (commands)")
}

func TestParse_CollectsEveryError(t *testing.T) {
	f := newFixture()
	f.with(secItems, "9\tnothex\t1\t0\tI\tx\tx\tx\t")
	f.with(secCommands, "x\t1")
	_, err := Parse(strings.NewReader(f.String()))
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Errors, 2)
}

func TestParse_UnknownParamIsWarning(t *testing.T) {
	f := newFixture().with(secParams, "author\tSomeone", "penalty\t2")
	defs, err := Parse(strings.NewReader(f.String()))
	require.NoError(t, err)
	assert.Equal(t, 2, defs.Game.Penalty)
}
