// Package loader reads a data file into the definitions the engine plays
// from. The file is gzip-compressed or plain text; its last section is a
// Lua script that runs once in a sandboxed VM to declare events. The VM is
// discarded after loading.
package loader

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/stranded/engine/state"
	"github.com/nathoo/stranded/engine/text"
	"github.com/nathoo/stranded/engine/world"
	"github.com/nathoo/stranded/types"
)

var gzipMagic = []byte{0x1f, 0x8b}

// Load reads the data file at path.
func Load(path string) (*state.Defs, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening data file: %w", err)
	}
	defer f.Close()

	defs, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return defs, nil
}

// Parse reads a data file from r, validates every cross reference and
// returns the frozen definitions. Record-level problems are collected into
// a *ValidationError.
func Parse(r io.Reader) (*state.Defs, error) {
	br := bufio.NewReader(r)
	var src io.Reader = br
	if magic, _ := br.Peek(len(gzipMagic)); bytes.Equal(magic, gzipMagic) {
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("opening gzip stream: %w", err)
		}
		defer zr.Close()
		src = zr
	}

	secs, err := readSections(src)
	if err != nil {
		return nil, err
	}

	ix := newIndex()
	p := &problems{}
	defs := &state.Defs{}
	defs.Game = parseParams(secs[secParams], ix, p)
	locs := parseLocations(secs[secLocations], ix, p)
	defs.Items = parseItems(secs[secItems], ix, p)
	defs.Commands = parseCommands(secs[secCommands], ix, p)
	defs.Strings = text.New(parseTable(secs[secStrings], p))
	defs.Hints = text.New(parseTable(secs[secHints], p))

	script := secs[secScript]
	if defs.Events, err = runScript(strings.Join(script.raw, "\n")); err != nil {
		p.add(script.name, script.start, "%v", err)
	}
	if err := p.err(); err != nil {
		return nil, err
	}

	if defs.Graph, err = world.Build(locs); err != nil {
		p.add(secs[secLocations].name, linkLine(err, ix), "%v", err)
		return nil, p.err()
	}

	validate(defs, ix, p)
	for _, w := range p.warnings {
		slog.Warn("data file", "warning", w)
	}
	if err := p.err(); err != nil {
		return nil, err
	}

	slog.Debug("data file loaded",
		"title", defs.Game.Title,
		"locations", defs.Graph.Len(),
		"items", len(defs.Items),
		"commands", len(defs.Commands),
		"strings", defs.Strings.Len(),
		"hints", defs.Hints.Len(),
		"events", len(defs.Events),
	)
	return defs, nil
}

// runScript executes the script section and compiles the events it
// declares. An empty script declares none.
func runScript(src string) ([]types.EventDef, error) {
	if strings.TrimSpace(src) == "" {
		return nil, nil
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	openSafeLibs(L)
	sandbox(L)

	coll := &collector{}
	registerAPI(L, coll)

	fn, err := L.Load(strings.NewReader(src), "script")
	if err != nil {
		return nil, fmt.Errorf("parsing script: %w", err)
	}
	L.Push(fn)
	if err := L.PCall(0, lua.MultRet, nil); err != nil {
		return nil, fmt.Errorf("running script: %w", err)
	}

	return compileEvents(coll)
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	// Base library (print, type, tostring, tonumber, pairs, ipairs, etc.)
	lua.OpenBase(L)
	// Table library (table.insert, table.sort, etc.)
	lua.OpenTable(L)
	// String library (string.format, string.sub, etc.)
	lua.OpenString(L)
	// Math library (math.floor, math.max, etc.)
	lua.OpenMath(L)
}

// sandbox removes dangerous globals and functions.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage", "print",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}

	// Events must fire the same way on every run.
	if mathTbl := L.GetGlobal("math"); mathTbl != lua.LNil {
		if tbl, ok := mathTbl.(*lua.LTable); ok {
			tbl.RawSetString("random", lua.LNil)
			tbl.RawSetString("randomseed", lua.LNil)
		}
	}
}
