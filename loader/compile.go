package loader

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/stranded/types"
)

// collector accumulates Lua definitions while the script runs.
type collector struct {
	events []rawEvent
}

// rawEvent holds an event table before compilation.
type rawEvent struct {
	id    string
	where string // script position of the constructor call
	table *lua.LTable
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getBool returns a bool field from a Lua table, or the default if missing.
func getBool(tbl *lua.LTable, key string, def bool) bool {
	v := tbl.RawGetString(key)
	if b, ok := v.(lua.LBool); ok {
		return bool(b)
	}
	return def
}

// getInt returns an int field from a Lua table, or 0 if missing.
func getInt(tbl *lua.LTable, key string) int {
	v := tbl.RawGetString(key)
	if n, ok := v.(lua.LNumber); ok {
		return int(n)
	}
	return 0
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	v := tbl.RawGetString(key)
	if t, ok := v.(*lua.LTable); ok {
		return t
	}
	return nil
}

// toGoValue converts a Lua value to a Go value recursively. Integral
// numbers become int.
func toGoValue(v lua.LValue) any {
	switch val := v.(type) {
	case lua.LBool:
		return bool(val)
	case lua.LNumber:
		f := float64(val)
		if f == float64(int(f)) {
			return int(f)
		}
		return f
	case *lua.LNilType:
		return nil
	case lua.LString:
		return string(val)
	case *lua.LTable:
		if maxN := val.MaxN(); maxN > 0 {
			arr := make([]any, 0, maxN)
			for i := 1; i <= maxN; i++ {
				arr = append(arr, toGoValue(val.RawGetInt(i)))
			}
			return arr
		}
		return tableToAnyMap(val)
	default:
		return nil
	}
}

// tableToAnyMap converts a Lua table to a map[string]any.
func tableToAnyMap(tbl *lua.LTable) map[string]any {
	if tbl == nil {
		return nil
	}
	m := map[string]any{}
	tbl.ForEach(func(k, v lua.LValue) {
		if ks, ok := k.(lua.LString); ok {
			m[string(ks)] = toGoValue(v)
		}
	})
	return m
}

// compileEvents converts the collected event tables in script order.
func compileEvents(coll *collector) ([]types.EventDef, error) {
	defs := make([]types.EventDef, 0, len(coll.events))
	for _, raw := range coll.events {
		ev, err := compileEvent(raw)
		if err != nil {
			return nil, fmt.Errorf("%s compiling event %s: %w", raw.where, raw.id, err)
		}
		defs = append(defs, ev)
	}
	return defs, nil
}

func compileEvent(raw rawEvent) (types.EventDef, error) {
	tbl := raw.table
	ev := types.EventDef{
		ID:    raw.id,
		Turn:  getInt(tbl, "turn"),
		Every: getInt(tbl, "every"),
		Once:  getBool(tbl, "once", false),
	}
	if ev.Turn < 0 || ev.Every < 0 {
		return ev, fmt.Errorf("turn and every must not be negative")
	}
	var err error
	if ev.Conditions, err = compileConditions(getTable(tbl, "when")); err != nil {
		return ev, err
	}
	if ev.Effects, err = compileEffects(getTable(tbl, "run")); err != nil {
		return ev, err
	}
	if len(ev.Effects) == 0 {
		return ev, fmt.Errorf("no effects")
	}
	return ev, nil
}

// compileConditions converts a Lua conditions table to []Condition.
func compileConditions(tbl *lua.LTable) ([]types.Condition, error) {
	if tbl == nil {
		return nil, nil
	}
	var conditions []types.Condition
	var err error
	tbl.ForEach(func(_, v lua.LValue) {
		if err != nil {
			return
		}
		ct, ok := v.(*lua.LTable)
		if !ok {
			err = fmt.Errorf("condition is a %s, not a table", v.Type())
			return
		}
		var c types.Condition
		c, err = compileCondition(ct)
		conditions = append(conditions, c)
	})
	return conditions, err
}

func compileCondition(tbl *lua.LTable) (types.Condition, error) {
	c := types.Condition{
		Type:   getString(tbl, "type"),
		Params: map[string]any{},
	}
	if c.Type == "" {
		return c, fmt.Errorf("condition without a type")
	}

	if c.Type == "not" {
		inner := getTable(tbl, "inner")
		if inner == nil {
			return c, fmt.Errorf("not without an inner condition")
		}
		innerCond, err := compileCondition(inner)
		if err != nil {
			return c, err
		}
		c.Inner = &innerCond
		return c, nil
	}

	tbl.ForEach(func(k, v lua.LValue) {
		if ks, ok := k.(lua.LString); ok && string(ks) != "type" {
			c.Params[string(ks)] = toGoValue(v)
		}
	})
	return c, nil
}

// compileEffects converts a Lua effects table to []Effect.
func compileEffects(tbl *lua.LTable) ([]types.Effect, error) {
	if tbl == nil {
		return nil, nil
	}
	var effects []types.Effect
	var err error
	tbl.ForEach(func(_, v lua.LValue) {
		if err != nil {
			return
		}
		et, ok := v.(*lua.LTable)
		if !ok {
			err = fmt.Errorf("effect is a %s, not a table", v.Type())
			return
		}
		eff := types.Effect{
			Type:   getString(et, "type"),
			Params: map[string]any{},
		}
		if eff.Type == "" {
			err = fmt.Errorf("effect without a type")
			return
		}
		et.ForEach(func(k, v lua.LValue) {
			if ks, ok := k.(lua.LString); ok && string(ks) != "type" {
				eff.Params[string(ks)] = toGoValue(v)
			}
		})
		effects = append(effects, eff)
	})
	return effects, err
}
