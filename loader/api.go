package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers the event constructor and its helpers as globals.
func registerAPI(L *lua.LState, coll *collector) {
	registerConstructors(L, coll)
	registerConditionHelpers(L)
	registerEffectHelpers(L)
}

func registerConstructors(L *lua.LState, coll *collector) {
	// Event "id" { turn = 3, every = 0, once = true, when = {...}, run = {...} }
	// Curried: Event("id") returns a function that takes the table.
	L.SetGlobal("Event", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		line := L.Where(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.events = append(coll.events, rawEvent{id: id, where: line, table: tbl})
			return 0
		}))
		return 1
	}))
}

// arg declares one positional argument of a helper.
type arg struct {
	name string
	kind lua.LValueType
	opt  bool
}

// helper registers a global that builds a table of the given type with
// one field per declared argument.
func helper(L *lua.LState, name, typ string, args ...arg) {
	L.SetGlobal(name, L.NewFunction(func(L *lua.LState) int {
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString(typ))
		for i, a := range args {
			n := i + 1
			if a.opt && L.Get(n) == lua.LNil {
				continue
			}
			switch a.kind {
			case lua.LTNumber:
				tbl.RawSetString(a.name, L.CheckNumber(n))
			case lua.LTString:
				tbl.RawSetString(a.name, lua.LString(L.CheckString(n)))
			case lua.LTBool:
				tbl.RawSetString(a.name, lua.LBool(L.CheckBool(n)))
			case lua.LTTable:
				tbl.RawSetString(a.name, L.CheckTable(n))
			}
		}
		L.Push(tbl)
		return 1
	}))
}

func num(name string) arg    { return arg{name: name, kind: lua.LTNumber} }
func optNum(name string) arg { return arg{name: name, kind: lua.LTNumber, opt: true} }
func str(name string) arg    { return arg{name: name, kind: lua.LTString} }
func optStr(name string) arg { return arg{name: name, kind: lua.LTString, opt: true} }

func registerConditionHelpers(L *lua.LState) {
	helper(L, "InLocation", "in_location", num("location"))
	helper(L, "Carrying", "carrying", num("item"))
	helper(L, "ItemAt", "item_at", num("item"), num("location"))
	helper(L, "ItemOn", "item_on", num("item"))
	helper(L, "FlagSet", "flag_set", str("flag"))
	helper(L, "FlagNot", "flag_not", str("flag"))
	helper(L, "Covered", "covered", str("prop"))

	// Not(condition)
	L.SetGlobal("Not", L.NewFunction(func(L *lua.LState) int {
		inner := L.CheckTable(1)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("not"))
		tbl.RawSetString("inner", inner)
		L.Push(tbl)
		return 1
	}))
}

func registerEffectHelpers(L *lua.LState) {
	helper(L, "Say", "say", str("text"))
	helper(L, "Message", "say", str("key"), optStr("arg"))
	helper(L, "MoveItem", "move_item", num("item"), optNum("location"))
	helper(L, "Retire", "retire", num("item"))
	helper(L, "Introduce", "introduce", num("item"), optNum("location"))
	helper(L, "SetProp", "set_prop", num("location"), str("prop"))
	helper(L, "ClearProp", "clear_prop", num("location"), str("prop"))
	helper(L, "Switch", "switch", num("item"), arg{name: "on", kind: lua.LTBool})
	helper(L, "Kill", "kill", optStr("text"))

	// GiveItem(id) moves an item straight into the inventory.
	L.SetGlobal("GiveItem", L.NewFunction(func(L *lua.LState) int {
		item := L.CheckNumber(1)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("move_item"))
		tbl.RawSetString("item", item)
		tbl.RawSetString("inventory", lua.LTrue)
		L.Push(tbl)
		return 1
	}))

	// SetFlag("flag", value) with value defaulting to true.
	L.SetGlobal("SetFlag", L.NewFunction(func(L *lua.LState) int {
		flag := L.CheckString(1)
		value := L.OptBool(2, true)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("set_flag"))
		tbl.RawSetString("flag", lua.LString(flag))
		tbl.RawSetString("value", lua.LBool(value))
		L.Push(tbl)
		return 1
	}))
}
