package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers all Lua constructors and helpers as globals.
func registerAPI(L *lua.LState, coll *collector) {
	registerConstructors(L, coll)
	registerHelpers(L)
}

// curried registers a constructor used as Name "tag" { ... }. Name("tag")
// returns a function that takes the definition table.
func curried(L *lua.LState, name string, add func(tag string, tbl *lua.LTable)) {
	L.SetGlobal(name, L.NewFunction(func(L *lua.LState) int {
		tag := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			add(tag, L.CheckTable(1))
			return 0
		}))
		return 1
	}))
}

func registerConstructors(L *lua.LState, coll *collector) {
	// Game { title = "...", start = "...", player = { ... } }
	L.SetGlobal("Game", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		if coll.game != nil {
			L.RaiseError("Game{} defined more than once")
		}
		coll.game = tbl
		return 0
	}))

	curried(L, "Room", func(tag string, tbl *lua.LTable) {
		coll.rooms = append(coll.rooms, rawDef{tag: tag, table: tbl})
	})
	curried(L, "Item", func(tag string, tbl *lua.LTable) {
		coll.items = append(coll.items, rawDef{tag: tag, table: tbl})
	})
	curried(L, "Monster", func(tag string, tbl *lua.LTable) {
		coll.monsters = append(coll.monsters, rawDef{tag: tag, table: tbl})
	})
}

func registerHelpers(L *lua.LState) {
	// Spawn("species", x, y)
	L.SetGlobal("Spawn", L.NewFunction(func(L *lua.LState) int {
		species := L.CheckString(1)
		x := L.CheckNumber(2)
		y := L.CheckNumber(3)
		tbl := L.NewTable()
		tbl.RawSetString("species", lua.LString(species))
		tbl.RawSetString("x", x)
		tbl.RawSetString("y", y)
		L.Push(tbl)
		return 1
	}))

	// Rect(x1, y1, x2, y2) is an inclusive tile rectangle.
	L.SetGlobal("Rect", L.NewFunction(func(L *lua.LState) int {
		tbl := L.NewTable()
		for i, key := range []string{"x1", "y1", "x2", "y2"} {
			tbl.RawSetString(key, L.CheckNumber(i+1))
		}
		L.Push(tbl)
		return 1
	}))

	// Column(x, y1, y2) and Row(y, x1, x2) are one-tile-wide rectangles.
	L.SetGlobal("Column", L.NewFunction(func(L *lua.LState) int {
		x := L.CheckNumber(1)
		tbl := L.NewTable()
		tbl.RawSetString("x1", x)
		tbl.RawSetString("y1", L.CheckNumber(2))
		tbl.RawSetString("x2", x)
		tbl.RawSetString("y2", L.CheckNumber(3))
		L.Push(tbl)
		return 1
	}))
	L.SetGlobal("Row", L.NewFunction(func(L *lua.LState) int {
		y := L.CheckNumber(1)
		tbl := L.NewTable()
		tbl.RawSetString("x1", L.CheckNumber(2))
		tbl.RawSetString("y1", y)
		tbl.RawSetString("x2", L.CheckNumber(3))
		tbl.RawSetString("y2", y)
		L.Push(tbl)
		return 1
	}))
}
