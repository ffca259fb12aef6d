// Package loader loads Lua world content into Go structs at startup.
// The Lua VM is discarded after loading; nothing runs Lua during play.
package loader

import (
	"fmt"
	"sort"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/retrodungeon/engine/state"
	"github.com/nathoo/retrodungeon/types"
)

// rawDef holds a tagged definition table before compilation.
type rawDef struct {
	tag   string
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

// getNumber returns a numeric field from a Lua table, or 0 if missing.
func getNumber(tbl *lua.LTable, key string) float64 {
	v := tbl.RawGetString(key)
	if n, ok := v.(lua.LNumber); ok {
		return float64(n)
	}
	return 0
}

// getInt returns an int field from a Lua table, or 0 if missing.
func getInt(tbl *lua.LTable, key string) int {
	return int(getNumber(tbl, key))
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	v := tbl.RawGetString(key)
	if t, ok := v.(*lua.LTable); ok {
		return t
	}
	return nil
}

// tableToStringMap converts a Lua table to a map[string]string.
func tableToStringMap(tbl *lua.LTable) map[string]string {
	if tbl == nil {
		return nil
	}
	m := map[string]string{}
	tbl.ForEach(func(k, v lua.LValue) {
		if ks, ok := k.(lua.LString); ok {
			if vs, ok := v.(lua.LString); ok {
				m[string(ks)] = string(vs)
			}
		}
	})
	return m
}

// stringList reads the array part of a field. A bare string is a list of one.
func stringList(tbl *lua.LTable, key string) ([]string, error) {
	switch v := tbl.RawGetString(key).(type) {
	case *lua.LNilType:
		return nil, nil
	case lua.LString:
		return []string{string(v)}, nil
	case *lua.LTable:
		out := make([]string, 0, v.MaxN())
		for i := 1; i <= v.MaxN(); i++ {
			s, ok := v.RawGetInt(i).(lua.LString)
			if !ok {
				return nil, fmt.Errorf("%s[%d] must be a string", key, i)
			}
			out = append(out, string(s))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%s must be a string or a list of strings", key)
	}
}

// tables reads the array part of a field as a list of tables.
func tables(tbl *lua.LTable, key string) ([]*lua.LTable, error) {
	list := getTable(tbl, key)
	if list == nil {
		return nil, nil
	}
	out := make([]*lua.LTable, 0, list.MaxN())
	for i := 1; i <= list.MaxN(); i++ {
		t, ok := list.RawGetInt(i).(*lua.LTable)
		if !ok {
			return nil, fmt.Errorf("%s[%d] must be a table", key, i)
		}
		out = append(out, t)
	}
	return out, nil
}

// compile converts all collected Lua data into a Defs struct.
func compile(coll *collector) (*state.Defs, error) {
	defs := &state.Defs{
		Items:   map[string]types.Item{},
		Species: map[string]types.MonsterDef{},
	}

	if coll.game == nil {
		return nil, fmt.Errorf("no Game{} definition found")
	}
	game, err := compileGame(coll.game)
	if err != nil {
		return nil, fmt.Errorf("compiling Game: %w", err)
	}
	defs.Game = game

	for _, raw := range coll.items {
		item, err := compileItem(raw)
		if err != nil {
			return nil, fmt.Errorf("compiling item %s: %w", raw.tag, err)
		}
		if _, dup := defs.Items[item.Tag]; dup {
			return nil, fmt.Errorf("item %s defined more than once", raw.tag)
		}
		defs.Items[item.Tag] = item
	}

	for _, raw := range coll.monsters {
		m := compileMonster(raw)
		if _, dup := defs.Species[m.Tag]; dup {
			return nil, fmt.Errorf("monster %s defined more than once", raw.tag)
		}
		defs.Species[m.Tag] = m
	}

	// Rooms keep source order: it is the arena order.
	seen := map[string]bool{}
	for _, raw := range coll.rooms {
		if seen[raw.tag] {
			return nil, fmt.Errorf("room %s defined more than once", raw.tag)
		}
		seen[raw.tag] = true
		room, err := compileRoom(raw)
		if err != nil {
			return nil, fmt.Errorf("compiling room %s: %w", raw.tag, err)
		}
		defs.Rooms = append(defs.Rooms, room)
	}

	return defs, nil
}

func compileGame(tbl *lua.LTable) (types.GameDef, error) {
	intro, err := stringList(tbl, "intro")
	if err != nil {
		return types.GameDef{}, err
	}
	game := types.GameDef{
		Title:   getString(tbl, "title"),
		Author:  getString(tbl, "author"),
		Version: getString(tbl, "version"),
		Start:   getString(tbl, "start"),
		Intro:   intro,
	}
	if p := getTable(tbl, "player"); p != nil {
		game.Player = types.PlayerDef{
			Health: getInt(p, "health"),
			Attack: getInt(p, "attack"),
			Armor:  getInt(p, "armor"),
		}
	}
	if game.Player.Health == 0 {
		game.Player.Health = state.MaxHealth
	}
	return game, nil
}

var itemKinds = map[string]types.ItemKind{
	"":       types.KindMisc,
	"misc":   types.KindMisc,
	"weapon": types.KindWeapon,
	"armor":  types.KindArmor,
}

func compileItem(raw rawDef) (types.Item, error) {
	tbl := raw.table
	kindName := getString(tbl, "kind")
	kind, ok := itemKinds[kindName]
	if !ok {
		return types.Item{}, fmt.Errorf("unknown kind %q", kindName)
	}
	name := getString(tbl, "name")
	if name == "" {
		name = raw.tag
	}
	return types.Item{
		Tag:         raw.tag,
		Name:        name,
		Description: getString(tbl, "description"),
		// Items are takeable unless explicitly set.
		Takeable: getBool(tbl, "takeable", true),
		Kind:     kind,
		Damage:   getInt(tbl, "damage"),
		Armor:    getInt(tbl, "armor"),
	}, nil
}

func compileMonster(raw rawDef) types.MonsterDef {
	tbl := raw.table
	name := getString(tbl, "name")
	if name == "" {
		name = raw.tag
	}
	m := types.MonsterDef{
		Tag:         raw.tag,
		Name:        name,
		Description: getString(tbl, "description"),
		Health:      getInt(tbl, "health"),
		MaxHealth:   getInt(tbl, "max_health"),
		Attack:      getInt(tbl, "attack"),
		AggroRange:  getNumber(tbl, "aggro_range"),
	}
	if m.MaxHealth == 0 {
		m.MaxHealth = m.Health
	}
	return m
}

func compileRoom(raw rawDef) (types.RoomDef, error) {
	tbl := raw.table
	room := types.RoomDef{
		Tag:         raw.tag,
		Name:        getString(tbl, "name"),
		Description: getString(tbl, "description"),
		Exits:       tableToStringMap(getTable(tbl, "exits")),
	}

	items, err := stringList(tbl, "items")
	if err != nil {
		return room, err
	}
	room.Items = items

	spawns, err := tables(tbl, "monsters")
	if err != nil {
		return room, err
	}
	for _, sp := range spawns {
		room.Monsters = append(room.Monsters, types.SpawnDef{
			Species: getString(sp, "species"),
			X:       getNumber(sp, "x"),
			Y:       getNumber(sp, "y"),
		})
	}

	rects, err := tables(tbl, "furniture")
	if err != nil {
		return room, err
	}
	for _, r := range rects {
		room.Furniture = append(room.Furniture, types.Rect{
			X1: getInt(r, "x1"),
			Y1: getInt(r, "y1"),
			X2: getInt(r, "x2"),
			Y2: getInt(r, "y2"),
		})
	}

	if m := getTable(tbl, "map"); m != nil {
		room.MapX, room.MapY = getInt(m, "x"), getInt(m, "y")
	}
	return room, nil
}

// sortedLuaFiles returns .lua files with game.lua first and the rest sorted
// alphabetically.
func sortedLuaFiles(files []string) []string {
	var gameFile string
	var others []string
	for _, f := range files {
		if f == "game.lua" {
			gameFile = f
		} else {
			others = append(others, f)
		}
	}
	sort.Strings(others)
	if gameFile != "" {
		return append([]string{gameFile}, others...)
	}
	return others
}
