package loader

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/retrodungeon/engine/state"
)

//go:embed content/*.lua
var content embed.FS

// collector accumulates Lua definitions during file execution.
type collector struct {
	game     *lua.LTable
	rooms    []rawDef
	items    []rawDef
	monsters []rawDef
}

// Option configures loading.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger receives validation warnings. The default discards them.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Default loads the dungeon compiled into the binary.
func Default(opts ...Option) (*state.Defs, error) {
	sub, err := fs.Sub(content, "content")
	if err != nil {
		return nil, fmt.Errorf("opening embedded content: %w", err)
	}
	return LoadFS(sub, opts...)
}

// Load reads all .lua files from dir. See LoadFS.
func Load(dir string, opts ...Option) (*state.Defs, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("reading world directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("world path %s is not a directory", dir)
	}
	return LoadFS(os.DirFS(dir), opts...)
}

// LoadFS reads all .lua files at the root of fsys, compiles them into game
// definitions, validates references, and returns the immutable Defs. The Lua
// VM is discarded after loading.
func LoadFS(fsys fs.FS, opts ...Option) (*state.Defs, error) {
	o := options{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&o)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("reading world files: %w", err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lua") {
			luaFiles = append(luaFiles, e.Name())
		}
	}
	if len(luaFiles) == 0 {
		return nil, fmt.Errorf("no .lua files found")
	}

	// game.lua first, rest alphabetical.
	luaFiles = sortedLuaFiles(luaFiles)

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	openSafeLibs(L)
	sandbox(L)

	coll := &collector{}
	registerAPI(L, coll)

	for _, f := range luaFiles {
		src, err := fs.ReadFile(fsys, f)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f, err)
		}
		fn, err := L.Load(bytes.NewReader(src), f)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", f, err)
		}
		L.Push(fn)
		if err := L.PCall(0, lua.MultRet, nil); err != nil {
			return nil, fmt.Errorf("executing %s: %w", f, err)
		}
	}

	defs, err := compile(coll)
	if err != nil {
		return nil, fmt.Errorf("compiling game data: %w", err)
	}

	warnings, err := validate(defs)
	for _, w := range warnings {
		o.logger.Warn("content warning", "detail", w)
	}
	if err != nil {
		return nil, err
	}

	o.logger.Info("world loaded",
		"title", defs.Game.Title,
		"files", len(luaFiles),
		"rooms", len(defs.Rooms),
		"items", len(defs.Items),
		"species", len(defs.Species),
	)
	return defs, nil
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	// Base library (print, type, tostring, tonumber, pairs, ipairs, etc.)
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes globals that reach outside the VM or break determinism.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage", "require",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}

	if tbl, ok := L.GetGlobal("math").(*lua.LTable); ok {
		tbl.RawSetString("random", lua.LNil)
		tbl.RawSetString("randomseed", lua.LNil)
	}
}
