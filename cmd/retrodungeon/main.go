// Retro Dungeon is a real-time text adventure in a fifteen-room dungeon.
// Usage: retrodungeon [--version] [--plain] [--script <file>] [--trace]
//
//	[--config <file>] [--world <dir>] [--seed <n>]
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/nathoo/retrodungeon/cli"
	"github.com/nathoo/retrodungeon/config"
	"github.com/nathoo/retrodungeon/engine"
	"github.com/nathoo/retrodungeon/engine/state"
	"github.com/nathoo/retrodungeon/loader"
	"github.com/nathoo/retrodungeon/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = "Usage: retrodungeon [--version] [--plain] [--script <file>] [--trace] [--config <file>] [--world <dir>] [--seed <n>]"

type options struct {
	plain      bool
	trace      bool
	scriptFile string
	configFile string
	worldDir   string
	seed       int64
	seedSet    bool
}

func main() {
	opts, ok := parseArgs(os.Args[1:])
	if !ok {
		return
	}

	cfg, err := config.Load(opts.configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if opts.worldDir != "" {
		cfg.World = opts.worldDir
	}
	if opts.seedSet {
		cfg.Seed = opts.seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	plain := opts.plain || opts.scriptFile != "" || !isTerminal()
	logger, closeLog, err := newLogger(cfg, plain)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	// Load and compile Lua world content.
	defs, err := loadWorld(cfg.World, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading world: %v\n", err)
		os.Exit(1)
	}

	eng, err := engine.New(defs,
		engine.WithSeed(cfg.Seed),
		engine.WithLogger(logger),
		engine.WithTiming(cfg.Timing()),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting game: %v\n", err)
		os.Exit(1)
	}

	// Script mode: open file, force plain, echo commands.
	if opts.scriptFile != "" {
		f, err := os.Open(opts.scriptFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		printBanner(defs)
		c := cli.New(eng, defs)
		c.In = f
		c.EchoInput = true
		c.Trace = opts.trace
		c.Run()
		return
	}

	// Use plain CLI if --plain flag or stdout is not a terminal.
	if plain {
		printBanner(defs)
		c := cli.New(eng, defs)
		c.Trace = opts.trace
		c.Run()
		return
	}

	err = tui.Run(eng, defs,
		tui.WithMaxMessages(cfg.MaxMessages),
		tui.WithTickInterval(cfg.TickInterval),
		tui.WithLogger(logger),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// parseArgs reads the command line. It reports false when the program should
// exit without playing.
func parseArgs(args []string) (options, bool) {
	var opts options
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("retrodungeon %s (commit %s, built %s)\n", version, commit, date)
			return opts, false
		case "--help", "-h":
			fmt.Println(usage)
			return opts, false
		case "--plain":
			opts.plain = true
		case "--trace":
			opts.trace = true
		case "--script", "--config", "--world", "--seed":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "%s requires a value\n", args[i])
				os.Exit(1)
			}
			i++
			if err := opts.set(args[i-1], args[i]); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		default:
			fmt.Fprintf(os.Stderr, "Unknown argument %q\n%s\n", args[i], usage)
			os.Exit(1)
		}
	}
	return opts, true
}

func (o *options) set(flag, value string) error {
	switch flag {
	case "--script":
		o.scriptFile = value
	case "--config":
		o.configFile = value
	case "--world":
		o.worldDir = value
	case "--seed":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("--seed: invalid number %q", value)
		}
		o.seed, o.seedSet = n, true
	}
	return nil
}

// newLogger sends logs to the configured file, to stderr in plain mode, or
// nowhere while Bubble Tea owns the terminal.
func newLogger(cfg *config.Config, plain bool) (*slog.Logger, func(), error) {
	var w io.Writer = io.Discard
	closeFn := func() {}
	switch {
	case cfg.LogFile != "":
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening %s: %w", cfg.LogFile, err)
		}
		w = f
		closeFn = func() { f.Close() }
	case plain:
		w = os.Stderr
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.Level()})
	return slog.New(handler), closeFn, nil
}

func loadWorld(dir string, logger *slog.Logger) (*state.Defs, error) {
	if dir == "" {
		return loader.Default(loader.WithLogger(logger))
	}
	return loader.Load(dir, loader.WithLogger(logger))
}

func printBanner(defs *state.Defs) {
	g := defs.Game
	if g.Author != "" {
		fmt.Printf("%s v%s by %s\n\n", g.Title, g.Version, g.Author)
		return
	}
	fmt.Printf("%s v%s\n\n", g.Title, g.Version)
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
