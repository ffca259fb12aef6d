// Package cli provides line-mode terminal I/O, output formatting, and
// meta-command dispatch for Retro Dungeon.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/nathoo/retrodungeon/engine"
	"github.com/nathoo/retrodungeon/engine/state"
	"github.com/nathoo/retrodungeon/types"
)

// frame is the largest simulation step; longer gaps are replayed in frames so
// monster timers behave as they do under the TUI tick.
const frame = 0.05

// maxCatchUp bounds how much wall-clock time one command replays.
const maxCatchUp = 10.0

// CLI handles line-mode interaction with the player.
type CLI struct {
	Engine    *engine.Engine
	Defs      *state.Defs
	In        io.Reader
	Out       io.Writer
	Trace     bool
	EchoInput bool             // echo each input line after the prompt (for script playback)
	Now       func() time.Time // wall clock; replaced in tests

	lastCmd  string // for "again"/"g" repeat
	lastTick time.Time
}

// New creates a CLI wired to the given engine.
func New(eng *engine.Engine, defs *state.Defs) *CLI {
	return &CLI{
		Engine: eng,
		Defs:   defs,
		In:     os.Stdin,
		Out:    os.Stdout,
		Now:    time.Now,
	}
}

// Run starts the game loop. It shows the intro, describes the starting room,
// then loops: prompt, input, catch up real time, dispatch, output.
func (c *CLI) Run() {
	if c.Now == nil {
		c.Now = time.Now
	}
	c.lastTick = c.Now()

	for _, line := range c.Defs.Game.Intro {
		c.printLine(line)
	}
	if len(c.Defs.Game.Intro) > 0 {
		c.printLine("")
	}

	c.printResult(c.Engine.Step("look"))

	scanner := bufio.NewScanner(c.In)
	for !c.Engine.Session.ShouldQuit {
		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		c.catchUp()

		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return // /quit
			}
			continue
		}

		// "again" / "g" repeats the last game command.
		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		c.show(c.Engine.Step(input))
	}
}

// catchUp advances the simulation by the wall-clock time since the last call.
func (c *CLI) catchUp() {
	now := c.Now()
	dt := now.Sub(c.lastTick).Seconds()
	c.lastTick = now
	c.advance(min(dt, maxCatchUp))
}

// advance runs Update over dt seconds in frame-sized steps.
func (c *CLI) advance(dt float64) {
	for dt > 0 {
		step := min(dt, frame)
		c.show(c.Engine.Update(step))
		dt -= step
	}
}

func (c *CLI) show(result types.Result) {
	c.printResult(result)
	if c.Trace {
		c.printTrace(result)
	}
}

// handleMeta dispatches meta-commands. Returns true if the game should exit.
func (c *CLI) handleMeta(input string) bool {
	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/help":
		c.cmdHelp()

	case "/state":
		c.cmdState()

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	case "/teleport", "/tp":
		if len(args) == 0 {
			c.printSystem("Usage: /teleport <room name>")
			break
		}
		c.show(c.Engine.TeleportTo(strings.Join(args, " ")))

	case "/attack":
		c.show(c.Engine.Attack())

	case "/move":
		c.cmdMove(args)

	case "/wait":
		c.cmdWait(args)

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

var moveDeltas = map[string][2]int{
	"north": {0, -1}, "n": {0, -1},
	"south": {0, 1}, "s": {0, 1},
	"east": {1, 0}, "e": {1, 0},
	"west": {-1, 0}, "w": {-1, 0},
}

func (c *CLI) cmdMove(args []string) {
	if len(args) == 0 {
		c.printSystem("Usage: /move <n|s|e|w> [steps]")
		return
	}
	d, ok := moveDeltas[strings.ToLower(args[0])]
	if !ok {
		c.printSystem(fmt.Sprintf("Unknown direction: %s.", args[0]))
		return
	}
	steps := 1
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 {
			c.printSystem(fmt.Sprintf("Bad step count: %s.", args[1]))
			return
		}
		steps = n
	}
	for range steps {
		c.Engine.MovePlayer(d[0], d[1])
	}
	p := c.Engine.Session.Player
	c.printSystem(fmt.Sprintf("Position: (%g, %g)", p.X, p.Y))
}

func (c *CLI) cmdWait(args []string) {
	seconds := 1.0
	if len(args) > 0 {
		f, err := strconv.ParseFloat(args[0], 64)
		if err != nil || f <= 0 {
			c.printSystem(fmt.Sprintf("Bad duration: %s.", args[0]))
			return
		}
		seconds = f
	}
	c.advance(seconds)
}

func (c *CLI) cmdHelp() {
	help := []string{
		"System:",
		"  /quit               Exit game",
		"  /help               Show this help",
		"  /state              Debug: dump current state",
		"  /trace              Toggle debug trace output",
		"  /teleport <room>    Teleport to an explored room (map must be open)",
		"  /attack             Attack the nearest monster",
		"  /move <dir> [n]     Walk inside the room (n, s, e, w)",
		"  /wait [seconds]     Let time pass",
		"",
		"Type 'help' for game commands. 'again' (g) repeats your last command.",
	}
	for _, line := range help {
		c.printLine(line)
	}
}

func (c *CLI) cmdState() {
	s := c.Engine.Session
	room := c.Engine.Room()
	c.printSystem(fmt.Sprintf("Session: %s (seed %d, rolls %d)", s.ID, c.Engine.RNG.Seed(), c.Engine.RNG.Position()))
	c.printSystem(fmt.Sprintf("Location: %s (%g, %g)", room.Tag, s.Player.X, s.Player.Y))
	c.printSystem(fmt.Sprintf("Health: %d/%d  Attack: %d  Armor: %d",
		s.Player.Health, state.MaxHealth, s.TotalAttack(), s.TotalArmor()))

	items := s.Inventory.Items()
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.Name
		w, a := s.Inventory.Equipped(i)
		switch {
		case w && a:
			names[i] += " [weapon, armor]"
		case w:
			names[i] += " [weapon]"
		case a:
			names[i] += " [armor]"
		}
	}
	c.printSystem(fmt.Sprintf("Inventory: %v", names))

	for _, m := range room.Monsters() {
		status := fmt.Sprintf("%d/%d", m.Health, c.Defs.MaxHealth(m.Species))
		if !m.Alive {
			status = "dead"
		}
		c.printSystem(fmt.Sprintf("Monster: %s at (%g, %g) %s aggro=%t", m.Name, m.X, m.Y, status, m.Aggro))
	}

	c.printSystem(fmt.Sprintf("Flags: %+v", s.Flags))
	if s.Ending.Active() {
		c.printSystem(fmt.Sprintf("Ending: %s", s.Ending.Phase))
	}
}

func (c *CLI) printTrace(result types.Result) {
	if len(result.Events) == 0 {
		return
	}
	c.printLine(fmt.Sprintf("[trace] Events: %d", len(result.Events)))
	for _, e := range result.Events {
		if len(e.Data) == 0 {
			c.printLine(fmt.Sprintf("[trace]   %s", e.Type))
			continue
		}
		c.printLine(fmt.Sprintf("[trace]   %s %v", e.Type, e.Data))
	}
}

func (c *CLI) printResult(result types.Result) {
	for _, line := range result.Output {
		c.printLine(line)
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
