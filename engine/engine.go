// Package engine provides the command interpreter and the real-time update
// that together mutate a single game session.
package engine

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/nathoo/retrodungeon/engine/monster"
	"github.com/nathoo/retrodungeon/engine/quest"
	"github.com/nathoo/retrodungeon/engine/state"
	"github.com/nathoo/retrodungeon/engine/world"
	"github.com/nathoo/retrodungeon/types"
)

// Timing holds every real-time interval the engine uses, in seconds.
type Timing struct {
	Monster       monster.Timing
	PhaseDuration float64
}

// DefaultTiming returns the standard pacing.
func DefaultTiming() Timing {
	return Timing{
		Monster:       monster.DefaultTiming(),
		PhaseDuration: quest.DefaultPhaseDuration,
	}
}

// Engine holds the game definitions and the session they were built into.
type Engine struct {
	Defs    *state.Defs
	Session *state.Session
	RNG     *RNG
	Timing  Timing

	log *slog.Logger
}

// Option configures an Engine.
type Option func(*options)

type options struct {
	seed   int64
	logger *slog.Logger
	timing Timing
}

// WithSeed seeds the engine's RNG.
func WithSeed(seed int64) Option {
	return func(o *options) { o.seed = seed }
}

// WithLogger sets the structured logger. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithTiming overrides the real-time intervals.
func WithTiming(t Timing) Option {
	return func(o *options) { o.timing = t }
}

// New creates an engine and a fresh session from definitions.
func New(defs *state.Defs, opts ...Option) (*Engine, error) {
	o := options{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		timing: DefaultTiming(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	if err := checkContent(defs); err != nil {
		return nil, err
	}

	s, err := state.NewSession(defs, o.timing.Monster)
	if err != nil {
		return nil, fmt.Errorf("building session: %w", err)
	}

	e := &Engine{
		Defs:    defs,
		Session: s,
		RNG:     NewRNG(o.seed),
		Timing:  o.timing,
		log:     o.logger.With("session", s.ID),
	}
	e.log.Info("session started", "start", defs.Game.Start, "rooms", len(defs.Rooms), "seed", o.seed)
	return e, nil
}

// checkContent verifies that every tag the interpreter switches on exists.
func checkContent(defs *state.Defs) error {
	have := make(map[string]bool, len(defs.Rooms))
	for _, r := range defs.Rooms {
		have[r.Tag] = true
	}
	for _, tag := range requiredRooms {
		if !have[tag] {
			return fmt.Errorf("content is missing required room %q", tag)
		}
	}
	for _, tag := range requiredItems {
		if _, ok := defs.Items[tag]; !ok {
			return fmt.Errorf("content is missing required item %q", tag)
		}
	}
	return nil
}

// Room returns the room the player is in.
func (e *Engine) Room() *world.Room {
	return e.Session.Room()
}

// room returns a required room by tag. New guarantees it exists.
func (e *Engine) room(tag string) *world.Room {
	r, _ := e.Session.World.ByTag(tag)
	return r
}

// describeRoom is the single composition used by look, go, and teleport.
func (e *Engine) describeRoom(r *world.Room) []string {
	out := []string{r.Name}
	out = append(out, r.Describe()...)

	exits := ""
	for i, dir := range r.Exits() {
		if i > 0 {
			exits += ", "
		}
		exits += dir
	}
	for _, d := range lockedDoors {
		if d.room != r.Tag || d.unlocked(&e.Session.Flags) {
			continue
		}
		if exits != "" {
			exits += ", "
		}
		exits += d.direction + " (locked)"
	}
	if exits != "" {
		out = append(out, "Exits: "+exits)
	}
	return out
}

func say(r *types.Result, lines ...string) {
	r.Output = append(r.Output, lines...)
}

func emit(r *types.Result, typ string, data map[string]any) {
	r.Events = append(r.Events, types.Event{Type: typ, Data: data})
}
