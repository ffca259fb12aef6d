// Package quest tracks progression flags and the timed ending sequence.
package quest

// Flags are the session's progression booleans. Each one-shot trigger owns
// exactly one guard flag.
type Flags struct {
	HasKey             bool
	NoteRead           bool
	BookTaken          bool
	ScrollTaken        bool
	MapUnlocked        bool
	InfirmaryRevealed  bool
	GemUsed            bool
	HasTeleport        bool
	StrangerMet        bool
	HasStaff           bool
	HasDiamond         bool
	HasEmerald         bool
	HasOpal            bool
	StaffComplete      bool
	GameEnding         bool
	WaitingForContinue bool
	Escaped            bool
}

// Fire runs fn and sets *done when *done is still false. It reports whether
// fn ran.
func Fire(done *bool, fn func()) bool {
	if *done {
		return false
	}
	*done = true
	fn()
	return true
}

// Phase is a step of the ending sequence.
type Phase int

const (
	Idle Phase = iota
	White
	Yellow
	Red
	Black
	GameOver
)

var phaseNames = [...]string{"idle", "white", "yellow", "red", "black", "game over"}

func (p Phase) String() string {
	if p < Idle || p > GameOver {
		return "unknown"
	}
	return phaseNames[p]
}

// DefaultPhaseDuration is the time spent in each phase, in seconds.
const DefaultPhaseDuration = 1.5

// Ending is the phase machine driven by accumulated real time.
type Ending struct {
	Phase Phase
	timer float64
}

// Start moves Idle to White. It reports false if the sequence already began.
func (e *Ending) Start() bool {
	if e.Phase != Idle {
		return false
	}
	e.Phase = White
	e.timer = 0
	return true
}

// Active reports whether the sequence has started.
func (e *Ending) Active() bool { return e.Phase != Idle }

// Over reports whether the terminal phase was reached.
func (e *Ending) Over() bool { return e.Phase == GameOver }

// Update accumulates dt and advances one phase per elapsed duration, stopping
// at GameOver. It reports whether the phase changed.
func (e *Ending) Update(dt, duration float64) bool {
	if e.Phase == Idle || e.Phase == GameOver {
		return false
	}
	e.timer += dt
	changed := false
	for e.timer >= duration && e.Phase < GameOver {
		e.timer -= duration
		e.Phase++
		changed = true
	}
	if e.Phase == GameOver {
		e.timer = 0
	}
	return changed
}
