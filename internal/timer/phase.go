// Package timer drives an interval workout: phase transitions, drift-free
// pause and resume, timed cues and progress snapshots.
package timer

// Kind names a stage of the workout state machine.
//
//	Idle --Start--> Intro --intro ends--> Round(1)
//
//	Round(n) --ends, n < total, rest > 0--> Rest --ends--> Round(n+1)
//	Round(n) --ends, n < total, rest == 0-----------------> Round(n+1)
//	Round(n) --ends, n == total--> Completed
//
//	Intro, Round, Rest --Pause--> Paused{prev} --Resume--> prev
//	any --Stop--> Idle
type Kind int

const (
	Idle Kind = iota
	Intro
	Round
	Rest
	Paused
	Completed
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Idle:
		return "Idle"
	case Intro:
		return "Intro"
	case Round:
		return "Round"
	case Rest:
		return "Rest"
	case Paused:
		return "Paused"
	case Completed:
		return "Completed"
	default:
		return "Unknown"
	}
}

// Timed reports whether the kind has a configured duration.
func (k Kind) Timed() bool {
	return k == Round || k == Rest
}

// Phase is the current stage. A Paused phase carries the stage it
// interrupted, so resuming can never land in an inconsistent stage.
type Phase struct {
	kind        Kind
	interrupted Kind
}

func phaseOf(k Kind) Phase {
	return Phase{kind: k}
}

func pausedFrom(k Kind) Phase {
	return Phase{kind: Paused, interrupted: k}
}

// Kind returns the stage.
func (p Phase) Kind() Kind { return p.kind }

// Interrupted returns the stage a Paused phase resumes into.
func (p Phase) Interrupted() (Kind, bool) {
	if p.kind != Paused {
		return Idle, false
	}
	return p.interrupted, true
}

// Current returns the stage whose timing applies: the interrupted stage
// while paused, the stage itself otherwise.
func (p Phase) Current() Kind {
	if p.kind == Paused {
		return p.interrupted
	}
	return p.kind
}

// Active reports whether the workout is running and can be paused.
func (p Phase) Active() bool {
	return p.kind == Intro || p.kind == Round || p.kind == Rest
}

func (p Phase) String() string {
	if p.kind == Paused {
		return "Paused(" + p.interrupted.String() + ")"
	}
	return p.kind.String()
}
