package timer

import (
	"time"

	"github.com/llehouerou/tabata/internal/audio"
)

// PhaseChange is emitted on every transition.
type PhaseChange struct {
	Previous Phase
	Current  Phase
	Round    int
}

// CueEvent is emitted when a cue starts playing.
//
// Intro cues carry Intro set and a zero Kind. A next-round cue skipped for
// lack of a recording emits nothing.
type CueEvent struct {
	Cue   audio.CueID
	Kind  CueKind
	Round int
	Intro bool
}

// CompletedEvent is emitted once when the last round ends.
type CompletedEvent struct {
	Rounds   int
	Duration time.Duration
}

// ErrorEvent is emitted when audio fails during a workout. The workout keeps
// running.
type ErrorEvent struct {
	Operation string // "intro", "cue"
	Cue       audio.CueID
	Err       error
}
