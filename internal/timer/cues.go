package timer

import (
	"fmt"
	"time"

	"github.com/llehouerou/tabata/internal/audio"
)

// CueKind identifies a cue fired before a phase boundary.
type CueKind uint8

const (
	CueStop      CueKind = 1 << iota // Round: "3, 2, 1, stop"
	CueNextRound                     // Rest: announces the next round number
	CueGo                            // Rest: "5, 4, 3, 2, 1, go"
)

func (c CueKind) String() string {
	switch c {
	case CueStop:
		return "stop"
	case CueNextRound:
		return "next-round"
	case CueGo:
		return "go"
	default:
		return "intro"
	}
}

// cueSet records which cues fired in the current phase instance.
type cueSet uint8

func (s cueSet) has(c CueKind) bool { return s&cueSet(c) != 0 }

// Window is an inclusive range of remaining phase time.
type Window struct {
	Min time.Duration
	Max time.Duration
}

// Contains reports whether remaining falls inside the window.
func (w Window) Contains(remaining time.Duration) bool {
	return remaining >= w.Min && remaining <= w.Max
}

// CueWindows holds the firing window of each cue. The defaults are tuned to
// the shipped recordings so the audible end of each cue lands on the phase
// boundary.
type CueWindows struct {
	Stop      Window
	NextRound Window
	Go        Window
}

// DefaultCueWindows returns the windows matching the bundled cue assets.
func DefaultCueWindows() CueWindows {
	return CueWindows{
		Stop:      Window{Min: 1900 * time.Millisecond, Max: 2100 * time.Millisecond},
		NextRound: Window{Min: 7900 * time.Millisecond, Max: 8100 * time.Millisecond},
		Go:        Window{Min: 3900 * time.Millisecond, Max: 4100 * time.Millisecond},
	}
}

// Validate rejects negative or inverted windows.
func (w CueWindows) Validate() error {
	for _, c := range []struct {
		name string
		w    Window
	}{{"stop", w.Stop}, {"next_round", w.NextRound}, {"go", w.Go}} {
		if c.w.Min < 0 || c.w.Max < c.w.Min {
			return fmt.Errorf("cue window %s: invalid range [%s, %s]", c.name, c.w.Min, c.w.Max)
		}
	}
	return nil
}

type cueFire struct {
	kind  CueKind
	id    audio.CueID
	round int
}

// dueCues returns the cues to play for a tick with remaining time left in a
// phase of kind k, and the flags to set. A next-round cue beyond the last
// recorded announcement is marked without being played.
func dueCues(w CueWindows, k Kind, round int, remaining time.Duration, fired cueSet) ([]cueFire, cueSet) {
	var (
		fire []cueFire
		mark cueSet
	)
	check := func(c CueKind, win Window, id audio.CueID, play bool) {
		if fired.has(c) || !win.Contains(remaining) {
			return
		}
		mark |= cueSet(c)
		if play {
			fire = append(fire, cueFire{kind: c, id: id, round: round})
		}
	}

	switch k {
	case Round:
		check(CueStop, w.Stop, audio.CueStop, true)
	case Rest:
		next := round + 1
		check(CueNextRound, w.NextRound, audio.RoundCue(next), next <= audio.MaxRoundCue)
		check(CueGo, w.Go, audio.CueCountdownGo, true)
	}
	return fire, mark
}
