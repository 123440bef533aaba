// Package app contains the bubbletea model driving the workout timer.
package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tabata/internal/state"
	"github.com/llehouerou/tabata/internal/timer"
)

// EngineMessage is implemented by messages converted from engine events.
// External messages cannot implement it, so Update routes them separately.
type EngineMessage interface {
	tea.Msg
	engineMessage()
}

// SnapshotMsg carries the engine's latest progress.
type SnapshotMsg timer.Snapshot

func (SnapshotMsg) engineMessage() {}

// PhaseChangedMsg is sent on every phase transition.
type PhaseChangedMsg timer.PhaseChange

func (PhaseChangedMsg) engineMessage() {}

// CueFiredMsg is sent when the engine plays a cue.
type CueFiredMsg timer.CueEvent

func (CueFiredMsg) engineMessage() {}

// CompletedMsg is sent once when the final round ends.
type CompletedMsg timer.CompletedEvent

func (CompletedMsg) engineMessage() {}

// EngineErrorMsg reports a non-fatal engine failure such as a cue that
// could not be played.
type EngineErrorMsg timer.ErrorEvent

func (EngineErrorMsg) engineMessage() {}

// EngineClosedMsg is sent when the engine subscription is closed.
type EngineClosedMsg struct{}

func (EngineClosedMsg) engineMessage() {}

// StartResultMsg reports the outcome of starting a workout.
type StartResultMsg struct {
	Err error
}

// CueFlashTimeoutMsg clears the cue label. Seq ignores stale timeouts when
// cues fire in quick succession.
type CueFlashTimeoutMsg struct {
	Seq int
}

// HistoryUpdatedMsg carries the history totals after a session is recorded.
type HistoryUpdatedMsg struct {
	Totals state.Totals
}
