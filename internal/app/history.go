package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/llehouerou/tabata/internal/state"
)

func (m *Model) loadTotals() {
	if m.history == nil {
		return
	}
	t, err := m.history.Totals()
	if err != nil {
		log.Warn().Err(err).Msg("failed to load workout history")
		return
	}
	m.totals = t
}

// finishSession ends the running session and returns the command recording
// it, or nil when there is nothing worth keeping. Workouts stopped before the
// first round ends are not recorded.
func (m *Model) finishSession(completed bool) tea.Cmd {
	if m.sessionStart.IsZero() {
		return nil
	}
	s := state.Session{
		StartedAt:  m.sessionStart,
		EndedAt:    m.now(),
		Preset:     m.PresetName(),
		Workout:    m.cfg,
		RoundsDone: m.engine.State().RoundsDone(),
		Completed:  completed,
	}
	m.sessionStart = time.Time{}

	if m.history == nil || (!completed && s.RoundsDone == 0) {
		return nil
	}
	return RecordSessionCmd(m.history, s)
}

// RecordSessionCmd stores s and reports the new totals. Failures are logged
// and produce no message.
func RecordSessionCmd(h state.Interface, s state.Session) tea.Cmd {
	return func() tea.Msg {
		if err := h.RecordSession(s); err != nil {
			log.Warn().Err(err).Msg("failed to record workout session")
			return nil
		}
		t, err := h.Totals()
		if err != nil {
			log.Warn().Err(err).Msg("failed to load workout history")
			return nil
		}
		return HistoryUpdatedMsg{Totals: t}
	}
}
