package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/llehouerou/tabata/internal/audio"
	"github.com/llehouerou/tabata/internal/errmsg"
	"github.com/llehouerou/tabata/internal/notify"
	"github.com/llehouerou/tabata/internal/state"
	"github.com/llehouerou/tabata/internal/timer"
	"github.com/llehouerou/tabata/internal/ui/action"
	"github.com/llehouerou/tabata/internal/ui/confirm"
	"github.com/llehouerou/tabata/internal/ui/form"
	"github.com/llehouerou/tabata/internal/ui/helpbindings"
	"github.com/llehouerou/tabata/internal/workout"
)

// startFailedHint follows the error when a workout cannot start.
const startFailedHint = "Please try again."

func (m Model) handleAction(msg action.Msg) (tea.Model, tea.Cmd) {
	switch a := msg.Action.(type) {
	case confirm.Result:
		m.closePopup()
		kind, _ := a.Context.(confirmKind)
		switch kind {
		case confirmStop:
			if a.Confirmed {
				return m.reset()
			}
		case confirmRestart:
			if a.Confirmed {
				return m.restart()
			}
			return m.reset()
		}

	case form.Submitted:
		m.closePopup()
		m.applyConfig(a.Config, -1)

	case form.Canceled, helpbindings.Close:
		m.closePopup()
	}
	return m, nil
}

func (m Model) handleEngineMessage(msg EngineMessage) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{m.WatchEngineEvents()}

	switch msg := msg.(type) {
	case SnapshotMsg:
		m.snap = timer.Snapshot(msg)

	case PhaseChangedMsg:
		if msg.Current.Kind() == timer.Idle {
			m.cueLabel = ""
		}

	case CueFiredMsg:
		m.cueSeq++
		m.cueLabel = CueText(timer.CueEvent(msg))
		cmds = append(cmds, CueFlashTimeoutCmd(m.cueSeq))

	case CompletedMsg:
		m.snap = m.engine.State()
		m.cueLabel = ""
		m.openConfirm(confirmRestart)
		cmds = append(cmds,
			NotifyCmd(m.notifier, notify.WorkoutComplete(msg.Rounds, msg.Duration)),
			m.finishSession(true),
		)

	case EngineErrorMsg:
		m.status = errmsg.FormatWith(errmsg.OpCuePlay, string(msg.Cue), msg.Err)

	case EngineClosedMsg:
		return m, nil
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleStartResult(msg StartResultMsg) (tea.Model, tea.Cmd) {
	m.starting = false
	if msg.Err != nil {
		log.Error().Err(msg.Err).Msg("workout start failed")
		m.status = errmsg.Format(errmsg.OpWorkoutStart, msg.Err) + ". " + startFailedHint
		return m.reset()
	}
	m.snap = m.engine.State()
	m.sessionStart = m.now()
	return m, nil
}

// cyclePreset selects the next (dir 1) or previous (dir -1) preset.
func (m *Model) cyclePreset(dir int) {
	n := len(m.presetNames)
	if n == 0 {
		return
	}
	idx := 0
	if m.presetIdx >= 0 {
		idx = ((m.presetIdx+dir)%n + n) % n
	} else if dir < 0 {
		idx = n - 1
	}

	name := m.presetNames[idx]
	cfg, err := m.presets.Lookup(name)
	if err != nil {
		m.status = errmsg.FormatWith(errmsg.OpPresetApply, name, err)
		return
	}
	m.applyConfig(cfg, idx)
}

// applyConfig makes cfg the next workout. presetIdx is -1 for a custom one.
func (m *Model) applyConfig(cfg workout.Config, presetIdx int) {
	if err := m.engine.Initialize(cfg); err != nil {
		m.status = formatValidation(err)
		return
	}
	m.cfg = cfg
	m.presetIdx = presetIdx
	m.snap = m.engine.State()
	m.status = ""
	if m.history != nil {
		m.history.SaveLastWorkout(state.LastWorkout{Workout: cfg, Preset: m.PresetName()})
	}
	log.Debug().Str("preset", m.PresetName()).Int("rounds", cfg.Rounds).Msg("workout selected")
}

func formatValidation(err error) string {
	return errmsg.Format(errmsg.OpWorkoutValidate, err)
}

// CueText is the label flashed while a cue plays.
func CueText(e timer.CueEvent) string {
	switch e.Cue {
	case audio.CueReady:
		return "Are you ready?"
	case audio.CueStop:
		return "3, 2, 1, stop!"
	case audio.CueCountdownGo:
		return "5, 4, 3, 2, 1, go!"
	}
	switch {
	case e.Intro:
		return "Round 1"
	case e.Kind == timer.CueNextRound:
		return fmt.Sprintf("Round %d next", e.Round+1)
	}
	return string(e.Cue)
}
