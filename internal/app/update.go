package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tabata/internal/keymap"
	"github.com/llehouerou/tabata/internal/timer"
	"github.com/llehouerou/tabata/internal/ui/action"
)

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resizePopups()
		return m, nil

	case tea.KeyMsg:
		if m.popup != popupNone {
			return m.handlePopupKey(msg)
		}
		return m.handleKey(msg)

	case action.Msg:
		return m.handleAction(msg)

	case EngineMessage:
		return m.handleEngineMessage(msg)

	case StartResultMsg:
		return m.handleStartResult(msg)

	case HistoryUpdatedMsg:
		m.totals = msg.Totals
		return m, nil

	case CueFlashTimeoutMsg:
		if msg.Seq == m.cueSeq {
			m.cueLabel = ""
		}
		return m, nil
	}

	// Cursor blink and similar component messages
	if m.popup == popupForm {
		var cmd tea.Cmd
		_, cmd = m.form.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handlePopupKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}
	p := m.activePopup()
	if p == nil {
		m.popup = popupNone
		return m, nil
	}
	_, cmd := p.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	phase := m.phase()

	switch m.keys.Resolve(msg.String()) {
	case keymap.ActionQuit:
		return m.quit()

	case keymap.ActionHelp:
		m.openHelp()
		return m, nil

	case keymap.ActionStart:
		switch phase {
		case timer.Idle:
			return m.start()
		case timer.Completed:
			return m.restart()
		}

	case keymap.ActionPauseResume:
		switch {
		case phase == timer.Paused:
			m.engine.Resume()
		case m.snap.Phase.Active():
			m.engine.Pause()
		default:
			return m, nil
		}
		m.snap = m.engine.State()

	case keymap.ActionStop:
		switch {
		case phase == timer.Completed:
			return m.reset()
		case phase != timer.Idle:
			m.openConfirm(confirmStop)
		}

	case keymap.ActionNextPreset:
		if phase == timer.Idle {
			m.cyclePreset(1)
		}

	case keymap.ActionPrevPreset:
		if phase == timer.Idle {
			m.cyclePreset(-1)
		}

	case keymap.ActionSettings:
		if phase == timer.Idle {
			return m, m.openForm()
		}
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	record := m.finishSession(false)
	m.engine.Stop()
	if record != nil {
		return m, tea.Sequence(record, tea.Quit)
	}
	return m, tea.Quit
}

func (m Model) start() (tea.Model, tea.Cmd) {
	if m.starting {
		return m, nil
	}
	m.starting = true
	m.status = ""
	return m, StartCmd(m.ctx, m.engine)
}

// restart runs the same workout again from the intro.
func (m Model) restart() (tea.Model, tea.Cmd) {
	if err := m.engine.Initialize(m.cfg); err != nil {
		m.status = formatValidation(err)
		return m, nil
	}
	m.snap = m.engine.State()
	return m.start()
}

// reset returns to the ready screen keeping the current settings.
func (m Model) reset() (tea.Model, tea.Cmd) {
	record := m.finishSession(false)
	m.engine.Stop()
	m.snap = m.engine.State()
	m.cueLabel = ""
	return m, record
}
