package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tabata/internal/timer"
	"github.com/llehouerou/tabata/internal/ui/form"
	"github.com/llehouerou/tabata/internal/ui/popup"
)

type popupKind int

const (
	popupNone popupKind = iota
	popupHelp
	popupForm
	popupConfirm
)

// confirmation contexts passed through confirm.Result
type confirmKind int

const (
	confirmStop confirmKind = iota
	confirmRestart
)

const (
	stopTitle      = "Stop workout"
	stopMessage    = "Are you sure you want to stop the workout?"
	restartTitle   = "Workout complete"
	restartMessage = "Workout complete! Start another?"
)

func (m *Model) openConfirm(kind confirmKind) {
	title, message := stopTitle, stopMessage
	if kind == confirmRestart {
		title, message = restartTitle, restartMessage
	}
	m.confirm.Show(title, message, kind, m.width, m.height)
	m.popup = popupConfirm
}

func (m *Model) openForm() tea.Cmd {
	m.form = form.New(m.cfg)
	m.form.SetSize(m.width, m.height)
	m.popup = popupForm
	return m.form.Init()
}

func (m *Model) openHelp() {
	m.help.SetContexts(m.helpContexts())
	m.help.SetSize(m.width, m.height)
	m.popup = popupHelp
}

func (m *Model) closePopup() {
	if m.popup == popupConfirm {
		m.confirm.Reset()
	}
	m.popup = popupNone
}

// activePopup returns the component shown on top of the screen, nil if none.
func (m *Model) activePopup() popup.Popup {
	switch m.popup {
	case popupHelp:
		return &m.help
	case popupForm:
		return &m.form
	case popupConfirm:
		return &m.confirm
	}
	return nil
}

func (m *Model) resizePopups() {
	m.help.SetSize(m.width, m.height)
	m.form.SetSize(m.width, m.height)
	m.confirm.SetSize(m.width, m.height)
}

// helpContexts lists the key binding groups that apply right now.
func (m Model) helpContexts() []string {
	switch m.phase() {
	case timer.Idle:
		return []string{"global", "workout", "ready"}
	default:
		return []string{"global", "workout", "confirm"}
	}
}
