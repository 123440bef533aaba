// Package form provides the workout settings popup.
package form

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/tabata/internal/keymap"
	"github.com/llehouerou/tabata/internal/ui"
	"github.com/llehouerou/tabata/internal/ui/popup"
	"github.com/llehouerou/tabata/internal/ui/render"
	"github.com/llehouerou/tabata/internal/ui/styles"
	"github.com/llehouerou/tabata/internal/workout"
)

var _ popup.Popup = (*Model)(nil)

type field int

const (
	fieldRound field = iota
	fieldRounds
	fieldRest
	fieldTrack
	fieldCount
)

var fieldLabels = [fieldCount]string{
	fieldRound:  "Round (s)",
	fieldRounds: "Rounds",
	fieldRest:   "Rest (s)",
	fieldTrack:  "Track",
}

const (
	labelWidth = 11
	trackWidth = 32
)

// Model is the settings form. Values are only checked on submit.
type Model struct {
	ui.Base
	keys   *keymap.Resolver
	inputs [fieldCount]textinput.Model
	focus  field
	err    string
}

// New creates a form holding cfg's values with the first field focused.
func New(cfg workout.Config) Model {
	m := Model{keys: keymap.Form()}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 3
		ti.Width = 4
		m.inputs[i] = ti
	}
	m.inputs[fieldTrack].CharLimit = 0
	m.inputs[fieldTrack].Width = trackWidth
	m.inputs[fieldTrack].Placeholder = "none"

	m.inputs[fieldRound].SetValue(seconds(cfg.Round))
	m.inputs[fieldRounds].SetValue(strconv.Itoa(cfg.Rounds))
	m.inputs[fieldRest].SetValue(seconds(cfg.Rest))
	m.inputs[fieldTrack].SetValue(cfg.BackgroundTrack)

	m.inputs[fieldRound].Focus()
	return m
}

func seconds(d time.Duration) string {
	return strconv.Itoa(int(d / time.Second))
}

// Err returns the last validation message, empty when none.
func (m Model) Err() string {
	return m.err
}

// Init implements popup.Popup.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements popup.Popup.
func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch m.keys.Resolve(keyMsg.String()) {
		case keymap.ActionNextField:
			return m, m.setFocus((m.focus + 1) % fieldCount)
		case keymap.ActionPrevField:
			return m, m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		case keymap.ActionSubmit:
			return m, m.submit()
		case keymap.ActionCancel:
			return m, func() tea.Msg { return ActionMsg(Canceled{}) }
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) setFocus(f field) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = f
	return m.inputs[f].Focus()
}

func (m *Model) submit() tea.Cmd {
	cfg, err := Parse(
		m.inputs[fieldRound].Value(),
		m.inputs[fieldRounds].Value(),
		m.inputs[fieldRest].Value(),
		m.inputs[fieldTrack].Value(),
	)
	if err != nil {
		m.err = err.Error()
		return nil
	}
	m.err = ""
	return func() tea.Msg { return ActionMsg(Submitted{Config: cfg}) }
}

// View implements popup.Popup.
func (m *Model) View() string {
	t := styles.T()
	title := lipgloss.NewStyle().Bold(true).Foreground(t.Primary).Render("Workout settings")

	rows := make([]string, 0, fieldCount)
	for i := range fieldCount {
		label := t.S().Muted.Render(render.Pad(fieldLabels[i], labelWidth))
		if i == m.focus {
			label = t.S().Accent.Render(render.Pad(fieldLabels[i], labelWidth))
		}
		rows = append(rows, label+m.inputs[i].View())
	}

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n\n")
	b.WriteString(strings.Join(rows, "\n"))
	if m.err != "" {
		b.WriteString("\n\n")
		b.WriteString(t.S().Error.Render(m.err))
	}
	b.WriteString("\n\n")
	b.WriteString(t.S().Subtle.Render("tab: next field · enter: apply · esc: cancel"))
	return b.String()
}
