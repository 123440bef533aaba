package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/tabata/internal/state"
	"github.com/llehouerou/tabata/internal/timer"
	"github.com/llehouerou/tabata/internal/ui"
	"github.com/llehouerou/tabata/internal/ui/popup"
	"github.com/llehouerou/tabata/internal/ui/progress"
	"github.com/llehouerou/tabata/internal/ui/render"
	"github.com/llehouerou/tabata/internal/ui/styles"
)

// pausedFade is how far a paused phase colour is blended toward grey.
const pausedFade = 0.6

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var body string
	if m.phase() == timer.Idle {
		body = m.renderReady()
	} else {
		body = m.renderWorkout()
	}
	base := popup.Center(body, m.width, m.height)

	p := m.activePopup()
	if p == nil {
		return base
	}
	size := popup.SizeAuto
	if m.popup == popupForm {
		size = popup.SizeForm
	}
	return popup.Compose(base, popup.RenderBordered(p.View(), m.width, m.height, size), m.width)
}

func (m Model) contentWidth() int {
	return max(min(m.width-4, ui.MaxContentWidth), ui.MinWidth)
}

func (m Model) renderTitle() string {
	t := styles.T()
	return styles.ApplyBoldGradient("T A B A T A", t.Work, t.Rest)
}

func (m Model) renderReady() string {
	t := styles.T()
	width := m.contentWidth()

	name := m.PresetName()
	if name == "" {
		name = "custom"
	}

	summary := fmt.Sprintf("%d rounds · %s work · %s rest",
		m.cfg.Rounds, render.Duration(m.cfg.Round), render.Duration(m.cfg.Rest))
	if !m.cfg.HasRest() {
		summary = fmt.Sprintf("%d rounds · %s work · no rest", m.cfg.Rounds, render.Duration(m.cfg.Round))
	}

	lines := []string{
		m.renderTitle(),
		"",
		t.S().Muted.Render("preset ") + t.S().Accent.Render(render.Truncate(name, width-7)),
		t.S().Base.Render(summary),
		t.S().Muted.Render("total " + render.Duration(m.cfg.TotalDuration())),
	}
	if m.cfg.BackgroundTrack != "" {
		lines = append(lines, t.S().Subtle.Render("track "+render.Truncate(m.cfg.BackgroundTrack, width-6)))
	}
	if line := historyLine(m.totals); line != "" {
		lines = append(lines, t.S().Subtle.Render(render.Truncate(line, width)))
	}
	lines = append(lines, "")
	if m.starting {
		lines = append(lines, t.S().Title.Render("Starting..."))
	} else {
		lines = append(lines, t.S().Title.Render("Press enter to start"))
	}
	lines = append(lines, m.renderStatus(width), "", t.S().Subtle.Render(
		"enter start · tab preset · e edit · ? help · q quit"))

	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func (m Model) renderWorkout() string {
	t := styles.T()
	s := m.snap
	width := m.contentWidth()
	color := phaseColor(s.Phase)

	header := render.Row(
		lipgloss.NewStyle().Foreground(color).Bold(true).Render(phaseLabel(s.Phase)),
		t.S().Muted.Render(roundLabel(s)),
		width,
	)

	clock := render.Clock(s.InnerRemaining)
	if width >= ui.MinBigClockWidth {
		clock = render.BigText(clock)
	}
	countdown := lipgloss.NewStyle().Foreground(color).Bold(true).Render(clock)

	cue := t.S().Accent.Render(m.cueLabel)

	innerName := s.InnerPhase.String()
	if s.InnerPhase == timer.Idle {
		innerName = "Intro"
	}
	inner := progress.Labeled(
		render.Pad(innerName, 7),
		render.Clock(s.InnerRemaining),
		s.InnerProgress, width, color,
	)
	outer := progress.Labeled(
		render.Pad("Workout", 7),
		render.Clock(s.RemainingTime),
		s.OuterProgress, width, t.Primary,
	)
	times := t.S().Muted.Render(render.Row(
		"elapsed "+render.Clock(s.ElapsedTime),
		"total "+render.Duration(s.TotalDuration),
		width,
	))

	lines := []string{
		m.renderTitle(),
		"",
		header,
		"",
		countdown,
		cue,
		"",
		inner,
		outer,
		times,
		m.renderStatus(width),
		"",
		t.S().Subtle.Render(m.workoutHints()),
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func (m Model) renderStatus(width int) string {
	if m.status == "" {
		return ""
	}
	return styles.T().S().Error.Render(render.Truncate(m.status, width))
}

func (m Model) workoutHints() string {
	switch m.phase() {
	case timer.Paused:
		return "space resume · s stop · ? help · q quit"
	case timer.Completed:
		return "enter restart · s back · q quit"
	}
	return "space pause · s stop · ? help · q quit"
}

// historyLine summarizes past sessions, empty when there are none.
func historyLine(t state.Totals) string {
	if t.Sessions == 0 {
		return ""
	}
	return fmt.Sprintf("last workout %s · %s done · %s of work",
		humanize.Time(t.Last),
		pluralize(t.Completed, "workout"),
		render.Duration(t.WorkTime))
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return humanize.Comma(int64(n)) + " " + noun + "s"
}

func phaseLabel(p timer.Phase) string {
	switch p.Kind() {
	case timer.Intro:
		return "GET READY"
	case timer.Round:
		return "WORK"
	case timer.Rest:
		return "REST"
	case timer.Paused:
		if k, ok := p.Interrupted(); ok {
			return "PAUSED · " + strings.ToUpper(k.String())
		}
		return "PAUSED"
	case timer.Completed:
		return "DONE"
	}
	return ""
}

func roundLabel(s timer.Snapshot) string {
	if s.CurrentRound == 0 {
		return fmt.Sprintf("%d rounds", s.TotalRounds)
	}
	return fmt.Sprintf("Round %d of %d", s.CurrentRound, s.TotalRounds)
}

func phaseColor(p timer.Phase) lipgloss.Color {
	t := styles.T()
	var c lipgloss.Color
	switch p.Current() {
	case timer.Intro:
		c = t.Intro
	case timer.Round:
		c = t.Work
	case timer.Rest:
		c = t.Rest
	case timer.Completed:
		c = t.Completed
	default:
		c = t.FgMuted
	}
	if p.Kind() == timer.Paused {
		return styles.Blend(c, t.FgSubtle, pausedFade)
	}
	return c
}
