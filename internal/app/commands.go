package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/llehouerou/tabata/internal/notify"
)

const cueFlashDuration = 1200 * time.Millisecond

// WatchEngineEvents returns a command that waits for the next engine event.
// It must be re-issued after each engine message.
func (m Model) WatchEngineEvents() tea.Cmd {
	if m.sub == nil {
		return nil
	}
	sub := m.sub
	return func() tea.Msg {
		// Close leaves a final snapshot buffered; it must not hide Done.
		select {
		case <-sub.Done:
			return EngineClosedMsg{}
		default:
		}

		select {
		case e := <-sub.Completed:
			return CompletedMsg(e)
		case e := <-sub.PhaseChanged:
			return PhaseChangedMsg(e)
		case e := <-sub.CueFired:
			return CueFiredMsg(e)
		case e := <-sub.Error:
			return EngineErrorMsg(e)
		case e := <-sub.Snapshots:
			return SnapshotMsg(e)
		case <-sub.Done:
			return EngineClosedMsg{}
		}
	}
}

// StartCmd starts the workout off the UI goroutine since audio
// initialization decodes every cue.
func StartCmd(ctx context.Context, e Engine) tea.Cmd {
	return func() tea.Msg {
		return StartResultMsg{Err: e.Start(ctx)}
	}
}

// CueFlashTimeoutCmd returns a command that sends CueFlashTimeoutMsg.
func CueFlashTimeoutCmd(seq int) tea.Cmd {
	return tea.Tick(cueFlashDuration, func(_ time.Time) tea.Msg {
		return CueFlashTimeoutMsg{Seq: seq}
	})
}

// NotifyCmd sends a desktop notification. Failures are only logged.
func NotifyCmd(n notify.Notifier, notif notify.Notification) tea.Cmd {
	if n == nil {
		return nil
	}
	return func() tea.Msg {
		if _, err := n.Notify(notif); err != nil {
			log.Warn().Err(err).Msg("completion notification failed")
		}
		return nil
	}
}
