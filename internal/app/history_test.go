package app

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/tabata/internal/state"
	"github.com/llehouerou/tabata/internal/timer"
	"github.com/llehouerou/tabata/internal/workout"
)

func (h *harness) withHistory() *state.Mock {
	m := state.NewMock()
	h.model.history = m
	return m
}

// enterRest finishes round 1 of testWorkout.
func (h *harness) enterRest() {
	h.t.Helper()
	h.clock.Advance(5 * time.Second)
	h.engine.Tick()
	h.send(SnapshotMsg(h.engine.State()))
	require.Equal(h.t, timer.Rest, h.model.phase())
}

func TestHistory_StoppedWorkoutRecorded(t *testing.T) {
	h := newHarness(t, testWorkout())
	hist := h.withHistory()
	h.start()
	h.enterRest()

	h.key("s")
	msg := h.key("y")()
	record := h.send(msg)

	require.NotNil(t, record)
	updated, ok := record().(HistoryUpdatedMsg)
	require.True(t, ok)

	sessions := hist.Sessions()
	require.Len(t, sessions, 1)
	assert.Equal(t, 1, sessions[0].RoundsDone)
	assert.False(t, sessions[0].Completed)
	assert.Equal(t, "short", sessions[0].Preset)
	assert.Equal(t, testWorkout(), sessions[0].Workout)

	h.send(updated)
	assert.Equal(t, 1, h.model.totals.Sessions)
	assert.Contains(t, h.view(), "last workout")
}

func TestHistory_StopBeforeFirstRoundEndsNotRecorded(t *testing.T) {
	h := newHarness(t, testWorkout())
	hist := h.withHistory()
	h.start()

	h.key("s")
	msg := h.key("y")()

	assert.Nil(t, h.send(msg))
	assert.Empty(t, hist.Sessions())
	assert.True(t, h.model.sessionStart.IsZero())
}

func TestHistory_CompletedWorkout(t *testing.T) {
	h := newHarness(t, workout.Config{Rounds: 1, Round: 3 * time.Second})
	hist := h.withHistory()
	h.start()
	h.clock.Advance(3 * time.Second)
	h.engine.Tick()

	cmd := h.model.finishSession(true)

	require.NotNil(t, cmd)
	updated, ok := cmd().(HistoryUpdatedMsg)
	require.True(t, ok)
	assert.Equal(t, 1, updated.Totals.Completed)
	require.Len(t, hist.Sessions(), 1)
	assert.Equal(t, 1, hist.Sessions()[0].RoundsDone)
	assert.Nil(t, h.model.finishSession(true), "session already finished")
}

func TestHistory_QuitMidWorkoutRecords(t *testing.T) {
	h := newHarness(t, testWorkout())
	h.withHistory()
	h.start()
	h.enterRest()

	cmd := h.key("q")

	require.NotNil(t, cmd)
	assert.True(t, h.model.quitting)
	assert.True(t, h.model.sessionStart.IsZero())
}

func TestHistory_RecordFailureLogged(t *testing.T) {
	hist := state.NewMock()
	hist.SetRecordError(errors.New("disk full"))

	msg := RecordSessionCmd(hist, state.Session{RoundsDone: 1})()

	assert.Nil(t, msg)
}

func TestHistory_PresetChangeSavesLastWorkout(t *testing.T) {
	h := newHarness(t, testWorkout())
	hist := h.withHistory()

	h.key("tab")

	last := hist.LastWorkout()
	require.NotNil(t, last)
	assert.Equal(t, h.model.PresetName(), last.Preset)
	assert.Equal(t, workout.Default(), last.Workout)
}

func TestHistoryLine(t *testing.T) {
	assert.Empty(t, historyLine(state.Totals{}))

	line := historyLine(state.Totals{
		Sessions:  3,
		Completed: 1,
		WorkTime:  2 * time.Minute,
		Last:      time.Now().Add(-2 * time.Hour),
	})

	assert.Contains(t, line, "2 hours ago")
	assert.Contains(t, line, "1 workout done")
	assert.Contains(t, line, "2:00 of work")
	assert.Equal(t, "1,200 workouts", pluralize(1200, "workout"))
}
