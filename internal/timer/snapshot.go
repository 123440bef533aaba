package timer

import (
	"time"

	"github.com/llehouerou/tabata/internal/workout"
)

// Snapshot is the reportable view of the engine at one instant.
//
// ElapsedTime and RemainingTime are whole seconds of the workout measured
// from the first round, floored. InnerRemaining is the ceiling of the seconds
// left in the current Round or Rest, so a countdown never shows less than the
// time actually left.
type Snapshot struct {
	Phase         Phase
	CurrentRound  int
	TotalRounds   int
	ElapsedTime   int
	RemainingTime int
	TotalDuration time.Duration

	// InnerPhase is Round or Rest when a timed phase is reported, Idle
	// otherwise.
	InnerPhase     Kind
	InnerProgress  float64
	InnerRemaining int

	OuterProgress float64
}

// RoundsDone counts the work rounds finished by the time of the snapshot.
func (s Snapshot) RoundsDone() int {
	switch s.Phase.Current() {
	case Completed:
		return s.TotalRounds
	case Round:
		return max(s.CurrentRound-1, 0)
	}
	return s.CurrentRound
}

func phaseDuration(cfg workout.Config, k Kind) time.Duration {
	switch k {
	case Round:
		return cfg.Round
	case Rest:
		return cfg.Rest
	default:
		return 0
	}
}

func buildSnapshot(cfg workout.Config, st *state, now time.Time) Snapshot {
	total := cfg.TotalDuration()
	snap := Snapshot{
		Phase:         st.phase,
		CurrentRound:  st.round,
		TotalRounds:   cfg.Rounds,
		TotalDuration: total,
	}

	if st.phase.Kind() == Completed {
		snap.ElapsedTime = floorSeconds(total)
		snap.InnerPhase = Round
		snap.InnerProgress = 100
		snap.OuterProgress = 100
		return snap
	}
	if st.phase.Kind() == Paused {
		now = st.pausedAt
	}

	var elapsed time.Duration
	if !st.workoutStart.IsZero() {
		elapsed = clamp(now.Sub(st.workoutStart), total)
	}
	snap.ElapsedTime = floorSeconds(elapsed)
	snap.RemainingTime = floorSeconds(total - elapsed)
	snap.OuterProgress = percent(elapsed, total)

	if k := st.phase.Current(); k.Timed() && !st.phaseStart.IsZero() {
		d := phaseDuration(cfg, k)
		inner := clamp(now.Sub(st.phaseStart), d)
		snap.InnerPhase = k
		snap.InnerProgress = percent(inner, d)
		snap.InnerRemaining = ceilSeconds(d - inner)
	}
	return snap
}

func clamp(d, upper time.Duration) time.Duration {
	return max(0, min(d, upper))
}

func percent(part, whole time.Duration) float64 {
	if whole <= 0 {
		return 0
	}
	return 100 * float64(clamp(part, whole)) / float64(whole)
}

func floorSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(d / time.Second)
}

func ceilSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}
