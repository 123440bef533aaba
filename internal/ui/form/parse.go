package form

import (
	"strconv"
	"strings"
	"time"

	"github.com/llehouerou/tabata/internal/workout"
)

// ValidationError is a message shown to the user as is.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

// Field errors, in the order fields are checked.
const (
	ErrRoundDuration ValidationError = "Round duration must be between 1 and 300 seconds"
	ErrRounds        ValidationError = "Number of rounds must be between 1 and 8"
	ErrRestDuration  ValidationError = "Rest duration must be between 0 and 300 seconds"
)

// Parse converts raw field values into a workout configuration.
// Durations are whole seconds. An empty track means no background track.
func Parse(round, rounds, rest, track string) (workout.Config, error) {
	roundSecs, ok := parseInRange(round, int(workout.MinRound/time.Second), int(workout.MaxRound/time.Second))
	if !ok {
		return workout.Config{}, ErrRoundDuration
	}
	n, ok := parseInRange(rounds, workout.MinRounds, workout.MaxRounds)
	if !ok {
		return workout.Config{}, ErrRounds
	}
	restSecs, ok := parseInRange(rest, int(workout.MinRest/time.Second), int(workout.MaxRest/time.Second))
	if !ok {
		return workout.Config{}, ErrRestDuration
	}

	cfg := workout.Config{
		Rounds:          n,
		Round:           time.Duration(roundSecs) * time.Second,
		Rest:            time.Duration(restSecs) * time.Second,
		BackgroundTrack: strings.TrimSpace(track),
	}
	return cfg, cfg.Validate()
}

func parseInRange(s string, lo, hi int) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < lo || v > hi {
		return 0, false
	}
	return v, true
}
