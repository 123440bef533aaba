// Package workout defines the parameters of an interval workout.
package workout

import (
	"errors"
	"fmt"
	"time"
)

// Limits accepted by Validate.
const (
	MinRounds = 1
	MaxRounds = 8

	MinRound = 1 * time.Second
	MaxRound = 300 * time.Second

	MinRest = 0
	MaxRest = 300 * time.Second
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid workout config")

// Config describes one workout. It is immutable once a workout starts.
type Config struct {
	Rounds          int
	Round           time.Duration
	Rest            time.Duration
	BackgroundTrack string // path to a looping track, empty for none
}

// Default returns the classic Tabata protocol: 8 rounds of 20s work, 10s rest.
func Default() Config {
	return Config{
		Rounds: MaxRounds,
		Round:  20 * time.Second,
		Rest:   10 * time.Second,
	}
}

// Validate reports the first out-of-range field.
func (c Config) Validate() error {
	if c.Rounds < MinRounds || c.Rounds > MaxRounds {
		return fmt.Errorf("%w: rounds must be between %d and %d, got %d",
			ErrInvalidConfig, MinRounds, MaxRounds, c.Rounds)
	}
	if c.Round < MinRound || c.Round > MaxRound {
		return fmt.Errorf("%w: round duration must be between %s and %s, got %s",
			ErrInvalidConfig, MinRound, MaxRound, c.Round)
	}
	if c.Round%time.Second != 0 {
		return fmt.Errorf("%w: round duration must be whole seconds, got %s", ErrInvalidConfig, c.Round)
	}
	if c.Rest < MinRest || c.Rest > MaxRest {
		return fmt.Errorf("%w: rest duration must be between 0s and %s, got %s",
			ErrInvalidConfig, MaxRest, c.Rest)
	}
	if c.Rest%time.Second != 0 {
		return fmt.Errorf("%w: rest duration must be whole seconds, got %s", ErrInvalidConfig, c.Rest)
	}
	return nil
}

// TotalDuration is the time from the first round's start to the last round's
// end. There is no rest after the final round.
func (c Config) TotalDuration() time.Duration {
	if c.Rounds <= 0 {
		return 0
	}
	return c.Round*time.Duration(c.Rounds) + c.Rest*time.Duration(c.Rounds-1)
}

// HasRest reports whether rest phases are part of the workout.
func (c Config) HasRest() bool {
	return c.Rest > 0
}
