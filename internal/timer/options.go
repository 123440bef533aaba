package timer

import (
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/llehouerou/tabata/internal/audio"
)

// DefaultTickInterval is the cadence of the built-in tick driver.
const DefaultTickInterval = 100 * time.Millisecond

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the time source. Tests pass a clockwork.FakeClock.
func WithClock(c clockwork.Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithTickInterval sets the driver cadence. Zero disables the driver; the
// caller then advances the engine with Tick.
func WithTickInterval(d time.Duration) Option {
	return func(e *Engine) { e.tickInterval = d }
}

// WithCueWindows overrides the cue firing windows.
func WithCueWindows(w CueWindows) Option {
	return func(e *Engine) { e.windows = w }
}

// WithIntro replaces the intro cue sequence. No ids means no intro: the first
// round begins as soon as Start returns.
func WithIntro(ids ...audio.CueID) Option {
	return func(e *Engine) { e.intro = ids }
}
