package audio

import "math"

// Defaults for the background track level and the ducking applied while an
// overlay cue plays.
const (
	DefaultBackgroundVolume = 0.7
	DefaultDuckFraction     = 0.5
)

// ducker tracks whether the background level is lowered. Lowering twice
// keeps a single reduction and restoring always returns to the base level.
type ducker struct {
	base     float64
	fraction float64
	lowered  bool
}

func newDucker(base, fraction float64) ducker {
	return ducker{base: clampLevel(base), fraction: clampLevel(fraction)}
}

// level returns the current linear volume level.
func (d *ducker) level() float64 {
	if d.lowered {
		return d.base * (1 - d.fraction)
	}
	return d.base
}

// lower reduces the level. It reports whether the level changed.
func (d *ducker) lower() bool {
	if d.lowered {
		return false
	}
	d.lowered = true
	return true
}

// restore returns to the base level. It reports whether the level changed.
func (d *ducker) restore() bool {
	if !d.lowered {
		return false
	}
	d.lowered = false
	return true
}

func clampLevel(level float64) float64 {
	return min(max(level, 0), 1)
}

// levelToVolume converts a 0.0-1.0 level to beep's base-2 Volume value:
// 1.0 -> 0, 0.5 -> -1, 0.25 -> -2, 0 -> -10 (essentially silent).
func levelToVolume(level float64) float64 {
	if level <= 0 {
		return -10
	}
	if level >= 1 {
		return 0
	}
	return math.Log2(level)
}
