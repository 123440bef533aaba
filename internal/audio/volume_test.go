package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDucker_LowerAndRestore(t *testing.T) {
	d := newDucker(0.7, 0.5)
	assert.InDelta(t, 0.7, d.level(), 1e-9)

	assert.True(t, d.lower())
	assert.InDelta(t, 0.35, d.level(), 1e-9)

	// A second overlay while ducked must not compound the reduction.
	assert.False(t, d.lower())
	assert.InDelta(t, 0.35, d.level(), 1e-9)

	assert.True(t, d.restore())
	assert.InDelta(t, 0.7, d.level(), 1e-9)

	assert.False(t, d.restore())
	assert.InDelta(t, 0.7, d.level(), 1e-9)
}

func TestDucker_ClampsInputs(t *testing.T) {
	d := newDucker(1.5, -0.2)
	assert.InDelta(t, 1.0, d.level(), 1e-9)
	d.lower()
	assert.InDelta(t, 1.0, d.level(), 1e-9)
}

func TestLevelToVolume(t *testing.T) {
	tests := []struct {
		level float64
		want  float64
	}{
		{1, 0},
		{1.2, 0},
		{0.5, -1},
		{0.25, -2},
		{0, -10},
		{-1, -10},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, levelToVolume(tt.level), 1e-9, "level %v", tt.level)
	}
}
