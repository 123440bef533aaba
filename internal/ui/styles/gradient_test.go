package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestBlend(t *testing.T) {
	from := lipgloss.Color("#ff0000")
	to := lipgloss.Color("#0000ff")

	tests := []struct {
		name string
		t    float64
		want lipgloss.Color
	}{
		{"start", 0, from},
		{"end", 1, to},
		{"below range clamps", -1, from},
		{"above range clamps", 2, to},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Blend(from, to, tt.t))
		})
	}
}

func TestBlend_MidpointDiffers(t *testing.T) {
	mid := Blend("#ff0000", "#0000ff", 0.5)

	assert.NotEqual(t, lipgloss.Color("#ff0000"), mid)
	assert.NotEqual(t, lipgloss.Color("#0000ff"), mid)
	assert.True(t, strings.HasPrefix(string(mid), "#"))
}

func TestLipglossToColor_ANSIFallsBackToGray(t *testing.T) {
	assert.Equal(t, "#808080", colorToHex(lipglossToColor("212")))
}

func TestBlendColors(t *testing.T) {
	colors := blendColors(5, "#000000", "#ffffff")

	assert.Len(t, colors, 5)
	assert.Equal(t, "#000000", colorToHex(colors[0]))
	assert.Equal(t, "#ffffff", colorToHex(colors[4]))
	assert.Len(t, blendColors(1, "#000000", "#ffffff"), 1)
}

func TestApplyBoldGradient_PreservesText(t *testing.T) {
	tests := []string{"", "T", "TABATA", "⏱ go"}
	for _, text := range tests {
		got := ApplyBoldGradient(text, T().Work, T().Rest)
		assert.Equal(t, text, ansi.Strip(got))
	}
}
