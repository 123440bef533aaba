package popup

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCenter(t *testing.T) {
	got := Center("ab\ncd", 10, 6)
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")

	require.Len(t, lines, 4) // 2 padding + 2 content
	assert.Equal(t, strings.Repeat(" ", 10), lines[0])
	assert.Equal(t, "    ab", lines[2])
	assert.Equal(t, "    cd", lines[3])
}

func TestCenter_LargerThanScreen(t *testing.T) {
	got := Center("abcdef", 4, 0)

	assert.Equal(t, "abcdef\n", got)
}

func TestCalculateDimensions(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		size       SizeConfig
		wantW      int
		wantH      int
	}{
		{"auto fit", "hello", SizeAuto, 11, 5},
		{"max width", strings.Repeat("x", 80), SizeForm, 56, 5},
		{"percent", "x", SizeConfig{WidthPct: 50, HeightPct: 50}, 50, 20},
		{"screen bound", strings.Repeat("x", 200), SizeAuto, 96, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := calculateDimensions(tt.content, 100, 40, tt.size)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}
}

func TestRenderBordered_ContainsContent(t *testing.T) {
	got := ansi.Strip(RenderBordered("Stop workout?", 60, 20, SizeAuto))

	assert.Contains(t, got, "Stop workout?")
	assert.Contains(t, got, "╭")
	assert.Contains(t, got, "╯")
}

func TestCompose(t *testing.T) {
	base := "aaaaaaaaaa\nbbbbbbbbbb\ncccccccccc"
	overlay := "\n   XYZ\n"

	got := Compose(base, overlay, 10)
	lines := strings.Split(got, "\n")

	require.Len(t, lines, 3)
	assert.Equal(t, "aaaaaaaaaa", lines[0])
	assert.Equal(t, "bbbXYZbbbb", lines[1])
	assert.Equal(t, "cccccccccc", lines[2])
}

func TestCompose_StyledOverlay(t *testing.T) {
	base := "..........\n.........."
	styled := lipgloss.NewStyle().Bold(true).Render("HI")
	overlay := "  " + styled

	got := Compose(base, overlay, 10)
	lines := strings.Split(got, "\n")

	assert.Equal(t, "..HI......", ansi.Strip(lines[0]))
	assert.Equal(t, "..........", lines[1])
}

func TestCompose_PadsShortBase(t *testing.T) {
	got := Compose("ab", "    Z", 6)

	assert.Equal(t, "ab  Z ", got)
}
