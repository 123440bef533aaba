package render

import (
	"fmt"
	"strings"
	"time"
)

// Clock formats whole seconds as m:ss.
func Clock(seconds int) string {
	seconds = max(seconds, 0)
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// Duration formats d as m:ss, truncating sub-second precision.
func Duration(d time.Duration) string {
	return Clock(int(d / time.Second))
}

// digitRows is a 3-row block font for the countdown.
var digitRows = map[rune][3]string{
	'0': {"█▀█", "█ █", "▀▀▀"},
	'1': {" ▀█", "  █", "  ▀"},
	'2': {"▀▀█", "█▀▀", "▀▀▀"},
	'3': {"▀▀█", " ▀█", "▀▀▀"},
	'4': {"█ █", "▀▀█", "  ▀"},
	'5': {"█▀▀", "▀▀█", "▀▀▀"},
	'6': {"█▀▀", "█▀█", "▀▀▀"},
	'7': {"▀▀█", "  █", "  ▀"},
	'8': {"█▀█", "█▀█", "▀▀▀"},
	'9': {"█▀█", "▀▀█", "▀▀▀"},
	':': {" ", "▀", "▀"},
}

// BigText renders digits and colons in a 3-row block font. Other runes
// render as blanks.
func BigText(s string) string {
	var rows [3]strings.Builder
	for i, r := range s {
		glyph, ok := digitRows[r]
		if !ok {
			glyph = [3]string{" ", " ", " "}
		}
		for row := range rows {
			if i > 0 {
				rows[row].WriteByte(' ')
			}
			rows[row].WriteString(glyph[row])
		}
	}
	return rows[0].String() + "\n" + rows[1].String() + "\n" + rows[2].String()
}
