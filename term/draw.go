package term

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Canvas is the part of tcell.Screen text is drawn on.
type Canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (width, height int)
}

// DrawText writes text at (x, y) and clears the rest of the row. Wide runes
// take two cells; text that does not fit is cut off. It returns the number of
// cells written.
func DrawText(c Canvas, x, y int, text string, style tcell.Style) int {
	width, height := c.Size()
	if y < 0 || y >= height {
		return 0
	}
	col := x
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col+w > width {
			break
		}
		c.SetContent(col, y, r, nil, style)
		col += w
	}
	drawn := col - x
	for ; col < width; col++ {
		c.SetContent(col, y, ' ', nil, style)
	}
	return drawn
}

// Truncate cuts s to at most width display cells, ending in an ellipsis when
// cut.
func Truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "…")
}
