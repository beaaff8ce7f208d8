// Package tui is the terminal front end for the board engine: a tcell
// renderer that polls engine state each tick and a key mapper that
// feeds it discrete commands.
package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"termines/game"
)

// Screen geometry: a scoreboard panel above the mine field, both
// offset one cell from the terminal origin.
const (
	scoreLeft = 1
	scoreTop  = 1
	fieldLeft = 1
	fieldTop  = 12
)

// digitColors maps a revealed neighbor count 1..8 to its foreground
// color, index 0 unused.
var digitColors = []tcell.Color{
	tcell.ColorDefault,
	tcell.ColorBlue,
	tcell.ColorGreen,
	tcell.ColorRed,
	tcell.ColorDarkMagenta,
	tcell.ColorRed,
	tcell.ColorDarkCyan,
	tcell.ColorWhite,
	tcell.ColorWhite,
}

var (
	styleDefault   = tcell.StyleDefault
	styleExploded  = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleWrongFlag = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

func puts(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range text {
		s.SetContent(x+i, y, r, nil, style)
	}
}

// draw repaints the scoreboard and field from engine state and parks
// the terminal cursor on the engine's cursor cell.
func draw(s tcell.Screen, b *game.Board) {
	drawScore(s, b)
	drawField(s, b)
	row, col := b.Cursor()
	s.ShowCursor(fieldLeft+col, fieldTop+row)
	s.Show()
}

func drawScore(s tcell.Screen, b *game.Board) {
	puts(s, scoreLeft, scoreTop, styleDefault, "         Minesweeper")
	puts(s, scoreLeft, scoreTop+2, styleDefault, " [h] Move Left   [l] Move Right")
	puts(s, scoreLeft, scoreTop+3, styleDefault, " [j] Move Down   [k] Move Up")
	puts(s, scoreLeft, scoreTop+4, styleDefault, " [f] Flag Mine   [q] Quit")
	puts(s, scoreLeft, scoreTop+5, styleDefault, " [space] Reveal")

	// Pad the variable lines so shorter values overwrite longer ones.
	status := fmt.Sprintf("Flags: %2d / %2d  Status: %-8s", b.FlagCount(), b.Mines(), b.Status())
	puts(s, scoreLeft, scoreTop+7, styleDefault, status)
	clock := fmt.Sprintf("Time: %d ms      ", b.ElapsedMilliseconds())
	puts(s, scoreLeft, scoreTop+8, styleDefault, clock)
}

func drawField(s tcell.Screen, b *game.Board) {
	for row := 0; row < b.Height(); row++ {
		for col := 0; col < b.Width(); col++ {
			v, ok := b.View(row, col)
			if !ok {
				continue
			}
			r, style := cellRune(v)
			s.SetContent(fieldLeft+col, fieldTop+row, r, nil, style)
		}
	}
}

func cellRune(v game.View) (rune, tcell.Style) {
	switch v.Kind {
	case game.ViewFlagged:
		return 'F', styleDefault
	case game.ViewWrongFlag:
		return 'X', styleWrongFlag
	case game.ViewMine:
		return '*', styleDefault
	case game.ViewExploded:
		return '*', styleExploded
	case game.ViewNumber:
		if v.Adjacent == 0 {
			return ' ', styleDefault
		}
		return rune('0' + v.Adjacent), styleDefault.Foreground(digitColors[v.Adjacent])
	default:
		return '.', styleDefault
	}
}
