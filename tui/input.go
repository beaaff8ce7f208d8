package tui

import (
	"github.com/gdamore/tcell/v2"
)

// command is a discrete engine input produced by the key mapper.
type command int

const (
	cmdNone command = iota
	cmdMoveUp
	cmdMoveDown
	cmdMoveLeft
	cmdMoveRight
	cmdReveal
	cmdFlag
	cmdQuit
)

// mapKey translates a raw key event into an engine command. Bindings
// follow the classic layout: vi movement keys or arrows, space to
// reveal, f to flag, q to quit.
func mapKey(ev *tcell.EventKey) command {
	switch ev.Key() {
	case tcell.KeyUp:
		return cmdMoveUp
	case tcell.KeyDown:
		return cmdMoveDown
	case tcell.KeyLeft:
		return cmdMoveLeft
	case tcell.KeyRight:
		return cmdMoveRight
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return cmdQuit
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'k':
			return cmdMoveUp
		case 'j':
			return cmdMoveDown
		case 'h':
			return cmdMoveLeft
		case 'l':
			return cmdMoveRight
		case ' ':
			return cmdReveal
		case 'f':
			return cmdFlag
		case 'q':
			return cmdQuit
		}
	}
	return cmdNone
}
