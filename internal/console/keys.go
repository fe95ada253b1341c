package console

import "github.com/gdamore/tcell/v2"

// Key is a decoded keyboard command.
type Key int

const (
	KeyNone Key = iota
	KeyCurrentUp
	KeyCurrentDown
	KeyCurrentUpFine
	KeyCurrentDownFine
	KeyVoltageUp
	KeyVoltageDown
	KeyVoltageUpFine
	KeyVoltageDownFine
	KeyReset
	KeySave
	KeyQuit
)

// KeyFromEvent maps a terminal key event onto a command. Left/right move the
// current, up/down the voltage; h/l and j/k are the fine steps.
func KeyFromEvent(ev *tcell.EventKey) Key {
	switch ev.Key() {
	case tcell.KeyRight:
		return KeyCurrentUp
	case tcell.KeyLeft:
		return KeyCurrentDown
	case tcell.KeyUp:
		return KeyVoltageUp
	case tcell.KeyDown:
		return KeyVoltageDown
	case tcell.KeyCtrlC:
		return KeyQuit
	case tcell.KeyRune:
		return runeKey(ev.Rune())
	}
	return KeyNone
}

func runeKey(r rune) Key {
	switch r {
	case 'l':
		return KeyCurrentUpFine
	case 'h':
		return KeyCurrentDownFine
	case 'k':
		return KeyVoltageUpFine
	case 'j':
		return KeyVoltageDownFine
	case 'r', 'R':
		return KeyReset
	case 's', 'S':
		return KeySave
	case 'q', 'Q':
		return KeyQuit
	}
	return KeyNone
}
