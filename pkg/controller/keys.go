package controller

import "github.com/gdamore/tcell/v2"

// tcell only defines named keys for non-printable input, so rune-based
// shortcuts get their own key values above the named range.
const (
	KeyA tcell.Key = iota + tcell.KeyF64 + 1
	KeyC
	KeyD
	KeyE
	KeyQ
	KeyR
	KeyS
	KeyT
)

// initKeys registers display names for the rune-based keys so that
// headers can render them alongside the built-in key names.
func initKeys() {
	tcell.KeyNames[KeyA] = "a"
	tcell.KeyNames[KeyC] = "c"
	tcell.KeyNames[KeyD] = "d"
	tcell.KeyNames[KeyE] = "e"
	tcell.KeyNames[KeyQ] = "q"
	tcell.KeyNames[KeyR] = "r"
	tcell.KeyNames[KeyS] = "s"
	tcell.KeyNames[KeyT] = "t"
}

// AsKey maps a rune-carrying event to the corresponding key constant so
// that runes and named keys share one event map.
func AsKey(evt *tcell.EventKey) tcell.Key {
	if evt.Key() != tcell.KeyRune {
		return evt.Key()
	}

	switch evt.Rune() {
	case 'a':
		return KeyA
	case 'c':
		return KeyC
	case 'd':
		return KeyD
	case 'e':
		return KeyE
	case 'q':
		return KeyQ
	case 'r':
		return KeyR
	case 's':
		return KeyS
	case 't':
		return KeyT
	}

	return evt.Key()
}
