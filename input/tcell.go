package input

import "github.com/gdamore/tcell/v2"

// KeyTable maps tcell key events to action names for terminal frontends.
// Terminals report key presses only, so every translated action carries
// EdgePressed; frontends that need release edges must synthesize them
// (the sandbox releases hold-style actions on a timer)
type KeyTable struct {
	Runes map[rune]string
	Keys  map[tcell.Key]string
}

// DefaultKeyTable returns the default sandbox bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		Runes: map[rune]string{
			' ': "dash",
			'c': "crouch",
			'q': "quit",
		},
		Keys: map[tcell.Key]string{
			tcell.KeyEscape: "quit",
			tcell.KeyCtrlC:  "quit",
		},
	}
}

// TcellTranslator converts tcell key events into core input samples
type TcellTranslator struct {
	table  *KeyTable
	device DeviceID
}

// NewTcellTranslator creates a translator for the given device slot.
// A nil table falls back to the defaults
func NewTcellTranslator(table *KeyTable, device DeviceID) *TcellTranslator {
	if table == nil {
		table = DefaultKeyTable()
	}
	return &TcellTranslator{table: table, device: device}
}

// Translate maps a key event to a pressed action.
// Returns false when the key is unbound
func (t *TcellTranslator) Translate(ev *tcell.EventKey) (Action, bool) {
	var name string
	var ok bool

	if ev.Key() == tcell.KeyRune {
		name, ok = t.table.Runes[ev.Rune()]
	} else {
		name, ok = t.table.Keys[ev.Key()]
	}
	if !ok {
		return Action{}, false
	}

	return Action{Name: name, Edge: EdgePressed, Device: t.device}, true
}

// MoveAxis maps arrow and hjkl keys to a movement axis sample.
// Returns false for non-movement keys
func (t *TcellTranslator) MoveAxis(ev *tcell.EventKey) (Axis, bool) {
	switch {
	case ev.Key() == tcell.KeyLeft || (ev.Key() == tcell.KeyRune && ev.Rune() == 'h'):
		return Axis{Name: "move_x", Value: -1, Device: t.device}, true
	case ev.Key() == tcell.KeyRight || (ev.Key() == tcell.KeyRune && ev.Rune() == 'l'):
		return Axis{Name: "move_x", Value: 1, Device: t.device}, true
	case ev.Key() == tcell.KeyUp || (ev.Key() == tcell.KeyRune && ev.Rune() == 'k'):
		return Axis{Name: "move_y", Value: -1, Device: t.device}, true
	case ev.Key() == tcell.KeyDown || (ev.Key() == tcell.KeyRune && ev.Rune() == 'j'):
		return Axis{Name: "move_y", Value: 1, Device: t.device}, true
	}
	return Axis{}, false
}
