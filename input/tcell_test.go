package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestTranslateBoundRune(t *testing.T) {
	tr := NewTcellTranslator(nil, 0)

	action, ok := tr.Translate(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone))
	if !ok {
		t.Fatal("Space should translate to an action")
	}
	if action.Name != "dash" || action.Edge != EdgePressed {
		t.Errorf("Expected pressed dash, got %s %s", action.Name, action.Edge)
	}
}

func TestTranslateUnboundKey(t *testing.T) {
	tr := NewTcellTranslator(nil, 0)

	if _, ok := tr.Translate(tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone)); ok {
		t.Error("Unbound rune should not translate")
	}
}

func TestTranslateSpecialKey(t *testing.T) {
	tr := NewTcellTranslator(nil, 2)

	action, ok := tr.Translate(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	if !ok || action.Name != "quit" {
		t.Fatalf("Escape should translate to quit, got %v ok=%v", action, ok)
	}
	if action.Device != 2 {
		t.Errorf("Expected device 2, got %d", action.Device)
	}
}

func TestMoveAxis(t *testing.T) {
	tr := NewTcellTranslator(nil, 0)

	cases := []struct {
		key   tcell.Key
		r     rune
		name  string
		value float64
	}{
		{tcell.KeyLeft, 0, "move_x", -1},
		{tcell.KeyRune, 'l', "move_x", 1},
		{tcell.KeyRune, 'k', "move_y", -1},
		{tcell.KeyDown, 0, "move_y", 1},
	}
	for _, tc := range cases {
		axis, ok := tr.MoveAxis(tcell.NewEventKey(tc.key, tc.r, tcell.ModNone))
		if !ok {
			t.Errorf("Key %v/%q should map to an axis", tc.key, tc.r)
			continue
		}
		if axis.Name != tc.name || axis.Value != tc.value {
			t.Errorf("Key %v/%q: expected %s=%v, got %s=%v", tc.key, tc.r, tc.name, tc.value, axis.Name, axis.Value)
		}
	}

	if _, ok := tr.MoveAxis(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)); ok {
		t.Error("Non-movement key should not map to an axis")
	}
}
