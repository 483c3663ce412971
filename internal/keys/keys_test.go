package keys

import "testing"

// The constants must match the strings Bubble Tea produces at runtime;
// pin the ones the key handlers switch on.
func TestKeyStrings(t *testing.T) {
	tests := []struct {
		got  string
		want string
	}{
		{Up, "up"},
		{Down, "down"},
		{PgUp, "pgup"},
		{PgDown, "pgdown"},
		{Enter, "enter"},
		{ShiftEnter, "shift+enter"},
		{Escape, "esc"},
		{CtrlC, "ctrl+c"},
		{CtrlU, "ctrl+u"},
		{CtrlR, "ctrl+r"},
		{CtrlY, "ctrl+y"},
		{CtrlL, "ctrl+l"},
		{CtrlT, "ctrl+t"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("key constant = %q, want %q", tt.got, tt.want)
		}
	}
}
