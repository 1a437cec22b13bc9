package action

// Action represents input actions that can be performed in the emulator
type Action int

const (
	// Hex keypad keys, in key code order so Key0+n is the action for key n.
	Key0 Action = iota
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF

	// Emulator features
	EmulatorPauseToggle
	EmulatorReset
	EmulatorQuit
)

// KeyCode returns the hex key code for a keypad action, and whether the
// action is a keypad key at all.
func (a Action) KeyCode() (uint8, bool) {
	if a < Key0 || a > KeyF {
		return 0, false
	}
	return uint8(a - Key0), true
}
