package input

// Keys is the set of currently held keys on the 16-key hex keypad,
// one bit per key code 0x0..0xF.
type Keys uint16

// Pressed reports whether the given key code is held. Codes outside
// 0x0..0xF are never held.
func (k Keys) Pressed(key uint8) bool {
	if key > 0xF {
		return false
	}
	return k&(1<<key) != 0
}

// Press marks a key as held.
func (k *Keys) Press(key uint8) {
	*k |= 1 << (key & 0xF)
}

// Release marks a key as no longer held.
func (k *Keys) Release(key uint8) {
	*k &^= 1 << (key & 0xF)
}
