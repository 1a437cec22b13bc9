package cpu

// ShiftSource selects which register the shift opcodes read from.
// The result is always written to VX.
type ShiftSource int

const (
	ShiftVX ShiftSource = iota
	ShiftVY
)

// RegSaveLoad selects what happens to the address register after a
// register dump/load opcode touching registers V0..VX.
type RegSaveLoad int

const (
	SaveLoadUnchanged RegSaveLoad = iota
	SaveLoadAdvanceX
	SaveLoadAdvanceXPlusOne
)

// JumpMode selects how the jump-with-offset opcode computes its target.
type JumpMode int

const (
	// JumpClassic treats the opcode as BNNN: PC = V0 + NNN.
	JumpClassic JumpMode = iota
	// JumpVX treats the opcode as BXNN: PC = VX + NN.
	JumpVX
)

// ScrollStyle is reserved for future legacy-mode scroll variants;
// no opcode reads it yet.
type ScrollStyle int

const (
	ScrollModern ScrollStyle = iota
	ScrollLegacy
)

// Quirks bundles the behavior switches that differ between historical
// CHIP-8 interpreters. The host may replace it between Execute calls;
// the interpreter always reads the current value.
type Quirks struct {
	// VFReset clears VF before every register-to-register (class 8) opcode.
	VFReset bool

	Shifting    ShiftSource
	RegSaveLoad RegSaveLoad
	Jump        JumpMode

	// ScreenWrap wraps sprite pixels around the display edges instead of
	// clipping them.
	ScreenWrap bool

	Scrolling ScrollStyle
}

// DefaultQuirks returns the default behavior bundle.
func DefaultQuirks() Quirks {
	return Quirks{
		VFReset:     false,
		Shifting:    ShiftVX,
		RegSaveLoad: SaveLoadUnchanged,
		Jump:        JumpClassic,
		ScreenWrap:  false,
		Scrolling:   ScrollModern,
	}
}
