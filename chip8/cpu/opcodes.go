package cpu

import (
	"github.com/valerio/go-chip8/chip8/bit"
	"github.com/valerio/go-chip8/chip8/input"
	"github.com/valerio/go-chip8/chip8/memory"
)

// execute runs a single decoded instruction. The PC has already been
// advanced past it.
func (c *CPU) execute(opcode uint16, pressed input.Keys) error {
	var (
		x   = int(opcode&0x0F00) >> 8 // second nibble, register X
		y   = int(opcode&0x00F0) >> 4 // third nibble, register Y
		nnn = opcode & 0x0FFF         // low 12 bits, address
		nn  = uint8(opcode)           // low byte, immediate
		n   = uint8(opcode & 0x000F)  // low nibble, immediate
	)

	switch opcode >> 12 {
	case 0x0:
		return c.executeSystem(opcode, n)
	case 0x1:
		// 1NNN - jump to NNN
		c.pc = nnn
	case 0x2:
		// 2NNN - call subroutine at NNN
		c.pushStack(c.pc)
		c.pc = nnn
	case 0x3:
		// 3XNN - skip next instruction if VX == NN
		if c.regs[x] == nn {
			c.pc += 2
		}
	case 0x4:
		// 4XNN - skip next instruction if VX != NN
		if c.regs[x] != nn {
			c.pc += 2
		}
	case 0x5:
		// 5XY0 - skip next instruction if VX == VY
		if n != 0 {
			return OpcodeError{opcode}
		}
		if c.regs[x] == c.regs[y] {
			c.pc += 2
		}
	case 0x6:
		// 6XNN - VX = NN
		c.regs[x] = nn
	case 0x7:
		// 7XNN - VX += NN, wrapping, no flag
		c.regs[x] += nn
	case 0x8:
		return c.executeALU(opcode, x, y, n)
	case 0x9:
		// 9XY0 - skip next instruction if VX != VY
		if n != 0 {
			return OpcodeError{opcode}
		}
		if c.regs[x] != c.regs[y] {
			c.pc += 2
		}
	case 0xA:
		// ANNN - I = NNN
		c.addrReg = nnn
	case 0xB:
		// BNNN / BXNN - jump with offset, per the jump quirk
		if c.quirks.Jump == JumpVX {
			c.pc = uint16(c.regs[x]) + uint16(nn)
		} else {
			c.pc = uint16(c.regs[0]) + nnn
		}
	case 0xC:
		// CXNN - VX = random byte & NN
		c.regs[x] = c.random() & nn
	case 0xD:
		// DXYN - draw sprite at (VX, VY)
		return c.draw(x, y, n)
	case 0xE:
		switch nn {
		case 0x9E:
			// EX9E - skip next instruction if key VX is held
			if pressed.Pressed(c.regs[x]) {
				c.pc += 2
			}
		case 0xA1:
			// EXA1 - skip next instruction if key VX is not held
			if !pressed.Pressed(c.regs[x]) {
				c.pc += 2
			}
		default:
			return OpcodeError{opcode}
		}
	case 0xF:
		return c.executeMisc(opcode, x, nn, pressed)
	}

	return nil
}

// executeSystem handles the 0x0 class: display control and subroutine return.
func (c *CPU) executeSystem(opcode uint16, n uint8) error {
	switch {
	case opcode == 0x00E0:
		// 00E0 - clear screen
		c.fb.Clear()
	case opcode == 0x00EE:
		// 00EE - return from subroutine
		address, err := c.popStack()
		if err != nil {
			return err
		}
		c.pc = address
	case opcode&0xFFF0 == 0x00C0:
		// 00CN - scroll display down N rows
		c.fb.ScrollDown(int(n))
	case opcode == 0x00FB:
		// 00FB - scroll display right 4 columns
		c.fb.ScrollRight(4)
	case opcode == 0x00FC:
		// 00FC - scroll display left 4 columns
		c.fb.ScrollLeft(4)
	case opcode == 0x00FD:
		// 00FD - exit: spin on this instruction forever
		c.pc -= 2
	case opcode == 0x00FE:
		// 00FE - switch to low resolution (64x32), clearing the display
		c.fb.SetHires(false)
	case opcode == 0x00FF:
		// 00FF - switch to high resolution (128x64), clearing the display
		c.fb.SetHires(true)
	default:
		return OpcodeError{opcode}
	}

	return nil
}

// executeALU handles the 8XYn register-to-register operations.
func (c *CPU) executeALU(opcode uint16, x, y int, n uint8) error {
	if c.quirks.VFReset {
		c.regs[0xF] = 0
	}

	vy := c.regs[y]

	switch n {
	case 0x0:
		// 8XY0 - VX = VY
		c.regs[x] = vy
	case 0x1:
		// 8XY1 - VX |= VY
		c.regs[x] |= vy
	case 0x2:
		// 8XY2 - VX &= VY
		c.regs[x] &= vy
	case 0x3:
		// 8XY3 - VX ^= VY
		c.regs[x] ^= vy
	case 0x4:
		// 8XY4 - VX += VY, VF = carry
		result, overflow := bit.CheckedAdd(c.regs[x], vy)
		c.regs[x] = result
		c.regs[0xF] = flagByte(overflow)
	case 0x5:
		// 8XY5 - VX -= VY, VF = 1 when no borrow (VX >= VY before)
		result, borrow := bit.CheckedSub(c.regs[x], vy)
		c.regs[x] = result
		c.regs[0xF] = flagByte(!borrow)
	case 0x6:
		// 8XY6 - VX = src >> 1, VF = bit shifted out
		src := c.shiftSource(x, y)
		c.regs[x] = src >> 1
		c.regs[0xF] = src & 1
	case 0x7:
		// 8XY7 - VX = VY - VX, VF = 1 when no borrow (VY >= VX before)
		result, borrow := bit.CheckedSub(vy, c.regs[x])
		c.regs[x] = result
		c.regs[0xF] = flagByte(!borrow)
	case 0xE:
		// 8XYE - VX = src << 1, VF = bit shifted out
		src := c.shiftSource(x, y)
		c.regs[x] = src << 1
		c.regs[0xF] = src >> 7
	default:
		return OpcodeError{opcode}
	}

	return nil
}

// shiftSource picks the operand for the shift opcodes per the shifting quirk.
func (c *CPU) shiftSource(x, y int) uint8 {
	if c.quirks.Shifting == ShiftVY {
		return c.regs[y]
	}
	return c.regs[x]
}

// executeMisc handles the FXnn class: timers, key wait, fonts and memory ops.
func (c *CPU) executeMisc(opcode uint16, x int, nn uint8, pressed input.Keys) error {
	switch nn {
	case 0x07:
		// FX07 - VX = delay timer
		c.regs[x] = c.delayTimer
	case 0x0A:
		// FX0A - block until a fresh key release, store it in VX
		c.waitForKey(x, pressed)
	case 0x15:
		// FX15 - delay timer = VX
		c.delayTimer = c.regs[x]
	case 0x18:
		// FX18 - sound timer = VX
		c.soundTimer = c.regs[x]
	case 0x1E:
		// FX1E - I += VX, no flag
		c.addrReg += uint16(c.regs[x])
	case 0x29:
		// FX29 - I = low resolution glyph address for digit VX
		c.addrReg = memory.GlyphAddress(c.regs[x])
	case 0x30:
		// FX30 - I = high resolution glyph address for digit VX
		c.addrReg = memory.HiresGlyphAddress(c.regs[x])
	case 0x33:
		// FX33 - binary coded decimal of VX at I, I+1, I+2
		return c.storeBCD(c.regs[x])
	case 0x55:
		// FX55 - dump V0..VX to memory at I
		for i := 0; i <= x; i++ {
			if err := c.writeAt(c.addrReg, i, c.regs[i]); err != nil {
				return err
			}
		}
		c.applySaveLoadQuirk(x)
	case 0x65:
		// FX65 - load V0..VX from memory at I
		for i := 0; i <= x; i++ {
			value, err := c.readAt(c.addrReg, i)
			if err != nil {
				return err
			}
			c.regs[i] = value
		}
		c.applySaveLoadQuirk(x)
	default:
		return OpcodeError{opcode}
	}

	return nil
}

// waitForKey implements the FX0A state machine. While no qualifying release
// has arrived the PC is rewound so the instruction re-executes next step;
// the first time through, keys already held are captured as an ignore set.
func (c *CPU) waitForKey(x int, pressed input.Keys) {
	if c.keyResolved {
		c.regs[x] = c.releasedKey
		c.keyResolved = false
		c.waitingForKey = false
		c.ignoreKeys = 0
		return
	}

	if !c.waitingForKey {
		c.ignoreKeys = pressed
		c.waitingForKey = true
	}
	c.pc -= 2
}

// applySaveLoadQuirk adjusts I after FX55/FX65 per the reg-save-load quirk.
func (c *CPU) applySaveLoadQuirk(x int) {
	switch c.quirks.RegSaveLoad {
	case SaveLoadAdvanceX:
		c.addrReg += uint16(x)
	case SaveLoadAdvanceXPlusOne:
		c.addrReg += uint16(x) + 1
	}
}

// storeBCD writes the three decimal digits of value at I, I+1, I+2 using
// the double-dabble algorithm: eight shifts, adding 3 to any digit nibble
// that is 5 or more before each shift.
func (c *CPU) storeBCD(value uint8) error {
	bcd := uint32(value)

	for i := 0; i < 8; i++ {
		if bcd&0x00F00 >= 0x00500 {
			bcd += 0x00300
		}
		if bcd&0x0F000 >= 0x05000 {
			bcd += 0x03000
		}
		if bcd&0xF0000 >= 0x50000 {
			bcd += 0x30000
		}
		bcd <<= 1
	}

	digits := [3]uint8{
		uint8(bcd >> 16 & 0xF),
		uint8(bcd >> 12 & 0xF),
		uint8(bcd >> 8 & 0xF),
	}
	for i, digit := range digits {
		if err := c.writeAt(c.addrReg, i, digit); err != nil {
			return err
		}
	}

	return nil
}

func flagByte(set bool) uint8 {
	if set {
		return 1
	}
	return 0
}
