package cpu

import (
	"fmt"
	"math/rand/v2"

	"github.com/valerio/go-chip8/chip8/bit"
	"github.com/valerio/go-chip8/chip8/input"
	"github.com/valerio/go-chip8/chip8/memory"
	"github.com/valerio/go-chip8/chip8/video"
)

// RandomByte supplies the random value consumed by the CXNN opcode.
// It is injected so tests can seed execution deterministically.
type RandomByte func() uint8

// CPU is the CHIP-8 / SUPER-CHIP interpreter core: registers, memory image,
// call stack, timers, display surface and key-wait state. It is driven
// synchronously by a single host thread: one TickTimers per frame, then a
// budget of Execute calls.
type CPU struct {
	ram    *memory.RAM
	fb     *video.FrameBuffer
	quirks Quirks
	random RandomByte

	regs    [16]uint8
	addrReg uint16
	pc      uint16
	stack   []uint16

	delayTimer uint8
	soundTimer uint8

	// key-wait state for FX0A
	waitingForKey bool
	ignoreKeys    input.Keys
	releasedKey   uint8
	keyResolved   bool
}

// New returns a CPU with fonts installed, the PC at the program start
// and a cleared low resolution display.
func New() *CPU {
	src := rand.NewPCG(rand.Uint64(), rand.Uint64())
	rng := rand.New(src)

	c := &CPU{
		fb:     video.NewFrameBuffer(),
		quirks: DefaultQuirks(),
		random: func() uint8 { return uint8(rng.UintN(256)) },
	}
	c.reset()

	return c
}

// reset recreates memory, registers, stack, timers and key-wait state.
// The display surface and quirks deliberately survive.
func (c *CPU) reset() {
	c.ram = memory.New()
	c.regs = [16]uint8{}
	c.addrReg = 0
	c.pc = memory.ProgramStart
	c.stack = nil
	c.delayTimer = 0
	c.soundTimer = 0
	c.waitingForKey = false
	c.ignoreKeys = 0
	c.keyResolved = false
}

// LoadROM resets the machine state and copies the program image to 0x200.
func (c *CPU) LoadROM(rom []uint8) error {
	c.reset()
	return c.ram.LoadROM(rom)
}

// Frame returns the display surface. The host must only read it between
// instruction batches.
func (c *CPU) Frame() *video.FrameBuffer {
	return c.fb
}

// Quirks returns the active behavior switches.
func (c *CPU) Quirks() Quirks {
	return c.quirks
}

// SetQuirks replaces the active behavior switches.
func (c *CPU) SetQuirks(q Quirks) {
	c.quirks = q
}

// SetRandom replaces the CXNN random source.
func (c *CPU) SetRandom(r RandomByte) {
	c.random = r
}

// PC returns the current program counter.
func (c *CPU) PC() uint16 {
	return c.pc
}

// Peek reads a byte of memory without touching interpreter state.
func (c *CPU) Peek(address uint16) (uint8, error) {
	return c.ram.Read(address)
}

// TickTimers decrements both timers, flooring at zero, and reports whether
// the sound timer was running (i.e. a tone should be audible this frame).
func (c *CPU) TickTimers() bool {
	if c.delayTimer > 0 {
		c.delayTimer--
	}

	if c.soundTimer > 0 {
		c.soundTimer--
		return true
	}
	return false
}

// KeyReleased informs the key-wait machine of a key-up edge. Keys that were
// already held when the wait began must be released once before they can
// satisfy it; only the first qualifying release is honored.
func (c *CPU) KeyReleased(key uint8) {
	if !c.waitingForKey {
		return
	}
	if c.ignoreKeys.Pressed(key) {
		c.ignoreKeys.Release(key)
		return
	}
	if !c.keyResolved {
		c.releasedKey = key
		c.keyResolved = true
	}
}

// Execute performs one fetch-decode-execute step. The pressed set is
// queried by the EX9E/EXA1 skips and captured by a starting key wait.
// Faults are returned as typed errors; the CPU state after a fault is
// whatever the partially executed instruction left behind.
func (c *CPU) Execute(pressed input.Keys) error {
	if int(c.pc)+1 >= memory.Size {
		return fmt.Errorf("%w: fetch at 0x%04X", memory.ErrOutOfBounds, c.pc)
	}

	high, _ := c.ram.Read(c.pc)
	low, _ := c.ram.Read(c.pc + 1)
	opcode := bit.Combine(high, low)

	// The PC moves past the instruction before the body runs, so skips,
	// the key-wait rewind and relative jumps all work against the next
	// instruction's address.
	c.pc += 2

	return c.execute(opcode, pressed)
}

func (c *CPU) pushStack(address uint16) {
	c.stack = append(c.stack, address)
}

func (c *CPU) popStack() (uint16, error) {
	if len(c.stack) == 0 {
		return 0, ErrStackUnderflow
	}
	address := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	return address, nil
}

// readAt reads memory at base+offset, faulting instead of wrapping when the
// computed address leaves the 4KB image.
func (c *CPU) readAt(base uint16, offset int) (uint8, error) {
	address := int(base) + offset
	if address < 0 || address >= memory.Size {
		return 0, fmt.Errorf("%w: read at 0x%X", memory.ErrOutOfBounds, address)
	}
	return c.ram.Read(uint16(address))
}

// writeAt is the write counterpart of readAt.
func (c *CPU) writeAt(base uint16, offset int, value uint8) error {
	address := int(base) + offset
	if address < 0 || address >= memory.Size {
		return fmt.Errorf("%w: write at 0x%X", memory.ErrOutOfBounds, address)
	}
	return c.ram.Write(uint16(address), value)
}
