package chip8

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/valerio/go-chip8/chip8/bit"
	"github.com/valerio/go-chip8/chip8/cpu"
	"github.com/valerio/go-chip8/chip8/disasm"
	"github.com/valerio/go-chip8/chip8/input"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/video"
)

// DefaultCyclesPerFrame is the historical instruction budget per frame.
const DefaultCyclesPerFrame = 12

// Machine drives the interpreter core at frame granularity: one timer tick
// followed by a fixed budget of instructions per frame, with host input
// forwarded in between.
type Machine struct {
	cpu  *cpu.CPU
	held input.Keys

	cyclesPerFrame int
	paused         bool
	beeping        bool

	frameCount       uint64
	instructionCount uint64

	rom []uint8
}

// New creates a machine with no program loaded.
func New() *Machine {
	return &Machine{
		cpu:            cpu.New(),
		cyclesPerFrame: DefaultCyclesPerFrame,
	}
}

// NewWithFile creates a machine and loads the ROM image at the given path.
func NewWithFile(path string) (*Machine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	slog.Info("Loaded ROM", "path", path, "bytes", len(data))

	m := New()
	if err := m.LoadROM(data); err != nil {
		return nil, err
	}
	return m, nil
}

// LoadROM loads a program image, resetting the core. The image is kept so
// the reset action can restart it.
func (m *Machine) LoadROM(rom []uint8) error {
	if err := m.cpu.LoadROM(rom); err != nil {
		return err
	}
	m.rom = append([]uint8(nil), rom...)
	m.held = 0
	m.beeping = false
	return nil
}

// Reset restarts the currently loaded program.
func (m *Machine) Reset() error {
	if m.rom == nil {
		return nil
	}
	slog.Info("Resetting machine")
	return m.LoadROM(m.rom)
}

// RunUntilFrame ticks the timers once and runs the per-frame instruction
// budget. A fault stops the batch and is returned to the caller.
func (m *Machine) RunUntilFrame() error {
	if m.paused {
		return nil
	}

	m.beeping = m.cpu.TickTimers()

	for i := 0; i < m.cyclesPerFrame; i++ {
		pc := m.cpu.PC()
		if err := m.cpu.Execute(m.held); err != nil {
			slog.Error("Execution fault", "pc", fmt.Sprintf("0x%04X", pc), "error", err)
			return fmt.Errorf("at 0x%04X: %w", pc, err)
		}
		m.instructionCount++
	}

	m.frameCount++
	return nil
}

// GetCurrentFrame returns the display surface. Only read it between
// RunUntilFrame calls.
func (m *Machine) GetCurrentFrame() *video.FrameBuffer {
	return m.cpu.Frame()
}

// Beeping reports whether a tone should be audible this frame.
func (m *Machine) Beeping() bool {
	return m.beeping
}

// HandleAction applies a translated input event. Keypad presses update the
// held set; releases additionally feed the key-wait machine.
func (m *Machine) HandleAction(act action.Action, evt event.Type) {
	if key, ok := act.KeyCode(); ok {
		switch evt {
		case event.Press:
			m.held.Press(key)
		case event.Release:
			m.held.Release(key)
			m.cpu.KeyReleased(key)
		}
		return
	}

	if evt != event.Press {
		return
	}

	switch act {
	case action.EmulatorPauseToggle:
		m.paused = !m.paused
		slog.Info("Pause toggled", "paused", m.paused)
	case action.EmulatorReset:
		if err := m.Reset(); err != nil {
			slog.Error("Reset failed", "error", err)
		}
	}
}

// Quirks returns the core's active behavior switches.
func (m *Machine) Quirks() cpu.Quirks {
	return m.cpu.Quirks()
}

// SetQuirks replaces the core's behavior switches.
func (m *Machine) SetQuirks(q cpu.Quirks) {
	m.cpu.SetQuirks(q)
}

// SetRandom replaces the CXNN random source, for reproducible runs.
func (m *Machine) SetRandom(r cpu.RandomByte) {
	m.cpu.SetRandom(r)
}

// SetCyclesPerFrame overrides the per-frame instruction budget.
func (m *Machine) SetCyclesPerFrame(cycles int) {
	if cycles > 0 {
		m.cyclesPerFrame = cycles
	}
}

func (m *Machine) FrameCount() uint64       { return m.frameCount }
func (m *Machine) InstructionCount() uint64 { return m.instructionCount }

// DebugLine renders the next instruction as "PC  MNEMONIC" for display
// overlays. It never faults; unreadable memory shows as ??.
func (m *Machine) DebugLine() string {
	pc := m.cpu.PC()
	high, err1 := m.cpu.Peek(pc)
	low, err2 := m.cpu.Peek(pc + 1)
	if err1 != nil || err2 != nil {
		return fmt.Sprintf("0x%04X  ??", pc)
	}
	return fmt.Sprintf("0x%04X  %s", pc, disasm.Disassemble(bit.Combine(high, low)))
}
