package chip8

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
)

// selfLoop is the smallest valid program: jump to 0x200 forever.
var selfLoop = []uint8{0x12, 0x00}

func TestMachine_runsInstructionBudgetPerFrame(t *testing.T) {
	m := New()
	require.NoError(t, m.LoadROM(selfLoop))

	require.NoError(t, m.RunUntilFrame())
	assert.Equal(t, uint64(DefaultCyclesPerFrame), m.InstructionCount())
	assert.Equal(t, uint64(1), m.FrameCount())

	m.SetCyclesPerFrame(5)
	require.NoError(t, m.RunUntilFrame())
	assert.Equal(t, uint64(DefaultCyclesPerFrame+5), m.InstructionCount())
}

func TestMachine_beepFollowsSoundTimer(t *testing.T) {
	m := New()
	// V0 = 2, sound timer = V0, then spin.
	require.NoError(t, m.LoadROM([]uint8{0x60, 0x02, 0xF0, 0x18, 0x12, 0x04}))

	require.NoError(t, m.RunUntilFrame())
	assert.False(t, m.Beeping(), "timer was set after this frame's tick")

	require.NoError(t, m.RunUntilFrame())
	assert.True(t, m.Beeping())

	require.NoError(t, m.RunUntilFrame())
	assert.True(t, m.Beeping())

	require.NoError(t, m.RunUntilFrame())
	assert.False(t, m.Beeping(), "timer has drained")
}

func TestMachine_faultStopsFrame(t *testing.T) {
	m := New()
	require.NoError(t, m.LoadROM([]uint8{0x01, 0x23})) // unsupported opcode

	err := m.RunUntilFrame()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "0x0200")
	assert.Equal(t, uint64(0), m.InstructionCount())
}

func TestMachine_keypadActionsReachTheCore(t *testing.T) {
	m := New()
	// EX9E skips when key 5 is held: V1 = 5; skip-if-held; spin; spin.
	require.NoError(t, m.LoadROM([]uint8{0x61, 0x05, 0xE1, 0x9E, 0x12, 0x04, 0x12, 0x06}))
	m.SetCyclesPerFrame(2)

	m.HandleAction(action.Key5, event.Press)
	require.NoError(t, m.RunUntilFrame())

	// The skip jumped over the first spin loop into the second.
	require.NoError(t, m.RunUntilFrame())
	assert.Equal(t, "0x0206  JP 0x206", m.DebugLine())
}

func TestMachine_pauseToggle(t *testing.T) {
	m := New()
	require.NoError(t, m.LoadROM(selfLoop))

	m.HandleAction(action.EmulatorPauseToggle, event.Press)
	require.NoError(t, m.RunUntilFrame())
	assert.Equal(t, uint64(0), m.InstructionCount())
	assert.Equal(t, uint64(0), m.FrameCount())

	m.HandleAction(action.EmulatorPauseToggle, event.Press)
	require.NoError(t, m.RunUntilFrame())
	assert.Equal(t, uint64(DefaultCyclesPerFrame), m.InstructionCount())
}

func TestMachine_resetRestartsProgram(t *testing.T) {
	m := New()
	// V0 = 7, then spin.
	require.NoError(t, m.LoadROM([]uint8{0x60, 0x07, 0x12, 0x02}))
	require.NoError(t, m.RunUntilFrame())

	m.HandleAction(action.EmulatorReset, event.Press)
	assert.Equal(t, "0x0200  LD V0, 0x07", m.DebugLine())
}

func TestMachine_debugLine(t *testing.T) {
	m := New()
	require.NoError(t, m.LoadROM([]uint8{0xA2, 0x2A}))
	assert.Equal(t, "0x0200  LD I, 0x22A", m.DebugLine())
}
