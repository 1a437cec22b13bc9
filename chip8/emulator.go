package chip8

import (
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/video"
)

// Emulator is the surface backends drive: advance a frame, read pixels,
// deliver input, and poll the beep state.
type Emulator interface {
	RunUntilFrame() error
	GetCurrentFrame() *video.FrameBuffer
	HandleAction(act action.Action, evt event.Type)
	Beeping() bool
}

var _ Emulator = (*Machine)(nil)
