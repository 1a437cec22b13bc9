package backend

import (
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/video"
)

// InputEvent is a platform input translated to an emulator action.
type InputEvent struct {
	Action action.Action
	Type   event.Type
}

// Backend represents a complete emulator platform (rendering + input).
// Backends are responsible for:
// - Rendering frames to their specific output (terminal, SDL window, etc.)
// - Translating platform-specific input events to actions
// - Surfacing the beep state in whatever way the platform allows
type Backend interface {
	// Init configures the backend. Required before calling Update.
	Init(config Config) error

	// Update renders the provided frame and beep state, then returns the
	// input events collected since the previous call.
	Update(frame *video.FrameBuffer, beeping bool) ([]InputEvent, error)

	// Cleanup resources when shutting down
	Cleanup() error
}

// Config holds configuration for backends.
type Config struct {
	Title     string
	ShowDebug bool

	// DebugLine, when set, supplies a one-line disassembly of the next
	// instruction for backends that can show it.
	DebugLine func() string
}
