//go:build sdl2

package sdl2

import (
	"fmt"
	"log/slog"

	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/video"
	"github.com/veandco/go-sdl2/sdl"
)

const pixelScale = 8

// keypadLayout maps the QWERTY 4x4 block to the hex keypad, same layout as
// the terminal backend.
var keypadLayout = map[sdl.Keycode]action.Action{
	sdl.K_1: action.Key1, sdl.K_2: action.Key2, sdl.K_3: action.Key3, sdl.K_4: action.KeyC,
	sdl.K_q: action.Key4, sdl.K_w: action.Key5, sdl.K_e: action.Key6, sdl.K_r: action.KeyD,
	sdl.K_a: action.Key7, sdl.K_s: action.Key8, sdl.K_d: action.Key9, sdl.K_f: action.KeyE,
	sdl.K_z: action.KeyA, sdl.K_x: action.Key0, sdl.K_c: action.KeyB, sdl.K_v: action.KeyF,
}

// Backend implements the Backend interface using SDL2 bindings.
// Note: building this requires SDL2 development libraries installed.
// Default builds skip this and use a stub, see build tags (sdl2).
type Backend struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	running  bool
	config   backend.Config
}

// New creates a new SDL2 backend.
func New() *Backend {
	return &Backend{}
}

// Init initializes the SDL2 backend.
func (s *Backend) Init(config backend.Config) error {
	s.config = config

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("failed to initialize SDL2: %v", err)
	}

	window, err := sdl.CreateWindow(
		config.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		video.HiresWidth*pixelScale,
		video.HiresHeight*pixelScale,
		sdl.WINDOW_SHOWN,
	)
	if err != nil {
		sdl.Quit()
		return fmt.Errorf("failed to create window: %v", err)
	}
	s.window = window

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return fmt.Errorf("failed to create renderer: %v", err)
	}
	s.renderer = renderer

	s.running = true
	slog.Info("SDL2 backend initialized")

	return nil
}

// Update renders a frame and processes events.
func (s *Backend) Update(frame *video.FrameBuffer, beeping bool) ([]backend.InputEvent, error) {
	var events []backend.InputEvent

	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch e := ev.(type) {
		case *sdl.QuitEvent:
			events = append(events, backend.InputEvent{Action: action.EmulatorQuit, Type: event.Press})
		case *sdl.KeyboardEvent:
			events = append(events, s.translateKey(e)...)
		}
	}

	s.renderFrame(frame, beeping)

	return events, nil
}

// Cleanup cleans up SDL2 resources.
func (s *Backend) Cleanup() error {
	if s.renderer != nil {
		s.renderer.Destroy()
	}
	if s.window != nil {
		s.window.Destroy()
	}
	sdl.Quit()

	return nil
}

func (s *Backend) translateKey(e *sdl.KeyboardEvent) []backend.InputEvent {
	var evt event.Type
	switch e.Type {
	case sdl.KEYDOWN:
		if e.Repeat != 0 {
			return nil
		}
		evt = event.Press
	case sdl.KEYUP:
		evt = event.Release
	default:
		return nil
	}

	if act, ok := keypadLayout[e.Keysym.Sym]; ok {
		return []backend.InputEvent{{Action: act, Type: evt}}
	}

	if evt != event.Press {
		return nil
	}
	switch e.Keysym.Sym {
	case sdl.K_ESCAPE:
		return []backend.InputEvent{{Action: action.EmulatorQuit, Type: event.Press}}
	case sdl.K_SPACE:
		return []backend.InputEvent{{Action: action.EmulatorPauseToggle, Type: event.Press}}
	case sdl.K_TAB:
		return []backend.InputEvent{{Action: action.EmulatorReset, Type: event.Press}}
	}

	return nil
}

func (s *Backend) renderFrame(frame *video.FrameBuffer, beeping bool) {
	// Scale so both resolutions fill the same window.
	scale := int32(pixelScale * video.HiresWidth / frame.Width())

	s.renderer.SetDrawColor(0, 0, 0, 255)
	s.renderer.Clear()

	if beeping {
		s.renderer.SetDrawColor(255, 255, 220, 255)
	} else {
		s.renderer.SetDrawColor(255, 255, 255, 255)
	}

	for y := 0; y < frame.Height(); y++ {
		for x := 0; x < frame.Width(); x++ {
			if !frame.GetPixel(x, y) {
				continue
			}
			s.renderer.FillRect(&sdl.Rect{
				X: int32(x) * scale,
				Y: int32(y) * scale,
				W: scale,
				H: scale,
			})
		}
	}

	s.renderer.Present()
}
