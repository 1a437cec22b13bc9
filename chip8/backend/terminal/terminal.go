package terminal

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/video"
)

// keyTimeout is how long a key counts as held after its last terminal
// event. Terminals only deliver key-down, so releases are synthesized when
// the repeat events stop.
const keyTimeout = 150 * time.Millisecond

// keypadLayout maps the QWERTY 4x4 block to the hex keypad:
//
//	1 2 3 4        1 2 3 C
//	q w e r   ->   4 5 6 D
//	a s d f        7 8 9 E
//	z x c v        A 0 B F
var keypadLayout = map[rune]action.Action{
	'1': action.Key1, '2': action.Key2, '3': action.Key3, '4': action.KeyC,
	'q': action.Key4, 'w': action.Key5, 'e': action.Key6, 'r': action.KeyD,
	'a': action.Key7, 's': action.Key8, 'd': action.Key9, 'f': action.KeyE,
	'z': action.KeyA, 'x': action.Key0, 'c': action.KeyB, 'v': action.KeyF,
}

// Backend renders the pixel grid into a terminal with tcell, two pixel rows
// per character cell.
type Backend struct {
	screen  tcell.Screen
	config  backend.Config
	running bool

	keyStates  map[action.Action]time.Time
	activeKeys map[action.Action]bool
}

// New creates a new terminal backend.
func New() *Backend {
	return &Backend{}
}

// Init initializes the terminal backend.
func (t *Backend) Init(config backend.Config) error {
	t.config = config
	t.keyStates = make(map[action.Action]time.Time)
	t.activeKeys = make(map[action.Action]bool)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to initialize terminal: %v", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %v", err)
	}

	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	screen.Clear()

	t.screen = screen
	t.running = true

	return nil
}

// Update renders a frame and processes events.
func (t *Backend) Update(frame *video.FrameBuffer, beeping bool) ([]backend.InputEvent, error) {
	var events []backend.InputEvent
	now := time.Now()

	for t.screen.HasPendingEvent() {
		ev := t.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			events = append(events, t.processKeyEvent(ev, now)...)
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}

	events = append(events, t.expireKeys(now)...)

	t.render(frame, beeping)

	return events, nil
}

// Cleanup releases the terminal.
func (t *Backend) Cleanup() error {
	if t.screen != nil {
		t.screen.Fini()
	}
	return nil
}

func (t *Backend) processKeyEvent(ev *tcell.EventKey, now time.Time) []backend.InputEvent {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		t.running = false
		return []backend.InputEvent{{Action: action.EmulatorQuit, Type: event.Press}}
	case tcell.KeyTAB:
		return []backend.InputEvent{{Action: action.EmulatorReset, Type: event.Press}}
	case tcell.KeyRune:
		// handled below
	default:
		return nil
	}

	switch r := ev.Rune(); r {
	case ' ':
		return []backend.InputEvent{{Action: action.EmulatorPauseToggle, Type: event.Press}}
	default:
		act, ok := keypadLayout[r]
		if !ok {
			return nil
		}

		t.keyStates[act] = now
		if !t.activeKeys[act] {
			t.activeKeys[act] = true
			return []backend.InputEvent{{Action: act, Type: event.Press}}
		}
		return nil
	}
}

// expireKeys synthesizes release events for keys whose repeats stopped.
func (t *Backend) expireKeys(now time.Time) []backend.InputEvent {
	var events []backend.InputEvent
	for act := range t.activeKeys {
		if now.Sub(t.keyStates[act]) > keyTimeout {
			delete(t.activeKeys, act)
			delete(t.keyStates, act)
			events = append(events, backend.InputEvent{Action: act, Type: event.Release})
		}
	}
	return events
}

func (t *Backend) render(frame *video.FrameBuffer, beeping bool) {
	t.screen.Clear()

	width, height := frame.Width(), frame.Height()
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)

	// Two pixel rows per terminal row using half-block runes.
	for y := 0; y < height; y += 2 {
		for x := 0; x < width; x++ {
			top := frame.GetPixel(x, y)
			bottom := y+1 < height && frame.GetPixel(x, y+1)

			var r rune
			switch {
			case top && bottom:
				r = '█'
			case top:
				r = '▀'
			case bottom:
				r = '▄'
			default:
				r = ' '
			}
			t.screen.SetContent(x, y/2, r, nil, style)
		}
	}

	statusRow := height / 2
	status := fmt.Sprintf("%dx%d  ESC quit  TAB reset  SPACE pause", width, height)
	if beeping {
		status = "♪ " + status
	}
	t.drawText(0, statusRow, status, style)

	if t.config.ShowDebug && t.config.DebugLine != nil {
		t.drawText(0, statusRow+1, t.config.DebugLine(), style)
	}

	t.screen.Show()
}

func (t *Backend) drawText(x, y int, text string, style tcell.Style) {
	for i, r := range text {
		t.screen.SetContent(x+i, y, r, nil, style)
	}
}
