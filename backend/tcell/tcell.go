// Package tcell implements the grid host surface on a tcell screen and
// translates tcell events into runtime messages.
package tcell

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/odvcencio/furry-grid/backend"
	"github.com/odvcencio/furry-grid/runtime"
)

// DoubleClickInterval is the longest gap between the two presses of a
// double click.
const DoubleClickInterval = 400 * time.Millisecond

// Backend is a tcell screen. It implements backend.Backend,
// backend.RowWriter and runtime.EventSource.
type Backend struct {
	screen tcell.Screen
	mouse  mouseState
	now    func() time.Time
}

var (
	_ backend.Backend     = (*Backend)(nil)
	_ backend.RowWriter   = (*Backend)(nil)
	_ runtime.EventSource = (*Backend)(nil)
)

// New creates a backend on the terminal.
func New() (*Backend, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("tcell screen: %w", err)
	}
	return NewWithScreen(s), nil
}

// NewWithScreen wraps an existing screen, such as a simulation screen.
func NewWithScreen(s tcell.Screen) *Backend {
	return &Backend{screen: s, now: time.Now}
}

// Screen returns the underlying screen.
func (b *Backend) Screen() tcell.Screen {
	return b.screen
}

// Init initializes the screen with mouse reporting enabled.
func (b *Backend) Init() error {
	if err := b.screen.Init(); err != nil {
		return fmt.Errorf("tcell init: %w", err)
	}
	b.screen.EnableMouse()
	b.screen.HideCursor()
	b.screen.Clear()
	return nil
}

// Fini restores the terminal.
func (b *Backend) Fini() {
	b.screen.Fini()
}

// Size returns the screen size.
func (b *Backend) Size() (int, int) {
	return b.screen.Size()
}

// SetContent sets one cell.
func (b *Backend) SetContent(x, y int, r rune, combining []rune, style backend.Style) {
	b.screen.SetContent(x, y, r, combining, style)
}

// SetRow copies a run of cells. Zero runes are the trailing halves of wide
// runes and are left to the screen.
func (b *Backend) SetRow(y, startX int, cells []backend.Cell) {
	for i, c := range cells {
		if c.Rune == 0 {
			continue
		}
		b.screen.SetContent(startX+i, y, c.Rune, nil, c.Style)
	}
}

// Show makes the changes visible.
func (b *Backend) Show() {
	b.screen.Show()
}

// PollMessage waits for the next event and translates it. Events without
// a message form are skipped.
func (b *Backend) PollMessage() (runtime.Message, bool) {
	for {
		ev := b.screen.PollEvent()
		if ev == nil {
			return nil, false
		}
		if msg := b.Translate(ev); msg != nil {
			return msg, true
		}
	}
}

// Translate converts a tcell event into a message, or nil.
func (b *Backend) Translate(ev tcell.Event) runtime.Message {
	switch e := ev.(type) {
	case *tcell.EventKey:
		mod := e.Modifiers()
		return runtime.KeyMsg{
			Key:   e.Key(),
			Rune:  e.Rune(),
			Alt:   mod&tcell.ModAlt != 0,
			Ctrl:  mod&tcell.ModCtrl != 0,
			Shift: mod&tcell.ModShift != 0,
		}
	case *tcell.EventResize:
		w, h := e.Size()
		return runtime.ResizeMsg{Width: w, Height: h}
	case *tcell.EventMouse:
		x, y := e.Position()
		return b.mouse.translate(x, y, e.Buttons(), e.Modifiers(), b.now())
	}
	return nil
}

// mouseState turns tcell's button masks into press, release and move
// messages and counts clicks.
type mouseState struct {
	buttons   tcell.ButtonMask
	lastPress time.Time
	lastX     int
	lastY     int
	clicks    int
}

func (m *mouseState) translate(x, y int, buttons tcell.ButtonMask, mod tcell.ModMask, now time.Time) runtime.Message {
	msg := runtime.MouseMsg{
		X:     x,
		Y:     y,
		Alt:   mod&tcell.ModAlt != 0,
		Ctrl:  mod&tcell.ModCtrl != 0,
		Shift: mod&tcell.ModShift != 0,
	}
	switch {
	case buttons&tcell.WheelUp != 0:
		msg.Button, msg.Action = runtime.MouseWheelUp, runtime.MousePress
		return msg
	case buttons&tcell.WheelDown != 0:
		msg.Button, msg.Action = runtime.MouseWheelDown, runtime.MousePress
		return msg
	}

	pressed := buttons &^ m.buttons
	released := m.buttons &^ buttons
	m.buttons = buttons & (tcell.Button1 | tcell.Button2 | tcell.Button3)
	switch {
	case pressed != 0:
		msg.Button, msg.Action = button(pressed), runtime.MousePress
		if msg.Button == runtime.MouseLeft {
			if x == m.lastX && y == m.lastY && now.Sub(m.lastPress) <= DoubleClickInterval {
				m.clicks++
			} else {
				m.clicks = 1
			}
			m.lastPress, m.lastX, m.lastY = now, x, y
			msg.Clicks = m.clicks
		} else {
			msg.Clicks = 1
		}
	case released != 0:
		msg.Button, msg.Action = button(released), runtime.MouseRelease
	default:
		msg.Button, msg.Action = button(m.buttons), runtime.MouseMove
	}
	return msg
}

func button(mask tcell.ButtonMask) runtime.MouseButton {
	switch {
	case mask&tcell.Button1 != 0:
		return runtime.MouseLeft
	case mask&tcell.Button3 != 0:
		return runtime.MouseMiddle
	case mask&tcell.Button2 != 0:
		return runtime.MouseRight
	}
	return runtime.MouseNone
}
