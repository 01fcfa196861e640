package runtime

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

// Message represents an input event delivered by the host.
type Message interface {
	isMessage()
}

// KeyMsg represents a keyboard input event.
type KeyMsg struct {
	Key   tcell.Key
	Rune  rune
	Alt   bool
	Ctrl  bool
	Shift bool
}

func (KeyMsg) isMessage() {}

// ResizeMsg indicates the host surface size changed.
type ResizeMsg struct {
	Width  int
	Height int
}

func (ResizeMsg) isMessage() {}

// MouseMsg represents a mouse input event in surface coordinates.
type MouseMsg struct {
	X, Y   int
	Button MouseButton
	Action MouseAction
	Clicks int // 2 for a double click
	Alt    bool
	Ctrl   bool
	Shift  bool
}

func (MouseMsg) isMessage() {}

// MouseButton identifies which mouse button was involved.
type MouseButton int

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
	MouseWheelUp
	MouseWheelDown
)

// MouseAction identifies what happened with the mouse.
type MouseAction int

const (
	MousePress MouseAction = iota
	MouseRelease
	MouseMove
)

// TickMsg is sent at the app's tick rate.
type TickMsg struct {
	Time time.Time
}

func (TickMsg) isMessage() {}

// CallMsg runs Fn on the event loop. Fn reports whether a render is needed.
// It is how other goroutines change widgets without locking them.
type CallMsg struct {
	Fn func() bool
}

func (CallMsg) isMessage() {}
