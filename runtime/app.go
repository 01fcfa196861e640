package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/odvcencio/furry-grid/backend"
)

// ErrNoBackend is returned by Run without a backend.
var ErrNoBackend = errors.New("backend is required")

// EventSource delivers host input as messages. PollMessage blocks until
// input arrives; ok is false once the source has been finalized.
type EventSource interface {
	PollMessage() (msg Message, ok bool)
}

// UpdateFunc handles a message and returns true if a render is needed.
type UpdateFunc func(app *App, msg Message) bool

// CommandHandler handles commands emitted by widgets.
// Return true if the command requires a render.
type CommandHandler func(cmd Command) bool

// AppConfig configures a runtime App.
type AppConfig struct {
	Backend backend.Backend
	// Events defaults to Backend when it implements EventSource.
	Events         EventSource
	Root           Widget
	Update         UpdateFunc
	CommandHandler CommandHandler
	MessageBuffer  int
	TickRate       time.Duration
	Logger         *slog.Logger
}

// App runs a widget against a backend: it feeds host input to the widget
// and flushes the changed cells of each render.
type App struct {
	backend        backend.Backend
	events         EventSource
	root           Widget
	update         UpdateFunc
	commandHandler CommandHandler
	messages       chan Message
	tickRate       time.Duration
	log            *slog.Logger

	buffer  *Buffer
	running atomic.Bool
	dirty   bool
	frames  int64
}

// quitMsg stops the loop from outside a widget.
type quitMsg struct{}

func (quitMsg) isMessage() {}

// NewApp creates a new App from config.
func NewApp(cfg AppConfig) *App {
	bufferSize := cfg.MessageBuffer
	if bufferSize <= 0 {
		bufferSize = 128
	}
	events := cfg.Events
	if events == nil {
		events, _ = cfg.Backend.(EventSource)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &App{
		backend:        cfg.Backend,
		events:         events,
		root:           cfg.Root,
		update:         cfg.Update,
		commandHandler: cfg.CommandHandler,
		messages:       make(chan Message, bufferSize),
		tickRate:       cfg.TickRate,
		log:            logger,
		buffer:         NewBuffer(0, 0),
	}
}

// SetRoot swaps the root widget.
func (a *App) SetRoot(root Widget) {
	a.root = root
	a.layout()
	a.dirty = true
}

// Root returns the root widget.
func (a *App) Root() Widget {
	return a.root
}

// Buffer returns the frame buffer.
func (a *App) Buffer() *Buffer {
	return a.buffer
}

// Frames returns the number of frames flushed so far.
func (a *App) Frames() int64 {
	return atomic.LoadInt64(&a.frames)
}

// Post sends a message to the event loop, blocking while the queue is full.
func (a *App) Post(msg Message) {
	if a == nil || msg == nil {
		return
	}
	a.messages <- msg
}

// TryPost sends a message to the event loop without blocking.
func (a *App) TryPost(msg Message) bool {
	if a == nil || msg == nil {
		return false
	}
	select {
	case a.messages <- msg:
		return true
	default:
		return false
	}
}

// Call runs fn on the event loop; fn reports whether a render is needed.
func (a *App) Call(fn func() bool) {
	if fn != nil {
		a.Post(CallMsg{Fn: fn})
	}
}

// Quit asks a running loop to stop.
func (a *App) Quit() {
	a.TryPost(quitMsg{})
}

// Run starts the event loop until quit or context cancellation.
func (a *App) Run(ctx context.Context) error {
	if a.backend == nil {
		return ErrNoBackend
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := a.backend.Init(); err != nil {
		return fmt.Errorf("init backend: %w", err)
	}
	defer a.backend.Fini()

	w, h := a.backend.Size()
	a.buffer.Resize(w, h)
	a.layout()
	if f, ok := a.root.(interface{ Focus() }); ok {
		f.Focus()
	}
	if a.update == nil {
		a.update = DefaultUpdate
	}

	a.running.Store(true)
	a.dirty = true
	if a.events != nil {
		go a.pollEvents()
	}

	var ticks <-chan time.Time
	if a.tickRate > 0 {
		ticker := time.NewTicker(a.tickRate)
		defer ticker.Stop()
		ticks = ticker.C
	}

	for a.running.Load() {
		if a.dirty || a.rootNeedsRender() {
			a.render()
			a.dirty = false
		}
		select {
		case <-ctx.Done():
			a.running.Store(false)
			return ctx.Err()
		case msg := <-a.messages:
			if _, ok := msg.(quitMsg); ok {
				a.running.Store(false)
				break
			}
			if a.update(a, msg) {
				a.dirty = true
			}
		case now := <-ticks:
			if a.update(a, TickMsg{Time: now}) {
				a.dirty = true
			}
		}
	}
	a.log.Debug("app: stopped", "frames", a.Frames())
	return nil
}

// DefaultUpdate handles resizes and calls, and passes everything else to
// the root widget.
func DefaultUpdate(app *App, msg Message) bool {
	if app == nil {
		return false
	}
	switch m := msg.(type) {
	case ResizeMsg:
		app.buffer.Resize(m.Width, m.Height)
		app.layout()
		return true
	case CallMsg:
		if m.Fn == nil {
			return false
		}
		return m.Fn()
	}
	return app.dispatchMessage(msg)
}

func (a *App) dispatchMessage(msg Message) bool {
	if a.root == nil {
		return false
	}
	result := a.root.HandleMessage(msg)
	dirty := result.Handled
	for _, cmd := range result.Commands {
		if a.handleCommand(cmd) {
			dirty = true
		}
	}
	return dirty
}

func (a *App) handleCommand(cmd Command) bool {
	switch c := cmd.(type) {
	case Quit:
		a.running.Store(false)
		return false
	case Refresh:
		a.buffer.MarkAllDirty()
		return true
	case SendMsg:
		if c.Message != nil && !a.TryPost(c.Message) {
			a.log.Warn("app: message queue full", "message", fmt.Sprintf("%T", c.Message))
		}
		return false
	default:
		if a.commandHandler != nil {
			return a.commandHandler(cmd)
		}
		return false
	}
}

// ExecuteCommand runs a command through the app handler.
func (a *App) ExecuteCommand(cmd Command) bool {
	if a == nil {
		return false
	}
	return a.handleCommand(cmd)
}

func (a *App) pollEvents() {
	for a.running.Load() {
		msg, ok := a.events.PollMessage()
		if !ok {
			return
		}
		if msg != nil && !a.TryPost(msg) {
			a.log.Warn("app: input dropped", "message", fmt.Sprintf("%T", msg))
		}
	}
}

func (a *App) layout() {
	if a.root == nil {
		return
	}
	w, h := a.buffer.Size()
	size := a.root.Measure(Tight(Size{Width: w, Height: h}))
	a.root.Layout(Rect{Width: size.Width, Height: size.Height})
}

func (a *App) rootNeedsRender() bool {
	n, ok := a.root.(interface{ NeedsRender() bool })
	return ok && n.NeedsRender()
}

func (a *App) render() {
	if a.root == nil {
		return
	}
	w, h := a.buffer.Size()
	a.root.Render(RenderContext{
		Buffer:  a.buffer,
		Focused: true,
		Bounds:  Rect{Width: w, Height: h},
	})
	flushed := a.buffer.FlushTo(a.backend, 0, 0)
	a.backend.Show()
	frame := atomic.AddInt64(&a.frames, 1)
	a.log.Debug("app: frame", "frame", frame, "flushed", flushed)
}
