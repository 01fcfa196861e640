package runtime

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

type chanBackend struct {
	recordingBackend
	events chan Message
	mu     sync.Mutex
	shows  int
	fini   bool
}

func (b *chanBackend) PollMessage() (Message, bool) {
	msg, ok := <-b.events
	return msg, ok
}

func (b *chanBackend) Show() {
	b.mu.Lock()
	b.shows++
	b.mu.Unlock()
}

func (b *chanBackend) Fini() {
	b.fini = true
}

// echoWidget writes the last key rune at the origin and quits on 'q'.
type echoWidget struct {
	bounds Rect
	last   rune
	keys   int
}

func (w *echoWidget) Measure(c Constraints) Size { return c.Constrain(Size{Width: c.MaxWidth, Height: c.MaxHeight}) }
func (w *echoWidget) Layout(bounds Rect) { w.bounds = bounds }

func (w *echoWidget) Render(ctx RenderContext) {
	ctx.Buffer.Set(0, 0, w.last, tcell.StyleDefault)
}

func (w *echoWidget) HandleMessage(msg Message) HandleResult {
	key, ok := msg.(KeyMsg)
	if !ok {
		return Unhandled()
	}
	w.keys++
	if key.Rune == 'q' {
		return WithCommand(Quit{})
	}
	w.last = key.Rune
	return Handled()
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAppRunsUntilQuit(t *testing.T) {
	be := &chanBackend{events: make(chan Message, 8)}
	root := &echoWidget{last: ' '}
	app := NewApp(AppConfig{Backend: be, Root: root, Logger: discardLogger()})

	be.events <- KeyMsg{Rune: 'x'}
	be.events <- ResizeMsg{Width: 10, Height: 2}
	be.events <- KeyMsg{Rune: 'q'}

	done := make(chan error, 1)
	go func() { done <- app.Run(context.Background()) }()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("app did not quit")
	}

	if !be.fini {
		t.Fatal("backend not finalized")
	}
	if root.keys != 2 {
		t.Fatalf("keys = %d, want 2", root.keys)
	}
	if root.bounds.Width != 10 || root.bounds.Height != 2 {
		t.Fatalf("bounds = %+v, want 10x2", root.bounds)
	}
	if got := be.cells[[2]int{0, 0}]; got != 'x' {
		t.Fatalf("cell = %q, want 'x'", got)
	}
	if app.Frames() < 2 {
		t.Fatalf("frames = %d, want at least 2", app.Frames())
	}
}

func TestAppStopsOnCancel(t *testing.T) {
	be := &chanBackend{events: make(chan Message)}
	app := NewApp(AppConfig{Backend: be, Root: &echoWidget{}, Logger: discardLogger()})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := app.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run = %v, want context.Canceled", err)
	}
	close(be.events)
}

func TestAppCallRunsOnLoop(t *testing.T) {
	be := &chanBackend{events: make(chan Message)}
	app := NewApp(AppConfig{Backend: be, Root: &echoWidget{}, Logger: discardLogger()})
	ran := false
	app.Call(func() bool {
		ran = true
		return false
	})
	app.Quit()
	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("Run = %v", err)
	}
	if !ran {
		t.Fatal("call did not run")
	}
	close(be.events)
}

func TestAppRequiresBackend(t *testing.T) {
	if err := NewApp(AppConfig{}).Run(context.Background()); !errors.Is(err, ErrNoBackend) {
		t.Fatalf("Run = %v, want ErrNoBackend", err)
	}
}
