// Package widgets provides the terminal widgets that host a grid.
package widgets

import (
	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/furry-grid/attr"
	"github.com/odvcencio/furry-grid/backend"
	"github.com/odvcencio/furry-grid/runtime"
)

// Base provides common functionality for widgets.
// Embed this in widget structs to get default implementations.
type Base struct {
	bounds      runtime.Rect
	focused     bool
	needsRender bool
}

// Layout stores the assigned bounds.
func (b *Base) Layout(bounds runtime.Rect) {
	if b == nil {
		return
	}
	if b.bounds != bounds {
		b.bounds = bounds
		b.needsRender = true
	}
}

// Bounds returns the widget's assigned bounds.
func (b *Base) Bounds() runtime.Rect {
	if b == nil {
		return runtime.Rect{}
	}
	return b.bounds
}

// HandleMessage returns Unhandled by default.
func (b *Base) HandleMessage(msg runtime.Message) runtime.HandleResult {
	return runtime.Unhandled()
}

// CanFocus returns false by default.
func (b *Base) CanFocus() bool {
	return false
}

// Focus marks the widget as focused.
func (b *Base) Focus() {
	if b == nil {
		return
	}
	b.focused = true
	b.needsRender = true
}

// Blur marks the widget as unfocused.
func (b *Base) Blur() {
	if b == nil {
		return
	}
	b.focused = false
	b.needsRender = true
}

// IsFocused returns whether the widget is focused.
func (b *Base) IsFocused() bool {
	if b == nil {
		return false
	}
	return b.focused
}

// Invalidate marks the widget as needing a render pass.
func (b *Base) Invalidate() {
	if b == nil {
		return
	}
	b.needsRender = true
}

// NeedsRender reports whether the widget needs to re-render.
func (b *Base) NeedsRender() bool {
	if b == nil {
		return false
	}
	return b.needsRender
}

// ClearInvalidation clears the render-needed flag.
func (b *Base) ClearInvalidation() {
	if b == nil {
		return
	}
	b.needsRender = false
}

// FocusableBase extends Base for focusable widgets.
type FocusableBase struct {
	Base
}

// CanFocus returns true for focusable widgets.
func (f *FocusableBase) CanFocus() bool {
	return true
}

// truncateString truncates a string to fit within maxWidth.
// Adds "…" if truncated.
func truncateString(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	return runewidth.Truncate(s, maxWidth, "…")
}

// writeAligned fills [x, x+width) on row y with style and draws text in it
// with the given justification.
func writeAligned(buf *runtime.Buffer, x, y, width int, text string, just attr.Justification, style backend.Style) {
	if buf == nil || width <= 0 {
		return
	}
	buf.Fill(runtime.Rect{X: x, Y: y, Width: width, Height: 1}, ' ', style)
	text = truncateString(text, width)
	w := runewidth.StringWidth(text)
	switch just {
	case attr.JustifyRight:
		x += width - w
	case attr.JustifyCenter:
		x += (width - w) / 2
	}
	buf.SetString(x, y, text, style, width)
}
