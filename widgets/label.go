package widgets

import (
	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/furry-grid/attr"
	"github.com/odvcencio/furry-grid/backend"
	"github.com/odvcencio/furry-grid/runtime"
)

// Label is a single line of text.
type Label struct {
	Base
	text  string
	style backend.Style
	just  attr.Justification
}

// NewLabel creates a left-aligned label.
func NewLabel(text string) *Label {
	return &Label{text: text, style: backend.DefaultStyle(), just: attr.JustifyLeft}
}

// Text returns the current label text.
func (l *Label) Text() string {
	return l.text
}

// SetText replaces the text.
func (l *Label) SetText(text string) {
	if text != l.text {
		l.text = text
		l.Invalidate()
	}
}

// SetStyle sets the label style.
func (l *Label) SetStyle(style backend.Style) {
	l.style = style
	l.Invalidate()
}

// SetJustification sets text alignment.
func (l *Label) SetJustification(j attr.Justification) {
	l.just = j
	l.Invalidate()
}

// Measure returns the size needed for the label.
func (l *Label) Measure(constraints runtime.Constraints) runtime.Size {
	return constraints.Constrain(runtime.Size{
		Width:  runewidth.StringWidth(l.text),
		Height: 1,
	})
}

// Render draws the label.
func (l *Label) Render(ctx runtime.RenderContext) {
	b := l.bounds
	if b.Empty() || ctx.Buffer == nil {
		return
	}
	writeAligned(ctx.Buffer, b.X, b.Y, b.Width, l.text, l.just, l.style)
	l.ClearInvalidation()
}
