// Package backend defines the host surface a grid paints onto.
package backend

import "github.com/gdamore/tcell/v2"

// Style is the visual style of a single cell.
type Style = tcell.Style

// Color is a terminal color. The zero value means "unset".
type Color = tcell.Color

// DefaultStyle returns the terminal's default style.
func DefaultStyle() Style {
	return tcell.StyleDefault
}

// Cell is a rune with its style.
type Cell struct {
	Rune  rune
	Style Style
}

// Backend is the host paint collaborator. Callers render into a buffer
// first and copy the changed cells with SetContent before calling Show.
type Backend interface {
	Init() error
	Fini()
	Size() (width, height int)
	SetContent(x, y int, r rune, combining []rune, style Style)
	Show()
}

// RowWriter is an optional fast path for copying a run of cells on one row.
type RowWriter interface {
	SetRow(y, startX int, cells []Cell)
}

// RectWriter is an optional fast path for copying a whole block.
// cells is row-major with width*height entries.
type RectWriter interface {
	SetRect(x, y, width, height int, cells []Cell)
}
