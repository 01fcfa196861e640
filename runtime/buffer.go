package runtime

// The grid renders into a Buffer; the host copies the changed cells to its
// backend with FlushTo. Only cells whose rune or style changed since the last
// flush are copied.

import (
	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/furry-grid/backend"
)

// Cell represents a single character cell in the buffer.
type Cell = backend.Cell

// Buffer is a 2D grid of cells with dirty tracking.
type Buffer struct {
	cells  []Cell
	dirty  []bool
	width  int
	height int

	dirtyAll   bool
	dirtyCount int
	dirtyRect  Rect
}

// NewBuffer creates a buffer with the given dimensions.
func NewBuffer(w, h int) *Buffer {
	w, h = max(w, 0), max(h, 0)
	b := &Buffer{
		cells:  make([]Cell, w*h),
		dirty:  make([]bool, w*h),
		width:  w,
		height: h,
	}
	b.blank()
	return b
}

// Size returns the buffer dimensions.
func (b *Buffer) Size() (w, h int) {
	return b.width, b.height
}

// Resize changes the buffer dimensions. Content is discarded and the whole
// buffer is marked dirty.
func (b *Buffer) Resize(w, h int) {
	w, h = max(w, 0), max(h, 0)
	if w == b.width && h == b.height {
		return
	}
	b.cells = make([]Cell, w*h)
	b.dirty = make([]bool, w*h)
	b.width = w
	b.height = h
	b.blank()
}

func (b *Buffer) blank() {
	for i := range b.cells {
		b.cells[i] = Cell{Rune: ' ', Style: backend.DefaultStyle()}
	}
	b.MarkAllDirty()
}

// Get returns the cell at position (x, y).
// Returns a blank cell if out of bounds.
func (b *Buffer) Get(x, y int) Cell {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return Cell{Rune: ' '}
	}
	return b.cells[y*b.width+x]
}

// Set writes a rune with style at position (x, y). No-op if out of bounds.
func (b *Buffer) Set(x, y int, r rune, s backend.Style) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	idx := y*b.width + x
	cell := Cell{Rune: r, Style: s}
	if b.cells[idx] == cell {
		return
	}
	b.cells[idx] = cell
	b.markDirty(x, y, idx)
}

// SetString writes s starting at (x, y) and returns the number of columns
// used. Wide runes take two columns; the trailing column holds a zero rune.
// Output is clipped to maxWidth columns when maxWidth >= 0.
func (b *Buffer) SetString(x, y int, s string, style backend.Style, maxWidth int) int {
	used := 0
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if maxWidth >= 0 && used+w > maxWidth {
			break
		}
		b.Set(x+used, y, r, style)
		if w == 2 {
			b.Set(x+used+1, y, 0, style)
		}
		used += w
	}
	return used
}

// Fill fills a rectangular region with a rune and style.
func (b *Buffer) Fill(r Rect, ch rune, s backend.Style) {
	clipped := r.Intersection(Rect{Width: b.width, Height: b.height})
	for y := clipped.Y; y < clipped.Y+clipped.Height; y++ {
		for x := clipped.X; x < clipped.X+clipped.Width; x++ {
			b.Set(x, y, ch, s)
		}
	}
}

func (b *Buffer) markDirty(x, y, idx int) {
	if b.dirtyAll || b.dirty[idx] {
		return
	}
	b.dirty[idx] = true
	b.dirtyCount++
	if b.dirtyCount == 1 {
		b.dirtyRect = Rect{X: x, Y: y, Width: 1, Height: 1}
		return
	}
	x0 := min(b.dirtyRect.X, x)
	y0 := min(b.dirtyRect.Y, y)
	x1 := max(b.dirtyRect.X+b.dirtyRect.Width, x+1)
	y1 := max(b.dirtyRect.Y+b.dirtyRect.Height, y+1)
	b.dirtyRect = Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// MarkAllDirty forces the next flush to copy every cell.
func (b *Buffer) MarkAllDirty() {
	b.dirtyAll = true
	b.dirtyCount = b.width * b.height
	b.dirtyRect = Rect{Width: b.width, Height: b.height}
}

// ClearDirty resets all dirty flags.
func (b *Buffer) ClearDirty() {
	clear(b.dirty)
	b.dirtyAll = false
	b.dirtyCount = 0
	b.dirtyRect = Rect{}
}

// IsDirty returns true if any cells have changed.
func (b *Buffer) IsDirty() bool {
	return b.dirtyCount > 0
}

// DirtyCount returns the number of dirty cells.
func (b *Buffer) DirtyCount() int {
	return b.dirtyCount
}

// DirtyRect returns the bounding box of dirty cells.
func (b *Buffer) DirtyRect() Rect {
	return b.dirtyRect
}

// Cells returns the underlying row-major cell slice.
func (b *Buffer) Cells() []Cell {
	return b.cells
}

// FlushTo copies dirty cells to be with the buffer placed at (ox, oy),
// clears the dirty state and returns the number of cells copied. It does not call Show.
func (b *Buffer) FlushTo(be backend.Backend, ox, oy int) int {
	if be == nil || !b.IsDirty() {
		return 0
	}
	defer b.ClearDirty()
	w, h := b.width, b.height
	if rw, ok := be.(backend.RectWriter); ok && b.dirtyAll {
		rw.SetRect(ox, oy, w, h, b.cells)
		return w * h
	}
	rect := b.dirtyRect
	flushed := 0
	rowWriter, hasRowWriter := be.(backend.RowWriter)
	for y := rect.Y; y < rect.Y+rect.Height; y++ {
		rowStart := y * w
		x := rect.X
		for x < rect.X+rect.Width {
			if !b.dirtyAll && !b.dirty[rowStart+x] {
				x++
				continue
			}
			start := x
			for x < rect.X+rect.Width && (b.dirtyAll || b.dirty[rowStart+x]) {
				x++
			}
			span := b.cells[rowStart+start : rowStart+x]
			if hasRowWriter {
				rowWriter.SetRow(oy+y, ox+start, span)
			} else {
				for i, cell := range span {
					if cell.Rune == 0 {
						continue
					}
					be.SetContent(ox+start+i, oy+y, cell.Rune, nil, cell.Style)
				}
			}
			flushed += len(span)
		}
	}
	return flushed
}
