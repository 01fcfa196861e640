package grid

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/furry-grid/attr"
	"github.com/odvcencio/furry-grid/backend"
	"github.com/odvcencio/furry-grid/runtime"
	"github.com/odvcencio/furry-grid/scroll"
)

const (
	ruleHorizontal = '─'
	ruleVertical   = '│'
	ruleCross      = '┼'
	sortUp         = '▲'
	sortDown       = '▼'
)

// Render paints the grid into its backing buffer, sized to the viewport,
// and returns it. One layout unit is one buffer cell. The buffer belongs to
// the grid: hosts copy it out, typically with FlushTo, before the next
// Render.
func (g *Grid) Render() *runtime.Buffer {
	g.lock()
	defer g.unlock()
	g.buf.Resize(g.viewW, g.viewH)
	g.paint(canvas{buf: g.buf, clip: runtime.Rect{Width: g.viewW, Height: g.viewH}})
	g.repaint.Store(false)
	return g.buf
}

// Draw paints the grid into buf with its top-left corner at bounds' origin,
// clipped to bounds.
func (g *Grid) Draw(buf *runtime.Buffer, bounds runtime.Rect) {
	if buf == nil {
		return
	}
	g.lock()
	defer g.unlock()
	clip := runtime.Rect{Width: min(g.viewW, bounds.Width), Height: min(g.viewH, bounds.Height)}
	g.paint(canvas{buf: buf, ox: bounds.X, oy: bounds.Y, clip: clip})
	g.repaint.Store(false)
}

// canvas writes to a buffer through a clip rectangle in grid coordinates.
type canvas struct {
	buf    *runtime.Buffer
	ox, oy int
	clip   runtime.Rect
}

func (c canvas) within(r runtime.Rect) canvas {
	c.clip = c.clip.Intersection(r)
	return c
}

func (c canvas) set(x, y int, r rune, st backend.Style) {
	if c.clip.Contains(x, y) {
		c.buf.Set(c.ox+x, c.oy+y, r, st)
	}
}

func (c canvas) get(x, y int) rune {
	return c.buf.Get(c.ox+x, c.oy+y).Rune
}

func (c canvas) fill(r runtime.Rect, st backend.Style) {
	r = r.Intersection(c.clip)
	for y := r.Y; y < r.Y+r.Height; y++ {
		for x := r.X; x < r.X+r.Width; x++ {
			c.buf.Set(c.ox+x, c.oy+y, ' ', st)
		}
	}
}

// text draws s justified within [x, x+width), truncating with an ellipsis.
func (c canvas) text(x, y, width int, s string, just attr.Justification, st backend.Style) {
	if width <= 0 || s == "" {
		return
	}
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "…")
	}
	w := runewidth.StringWidth(s)
	switch just {
	case attr.JustifyRight:
		x += width - w
	case attr.JustifyCenter:
		x += (width - w) / 2
	}
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if rw == 2 && !(c.clip.Contains(x, y) && c.clip.Contains(x+1, y)) {
			x += rw
			continue
		}
		c.set(x, y, r, st)
		if rw == 2 {
			c.set(x+1, y, 0, st)
		}
		x += rw
	}
}

func (g *Grid) paint(cv canvas) {
	base := backend.DefaultStyle()
	tableRes := attr.Resolve(nil, nil, g.table)
	cv.fill(cv.clip, tableRes.Style(base))

	head := g.headerExtent()
	body := g.bodyRect()
	cols := g.visibleColumns()
	hoff, voff := g.h.Offset(), g.v.Offset()
	pad := g.cfg.CellPadding / 2
	rh := g.rowHeight

	// Header cells.
	headerCanvas := cv.within(runtime.Rect{Width: g.bodyW, Height: g.headerHeight})
	headerRes := attr.Resolve(g.header, nil, g.table)
	headerStyle := headerRes.Style(base.Bold(true))
	for ci := cols.Start; ci < cols.End; ci++ {
		col := g.columns[ci]
		x := col.left - hoff
		cc := headerCanvas.within(runtime.Rect{X: x, Width: col.width, Height: g.headerHeight})
		cc.fill(cc.clip, headerStyle)
		label := col.header
		if ci == g.sortCol {
			mark := sortUp
			if !g.sortAsc {
				mark = sortDown
			}
			label += " " + string(mark)
		}
		cc.text(x+pad, 0, col.width-g.cfg.CellPadding, label, headerRes.Justification, headerStyle)
	}

	// Rows and fill slots.
	bodyCanvas := cv.within(body)
	ruleStyle := base.Foreground(g.lines.BodyColor)
	if bg := tableRes.Background; bg != tcell.ColorDefault {
		ruleStyle = ruleStyle.Background(bg)
	}
	rows := g.visibleRows()
	for i := rows.Start; i < rows.End; i++ {
		var lineTop int
		if i < len(g.rows) {
			r := g.rows[i]
			top := head + r.top - voff
			g.paintRow(bodyCanvas, r, top, hoff, cols)
			lineTop = top + r.span*rh
		} else {
			lineTop = head + scroll.FillLeading(rowEdges(g.rows), i, g.fill()) - voff + rh
		}
		for t := 0; t < g.lines.Body; t++ {
			for x := 0; x < g.contentW-hoff; x++ {
				bodyCanvas.set(x, lineTop+t, ruleHorizontal, ruleStyle)
			}
		}
	}

	// Header rule.
	headerRule := base.Foreground(g.lines.HeaderColor)
	ruleCanvas := cv.within(runtime.Rect{Y: g.headerHeight, Width: g.bodyW, Height: g.lines.Header})
	for t := 0; t < g.lines.Header; t++ {
		for x := 0; x < g.bodyW; x++ {
			ruleCanvas.set(x, g.headerHeight+t, ruleHorizontal, headerRule)
		}
	}

	// Column separators, crossing the rules drawn above.
	sepCanvas := cv.within(runtime.Rect{Width: g.bodyW, Height: head + g.bodyH})
	bottom := head + min(g.bodyH, max(g.contentH-voff, 0))
	if g.cfg.VerticalFill {
		bottom = head + g.bodyH
	}
	for ci := cols.Start; ci < cols.End && ci < len(g.columns)-1; ci++ {
		col := g.columns[ci]
		for t := 0; t < g.lines.Separator; t++ {
			x := col.left + col.width + t - hoff
			for y := 0; y < bottom; y++ {
				st := ruleStyle
				if y >= g.headerHeight && y < head {
					st = headerRule
				}
				ch := ruleVertical
				if sepCanvas.get(x, y) == ruleHorizontal && sepCanvas.clip.Contains(x, y) {
					ch = ruleCross
				}
				sepCanvas.set(x, y, ch, st)
			}
		}
	}

	g.paintScrollbars(cv, head)
}

func (g *Grid) paintRow(cv canvas, r *row, top, hoff int, cols scroll.Range) {
	base := backend.DefaultStyle()
	pad := g.cfg.CellPadding / 2
	height := r.span * g.rowHeight
	selected := r == g.selected
	for ci := cols.Start; ci < cols.End; ci++ {
		col := g.columns[ci]
		c := r.cells[ci]
		res := attr.Resolve(c.attrs, col.attrs, g.table)
		st := res.Style(base)
		if selected {
			st = st.Background(backend.Blend(res.Background, g.cfg.SelectionColor, g.cfg.SelectionBlend))
		}
		x := col.left - hoff
		cc := cv.within(runtime.Rect{X: x, Y: top, Width: col.width, Height: height})
		cc.fill(cc.clip, st)
		if g.rowHeight <= 0 {
			continue
		}
		for k, line := range c.lines() {
			cc.text(x+pad, top+k*g.rowHeight, col.width-g.cfg.CellPadding, line, res.Justification, st)
		}
	}
}

func (g *Grid) paintScrollbars(cv canvas, head int) {
	sbw := g.cfg.ScrollbarWidth
	if g.vscroll {
		bar := scroll.DefaultScrollbar(scroll.Vertical)
		start, size := bar.Thumb(&g.v, g.bodyH)
		for y := 0; y < g.bodyH; y++ {
			ch, st := bar.Chars.Track, bar.Track
			if y >= start && y < start+size {
				ch, st = bar.Chars.Thumb, bar.Thumb
			}
			for t := 0; t < sbw; t++ {
				cv.set(g.bodyW+t, head+y, ch, st)
			}
		}
	}
	if g.hscroll {
		bar := scroll.DefaultScrollbar(scroll.Horizontal)
		start, size := bar.Thumb(&g.h, g.bodyW)
		for x := 0; x < g.bodyW; x++ {
			ch, st := bar.Chars.Track, bar.Track
			if x >= start && x < start+size {
				ch, st = bar.Chars.Thumb, bar.Thumb
			}
			for t := 0; t < sbw; t++ {
				cv.set(x, head+g.bodyH+t, ch, st)
			}
		}
	}
}
