package grid

import (
	"math"

	"github.com/odvcencio/furry-grid/attr"
	"github.com/odvcencio/furry-grid/runtime"
	"github.com/odvcencio/furry-grid/scroll"
	"github.com/odvcencio/furry-grid/wrap"
)

// recompute brings every derived layout value up to date. It is the only
// place layout is computed; every mutating call ends here.
//
// Order: font metrics, row height and baseline, the vertical scrollbar
// decision, column scaling, wrapping, row positions and finally the scroll
// extents. Showing the vertical scrollbar narrows the columns, so the
// scaling, wrapping and positioning steps run a second time when the first
// pass finds the rows overflowing.
func (g *Grid) recompute() {
	if g.stale.Swap(false) {
		for _, r := range g.rows {
			for _, c := range r.cells {
				c.text.Invalidate()
			}
		}
	}
	g.measure()

	g.vscroll = g.cfg.VerticalPolicy == scroll.ScrollAlways
	g.layoutPass()
	if g.cfg.VerticalPolicy == scroll.ScrollAuto && g.contentH > g.bodyH && !g.vscroll {
		g.vscroll = true
		g.layoutPass()
	}

	g.h.Resize(g.contentW, g.bodyW)
	g.v.Resize(g.contentH, g.bodyH)
	g.log.Debug("grid: recompute",
		"rows", len(g.rows), "cols", len(g.columns),
		"scale", g.scale, "hscroll", g.hscroll, "vscroll", g.vscroll)
}

// measure derives row height and baseline from every attribute set that
// takes part in the body, and the header height from the header chain.
func (g *Grid) measure() {
	height, baseline := g.table.Height(), g.table.Baseline()
	take := func(s *attr.Set) {
		if s == nil {
			return
		}
		height = max(height, s.Height())
		baseline = max(baseline, s.Baseline())
	}
	for _, c := range g.columns {
		take(c.attrs)
	}
	for _, r := range g.rows {
		for _, c := range r.cells {
			take(c.attrs)
		}
	}
	g.rowHeight, g.rowBaseline = height, baseline
	g.headerHeight = 0
	if len(g.columns) > 0 {
		g.headerHeight = attr.Resolve(g.header, nil, g.table).Height()
	}
}

// headerExtent is the height taken by the header and its rule.
func (g *Grid) headerExtent() int {
	if len(g.columns) == 0 {
		return 0
	}
	return g.headerHeight + g.lines.Header
}

func (g *Grid) scrollbar(on bool) int {
	if !on {
		return 0
	}
	return g.cfg.ScrollbarWidth
}

func (g *Grid) layoutPass() {
	g.bodyW = max(g.viewW-g.scrollbar(g.vscroll), 0)
	g.scaleColumns(g.bodyW)
	g.bodyH = max(g.viewH-g.headerExtent()-g.scrollbar(g.hscroll), 0)
	g.rewrap()
	g.positionRows()
}

// scaleColumns converts nominal widths to current widths for a body of the
// given width. When the columns are scaled to fit, the rightmost column
// ends exactly at the body's right edge, so that the widths and separators
// add up to the body width.
func (g *Grid) scaleColumns(avail int) {
	n := len(g.columns)
	policy := g.cfg.HorizontalPolicy
	g.hscroll = policy == scroll.ScrollAlways
	if n == 0 {
		g.scale, g.contentW = 1, 0
		return
	}
	sep := (n - 1) * g.lines.Separator
	total := 0.0
	for _, c := range g.columns {
		total += c.nominal
	}
	fit := float64(avail - sep)
	fitted := false
	switch policy {
	case scroll.ScrollNever:
		g.scale, fitted = 0, true
		if total > 0 && fit > 0 {
			g.scale = fit / total
		}
	case scroll.ScrollAuto:
		if total > 0 && total <= fit {
			g.scale, fitted = fit/total, true
		} else {
			g.scale, g.hscroll = 1, true
		}
	default:
		g.scale = 1
	}

	// Columns are cut at rounded cumulative edges, so rounding never
	// accumulates across columns.
	x, cum, edge := 0, 0.0, 0
	for i, c := range g.columns {
		cum += c.nominal
		next := int(math.Round(cum * g.scale))
		if i == n-1 && fitted {
			next = max(avail-sep, edge)
		}
		c.left, c.width = x, next-edge
		edge = next
		x += c.width + g.lines.Separator
	}
	last := g.columns[n-1]
	g.contentW = last.left + last.width
}

// textWidth is the wrap target for a column: its width less padding.
func (g *Grid) textWidth(c *column) int {
	return max(c.width-g.cfg.CellPadding, wrap.MinWidth)
}

// rewrap wraps every cell to its column and derives the row spans.
func (g *Grid) rewrap() {
	for _, r := range g.rows {
		r.span = 1
	}
	for ci, col := range g.columns {
		width := g.textWidth(col)
		for _, r := range g.rows {
			c := r.cells[ci]
			res := attr.Resolve(c.attrs, col.attrs, g.table)
			if _, err := c.text.Rewrap(width, res.Advance); err != nil {
				g.log.Warn("grid: rewrap", "column", ci, "row", r.handle.Number(), "err", err)
			}
			r.span = max(r.span, c.text.Lines())
		}
	}
}

// positionRows stacks the rows so that bottom(i) + gap == top(i+1).
func (g *Grid) positionRows() {
	y := 0
	for _, r := range g.rows {
		r.top = y
		r.bottom = y + r.span*g.rowHeight
		y = r.bottom + g.lines.Body
	}
	g.contentH = 0
	if n := len(g.rows); n > 0 {
		g.contentH = g.rows[n-1].bottom
	}
}

type rowEdges []*row

func (e rowEdges) Len() int { return len(e) }
func (e rowEdges) Leading(i int) int { return e[i].top }
func (e rowEdges) Trailing(i int) int { return e[i].bottom }

type columnEdges []*column

func (e columnEdges) Len() int { return len(e) }
func (e columnEdges) Leading(i int) int { return e[i].left }
func (e columnEdges) Trailing(i int) int { return e[i].left + e[i].width }

func (g *Grid) fill() scroll.FillSpec {
	if !g.cfg.VerticalFill || g.rowHeight <= 0 {
		return scroll.FillSpec{}
	}
	return scroll.FillSpec{Pitch: g.rowHeight + g.lines.Body, Gap: g.lines.Body}
}

func (g *Grid) visibleRows() scroll.Range {
	return scroll.VisibleRange(rowEdges(g.rows), g.v.Offset(), g.bodyH, g.fill())
}

func (g *Grid) visibleColumns() scroll.Range {
	return scroll.VisibleRange(columnEdges(g.columns), g.h.Offset(), g.bodyW, scroll.FillSpec{})
}

// SetViewport sets the size of the area the grid is shown in. Column
// scaling, wrapping and scroll state follow.
func (g *Grid) SetViewport(w, h int) {
	g.lock()
	defer g.unlock()
	w, h = max(w, 0), max(h, 0)
	if w == g.viewW && h == g.viewH {
		return
	}
	g.viewW, g.viewH = w, h
	g.changed(true)
}

// Viewport returns the viewport size.
func (g *Grid) Viewport() (w, h int) {
	g.rlock()
	defer g.runlock()
	return g.viewW, g.viewH
}

// VisibleRows returns the rows that intersect the body. With vertical fill,
// End may exceed RowCount by the number of blank rows shown.
func (g *Grid) VisibleRows() scroll.Range {
	g.rlock()
	defer g.runlock()
	return g.visibleRows()
}

// VisibleColumns returns the columns that intersect the body.
func (g *Grid) VisibleColumns() scroll.Range {
	g.rlock()
	defer g.runlock()
	return g.visibleColumns()
}

// ScaleFactor is the multiplier from nominal to current column widths.
func (g *Grid) ScaleFactor() float64 {
	g.rlock()
	defer g.runlock()
	return g.scale
}

// RowHeight is the height of one text line of a row.
func (g *Grid) RowHeight() int {
	g.rlock()
	defer g.runlock()
	return g.rowHeight
}

// RowBaseline is the baseline offset within a row line.
func (g *Grid) RowBaseline() int {
	g.rlock()
	defer g.runlock()
	return g.rowBaseline
}

// HeaderHeight is the height of the header including its rule.
func (g *Grid) HeaderHeight() int {
	g.rlock()
	defer g.runlock()
	return g.headerExtent()
}

// ScrollbarsVisible reports which scrollbars take space from the body.
func (g *Grid) ScrollbarsVisible() (horizontal, vertical bool) {
	g.rlock()
	defer g.runlock()
	return g.hscroll, g.vscroll
}

// ContentSize is the size of all columns and rows, excluding the header.
func (g *Grid) ContentSize() runtime.Size {
	g.rlock()
	defer g.runlock()
	return runtime.Size{Width: g.contentW, Height: g.contentH}
}

// BodyRect is the area rows are drawn in, in viewport coordinates.
func (g *Grid) BodyRect() runtime.Rect {
	g.rlock()
	defer g.runlock()
	return g.bodyRect()
}

func (g *Grid) bodyRect() runtime.Rect {
	return runtime.Rect{Y: g.headerExtent(), Width: g.bodyW, Height: g.bodyH}
}

// ColumnBounds returns the leading edge and width of column c in content
// coordinates.
func (g *Grid) ColumnBounds(c int) (x, width int, err error) {
	g.rlock()
	defer g.runlock()
	if err := g.checkColumn(c); err != nil {
		return 0, 0, err
	}
	col := g.columns[c]
	return col.left, col.width, nil
}

// RowBounds returns the top and bottom edges of row r in content
// coordinates.
func (g *Grid) RowBounds(r int) (top, bottom int, err error) {
	g.rlock()
	defer g.runlock()
	if err := g.checkRow(r); err != nil {
		return 0, 0, err
	}
	return g.rows[r].top, g.rows[r].bottom, nil
}

// RowSpan returns the number of text lines of row r.
func (g *Grid) RowSpan(r int) (int, error) {
	g.rlock()
	defer g.runlock()
	if err := g.checkRow(r); err != nil {
		return 0, err
	}
	return g.rows[r].span, nil
}

// ScrollOffset returns the horizontal and vertical scroll offsets.
func (g *Grid) ScrollOffset() (x, y int) {
	g.rlock()
	defer g.runlock()
	return g.h.Offset(), g.v.Offset()
}

func (g *Grid) scrolled(fn func()) {
	g.lock()
	defer g.unlock()
	x, y := g.h.Offset(), g.v.Offset()
	fn()
	if x != g.h.Offset() || y != g.v.Offset() {
		g.repaint.Store(true)
	}
}

// ScrollBy moves both scroll offsets.
func (g *Grid) ScrollBy(dx, dy int) {
	g.scrolled(func() {
		g.h.ScrollBy(dx)
		g.v.ScrollBy(dy)
	})
}

// ScrollTo sets both scroll offsets.
func (g *Grid) ScrollTo(x, y int) {
	g.scrolled(func() {
		g.h.SetOffset(x)
		g.v.SetOffset(y)
	})
}

// PageBy scrolls vertically by whole body heights.
func (g *Grid) PageBy(pages int) {
	g.scrolled(func() { g.v.PageBy(pages) })
}

// ScrollToStart scrolls to the first row.
func (g *Grid) ScrollToStart() {
	g.scrolled(func() { g.v.SetOffset(0) })
}

// ScrollToEnd scrolls to the last row.
func (g *Grid) ScrollToEnd() {
	g.scrolled(func() { g.v.SetOffset(g.v.MaxOffset()) })
}

// ScrollToRow scrolls the least distance that shows row r.
func (g *Grid) ScrollToRow(r int) error {
	var err error
	g.scrolled(func() {
		if err = g.checkRow(r); err == nil {
			g.v.Reveal(g.rows[r].top, g.rows[r].bottom)
		}
	})
	return err
}

var _ scroll.Controller = (*Grid)(nil)
