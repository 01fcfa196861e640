package grid

import "sort"

// HitArea classifies a viewport position.
type HitArea int

const (
	HitNone HitArea = iota
	// HitHeader is a column header.
	HitHeader
	// HitBoundary is the draggable right boundary of a column in the header.
	HitBoundary
	// HitCell is a cell of a real row.
	HitCell
	// HitFill is a blank fill row below the last real row.
	HitFill
	HitVerticalScrollbar
	HitHorizontalScrollbar
)

// Hit is the result of HitTest. Col and Row are -1 when they do not apply.
type Hit struct {
	Area HitArea
	Col  int
	Row  int
}

// HitTest maps a viewport position to the part of the grid under it.
func (g *Grid) HitTest(x, y int) Hit {
	g.rlock()
	defer g.runlock()
	miss := Hit{Area: HitNone, Col: -1, Row: -1}
	if x < 0 || y < 0 || x >= g.viewW || y >= g.viewH {
		return miss
	}
	head := g.headerExtent()
	if g.vscroll && x >= g.bodyW {
		if y >= head && y < head+g.bodyH {
			return Hit{Area: HitVerticalScrollbar, Col: -1, Row: -1}
		}
		return miss
	}
	if g.hscroll && y >= head+g.bodyH {
		if y < head+g.bodyH+g.cfg.ScrollbarWidth {
			return Hit{Area: HitHorizontalScrollbar, Col: -1, Row: -1}
		}
		return miss
	}

	cx := x + g.h.Offset()
	col, onSep := g.columnAt(cx)
	if col < 0 {
		return miss
	}
	if y < head {
		last := col == len(g.columns)-1
		edge := g.columns[col].left + g.columns[col].width - 1
		if onSep || (!last && g.lines.Separator == 0 && cx == edge) {
			return Hit{Area: HitBoundary, Col: col, Row: -1}
		}
		return Hit{Area: HitHeader, Col: col, Row: -1}
	}
	if onSep {
		return miss
	}

	cy := y - head + g.v.Offset()
	i := sort.Search(len(g.rows), func(i int) bool { return g.rows[i].bottom > cy })
	if i < len(g.rows) {
		if cy < g.rows[i].top {
			return Hit{Area: HitNone, Col: col, Row: -1}
		}
		return Hit{Area: HitCell, Col: col, Row: i}
	}
	if g.cfg.VerticalFill {
		return Hit{Area: HitFill, Col: col, Row: -1}
	}
	return Hit{Area: HitNone, Col: col, Row: -1}
}

// columnAt finds the column at content position cx. onSep reports that cx
// lies on the separator to the right of the returned column.
func (g *Grid) columnAt(cx int) (col int, onSep bool) {
	n := len(g.columns)
	i := sort.Search(n, func(i int) bool {
		c := g.columns[i]
		return c.left+c.width > cx
	})
	if i == n {
		return -1, false
	}
	if cx < g.columns[i].left {
		if i == 0 {
			return -1, false
		}
		return i - 1, true
	}
	return i, false
}
