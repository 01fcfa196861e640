package grid

import "fmt"

// drag is an in-progress resize of the boundary between column col and
// col+1. Offsets are measured from the start of the drag.
type drag struct {
	col   int
	left  float64
	right float64
}

// BeginColumnDrag starts moving the boundary on the right of column col.
// The last column has no right boundary to move.
func (g *Grid) BeginColumnDrag(col int) error {
	g.lock()
	defer g.unlock()
	if err := g.checkColumn(col); err != nil {
		return err
	}
	if col == len(g.columns)-1 {
		return fmt.Errorf("drag column %d: last column has no right boundary: %w", col, ErrInvalidArgument)
	}
	g.drag = &drag{col: col, left: g.columns[col].nominal, right: g.columns[col+1].nominal}
	return nil
}

// DragColumn moves the boundary by delta layout units from where the drag
// began. Width moves between the two columns only, each kept at the minimum
// column width or wider.
func (g *Grid) DragColumn(delta int) error {
	g.lock()
	defer g.unlock()
	d := g.drag
	if d == nil {
		return ErrNoDrag
	}
	scale := g.scale
	if scale <= 0 {
		scale = 1
	}
	minW := float64(g.cfg.MinColumnWidth)
	shift := float64(delta) / scale
	shift = max(shift, minW-d.left)
	shift = min(shift, d.right-minW)
	if d.left+shift < minW || d.right-shift < minW {
		return nil
	}
	g.columns[d.col].nominal = d.left + shift
	g.columns[d.col+1].nominal = d.right - shift
	g.changed(true)
	return nil
}

// EndColumnDrag finishes the drag.
func (g *Grid) EndColumnDrag() error {
	g.lock()
	defer g.unlock()
	if g.drag == nil {
		return ErrNoDrag
	}
	g.log.Debug("grid: column drag", "column", g.drag.col, "width", g.columns[g.drag.col].nominal)
	g.drag = nil
	return nil
}

// Dragging returns the column whose right boundary is being dragged.
func (g *Grid) Dragging() (int, bool) {
	g.rlock()
	defer g.runlock()
	if g.drag == nil {
		return -1, false
	}
	return g.drag.col, true
}

func (g *Grid) cancelDrag() {
	g.drag = nil
}
