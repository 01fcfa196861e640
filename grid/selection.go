package grid

// Hooks receives the notifications of a grid addressed by row index. Nil
// fields are skipped. Hooks run synchronously before the triggering call
// returns, after the grid's lock is released, so they may call back into
// the grid.
type Hooks struct {
	RowSelected   func(row int)
	RowUnselected func(row int, otherRemainsSelected bool)
	// RowDoubleSelected reports a double click on a row.
	RowDoubleSelected   func(row int)
	RowMenuPerformed    func(row int, action string)
	ColumnMenuPerformed func(col int, action string)
	// SortChanged reports a sort started from the header.
	SortChanged func(col int, ascending bool)
}

// observer turns grid events into notifications. Methods run under the
// grid's lock and return the notification to deliver after it is released,
// or nil.
type observer interface {
	rowSelected(h *Handle) func()
	rowUnselected(h *Handle, otherRemainsSelected bool) func()
	rowDoubleSelected(h *Handle) func()
	rowMenu(h *Handle, action string) func()
	columnMenu(col int, action string) func()
	sortChanged(col int, ascending bool) func()
}

type hooksObserver struct {
	g *Grid
}

func (o hooksObserver) rowSelected(h *Handle) func() {
	fn, n := o.g.hooks.RowSelected, h.Number()
	if fn == nil {
		return nil
	}
	return func() { fn(n) }
}

func (o hooksObserver) rowUnselected(h *Handle, other bool) func() {
	fn, n := o.g.hooks.RowUnselected, h.Number()
	if fn == nil {
		return nil
	}
	return func() { fn(n, other) }
}

func (o hooksObserver) rowDoubleSelected(h *Handle) func() {
	fn, n := o.g.hooks.RowDoubleSelected, h.Number()
	if fn == nil {
		return nil
	}
	return func() { fn(n) }
}

func (o hooksObserver) rowMenu(h *Handle, action string) func() {
	fn, n := o.g.hooks.RowMenuPerformed, h.Number()
	if fn == nil {
		return nil
	}
	return func() { fn(n, action) }
}

func (o hooksObserver) columnMenu(col int, action string) func() {
	fn := o.g.hooks.ColumnMenuPerformed
	if fn == nil {
		return nil
	}
	return func() { fn(col, action) }
}

func (o hooksObserver) sortChanged(col int, ascending bool) func() {
	return o.g.hooks.sortChangedFunc(col, ascending)
}

// SelectRow selects the row at index. A previously selected row is
// deselected first and reported before the new selection.
func (g *Grid) SelectRow(index int) error {
	g.lock()
	defer g.unlock()
	if err := g.checkRow(index); err != nil {
		return err
	}
	g.selectRow(g.rows[index])
	return nil
}

func (g *Grid) selectRow(r *row) {
	if r == g.selected {
		return
	}
	if g.selected != nil {
		g.deselect(true)
	}
	g.selected = r
	r.setSelected(true)
	g.emit(g.observer.rowSelected(r.handle))
	g.repaint.Store(true)
}

// deselect clears the selection. other reports whether another row becomes
// selected in the same call.
func (g *Grid) deselect(other bool) {
	r := g.selected
	if r == nil {
		return
	}
	g.selected = nil
	r.setSelected(false)
	g.emit(g.observer.rowUnselected(r.handle, other))
	g.repaint.Store(true)
}

// ClearSelection deselects the selected row, if any.
func (g *Grid) ClearSelection() {
	g.lock()
	defer g.unlock()
	g.deselect(false)
}

// Selected returns the index of the selected row.
func (g *Grid) Selected() (int, bool) {
	g.rlock()
	defer g.runlock()
	if g.selected == nil {
		return -1, false
	}
	return g.selected.handle.Number(), true
}

// ClickInCell is the host's report of a left click on a cell. An
// unselected row becomes selected; clicking the selected row deselects it.
func (g *Grid) ClickInCell(col, row int) error {
	g.lock()
	defer g.unlock()
	if _, err := g.cellAt(col, row); err != nil {
		return err
	}
	if r := g.rows[row]; r == g.selected {
		g.deselect(false)
	} else {
		g.selectRow(r)
	}
	return nil
}

// RightClickInCell is the host's report of a right click on a cell, made
// before it shows the row menu. The row becomes selected and stays selected
// if it already was.
func (g *Grid) RightClickInCell(col, row int) error {
	g.lock()
	defer g.unlock()
	if _, err := g.cellAt(col, row); err != nil {
		return err
	}
	g.selectRow(g.rows[row])
	return nil
}

// DoubleClickInCell is the host's report of a double click on a cell. The
// first click of a double click toggles the row like ClickInCell, so a
// selected row is reported as double-selected while an unselected one is
// only selected again.
func (g *Grid) DoubleClickInCell(col, row int) error {
	g.lock()
	defer g.unlock()
	if _, err := g.cellAt(col, row); err != nil {
		return err
	}
	r := g.rows[row]
	if r != g.selected {
		g.selectRow(r)
		return nil
	}
	g.emit(g.observer.rowDoubleSelected(r.handle))
	return nil
}

// ClickHeader sorts by column col: ascending first, reversing the order when
// the column is already the sort column.
func (g *Grid) ClickHeader(col int) error {
	g.lock()
	defer g.unlock()
	if err := g.checkColumn(col); err != nil {
		return err
	}
	ascending := true
	if g.sortCol == col {
		ascending = !g.sortAsc
	}
	g.sortRows(col, ascending)
	g.emit(g.observer.sortChanged(col, ascending))
	g.changed(true)
	return nil
}

// PerformRowMenu reports that the host's row menu ran action on a row.
func (g *Grid) PerformRowMenu(row int, action string) error {
	g.lock()
	defer g.unlock()
	if err := g.checkRow(row); err != nil {
		return err
	}
	g.emit(g.observer.rowMenu(g.rows[row].handle, action))
	return nil
}

// Column menu actions the grid carries out itself.
const (
	ColumnSort        = "Sort By This Column"
	ColumnReverseSort = "Reverse Sort By This Column"
	ColumnDelete      = "Delete This Column"
	ColumnOptimize    = "Optimize Column Widths"
)

// ColumnMenuActions lists the built-in column menu actions in menu order.
func ColumnMenuActions() []string {
	return []string{ColumnSort, ColumnReverseSort, ColumnDelete, ColumnOptimize}
}

// PerformColumnMenu reports that the host's column menu ran action on a
// column. The built-in actions sort the rows, delete the column (the
// remaining columns grow in proportion) or optimize the column widths.
// Other actions are only reported.
func (g *Grid) PerformColumnMenu(col int, action string) error {
	g.lock()
	defer g.unlock()
	if err := g.checkColumn(col); err != nil {
		return err
	}
	g.emit(g.observer.columnMenu(col, action))
	switch action {
	case ColumnSort, ColumnReverseSort:
		ascending := action == ColumnSort
		g.sortRows(col, ascending)
		g.emit(g.observer.sortChanged(col, ascending))
		g.changed(true)
	case ColumnDelete:
		if g.deleteColumn(col, true) {
			g.changed(true)
		}
	case ColumnOptimize:
		if g.optimizeColumns() {
			g.changed(true)
		}
	}
	return nil
}

func (h Hooks) sortChangedFunc(col int, ascending bool) func() {
	if h.SortChanged == nil {
		return nil
	}
	fn := h.SortChanged
	return func() { fn(col, ascending) }
}
