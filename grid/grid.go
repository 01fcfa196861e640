// Package grid implements a tabular grid: rows of wrapped text cells under
// resizable columns, with attributes inherited from cell to column to table,
// column width negotiation, viewport scrolling, stable sorting and single-row
// selection.
//
// A Grid is safe for concurrent use. Every mutating call takes the grid's
// lock, runs a single layout recompute before returning and delivers any
// selection notifications after the lock is released. Queries may run
// concurrently with each other.
package grid

import (
	"fmt"
	"log/slog"
	"math"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/odvcencio/furry-grid/attr"
	"github.com/odvcencio/furry-grid/runtime"
	"github.com/odvcencio/furry-grid/scroll"
	"github.com/odvcencio/furry-grid/wrap"
)

// Grid is a table of wrapped text cells.
type Grid struct {
	mu  sync.RWMutex
	cfg Config
	log *slog.Logger

	columns []*column
	rows    []*row

	table       *attr.Set
	header      *attr.Set
	tableUnsub  func()
	headerUnsub func()
	lines       LineStyle

	scale        float64
	hscroll      bool
	vscroll      bool
	rowHeight    int
	rowBaseline  int
	headerHeight int
	contentW     int
	contentH     int
	viewW, viewH int
	bodyW, bodyH int
	h, v         scroll.Axis

	selected *row
	sortCol  int
	sortAsc  bool
	drag     *drag

	keyed    bool
	index    indexer
	hooks    Hooks
	observer observer
	pending  []func()

	// stale is set when a shared attribute set changed outside the grid.
	stale   atomic.Bool
	repaint atomic.Bool
	buf     *runtime.Buffer
}

// New creates a grid with one column per header. Column widths start at the
// header's natural width.
func New(cfg Config, headers ...string) *Grid {
	cfg = cfg.withDefaults()
	g := &Grid{
		cfg:     cfg,
		log:     cfg.Logger,
		lines:   cfg.Lines,
		scale:   1,
		sortCol: -1,
		sortAsc: true,
		buf:     runtime.NewBuffer(0, 0),
	}
	g.observer = hooksObserver{g}
	g.table = attr.New(cfg.Font)
	g.header = attr.New(nil)
	g.tableUnsub = g.table.Subscribe(g.markStale)
	g.headerUnsub = g.header.Subscribe(g.markStale)
	for _, h := range headers {
		g.columns = append(g.columns, g.newColumn(h, 0))
	}
	g.recompute()
	return g
}

func (g *Grid) markStale() {
	g.stale.Store(true)
}

// lock takes the write lock and brings a stale layout up to date.
func (g *Grid) lock() {
	g.mu.Lock()
	if g.stale.Load() {
		g.recompute()
		g.repaint.Store(true)
	}
}

// unlock releases the lock and then runs the notifications queued while it
// was held.
func (g *Grid) unlock() {
	pending := g.pending
	g.pending = nil
	g.mu.Unlock()
	for _, fn := range pending {
		fn()
	}
}

// rlock takes the read lock, first bringing the layout up to date if a
// shared attribute set changed since the last recompute.
func (g *Grid) rlock() {
	for {
		g.mu.RLock()
		if !g.stale.Load() {
			return
		}
		g.mu.RUnlock()
		g.mu.Lock()
		if g.stale.Load() {
			g.recompute()
			g.repaint.Store(true)
		}
		g.mu.Unlock()
	}
}

func (g *Grid) runlock() {
	g.mu.RUnlock()
}

func (g *Grid) emit(fn func()) {
	if fn != nil {
		g.pending = append(g.pending, fn)
	}
}

// changed ends a mutating call: layout is recomputed and, when asked, a
// repaint is recorded for the host.
func (g *Grid) changed(repaint bool) {
	g.recompute()
	if repaint {
		g.repaint.Store(true)
	}
}

// NeedsRender reports whether a repaint was requested since the last Render
// or a shared attribute set changed.
func (g *Grid) NeedsRender() bool {
	return g.repaint.Load() || g.stale.Load()
}

// SetHooks installs the callbacks of a grid addressed by row index. A keyed
// grid reports through its Listener instead.
func (g *Grid) SetHooks(h Hooks) {
	g.lock()
	defer g.unlock()
	g.hooks = h
}

// Close drops the grid's subscriptions to the attribute sets it uses, so
// that sets shared with other owners no longer notify it.
func (g *Grid) Close() {
	g.lock()
	defer g.unlock()
	g.tableUnsub()
	g.headerUnsub()
	for _, c := range g.columns {
		c.release()
	}
	for _, r := range g.rows {
		for _, c := range r.cells {
			c.release()
		}
	}
}

// Config returns the configuration the grid was created with.
func (g *Grid) Config() Config {
	return g.cfg
}

func (g *Grid) newColumn(header string, nominal float64) *column {
	if nominal <= 0 {
		res := attr.Resolve(g.header, nil, g.table)
		nominal = float64(wrap.NaturalWidth(header, res.Advance) + g.cfg.CellPadding)
	}
	return &column{header: header, nominal: max(nominal, float64(g.cfg.MinColumnWidth))}
}

func validNominal(w float64) error {
	if math.IsNaN(w) || math.IsInf(w, 0) {
		return fmt.Errorf("column width %v: %w", w, ErrInvalidArgument)
	}
	return nil
}

func (g *Grid) checkColumn(c int) error {
	if c < 0 || c >= len(g.columns) {
		return fmt.Errorf("column %d of %d: %w", c, len(g.columns), ErrColumnRange)
	}
	return nil
}

func (g *Grid) checkRow(r int) error {
	if r < 0 || r >= len(g.rows) {
		return fmt.Errorf("row %d of %d: %w", r, len(g.rows), ErrRowRange)
	}
	return nil
}

func (g *Grid) cellAt(col, row int) (*cell, error) {
	if err := g.checkColumn(col); err != nil {
		return nil, err
	}
	if err := g.checkRow(row); err != nil {
		return nil, err
	}
	return g.rows[row].cells[col], nil
}

// ColumnCount returns the number of columns.
func (g *Grid) ColumnCount() int {
	g.rlock()
	defer g.runlock()
	return len(g.columns)
}

// RowCount returns the number of rows.
func (g *Grid) RowCount() int {
	g.rlock()
	defer g.runlock()
	return len(g.rows)
}

// AddColumn appends a column and returns its index. A nominal width of zero
// or less selects the header's natural width.
func (g *Grid) AddColumn(header string, nominal float64) (int, error) {
	g.lock()
	defer g.unlock()
	index := len(g.columns)
	if err := g.insertColumn(index, header, nominal); err != nil {
		return 0, err
	}
	g.changed(false)
	return index, nil
}

// InsertColumn inserts a column before index; index may equal ColumnCount.
// Every row gains an empty cell at the same position.
func (g *Grid) InsertColumn(index int, header string, nominal float64) error {
	g.lock()
	defer g.unlock()
	if err := g.insertColumn(index, header, nominal); err != nil {
		return err
	}
	g.changed(false)
	return nil
}

func (g *Grid) insertColumn(index int, header string, nominal float64) error {
	if index < 0 || index > len(g.columns) {
		return fmt.Errorf("insert column at %d of %d: %w", index, len(g.columns), ErrColumnRange)
	}
	if err := validNominal(nominal); err != nil {
		return err
	}
	g.cancelDrag()
	g.columns = slices.Insert(g.columns, index, g.newColumn(header, nominal))
	for _, r := range g.rows {
		c := &cell{selected: r == g.selected}
		r.cells = slices.Insert(r.cells, index, c)
	}
	if g.sortCol >= index {
		g.sortCol++
	}
	g.log.Debug("grid: insert column", "index", index, "header", header)
	return nil
}

// DeleteColumn removes a column and its cell in every row. Without
// reproportion the column's nominal width goes to its left neighbour, or to
// its right neighbour when it is the first column; with reproportion the
// remaining columns grow in proportion to their widths. Deleting the only
// column of a grid is a no-op.
func (g *Grid) DeleteColumn(index int, reproportion, repaint bool) error {
	g.lock()
	defer g.unlock()
	if err := g.checkColumn(index); err != nil {
		return err
	}
	if g.deleteColumn(index, reproportion) {
		g.changed(repaint)
	}
	return nil
}

// deleteColumn removes a column and its cells. The last remaining column
// is kept.
func (g *Grid) deleteColumn(index int, reproportion bool) bool {
	if len(g.columns) == 1 {
		return false
	}
	g.cancelDrag()
	removed := g.columns[index]
	removed.release()
	g.columns = slices.Delete(g.columns, index, index+1)
	for _, r := range g.rows {
		r.cells[index].release()
		r.cells = slices.Delete(r.cells, index, index+1)
	}
	if reproportion {
		total := 0.0
		for _, c := range g.columns {
			total += c.nominal
		}
		if total > 0 {
			grow := (total + removed.nominal) / total
			for _, c := range g.columns {
				c.nominal *= grow
			}
		}
	} else {
		g.columns[max(index-1, 0)].nominal += removed.nominal
	}
	switch {
	case g.sortCol == index:
		g.sortCol = -1
	case g.sortCol > index:
		g.sortCol--
	}
	g.log.Debug("grid: delete column", "index", index, "reproportion", reproportion)
	return true
}

// ColumnHeader returns the header text of column c.
func (g *Grid) ColumnHeader(c int) (string, error) {
	g.rlock()
	defer g.runlock()
	if err := g.checkColumn(c); err != nil {
		return "", err
	}
	return g.columns[c].header, nil
}

// SetColumnHeader replaces the header text of column c.
func (g *Grid) SetColumnHeader(c int, header string, repaint bool) error {
	g.lock()
	defer g.unlock()
	if err := g.checkColumn(c); err != nil {
		return err
	}
	g.columns[c].header = header
	g.changed(repaint)
	return nil
}

// ColumnWidth returns the current, scaled width of column c.
func (g *Grid) ColumnWidth(c int) (int, error) {
	g.rlock()
	defer g.runlock()
	if err := g.checkColumn(c); err != nil {
		return 0, err
	}
	return g.columns[c].width, nil
}

// NominalWidth returns the unscaled width of column c.
func (g *Grid) NominalWidth(c int) (float64, error) {
	g.rlock()
	defer g.runlock()
	if err := g.checkColumn(c); err != nil {
		return 0, err
	}
	return g.columns[c].nominal, nil
}

// SetColumnWidth sets the nominal width of column c, raised to the
// configured minimum.
func (g *Grid) SetColumnWidth(c int, nominal float64, repaint bool) error {
	g.lock()
	defer g.unlock()
	if err := g.checkColumn(c); err != nil {
		return err
	}
	if err := validNominal(nominal); err != nil {
		return err
	}
	g.columns[c].nominal = max(nominal, float64(g.cfg.MinColumnWidth))
	g.changed(repaint)
	return nil
}

// columnSet returns the column's attribute override, creating it on first
// use.
func (g *Grid) columnSet(c *column) *attr.Set {
	if c.attrs == nil {
		c.attrs = attr.New(nil)
		c.unsub = c.attrs.Subscribe(g.markStale)
	}
	return c.attrs
}

func (g *Grid) mutateColumn(c int, repaint bool, fn func(s *attr.Set) error) error {
	g.lock()
	defer g.unlock()
	if err := g.checkColumn(c); err != nil {
		return err
	}
	if err := fn(g.columnSet(g.columns[c])); err != nil {
		return err
	}
	g.changed(repaint)
	return nil
}

// SetColumnFont sets the font of column c. Every cell of the column without
// a font of its own follows it.
func (g *Grid) SetColumnFont(c int, f attr.Font, repaint bool) error {
	return g.mutateColumn(c, repaint, func(s *attr.Set) error {
		s.SetFont(f)
		return nil
	})
}

// SetColumnJustification sets the justification of column c.
func (g *Grid) SetColumnJustification(c int, j attr.Justification, repaint bool) error {
	if !j.Valid() {
		return fmt.Errorf("column %d justification %d: %w", c, int(j), ErrInvalidArgument)
	}
	return g.mutateColumn(c, repaint, func(s *attr.Set) error {
		return s.SetJustification(j)
	})
}

// SetColumnForeground sets the text color of column c.
func (g *Grid) SetColumnForeground(c int, color tcell.Color, repaint bool) error {
	return g.mutateColumn(c, repaint, func(s *attr.Set) error {
		s.SetForeground(color)
		return nil
	})
}

// SetColumnBackground sets the background color of column c.
func (g *Grid) SetColumnBackground(c int, color tcell.Color, repaint bool) error {
	return g.mutateColumn(c, repaint, func(s *attr.Set) error {
		s.SetBackground(color)
		return nil
	})
}

// SetColumnAttributes replaces the attribute override of column c. The set
// may be shared; nil removes the override.
func (g *Grid) SetColumnAttributes(c int, s *attr.Set, repaint bool) error {
	g.lock()
	defer g.unlock()
	if err := g.checkColumn(c); err != nil {
		return err
	}
	col := g.columns[c]
	col.release()
	col.attrs = s
	if s != nil {
		col.unsub = s.Subscribe(g.markStale)
	}
	g.stale.Store(true)
	g.changed(repaint)
	return nil
}

// ColumnAttributes returns the attribute override of column c, or nil.
func (g *Grid) ColumnAttributes(c int) (*attr.Set, error) {
	g.rlock()
	defer g.runlock()
	if err := g.checkColumn(c); err != nil {
		return nil, err
	}
	return g.columns[c].attrs, nil
}

// TableAttributes returns the table-wide attribute set. Changes made to it
// directly are picked up by the next call on the grid.
func (g *Grid) TableAttributes() *attr.Set {
	return g.table
}

// HeaderAttributes returns the header attribute set. Attributes it leaves
// unset fall back to the table set.
func (g *Grid) HeaderAttributes() *attr.Set {
	return g.header
}

func (g *Grid) mutateSet(s *attr.Set, fn func(s *attr.Set) error) error {
	g.lock()
	defer g.unlock()
	if err := fn(s); err != nil {
		return err
	}
	g.changed(true)
	return nil
}

// SetTableFont sets the default font of every cell.
func (g *Grid) SetTableFont(f attr.Font) {
	_ = g.mutateSet(g.table, func(s *attr.Set) error {
		s.SetFont(f)
		return nil
	})
}

// SetTableJustification sets the default justification.
func (g *Grid) SetTableJustification(j attr.Justification) error {
	return g.mutateSet(g.table, func(s *attr.Set) error {
		return s.SetJustification(j)
	})
}

// SetTableColors sets the default foreground and background.
func (g *Grid) SetTableColors(fg, bg tcell.Color) {
	_ = g.mutateSet(g.table, func(s *attr.Set) error {
		s.SetForeground(fg)
		s.SetBackground(bg)
		return nil
	})
}

// SetHeaderFont sets the header font; nil falls back to the table font.
func (g *Grid) SetHeaderFont(f attr.Font) {
	_ = g.mutateSet(g.header, func(s *attr.Set) error {
		s.SetFont(f)
		return nil
	})
}

// SetHeaderJustification sets the header justification.
func (g *Grid) SetHeaderJustification(j attr.Justification) error {
	return g.mutateSet(g.header, func(s *attr.Set) error {
		return s.SetJustification(j)
	})
}

// SetHeaderColors sets the header foreground and background.
func (g *Grid) SetHeaderColors(fg, bg tcell.Color) {
	_ = g.mutateSet(g.header, func(s *attr.Set) error {
		s.SetForeground(fg)
		s.SetBackground(bg)
		return nil
	})
}

// Lines returns the current rule style.
func (g *Grid) Lines() LineStyle {
	g.rlock()
	defer g.runlock()
	return g.lines
}

// SetLines replaces the rule style. Negative thicknesses count as zero.
func (g *Grid) SetLines(ls LineStyle, repaint bool) {
	g.lock()
	defer g.unlock()
	ls.Header = max(ls.Header, 0)
	ls.Body = max(ls.Body, 0)
	ls.Separator = max(ls.Separator, 0)
	g.lines = ls
	g.changed(repaint)
}

// AddRow appends an empty row and returns its index.
func (g *Grid) AddRow() (int, error) {
	g.lock()
	defer g.unlock()
	if g.keyed {
		return 0, ErrKeyedRows
	}
	index := len(g.rows)
	g.insertRow(index)
	g.checkRows()
	g.changed(false)
	return index, nil
}

// InsertRow inserts an empty row before index; index may equal RowCount.
func (g *Grid) InsertRow(index int) error {
	g.lock()
	defer g.unlock()
	if g.keyed {
		return ErrKeyedRows
	}
	if index < 0 || index > len(g.rows) {
		return fmt.Errorf("insert row at %d of %d: %w", index, len(g.rows), ErrRowRange)
	}
	g.insertRow(index)
	g.checkRows()
	g.changed(false)
	return nil
}

func (g *Grid) insertRow(index int) *row {
	r := newRow(len(g.columns))
	g.rows = slices.Insert(g.rows, index, r)
	g.reindex(index)
	return r
}

// DeleteRow removes the row at index. A selected row is deselected first.
func (g *Grid) DeleteRow(index int, repaint bool) error {
	g.lock()
	defer g.unlock()
	if g.keyed {
		return ErrKeyedRows
	}
	if err := g.checkRow(index); err != nil {
		return err
	}
	g.deleteRow(index)
	g.checkRows()
	g.changed(repaint)
	return nil
}

func (g *Grid) deleteRow(index int) {
	r := g.rows[index]
	if r == g.selected {
		g.deselect(false)
	}
	g.rows = slices.Delete(g.rows, index, index+1)
	r.release()
	g.reindex(index)
}

// ClearRows removes every row.
func (g *Grid) ClearRows(repaint bool) error {
	g.lock()
	defer g.unlock()
	if g.keyed {
		return ErrKeyedRows
	}
	g.clearRows()
	g.changed(repaint)
	return nil
}

func (g *Grid) clearRows() {
	if g.selected != nil {
		g.deselect(false)
	}
	for _, r := range g.rows {
		r.release()
	}
	g.rows = nil
	g.v.SetOffset(0)
}

// ClearCells returns every cell to its empty state, keeping rows, columns
// and attribute overrides.
func (g *Grid) ClearCells(repaint bool) {
	g.lock()
	defer g.unlock()
	for _, r := range g.rows {
		for _, c := range r.cells {
			c.clear()
		}
	}
	g.changed(repaint)
}

// Reinitialize removes every row and column and starts again with the given
// headers. Column attribute overrides are dropped; table and header sets are
// kept.
func (g *Grid) Reinitialize(headers ...string) error {
	g.lock()
	defer g.unlock()
	if g.keyed {
		return ErrKeyedRows
	}
	g.reinitialize(headers)
	g.changed(true)
	return nil
}

func (g *Grid) reinitialize(headers []string) {
	g.cancelDrag()
	g.clearRows()
	for _, c := range g.columns {
		c.release()
	}
	g.columns = g.columns[:0]
	for _, h := range headers {
		g.columns = append(g.columns, g.newColumn(h, 0))
	}
	g.sortCol = -1
	g.h.SetOffset(0)
	g.log.Debug("grid: reinitialize", "columns", len(headers))
}

// RowHandle returns the identity of the row at index.
func (g *Grid) RowHandle(index int) (*Handle, error) {
	g.rlock()
	defer g.runlock()
	if err := g.checkRow(index); err != nil {
		return nil, err
	}
	return g.rows[index].handle, nil
}

// SetCellText sets the text of a cell. Its payload is cleared.
func (g *Grid) SetCellText(col, row int, text string, repaint bool) error {
	return g.SetCellValue(col, row, text, nil, repaint)
}

// SetCellValue sets the text of a cell and the payload it sorts by.
func (g *Grid) SetCellValue(col, row int, text string, payload any, repaint bool) error {
	g.lock()
	defer g.unlock()
	c, err := g.cellAt(col, row)
	if err != nil {
		return err
	}
	c.text.Set(text)
	c.payload = payload
	g.changed(repaint)
	return nil
}

// ClearCell makes the cell's text null and drops its payload.
func (g *Grid) ClearCell(col, row int, repaint bool) error {
	g.lock()
	defer g.unlock()
	c, err := g.cellAt(col, row)
	if err != nil {
		return err
	}
	c.clear()
	g.changed(repaint)
	return nil
}

// CellText returns the original text of a cell and whether it is set.
func (g *Grid) CellText(col, row int) (string, bool, error) {
	g.rlock()
	defer g.runlock()
	c, err := g.cellAt(col, row)
	if err != nil {
		return "", false, err
	}
	text, ok := c.text.Original()
	return text, ok, nil
}

// CellWrapped returns the text of a cell as wrapped to its column.
func (g *Grid) CellWrapped(col, row int) (string, error) {
	g.rlock()
	defer g.runlock()
	c, err := g.cellAt(col, row)
	if err != nil {
		return "", err
	}
	return c.text.Wrapped(), nil
}

// CellLines returns the number of wrapped lines of a cell.
func (g *Grid) CellLines(col, row int) (int, error) {
	g.rlock()
	defer g.runlock()
	c, err := g.cellAt(col, row)
	if err != nil {
		return 0, err
	}
	return c.text.Lines(), nil
}

// CellPayload returns the sort payload of a cell.
func (g *Grid) CellPayload(col, row int) (any, error) {
	g.rlock()
	defer g.runlock()
	c, err := g.cellAt(col, row)
	if err != nil {
		return nil, err
	}
	return c.payload, nil
}

// SetCellAttributes replaces the attribute override of a cell. The set may
// be shared; nil removes the override.
func (g *Grid) SetCellAttributes(col, row int, s *attr.Set, repaint bool) error {
	g.lock()
	defer g.unlock()
	c, err := g.cellAt(col, row)
	if err != nil {
		return err
	}
	c.release()
	c.attrs = s
	if s != nil {
		c.unsub = s.Subscribe(g.markStale)
	}
	g.stale.Store(true)
	g.changed(repaint)
	return nil
}

// CellAttributes returns the attribute override of a cell, or nil.
func (g *Grid) CellAttributes(col, row int) (*attr.Set, error) {
	g.rlock()
	defer g.runlock()
	c, err := g.cellAt(col, row)
	if err != nil {
		return nil, err
	}
	return c.attrs, nil
}

// ResolvedAttributes resolves the effective attributes of a cell.
func (g *Grid) ResolvedAttributes(col, row int) (attr.Resolved, error) {
	g.rlock()
	defer g.runlock()
	c, err := g.cellAt(col, row)
	if err != nil {
		return attr.Resolved{}, err
	}
	return attr.Resolve(c.attrs, g.columns[col].attrs, g.table), nil
}

// reindex renumbers the handles of the rows from index on.
func (g *Grid) reindex(from int) {
	for i := max(from, 0); i < len(g.rows); i++ {
		g.rows[i].handle.setNumber(i)
	}
}

// checkRows verifies that every handle numbers its own position and, for a
// keyed grid, that the row index agrees with the rows.
func (g *Grid) checkRows() {
	if g.index != nil {
		if err := g.index.check(g.rows); err != nil {
			g.log.Error("grid: row index", "err", err)
			panic(err)
		}
	}
	for i, r := range g.rows {
		if r.handle.row != r || r.handle.Number() != i {
			g.violation("row handle out of place", "position", i, "number", r.handle.Number())
		}
		if len(r.cells) != len(g.columns) {
			g.violation("row cells out of step with columns", "position", i, "cells", len(r.cells), "columns", len(g.columns))
		}
	}
}

// violation reports a broken invariant. It does not return.
func (g *Grid) violation(msg string, args ...any) {
	g.log.Error("grid: "+msg, args...)
	panic(fmt.Errorf("%s: %w", msg, ErrConsistency))
}
