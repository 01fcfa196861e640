package grid

import (
	"fmt"
	"slices"
)

// Listener receives the notifications of a keyed grid. Methods run
// synchronously before the triggering call returns, after the grid's lock
// is released.
type Listener[K comparable] interface {
	RowSelected(key K)
	// RowUnselected reports a deselection. otherRemainsSelected is true when
	// the deselection is the first half of selecting another row.
	RowUnselected(key K, otherRemainsSelected bool)
	RowDoubleSelected(key K)
	RowMenuPerformed(key K, action string)
	ColumnMenuPerformed(col int, action string)
}

// ListenerFuncs adapts plain functions to Listener. Nil fields are skipped.
type ListenerFuncs[K comparable] struct {
	OnRowSelected         func(key K)
	OnRowUnselected       func(key K, otherRemainsSelected bool)
	OnRowDoubleSelected   func(key K)
	OnRowMenuPerformed    func(key K, action string)
	OnColumnMenuPerformed func(col int, action string)
}

func (f ListenerFuncs[K]) RowSelected(key K) {
	if f.OnRowSelected != nil {
		f.OnRowSelected(key)
	}
}

func (f ListenerFuncs[K]) RowUnselected(key K, otherRemainsSelected bool) {
	if f.OnRowUnselected != nil {
		f.OnRowUnselected(key, otherRemainsSelected)
	}
}

func (f ListenerFuncs[K]) RowDoubleSelected(key K) {
	if f.OnRowDoubleSelected != nil {
		f.OnRowDoubleSelected(key)
	}
}

func (f ListenerFuncs[K]) RowMenuPerformed(key K, action string) {
	if f.OnRowMenuPerformed != nil {
		f.OnRowMenuPerformed(key, action)
	}
}

func (f ListenerFuncs[K]) ColumnMenuPerformed(col int, action string) {
	if f.OnColumnMenuPerformed != nil {
		f.OnColumnMenuPerformed(col, action)
	}
}

// indexer is the grid's view of a row index.
type indexer interface {
	// reordered rebuilds positions after the rows were permuted.
	reordered(rows []*row)
	check(rows []*row) error
}

// rowIndex maps keys to row handles. crossref lists the handles in row
// order, so crossref[i].Number() == i.
type rowIndex[K comparable] struct {
	byKey    map[K]*Handle
	keys     map[*Handle]K
	crossref []*Handle
}

func newRowIndex[K comparable]() *rowIndex[K] {
	return &rowIndex[K]{
		byKey: make(map[K]*Handle),
		keys:  make(map[*Handle]K),
	}
}

func (x *rowIndex[K]) insert(key K, h *Handle) {
	x.byKey[key] = h
	x.keys[h] = key
	x.crossref = slices.Insert(x.crossref, h.Number(), h)
}

func (x *rowIndex[K]) remove(key K, pos int) {
	h := x.byKey[key]
	delete(x.byKey, key)
	delete(x.keys, h)
	x.crossref = slices.Delete(x.crossref, pos, pos+1)
}

func (x *rowIndex[K]) reset() {
	clear(x.byKey)
	clear(x.keys)
	x.crossref = x.crossref[:0]
}

func (x *rowIndex[K]) reordered(rows []*row) {
	x.crossref = x.crossref[:0]
	for _, r := range rows {
		x.crossref = append(x.crossref, r.handle)
	}
}

func (x *rowIndex[K]) check(rows []*row) error {
	if len(x.crossref) != len(rows) || len(x.byKey) != len(rows) {
		return fmt.Errorf("row index holds %d handles and %d keys for %d rows: %w",
			len(x.crossref), len(x.byKey), len(rows), ErrConsistency)
	}
	for i, h := range x.crossref {
		if h.Number() != i {
			return fmt.Errorf("crossref[%d] numbered %d: %w", i, h.Number(), ErrConsistency)
		}
		if rows[i].handle != h {
			return fmt.Errorf("crossref[%d] is not the handle of row %d: %w", i, i, ErrConsistency)
		}
		if _, ok := x.keys[h]; !ok {
			return fmt.Errorf("crossref[%d] has no key: %w", i, ErrConsistency)
		}
	}
	return nil
}

// Keyed is a grid whose rows are addressed by caller-chosen keys. Column,
// attribute, layout, scroll and render operations are those of the embedded
// Grid; row operations by index are rejected with ErrKeyedRows.
type Keyed[K comparable] struct {
	*Grid
	index    *rowIndex[K]
	listener Listener[K]
}

// NewKeyed creates a keyed grid. listener may be nil.
func NewKeyed[K comparable](cfg Config, listener Listener[K], headers ...string) *Keyed[K] {
	k := &Keyed[K]{
		Grid:     New(cfg, headers...),
		index:    newRowIndex[K](),
		listener: listener,
	}
	k.keyed = true
	k.Grid.index = k.index
	k.observer = keyObserver[K]{k}
	return k
}

// SetListener replaces the listener; nil disables notifications.
func (k *Keyed[K]) SetListener(l Listener[K]) {
	k.lock()
	defer k.unlock()
	k.listener = l
}

func (k *Keyed[K]) handle(key K) (*Handle, error) {
	h, ok := k.index.byKey[key]
	if !ok {
		return nil, fmt.Errorf("row %v: %w", key, ErrKeyNotFound)
	}
	return h, nil
}

// NewRow appends an empty row for key.
func (k *Keyed[K]) NewRow(key K) error {
	k.lock()
	defer k.unlock()
	if _, ok := k.index.byKey[key]; ok {
		return fmt.Errorf("new row %v: %w", key, ErrDuplicateKey)
	}
	k.addRow(key, len(k.rows))
	k.changed(false)
	return nil
}

// InsertRowBefore inserts an empty row for key directly above the row of
// before.
func (k *Keyed[K]) InsertRowBefore(key, before K) error {
	k.lock()
	defer k.unlock()
	if _, ok := k.index.byKey[key]; ok {
		return fmt.Errorf("insert row %v: %w", key, ErrDuplicateKey)
	}
	h, err := k.handle(before)
	if err != nil {
		return err
	}
	k.addRow(key, h.Number())
	k.changed(false)
	return nil
}

func (k *Keyed[K]) addRow(key K, pos int) {
	r := k.insertRow(pos)
	k.index.insert(key, r.handle)
	k.checkRows()
	k.log.Debug("grid: new row", "key", key, "position", pos)
}

// DeleteRow removes the row of key. A selected row is deselected first.
func (k *Keyed[K]) DeleteRow(key K, repaint bool) error {
	k.lock()
	defer k.unlock()
	h, err := k.handle(key)
	if err != nil {
		return err
	}
	pos := h.Number()
	k.deleteRow(pos)
	k.index.remove(key, pos)
	k.checkRows()
	k.log.Debug("grid: delete row", "key", key, "position", pos)
	k.changed(repaint)
	return nil
}

// ClearRows removes every row.
func (k *Keyed[K]) ClearRows(repaint bool) error {
	k.lock()
	defer k.unlock()
	k.clearRows()
	k.index.reset()
	k.checkRows()
	k.changed(repaint)
	return nil
}

// Reinitialize removes every row and column and starts again with the given
// headers.
func (k *Keyed[K]) Reinitialize(headers ...string) error {
	k.lock()
	defer k.unlock()
	k.reinitialize(headers)
	k.index.reset()
	k.checkRows()
	k.changed(true)
	return nil
}

// HasRow reports whether key has a row.
func (k *Keyed[K]) HasRow(key K) bool {
	k.rlock()
	defer k.runlock()
	_, ok := k.index.byKey[key]
	return ok
}

// Keys returns the keys in display order.
func (k *Keyed[K]) Keys() []K {
	k.rlock()
	defer k.runlock()
	keys := make([]K, len(k.index.crossref))
	for i, h := range k.index.crossref {
		keys[i] = k.index.keys[h]
	}
	return keys
}

// RowNumber returns the current position of the row of key.
func (k *Keyed[K]) RowNumber(key K) (int, error) {
	k.rlock()
	defer k.runlock()
	h, err := k.handle(key)
	if err != nil {
		return 0, err
	}
	return h.Number(), nil
}

// Handle returns the identity of the row of key.
func (k *Keyed[K]) Handle(key K) (*Handle, error) {
	k.rlock()
	defer k.runlock()
	return k.handle(key)
}

// Key returns the key of the row at position row.
func (k *Keyed[K]) Key(row int) (K, error) {
	k.rlock()
	defer k.runlock()
	var zero K
	if err := k.checkRow(row); err != nil {
		return zero, err
	}
	return k.index.keys[k.index.crossref[row]], nil
}

func (k *Keyed[K]) keyedCell(key K, col int) (*cell, error) {
	h, err := k.handle(key)
	if err != nil {
		return nil, err
	}
	if err := k.checkColumn(col); err != nil {
		return nil, err
	}
	return h.row.cells[col], nil
}

// SetCellText sets the text of column col in the row of key. Its payload is
// cleared.
func (k *Keyed[K]) SetCellText(key K, col int, text string, repaint bool) error {
	return k.SetCellValue(key, col, text, nil, repaint)
}

// SetCellValue sets the text and sort payload of column col in the row of
// key.
func (k *Keyed[K]) SetCellValue(key K, col int, text string, payload any, repaint bool) error {
	k.lock()
	defer k.unlock()
	c, err := k.keyedCell(key, col)
	if err != nil {
		return err
	}
	c.text.Set(text)
	c.payload = payload
	k.changed(repaint)
	return nil
}

// ClearCell makes the text of column col in the row of key null.
func (k *Keyed[K]) ClearCell(key K, col int, repaint bool) error {
	k.lock()
	defer k.unlock()
	c, err := k.keyedCell(key, col)
	if err != nil {
		return err
	}
	c.clear()
	k.changed(repaint)
	return nil
}

// CellText returns the original text of column col in the row of key.
func (k *Keyed[K]) CellText(key K, col int) (string, bool, error) {
	k.rlock()
	defer k.runlock()
	c, err := k.keyedCell(key, col)
	if err != nil {
		return "", false, err
	}
	text, ok := c.text.Original()
	return text, ok, nil
}

// CellPayload returns the sort payload of column col in the row of key.
func (k *Keyed[K]) CellPayload(key K, col int) (any, error) {
	k.rlock()
	defer k.runlock()
	c, err := k.keyedCell(key, col)
	if err != nil {
		return nil, err
	}
	return c.payload, nil
}

// Select selects the row of key, deselecting any other row first.
func (k *Keyed[K]) Select(key K) error {
	k.lock()
	defer k.unlock()
	h, err := k.handle(key)
	if err != nil {
		return err
	}
	k.selectRow(h.row)
	return nil
}

// Deselect clears the selection.
func (k *Keyed[K]) Deselect() {
	k.ClearSelection()
}

// SelectedKey returns the key of the selected row.
func (k *Keyed[K]) SelectedKey() (K, bool) {
	k.rlock()
	defer k.runlock()
	var zero K
	if k.selected == nil {
		return zero, false
	}
	return k.index.keys[k.selected.handle], true
}

// Resort sorts the rows by column col. Keys keep their rows; the row index
// is rebuilt in the new order.
func (k *Keyed[K]) Resort(col int, ascending bool) error {
	return k.Sort(col, ascending)
}

// PerformRowMenu reports that the host's row menu ran action on the row
// of key.
func (k *Keyed[K]) PerformRowMenu(key K, action string) error {
	k.lock()
	defer k.unlock()
	h, err := k.handle(key)
	if err != nil {
		return err
	}
	k.emit(k.observer.rowMenu(h, action))
	return nil
}

type keyObserver[K comparable] struct {
	k *Keyed[K]
}

func (o keyObserver[K]) rowSelected(h *Handle) func() {
	l, key := o.k.listener, o.k.index.keys[h]
	if l == nil {
		return nil
	}
	return func() { l.RowSelected(key) }
}

func (o keyObserver[K]) rowUnselected(h *Handle, other bool) func() {
	l, key := o.k.listener, o.k.index.keys[h]
	if l == nil {
		return nil
	}
	return func() { l.RowUnselected(key, other) }
}

func (o keyObserver[K]) rowDoubleSelected(h *Handle) func() {
	l, key := o.k.listener, o.k.index.keys[h]
	if l == nil {
		return nil
	}
	return func() { l.RowDoubleSelected(key) }
}

func (o keyObserver[K]) rowMenu(h *Handle, action string) func() {
	l, key := o.k.listener, o.k.index.keys[h]
	if l == nil {
		return nil
	}
	return func() { l.RowMenuPerformed(key, action) }
}

func (o keyObserver[K]) columnMenu(col int, action string) func() {
	l := o.k.listener
	if l == nil {
		return nil
	}
	return func() { l.ColumnMenuPerformed(col, action) }
}

func (o keyObserver[K]) sortChanged(col int, ascending bool) func() {
	return o.k.hooks.sortChangedFunc(col, ascending)
}
