package grid

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/oklog/ulid/v2"

	"github.com/odvcencio/furry-grid/attr"
	"github.com/odvcencio/furry-grid/wrap"
)

// Handle is the stable identity of a row. The row keeps its handle through
// inserts, deletes and sorts; only the position number changes.
type Handle struct {
	id     ulid.ULID
	number atomic.Int64
	row    *row
}

func newHandle(r *row) *Handle {
	h := &Handle{id: ulid.Make(), row: r}
	r.handle = h
	return h
}

// ID returns the handle's unique identifier.
func (h *Handle) ID() ulid.ULID {
	return h.id
}

// Number returns the row's current position, or -1 once it was deleted.
func (h *Handle) Number() int {
	return int(h.number.Load())
}

func (h *Handle) setNumber(n int) {
	h.number.Store(int64(n))
}

func (h *Handle) String() string {
	return fmt.Sprintf("row %d (%s)", h.Number(), h.id)
}

type cell struct {
	text     wrap.Text
	payload  any
	selected bool
	attrs    *attr.Set
	unsub    func()
}

func (c *cell) release() {
	if c.unsub != nil {
		c.unsub()
		c.unsub = nil
	}
}

// clear returns the cell to its empty state. The attribute override is
// kept.
func (c *cell) clear() {
	c.text.Clear()
	c.payload = nil
}

// lines splits the wrapped text into display lines.
func (c *cell) lines() []string {
	s := c.text.Wrapped()
	if strings.ContainsRune(s, '\r') {
		s = strings.ReplaceAll(s, "\r\n", "\n")
		s = strings.ReplaceAll(s, "\r", "\n")
	}
	return strings.Split(s, "\n")
}

type column struct {
	header  string
	nominal float64
	left    int
	width   int
	attrs   *attr.Set
	unsub   func()
}

func (c *column) release() {
	if c.unsub != nil {
		c.unsub()
		c.unsub = nil
	}
}

type row struct {
	cells  []*cell
	span   int
	top    int
	bottom int
	handle *Handle
}

func newRow(columns int) *row {
	r := &row{cells: make([]*cell, columns), span: 1}
	for i := range r.cells {
		r.cells[i] = &cell{}
	}
	newHandle(r)
	return r
}

func (r *row) release() {
	for _, c := range r.cells {
		c.release()
	}
	r.handle.setNumber(-1)
}

func (r *row) setSelected(on bool) {
	for _, c := range r.cells {
		c.selected = on
	}
}

func (r *row) selected() bool {
	return len(r.cells) > 0 && r.cells[0].selected
}
