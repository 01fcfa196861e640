package grid

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// Sort orders the rows by column col. Rows keep their handles; only their
// numbers change. Rows that compare equal keep their relative order in both
// directions.
//
// Two cells compare by payload when both have one: times chronologically,
// integers and floats numerically, anything else as equal. Otherwise they
// compare by wrapped text, ignoring case, with a null text before any text.
func (g *Grid) Sort(col int, ascending bool) error {
	g.lock()
	defer g.unlock()
	if err := g.checkColumn(col); err != nil {
		return err
	}
	g.sortRows(col, ascending)
	g.changed(true)
	return nil
}

// ResortColumn sorts the rows by column col in the direction of the last sort,
// ascending when the grid was never sorted.
func (g *Grid) ResortColumn(col int, repaint bool) error {
	g.lock()
	defer g.unlock()
	if err := g.checkColumn(col); err != nil {
		return err
	}
	g.sortRows(col, g.sortAsc)
	g.changed(repaint)
	return nil
}

// SortState returns the column the rows were last sorted by.
func (g *Grid) SortState() (col int, ascending, ok bool) {
	g.rlock()
	defer g.runlock()
	return g.sortCol, g.sortAsc, g.sortCol >= 0
}

func (g *Grid) sortRows(col int, ascending bool) {
	// A Caser keeps state and must not be shared between goroutines.
	fold := cases.Fold()
	slices.SortStableFunc(g.rows, func(a, b *row) int {
		c := compareCells(a.cells[col], b.cells[col], fold)
		if !ascending {
			return -c
		}
		return c
	})
	g.reindex(0)
	if g.index != nil {
		g.index.reordered(g.rows)
	}
	g.checkRows()
	g.sortCol, g.sortAsc = col, ascending
	g.log.Debug("grid: sort", "column", col, "ascending", ascending, "rows", len(g.rows))
}

func compareCells(a, b *cell, fold cases.Caser) int {
	if a.payload == nil || b.payload == nil {
		return compareText(a, b, fold)
	}
	return comparePayload(a.payload, b.payload)
}

func compareText(a, b *cell, fold cases.Caser) int {
	_, aok := a.text.Original()
	_, bok := b.text.Original()
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return -1
	case !bok:
		return 1
	}
	return strings.Compare(fold.String(a.text.Wrapped()), fold.String(b.text.Wrapped()))
}

func comparePayload(a, b any) int {
	if at, ok := a.(time.Time); ok {
		if bt, ok := b.(time.Time); ok {
			return at.Compare(bt)
		}
		return 0
	}
	x, okx := toNumber(a)
	y, oky := toNumber(b)
	if !okx || !oky {
		return 0
	}
	return x.compare(y)
}

type numberKind uint8

const (
	signed numberKind = iota
	unsigned
	float
)

type number struct {
	kind numberKind
	i    int64
	u    uint64
	f    float64
}

func toNumber(v any) (number, bool) {
	switch x := v.(type) {
	case int:
		return number{kind: signed, i: int64(x)}, true
	case int8:
		return number{kind: signed, i: int64(x)}, true
	case int16:
		return number{kind: signed, i: int64(x)}, true
	case int32:
		return number{kind: signed, i: int64(x)}, true
	case int64:
		return number{kind: signed, i: x}, true
	case time.Duration:
		return number{kind: signed, i: int64(x)}, true
	case uint:
		return number{kind: unsigned, u: uint64(x)}, true
	case uint8:
		return number{kind: unsigned, u: uint64(x)}, true
	case uint16:
		return number{kind: unsigned, u: uint64(x)}, true
	case uint32:
		return number{kind: unsigned, u: uint64(x)}, true
	case uint64:
		return number{kind: unsigned, u: x}, true
	case float32:
		return number{kind: float, f: float64(x)}, true
	case float64:
		return number{kind: float, f: x}, true
	}
	return number{}, false
}

func (n number) compare(o number) int {
	switch {
	case n.kind == signed && o.kind == signed:
		return cmp.Compare(n.i, o.i)
	case n.kind == unsigned && o.kind == unsigned:
		return cmp.Compare(n.u, o.u)
	case n.kind == signed && o.kind == unsigned:
		if n.i < 0 {
			return -1
		}
		return cmp.Compare(uint64(n.i), o.u)
	case n.kind == unsigned && o.kind == signed:
		return -o.compare(n)
	}
	return cmp.Compare(n.float(), o.float())
}

func (n number) float() float64 {
	switch n.kind {
	case signed:
		return float64(n.i)
	case unsigned:
		return float64(n.u)
	}
	return n.f
}
