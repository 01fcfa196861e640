package grid

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/furry-grid/scroll"
)

func columnTotal(t *testing.T, g *Grid) int {
	t.Helper()
	total := 0
	for c := 0; c < g.ColumnCount(); c++ {
		w, err := g.ColumnWidth(c)
		require.NoError(t, err)
		total += w
	}
	return total + (g.ColumnCount()-1)*g.Lines().Separator
}

func TestWidthInvariantWhenScaledToFit(t *testing.T) {
	for _, policy := range []scroll.ScrollPolicy{scroll.ScrollNever, scroll.ScrollAuto} {
		cfg := testConfig()
		cfg.HorizontalPolicy = policy
		g := New(cfg, "a", "bb", "ccc")
		addRows(t, g, "alpha beta", "x", "gamma delta epsilon")
		for width := 20; width <= 80; width++ {
			g.SetViewport(width, 10)
			hs, vs := g.ScrollbarsVisible()
			require.False(t, hs, "policy %v width %d", policy, width)
			want := width
			if vs {
				want -= cfg.ScrollbarWidth
			}
			require.Equal(t, want, columnTotal(t, g), "policy %v width %d", policy, width)
		}
	}
}

func TestWidthInvariantWithManyRoundedColumns(t *testing.T) {
	cfg := testConfig()
	cfg.MinColumnWidth = 1
	cfg.Lines.Separator = 0
	headers := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	g := New(cfg, headers...)
	for c := range 7 {
		require.NoError(t, g.SetColumnWidth(c, 10, false))
	}
	require.NoError(t, g.SetColumnWidth(7, 1, false))

	g.SetViewport(75, 10)
	hs, vs := g.ScrollbarsVisible()
	require.False(t, hs)
	require.False(t, vs)
	assert.Equal(t, 75, columnTotal(t, g))
	last, _ := g.ColumnWidth(7)
	assert.Equal(t, 1, last)
	x, _ := g.ScrollOffset()
	assert.Equal(t, 0, x)
	assert.Equal(t, 75, g.ContentSize().Width)

	for width := 71; width <= 160; width++ {
		g.SetViewport(width, 10)
		require.Equal(t, width, columnTotal(t, g), "width %d", width)
		scale := g.ScaleFactor()
		for c := range 8 {
			nominal, _ := g.NominalWidth(c)
			w, _ := g.ColumnWidth(c)
			require.InDelta(t, nominal*scale, w, 1, "width %d column %d", width, c)
		}
	}
}

func TestAutoPolicyScrollsWhenColumnsDoNotFit(t *testing.T) {
	g := New(testConfig(), "a", "b")
	require.NoError(t, g.SetColumnWidth(0, 30, false))
	require.NoError(t, g.SetColumnWidth(1, 30, false))
	g.SetViewport(40, 10)

	hs, _ := g.ScrollbarsVisible()
	assert.True(t, hs)
	assert.Equal(t, 1.0, g.ScaleFactor())
	assert.Equal(t, 61, g.ContentSize().Width)

	g.ScrollBy(100, 0)
	x, _ := g.ScrollOffset()
	assert.Equal(t, 21, x)
	assert.Equal(t, scroll.Range{Start: 0, End: 2}, g.VisibleColumns())

	g.SetViewport(80, 10)
	hs, _ = g.ScrollbarsVisible()
	assert.False(t, hs)
	x, _ = g.ScrollOffset()
	assert.Equal(t, 0, x, "fitting again resets the offset")
	assert.Greater(t, g.ScaleFactor(), 1.0)
}

func TestRowPositionInvariant(t *testing.T) {
	cfg := fixedConfig()
	cfg.Lines.Body = 1
	g := New(cfg, "text", "more")
	g.SetViewport(24, 40)
	addRows(t, g, "short", "a somewhat longer text that wraps", "", "x y z w v u t s r q p")
	require.NoError(t, g.SetCellText(1, 2, "line\nbreaks\ninside", false))

	check := func() {
		t.Helper()
		for r := 0; r+1 < g.RowCount(); r++ {
			_, bottom, err := g.RowBounds(r)
			require.NoError(t, err)
			top, _, err := g.RowBounds(r + 1)
			require.NoError(t, err)
			require.Equal(t, top, bottom+1, "rows %d and %d", r, r+1)
		}
	}
	check()
	span, _ := g.RowSpan(2)
	assert.Equal(t, 3, span)

	for _, w := range []int{10, 17, 60} {
		g.SetViewport(w, 40)
		check()
	}
	require.NoError(t, g.Sort(0, true))
	check()
	require.NoError(t, g.DeleteRow(1, false))
	check()
}

func TestVerticalScrollAndVisibleRows(t *testing.T) {
	g := New(fixedConfig(), "n")
	for i := range 20 {
		addRows(t, g, fmt.Sprint(i))
	}
	g.SetViewport(20, 7)

	hs, vs := g.ScrollbarsVisible()
	assert.False(t, hs)
	assert.True(t, vs)
	assert.Equal(t, scroll.Range{Start: 0, End: 5}, g.VisibleRows())

	g.ScrollToEnd()
	assert.Equal(t, scroll.Range{Start: 15, End: 20}, g.VisibleRows())
	g.PageBy(-1)
	assert.Equal(t, scroll.Range{Start: 10, End: 15}, g.VisibleRows())
	g.ScrollToStart()
	_, y := g.ScrollOffset()
	assert.Equal(t, 0, y)

	require.NoError(t, g.ScrollToRow(12))
	assert.Equal(t, scroll.Range{Start: 8, End: 13}, g.VisibleRows())
}

func TestVerticalScrollbarNarrowsColumns(t *testing.T) {
	g := New(fixedConfig(), "n")
	g.SetViewport(20, 7)
	w, _ := g.ColumnWidth(0)
	assert.Equal(t, 20, w)
	for i := range 10 {
		addRows(t, g, fmt.Sprint(i))
	}
	w, _ = g.ColumnWidth(0)
	assert.Equal(t, 19, w)
}

func TestVerticalFillExtendsVisibleRows(t *testing.T) {
	cfg := fixedConfig()
	cfg.VerticalFill = true
	g := New(cfg, "n")
	g.SetViewport(20, 6)
	addRows(t, g, "only")
	assert.Equal(t, scroll.Range{Start: 0, End: 4}, g.VisibleRows())
}

func TestOptimizeColumnWidths(t *testing.T) {
	g := New(fixedConfig(), "a", "b")
	require.NoError(t, g.SetColumnWidth(0, 10, false))
	require.NoError(t, g.SetColumnWidth(1, 10, false))
	g.SetViewport(21, 10)
	addRows(t, g, "ab")
	require.NoError(t, g.SetCellText(1, 0, "abcdefghijklmnopqrstuvwxyz", false))

	lines, _ := g.CellLines(1, 0)
	assert.Equal(t, 4, lines)

	g.OptimizeColumnWidths(true)
	w0, _ := g.ColumnWidth(0)
	w1, _ := g.ColumnWidth(1)
	assert.Equal(t, 4, w0)
	assert.Equal(t, 16, w1)
	wrapped, _ := g.CellWrapped(1, 0)
	assert.Equal(t, "abcdefghijklmn\nopqrstuvwxyz", wrapped)

	// Nothing left to move.
	g.OptimizeColumnWidths(true)
	w0, _ = g.ColumnWidth(0)
	assert.Equal(t, 4, w0)
}

func TestOptimizeIsSinglePass(t *testing.T) {
	g := New(fixedConfig(), "a", "b", "c")
	for c := range 3 {
		require.NoError(t, g.SetColumnWidth(c, 10, false))
	}
	g.SetViewport(32, 10)
	addRows(t, g, "x")
	require.NoError(t, g.SetCellText(1, 0, "0123456789012345678901234", false))
	require.NoError(t, g.SetCellText(2, 0, "0123456789012", false))

	// Column 0 spares 7; columns 1 and 2 are short 17 and 5.
	g.OptimizeColumnWidths(false)
	n0, _ := g.NominalWidth(0)
	n1, _ := g.NominalWidth(1)
	n2, _ := g.NominalWidth(2)
	assert.InDelta(t, 3.0, n0, 1e-9)
	assert.InDelta(t, 10+7*17.0/22, n1, 1e-9)
	assert.InDelta(t, 10+7*5.0/22, n2, 1e-9)
}

func TestColumnDrag(t *testing.T) {
	cfg := testConfig()
	cfg.HorizontalPolicy = scroll.ScrollAlways
	g := New(cfg, "a", "b")
	require.NoError(t, g.SetColumnWidth(0, 10, false))
	require.NoError(t, g.SetColumnWidth(1, 10, false))

	assert.ErrorIs(t, g.DragColumn(1), ErrNoDrag)
	assert.ErrorIs(t, g.BeginColumnDrag(1), ErrInvalidArgument)

	require.NoError(t, g.BeginColumnDrag(0))
	col, ok := g.Dragging()
	assert.True(t, ok)
	assert.Equal(t, 0, col)

	require.NoError(t, g.DragColumn(3))
	n0, _ := g.NominalWidth(0)
	n1, _ := g.NominalWidth(1)
	assert.Equal(t, 13.0, n0)
	assert.Equal(t, 7.0, n1)

	require.NoError(t, g.DragColumn(-20))
	n0, _ = g.NominalWidth(0)
	n1, _ = g.NominalWidth(1)
	assert.Equal(t, 3.0, n0)
	assert.Equal(t, 17.0, n1)

	require.NoError(t, g.EndColumnDrag())
	_, ok = g.Dragging()
	assert.False(t, ok)
	assert.ErrorIs(t, g.EndColumnDrag(), ErrNoDrag)
}

func TestHitTest(t *testing.T) {
	cfg := testConfig()
	cfg.HorizontalPolicy = scroll.ScrollAlways
	g := New(cfg, "a", "b")
	require.NoError(t, g.SetColumnWidth(0, 10, false))
	require.NoError(t, g.SetColumnWidth(1, 10, false))
	g.SetViewport(30, 10)
	addRows(t, g, "row")

	tests := []struct {
		name string
		x, y int
		want Hit
	}{
		{name: "header", x: 5, y: 0, want: Hit{Area: HitHeader, Col: 0, Row: -1}},
		{name: "boundary", x: 10, y: 0, want: Hit{Area: HitBoundary, Col: 0, Row: -1}},
		{name: "cell", x: 12, y: 2, want: Hit{Area: HitCell, Col: 1, Row: 0}},
		{name: "below rows", x: 12, y: 5, want: Hit{Area: HitNone, Col: 1, Row: -1}},
		{name: "separator in body", x: 10, y: 2, want: Hit{Area: HitNone, Col: -1, Row: -1}},
		{name: "past columns", x: 25, y: 2, want: Hit{Area: HitNone, Col: -1, Row: -1}},
		{name: "horizontal scrollbar", x: 3, y: 9, want: Hit{Area: HitHorizontalScrollbar, Col: -1, Row: -1}},
		{name: "outside", x: 30, y: 0, want: Hit{Area: HitNone, Col: -1, Row: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.HitTest(tt.x, tt.y))
		})
	}
}
