package grid

import (
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/furry-grid/attr"
	"github.com/odvcencio/furry-grid/scroll"
	"github.com/odvcencio/furry-grid/wrap"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return cfg
}

func fixedConfig() Config {
	cfg := testConfig()
	cfg.HorizontalPolicy = scroll.ScrollNever
	return cfg
}

func addRows(t *testing.T, g *Grid, texts ...string) {
	t.Helper()
	for _, text := range texts {
		r, err := g.AddRow()
		require.NoError(t, err)
		require.NoError(t, g.SetCellText(0, r, text, false))
	}
}

func TestNewSizesColumnsFromHeaders(t *testing.T) {
	g := New(testConfig(), "Name", "Qty", "")
	require.Equal(t, 3, g.ColumnCount())

	w, err := g.NominalWidth(0)
	require.NoError(t, err)
	assert.Equal(t, 6.0, w)
	w, err = g.NominalWidth(2)
	require.NoError(t, err)
	assert.Equal(t, 3.0, w, "empty header falls back to the minimum width")
	assert.Equal(t, 1, g.RowHeight())
	assert.Equal(t, 2, g.HeaderHeight())
}

func TestCellWrapsToColumnWidth(t *testing.T) {
	g := New(fixedConfig(), "h")
	g.SetViewport(9, 10)
	addRows(t, g, "one two three")

	wrapped, err := g.CellWrapped(0, 0)
	require.NoError(t, err)
	assert.Equal(t, "one two\nthree", wrapped)
	lines, err := g.CellLines(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, lines)

	top, bottom, err := g.RowBounds(0)
	require.NoError(t, err)
	assert.Equal(t, 0, top)
	assert.Equal(t, 2, bottom)

	text, ok, err := g.CellText(0, 0)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "one two three", text)
}

func TestNullAndEmptyCells(t *testing.T) {
	g := New(fixedConfig(), "h")
	g.SetViewport(10, 5)
	addRows(t, g, "")
	require.NoError(t, g.InsertRow(0))

	_, ok, err := g.CellText(0, 0)
	require.NoError(t, err)
	assert.False(t, ok, "new cell is null")
	_, ok, err = g.CellText(0, 1)
	require.NoError(t, err)
	assert.True(t, ok, "empty text is not null")

	for r := 0; r < 2; r++ {
		span, err := g.RowSpan(r)
		require.NoError(t, err)
		assert.Equal(t, 1, span)
	}
	require.NoError(t, g.ClearCell(0, 1, true))
	_, ok, _ = g.CellText(0, 1)
	assert.False(t, ok)
	assert.True(t, g.NeedsRender())
}

func TestRangeErrors(t *testing.T) {
	g := New(testConfig(), "a")
	_, err := g.CellWrapped(1, 0)
	assert.ErrorIs(t, err, ErrColumnRange)
	_, err = g.CellWrapped(0, 0)
	assert.ErrorIs(t, err, ErrRowRange)
	assert.ErrorIs(t, g.InsertRow(2), ErrRowRange)
	assert.ErrorIs(t, g.DeleteRow(0, false), ErrRowRange)
	assert.ErrorIs(t, g.InsertColumn(5, "x", 0), ErrColumnRange)
}

func TestInvalidArgumentsLeaveGridUntouched(t *testing.T) {
	g := New(testConfig(), "a")
	err := g.SetColumnJustification(0, attr.Justification(42), true)
	require.ErrorIs(t, err, ErrInvalidArgument)
	s, err := g.ColumnAttributes(0)
	require.NoError(t, err)
	assert.Nil(t, s, "no override was created")

	before, _ := g.NominalWidth(0)
	require.ErrorIs(t, g.SetColumnWidth(0, math.NaN(), false), ErrInvalidArgument)
	after, _ := g.NominalWidth(0)
	assert.Equal(t, before, after)

	assert.ErrorIs(t, wrap.ErrWidthTooSmall, ErrInvalidArgument, "one root for every rejected argument")
}

func TestDeleteColumnOnSingleColumnIsNoop(t *testing.T) {
	g := New(testConfig(), "only")
	addRows(t, g, "x")
	before, _ := g.NominalWidth(0)

	require.NoError(t, g.DeleteColumn(0, false, true))
	require.NoError(t, g.DeleteColumn(0, true, true))

	assert.Equal(t, 1, g.ColumnCount())
	after, _ := g.NominalWidth(0)
	assert.Equal(t, before, after)
	text, ok, err := g.CellText(0, 0)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "x", text)
}

func threeColumns(t *testing.T, cfg Config) *Grid {
	t.Helper()
	g := New(cfg, "a", "b", "c")
	for c, w := range []float64{4, 6, 10} {
		require.NoError(t, g.SetColumnWidth(c, w, false))
	}
	return g
}

func TestDeleteColumnGivesWidthToNeighbour(t *testing.T) {
	g := threeColumns(t, testConfig())
	addRows(t, g, "left")
	require.NoError(t, g.SetCellText(2, 0, "right", false))

	require.NoError(t, g.DeleteColumn(1, false, false))
	require.Equal(t, 2, g.ColumnCount())
	w0, _ := g.NominalWidth(0)
	w1, _ := g.NominalWidth(1)
	assert.Equal(t, 10.0, w0)
	assert.Equal(t, 10.0, w1)
	text, _, _ := g.CellText(1, 0)
	assert.Equal(t, "right", text, "cells move with their column")

	g = threeColumns(t, testConfig())
	require.NoError(t, g.DeleteColumn(0, false, false))
	w0, _ = g.NominalWidth(0)
	assert.Equal(t, 10.0, w0, "first column gives its width to the right")
	header, _ := g.ColumnHeader(0)
	assert.Equal(t, "b", header)
}

func TestDeleteColumnReproportions(t *testing.T) {
	g := threeColumns(t, testConfig())
	require.NoError(t, g.DeleteColumn(1, true, false))
	w0, _ := g.NominalWidth(0)
	w1, _ := g.NominalWidth(1)
	assert.InDelta(t, 20.0, w0+w1, 1e-9)
	assert.InDelta(t, 4.0/14.0, w0/(w0+w1), 1e-9)
}

func TestInsertColumnAddsCellToEveryRow(t *testing.T) {
	g := New(testConfig(), "a", "c")
	addRows(t, g, "a0", "a1")
	require.NoError(t, g.SetCellText(1, 1, "c1", false))

	require.NoError(t, g.InsertColumn(1, "b", 0))
	header, _ := g.ColumnHeader(1)
	assert.Equal(t, "b", header)
	_, ok, err := g.CellText(1, 1)
	require.NoError(t, err)
	assert.False(t, ok)
	text, _, _ := g.CellText(2, 1)
	assert.Equal(t, "c1", text)
}

func TestClearCellsKeepsStructure(t *testing.T) {
	g := New(testConfig(), "a", "b")
	addRows(t, g, "x", "y")
	require.NoError(t, g.SetCellValue(1, 0, "1", 1, false))
	g.ClearCells(true)

	assert.Equal(t, 2, g.RowCount())
	assert.Equal(t, 2, g.ColumnCount())
	_, ok, _ := g.CellText(0, 1)
	assert.False(t, ok)
	payload, err := g.CellPayload(1, 0)
	require.NoError(t, err)
	assert.Nil(t, payload)
}

func TestReinitialize(t *testing.T) {
	g := New(testConfig(), "a", "b")
	addRows(t, g, "x")
	require.NoError(t, g.SelectRow(0))
	require.NoError(t, g.Reinitialize("one", "two", "three"))

	assert.Equal(t, 0, g.RowCount())
	assert.Equal(t, 3, g.ColumnCount())
	_, ok := g.Selected()
	assert.False(t, ok)
}

func TestDeletedRowHandleIsRetired(t *testing.T) {
	g := New(testConfig(), "a")
	addRows(t, g, "x", "y", "z")
	h, err := g.RowHandle(2)
	require.NoError(t, err)
	require.NoError(t, g.DeleteRow(0, false))
	assert.Equal(t, 1, h.Number())

	dead, _ := g.RowHandle(0)
	require.NoError(t, g.DeleteRow(0, false))
	assert.Equal(t, -1, dead.Number())
	assert.Equal(t, 0, h.Number())
}

func TestSharedAttributeSetRecomputesRowHeight(t *testing.T) {
	g := New(fixedConfig(), "a", "b")
	g.SetViewport(20, 10)
	addRows(t, g, "x")
	shared := attr.New(nil)
	require.NoError(t, g.SetColumnAttributes(0, shared, false))
	require.NoError(t, g.SetColumnAttributes(1, shared, false))
	assert.Equal(t, 1, g.RowHeight())

	shared.SetFont(attr.FixedFont{Label: "tall", Width: 1, LineH: 2, Ascent: 1})
	assert.True(t, g.NeedsRender())
	assert.Equal(t, 2, g.RowHeight())
	top, bottom, err := g.RowBounds(0)
	require.NoError(t, err)
	assert.Equal(t, 0, top)
	assert.Equal(t, 2, bottom)

	require.NoError(t, g.SetColumnAttributes(0, nil, false))
	require.NoError(t, g.SetColumnAttributes(1, nil, false))
	shared.SetFont(attr.FixedFont{Label: "taller", Width: 1, LineH: 5})
	assert.Equal(t, 1, g.RowHeight(), "detached set no longer counts")
}

func TestColumnFontChangesWrapping(t *testing.T) {
	g := New(fixedConfig(), "h")
	g.SetViewport(8, 10)
	addRows(t, g, "abcdef")

	wrapped, _ := g.CellWrapped(0, 0)
	assert.Equal(t, "abcdef", wrapped)

	require.NoError(t, g.SetColumnFont(0, attr.FixedFont{Label: "wide", Width: 2, LineH: 1}, true))
	wrapped, _ = g.CellWrapped(0, 0)
	assert.Equal(t, "abc\ndef", wrapped)

	res, err := g.ResolvedAttributes(0, 0)
	require.NoError(t, err)
	assert.Equal(t, "wide", res.Font.Name())
	assert.Equal(t, attr.JustifyLeft, res.Justification)
}

func TestCellAttributesOverrideColumn(t *testing.T) {
	g := New(testConfig(), "h")
	addRows(t, g, "x")
	require.NoError(t, g.SetColumnJustification(0, attr.JustifyCenter, false))
	cell := attr.New(nil)
	require.NoError(t, cell.SetJustification(attr.JustifyRight))
	require.NoError(t, g.SetCellAttributes(0, 0, cell, false))

	res, err := g.ResolvedAttributes(0, 0)
	require.NoError(t, err)
	assert.Equal(t, attr.JustifyRight, res.Justification)

	require.NoError(t, g.SetCellAttributes(0, 0, nil, false))
	res, _ = g.ResolvedAttributes(0, 0)
	assert.Equal(t, attr.JustifyCenter, res.Justification)
}

func TestKeyedRowOpsRejectedOnPlainAPI(t *testing.T) {
	k := NewKeyed[string](testConfig(), nil, "a")
	_, err := k.AddRow()
	assert.ErrorIs(t, err, ErrKeyedRows)
	assert.ErrorIs(t, k.InsertRow(0), ErrKeyedRows)
	assert.ErrorIs(t, k.Grid.DeleteRow(0, false), ErrKeyedRows)
	assert.ErrorIs(t, k.Grid.ClearRows(false), ErrKeyedRows)
	assert.ErrorIs(t, k.Grid.Reinitialize("b"), ErrKeyedRows)
}
