package widgets

import (
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/furry-grid/attr"
	"github.com/odvcencio/furry-grid/grid"
	"github.com/odvcencio/furry-grid/runtime"
)

var viewBounds = runtime.Rect{X: 2, Y: 1, Width: 20, Height: 6}

func newView(t *testing.T, rows ...string) (*GridView, *grid.Grid) {
	t.Helper()
	cfg := grid.DefaultConfig()
	cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	g := grid.New(cfg, "Name", "Qty")
	for i, text := range rows {
		_, err := g.AddRow()
		require.NoError(t, err)
		require.NoError(t, g.SetCellText(0, i, text, false))
	}
	v := NewGridView(g)
	v.Layout(viewBounds)
	return v, g
}

func press(x, y, clicks int) runtime.MouseMsg {
	return runtime.MouseMsg{X: x, Y: y, Button: runtime.MouseLeft, Action: runtime.MousePress, Clicks: clicks}
}

func key(k tcell.Key) runtime.KeyMsg {
	return runtime.KeyMsg{Key: k}
}

func TestGridViewLayoutSetsViewport(t *testing.T) {
	v, g := newView(t)
	w, h := g.Viewport()
	assert.Equal(t, 20, w)
	assert.Equal(t, 6, h)
	assert.True(t, v.NeedsRender())

	buf := runtime.NewBuffer(30, 10)
	v.Render(runtime.RenderContext{Buffer: buf, Bounds: viewBounds})
	assert.Equal(t, 'N', buf.Get(3, 1).Rune)
	assert.Equal(t, ' ', buf.Get(0, 0).Rune)
	assert.False(t, v.NeedsRender())
}

func TestGridViewClickSelectsAndDoubleClickActivates(t *testing.T) {
	v, g := newView(t, "a", "b")

	res := v.HandleMessage(press(5, 4, 1))
	assert.True(t, res.Handled)
	sel, ok := g.Selected()
	require.True(t, ok)
	assert.Equal(t, 1, sel)

	v.HandleMessage(press(5, 4, 1))
	_, ok = g.Selected()
	assert.False(t, ok, "a second click deselects")

	v.HandleMessage(press(5, 3, 1))
	res = v.HandleMessage(press(5, 3, 2))
	require.True(t, res.Handled)
	assert.Equal(t, []runtime.Command{runtime.RowActivated{Row: 0}}, res.Commands)

	res = v.HandleMessage(press(5, 4, 2))
	require.True(t, res.Handled)
	assert.Empty(t, res.Commands, "a double click on an unselected row only selects it")
	sel, _ = g.Selected()
	assert.Equal(t, 1, sel)

	require.True(t, v.HandleMessage(press(5, 6, 1)).Handled)
	_, ok = g.Selected()
	assert.False(t, ok, "a click below the last row deselects")

	res = v.HandleMessage(press(0, 0, 1))
	assert.False(t, res.Handled, "outside the view")
}

func TestGridViewHeaderClickSorts(t *testing.T) {
	v, g := newView(t, "b", "a")
	require.True(t, v.HandleMessage(press(5, 1, 1)).Handled)
	col, asc, ok := g.SortState()
	require.True(t, ok)
	assert.Equal(t, 0, col)
	assert.True(t, asc)
	text, _, _ := g.CellText(0, 0)
	assert.Equal(t, "a", text)

	v.HandleMessage(press(5, 1, 1))
	_, asc, _ = g.SortState()
	assert.False(t, asc)
}

func TestGridViewDragsColumnBoundary(t *testing.T) {
	v, g := newView(t)
	w0, _ := g.ColumnWidth(0)
	require.Equal(t, 10, w0)

	require.True(t, v.HandleMessage(press(12, 1, 1)).Handled)
	col, dragging := g.Dragging()
	require.True(t, dragging)
	assert.Equal(t, 0, col)

	v.HandleMessage(runtime.MouseMsg{X: 14, Y: 1, Button: runtime.MouseLeft, Action: runtime.MouseMove})
	v.HandleMessage(runtime.MouseMsg{X: 14, Y: 1, Button: runtime.MouseLeft, Action: runtime.MouseRelease})
	_, dragging = g.Dragging()
	assert.False(t, dragging)
	w0, _ = g.ColumnWidth(0)
	assert.Equal(t, 12, w0)
}

func TestGridViewRightClickRequestsMenu(t *testing.T) {
	v, g := newView(t, "a", "b")
	res := v.HandleMessage(runtime.MouseMsg{X: 15, Y: 4, Button: runtime.MouseRight, Action: runtime.MousePress})
	assert.Equal(t, []runtime.Command{runtime.MenuRequested{Col: 1, Row: 1, X: 15, Y: 4}}, res.Commands)
	sel, ok := g.Selected()
	require.True(t, ok)
	assert.Equal(t, 1, sel)

	v.HandleMessage(runtime.MouseMsg{X: 15, Y: 4, Button: runtime.MouseRight, Action: runtime.MousePress})
	sel, ok = g.Selected()
	require.True(t, ok, "a right click keeps the selection")
	assert.Equal(t, 1, sel)

	res = v.HandleMessage(runtime.MouseMsg{X: 4, Y: 1, Button: runtime.MouseRight, Action: runtime.MousePress})
	assert.Equal(t, []runtime.Command{runtime.MenuRequested{
		Col: 0, Row: -1, X: 4, Y: 1,
		Actions: grid.ColumnMenuActions(),
	}}, res.Commands)
}

func TestGridViewKeyboardNavigation(t *testing.T) {
	rows := make([]string, 10)
	for i := range rows {
		rows[i] = fmt.Sprint(i)
	}
	v, g := newView(t, rows...)
	assert.False(t, v.HandleMessage(key(tcell.KeyDown)).Handled, "not focused")

	v.Focus()
	selected := func() int {
		t.Helper()
		sel, ok := g.Selected()
		require.True(t, ok)
		return sel
	}
	v.HandleMessage(key(tcell.KeyDown))
	assert.Equal(t, 0, selected())
	v.HandleMessage(key(tcell.KeyDown))
	assert.Equal(t, 1, selected())
	v.HandleMessage(key(tcell.KeyEnd))
	assert.Equal(t, 9, selected())
	assert.True(t, g.VisibleRows().Contains(9), "selection is scrolled into view")
	v.HandleMessage(key(tcell.KeyPgUp))
	assert.Equal(t, 6, selected())
	v.HandleMessage(key(tcell.KeyHome))
	assert.Equal(t, 0, selected())
	v.HandleMessage(key(tcell.KeyUp))
	assert.Equal(t, 0, selected())

	res := v.HandleMessage(key(tcell.KeyEnter))
	assert.Equal(t, []runtime.Command{runtime.RowActivated{Row: 0}}, res.Commands)

	v.HandleMessage(key(tcell.KeyEsc))
	_, ok := g.Selected()
	assert.False(t, ok)
	assert.False(t, v.HandleMessage(key(tcell.KeyEnter)).Handled)
}

func TestGridViewWheelScrolls(t *testing.T) {
	rows := make([]string, 20)
	v, g := newView(t, rows...)
	v.HandleMessage(runtime.MouseMsg{X: 5, Y: 3, Button: runtime.MouseWheelDown, Action: runtime.MousePress})
	_, y := g.ScrollOffset()
	assert.Equal(t, WheelStep, y)
	v.HandleMessage(runtime.MouseMsg{X: 5, Y: 3, Button: runtime.MouseWheelUp, Action: runtime.MousePress})
	_, y = g.ScrollOffset()
	assert.Equal(t, 0, y)
}

func TestGridViewScrollbarPages(t *testing.T) {
	rows := make([]string, 20)
	v, g := newView(t, rows...)
	hs, vs := g.ScrollbarsVisible()
	require.False(t, hs)
	require.True(t, vs)

	// The thumb sits at the top of the track; a click below it pages down.
	require.True(t, v.HandleMessage(press(21, 6, 1)).Handled)
	_, y := g.ScrollOffset()
	assert.Equal(t, 4, y)
}

func TestStackSharesHeight(t *testing.T) {
	title := NewLabel("title")
	v, g := newView(t, "a")
	status := NewLabel("status")
	s := NewStack()
	s.Add(title, 1)
	s.Add(v, 0)
	s.Add(status, 1)
	s.Layout(runtime.Rect{Width: 30, Height: 12})

	assert.Equal(t, runtime.Rect{Y: 0, Width: 30, Height: 1}, title.Bounds())
	assert.Equal(t, runtime.Rect{Y: 1, Width: 30, Height: 10}, v.Bounds())
	assert.Equal(t, runtime.Rect{Y: 11, Width: 30, Height: 1}, status.Bounds())
	w, h := g.Viewport()
	assert.Equal(t, 30, w)
	assert.Equal(t, 10, h)

	s.Focus()
	assert.True(t, v.IsFocused())
	assert.True(t, s.HandleMessage(key(tcell.KeyDown)).Handled)
	sel, ok := g.Selected()
	assert.True(t, ok)
	assert.Equal(t, 0, sel)

	buf := runtime.NewBuffer(30, 12)
	s.Render(runtime.RenderContext{Buffer: buf, Bounds: s.Bounds()})
	assert.Equal(t, 't', buf.Get(0, 0).Rune)
	assert.Equal(t, 's', buf.Get(0, 11).Rune)
	assert.False(t, s.NeedsRender())
}

func TestLabelAlignment(t *testing.T) {
	l := NewLabel("ab")
	l.Layout(runtime.Rect{Width: 6, Height: 1})
	buf := runtime.NewBuffer(6, 1)

	l.SetJustification(attr.JustifyRight)
	l.Render(runtime.RenderContext{Buffer: buf})
	assert.Equal(t, 'a', buf.Get(4, 0).Rune)

	l.SetText("abcdefgh")
	l.Render(runtime.RenderContext{Buffer: buf})
	assert.Equal(t, '…', buf.Get(5, 0).Rune)
	assert.Equal(t, runtime.Size{Width: 8, Height: 1}, l.Measure(runtime.Unbounded()))
}
