package widgets

import (
	"log/slog"

	"github.com/gdamore/tcell/v2"

	"github.com/odvcencio/furry-grid/grid"
	"github.com/odvcencio/furry-grid/runtime"
	"github.com/odvcencio/furry-grid/scroll"
)

// WheelStep is the number of layout units one wheel notch scrolls.
const WheelStep = 3

// GridView hosts a grid in a widget tree. It sizes the grid's viewport to
// its bounds, paints it, and turns mouse and keyboard input into the grid's
// selection, sort, scroll and column drag operations.
//
// A double click or Enter on a row emits runtime.RowActivated; a right click
// emits runtime.MenuRequested so the host can show a menu and report the
// chosen action with PerformRowMenu or PerformColumnMenu.
type GridView struct {
	FocusableBase
	grid  *grid.Grid
	log   *slog.Logger
	drag  bool
	dragX int
}

// NewGridView creates a view of g.
func NewGridView(g *grid.Grid) *GridView {
	return &GridView{grid: g, log: g.Config().Logger}
}

// Grid returns the hosted grid.
func (v *GridView) Grid() *grid.Grid {
	return v.grid
}

// Measure asks for the grid's content size plus header and scrollbar.
func (v *GridView) Measure(constraints runtime.Constraints) runtime.Size {
	content := v.grid.ContentSize()
	cfg := v.grid.Config()
	return constraints.Constrain(runtime.Size{
		Width:  content.Width + cfg.ScrollbarWidth,
		Height: content.Height + v.grid.HeaderHeight(),
	})
}

// Layout sizes the grid's viewport to bounds.
func (v *GridView) Layout(bounds runtime.Rect) {
	v.Base.Layout(bounds)
	v.grid.SetViewport(bounds.Width, bounds.Height)
}

// Render paints the grid.
func (v *GridView) Render(ctx runtime.RenderContext) {
	if ctx.Buffer == nil || v.bounds.Empty() {
		return
	}
	v.grid.Draw(ctx.Buffer, v.bounds)
	v.ClearInvalidation()
}

// NeedsRender reports whether the view or the grid changed.
func (v *GridView) NeedsRender() bool {
	return v.Base.NeedsRender() || v.grid.NeedsRender()
}

// HandleMessage handles mouse input inside the view and keys while focused.
func (v *GridView) HandleMessage(msg runtime.Message) runtime.HandleResult {
	switch m := msg.(type) {
	case runtime.MouseMsg:
		return v.handleMouse(m)
	case runtime.KeyMsg:
		if !v.focused {
			return runtime.Unhandled()
		}
		return v.handleKey(m)
	}
	return runtime.Unhandled()
}

func (v *GridView) handleMouse(m runtime.MouseMsg) runtime.HandleResult {
	x, y := m.X-v.bounds.X, m.Y-v.bounds.Y
	if v.drag {
		switch m.Action {
		case runtime.MouseMove:
			if err := v.grid.DragColumn(x - v.dragX); err != nil {
				v.log.Warn("grid view: drag", "err", err)
			}
		case runtime.MouseRelease:
			v.drag = false
			if err := v.grid.EndColumnDrag(); err != nil {
				v.log.Warn("grid view: end drag", "err", err)
			}
		}
		return runtime.Handled()
	}
	if !v.bounds.Contains(m.X, m.Y) {
		return runtime.Unhandled()
	}

	switch m.Button {
	case runtime.MouseWheelUp, runtime.MouseWheelDown:
		step := WheelStep
		if m.Button == runtime.MouseWheelUp {
			step = -step
		}
		if m.Shift {
			v.grid.ScrollBy(step, 0)
		} else {
			v.grid.ScrollBy(0, step)
		}
		return runtime.Handled()
	case runtime.MouseLeft:
		if m.Action != runtime.MousePress {
			return runtime.Unhandled()
		}
		return v.press(x, y, m.Clicks)
	case runtime.MouseRight:
		if m.Action != runtime.MousePress {
			return runtime.Unhandled()
		}
		hit := v.grid.HitTest(x, y)
		switch hit.Area {
		case grid.HitCell:
			if err := v.grid.RightClickInCell(hit.Col, hit.Row); err != nil {
				v.log.Warn("grid view: click", "err", err)
			}
			return runtime.WithCommand(runtime.MenuRequested{Col: hit.Col, Row: hit.Row, X: m.X, Y: m.Y})
		case grid.HitHeader, grid.HitBoundary:
			return runtime.WithCommand(runtime.MenuRequested{
				Col: hit.Col, Row: -1, X: m.X, Y: m.Y,
				Actions: grid.ColumnMenuActions(),
			})
		}
	}
	return runtime.Unhandled()
}

func (v *GridView) press(x, y, clicks int) runtime.HandleResult {
	hit := v.grid.HitTest(x, y)
	switch hit.Area {
	case grid.HitBoundary:
		if err := v.grid.BeginColumnDrag(hit.Col); err != nil {
			v.log.Warn("grid view: begin drag", "column", hit.Col, "err", err)
			return runtime.Unhandled()
		}
		v.drag, v.dragX = true, x
	case grid.HitHeader:
		if err := v.grid.ClickHeader(hit.Col); err != nil {
			v.log.Warn("grid view: header", "err", err)
		}
	case grid.HitCell:
		if clicks >= 2 {
			sel, ok := v.grid.Selected()
			if err := v.grid.DoubleClickInCell(hit.Col, hit.Row); err != nil {
				v.log.Warn("grid view: double click", "err", err)
				return runtime.Unhandled()
			}
			if ok && sel == hit.Row {
				return runtime.WithCommand(runtime.RowActivated{Row: hit.Row})
			}
			return runtime.Handled()
		}
		if err := v.grid.ClickInCell(hit.Col, hit.Row); err != nil {
			v.log.Warn("grid view: click", "err", err)
		}
	case grid.HitFill:
		v.grid.ClearSelection()
	case grid.HitNone:
		// Between or below the rows.
		if hit.Col < 0 || y < v.grid.BodyRect().Y {
			return runtime.Unhandled()
		}
		v.grid.ClearSelection()
	case grid.HitVerticalScrollbar:
		v.pageToward(y-v.grid.BodyRect().Y, true)
	case grid.HitHorizontalScrollbar:
		v.pageToward(x, false)
	default:
		return runtime.Unhandled()
	}
	return runtime.Handled()
}

// pageToward scrolls one page toward pos on a scrollbar track.
func (v *GridView) pageToward(pos int, vertical bool) {
	body := v.grid.BodyRect()
	content := v.grid.ContentSize()
	ox, oy := v.grid.ScrollOffset()
	c, view, off := content.Width, body.Width, ox
	if vertical {
		c, view, off = content.Height, body.Height, oy
	}
	start, size := scroll.Thumb(c, view, off, view, 1)
	step := 0
	switch {
	case pos < start:
		step = -view
	case pos >= start+size:
		step = view
	}
	if vertical {
		v.grid.ScrollBy(0, step)
	} else {
		v.grid.ScrollBy(step, 0)
	}
}

func (v *GridView) handleKey(k runtime.KeyMsg) runtime.HandleResult {
	rows := v.grid.RowCount()
	sel, ok := v.grid.Selected()
	page := max(v.grid.VisibleRows().Len()-1, 1)
	target := -1
	switch k.Key {
	case tcell.KeyUp:
		target = sel - 1
		if !ok {
			target = rows - 1
		}
	case tcell.KeyDown:
		target = sel + 1
	case tcell.KeyPgUp:
		target = sel - page
	case tcell.KeyPgDn:
		target = sel + page
	case tcell.KeyHome:
		target = 0
	case tcell.KeyEnd:
		target = rows - 1
	case tcell.KeyLeft:
		v.grid.ScrollBy(-1, 0)
		return runtime.Handled()
	case tcell.KeyRight:
		v.grid.ScrollBy(1, 0)
		return runtime.Handled()
	case tcell.KeyEsc:
		v.grid.ClearSelection()
		return runtime.Handled()
	case tcell.KeyEnter:
		if !ok {
			return runtime.Unhandled()
		}
		if err := v.grid.DoubleClickInCell(0, sel); err != nil {
			v.log.Warn("grid view: activate", "err", err)
			return runtime.Unhandled()
		}
		return runtime.WithCommand(runtime.RowActivated{Row: sel})
	default:
		return runtime.Unhandled()
	}
	if rows == 0 {
		return runtime.Handled()
	}
	target = min(max(target, 0), rows-1)
	if err := v.grid.SelectRow(target); err != nil {
		v.log.Warn("grid view: select", "row", target, "err", err)
		return runtime.Handled()
	}
	if err := v.grid.ScrollToRow(target); err != nil {
		v.log.Warn("grid view: reveal", "row", target, "err", err)
	}
	return runtime.Handled()
}

// ScrollBy scrolls the grid.
func (v *GridView) ScrollBy(dx, dy int) { v.grid.ScrollBy(dx, dy) }

// ScrollTo scrolls the grid to an offset.
func (v *GridView) ScrollTo(x, y int) { v.grid.ScrollTo(x, y) }

// PageBy scrolls the grid by pages.
func (v *GridView) PageBy(pages int) { v.grid.PageBy(pages) }

// ScrollToStart scrolls to the first row.
func (v *GridView) ScrollToStart() { v.grid.ScrollToStart() }

// ScrollToEnd scrolls to the last row.
func (v *GridView) ScrollToEnd() { v.grid.ScrollToEnd() }

var (
	_ runtime.Widget    = (*GridView)(nil)
	_ scroll.Controller = (*GridView)(nil)
)
