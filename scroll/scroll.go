// Package scroll provides viewport and scrollbar primitives.
package scroll

import "fmt"

// ScrollPolicy configures when scrollbars appear.
type ScrollPolicy int

const (
	ScrollAuto ScrollPolicy = iota
	ScrollAlways
	ScrollNever
)

func (p ScrollPolicy) String() string {
	switch p {
	case ScrollAuto:
		return "auto"
	case ScrollAlways:
		return "always"
	case ScrollNever:
		return "never"
	}
	return fmt.Sprintf("ScrollPolicy(%d)", int(p))
}

// Orientation describes scrollbar orientation.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

// Controller provides scroll control for widgets.
type Controller interface {
	ScrollBy(dx, dy int)
	ScrollTo(x, y int)
	PageBy(pages int)
	ScrollToStart()
	ScrollToEnd()
}

// State is the scroll state of one axis.
type State int

const (
	// Fits means the content fits the view; the offset is pinned to 0.
	Fits State = iota
	// Scrolled means the content overflows and the offset ranges over
	// [0, content-view].
	Scrolled
)

func (s State) String() string {
	if s == Scrolled {
		return "scrolled"
	}
	return "fits"
}

// Axis tracks the offset of one scroll direction. Horizontal and vertical
// axes are independent instances. The zero value is an empty axis in the
// Fits state.
type Axis struct {
	content  int
	view     int
	offset   int
	state    State
	onChange func(offset int)
}

// SetOnChange sets a callback for offset updates.
func (a *Axis) SetOnChange(fn func(offset int)) {
	if a == nil {
		return
	}
	a.onChange = fn
}

// Resize updates the content and view extents. Content larger than the view
// moves the axis to Scrolled and clamps the offset; otherwise the axis moves
// to Fits and the offset returns to 0.
func (a *Axis) Resize(content, view int) {
	if a == nil {
		return
	}
	a.content = max(content, 0)
	a.view = max(view, 0)
	if a.content > a.view {
		a.state = Scrolled
	} else {
		a.state = Fits
	}
	a.SetOffset(a.offset)
}

// State returns the current state.
func (a *Axis) State() State {
	if a == nil {
		return Fits
	}
	return a.state
}

// Content returns the content extent.
func (a *Axis) Content() int {
	if a == nil {
		return 0
	}
	return a.content
}

// View returns the view extent.
func (a *Axis) View() int {
	if a == nil {
		return 0
	}
	return a.view
}

// Offset returns the current offset.
func (a *Axis) Offset() int {
	if a == nil {
		return 0
	}
	return a.offset
}

// MaxOffset returns the maximum scrollable offset.
func (a *Axis) MaxOffset() int {
	if a == nil || a.state == Fits {
		return 0
	}
	return max(a.content-a.view, 0)
}

// SetOffset sets the offset, clamped to [0, MaxOffset].
func (a *Axis) SetOffset(offset int) {
	if a == nil {
		return
	}
	next := min(max(offset, 0), a.MaxOffset())
	if next == a.offset {
		return
	}
	a.offset = next
	if a.onChange != nil {
		a.onChange(a.offset)
	}
}

// ScrollBy adjusts the offset.
func (a *Axis) ScrollBy(delta int) {
	if a == nil {
		return
	}
	a.SetOffset(a.offset + delta)
}

// PageBy scrolls by whole views.
func (a *Axis) PageBy(pages int) {
	if a == nil {
		return
	}
	a.ScrollBy(pages * max(a.view, 1))
}

// Reveal scrolls the least distance that brings [leading, trailing) into
// view. An item taller than the view is aligned to its leading edge.
func (a *Axis) Reveal(leading, trailing int) {
	if a == nil {
		return
	}
	switch {
	case leading < a.offset:
		a.SetOffset(leading)
	case trailing > a.offset+a.view:
		a.SetOffset(min(trailing-a.view, leading))
	}
}
