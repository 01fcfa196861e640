package widgets

import "github.com/odvcencio/furry-grid/runtime"

// StackChild is a widget in a Stack. A positive Height is fixed; children
// with Height 0 share the rows left over.
type StackChild struct {
	Widget runtime.Widget
	Height int
}

// Stack lays out children top to bottom.
type Stack struct {
	Base
	Gap      int
	Children []StackChild
	focus    int
}

// NewStack creates a stack.
func NewStack(children ...StackChild) *Stack {
	return &Stack{Children: children, focus: -1}
}

// Add appends a child.
func (s *Stack) Add(w runtime.Widget, height int) {
	if w == nil {
		return
	}
	s.Children = append(s.Children, StackChild{Widget: w, Height: max(height, 0)})
}

// Measure stacks the children's natural heights.
func (s *Stack) Measure(constraints runtime.Constraints) runtime.Size {
	width, height := 0, s.Gap*max(0, len(s.Children)-1)
	for _, child := range s.Children {
		size := child.Widget.Measure(runtime.Unbounded())
		width = max(width, size.Width)
		if child.Height > 0 {
			height += child.Height
		} else {
			height += size.Height
		}
	}
	return constraints.Constrain(runtime.Size{Width: width, Height: height})
}

// Layout positions children within the stack.
func (s *Stack) Layout(bounds runtime.Rect) {
	s.Base.Layout(bounds)
	fixed, flex := s.Gap*max(0, len(s.Children)-1), 0
	for _, child := range s.Children {
		if child.Height > 0 {
			fixed += child.Height
		} else {
			flex++
		}
	}
	share, extra := 0, 0
	if flex > 0 {
		rest := max(bounds.Height-fixed, 0)
		share, extra = rest/flex, rest%flex
	}
	y, bottom := bounds.Y, bounds.Y+bounds.Height
	for _, child := range s.Children {
		h := child.Height
		if h == 0 {
			h = share
			if extra > 0 {
				h++
				extra--
			}
		}
		h = max(min(h, bottom-y), 0)
		child.Widget.Layout(runtime.Rect{X: bounds.X, Y: y, Width: bounds.Width, Height: h})
		y += h + s.Gap
	}
}

// Render draws all children.
func (s *Stack) Render(ctx runtime.RenderContext) {
	for _, child := range s.Children {
		child.Widget.Render(ctx)
	}
	s.ClearInvalidation()
}

// NeedsRender reports whether any child needs a render pass.
func (s *Stack) NeedsRender() bool {
	if s.Base.NeedsRender() {
		return true
	}
	for _, child := range s.Children {
		if n, ok := child.Widget.(interface{ NeedsRender() bool }); ok && n.NeedsRender() {
			return true
		}
	}
	return false
}

// Focus gives focus to the first child that can take it.
func (s *Stack) Focus() {
	for i, child := range s.Children {
		if f, ok := child.Widget.(focusable); ok && f.CanFocus() {
			s.focus = i
			f.Focus()
			return
		}
	}
}

// HandleMessage sends keys to the focused child and everything else to each
// child until one handles it.
func (s *Stack) HandleMessage(msg runtime.Message) runtime.HandleResult {
	if _, ok := msg.(runtime.KeyMsg); ok {
		if s.focus < 0 || s.focus >= len(s.Children) {
			return runtime.Unhandled()
		}
		return s.Children[s.focus].Widget.HandleMessage(msg)
	}
	for _, child := range s.Children {
		if result := child.Widget.HandleMessage(msg); result.Handled {
			return result
		}
	}
	return runtime.Unhandled()
}

type focusable interface {
	CanFocus() bool
	Focus()
}
