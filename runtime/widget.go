package runtime

// Widget is a node that can be measured, laid out, painted and fed input.
type Widget interface {
	Measure(constraints Constraints) Size
	Layout(bounds Rect)
	Render(ctx RenderContext)
	HandleMessage(msg Message) HandleResult
}

// HandleResult reports whether a widget consumed a message and the
// commands it emitted.
type HandleResult struct {
	Handled  bool
	Commands []Command
}

// Handled returns a result for a consumed message.
func Handled() HandleResult {
	return HandleResult{Handled: true}
}

// WithCommand returns a handled result carrying commands.
func WithCommand(cmds ...Command) HandleResult {
	return HandleResult{Handled: true, Commands: cmds}
}

// Unhandled returns a result for a message the widget ignored.
func Unhandled() HandleResult {
	return HandleResult{}
}

// RenderContext provides context to widgets during rendering.
type RenderContext struct {
	Buffer  *Buffer
	Focused bool // Is the containing layer focused?
	Bounds  Rect // Widget's allocated bounds
}

// Sub creates a new context for a child widget with adjusted bounds.
func (ctx RenderContext) Sub(bounds Rect) RenderContext {
	return RenderContext{
		Buffer:  ctx.Buffer,
		Focused: ctx.Focused,
		Bounds:  bounds,
	}
}
