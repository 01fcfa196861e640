package wrap

// Text keeps an original string together with its wrapped form and decides
// when a new target width actually requires wrapping again. The zero value
// is a null text that wraps to one empty line.
type Text struct {
	original string
	present  bool

	wrapped  string
	lines    int
	widest   int
	natural  int
	explicit int
	target   int
	stale    bool
}

// Set replaces the original text.
func (t *Text) Set(s string) {
	t.original = s
	t.present = true
	t.stale = true
}

// Clear makes the text null.
func (t *Text) Clear() {
	*t = Text{stale: true}
}

// Invalidate forces the next Rewrap to measure again, for example after the
// font changed.
func (t *Text) Invalidate() {
	t.stale = true
}

// Original returns the original text and whether one was set.
func (t *Text) Original() (string, bool) {
	return t.original, t.present
}

// Wrapped returns the wrapped text.
func (t *Text) Wrapped() string {
	return t.wrapped
}

// Lines returns the wrapped line count, at least 1.
func (t *Text) Lines() int {
	return max(t.lines, 1)
}

// NaturalWidth is the widest explicit line as of the last measurement.
func (t *Text) NaturalWidth() int {
	return t.natural
}

// Target is the width the text was last wrapped to, or 0.
func (t *Text) Target() int {
	return t.target
}

// Rewrap wraps the text to width and reports whether the wrapped text or
// line count changed. Two requests are answered without wrapping again:
// content that is not wrapped and fits at its natural width, and a narrower
// width that every current line still fits in, since neither can move a
// break.
func (t *Text) Rewrap(width int, advance AdvanceFunc) (bool, error) {
	if width < MinWidth {
		return false, ErrWidthTooSmall
	}
	if !t.stale {
		switch {
		case width == t.target:
			return false, nil
		case t.lines == t.explicit && t.natural <= width:
			t.target = width
			return false, nil
		case width < t.target && t.widest <= width:
			t.target = width
			return false, nil
		}
	}
	res, err := Wrap(t.original, width, advance)
	if err != nil {
		return false, err
	}
	changed := res.Text != t.wrapped || res.Lines != t.lines
	t.wrapped = res.Text
	t.lines = res.Lines
	t.widest = res.Width
	t.natural = NaturalWidth(t.original, advance)
	t.explicit = ExplicitLines(t.original)
	t.target = width
	t.stale = false
	return changed, nil
}
