package attr

import "github.com/gdamore/tcell/v2"

// Resolved is the effective attribute bundle for one cell.
type Resolved struct {
	Font          Font
	Foreground    tcell.Color
	Background    tcell.Color
	Justification Justification
}

// Height is the resolved font's line height, or 0.
func (r Resolved) Height() int {
	if r.Font == nil {
		return 0
	}
	return max(r.Font.Height(), 0)
}

// Advance measures one grapheme with the resolved font; 0 without a font.
func (r Resolved) Advance(grapheme string) int {
	if r.Font == nil {
		return 0
	}
	return r.Font.Advance(grapheme)
}

// Resolve applies the lookup chain cell, then column, then table. Each
// attribute is taken from the first level that sets it: a non-nil font, a
// non-zero color, a justification other than JustifyInherit. A justification
// left unset at every level resolves to JustifyLeft. Any level may be nil.
//
// The result is not cached; callers resolve again whenever they paint.
func Resolve(cell, column, table *Set) Resolved {
	levels := [3]*Set{cell, column, table}
	var r Resolved
	for _, s := range levels {
		if s == nil {
			continue
		}
		s.mu.Lock()
		if r.Font == nil {
			r.Font = s.font
		}
		if r.Foreground == tcell.ColorDefault {
			r.Foreground = s.fg
		}
		if r.Background == tcell.ColorDefault {
			r.Background = s.bg
		}
		if r.Justification == JustifyInherit {
			r.Justification = s.just
		}
		s.mu.Unlock()
	}
	if r.Justification == JustifyInherit {
		r.Justification = JustifyLeft
	}
	return r
}

// Style converts the resolved colors to a terminal style based on base.
func (r Resolved) Style(base tcell.Style) tcell.Style {
	if r.Foreground != tcell.ColorDefault {
		base = base.Foreground(r.Foreground)
	}
	if r.Background != tcell.ColorDefault {
		base = base.Background(r.Background)
	}
	return base
}
