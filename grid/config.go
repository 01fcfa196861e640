package grid

import (
	"log/slog"

	"github.com/gdamore/tcell/v2"

	"github.com/odvcencio/furry-grid/attr"
	"github.com/odvcencio/furry-grid/scroll"
)

// LineStyle configures the rules drawn by the grid. Thickness is in layout
// units; zero draws nothing.
type LineStyle struct {
	HeaderColor tcell.Color
	BodyColor   tcell.Color
	// Header is the thickness of the rule under the header.
	Header int
	// Body is the thickness of the rule between two rows; it is the gap in
	// bottom(i) + gap == top(i+1).
	Body int
	// Separator is the thickness of the rule between two columns.
	Separator int
}

// Config configures a Grid.
type Config struct {
	// Font is the table font. Nil selects attr.CellFont.
	Font attr.Font
	// MinColumnWidth is the smallest nominal width a column can take.
	MinColumnWidth int
	// CellPadding is the horizontal space around cell text, split evenly
	// between both sides.
	CellPadding int
	// Lines configures header and body rules.
	Lines LineStyle
	// ScrollbarWidth is the thickness of either scrollbar.
	ScrollbarWidth int
	// HorizontalPolicy controls column scaling and the horizontal scrollbar.
	HorizontalPolicy scroll.ScrollPolicy
	// VerticalPolicy controls the vertical scrollbar.
	VerticalPolicy scroll.ScrollPolicy
	// VerticalFill pads the view with blank rows once real rows run out.
	VerticalFill bool
	// SelectionColor is blended into the background of the selected row.
	SelectionColor tcell.Color
	// SelectionBlend is how far the background moves toward SelectionColor.
	SelectionBlend float64
	Logger         *slog.Logger
}

// DefaultConfig returns the configuration used for terminal grids.
func DefaultConfig() Config {
	return Config{
		Font:           attr.CellFont{},
		MinColumnWidth: 3,
		CellPadding:    2,
		Lines: LineStyle{
			HeaderColor: tcell.ColorGray,
			BodyColor:   tcell.ColorGray,
			Header:      1,
			Separator:   1,
		},
		ScrollbarWidth: 1,
		SelectionColor: tcell.ColorNavy,
		SelectionBlend: 0.7,
	}
}

func (c Config) withDefaults() Config {
	if c.Font == nil {
		c.Font = attr.CellFont{}
	}
	if c.MinColumnWidth < 1 {
		c.MinColumnWidth = 1
	}
	c.CellPadding = max(c.CellPadding, 0)
	c.Lines.Header = max(c.Lines.Header, 0)
	c.Lines.Body = max(c.Lines.Body, 0)
	c.Lines.Separator = max(c.Lines.Separator, 0)
	if c.ScrollbarWidth < 1 {
		c.ScrollbarWidth = 1
	}
	if c.SelectionBlend <= 0 || c.SelectionBlend > 1 {
		c.SelectionBlend = 1
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}
