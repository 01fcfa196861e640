// Package theme loads grid colour schemes from TOML files and derives them
// from chroma syntax-highlighting styles.
package theme

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/pelletier/go-toml/v2"

	"github.com/odvcencio/furry-grid/attr"
	"github.com/odvcencio/furry-grid/grid"
)

// ErrInvalidTheme marks a theme that names an unknown colour, justification
// or style.
var ErrInvalidTheme = errors.New("invalid theme")

// Colors is a foreground/background pair. Empty strings leave the colour
// unset. Colours are tcell names ("navy") or hex ("#1e1e2e").
type Colors struct {
	Foreground string `toml:"foreground"`
	Background string `toml:"background"`
}

// Section styles the table body or the header.
type Section struct {
	Colors
	Justification string `toml:"justification"`
}

// Column styles one column by index.
type Column struct {
	Index int `toml:"index"`
	Section
}

// Lines styles the rules between header, rows and columns. Nil
// thicknesses keep the grid's current values.
type Lines struct {
	HeaderColor string `toml:"header_color"`
	BodyColor   string `toml:"body_color"`
	Header      *int   `toml:"header"`
	Body        *int   `toml:"body"`
	Separator   *int   `toml:"separator"`
}

// Selection styles the selected row.
type Selection struct {
	Color string  `toml:"color"`
	Blend float64 `toml:"blend"`
}

// Theme is a grid colour scheme.
type Theme struct {
	Name      string    `toml:"name"`
	Table     Section   `toml:"table"`
	Header    Section   `toml:"header"`
	Lines     Lines     `toml:"lines"`
	Selection Selection `toml:"selection"`
	Columns   []Column  `toml:"columns"`
}

// Load decodes a theme. Unknown keys are rejected, as are colours and
// justifications that do not parse.
func Load(r io.Reader) (*Theme, error) {
	var t Theme
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&t); err != nil {
		return nil, fmt.Errorf("decode theme: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// LoadFile reads a theme file.
func LoadFile(path string) (*Theme, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Encode writes the theme as TOML.
func (t *Theme) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(t)
}

// Validate checks every colour and justification.
func (t *Theme) Validate() error {
	var errs []error
	color := func(field, s string) {
		if _, err := parseColor(s); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", field, err))
		}
	}
	just := func(field, s string) {
		if _, err := attr.ParseJustification(s); err != nil {
			errs = append(errs, fmt.Errorf("%s: %v: %w", field, err, ErrInvalidTheme))
		}
	}
	section := func(name string, s Section) {
		color(name+".foreground", s.Foreground)
		color(name+".background", s.Background)
		just(name+".justification", s.Justification)
	}
	section("table", t.Table)
	section("header", t.Header)
	for i, c := range t.Columns {
		section(fmt.Sprintf("columns[%d]", i), c.Section)
		if c.Index < 0 {
			errs = append(errs, fmt.Errorf("columns[%d].index %d: %w", i, c.Index, ErrInvalidTheme))
		}
	}
	color("lines.header_color", t.Lines.HeaderColor)
	color("lines.body_color", t.Lines.BodyColor)
	for name, v := range map[string]*int{"header": t.Lines.Header, "body": t.Lines.Body, "separator": t.Lines.Separator} {
		if v != nil && *v < 0 {
			errs = append(errs, fmt.Errorf("lines.%s %d: %w", name, *v, ErrInvalidTheme))
		}
	}
	color("selection.color", t.Selection.Color)
	if b := t.Selection.Blend; b < 0 || b > 1 {
		errs = append(errs, fmt.Errorf("selection.blend %v: %w", b, ErrInvalidTheme))
	}
	return errors.Join(errs...)
}

// Configure returns cfg with the theme's selection and line settings, for
// grids not yet created.
func (t *Theme) Configure(cfg grid.Config) grid.Config {
	if c, _ := parseColor(t.Selection.Color); c != tcell.ColorDefault {
		cfg.SelectionColor = c
	}
	if t.Selection.Blend > 0 {
		cfg.SelectionBlend = t.Selection.Blend
	}
	cfg.Lines = t.lines(cfg.Lines)
	return cfg
}

// Apply styles an existing grid. Columns the grid does not have are
// skipped.
func (t *Theme) Apply(g *grid.Grid) error {
	if err := t.Validate(); err != nil {
		return err
	}
	fg, bg := t.Table.colors()
	g.SetTableColors(fg, bg)
	if err := g.SetTableJustification(t.Table.justification()); err != nil {
		return err
	}
	fg, bg = t.Header.colors()
	g.SetHeaderColors(fg, bg)
	if err := g.SetHeaderJustification(t.Header.justification()); err != nil {
		return err
	}
	for _, c := range t.Columns {
		if c.Index >= g.ColumnCount() {
			continue
		}
		fg, bg := c.colors()
		if err := g.SetColumnForeground(c.Index, fg, false); err != nil {
			return err
		}
		if err := g.SetColumnBackground(c.Index, bg, false); err != nil {
			return err
		}
		if err := g.SetColumnJustification(c.Index, c.justification(), false); err != nil {
			return err
		}
	}
	g.SetLines(t.lines(g.Lines()), true)
	return nil
}

func (t *Theme) lines(ls grid.LineStyle) grid.LineStyle {
	if c, _ := parseColor(t.Lines.HeaderColor); c != tcell.ColorDefault {
		ls.HeaderColor = c
	}
	if c, _ := parseColor(t.Lines.BodyColor); c != tcell.ColorDefault {
		ls.BodyColor = c
	}
	if v := t.Lines.Header; v != nil {
		ls.Header = *v
	}
	if v := t.Lines.Body; v != nil {
		ls.Body = *v
	}
	if v := t.Lines.Separator; v != nil {
		ls.Separator = *v
	}
	return ls
}

func (c Colors) colors() (fg, bg tcell.Color) {
	fg, _ = parseColor(c.Foreground)
	bg, _ = parseColor(c.Background)
	return fg, bg
}

func (s Section) justification() attr.Justification {
	j, _ := attr.ParseJustification(s.Justification)
	return j
}

// parseColor maps "" to the unset colour.
func parseColor(s string) (tcell.Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return tcell.ColorDefault, nil
	}
	c := tcell.GetColor(strings.ToLower(s))
	if c == tcell.ColorDefault && !strings.EqualFold(s, "default") {
		return tcell.ColorDefault, fmt.Errorf("colour %q: %w", s, ErrInvalidTheme)
	}
	return c, nil
}
