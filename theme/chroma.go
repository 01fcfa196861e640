package theme

import (
	"fmt"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
)

// FromChroma derives a theme from a chroma style: text and background
// colours for the body, keyword colour for the header, comment colour for
// the rules and the line highlight for the selection.
func FromChroma(name string) (*Theme, error) {
	style, ok := styles.Registry[name]
	if !ok {
		return nil, fmt.Errorf("chroma style %q: %w", name, ErrInvalidTheme)
	}
	bg := colour(style.Get(chroma.Background).Background)
	t := &Theme{
		Name: name,
		Table: Section{Colors: Colors{
			Foreground: colour(style.Get(chroma.Text).Colour),
			Background: bg,
		}},
		Header: Section{Colors: Colors{
			Foreground: colour(style.Get(chroma.Keyword).Colour),
			Background: bg,
		}},
		Lines: Lines{
			HeaderColor: colour(style.Get(chroma.Comment).Colour),
			BodyColor:   colour(style.Get(chroma.Comment).Colour),
		},
	}
	sel := style.Get(chroma.LineHighlight).Background
	if !sel.IsSet() {
		sel = style.Get(chroma.NameFunction).Colour
	}
	t.Selection = Selection{Color: colour(sel), Blend: 0.6}
	return t, nil
}

// Names lists the chroma styles FromChroma accepts.
func Names() []string {
	return styles.Names()
}

func colour(c chroma.Colour) string {
	if !c.IsSet() {
		return ""
	}
	return c.String()
}
