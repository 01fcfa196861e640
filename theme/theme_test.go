package theme

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/furry-grid/attr"
	"github.com/odvcencio/furry-grid/grid"
)

const dusk = `
name = "dusk"

[table]
foreground = "#c0c0c0"
background = "#1e1e2e"

[header]
foreground = "yellow"
justification = "center"

[lines]
header_color = "teal"
body = 1

[selection]
color = "#44475a"
blend = 0.5

[[columns]]
index = 1
justification = "right"
foreground = "green"

[[columns]]
index = 7
foreground = "red"
`

func newGrid() *grid.Grid {
	cfg := grid.DefaultConfig()
	cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return grid.New(cfg, "name", "size")
}

func TestLoadAndApply(t *testing.T) {
	th, err := Load(strings.NewReader(dusk))
	require.NoError(t, err)
	assert.Equal(t, "dusk", th.Name)
	require.Len(t, th.Columns, 2)

	g := newGrid()
	require.NoError(t, th.Apply(g))

	table := g.TableAttributes()
	assert.Equal(t, tcell.NewHexColor(0xc0c0c0), table.Foreground())
	assert.Equal(t, tcell.NewHexColor(0x1e1e2e), table.Background())
	header := g.HeaderAttributes()
	assert.Equal(t, tcell.ColorYellow, header.Foreground())
	assert.Equal(t, attr.JustifyCenter, header.Justification())

	col, err := g.ColumnAttributes(1)
	require.NoError(t, err)
	assert.Equal(t, attr.JustifyRight, col.Justification())
	assert.Equal(t, tcell.ColorGreen, col.Foreground())

	lines := g.Lines()
	assert.Equal(t, tcell.ColorTeal, lines.HeaderColor)
	assert.Equal(t, 1, lines.Body)
	assert.Equal(t, 1, lines.Separator, "unset thickness is kept")
}

func TestConfigure(t *testing.T) {
	th, err := Load(strings.NewReader(dusk))
	require.NoError(t, err)
	cfg := th.Configure(grid.DefaultConfig())
	assert.Equal(t, tcell.NewHexColor(0x44475a), cfg.SelectionColor)
	assert.Equal(t, 0.5, cfg.SelectionBlend)
	assert.Equal(t, 1, cfg.Lines.Body)
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "unknown key", doc: "colour = \"red\"\n"},
		{name: "bad colour", doc: "[table]\nforeground = \"not-a-colour\"\n"},
		{name: "bad justification", doc: "[header]\njustification = \"sideways\"\n"},
		{name: "negative line", doc: "[lines]\nseparator = -1\n"},
		{name: "blend out of range", doc: "[selection]\nblend = 2.0\n"},
		{name: "negative column", doc: "[[columns]]\nindex = -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.doc))
			assert.Error(t, err)
		})
	}

	_, err := Load(strings.NewReader("[table]\nforeground = \"nope\"\n"))
	assert.ErrorIs(t, err, ErrInvalidTheme)
}

func TestFromChroma(t *testing.T) {
	th, err := FromChroma("monokai")
	require.NoError(t, err)
	require.NoError(t, th.Validate())
	assert.NotEmpty(t, th.Table.Background)
	assert.NotEmpty(t, th.Header.Foreground)
	assert.NotEmpty(t, th.Selection.Color)
	assert.Contains(t, Names(), "monokai")

	g := newGrid()
	require.NoError(t, th.Apply(g))
	assert.NotEqual(t, tcell.ColorDefault, g.TableAttributes().Background())

	_, err = FromChroma("no-such-style")
	assert.ErrorIs(t, err, ErrInvalidTheme)
}
