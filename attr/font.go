package attr

import (
	"github.com/mattn/go-runewidth"
	"golang.org/x/image/font"
)

// Font measures text. Units are whatever the host paints in: terminal cells
// for CellFont, pixels for FaceFont.
type Font interface {
	Name() string
	// Height is the line height.
	Height() int
	// Baseline is the distance from the top of a line to its baseline.
	Baseline() int
	// Advance is the horizontal advance of one grapheme cluster.
	Advance(grapheme string) int
}

// CellFont measures text in terminal cells.
type CellFont struct{}

func (CellFont) Name() string { return "cell" }
func (CellFont) Height() int { return 1 }
func (CellFont) Baseline() int { return 0 }

func (CellFont) Advance(grapheme string) int {
	return runewidth.StringWidth(grapheme)
}

// FixedFont gives every grapheme the same advance.
type FixedFont struct {
	Label  string
	Width  int
	LineH  int
	Ascent int
}

func (f FixedFont) Name() string {
	if f.Label == "" {
		return "fixed"
	}
	return f.Label
}

func (f FixedFont) Height() int { return f.LineH }
func (f FixedFont) Baseline() int { return f.Ascent }

func (f FixedFont) Advance(grapheme string) int {
	if grapheme == "" {
		return 0
	}
	return f.Width
}

// FaceFont adapts a font.Face to pixel metrics.
type FaceFont struct {
	label string
	face  font.Face
}

// NewFaceFont wraps face. A nil face measures everything as zero.
func NewFaceFont(label string, face font.Face) *FaceFont {
	return &FaceFont{label: label, face: face}
}

func (f *FaceFont) Name() string { return f.label }

func (f *FaceFont) Height() int {
	if f.face == nil {
		return 0
	}
	return f.face.Metrics().Height.Ceil()
}

func (f *FaceFont) Baseline() int {
	if f.face == nil {
		return 0
	}
	return f.face.Metrics().Ascent.Ceil()
}

func (f *FaceFont) Advance(grapheme string) int {
	if f.face == nil || grapheme == "" {
		return 0
	}
	return font.MeasureString(f.face, grapheme).Round()
}
