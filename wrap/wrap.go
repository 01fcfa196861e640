// Package wrap breaks text into lines no wider than a target width.
//
// Widths are measured per grapheme cluster with a caller-supplied advance
// function, so the same engine serves terminal cells and pixel fonts.
package wrap

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// MinWidth is the smallest accepted target width.
const MinWidth = 1

var (
	// ErrInvalidArgument is the class of rejected inputs. attr and grid
	// export the same value.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrWidthTooSmall is returned for a target below MinWidth.
	ErrWidthTooSmall = fmt.Errorf("wrap width below %d: %w", MinWidth, ErrInvalidArgument)
)

// AdvanceFunc returns the advance of one grapheme cluster.
type AdvanceFunc func(grapheme string) int

// Result is a wrapped text.
type Result struct {
	// Text is the input with line breaks inserted.
	Text string
	// Lines counts explicit and inserted lines; never less than 1.
	Lines int
	// Width is the widest produced line.
	Width int
}

type class uint8

const (
	classText class = iota
	classSpace
	classBreakAfter
	classNewline
)

type glyph struct {
	text  string
	width int
	class class
}

// Wrap breaks text greedily so that no line exceeds width. Explicit line
// breaks are kept. On overflow the line is broken at the nearest preceding
// boundary of the same line: whitespace is consumed by the break, while
// punctuation such as '-' or '/' stays at the end of the line. A run with no
// boundary is broken at the overflowing grapheme. Every line holds at least
// one grapheme, so a single grapheme wider than width gets a line of its own.
func Wrap(text string, width int, advance AdvanceFunc) (Result, error) {
	if width < MinWidth {
		return Result{}, fmt.Errorf("width %d: %w", width, ErrWidthTooSmall)
	}
	glyphs := segment(text, advance)
	res := Result{Lines: 1}
	var out strings.Builder
	lineStart, acc := 0, 0
	out.Grow(len(text) + len(text)/8)

	emit := func(line []glyph) {
		w := 0
		for _, g := range line {
			out.WriteString(g.text)
			w += g.width
		}
		res.Width = max(res.Width, w)
	}

	for i := 0; i < len(glyphs); {
		g := glyphs[i]
		if g.class == classNewline {
			emit(glyphs[lineStart:i])
			out.WriteString(g.text)
			res.Lines++
			i++
			lineStart, acc = i, 0
			continue
		}
		if i == lineStart || acc+g.width <= width {
			acc += g.width
			i++
			continue
		}

		// Overflow at i: look back for a boundary inside this line.
		next, end := i, i
		for j := i; j >= lineStart; j-- {
			if glyphs[j].class == classSpace && j > lineStart {
				end, next = j, j+1
				break
			}
			if glyphs[j].class == classBreakAfter && j < i {
				end, next = j+1, j+1
				break
			}
		}
		emit(glyphs[lineStart:end])
		out.WriteByte('\n')
		res.Lines++
		lineStart = next
		i = max(i, lineStart)
		acc = 0
		for _, c := range glyphs[lineStart:i] {
			acc += c.width
		}
	}
	emit(glyphs[lineStart:])
	res.Text = out.String()
	return res, nil
}

// NaturalWidth is the width of the widest explicit line of text.
func NaturalWidth(text string, advance AdvanceFunc) int {
	widest, acc := 0, 0
	for _, g := range segment(text, advance) {
		if g.class == classNewline {
			widest = max(widest, acc)
			acc = 0
			continue
		}
		acc += g.width
	}
	return max(widest, acc)
}

// ExplicitLines counts the lines text has before any wrapping.
func ExplicitLines(text string) int {
	lines := 1
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			lines++
		case '\r':
			lines++
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
		}
	}
	return lines
}

func segment(text string, advance AdvanceFunc) []glyph {
	if text == "" {
		return nil
	}
	glyphs := make([]glyph, 0, utf8.RuneCountInString(text))
	state := -1
	rest := text
	for rest != "" {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		g := glyph{text: cluster, class: classify(cluster)}
		if g.class != classNewline && advance != nil {
			g.width = max(advance(cluster), 0)
		}
		glyphs = append(glyphs, g)
	}
	return glyphs
}

func classify(cluster string) class {
	switch cluster {
	case "\n", "\r", "\r\n":
		return classNewline
	}
	r, _ := utf8.DecodeRuneInString(cluster)
	switch {
	case unicode.IsSpace(r) && !isNoBreak(r):
		return classSpace
	case strings.ContainsRune(breakAfter, r):
		return classBreakAfter
	}
	return classText
}

func isNoBreak(r rune) bool {
	return r == '\u00a0' || r == '\u2007' || r == '\u202f'
}

// breakAfter lists the punctuation a line may end on.
const breakAfter = `-/\,;:!?`
