// Package attr holds the visual attributes shared by grid cells, columns and
// tables, and the chain that resolves them for a single cell.
package attr

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/odvcencio/furry-grid/wrap"
)

// ErrInvalidArgument is returned for out-of-range attribute values. It is
// wrap.ErrInvalidArgument, the root of every rejected-argument error.
var ErrInvalidArgument = wrap.ErrInvalidArgument

// Justification aligns text within a cell.
type Justification int

const (
	// JustifyInherit defers to the owning column, then the table.
	JustifyInherit Justification = iota
	JustifyLeft
	JustifyRight
	JustifyCenter
)

// Valid reports whether j is one of the declared values.
func (j Justification) Valid() bool {
	return j >= JustifyInherit && j <= JustifyCenter
}

func (j Justification) String() string {
	switch j {
	case JustifyInherit:
		return "inherit"
	case JustifyLeft:
		return "left"
	case JustifyRight:
		return "right"
	case JustifyCenter:
		return "center"
	}
	return fmt.Sprintf("Justification(%d)", int(j))
}

// ParseJustification parses the names produced by String.
func ParseJustification(s string) (Justification, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "inherit":
		return JustifyInherit, nil
	case "left":
		return JustifyLeft, nil
	case "right":
		return JustifyRight, nil
	case "center", "centre":
		return JustifyCenter, nil
	}
	return JustifyInherit, fmt.Errorf("justification %q: %w", s, ErrInvalidArgument)
}

// Set is a font/justification/color bundle. A Set may be shared by several
// cells, columns and tables; every mutation notifies subscribers so owners
// can recompute layout. Zero colors mean "unset".
type Set struct {
	mu       sync.Mutex
	font     Font
	fg, bg   tcell.Color
	just     Justification
	height   int
	baseline int
	subs     map[int]func()
	next     int
}

// New creates a Set with the given font and no other attributes.
func New(f Font) *Set {
	s := &Set{}
	s.font = f
	s.measureLocked()
	return s
}

// Font returns the font, or nil.
func (s *Set) Font() Font {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.font
}

// Foreground returns the foreground color.
func (s *Set) Foreground() tcell.Color {
	if s == nil {
		return tcell.ColorDefault
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fg
}

// Background returns the background color.
func (s *Set) Background() tcell.Color {
	if s == nil {
		return tcell.ColorDefault
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bg
}

// Justification returns the justification.
func (s *Set) Justification() Justification {
	if s == nil {
		return JustifyInherit
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.just
}

// Height is the measured line height; 0 without a font.
func (s *Set) Height() int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.height
}

// Baseline is the measured baseline; 0 without a font.
func (s *Set) Baseline() int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.baseline
}

// SetFont replaces the font and re-measures height and baseline.
func (s *Set) SetFont(f Font) {
	s.mutate(func() {
		s.font = f
		s.measureLocked()
	})
}

// SetForeground sets the foreground color.
func (s *Set) SetForeground(c tcell.Color) {
	s.mutate(func() { s.fg = c })
}

// SetBackground sets the background color.
func (s *Set) SetBackground(c tcell.Color) {
	s.mutate(func() { s.bg = c })
}

// SetJustification sets the justification. Values outside the enum are
// rejected without touching the set.
func (s *Set) SetJustification(j Justification) error {
	if !j.Valid() {
		return fmt.Errorf("justification %d: %w", int(j), ErrInvalidArgument)
	}
	s.mutate(func() { s.just = j })
	return nil
}

// Clone returns an unshared copy without subscribers.
func (s *Set) Clone() *Set {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return &Set{
		font:     s.font,
		fg:       s.fg,
		bg:       s.bg,
		just:     s.just,
		height:   s.height,
		baseline: s.baseline,
	}
}

// Subscribe registers fn to run after every mutation. The returned function
// removes the subscription; calling it more than once is harmless.
func (s *Set) Subscribe(fn func()) func() {
	if s == nil || fn == nil {
		return func() {}
	}
	s.mu.Lock()
	if s.subs == nil {
		s.subs = make(map[int]func())
	}
	id := s.next
	s.next++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

func (s *Set) mutate(fn func()) {
	if s == nil {
		return
	}
	s.mu.Lock()
	fn()
	subs := make([]func(), 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	for _, sub := range subs {
		sub()
	}
}

func (s *Set) measureLocked() {
	if s.font == nil {
		s.height, s.baseline = 0, 0
		return
	}
	s.height = max(s.font.Height(), 0)
	s.baseline = max(s.font.Baseline(), 0)
}
