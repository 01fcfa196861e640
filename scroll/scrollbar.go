package scroll

import "github.com/odvcencio/furry-grid/backend"

// Scrollbar configures scrollbar rendering.
type Scrollbar struct {
	Orientation  Orientation
	Track        backend.Style
	Thumb        backend.Style
	MinThumbSize int
	Chars        ScrollbarChars
}

// ScrollbarChars defines characters used to render the scrollbar.
type ScrollbarChars struct {
	Track rune
	Thumb rune
}

// DefaultScrollbar returns the default scrollbar for an orientation.
func DefaultScrollbar(o Orientation) Scrollbar {
	chars := ScrollbarChars{Track: '│', Thumb: '█'}
	if o == Horizontal {
		chars.Track = '─'
	}
	return Scrollbar{
		Orientation:  o,
		Track:        backend.DefaultStyle(),
		Thumb:        backend.DefaultStyle(),
		MinThumbSize: 1,
		Chars:        chars,
	}
}

// Thumb returns the start and length of the scrollbar thumb on a track of
// the given length. The thumb is proportional to the visible share of the
// content and never shorter than minSize; content that fits yields a thumb
// spanning the whole track.
func Thumb(content, view, offset, track, minSize int) (start, size int) {
	if track <= 0 {
		return 0, 0
	}
	if content <= 0 || view <= 0 || content <= view {
		return 0, track
	}
	size = int(float64(view) / float64(content) * float64(track))
	size = min(max(size, minSize, 1), track)
	maxOffset := content - view
	offset = min(max(offset, 0), maxOffset)
	start = int(float64(offset) / float64(maxOffset) * float64(track-size))
	return min(max(start, 0), track-size), size
}

// Thumb computes the thumb for an axis on a track of the given length.
func (s Scrollbar) Thumb(a *Axis, track int) (start, size int) {
	return Thumb(a.Content(), a.View(), a.Offset(), track, s.MinThumbSize)
}
