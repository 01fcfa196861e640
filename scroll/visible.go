package scroll

import "sort"

// Edges describes items laid out along one axis in increasing order.
// Leading(i) is where item i starts and Trailing(i) where it ends.
type Edges interface {
	Len() int
	Leading(i int) int
	Trailing(i int) int
}

// Range is a half-open index range [Start, End).
type Range struct {
	Start int
	End   int
}

// Len returns the number of indices in the range.
func (r Range) Len() int {
	return max(r.End-r.Start, 0)
}

// Empty reports whether the range holds no index.
func (r Range) Empty() bool {
	return r.End <= r.Start
}

// Contains reports whether i is in the range.
func (r Range) Contains(i int) bool {
	return i >= r.Start && i < r.End
}

// FillSpec describes the blank slots that pad the view after the last real
// item. A zero Pitch disables fill.
type FillSpec struct {
	// Pitch is the distance between successive blank slots.
	Pitch int
	// Gap is the space between two slots; a slot is Pitch-Gap long.
	Gap int
}

// VisibleRange returns the items visible in the window
// [offset, offset+extent): Start is the first item whose trailing edge lies
// past offset and End is one past the last item whose leading edge lies
// before offset+extent. With fill enabled, End may exceed edges.Len() by the
// number of blank slots needed to fill the window.
func VisibleRange(edges Edges, offset, extent int, fill FillSpec) Range {
	if extent <= 0 {
		return Range{}
	}
	n := 0
	if edges != nil {
		n = edges.Len()
	}
	limit := offset + extent
	start := sort.Search(n, func(i int) bool { return edges.Trailing(i) > offset })
	end := sort.Search(n, func(i int) bool { return edges.Leading(i) >= limit })
	end = max(end, start)
	if fill.Pitch <= 0 || end < n {
		return Range{Start: start, End: end}
	}

	base := 0
	if n > 0 {
		base = edges.Trailing(n-1) + fill.Gap
	}
	if base >= limit {
		return Range{Start: start, End: end}
	}
	slots := (limit - base + fill.Pitch - 1) / fill.Pitch
	if start == n {
		start = n + firstFillSlot(base, offset, fill)
	}
	return Range{Start: start, End: n + slots}
}

// FillLeading returns the leading edge of blank slot index i, where index n
// is the first slot after the n real items.
func FillLeading(edges Edges, i int, fill FillSpec) int {
	n := 0
	base := 0
	if edges != nil {
		n = edges.Len()
	}
	if n > 0 {
		base = edges.Trailing(n-1) + fill.Gap
	}
	return base + (i-n)*fill.Pitch
}

func firstFillSlot(base, offset int, fill FillSpec) int {
	size := max(fill.Pitch-fill.Gap, 1)
	if base+size > offset {
		return 0
	}
	return (offset-base-size)/fill.Pitch + 1
}
