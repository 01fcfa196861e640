package scroll

// FixedEdges lays out Count items of equal Size separated by Gap.
type FixedEdges struct {
	Size  int
	Gap   int
	Count int
}

// Len returns Count.
func (f FixedEdges) Len() int {
	return max(f.Count, 0)
}

// Leading returns the start of item i.
func (f FixedEdges) Leading(i int) int {
	return i * f.pitch()
}

// Trailing returns the end of item i.
func (f FixedEdges) Trailing(i int) int {
	return f.Leading(i) + max(f.Size, 0)
}

// Extent returns the total length of all items.
func (f FixedEdges) Extent() int {
	if f.Count <= 0 || f.Size <= 0 {
		return 0
	}
	return f.Trailing(f.Count - 1)
}

// IndexForOffset returns the item index at a given offset.
func (f FixedEdges) IndexForOffset(offset int) int {
	pitch := f.pitch()
	if pitch <= 0 || offset <= 0 {
		return 0
	}
	return min(offset/pitch, max(f.Count-1, 0))
}

// OffsetForIndex returns the leading edge of the given item index.
func (f FixedEdges) OffsetForIndex(index int) int {
	if f.Count <= 0 || index <= 0 {
		return 0
	}
	return f.Leading(min(index, f.Count-1))
}

// Fill returns the FillSpec that continues this layout past its last item.
func (f FixedEdges) Fill() FillSpec {
	return FillSpec{Pitch: f.pitch(), Gap: f.Gap}
}

func (f FixedEdges) pitch() int {
	return max(f.Size, 0) + max(f.Gap, 0)
}

// SliceEdges holds explicit leading and trailing edges.
type SliceEdges struct {
	Lead  []int
	Trail []int
}

// Len returns the number of items.
func (s SliceEdges) Len() int {
	return min(len(s.Lead), len(s.Trail))
}

// Leading returns the start of item i.
func (s SliceEdges) Leading(i int) int {
	return s.Lead[i]
}

// Trailing returns the end of item i.
func (s SliceEdges) Trailing(i int) int {
	return s.Trail[i]
}

// Extent returns the trailing edge of the last item.
func (s SliceEdges) Extent() int {
	n := s.Len()
	if n == 0 {
		return 0
	}
	return s.Trail[n-1]
}
