package grid

// optimizeEpsilon is the smallest redistribution worth applying.
const optimizeEpsilon = 1e-3

// OptimizeColumnWidths moves width from columns wider than their content to
// columns whose content is wrapped. A column wants its widest unwrapped cell
// plus padding, and never less than the minimum column width. The width
// that can move is the smaller of the total surplus and the total shortfall;
// surplus columns give it up and short columns receive it, each in
// proportion to its own surplus or shortfall. This is a single proportional
// pass: leftover surplus or shortfall is not redistributed again. Headers do
// not take part.
func (g *Grid) OptimizeColumnWidths(repaint bool) {
	g.lock()
	defer g.unlock()
	if g.optimizeColumns() {
		g.changed(repaint)
	}
}

func (g *Grid) optimizeColumns() bool {
	n := len(g.columns)
	if n == 0 {
		return false
	}
	want := make([]float64, n)
	have := make([]float64, n)
	var spare, over float64
	for ci, col := range g.columns {
		natural := 0
		for _, r := range g.rows {
			natural = max(natural, r.cells[ci].text.NaturalWidth())
		}
		want[ci] = float64(max(g.cfg.MinColumnWidth, natural+g.cfg.CellPadding))
		have[ci] = float64(col.width)
		spare += max(have[ci]-want[ci], 0)
		over += max(want[ci]-have[ci], 0)
	}
	moved := min(spare, over)
	if moved <= optimizeEpsilon {
		return false
	}
	scale := g.scale
	if scale <= 0 {
		scale = 1
	}
	for ci, col := range g.columns {
		w := have[ci]
		switch {
		case have[ci] > want[ci]:
			w -= moved * (have[ci] - want[ci]) / spare
		case have[ci] < want[ci]:
			w += moved * (want[ci] - have[ci]) / over
		}
		col.nominal = w / scale
	}
	g.log.Debug("grid: optimize columns", "moved", moved, "spare", spare, "over", over)
	return true
}
