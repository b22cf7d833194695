package core

// Layout contains the screen geometry the board is drawn with.
type Layout struct {
	ScreenW int // Screen width in characters
	ScreenH int // Screen height in characters
	CardW   int // Width of one card face, e.g. "[TH]"
	Gap     int // Columns between piles
}

// DefaultLayout returns a Layout for a classic 80x24 terminal.
func DefaultLayout() Layout {
	return Layout{
		ScreenW: 80,
		ScreenH: 24,
		CardW:   4,
		Gap:     1,
	}
}

// Columns returns how many piles fit side by side. It is never below one.
func (l Layout) Columns() int {
	step := l.CardW + l.Gap
	if step <= 0 {
		return 1
	}
	return max(1, (l.ScreenW+l.Gap)/step)
}

// ColumnX returns the left edge of column i.
func (l Layout) ColumnX(i int) int {
	return i * (l.CardW + l.Gap)
}
