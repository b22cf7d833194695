package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-patience/internal/cards"
	"github.com/vovakirdan/tui-patience/internal/core"
	"github.com/vovakirdan/tui-patience/internal/engine"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:   lipgloss.NewStyle(),
	core.ColorRedSuit:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBlackSuit: lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorCardBack:  lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorEmptySlot: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	core.ColorCursor:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	core.ColorSelected:  lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("11")),
	core.ColorHint:      lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorStatus:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorWarning:   lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorWin:       lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// pileSpot is where a pile is drawn. Spots are in cursor order.
type pileSpot struct {
	pile *engine.Pile
	rect core.Rect
}

// spotAt returns the index of the spot containing (x, y), or -1.
func spotAt(spots []pileSpot, x, y int) int {
	for i, s := range spots {
		// the marker line under a pile belongs to it too
		r := s.rect
		r.H++
		if r.Contains(x, y) {
			return i
		}
	}
	return -1
}

// spotOf returns the index of the spot showing pile id, or -1.
func spotOf(spots []pileSpot, id int) int {
	for i, s := range spots {
		if s.pile.ID == id {
			return i
		}
	}
	return -1
}

// layoutPiles places the talon, waste, reserves and foundations in a top
// band and the rows below it, wrapping bands at the screen width. Row
// bands grow with the longest pile they hold.
func layoutPiles(g *engine.Game, l core.Layout) []pileSpot {
	cols := l.Columns()
	var spots []pileSpot

	var top []*engine.Pile
	for _, kind := range []engine.PileKind{engine.KindTalon, engine.KindWaste, engine.KindReserve, engine.KindFoundation} {
		top = append(top, g.PilesOf(kind)...)
	}
	y := 0
	for i, p := range top {
		if i > 0 && i%cols == 0 {
			y += 4
		}
		spots = append(spots, pileSpot{pile: p, rect: core.NewRect(l.ColumnX(i%cols), y, l.CardW, 2)})
	}
	if len(top) > 0 {
		y += 4
	}

	rows := g.PilesOf(engine.KindRow)
	for start := 0; start < len(rows); start += cols {
		band := rows[start:min(start+cols, len(rows))]
		h := 1
		for _, p := range band {
			h = max(h, p.Len())
		}
		for i, p := range band {
			spots = append(spots, pileSpot{pile: p, rect: core.NewRect(l.ColumnX(i), y, l.CardW, h)})
		}
		y += h + 2
	}
	return spots
}

// cardFace returns the text and color of a card.
func cardFace(c *cards.Card) (string, core.Color) {
	if !c.FaceUp {
		return "[##]", core.ColorCardBack
	}
	if c.Color() == 1 {
		return "[" + c.String() + "]", core.ColorRedSuit
	}
	return "[" + c.String() + "]", core.ColorBlackSuit
}

func emptySlot(p *engine.Pile) string {
	switch p.Kind {
	case engine.KindFoundation:
		return "[ F]"
	case engine.KindTalon:
		if p.MaxRounds < 0 || p.Round < p.MaxRounds {
			return "[ O]"
		}
		return "[ X]"
	}
	return "[  ]"
}

// boardView is the interaction state drawn on top of the piles.
type boardView struct {
	cursor   int // spot index
	selected int // pile id, -1 if none
	count    int // selected cards
	hint     *engine.Hint
}

// drawBoard renders all piles with the cursor, selection and hint marks.
func drawBoard(s *core.Screen, spots []pileSpot, v boardView) {
	for i, spot := range spots {
		p, r := spot.pile, spot.rect
		sel := 0
		if p.ID == v.selected {
			sel = v.count
		}

		if p.Kind == engine.KindRow {
			if p.Empty() {
				s.DrawText(r.X, r.Y, emptySlot(p), core.ColorEmptySlot)
			}
			for j, c := range p.Cards() {
				text, color := cardFace(c)
				if j >= p.Len()-sel {
					color = core.ColorSelected
				}
				s.DrawText(r.X, r.Y+j, text, color)
			}
		} else {
			if top := p.Top(); top != nil {
				text, color := cardFace(top)
				if sel > 0 {
					color = core.ColorSelected
				}
				s.DrawText(r.X, r.Y, text, color)
			} else {
				s.DrawText(r.X, r.Y, emptySlot(p), core.ColorEmptySlot)
			}
			if p.Kind == engine.KindTalon || p.Kind == engine.KindWaste {
				s.DrawText(r.X, r.Y+1, fmt.Sprintf("%3d", p.Len()), core.ColorStatus)
			}
		}

		marker := r.Bottom()
		switch {
		case i == v.cursor:
			s.DrawHLine(r.X, marker, r.W, '^', core.ColorCursor)
		case v.hint != nil && (p.ID == v.hint.From || p.ID == v.hint.To):
			s.DrawHLine(r.X, marker, r.W, '~', core.ColorHint)
		}
	}
}

// pileName names a pile for messages, e.g. "row 3".
func pileName(g *engine.Game, p *engine.Pile) string {
	same := g.PilesOf(p.Kind)
	if len(same) == 1 {
		return p.Kind.String()
	}
	for i, q := range same {
		if q == p {
			return fmt.Sprintf("%s %d", p.Kind, i+1)
		}
	}
	return p.Kind.String()
}

// formatDuration renders a play time as mm:ss, or h:mm:ss past an hour.
func formatDuration(d time.Duration) string {
	secs := int64(d / time.Second)
	if secs >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", secs/3600, secs/60%60, secs%60)
	}
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
