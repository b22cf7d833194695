package engine

import (
	"slices"
	"sort"
)

// Hint suggests moving the top N cards of From onto To.
type Hint struct {
	From, To, N int
	Score       int
}

// Hints lists the suggested moves, best first.
func (g *Game) Hints() []Hint {
	if h, ok := g.variant.(Hinter); ok {
		return h.Hints(g)
	}
	return DefaultHints(g)
}

// NextHint returns the best hint and counts the request.
func (g *Game) NextHint() (Hint, bool) {
	hs := g.Hints()
	if len(hs) == 0 {
		return Hint{}, false
	}
	g.stats.Hints++
	return hs[0], true
}

// DefaultHints tries every movable run onto every other pile. Moves that
// only shift a whole pile into an empty pile of the same kind are left out.
func DefaultHints(g *Game) []Hint {
	var out []Hint
	for _, src := range g.piles {
		if src.Kind == KindTalon || src.Rules == nil {
			continue
		}
		for n := 1; n <= src.Len(); n++ {
			if !src.Rules.CanMoveCards(g, src, src.TopN(n)) {
				continue
			}
			for _, dst := range g.piles {
				if dst == src || !g.CanMove(n, src, dst) {
					continue
				}
				if dst.Empty() && n == src.Len() && dst.Kind == src.Kind {
					continue
				}
				out = append(out, Hint{From: src.ID, To: dst.ID, N: n, Score: score(src, dst, n)})
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

func score(src, dst *Pile, n int) int {
	s := 0
	switch {
	case dst.Kind == KindFoundation:
		s = 100
	case n < src.Len() && !src.cards[src.Len()-n-1].FaceUp:
		s = 60
	case src.Kind == KindWaste:
		s = 40
	case !dst.Empty():
		s = 20 + n
	default:
		s = 5
	}
	if dst.Kind == KindReserve {
		s -= 10
	}
	return s
}

// DemoStep plays one move for the demo and reports whether it did.
//
// A hint is tried and kept only if it reaches an unseen position; tried
// moves are rolled back with CancelMove. With no useful hint the talon
// deals, until a deal position repeats.
func (g *Game) DemoStep() bool {
	if g.finished || len(g.moves.Current) > 0 {
		return false
	}
	prev := g.demo
	g.demo = true
	defer func() { g.demo = prev }()

	for _, h := range g.Hints() {
		from, to := g.Pile(h.From), g.Pile(h.To)
		g.MoveMove(h.N, from, to, -1, -1)
		if g.auto.FaceUp {
			g.autoFlip(from)
		}
		if g.Seen() {
			g.CancelMove()
			continue
		}
		g.demoDeals = nil
		g.FinishMove()
		if !g.CheckForWin() {
			g.AutoPlay()
		}
		return true
	}

	for _, p := range g.piles {
		if g.PlayerFlip(p) {
			return true
		}
	}

	if !g.CanDealCards() {
		return false
	}
	sn := g.Snapshot()
	if slices.Contains(g.demoDeals, sn) {
		return false
	}
	g.demoDeals = append(g.demoDeals, sn)
	return g.DealCards() > 0
}
