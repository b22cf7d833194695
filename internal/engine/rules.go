package engine

import "github.com/vovakirdan/tui-patience/internal/cards"

// Rules decides what a pile accepts and what may be picked up from it.
// Rule-sets attach a Rules value to every pile they create.
type Rules interface {
	// AcceptsCards reports whether dst takes the run cs (bottom first)
	// coming from src.
	AcceptsCards(g *Game, dst, src *Pile, cs []*cards.Card) bool

	// CanMoveCards reports whether the run cs may be lifted off p.
	CanMoveCards(g *Game, p *Pile, cs []*cards.Card) bool

	// CanFlipCard reports whether the top card of p may be turned face up.
	CanFlipCard(g *Game, p *Pile) bool
}

// Match is the sequence rule used by tableau rows.
type Match int

const (
	AltColor Match = iota // descending, alternating colors
	SameSuit              // descending, same suit
	AnySuit               // descending, any suit
)

// IsSequence reports whether cs is face up and descends by one under m.
func IsSequence(m Match, cs []*cards.Card) bool {
	for i, c := range cs {
		if !c.FaceUp {
			return false
		}
		if i > 0 && !follows(m, cs[i-1], c) {
			return false
		}
	}
	return true
}

// follows reports whether next may sit on top of prev in a row.
func follows(m Match, prev, next *cards.Card) bool {
	if next.Rank != prev.Rank-1 {
		return false
	}
	switch m {
	case AltColor:
		return prev.Color() != next.Color()
	case SameSuit:
		return prev.Suit == next.Suit
	}
	return true
}

func acceptsBase(p *Pile, c *cards.Card) bool {
	switch p.BaseRank {
	case NoRank:
		return false
	case AnyRank:
		return true
	}
	return c.Rank == p.BaseRank
}

// RowRules builds descending sequences.
type RowRules struct {
	Match Match
	// MaxCards caps the run length; zero means no fixed cap.
	MaxCards int
	// Limit, when set, returns the run length currently movable onto dst.
	Limit func(g *Game, dst *Pile) int
}

func (r RowRules) maxMove(g *Game, dst *Pile) int {
	n := 1 << 30
	if r.MaxCards > 0 {
		n = r.MaxCards
	}
	if r.Limit != nil {
		n = min(n, r.Limit(g, dst))
	}
	return n
}

func (r RowRules) AcceptsCards(g *Game, dst, src *Pile, cs []*cards.Card) bool {
	if len(cs) == 0 || dst == src || len(cs) > r.maxMove(g, dst) || !IsSequence(r.Match, cs) {
		return false
	}
	top := dst.Top()
	if top == nil {
		return acceptsBase(dst, cs[0])
	}
	return top.FaceUp && follows(r.Match, top, cs[0])
}

func (r RowRules) CanMoveCards(_ *Game, _ *Pile, cs []*cards.Card) bool {
	if r.MaxCards > 0 && len(cs) > r.MaxCards {
		return false
	}
	return len(cs) > 0 && IsSequence(r.Match, cs)
}

// CanFlipCard allows turning up a face-down top card.
func (RowRules) CanFlipCard(_ *Game, p *Pile) bool {
	top := p.Top()
	return top != nil && !top.FaceUp
}

// FoundationRules builds Suit up from the pile's BaseRank, one card at a
// time. Cards never leave a foundation.
type FoundationRules struct {
	Suit cards.Suit
}

func (r FoundationRules) AcceptsCards(_ *Game, dst, src *Pile, cs []*cards.Card) bool {
	if len(cs) != 1 || dst == src || !cs[0].FaceUp || cs[0].Suit != r.Suit {
		return false
	}
	top := dst.Top()
	if top == nil {
		return acceptsBase(dst, cs[0])
	}
	return top.Suit == cs[0].Suit && cs[0].Rank == top.Rank+1
}

func (FoundationRules) CanMoveCards(*Game, *Pile, []*cards.Card) bool { return false }

func (FoundationRules) CanFlipCard(*Game, *Pile) bool { return false }

// CellRules is a free cell holding at most one card.
type CellRules struct{}

func (CellRules) AcceptsCards(_ *Game, dst, src *Pile, cs []*cards.Card) bool {
	return dst != src && dst.Empty() && len(cs) == 1 && cs[0].FaceUp
}

func (CellRules) CanMoveCards(_ *Game, _ *Pile, cs []*cards.Card) bool {
	return len(cs) == 1
}

func (CellRules) CanFlipCard(*Game, *Pile) bool { return false }

// StockRules covers the talon and waste: the player never drops cards on
// them and may only lift a single face-up top card.
type StockRules struct{}

func (StockRules) AcceptsCards(*Game, *Pile, *Pile, []*cards.Card) bool { return false }

func (StockRules) CanMoveCards(_ *Game, _ *Pile, cs []*cards.Card) bool {
	return len(cs) == 1 && cs[0].FaceUp
}

// CanFlipCard is false: the talon turns cards only by dealing.
func (StockRules) CanFlipCard(*Game, *Pile) bool { return false }

// CanFlip reports whether the player may turn the top card of p face up.
func (g *Game) CanFlip(p *Pile) bool {
	return !g.finished && p.Rules != nil && p.Rules.CanFlipCard(g, p)
}

// CanMove reports whether the top n cards of src may go to dst under both
// piles' rules.
func (g *Game) CanMove(n int, src, dst *Pile) bool {
	if n <= 0 || n > src.Len() || src.Rules == nil || dst.Rules == nil {
		return false
	}
	cs := src.TopN(n)
	return src.Rules.CanMoveCards(g, src, cs) && dst.Rules.AcceptsCards(g, dst, src, cs)
}
