package engine

import (
	"strconv"

	"github.com/vovakirdan/tui-patience/internal/cards"
)

// PileKind groups piles by their role in the layout.
type PileKind int

const (
	KindTalon PileKind = iota
	KindWaste
	KindFoundation
	KindRow
	KindReserve
)

func (k PileKind) String() string {
	switch k {
	case KindTalon:
		return "talon"
	case KindWaste:
		return "waste"
	case KindFoundation:
		return "foundation"
	case KindRow:
		return "row"
	case KindReserve:
		return "reserve"
	}
	return "pile"
}

// NoRank marks a pile whose empty slot accepts nothing.
const NoRank cards.Rank = -1

// AnyRank marks a pile whose empty slot accepts any card.
const AnyRank cards.Rank = -2

// Pile is an ordered stack of cards; the last card is the top.
type Pile struct {
	ID    int
	Kind  PileKind
	Rules Rules
	cards []*cards.Card

	// BaseRank is the rank an empty pile accepts. It is part of the
	// saved capabilities so rule-sets may change it during play.
	BaseRank    cards.Rank
	initialBase cards.Rank

	// Round and MaxRounds are used by talons. MaxRounds < 0 is unlimited.
	Round     int
	MaxRounds int

	// AutoFlip turns a face-down top card up after a move. AutoDrop
	// offers the top card to the foundations.
	AutoFlip bool
	AutoDrop bool
}

// Cards returns the pile contents bottom to top. The slice must not be
// modified.
func (p *Pile) Cards() []*cards.Card { return p.cards }

// Len returns the number of cards.
func (p *Pile) Len() int { return len(p.cards) }

// Empty reports whether the pile holds no cards.
func (p *Pile) Empty() bool { return len(p.cards) == 0 }

// Top returns the top card or nil.
func (p *Pile) Top() *cards.Card {
	if len(p.cards) == 0 {
		return nil
	}
	return p.cards[len(p.cards)-1]
}

// TopN returns the top n cards, bottom first.
func (p *Pile) TopN(n int) []*cards.Card {
	return p.cards[len(p.cards)-n:]
}

func (p *Pile) addCard(c *cards.Card) { p.cards = append(p.cards, c) }

func (p *Pile) removeTop() *cards.Card {
	c := p.cards[len(p.cards)-1]
	p.cards = p.cards[:len(p.cards)-1]
	return c
}

func (p *Pile) removeAt(pos int) *cards.Card {
	c := p.cards[pos]
	p.cards = append(p.cards[:pos], p.cards[pos+1:]...)
	return c
}

func (p *Pile) insertAt(pos int, c *cards.Card) {
	p.cards = append(p.cards, nil)
	copy(p.cards[pos+1:], p.cards[pos:])
	p.cards[pos] = c
}

func (p *Pile) clear() { p.cards = p.cards[:0] }

// String names the pile for logs.
func (p *Pile) String() string {
	return p.Kind.String() + "#" + strconv.Itoa(p.ID)
}
