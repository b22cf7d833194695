// Package cards defines playing cards and deck construction.
package cards

import (
	"fmt"
	"strings"
)

// Suit of a card. The numeric order is part of the save format and of the
// Microsoft deal numbering.
type Suit int

const (
	Clubs Suit = iota
	Spades
	Hearts
	Diamonds
)

// NumSuits is the number of suits in a standard deck.
const NumSuits = 4

// Rank of a card, Ace is zero.
type Rank int

const (
	Ace Rank = iota
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// NumRanks is the number of ranks per suit.
const NumRanks = 13

const (
	suitLetters = "CSHD"
	rankLetters = "A23456789TJQK"
)

// Color returns 0 for black suits and 1 for red suits.
func (s Suit) Color() int { return int(s) / 2 }

// String returns the one letter suit symbol.
func (s Suit) String() string {
	if s < 0 || int(s) >= len(suitLetters) {
		return "?"
	}
	return suitLetters[s : s+1]
}

// String returns the one letter rank symbol.
func (r Rank) String() string {
	if r < 0 || int(r) >= len(rankLetters) {
		return "?"
	}
	return rankLetters[r : r+1]
}

// Card is a single physical card. ID is unique within a game and stable
// across shuffles; it is what save files refer to.
type Card struct {
	ID     int
	Deck   int
	Suit   Suit
	Rank   Rank
	FaceUp bool
}

// String returns the short form, e.g. "TH" for the ten of hearts.
func (c *Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Color is shorthand for c.Suit.Color().
func (c *Card) Color() int { return c.Suit.Color() }

// Flip toggles the face of the card.
func (c *Card) Flip() { c.FaceUp = !c.FaceUp }

// ParseCard parses the short form produced by String.
func ParseCard(s string) (Suit, Rank, error) {
	if len(s) != 2 {
		return 0, 0, fmt.Errorf("cards: bad card %q", s)
	}
	r := strings.IndexByte(rankLetters, s[0])
	su := strings.IndexByte(suitLetters, s[1])
	if r < 0 || su < 0 {
		return 0, 0, fmt.Errorf("cards: bad card %q", s)
	}
	return Suit(su), Rank(r), nil
}

// NewDecks creates n full decks, face down, in suit-major order
// (all clubs Ace to King, then spades, hearts, diamonds). IDs are assigned
// sequentially starting at zero.
func NewDecks(n int) []*Card {
	out := make([]*Card, 0, n*NumSuits*NumRanks)
	for d := 0; d < n; d++ {
		for s := Suit(0); s < NumSuits; s++ {
			for r := Rank(0); r < NumRanks; r++ {
				out = append(out, &Card{ID: len(out), Deck: d, Suit: s, Rank: r})
			}
		}
	}
	return out
}

// Join formats a slice of cards separated by spaces.
func Join(cs []*Card) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
