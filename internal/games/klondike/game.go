// Package klondike implements Klondike with a one-card draw and unlimited
// redeals of the waste.
package klondike

import (
	"github.com/vovakirdan/tui-patience/internal/cards"
	"github.com/vovakirdan/tui-patience/internal/engine"
	"github.com/vovakirdan/tui-patience/internal/registry"
)

// GameID is the catalogue number stored in save files.
const GameID = 2

const numRows = 7

// Game implements engine.Variant and engine.Dealer for Klondike.
type Game struct {
	redeals int
}

// New creates a Klondike rule-set with unlimited redeals.
func New() *Game {
	return &Game{redeals: -1}
}

// NewWithRedeals creates a Klondike rule-set limited to n redeals.
func NewWithRedeals(n int) *Game {
	return &Game{redeals: n}
}

func init() {
	registry.Register("klondike", func() engine.Variant {
		return New()
	})
}

// Info describes the game.
func (k *Game) Info() engine.Info {
	return engine.Info{ID: GameID, Name: "Klondike", ShortName: "klondike", Decks: 1, Redeals: k.redeals}
}

// Version of the rule-set.
func (k *Game) Version() int { return 1 }

// CreateGame lays out talon, waste, foundations and rows.
func (k *Game) CreateGame(g *engine.Game) {
	g.AddPile(engine.KindTalon, engine.StockRules{})
	waste := g.AddPile(engine.KindWaste, engine.StockRules{})
	waste.AutoDrop = true
	for s := cards.Suit(0); s < cards.NumSuits; s++ {
		g.AddPile(engine.KindFoundation, engine.FoundationRules{Suit: s})
	}
	for i := 0; i < numRows; i++ {
		row := g.AddPile(engine.KindRow, engine.RowRules{Match: engine.AltColor})
		row.BaseRank = cards.King
		row.AutoFlip = true
		row.AutoDrop = true
	}
}

// StartGame deals the classic triangle, face down except for the last
// card of each row, and turns one card to the waste.
func (k *Game) StartGame(g *engine.Game) {
	rows := g.PilesOf(engine.KindRow)
	for i := 1; i < len(rows); i++ {
		g.DealRow(rows[i:], false)
	}
	g.DealRow(rows, true)
	k.DealCards(g)
}

// CanDealCards reports whether the talon holds cards or the waste may be
// turned over.
func (k *Game) CanDealCards(g *engine.Game) bool {
	talon, waste := g.Talon(), g.PilesOf(engine.KindWaste)[0]
	if !talon.Empty() {
		return true
	}
	return !waste.Empty() && (talon.MaxRounds < 0 || talon.Round < talon.MaxRounds)
}

// DealCards turns the top talon card onto the waste, or the waste back
// into the talon when the talon is empty.
func (k *Game) DealCards(g *engine.Game) int {
	talon, waste := g.Talon(), g.PilesOf(engine.KindWaste)[0]
	if !talon.Empty() {
		g.FlipAndMoveMove(talon, waste, 4)
		return 1
	}
	if !k.CanDealCards(g) {
		return 0
	}
	n := waste.Len()
	g.TurnStackMove(waste, talon)
	g.NextRoundMove(talon)
	return n
}

// IsGameWon reports whether all cards reached the foundations.
func (k *Game) IsGameWon(g *engine.Game) bool {
	for _, p := range g.PilesOf(engine.KindFoundation) {
		if p.Len() != cards.NumRanks {
			return false
		}
	}
	return true
}
