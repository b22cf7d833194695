// Package freecell implements FreeCell: eight open rows, four free cells
// and four foundations built up by suit. Deals 1 to 32000 match the
// classic Microsoft numbering.
package freecell

import (
	"github.com/vovakirdan/tui-patience/internal/cards"
	"github.com/vovakirdan/tui-patience/internal/engine"
	"github.com/vovakirdan/tui-patience/internal/registry"
)

// GameID is the catalogue number stored in save files.
const GameID = 8

const (
	numRows  = 8
	numCells = 4
)

// Game implements engine.Variant for FreeCell.
type Game struct{}

// New creates a FreeCell rule-set.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("freecell", func() engine.Variant {
		return New()
	})
}

// Info describes the game.
func (f *Game) Info() engine.Info {
	return engine.Info{ID: GameID, Name: "FreeCell", ShortName: "freecell", Decks: 1, Redeals: 0}
}

// Version of the rule-set.
func (f *Game) Version() int { return 1 }

// CreateGame lays out talon, foundations, rows and cells, in that order.
func (f *Game) CreateGame(g *engine.Game) {
	g.AddPile(engine.KindTalon, engine.StockRules{})
	for s := cards.Suit(0); s < cards.NumSuits; s++ {
		g.AddPile(engine.KindFoundation, engine.FoundationRules{Suit: s})
	}
	for i := 0; i < numRows; i++ {
		row := g.AddPile(engine.KindRow, engine.RowRules{Match: engine.AltColor, Limit: SuperMoveLimit})
		row.AutoDrop = true
	}
	for i := 0; i < numCells; i++ {
		cell := g.AddPile(engine.KindReserve, engine.CellRules{})
		cell.AutoDrop = true
	}
}

// StartGame deals the whole deck face up, six full rows and four more
// cards.
func (f *Game) StartGame(g *engine.Game) {
	rows := g.PilesOf(engine.KindRow)
	for i := 0; i < 6; i++ {
		g.DealRow(rows, true)
	}
	g.DealRow(rows[:4], true)
}

// IsGameWon reports whether all cards reached the foundations.
func (f *Game) IsGameWon(g *engine.Game) bool {
	for _, p := range g.PilesOf(engine.KindFoundation) {
		if p.Len() != cards.NumRanks {
			return false
		}
	}
	return true
}

// SuperMoveLimit is the longest run that can be moved onto dst one card
// at a time through the free cells and empty rows.
func SuperMoveLimit(g *engine.Game, dst *engine.Pile) int {
	cells := 0
	for _, p := range g.PilesOf(engine.KindReserve) {
		if p.Empty() {
			cells++
		}
	}
	rows := 0
	for _, p := range g.PilesOf(engine.KindRow) {
		if p.Empty() && p != dst {
			rows++
		}
	}
	return (cells + 1) << rows
}
