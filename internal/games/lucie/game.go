// Package lucie implements La Belle Lucie: eighteen fans of three cards,
// built down by suit one card at a time, with two shuffled redeals and a
// single "merci" draw after the last one.
package lucie

import (
	"encoding/binary"
	"fmt"

	"github.com/vovakirdan/tui-patience/internal/cards"
	"github.com/vovakirdan/tui-patience/internal/engine"
	"github.com/vovakirdan/tui-patience/internal/registry"
)

// GameID is the catalogue number stored in save files.
const GameID = 901

const (
	numRows  = 18
	fullRows = 17
)

// Game implements engine.Variant and its optional hooks for La Belle Lucie.
type Game struct {
	merciUsed bool
	drawn     int // id of the card brought up by the merci, or -1
}

// New creates a La Belle Lucie rule-set.
func New() *Game {
	return &Game{drawn: -1}
}

func init() {
	registry.Register("lucie", func() engine.Variant {
		return New()
	})
}

// Info describes the game.
func (l *Game) Info() engine.Info {
	return engine.Info{ID: GameID, Name: "La Belle Lucie", ShortName: "lucie", Decks: 1, Redeals: 2}
}

// Version of the rule-set.
func (l *Game) Version() int { return 1 }

// CreateGame lays out talon, foundations and the eighteen fans.
func (l *Game) CreateGame(g *engine.Game) {
	g.AddPile(engine.KindTalon, engine.StockRules{})
	for s := cards.Suit(0); s < cards.NumSuits; s++ {
		g.AddPile(engine.KindFoundation, engine.FoundationRules{Suit: s})
	}
	for i := 0; i < numRows; i++ {
		row := g.AddPile(engine.KindRow, engine.RowRules{Match: engine.SameSuit, MaxCards: 1})
		row.BaseRank = engine.NoRank
		row.AutoDrop = true
	}
}

// StartGame deals seventeen fans of three and one single card.
func (l *Game) StartGame(g *engine.Game) {
	l.merciUsed = false
	l.drawn = -1
	rows := g.PilesOf(engine.KindRow)
	for i := 0; i < 2; i++ {
		g.DealRow(rows[:fullRows], true)
	}
	g.DealRow(rows, true)
}

// IsGameWon reports whether all cards reached the foundations.
func (l *Game) IsGameWon(g *engine.Game) bool {
	for _, p := range g.PilesOf(engine.KindFoundation) {
		if p.Len() != cards.NumRanks {
			return false
		}
	}
	return true
}

// CanDealCards reports whether a redeal is left.
func (l *Game) CanDealCards(g *engine.Game) bool {
	talon := g.Talon()
	return talon.Round != talon.MaxRounds && !l.IsGameWon(g)
}

// DealCards gathers the fans, shuffles them and deals them out again in
// threes.
func (l *Game) DealCards(g *engine.Game) int {
	talon := g.Talon()
	rows := g.PilesOf(engine.KindRow)

	n := 0
	for _, r := range rows {
		if !r.Empty() {
			n += r.Len()
			g.MoveMove(r.Len(), r, talon, 0, -1)
		}
	}
	if n == 0 {
		return 0
	}
	g.FlipAllMove(talon)
	g.ShuffleStackMove(talon)
	g.NextRoundMove(talon)

	counts := [3]int{n / 3, (n + 1) / 3, (n + 2) / 3}
	for _, j := range counts {
		for _, r := range rows[:min(j, len(rows))] {
			g.FlipAndMoveMove(talon, r, 0)
		}
	}
	return n
}

// CanMerci reports whether the card at pos of row may be drawn to the top.
func (l *Game) CanMerci(g *engine.Game, row *engine.Pile, pos int) bool {
	talon := g.Talon()
	return !l.merciUsed && talon.Round == talon.MaxRounds &&
		row.Kind == engine.KindRow && pos >= 0 && pos < row.Len()-1
}

// Merci draws the card at pos of row to the top of the same row. It may be
// used once, after the last redeal.
func (l *Game) Merci(g *engine.Game, row *engine.Pile, pos int) bool {
	if !l.CanMerci(g, row, pos) {
		return false
	}
	g.FinishMove()
	g.SaveStateMove(engine.ApplyOnUndo)
	g.UpdateStackMove(row, engine.ApplyOnUndo|engine.UpdateText|engine.UpdateModel)

	// the own row never accepts the card, so move outside play checks
	guard := g.EnterState(engine.StateFill)
	g.SingleCardMove(row, row, pos, -1)
	guard.Leave()

	l.merciUsed = true
	g.SaveStateMove(engine.ApplyOnRedo)
	g.UpdateStackMove(row, engine.ApplyOnRedo|engine.UpdateText|engine.UpdateModel)
	g.FinishMove()
	if !g.CheckForWin() {
		g.AutoPlay()
	}
	return true
}

// MerciUsed reports whether the draw has been taken.
func (l *Game) MerciUsed() bool { return l.merciUsed }

// Drawn returns the id of the card brought up by the merci, or -1.
func (l *Game) Drawn() int { return l.drawn }

// UpdateModel tracks the drawn card for display.
func (l *Game) UpdateModel(_ *engine.Game, p *engine.Pile, undo bool, _ int) {
	if undo || p.Empty() {
		l.drawn = -1
		return
	}
	l.drawn = p.Top().ID
}

// GameState captures the merci flag for SaveState moves.
func (l *Game) GameState(*engine.Game) []byte {
	if l.merciUsed {
		return []byte{1}
	}
	return []byte{0}
}

// SetGameState restores a GameState value.
func (l *Game) SetGameState(_ *engine.Game, data []byte) {
	l.merciUsed = len(data) > 0 && data[0] == 1
}

// SaveHook stores the merci flag and the drawn card.
func (l *Game) SaveHook(g *engine.Game) []byte {
	return binary.AppendVarint(l.GameState(g), int64(l.drawn))
}

// LoadHook restores a SaveHook payload.
func (l *Game) LoadHook(g *engine.Game, data []byte) error {
	if len(data) < 2 || data[0] > 1 {
		return fmt.Errorf("lucie: bad game data")
	}
	drawn, n := binary.Varint(data[1:])
	if n <= 0 || drawn < -1 || drawn >= int64(len(g.Deck())) {
		return fmt.Errorf("lucie: bad drawn card")
	}
	l.SetGameState(g, data[:1])
	l.drawn = int(drawn)
	return nil
}
