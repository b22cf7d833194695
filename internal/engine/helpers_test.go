package engine_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-patience/internal/cards"
	"github.com/vovakirdan/tui-patience/internal/engine"
	"github.com/vovakirdan/tui-patience/internal/games/freecell"
	"github.com/vovakirdan/tui-patience/internal/games/klondike"
	"github.com/vovakirdan/tui-patience/internal/random"
)

func newFreeCell(t *testing.T, seed string, opts ...engine.Option) *engine.Game {
	t.Helper()
	g := engine.NewGame(freecell.New(), opts...)
	g.Start(random.MustParse(seed))
	return g
}

func newKlondike(t *testing.T, seed string, opts ...engine.Option) *engine.Game {
	t.Helper()
	opts = append([]engine.Option{engine.WithAutoPlay(engine.AutoPlay{FaceUp: true})}, opts...)
	g := engine.NewGame(klondike.New(), opts...)
	g.Start(random.MustParse(seed))
	return g
}

// playHint makes the best hinted move and fails the test if there is none.
func playHint(t *testing.T, g *engine.Game) engine.Hint {
	t.Helper()
	hs := g.Hints()
	require.NotEmpty(t, hs, "no hints")
	h := hs[0]
	require.True(t, g.PlayerMove(h.N, g.Pile(h.From), g.Pile(h.To)))
	return h
}

// contractPanic runs f and returns the ContractError it panicked with.
func contractPanic(t *testing.T, f func()) (ce *engine.ContractError) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a panic")
		var ok bool
		ce, ok = r.(*engine.ContractError)
		require.True(t, ok, "panic value %T is not a ContractError", r)
	}()
	f()
	return nil
}

// stub is a minimal rule-set whose hints and deal ability are set by the
// test. All cards stay in the talon, one foundation takes clubs.
type stub struct {
	id      int
	version int
	hints   []engine.Hint
	canDeal bool
	// idleDeal makes DealCards record a move that leaves the cards alone.
	idleDeal bool
	dealt    int
}

func (s *stub) Info() engine.Info {
	return engine.Info{ID: s.id, Name: "Stub", ShortName: "stub", Decks: 1, Redeals: -1}
}

func (s *stub) Version() int { return s.version }

func (s *stub) CreateGame(g *engine.Game) {
	g.AddPile(engine.KindTalon, engine.StockRules{})
	g.AddPile(engine.KindWaste, engine.StockRules{})
	g.AddPile(engine.KindFoundation, engine.FoundationRules{Suit: cards.Clubs})
}

func (s *stub) StartGame(*engine.Game) {}

func (s *stub) IsGameWon(*engine.Game) bool { return false }

func (s *stub) Hints(*engine.Game) []engine.Hint { return s.hints }

func (s *stub) CanDealCards(g *engine.Game) bool { return s.canDeal && !g.Talon().Empty() }

func (s *stub) DealCards(g *engine.Game) int {
	s.dealt++
	if s.idleDeal {
		g.UpdateStackMove(g.Talon(), engine.ApplyOnRedo)
		return 1
	}
	g.FlipAndMoveMove(g.Talon(), g.Pile(1), 0)
	return 1
}

type recorder struct {
	stuck   []bool
	changed []int
	won     int
	moves   int
}

func (r *recorder) PileChanged(p *engine.Pile, _ bool) { r.changed = append(r.changed, p.ID) }
func (r *recorder) StuckChanged(stuck bool)          { r.stuck = append(r.stuck, stuck) }
func (r *recorder) GameWon()                         { r.won++ }
func (r *recorder) AnimateMove(_, _ *engine.Pile, _, _, _ int) {
	r.moves++
}
