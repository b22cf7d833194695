package klondike

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-patience/internal/engine"
	"github.com/vovakirdan/tui-patience/internal/random"
)

func newGame(t *testing.T, v *Game, seed string) *engine.Game {
	t.Helper()
	g := engine.NewGame(v, engine.WithAutoPlay(engine.AutoPlay{FaceUp: true}))
	g.Start(random.MustParse(seed))
	return g
}

func TestInitialLayout(t *testing.T) {
	g := newGame(t, New(), "123456")
	rows := g.PilesOf(engine.KindRow)
	require.Len(t, rows, 7)
	for i, r := range rows {
		assert.Equal(t, i+1, r.Len())
		for j, c := range r.Cards() {
			assert.Equal(t, j == i, c.FaceUp, "row %d card %d", i, j)
		}
	}
	waste := g.PilesOf(engine.KindWaste)[0]
	assert.Equal(t, 1, waste.Len())
	assert.True(t, waste.Top().FaceUp)
	assert.Equal(t, 52-28-1, g.Talon().Len())
	assert.Equal(t, 0, g.HistoryLen())
}

func TestDealAndRedeal(t *testing.T) {
	g := newGame(t, NewWithRedeals(1), "ms42")
	talon, waste := g.Talon(), g.PilesOf(engine.KindWaste)[0]

	for !talon.Empty() {
		require.Equal(t, 1, g.DealCards())
	}
	assert.Equal(t, 24, waste.Len())
	assert.True(t, g.CanDealCards())

	top := waste.Cards()[0]
	assert.Equal(t, 24, g.DealCards())
	assert.Equal(t, 2, talon.Round)
	assert.True(t, waste.Empty())
	// turning the waste over puts its bottom card on top of the talon
	assert.Same(t, top, talon.Top())
	assert.False(t, talon.Top().FaceUp)

	for !talon.Empty() {
		g.DealCards()
	}
	assert.False(t, g.CanDealCards())
	assert.Equal(t, 0, g.DealCards())
}

func TestUndoRedeal(t *testing.T) {
	g := newGame(t, New(), "ms7")
	talon := g.Talon()
	for !talon.Empty() {
		g.DealCards()
	}
	before := g.SnapshotString()
	g.DealCards()
	require.Equal(t, 2, talon.Round)

	g.Undo()
	assert.Equal(t, 1, talon.Round)
	assert.Equal(t, before, g.SnapshotString())

	g.Redo()
	assert.Equal(t, 2, talon.Round)
	assert.Equal(t, 24, talon.Len())
}

func TestKingOnlyOnEmptyRow(t *testing.T) {
	g := newGame(t, New(), "ms3")
	rows := g.PilesOf(engine.KindRow)
	for _, h := range g.Hints() {
		dst := g.Pile(h.To)
		if dst.Kind == engine.KindRow && dst.Empty() {
			src := g.Pile(h.From)
			assert.Equal(t, "K", src.TopN(h.N)[0].Rank.String())
		}
	}
	assert.False(t, rows[0].Empty())
}
