package lucie

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-patience/internal/engine"
	"github.com/vovakirdan/tui-patience/internal/random"
	"github.com/vovakirdan/tui-patience/internal/savegame"
)

func newGame(t *testing.T, seed string) (*engine.Game, *Game) {
	t.Helper()
	v := New()
	g := engine.NewGame(v, engine.WithAutoPlay(engine.AutoPlay{}))
	g.Start(random.MustParse(seed))
	return g, v
}

func TestInitialFans(t *testing.T) {
	g, _ := newGame(t, "ms100")
	rows := g.PilesOf(engine.KindRow)
	require.Len(t, rows, 18)
	for i, r := range rows {
		want := 3
		if i == 17 {
			want = 1
		}
		assert.Equal(t, want, r.Len(), "row %d", i)
	}
	assert.Equal(t, 1, g.Talon().Round)
	assert.Equal(t, 3, g.Talon().MaxRounds)
	assert.True(t, g.CanDealCards())
}

func TestRedealShufflesAndUndoes(t *testing.T) {
	g, _ := newGame(t, "4567890123")
	before := g.SnapshotString()
	state := g.Random().State()

	require.Equal(t, 52, g.DealCards())
	assert.Equal(t, 2, g.Talon().Round)
	assert.True(t, g.Talon().Empty())
	assert.NotEqual(t, before, g.SnapshotString())
	assert.False(t, g.Random().State().Equal(state))
	after := g.SnapshotString()

	g.Undo()
	assert.Equal(t, before, g.SnapshotString())
	assert.True(t, g.Random().State().Equal(state))
	assert.Equal(t, 1, g.Talon().Round)

	g.Redo()
	assert.Equal(t, after, g.SnapshotString())
}

func TestRedealsRunOut(t *testing.T) {
	g, _ := newGame(t, "ms9")
	require.Positive(t, g.DealCards())
	require.Positive(t, g.DealCards())
	assert.Equal(t, 3, g.Talon().Round)
	assert.False(t, g.CanDealCards())
	assert.Equal(t, 0, g.DealCards())
}

func lastRound(t *testing.T, seed string) (*engine.Game, *Game, *engine.Pile) {
	t.Helper()
	g, v := newGame(t, seed)
	g.DealCards()
	g.DealCards()
	for _, r := range g.PilesOf(engine.KindRow) {
		if r.Len() >= 3 {
			return g, v, r
		}
	}
	t.Fatal("no fan with three cards")
	return nil, nil, nil
}

func TestMerci(t *testing.T) {
	g, v, row := lastRound(t, "ms2024")
	bottom := row.Cards()[0]
	before := g.SnapshotString()

	require.True(t, v.Merci(g, row, 0))
	assert.True(t, v.MerciUsed())
	assert.Equal(t, bottom.ID, v.Drawn())
	assert.False(t, v.CanMerci(g, row, 0))

	g.Undo()
	assert.Equal(t, before, g.SnapshotString())
	assert.False(t, v.MerciUsed())
	assert.Equal(t, -1, v.Drawn())
	assert.Same(t, bottom, row.Cards()[0])

	g.Redo()
	assert.True(t, v.MerciUsed())
	assert.Same(t, bottom, row.Top())
	assert.Equal(t, bottom.ID, v.Drawn())
}

func TestMerciNotBeforeLastRound(t *testing.T) {
	g, v := newGame(t, "ms33")
	row := g.PilesOf(engine.KindRow)[0]
	assert.False(t, v.Merci(g, row, 0))
	assert.Equal(t, 0, g.HistoryLen())
}

func lookup(id int) (engine.Variant, bool) {
	if id == GameID {
		return New(), true
	}
	return nil, false
}

func TestSaveLoadKeepsHistoryAndHook(t *testing.T) {
	g, v, row := lastRound(t, "31337")
	require.True(t, v.Merci(g, row, 1))

	var buf bytes.Buffer
	require.NoError(t, g.Dump(&buf, savegame.LevelSave))

	sd, err := engine.Decode(bytes.NewReader(buf.Bytes()), lookup)
	require.NoError(t, err)
	loaded, err := sd.NewGame()
	require.NoError(t, err)

	assert.Equal(t, g.SnapshotString(), loaded.SnapshotString())
	assert.Equal(t, g.MoveIndex(), loaded.MoveIndex())
	assert.Equal(t, engine.StatePlay, loaded.State())
	assert.Equal(t, 3, loaded.Talon().Round)
	lv := loaded.Variant().(*Game)
	assert.True(t, lv.MerciUsed())
	assert.Equal(t, v.Drawn(), lv.Drawn())

	// undo everything on the loaded copy, including both shuffles
	end := g.SnapshotString()
	rngState := g.Random().State()
	for loaded.CanUndo() {
		loaded.Undo()
	}
	fresh, _ := newGame(t, "31337")
	assert.Equal(t, fresh.SnapshotString(), loaded.SnapshotString())
	assert.True(t, fresh.Random().State().Equal(loaded.Random().State()))
	assert.Equal(t, end, g.SnapshotString())
	assert.True(t, rngState.Equal(g.Random().State()), "the saved game shares no generator with the loaded one")
}
