package engine_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-patience/internal/engine"
	"github.com/vovakirdan/tui-patience/internal/random"
)

func TestSnapshotString(t *testing.T) {
	g := newFreeCell(t, "ms24")
	// empty talon and foundations, then 4C 2C 9C 8C QS 4S 2H face up
	want := "-----" + "00031" + "00011" + "00081" + "00071" + "10111" + "10031" + "20011" + "-"
	assert.True(t, strings.HasPrefix(g.SnapshotString(), want), g.SnapshotString())
	assert.Equal(t, 16, strings.Count(g.SnapshotString(), "-"))
}

func TestSnapshotsRecordEachPositionOnce(t *testing.T) {
	g := newFreeCell(t, "ms24")
	start := g.Snapshot()
	require.Equal(t, []uint64{start}, g.Snapshots())
	assert.True(t, g.Seen())

	require.True(t, g.PlayerMove(1, row(g, 0), cell(g, 0)))
	assert.NotEqual(t, start, g.Snapshot())
	assert.Len(t, g.Snapshots(), 2)

	g.Undo()
	assert.Equal(t, start, g.Snapshot())
	assert.Len(t, g.Snapshots(), 2)
	g.Redo()
	assert.Len(t, g.Snapshots(), 2)
}

func newStub(t *testing.T, s *stub, opts ...engine.Option) *engine.Game {
	t.Helper()
	g := engine.NewGame(s, opts...)
	g.Start(random.MustParse("ms42"))
	return g
}

func TestHasMoves(t *testing.T) {
	s := &stub{id: 77, version: 1}
	g := newStub(t, s)

	assert.False(t, g.HasMoves(), "no hints and no deal")

	s.canDeal = true
	assert.True(t, g.HasMoves(), "a deal counts the first time")
	assert.False(t, g.HasMoves(), "but not again from the same position")

	s.hints = []engine.Hint{{From: 1, To: 2, N: 1}}
	assert.True(t, g.HasMoves())
	s.hints = nil
	assert.True(t, g.HasMoves(), "hints reset the failed positions")
}

func TestStuckNotifications(t *testing.T) {
	rec := &recorder{}
	s := &stub{id: 77, version: 1}
	g := newStub(t, s, engine.WithListener(rec))

	g.UpdateStuck()
	assert.True(t, g.Stuck())
	g.UpdateStuck()
	assert.Equal(t, []bool{true}, rec.stuck, "only changes are reported")

	s.hints = []engine.Hint{{}}
	g.UpdateStuck()
	assert.False(t, g.Stuck())
	assert.Equal(t, []bool{true, false}, rec.stuck)
}

func TestStuckCheckCanBeDisabled(t *testing.T) {
	rec := &recorder{}
	g := newStub(t, &stub{id: 77, version: 1}, engine.WithListener(rec), engine.WithStuckCheck(false))
	g.UpdateStuck()
	assert.False(t, g.Stuck())
	assert.Empty(t, rec.stuck)
}

func TestUndoClearsStuck(t *testing.T) {
	s := &stub{id: 77, version: 1, canDeal: true}
	g := newStub(t, s)

	// deal once, then the same position can no longer deal forever
	require.Equal(t, 1, g.DealCards())
	s.canDeal = false
	g.UpdateStuck()
	require.True(t, g.Stuck())

	g.Undo()
	assert.False(t, g.Stuck())
}
