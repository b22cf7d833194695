package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-patience/internal/engine"
)

func TestEnterStateOnlyLowers(t *testing.T) {
	g := newFreeCell(t, "ms1")
	require.Equal(t, engine.StatePlay, g.State())

	outer := g.EnterState(engine.StateFill)
	assert.Equal(t, engine.StateFill, g.State())

	inner := g.EnterState(engine.StateRestore)
	assert.Equal(t, engine.StateFill, g.State(), "entering a less restrictive state is a no-op")
	inner.Leave()
	assert.Equal(t, engine.StateFill, g.State())

	deeper := g.EnterState(engine.StateInit)
	assert.Equal(t, engine.StateInit, g.State())
	deeper.Leave()
	assert.Equal(t, engine.StateFill, g.State())

	outer.Leave()
	assert.Equal(t, engine.StatePlay, g.State())
}

func TestRecordingStates(t *testing.T) {
	tests := []struct {
		state  engine.MoveState
		record bool
	}{
		{engine.StateInit, false},
		{engine.StateDeal, true},
		{engine.StateFill, true},
		{engine.StateRestore, true},
		{engine.StatePlay, true},
	}
	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			g := newFreeCell(t, "ms2")
			row := g.PilesOf(engine.KindRow)[0]
			cell := g.PilesOf(engine.KindReserve)[0]

			guard := g.EnterState(tt.state)
			g.MoveMove(1, row, cell, 0, -1)
			guard.Leave()

			assert.Equal(t, tt.record, g.FinishMove())
		})
	}
}

func TestContractViolations(t *testing.T) {
	g := newFreeCell(t, "ms3")

	ce := contractPanic(t, g.Undo)
	assert.Equal(t, "undo", ce.Op)

	ce = contractPanic(t, g.Redo)
	assert.Equal(t, "redo", ce.Op)

	// a full row never accepts a card from another row whose top does not fit
	rows := g.PilesOf(engine.KindRow)
	var from, to *engine.Pile
	for _, a := range rows {
		for _, b := range rows {
			if a != b && !g.CanMove(1, a, b) {
				from, to = a, b
				break
			}
		}
		if from != nil {
			break
		}
	}
	require.NotNil(t, from)
	ce = contractPanic(t, func() { g.MoveMove(1, from, to, -1, -1) })
	assert.Equal(t, "move", ce.Op)
	assert.Contains(t, ce.Error(), "does not accept")

	// the same move is fine outside play
	guard := g.EnterState(engine.StateFill)
	g.MoveMove(1, from, to, -1, -1)
	guard.Leave()
	g.CancelMove()
}

func TestUndoWithPendingMovesPanics(t *testing.T) {
	g := newFreeCell(t, "ms4")
	playHint(t, g)
	row := g.PilesOf(engine.KindRow)[0]
	cell := g.PilesOf(engine.KindReserve)[3]
	guard := g.EnterState(engine.StateFill)
	g.MoveMove(1, row, cell, -1, -1)
	guard.Leave()

	assert.False(t, g.CanUndo())
	contractPanic(t, g.Undo)
	contractPanic(t, g.Redo)

	g.CancelMove()
	assert.True(t, g.CanUndo())
}
