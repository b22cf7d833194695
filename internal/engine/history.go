package engine

// storeMove appends m to the compound move in progress when the current
// state records moves.
func (g *Game) storeMove(m AtomicMove) {
	if g.moves.State.recording() {
		g.moves.Current = append(g.moves.Current, m)
	}
}

func (g *Game) do(m AtomicMove) {
	m.Redo(g)
	g.storeMove(m)
}

// MoveMove moves the top n cards of from onto to. Frames and shadow only
// tune the animation.
func (g *Game) MoveMove(n int, from, to *Pile, frames, shadow int) {
	g.do(&MoveCards{N: n, From: from.ID, To: to.ID, Frames: frames, Shadow: shadow})
}

// FlipMove turns the top card of p over.
func (g *Game) FlipMove(p *Pile) {
	g.do(&FlipCard{Pile: p.ID})
}

// SingleFlipMove turns the top card of p over without animation. It records
// the same atomic move as FlipMove.
func (g *Game) SingleFlipMove(p *Pile) {
	g.do(&FlipCard{Pile: p.ID})
}

// FlipAndMoveMove turns the top card of from over and moves it onto to.
func (g *Game) FlipAndMoveMove(from, to *Pile, frames int) {
	g.do(&FlipAndMove{From: from.ID, To: to.ID, Frames: frames})
}

// TurnStackMove turns from face down onto the empty pile to.
func (g *Game) TurnStackMove(from, to *Pile) {
	g.do(&TurnStack{From: from.ID, To: to.ID})
}

// NextRoundMove advances the round counter of p.
func (g *Game) NextRoundMove(p *Pile) {
	g.do(&NextRound{Pile: p.ID})
}

// SaveSeedMove records the generator position.
func (g *Game) SaveSeedMove() {
	g.do(&SaveSeed{State: g.rng.State()})
}

// ShuffleStackMove shuffles p with the game generator.
func (g *Game) ShuffleStackMove(p *Pile) {
	ids := make([]int, p.Len())
	for i, c := range p.cards {
		ids[i] = c.ID
	}
	g.stats.ShuffleMoves++
	g.do(&ShuffleStack{Pile: p.ID, CardIDs: ids, State: g.rng.State()})
}

// UpdateStackMove records a refresh of p. See the Apply* and Update*
// flags.
func (g *Game) UpdateStackMove(p *Pile, flags int) {
	g.do(&UpdateStack{Pile: p.ID, Flags: flags})
}

// FlipAllMove turns every card of p over.
func (g *Game) FlipAllMove(p *Pile) {
	g.do(&FlipAll{Pile: p.ID})
}

// SaveStateMove captures the rule-set state. Variants without a
// StateKeeper record an empty state.
func (g *Game) SaveStateMove(flags int) {
	var state []byte
	if sk, ok := g.variant.(StateKeeper); ok {
		state = sk.GameState(g)
	}
	g.do(&SaveState{State: state, Flags: flags})
}

// SingleCardMove moves the card at pos in from onto to.
func (g *Game) SingleCardMove(from, to *Pile, pos, frames int) {
	g.do(&SingleCardMove{From: from.ID, To: to.ID, Pos: pos, Frames: frames})
}

func sameMoves(a, b []AtomicMove) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].SameForRedo(b[i]) {
			return false
		}
	}
	return true
}

func reversesMoves(cur, prev []AtomicMove) bool {
	if len(cur) != len(prev) {
		return false
	}
	for i := range cur {
		if !reverses(cur[i], prev[len(prev)-1-i]) {
			return false
		}
	}
	return true
}

// FinishMove commits the atomic moves made since the last call as one
// compound move and reports whether there was anything to commit.
//
// When the new move repeats the next redoable entry, that entry is
// replaced and the rest of the redo history is kept. Otherwise the redo
// history is dropped.
func (g *Game) FinishMove() bool {
	h := &g.moves
	cur := h.Current
	if len(cur) == 0 {
		return false
	}

	if g.demo {
		g.stats.DemoMoves++
		if h.Index == 0 {
			g.stats.PlayerMoves = 0
		}
	} else {
		g.stats.PlayerMoves++
		if h.Index == 0 {
			g.stats.DemoMoves = 0
		}
	}
	g.stats.TotalMoves++

	redo := h.Index < len(h.Entries) && sameMoves(cur, h.Entries[h.Index])
	// stepping straight back to the previous position cannot change
	// whether the game is stuck, so the recalculation is skipped
	undo := h.Index > 0 && reversesMoves(cur, h.Entries[h.Index-1])

	if redo {
		g.logger.Debug("redo match", "index", h.Index)
		h.Entries[h.Index] = cur
	} else {
		h.Entries = append(h.Entries[:h.Index], cur)
	}
	h.Index++
	h.Current = nil

	g.updateSnapshots()
	if !undo {
		g.UpdateStuck()
	}
	return true
}

// CancelMove rolls back the uncommitted atomic moves.
func (g *Game) CancelMove() {
	cur := g.moves.Current
	g.moves.Current = nil
	old := g.moves.State
	g.moves.State = StateUndo
	defer func() { g.moves.State = old }()
	for i := len(cur) - 1; i >= 0; i-- {
		cur[i].Undo(g)
	}
}

// replay runs f in the transient state s and returns to Play on every
// exit path.
func (g *Game) replay(s MoveState, f func()) {
	g.moves.State = s
	defer func() { g.moves.State = StatePlay }()
	f()
}

// CanUndo reports whether Undo may be called.
func (g *Game) CanUndo() bool {
	return g.moves.Index > 0 && g.moves.State == StatePlay && len(g.moves.Current) == 0
}

// CanRedo reports whether Redo may be called.
func (g *Game) CanRedo() bool {
	return g.moves.Index < len(g.moves.Entries) && g.moves.State == StatePlay && len(g.moves.Current) == 0
}

// Undo takes back the last compound move. It panics with a ContractError
// when CanUndo is false.
func (g *Game) Undo() {
	h := &g.moves
	contract(h.State == StatePlay && len(h.Current) == 0, "undo", "state %s with %d pending moves", h.State, len(h.Current))
	contract(h.Index > 0, "undo", "nothing to undo")

	h.Index--
	g.replay(StateUndo, func() {
		entry := h.Entries[h.Index]
		for i := len(entry) - 1; i >= 0; i-- {
			entry[i].Undo(g)
		}
	})

	g.stats.UndoMoves++
	g.stats.TotalMoves++
	g.updateSnapshots()
	g.failedSnapshots = nil
	g.setStuck(false)
}

// Redo replays the next compound move. It panics with a ContractError when
// CanRedo is false.
func (g *Game) Redo() {
	h := &g.moves
	contract(h.State == StatePlay && len(h.Current) == 0, "redo", "state %s with %d pending moves", h.State, len(h.Current))
	contract(h.Index < len(h.Entries), "redo", "nothing to redo")

	entry := h.Entries[h.Index]
	h.Index++
	g.replay(StateRedo, func() {
		for _, m := range entry {
			m.Redo(g)
		}
	})

	g.stats.RedoMoves++
	g.stats.TotalMoves++
	g.updateSnapshots()
	g.UpdateStuck()
}
