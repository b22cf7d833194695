package engine

import (
	"bytes"
	"slices"

	"github.com/vovakirdan/tui-patience/internal/random"
)

// UpdateStack and SaveState flags.
const (
	ApplyOnRedo = 1
	ApplyOnUndo = 2
	UpdateText  = 16
	UpdateView  = 32
	UpdateModel = 64
)

// AtomicMove is one reversible step of a compound move. Moves refer to
// piles by id and carry whatever they need to invert themselves.
type AtomicMove interface {
	Redo(g *Game)
	Undo(g *Game)

	// SameForRedo reports whether o repeats this move, ignoring animation
	// parameters.
	SameForRedo(o AtomicMove) bool
}

// MoveCards moves the top N cards of From onto To.
type MoveCards struct {
	N, From, To    int
	Frames, Shadow int
}

func transfer(n int, from, to *Pile) {
	to.cards = append(to.cards, from.TopN(n)...)
	from.cards = from.cards[:from.Len()-n]
}

func (m *MoveCards) Redo(g *Game) {
	from, to := g.pile("move", m.From), g.pile("move", m.To)
	contract(m.N > 0 && m.N <= from.Len(), "move", "cannot take %d cards from %s (%d)", m.N, from, from.Len())
	if g.moves.State == StatePlay {
		contract(to.Rules == nil || to.Rules.AcceptsCards(g, to, from, from.TopN(m.N)), "move", "%s does not accept %d cards from %s", to, m.N, from)
	}
	g.animator.AnimateMove(from, to, m.N, m.Frames, m.Shadow)
	transfer(m.N, from, to)
}

func (m *MoveCards) Undo(g *Game) {
	from, to := g.pile("move", m.From), g.pile("move", m.To)
	contract(m.N <= to.Len(), "move", "cannot return %d cards from %s", m.N, to)
	transfer(m.N, to, from)
}

func (m *MoveCards) SameForRedo(o AtomicMove) bool {
	x, ok := o.(*MoveCards)
	return ok && x.N == m.N && x.From == m.From && x.To == m.To
}

// FlipCard turns the top card of Pile over.
type FlipCard struct {
	Pile int
}

func (m *FlipCard) flip(g *Game) {
	p := g.pile("flip", m.Pile)
	contract(!p.Empty(), "flip", "%s is empty", p)
	p.Top().Flip()
}

func (m *FlipCard) Redo(g *Game) { m.flip(g) }
func (m *FlipCard) Undo(g *Game) { m.flip(g) }

func (m *FlipCard) SameForRedo(o AtomicMove) bool {
	x, ok := o.(*FlipCard)
	return ok && x.Pile == m.Pile
}

// FlipAndMove turns the top card of From over and moves it onto To.
type FlipAndMove struct {
	From, To int
	Frames   int
}

func (m *FlipAndMove) Redo(g *Game) {
	from, to := g.pile("flipAndMove", m.From), g.pile("flipAndMove", m.To)
	contract(!from.Empty(), "flipAndMove", "%s is empty", from)
	c := from.Top()
	c.Flip()
	if g.moves.State == StatePlay {
		contract(to.Rules == nil || to.Rules.AcceptsCards(g, to, from, from.TopN(1)), "flipAndMove", "%s does not accept %s", to, c)
	}
	g.animator.AnimateMove(from, to, 1, m.Frames, -1)
	to.addCard(from.removeTop())
}

func (m *FlipAndMove) Undo(g *Game) {
	from, to := g.pile("flipAndMove", m.From), g.pile("flipAndMove", m.To)
	contract(!to.Empty(), "flipAndMove", "%s is empty", to)
	c := to.removeTop()
	c.Flip()
	from.addCard(c)
}

func (m *FlipAndMove) SameForRedo(o AtomicMove) bool {
	x, ok := o.(*FlipAndMove)
	return ok && x.From == m.From && x.To == m.To
}

// TurnStack turns the whole of From face down onto the empty To, reversing
// the order, as when the waste is turned back into the talon.
type TurnStack struct {
	From, To int
}

func turn(from, to *Pile, faceUp bool) {
	for !from.Empty() {
		c := from.removeTop()
		contract(c.FaceUp == faceUp, "turnStack", "card %s has the wrong face", c)
		c.Flip()
		to.addCard(c)
	}
}

func (m *TurnStack) Redo(g *Game) {
	from, to := g.pile("turnStack", m.From), g.pile("turnStack", m.To)
	contract(!from.Empty() && to.Empty(), "turnStack", "need a full %s and an empty %s", from, to)
	turn(from, to, true)
}

func (m *TurnStack) Undo(g *Game) {
	from, to := g.pile("turnStack", m.From), g.pile("turnStack", m.To)
	contract(from.Empty() && !to.Empty(), "turnStack", "need an empty %s and a full %s", from, to)
	turn(to, from, false)
}

func (m *TurnStack) SameForRedo(o AtomicMove) bool {
	x, ok := o.(*TurnStack)
	return ok && x.From == m.From && x.To == m.To
}

// NextRound advances the round counter of a talon.
type NextRound struct {
	Pile int
}

func (m *NextRound) Redo(g *Game) {
	p := g.pile("nextRound", m.Pile)
	contract(p.MaxRounds < 0 || p.Round < p.MaxRounds, "nextRound", "%s already in last round %d", p, p.Round)
	p.Round++
}

func (m *NextRound) Undo(g *Game) {
	p := g.pile("nextRound", m.Pile)
	contract(p.Round > 1, "nextRound", "%s is in the first round", p)
	p.Round--
}

func (m *NextRound) SameForRedo(o AtomicMove) bool {
	x, ok := o.(*NextRound)
	return ok && x.Pile == m.Pile
}

// SaveSeed pins the generator position, in both directions.
type SaveSeed struct {
	State random.State
}

func (m *SaveSeed) Redo(g *Game) { g.setRandomState("saveSeed", m.State) }
func (m *SaveSeed) Undo(g *Game) { g.setRandomState("saveSeed", m.State) }

func (m *SaveSeed) SameForRedo(o AtomicMove) bool {
	x, ok := o.(*SaveSeed)
	return ok && x.State.Equal(m.State)
}

// ShuffleStack shuffles a pile with the game generator. CardIDs and State
// are captured before the shuffle so undo restores both exactly.
type ShuffleStack struct {
	Pile    int
	CardIDs []int
	State   random.State
}

func (m *ShuffleStack) Redo(g *Game) {
	p := g.pile("shuffleStack", m.Pile)
	g.setRandomState("shuffleStack", m.State)
	random.Shuffle(g.rng, p.cards)
}

func (m *ShuffleStack) Undo(g *Game) {
	p := g.pile("shuffleStack", m.Pile)
	contract(len(m.CardIDs) == p.Len(), "shuffleStack", "%s holds %d cards, expected %d", p, p.Len(), len(m.CardIDs))
	for i, id := range m.CardIDs {
		p.cards[i] = g.card("shuffleStack", id)
	}
	g.setRandomState("shuffleStack", m.State)
}

func (m *ShuffleStack) SameForRedo(o AtomicMove) bool {
	x, ok := o.(*ShuffleStack)
	return ok && x.Pile == m.Pile && slices.Equal(x.CardIDs, m.CardIDs) && x.State.Equal(m.State)
}

// UpdateStack asks the front end or the rule-set to refresh a pile.
type UpdateStack struct {
	Pile  int
	Flags int
}

func (m *UpdateStack) apply(g *Game, undo bool) {
	p := g.pile("updateStack", m.Pile)
	if m.Flags&UpdateModel != 0 {
		if mu, ok := g.variant.(ModelUpdater); ok {
			mu.UpdateModel(g, p, undo, m.Flags)
		}
	}
	if m.Flags&UpdateText != 0 {
		g.listener.PileChanged(p, false)
	}
	if m.Flags&UpdateView != 0 {
		g.listener.PileChanged(p, true)
	}
}

func (m *UpdateStack) Redo(g *Game) {
	if f := m.Flags & 3; f == ApplyOnRedo || f == 3 {
		m.apply(g, false)
	}
}

func (m *UpdateStack) Undo(g *Game) {
	if f := m.Flags & 3; f == ApplyOnUndo || f == 3 {
		m.apply(g, true)
	}
}

func (m *UpdateStack) SameForRedo(o AtomicMove) bool {
	x, ok := o.(*UpdateStack)
	return ok && x.Pile == m.Pile && x.Flags == m.Flags
}

// FlipAll turns every card of a pile over.
type FlipAll struct {
	Pile int
}

func (m *FlipAll) flip(g *Game) {
	for _, c := range g.pile("flipAll", m.Pile).cards {
		c.Flip()
	}
}

func (m *FlipAll) Redo(g *Game) { m.flip(g) }
func (m *FlipAll) Undo(g *Game) { m.flip(g) }

func (m *FlipAll) SameForRedo(o AtomicMove) bool {
	x, ok := o.(*FlipAll)
	return ok && x.Pile == m.Pile
}

// SaveState restores rule-set state captured when the move was made. The
// flags select the direction, as for UpdateStack.
type SaveState struct {
	State []byte
	Flags int
}

func (m *SaveState) apply(g *Game) {
	if sk, ok := g.variant.(StateKeeper); ok {
		sk.SetGameState(g, m.State)
	}
}

func (m *SaveState) Redo(g *Game) {
	if f := m.Flags & 3; f == ApplyOnRedo || f == 3 {
		m.apply(g)
	}
}

func (m *SaveState) Undo(g *Game) {
	if f := m.Flags & 3; f == ApplyOnUndo || f == 3 {
		m.apply(g)
	}
}

func (m *SaveState) SameForRedo(o AtomicMove) bool {
	x, ok := o.(*SaveState)
	return ok && bytes.Equal(x.State, m.State)
}

// SingleCardMove takes the card at Pos in From and puts it on top of To.
// From and To may be the same pile.
type SingleCardMove struct {
	From, To, Pos int
	Frames        int
}

func (m *SingleCardMove) Redo(g *Game) {
	from, to := g.pile("singleCardMove", m.From), g.pile("singleCardMove", m.To)
	contract(m.Pos >= 0 && m.Pos < from.Len(), "singleCardMove", "no card %d in %s", m.Pos, from)
	c := from.cards[m.Pos]
	if g.moves.State == StatePlay {
		contract(to.Rules == nil || to.Rules.AcceptsCards(g, to, from, from.cards[m.Pos:m.Pos+1]), "singleCardMove", "%s does not accept %s", to, c)
	}
	g.animator.AnimateMove(from, to, 1, m.Frames, -1)
	to.addCard(from.removeAt(m.Pos))
}

func (m *SingleCardMove) Undo(g *Game) {
	from, to := g.pile("singleCardMove", m.From), g.pile("singleCardMove", m.To)
	contract(!to.Empty(), "singleCardMove", "%s is empty", to)
	c := to.removeTop()
	contract(m.Pos <= from.Len(), "singleCardMove", "position %d beyond %s", m.Pos, from)
	from.insertAt(m.Pos, c)
}

func (m *SingleCardMove) SameForRedo(o AtomicMove) bool {
	x, ok := o.(*SingleCardMove)
	return ok && x.From == m.From && x.To == m.To && x.Pos == m.Pos
}

// reverses reports whether b undoes a, used to spot a player stepping back
// to the previous position.
func reverses(a, b AtomicMove) bool {
	switch x := a.(type) {
	case *MoveCards:
		y, ok := b.(*MoveCards)
		return ok && x.N == y.N && x.From == y.To && x.To == y.From
	case *FlipCard:
		y, ok := b.(*FlipCard)
		return ok && x.Pile == y.Pile
	case *FlipAll:
		y, ok := b.(*FlipAll)
		return ok && x.Pile == y.Pile
	}
	return false
}
