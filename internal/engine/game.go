// Package engine runs solitaire games: piles, the move history with undo
// and redo, stuck detection, hints and save files. Rule-sets plug in through
// the Variant interface.
//
// A Game is not safe for concurrent use.
package engine

import (
	"io"
	mrand "math/rand/v2"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-patience/internal/cards"
	"github.com/vovakirdan/tui-patience/internal/random"
)

// History is the undo/redo record. Entries[:Index] have been played,
// Entries[Index:] can be redone. Current collects the atomic moves of the
// compound move in progress.
type History struct {
	Current []AtomicMove
	Entries [][]AtomicMove
	Index   int
	State   MoveState
}

// AutoPlay selects the automatic moves made after each player move.
type AutoPlay struct {
	FaceUp bool // turn face-down row tops up
	Drop   bool // move playable cards to the foundations
	Deal   bool // deal when the waste runs empty
}

// Game is one solitaire game in progress.
type Game struct {
	variant Variant
	info    Info
	piles   []*Pile
	deck    []*cards.Card
	rng     random.Random

	moves           History
	snapshots       []uint64
	failedSnapshots []uint64
	demoDeals       []uint64
	stuck           bool
	finished        bool
	demo            bool

	stats     Stats
	gstats    GlobalStats
	saveInfo  SaveInfo
	gsaveInfo GlobalSaveInfo

	auto       AutoPlay
	stuckCheck bool
	listener   Listener
	animator   Animator
	logger     *log.Logger
	cosmetic   *mrand.Rand
	now        func() time.Time
	resumed    time.Time
}

// Option configures a Game.
type Option func(*Game)

// WithListener sets the change listener.
func WithListener(l Listener) Option {
	return func(g *Game) { g.listener = l }
}

// WithAnimator sets the move animator.
func WithAnimator(a Animator) Option {
	return func(g *Game) { g.animator = a }
}

// WithLogger enables debug logging.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) { g.logger = l }
}

// WithAutoPlay selects automatic moves.
func WithAutoPlay(a AutoPlay) Option {
	return func(g *Game) { g.auto = a }
}

// WithStuckCheck toggles stuck detection after each move.
func WithStuckCheck(on bool) Option {
	return func(g *Game) { g.stuckCheck = on }
}

// WithSeedSource sets the generator used to pick fresh seeds. It is never
// used for dealing.
func WithSeedSource(src *mrand.Rand) Option {
	return func(g *Game) { g.cosmetic = src }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(g *Game) { g.now = now }
}

// NewGame builds the layout of v. Call Start to deal.
func NewGame(v Variant, opts ...Option) *Game {
	g := &Game{
		variant:    v,
		info:       v.Info(),
		auto:       AutoPlay{FaceUp: true},
		stuckCheck: true,
		listener:   nopListener{},
		animator:   nopAnimator{},
		logger:     log.New(io.Discard),
		cosmetic:   mrand.New(mrand.NewPCG(uint64(time.Now().UnixNano()), 0x9e3779b97f4a7c15)),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	v.CreateGame(g)
	contract(len(g.piles) > 0 && g.piles[0].Kind == KindTalon, "newGame", "%s: first pile must be the talon", g.info.Name)
	for _, p := range g.piles {
		p.initialBase = p.BaseRank
	}
	g.deck = cards.NewDecks(g.info.Decks)
	g.gsaveInfo.Bookmarks = map[int]Bookmark{}
	return g
}

// AddPile appends a pile to the layout. Only valid inside CreateGame.
func (g *Game) AddPile(kind PileKind, rules Rules) *Pile {
	p := &Pile{ID: len(g.piles), Kind: kind, Rules: rules, Round: 1}
	switch kind {
	case KindFoundation:
		p.BaseRank = cards.Ace
	case KindRow, KindReserve:
		p.BaseRank = AnyRank
	default:
		p.BaseRank = NoRank
	}
	if kind == KindTalon {
		p.MaxRounds = -1
		if g.info.Redeals >= 0 {
			p.MaxRounds = g.info.Redeals + 1
		}
	}
	g.piles = append(g.piles, p)
	return p
}

// Variant returns the rule-set.
func (g *Game) Variant() Variant { return g.variant }

// Info returns the rule-set description.
func (g *Game) Info() Info { return g.info }

// Piles returns all piles in id order.
func (g *Game) Piles() []*Pile { return g.piles }

// Pile returns the pile with the given id or nil.
func (g *Game) Pile(id int) *Pile {
	if id < 0 || id >= len(g.piles) {
		return nil
	}
	return g.piles[id]
}

// Talon returns the talon.
func (g *Game) Talon() *Pile { return g.piles[0] }

// PilesOf returns the piles of a kind in id order.
func (g *Game) PilesOf(kind PileKind) []*Pile {
	var out []*Pile
	for _, p := range g.piles {
		if p.Kind == kind {
			out = append(out, p)
		}
	}
	return out
}

// Random returns the game generator.
func (g *Game) Random() random.Random { return g.rng }

// Deck returns the cards in creation order.
func (g *Game) Deck() []*cards.Card { return g.deck }

// State returns the current move state.
func (g *Game) State() MoveState { return g.moves.State }

// MoveIndex returns the number of played compound moves.
func (g *Game) MoveIndex() int { return g.moves.Index }

// HistoryLen returns the number of recorded compound moves.
func (g *Game) HistoryLen() int { return len(g.moves.Entries) }

// History returns the move record. It must not be modified.
func (g *Game) History() *History { return &g.moves }

// Stats returns the per-game counters.
func (g *Game) Stats() Stats { return g.stats }

// GlobalStats returns the counters kept across restarts.
func (g *Game) GlobalStats() GlobalStats { return g.gstats }

// Stuck reports whether the last check found no moves left.
func (g *Game) Stuck() bool { return g.stuck }

// Finished reports whether the game has been won.
func (g *Game) Finished() bool { return g.finished }

// SetDemo marks subsequent moves as demo moves.
func (g *Game) SetDemo(on bool) { g.demo = on }

// Demo reports whether demo mode is on.
func (g *Game) Demo() bool { return g.demo }

// Comment returns the player's note on this game.
func (g *Game) Comment() string { return g.gsaveInfo.Comment }

// SetComment sets the player's note.
func (g *Game) SetComment(s string) { g.gsaveInfo.Comment = s }

func (g *Game) pile(op string, id int) *Pile {
	p := g.Pile(id)
	contract(p != nil, op, "no pile %d", id)
	return p
}

func (g *Game) card(op string, id int) *cards.Card {
	contract(id >= 0 && id < len(g.deck), op, "no card %d", id)
	return g.deck[id]
}

func (g *Game) setRandomState(op string, s random.State) {
	contract(g.rng.SetState(s) == nil, op, "generator state does not match %s", g.rng.Kind())
}

// Start deals a new game from r. A nil r picks a fresh random seed.
func (g *Game) Start(r random.Random) {
	if r == nil {
		r = random.NewSeed(g.cosmetic)
	}
	g.gstats = GlobalStats{}
	g.gsaveInfo = GlobalSaveInfo{Bookmarks: map[int]Bookmark{}}
	g.newGame(r)
}

// Restart deals the same seed again, keeping the global statistics and
// bookmarks.
func (g *Game) Restart() {
	g.gstats.Restarted++
	g.newGame(g.rng)
}

func (g *Game) newGame(r random.Random) {
	g.rng = r
	g.resetLayout()
	g.moves = History{State: StateInit}
	g.shuffle()

	g.variant.StartGame(g)

	g.moves = History{State: StatePlay}
	g.stats = Stats{}
	g.saveInfo = SaveInfo{}
	g.snapshots = nil
	g.failedSnapshots = nil
	g.demoDeals = nil
	g.stuck = false
	g.finished = false
	g.resumed = g.now()
	if g.gstats.StartTime.IsZero() {
		g.gstats.StartTime = g.resumed
	}
	g.updateSnapshots()
	g.logger.Debug("new game", "game", g.info.Name, "seed", r.SeedString())
}

func (g *Game) resetLayout() {
	for _, p := range g.piles {
		p.clear()
		p.Round = 1
		p.BaseRank = p.initialBase
	}
	for _, c := range g.deck {
		c.FaceUp = false
	}
}

func (g *Game) shuffle() {
	cs := slices.Clone(g.deck)
	if g.rng.Kind() == random.KindLC {
		cs = random.MSRearrange(cs)
	}
	g.rng.Reset()
	random.Shuffle(g.rng, cs)
	if h, ok := g.variant.(ShuffleHooker); ok {
		cs = h.ShuffleHook(cs)
	}
	talon := g.Talon()
	for _, c := range cs {
		c.FaceUp = false
		talon.addCard(c)
	}
}

// DealRow deals one card from the talon to each pile, turning it to face.
func (g *Game) DealRow(piles []*Pile, faceUp bool) int {
	talon := g.Talon()
	n := 0
	for _, p := range piles {
		if talon.Empty() {
			break
		}
		if talon.Top().FaceUp != faceUp {
			g.FlipMove(talon)
		}
		g.MoveMove(1, talon, p, 0, -1)
		n++
	}
	return n
}

// CanDealCards reports whether the talon can deal.
func (g *Game) CanDealCards() bool {
	d, ok := g.variant.(Dealer)
	return ok && d.CanDealCards(g)
}

// DealCards deals from the talon as one compound move, then plays
// automatic moves. It returns the number of cards dealt.
func (g *Game) DealCards() int {
	n := g.dealCards()
	if n > 0 && !g.CheckForWin() {
		g.AutoPlay()
	}
	return n
}

func (g *Game) dealCards() int {
	if !g.CanDealCards() {
		return 0
	}
	g.FinishMove()
	guard := g.EnterState(StateDeal)
	n := g.variant.(Dealer).DealCards(g)
	guard.Leave()
	g.FinishMove()
	return n
}

// PlayerMove moves the top n cards of from onto to if the rules allow it.
// Automatic face-up flips become part of the same compound move.
func (g *Game) PlayerMove(n int, from, to *Pile) bool {
	if g.finished || !g.CanMove(n, from, to) {
		return false
	}
	g.MoveMove(n, from, to, -1, -1)
	if g.auto.FaceUp {
		g.autoFlip(from)
	}
	g.FinishMove()
	if !g.CheckForWin() {
		g.AutoPlay()
	}
	return true
}

// PlayerFlip turns the top card of p face up if the rules allow it.
func (g *Game) PlayerFlip(p *Pile) bool {
	if !g.CanFlip(p) {
		return false
	}
	g.FlipMove(p)
	g.FinishMove()
	if !g.CheckForWin() {
		g.AutoPlay()
	}
	return true
}

func (g *Game) autoFlip(p *Pile) bool {
	if !p.AutoFlip || !g.CanFlip(p) {
		return false
	}
	g.FlipMove(p)
	return true
}

// AutoPlay makes automatic moves until none apply and returns their count.
func (g *Game) AutoPlay() int {
	moved := 0
	for !g.finished {
		switch {
		case g.auto.FaceUp && g.autoFlipAny():
		case g.auto.Drop && g.autoDrop():
		case g.auto.Deal && g.autoDeal():
		default:
			return moved
		}
		g.FinishMove()
		g.stats.AutoplayMoves++
		moved++
		g.CheckForWin()
	}
	return moved
}

func (g *Game) autoFlipAny() bool {
	for _, p := range g.piles {
		if g.autoFlip(p) {
			return true
		}
	}
	return false
}

func (g *Game) autoDrop() bool {
	founds := g.PilesOf(KindFoundation)
	for _, p := range g.piles {
		if !p.AutoDrop || p.Empty() || !p.Top().FaceUp {
			continue
		}
		for _, f := range founds {
			if g.CanMove(1, p, f) {
				g.MoveMove(1, p, f, -1, -1)
				if g.auto.FaceUp {
					g.autoFlip(p)
				}
				return true
			}
		}
	}
	return false
}

func (g *Game) autoDeal() bool {
	wastes := g.PilesOf(KindWaste)
	if len(wastes) == 0 || !wastes[0].Empty() || g.Talon().Empty() || !g.CanDealCards() {
		return false
	}
	guard := g.EnterState(StateDeal)
	n := g.variant.(Dealer).DealCards(g)
	guard.Leave()
	return n > 0
}

// IsWon asks the rule-set whether the game is won.
func (g *Game) IsWon() bool { return g.variant.IsGameWon(g) }

// CheckForWin marks the game finished the first time it is won.
func (g *Game) CheckForWin() bool {
	if !g.IsWon() {
		return false
	}
	g.FinishMove()
	if !g.finished {
		g.finished = true
		g.stats.ElapsedTime = g.Elapsed()
		g.listener.GameWon()
		g.logger.Debug("game won", "game", g.info.Name, "moves", g.stats.PlayerMoves)
	}
	return true
}

// Elapsed returns the playing time so far.
func (g *Game) Elapsed() time.Duration {
	if g.finished {
		return g.stats.ElapsedTime
	}
	return g.stats.ElapsedTime + g.now().Sub(g.resumed)
}
