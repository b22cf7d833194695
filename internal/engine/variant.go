package engine

import "github.com/vovakirdan/tui-patience/internal/cards"

// Info describes a rule-set.
type Info struct {
	ID        int
	Name      string
	ShortName string
	Decks     int
	// Redeals is the number of extra talon rounds; -1 means unlimited.
	Redeals int
}

// NumCards is the size of the deal.
func (i Info) NumCards() int { return i.Decks * cards.NumSuits * cards.NumRanks }

// Variant is a solitaire rule-set. The engine creates one instance per game,
// so implementations may keep per-game state.
type Variant interface {
	Info() Info

	// Version is the rule-set format version written to save files.
	Version() int

	// CreateGame adds the piles. The first pile created must be the talon.
	CreateGame(g *Game)

	// StartGame deals the shuffled talon onto the layout.
	StartGame(g *Game)

	IsGameWon(g *Game) bool
}

// Dealer is implemented by rule-sets whose talon deals during play.
type Dealer interface {
	CanDealCards(g *Game) bool
	// DealCards deals from the talon with recorded moves and returns the
	// number of cards moved.
	DealCards(g *Game) int
}

// Hinter replaces DefaultHints.
type Hinter interface {
	Hints(g *Game) []Hint
}

// ModelUpdater receives UpdateStack moves flagged with UpdateModel.
type ModelUpdater interface {
	UpdateModel(g *Game, p *Pile, undo bool, flags int)
}

// StateKeeper exposes rule-set state captured by SaveState moves.
type StateKeeper interface {
	GameState(g *Game) []byte
	SetGameState(g *Game, data []byte)
}

// Persister stores rule-set state in save files.
type Persister interface {
	SaveHook(g *Game) []byte
	LoadHook(g *Game, data []byte) error
}

// ShuffleHooker may reorder the shuffled deck before it is placed on the
// talon. The last card is dealt first.
type ShuffleHooker interface {
	ShuffleHook(cs []*cards.Card) []*cards.Card
}

// LoadChecker overrides the default rule-set version check on load.
type LoadChecker interface {
	CanLoad(gameVersion int) bool
}

func canLoad(v Variant, gameVersion int) bool {
	if lc, ok := v.(LoadChecker); ok {
		return lc.CanLoad(gameVersion)
	}
	return gameVersion == v.Version()
}
