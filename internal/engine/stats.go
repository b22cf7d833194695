package engine

import (
	"time"

	"github.com/vovakirdan/tui-patience/internal/cards"
)

// Stats are per-game counters, reset on restart.
type Stats struct {
	Hints             int
	HighlightPiles    int
	HighlightCards    int
	HighlightSameRank int
	UndoMoves         int
	RedoMoves         int
	TotalMoves        int
	PlayerMoves       int
	DemoMoves         int
	AutoplayMoves     int
	QuickplayMoves    int
	GotoBookmarkMoves int
	ShuffleMoves      int
	DemoUpdated       int
	ElapsedTime       time.Duration
}

func (s *Stats) ints() []int {
	return []int{
		s.Hints, s.HighlightPiles, s.HighlightCards, s.HighlightSameRank,
		s.UndoMoves, s.RedoMoves, s.TotalMoves, s.PlayerMoves, s.DemoMoves,
		s.AutoplayMoves, s.QuickplayMoves, s.GotoBookmarkMoves, s.ShuffleMoves,
		s.DemoUpdated, int(s.ElapsedTime / time.Millisecond),
	}
}

const statsFields = 15

func (s *Stats) setInts(v []int) {
	*s = Stats{
		Hints: v[0], HighlightPiles: v[1], HighlightCards: v[2], HighlightSameRank: v[3],
		UndoMoves: v[4], RedoMoves: v[5], TotalMoves: v[6], PlayerMoves: v[7], DemoMoves: v[8],
		AutoplayMoves: v[9], QuickplayMoves: v[10], GotoBookmarkMoves: v[11], ShuffleMoves: v[12],
		DemoUpdated: v[13], ElapsedTime: time.Duration(v[14]) * time.Millisecond,
	}
}

// GlobalStats survive restarts of the same deal.
type GlobalStats struct {
	Holded            int
	Loaded            int
	Saved             int
	Restarted         int
	GotoBookmarkMoves int
	Updated           int
	StartTime         time.Time
	TotalElapsed      time.Duration
	StartPlayer       int
}

const globalStatsFields = 9

func (s *GlobalStats) ints() []int {
	var start int
	if !s.StartTime.IsZero() {
		start = int(s.StartTime.Unix())
	}
	return []int{
		s.Holded, s.Loaded, s.Saved, s.Restarted, s.GotoBookmarkMoves,
		s.Updated, start, int(s.TotalElapsed / time.Millisecond), s.StartPlayer,
	}
}

func (s *GlobalStats) setInts(v []int) {
	*s = GlobalStats{
		Holded: v[0], Loaded: v[1], Saved: v[2], Restarted: v[3], GotoBookmarkMoves: v[4],
		Updated: v[5], TotalElapsed: time.Duration(v[7]) * time.Millisecond, StartPlayer: v[8],
	}
	if v[6] != 0 {
		s.StartTime = time.Unix(int64(v[6]), 0)
	}
}

// PileCap is a saved pile capability override.
type PileCap struct {
	Pile     int
	BaseRank cards.Rank
}

// SaveInfo holds per-game data saved with full saves.
type SaveInfo struct {
	PileCaps []PileCap
}

// Bookmark is an in-memory level 2 dump.
type Bookmark struct {
	Data       []byte
	MovesIndex int
}

// GlobalSaveInfo survives restarts and holds the bookmarks.
type GlobalSaveInfo struct {
	Bookmarks map[int]Bookmark
	Comment   string
}
