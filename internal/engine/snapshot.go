package engine

import (
	"slices"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// SnapshotString renders the position: every card as suit, three digit
// rank and face flag, piles joined by "-".
func (g *Game) SnapshotString() string {
	var b strings.Builder
	for i, p := range g.piles {
		if i > 0 {
			b.WriteByte('-')
		}
		for _, c := range p.cards {
			b.WriteString(strconv.Itoa(int(c.Suit)))
			r := strconv.Itoa(int(c.Rank))
			b.WriteString(strings.Repeat("0", 3-len(r)))
			b.WriteString(r)
			if c.FaceUp {
				b.WriteByte('1')
			} else {
				b.WriteByte('0')
			}
		}
	}
	return b.String()
}

// Snapshot hashes the current position.
func (g *Game) Snapshot() uint64 {
	return xxhash.Sum64String(g.SnapshotString())
}

// Snapshots returns every position reached so far, in first-seen order.
func (g *Game) Snapshots() []uint64 { return g.snapshots }

// Seen reports whether the current position was reached before.
func (g *Game) Seen() bool {
	return slices.Contains(g.snapshots, g.Snapshot())
}

func (g *Game) updateSnapshots() {
	sn := g.Snapshot()
	if !slices.Contains(g.snapshots, sn) {
		g.snapshots = append(g.snapshots, sn)
	}
}

// HasMoves reports whether play can continue. Without hints, a talon that
// can still deal counts as a move only the first time a position is met,
// so endless redeals end up stuck.
func (g *Game) HasMoves() bool {
	if len(g.Hints()) > 0 || g.canFlipAny() {
		g.failedSnapshots = nil
		return true
	}
	if !g.CanDealCards() {
		return false
	}
	sn := g.Snapshot()
	if slices.Contains(g.failedSnapshots, sn) {
		return false
	}
	g.failedSnapshots = append(g.failedSnapshots, sn)
	return true
}

func (g *Game) canFlipAny() bool {
	for _, p := range g.piles {
		if g.CanFlip(p) {
			return true
		}
	}
	return false
}

// UpdateStuck recomputes the stuck flag.
func (g *Game) UpdateStuck() {
	if g.finished || !g.stuckCheck || g.IsWon() {
		return
	}
	g.setStuck(!g.HasMoves())
}

func (g *Game) setStuck(stuck bool) {
	if stuck == g.stuck {
		return
	}
	g.stuck = stuck
	g.logger.Debug("stuck changed", "stuck", stuck)
	if !g.demo {
		g.listener.StuckChanged(stuck)
	}
}
