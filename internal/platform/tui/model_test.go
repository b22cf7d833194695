package tui

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-patience/internal/config"
	"github.com/vovakirdan/tui-patience/internal/core"
	"github.com/vovakirdan/tui-patience/internal/engine"
	_ "github.com/vovakirdan/tui-patience/internal/games/freecell"
	_ "github.com/vovakirdan/tui-patience/internal/games/klondike"
	_ "github.com/vovakirdan/tui-patience/internal/games/lucie"
	"github.com/vovakirdan/tui-patience/internal/storage"
)

func newBoard(t *testing.T, opts Options) Model {
	t.Helper()
	if opts.Game == "" && opts.LoadPath == "" && opts.LoadID == "" {
		opts.Game = "freecell"
	}
	if opts.Config.DefaultGame == "" {
		opts.Config = config.DefaultConfig()
		opts.Config.SaveDir = t.TempDir()
	}
	m, err := NewModel(opts)
	require.NoError(t, err)
	return m
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "patience.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func press(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var enter = tea.KeyMsg{Type: tea.KeyEnter}

// playHint plays the first hint through the keyboard: t, enter on the
// source, then enter on the target.
func playHint(t *testing.T, m Model) Model {
	t.Helper()
	m, _ = press(t, m, runes("t"))
	require.NotNil(t, m.view.hint, "no hint: %s", m.message)
	to := spotOf(m.spots(), m.view.hint.To)
	m, _ = press(t, m, enter)
	require.GreaterOrEqual(t, m.view.selected, 0, m.message)
	m.view.cursor = to
	m, _ = press(t, m, enter)
	require.Empty(t, m.message)
	return m
}

func TestNewModelDealsSeed(t *testing.T) {
	m := newBoard(t, Options{Seed: "ms24"})

	assert.Equal(t, "freecell", m.name)
	assert.Equal(t, "ms24", m.Game().Random().SeedString())
	assert.Contains(t, m.View(), "FreeCell  #ms24  moves 0")
}

func TestNewModelErrors(t *testing.T) {
	_, err := NewModel(Options{Game: "spider"})
	assert.Error(t, err)

	_, err = NewModel(Options{Game: "freecell", Seed: "12a"})
	assert.Error(t, err)

	_, err = NewModel(Options{LoadID: "x"})
	assert.Error(t, err, "loading from the store needs a store")
}

func TestLayoutPlacesEveryPileOnce(t *testing.T) {
	for _, name := range []string{"freecell", "klondike", "lucie"} {
		t.Run(name, func(t *testing.T) {
			m := newBoard(t, Options{Game: name, Seed: "ms7"})
			spots := m.spots()
			require.Len(t, spots, len(m.Game().Piles()))

			seen := map[int]bool{}
			corners := map[[2]int]bool{}
			for _, s := range spots {
				assert.False(t, seen[s.pile.ID], "pile %d placed twice", s.pile.ID)
				seen[s.pile.ID] = true
				corner := [2]int{s.rect.X, s.rect.Y}
				assert.False(t, corners[corner], "two piles at %v", corner)
				corners[corner] = true
				assert.Less(t, s.rect.Right(), m.layout.ScreenW+1)
			}
		})
	}
}

func TestKeysMoveUndoRedo(t *testing.T) {
	m := newBoard(t, Options{Seed: "ms24"})
	m = playHint(t, m)
	assert.Equal(t, 1, m.Game().Stats().PlayerMoves)

	m, _ = press(t, m, runes("u"))
	assert.Equal(t, 1, m.Game().Stats().UndoMoves)
	assert.True(t, m.Game().CanRedo())

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.Equal(t, 1, m.Game().Stats().RedoMoves)
}

func TestUndoOnFreshDeal(t *testing.T) {
	m := newBoard(t, Options{Seed: "ms24"})
	m, _ = press(t, m, runes("u"))
	assert.Equal(t, "nothing to undo", m.message)
}

func TestCursorWraps(t *testing.T) {
	m := newBoard(t, Options{Seed: "ms24"})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, len(m.spots())-1, m.view.cursor)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 0, m.view.cursor)
}

func TestMouseClickPicksUpCards(t *testing.T) {
	m := newBoard(t, Options{Seed: "ms24"})
	spots := m.spots()
	i := spotOf(spots, m.Game().PilesOf(engine.KindRow)[0].ID)
	r := spots[i].rect

	m, _ = press(t, m, tea.MouseMsg{X: r.X, Y: r.Y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	assert.Equal(t, spots[i].pile.ID, m.view.selected)
	assert.GreaterOrEqual(t, m.view.count, 1)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, -1, m.view.selected)
}

func TestQuitRecordsResult(t *testing.T) {
	store := openStore(t)

	m := newBoard(t, Options{Seed: "ms24", Store: store})
	m = playHint(t, m)
	m, cmd := press(t, m, runes("q"))
	assert.NotNil(t, cmd)
	assert.True(t, m.Done())
	assert.Empty(t, m.View())

	results, err := store.RecentResults("freecell", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "ms24", results[0].Seed)
	assert.False(t, results[0].Won)
	assert.Equal(t, 1, results[0].Moves)
}

func TestUntouchedDealIsNotRecorded(t *testing.T) {
	store := openStore(t)

	m := newBoard(t, Options{Seed: "ms24", Store: store, Embedded: true})
	m, cmd := press(t, m, runes("q"))
	assert.Nil(t, cmd, "embedded boards leave the program running")
	assert.True(t, m.Done())

	results, err := store.RecentResults("", 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSaveAndResume(t *testing.T) {
	store := openStore(t)
	m := newBoard(t, Options{Seed: "ms24", Store: store})
	m = playHint(t, m)
	m, _ = press(t, m, runes("s"))

	path := filepath.Join(m.opts.Config.SaveDir, "freecell-ms24.sav")
	_, err := os.Stat(path)
	require.NoError(t, err, m.message)

	saves, err := store.ListSaves("freecell")
	require.NoError(t, err)
	require.Len(t, saves, 1)
	assert.Equal(t, m.Game().MoveIndex(), saves[0].MovesIndex)

	for _, opts := range []Options{{LoadPath: path}, {LoadID: saves[0].ID, Store: store}} {
		loaded := newBoard(t, opts)
		assert.Equal(t, "freecell", loaded.name)
		assert.Equal(t, m.Game().SnapshotString(), loaded.Game().SnapshotString())
		assert.Equal(t, m.Game().MoveIndex(), loaded.Game().MoveIndex())
	}
}

func TestBookmarkKeys(t *testing.T) {
	m := newBoard(t, Options{Seed: "ms24"})

	m, _ = press(t, m, runes("g"))
	assert.Equal(t, "no bookmark", m.message)

	m, _ = press(t, m, runes("b"))
	assert.Equal(t, "bookmark set", m.message)
	marked := m.Game().SnapshotString()

	m = playHint(t, m)
	moved := m.Game().SnapshotString()
	require.NotEqual(t, marked, moved)

	m, _ = press(t, m, runes("g"))
	assert.Equal(t, marked, m.Game().SnapshotString())
	m, _ = press(t, m, runes("G"))
	assert.Equal(t, moved, m.Game().SnapshotString())
}

func TestDemoRunsOnTicks(t *testing.T) {
	m := newBoard(t, Options{Seed: "ms24"})
	m.opts.Config.Demo.MaxMoves = 3

	m, _ = press(t, m, runes("a"))
	require.True(t, m.demo)
	for range 5 {
		m, _ = press(t, m, TickMsg{})
	}
	assert.False(t, m.demo)
	assert.Equal(t, "demo stopped", m.message)
	assert.Equal(t, 3, m.demoRun)
	// automatic drops after a demo move count as demo moves too
	assert.GreaterOrEqual(t, m.Game().Stats().DemoMoves, 3)
	assert.Zero(t, m.Game().Stats().PlayerMoves)
}

func TestSpecialMoveNeedsRuleSupport(t *testing.T) {
	m := newBoard(t, Options{Seed: "ms24"})
	m, _ = press(t, m, runes("m"))
	assert.Equal(t, "no special move in FreeCell", m.message)
}

func TestRestartKeepsSeed(t *testing.T) {
	m := newBoard(t, Options{Seed: "ms24"})
	dealt := m.Game().SnapshotString()
	m = playHint(t, m)

	m, _ = press(t, m, runes("r"))
	assert.Equal(t, dealt, m.Game().SnapshotString())
	assert.Equal(t, 1, m.Game().GlobalStats().Restarted)
	assert.False(t, m.recorded)
}

func TestKeyMapper(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{runes("u"), core.ActionUndo},
		{tea.KeyMsg{Type: tea.KeyCtrlZ}, core.ActionUndo},
		{runes("G"), core.ActionUndoGoto},
		{runes("g"), core.ActionGotoBookmark},
		{enter, core.ActionSelect},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{runes("x"), core.ActionNone},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, km.MapKey(tt.msg), tt.msg.String())
	}
}

func TestMenuListsGamesAndSaves(t *testing.T) {
	store := openStore(t)
	_, err := store.SaveGame("klondike", "ms3", 4, []byte("data"))
	require.NoError(t, err)

	menu := NewMenuModel(store, 80, 24)
	require.Len(t, menu.items, 4)
	assert.Equal(t, "freecell", menu.items[0].GameID)
	assert.NotEmpty(t, menu.items[3].SaveID)

	next, _ := menu.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, cmd := next.Update(enter)
	menu = next.(MenuModel)
	assert.NotNil(t, cmd)
	require.NotNil(t, menu.Selected())
	assert.Equal(t, "klondike", menu.Selected().GameID)
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "no games played", Summary(nil))
	assert.Equal(t, "played 4  won 1 (25%)  best 90 moves  fastest 02:05",
		Summary(&storage.GameStats{Played: 4, Won: 1, BestMoves: 90, Fastest: 125_000_000_000}))
}
