package tui

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-patience/internal/config"
	"github.com/vovakirdan/tui-patience/internal/core"
	"github.com/vovakirdan/tui-patience/internal/engine"
	"github.com/vovakirdan/tui-patience/internal/random"
	"github.com/vovakirdan/tui-patience/internal/registry"
	"github.com/vovakirdan/tui-patience/internal/savegame"
	"github.com/vovakirdan/tui-patience/internal/storage"
)

const (
	tickRate     = 8 // ticks per second, one demo move per tick
	bookmarkSlot = 1
	statusLines  = 2
)

// Options configure a board.
type Options struct {
	Game     string // registry short name, ignored when loading
	Seed     string // empty deals a random seed
	LoadPath string // save file to resume
	LoadID   string // saved game id in the store to resume
	Config   config.Config
	Store    *storage.Store // may be nil
	Logger   *log.Logger    // may be nil
	Width    int
	Height   int
	// Embedded boards do not end the program on quit; the owner checks Done.
	Embedded bool
}

// events collects engine notifications. It is held by pointer so the engine
// keeps reaching it while the Model is copied by value.
type events struct {
	stuck   bool
	won     bool
	changed int
}

func (e *events) PileChanged(*engine.Pile, bool) { e.changed++ }
func (e *events) StuckChanged(stuck bool)       { e.stuck = stuck }
func (e *events) GameWon()                      { e.won = true }

// merciPlayer is implemented by rule-sets with the Merci draw.
type merciPlayer interface {
	CanMerci(g *engine.Game, row *engine.Pile, pos int) bool
	Merci(g *engine.Game, row *engine.Pile, pos int) bool
}

// Model is the Bubble Tea model of a solitaire board.
type Model struct {
	game     *engine.Game
	name     string
	opts     Options
	logger   *log.Logger
	events   *events
	screen   *core.Screen
	layout   core.Layout
	keymap   *KeyMapper
	help     help.Model
	view     boardView
	message  string
	demo     bool
	demoRun  int
	recorded bool
	quitting bool
}

// NewModel creates a board. It deals opts.Game with opts.Seed, or resumes
// a save when opts.LoadPath or opts.LoadID is set.
func NewModel(opts Options) (Model, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(os.Stderr)
		logger.SetLevel(log.WarnLevel)
	}
	layout := core.DefaultLayout()
	if opts.Width > 0 && opts.Height > 0 {
		layout.ScreenW, layout.ScreenH = opts.Width, opts.Height
	}

	m := Model{
		opts:   opts,
		logger: logger,
		events: &events{},
		layout: layout,
		screen: core.NewScreen(layout.ScreenW, layout.ScreenH),
		keymap: NewKeyMapper(),
		help:   help.New(),
		view:   boardView{selected: -1},
	}
	m.help.Width = layout.ScreenW

	var err error
	switch {
	case opts.LoadPath != "":
		m.game, err = engine.LoadFile(opts.LoadPath, registry.Lookup, m.gameOptions()...)
	case opts.LoadID != "":
		m.game, err = m.loadStored(opts.LoadID)
	default:
		m.game, err = m.deal(opts.Game, opts.Seed)
	}
	if err != nil {
		return Model{}, err
	}
	name, ok := registry.Name(m.game.Info().ID)
	if !ok {
		return Model{}, fmt.Errorf("unknown game id %d", m.game.Info().ID)
	}
	m.name = name
	return m, nil
}

func (m *Model) gameOptions() []engine.Option {
	ap := m.opts.Config.AutoPlay
	return []engine.Option{
		engine.WithListener(m.events),
		engine.WithLogger(m.logger),
		engine.WithAutoPlay(engine.AutoPlay{FaceUp: ap.FaceUp, Drop: ap.Drop, Deal: ap.Deal}),
		engine.WithStuckCheck(m.opts.Config.StuckNotification),
	}
}

func (m *Model) deal(name, seed string) (*engine.Game, error) {
	v, err := registry.Create(name)
	if err != nil {
		return nil, err
	}
	var r random.Random
	if seed != "" {
		if r, err = random.Parse(seed); err != nil {
			return nil, err
		}
	}
	g := engine.NewGame(v, m.gameOptions()...)
	g.Start(r)
	return g, nil
}

func (m *Model) loadStored(id string) (*engine.Game, error) {
	if m.opts.Store == nil {
		return nil, errors.New("no database to load from")
	}
	sg, err := m.opts.Store.LoadGame(id)
	if err != nil {
		return nil, err
	}
	sd, err := engine.Decode(bytes.NewReader(sg.Data), registry.Lookup)
	if err != nil {
		return nil, err
	}
	return sd.NewGame(m.gameOptions()...)
}

// Game returns the game on the board.
func (m Model) Game() *engine.Game {
	return m.game
}

// Done reports whether the player left the board.
func (m Model) Done() bool {
	return m.quitting
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(tickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.Keys().Screenshot) {
			m.saveScreenshot()
			return m, nil
		}
		return m.apply(m.keymap.MapKey(msg))

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionRelease && msg.Button == tea.MouseButtonLeft {
			if i := spotAt(m.spots(), msg.X, msg.Y); i >= 0 {
				m.view.cursor = i
				return m.apply(core.ActionSelect)
			}
		}

	case tea.WindowSizeMsg:
		m.layout.ScreenW = msg.Width
		m.layout.ScreenH = msg.Height
		m.help.Width = msg.Width
		m.view.cursor = min(m.view.cursor, len(m.spots())-1)

	case TickMsg:
		if m.demo {
			m.demoStep()
		}
		return m, tickCmd(tickRate)
	}

	return m, nil
}

func (m Model) spots() []pileSpot {
	return layoutPiles(m.game, m.layout)
}

// apply runs one board action.
func (m Model) apply(a core.Action) (tea.Model, tea.Cmd) {
	if a != core.ActionNone && a != core.ActionHelp {
		m.message = ""
		m.view.hint = nil
	}
	if a != core.ActionDemo && a != core.ActionNone {
		m.demo = false
	}

	spots := m.spots()
	switch a {
	case core.ActionQuit:
		m.recordResult()
		m.quitting = true
		if m.opts.Embedded {
			return m, nil
		}
		return m, tea.Quit
	case core.ActionLeft:
		m.view.cursor = core.Wrap(m.view.cursor-1, len(spots))
	case core.ActionRight:
		m.view.cursor = core.Wrap(m.view.cursor+1, len(spots))
	case core.ActionSelect:
		m.selectPile(spots[m.view.cursor].pile)
	case core.ActionCancel:
		m.view.selected = -1
	case core.ActionDeal:
		m.dealCards()
	case core.ActionUndo:
		m.view.selected = -1
		if !m.game.CanUndo() {
			m.message = "nothing to undo"
			break
		}
		m.game.Undo()
	case core.ActionRedo:
		m.view.selected = -1
		if !m.game.CanRedo() {
			m.message = "nothing to redo"
			break
		}
		m.game.Redo()
	case core.ActionHint:
		m.showHint(spots)
	case core.ActionDemo:
		m.demo = !m.demo
		m.demoRun = 0
		m.view.selected = -1
	case core.ActionRestart:
		m.recordResult()
		m.game.Restart()
		m.reset()
	case core.ActionNewGame:
		m.recordResult()
		m.game.Start(nil)
		m.reset()
	case core.ActionSave:
		m.save()
	case core.ActionBookmark:
		if err := m.game.SetBookmark(bookmarkSlot); err != nil {
			m.fail("bookmark", err)
			break
		}
		m.message = "bookmark set"
	case core.ActionGotoBookmark:
		m.gotoBookmark(func() error { return m.game.GotoBookmark(bookmarkSlot) })
	case core.ActionUndoGoto:
		m.gotoBookmark(m.game.UndoGotoBookmark)
	case core.ActionSpecial:
		m.merci(spots[m.view.cursor].pile)
	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
	}

	m.afterMove()
	return m, nil
}

// selectPile turns up a face-down top card or picks up the longest movable
// run of p, or drops the held cards on p trying the longest run first.
func (m *Model) selectPile(p *engine.Pile) {
	if m.view.selected < 0 {
		if p.Kind == engine.KindTalon {
			m.dealCards()
			return
		}
		if m.game.PlayerFlip(p) {
			return
		}
		n := movableRun(m.game, p)
		if n == 0 {
			m.message = "nothing to pick up"
			return
		}
		m.view.selected, m.view.count = p.ID, n
		return
	}

	from := m.game.Pile(m.view.selected)
	count := m.view.count
	m.view.selected = -1
	if from == p {
		return
	}
	for n := count; n >= 1; n-- {
		if m.game.PlayerMove(n, from, p) {
			return
		}
	}
	m.message = fmt.Sprintf("cannot move %s to %s", pileName(m.game, from), pileName(m.game, p))
}

// movableRun returns the number of top cards of p the rules let the player lift.
func movableRun(g *engine.Game, p *engine.Pile) int {
	if p.Rules == nil {
		return 0
	}
	n := 0
	for k := 1; k <= p.Len(); k++ {
		if !p.Rules.CanMoveCards(g, p, p.TopN(k)) {
			break
		}
		n = k
	}
	return n
}

func (m *Model) dealCards() {
	m.view.selected = -1
	if m.game.DealCards() == 0 {
		m.message = "cannot deal"
	}
}

func (m *Model) showHint(spots []pileSpot) {
	h, ok := m.game.NextHint()
	if !ok {
		m.message = "no hints"
		return
	}
	m.view.hint = &h
	from, to := m.game.Pile(h.From), m.game.Pile(h.To)
	if i := spotOf(spots, h.From); i >= 0 {
		m.view.cursor = i
	}
	m.message = fmt.Sprintf("hint: %d card(s) from %s to %s", h.N, pileName(m.game, from), pileName(m.game, to))
}

func (m *Model) demoStep() {
	limit := m.opts.Config.Demo.MaxMoves
	if (limit > 0 && m.demoRun >= limit) || !m.game.DemoStep() {
		m.demo = false
		m.message = "demo stopped"
		m.afterMove()
		return
	}
	m.demoRun++
	m.afterMove()
}

func (m *Model) merci(p *engine.Pile) {
	mp, ok := m.game.Variant().(merciPlayer)
	if !ok {
		m.message = "no special move in " + m.game.Info().Name
		return
	}
	if !mp.CanMerci(m.game, p, 0) || !mp.Merci(m.game, p, 0) {
		m.message = "merci is not possible here"
		return
	}
	m.message = "merci"
}

func (m *Model) gotoBookmark(jump func() error) {
	m.view.selected = -1
	if err := jump(); err != nil {
		if errors.Is(err, engine.ErrNoBookmark) {
			m.message = "no bookmark"
			return
		}
		m.fail("bookmark", err)
	}
}

// save writes the game to the save directory and, when a store is open,
// to the database.
func (m *Model) save() {
	var buf bytes.Buffer
	if err := m.game.Dump(&buf, savegame.LevelSave); err != nil {
		m.fail("save", err)
		return
	}

	dir, err := config.ExpandHome(m.opts.Config.SaveDir)
	if err != nil {
		m.fail("save", err)
		return
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.fail("save", err)
		return
	}
	path := filepath.Join(dir, fmt.Sprintf("%s-%s.sav", m.name, m.game.Random().SeedString()))
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		m.fail("save", err)
		return
	}
	m.message = "saved to " + path

	if m.opts.Store != nil {
		id, err := m.opts.Store.SaveGame(m.name, m.game.Random().SeedString(), m.game.MoveIndex(), buf.Bytes())
		if err != nil {
			m.logger.Warn("cannot store save", "err", err)
			return
		}
		m.message += " (id " + id + ")"
	}
}

func (m *Model) fail(what string, err error) {
	m.logger.Error(what+" failed", "err", err)
	msg := savegame.Describe(err)
	if msg == "" {
		msg = err.Error()
	}
	m.message = what + ": " + msg
}

// afterMove keeps the cursor in range and records a won game once.
func (m *Model) afterMove() {
	m.view.cursor = core.Clamp(m.view.cursor, 0, len(m.spots())-1)
	if m.events.won && !m.recorded {
		m.demo = false
		m.recordResult()
	}
}

// recordResult stores the outcome of the current deal once. Deals without
// a player move are not recorded.
func (m *Model) recordResult() {
	if m.recorded || m.opts.Store == nil {
		return
	}
	st := m.game.Stats()
	if st.PlayerMoves == 0 && !m.events.won {
		return
	}
	m.recorded = true
	_, err := m.opts.Store.SaveResult(storage.Result{
		GameID:   m.name,
		Seed:     m.game.Random().SeedString(),
		Won:      m.events.won,
		Moves:    st.PlayerMoves,
		Duration: m.game.Elapsed(),
	})
	if err != nil {
		m.logger.Warn("cannot save result", "err", err)
	}
}

// reset clears the board state after a new deal.
func (m *Model) reset() {
	*m.events = events{}
	m.view = boardView{selected: -1}
	m.recorded = false
	m.demo = false
}

// saveScreenshot saves the current board as plain text.
func (m *Model) saveScreenshot() {
	m.render()

	dir := filepath.Join(os.Getenv("HOME"), ".patience", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.name, timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.message = "screenshot failed"
		return
	}
	m.message = "screenshot saved to " + path
}

// render draws the board and the status lines into the screen buffer.
func (m *Model) render() {
	helpLines := strings.Count(m.help.View(m.keymap.Keys()), "\n") + 1
	m.screen.Resize(m.layout.ScreenW, max(1, m.layout.ScreenH-helpLines))
	m.screen.Clear()

	drawBoard(m.screen, m.spots(), m.view)

	st := m.game.Stats()
	status := fmt.Sprintf("%s  #%s  moves %d  %s",
		m.game.Info().Name, m.game.Random().SeedString(), st.PlayerMoves, formatDuration(m.game.Elapsed()))
	if m.demo {
		status += "  [demo]"
	}
	h := m.screen.Height()
	m.screen.DrawText(0, h-statusLines, status, core.ColorStatus)

	switch {
	case m.events.won:
		m.screen.DrawText(0, h-1, fmt.Sprintf("You won in %d moves!", st.PlayerMoves), core.ColorWin)
	case m.message != "":
		m.screen.DrawText(0, h-1, m.message, core.ColorDefault)
	case m.events.stuck:
		m.screen.DrawText(0, h-1, "No more useful moves. Undo or start a new deal.", core.ColorWarning)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.render()
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keymap.Keys())
}

// Run starts the Bubble Tea program with a board built from opts.
func Run(opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err = p.Run()
	return err
}
