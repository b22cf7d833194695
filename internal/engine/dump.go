package engine

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"maps"
	"math/big"
	"os"
	"slices"

	"github.com/vovakirdan/tui-patience/internal/cards"
	"github.com/vovakirdan/tui-patience/internal/random"
	"github.com/vovakirdan/tui-patience/internal/savegame"
)

const (
	eofMarker   = "EOF"
	maxPileSize = 1024
	maxHistory  = 1 << 20
)

// UndoBookmark is the slot holding the position before the last
// GotoBookmark.
const UndoBookmark = -1

// ErrNoBookmark is returned by GotoBookmark for an empty slot.
var ErrNoBookmark = errors.New("engine: no such bookmark")

// Lookup returns a new rule-set instance for a game id.
type Lookup func(id int) (Variant, bool)

// atomic move codes on the wire
const (
	codeMoveCards = iota + 1
	codeFlipCard
	codeFlipAndMove
	codeTurnStack
	codeNextRound
	codeSaveSeed
	codeShuffleStack
	codeUpdateStack
	codeFlipAll
	codeSaveState
	codeSingleCard
)

// CardState is a card position in a save.
type CardState struct {
	ID     int
	FaceUp bool
}

// SaveData is a decoded and validated save stream. Decoding never touches
// a live game; Restore or NewGame applies it.
type SaveData struct {
	Header     savegame.Header
	Seed       *big.Int
	Piles      [][]CardState
	TalonRound int
	Finished   bool

	SaveInfo       SaveInfo
	GlobalSaveInfo GlobalSaveInfo

	Entries   [][]AtomicMove
	Index     int
	Snapshots []uint64

	GlobalStats GlobalStats
	Stats       Stats
	Hook        []byte

	lookup Lookup
	rng    random.Random
}

// SeedString returns the saved seed in its canonical form.
func (sd *SaveData) SeedString() string { return random.IntToSeed(sd.Seed) }

// Dump writes the game. Level is one of the savegame.Level constants; a
// full save also counts towards GlobalStats.Saved.
func (g *Game) Dump(w io.Writer, level int) error {
	contract(len(g.moves.Current) == 0, "dump", "%d uncommitted moves", len(g.moves.Current))
	contract(level >= savegame.LevelSave && level <= savegame.LevelUndoPoint, "dump", "bad level %d", level)

	seed, err := random.SeedToInt(g.rng.SeedString())
	if err != nil {
		return fmt.Errorf("engine: cannot encode seed: %w", err)
	}
	state, err := g.rng.State().MarshalBinary()
	if err != nil {
		return fmt.Errorf("engine: cannot encode generator: %w", err)
	}

	e := savegame.NewEncoder(w)
	savegame.NewHeader(level, g.variant.Version(), g.info.ID).Write(e)
	e.BigInt(seed)
	e.Bytes(state)

	e.Int(len(g.piles))
	for _, p := range g.piles {
		e.Int(p.Len())
		for _, c := range p.cards {
			e.Int(c.ID)
			e.Bool(c.FaceUp)
		}
	}
	e.Int(g.Talon().Round)
	e.Bool(g.finished)

	if level <= savegame.LevelBookmark {
		g.captureCaps()
		writeSaveInfo(e, g.saveInfo)
		writeGlobalSaveInfo(e, g.gsaveInfo)
	}

	e.Int(len(g.moves.Entries))
	for _, entry := range g.moves.Entries {
		e.Int(len(entry))
		for _, m := range entry {
			writeMove(e, m)
		}
	}
	e.Int(g.moves.Index)
	e.Int(int(g.moves.State))
	e.Bytes(packSnapshots(g.snapshots))

	if level <= savegame.LevelBookmark {
		if level == savegame.LevelSave {
			g.gstats.Saved++
		}
		stats := g.stats
		stats.ElapsedTime = g.Elapsed()
		e.Ints(g.gstats.ints())
		e.Ints(stats.ints())
	}

	var hook []byte
	if p, ok := g.variant.(Persister); ok {
		hook = p.SaveHook(g)
	}
	e.Bytes(hook)
	e.String(eofMarker)
	return e.Flush()
}

func (g *Game) captureCaps() {
	g.saveInfo.PileCaps = g.saveInfo.PileCaps[:0]
	for _, p := range g.piles {
		g.saveInfo.PileCaps = append(g.saveInfo.PileCaps, PileCap{Pile: p.ID, BaseRank: p.BaseRank})
	}
}

func writeSaveInfo(e *savegame.Encoder, si SaveInfo) {
	flat := make([]int, 0, 2*len(si.PileCaps))
	for _, c := range si.PileCaps {
		flat = append(flat, c.Pile, int(c.BaseRank))
	}
	e.Ints(flat)
}

func writeGlobalSaveInfo(e *savegame.Encoder, gi GlobalSaveInfo) {
	slots := slices.Sorted(maps.Keys(gi.Bookmarks))
	e.Int(len(slots))
	for _, n := range slots {
		bm := gi.Bookmarks[n]
		e.Int(n)
		e.Int(bm.MovesIndex)
		e.Bytes(bm.Data)
	}
	e.String(gi.Comment)
}

func writeMove(e *savegame.Encoder, m AtomicMove) {
	switch x := m.(type) {
	case *MoveCards:
		e.Int(codeMoveCards)
		e.Ints([]int{x.N, x.From, x.To, x.Frames, x.Shadow})
	case *FlipCard:
		e.Int(codeFlipCard)
		e.Ints([]int{x.Pile})
	case *FlipAndMove:
		e.Int(codeFlipAndMove)
		e.Ints([]int{x.From, x.To, x.Frames})
	case *TurnStack:
		e.Int(codeTurnStack)
		e.Ints([]int{x.From, x.To})
	case *NextRound:
		e.Int(codeNextRound)
		e.Ints([]int{x.Pile})
	case *SaveSeed:
		e.Int(codeSaveSeed)
		e.Bytes(mustState(x.State))
	case *ShuffleStack:
		e.Int(codeShuffleStack)
		e.Ints([]int{x.Pile})
		e.Ints(x.CardIDs)
		e.Bytes(mustState(x.State))
	case *UpdateStack:
		e.Int(codeUpdateStack)
		e.Ints([]int{x.Pile, x.Flags})
	case *FlipAll:
		e.Int(codeFlipAll)
		e.Ints([]int{x.Pile})
	case *SaveState:
		e.Int(codeSaveState)
		e.Bytes(x.State)
		e.Ints([]int{x.Flags})
	case *SingleCardMove:
		e.Int(codeSingleCard)
		e.Ints([]int{x.From, x.To, x.Pos, x.Frames})
	default:
		panic(&ContractError{Op: "dump", Msg: fmt.Sprintf("unknown move %T", m)})
	}
}

func mustState(s random.State) []byte {
	b, err := s.MarshalBinary()
	contract(err == nil, "dump", "generator state: %v", err)
	return b
}

func packSnapshots(sns []uint64) []byte {
	b := make([]byte, 0, 8*len(sns))
	for _, sn := range sns {
		b = binary.LittleEndian.AppendUint64(b, sn)
	}
	return b
}

// decoder carries the layout being validated against.
type decoder struct {
	d      *savegame.Decoder
	npiles int
	ncards int
}

// Decode reads and validates a save stream. lookup resolves the game id to
// a rule-set instance.
func Decode(r io.Reader, lookup Lookup) (*SaveData, error) {
	d := savegame.NewDecoder(r)
	h, err := savegame.ReadHeader(d)
	if err != nil {
		return nil, err
	}
	v, ok := lookup(h.GameID)
	if !ok {
		return nil, savegame.Incompatible("id", "unknown game %d", h.GameID)
	}
	if !canLoad(v, h.GameVersion) {
		return nil, savegame.Incompatible("game_version", "%s cannot load rules version %d", v.Info().Name, h.GameVersion)
	}
	layout := NewGame(v)
	sd := &SaveData{Header: h, lookup: lookup}
	dec := &decoder{d: d, npiles: len(layout.piles), ncards: v.Info().NumCards()}

	if err := dec.random(sd); err != nil {
		return nil, err
	}
	if err := dec.piles(sd); err != nil {
		return nil, err
	}
	if sd.TalonRound, err = d.Int("round"); err != nil {
		return nil, err
	}
	talon := layout.Talon()
	if sd.TalonRound < 1 || (talon.MaxRounds >= 0 && sd.TalonRound > talon.MaxRounds) {
		return nil, savegame.Inconsistent("round", "round %d out of range", sd.TalonRound)
	}
	if sd.Finished, err = d.Bool("finished"); err != nil {
		return nil, err
	}
	if h.Level <= savegame.LevelBookmark {
		if err := dec.saveInfo(sd); err != nil {
			return nil, err
		}
	}
	if err := dec.history(sd); err != nil {
		return nil, err
	}
	if h.Level <= savegame.LevelBookmark {
		if err := dec.stats(sd); err != nil {
			return nil, err
		}
	}
	if sd.Hook, err = d.Bytes("hook"); err != nil {
		return nil, err
	}
	if err := d.Expect("eof", eofMarker); err != nil {
		return nil, err
	}
	if err := checkHistory(layout, sd); err != nil {
		return nil, err
	}
	return sd, nil
}

// movesOnly hides the optional rule-set hooks, so replaying a history
// touches nothing but the piles and the generator.
type movesOnly struct{ Variant }

// checkHistory undoes the saved history down to the deal and redoes it to
// the end on the scratch layout. A history that does not fit the saved
// position fails here as ErrInconsistent instead of panicking on the first
// Undo of the loaded game.
func checkHistory(layout *Game, sd *SaveData) (err error) {
	rng, err := sd.newRandom()
	if err != nil {
		return err
	}
	layout.variant = movesOnly{layout.variant}
	layout.rng = rng
	for i, p := range layout.piles {
		p.clear()
		for _, cs := range sd.Piles[i] {
			c := layout.deck[cs.ID]
			c.FaceUp = cs.FaceUp
			p.addCard(c)
		}
	}
	layout.Talon().Round = sd.TalonRound

	step := -1
	defer func() {
		if r := recover(); r != nil {
			ce, ok := r.(*ContractError)
			if !ok {
				panic(r)
			}
			err = savegame.Inconsistent("moves", "move %d does not fit the position: %v", step+1, ce)
		}
	}()
	layout.moves.State = StateUndo
	for step = sd.Index - 1; step >= 0; step-- {
		entry := sd.Entries[step]
		for i := len(entry) - 1; i >= 0; i-- {
			entry[i].Undo(layout)
		}
	}
	layout.moves.State = StateRedo
	for step = 0; step < len(sd.Entries); step++ {
		for _, m := range sd.Entries[step] {
			m.Redo(layout)
		}
	}
	return nil
}

func (dec *decoder) random(sd *SaveData) error {
	seed, err := dec.d.BigInt("seed")
	if err != nil {
		return err
	}
	rng, err := random.FromInt(seed)
	if err != nil {
		return savegame.Inconsistent("seed", "%v", err)
	}
	raw, err := dec.d.Bytes("random_state")
	if err != nil {
		return err
	}
	var st random.State
	if err := st.UnmarshalBinary(raw); err != nil {
		return savegame.Damaged("random_state", "%v", err)
	}
	if err := rng.SetState(st); err != nil {
		return savegame.Inconsistent("random_state", "%v", err)
	}
	sd.Seed, sd.rng = seed, rng
	return nil
}

// newRandom returns a generator of its own at the saved position.
func (sd *SaveData) newRandom() (random.Random, error) {
	r, err := random.FromInt(sd.Seed)
	if err != nil {
		return nil, savegame.Inconsistent("seed", "%v", err)
	}
	if err := r.SetState(sd.rng.State()); err != nil {
		return nil, savegame.Inconsistent("random_state", "%v", err)
	}
	return r, nil
}

func cloneEntries(entries [][]AtomicMove) [][]AtomicMove {
	out := make([][]AtomicMove, len(entries))
	for i, e := range entries {
		out[i] = slices.Clone(e)
	}
	return out
}

func (dec *decoder) piles(sd *SaveData) error {
	d := dec.d
	n, err := d.IntRange("nstacks", 1, maxPileSize)
	if err != nil {
		return err
	}
	if n != dec.npiles {
		return savegame.Inconsistent("nstacks", "%d piles, layout has %d", n, dec.npiles)
	}
	seen := make([]bool, dec.ncards)
	total := 0
	sd.Piles = make([][]CardState, n)
	for i := range sd.Piles {
		count, err := d.IntRange("ncards", 0, maxPileSize)
		if err != nil {
			return err
		}
		pile := make([]CardState, count)
		for j := range pile {
			id, err := d.IntRange("card_id", 0, dec.ncards-1)
			if err != nil {
				return err
			}
			if seen[id] {
				return savegame.Inconsistent("card_id", "card %d appears twice", id)
			}
			seen[id] = true
			face, err := d.Bool("face_up")
			if err != nil {
				return err
			}
			pile[j] = CardState{ID: id, FaceUp: face}
		}
		sd.Piles[i] = pile
		total += count
	}
	if total != dec.ncards {
		return savegame.Inconsistent("ncards", "%d cards, game has %d", total, dec.ncards)
	}
	return nil
}

func (dec *decoder) saveInfo(sd *SaveData) error {
	d := dec.d
	flat, err := d.Ints("stack_caps")
	if err != nil {
		return err
	}
	if len(flat)%2 != 0 {
		return savegame.Damaged("stack_caps", "odd length %d", len(flat))
	}
	for i := 0; i < len(flat); i += 2 {
		if flat[i] < 0 || flat[i] >= dec.npiles {
			return savegame.Inconsistent("stack_caps", "no pile %d", flat[i])
		}
		sd.SaveInfo.PileCaps = append(sd.SaveInfo.PileCaps, PileCap{Pile: flat[i], BaseRank: cards.Rank(flat[i+1])})
	}

	nb, err := d.IntRange("bookmarks", 0, maxPileSize)
	if err != nil {
		return err
	}
	sd.GlobalSaveInfo.Bookmarks = make(map[int]Bookmark, nb)
	for i := 0; i < nb; i++ {
		slot, err := d.Int("bookmark_slot")
		if err != nil {
			return err
		}
		idx, err := d.IntRange("bookmark_index", 0, maxHistory)
		if err != nil {
			return err
		}
		data, err := d.Bytes("bookmark_data")
		if err != nil {
			return err
		}
		sd.GlobalSaveInfo.Bookmarks[slot] = Bookmark{Data: data, MovesIndex: idx}
	}
	sd.GlobalSaveInfo.Comment, err = d.String("comment")
	return err
}

func (dec *decoder) history(sd *SaveData) error {
	d := dec.d
	n, err := d.IntRange("moves", 0, maxHistory)
	if err != nil {
		return err
	}
	sd.Entries = make([][]AtomicMove, 0, min(n, 1024))
	for i := 0; i < n; i++ {
		k, err := d.IntRange("move_len", 1, maxHistory)
		if err != nil {
			return err
		}
		entry := make([]AtomicMove, 0, min(k, 64))
		for j := 0; j < k; j++ {
			m, err := dec.move()
			if err != nil {
				return err
			}
			entry = append(entry, m)
		}
		sd.Entries = append(sd.Entries, entry)
	}
	if sd.Index, err = d.IntRange("moves_index", 0, n); err != nil {
		return err
	}
	if _, err := d.Int("moves_state"); err != nil {
		return err
	}
	raw, err := d.Bytes("snapshots")
	if err != nil {
		return err
	}
	if len(raw)%8 != 0 {
		return savegame.Damaged("snapshots", "length %d", len(raw))
	}
	for i := 0; i < len(raw); i += 8 {
		sd.Snapshots = append(sd.Snapshots, binary.LittleEndian.Uint64(raw[i:]))
	}
	return nil
}

// ints reads a fixed-size int list whose first npile values are pile ids.
func (dec *decoder) ints(field string, size, npile int) ([]int, error) {
	v, err := dec.d.Ints(field)
	if err != nil {
		return nil, err
	}
	if len(v) != size {
		return nil, savegame.Damaged(field, "%d values, want %d", len(v), size)
	}
	for _, id := range v[:npile] {
		if id < 0 || id >= dec.npiles {
			return nil, savegame.Inconsistent(field, "no pile %d", id)
		}
	}
	return v, nil
}

func (dec *decoder) state(field string) (random.State, error) {
	var st random.State
	raw, err := dec.d.Bytes(field)
	if err != nil {
		return st, err
	}
	if err := st.UnmarshalBinary(raw); err != nil {
		return st, savegame.Damaged(field, "%v", err)
	}
	return st, nil
}

func (dec *decoder) move() (AtomicMove, error) {
	code, err := dec.d.Int("move")
	if err != nil {
		return nil, err
	}
	switch code {
	case codeMoveCards:
		v, err := dec.ints("move_cards", 5, 0)
		if err != nil {
			return nil, err
		}
		if err := dec.checkPiles("move_cards", v[1], v[2]); err != nil {
			return nil, err
		}
		if v[0] < 1 || v[0] > dec.ncards {
			return nil, savegame.Inconsistent("move_cards", "bad count %d", v[0])
		}
		return &MoveCards{N: v[0], From: v[1], To: v[2], Frames: v[3], Shadow: v[4]}, nil
	case codeFlipCard:
		v, err := dec.ints("flip", 1, 1)
		if err != nil {
			return nil, err
		}
		return &FlipCard{Pile: v[0]}, nil
	case codeFlipAndMove:
		v, err := dec.ints("flip_and_move", 3, 2)
		if err != nil {
			return nil, err
		}
		return &FlipAndMove{From: v[0], To: v[1], Frames: v[2]}, nil
	case codeTurnStack:
		v, err := dec.ints("turn_stack", 2, 2)
		if err != nil {
			return nil, err
		}
		return &TurnStack{From: v[0], To: v[1]}, nil
	case codeNextRound:
		v, err := dec.ints("next_round", 1, 1)
		if err != nil {
			return nil, err
		}
		return &NextRound{Pile: v[0]}, nil
	case codeSaveSeed:
		st, err := dec.state("save_seed")
		if err != nil {
			return nil, err
		}
		return &SaveSeed{State: st}, nil
	case codeShuffleStack:
		v, err := dec.ints("shuffle_stack", 1, 1)
		if err != nil {
			return nil, err
		}
		ids, err := dec.d.Ints("shuffle_ids")
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			if id < 0 || id >= dec.ncards {
				return nil, savegame.Inconsistent("shuffle_ids", "no card %d", id)
			}
		}
		st, err := dec.state("shuffle_state")
		if err != nil {
			return nil, err
		}
		return &ShuffleStack{Pile: v[0], CardIDs: ids, State: st}, nil
	case codeUpdateStack:
		v, err := dec.ints("update_stack", 2, 1)
		if err != nil {
			return nil, err
		}
		return &UpdateStack{Pile: v[0], Flags: v[1]}, nil
	case codeFlipAll:
		v, err := dec.ints("flip_all", 1, 1)
		if err != nil {
			return nil, err
		}
		return &FlipAll{Pile: v[0]}, nil
	case codeSaveState:
		data, err := dec.d.Bytes("save_state")
		if err != nil {
			return nil, err
		}
		v, err := dec.ints("save_state_flags", 1, 0)
		if err != nil {
			return nil, err
		}
		return &SaveState{State: data, Flags: v[0]}, nil
	case codeSingleCard:
		v, err := dec.ints("single_card", 4, 2)
		if err != nil {
			return nil, err
		}
		if v[2] < 0 || v[2] >= dec.ncards {
			return nil, savegame.Inconsistent("single_card", "bad position %d", v[2])
		}
		return &SingleCardMove{From: v[0], To: v[1], Pos: v[2], Frames: v[3]}, nil
	}
	return nil, savegame.Damaged("move", "unknown move code %d", code)
}

func (dec *decoder) checkPiles(field string, ids ...int) error {
	for _, id := range ids {
		if id < 0 || id >= dec.npiles {
			return savegame.Inconsistent(field, "no pile %d", id)
		}
	}
	return nil
}

func (dec *decoder) stats(sd *SaveData) error {
	gs, err := dec.ints("gstats", globalStatsFields, 0)
	if err != nil {
		return err
	}
	st, err := dec.ints("stats", statsFields, 0)
	if err != nil {
		return err
	}
	sd.GlobalStats.setInts(gs)
	sd.Stats.setInts(st)
	return nil
}

// Restore replaces the position of g with sd. Full saves also replace the
// statistics and save-info; undo-point bookmarks keep the live ones.
func (g *Game) Restore(sd *SaveData) error {
	if sd.Header.GameID != g.info.ID {
		return savegame.Inconsistent("id", "save is for game %d, not %d", sd.Header.GameID, g.info.ID)
	}
	if len(sd.Piles) != len(g.piles) {
		return savegame.Inconsistent("nstacks", "%d piles, layout has %d", len(sd.Piles), len(g.piles))
	}
	contract(len(g.moves.Current) == 0, "restore", "%d uncommitted moves", len(g.moves.Current))
	rng, err := sd.newRandom()
	if err != nil {
		return err
	}
	if p, ok := g.variant.(Persister); ok {
		if err := p.LoadHook(g, sd.Hook); err != nil {
			return &savegame.LoadError{Field: "hook", Err: fmt.Errorf("%w: %v", savegame.ErrInconsistent, err)}
		}
	}

	// a restored game is always in play, whatever state it was built in
	g.moves.State = StateRestore
	defer func() { g.moves.State = StatePlay }()

	g.rng = rng
	for i, p := range g.piles {
		p.clear()
		for _, cs := range sd.Piles[i] {
			c := g.deck[cs.ID]
			c.FaceUp = cs.FaceUp
			p.addCard(c)
		}
	}
	g.Talon().Round = sd.TalonRound
	g.finished = sd.Finished

	if sd.Header.Level <= savegame.LevelBookmark {
		g.saveInfo = sd.SaveInfo
		g.gsaveInfo = sd.GlobalSaveInfo
		for _, c := range sd.SaveInfo.PileCaps {
			g.piles[c.Pile].BaseRank = c.BaseRank
		}
		g.stats = sd.Stats
		g.gstats = sd.GlobalStats
	}

	g.moves.Entries = cloneEntries(sd.Entries)
	g.moves.Index = sd.Index
	g.moves.Current = nil
	g.snapshots = slices.Clone(sd.Snapshots)
	g.failedSnapshots = nil
	g.demoDeals = nil
	g.stuck = false
	g.resumed = g.now()
	g.updateSnapshots()
	return nil
}

// NewGame builds a game from the save, with a rule-set instance of its
// own.
func (sd *SaveData) NewGame(opts ...Option) (*Game, error) {
	v, ok := sd.lookup(sd.Header.GameID)
	if !ok {
		return nil, savegame.Incompatible("id", "unknown game %d", sd.Header.GameID)
	}
	g := NewGame(v, opts...)
	if err := g.Restore(sd); err != nil {
		return nil, err
	}
	return g, nil
}

// SaveFile writes a full save to path.
func (g *Game) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("engine: cannot create save file: %w", err)
	}
	defer f.Close()

	if err := g.Dump(f, savegame.LevelSave); err != nil {
		return fmt.Errorf("engine: cannot write save file: %w", err)
	}
	return f.Close()
}

// LoadFile reads a save file and returns the restored game.
func LoadFile(path string, lookup Lookup, opts ...Option) (*Game, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("engine: cannot open save file: %w", err)
	}
	defer f.Close()

	sd, err := Decode(f, lookup)
	if err != nil {
		return nil, err
	}
	g, err := sd.NewGame(opts...)
	if err != nil {
		return nil, err
	}
	g.gstats.Loaded++
	return g, nil
}

// SetBookmark stores the current position in slot n.
func (g *Game) SetBookmark(n int) error {
	var buf bytes.Buffer
	if err := g.Dump(&buf, savegame.LevelUndoPoint); err != nil {
		return err
	}
	g.gsaveInfo.Bookmarks[n] = Bookmark{Data: buf.Bytes(), MovesIndex: g.moves.Index}
	return nil
}

// HasBookmark reports whether slot n is set.
func (g *Game) HasBookmark(n int) bool {
	_, ok := g.gsaveInfo.Bookmarks[n]
	return ok
}

// GotoBookmark returns to the position in slot n. The position left
// behind goes to UndoBookmark.
func (g *Game) GotoBookmark(n int) error {
	return g.gotoBookmark(n, true)
}

// UndoGotoBookmark returns to the position before the last GotoBookmark.
func (g *Game) UndoGotoBookmark() error {
	return g.gotoBookmark(UndoBookmark, false)
}

func (g *Game) gotoBookmark(n int, updateStats bool) error {
	bm, ok := g.gsaveInfo.Bookmarks[n]
	if !ok {
		return fmt.Errorf("%w: %d", ErrNoBookmark, n)
	}
	self := func(id int) (Variant, bool) { return g.variant, id == g.info.ID }
	sd, err := Decode(bytes.NewReader(bm.Data), self)
	if err != nil {
		return err
	}
	if err := g.SetBookmark(UndoBookmark); err != nil {
		return err
	}
	if updateStats {
		g.stats.GotoBookmarkMoves++
		g.gstats.GotoBookmarkMoves++
	}
	return g.Restore(sd)
}
