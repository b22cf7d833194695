// Package storage provides SQLite-based persistence for game results and
// saved games. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrNotFound is returned when a saved game does not exist.
var ErrNotFound = errors.New("storage: not found")

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Result is the outcome of one finished or abandoned game.
type Result struct {
	ID        int64
	GameID    string // registry short name
	Seed      string
	Won       bool
	Moves     int
	Duration  time.Duration
	CreatedAt time.Time
}

// SavedGame is a save stream kept in the database. Data is nil in listings.
type SavedGame struct {
	ID         string
	GameID     string
	Seed       string
	MovesIndex int
	Data       []byte
	CreatedAt  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			seed TEXT NOT NULL,
			won INTEGER NOT NULL DEFAULT 0,
			moves INTEGER NOT NULL DEFAULT 0,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_game_id ON results(game_id);

		CREATE TABLE IF NOT EXISTS saves (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			seed TEXT NOT NULL,
			moves_index INTEGER NOT NULL DEFAULT 0,
			data BLOB NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_saves_game_id ON saves(game_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// parseTime converts a DATETIME column, which the driver returns either as
// time.Time or as text.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// SaveResult records a game result.
// Returns the ID of the inserted record.
func (s *Store) SaveResult(r Result) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO results (game_id, seed, won, moves, duration_secs) VALUES (?, ?, ?, ?, ?)",
		r.GameID, r.Seed, r.Won, r.Moves, int64(r.Duration/time.Second),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentResults retrieves the latest results, newest first. An empty
// gameID returns results of every game.
func (s *Store) RecentResults(gameID string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, seed, won, moves, duration_secs, created_at
		 FROM results
		 WHERE ? = '' OR game_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var secs int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.GameID, &r.Seed, &r.Won, &r.Moves, &secs, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(secs) * time.Second
		r.CreatedAt = parseTime(createdAt)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID     string
	Played     int
	Won        int
	BestMoves  int // fewest moves in a won game, 0 if none
	Fastest    time.Duration
	LastPlayed time.Time
}

// WinRate returns the share of won games in [0, 1].
func (g *GameStats) WinRate() float64 {
	if g.Played == 0 {
		return 0
	}
	return float64(g.Won) / float64(g.Played)
}

const statsQuery = `SELECT game_id, COUNT(*), COALESCE(SUM(won), 0),
		COALESCE(MIN(CASE WHEN won THEN moves END), 0),
		COALESCE(MIN(CASE WHEN won THEN duration_secs END), 0),
		MAX(created_at)
	FROM results`

func scanStats(sc interface{ Scan(...any) error }) (*GameStats, error) {
	var st GameStats
	var fastest int64
	var lastPlayed any
	if err := sc.Scan(&st.GameID, &st.Played, &st.Won, &st.BestMoves, &fastest, &lastPlayed); err != nil {
		return nil, err
	}
	st.Fastest = time.Duration(fastest) * time.Second
	st.LastPlayed = parseTime(lastPlayed)
	return &st, nil
}

// GetGameStats retrieves aggregated statistics for a specific game.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	st, err := scanStats(s.db.QueryRow(statsQuery+` WHERE game_id = ? GROUP BY game_id`, gameID))
	if errors.Is(err, sql.ErrNoRows) {
		return &GameStats{GameID: gameID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	return st, nil
}

// GetAllGamesStats retrieves statistics for all games that have been played.
func (s *Store) GetAllGamesStats() (map[string]*GameStats, error) {
	rows, err := s.db.Query(statsQuery + ` GROUP BY game_id`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all games stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*GameStats)
	for rows.Next() {
		st, err := scanStats(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		stats[st.GameID] = st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// SaveGame stores a save stream and returns its new id.
func (s *Store) SaveGame(gameID, seed string, movesIndex int, data []byte) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		"INSERT INTO saves (id, game_id, seed, moves_index, data) VALUES (?, ?, ?, ?, ?)",
		id, gameID, seed, movesIndex, data,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save game: %w", err)
	}
	return id, nil
}

// LoadGame retrieves a saved game with its data.
func (s *Store) LoadGame(id string) (*SavedGame, error) {
	var sg SavedGame
	var createdAt any
	err := s.db.QueryRow(
		`SELECT id, game_id, seed, moves_index, data, created_at FROM saves WHERE id = ?`,
		id,
	).Scan(&sg.ID, &sg.GameID, &sg.Seed, &sg.MovesIndex, &sg.Data, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: save %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load game: %w", err)
	}
	sg.CreatedAt = parseTime(createdAt)
	return &sg, nil
}

// ListSaves lists saved games without their data, newest first. An empty
// gameID lists every game.
func (s *Store) ListSaves(gameID string) ([]SavedGame, error) {
	rows, err := s.db.Query(
		`SELECT id, game_id, seed, moves_index, created_at
		 FROM saves
		 WHERE ? = '' OR game_id = ?
		 ORDER BY created_at DESC, rowid DESC`,
		gameID, gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query saves: %w", err)
	}
	defer rows.Close()

	var saves []SavedGame
	for rows.Next() {
		var sg SavedGame
		var createdAt any
		if err := rows.Scan(&sg.ID, &sg.GameID, &sg.Seed, &sg.MovesIndex, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sg.CreatedAt = parseTime(createdAt)
		saves = append(saves, sg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return saves, nil
}

// DeleteSave removes a saved game.
func (s *Store) DeleteSave(id string) error {
	result, err := s.db.Exec("DELETE FROM saves WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete save: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: save %s", ErrNotFound, id)
	}
	return nil
}
