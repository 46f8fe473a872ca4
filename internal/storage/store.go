// Package storage keeps finished and abandoned games in SQLite.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// GameRecord is one played session.
type GameRecord struct {
	ID         string
	Variation  string
	Seed       int64
	Moves      int
	AutoMoves  int
	Won        bool
	StartedAt  time.Time
	FinishedAt time.Time
}

// VariationStats aggregates the games of one variation.
type VariationStats struct {
	Variation string
	Played    int
	Won       int
}

// Store handles SQLite persistence.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database and runs migrations. ":memory:" gives
// a private in-memory database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// A single connection keeps an in-memory database alive and serializes writers.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS games (
			id          TEXT PRIMARY KEY,
			variation   TEXT NOT NULL,
			seed        INTEGER NOT NULL,
			moves       INTEGER NOT NULL DEFAULT 0,
			automoves   INTEGER NOT NULL DEFAULT 0,
			won         INTEGER NOT NULL DEFAULT 0,
			started_at  DATETIME NOT NULL,
			finished_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS games_variation ON games(variation);
	`)
	return err
}

// RecordGame inserts a game, or updates it when the ID is already stored.
func (s *Store) RecordGame(ctx context.Context, g GameRecord) error {
	if g.ID == "" || g.Variation == "" {
		return fmt.Errorf("record game: id and variation are required")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO games (id, variation, seed, moves, automoves, won, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			moves = excluded.moves,
			automoves = excluded.automoves,
			won = excluded.won,
			finished_at = excluded.finished_at
	`, g.ID, g.Variation, g.Seed, g.Moves, g.AutoMoves, g.Won, g.StartedAt.UTC(), g.FinishedAt.UTC())
	if err != nil {
		return fmt.Errorf("record game %s: %w", g.ID, err)
	}
	return nil
}

// GetGame retrieves a game by ID. It returns sql.ErrNoRows when absent.
func (s *Store) GetGame(ctx context.Context, id string) (*GameRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, variation, seed, moves, automoves, won, started_at, finished_at
		FROM games WHERE id = ?`, id)
	g, err := scanGame(row)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// ListGames returns the most recently finished games, newest first. An empty
// variation lists every variation; limit <= 0 lists everything.
func (s *Store) ListGames(ctx context.Context, variation string, limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, variation, seed, moves, automoves, won, started_at, finished_at
		FROM games
		WHERE ? = '' OR variation = ?
		ORDER BY finished_at DESC, id
		LIMIT ?`, variation, variation, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []GameRecord
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *g)
	}
	return result, rows.Err()
}

// Stats counts played and won games per variation, ordered by name.
func (s *Store) Stats(ctx context.Context, variation string) ([]VariationStats, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT variation, COUNT(*), COALESCE(SUM(won), 0)
		FROM games
		WHERE ? = '' OR variation = ?
		GROUP BY variation
		ORDER BY variation`, variation, variation)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []VariationStats
	for rows.Next() {
		var vs VariationStats
		if err := rows.Scan(&vs.Variation, &vs.Played, &vs.Won); err != nil {
			return nil, err
		}
		result = append(result, vs)
	}
	return result, rows.Err()
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGame(sc scanner) (*GameRecord, error) {
	var g GameRecord
	if err := sc.Scan(&g.ID, &g.Variation, &g.Seed, &g.Moves, &g.AutoMoves, &g.Won, &g.StartedAt, &g.FinishedAt); err != nil {
		return nil, err
	}
	return &g, nil
}
