// Package gamestore keeps finished games in a sqlite database.
package gamestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"github.com/domino14/gomoku/game"
)

var ErrNotFound = errors.New("game not found")

const schema = `CREATE TABLE IF NOT EXISTS games (
	id TEXT PRIMARY KEY,
	size INTEGER NOT NULL,
	black TEXT NOT NULL,
	white TEXT NOT NULL,
	winner TEXT NOT NULL,
	num_moves INTEGER NOT NULL,
	created_at INTEGER NOT NULL,
	record TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS games_created_at ON games(created_at);`

type Store struct {
	db *sql.DB
}

// Summary is a listing row; Get returns the full game.
type Summary struct {
	ID       string
	Size     int
	Black    string
	White    string
	Winner   string
	NumMoves int
	Created  time.Time
}

// Open opens or creates the database at path. ":memory:" gives a private
// in-memory store.
func Open(ctx context.Context, path string) (*Store, error) {
	dsn := path
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
		dsn = "file:" + path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// A single connection keeps an in-memory database alive and
	// serializes writers.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	log.Debug().Str("path", path).Msg("opened-game-store")
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save inserts the record, replacing a stored game with the same ID.
func (s *Store) Save(ctx context.Context, rec game.Record) error {
	if rec.ID == "" {
		return errors.New("record has no id")
	}
	if len(rec.Players) != 2 {
		return game.ErrPlayerCount
	}
	body, err := rec.Marshal()
	if err != nil {
		return err
	}
	winner := rec.Winner
	if winner == "" && rec.Over {
		winner = "draw"
	}
	created := rec.Created
	if created.IsZero() {
		created = time.Now()
	}
	_, err = s.db.ExecContext(ctx, `INSERT OR REPLACE INTO games
		(id, size, black, white, winner, num_moves, created_at, record)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Size, rec.Players[0].Nickname, rec.Players[1].Nickname,
		winner, len(rec.Moves), created.UnixNano(), string(body))
	return err
}

// Get returns the stored record with the given ID.
func (s *Store) Get(ctx context.Context, id string) (game.Record, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT record FROM games WHERE id = ?`, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return game.Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return game.Record{}, err
	}
	return game.UnmarshalRecord([]byte(body))
}

// List returns the most recent games first, at most limit of them.
func (s *Store) List(ctx context.Context, limit int) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, size, black, white, winner, num_moves, created_at
		FROM games ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Summary
	for rows.Next() {
		var sm Summary
		var created int64
		if err := rows.Scan(&sm.ID, &sm.Size, &sm.Black, &sm.White, &sm.Winner, &sm.NumMoves, &created); err != nil {
			return nil, err
		}
		sm.Created = time.Unix(0, created)
		out = append(out, sm)
	}
	return out, rows.Err()
}

// Count is the number of stored games.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM games`).Scan(&n)
	return n, err
}
