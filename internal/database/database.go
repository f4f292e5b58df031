// Package database persists solved-game win records in Postgres.
//
// DB is a package-level pool so callers can guard persistence with a
// nil check and keep running without a database in development.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/amsibert-fmms/Solitaire/internal/difficulty"
)

// DB is the shared connection pool. Nil until Connect succeeds.
var DB *pgxpool.Pool

const schema = `
CREATE TABLE IF NOT EXISTS wins (
	id UUID PRIMARY KEY,
	deck_key TEXT NOT NULL,
	draw_mode INT NOT NULL,
	solve_time_ms DOUBLE PRECISION NOT NULL,
	node_count DOUBLE PRECISION NOT NULL,
	timestamp_utc TIMESTAMPTZ NOT NULL,
	solver_id TEXT NOT NULL DEFAULT '',
	solver_version TEXT NOT NULL DEFAULT '',
	difficulty_score DOUBLE PRECISION,
	difficulty_level TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS wins_deck_key_idx ON wins (deck_key);
CREATE INDEX IF NOT EXISTS wins_unlevelled_idx ON wins (timestamp_utc) WHERE difficulty_level = '';
`

// Connect opens the pool against url and applies the schema. On success
// the pool is stored in DB.
func Connect(ctx context.Context, url string) error {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return fmt.Errorf("database connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("database ping: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return fmt.Errorf("database schema: %w", err)
	}
	DB = pool
	logrus.Info("connected to postgres")
	return nil
}

// Close releases the pool, if any.
func Close() {
	if DB != nil {
		DB.Close()
		DB = nil
	}
}

// InsertWin stores one win record under id.
func InsertWin(ctx context.Context, id string, rec difficulty.WinRecord) error {
	if DB == nil {
		return nil
	}
	ts, err := time.Parse(time.RFC3339, rec.TimestampUTC)
	if err != nil {
		return fmt.Errorf("insert win %s: bad timestamp: %w", id, err)
	}
	_, err = DB.Exec(ctx, `
		INSERT INTO wins (id, deck_key, draw_mode, solve_time_ms, node_count,
			timestamp_utc, solver_id, solver_version, difficulty_score, difficulty_level)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		id, rec.DeckKey, rec.DrawMode, rec.SolveTimeMS, rec.NodeCount,
		ts, rec.SolverID, rec.SolverVersion, rec.DifficultyScore, rec.DifficultyLevel)
	if err != nil {
		return fmt.Errorf("insert win %s: %w", id, err)
	}
	return nil
}

// FetchWinsByDeckKey returns every win recorded for deckKey, newest first.
func FetchWinsByDeckKey(ctx context.Context, deckKey string) ([]difficulty.WinRecord, error) {
	if DB == nil {
		return nil, nil
	}
	rows, err := DB.Query(ctx, `
		SELECT deck_key, draw_mode, solve_time_ms, node_count, timestamp_utc,
			solver_id, solver_version, difficulty_score, difficulty_level
		FROM wins WHERE deck_key = $1 ORDER BY timestamp_utc DESC`, deckKey)
	if err != nil {
		return nil, fmt.Errorf("fetch wins for %s: %w", deckKey, err)
	}
	defer rows.Close()

	var records []difficulty.WinRecord
	for rows.Next() {
		var rec difficulty.WinRecord
		var ts time.Time
		if err := rows.Scan(&rec.DeckKey, &rec.DrawMode, &rec.SolveTimeMS, &rec.NodeCount,
			&ts, &rec.SolverID, &rec.SolverVersion, &rec.DifficultyScore, &rec.DifficultyLevel); err != nil {
			return nil, fmt.Errorf("fetch wins for %s: %w", deckKey, err)
		}
		rec.TimestampUTC = ts.UTC().Format(time.RFC3339)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// UpdateDifficulty writes the computed score and level back for the win
// identified by deckKey and timestamp.
func UpdateDifficulty(ctx context.Context, rec difficulty.WinRecord) error {
	if DB == nil {
		return nil
	}
	ts, err := time.Parse(time.RFC3339, rec.TimestampUTC)
	if err != nil {
		return fmt.Errorf("update difficulty for %s: bad timestamp: %w", rec.DeckKey, err)
	}
	_, err = DB.Exec(ctx, `
		UPDATE wins SET difficulty_score = $1, difficulty_level = $2
		WHERE deck_key = $3 AND timestamp_utc = $4`,
		rec.DifficultyScore, rec.DifficultyLevel, rec.DeckKey, ts)
	if err != nil {
		return fmt.Errorf("update difficulty for %s: %w", rec.DeckKey, err)
	}
	return nil
}
