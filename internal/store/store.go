// Package store handles SQLite persistence of round history.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/guessnum/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for round history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS rounds (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			low INTEGER NOT NULL,
			high INTEGER NOT NULL,
			attempts INTEGER NOT NULL,
			hint_after INTEGER NOT NULL,
			secret INTEGER NOT NULL,
			won INTEGER NOT NULL,
			attempts_used INTEGER NOT NULL,
			hint_shown INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_rounds_ended_at ON rounds(ended_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertRound stores a completed round played with cfg.
func (s *Store) InsertRound(ctx context.Context, cfg model.Config, result model.RoundResult) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO rounds (started_at, ended_at, low, high, attempts, hint_after, secret, won, attempts_used, hint_shown)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		result.StartedAt.Format(time.RFC3339Nano),
		result.EndedAt.Format(time.RFC3339Nano),
		cfg.Low,
		cfg.High,
		cfg.Attempts,
		cfg.HintAfter,
		result.Secret,
		boolToInt(result.Won),
		result.AttemptsUsed,
		boolToInt(result.HintShown),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListRounds returns stored rounds oldest first, limited to the last cfg.Last when positive.
func (s *Store) ListRounds(ctx context.Context, cfg model.HistoryConfig) ([]model.RoundRecord, error) {
	query := `SELECT id, started_at, ended_at, low, high, attempts, hint_after, secret, won, attempts_used, hint_shown
		FROM rounds
		ORDER BY id ASC`
	args := []any{}
	if cfg.Last > 0 {
		query = `SELECT * FROM (
			SELECT id, started_at, ended_at, low, high, attempts, hint_after, secret, won, attempts_used, hint_shown
			FROM rounds
			ORDER BY id DESC
			LIMIT ?
		) ORDER BY id ASC`
		args = append(args, cfg.Last)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var rounds []model.RoundRecord
	for rows.Next() {
		var rec model.RoundRecord
		var startedAt, endedAt string
		var won, hintShown int
		if err := rows.Scan(&rec.ID, &startedAt, &endedAt, &rec.Low, &rec.High, &rec.Attempts,
			&rec.HintAfter, &rec.Secret, &won, &rec.AttemptsUsed, &hintShown); err != nil {
			return nil, err
		}
		if rec.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, err
		}
		if rec.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt); err != nil {
			return nil, err
		}
		rec.Won = won != 0
		rec.HintShown = hintShown != 0
		rounds = append(rounds, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rounds, nil
}

// Summary aggregates every stored round.
func (s *Store) Summary(ctx context.Context) (model.HistorySummary, error) {
	var sum model.HistorySummary
	var avg sql.NullFloat64
	var best sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
			COALESCE(SUM(won), 0),
			AVG(CASE WHEN won = 1 THEN attempts_used END),
			MIN(CASE WHEN won = 1 THEN attempts_used END)
		FROM rounds`).Scan(&sum.Rounds, &sum.Wins, &avg, &best)
	if err != nil {
		return model.HistorySummary{}, err
	}
	sum.AvgAttempts = avg.Float64
	sum.BestAttempts = int(best.Int64)
	return sum, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
