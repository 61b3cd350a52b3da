package automatic

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	opener TEXT NOT NULL,
	created_at TEXT NOT NULL,
	games INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS games (
	run_id INTEGER NOT NULL REFERENCES runs(id),
	answer TEXT NOT NULL,
	guesses TEXT NOT NULL,
	hints TEXT NOT NULL,
	solved INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS games_run_id ON games(run_id);
`

// Run describes one saved autoplay run.
type Run struct {
	ID      int64     `yaml:"id"`
	Opener  string    `yaml:"opener"`
	Created time.Time `yaml:"created"`
	Games   int       `yaml:"games"`
}

// Store keeps autoplay results in a SQLite database so runs can be compared
// later.
type Store struct {
	db *sql.DB
}

func OpenStore(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// one writer at a time
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun stores the results of one run and returns its id.
func (s *Store) SaveRun(ctx context.Context, opener string, results []Result) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (opener, created_at, games) VALUES (?, ?, ?)`,
		opener, time.Now().UTC().Format(time.RFC3339), len(results))
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO games (run_id, answer, guesses, hints, solved) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()
	for _, r := range results {
		if _, err := stmt.ExecContext(ctx, id, r.Answer,
			strings.Join(r.Guesses, " "), strings.Join(r.Hints, " "), r.Solved); err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	log.Debug().Int64("run", id).Int("games", len(results)).Msg("saved-run")
	return id, nil
}

// Runs lists the saved runs, newest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, opener, created_at, games FROM runs ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var runs []Run
	for rows.Next() {
		var r Run
		var created string
		if err := rows.Scan(&r.ID, &r.Opener, &created, &r.Games); err != nil {
			return nil, err
		}
		if r.Created, err = time.Parse(time.RFC3339, created); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Results loads the games of a saved run in the order they were played.
func (s *Store) Results(ctx context.Context, runID int64) ([]Result, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT answer, guesses, hints, solved FROM games WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var results []Result
	for rows.Next() {
		var r Result
		var guesses, hints string
		if err := rows.Scan(&r.Answer, &guesses, &hints, &r.Solved); err != nil {
			return nil, err
		}
		r.Guesses = strings.Fields(guesses)
		r.Hints = strings.Fields(hints)
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no games saved for run %d", runID)
	}
	return results, nil
}
