package store

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/docuvia/lexgate/internal/breaker"
	"github.com/docuvia/lexgate/internal/report"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS runs (
	id              TEXT PRIMARY KEY,
	timestamp       DATETIME NOT NULL,
	total_validated INTEGER NOT NULL,
	total_fallbacks INTEGER NOT NULL,
	total_issues    INTEGER NOT NULL,
	quality_rate    REAL NOT NULL,
	paused          INTEGER NOT NULL DEFAULT 0,
	report          TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS checkpoint (
	id                   INTEGER PRIMARY KEY CHECK (id = 1),
	paused               INTEGER NOT NULL,
	paused_at            DATETIME,
	pause_reason         TEXT,
	consecutive_failures INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveRun persists the run summary plus the full report JSON.
func (s *SQLiteStore) SaveRun(ctx context.Context, r *report.Report) error {
	reportJSON, err := json.Marshal(r)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal report")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (id, timestamp, total_validated, total_fallbacks, total_issues, quality_rate, paused, report)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Timestamp.UTC(), r.Summary.TotalValidated, r.Summary.TotalFallbacks,
		r.Summary.TotalIssues, r.Summary.QualityRate, boolToInt(r.Paused), string(reportJSON),
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: insert run %s", r.RunID)
	}
	return nil
}

// ListRuns returns run history newest first.
func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, timestamp, total_validated, total_fallbacks, total_issues, quality_rate, paused
		 FROM runs ORDER BY timestamp DESC LIMIT ?`, limit)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: query runs")
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var rec RunRecord
		var paused int
		if err := rows.Scan(&rec.ID, &rec.Timestamp, &rec.TotalValidated, &rec.TotalFallbacks,
			&rec.TotalIssues, &rec.QualityRate, &paused); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan run")
		}
		rec.Paused = paused != 0
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: iterate runs")
	}
	return records, nil
}

// LoadCheckpoint reads the single checkpoint row. No row means the breaker
// has never tripped.
func (s *SQLiteStore) LoadCheckpoint(ctx context.Context) (*breaker.Checkpoint, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT paused, paused_at, pause_reason, consecutive_failures FROM checkpoint WHERE id = 1`)

	var cp breaker.Checkpoint
	var paused int
	var pausedAt sql.NullTime
	var reason sql.NullString
	err := row.Scan(&paused, &pausedAt, &reason, &cp.ConsecutiveFailures)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: load checkpoint")
	}

	cp.Paused = paused != 0
	if pausedAt.Valid {
		t := pausedAt.Time.UTC()
		cp.PausedAt = &t
	}
	cp.PauseReason = reason.String
	return &cp, nil
}

// SaveCheckpoint upserts the single checkpoint row.
func (s *SQLiteStore) SaveCheckpoint(ctx context.Context, cp breaker.Checkpoint) error {
	var pausedAt any
	if cp.PausedAt != nil {
		pausedAt = cp.PausedAt.UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO checkpoint (id, paused, paused_at, pause_reason, consecutive_failures)
		 VALUES (1, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			paused = excluded.paused,
			paused_at = excluded.paused_at,
			pause_reason = excluded.pause_reason,
			consecutive_failures = excluded.consecutive_failures`,
		boolToInt(cp.Paused), pausedAt, cp.PauseReason, cp.ConsecutiveFailures,
	)
	return eris.Wrap(err, "sqlite: save checkpoint")
}

// ClearCheckpoint removes the checkpoint row.
func (s *SQLiteStore) ClearCheckpoint(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM checkpoint WHERE id = 1`)
	return eris.Wrap(err, "sqlite: clear checkpoint")
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ Store = (*SQLiteStore)(nil)
