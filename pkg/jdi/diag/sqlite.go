package diag

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteSink persists diagnostic lines to SQLite.
// It is suitable for single-process production use.
type SQLiteSink struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
	now    func() time.Time
}

// NewSQLiteSink opens (or creates) a diagnostic log at path.
// The path should be a file path (e.g., "./diag.db") or ":memory:" for testing.
func NewSQLiteSink(path string) (*SQLiteSink, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// A single connection keeps ":memory:" databases coherent.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	// Other processes may share the file; wait for their write locks.
	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS diag_records (
			id TEXT PRIMARY KEY,
			run_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			timestamp TEXT NOT NULL,
			line TEXT NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	if _, err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_diag_records_run_seq
		ON diag_records(run_id, seq)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create index: %w", err)
	}

	return &SQLiteSink{db: db, now: time.Now}, nil
}

// Write implements Sink. The record's run ID comes from the context.
//
// The sequence number is allocated inside an immediate transaction, so
// writers in other processes sharing the file cannot take the same seq.
func (s *SQLiteSink) Write(ctx context.Context, line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSinkClosed
	}

	conn, err := s.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, "BEGIN IMMEDIATE"); err != nil {
		return fmt.Errorf("begin diag write: %w", err)
	}

	runID := RunIDFromContext(ctx)
	_, err = conn.ExecContext(ctx, `
		INSERT INTO diag_records (id, run_id, seq, timestamp, line)
		VALUES (
			?, ?,
			COALESCE((SELECT MAX(seq) FROM diag_records WHERE run_id = ?), 0) + 1,
			?, ?
		)
	`, uuid.NewString(), runID, runID, s.now().UTC().Format(time.RFC3339Nano), line)
	if err != nil {
		_, _ = conn.ExecContext(context.Background(), "ROLLBACK")
		return fmt.Errorf("save diag record: %w", err)
	}
	if _, err := conn.ExecContext(ctx, "COMMIT"); err != nil {
		_, _ = conn.ExecContext(context.Background(), "ROLLBACK")
		return fmt.Errorf("commit diag record: %w", err)
	}
	return nil
}

// List returns all records for a run, ordered by sequence.
// Returns an empty slice (not error) if the run has no records.
func (s *SQLiteSink) List(ctx context.Context, runID string) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrSinkClosed
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, seq, timestamp, line
		FROM diag_records
		WHERE run_id = ?
		ORDER BY seq
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("list diag records: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		rec := Record{RunID: runID}
		var timestamp string
		if err := rows.Scan(&rec.ID, &rec.Seq, &timestamp, &rec.Line); err != nil {
			return nil, fmt.Errorf("scan diag record: %w", err)
		}
		rec.Timestamp, _ = time.Parse(time.RFC3339Nano, timestamp)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate diag records: %w", err)
	}
	return records, nil
}

// Close releases the database. Safe to call more than once.
func (s *SQLiteSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
