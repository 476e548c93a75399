package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const recordColumns = `build_id, bank_id, bank_dir, archive_path, trigger_count,
    archive_bytes, archive_sha256, status, error_message, started_at, finished_at`

// Store manages the build ledger backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open creates or connects to the ledger database at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("history path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record inserts one build. A record with an existing build ID replaces it.
func (s *Store) Record(ctx context.Context, rec Record) error {
	if strings.TrimSpace(rec.BuildID) == "" {
		return errors.New("record build: build id is empty")
	}
	if rec.Status == "" {
		rec.Status = StatusSucceeded
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT OR REPLACE INTO builds (`+recordColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.BuildID,
		rec.BankID,
		rec.BankDir,
		nullableString(rec.ArchivePath),
		rec.TriggerCount,
		rec.ArchiveBytes,
		nullableString(rec.ArchiveSHA256),
		string(rec.Status),
		nullableString(rec.Error),
		formatTime(rec.StartedAt),
		formatTime(rec.FinishedAt),
	)
	if err != nil {
		return fmt.Errorf("record build %s: %w", rec.BuildID, err)
	}
	return nil
}

// List returns builds newest first.
func (s *Store) List(ctx context.Context, filter Filter) ([]Record, error) {
	var (
		clauses []string
		args    []any
	)
	if filter.BankID != "" {
		clauses = append(clauses, "bank_id = ?")
		args = append(args, filter.BankID)
	}
	if filter.Status != "" {
		clauses = append(clauses, "status = ?")
		args = append(args, string(filter.Status))
	}

	query := `SELECT ` + recordColumns + ` FROM builds`
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY started_at DESC, build_id DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list builds: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan build: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate builds: %w", err)
	}
	return records, nil
}

// Last returns the most recent build of a bank, or nil when it was never built.
func (s *Store) Last(ctx context.Context, bankID string) (*Record, error) {
	records, err := s.List(ctx, Filter{BankID: bankID, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (Record, error) {
	var (
		rec                       Record
		archivePath, sha, errText sql.NullString
		status                    string
		started, finished         string
	)
	if err := row.Scan(
		&rec.BuildID,
		&rec.BankID,
		&rec.BankDir,
		&archivePath,
		&rec.TriggerCount,
		&rec.ArchiveBytes,
		&sha,
		&status,
		&errText,
		&started,
		&finished,
	); err != nil {
		return Record{}, err
	}
	rec.ArchivePath = archivePath.String
	rec.ArchiveSHA256 = sha.String
	rec.Error = errText.String
	rec.Status = Status(status)
	rec.StartedAt = parseTime(started)
	rec.FinishedAt = parseTime(finished)
	return rec, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return t
}
