package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/inkwellhq/moodlog/internal/types"
	_ "modernc.org/sqlite"
)

// Compile-time interface check
var _ Store = (*SQLiteStore)(nil)

// timeLayout is RFC 3339 with a fixed-width fraction so stored strings
// sort lexicographically in chronological order (RFC3339Nano trims
// trailing zeros, which breaks ORDER BY created_at).
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore is the SQLite-backed journal entry database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLiteStore instance.
// It initializes the database with WAL mode, applies pragmas, and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	// Ensure parent directory exists
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := enablePragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable pragmas: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// enablePragmas sets SQLite pragmas for optimal performance and safety.
func enablePragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
		"PRAGMA synchronous=NORMAL",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %s: %w", pragma, err)
		}
	}

	return nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateEntry persists a new entry with a server-generated UUID and
// creation timestamp.
func (s *SQLiteStore) CreateEntry(ctx context.Context, text string) (*types.JournalEntry, error) {
	if text == "" {
		return nil, ErrEmptyText
	}

	entry := types.JournalEntry{
		ID:        uuid.NewString(),
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO entries (id, text, created_at)
		VALUES (?, ?, ?)
	`, entry.ID, entry.Text, entry.CreatedAt.Format(timeLayout))
	if err != nil {
		return nil, fmt.Errorf("insert entry: %w", err)
	}

	return &entry, nil
}

// GetEntry returns the entry with the given id.
func (s *SQLiteStore) GetEntry(ctx context.Context, id string) (*types.JournalEntry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, text, mood, created_at, updated_at
		FROM entries WHERE id = ?
	`, id)

	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return entry, err
}

// ListEntries returns all entries ordered by creation time, id.
// UUIDs carry no time component, so the id is only a tie-breaker that
// keeps the scan order stable.
func (s *SQLiteStore) ListEntries(ctx context.Context) ([]types.JournalEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, text, mood, created_at, updated_at
		FROM entries ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	entries := []types.JournalEntry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

// UpdateEntry replaces the entry's text and stamps updated_at.
func (s *SQLiteStore) UpdateEntry(ctx context.Context, id, text string) (*types.JournalEntry, error) {
	if text == "" {
		return nil, ErrEmptyText
	}

	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		UPDATE entries SET text = ?, updated_at = ? WHERE id = ?
	`, text, now.Format(timeLayout), id)
	if err != nil {
		return nil, fmt.Errorf("update entry: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrNotFound
	}

	// Re-read so the caller sees the stored state. A concurrent delete
	// between the two statements surfaces as ErrNotFound.
	return s.GetEntry(ctx, id)
}

// DeleteEntry removes the entry.
func (s *SQLiteStore) DeleteEntry(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetMood records a mood label without touching updated_at. Backfill is
// not a user-facing edit. The WHERE clause keeps the first persisted mood
// when two backfills race.
func (s *SQLiteStore) SetMood(ctx context.Context, id, mood string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE entries SET mood = ? WHERE id = ? AND mood IS NULL
	`, mood, id)
	if err != nil {
		return fmt.Errorf("set mood: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// Either the entry has a mood already (no-op) or it does not exist.
		var exists int
		err := s.db.QueryRowContext(ctx, `SELECT 1 FROM entries WHERE id = ?`, id).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// CountEntries returns the number of stored entries.
func (s *SQLiteStore) CountEntries(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries`).Scan(&count)
	return count, err
}

// scanEntry scans a row into a JournalEntry, handling nullable columns
// and timestamp parsing.
func scanEntry(scanner interface{ Scan(...any) error }) (*types.JournalEntry, error) {
	var entry types.JournalEntry
	var mood sql.NullString
	var createdAt string
	var updatedAt sql.NullString

	if err := scanner.Scan(&entry.ID, &entry.Text, &mood, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	if mood.Valid {
		entry.Mood = mood.String
	}

	created, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	entry.CreatedAt = created

	if updatedAt.Valid {
		updated, err := time.Parse(time.RFC3339Nano, updatedAt.String)
		if err != nil {
			return nil, fmt.Errorf("parse updated_at: %w", err)
		}
		entry.UpdatedAt = &updated
	}

	return &entry, nil
}
