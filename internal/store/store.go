package store

import (
	"context"

	"github.com/inkwellhq/moodlog/internal/types"
)

// Store defines the interface contract for journal entry persistence.
type Store interface {
	// CreateEntry persists a new entry with a generated id and creation
	// timestamp. The text must be non-empty.
	CreateEntry(ctx context.Context, text string) (*types.JournalEntry, error)

	// GetEntry returns the entry with the given id, or ErrNotFound.
	GetEntry(ctx context.Context, id string) (*types.JournalEntry, error)

	// ListEntries returns all live entries in insertion order.
	ListEntries(ctx context.Context) ([]types.JournalEntry, error)

	// UpdateEntry replaces the entry's text and stamps updated_at, even
	// when the text is unchanged. Returns ErrNotFound for unknown ids.
	UpdateEntry(ctx context.Context, id, text string) (*types.JournalEntry, error)

	// DeleteEntry removes the entry, or returns ErrNotFound.
	DeleteEntry(ctx context.Context, id string) error

	// SetMood records the mood label for an entry without touching
	// updated_at. The first persisted mood wins; setting a mood on an
	// entry that already has one is a no-op.
	SetMood(ctx context.Context, id, mood string) error

	// CountEntries returns the number of live entries.
	CountEntries(ctx context.Context) (int64, error)

	Close() error
}
