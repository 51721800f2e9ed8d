package journal

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/inkwellhq/moodlog/internal/mood"
	"github.com/inkwellhq/moodlog/internal/store"
	"github.com/inkwellhq/moodlog/internal/types"
	"golang.org/x/sync/singleflight"
)

// FallbackPolicy controls what happens when the classifier is unavailable.
// With Enabled false, extraction failures propagate to the caller.
type FallbackPolicy struct {
	Enabled bool
	Mood    string
}

// Backfiller guarantees that any entry surfaced to a caller carries a
// mood, computing and persisting it lazily for entries created before
// extraction existed. Repeated invocation on a backfilled entry is a
// no-op.
type Backfiller struct {
	store     store.Store
	extractor mood.Extractor
	fallback  FallbackPolicy
	timeout   time.Duration

	// group deduplicates concurrent backfills of the same entry so a
	// burst of reads triggers a single classifier call.
	group singleflight.Group
}

// NewBackfiller creates a read-time mood backfill policy.
func NewBackfiller(s store.Store, x mood.Extractor, fallback FallbackPolicy, timeout time.Duration) *Backfiller {
	return &Backfiller{
		store:     s,
		extractor: x,
		fallback:  fallback,
		timeout:   timeout,
	}
}

// Fill populates entry.Mood, extracting and persisting it if absent.
//
// When the classifier is unavailable and the fallback is enabled, the
// fallback mood is served but not persisted: the entry stays moodless in
// the store so a later read can retry extraction once the classifier
// recovers.
func (b *Backfiller) Fill(ctx context.Context, entry *types.JournalEntry) error {
	if entry.HasMood() {
		return nil
	}

	v, err, _ := b.group.Do(entry.ID, func() (interface{}, error) {
		extractCtx, cancel := context.WithTimeout(ctx, b.timeout)
		defer cancel()

		label, err := b.extractor.Extract(extractCtx, entry.Text)
		if err != nil {
			return "", err
		}

		// A concurrent delete is not a backfill failure; the read that
		// raced it still gets a labeled entry.
		if err := b.store.SetMood(ctx, entry.ID, label); err != nil && !errors.Is(err, store.ErrNotFound) {
			return "", err
		}
		return label, nil
	})
	if err != nil {
		if errors.Is(err, mood.ErrUnavailable) && b.fallback.Enabled {
			slog.Warn("mood backfill unavailable, serving fallback",
				"entry_id", entry.ID,
				"fallback", b.fallback.Mood,
				"error", err,
			)
			entry.Mood = b.fallback.Mood
			return nil
		}
		return err
	}

	entry.Mood = v.(string)
	return nil
}
