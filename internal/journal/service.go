// Package journal implements the entry lifecycle: validation,
// orchestration of store and classifier, read-time mood backfill, and
// the filtering/aggregation queries.
package journal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/inkwellhq/moodlog/internal/mood"
	"github.com/inkwellhq/moodlog/internal/store"
	"github.com/inkwellhq/moodlog/internal/types"
)

// Options configures the entry service.
type Options struct {
	// Fallback is applied when the classifier is unavailable.
	Fallback FallbackPolicy

	// ExtractTimeout is the hard deadline for a single classifier call.
	ExtractTimeout time.Duration
}

// Service orchestrates the journal entry lifecycle over the store and
// the mood extractor.
type Service struct {
	store     store.Store
	extractor mood.Extractor
	backfill  *Backfiller
	opts      Options
}

// NewService creates the entry service.
func NewService(s store.Store, x mood.Extractor, opts Options) *Service {
	if opts.ExtractTimeout <= 0 {
		opts.ExtractTimeout = 10 * time.Second
	}
	return &Service{
		store:     s,
		extractor: x,
		backfill:  NewBackfiller(s, x, opts.Fallback, opts.ExtractTimeout),
		opts:      opts,
	}
}

// Create validates the text, persists a new entry, and synchronously
// extracts and stores its mood before returning. Unlike the lazy backfill
// for legacy records, extraction at creation time is not deferred.
//
// When the classifier is down and the fallback is enabled, the fallback
// mood is persisted so creation never fails on the external dependency.
func (s *Service) Create(ctx context.Context, text string) (*types.JournalEntry, error) {
	if strings.TrimSpace(text) == "" {
		return nil, store.ErrEmptyText
	}

	entry, err := s.store.CreateEntry(ctx, text)
	if err != nil {
		return nil, err
	}

	label, err := s.extract(ctx, text)
	if err != nil {
		if !errors.Is(err, mood.ErrUnavailable) || !s.opts.Fallback.Enabled {
			return nil, err
		}
		slog.Warn("mood extraction unavailable at create, persisting fallback",
			"entry_id", entry.ID,
			"fallback", s.opts.Fallback.Mood,
			"error", err,
		)
		label = s.opts.Fallback.Mood
	}

	if err := s.store.SetMood(ctx, entry.ID, label); err != nil {
		return nil, fmt.Errorf("persist mood: %w", err)
	}
	entry.Mood = label

	return entry, nil
}

// Get returns the entry by id, backfilling its mood when absent.
func (s *Service) Get(ctx context.Context, id string) (*types.JournalEntry, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	entry, err := s.store.GetEntry(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.backfill.Fill(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// List returns the backfilled entry set filtered by mood membership and
// inclusive creation-time range, in store order.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]types.JournalEntry, error) {
	entries, err := s.backfilledEntries(ctx)
	if err != nil {
		return nil, err
	}
	return filterEntries(entries, filter, time.Now().UTC()), nil
}

// Summary returns the mood distribution over entries in the inclusive
// creation-time range. No entries in range yields an empty mapping.
func (s *Service) Summary(ctx context.Context, filter ListFilter) (types.MoodSummary, error) {
	// A summary is over all moods; only the date bounds apply.
	filter.Moods = nil

	entries, err := s.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return summarize(entries), nil
}

// Update validates the id and text, then replaces the entry's text and
// stamps updatedAt. The mood is intentionally not recomputed on edit.
func (s *Service) Update(ctx context.Context, id, text string) (*types.JournalEntry, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, store.ErrEmptyText
	}
	return s.store.UpdateEntry(ctx, id, text)
}

// Delete removes the entry by id.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	return s.store.DeleteEntry(ctx, id)
}

// backfilledEntries scans the full entry set and guarantees every entry
// carries a mood before any filtering or aggregation.
func (s *Service) backfilledEntries(ctx context.Context) ([]types.JournalEntry, error) {
	entries, err := s.store.ListEntries(ctx)
	if err != nil {
		return nil, err
	}

	for i := range entries {
		if err := s.backfill.Fill(ctx, &entries[i]); err != nil {
			return nil, err
		}
	}
	return entries, nil
}

// extract runs a single classifier call under the configured hard timeout.
func (s *Service) extract(ctx context.Context, text string) (string, error) {
	extractCtx, cancel := context.WithTimeout(ctx, s.opts.ExtractTimeout)
	defer cancel()
	return s.extractor.Extract(extractCtx, text)
}

// validateID rejects ids that are not syntactically valid UUIDs before
// any store lookup.
func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}
	return nil
}
