package journal

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/inkwellhq/moodlog/internal/mood"
	"github.com/inkwellhq/moodlog/internal/store"
	"github.com/inkwellhq/moodlog/internal/types"
)

// memStore is an in-memory store.Store for service tests.
type memStore struct {
	mu      sync.Mutex
	order   []string
	entries map[string]*types.JournalEntry

	setMoodCalls int
}

var _ store.Store = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{entries: map[string]*types.JournalEntry{}}
}

// seed inserts an entry directly, bypassing create-time extraction, the
// way a legacy record would exist.
func (m *memStore) seed(text, mood string, createdAt time.Time) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.NewString()
	m.entries[id] = &types.JournalEntry{ID: id, Text: text, Mood: mood, CreatedAt: createdAt}
	m.order = append(m.order, id)
	return id
}

func (m *memStore) CreateEntry(ctx context.Context, text string) (*types.JournalEntry, error) {
	if text == "" {
		return nil, store.ErrEmptyText
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	entry := &types.JournalEntry{ID: uuid.NewString(), Text: text, CreatedAt: time.Now().UTC()}
	m.entries[entry.ID] = entry
	m.order = append(m.order, entry.ID)
	copied := *entry
	return &copied, nil
}

func (m *memStore) GetEntry(ctx context.Context, id string) (*types.JournalEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *entry
	return &copied, nil
}

func (m *memStore) ListEntries(ctx context.Context) ([]types.JournalEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries := []types.JournalEntry{}
	for _, id := range m.order {
		if entry, ok := m.entries[id]; ok {
			entries = append(entries, *entry)
		}
	}
	return entries, nil
}

func (m *memStore) UpdateEntry(ctx context.Context, id, text string) (*types.JournalEntry, error) {
	if text == "" {
		return nil, store.ErrEmptyText
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	now := time.Now().UTC()
	entry.Text = text
	entry.UpdatedAt = &now
	copied := *entry
	return &copied, nil
}

func (m *memStore) DeleteEntry(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.entries, id)
	return nil
}

func (m *memStore) SetMood(ctx context.Context, id, mood string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setMoodCalls++
	entry, ok := m.entries[id]
	if !ok {
		return store.ErrNotFound
	}
	if entry.Mood == "" {
		entry.Mood = mood
	}
	return nil
}

func (m *memStore) CountEntries(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.entries)), nil
}

func (m *memStore) Close() error { return nil }

func (m *memStore) mood(id string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if entry, ok := m.entries[id]; ok {
		return entry.Mood
	}
	return ""
}

// stubExtractor returns a fixed label per text and counts calls.
type stubExtractor struct {
	byText map[string]string
	label  string
	err    error
	delay  time.Duration
	calls  atomic.Int64
}

func (s *stubExtractor) Extract(ctx context.Context, text string) (string, error) {
	s.calls.Add(1)
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %v", mood.ErrUnavailable, ctx.Err())
		}
	}
	if s.err != nil {
		return "", s.err
	}
	if label, ok := s.byText[text]; ok {
		return label, nil
	}
	if s.label != "" {
		return s.label, nil
	}
	return "neutral", nil
}

func (s *stubExtractor) Name() string { return "stub" }
