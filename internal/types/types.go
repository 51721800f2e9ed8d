package types

import "time"

// JournalEntry represents a single free-text journal record and its
// derived mood label.
type JournalEntry struct {
	ID        string     `json:"id"`
	Text      string     `json:"text"`
	Mood      string     `json:"mood,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// HasMood reports whether a mood label has been computed for the entry.
// Legacy entries created before extraction existed have none until a read
// backfills them.
func (e *JournalEntry) HasMood() bool {
	return e.Mood != ""
}

// CreateEntryRequest is the body of POST /entries.
type CreateEntryRequest struct {
	Text string `json:"text"`
}

// UpdateEntryRequest is the body of PUT /entries/{id}.
type UpdateEntryRequest struct {
	Text string `json:"text"`
}

// EntryIDResponse acknowledges a create or update with the entry's id.
type EntryIDResponse struct {
	ID string `json:"id"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// MoodSummary maps each observed mood label to its entry count.
// Labels with zero matching entries never appear.
type MoodSummary map[string]int
