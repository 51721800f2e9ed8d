package journal

import (
	"fmt"
	"strings"
	"time"

	"github.com/inkwellhq/moodlog/internal/types"
)

// ListFilter restricts a listing to a mood set and an inclusive
// creation-time range. Zero-value fields mean no filtering on that axis.
type ListFilter struct {
	Moods []string
	Start *time.Time
	End   *time.Time
}

// ParseListFilter validates raw query parameters into a ListFilter.
// All supplied date parameters are validated before any filtering; one
// malformed date fails the whole request with ErrInvalidDate.
func ParseListFilter(moods, startDate, endDate string) (ListFilter, error) {
	var f ListFilter

	for _, m := range strings.Split(moods, ",") {
		if m = strings.TrimSpace(m); m != "" {
			f.Moods = append(f.Moods, m)
		}
	}

	if startDate != "" {
		t, err := parseDateBound(startDate, false)
		if err != nil {
			return ListFilter{}, err
		}
		f.Start = &t
	}
	if endDate != "" {
		t, err := parseDateBound(endDate, true)
		if err != nil {
			return ListFilter{}, err
		}
		f.End = &t
	}

	return f, nil
}

// parseDateBound parses an ISO 8601 timestamp or calendar date. A
// date-only upper bound widens to the end of its day so
// endDate=2025-06-22 includes the whole of June 22nd.
func parseDateBound(value string, upper bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}

	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	if upper {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t.UTC(), nil
}

// matches reports whether the entry survives the filter at the given
// "now". Both date bounds are inclusive; a missing start is negative
// infinity and a missing end is now, so future-dated entries are excluded
// only implicitly.
func (f ListFilter) matches(entry *types.JournalEntry, now time.Time) bool {
	if len(f.Moods) > 0 {
		found := false
		for _, m := range f.Moods {
			if entry.Mood == m {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if f.Start != nil && entry.CreatedAt.Before(*f.Start) {
		return false
	}

	end := now
	if f.End != nil {
		end = *f.End
	}
	return !entry.CreatedAt.After(end)
}

// filterEntries applies the filter over a backfilled entry set.
func filterEntries(entries []types.JournalEntry, f ListFilter, now time.Time) []types.JournalEntry {
	matched := []types.JournalEntry{}
	for i := range entries {
		if f.matches(&entries[i], now) {
			matched = append(matched, entries[i])
		}
	}
	return matched
}

// summarize groups a backfilled, range-filtered entry set by mood.
// Labels with no matching entries are omitted entirely.
func summarize(entries []types.JournalEntry) types.MoodSummary {
	summary := types.MoodSummary{}
	for i := range entries {
		summary[entries[i].Mood]++
	}
	return summary
}
