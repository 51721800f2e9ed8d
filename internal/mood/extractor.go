package mood

import (
	"context"
	"errors"
	"sort"
)

// ErrUnavailable indicates the external classifier is unreachable or
// returned an unusable response. The service layer decides whether to
// fall back or propagate.
var ErrUnavailable = errors.New("mood classifier unavailable")

// Classification is one ranked label from the classifier.
type Classification struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Extractor maps free text to a single mood label. Implementations must
// be deterministic for identical input.
type Extractor interface {
	Extract(ctx context.Context, text string) (string, error)
	Name() string
}

// Top returns the winning label from a ranked classification list.
// Ties on score resolve to the lexicographically smaller label so the
// result is deterministic for identical input. Returns false when the
// list is empty.
func Top(ranked []Classification) (string, bool) {
	if len(ranked) == 0 {
		return "", false
	}

	sorted := make([]Classification, len(ranked))
	copy(sorted, ranked)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Score != sorted[j].Score {
			return sorted[i].Score > sorted[j].Score
		}
		return sorted[i].Label < sorted[j].Label
	})

	return sorted[0].Label, true
}
