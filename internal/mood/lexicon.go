package mood

import (
	"context"
	"strings"
	"unicode"
)

// Compile-time interface check
var _ Extractor = (*Lexicon)(nil)

// Lexicon is a deterministic offline classifier used when no API key is
// configured (development, tests). It scores a small keyword lexicon
// against the text and ranks labels the same way the remote classifier's
// output is ranked.
type Lexicon struct{}

// NewLexicon creates the offline keyword classifier.
func NewLexicon() *Lexicon {
	return &Lexicon{}
}

// FallbackLabel is the label produced when no keyword matches.
const FallbackLabel = "neutral"

var lexicon = map[string]string{
	"happy":     "happy",
	"joy":       "happy",
	"glad":      "happy",
	"great":     "happy",
	"wonderful": "happy",
	"excited":   "happy",
	"love":      "happy",
	"sad":       "sad",
	"unhappy":   "sad",
	"down":      "sad",
	"cry":       "sad",
	"miserable": "sad",
	"lonely":    "sad",
	"angry":     "angry",
	"mad":       "angry",
	"furious":   "angry",
	"annoyed":   "angry",
	"hate":      "angry",
	"tired":     "tired",
	"exhausted": "tired",
	"sleepy":    "tired",
	"drained":   "tired",
	"anxious":   "anxious",
	"worried":   "anxious",
	"nervous":   "anxious",
	"stressed":  "anxious",
}

// Extract scores keyword hits per label and returns the top label, or
// FallbackLabel when nothing matches. Never fails.
func (l *Lexicon) Extract(ctx context.Context, text string) (string, error) {
	hits := map[string]int{}
	total := 0

	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	for _, w := range words {
		if label, ok := lexicon[w]; ok {
			hits[label]++
			total++
		}
	}

	if total == 0 {
		return FallbackLabel, nil
	}

	ranked := make([]Classification, 0, len(hits))
	for label, n := range hits {
		ranked = append(ranked, Classification{
			Label: label,
			Score: float64(n) / float64(total),
		})
	}

	label, _ := Top(ranked)
	return label, nil
}

// Name identifies the classifier in logs.
func (l *Lexicon) Name() string {
	return "lexicon"
}
