package mood

import (
	"context"
	"testing"
)

func TestLexicon_ClassifiesKeywords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"happy text", "I feel so happy and glad today", "happy"},
		{"sad text", "feeling sad and lonely tonight", "sad"},
		{"angry text", "I am furious and annoyed at everything", "angry"},
		{"tired text", "completely exhausted and sleepy after work", "tired"},
		{"anxious text", "worried and stressed about tomorrow", "anxious"},
		{"no keywords", "the weather report said rain", FallbackLabel},
		{"case insensitive", "HAPPY HAPPY HAPPY", "happy"},
		{"punctuation stripped", "happy, happy. happy!", "happy"},
	}

	lex := NewLexicon()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := lex.Extract(context.Background(), tt.text)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("Extract(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestLexicon_MajorityWins(t *testing.T) {
	got, err := NewLexicon().Extract(context.Background(), "happy but sad sad sad")
	if err != nil {
		t.Fatal(err)
	}
	if got != "sad" {
		t.Errorf("expected majority label sad, got %q", got)
	}
}

func TestLexicon_Deterministic(t *testing.T) {
	// Equal hit counts must always resolve the same way.
	lex := NewLexicon()
	first, err := lex.Extract(context.Background(), "happy and sad")
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 20; i++ {
		got, err := lex.Extract(context.Background(), "happy and sad")
		if err != nil {
			t.Fatal(err)
		}
		if got != first {
			t.Fatalf("lexicon is not deterministic: %q vs %q", got, first)
		}
	}
}
