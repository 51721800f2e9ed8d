package mood

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Compile-time interface check
var _ Extractor = (*OpenAI)(nil)

// ChatCompletionService defines the interface for making chat completion
// API calls. This abstraction enables testing without calling the real
// OpenAI API.
type ChatCompletionService interface {
	New(ctx context.Context, params openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

// OpenAI classifies journal text by asking a chat model for a ranked list
// of mood labels with confidence scores.
type OpenAI struct {
	chat  ChatCompletionService
	model openai.ChatModel
}

// NewOpenAI creates a new OpenAI mood classifier.
func NewOpenAI(apiKey, model string) *OpenAI {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAI{
		chat:  client.Chat.Completions,
		model: openai.ChatModel(model),
	}
}

const classifierPrompt = `You are a sentiment classifier for personal journal entries.
Given a journal entry, respond with only a JSON array of candidate moods,
each an object with a "label" (single lowercase word such as happy, sad,
angry, tired, anxious, excited, neutral) and a "score" between 0 and 1.
No prose, no markdown.`

// Extract classifies the text and returns the top-ranked mood label.
// All provider failures are reported as ErrUnavailable.
func (o *OpenAI) Extract(ctx context.Context, text string) (string, error) {
	resp, err := o.chat.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.F(o.model),
		Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(classifierPrompt),
			openai.UserMessage(text),
		}),
		Temperature: openai.F(0.0),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: completion returned no choices", ErrUnavailable)
	}

	ranked, err := parseRanked(resp.Choices[0].Message.Content)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	label, ok := Top(ranked)
	if !ok {
		return "", fmt.Errorf("%w: classifier returned no labels", ErrUnavailable)
	}
	return label, nil
}

// Name returns the configured chat model.
func (o *OpenAI) Name() string {
	return string(o.model)
}

// parseRanked decodes the classifier's JSON label list, tolerating
// markdown code fences around the payload.
func parseRanked(content string) ([]Classification, error) {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(strings.TrimSpace(content), "```")
		content = strings.TrimSpace(content)
	}

	var ranked []Classification
	if err := json.Unmarshal([]byte(content), &ranked); err != nil {
		return nil, fmt.Errorf("parse classifier response: %v", err)
	}

	for _, c := range ranked {
		if c.Label == "" {
			return nil, fmt.Errorf("classifier returned an empty label")
		}
	}
	return ranked, nil
}
