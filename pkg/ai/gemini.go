package ai

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/johnquangdev/meeting-notes/pkg/config"
)

// DefaultGeminiModel is used when SUMMARY_MODEL is not set
const DefaultGeminiModel = "gemini-2.5-flash"

// GeminiSummarizer summarizes with Google Gemini
type GeminiSummarizer struct {
	apiKey string
	model  string

	once      sync.Once
	client    *genai.Client
	clientErr error
}

// NewGeminiSummarizer creates a Gemini summarizer
func NewGeminiSummarizer(apiKey, model string) *GeminiSummarizer {
	if model == "" {
		model = DefaultGeminiModel
	}
	return &GeminiSummarizer{apiKey: apiKey, model: model}
}

// Name returns the provider name
func (g *GeminiSummarizer) Name() string {
	return config.ProviderGemini
}

// Summarize sends the truncated transcript with the shared system instruction
func (g *GeminiSummarizer) Summarize(ctx context.Context, transcript string) (string, error) {
	text, ok := PrepareTranscript(transcript)
	if !ok {
		return NoSpeechSummary, nil
	}

	client, err := g.getClient()
	if err != nil {
		return "", fmt.Errorf("create client: %w", err)
	}

	result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(text), &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: SummaryPrompt}}},
		MaxOutputTokens:   MaxSummaryTokens,
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from Gemini")
	}
	var b strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			b.WriteString(part.Text)
		}
	}
	return strings.TrimSpace(b.String()), nil
}

// getClient builds the Gemini client on first use and reuses it afterwards
func (g *GeminiSummarizer) getClient() (*genai.Client, error) {
	g.once.Do(func() {
		g.client, g.clientErr = genai.NewClient(context.Background(), &genai.ClientConfig{
			APIKey:  g.apiKey,
			Backend: genai.BackendGeminiAPI,
		})
	})
	return g.client, g.clientErr
}
