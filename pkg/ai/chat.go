package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/johnquangdev/meeting-notes/pkg/config"
)

// DefaultChatModel is used when SUMMARY_MODEL is not set
const DefaultChatModel = openai.GPT4oMini

// ChatSummarizer summarizes through an OpenAI-compatible chat completions API.
// Pointing BaseURL at https://api.groq.com/openai/v1 serves Groq models.
type ChatSummarizer struct {
	model  string
	client *openai.Client
}

// NewChatSummarizer creates a summarizer; apiKey and baseURL come from the resolved config
func NewChatSummarizer(apiKey, baseURL, model string) *ChatSummarizer {
	clientConfig := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientConfig.BaseURL = baseURL
	}
	clientConfig.HTTPClient = &http.Client{Timeout: 2 * time.Minute}

	if model == "" {
		model = DefaultChatModel
	}
	return &ChatSummarizer{
		model:  model,
		client: openai.NewClientWithConfig(clientConfig),
	}
}

// NewChatSummarizerFromConfig wires the summarizer from the pipeline and OpenAI sections
func NewChatSummarizerFromConfig(cfg *config.Config) *ChatSummarizer {
	baseURL := cfg.Pipeline.SummaryBaseURL
	if baseURL == "" {
		baseURL = cfg.OpenAI.BaseURL
	}
	return NewChatSummarizer(cfg.SummaryAPIKey(), baseURL, cfg.Pipeline.SummaryModel)
}

// Name returns the provider name
func (s *ChatSummarizer) Name() string {
	return config.ProviderOpenAI
}

// Summarize sends the system prompt and the truncated transcript, returning the trimmed reply
func (s *ChatSummarizer) Summarize(ctx context.Context, transcript string) (string, error) {
	text, ok := PrepareTranscript(transcript)
	if !ok {
		return NoSpeechSummary, nil
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: SummaryPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		MaxTokens: MaxSummaryTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from %s", s.model)
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
