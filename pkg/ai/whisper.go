package ai

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/johnquangdev/meeting-notes/pkg/config"
)

// WhisperTranscriber transcribes audio with the OpenAI audio transcription API
type WhisperTranscriber struct {
	apiKey string
	model  string
	client *openai.Client
}

// NewWhisperTranscriber creates a transcriber from the OpenAI section of the config
func NewWhisperTranscriber(cfg *config.OpenAIConfig) *WhisperTranscriber {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	clientConfig.HTTPClient = &http.Client{Timeout: 10 * time.Minute}

	model := cfg.TranscriptionModel
	if model == "" {
		model = openai.Whisper1
	}

	return &WhisperTranscriber{
		apiKey: cfg.APIKey,
		model:  model,
		client: openai.NewClientWithConfig(clientConfig),
	}
}

// Name returns the provider name
func (w *WhisperTranscriber) Name() string {
	return config.ProviderOpenAI
}

// Configured reports whether an API key is set
func (w *WhisperTranscriber) Configured() bool {
	return w.apiKey != ""
}

// Transcribe uploads the audio as AudioFilename and returns the plain-text transcript
func (w *WhisperTranscriber) Transcribe(ctx context.Context, audio []byte) (string, error) {
	req := openai.AudioRequest{
		Model:    w.model,
		FilePath: AudioFilename,
		Reader:   bytes.NewReader(audio),
		Format:   openai.AudioResponseFormatText,
	}
	resp, err := w.client.CreateTranscription(ctx, req)
	if err != nil {
		return "", fmt.Errorf("createTranscription failed: %w", err)
	}
	return resp.Text, nil
}
