package ai

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"

	"github.com/johnquangdev/meeting-notes/pkg/config"
)

// AssemblyAITranscriber transcribes audio with the official AssemblyAI SDK
type AssemblyAITranscriber struct {
	apiKey       string
	languageCode string
	client       *aai.Client
}

// NewAssemblyAITranscriber creates a transcriber using the provided config.
// baseURL overrides the API endpoint and is only set by tests.
func NewAssemblyAITranscriber(cfg *config.AssemblyAIConfig, baseURL string) *AssemblyAITranscriber {
	opts := []aai.ClientOption{aai.WithAPIKey(cfg.APIKey)}
	if baseURL != "" {
		opts = append(opts, aai.WithBaseURL(baseURL))
	}
	return &AssemblyAITranscriber{
		apiKey:       cfg.APIKey,
		languageCode: cfg.LanguageCode,
		client:       aai.NewClientWithOptions(opts...),
	}
}

// Name returns the provider name
func (a *AssemblyAITranscriber) Name() string {
	return config.ProviderAssemblyAI
}

// Configured reports whether an API key is set
func (a *AssemblyAITranscriber) Configured() bool {
	return a.apiKey != ""
}

// Transcribe uploads the audio, waits for the transcript and returns its text.
// Diarization is left off: only the plain text is used.
func (a *AssemblyAITranscriber) Transcribe(ctx context.Context, audio []byte) (string, error) {
	uploadURL, err := a.client.Upload(ctx, bytes.NewReader(audio))
	if err != nil {
		return "", fmt.Errorf("failed to upload to AssemblyAI: %w", err)
	}

	params := &aai.TranscriptOptionalParams{}
	if a.languageCode != "" {
		params.LanguageCode = aai.TranscriptLanguageCode(a.languageCode)
	} else {
		params.LanguageDetection = aai.Bool(true)
	}

	transcript, err := a.client.Transcripts.TranscribeFromURL(ctx, uploadURL, params)
	if err != nil {
		return "", fmt.Errorf("assemblyai transcription failed: %w", err)
	}

	if transcript.Status == aai.TranscriptStatusError {
		msg := "unknown error"
		if transcript.Error != nil {
			msg = *transcript.Error
		}
		return "", errors.New("assemblyai reported error: " + msg)
	}

	if transcript.Text == nil {
		return "", nil
	}
	return *transcript.Text, nil
}
