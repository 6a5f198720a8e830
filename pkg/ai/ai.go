package ai

import (
	"context"
	"strings"
)

const (
	// AudioFilename is the name sent with the audio blob so the remote service can sniff its format
	AudioFilename = "audio.m4a"

	// MaxTranscriptChars bounds the transcript handed to the summarizer
	MaxTranscriptChars = 12000

	// MaxSummaryTokens bounds the generated summary
	MaxSummaryTokens = 300

	// NoSpeechSummary is returned without a remote call for blank transcripts
	NoSpeechSummary = "No speech detected."

	// SummaryPrompt is the system instruction of every summary request
	SummaryPrompt = "You are a concise assistant. Summarize the following meeting transcript in 2–4 short sentences."
)

// Transcriber turns raw audio into plain text
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
	// Configured reports whether the credential required by Transcribe is present
	Configured() bool
	Name() string
}

// Summarizer produces a short natural-language summary of a transcript
type Summarizer interface {
	Summarize(ctx context.Context, transcript string) (string, error)
	Name() string
}

// PrepareTranscript reports whether transcript carries any speech and returns
// it cut down to MaxTranscriptChars characters.
func PrepareTranscript(transcript string) (string, bool) {
	if strings.TrimSpace(transcript) == "" {
		return "", false
	}
	return truncateRunes(transcript, MaxTranscriptChars), true
}

func truncateRunes(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
