package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-notes/pkg/config"
)

func TestAssemblyAITranscribe_UploadFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/upload", r.URL.Path)
		assert.Equal(t, "aai-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"Authentication error, API token missing/invalid"}`))
	}))
	defer ts.Close()

	tr := NewAssemblyAITranscriber(&config.AssemblyAIConfig{APIKey: "aai-key"}, ts.URL)

	_, err := tr.Transcribe(context.Background(), []byte("audio"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to upload to AssemblyAI")
}

func TestAssemblyAITranscriber_Configured(t *testing.T) {
	assert.False(t, NewAssemblyAITranscriber(&config.AssemblyAIConfig{}, "").Configured())

	tr := NewAssemblyAITranscriber(&config.AssemblyAIConfig{APIKey: "aai-key"}, "")
	assert.True(t, tr.Configured())
	assert.Equal(t, "assemblyai", tr.Name())
}
