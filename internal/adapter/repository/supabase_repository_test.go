package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
	"github.com/johnquangdev/meeting-notes/pkg/config"
)

func TestSupabase_UpdateStatus(t *testing.T) {
	var body map[string]interface{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/rest/v1/meetings", r.URL.Path)
		assert.Equal(t, "eq.m1", r.URL.Query().Get("id"))
		assert.Equal(t, "service-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer service-key", r.Header.Get("Authorization"))
		assert.Equal(t, "return=minimal", r.Header.Get("Prefer"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	repo := NewSupabaseMeetingRepository(&config.SupabaseConfig{URL: ts.URL + "/", ServiceKey: "service-key"})
	require.NoError(t, repo.UpdateStatus(context.Background(), "m1", entities.MeetingStatusFailed))

	assert.Equal(t, map[string]interface{}{"status": "failed"}, body)
}

func TestSupabase_SaveResult(t *testing.T) {
	var body map[string]interface{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	repo := NewSupabaseMeetingRepository(&config.SupabaseConfig{URL: ts.URL, ServiceKey: "k", Table: "meetings"})
	at := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	err := repo.SaveResult(context.Background(), "m1", entities.MeetingResult{Transcript: "t", Summary: "s", UpdatedAt: at})
	require.NoError(t, err)

	assert.Equal(t, "t", body["transcript"])
	assert.Equal(t, "s", body["summary"])
	assert.Equal(t, "processed", body["status"])
	assert.Equal(t, "2026-10-19T08:00:00Z", body["updated_at"])
}

func TestSupabase_ErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid API key"}`))
	}))
	defer ts.Close()

	repo := NewSupabaseMeetingRepository(&config.SupabaseConfig{URL: ts.URL, ServiceKey: "bad"})
	err := repo.UpdateStatus(context.Background(), "m1", entities.MeetingStatusProcessing)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "Invalid API key")
}

func TestSupabase_NotConfigured(t *testing.T) {
	repo := NewSupabaseMeetingRepository(&config.SupabaseConfig{})

	assert.ErrorIs(t, repo.UpdateStatus(context.Background(), "m1", entities.MeetingStatusProcessing), entities.ErrStoreNotConfigured)
	assert.ErrorIs(t, repo.SaveResult(context.Background(), "m1", entities.NewMeetingResult("t", "s")), entities.ErrStoreNotConfigured)
	_, err := repo.FindByID(context.Background(), "m1")
	assert.ErrorIs(t, err, entities.ErrStoreNotConfigured)
}

func TestSupabase_FindByID(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "*", r.URL.Query().Get("select"))
		if r.URL.Query().Get("id") == "eq.m1" {
			w.Write([]byte(`[{"id":"m1","status":"processed","summary":"s","transcript":"t"}]`))
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	repo := NewSupabaseMeetingRepository(&config.SupabaseConfig{URL: ts.URL, ServiceKey: "k"})

	meeting, err := repo.FindByID(context.Background(), "m1")
	require.NoError(t, err)
	require.NotNil(t, meeting)
	assert.Equal(t, entities.MeetingStatusProcessed, meeting.Status)

	missing, err := repo.FindByID(context.Background(), "other")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSupabase_CancelledContext(t *testing.T) {
	hits := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	repo := NewSupabaseMeetingRepository(&config.SupabaseConfig{URL: ts.URL, ServiceKey: "k"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := repo.UpdateStatus(ctx, "m1", entities.MeetingStatusProcessing)
	require.Error(t, err)
	assert.Zero(t, hits)
}
