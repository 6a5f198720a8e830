package audio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Fatalf("expected GET got %s", r.Method)
		}
		w.Write([]byte("RIFFaudio"))
	}))
	defer ts.Close()

	data, err := NewFetcher(time.Second, 0).Fetch(context.Background(), ts.URL+"/a.m4a")
	require.NoError(t, err)
	assert.Equal(t, []byte("RIFFaudio"), data)
}

func TestFetch_Non2xx(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer ts.Close()

	_, err := NewFetcher(time.Second, 0).Fetch(context.Background(), ts.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestFetch_EmptyBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	_, err := NewFetcher(time.Second, 0).Fetch(context.Background(), ts.URL)
	assert.ErrorIs(t, err, ErrEmptyAudio)
}

func TestFetch_Unreachable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close()

	_, err := NewFetcher(time.Second, 0).Fetch(context.Background(), url)
	assert.Error(t, err)
}

func TestFetch_Timeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte("late"))
	}))
	defer ts.Close()

	_, err := NewFetcher(20*time.Millisecond, 0).Fetch(context.Background(), ts.URL)
	assert.Error(t, err)
}

func TestFetch_MaxBytes(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("0123456789"))
	}))
	defer ts.Close()

	_, err := NewFetcher(time.Second, 5).Fetch(context.Background(), ts.URL)
	assert.Error(t, err)

	data, err := NewFetcher(time.Second, 10).Fetch(context.Background(), ts.URL)
	require.NoError(t, err)
	assert.Len(t, data, 10)
}

func TestFetch_InvalidURL(t *testing.T) {
	_, err := NewFetcher(time.Second, 0).Fetch(context.Background(), "://nope")
	assert.Error(t, err)
}
