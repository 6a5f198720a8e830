package push

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncateBody(t *testing.T) {
	short := strings.Repeat("s", MaxBodyChars)
	assert.Equal(t, short, TruncateBody(short))

	long := strings.Repeat("a", MaxBodyChars) + "tail"
	got := TruncateBody(long)
	assert.Equal(t, strings.Repeat("a", MaxBodyChars)+"…", got)
	assert.Equal(t, MaxBodyChars+1, len([]rune(got)))

	assert.Equal(t, "", TruncateBody(""))
}

func TestTruncateBody_MultibyteSummary(t *testing.T) {
	long := strings.Repeat("ü", MaxBodyChars+3)
	assert.Equal(t, strings.Repeat("ü", MaxBodyChars)+"…", TruncateBody(long))
}

func TestSend_Payload(t *testing.T) {
	var got map[string]interface{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"data":{"status":"ok","id":"ticket-1"}}`))
	}))
	defer ts.Close()

	c := NewExpoClient(ts.URL, "", time.Second)
	require.NoError(t, c.Send(context.Background(), "ExponentPushToken[tok]", "m1", "Short summary."))

	assert.Equal(t, "ExponentPushToken[tok]", got["to"])
	assert.Equal(t, Title, got["title"])
	assert.Equal(t, "Short summary.", got["body"])
	assert.Equal(t, map[string]interface{}{"meetingId": "m1"}, got["data"])
	assert.Equal(t, "default", got["channelId"])
	assert.Equal(t, "high", got["priority"])
}

func TestSend_AccessToken(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer expo-secret", r.Header.Get("Authorization"))
		w.Write([]byte(`{"data":{"status":"ok"}}`))
	}))
	defer ts.Close()

	require.NoError(t, NewExpoClient(ts.URL, "expo-secret", time.Second).Send(context.Background(), "tok", "m1", "s"))
}

func TestSend_HTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	err := NewExpoClient(ts.URL, "", time.Second).Send(context.Background(), "tok", "m1", "s")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestSend_TicketError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"status":"error","message":"\"tok\" is not a registered push notification recipient"}}`))
	}))
	defer ts.Close()

	err := NewExpoClient(ts.URL, "", time.Second).Send(context.Background(), "tok", "m1", "s")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a registered push notification recipient")
}

func TestSend_UntypedTicketBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte(`{"data":{"status":"error","message":"DeviceNotRegistered"}}`))
	}))
	defer ts.Close()

	err := NewExpoClient(ts.URL, "", time.Second).Send(context.Background(), "tok", "m1", "s")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DeviceNotRegistered")
}

func TestSend_CancelledContext(t *testing.T) {
	hits := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.Error(t, NewExpoClient(ts.URL, "", time.Second).Send(ctx, "tok", "m1", "s"))
	assert.Zero(t, hits)
}
