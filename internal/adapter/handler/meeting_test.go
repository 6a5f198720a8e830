package handler

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-notes/errors"
	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
	meetingUsecase "github.com/johnquangdev/meeting-notes/internal/usecase/meeting"
	"github.com/johnquangdev/meeting-notes/pkg/config"
	"github.com/johnquangdev/meeting-notes/pkg/metrics"
	pkgvalidator "github.com/johnquangdev/meeting-notes/pkg/validator"
)

type fakeService struct {
	result  *meetingUsecase.Result
	err     error
	meeting *entities.Meeting
	got     []meetingUsecase.Request
}

func (f *fakeService) ProcessMeeting(_ context.Context, req meetingUsecase.Request) (*meetingUsecase.Result, error) {
	f.got = append(f.got, req)
	return f.result, f.err
}

func (f *fakeService) GetMeeting(_ context.Context, id string) (*entities.Meeting, error) {
	if f.meeting == nil {
		return nil, errors.ErrMeetingNotFound(id)
	}
	return f.meeting, f.err
}

func newTestServer(svc meetingUsecase.Service) *echo.Echo {
	e := echo.New()
	e.Validator = pkgvalidator.New()
	cfg := &config.Config{Server: config.ServerConfig{Environment: "test"}}
	NewRouter(cfg, NewMeetingHandler(svc, zap.NewNop()), metrics.New().Handler()).Setup(e)
	return e
}

func doRequest(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderXRequestID, "req-42")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestProcessMeeting_Success(t *testing.T) {
	svc := &fakeService{result: &meetingUsecase.Result{MeetingID: "m1", Status: entities.MeetingStatusProcessed}}
	e := newTestServer(svc)

	for _, path := range []string{"/process-meeting", "/v1/meetings/process"} {
		rec := doRequest(e, http.MethodPost, path, `{"audio_url":"https://x/a.m4a","meeting_id":"m1","push_token":"tok"}`)

		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.JSONEq(t, `{"meeting_id":"m1","status":"processed"}`, rec.Body.String(), path)
	}

	require.Len(t, svc.got, 2)
	assert.Equal(t, meetingUsecase.Request{
		MeetingID: "m1",
		AudioURL:  "https://x/a.m4a",
		PushToken: "tok",
		RequestID: "req-42",
	}, svc.got[0])
}

func TestProcessMeeting_InvalidPayload(t *testing.T) {
	svc := &fakeService{}
	e := newTestServer(svc)

	cases := map[string]string{
		"malformed json":  `{"audio_url":`,
		"missing meeting": `{"audio_url":"https://x/a.m4a"}`,
	}
	for name, body := range cases {
		rec := doRequest(e, http.MethodPost, "/process-meeting", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, name)
	}
	assert.Empty(t, svc.got)
}

func TestProcessMeeting_BadAudioURLReachesPipeline(t *testing.T) {
	cases := map[string]string{
		"missing audio":  `{"meeting_id":"m1"}`,
		"empty audio":    `{"audio_url":"","meeting_id":"m1"}`,
		"non http audio": `{"audio_url":"ftp://x/a.m4a","meeting_id":"m1"}`,
		"relative audio": `{"audio_url":"a.m4a","meeting_id":"m1"}`,
	}
	for name, body := range cases {
		svc := &fakeService{err: errors.ErrAudioDownloadFailed(stderrors.New("unsupported protocol scheme"))}
		e := newTestServer(svc)

		rec := doRequest(e, http.MethodPost, "/process-meeting", body)
		assert.Equal(t, http.StatusBadGateway, rec.Code, name)
		assert.Contains(t, rec.Body.String(), `"code":"AUDIO_DOWNLOAD_FAILED"`, name)
		assert.Len(t, svc.got, 1, name)
	}
}

func TestProcessMeeting_AppErrors(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{errors.ErrAudioDownloadFailed(stderrors.New("status 404")), http.StatusBadGateway, "AUDIO_DOWNLOAD_FAILED"},
		{errors.ErrAIServiceUnavailable("openai"), http.StatusServiceUnavailable, "AI_SERVICE_UNAVAILABLE"},
		{errors.ErrAITranscriptionFailed(stderrors.New("bad audio")), http.StatusBadGateway, "AI_TRANSCRIPTION_FAILED"},
		{errors.ErrDBUpdateFailed(stderrors.New("reset")), http.StatusBadGateway, "DB_UPDATE_FAILED"},
		{errors.ErrMeetingBusy("m1"), http.StatusConflict, "MEETING_BUSY"},
	}

	for _, tc := range cases {
		e := newTestServer(&fakeService{err: tc.err})
		rec := doRequest(e, http.MethodPost, "/process-meeting", `{"audio_url":"https://x/a.m4a","meeting_id":"m1"}`)

		assert.Equal(t, tc.status, rec.Code, tc.code)
		assert.Contains(t, rec.Body.String(), `"code":"`+tc.code+`"`)
	}
}

func TestProcessMeeting_ErrorCarriesCause(t *testing.T) {
	e := newTestServer(&fakeService{err: errors.ErrAudioDownloadFailed(stderrors.New("audio source returned status 404"))})
	rec := doRequest(e, http.MethodPost, "/process-meeting", `{"audio_url":"https://x/a.m4a","meeting_id":"m1"}`)

	assert.JSONEq(t, `{"code":"AUDIO_DOWNLOAD_FAILED","message":"Failed to download audio","info":"audio source returned status 404"}`, rec.Body.String())
}

func TestProcessMeeting_UnexpectedError(t *testing.T) {
	e := newTestServer(&fakeService{err: stderrors.New("boom")})
	rec := doRequest(e, http.MethodPost, "/process-meeting", `{"audio_url":"https://x/a.m4a","meeting_id":"m1"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"INTERNAL"`)
}

func TestGetMeeting(t *testing.T) {
	summary := "Ship Friday."
	e := newTestServer(&fakeService{meeting: &entities.Meeting{ID: "m1", Status: entities.MeetingStatusProcessed, Summary: &summary}})

	rec := doRequest(e, http.MethodGet, "/v1/meetings/m1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"HTTP_OK"`)
	assert.Contains(t, rec.Body.String(), `"summary":"Ship Friday."`)
	assert.Contains(t, rec.Body.String(), `"status":"processed"`)
}

func TestGetMeeting_NotFound(t *testing.T) {
	e := newTestServer(&fakeService{})

	rec := doRequest(e, http.MethodGet, "/v1/meetings/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"NOT_FOUND"`)
}

func TestHealthAndMetrics(t *testing.T) {
	e := newTestServer(&fakeService{})

	rec := doRequest(e, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = doRequest(e, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
