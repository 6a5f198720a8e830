package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-notes/errors"
	"github.com/johnquangdev/meeting-notes/internal/adapter/dto"
	meetingUsecase "github.com/johnquangdev/meeting-notes/internal/usecase/meeting"
)

// Meeting handles meeting processing HTTP requests
type Meeting struct {
	svc    meetingUsecase.Service
	logger *zap.Logger
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(svc meetingUsecase.Service, logger *zap.Logger) *Meeting {
	return &Meeting{svc: svc, logger: logger}
}

// ProcessMeeting runs the full pipeline for one recording and waits for it
// @Summary      Process meeting recording
// @Description  Downloads the audio, transcribes and summarizes it, stores the result and optionally sends an Expo push
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Param        request  body      dto.ProcessMeetingRequest   true  "Meeting to process"
// @Success      200      {object}  dto.ProcessMeetingResponse  "Meeting processed"
// @Failure      400      {object}  map[string]interface{}      "Invalid payload"
// @Failure      409      {object}  map[string]interface{}      "Meeting is already being processed"
// @Failure      502      {object}  map[string]interface{}      "Download, transcription or database update failed"
// @Failure      503      {object}  map[string]interface{}      "Transcription service not configured"
// @Router       /process-meeting [post]
// @Router       /v1/meetings/process [post]
func (h *Meeting) ProcessMeeting(c echo.Context) error {
	var req dto.ProcessMeetingRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrValidationFailed(err))
	}

	result, err := h.svc.ProcessMeeting(c.Request().Context(), meetingUsecase.Request{
		MeetingID: req.MeetingID,
		AudioURL:  req.AudioURL,
		PushToken: req.PushToken,
		RequestID: getRequestID(c),
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	// The mobile client reads meeting_id and status at the top level.
	return c.JSON(http.StatusOK, dto.ProcessMeetingResponse{
		MeetingID: result.MeetingID,
		Status:    string(result.Status),
	})
}

// GetMeeting returns the stored meeting
// @Summary      Get meeting
// @Description  Returns the meeting record including transcript and summary when processed
// @Tags         Meetings
// @Produce      json
// @Param        id   path      string                 true  "Meeting ID"
// @Success      200  {object}  dto.MeetingResponse    "Meeting"
// @Failure      404  {object}  map[string]interface{} "Meeting not found"
// @Failure      502  {object}  map[string]interface{} "Database query failed"
// @Router       /v1/meetings/{id} [get]
func (h *Meeting) GetMeeting(c echo.Context) error {
	meeting, err := h.svc.GetMeeting(c.Request().Context(), c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, dto.NewMeetingResponse(meeting))
}
