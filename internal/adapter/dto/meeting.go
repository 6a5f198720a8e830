package dto

import (
	"time"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
)

// ProcessMeetingRequest is the body of POST /process-meeting
type ProcessMeetingRequest struct {
	// Not validated: a missing or unreachable source goes through the fetch failure path.
	AudioURL  string `json:"audio_url" example:"https://storage.example.com/recordings/m1.m4a"`
	MeetingID string `json:"meeting_id" validate:"required" example:"m1"`
	PushToken string `json:"push_token,omitempty" example:"ExponentPushToken[xxxxxxxxxxxxxxxxxxxxxx]"`
}

// ProcessMeetingResponse is returned when the pipeline completed
type ProcessMeetingResponse struct {
	MeetingID string `json:"meeting_id" example:"m1"`
	Status    string `json:"status" example:"processed"`
}

// MeetingResponse represents a stored meeting
type MeetingResponse struct {
	ID         string    `json:"id"`
	Title      *string   `json:"title,omitempty"`
	Status     string    `json:"status"`
	Transcript *string   `json:"transcript,omitempty"`
	Summary    *string   `json:"summary,omitempty"`
	AudioURL   *string   `json:"audio_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewMeetingResponse converts a meeting entity to its API shape
func NewMeetingResponse(m *entities.Meeting) MeetingResponse {
	return MeetingResponse{
		ID:         m.ID,
		Title:      m.Title,
		Status:     string(m.Status),
		Transcript: m.Transcript,
		Summary:    m.Summary,
		AudioURL:   m.AudioURL,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
