package entities

import (
	"time"
)

// MeetingStatus represents the processing state of a meeting
type MeetingStatus string

const (
	MeetingStatusPending    MeetingStatus = "pending"
	MeetingStatusProcessing MeetingStatus = "processing"
	MeetingStatusProcessed  MeetingStatus = "processed"
	MeetingStatusFailed     MeetingStatus = "failed"
)

// Meeting is the persisted meeting row. The mobile client creates it; this
// service only writes status, transcript, summary and updated_at.
type Meeting struct {
	ID         string        `json:"id" gorm:"type:text;primaryKey"`
	UserID     *string       `json:"user_id,omitempty" gorm:"type:text;index"`
	Title      *string       `json:"title,omitempty" gorm:"type:text"`
	Summary    *string       `json:"summary,omitempty" gorm:"type:text"`
	Transcript *string       `json:"transcript,omitempty" gorm:"type:text"`
	AudioURL   *string       `json:"audio_url,omitempty" gorm:"type:text"`
	Status     MeetingStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	CreatedAt  time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Meeting) TableName() string {
	return "meetings"
}

// MeetingResult is the terminal write of a successful pipeline run
type MeetingResult struct {
	Transcript string
	Summary    string
	UpdatedAt  time.Time
}

// NewMeetingResult stamps the result with the current UTC time
func NewMeetingResult(transcript, summary string) MeetingResult {
	return MeetingResult{
		Transcript: transcript,
		Summary:    summary,
		UpdatedAt:  time.Now().UTC(),
	}
}

// Fields returns the partial update applied to the meeting row
func (r MeetingResult) Fields() map[string]interface{} {
	return map[string]interface{}{
		"transcript": r.Transcript,
		"summary":    r.Summary,
		"status":     MeetingStatusProcessed,
		"updated_at": r.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}
