package repositories

import (
	"context"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
)

// MeetingRepository applies partial updates to meeting rows keyed by identifier.
// There is no concurrency control: the last writer wins.
type MeetingRepository interface {
	// UpdateStatus writes only the status column
	UpdateStatus(ctx context.Context, meetingID string, status entities.MeetingStatus) error

	// SaveResult writes transcript, summary, status=processed and updated_at in one update
	SaveResult(ctx context.Context, meetingID string, result entities.MeetingResult) error

	// FindByID returns nil, nil when the meeting does not exist
	FindByID(ctx context.Context, meetingID string) (*entities.Meeting, error)
}
