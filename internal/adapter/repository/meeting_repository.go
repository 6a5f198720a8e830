package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
	"github.com/johnquangdev/meeting-notes/internal/domain/repositories"
)

// MeetingRepository handles meeting rows stored directly in Postgres
type MeetingRepository struct {
	db *gorm.DB
}

var _ repositories.MeetingRepository = (*MeetingRepository)(nil)

// NewMeetingRepository creates a new meeting repository
func NewMeetingRepository(db *gorm.DB) *MeetingRepository {
	return &MeetingRepository{db: db}
}

// UpdateStatus updates meeting status
func (r *MeetingRepository) UpdateStatus(ctx context.Context, meetingID string, status entities.MeetingStatus) error {
	return r.db.WithContext(ctx).
		Model(&entities.Meeting{}).
		Where("id = ?", meetingID).
		UpdateColumn("status", status).Error
}

// SaveResult stores the pipeline output and marks the meeting processed
func (r *MeetingRepository) SaveResult(ctx context.Context, meetingID string, result entities.MeetingResult) error {
	return r.db.WithContext(ctx).
		Model(&entities.Meeting{}).
		Where("id = ?", meetingID).
		Updates(map[string]interface{}{
			"transcript": result.Transcript,
			"summary":    result.Summary,
			"status":     entities.MeetingStatusProcessed,
			"updated_at": result.UpdatedAt,
		}).Error
}

// FindByID retrieves a meeting by ID
func (r *MeetingRepository) FindByID(ctx context.Context, meetingID string) (*entities.Meeting, error) {
	var meeting entities.Meeting
	if err := r.db.WithContext(ctx).Where("id = ?", meetingID).First(&meeting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &meeting, nil
}
