package entities

import "errors"

// Domain errors
var (
	ErrMeetingLocked      = errors.New("meeting is locked by another request")
	ErrStoreNotConfigured = errors.New("record store not configured")
)
