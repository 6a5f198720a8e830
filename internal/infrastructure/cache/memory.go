package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
)

// MemoryLocker is an in-process meeting lock with expiration.
// It only serializes requests handled by the same instance.
type MemoryLocker struct {
	mu    sync.Mutex
	ttl   time.Duration
	items map[string]*lease
	now   func() time.Time
}

type lease struct {
	token      string
	expireTime time.Time
}

// NewMemoryLocker creates a new in-memory locker
func NewMemoryLocker(ttl time.Duration) *MemoryLocker {
	return &MemoryLocker{
		ttl:   ttl,
		items: make(map[string]*lease),
		now:   time.Now,
	}
}

// TryLock takes the lock for meetingID or returns entities.ErrMeetingLocked
func (ml *MemoryLocker) TryLock(_ context.Context, meetingID string) (func(), error) {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	now := ml.now()
	ml.removeExpired(now)

	key := lockKey(meetingID)
	if _, held := ml.items[key]; held {
		return nil, entities.ErrMeetingLocked
	}

	token := uuid.NewString()
	ml.items[key] = &lease{
		token:      token,
		expireTime: now.Add(ml.ttl),
	}

	return func() { ml.release(key, token) }, nil
}

// release drops the lease only if it still belongs to token
func (ml *MemoryLocker) release(key, token string) {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	if item, ok := ml.items[key]; ok && item.token == token {
		delete(ml.items, key)
	}
}

func (ml *MemoryLocker) removeExpired(now time.Time) {
	for key, item := range ml.items {
		if now.After(item.expireTime) {
			delete(ml.items, key)
		}
	}
}
