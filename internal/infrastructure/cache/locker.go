package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/johnquangdev/meeting-notes/pkg/config"
)

// Locker serializes processing of a single meeting identifier
type Locker interface {
	TryLock(ctx context.Context, meetingID string) (unlock func(), err error)
}

// NoopLocker never blocks; overlapping requests race on the record store
type NoopLocker struct{}

// TryLock always succeeds
func (NoopLocker) TryLock(context.Context, string) (func(), error) {
	return func() {}, nil
}

// NewLocker builds the locker selected by cfg.Backend. client is only used
// by the redis backend.
func NewLocker(cfg *config.LockConfig, client redis.Cmdable) (Locker, error) {
	switch cfg.Backend {
	case config.LockNone, "":
		return NoopLocker{}, nil
	case config.LockMemory:
		return NewMemoryLocker(cfg.TTL), nil
	case config.LockRedis:
		if client == nil {
			return nil, fmt.Errorf("redis lock backend requires a redis client")
		}
		return NewRedisLocker(client, cfg.TTL), nil
	default:
		return nil, fmt.Errorf("unknown lock backend %q", cfg.Backend)
	}
}

func lockKey(meetingID string) string {
	return "meeting:lock:" + meetingID
}
