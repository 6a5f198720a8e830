package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
	"github.com/johnquangdev/meeting-notes/pkg/config"
)

const connectTimeout = 30 * time.Second

// releaseScript deletes the key only when it still holds our token
const releaseScript = `if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`

// NewRedisClient connects to Redis, retrying the initial ping for a bounded time
func NewRedisClient(ctx context.Context, cfg *config.Config, log *zap.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = connectTimeout
	ping := func() error {
		return client.Ping(ctx).Err()
	}
	notify := func(err error, wait time.Duration) {
		log.Warn("redis not ready, retrying", zap.Error(err), zap.Duration("wait", wait))
	}
	if err := backoff.RetryNotify(ping, backoff.WithContext(policy, ctx), notify); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	log.Info("redis connected", zap.String("addr", cfg.GetRedisAddr()))
	return client, nil
}

// redisLockClient is the subset of redis.Cmdable the locker needs
type redisLockClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// RedisLocker is a lease lock shared by every instance using the same Redis
type RedisLocker struct {
	client redisLockClient
	ttl    time.Duration
}

// NewRedisLocker creates a Redis backed locker
func NewRedisLocker(client redisLockClient, ttl time.Duration) *RedisLocker {
	return &RedisLocker{client: client, ttl: ttl}
}

// TryLock takes the lease for meetingID or returns entities.ErrMeetingLocked
func (rl *RedisLocker) TryLock(ctx context.Context, meetingID string) (func(), error) {
	key := lockKey(meetingID)
	token := uuid.NewString()

	ok, err := rl.client.SetNX(ctx, key, token, rl.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !ok {
		return nil, entities.ErrMeetingLocked
	}

	return func() {
		// The request context may already be cancelled when we release.
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		rl.client.Eval(releaseCtx, releaseScript, []string{key}, token)
	}, nil
}
