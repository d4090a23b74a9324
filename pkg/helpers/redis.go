package helpers

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionTTL bounds how long a login session hash lives in Redis.
const SessionTTL = 24 * time.Hour

// NewRedisClient initializes a redis client
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// SessionKey is the Redis hash holding the active session of a user.
func SessionKey(userID string) string {
	return "user:session:" + userID
}

// SaveSession records the active session id for a user, replacing any previous one.
func SaveSession(ctx context.Context, rdb *redis.Client, userID string, fields map[string]any, ttl time.Duration) error {
	key := SessionKey(userID)
	pipe := rdb.Pipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, ttl)
	_, err := pipe.Exec(ctx)
	return err
}

// SessionID returns the stored session id, or "" when no session exists.
func SessionID(ctx context.Context, rdb *redis.Client, userID string) (string, error) {
	sid, err := rdb.HGet(ctx, SessionKey(userID), "sid").Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return sid, err
}

func DeleteSession(ctx context.Context, rdb *redis.Client, userID string) error {
	return rdb.Del(ctx, SessionKey(userID)).Err()
}
