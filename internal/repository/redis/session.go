package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"

	"time"

	"github.com/flowblog/flowblog/domain"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// sessionRepository keeps sessions under "session:<userID>.<token>" so that
// every session of one user is reachable with a single SCAN pattern.
type sessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

var _ domain.SessionRepository = (*sessionRepository)(nil)

func NewSessionRepository(client *redis.Client, ttl time.Duration) *sessionRepository {
	return &sessionRepository{
		client: client,
		ttl:    ttl,
	}
}

func (r *sessionRepository) Create(ctx context.Context, userID int64) (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	token := fmt.Sprintf("%d.%s", userID, hex.EncodeToString(buf))

	err := r.client.Set(ctx, sessionKeyPrefix+token, userID, r.ttl).Err()
	if err != nil {
		return "", err
	}
	return token, nil
}

func (r *sessionRepository) Resolve(ctx context.Context, token string) (int64, error) {
	key := sessionKeyPrefix + token
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, domain.ErrUnauthenticated
	}
	if err != nil {
		return 0, err
	}

	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, domain.ErrUnauthenticated
	}

	// rolling session, expiry slides on every authenticated request
	if err := r.client.Expire(ctx, key, r.ttl).Err(); err != nil {
		return 0, err
	}

	return userID, nil
}

func (r *sessionRepository) Destroy(ctx context.Context, token string) error {
	return r.client.Del(ctx, sessionKeyPrefix+token).Err()
}

// DestroyAllForUser walks the user's session keys with SCAN and deletes each
// one. The "." after the user id keeps "session:12.*" from matching the keys
// of user 123.
func (r *sessionRepository) DestroyAllForUser(ctx context.Context, userID int64) error {
	pattern := fmt.Sprintf("%s%d.*", sessionKeyPrefix, userID)
	iter := r.client.Scan(ctx, 0, pattern, 64).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
