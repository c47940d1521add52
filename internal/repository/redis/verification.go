package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/flowblog/flowblog/domain"
	"github.com/redis/go-redis/v9"
)

type verificationRepository struct {
	client *redis.Client
}

var _ domain.VerificationRepository = (*verificationRepository)(nil)

func NewVerificationRepository(client *redis.Client) *verificationRepository {
	return &verificationRepository{
		client: client,
	}
}

func codeKey(purpose, email string) string {
	return fmt.Sprintf("verification:%s:%s", purpose, email)
}

func throttleKey(purpose, email string) string {
	return fmt.Sprintf("verification:throttle:%s:%s", purpose, email)
}

func (r *verificationRepository) StoreCode(ctx context.Context, purpose, email, code string, ttl time.Duration) error {
	return r.client.Set(ctx, codeKey(purpose, email), code, ttl).Err()
}

func (r *verificationRepository) GetCode(ctx context.Context, purpose, email string) (string, error) {
	code, err := r.client.Get(ctx, codeKey(purpose, email)).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrNotFound
	}
	return code, err
}

func (r *verificationRepository) DeleteCode(ctx context.Context, purpose, email string) error {
	return r.client.Del(ctx, codeKey(purpose, email)).Err()
}

// Throttle reserves the resend slot with SETNX. A false result means the
// previous reservation has not expired yet.
func (r *verificationRepository) Throttle(ctx context.Context, purpose, email string, window time.Duration) (bool, error) {
	return r.client.SetNX(ctx, throttleKey(purpose, email), 1, window).Result()
}
