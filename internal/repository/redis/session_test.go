package redis_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowblog/flowblog/domain"
	"github.com/flowblog/flowblog/internal/repository/redis"
)

func TestSessionCreate(t *testing.T) {
	db, mock := redismock.NewClientMock()
	repo := redis.NewSessionRepository(db, time.Hour)

	mock.Regexp().ExpectSet(`session:9\.[0-9a-f]{32}`, `9`, time.Hour).SetVal("OK")

	token, err := repo.Create(context.TODO(), 9)
	require.NoError(t, err)
	// tokens carry the user id so the key space can be scanned per user
	assert.True(t, strings.HasPrefix(token, "9."))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionResolve(t *testing.T) {
	db, mock := redismock.NewClientMock()
	repo := redis.NewSessionRepository(db, time.Hour)

	mock.ExpectGet("session:9.abc").SetVal("9")
	// rolling expiry
	mock.ExpectExpire("session:9.abc", time.Hour).SetVal(true)

	userID, err := repo.Resolve(context.TODO(), "9.abc")
	require.NoError(t, err)
	assert.Equal(t, int64(9), userID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionResolveUnknownToken(t *testing.T) {
	db, mock := redismock.NewClientMock()
	repo := redis.NewSessionRepository(db, time.Hour)

	mock.ExpectGet("session:9.gone").RedisNil()

	_, err := repo.Resolve(context.TODO(), "9.gone")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestSessionDestroy(t *testing.T) {
	db, mock := redismock.NewClientMock()
	repo := redis.NewSessionRepository(db, time.Hour)

	mock.ExpectDel("session:9.abc").SetVal(1)

	err := repo.Destroy(context.TODO(), "9.abc")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionDestroyAllForUser(t *testing.T) {
	db, mock := redismock.NewClientMock()
	repo := redis.NewSessionRepository(db, time.Hour)

	mock.ExpectScan(0, "session:9.*", 64).
		SetVal([]string{"session:9.abc", "session:9.def"}, 0)
	mock.ExpectDel("session:9.abc").SetVal(1)
	mock.ExpectDel("session:9.def").SetVal(1)

	err := repo.DestroyAllForUser(context.TODO(), 9)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerificationCodes(t *testing.T) {
	db, mock := redismock.NewClientMock()
	repo := redis.NewVerificationRepository(db)

	mock.ExpectSet("verification:signup:a@example.com", "123456", 10*time.Minute).SetVal("OK")
	mock.ExpectGet("verification:signup:a@example.com").SetVal("123456")
	mock.ExpectDel("verification:signup:a@example.com").SetVal(1)

	err := repo.StoreCode(context.TODO(), "signup", "a@example.com", "123456", 10*time.Minute)
	require.NoError(t, err)

	code, err := repo.GetCode(context.TODO(), "signup", "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "123456", code)

	err = repo.DeleteCode(context.TODO(), "signup", "a@example.com")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerificationCodeExpired(t *testing.T) {
	db, mock := redismock.NewClientMock()
	repo := redis.NewVerificationRepository(db)

	mock.ExpectGet("verification:signup:a@example.com").RedisNil()

	_, err := repo.GetCode(context.TODO(), "signup", "a@example.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVerificationThrottle(t *testing.T) {
	db, mock := redismock.NewClientMock()
	repo := redis.NewVerificationRepository(db)

	mock.ExpectSetNX("verification:throttle:signup:a@example.com", 1, time.Minute).SetVal(true)
	allowed, err := repo.Throttle(context.TODO(), "signup", "a@example.com", time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)

	mock.ExpectSetNX("verification:throttle:signup:a@example.com", 1, time.Minute).SetVal(false)
	allowed, err = repo.Throttle(context.TODO(), "signup", "a@example.com", time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed)
}
