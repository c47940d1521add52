package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/flowblog/flowblog/domain"
)

// SessionRepository is a mock implementation of domain.SessionRepository.
type SessionRepository struct {
	mock.Mock
}

var _ domain.SessionRepository = (*SessionRepository)(nil)

func (m *SessionRepository) Create(ctx context.Context, userID int64) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *SessionRepository) Resolve(ctx context.Context, token string) (int64, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(int64), args.Error(1)
}

func (m *SessionRepository) Destroy(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *SessionRepository) DestroyAllForUser(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// VerificationRepository is a mock implementation of domain.VerificationRepository.
type VerificationRepository struct {
	mock.Mock
}

var _ domain.VerificationRepository = (*VerificationRepository)(nil)

func (m *VerificationRepository) StoreCode(ctx context.Context, purpose, email, code string, ttl time.Duration) error {
	args := m.Called(ctx, purpose, email, code, ttl)
	return args.Error(0)
}

func (m *VerificationRepository) GetCode(ctx context.Context, purpose, email string) (string, error) {
	args := m.Called(ctx, purpose, email)
	return args.String(0), args.Error(1)
}

func (m *VerificationRepository) DeleteCode(ctx context.Context, purpose, email string) error {
	args := m.Called(ctx, purpose, email)
	return args.Error(0)
}

func (m *VerificationRepository) Throttle(ctx context.Context, purpose, email string, window time.Duration) (bool, error) {
	args := m.Called(ctx, purpose, email, window)
	return args.Bool(0), args.Error(1)
}
