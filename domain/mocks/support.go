package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/flowblog/flowblog/domain"
)

// Mailer is a mock implementation of domain.Mailer.
type Mailer struct {
	mock.Mock
}

var _ domain.Mailer = (*Mailer)(nil)

func (m *Mailer) SendVerificationCode(toEmail, code string) error {
	args := m.Called(toEmail, code)
	return args.Error(0)
}

// ImageStore is a mock implementation of domain.ImageStore.
type ImageStore struct {
	mock.Mock
}

var _ domain.ImageStore = (*ImageStore)(nil)

func (m *ImageStore) SaveFeaturedImage(ctx context.Context, postID int64, data []byte) (string, error) {
	args := m.Called(ctx, postID, data)
	return args.String(0), args.Error(1)
}

func (m *ImageStore) SaveProfilePicture(ctx context.Context, userID int64, data []byte) (string, error) {
	args := m.Called(ctx, userID, data)
	return args.String(0), args.Error(1)
}

func (m *ImageStore) Remove(ctx context.Context, url string) error {
	args := m.Called(ctx, url)
	return args.Error(0)
}

// Revalidator is a mock implementation of domain.Revalidator.
type Revalidator struct {
	mock.Mock
}

var _ domain.Revalidator = (*Revalidator)(nil)

func (m *Revalidator) Start(ctx context.Context) {
	m.Called(ctx)
}

func (m *Revalidator) Notify(slug string) {
	m.Called(slug)
}
