package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/flowblog/flowblog/domain"
)

// CommentRepository is a mock implementation of domain.CommentRepository.
type CommentRepository struct {
	mock.Mock
}

var _ domain.CommentRepository = (*CommentRepository)(nil)

func (m *CommentRepository) Store(ctx context.Context, c *domain.Comment) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *CommentRepository) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *CommentRepository) FetchTopLevel(ctx context.Context, blogPostID, continueAfterID, limit int64) ([]*domain.Comment, error) {
	args := m.Called(ctx, blogPostID, continueAfterID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Comment), args.Error(1)
}

func (m *CommentRepository) FetchReplies(ctx context.Context, parentCommentID, continueAfterID, limit int64) ([]*domain.Comment, error) {
	args := m.Called(ctx, parentCommentID, continueAfterID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Comment), args.Error(1)
}

func (m *CommentRepository) CountReplies(ctx context.Context, parentCommentID int64) (int64, error) {
	args := m.Called(ctx, parentCommentID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CommentRepository) UpdateText(ctx context.Context, id int64, text string) error {
	args := m.Called(ctx, id, text)
	return args.Error(0)
}

func (m *CommentRepository) DeleteWithReplies(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
