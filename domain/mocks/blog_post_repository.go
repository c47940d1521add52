package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/flowblog/flowblog/domain"
)

// BlogPostRepository is a mock implementation of domain.BlogPostRepository.
type BlogPostRepository struct {
	mock.Mock
}

var _ domain.BlogPostRepository = (*BlogPostRepository)(nil)

func (m *BlogPostRepository) Store(ctx context.Context, p *domain.BlogPost) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *BlogPostRepository) GetByID(ctx context.Context, id int64) (domain.BlogPost, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.BlogPost), args.Error(1)
}

func (m *BlogPostRepository) GetBySlug(ctx context.Context, slug string) (domain.BlogPost, error) {
	args := m.Called(ctx, slug)
	return args.Get(0).(domain.BlogPost), args.Error(1)
}

func (m *BlogPostRepository) Fetch(ctx context.Context, authorID, page, pageSize int64) ([]domain.BlogPost, error) {
	args := m.Called(ctx, authorID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BlogPost), args.Error(1)
}

func (m *BlogPostRepository) Count(ctx context.Context, authorID int64) (int64, error) {
	args := m.Called(ctx, authorID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *BlogPostRepository) FetchSlugs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *BlogPostRepository) Update(ctx context.Context, p *domain.BlogPost) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *BlogPostRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
