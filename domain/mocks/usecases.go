package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/flowblog/flowblog/domain"
)

// CommentUsecase is a mock implementation of domain.CommentUsecase.
type CommentUsecase struct {
	mock.Mock
}

var _ domain.CommentUsecase = (*CommentUsecase)(nil)

func (m *CommentUsecase) Create(ctx context.Context, c *domain.Comment) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *CommentUsecase) Update(ctx context.Context, commentID int64, newText string, actingUserID int64) (*domain.Comment, error) {
	args := m.Called(ctx, commentID, newText, actingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *CommentUsecase) Delete(ctx context.Context, commentID int64, actingUserID int64) error {
	args := m.Called(ctx, commentID, actingUserID)
	return args.Error(0)
}

func (m *CommentUsecase) FetchByPost(ctx context.Context, blogPostID, continueAfterID, limit int64) (domain.CommentPage, error) {
	args := m.Called(ctx, blogPostID, continueAfterID, limit)
	return args.Get(0).(domain.CommentPage), args.Error(1)
}

func (m *CommentUsecase) FetchReplies(ctx context.Context, parentCommentID, continueAfterID, limit int64) (domain.CommentPage, error) {
	args := m.Called(ctx, parentCommentID, continueAfterID, limit)
	return args.Get(0).(domain.CommentPage), args.Error(1)
}

// BlogPostUsecase is a mock implementation of domain.BlogPostUsecase.
type BlogPostUsecase struct {
	mock.Mock
}

var _ domain.BlogPostUsecase = (*BlogPostUsecase)(nil)

func (m *BlogPostUsecase) Fetch(ctx context.Context, authorID, page int64) (domain.BlogPostPage, error) {
	args := m.Called(ctx, authorID, page)
	return args.Get(0).(domain.BlogPostPage), args.Error(1)
}

func (m *BlogPostUsecase) GetByID(ctx context.Context, id int64) (domain.BlogPost, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.BlogPost), args.Error(1)
}

func (m *BlogPostUsecase) GetBySlug(ctx context.Context, slug string) (domain.BlogPost, error) {
	args := m.Called(ctx, slug)
	return args.Get(0).(domain.BlogPost), args.Error(1)
}

func (m *BlogPostUsecase) FetchSlugs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *BlogPostUsecase) Store(ctx context.Context, p *domain.BlogPost, image []byte) error {
	args := m.Called(ctx, p, image)
	return args.Error(0)
}

func (m *BlogPostUsecase) Update(ctx context.Context, id int64, update domain.BlogPostUpdate, actingUserID int64) (domain.BlogPost, error) {
	args := m.Called(ctx, id, update, actingUserID)
	return args.Get(0).(domain.BlogPost), args.Error(1)
}

func (m *BlogPostUsecase) Delete(ctx context.Context, id int64, actingUserID int64) error {
	args := m.Called(ctx, id, actingUserID)
	return args.Error(0)
}

// UserUsecase is a mock implementation of domain.UserUsecase.
type UserUsecase struct {
	mock.Mock
}

var _ domain.UserUsecase = (*UserUsecase)(nil)

func (m *UserUsecase) SignUp(ctx context.Context, username, email, password, verificationCode string) (domain.User, string, error) {
	args := m.Called(ctx, username, email, password, verificationCode)
	return args.Get(0).(domain.User), args.String(1), args.Error(2)
}

func (m *UserUsecase) Login(ctx context.Context, username, password string) (domain.User, string, error) {
	args := m.Called(ctx, username, password)
	return args.Get(0).(domain.User), args.String(1), args.Error(2)
}

func (m *UserUsecase) Logout(ctx context.Context, sessionToken string) error {
	args := m.Called(ctx, sessionToken)
	return args.Error(0)
}

func (m *UserUsecase) GetByID(ctx context.Context, id int64) (domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *UserUsecase) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *UserUsecase) UpdateProfile(ctx context.Context, userID int64, update domain.ProfileUpdate) (domain.User, error) {
	args := m.Called(ctx, userID, update)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *UserUsecase) RequestVerificationCode(ctx context.Context, email, purpose string) error {
	args := m.Called(ctx, email, purpose)
	return args.Error(0)
}

func (m *UserUsecase) ResetPassword(ctx context.Context, email, newPassword, verificationCode string) (domain.User, string, error) {
	args := m.Called(ctx, email, newPassword, verificationCode)
	return args.Get(0).(domain.User), args.String(1), args.Error(2)
}
