package comment_test

import (
	"context"
	"errors"
	"testing"

	"github.com/go-faker/faker/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/flowblog/flowblog/domain"
	"github.com/flowblog/flowblog/domain/mocks"
	"github.com/flowblog/flowblog/internal/usecase/comment"
)

func fakeUser(id int64) domain.User {
	var u domain.User
	err := faker.FakeData(&u)
	if err != nil {
		panic(err)
	}
	u.ID = id
	return u
}

func topLevelComment(id, postID, authorID int64) *domain.Comment {
	return &domain.Comment{
		ID:         id,
		BlogPostID: postID,
		AuthorID:   authorID,
		Text:       faker.Sentence(),
	}
}

func TestFetchByPost(t *testing.T) {
	// three top-level comments exist; page size two
	mockCommentRepo := new(mocks.CommentRepository)
	mockPostRepo := new(mocks.BlogPostRepository)
	mockUserRepo := new(mocks.UserRepository)

	c3 := topLevelComment(3, 10, 1)
	c2 := topLevelComment(2, 10, 2)

	// lookahead row proves a second page exists
	mockCommentRepo.On("FetchTopLevel", mock.Anything, int64(10), int64(0), int64(3)).
		Return([]*domain.Comment{c3, c2, topLevelComment(1, 10, 1)}, nil).Once()
	mockCommentRepo.On("CountReplies", mock.Anything, int64(3)).Return(int64(2), nil).Once()
	mockCommentRepo.On("CountReplies", mock.Anything, int64(2)).Return(int64(0), nil).Once()
	mockUserRepo.On("GetByIDs", mock.Anything, mock.Anything).
		Return([]domain.User{fakeUser(1), fakeUser(2)}, nil).Once()

	svc := comment.NewService(mockCommentRepo, mockPostRepo, mockUserRepo)
	page, err := svc.FetchByPost(context.TODO(), 10, 0, 2)
	require.NoError(t, err)

	require.Len(t, page.Comments, 2)
	assert.False(t, page.EndOfPaginationReached)
	assert.Equal(t, int64(3), page.Comments[0].ID)
	assert.Equal(t, int64(2), page.Comments[1].ID)
	assert.Equal(t, int64(2), page.Comments[0].RepliesCount)
	assert.Equal(t, int64(0), page.Comments[1].RepliesCount)
	mockCommentRepo.AssertExpectations(t)
	mockUserRepo.AssertExpectations(t)
}

func TestFetchByPostLastPage(t *testing.T) {
	mockCommentRepo := new(mocks.CommentRepository)
	mockPostRepo := new(mocks.BlogPostRepository)
	mockUserRepo := new(mocks.UserRepository)

	c1 := topLevelComment(1, 10, 1)
	mockCommentRepo.On("FetchTopLevel", mock.Anything, int64(10), int64(2), int64(3)).
		Return([]*domain.Comment{c1}, nil).Once()
	mockCommentRepo.On("CountReplies", mock.Anything, int64(1)).Return(int64(0), nil).Once()
	mockUserRepo.On("GetByIDs", mock.Anything, []int64{1}).
		Return([]domain.User{fakeUser(1)}, nil).Once()

	svc := comment.NewService(mockCommentRepo, mockPostRepo, mockUserRepo)
	page, err := svc.FetchByPost(context.TODO(), 10, 2, 2)
	require.NoError(t, err)

	require.Len(t, page.Comments, 1)
	assert.True(t, page.EndOfPaginationReached)
	assert.Equal(t, int64(1), page.Comments[0].ID)
	mockCommentRepo.AssertExpectations(t)
}

func TestFetchByPostEmpty(t *testing.T) {
	mockCommentRepo := new(mocks.CommentRepository)
	mockPostRepo := new(mocks.BlogPostRepository)
	mockUserRepo := new(mocks.UserRepository)

	mockCommentRepo.On("FetchTopLevel", mock.Anything, int64(10), int64(0), int64(3)).
		Return([]*domain.Comment{}, nil).Once()

	svc := comment.NewService(mockCommentRepo, mockPostRepo, mockUserRepo)
	page, err := svc.FetchByPost(context.TODO(), 10, 0, 2)
	require.NoError(t, err)

	assert.Empty(t, page.Comments)
	assert.True(t, page.EndOfPaginationReached)
	mockUserRepo.AssertNotCalled(t, "GetByIDs", mock.Anything, mock.Anything)
}

func TestFetchByPostPublicAuthors(t *testing.T) {
	mockCommentRepo := new(mocks.CommentRepository)
	mockPostRepo := new(mocks.BlogPostRepository)
	mockUserRepo := new(mocks.UserRepository)

	author := fakeUser(7)
	author.Email = "secret@example.com"
	c := topLevelComment(5, 10, 7)

	mockCommentRepo.On("FetchTopLevel", mock.Anything, int64(10), int64(0), int64(3)).
		Return([]*domain.Comment{c}, nil).Once()
	mockCommentRepo.On("CountReplies", mock.Anything, int64(5)).Return(int64(0), nil).Once()
	mockUserRepo.On("GetByIDs", mock.Anything, []int64{7}).
		Return([]domain.User{author}, nil).Once()

	svc := comment.NewService(mockCommentRepo, mockPostRepo, mockUserRepo)
	page, err := svc.FetchByPost(context.TODO(), 10, 0, 2)
	require.NoError(t, err)

	require.NotNil(t, page.Comments[0].Author)
	assert.Equal(t, author.Username, page.Comments[0].Author.Username)
	assert.Empty(t, page.Comments[0].Author.Email)
	assert.Empty(t, page.Comments[0].Author.Password)
}

func TestFetchReplies(t *testing.T) {
	mockCommentRepo := new(mocks.CommentRepository)
	mockPostRepo := new(mocks.BlogPostRepository)
	mockUserRepo := new(mocks.UserRepository)

	r1 := &domain.Comment{ID: 4, BlogPostID: 10, AuthorID: 1, ParentID: 3}
	r2 := &domain.Comment{ID: 6, BlogPostID: 10, AuthorID: 2, ParentID: 3}

	mockCommentRepo.On("FetchReplies", mock.Anything, int64(3), int64(0), int64(3)).
		Return([]*domain.Comment{r1, r2}, nil).Once()
	mockUserRepo.On("GetByIDs", mock.Anything, mock.Anything).
		Return([]domain.User{fakeUser(1), fakeUser(2)}, nil).Once()

	svc := comment.NewService(mockCommentRepo, mockPostRepo, mockUserRepo)
	page, err := svc.FetchReplies(context.TODO(), 3, 0, 2)
	require.NoError(t, err)

	require.Len(t, page.Comments, 2)
	assert.True(t, page.EndOfPaginationReached)
	// conversational order, oldest first
	assert.Equal(t, int64(4), page.Comments[0].ID)
	assert.Equal(t, int64(6), page.Comments[1].ID)
	// replies carry no counts of their own
	mockCommentRepo.AssertNotCalled(t, "CountReplies", mock.Anything, mock.Anything)
}

func TestCreate(t *testing.T) {
	mockCommentRepo := new(mocks.CommentRepository)
	mockPostRepo := new(mocks.BlogPostRepository)
	mockUserRepo := new(mocks.UserRepository)

	newComment := &domain.Comment{BlogPostID: 10, AuthorID: 1, Text: "first!"}

	mockPostRepo.On("GetByID", mock.Anything, int64(10)).
		Return(domain.BlogPost{ID: 10}, nil).Once()
	mockCommentRepo.On("Store", mock.Anything, newComment).Return(nil).Once()
	mockUserRepo.On("GetByID", mock.Anything, int64(1)).Return(fakeUser(1), nil).Once()

	svc := comment.NewService(mockCommentRepo, mockPostRepo, mockUserRepo)
	err := svc.Create(context.TODO(), newComment)
	require.NoError(t, err)
	require.NotNil(t, newComment.Author)
	assert.Empty(t, newComment.Author.Email)
	mockCommentRepo.AssertExpectations(t)
}

func TestCreateUnauthenticated(t *testing.T) {
	svc := comment.NewService(new(mocks.CommentRepository), new(mocks.BlogPostRepository), new(mocks.UserRepository))

	err := svc.Create(context.TODO(), &domain.Comment{BlogPostID: 10, Text: "hi"})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestCreateMissingPost(t *testing.T) {
	mockCommentRepo := new(mocks.CommentRepository)
	mockPostRepo := new(mocks.BlogPostRepository)

	mockPostRepo.On("GetByID", mock.Anything, int64(99)).
		Return(domain.BlogPost{}, domain.ErrNotFound).Once()

	svc := comment.NewService(mockCommentRepo, mockPostRepo, new(mocks.UserRepository))
	err := svc.Create(context.TODO(), &domain.Comment{BlogPostID: 99, AuthorID: 1, Text: "hi"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	mockCommentRepo.AssertNotCalled(t, "Store", mock.Anything, mock.Anything)
}

func TestCreateDanglingParent(t *testing.T) {
	mockCommentRepo := new(mocks.CommentRepository)
	mockPostRepo := new(mocks.BlogPostRepository)

	mockPostRepo.On("GetByID", mock.Anything, int64(10)).
		Return(domain.BlogPost{ID: 10}, nil).Once()
	mockCommentRepo.On("GetByID", mock.Anything, int64(77)).
		Return(nil, domain.ErrNotFound).Once()

	svc := comment.NewService(mockCommentRepo, mockPostRepo, new(mocks.UserRepository))
	err := svc.Create(context.TODO(), &domain.Comment{BlogPostID: 10, AuthorID: 1, Text: "hi", ParentID: 77})
	assert.ErrorIs(t, err, domain.ErrBadParamInput)
	mockCommentRepo.AssertNotCalled(t, "Store", mock.Anything, mock.Anything)
}

func TestCreateReplyToReply(t *testing.T) {
	mockCommentRepo := new(mocks.CommentRepository)
	mockPostRepo := new(mocks.BlogPostRepository)

	mockPostRepo.On("GetByID", mock.Anything, int64(10)).
		Return(domain.BlogPost{ID: 10}, nil).Once()
	mockCommentRepo.On("GetByID", mock.Anything, int64(4)).
		Return(&domain.Comment{ID: 4, BlogPostID: 10, ParentID: 3}, nil).Once()

	svc := comment.NewService(mockCommentRepo, mockPostRepo, new(mocks.UserRepository))
	err := svc.Create(context.TODO(), &domain.Comment{BlogPostID: 10, AuthorID: 1, Text: "hi", ParentID: 4})
	assert.ErrorIs(t, err, domain.ErrBadParamInput)
}

func TestCreateParentOnOtherPost(t *testing.T) {
	mockCommentRepo := new(mocks.CommentRepository)
	mockPostRepo := new(mocks.BlogPostRepository)

	mockPostRepo.On("GetByID", mock.Anything, int64(10)).
		Return(domain.BlogPost{ID: 10}, nil).Once()
	mockCommentRepo.On("GetByID", mock.Anything, int64(3)).
		Return(&domain.Comment{ID: 3, BlogPostID: 11}, nil).Once()

	svc := comment.NewService(mockCommentRepo, mockPostRepo, new(mocks.UserRepository))
	err := svc.Create(context.TODO(), &domain.Comment{BlogPostID: 10, AuthorID: 1, Text: "hi", ParentID: 3})
	assert.ErrorIs(t, err, domain.ErrBadParamInput)
}

func TestUpdate(t *testing.T) {
	mockCommentRepo := new(mocks.CommentRepository)
	mockUserRepo := new(mocks.UserRepository)

	existing := &domain.Comment{ID: 5, BlogPostID: 10, AuthorID: 1, Text: "old"}
	updated := &domain.Comment{ID: 5, BlogPostID: 10, AuthorID: 1, Text: "new"}

	mockCommentRepo.On("GetByID", mock.Anything, int64(5)).Return(existing, nil).Once()
	mockCommentRepo.On("UpdateText", mock.Anything, int64(5), "new").Return(nil).Once()
	mockCommentRepo.On("GetByID", mock.Anything, int64(5)).Return(updated, nil).Once()
	mockUserRepo.On("GetByID", mock.Anything, int64(1)).Return(fakeUser(1), nil).Once()

	svc := comment.NewService(mockCommentRepo, new(mocks.BlogPostRepository), mockUserRepo)
	got, err := svc.Update(context.TODO(), 5, "new", 1)
	require.NoError(t, err)
	assert.Equal(t, "new", got.Text)
	require.NotNil(t, got.Author)
	mockCommentRepo.AssertExpectations(t)
}

func TestUpdateNotAuthor(t *testing.T) {
	mockCommentRepo := new(mocks.CommentRepository)

	mockCommentRepo.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.Comment{ID: 5, AuthorID: 1}, nil).Once()

	svc := comment.NewService(mockCommentRepo, new(mocks.BlogPostRepository), new(mocks.UserRepository))
	_, err := svc.Update(context.TODO(), 5, "new", 2)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	mockCommentRepo.AssertNotCalled(t, "UpdateText", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateNotFound(t *testing.T) {
	mockCommentRepo := new(mocks.CommentRepository)

	mockCommentRepo.On("GetByID", mock.Anything, int64(5)).
		Return(nil, domain.ErrNotFound).Once()

	svc := comment.NewService(mockCommentRepo, new(mocks.BlogPostRepository), new(mocks.UserRepository))
	_, err := svc.Update(context.TODO(), 5, "new", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete(t *testing.T) {
	mockCommentRepo := new(mocks.CommentRepository)

	mockCommentRepo.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.Comment{ID: 5, AuthorID: 1}, nil).Once()
	mockCommentRepo.On("DeleteWithReplies", mock.Anything, int64(5)).Return(nil).Once()

	svc := comment.NewService(mockCommentRepo, new(mocks.BlogPostRepository), new(mocks.UserRepository))
	err := svc.Delete(context.TODO(), 5, 1)
	require.NoError(t, err)
	mockCommentRepo.AssertExpectations(t)
}

func TestDeleteNotAuthor(t *testing.T) {
	mockCommentRepo := new(mocks.CommentRepository)

	mockCommentRepo.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.Comment{ID: 5, AuthorID: 1}, nil).Once()

	svc := comment.NewService(mockCommentRepo, new(mocks.BlogPostRepository), new(mocks.UserRepository))
	err := svc.Delete(context.TODO(), 5, 2)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	mockCommentRepo.AssertNotCalled(t, "DeleteWithReplies", mock.Anything, mock.Anything)
}

func TestFetchByPostCountError(t *testing.T) {
	mockCommentRepo := new(mocks.CommentRepository)
	mockUserRepo := new(mocks.UserRepository)

	c := topLevelComment(3, 10, 1)
	countErr := errors.New("db gone")

	mockCommentRepo.On("FetchTopLevel", mock.Anything, int64(10), int64(0), int64(3)).
		Return([]*domain.Comment{c}, nil).Once()
	mockCommentRepo.On("CountReplies", mock.Anything, int64(3)).Return(int64(0), countErr).Once()

	svc := comment.NewService(mockCommentRepo, new(mocks.BlogPostRepository), mockUserRepo)
	_, err := svc.FetchByPost(context.TODO(), 10, 0, 2)
	assert.ErrorIs(t, err, countErr)
}
