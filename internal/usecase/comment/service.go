package comment

import (
	"context"
	"errors"

	"github.com/flowblog/flowblog/domain"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type service struct {
	commentRepo domain.CommentRepository
	postRepo    domain.BlogPostRepository
	userRepo    domain.UserRepository
}

var _ domain.CommentUsecase = (*service)(nil)

func NewService(commentRepo domain.CommentRepository, postRepo domain.BlogPostRepository, userRepo domain.UserRepository) *service {
	return &service{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
	}
}

// FetchByPost pages through the top-level comments of a post, newest first.
// It fetches limit+1 rows; the lookahead row only answers whether another
// page exists and is never returned.
func (s *service) FetchByPost(ctx context.Context, blogPostID, continueAfterID, limit int64) (domain.CommentPage, error) {
	rows, err := s.commentRepo.FetchTopLevel(ctx, blogPostID, continueAfterID, limit+1)
	if err != nil {
		return domain.CommentPage{}, err
	}

	endReached := int64(len(rows)) <= limit
	if !endReached {
		rows = rows[:limit]
	}

	// Reply counts touch disjoint rows, so the lookups run concurrently.
	g, gctx := errgroup.WithContext(ctx)
	for _, c := range rows {
		g.Go(func() error {
			count, err := s.commentRepo.CountReplies(gctx, c.ID)
			if err != nil {
				return err
			}
			c.RepliesCount = count
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.CommentPage{}, err
	}

	if err := s.fillAuthors(ctx, rows); err != nil {
		return domain.CommentPage{}, err
	}

	return domain.CommentPage{
		Comments:               rows,
		EndOfPaginationReached: endReached,
	}, nil
}

// FetchReplies pages through the replies of a comment in conversational
// order, oldest first. Replies have no sub-replies, so no counts are
// computed.
func (s *service) FetchReplies(ctx context.Context, parentCommentID, continueAfterID, limit int64) (domain.CommentPage, error) {
	rows, err := s.commentRepo.FetchReplies(ctx, parentCommentID, continueAfterID, limit+1)
	if err != nil {
		return domain.CommentPage{}, err
	}

	endReached := int64(len(rows)) <= limit
	if !endReached {
		rows = rows[:limit]
	}

	if err := s.fillAuthors(ctx, rows); err != nil {
		return domain.CommentPage{}, err
	}

	return domain.CommentPage{
		Comments:               rows,
		EndOfPaginationReached: endReached,
	}, nil
}

func (s *service) Create(ctx context.Context, c *domain.Comment) error {
	if c.AuthorID == 0 {
		return domain.ErrUnauthenticated
	}

	if _, err := s.postRepo.GetByID(ctx, c.BlogPostID); err != nil {
		return err
	}

	if c.ParentID != 0 {
		parent, err := s.commentRepo.GetByID(ctx, c.ParentID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				logrus.Warnf("rejecting comment with dangling parent %d", c.ParentID)
				return domain.ErrBadParamInput
			}
			return err
		}
		// one nesting level only
		if !parent.IsTopLevel() {
			return domain.ErrBadParamInput
		}
		if parent.BlogPostID != c.BlogPostID {
			return domain.ErrBadParamInput
		}
	}

	if err := s.commentRepo.Store(ctx, c); err != nil {
		return err
	}

	author, err := s.userRepo.GetByID(ctx, c.AuthorID)
	if err != nil {
		return err
	}
	publicAuthor := author.Public()
	c.Author = &publicAuthor

	return nil
}

func (s *service) Update(ctx context.Context, commentID int64, newText string, actingUserID int64) (*domain.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != actingUserID {
		return nil, domain.ErrUnauthorized
	}

	if err := s.commentRepo.UpdateText(ctx, commentID, newText); err != nil {
		return nil, err
	}

	updated, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}

	author, err := s.userRepo.GetByID(ctx, updated.AuthorID)
	if err != nil {
		return nil, err
	}
	publicAuthor := author.Public()
	updated.Author = &publicAuthor

	return updated, nil
}

func (s *service) Delete(ctx context.Context, commentID int64, actingUserID int64) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.AuthorID != actingUserID {
		return domain.ErrUnauthorized
	}

	// replies cannot outlive their parent, whoever authored them
	return s.commentRepo.DeleteWithReplies(ctx, commentID)
}

// fillAuthors joins author identities into the page with one batched lookup
// instead of one query per comment.
func (s *service) fillAuthors(ctx context.Context, comments []*domain.Comment) error {
	if len(comments) == 0 {
		return nil
	}

	seen := make(map[int64]bool)
	ids := make([]int64, 0, len(comments))
	for _, c := range comments {
		if !seen[c.AuthorID] {
			seen[c.AuthorID] = true
			ids = append(ids, c.AuthorID)
		}
	}

	authors, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}

	byID := make(map[int64]domain.User, len(authors))
	for _, a := range authors {
		byID[a.ID] = a.Public()
	}

	for _, c := range comments {
		if author, ok := byID[c.AuthorID]; ok {
			c.Author = &author
		} else {
			logrus.Warnf("author %d of comment %d no longer exists", c.AuthorID, c.ID)
		}
	}
	return nil
}
