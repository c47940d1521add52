package domain

import (
	"context"
	"time"
)

// Comment domain model. ParentID == 0 marks a top-level comment attached
// directly to a post; a non-zero ParentID must reference a top-level comment,
// so threads never nest deeper than one level.
type Comment struct {
	ID         int64     `json:"id"`
	BlogPostID int64     `json:"blogPostId"`
	AuthorID   int64     `json:"authorId"`
	Text       string    `json:"text"`
	ParentID   int64     `json:"parentCommentId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	// Author is joined in by the service, never stored on the row
	Author *User `json:"author,omitempty"`
	// RepliesCount is derived at read time for top-level comments
	RepliesCount int64 `json:"-"`
}

// IsTopLevel reports whether the comment attaches directly to a post.
func (c *Comment) IsTopLevel() bool {
	return c.ParentID == 0
}

// CommentPage is one page of a cursor-paginated listing.
type CommentPage struct {
	Comments []*Comment
	// EndOfPaginationReached is true iff the lookahead row past the page
	// did not exist.
	EndOfPaginationReached bool
}

// CommentUsecase defines the business logic contract for comment threads.
type CommentUsecase interface {
	Create(ctx context.Context, c *Comment) error
	Update(ctx context.Context, commentID int64, newText string, actingUserID int64) (*Comment, error)
	Delete(ctx context.Context, commentID int64, actingUserID int64) error
	// FetchByPost returns one page of top-level comments, newest first,
	// with reply counts and authors attached.
	FetchByPost(ctx context.Context, blogPostID, continueAfterID, limit int64) (CommentPage, error)
	// FetchReplies returns one page of replies, oldest first.
	FetchReplies(ctx context.Context, parentCommentID, continueAfterID, limit int64) (CommentPage, error)
}

// CommentRepository defines the contract for comment persistence.
type CommentRepository interface {
	Store(ctx context.Context, c *Comment) error
	GetByID(ctx context.Context, id int64) (*Comment, error)
	// FetchTopLevel returns up to limit top-level comments of a post ordered
	// by id descending, restricted to id < continueAfterID when it is non-zero.
	FetchTopLevel(ctx context.Context, blogPostID, continueAfterID, limit int64) ([]*Comment, error)
	// FetchReplies returns up to limit replies ordered by id ascending,
	// restricted to id > continueAfterID when it is non-zero.
	FetchReplies(ctx context.Context, parentCommentID, continueAfterID, limit int64) ([]*Comment, error)
	CountReplies(ctx context.Context, parentCommentID int64) (int64, error)
	UpdateText(ctx context.Context, id int64, text string) error
	// DeleteWithReplies removes the comment and every reply whose parent it
	// is, inside a single transaction.
	DeleteWithReplies(ctx context.Context, id int64) error
}
