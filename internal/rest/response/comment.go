package response

import "github.com/flowblog/flowblog/domain"

type Comment struct {
	ID              int64  `json:"id"`
	BlogPostID      int64  `json:"blogPostId"`
	AuthorID        int64  `json:"authorId"`
	Text            string `json:"text"`
	ParentCommentID int64  `json:"parentCommentId,omitempty"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`

	Author *User `json:"author,omitempty"`
	// RepliesCount is only set on top-level listings; replies carry none.
	RepliesCount *int64 `json:"repliesCount,omitempty"`
}

// CommentsPage mirrors the wire shape of both comment listings.
type CommentsPage struct {
	Comments               []*Comment `json:"comments"`
	EndOfPaginationReached bool       `json:"endOfPaginationReached"`
}

// NewCommentFromDomain: Domain -> Response.
func NewCommentFromDomain(c *domain.Comment) *Comment {
	if c == nil {
		return nil
	}
	return &Comment{
		ID:              c.ID,
		BlogPostID:      c.BlogPostID,
		AuthorID:        c.AuthorID,
		Text:            c.Text,
		ParentCommentID: c.ParentID,
		CreatedAt:       c.CreatedAt.Format(DateTimeFormat),
		UpdatedAt:       c.UpdatedAt.Format(DateTimeFormat),
		Author:          NewUserFromDomain(c.Author),
	}
}

// NewCommentsPageFromDomain converts one page. withCounts is set for
// top-level listings, where every comment carries its reply count.
func NewCommentsPageFromDomain(page domain.CommentPage, withCounts bool) CommentsPage {
	comments := make([]*Comment, 0, len(page.Comments))
	for _, c := range page.Comments {
		res := NewCommentFromDomain(c)
		if withCounts {
			count := c.RepliesCount
			res.RepliesCount = &count
		}
		comments = append(comments, res)
	}
	return CommentsPage{
		Comments:               comments,
		EndOfPaginationReached: page.EndOfPaginationReached,
	}
}
