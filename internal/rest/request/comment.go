package request

import "github.com/flowblog/flowblog/domain"

type CreateComment struct {
	Text            string `json:"text" binding:"required,max=600"`
	ParentCommentID int64  `json:"parentCommentId"`
}

// ToDomain: Request -> Domain. Post and author ids come from the route and
// the session, never from the body.
func (r *CreateComment) ToDomain(blogPostID, authorID int64) domain.Comment {
	return domain.Comment{
		BlogPostID: blogPostID,
		AuthorID:   authorID,
		Text:       r.Text,
		ParentID:   r.ParentCommentID,
	}
}

type UpdateComment struct {
	NewText string `json:"newText" binding:"required,max=600"`
}
