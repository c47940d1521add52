package request

import "github.com/flowblog/flowblog/domain"

// BlogPostForm is bound from the multipart form of create and update
// requests. The featured image file travels separately.
type BlogPostForm struct {
	Slug    string `form:"slug" binding:"required,max=100,slug"`
	Title   string `form:"title" binding:"required,max=100"`
	Summary string `form:"summary" binding:"required,max=300"`
	Body    string `form:"body" binding:"required,max=70000"`
}

func (r *BlogPostForm) ToDomain(authorID int64) domain.BlogPost {
	return domain.BlogPost{
		Slug:     r.Slug,
		Title:    r.Title,
		Summary:  r.Summary,
		Body:     r.Body,
		AuthorID: authorID,
	}
}

func (r *BlogPostForm) ToUpdate(newImage []byte) domain.BlogPostUpdate {
	return domain.BlogPostUpdate{
		Slug:     r.Slug,
		Title:    r.Title,
		Summary:  r.Summary,
		Body:     r.Body,
		NewImage: newImage,
	}
}
