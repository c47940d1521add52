package response

import "github.com/flowblog/flowblog/domain"

type BlogPost struct {
	ID               int64  `json:"id"`
	Slug             string `json:"slug"`
	Title            string `json:"title"`
	Summary          string `json:"summary"`
	Body             string `json:"body"`
	FeaturedImageURL string `json:"featuredImageUrl"`
	AuthorID         int64  `json:"authorId"`
	CreatedAt        string `json:"createdAt"`
	UpdatedAt        string `json:"updatedAt"`

	Author *User `json:"author,omitempty"`
}

// BlogPostsPage mirrors the wire shape of the post feed.
type BlogPostsPage struct {
	BlogPosts  []*BlogPost `json:"blogPosts"`
	Page       int64       `json:"page"`
	TotalPages int64       `json:"totalPages"`
}

// NewBlogPostFromDomain: Domain -> Response.
func NewBlogPostFromDomain(p *domain.BlogPost) *BlogPost {
	if p == nil {
		return nil
	}
	return &BlogPost{
		ID:               p.ID,
		Slug:             p.Slug,
		Title:            p.Title,
		Summary:          p.Summary,
		Body:             p.Body,
		FeaturedImageURL: p.FeaturedImageURL,
		AuthorID:         p.AuthorID,
		CreatedAt:        p.CreatedAt.Format(DateTimeFormat),
		UpdatedAt:        p.UpdatedAt.Format(DateTimeFormat),
		Author:           NewUserFromDomain(p.Author),
	}
}

func NewBlogPostsPageFromDomain(page domain.BlogPostPage) BlogPostsPage {
	posts := make([]*BlogPost, 0, len(page.Posts))
	for i := range page.Posts {
		posts = append(posts, NewBlogPostFromDomain(&page.Posts[i]))
	}
	return BlogPostsPage{
		BlogPosts:  posts,
		Page:       page.Page,
		TotalPages: page.TotalPages,
	}
}
