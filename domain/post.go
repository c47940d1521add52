package domain

import (
	"context"
	"time"
)

// BlogPost is representing the BlogPost data struct
type BlogPost struct {
	ID               int64     `json:"id"`
	Slug             string    `json:"slug"`
	Title            string    `json:"title"`
	Summary          string    `json:"summary"`
	Body             string    `json:"body"`
	FeaturedImageURL string    `json:"featuredImageUrl"`
	AuthorID         int64     `json:"authorId"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`

	// Author is joined in by the service
	Author *User `json:"author,omitempty"`
}

// BlogPostPage is one page of the offset-paginated post listing.
type BlogPostPage struct {
	Posts      []BlogPost
	Page       int64
	TotalPages int64
}

// BlogPostRepository defines the contract for blog post persistence.
type BlogPostRepository interface {
	Store(ctx context.Context, p *BlogPost) error

	// GetByID retrieves a single post by its ID.
	// Returns ErrNotFound if the post doesn't exist.
	GetByID(ctx context.Context, id int64) (BlogPost, error)

	// GetBySlug retrieves a single post by its slug.
	// Returns ErrNotFound if the post doesn't exist.
	GetBySlug(ctx context.Context, slug string) (BlogPost, error)

	// Fetch retrieves one page of posts, newest first. authorID == 0 means
	// no author filter.
	Fetch(ctx context.Context, authorID, page, pageSize int64) ([]BlogPost, error)

	// Count returns the number of posts matching the author filter.
	Count(ctx context.Context, authorID int64) (int64, error)

	// FetchSlugs returns the slugs of every post.
	FetchSlugs(ctx context.Context) ([]string, error)

	Update(ctx context.Context, p *BlogPost) error

	Delete(ctx context.Context, id int64) error
}

// BlogPostUpdate carries the mutable fields of an edit request. NewImage is
// nil when the featured image is unchanged.
type BlogPostUpdate struct {
	Slug     string
	Title    string
	Summary  string
	Body     string
	NewImage []byte
}

// BlogPostUsecase defines the business logic contract for posts.
type BlogPostUsecase interface {
	Fetch(ctx context.Context, authorID, page int64) (BlogPostPage, error)
	GetByID(ctx context.Context, id int64) (BlogPost, error)
	GetBySlug(ctx context.Context, slug string) (BlogPost, error)
	FetchSlugs(ctx context.Context) ([]string, error)
	// Store creates the post and its resized featured image.
	Store(ctx context.Context, p *BlogPost, image []byte) error
	Update(ctx context.Context, id int64, update BlogPostUpdate, actingUserID int64) (BlogPost, error)
	Delete(ctx context.Context, id int64, actingUserID int64) error
}

// ImageStore persists uploaded images and hands back their public URLs.
type ImageStore interface {
	// SaveFeaturedImage validates, resizes and stores a post's featured
	// image, returning its public URL.
	SaveFeaturedImage(ctx context.Context, postID int64, data []byte) (string, error)

	// SaveProfilePicture validates, resizes and stores a user's profile
	// picture, returning its public URL.
	SaveProfilePicture(ctx context.Context, userID int64, data []byte) (string, error)

	// Remove deletes a previously stored image by its public URL. URLs not
	// served by this store are ignored.
	Remove(ctx context.Context, url string) error
}
