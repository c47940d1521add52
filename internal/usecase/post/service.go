package post

import (
	"context"
	"errors"

	"github.com/flowblog/flowblog/domain"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// PageSize is the fixed size of one page of the post feed.
const PageSize = 6

type service struct {
	postRepo    domain.BlogPostRepository
	userRepo    domain.UserRepository
	images      domain.ImageStore
	revalidator domain.Revalidator
}

var _ domain.BlogPostUsecase = (*service)(nil)

func NewService(postRepo domain.BlogPostRepository, userRepo domain.UserRepository, images domain.ImageStore, revalidator domain.Revalidator) *service {
	return &service{
		postRepo:    postRepo,
		userRepo:    userRepo,
		images:      images,
		revalidator: revalidator,
	}
}

func (s *service) Fetch(ctx context.Context, authorID, page int64) (domain.BlogPostPage, error) {
	if page < 1 {
		page = 1
	}

	var (
		posts []domain.BlogPost
		total int64
	)

	// the page and its total are independent queries
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		posts, err = s.postRepo.Fetch(gctx, authorID, page, PageSize)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.postRepo.Count(gctx, authorID)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.BlogPostPage{}, err
	}

	if err := s.fillAuthors(ctx, posts); err != nil {
		return domain.BlogPostPage{}, err
	}

	return domain.BlogPostPage{
		Posts:      posts,
		Page:       page,
		TotalPages: (total + PageSize - 1) / PageSize,
	}, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (domain.BlogPost, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return domain.BlogPost{}, err
	}
	if err := s.fillAuthor(ctx, &post); err != nil {
		return domain.BlogPost{}, err
	}
	return post, nil
}

func (s *service) GetBySlug(ctx context.Context, slug string) (domain.BlogPost, error) {
	post, err := s.postRepo.GetBySlug(ctx, slug)
	if err != nil {
		return domain.BlogPost{}, err
	}
	if err := s.fillAuthor(ctx, &post); err != nil {
		return domain.BlogPost{}, err
	}
	return post, nil
}

func (s *service) FetchSlugs(ctx context.Context) ([]string, error) {
	return s.postRepo.FetchSlugs(ctx)
}

func (s *service) Store(ctx context.Context, p *domain.BlogPost, image []byte) error {
	if p.AuthorID == 0 {
		return domain.ErrUnauthenticated
	}
	if len(image) == 0 {
		return domain.ErrBadParamInput
	}

	if err := s.checkSlugFree(ctx, p.Slug, 0); err != nil {
		return err
	}

	// the image file is named after the post id, so the row comes first
	if err := s.postRepo.Store(ctx, p); err != nil {
		return err
	}

	imageURL, err := s.images.SaveFeaturedImage(ctx, p.ID, image)
	if err != nil {
		if delErr := s.postRepo.Delete(ctx, p.ID); delErr != nil {
			logrus.Errorf("failed to roll back post %d after image error: %v", p.ID, delErr)
		}
		return err
	}

	p.FeaturedImageURL = imageURL
	if err := s.postRepo.Update(ctx, p); err != nil {
		return err
	}

	return s.fillAuthor(ctx, p)
}

func (s *service) Update(ctx context.Context, id int64, update domain.BlogPostUpdate, actingUserID int64) (domain.BlogPost, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return domain.BlogPost{}, err
	}
	if post.AuthorID != actingUserID {
		return domain.BlogPost{}, domain.ErrUnauthorized
	}

	if err := s.checkSlugFree(ctx, update.Slug, id); err != nil {
		return domain.BlogPost{}, err
	}

	post.Slug = update.Slug
	post.Title = update.Title
	post.Summary = update.Summary
	post.Body = update.Body

	if len(update.NewImage) > 0 {
		imageURL, err := s.images.SaveFeaturedImage(ctx, id, update.NewImage)
		if err != nil {
			return domain.BlogPost{}, err
		}
		post.FeaturedImageURL = imageURL
	}

	if err := s.postRepo.Update(ctx, &post); err != nil {
		return domain.BlogPost{}, err
	}

	s.revalidator.Notify(post.Slug)

	if err := s.fillAuthor(ctx, &post); err != nil {
		return domain.BlogPost{}, err
	}
	return post, nil
}

func (s *service) Delete(ctx context.Context, id int64, actingUserID int64) error {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if post.AuthorID != actingUserID {
		return domain.ErrUnauthorized
	}

	if err := s.images.Remove(ctx, post.FeaturedImageURL); err != nil {
		logrus.Warnf("failed to remove featured image of post %d: %v", id, err)
	}

	if err := s.postRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.revalidator.Notify(post.Slug)
	return nil
}

// checkSlugFree returns ErrConflict when another post already owns the slug.
// selfID exempts the post being edited from the check.
func (s *service) checkSlugFree(ctx context.Context, slug string, selfID int64) error {
	existing, err := s.postRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return domain.ErrConflict
	}
	return nil
}

func (s *service) fillAuthor(ctx context.Context, p *domain.BlogPost) error {
	author, err := s.userRepo.GetByID(ctx, p.AuthorID)
	if err != nil {
		return err
	}
	publicAuthor := author.Public()
	p.Author = &publicAuthor
	return nil
}

func (s *service) fillAuthors(ctx context.Context, posts []domain.BlogPost) error {
	if len(posts) == 0 {
		return nil
	}

	seen := make(map[int64]bool)
	ids := make([]int64, 0, len(posts))
	for i := range posts {
		if !seen[posts[i].AuthorID] {
			seen[posts[i].AuthorID] = true
			ids = append(ids, posts[i].AuthorID)
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

	for i := range posts {
		if author, ok := byID[posts[i].AuthorID]; ok {
			posts[i].Author = &author
		}
	}
	return nil
}
