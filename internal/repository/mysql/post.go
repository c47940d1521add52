package mysql

import (
	"context"
	"errors"

	"github.com/flowblog/flowblog/domain"
	"github.com/flowblog/flowblog/internal/repository/mysql/model"
	"gorm.io/gorm"
)

type blogPostRepository struct {
	DB *gorm.DB
}

var _ domain.BlogPostRepository = (*blogPostRepository)(nil)

func NewBlogPostRepository(db *gorm.DB) *blogPostRepository {
	return &blogPostRepository{
		DB: db,
	}
}

func (r *blogPostRepository) Store(ctx context.Context, p *domain.BlogPost) error {
	postModel := model.NewBlogPostFromDomain(p)
	if err := r.DB.WithContext(ctx).Create(postModel).Error; err != nil {
		return err
	}

	*p = postModel.ToDomain()
	return nil
}

func (r *blogPostRepository) GetByID(ctx context.Context, id int64) (domain.BlogPost, error) {
	var post model.BlogPost
	err := r.DB.WithContext(ctx).First(&post, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.BlogPost{}, domain.ErrNotFound
		}
		return domain.BlogPost{}, err
	}
	return post.ToDomain(), nil
}

func (r *blogPostRepository) GetBySlug(ctx context.Context, slug string) (domain.BlogPost, error) {
	var post model.BlogPost
	err := r.DB.WithContext(ctx).First(&post, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.BlogPost{}, domain.ErrNotFound
		}
		return domain.BlogPost{}, err
	}
	return post.ToDomain(), nil
}

func (r *blogPostRepository) Fetch(ctx context.Context, authorID, page, pageSize int64) ([]domain.BlogPost, error) {
	query := r.DB.WithContext(ctx).Model(&model.BlogPost{})
	if authorID > 0 {
		query = query.Where("author_id = ?", authorID)
	}

	var posts []model.BlogPost
	err := query.
		Order("id DESC").
		Limit(int(pageSize)).
		Offset(int((page - 1) * pageSize)).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}

	res := make([]domain.BlogPost, len(posts))
	for i := range posts {
		res[i] = posts[i].ToDomain()
	}
	return res, nil
}

func (r *blogPostRepository) Count(ctx context.Context, authorID int64) (int64, error) {
	query := r.DB.WithContext(ctx).Model(&model.BlogPost{})
	if authorID > 0 {
		query = query.Where("author_id = ?", authorID)
	}

	var count int64
	err := query.Count(&count).Error
	return count, err
}

func (r *blogPostRepository) FetchSlugs(ctx context.Context) ([]string, error) {
	var slugs []string
	err := r.DB.WithContext(ctx).
		Model(&model.BlogPost{}).
		Order("id DESC").
		Pluck("slug", &slugs).Error
	return slugs, err
}

func (r *blogPostRepository) Update(ctx context.Context, p *domain.BlogPost) error {
	postModel := model.NewBlogPostFromDomain(p)
	result := r.DB.WithContext(ctx).
		Model(&model.BlogPost{}).
		Where("id = ?", p.ID).
		Updates(map[string]any{
			"slug":               postModel.Slug,
			"title":              postModel.Title,
			"summary":            postModel.Summary,
			"body":               postModel.Body,
			"featured_image_url": postModel.FeaturedImageURL,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *blogPostRepository) Delete(ctx context.Context, id int64) error {
	result := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&model.BlogPost{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
