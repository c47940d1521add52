package mysql

import (
	"context"
	"errors"

	"github.com/flowblog/flowblog/domain"
	"github.com/flowblog/flowblog/internal/repository/mysql/model"
	"gorm.io/gorm"
)

type commentRepository struct {
	DB *gorm.DB
}

var _ domain.CommentRepository = (*commentRepository)(nil)

func NewCommentRepository(db *gorm.DB) *commentRepository {
	return &commentRepository{
		DB: db,
	}
}

func (c *commentRepository) Store(ctx context.Context, comment *domain.Comment) error {
	commentModel := model.NewCommentFromDomain(comment)
	if err := c.DB.WithContext(ctx).Create(commentModel).Error; err != nil {
		return err
	}

	*comment = commentModel.ToDomain()
	return nil
}

func (c *commentRepository) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	var comment model.Comment
	err := c.DB.WithContext(ctx).First(&comment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	domainComment := comment.ToDomain()
	return &domainComment, nil
}

func (c *commentRepository) FetchTopLevel(ctx context.Context, blogPostID, continueAfterID, limit int64) ([]*domain.Comment, error) {
	query := c.DB.WithContext(ctx).
		Where("blog_post_id = ? AND parent_id = 0", blogPostID)
	if continueAfterID > 0 {
		query = query.Where("id < ?", continueAfterID)
	}

	var comments []model.Comment
	err := query.
		Order("id DESC").
		Limit(int(limit)).
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	return toDomainComments(comments), nil
}

func (c *commentRepository) FetchReplies(ctx context.Context, parentCommentID, continueAfterID, limit int64) ([]*domain.Comment, error) {
	query := c.DB.WithContext(ctx).
		Where("parent_id = ?", parentCommentID)
	if continueAfterID > 0 {
		query = query.Where("id > ?", continueAfterID)
	}

	var comments []model.Comment
	err := query.
		Order("id ASC").
		Limit(int(limit)).
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	return toDomainComments(comments), nil
}

func (c *commentRepository) CountReplies(ctx context.Context, parentCommentID int64) (int64, error) {
	var count int64
	err := c.DB.WithContext(ctx).
		Model(&model.Comment{}).
		Where("parent_id = ?", parentCommentID).
		Count(&count).Error
	return count, err
}

func (c *commentRepository) UpdateText(ctx context.Context, id int64, text string) error {
	result := c.DB.WithContext(ctx).
		Model(&model.Comment{}).
		Where("id = ?", id).
		Update("text", text)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (c *commentRepository) DeleteWithReplies(ctx context.Context, id int64) error {
	return c.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		return tx.Where("parent_id = ?", id).Delete(&model.Comment{}).Error
	})
}

func toDomainComments(comments []model.Comment) []*domain.Comment {
	res := make([]*domain.Comment, 0, len(comments))
	for i := range comments {
		domainComment := comments[i].ToDomain()
		res = append(res, &domainComment)
	}
	return res
}
