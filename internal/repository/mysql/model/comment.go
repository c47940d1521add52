package model

import (
	"time"

	"github.com/flowblog/flowblog/domain"
)

type Comment struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	BlogPostID int64     `gorm:"column:blog_post_id;not null;index"`
	AuthorID   int64     `gorm:"column:author_id;not null"`
	Text       string    `gorm:"type:text;not null"`
	ParentID   int64     `gorm:"column:parent_id;default:0;index"`
	CreatedAt  time.Time `gorm:"type:datetime"`
	UpdatedAt  time.Time `gorm:"type:datetime"`
}

func (Comment) TableName() string {
	return "comment"
}

func NewCommentFromDomain(c *domain.Comment) *Comment {
	return &Comment{
		ID:         c.ID,
		BlogPostID: c.BlogPostID,
		AuthorID:   c.AuthorID,
		Text:       c.Text,
		ParentID:   c.ParentID,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func (m *Comment) ToDomain() domain.Comment {
	return domain.Comment{
		ID:         m.ID,
		BlogPostID: m.BlogPostID,
		AuthorID:   m.AuthorID,
		Text:       m.Text,
		ParentID:   m.ParentID,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
