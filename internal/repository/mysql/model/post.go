package model

import (
	"time"

	"github.com/flowblog/flowblog/domain"
)

type BlogPost struct {
	ID               int64     `gorm:"primaryKey;autoIncrement"`
	Slug             string    `gorm:"size:100;uniqueIndex;not null"`
	Title            string    `gorm:"size:100;not null"`
	Summary          string    `gorm:"size:300;not null"`
	Body             string    `gorm:"type:text;not null"`
	FeaturedImageURL string    `gorm:"column:featured_image_url;size:500"`
	AuthorID         int64     `gorm:"column:author_id;not null;index"`
	CreatedAt        time.Time `gorm:"type:datetime"`
	UpdatedAt        time.Time `gorm:"type:datetime"`
}

func (BlogPost) TableName() string {
	return "blog_post"
}

func NewBlogPostFromDomain(p *domain.BlogPost) *BlogPost {
	return &BlogPost{
		ID:               p.ID,
		Slug:             p.Slug,
		Title:            p.Title,
		Summary:          p.Summary,
		Body:             p.Body,
		FeaturedImageURL: p.FeaturedImageURL,
		AuthorID:         p.AuthorID,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func (m *BlogPost) ToDomain() domain.BlogPost {
	return domain.BlogPost{
		ID:               m.ID,
		Slug:             m.Slug,
		Title:            m.Title,
		Summary:          m.Summary,
		Body:             m.Body,
		FeaturedImageURL: m.FeaturedImageURL,
		AuthorID:         m.AuthorID,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}
