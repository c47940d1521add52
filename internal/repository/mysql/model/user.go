package model

import (
	"time"

	"github.com/flowblog/flowblog/domain"
)

type User struct {
	ID            int64     `gorm:"primaryKey;autoIncrement"`
	Username      string    `gorm:"size:50;uniqueIndex;not null"`
	Email         string    `gorm:"size:320;uniqueIndex;not null"`
	DisplayName   string    `gorm:"column:display_name;size:50"`
	About         string    `gorm:"size:500"`
	ProfilePicURL string    `gorm:"column:profile_pic_url;size:500"`
	Password      string    `gorm:"size:100;not null"`
	CreatedAt     time.Time `gorm:"type:datetime"`
	UpdatedAt     time.Time `gorm:"type:datetime"`
}

func (User) TableName() string {
	return "user"
}

func NewUserFromDomain(u *domain.User) *User {
	return &User{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		DisplayName:   u.DisplayName,
		About:         u.About,
		ProfilePicURL: u.ProfilePicURL,
		Password:      u.Password,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func (m *User) ToDomain() domain.User {
	return domain.User{
		ID:            m.ID,
		Username:      m.Username,
		Email:         m.Email,
		DisplayName:   m.DisplayName,
		About:         m.About,
		ProfilePicURL: m.ProfilePicURL,
		Password:      m.Password,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
