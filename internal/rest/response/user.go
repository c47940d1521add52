package response

import "github.com/flowblog/flowblog/domain"

const DateTimeFormat = "2006-01-02T15:04:05Z07:00"

type User struct {
	ID            int64  `json:"id"`
	Username      string `json:"username"`
	Email         string `json:"email,omitempty"`
	DisplayName   string `json:"displayName"`
	About         string `json:"about,omitempty"`
	ProfilePicURL string `json:"profilePicUrl,omitempty"`
	CreatedAt     string `json:"createdAt"`
}

// NewUserFromDomain: Domain -> Response. The password hash never leaves the
// domain layer; the email is present only when the domain object kept it
// (the owner's own record).
func NewUserFromDomain(u *domain.User) *User {
	if u == nil {
		return nil
	}
	return &User{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		DisplayName:   u.DisplayName,
		About:         u.About,
		ProfilePicURL: u.ProfilePicURL,
		CreatedAt:     u.CreatedAt.Format(DateTimeFormat),
	}
}
