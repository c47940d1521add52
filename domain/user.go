package domain

import (
	"context"
	"time"
)

// User represents a user entity in the system.
// A user can register, login, write posts and comment on them.
type User struct {
	ID            int64     `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email,omitempty"`
	DisplayName   string    `json:"displayName"`
	About         string    `json:"about,omitempty"`
	ProfilePicURL string    `json:"profilePicUrl,omitempty"`
	Password      string    `json:"-"` // bcrypt hash
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Public returns a copy stripped of the fields only the owner may see.
func (u User) Public() User {
	u.Email = ""
	u.Password = ""
	return u
}

// Verification code purposes. Codes requested for one purpose are not valid
// for another.
const (
	VerificationPurposeSignup        = "signup"
	VerificationPurposePasswordReset = "password-reset"
)

// ProfileUpdate carries the mutable profile fields. Empty strings leave the
// current value untouched; ProfilePic is nil when the picture is unchanged.
type ProfileUpdate struct {
	Username    string
	DisplayName string
	About       string
	ProfilePic  []byte
}

// UserRepository defines the contract for user data persistence.
type UserRepository interface {
	// GetByID retrieves a user by their ID.
	// Returns ErrNotFound if the user doesn't exist.
	GetByID(ctx context.Context, id int64) (User, error)

	// GetByIDs retrieves users by the given IDs. Missing IDs are skipped.
	GetByIDs(ctx context.Context, ids []int64) ([]User, error)

	// GetByUsername retrieves a user by their username.
	GetByUsername(ctx context.Context, username string) (User, error)

	// GetByEmail retrieves a user by their email address.
	GetByEmail(ctx context.Context, email string) (User, error)

	// Insert creates a new user account.
	// Backfills the ID in the provided User object upon success.
	Insert(ctx context.Context, u *User) error

	// Update modifies an existing user's information.
	Update(ctx context.Context, u *User) error
}

// UserUsecase defines the business logic contract for user operations.
// Handles authentication, registration, and user management.
type UserUsecase interface {
	// SignUp creates a new user account after checking the emailed
	// verification code, and opens a session for it.
	// Returns ErrConflict if the username or email is already taken.
	// Returns ErrBadParamInput if the verification code doesn't match.
	SignUp(ctx context.Context, username, email, password, verificationCode string) (User, string, error)

	// Login verifies user credentials and opens a session.
	// Returns ErrUnauthenticated if the credentials are wrong.
	Login(ctx context.Context, username, password string) (User, string, error)

	// Logout destroys the given session.
	Logout(ctx context.Context, sessionToken string) error

	// GetByID returns the full user record, including the email.
	GetByID(ctx context.Context, id int64) (User, error)

	// GetByUsername returns the public profile of a user.
	GetByUsername(ctx context.Context, username string) (User, error)

	UpdateProfile(ctx context.Context, userID int64, update ProfileUpdate) (User, error)

	// RequestVerificationCode emails a short-lived code for the given
	// purpose. Returns ErrTooManyRequests when asked again too soon.
	RequestVerificationCode(ctx context.Context, email, purpose string) error

	// ResetPassword verifies the emailed code, replaces the password and
	// destroys every active session of the user, then opens a fresh one.
	ResetPassword(ctx context.Context, email, newPassword, verificationCode string) (User, string, error)
}

// SessionRepository stores the active sessions keyed so that every session
// of one user can be found by a key scan.
type SessionRepository interface {
	// Create opens a session for the user and returns its opaque token.
	Create(ctx context.Context, userID int64) (string, error)

	// Resolve returns the user id a session token belongs to, sliding its
	// expiry forward. Returns ErrUnauthenticated for unknown or expired
	// tokens.
	Resolve(ctx context.Context, token string) (int64, error)

	// Destroy removes a single session.
	Destroy(ctx context.Context, token string) error

	// DestroyAllForUser removes every active session of the user.
	DestroyAllForUser(ctx context.Context, userID int64) error
}

// VerificationRepository stores short-lived verification codes.
type VerificationRepository interface {
	StoreCode(ctx context.Context, purpose, email, code string, ttl time.Duration) error

	// GetCode returns the stored code, or ErrNotFound when absent or expired.
	GetCode(ctx context.Context, purpose, email string) (string, error)

	DeleteCode(ctx context.Context, purpose, email string) error

	// Throttle reports whether a new code may be issued, and reserves the
	// slot for the given window when it may.
	Throttle(ctx context.Context, purpose, email string, window time.Duration) (bool, error)
}

// Mailer delivers transactional mail.
type Mailer interface {
	SendVerificationCode(toEmail, code string) error
}
