package user_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/flowblog/flowblog/domain"
	"github.com/flowblog/flowblog/domain/mocks"
	"github.com/flowblog/flowblog/internal/usecase/user"
)

type serviceMocks struct {
	userRepo         *mocks.UserRepository
	sessionRepo      *mocks.SessionRepository
	verificationRepo *mocks.VerificationRepository
	mailer           *mocks.Mailer
	images           *mocks.ImageStore
}

func newService() (domain.UserUsecase, serviceMocks) {
	m := serviceMocks{
		userRepo:         new(mocks.UserRepository),
		sessionRepo:      new(mocks.SessionRepository),
		verificationRepo: new(mocks.VerificationRepository),
		mailer:           new(mocks.Mailer),
		images:           new(mocks.ImageStore),
	}
	return user.NewService(m.userRepo, m.sessionRepo, m.verificationRepo, m.mailer, m.images), m
}

func TestSignUp(t *testing.T) {
	svc, m := newService()

	m.verificationRepo.On("GetCode", mock.Anything, domain.VerificationPurposeSignup, "new@example.com").
		Return("123456", nil).Once()
	m.userRepo.On("GetByUsername", mock.Anything, "alice").
		Return(domain.User{}, domain.ErrNotFound).Once()
	m.userRepo.On("GetByEmail", mock.Anything, "new@example.com").
		Return(domain.User{}, domain.ErrNotFound).Once()
	m.userRepo.On("Insert", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.User).ID = 9
		}).Return(nil).Once()
	m.verificationRepo.On("DeleteCode", mock.Anything, domain.VerificationPurposeSignup, "new@example.com").
		Return(nil).Once()
	m.sessionRepo.On("Create", mock.Anything, int64(9)).Return("9.abc", nil).Once()

	created, token, err := svc.SignUp(context.TODO(), "alice", "new@example.com", "hunter22", "123456")
	require.NoError(t, err)
	assert.Equal(t, "9.abc", token)
	assert.Equal(t, int64(9), created.ID)
	assert.Equal(t, "alice", created.Username)
	assert.Equal(t, "alice", created.DisplayName)
	// never the plaintext
	assert.NotEqual(t, "hunter22", created.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("hunter22")))
	m.userRepo.AssertExpectations(t)
	m.sessionRepo.AssertExpectations(t)
}

func TestSignUpWrongCode(t *testing.T) {
	svc, m := newService()

	m.verificationRepo.On("GetCode", mock.Anything, domain.VerificationPurposeSignup, "new@example.com").
		Return("123456", nil).Once()

	_, _, err := svc.SignUp(context.TODO(), "alice", "new@example.com", "hunter22", "654321")
	assert.ErrorIs(t, err, domain.ErrBadParamInput)
	m.userRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestSignUpExpiredCode(t *testing.T) {
	svc, m := newService()

	m.verificationRepo.On("GetCode", mock.Anything, domain.VerificationPurposeSignup, "new@example.com").
		Return("", domain.ErrNotFound).Once()

	_, _, err := svc.SignUp(context.TODO(), "alice", "new@example.com", "hunter22", "123456")
	assert.ErrorIs(t, err, domain.ErrBadParamInput)
	m.userRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestSignUpUsernameTaken(t *testing.T) {
	svc, m := newService()

	m.verificationRepo.On("GetCode", mock.Anything, domain.VerificationPurposeSignup, "new@example.com").
		Return("123456", nil).Once()
	m.userRepo.On("GetByUsername", mock.Anything, "alice").
		Return(domain.User{ID: 1, Username: "alice"}, nil).Once()

	_, _, err := svc.SignUp(context.TODO(), "alice", "new@example.com", "hunter22", "123456")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestLogin(t *testing.T) {
	svc, m := newService()

	hashed, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)
	m.userRepo.On("GetByUsername", mock.Anything, "alice").
		Return(domain.User{ID: 9, Username: "alice", Password: string(hashed)}, nil).Once()
	m.sessionRepo.On("Create", mock.Anything, int64(9)).Return("9.abc", nil).Once()

	got, token, err := svc.Login(context.TODO(), "alice", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, int64(9), got.ID)
	assert.Equal(t, "9.abc", token)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, m := newService()

	hashed, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)
	m.userRepo.On("GetByUsername", mock.Anything, "alice").
		Return(domain.User{ID: 9, Password: string(hashed)}, nil).Once()

	_, _, err = svc.Login(context.TODO(), "alice", "wrong")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	m.sessionRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLoginUnknownUser(t *testing.T) {
	svc, m := newService()

	m.userRepo.On("GetByUsername", mock.Anything, "ghost").
		Return(domain.User{}, domain.ErrNotFound).Once()

	_, _, err := svc.Login(context.TODO(), "ghost", "whatever")
	// indistinguishable from a wrong password
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestGetByUsernameStripsPrivateFields(t *testing.T) {
	svc, m := newService()

	m.userRepo.On("GetByUsername", mock.Anything, "alice").
		Return(domain.User{ID: 9, Username: "alice", Email: "a@example.com", Password: "hash"}, nil).Once()

	got, err := svc.GetByUsername(context.TODO(), "alice")
	require.NoError(t, err)
	assert.Empty(t, got.Email)
	assert.Empty(t, got.Password)
}

func TestUpdateProfile(t *testing.T) {
	svc, m := newService()

	m.userRepo.On("GetByID", mock.Anything, int64(9)).
		Return(domain.User{ID: 9, Username: "alice", DisplayName: "Alice"}, nil).Once()
	m.userRepo.On("GetByUsername", mock.Anything, "alice2").
		Return(domain.User{}, domain.ErrNotFound).Once()
	m.images.On("SaveProfilePicture", mock.Anything, int64(9), []byte{1, 2}).
		Return("http://localhost/uploads/profile/9.png", nil).Once()
	m.userRepo.On("Update", mock.Anything, mock.Anything).Return(nil).Once()

	got, err := svc.UpdateProfile(context.TODO(), 9, domain.ProfileUpdate{
		Username:   "alice2",
		About:      "hello",
		ProfilePic: []byte{1, 2},
	})
	require.NoError(t, err)
	assert.Equal(t, "alice2", got.Username)
	assert.Equal(t, "hello", got.About)
	// untouched when the update leaves it empty
	assert.Equal(t, "Alice", got.DisplayName)
	assert.Equal(t, "http://localhost/uploads/profile/9.png", got.ProfilePicURL)
}

func TestUpdateProfileUsernameTaken(t *testing.T) {
	svc, m := newService()

	m.userRepo.On("GetByID", mock.Anything, int64(9)).
		Return(domain.User{ID: 9, Username: "alice"}, nil).Once()
	m.userRepo.On("GetByUsername", mock.Anything, "bob").
		Return(domain.User{ID: 2, Username: "bob"}, nil).Once()

	_, err := svc.UpdateProfile(context.TODO(), 9, domain.ProfileUpdate{Username: "bob"})
	assert.ErrorIs(t, err, domain.ErrConflict)
	m.userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestRequestVerificationCodeSignup(t *testing.T) {
	svc, m := newService()

	m.userRepo.On("GetByEmail", mock.Anything, "new@example.com").
		Return(domain.User{}, domain.ErrNotFound).Once()
	m.verificationRepo.On("Throttle", mock.Anything, domain.VerificationPurposeSignup, "new@example.com", mock.Anything).
		Return(true, nil).Once()
	m.verificationRepo.On("StoreCode", mock.Anything, domain.VerificationPurposeSignup, "new@example.com", mock.Anything, mock.Anything).
		Return(nil).Once()
	m.mailer.On("SendVerificationCode", "new@example.com", mock.Anything).Return(nil).Once()

	err := svc.RequestVerificationCode(context.TODO(), "new@example.com", domain.VerificationPurposeSignup)
	require.NoError(t, err)
	m.verificationRepo.AssertExpectations(t)
	m.mailer.AssertExpectations(t)
}

func TestRequestVerificationCodeSignupEmailTaken(t *testing.T) {
	svc, m := newService()

	m.userRepo.On("GetByEmail", mock.Anything, "taken@example.com").
		Return(domain.User{ID: 1}, nil).Once()

	err := svc.RequestVerificationCode(context.TODO(), "taken@example.com", domain.VerificationPurposeSignup)
	assert.ErrorIs(t, err, domain.ErrConflict)
	m.mailer.AssertNotCalled(t, "SendVerificationCode", mock.Anything, mock.Anything)
}

func TestRequestVerificationCodeResetUnknownEmail(t *testing.T) {
	svc, m := newService()

	m.userRepo.On("GetByEmail", mock.Anything, "ghost@example.com").
		Return(domain.User{}, domain.ErrNotFound).Once()

	err := svc.RequestVerificationCode(context.TODO(), "ghost@example.com", domain.VerificationPurposePasswordReset)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRequestVerificationCodeThrottled(t *testing.T) {
	svc, m := newService()

	m.userRepo.On("GetByEmail", mock.Anything, "new@example.com").
		Return(domain.User{}, domain.ErrNotFound).Once()
	m.verificationRepo.On("Throttle", mock.Anything, domain.VerificationPurposeSignup, "new@example.com", mock.Anything).
		Return(false, nil).Once()

	err := svc.RequestVerificationCode(context.TODO(), "new@example.com", domain.VerificationPurposeSignup)
	assert.ErrorIs(t, err, domain.ErrTooManyRequests)
	m.verificationRepo.AssertNotCalled(t, "StoreCode", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestResetPassword(t *testing.T) {
	svc, m := newService()

	m.userRepo.On("GetByEmail", mock.Anything, "a@example.com").
		Return(domain.User{ID: 9, Email: "a@example.com", Password: "old-hash"}, nil).Once()
	m.verificationRepo.On("GetCode", mock.Anything, domain.VerificationPurposePasswordReset, "a@example.com").
		Return("123456", nil).Once()
	m.userRepo.On("Update", mock.Anything, mock.Anything).Return(nil).Once()
	m.verificationRepo.On("DeleteCode", mock.Anything, domain.VerificationPurposePasswordReset, "a@example.com").
		Return(nil).Once()
	m.sessionRepo.On("DestroyAllForUser", mock.Anything, int64(9)).Return(nil).Once()
	m.sessionRepo.On("Create", mock.Anything, int64(9)).Return("9.fresh", nil).Once()

	got, token, err := svc.ResetPassword(context.TODO(), "a@example.com", "newpass", "123456")
	require.NoError(t, err)
	assert.Equal(t, "9.fresh", token)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(got.Password), []byte("newpass")))
	// every other session of the user must be gone
	m.sessionRepo.AssertExpectations(t)
}

func TestResetPasswordWrongCode(t *testing.T) {
	svc, m := newService()

	m.userRepo.On("GetByEmail", mock.Anything, "a@example.com").
		Return(domain.User{ID: 9}, nil).Once()
	m.verificationRepo.On("GetCode", mock.Anything, domain.VerificationPurposePasswordReset, "a@example.com").
		Return("123456", nil).Once()

	_, _, err := svc.ResetPassword(context.TODO(), "a@example.com", "newpass", "000000")
	assert.ErrorIs(t, err, domain.ErrBadParamInput)
	m.userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	m.sessionRepo.AssertNotCalled(t, "DestroyAllForUser", mock.Anything, mock.Anything)
}
