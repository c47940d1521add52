package user

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/flowblog/flowblog/domain"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const (
	bcryptCost = 10

	// verification codes expire after ten minutes, and a new one can be
	// requested once a minute per address
	codeTTL      = 10 * time.Minute
	resendWindow = time.Minute
)

type service struct {
	userRepo         domain.UserRepository
	sessionRepo      domain.SessionRepository
	verificationRepo domain.VerificationRepository
	mailer           domain.Mailer
	images           domain.ImageStore
}

var _ domain.UserUsecase = (*service)(nil)

func NewService(userRepo domain.UserRepository, sessionRepo domain.SessionRepository, verificationRepo domain.VerificationRepository, mailer domain.Mailer, images domain.ImageStore) *service {
	return &service{
		userRepo:         userRepo,
		sessionRepo:      sessionRepo,
		verificationRepo: verificationRepo,
		mailer:           mailer,
		images:           images,
	}
}

func (s *service) SignUp(ctx context.Context, username, email, password, verificationCode string) (domain.User, string, error) {
	if err := s.checkCode(ctx, domain.VerificationPurposeSignup, email, verificationCode); err != nil {
		return domain.User{}, "", err
	}

	if _, err := s.userRepo.GetByUsername(ctx, username); !errors.Is(err, domain.ErrNotFound) {
		if err != nil {
			return domain.User{}, "", err
		}
		return domain.User{}, "", domain.ErrConflict
	}
	if _, err := s.userRepo.GetByEmail(ctx, email); !errors.Is(err, domain.ErrNotFound) {
		if err != nil {
			return domain.User{}, "", err
		}
		return domain.User{}, "", domain.ErrConflict
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return domain.User{}, "", err
	}

	newUser := domain.User{
		Username:    username,
		Email:       email,
		DisplayName: username,
		Password:    string(hashed),
	}
	if err := s.userRepo.Insert(ctx, &newUser); err != nil {
		return domain.User{}, "", err
	}

	if err := s.verificationRepo.DeleteCode(ctx, domain.VerificationPurposeSignup, email); err != nil {
		logrus.Warnf("failed to delete used signup code for %s: %v", email, err)
	}

	token, err := s.sessionRepo.Create(ctx, newUser.ID)
	if err != nil {
		return domain.User{}, "", err
	}

	return newUser, token, nil
}

func (s *service) Login(ctx context.Context, username, password string) (domain.User, string, error) {
	existing, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// same error as a wrong password, no account probing
			return domain.User{}, "", domain.ErrUnauthenticated
		}
		return domain.User{}, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(existing.Password), []byte(password)); err != nil {
		return domain.User{}, "", domain.ErrUnauthenticated
	}

	token, err := s.sessionRepo.Create(ctx, existing.ID)
	if err != nil {
		return domain.User{}, "", err
	}

	return existing, token, nil
}

func (s *service) Logout(ctx context.Context, sessionToken string) error {
	return s.sessionRepo.Destroy(ctx, sessionToken)
}

func (s *service) GetByID(ctx context.Context, id int64) (domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *service) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return domain.User{}, err
	}
	return user.Public(), nil
}

func (s *service) UpdateProfile(ctx context.Context, userID int64, update domain.ProfileUpdate) (domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return domain.User{}, err
	}

	if update.Username != "" && update.Username != user.Username {
		if _, err := s.userRepo.GetByUsername(ctx, update.Username); !errors.Is(err, domain.ErrNotFound) {
			if err != nil {
				return domain.User{}, err
			}
			return domain.User{}, domain.ErrConflict
		}
		user.Username = update.Username
	}
	if update.DisplayName != "" {
		user.DisplayName = update.DisplayName
	}
	if update.About != "" {
		user.About = update.About
	}

	if len(update.ProfilePic) > 0 {
		picURL, err := s.images.SaveProfilePicture(ctx, userID, update.ProfilePic)
		if err != nil {
			return domain.User{}, err
		}
		user.ProfilePicURL = picURL
	}

	if err := s.userRepo.Update(ctx, &user); err != nil {
		return domain.User{}, err
	}

	return user, nil
}

func (s *service) RequestVerificationCode(ctx context.Context, email, purpose string) error {
	switch purpose {
	case domain.VerificationPurposeSignup:
		// a signup code for a taken address would only ever produce a 409
		if _, err := s.userRepo.GetByEmail(ctx, email); !errors.Is(err, domain.ErrNotFound) {
			if err != nil {
				return err
			}
			return domain.ErrConflict
		}
	case domain.VerificationPurposePasswordReset:
		if _, err := s.userRepo.GetByEmail(ctx, email); err != nil {
			return err
		}
	default:
		return domain.ErrBadParamInput
	}

	allowed, err := s.verificationRepo.Throttle(ctx, purpose, email, resendWindow)
	if err != nil {
		return err
	}
	if !allowed {
		return domain.ErrTooManyRequests
	}

	code, err := generateCode()
	if err != nil {
		return err
	}

	if err := s.verificationRepo.StoreCode(ctx, purpose, email, code, codeTTL); err != nil {
		return err
	}

	return s.mailer.SendVerificationCode(email, code)
}

func (s *service) ResetPassword(ctx context.Context, email, newPassword, verificationCode string) (domain.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return domain.User{}, "", err
	}

	if err := s.checkCode(ctx, domain.VerificationPurposePasswordReset, email, verificationCode); err != nil {
		return domain.User{}, "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return domain.User{}, "", err
	}
	user.Password = string(hashed)

	if err := s.userRepo.Update(ctx, &user); err != nil {
		return domain.User{}, "", err
	}

	if err := s.verificationRepo.DeleteCode(ctx, domain.VerificationPurposePasswordReset, email); err != nil {
		logrus.Warnf("failed to delete used reset code for %s: %v", email, err)
	}

	// a stolen session must not survive a password reset
	if err := s.sessionRepo.DestroyAllForUser(ctx, user.ID); err != nil {
		return domain.User{}, "", err
	}

	token, err := s.sessionRepo.Create(ctx, user.ID)
	if err != nil {
		return domain.User{}, "", err
	}

	return user, token, nil
}

func (s *service) checkCode(ctx context.Context, purpose, email, code string) error {
	stored, err := s.verificationRepo.GetCode(ctx, purpose, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrBadParamInput
		}
		return err
	}
	if stored != code {
		return domain.ErrBadParamInput
	}
	return nil
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
