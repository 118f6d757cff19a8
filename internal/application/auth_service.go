package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/mycontacts-api/internal/domain/entity"
	repo "github.com/oksasatya/mycontacts-api/internal/domain/repository"
	"github.com/oksasatya/mycontacts-api/pkg/helpers"
	"github.com/oksasatya/mycontacts-api/pkg/mailer"
	"github.com/oksasatya/mycontacts-api/pkg/validation"
)

// JobPublisher enqueues background jobs; nil disables publishing.
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// AuthService owns user credentials and token issuance.
type AuthService struct {
	Repo    repo.UserRepository
	Hasher  *helpers.PasswordHasher
	JWT     *helpers.JWTManager
	Jobs    JobPublisher
	AppName string
	Logger  *logrus.Logger
}

func NewAuthService(users repo.UserRepository, hasher *helpers.PasswordHasher, jwt *helpers.JWTManager, jobs JobPublisher, appName string, logger *logrus.Logger) *AuthService {
	return &AuthService{Repo: users, Hasher: hasher, JWT: jwt, Jobs: jobs, AppName: appName, Logger: logger}
}

// Token is an issued identity token.
type Token struct {
	Value     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Register hashes the password and stores a new user.
func (s *AuthService) Register(ctx context.Context, email, password string) (*entity.User, error) {
	email = entity.NormalizeEmail(email)

	_, err := s.Repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, ErrDuplicateIdentity
	case !errors.Is(err, repo.ErrNotFound):
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := s.Hasher.Hash(password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, invalid("password", fmt.Sprintf("must be at most %d bytes long", validation.PasswordMaxBytes))
	}
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &entity.User{Email: email, PasswordHash: hash}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrDuplicateIdentity
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.enqueueWelcome(ctx, u.Email)
	return u, nil
}

func (s *AuthService) enqueueWelcome(ctx context.Context, email string) {
	if s.Jobs == nil {
		return
	}
	if err := s.Jobs.PublishJSON(ctx, mailer.NewWelcomeJob(email, s.AppName)); err != nil {
		helpers.LogError(s.Logger, "enqueue welcome email failed", err, logrus.Fields{"email": email})
	}
}

// VerifyPassword reports whether password matches the stored hash for email.
// A mismatch is (false, nil); an unknown email is ErrUserNotFound.
func (s *AuthService) VerifyPassword(ctx context.Context, email, password string) (bool, error) {
	u, err := s.Repo.GetByEmail(ctx, entity.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return false, ErrUserNotFound
		}
		return false, fmt.Errorf("lookup user: %w", err)
	}
	return s.Hasher.Compare(u.PasswordHash, password), nil
}

// Login verifies credentials and issues a token for the user.
func (s *AuthService) Login(ctx context.Context, email, password string) (Token, error) {
	email = entity.NormalizeEmail(email)

	ok, err := s.VerifyPassword(ctx, email, password)
	if err != nil {
		return Token{}, err
	}
	if !ok {
		return Token{}, ErrInvalidCredentials
	}

	value, exp, err := s.JWT.Issue(email)
	if err != nil {
		return Token{}, fmt.Errorf("issue token: %w", err)
	}
	return Token{Value: value, ExpiresAt: exp}, nil
}
