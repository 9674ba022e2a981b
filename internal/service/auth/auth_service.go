package auth

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/novikovva/aviapp/internal/domain"
	"github.com/novikovva/aviapp/internal/repository"
)

type AuthUseCase interface {
	Login(ctx context.Context, login, password string) (string, *domain.User, error)
	Register(ctx context.Context, name, login, password, role string) error
	Logout(ctx context.Context, token string) error
}

// SessionStore mints and destroys sessions for authenticated users.
type SessionStore interface {
	Create(ctx context.Context, user *domain.User) (string, error)
	Destroy(ctx context.Context, token string) error
}

type AuthService struct {
	users    repository.UserRepository
	sessions SessionStore
	log      *zap.Logger
}

func NewAuthService(users repository.UserRepository, sessions SessionStore, log *zap.Logger) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		log:      log.With(zap.String("service", "auth")),
	}
}

// Login verifies credentials and opens a session. Fails closed: lookup
// errors and bad passwords both come back as ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, login, password string) (string, *domain.User, error) {
	user, err := s.authenticate(ctx, login, password)
	if err != nil {
		return "", nil, err
	}

	token, err := s.sessions.Create(ctx, user)
	if err != nil {
		return "", nil, fmt.Errorf("create session: %w", err)
	}
	return token, user, nil
}

func (s *AuthService) authenticate(ctx context.Context, login, password string) (*domain.User, error) {
	user, err := s.users.GetByLogin(ctx, login)
	if err != nil {
		if err != domain.ErrNotFound {
			s.log.Error("user lookup failed", zap.Error(err))
		}
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// Register hashes the password and inserts the user. Duplicate login or
// username comes back as ErrConflict; the register handler collapses it
// with any other failure into one generic message.
func (s *AuthService) Register(ctx context.Context, name, login, password, role string) error {
	if role == "" {
		role = domain.RoleUser
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     name,
		Login:        login,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if err == domain.ErrConflict {
			return domain.ErrConflict
		}
		s.log.Error("user insert failed", zap.Error(err))
		return err
	}
	return nil
}

// Logout destroys the session. Destroying an absent session is fine, so
// repeated logouts succeed.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Destroy(ctx, token)
}

var _ AuthUseCase = (*AuthService)(nil)
