package users

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/novikovva/aviapp/internal/domain"
	"github.com/novikovva/aviapp/internal/repository"
)

// ErrInvalidRole rejects role values outside admin/user before they
// reach the database.
var ErrInvalidRole = errors.New("role must be admin or user")

type UserUseCase interface {
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id int64) (*domain.User, error)
	ChangeRole(ctx context.Context, id int64, role string) error
	ChangeUsername(ctx context.Context, id int64, username string) error
	ChangeLogin(ctx context.Context, id int64, login string) error
	Delete(ctx context.Context, id int64) error
}

type UserService struct {
	users repository.UserRepository
	log   *zap.Logger
}

func NewUserService(users repository.UserRepository, log *zap.Logger) *UserService {
	return &UserService{users: users, log: log.With(zap.String("service", "users"))}
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *UserService) ChangeRole(ctx context.Context, id int64, role string) error {
	if role != domain.RoleAdmin && role != domain.RoleUser {
		return ErrInvalidRole
	}
	return s.users.UpdateRole(ctx, id, role)
}

// ChangeUsername keeps usernames unique; a collision surfaces as
// ErrConflict so the caller can show a specific message.
func (s *UserService) ChangeUsername(ctx context.Context, id int64, username string) error {
	return s.users.UpdateUsername(ctx, id, username)
}

func (s *UserService) ChangeLogin(ctx context.Context, id int64, login string) error {
	return s.users.UpdateLogin(ctx, id, login)
}

// Delete cascades over the user's payments, bookings and reviews.
// Administrators cannot be deleted; that comes back as ErrForbidden.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if err != domain.ErrNotFound && err != domain.ErrForbidden {
			s.log.Error("delete user failed", zap.Int64("user_id", id), zap.Error(err))
		}
		return err
	}
	return nil
}

var _ UserUseCase = (*UserService)(nil)
