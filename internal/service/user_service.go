package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"reviewhub/internal/auth"
	domainerrors "reviewhub/internal/errors"
	"reviewhub/internal/mailer"
	"reviewhub/internal/model"
	"reviewhub/internal/permission"
	"reviewhub/internal/repository"
)

// CreateUserInput is the admin user-creation payload.
type CreateUserInput struct {
	Email     string
	Username  string
	FirstName string
	LastName  string
	Bio       string
	Role      model.Role
}

// UpdateUserInput is a partial admin edit; nil fields are left unchanged.
type UpdateUserInput struct {
	Email     *string
	Username  *string
	FirstName *string
	LastName  *string
	Bio       *string
	Role      *model.Role
}

// ProfileInput is a partial self-service edit. Role is carried so an
// attempted role change can be refused rather than silently dropped.
type ProfileInput struct {
	FirstName *string
	LastName  *string
	Bio       *string
	Role      *model.Role
}

// UserService handles the admin user-management surface and the caller's own
// profile.
type UserService interface {
	List(ctx context.Context, actor permission.Actor) ([]model.User, error)
	Get(ctx context.Context, actor permission.Actor, username string) (*model.User, error)
	Create(ctx context.Context, actor permission.Actor, input CreateUserInput) (*model.User, error)
	Update(ctx context.Context, actor permission.Actor, username string, patch UpdateUserInput) (*model.User, error)
	Delete(ctx context.Context, actor permission.Actor, username string) error

	GetMe(ctx context.Context, actor permission.Actor) (*model.User, error)
	UpdateMe(ctx context.Context, actor permission.Actor, patch ProfileInput) (*model.User, error)
}

type userService struct {
	users  repository.UserRepository
	codes  *auth.CodeIssuer
	mailer mailer.Mailer
}

// NewUserService creates a new user service. Admin-created users also get a
// confirmation code so they can obtain a token.
func NewUserService(users repository.UserRepository, codes *auth.CodeIssuer, m mailer.Mailer) UserService {
	return &userService{
		users:  users,
		codes:  codes,
		mailer: m,
	}
}

func (s *userService) List(ctx context.Context, actor permission.Actor) ([]model.User, error) {
	if !permission.Allowed(actor, permission.Users, false, false) {
		return nil, domainerrors.ErrPermissionDenied
	}
	return s.users.List(ctx)
}

func (s *userService) Get(ctx context.Context, actor permission.Actor, username string) (*model.User, error) {
	if !permission.Allowed(actor, permission.Users, false, false) {
		return nil, domainerrors.ErrPermissionDenied
	}
	return s.findByUsername(ctx, username)
}

func (s *userService) Create(ctx context.Context, actor permission.Actor, input CreateUserInput) (*model.User, error) {
	if !permission.Allowed(actor, permission.Users, true, false) {
		return nil, domainerrors.ErrPermissionDenied
	}
	if err := model.ValidateEmail(input.Email); err != nil {
		return nil, err
	}
	if err := model.ValidateUsername(input.Username); err != nil {
		return nil, err
	}
	role := input.Role
	if role == "" {
		role = model.RoleUser
	}
	if !role.Valid() {
		return nil, domainerrors.NewValidation("role", "must be one of user, moderator, admin")
	}

	user := &model.User{
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domainerrors.ErrUsernameTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	code := s.codes.Issue(user)
	if err := s.mailer.SendConfirmationCode(ctx, user.Email, user.Username, code); err != nil {
		return nil, fmt.Errorf("deliver confirmation code: %w", err)
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, actor permission.Actor, username string, patch UpdateUserInput) (*model.User, error) {
	if !permission.Allowed(actor, permission.Users, true, false) {
		return nil, domainerrors.ErrPermissionDenied
	}
	user, err := s.findByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if patch.Username != nil {
		if err := model.ValidateUsername(*patch.Username); err != nil {
			return nil, err
		}
		user.Username = *patch.Username
	}
	if patch.Email != nil {
		if err := model.ValidateEmail(*patch.Email); err != nil {
			return nil, err
		}
		user.Email = *patch.Email
	}
	if patch.FirstName != nil {
		user.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		user.LastName = *patch.LastName
	}
	if patch.Bio != nil {
		user.Bio = *patch.Bio
	}
	if patch.Role != nil {
		if !patch.Role.Valid() {
			return nil, domainerrors.NewValidation("role", "must be one of user, moderator, admin")
		}
		user.Role = *patch.Role
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domainerrors.ErrUsernameTaken
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, actor permission.Actor, username string) error {
	if !permission.Allowed(actor, permission.Users, true, false) {
		return domainerrors.ErrPermissionDenied
	}
	user, err := s.findByUsername(ctx, username)
	if err != nil {
		return err
	}
	return s.users.Delete(ctx, user)
}

func (s *userService) GetMe(ctx context.Context, actor permission.Actor) (*model.User, error) {
	if !permission.Allowed(actor, permission.Profile, false, true) {
		return nil, domainerrors.ErrPermissionDenied
	}
	user, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return user, nil
}

// UpdateMe applies a self-service profile edit. The role field is immutable
// on this path regardless of who asks.
func (s *userService) UpdateMe(ctx context.Context, actor permission.Actor, patch ProfileInput) (*model.User, error) {
	if !permission.Allowed(actor, permission.Profile, true, true) {
		return nil, domainerrors.ErrPermissionDenied
	}
	user, err := s.GetMe(ctx, actor)
	if err != nil {
		return nil, err
	}

	if patch.Role != nil && *patch.Role != user.Role {
		if !permission.Allowed(actor, permission.ProfileRole, true, true) {
			return nil, domainerrors.ErrPermissionDenied
		}
	}

	if patch.FirstName != nil {
		user.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		user.LastName = *patch.LastName
	}
	if patch.Bio != nil {
		user.Bio = *patch.Bio
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return user, nil
}

func (s *userService) findByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return user, nil
}
