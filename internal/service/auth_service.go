package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"reviewhub/internal/auth"
	domainerrors "reviewhub/internal/errors"
	"reviewhub/internal/mailer"
	"reviewhub/internal/model"
	"reviewhub/internal/repository"
)

// AuthService handles registration and the confirmation-code token exchange.
type AuthService interface {
	// Signup registers {email, username} or idempotently re-registers an
	// existing identical pair, sending exactly one confirmation code either
	// way. The code never appears in the return value.
	Signup(ctx context.Context, email, username string) (*model.User, error)
	// IssueToken exchanges a confirmation code for a bearer token and
	// consumes the code.
	IssueToken(ctx context.Context, username, code string) (string, error)
}

type authService struct {
	users  repository.UserRepository
	codes  *auth.CodeIssuer
	jwt    *auth.JWTService
	mailer mailer.Mailer
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, codes *auth.CodeIssuer, jwt *auth.JWTService, m mailer.Mailer) AuthService {
	return &authService{
		users:  users,
		codes:  codes,
		jwt:    jwt,
		mailer: m,
	}
}

// Signup implements the registration flow. Conflicts are checked with
// username taking precedence over email, and the matching-pair path neither
// creates a second record nor skips code delivery.
func (s *authService) Signup(ctx context.Context, email, username string) (*model.User, error) {
	if err := model.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := model.ValidateUsername(username); err != nil {
		return nil, err
	}

	byUsername, err := s.users.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup by username: %w", err)
	}
	byEmail, err := s.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup by email: %w", err)
	}

	if byUsername != nil && byUsername.Email != email {
		return nil, domainerrors.ErrUsernameTaken
	}
	if byEmail != nil && byEmail.Username != username {
		return nil, domainerrors.ErrEmailTaken
	}

	user := byUsername
	if user == nil {
		user = &model.User{
			Username: username,
			Email:    email,
			Role:     model.RoleUser,
		}
		if err := s.users.Create(ctx, user); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// lost a race with a concurrent signup; report the identity
				// that actually collided, username first
				return nil, s.signupConflict(ctx, email, username)
			}
			return nil, fmt.Errorf("create user: %w", err)
		}
	}

	code := s.codes.Issue(user)
	if err := s.mailer.SendConfirmationCode(ctx, user.Email, user.Username, code); err != nil {
		return nil, fmt.Errorf("deliver confirmation code: %w", err)
	}

	return user, nil
}

// signupConflict re-runs the identity lookups after a duplicate-key insert
// failure to name the colliding field.
func (s *authService) signupConflict(ctx context.Context, email, username string) error {
	if existing, err := s.users.FindByUsername(ctx, username); err == nil && existing.Email != email {
		return domainerrors.ErrUsernameTaken
	}
	if existing, err := s.users.FindByEmail(ctx, email); err == nil && existing.Username != username {
		return domainerrors.ErrEmailTaken
	}
	return domainerrors.ErrUsernameTaken
}

// IssueToken verifies the confirmation code for the named user, advances the
// user's code epoch so the code cannot be replayed, and mints a bearer token.
func (s *authService) IssueToken(ctx context.Context, username, code string) (string, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domainerrors.ErrUserNotFound
		}
		return "", fmt.Errorf("lookup by username: %w", err)
	}

	if !s.codes.Verify(user, code) {
		return "", domainerrors.ErrInvalidConfirmationCode
	}

	user.CodeEpoch = time.Now().UnixNano()
	if err := s.users.Update(ctx, user); err != nil {
		return "", fmt.Errorf("consume confirmation code: %w", err)
	}

	token, err := s.jwt.GenerateAccessToken(user)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return token, nil
}
