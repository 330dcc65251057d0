package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/inspection-service/internal/domain"
	"github.com/spec-kit/inspection-service/internal/repository"
	apperrors "github.com/spec-kit/inspection-service/pkg/util"
)

// SessionIssuer opens and revokes sessions for authenticated users.
// auth.SessionManager is the production implementation.
type SessionIssuer interface {
	Issue(ctx context.Context, userID string) (string, time.Time, error)
	Revoke(ctx context.Context, cookieValue string) error
}

// AuthService coordinates name-based login and session lifecycle.
// There is no password check: login trusts the caller-provided name and
// lazily creates an inspector account the first time a name is seen.
type AuthService struct {
	users    repository.UserRepository
	sessions SessionIssuer
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo repository.UserRepository
	Sessions SessionIssuer
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	return &AuthService{
		users:    deps.UserRepo,
		sessions: deps.Sessions,
	}
}

// Login finds or creates the user by exact, case-sensitive name and opens
// a session. It returns the user, the signed cookie value and its expiry.
func (s *AuthService) Login(ctx context.Context, name string) (*domain.User, string, time.Time, error) {
	if strings.TrimSpace(name) == "" {
		return nil, "", time.Time{}, apperrors.NewValidationError("Please enter your name", map[string]any{
			"offendingIds": []string{"name"},
		})
	}

	user, err := s.users.GetByName(ctx, name)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewPersistenceFailure(err)
		}
		user = &domain.User{Name: name, Role: domain.RoleInspector}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, "", time.Time{}, apperrors.NewPersistenceFailure(err)
		}
	}

	cookie, expiresAt, err := s.sessions.Issue(ctx, user.ID)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewPersistenceFailure(err)
	}
	return user, cookie, expiresAt, nil
}

// Logout revokes the server-side session for the presented cookie.
func (s *AuthService) Logout(ctx context.Context, cookieValue string) error {
	return s.sessions.Revoke(ctx, cookieValue)
}
