package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/inspection-service/internal/domain"
	"github.com/spec-kit/inspection-service/internal/repository"
	apperrors "github.com/spec-kit/inspection-service/pkg/util"
)

const userKey = "auth_user"

// SessionMiddleware gates report routes behind a valid session.
type SessionMiddleware struct {
	sessions *SessionManager
	users    repository.UserRepository
}

// NewSessionMiddleware constructs middleware.
func NewSessionMiddleware(sessions *SessionManager, users repository.UserRepository) *SessionMiddleware {
	return &SessionMiddleware{sessions: sessions, users: users}
}

// RequireUser resolves the session cookie and loads the current user.
// Browsers are redirected to the login page; API callers get a 401.
func (m *SessionMiddleware) RequireUser(c *fiber.Ctx) error {
	cookie := c.Cookies(m.sessions.CookieName())

	userID, err := m.sessions.Resolve(c.UserContext(), cookie)
	if err != nil {
		if errors.Is(err, ErrNoSession) {
			return m.reject(c)
		}
		return apperrors.NewPersistenceFailure(err)
	}

	user, err := m.users.GetByID(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Session outlived the user record; treat as logged out.
			return m.reject(c)
		}
		return apperrors.MapError(err)
	}

	c.Locals(userKey, user)
	return c.Next()
}

// RedirectIfAuthenticated sends logged-in browsers straight to the
// dashboard, mirroring the login page loader.
func (m *SessionMiddleware) RedirectIfAuthenticated(c *fiber.Ctx) error {
	cookie := c.Cookies(m.sessions.CookieName())
	if cookie != "" {
		if _, err := m.sessions.Resolve(c.UserContext(), cookie); err == nil {
			return c.Redirect("/dashboard", fiber.StatusFound)
		}
	}
	return c.Next()
}

func (m *SessionMiddleware) reject(c *fiber.Ctx) error {
	if WantsHTML(c) {
		return c.Redirect("/login", fiber.StatusFound)
	}
	return apperrors.NewUnauthenticated("missing or invalid session")
}

// UserFromContext retrieves the authenticated user set by RequireUser.
func UserFromContext(c *fiber.Ctx) (*domain.User, bool) {
	val := c.Locals(userKey)
	if val == nil {
		return nil, false
	}
	user, ok := val.(*domain.User)
	return user, ok
}

// WantsHTML reports whether the client is a browser rather than an API
// consumer; API routes live under /api.
func WantsHTML(c *fiber.Ctx) bool {
	if strings.HasPrefix(c.Path(), "/api/") {
		return false
	}
	return strings.Contains(c.Get(fiber.HeaderAccept), "text/html") || c.Get(fiber.HeaderAccept) == ""
}
