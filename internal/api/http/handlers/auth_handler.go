package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/inspection-service/internal/api/dto"
	"github.com/spec-kit/inspection-service/internal/auth"
	"github.com/spec-kit/inspection-service/internal/service"
	apperrors "github.com/spec-kit/inspection-service/pkg/util"
)

// AuthHandler serves the login page and the login/logout actions.
type AuthHandler struct {
	auth     *service.AuthService
	sessions *auth.SessionManager
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, sessions *auth.SessionManager) *AuthHandler {
	return &AuthHandler{auth: authService, sessions: sessions}
}

// LoginPage handles GET /login.
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	return c.Render("login", fiber.Map{"Error": ""})
}

// Login handles POST /login. The name is trusted as-is; there is no
// password.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, cookieValue, expiresAt, err := h.auth.Login(c.UserContext(), req.Name)
	if err != nil {
		var domainErr *apperrors.DomainError
		if auth.WantsHTML(c) && errors.As(err, &domainErr) && domainErr.Code == "VALIDATION_FAILED" {
			c.Status(http.StatusBadRequest)
			return c.Render("login", fiber.Map{"Error": domainErr.Message})
		}
		return err
	}

	h.setSessionCookie(c, cookieValue, expiresAt)

	if auth.WantsHTML(c) {
		return c.Redirect("/dashboard", fiber.StatusFound)
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": fiber.Map{
				"id":   user.ID,
				"name": user.Name,
				"role": user.Role,
			},
			"expiresAt": expiresAt,
		},
	})
}

// Logout handles POST /logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	cookie := c.Cookies(h.sessions.CookieName())
	if cookie != "" {
		_ = h.auth.Logout(c.UserContext(), cookie)
	}
	h.clearSessionCookie(c)

	if auth.WantsHTML(c) {
		return c.Redirect("/login", fiber.StatusFound)
	}
	return c.SendStatus(http.StatusNoContent)
}

func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, value string, expiresAt time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     h.sessions.CookieName(),
		Value:    value,
		Path:     "/",
		Expires:  expiresAt,
		HTTPOnly: true,
		Secure:   h.sessions.Secure(),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     h.sessions.CookieName(),
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   h.sessions.Secure(),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
