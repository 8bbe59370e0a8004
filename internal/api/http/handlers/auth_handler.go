package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/voucher-service/internal/api/dto"
	"github.com/spec-kit/voucher-service/internal/auth"
	"github.com/spec-kit/voucher-service/internal/config"
	"github.com/spec-kit/voucher-service/internal/service"
	apperrors "github.com/spec-kit/voucher-service/pkg/util/errorutil"
)

// AuthHandler exposes admin login, logout and session introspection.
type AuthHandler struct {
	cfg      config.AuthConfig
	secure   bool
	sessions *service.SessionService
}

// NewAuthHandler constructs handler. secure controls the cookie flag and
// should be on outside development.
func NewAuthHandler(cfg config.AuthConfig, secure bool, sessions *service.SessionService) *AuthHandler {
	return &AuthHandler{cfg: cfg, secure: secure, sessions: sessions}
}

// Login POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if !auth.VerifyPIN(h.cfg, req.PIN) {
		return apperrors.NewUnauthorized("incorrect pin")
	}

	session, err := h.sessions.Issue(c.UserContext())
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     auth.SessionCookie,
		Value:    session.Token,
		Expires:  session.ExpiresAt,
		HTTPOnly: true,
		Secure:   h.secure,
		SameSite: fiber.CookieSameSiteStrictMode,
		Path:     "/",
	})
	return c.JSON(fiber.Map{"success": true, "expires_at": session.ExpiresAt})
}

// Logout POST /auth/logout. Idempotent.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token := auth.TokenFromRequest(c)
	if err := h.sessions.Destroy(c.UserContext(), token); err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   h.secure,
		SameSite: fiber.CookieSameSiteStrictMode,
		Path:     "/",
	})
	return c.JSON(fiber.Map{"success": true})
}

// Session GET /auth/session reports whether the caller holds a live session.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	ok, err := h.sessions.Verify(c.UserContext(), auth.TokenFromRequest(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"authenticated": ok})
}
