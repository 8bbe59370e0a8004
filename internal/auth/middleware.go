package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/voucher-service/internal/service"
	apperrors "github.com/spec-kit/voucher-service/pkg/util/errorutil"
)

// SessionCookie is the cookie carrying the opaque admin token.
const SessionCookie = "admin_session"

// SessionMiddleware gates privileged routes behind the session store.
type SessionMiddleware struct {
	sessions *service.SessionService
}

// NewSessionMiddleware constructs middleware.
func NewSessionMiddleware(sessions *service.SessionService) *SessionMiddleware {
	return &SessionMiddleware{sessions: sessions}
}

// Handle rejects the request unless a live admin session accompanies it.
// Verification failure has no side effects on the guarded resource.
func (m *SessionMiddleware) Handle(c *fiber.Ctx) error {
	token := TokenFromRequest(c)
	if token == "" {
		return apperrors.NewUnauthorized("admin session required")
	}
	ok, err := m.sessions.Verify(c.UserContext(), token)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NewUnauthorized("session expired or unknown")
	}
	return c.Next()
}

// TokenFromRequest reads the session token from the cookie, falling back to
// a bearer header for non-browser clients.
func TokenFromRequest(c *fiber.Ctx) string {
	if token := c.Cookies(SessionCookie); token != "" {
		return token
	}
	header := c.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}
