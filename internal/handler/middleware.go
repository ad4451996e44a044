package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/kursadbilgin/sms-console/internal/auth"
	"go.uber.org/zap"
)

const localsUsername = "operator"

// RequireAuth redirects anonymous requests to the login page. Nothing behind
// it runs for them, so no upstream call can be triggered without a session.
func RequireAuth(sessions *auth.Sessions, logger *zap.Logger) fiber.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *fiber.Ctx) error {
		username, ok, err := sessions.IsAuthenticated(c)
		if err != nil {
			return err
		}
		if !ok {
			logger.Debug("anonymous request redirected to login",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
			)
			return c.Redirect("/login", fiber.StatusFound)
		}

		c.Locals(localsUsername, username)
		return c.Next()
	}
}
