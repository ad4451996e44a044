package auth

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const (
	SessionCookieName = "sms_console_session"

	keyLoggedIn = "logged_in"
	keyUsername = "username"
)

type SessionConfig struct {
	// Storage is nil for the in-process store.
	Storage      fiber.Storage
	TTL          time.Duration
	CookieSecure bool
}

// Sessions wraps the fiber session store. Every method loads the session
// for the current request itself because a fiber session must not be used
// after Save.
type Sessions struct {
	store *session.Store
}

func NewSessions(cfg SessionConfig) *Sessions {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}

	return &Sessions{
		store: session.New(session.Config{
			Storage:        cfg.Storage,
			Expiration:     ttl,
			KeyLookup:      "cookie:" + SessionCookieName,
			CookieHTTPOnly: true,
			CookieSecure:   cfg.CookieSecure,
			CookieSameSite: fiber.CookieSameSiteLaxMode,
		}),
	}
}

// CookieKey derives the encryptcookie key from the configured session secret.
func CookieKey(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// Login starts a fresh authenticated session under a new session id.
func (s *Sessions) Login(c *fiber.Ctx, username string) error {
	sess, err := s.store.Get(c)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	if err := sess.Regenerate(); err != nil {
		return fmt.Errorf("failed to regenerate session: %w", err)
	}

	sess.Set(keyLoggedIn, true)
	sess.Set(keyUsername, username)

	if err := sess.Save(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *Sessions) Logout(c *fiber.Ctx) error {
	sess, err := s.store.Get(c)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	if err := sess.Destroy(); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	return nil
}

// IsAuthenticated reports whether the request carries a logged-in session
// and returns its operator name.
func (s *Sessions) IsAuthenticated(c *fiber.Ctx) (string, bool, error) {
	sess, err := s.store.Get(c)
	if err != nil {
		return "", false, fmt.Errorf("failed to load session: %w", err)
	}

	loggedIn, _ := sess.Get(keyLoggedIn).(bool)
	if !loggedIn {
		return "", false, nil
	}
	username, _ := sess.Get(keyUsername).(string)
	return username, true, nil
}
