package auth

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/kursadbilgin/sms-console/internal/domain"
)

const keyResult = "flash_result"

// Relay carries the last DispatchResult of a session across the
// post-redirect-get round trip. It holds at most one result per session and
// hands it out once.
type Relay struct {
	sessions *Sessions
}

func NewRelay(sessions *Sessions) *Relay {
	return &Relay{sessions: sessions}
}

// Store replaces any pending result of the current session.
func (r *Relay) Store(c *fiber.Ctx, result domain.DispatchResult) error {
	encoded, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	sess, err := r.sessions.store.Get(c)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	sess.Set(keyResult, string(encoded))

	if err := sess.Save(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Take returns the pending result and removes it. It returns nil when
// nothing is pending.
func (r *Relay) Take(c *fiber.Ctx) (*domain.DispatchResult, error) {
	sess, err := r.sessions.store.Get(c)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	raw, ok := sess.Get(keyResult).(string)
	if !ok {
		return nil, nil
	}
	sess.Delete(keyResult)
	if err := sess.Save(); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	var result domain.DispatchResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, fmt.Errorf("failed to decode result: %w", err)
	}
	return &result, nil
}
