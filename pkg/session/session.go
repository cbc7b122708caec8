package session

import (
	"time"

	"github.com/google/uuid"
)

// Session is one authenticated browser session.
type Session struct {
	ID    uuid.UUID `json:"id"`
	Token string    `json:"token"`

	UserID      string `json:"user_id"`
	AccessToken string `json:"access_token"`
	IssuedVia   string `json:"issued_via"`

	// HighestMainStep is the wizard navigation watermark. It only grows.
	HighestMainStep int `json:"highest_main_step"`

	CreatedAt      time.Time `json:"created_at"`
	LastActivityAt time.Time `json:"last_activity_at"`
	ExpiresAt      time.Time `json:"expires_at"`
}

// IsAuthenticated reports whether the session is bound to a user.
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.UserID != "" && s.AccessToken != ""
}

// IsExpired reports whether the idle timeout has passed at now.
func (s *Session) IsExpired(now time.Time) bool {
	return s != nil && !now.Before(s.ExpiresAt)
}

// RaiseWatermark lifts HighestMainStep to n if n is higher.
func (s *Session) RaiseWatermark(n int) {
	if n > s.HighestMainStep {
		s.HighestMainStep = n
	}
}
