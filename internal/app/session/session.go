// Package session keeps the per-browser state of the console: the backend
// token, the signed-in user and pending flash notifications.
package session

import (
	"time"

	"github.com/yigit/schooladmin/internal/app/models"
)

// FlashLevel is the visual weight of a notification.
type FlashLevel string

const (
	FlashSuccess FlashLevel = "success"
	FlashError   FlashLevel = "error"
	FlashWarning FlashLevel = "warning"
	FlashInfo    FlashLevel = "info"
)

// Flash is a one-shot notification shown on the next rendered page.
type Flash struct {
	Level   FlashLevel `json:"level"`
	Message string     `json:"message"`
}

// Session is the server-side state bound to one browser cookie.
type Session struct {
	ID        string       `json:"id"`
	Token     string       `json:"token,omitempty"`
	User      *models.User `json:"user,omitempty"`
	Flashes   []Flash      `json:"flashes,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

// Authenticated reports whether the session carries a backend token.
func (s *Session) Authenticated() bool {
	return s != nil && s.Token != ""
}

// Expired reports whether the session outlived its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
