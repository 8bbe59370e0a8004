package domain

import "time"

// Session is an opaque admin session record. Expired rows are reclaimed
// lazily during verification rather than by a background sweep.
type Session struct {
	Token     string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session has passed its absolute expiry.
func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt.Before(now)
}
