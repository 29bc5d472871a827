package entity

import "time"

// Session maps an opaque cookie token to the authenticated principal. It
// lives in the injected session store, never in the database.
type Session struct {
	Token     string
	UserID    uint
	Username  string
	Role      Role
	ExpiresAt time.Time
}

// Expired reports whether the session has passed its absolute expiry.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// Principal returns the request identity this session authenticates.
func (s *Session) Principal() Principal {
	return Principal{
		UserID:   s.UserID,
		Username: s.Username,
		Role:     s.Role,
	}
}
