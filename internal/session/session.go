// Package session holds the authenticated caller's identity and the
// stores that persist it across process restarts.
package session

// Session is the pair identifying an authenticated caller to the
// backend. Token and user id are set together or not at all.
type Session struct {
	AccessToken string `json:"access_token"`
	UserID      string `json:"user_id"`
}

// Valid reports whether both fields are populated.
func (s Session) Valid() bool {
	return s.AccessToken != "" && s.UserID != ""
}

// Store persists the current session. Implementations are safe for
// concurrent use, but callers racing SignIn against in-flight
// authenticated calls must serialize those transitions themselves.
type Store interface {
	// Current returns the stored session, or false when none exists.
	Current() (Session, bool)
	// Save replaces the stored session. Partial sessions are rejected.
	Save(s Session) error
	// Clear removes the stored session. Clearing an empty store is a no-op.
	Clear() error
}
