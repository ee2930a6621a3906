package contract

// TokenRepository is the durable mirror of the session credential: exactly one
// bearer token string under one well-known location. It mirrors the session
// state but never owns it.
type TokenRepository interface {
	// Load returns the stored token, or "" when none is stored.
	Load() (string, error)
	Save(token string) error
	// Clear removes the stored token. Clearing an empty store is not an error.
	Clear() error
}
