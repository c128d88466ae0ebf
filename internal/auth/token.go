package auth

import "github.com/google/uuid"

// NewSessionToken mints an opaque session token. Uniqueness is what the
// session table needs; uuid v4 additionally makes tokens unguessable.
func NewSessionToken() string {
	return uuid.NewString()
}
