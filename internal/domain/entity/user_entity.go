package entity

import (
	"strings"
	"time"
)

// User is the aggregate root for the credential store.
// PasswordHash holds a bcrypt hash; the plain password never reaches this type.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// NormalizeEmail returns the canonical form used as identity key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Identity is the authenticated caller attached to a single request.
type Identity struct {
	Email string
}
