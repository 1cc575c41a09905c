package userdir

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the signed payload of an access token: the user id plus
// the registered time claims. Account type is deliberately absent, the
// auth gate always re-resolves it from storage.
type Claims struct {
	jwt.RegisteredClaims
	UID int64 `json:"uid,omitempty"`
}

// UserID returns the user id the token was issued for
func (c *Claims) UserID() int64 {
	if c.UID != 0 {
		return c.UID
	}

	id, err := strconv.ParseInt(c.RegisteredClaims.Subject, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// Expires returns the expiration time
func (c *Claims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *Claims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}
