package model

import "errors"

var (
	// ErrTokenMissing is returned when a request carries no session token.
	ErrTokenMissing = errors.New("session token is missing")
	// ErrTokenInvalidOrExpired covers bad signatures, malformed tokens and elapsed expiry.
	ErrTokenInvalidOrExpired = errors.New("session token is invalid or expired")
)

// Identity is the set of identity claims a session token carries, e.g. {"email": "..."}.
// Its shape is chosen by the client and never validated.
type Identity map[string]interface{}

// Email returns the "email" claim, or "" when absent or not a string.
func (i Identity) Email() string {
	email, _ := i["email"].(string)
	return email
}
