package auth

import "errors"

// Sign-in failures map to fixed user-facing messages; anything else falls
// back to the raw error text.
var (
	ErrNoAccount     = errors.New("no account found for this email")
	ErrWrongPassword = errors.New("incorrect password")
	ErrEmailInUse    = errors.New("email already in use")
	ErrInvalidEmail  = errors.New("invalid email address")
	ErrWeakPassword  = errors.New("password is too weak (min 6 characters)")
)
