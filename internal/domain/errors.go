package domain

import "errors"

var (
	ErrValidation        = errors.New("invalid input")
	ErrNotFound          = errors.New("item not found")
	ErrDuplicateUsername = errors.New("username already taken")
	ErrBadCreds          = errors.New("invalid username or password")
)
