package models

import "errors"

// Error kinds every layer agrees on. Repositories and services wrap these
// with context; the HTTP layer maps them to 404 and 400.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)
