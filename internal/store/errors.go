package store

import "errors"

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a write collides with a uniqueness
// constraint, e.g. a duplicate username or email.
var ErrConflict = errors.New("conflict")
