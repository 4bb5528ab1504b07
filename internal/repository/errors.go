package repository

import "errors"

// ErrNotFound is returned when a requested row does not exist
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a unique constraint rejects a write
var ErrConflict = errors.New("already exists")
