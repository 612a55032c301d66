package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound      = errors.New("record not found")
	ErrInvalidLimit  = errors.New("invalid history limit")
	ErrInvalidStatus = errors.New("invalid checklist status")
)
