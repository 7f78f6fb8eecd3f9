package store

import "errors"

// Sentinel errors. Services translate these into API-facing errors.
var (
	ErrNotFound        = errors.New("resource not found")
	ErrDuplicateReview = errors.New("review already exists for this user and book")
)
