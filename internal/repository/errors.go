package repository

import "errors"

var (
	// ErrInvalidCategory is returned before any I/O when a category key does
	// not name one of the nine content partitions.
	ErrInvalidCategory = errors.New("invalid content category")

	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("not found")
)
