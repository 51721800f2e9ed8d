package store

import "errors"

var (
	ErrNotFound  = errors.New("journal entry not found")
	ErrEmptyText = errors.New("text must not be empty")
)
