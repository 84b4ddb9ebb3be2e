package search

import "errors"

var (
	// ErrEmptyQuery indicates a blank search query.
	ErrEmptyQuery = errors.New("search query is empty")
	// ErrInvalidInput indicates invalid search input.
	ErrInvalidInput = errors.New("invalid search input")
)
