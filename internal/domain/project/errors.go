package project

import "errors"

var (
	// ErrRootNotFound indicates the log root is missing, not a directory, or
	// unreadable.
	ErrRootNotFound = errors.New("projects root not found")
	// ErrNotText indicates a log file holds bytes that are not valid UTF-8.
	ErrNotText = errors.New("file is not valid UTF-8 text")
	// ErrProjectNotFound indicates no loaded project matches the given name.
	ErrProjectNotFound = errors.New("project not found")
	// ErrRecordNotFound indicates no record with the given id exists in the
	// selected projects.
	ErrRecordNotFound = errors.New("record not found")
	// ErrInvalidInput indicates invalid project input.
	ErrInvalidInput = errors.New("invalid project input")
)
