package record

import "errors"

var (
	// ErrBlankLine indicates the line holds only whitespace.
	ErrBlankLine = errors.New("blank line")
	// ErrMissingDiscriminant indicates the type tag is absent or not a string.
	ErrMissingDiscriminant = errors.New("missing type discriminant")
	// ErrUnknownKind indicates an unrecognized record or block type tag.
	ErrUnknownKind = errors.New("unknown type discriminant")
	// ErrMissingField indicates a required field is absent or null.
	ErrMissingField = errors.New("missing required field")
	// ErrEmptyTimestamp indicates a conversational record with an empty timestamp.
	ErrEmptyTimestamp = errors.New("empty timestamp")
	// ErrNoMatchingShape indicates an untagged value fits none of its shapes.
	ErrNoMatchingShape = errors.New("value matches no known shape")
	// ErrUnsupportedRecord indicates a Record implementation outside the model.
	ErrUnsupportedRecord = errors.New("unsupported record variant")
)
