package domain

import "errors"

var (
	// ErrInvalidKind signals an entity kind outside the known set.
	ErrInvalidKind = errors.New("invalid entity kind")
	// ErrMalformedRecord signals an upstream record that cannot be normalized.
	ErrMalformedRecord = errors.New("malformed record")
	// ErrInvalidQuery signals a search query that fails validation.
	ErrInvalidQuery = errors.New("invalid query")
)
