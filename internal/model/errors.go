package model

import (
	"errors"
	"strings"
)

// ErrInvalidMetadata matches every MetadataError via errors.Is.
var ErrInvalidMetadata = errors.New("model: invalid metadata")

// MetadataError reports a class descriptor the builder cannot turn into a
// model: conflicting identifiers, unresolvable associations, unknown types,
// or conflicting field configuration.
type MetadataError struct {
	Class   string
	Field   string
	Message string
	Cause   error
}

func (e *MetadataError) Error() string {
	var b strings.Builder
	b.WriteString("model: invalid metadata")
	if e.Class != "" {
		b.WriteString(" for class ")
		b.WriteString(e.Class)
	}
	if e.Field != "" {
		b.WriteString(" field ")
		b.WriteString(e.Field)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *MetadataError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is ErrInvalidMetadata.
func (e *MetadataError) Is(target error) bool {
	return target == ErrInvalidMetadata
}

// IsMetadataError reports whether err wraps a MetadataError.
func IsMetadataError(err error) bool {
	var metaErr *MetadataError
	return errors.As(err, &metaErr)
}
