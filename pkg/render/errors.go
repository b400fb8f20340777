package render

import "errors"

var (
	// ErrUnknownDialect is returned for dialect names outside the closed set.
	ErrUnknownDialect = errors.New("render: unknown dialect")
	// ErrRendererNotFound is returned when no renderer serves a dialect.
	ErrRendererNotFound = errors.New("render: renderer not found")
)
