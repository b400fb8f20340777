package render

import (
	"fmt"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-modelgen/internal/jsliteral"
)

// Equivalent parses two rendered model sources and reports whether they
// describe the same structure. Whitespace is insignificant; member order,
// literal kinds and values are not.
func Equivalent(a, b []byte) (bool, error) {
	left, err := jsliteral.Parse(a)
	if err != nil {
		return false, fmt.Errorf("render: parse first source: %w", err)
	}
	right, err := jsliteral.Parse(b)
	if err != nil {
		return false, fmt.Errorf("render: parse second source: %w", err)
	}
	return cmp.Equal(left, right), nil
}
