package render

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-modelgen/pkg/model"
)

// Dialect names one of the two supported client model grammars. The set is
// closed: adding a dialect means adding a renderer package, not configuration.
type Dialect string

const (
	// DialectA is the Ext JS 4 layout: model config keys sit directly in the
	// class body and the paged reader uses "root".
	DialectA Dialect = "extjs4"
	// DialectB is the Sencha Touch 2 layout: model config keys are nested
	// under "config", the paged reader uses "rootProperty" and associations
	// name their target with "associatedModel".
	DialectB Dialect = "touch2"
)

// Dialects lists every supported dialect in a stable order.
func Dialects() []Dialect {
	return []Dialect{DialectA, DialectB}
}

// Valid reports whether d is a supported dialect.
func (d Dialect) Valid() bool {
	return d == DialectA || d == DialectB
}

func (d Dialect) String() string {
	return string(d)
}

// ParseDialect accepts the canonical names plus the common aliases "extjs",
// "ext", "a", "touch" and "b", case-insensitively.
func ParseDialect(raw string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "extjs4", "extjs", "ext", "a":
		return DialectA, nil
	case "touch2", "touch", "sencha-touch", "b":
		return DialectB, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDialect, raw)
	}
}

// Renderer converts a ModelDescriptor into client model source for one
// dialect. Implementations are pure: identical inputs yield identical bytes.
type Renderer interface {
	Dialect() Dialect
	ContentType() string
	Render(ctx context.Context, model model.ModelDescriptor, options RenderOptions) ([]byte, error)
}
