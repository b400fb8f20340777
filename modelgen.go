// Package modelgen generates client-side model definitions (Ext JS 4 and
// Sencha Touch 2 dialects) from server-side class descriptors.
//
// The package-level functions delegate to a process-wide Orchestrator that
// is created on first use and lives until the process exits. It is safe for
// concurrent use. Generated descriptors and source are cached per class
// identity; call ClearCaches after class descriptors change. Programs that
// need isolated caches or custom wiring should construct their own instance
// with NewOrchestrator.
package modelgen

import (
	"context"
	"io"
	"sync"
	"sync/atomic"

	"github.com/goliatone/go-modelgen/pkg/classdesc"
	"github.com/goliatone/go-modelgen/pkg/model"
	"github.com/goliatone/go-modelgen/pkg/orchestrator"
	"github.com/goliatone/go-modelgen/pkg/render"
)

// Dialect aliases render.Dialect.
type Dialect = render.Dialect

const (
	DialectA = render.DialectA
	DialectB = render.DialectB
)

// Request aliases orchestrator.Request.
type Request = orchestrator.Request

// IOError aliases orchestrator.IOError.
type IOError = orchestrator.IOError

// ErrWrite matches every sink failure reported by WriteSource.
var ErrWrite = orchestrator.ErrWrite

var (
	defaultOnce sync.Once
	defaultGen  atomic.Pointer[orchestrator.Orchestrator]
)

// NewOrchestrator constructs an independent orchestrator.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Default returns the process-wide orchestrator, creating it on first use.
func Default() *orchestrator.Orchestrator {
	defaultOnce.Do(func() {
		if defaultGen.Load() == nil {
			defaultGen.CompareAndSwap(nil, orchestrator.New())
		}
	})
	return defaultGen.Load()
}

// SetDefault replaces the process-wide orchestrator and returns the previous
// one. Passing nil restores a freshly constructed instance.
func SetDefault(gen *orchestrator.Orchestrator) *orchestrator.Orchestrator {
	Default()
	if gen == nil {
		gen = orchestrator.New()
	}
	return defaultGen.Swap(gen)
}

// CreateModel returns the model descriptor for class.
func CreateModel(ctx context.Context, class *classdesc.Class) (model.ModelDescriptor, error) {
	return Default().CreateModel(ctx, class)
}

// GenerateSource renders the model definition described by req. An empty
// req.Dialect selects DialectA.
func GenerateSource(ctx context.Context, req Request) ([]byte, error) {
	return Default().GenerateSource(ctx, req)
}

// WriteSource renders req completely and then writes it to w. Sink failures
// are reported as *IOError.
func WriteSource(ctx context.Context, w io.Writer, req Request) error {
	return Default().WriteSource(ctx, w, req)
}

// ClearCaches drops every cached descriptor and rendered source of the
// process-wide orchestrator.
func ClearCaches(ctx context.Context) error {
	return Default().ClearCaches(ctx)
}

// Describe returns the class descriptor of a Go struct value, read from its
// declaration and modelgen struct tags. The same type always yields the same
// class identity.
func Describe(value any) (*classdesc.Class, error) {
	return classdesc.Of(value)
}
