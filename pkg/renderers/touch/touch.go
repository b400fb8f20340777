// Package touch renders model descriptors as Sencha Touch 2 model
// definitions (render.DialectB). Model config keys are nested under a
// "config" object, paged readers use "rootProperty", and associations name
// their target with "associatedModel".
package touch

import (
	"context"

	"github.com/goliatone/go-modelgen/internal/dialect"
	"github.com/goliatone/go-modelgen/pkg/model"
	"github.com/goliatone/go-modelgen/pkg/render"
)

// Option customises the renderer configuration.
type Option func(*config)

type config struct {
	baseClass string
}

// WithBaseClass overrides the class generated models extend.
func WithBaseClass(name string) Option {
	return func(cfg *config) {
		if name != "" {
			cfg.baseClass = name
		}
	}
}

// Renderer produces Sencha Touch 2 model source.
type Renderer struct {
	layout dialect.Layout
}

// New constructs a Renderer.
func New(options ...Option) *Renderer {
	cfg := config{baseClass: dialect.DefaultBaseClass}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Renderer{
		layout: dialect.Layout{
			Nested:           true,
			ReaderRoot:       "rootProperty",
			AssociationModel: "associatedModel",
			BaseClass:        cfg.baseClass,
		},
	}
}

func (r *Renderer) Dialect() render.Dialect {
	return render.DialectB
}

func (r *Renderer) ContentType() string {
	return render.ContentType
}

func (r *Renderer) Render(_ context.Context, desc model.ModelDescriptor, options render.RenderOptions) ([]byte, error) {
	return dialect.Render(desc, r.layout, options.Minify)
}
