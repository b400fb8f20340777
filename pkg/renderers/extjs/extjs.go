// Package extjs renders model descriptors as Ext JS 4 model definitions
// (render.DialectA). Model config keys sit directly in the Ext.define body:
//
//	Ext.define("App.User",
//	{
//	  extend : "Ext.data.Model",
//	  idProperty : "userId",
//	  fields : [ {
//	    name : "userId",
//	    type : "int"
//	  } ],
//	  proxy : {
//	    type : "direct",
//	    directFn : userService.read,
//	    reader : {
//	      root : "records"
//	    }
//	  }
//	});
package extjs

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

// WithBaseClass overrides the class generated models extend. Defaults to
// "Ext.data.Model".
func WithBaseClass(name string) Option {
	return func(cfg *config) {
		if name != "" {
			cfg.baseClass = name
		}
	}
}

// Renderer produces Ext JS 4 model source.
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
			ReaderRoot:       "root",
			AssociationModel: "model",
			BaseClass:        cfg.baseClass,
		},
	}
}

func (r *Renderer) Dialect() render.Dialect {
	return render.DialectA
}

func (r *Renderer) ContentType() string {
	return render.ContentType
}

// Render writes the model definition. It only fails for descriptors carrying
// values no builder produces, such as unsupported default value types.
func (r *Renderer) Render(_ context.Context, desc model.ModelDescriptor, options render.RenderOptions) ([]byte, error) {
	return dialect.Render(desc, r.layout, options.Minify)
}
