package model

import (
	"github.com/goliatone/go-modelgen/internal/model"
	"github.com/goliatone/go-modelgen/pkg/classdesc"
)

// Builder converts class descriptors into model descriptors.
type Builder interface {
	Build(class *classdesc.Class) (ModelDescriptor, error)
}

// BuilderOption configures the builder behaviour.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	pluralize  func(string) string
	dateFormat string
}

// WithPluralizer overrides how default hasMany accessor names are derived.
func WithPluralizer(fn func(string) string) BuilderOption {
	return func(opts *builderOptions) {
		opts.pluralize = fn
	}
}

// WithDateFormat overrides the format applied to date fields that do not
// configure one. Defaults to "c" (ISO 8601).
func WithDateFormat(format string) BuilderOption {
	return func(opts *builderOptions) {
		opts.dateFormat = format
	}
}

// NewBuilder returns a Builder backed by the internal implementation.
func NewBuilder(options ...BuilderOption) Builder {
	cfg := builderOptions{}
	for _, opt := range options {
		opt(&cfg)
	}

	return model.New(model.Options{
		Pluralize:  cfg.pluralize,
		DateFormat: cfg.dateFormat,
	})
}
