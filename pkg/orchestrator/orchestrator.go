package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/goliatone/go-modelgen/internal/loader"
	"github.com/goliatone/go-modelgen/pkg/adapters/openapi"
	"github.com/goliatone/go-modelgen/pkg/adapters/yamldesc"
	"github.com/goliatone/go-modelgen/pkg/cache"
	"github.com/goliatone/go-modelgen/pkg/classdesc"
	"github.com/goliatone/go-modelgen/pkg/model"
	"github.com/goliatone/go-modelgen/pkg/render"
	"github.com/goliatone/go-modelgen/pkg/renderers/extjs"
	"github.com/goliatone/go-modelgen/pkg/renderers/touch"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithBuilder injects a custom metadata builder.
func WithBuilder(builder model.Builder) Option {
	return func(o *Orchestrator) {
		o.builder = builder
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithCache injects the generation cache.
func WithCache(c *cache.Cache) Option {
	return func(o *Orchestrator) {
		o.cache = c
	}
}

// WithLogger sets the logger for the orchestrator and, unless WithCache is
// also given, for its cache.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithDecorators registers decorators that adjust each built descriptor
// before it is cached and rendered.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		if len(decorators) == 0 {
			return
		}
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithDefaultDialect overrides the dialect used when a request leaves it
// empty. Defaults to render.DialectA.
func WithDefaultDialect(dialect render.Dialect) Option {
	return func(o *Orchestrator) {
		o.defaultDialect = dialect
	}
}

// WithLoader injects the descriptor document loader used by LoadCatalog.
func WithLoader(l classdesc.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = l
	}
}

// WithAdapterRegistry injects the descriptor format adapters used by
// LoadCatalog.
func WithAdapterRegistry(registry *AdapterRegistry) Option {
	return func(o *Orchestrator) {
		o.adapters = registry
	}
}

// Orchestrator coordinates the pipeline from class descriptor to rendered
// model source. Missing dependencies are filled with the built-in
// implementations: both dialect renderers, an in-memory cache, the file/fs
// loader, and the YAML and OpenAPI adapters.
type Orchestrator struct {
	builder        model.Builder
	registry       *render.Registry
	cache          *cache.Cache
	logger         *slog.Logger
	decorators     []model.Decorator
	defaultDialect render.Dialect
	loader         classdesc.Loader
	adapters       *AdapterRegistry
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

func (o *Orchestrator) applyDefaults() {
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	if o.builder == nil {
		o.builder = model.NewBuilder()
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		o.registry.MustRegister(extjs.New())
		o.registry.MustRegister(touch.New())
	}
	if o.cache == nil {
		o.cache = cache.New(cache.WithLogger(o.logger))
	}
	if o.defaultDialect == "" {
		o.defaultDialect = render.DialectA
	}
	if o.loader == nil {
		o.loader = loader.New(classdesc.NewLoaderOptions())
	}
	if o.adapters == nil {
		o.adapters = NewAdapterRegistry()
		o.adapters.MustRegister(yamldesc.New())
		o.adapters.MustRegister(openapi.New())
	}
}

// Request describes one generation. Exactly one of Class and Model is used:
// Model, when set, is rendered as given and bypasses the cache.
type Request struct {
	Class   *classdesc.Class
	Model   *model.ModelDescriptor
	Dialect render.Dialect
	Minify  bool
}

// CreateModel returns the model descriptor for class, building it on the
// first request for that class identity. Every call returns an independent
// copy.
func (o *Orchestrator) CreateModel(ctx context.Context, class *classdesc.Class) (model.ModelDescriptor, error) {
	if err := checkContext(ctx); err != nil {
		return model.ModelDescriptor{}, err
	}
	if class == nil {
		return model.ModelDescriptor{}, &model.MetadataError{Message: "class descriptor is required"}
	}

	return o.cache.Model(ctx, class.Key(), func() (model.ModelDescriptor, error) {
		o.logger.DebugContext(ctx, "modelgen build", "class", class.Name)
		desc, err := o.builder.Build(class)
		if err != nil {
			return model.ModelDescriptor{}, fmt.Errorf("orchestrator: build model: %w", err)
		}
		if err := o.applyDecorators(&desc); err != nil {
			return model.ModelDescriptor{}, err
		}
		return desc, nil
	})
}

// GenerateSource renders the model definition for req.
func (o *Orchestrator) GenerateSource(ctx context.Context, req Request) ([]byte, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	dialect := req.Dialect
	if dialect == "" {
		dialect = o.defaultDialect
	}
	renderer, err := o.registry.Get(dialect)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	options := render.RenderOptions{Minify: req.Minify}

	switch {
	case req.Model != nil:
		desc := req.Model.Clone()
		if err := model.Validate(desc); err != nil {
			return nil, fmt.Errorf("orchestrator: %w", err)
		}
		return o.render(ctx, renderer, desc, options)
	case req.Class != nil:
		key := cache.Key{Class: req.Class.Key(), Dialect: dialect, Minify: req.Minify}
		return o.cache.Source(ctx, key, func() ([]byte, error) {
			desc, err := o.CreateModel(ctx, req.Class)
			if err != nil {
				return nil, err
			}
			return o.render(ctx, renderer, desc, options)
		})
	default:
		return nil, errors.New("orchestrator: class or model is required")
	}
}

func (o *Orchestrator) render(ctx context.Context, renderer render.Renderer, desc model.ModelDescriptor, options render.RenderOptions) ([]byte, error) {
	o.logger.DebugContext(ctx, "modelgen render", "model", desc.Name, "dialect", renderer.Dialect(), "minify", options.Minify)
	output, err := renderer.Render(ctx, desc, options)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render %s: %w", desc.Name, err)
	}
	return output, nil
}

// WriteSource renders req completely and then writes it to w. Sink failures
// are reported as *IOError; nothing is written when generation fails.
func (o *Orchestrator) WriteSource(ctx context.Context, w io.Writer, req Request) error {
	if w == nil {
		return errors.New("orchestrator: writer is required")
	}
	output, err := o.GenerateSource(ctx, req)
	if err != nil {
		return err
	}

	n, err := w.Write(output)
	if err != nil {
		return &IOError{Op: "write", Cause: err}
	}
	if n < len(output) {
		return &IOError{Op: "write", Cause: io.ErrShortWrite}
	}
	return nil
}

// ClearCaches drops every cached descriptor and rendered text. Later calls
// recompute from the class descriptors.
func (o *Orchestrator) ClearCaches(ctx context.Context) error {
	if err := checkContext(ctx); err != nil {
		return err
	}
	if err := o.cache.Clear(ctx); err != nil {
		return fmt.Errorf("orchestrator: %w", err)
	}
	return nil
}

// Dialects lists the dialects with a registered renderer.
func (o *Orchestrator) Dialects() []render.Dialect {
	return o.registry.List()
}

// ContentType returns the content type served for dialect.
func (o *Orchestrator) ContentType(dialect render.Dialect) (string, error) {
	if dialect == "" {
		dialect = o.defaultDialect
	}
	renderer, err := o.registry.Get(dialect)
	if err != nil {
		return "", fmt.Errorf("orchestrator: %w", err)
	}
	return renderer.ContentType(), nil
}

func (o *Orchestrator) applyDecorators(desc *model.ModelDescriptor) error {
	if len(o.decorators) == 0 {
		return nil
	}
	for _, decorator := range o.decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(desc); err != nil {
			return fmt.Errorf("orchestrator: decorate model: %w", err)
		}
	}
	if err := model.Validate(*desc); err != nil {
		return fmt.Errorf("orchestrator: decorated model: %w", err)
	}
	return nil
}

func checkContext(ctx context.Context) error {
	if ctx == nil {
		return errors.New("orchestrator: context is required")
	}
	return ctx.Err()
}
