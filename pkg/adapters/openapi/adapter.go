// Package openapi turns the component schemas of an OpenAPI 3 document into
// class descriptors. Each object schema becomes one class; its properties
// keep the order they are declared in the document. Model configuration is
// read from the "x-modelgen" extension on schemas and properties.
package openapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-modelgen/pkg/classdesc"
)

const (
	// AdapterName is the registry name of the adapter.
	AdapterName = "openapi"
	// ExtensionKey carries model configuration on schemas and properties.
	ExtensionKey = "x-modelgen"
)

// Option configures the adapter.
type Option func(*Adapter)

// WithValidation validates the document with kin-openapi before extracting
// classes.
func WithValidation(enabled bool) Option {
	return func(a *Adapter) {
		a.validate = enabled
	}
}

// Adapter implements classdesc.FormatAdapter for OpenAPI documents.
type Adapter struct {
	validate bool
}

var _ classdesc.FormatAdapter = (*Adapter)(nil)

// New constructs the adapter.
func New(options ...Option) *Adapter {
	a := &Adapter{}
	for _, opt := range options {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

func (a *Adapter) Name() string {
	return AdapterName
}

// Detect reports whether raw looks like an OpenAPI or Swagger document.
func (a *Adapter) Detect(_ classdesc.Source, raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return false
	}
	if trimmed[0] == '{' {
		var payload map[string]any
		if err := json.Unmarshal(trimmed, &payload); err == nil {
			_, openapi := payload["openapi"]
			_, swagger := payload["swagger"]
			return openapi || swagger
		}
	}
	lower := strings.ToLower(string(trimmed))
	return strings.Contains(lower, "openapi:") || strings.Contains(lower, "swagger:")
}

// Classes converts every object schema under components.schemas into a
// class. Property references to other component schemas become
// associations, resolved against the catalog.
func (a *Adapter) Classes(ctx context.Context, doc classdesc.Document) (*classdesc.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if a.validate {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi: validate: %w", err)
		}
	}
	if spec.Components == nil || len(spec.Components.Schemas) == 0 {
		return nil, errors.New("openapi: document declares no component schemas")
	}

	order, err := declarationOrder(raw)
	if err != nil {
		return nil, err
	}

	catalog := classdesc.NewCatalog()
	for _, name := range orderedKeys(spec.Components.Schemas, order.schemas) {
		ref := spec.Components.Schemas[name]
		if ref == nil || ref.Value == nil || !isObject(ref.Value) {
			continue
		}
		class, err := classFromSchema(name, ref.Value, order.properties[name])
		if err != nil {
			return nil, err
		}
		if err := catalog.Add(class); err != nil {
			return nil, fmt.Errorf("openapi: %w", err)
		}
	}
	catalog.ResolveReferences()
	return catalog, nil
}

// orderedKeys lists the keys of m in declared order, then any remaining keys
// sorted.
func orderedKeys(m openapi3.Schemas, declared []string) []string {
	out := make([]string, 0, len(m))
	seen := make(map[string]struct{}, len(m))
	for _, key := range declared {
		if _, ok := m[key]; ok {
			out = append(out, key)
			seen[key] = struct{}{}
		}
	}
	var rest []string
	for key := range m {
		if _, ok := seen[key]; !ok {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

func isObject(schema *openapi3.Schema) bool {
	if schema.Type != nil && schema.Type.Is(openapi3.TypeObject) {
		return true
	}
	return len(schema.Properties) > 0
}

func schemaType(schema *openapi3.Schema) string {
	if schema == nil || schema.Type == nil {
		return ""
	}
	if types := schema.Type.Slice(); len(types) > 0 {
		return types[0]
	}
	return ""
}

// refName reduces "#/components/schemas/Category" to "Category".
func refName(ref string) string {
	if idx := strings.LastIndexByte(ref, '/'); idx >= 0 {
		return ref[idx+1:]
	}
	return ref
}
