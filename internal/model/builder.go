package model

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-modelgen/pkg/classdesc"
)

const (
	defaultReadMethod    = "read"
	defaultCreateMethod  = "create"
	defaultUpdateMethod  = "update"
	defaultDestroyMethod = "destroy"
)

// Builder converts class descriptors into model descriptors. A Builder holds
// no mutable state and is safe for concurrent use.
type Builder struct {
	opts Options
}

// New creates a Builder with the supplied options.
func New(options Options) *Builder {
	opts := defaultOptions()
	if options.Pluralize != nil {
		opts.Pluralize = options.Pluralize
	}
	if options.DateFormat != "" {
		opts.DateFormat = options.DateFormat
	}
	return &Builder{opts: opts}
}

// Build transforms a class descriptor into a ModelDescriptor. Properties are
// read in declaration order; every structural problem is reported as a
// *MetadataError before anything reaches a renderer.
func (b *Builder) Build(class *classdesc.Class) (ModelDescriptor, error) {
	if class == nil {
		return ModelDescriptor{}, &MetadataError{Message: "class descriptor is required"}
	}

	name := class.ModelName()
	if name == "" {
		return ModelDescriptor{}, &MetadataError{Message: "model name is required"}
	}

	cfg := class.Model
	desc := ModelDescriptor{
		Name:          name,
		ReadMethod:    orDefault(cfg.ReadMethod, defaultReadMethod),
		CreateMethod:  orDefault(cfg.CreateMethod, defaultCreateMethod),
		UpdateMethod:  orDefault(cfg.UpdateMethod, defaultUpdateMethod),
		DestroyMethod: orDefault(cfg.DestroyMethod, defaultDestroyMethod),
		Paging:        cfg.Paging,
		Fields:        []Field{},
	}
	if cfg.ReadOnly {
		desc.CreateMethod = ""
		desc.UpdateMethod = ""
		desc.DestroyMethod = ""
	}

	seen := make(map[string]struct{}, len(class.Properties))
	var idClaims []string

	for _, prop := range class.Properties {
		if prop.Ignore {
			continue
		}

		fieldName := strings.TrimSpace(prop.Name)
		if fieldName == "" {
			return ModelDescriptor{}, metadataErr(class, "", "property name is required", nil)
		}

		if prop.Association != nil {
			if len(prop.Validations) > 0 {
				return ModelDescriptor{}, metadataErr(class, fieldName, "validations cannot target an association", nil)
			}
			if prop.ID {
				return ModelDescriptor{}, metadataErr(class, fieldName, "an association cannot be the identifier", nil)
			}
			assoc, err := b.association(prop.Association)
			if err != nil {
				return ModelDescriptor{}, metadataErr(class, fieldName, "invalid association", err)
			}
			desc.Associations = append(desc.Associations, assoc)
			continue
		}

		if _, dup := seen[fieldName]; dup {
			return ModelDescriptor{}, metadataErr(class, fieldName, "duplicate field name", nil)
		}
		seen[fieldName] = struct{}{}

		field, err := b.field(fieldName, prop)
		if err != nil {
			return ModelDescriptor{}, metadataErr(class, fieldName, "invalid field configuration", err)
		}
		if prop.ID {
			idClaims = append(idClaims, fieldName)
		}
		desc.Fields = append(desc.Fields, field)

		for _, vc := range prop.Validations {
			rule, err := validationRule(fieldName, vc)
			if err != nil {
				return ModelDescriptor{}, metadataErr(class, fieldName, "invalid validation", err)
			}
			desc.Validations = append(desc.Validations, rule)
		}
	}

	idProperty, err := resolveIdentifier(cfg.IDProperty, idClaims, seen)
	if err != nil {
		return ModelDescriptor{}, metadataErr(class, "", err.Error(), nil)
	}
	if idProperty != "" {
		desc.IDProperty = idProperty
		for i := range desc.Fields {
			if desc.Fields[i].Name == idProperty {
				desc.Fields[i].Identifier = true
			}
		}
	}

	return desc, nil
}

func (b *Builder) field(name string, prop classdesc.Property) (Field, error) {
	field := Field{
		Name: name,
		Type: inferFieldType(prop.Type),
	}

	cfg := prop.Field
	if cfg == nil {
		if field.Type == FieldTypeDate {
			field.DateFormat = b.opts.DateFormat
		}
		return field, nil
	}

	if override := strings.TrimSpace(cfg.Type); override != "" {
		fieldType := FieldType(strings.ToLower(override))
		if !fieldType.Valid() {
			return Field{}, fmt.Errorf("unknown field type %q", cfg.Type)
		}
		field.Type = fieldType
	}

	switch {
	case cfg.DateFormat != "" && field.Type != FieldTypeDate:
		return Field{}, fmt.Errorf("date format %q set on %s field", cfg.DateFormat, field.Type)
	case cfg.DateFormat != "":
		field.DateFormat = cfg.DateFormat
	case field.Type == FieldTypeDate:
		field.DateFormat = b.opts.DateFormat
	}

	if cfg.DefaultValue != nil {
		value, err := coerceDefault(field.Type, cfg.DefaultValue)
		if err != nil {
			return Field{}, err
		}
		field.DefaultValue = value
	}

	field.Mapping = strings.TrimSpace(cfg.Mapping)
	field.UseNull = cfg.UseNull
	if cfg.Persist != nil {
		persist := *cfg.Persist
		field.Persist = &persist
	}
	return field, nil
}

// resolveIdentifier accepts at most one identifier claim: properties marked
// as ID and the model-level IDProperty must agree.
func resolveIdentifier(configured string, claims []string, fields map[string]struct{}) (string, error) {
	configured = strings.TrimSpace(configured)
	if len(claims) > 1 {
		return "", fmt.Errorf("multiple identifier properties: %s", strings.Join(claims, ", "))
	}
	if len(claims) == 1 {
		if configured != "" && configured != claims[0] {
			return "", fmt.Errorf("idProperty %q conflicts with identifier property %q", configured, claims[0])
		}
		return claims[0], nil
	}
	if configured == "" {
		return "", nil
	}
	if _, ok := fields[configured]; !ok {
		return "", fmt.Errorf("idProperty %q does not name a field", configured)
	}
	return configured, nil
}

func metadataErr(class *classdesc.Class, field, message string, cause error) *MetadataError {
	return &MetadataError{
		Class:   class.ModelName(),
		Field:   field,
		Message: message,
		Cause:   cause,
	}
}
