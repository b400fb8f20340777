package openapi

import (
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-modelgen/pkg/classdesc"
)

// propertyExtension is the x-modelgen payload accepted on a property.
type propertyExtension struct {
	ID         bool   `yaml:"id"`
	Ignore     bool   `yaml:"ignore"`
	Type       string `yaml:"type"`
	Mapping    string `yaml:"mapping"`
	DateFormat string `yaml:"dateFormat"`
	UseNull    bool   `yaml:"useNull"`
	Persist    *bool  `yaml:"persist"`

	Kind           string `yaml:"kind"`
	Model          string `yaml:"model"`
	AssociationKey string `yaml:"associationKey"`
	PrimaryKey     string `yaml:"primaryKey"`
	ForeignKey     string `yaml:"foreignKey"`
	GetterName     string `yaml:"getterName"`
	SetterName     string `yaml:"setterName"`
	Name           string `yaml:"name"`
	AutoLoad       bool   `yaml:"autoLoad"`
	FilterProperty string `yaml:"filterProperty"`
}

func classFromSchema(name string, schema *openapi3.Schema, declared []string) (*classdesc.Class, error) {
	var cfg classdesc.ModelConfig
	if err := decodeExtension(schema.Extensions[ExtensionKey], &cfg); err != nil {
		return nil, fmt.Errorf("openapi: schema %s: %s: %w", name, ExtensionKey, err)
	}

	required := make(map[string]bool, len(schema.Required))
	for _, field := range schema.Required {
		required[field] = true
	}

	class := classdesc.New(name, cfg)
	for _, propName := range orderedKeys(schema.Properties, declared) {
		ref := schema.Properties[propName]
		if ref == nil {
			continue
		}
		prop, err := property(propName, ref, required[propName])
		if err != nil {
			return nil, fmt.Errorf("openapi: schema %s property %s: %w", name, propName, err)
		}
		class.Properties = append(class.Properties, prop)
	}
	return class, nil
}

func property(name string, ref *openapi3.SchemaRef, required bool) (classdesc.Property, error) {
	schema := ref.Value
	if schema == nil {
		schema = &openapi3.Schema{}
	}

	// A bare $ref resolves to the target schema, whose extension describes
	// the target model rather than this property.
	var ext propertyExtension
	if ref.Ref == "" {
		if err := decodeExtension(schema.Extensions[ExtensionKey], &ext); err != nil {
			return classdesc.Property{}, fmt.Errorf("%s: %w", ExtensionKey, err)
		}
	}

	prop := classdesc.Property{Name: name, Ignore: ext.Ignore, ID: ext.ID}
	if assoc := association(ref, ext); assoc != nil {
		prop.Association = assoc
		return prop, nil
	}

	prop.Type = sourceType(schema)
	prop.Field = fieldConfig(schema, ext)
	prop.Validations = validations(schema, required)
	return prop, nil
}

// association recognises references to other component schemas: a direct
// $ref (or a single-entry allOf wrapping one) is a hasOne, an array of
// references is a hasMany. The extension kind overrides either.
func association(ref *openapi3.SchemaRef, ext propertyExtension) *classdesc.AssociationConfig {
	target, kind := "", ""
	schema := ref.Value
	switch {
	case ref.Ref != "":
		target, kind = refName(ref.Ref), classdesc.KindHasOne
	case schema != nil && len(schema.AllOf) == 1 && schema.AllOf[0].Ref != "":
		target, kind = refName(schema.AllOf[0].Ref), classdesc.KindHasOne
	case schema != nil && schema.Items != nil && schema.Items.Ref != "":
		target, kind = refName(schema.Items.Ref), classdesc.KindHasMany
	case ext.Kind != "" && ext.Model != "":
		kind = ext.Kind
	default:
		return nil
	}
	if ext.Kind != "" {
		kind = ext.Kind
	}

	return &classdesc.AssociationConfig{
		Kind:           kind,
		Model:          ext.Model,
		Ref:            target,
		AssociationKey: ext.AssociationKey,
		PrimaryKey:     ext.PrimaryKey,
		ForeignKey:     ext.ForeignKey,
		GetterName:     ext.GetterName,
		SetterName:     ext.SetterName,
		Name:           ext.Name,
		AutoLoad:       ext.AutoLoad,
		FilterProperty: ext.FilterProperty,
	}
}

// sourceType maps an OpenAPI type and format onto the source type names the
// metadata builder infers from.
func sourceType(schema *openapi3.Schema) string {
	switch schemaType(schema) {
	case openapi3.TypeString:
		switch schema.Format {
		case "date":
			return "date"
		case "date-time":
			return "datetime"
		}
		return "string"
	case openapi3.TypeInteger:
		if schema.Format == "int32" {
			return "int32"
		}
		return "int64"
	case openapi3.TypeNumber:
		if schema.Format == "float" {
			return "float32"
		}
		return "float64"
	case openapi3.TypeBoolean:
		return "bool"
	case openapi3.TypeArray:
		return "[]any"
	}
	return "any"
}

func fieldConfig(schema *openapi3.Schema, ext propertyExtension) *classdesc.FieldConfig {
	cfg := &classdesc.FieldConfig{
		Type:         ext.Type,
		DefaultValue: schema.Default,
		DateFormat:   ext.DateFormat,
		Mapping:      ext.Mapping,
		UseNull:      ext.UseNull || schema.Nullable,
		Persist:      ext.Persist,
	}
	if cfg.Persist == nil && schema.ReadOnly {
		persist := false
		cfg.Persist = &persist
	}
	if cfg.Type == "" && cfg.DefaultValue == nil && cfg.DateFormat == "" && cfg.Mapping == "" && !cfg.UseNull && cfg.Persist == nil {
		return nil
	}
	return cfg
}

func validations(schema *openapi3.Schema, required bool) []classdesc.ValidationConfig {
	var out []classdesc.ValidationConfig
	if required {
		out = append(out, classdesc.ValidationConfig{Type: classdesc.ValidationPresence})
	}
	if schema.MinLength > 0 || schema.MaxLength != nil {
		rule := classdesc.ValidationConfig{Type: classdesc.ValidationLength}
		if schema.MinLength > 0 {
			min := int(schema.MinLength)
			rule.Min = &min
		}
		if schema.MaxLength != nil {
			max := int(*schema.MaxLength)
			rule.Max = &max
		}
		out = append(out, rule)
	}
	if schema.Pattern != "" {
		out = append(out, classdesc.ValidationConfig{Type: classdesc.ValidationFormat, Matcher: schema.Pattern})
	}
	if schema.Format == "email" {
		out = append(out, classdesc.ValidationConfig{Type: classdesc.ValidationEmail})
	}
	if list, ok := stringEnum(schema.Enum); ok {
		out = append(out, classdesc.ValidationConfig{Type: classdesc.ValidationInclusion, List: list})
	}
	return out
}

func stringEnum(values []any) ([]string, bool) {
	if len(values) == 0 {
		return nil, false
	}
	out := make([]string, 0, len(values))
	for _, value := range values {
		s, ok := value.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

