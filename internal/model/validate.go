package model

import (
	"fmt"
	"strings"
)

// Validate checks a descriptor that did not come from the Builder, such as
// one supplied directly by a caller or produced by a decorator. It enforces
// the same structural guarantees Build gives its output.
func Validate(desc ModelDescriptor) error {
	if strings.TrimSpace(desc.Name) == "" {
		return &MetadataError{Message: "model name is required"}
	}

	seen := make(map[string]struct{}, len(desc.Fields))
	identifier := ""
	for _, field := range desc.Fields {
		if field.Name == "" {
			return &MetadataError{Class: desc.Name, Message: "field name is required"}
		}
		if _, dup := seen[field.Name]; dup {
			return &MetadataError{Class: desc.Name, Field: field.Name, Message: "duplicate field name"}
		}
		seen[field.Name] = struct{}{}
		if !field.Type.Valid() {
			return &MetadataError{Class: desc.Name, Field: field.Name, Message: fmt.Sprintf("unknown field type %q", field.Type)}
		}
		if field.DateFormat != "" && field.Type != FieldTypeDate {
			return &MetadataError{Class: desc.Name, Field: field.Name, Message: fmt.Sprintf("date format %q set on %s field", field.DateFormat, field.Type)}
		}
		if field.Identifier {
			if identifier != "" {
				return &MetadataError{Class: desc.Name, Field: field.Name, Message: fmt.Sprintf("multiple identifier fields: %s, %s", identifier, field.Name)}
			}
			identifier = field.Name
		}
	}

	if identifier != "" && desc.IDProperty != identifier {
		return &MetadataError{Class: desc.Name, Field: identifier, Message: fmt.Sprintf("identifier field conflicts with idProperty %q", desc.IDProperty)}
	}

	if desc.IDProperty != "" && desc.IDProperty != "id" {
		if _, ok := seen[desc.IDProperty]; !ok {
			return &MetadataError{Class: desc.Name, Message: fmt.Sprintf("idProperty %q does not name a field", desc.IDProperty)}
		}
	}

	for _, rule := range desc.Validations {
		if _, ok := seen[rule.Field]; !ok {
			return &MetadataError{Class: desc.Name, Field: rule.Field, Message: fmt.Sprintf("%s validation targets an unknown field", rule.Type)}
		}
	}

	for i, assoc := range desc.Associations {
		if strings.TrimSpace(assoc.Model) == "" {
			return &MetadataError{Class: desc.Name, Message: fmt.Sprintf("association %d has no target model", i)}
		}
		if err := checkPayload(assoc); err != nil {
			return &MetadataError{Class: desc.Name, Message: fmt.Sprintf("association %d", i), Cause: err}
		}
	}
	return nil
}

func checkPayload(assoc Association) error {
	set := 0
	for _, present := range []bool{assoc.HasOne != nil, assoc.HasMany != nil, assoc.BelongsTo != nil} {
		if present {
			set++
		}
	}
	if set > 1 {
		return fmt.Errorf("%s carries more than one payload", assoc.Kind)
	}

	switch assoc.Kind {
	case AssociationHasOne:
		if set == 1 && assoc.HasOne == nil {
			return fmt.Errorf("hasOne carries a foreign payload")
		}
	case AssociationHasMany:
		if set == 1 && assoc.HasMany == nil {
			return fmt.Errorf("hasMany carries a foreign payload")
		}
	case AssociationBelongsTo:
		if set == 1 && assoc.BelongsTo == nil {
			return fmt.Errorf("belongsTo carries a foreign payload")
		}
	default:
		return fmt.Errorf("unknown association kind %q", assoc.Kind)
	}
	return nil
}
