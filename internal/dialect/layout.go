// Package dialect builds the object-literal tree shared by the model
// renderers. The two supported grammars differ only in where model config
// keys live and in a handful of key names, which Layout captures.
package dialect

import (
	"fmt"

	"github.com/goliatone/go-modelgen/internal/jsliteral"
	"github.com/goliatone/go-modelgen/pkg/model"
)

const (
	defineCallee     = "Ext.define"
	DefaultBaseClass = "Ext.data.Model"
	proxyType        = "direct"
	pagedRoot        = "records"
)

// Layout selects the grammar-specific shape of a model definition.
type Layout struct {
	// Nested places every model config key under a "config" object.
	Nested bool
	// ReaderRoot is the reader key naming the paged record list.
	ReaderRoot string
	// AssociationModel is the key naming an association target.
	AssociationModel string
	// BaseClass is the class the model extends.
	BaseClass string
}

// Render writes the model definition for desc in the given layout.
func Render(desc model.ModelDescriptor, layout Layout, minify bool) ([]byte, error) {
	tree, err := Tree(desc, layout)
	if err != nil {
		return nil, err
	}
	style := jsliteral.Indented
	if minify {
		style = jsliteral.Compact
	}
	return jsliteral.Marshal(tree, style), nil
}

// Tree builds the Ext.define call for desc. Key order is fixed: extend,
// idProperty, fields, associations, validations, proxy.
func Tree(desc model.ModelDescriptor, layout Layout) (*jsliteral.Call, error) {
	base := layout.BaseClass
	if base == "" {
		base = DefaultBaseClass
	}

	body := jsliteral.NewObject().SetString("extend", base)
	cfg := body
	if layout.Nested {
		cfg = jsliteral.NewObject()
	}

	if desc.IDProperty != "id" {
		cfg.SetString("idProperty", desc.IDProperty)
	}

	fields, err := fieldList(desc.Fields)
	if err != nil {
		return nil, err
	}
	cfg.Set("fields", fields)

	if len(desc.Associations) > 0 {
		cfg.Set("associations", associationList(desc.Associations, layout))
	}
	if len(desc.Validations) > 0 {
		validations, err := validationList(desc.Validations)
		if err != nil {
			return nil, err
		}
		cfg.Set("validations", validations)
	}
	if desc.HasProxy() {
		cfg.Set("proxy", proxy(desc, layout))
	}

	if layout.Nested {
		body.Set("config", cfg)
	}

	return &jsliteral.Call{
		Callee: defineCallee,
		Args:   []jsliteral.Value{jsliteral.String(desc.Name), body},
	}, nil
}

func fieldList(fields []model.Field) (jsliteral.Array, error) {
	out := make(jsliteral.Array, 0, len(fields))
	for _, field := range fields {
		obj := jsliteral.NewObject().
			SetString("name", field.Name).
			SetString("type", string(field.Type))
		if field.DefaultValue != nil {
			value, err := Literal(field.DefaultValue)
			if err != nil {
				return nil, fmt.Errorf("dialect: field %s default: %w", field.Name, err)
			}
			obj.Set("defaultValue", value)
		}
		obj.SetString("dateFormat", field.DateFormat).
			SetString("mapping", field.Mapping).
			SetTrue("useNull", field.UseNull)
		if field.Persist != nil {
			obj.Set("persist", jsliteral.Bool(*field.Persist))
		}
		out = append(out, obj)
	}
	return out, nil
}

func associationList(assocs []model.Association, layout Layout) jsliteral.Array {
	modelKey := layout.AssociationModel
	if modelKey == "" {
		modelKey = "model"
	}

	out := make(jsliteral.Array, 0, len(assocs))
	for _, assoc := range assocs {
		obj := jsliteral.NewObject().
			SetString("type", string(assoc.Kind)).
			SetString(modelKey, assoc.Model).
			SetString("associationKey", assoc.AssociationKey).
			SetString("primaryKey", assoc.PrimaryKey)

		switch assoc.Kind {
		case model.AssociationHasOne:
			if p := assoc.HasOne; p != nil {
				obj.SetString("foreignKey", p.ForeignKey).
					SetString("getterName", p.GetterName).
					SetString("setterName", p.SetterName)
			}
		case model.AssociationHasMany:
			if p := assoc.HasMany; p != nil {
				obj.SetString("name", p.Name).
					SetString("foreignKey", p.ForeignKey).
					SetTrue("autoLoad", p.AutoLoad).
					SetString("filterProperty", p.FilterProperty)
			}
		case model.AssociationBelongsTo:
			if p := assoc.BelongsTo; p != nil {
				obj.SetString("foreignKey", p.ForeignKey).
					SetString("getterName", p.GetterName).
					SetString("setterName", p.SetterName)
			}
		}
		out = append(out, obj)
	}
	return out
}

func validationList(rules []model.ValidationRule) (jsliteral.Array, error) {
	out := make(jsliteral.Array, 0, len(rules))
	for _, rule := range rules {
		obj := jsliteral.NewObject().
			SetString("type", rule.Type).
			SetString("field", rule.Field)
		for _, param := range rule.Params {
			if rule.Type == model.ValidationFormat && param.Name == "matcher" {
				matcher, ok := param.Value.(string)
				if !ok {
					return nil, fmt.Errorf("dialect: %s matcher must be a string, got %T", rule.Field, param.Value)
				}
				obj.Set(param.Name, jsliteral.RegexFromMatcher(matcher))
				continue
			}
			value, err := Literal(param.Value)
			if err != nil {
				return nil, fmt.Errorf("dialect: %s %s param %s: %w", rule.Field, rule.Type, param.Name, err)
			}
			obj.Set(param.Name, value)
		}
		out = append(out, obj)
	}
	return out, nil
}

// proxy binds the CRUD methods as unquoted function references: a single
// directFn when only read is bound, an api object otherwise.
func proxy(desc model.ModelDescriptor, layout Layout) *jsliteral.Object {
	obj := jsliteral.NewObject().SetString("type", proxyType)
	if desc.ReadOnly() {
		obj.SetIdent("directFn", desc.ReadMethod)
	} else {
		obj.Set("api", jsliteral.NewObject().
			SetIdent("read", desc.ReadMethod).
			SetIdent("create", desc.CreateMethod).
			SetIdent("update", desc.UpdateMethod).
			SetIdent("destroy", desc.DestroyMethod))
	}
	if desc.Paging {
		root := layout.ReaderRoot
		if root == "" {
			root = "root"
		}
		obj.Set("reader", jsliteral.NewObject().SetString(root, pagedRoot))
	}
	return obj
}
