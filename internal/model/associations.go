package model

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/goliatone/go-modelgen/pkg/classdesc"
)

func normalizeAssociationKind(raw string) (AssociationKind, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "hasone":
		return AssociationHasOne, true
	case "hasmany":
		return AssociationHasMany, true
	case "belongsto":
		return AssociationBelongsTo, true
	default:
		return "", false
	}
}

// associationTarget resolves the target model name once, at build time.
// Class references are reduced to their model name so self references never
// recurse.
func associationTarget(cfg *classdesc.AssociationConfig) (string, error) {
	if model := strings.TrimSpace(cfg.Model); model != "" {
		return model, nil
	}
	if cfg.Class != nil {
		if name := cfg.Class.ModelName(); name != "" {
			return name, nil
		}
		return "", fmt.Errorf("associated class has no name")
	}
	if cfg.Ref != "" {
		return "", fmt.Errorf("associated type %q cannot be resolved", cfg.Ref)
	}
	return "", fmt.Errorf("association declares no target model")
}

func (b *Builder) association(cfg *classdesc.AssociationConfig) (Association, error) {
	kind, ok := normalizeAssociationKind(cfg.Kind)
	if !ok {
		return Association{}, fmt.Errorf("unknown association kind %q", cfg.Kind)
	}
	target, err := associationTarget(cfg)
	if err != nil {
		return Association{}, err
	}

	short := shortName(target)
	assoc := Association{
		Kind:           kind,
		Model:          target,
		AssociationKey: cfg.AssociationKey,
		PrimaryKey:     cfg.PrimaryKey,
	}

	switch kind {
	case AssociationHasOne:
		assoc.HasOne = &HasOne{
			ForeignKey: cfg.ForeignKey,
			GetterName: orDefault(cfg.GetterName, "get"+upperFirst(short)),
			SetterName: orDefault(cfg.SetterName, "set"+upperFirst(short)),
		}
	case AssociationHasMany:
		assoc.HasMany = &HasMany{
			Name:           orDefault(cfg.Name, b.opts.Pluralize(strings.ToLower(short))),
			ForeignKey:     cfg.ForeignKey,
			AutoLoad:       cfg.AutoLoad,
			FilterProperty: cfg.FilterProperty,
		}
	case AssociationBelongsTo:
		assoc.BelongsTo = &BelongsTo{
			ForeignKey: orDefault(cfg.ForeignKey, strings.ToLower(short)+"_id"),
			GetterName: orDefault(cfg.GetterName, "get"+upperFirst(short)),
			SetterName: orDefault(cfg.SetterName, "set"+upperFirst(short)),
		}
	}
	return assoc, nil
}

// shortName returns the last dotted segment of a model name:
// "App.model.Category" becomes "Category".
func shortName(model string) string {
	if idx := strings.LastIndexByte(model, '.'); idx >= 0 {
		return model[idx+1:]
	}
	return model
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func orDefault(value, fallback string) string {
	if value = strings.TrimSpace(value); value != "" {
		return value
	}
	return fallback
}
