package classdesc

import (
	"fmt"
	"strconv"
	"strings"
)

// TagName is the struct tag FromType reads.
const TagName = "modelgen"

// tagSpec is the parsed form of a `modelgen` struct tag, e.g.
//
//	`modelgen:"id;type:int;default:0"`
//	`modelgen:"presence;length(min=2,max=40)"`
//	`modelgen:"hasOne(getterName=category,foreignKey=category_id)"`
type tagSpec struct {
	ignore      bool
	id          bool
	name        string
	field       *FieldConfig
	validations []ValidationConfig
	association *AssociationConfig
}

func parseTag(raw string) (tagSpec, error) {
	var spec tagSpec
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return spec, nil
	}
	if raw == "-" {
		spec.ignore = true
		return spec, nil
	}

	for _, part := range splitOutsideParens(raw, ';') {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if open := strings.IndexByte(part, '('); open > 0 && strings.HasSuffix(part, ")") {
			directive := strings.TrimSpace(part[:open])
			args, err := parseArgs(part[open+1 : len(part)-1])
			if err != nil {
				return spec, fmt.Errorf("classdesc: tag %q: %w", raw, err)
			}
			if err := spec.applyCall(directive, args); err != nil {
				return spec, fmt.Errorf("classdesc: tag %q: %w", raw, err)
			}
			continue
		}

		key, value, _ := strings.Cut(part, ":")
		if err := spec.applyKey(strings.TrimSpace(key), strings.TrimSpace(value)); err != nil {
			return spec, fmt.Errorf("classdesc: tag %q: %w", raw, err)
		}
	}
	return spec, nil
}

func (s *tagSpec) ensureField() *FieldConfig {
	if s.field == nil {
		s.field = &FieldConfig{}
	}
	return s.field
}

func (s *tagSpec) applyKey(key, value string) error {
	switch key {
	case "ignore", "-":
		s.ignore = true
	case "id":
		s.id = true
	case "name":
		s.name = value
	case "type":
		s.ensureField().Type = value
	case "default":
		s.ensureField().DefaultValue = value
	case "dateFormat":
		s.ensureField().DateFormat = value
	case "mapping":
		s.ensureField().Mapping = value
	case "useNull":
		s.ensureField().UseNull = true
	case "persist":
		persist, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("persist: %w", err)
		}
		s.ensureField().Persist = &persist
	case ValidationPresence, ValidationEmail:
		s.validations = append(s.validations, ValidationConfig{Type: key})
	case KindHasOne, KindHasMany, KindBelongsTo:
		return s.applyCall(key, nil)
	default:
		return fmt.Errorf("unknown directive %q", key)
	}
	return nil
}

func (s *tagSpec) applyCall(directive string, args map[string]string) error {
	switch directive {
	case ValidationPresence, ValidationEmail, ValidationLength, ValidationFormat, ValidationInclusion, ValidationExclusion:
		rule := ValidationConfig{Type: directive}
		for key, value := range args {
			switch key {
			case "min", "max":
				n, err := strconv.Atoi(value)
				if err != nil {
					return fmt.Errorf("%s %s: %w", directive, key, err)
				}
				if key == "min" {
					rule.Min = &n
				} else {
					rule.Max = &n
				}
			case "matcher":
				rule.Matcher = value
			case "list":
				rule.List = strings.Split(value, "|")
			default:
				return fmt.Errorf("%s: unknown argument %q", directive, key)
			}
		}
		s.validations = append(s.validations, rule)
	case KindHasOne, KindHasMany, KindBelongsTo:
		if s.association != nil {
			return fmt.Errorf("multiple associations declared")
		}
		assoc := &AssociationConfig{Kind: directive}
		for key, value := range args {
			switch key {
			case "model":
				assoc.Model = value
			case "associationKey":
				assoc.AssociationKey = value
			case "primaryKey":
				assoc.PrimaryKey = value
			case "foreignKey":
				assoc.ForeignKey = value
			case "getterName":
				assoc.GetterName = value
			case "setterName":
				assoc.SetterName = value
			case "name":
				assoc.Name = value
			case "filterProperty":
				assoc.FilterProperty = value
			case "autoLoad":
				autoLoad, err := strconv.ParseBool(value)
				if err != nil {
					return fmt.Errorf("%s autoLoad: %w", directive, err)
				}
				assoc.AutoLoad = autoLoad
			default:
				return fmt.Errorf("%s: unknown argument %q", directive, key)
			}
		}
		s.association = assoc
	default:
		return fmt.Errorf("unknown directive %q", directive)
	}
	return nil
}

func parseArgs(raw string) (map[string]string, error) {
	args := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("argument %q must be key=value", pair)
		}
		args[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return args, nil
}

// splitOutsideParens splits on sep, keeping separators inside parentheses.
func splitOutsideParens(raw string, sep rune) []string {
	var (
		parts []string
		sb    strings.Builder
		depth int
	)
	for _, r := range raw {
		switch {
		case r == '(':
			depth++
			sb.WriteRune(r)
		case r == ')':
			if depth > 0 {
				depth--
			}
			sb.WriteRune(r)
		case r == sep && depth == 0:
			parts = append(parts, sb.String())
			sb.Reset()
		default:
			sb.WriteRune(r)
		}
	}
	parts = append(parts, sb.String())
	return parts
}
