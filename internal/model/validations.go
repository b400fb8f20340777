package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-modelgen/internal/jsliteral"
	"github.com/goliatone/go-modelgen/pkg/classdesc"
)

var (
	errLengthBounds   = errors.New("length requires min or max")
	errFormatMatcher  = errors.New("format requires a matcher")
	errTrailingEscape = errors.New("format matcher ends in an unfinished escape")
	errListRequired   = errors.New("requires a non-empty list")
	errNegativeLength = errors.New("length bounds must not be negative")
)

// validationRule converts one configured rule into its ordered form. Params
// keep a fixed order per type so rendered output is stable.
func validationRule(field string, cfg classdesc.ValidationConfig) (ValidationRule, error) {
	kind := strings.TrimSpace(cfg.Type)
	rule := ValidationRule{Type: kind, Field: field}

	switch kind {
	case ValidationPresence, ValidationEmail:
	case ValidationLength:
		if cfg.Min == nil && cfg.Max == nil {
			return ValidationRule{}, errLengthBounds
		}
		if cfg.Min != nil {
			if *cfg.Min < 0 {
				return ValidationRule{}, errNegativeLength
			}
			rule.Params = append(rule.Params, Param{Name: "min", Value: int64(*cfg.Min)})
		}
		if cfg.Max != nil {
			if *cfg.Max < 0 {
				return ValidationRule{}, errNegativeLength
			}
			rule.Params = append(rule.Params, Param{Name: "max", Value: int64(*cfg.Max)})
		}
		if cfg.Min != nil && cfg.Max != nil && *cfg.Min > *cfg.Max {
			return ValidationRule{}, fmt.Errorf("length min %d exceeds max %d", *cfg.Min, *cfg.Max)
		}
	case ValidationFormat:
		if cfg.Matcher == "" {
			return ValidationRule{}, errFormatMatcher
		}
		if trailingEscape(jsliteral.RegexFromMatcher(cfg.Matcher).Pattern) {
			return ValidationRule{}, errTrailingEscape
		}
		rule.Params = append(rule.Params, Param{Name: "matcher", Value: cfg.Matcher})
	case ValidationInclusion, ValidationExclusion:
		if len(cfg.List) == 0 {
			return ValidationRule{}, fmt.Errorf("%s %w", kind, errListRequired)
		}
		rule.Params = append(rule.Params, Param{Name: "list", Value: append([]string(nil), cfg.List...)})
	default:
		return ValidationRule{}, fmt.Errorf("unknown validation type %q", cfg.Type)
	}
	return rule, nil
}

// trailingEscape reports whether s ends in an odd run of backslashes, which
// would escape the closing slash of a regex literal.
func trailingEscape(s string) bool {
	n := 0
	for i := len(s) - 1; i >= 0 && s[i] == '\\'; i-- {
		n++
	}
	return n%2 == 1
}
