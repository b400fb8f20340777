package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// inferFieldType maps a source type name onto a semantic type. Pointer
// markers are ignored; unknown and composite types map to auto.
func inferFieldType(typeName string) FieldType {
	name := strings.TrimLeft(strings.TrimSpace(typeName), "*")
	switch strings.ToLower(name) {
	case "string", "rune", "char":
		return FieldTypeString
	case "int", "int8", "int16", "int32", "int64",
		"uint", "uint8", "uint16", "uint32", "uint64", "uintptr",
		"byte", "short", "long", "integer":
		return FieldTypeInt
	case "float32", "float64", "float", "double", "decimal", "number":
		return FieldTypeFloat
	case "bool", "boolean":
		return FieldTypeBoolean
	case "time.time", "date", "datetime", "time", "timestamp":
		return FieldTypeDate
	default:
		return FieldTypeAuto
	}
}

// coerceDefault normalises a configured default value to the Go type the
// renderers expect for t: string, int64, float64 or bool.
func coerceDefault(t FieldType, raw any) (any, error) {
	switch t {
	case FieldTypeString, FieldTypeDate:
		return coerceString(raw)
	case FieldTypeInt:
		return coerceInt(raw)
	case FieldTypeFloat:
		return coerceFloat(raw)
	case FieldTypeBoolean:
		return coerceBool(raw)
	default:
		return coerceAuto(raw)
	}
}

func coerceString(raw any) (any, error) {
	switch v := raw.(type) {
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(v), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	}
	return nil, fmt.Errorf("default value %v (%T) is not a string literal", raw, raw)
}

func coerceInt(raw any) (any, error) {
	switch v := raw.(type) {
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("default value %q is not an integer: %w", v, err)
		}
		return n, nil
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case uint:
		return uintToInt(uint64(v))
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint64:
		return uintToInt(v)
	case float32:
		return floatToInt(float64(v))
	case float64:
		return floatToInt(v)
	}
	return nil, fmt.Errorf("default value %v (%T) is not an integer", raw, raw)
}

func uintToInt(v uint64) (any, error) {
	if v > math.MaxInt64 {
		return nil, fmt.Errorf("default value %d overflows int64", v)
	}
	return int64(v), nil
}

func floatToInt(v float64) (any, error) {
	if v != math.Trunc(v) || v > math.MaxInt64 || v < math.MinInt64 {
		return nil, fmt.Errorf("default value %v is not an integer", v)
	}
	return int64(v), nil
}

func coerceFloat(raw any) (any, error) {
	switch v := raw.(type) {
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, fmt.Errorf("default value %q is not a number: %w", v, err)
		}
		return checkFinite(f)
	case float32:
		return checkFinite(float64(v))
	case float64:
		return checkFinite(v)
	}
	n, err := coerceInt(raw)
	if err != nil {
		return nil, fmt.Errorf("default value %v (%T) is not a number", raw, raw)
	}
	return float64(n.(int64)), nil
}

func checkFinite(f float64) (any, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("default value %v is not a finite number", f)
	}
	return f, nil
}

func coerceBool(raw any) (any, error) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("default value %q is not a boolean: %w", v, err)
		}
		return b, nil
	}
	return nil, fmt.Errorf("default value %v (%T) is not a boolean", raw, raw)
}

// coerceAuto keeps the literal kind of the configured value.
func coerceAuto(raw any) (any, error) {
	switch v := raw.(type) {
	case string, bool:
		return v, nil
	case float32, float64:
		return coerceFloat(v)
	}
	if n, err := coerceInt(raw); err == nil {
		return n, nil
	}
	return nil, fmt.Errorf("default value %v (%T) is not a literal", raw, raw)
}
