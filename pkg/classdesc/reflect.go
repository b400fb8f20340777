package classdesc

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"
)

// ModelConfigurer is implemented by Go types that carry model-level
// configuration. FromType calls it on a zero value of the type.
type ModelConfigurer interface {
	ModelConfig() ModelConfig
}

var (
	typeMu    sync.Mutex
	typeCache = make(map[reflect.Type]*Class)

	timeType = reflect.TypeOf(time.Time{})
)

// FromType describes a Go struct type. Exported fields are read in
// declaration order, embedded structs are flattened, and `modelgen` tags
// configure fields, validations and associations. Results are memoised per
// type, so the same type always yields the same Class and identity.
func FromType(t reflect.Type) (*Class, error) {
	if t == nil {
		return nil, fmt.Errorf("classdesc: nil type")
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("classdesc: %s is not a struct type", t)
	}

	typeMu.Lock()
	defer typeMu.Unlock()

	var added []reflect.Type
	class, err := describeType(t, &added)
	if err != nil {
		for _, typ := range added {
			delete(typeCache, typ)
		}
		return nil, err
	}
	return class, nil
}

// Of describes the type of value. It is shorthand for FromType(reflect.TypeOf(value)).
func Of(value any) (*Class, error) {
	return FromType(reflect.TypeOf(value))
}

// MustOf is like Of but panics on error.
func MustOf(value any) *Class {
	class, err := Of(value)
	if err != nil {
		panic(err)
	}
	return class
}

// describeType must be called with typeMu held. The class is registered
// before its properties are read so self and mutual references terminate.
func describeType(t reflect.Type, added *[]reflect.Type) (*Class, error) {
	if cached, ok := typeCache[t]; ok {
		return cached, nil
	}

	class := New(t.String(), modelConfigOf(t))
	typeCache[t] = class
	*added = append(*added, t)

	props, err := describeFields(t, added)
	if err != nil {
		return nil, fmt.Errorf("classdesc: %s: %w", t, err)
	}
	class.Properties = props
	return class, nil
}

func describeFields(t reflect.Type, added *[]reflect.Type) ([]Property, error) {
	var props []Property
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)

		if sf.Anonymous && sf.Tag.Get(TagName) == "" {
			embedded := sf.Type
			if embedded.Kind() == reflect.Pointer {
				embedded = embedded.Elem()
			}
			if embedded.Kind() == reflect.Struct && embedded != timeType {
				nested, err := describeFields(embedded, added)
				if err != nil {
					return nil, err
				}
				props = append(props, nested...)
				continue
			}
		}
		if !sf.IsExported() {
			continue
		}

		prop, err := describeField(sf, added)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", sf.Name, err)
		}
		props = append(props, prop)
	}
	return props, nil
}

func describeField(sf reflect.StructField, added *[]reflect.Type) (Property, error) {
	tag, err := parseTag(sf.Tag.Get(TagName))
	if err != nil {
		return Property{}, err
	}

	name, jsonIgnored := jsonName(sf)
	if tag.name != "" {
		name = tag.name
	}

	prop := Property{
		Name:        name,
		Type:        typeName(sf.Type),
		Ignore:      tag.ignore || jsonIgnored,
		ID:          tag.id,
		Field:       tag.field,
		Validations: tag.validations,
		Association: tag.association,
	}

	if assoc := prop.Association; assoc != nil && assoc.Model == "" && !prop.Ignore {
		target := elemType(sf.Type)
		if target.Kind() == reflect.Struct && target != timeType {
			class, err := describeType(target, added)
			if err != nil {
				return Property{}, err
			}
			assoc.Class = class
		} else {
			assoc.Ref = target.String()
		}
	}
	return prop, nil
}

func modelConfigOf(t reflect.Type) ModelConfig {
	if configurer, ok := reflect.New(t).Interface().(ModelConfigurer); ok {
		return configurer.ModelConfig()
	}
	return ModelConfig{}
}

// jsonName mirrors the property name a JSON encoder would emit: the json tag
// name when present, else the field name with a lower-case first letter.
func jsonName(sf reflect.StructField) (string, bool) {
	if tag, ok := sf.Tag.Lookup("json"); ok {
		name, _, _ := strings.Cut(tag, ",")
		if name == "-" {
			return lowerFirst(sf.Name), true
		}
		if name != "" {
			return name, false
		}
	}
	return lowerFirst(sf.Name), false
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// typeName renders t the way the builder's type inference expects: basic
// kinds by kind name so named types like `type Status string` infer from
// their underlying kind.
func typeName(t reflect.Type) string {
	if t == timeType {
		return "time.Time"
	}
	switch t.Kind() {
	case reflect.Pointer:
		return "*" + typeName(t.Elem())
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return t.Kind().String()
	}
	return t.String()
}

func elemType(t reflect.Type) reflect.Type {
	for {
		switch t.Kind() {
		case reflect.Pointer, reflect.Slice, reflect.Array:
			t = t.Elem()
		default:
			return t
		}
	}
}
