package model

// FieldType is the dialect-neutral semantic type of a field.
type FieldType string

const (
	FieldTypeAuto    FieldType = "auto"
	FieldTypeString  FieldType = "string"
	FieldTypeInt     FieldType = "int"
	FieldTypeFloat   FieldType = "float"
	FieldTypeBoolean FieldType = "boolean"
	FieldTypeDate    FieldType = "date"
)

// Valid reports whether t is one of the known semantic types.
func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeAuto, FieldTypeString, FieldTypeInt, FieldTypeFloat, FieldTypeBoolean, FieldTypeDate:
		return true
	}
	return false
}

// DefaultDateFormat is the ISO 8601 format marker applied to date fields
// that do not configure one.
const DefaultDateFormat = "c"

// AssociationKind tags the payload carried by an Association.
type AssociationKind string

const (
	AssociationHasOne    AssociationKind = "hasOne"
	AssociationHasMany   AssociationKind = "hasMany"
	AssociationBelongsTo AssociationKind = "belongsTo"
)

const (
	ValidationPresence  = "presence"
	ValidationLength    = "length"
	ValidationEmail     = "email"
	ValidationFormat    = "format"
	ValidationInclusion = "inclusion"
	ValidationExclusion = "exclusion"
)

// Field describes one model property. DefaultValue holds a string, int64,
// float64 or bool once the builder has normalised it.
type Field struct {
	Name         string    `json:"name"`
	Type         FieldType `json:"type"`
	Mapping      string    `json:"mapping,omitempty"`
	DefaultValue any       `json:"defaultValue"`
	DateFormat   string    `json:"dateFormat,omitempty"`
	UseNull      bool      `json:"useNull,omitempty"`
	Persist      *bool     `json:"persist,omitempty"`
	Identifier   bool      `json:"identifier,omitempty"`
}

// Association is a tagged variant: exactly the payload matching Kind is set.
type Association struct {
	Kind           AssociationKind `json:"kind"`
	Model          string          `json:"model"`
	AssociationKey string          `json:"associationKey,omitempty"`
	PrimaryKey     string          `json:"primaryKey,omitempty"`

	HasOne    *HasOne    `json:"hasOne,omitempty"`
	HasMany   *HasMany   `json:"hasMany,omitempty"`
	BelongsTo *BelongsTo `json:"belongsTo,omitempty"`
}

type HasOne struct {
	ForeignKey string `json:"foreignKey,omitempty"`
	GetterName string `json:"getterName,omitempty"`
	SetterName string `json:"setterName,omitempty"`
}

type HasMany struct {
	Name           string `json:"name,omitempty"`
	ForeignKey     string `json:"foreignKey,omitempty"`
	AutoLoad       bool   `json:"autoLoad,omitempty"`
	FilterProperty string `json:"filterProperty,omitempty"`
}

type BelongsTo struct {
	ForeignKey string `json:"foreignKey,omitempty"`
	GetterName string `json:"getterName,omitempty"`
	SetterName string `json:"setterName,omitempty"`
}

// Param is one ordered validation parameter. Value is an int64, a string,
// or a list of strings.
type Param struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// ValidationRule is a single validation constraint applied to a field.
type ValidationRule struct {
	Type   string  `json:"type"`
	Field  string  `json:"field"`
	Params []Param `json:"params,omitempty"`
}

// ModelDescriptor is the canonical, dialect-neutral representation renderers
// consume. Fields keep declaration order, which is also the render order.
type ModelDescriptor struct {
	Name          string           `json:"name"`
	IDProperty    string           `json:"idProperty,omitempty"`
	ReadMethod    string           `json:"readMethod,omitempty"`
	CreateMethod  string           `json:"createMethod,omitempty"`
	UpdateMethod  string           `json:"updateMethod,omitempty"`
	DestroyMethod string           `json:"destroyMethod,omitempty"`
	Paging        bool             `json:"paging,omitempty"`
	Fields        []Field          `json:"fields"`
	Validations   []ValidationRule `json:"validations,omitempty"`
	Associations  []Association    `json:"associations,omitempty"`
}

// Field returns the field called name.
func (m ModelDescriptor) Field(name string) (Field, bool) {
	for _, field := range m.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// FieldNames returns the field names in render order.
func (m ModelDescriptor) FieldNames() []string {
	names := make([]string, 0, len(m.Fields))
	for _, field := range m.Fields {
		names = append(names, field.Name)
	}
	return names
}

// HasProxy reports whether any CRUD method is bound.
func (m ModelDescriptor) HasProxy() bool {
	return m.ReadMethod != "" || m.CreateMethod != "" || m.UpdateMethod != "" || m.DestroyMethod != ""
}

// ReadOnly reports whether read is the only bound CRUD method.
func (m ModelDescriptor) ReadOnly() bool {
	return m.ReadMethod != "" && m.CreateMethod == "" && m.UpdateMethod == "" && m.DestroyMethod == ""
}

// Clone returns a deep copy that shares no mutable state with m.
func (m ModelDescriptor) Clone() ModelDescriptor {
	out := m
	if m.Fields != nil {
		out.Fields = make([]Field, len(m.Fields))
		for i, field := range m.Fields {
			if field.Persist != nil {
				persist := *field.Persist
				field.Persist = &persist
			}
			out.Fields[i] = field
		}
	}
	if m.Validations != nil {
		out.Validations = make([]ValidationRule, len(m.Validations))
		for i, rule := range m.Validations {
			if rule.Params != nil {
				params := make([]Param, len(rule.Params))
				for j, param := range rule.Params {
					params[j] = Param{Name: param.Name, Value: cloneValue(param.Value)}
				}
				rule.Params = params
			}
			out.Validations[i] = rule
		}
	}
	if m.Associations != nil {
		out.Associations = make([]Association, len(m.Associations))
		for i, assoc := range m.Associations {
			if assoc.HasOne != nil {
				payload := *assoc.HasOne
				assoc.HasOne = &payload
			}
			if assoc.HasMany != nil {
				payload := *assoc.HasMany
				assoc.HasMany = &payload
			}
			if assoc.BelongsTo != nil {
				payload := *assoc.BelongsTo
				assoc.BelongsTo = &payload
			}
			out.Associations[i] = assoc
		}
	}
	return out
}

func cloneValue(value any) any {
	switch v := value.(type) {
	case []string:
		return append([]string(nil), v...)
	case []any:
		return append([]any(nil), v...)
	default:
		return value
	}
}
