package classdesc

import (
	"strings"

	"github.com/google/uuid"
)

// Association kinds accepted by AssociationConfig.Kind.
const (
	KindHasOne    = "hasOne"
	KindHasMany   = "hasMany"
	KindBelongsTo = "belongsTo"
)

// Validation types accepted by ValidationConfig.Type.
const (
	ValidationPresence  = "presence"
	ValidationLength    = "length"
	ValidationEmail     = "email"
	ValidationFormat    = "format"
	ValidationInclusion = "inclusion"
	ValidationExclusion = "exclusion"
)

// Class describes one data-bearing source type. Treat a Class as immutable
// once constructed: the identity token stays fixed, so mutating the shape of
// a class that has already been generated leaves stale cache entries behind
// until the caches are cleared.
type Class struct {
	id uuid.UUID

	// Name is the fully qualified source class name.
	Name string
	// Model holds the model-level configuration.
	Model ModelConfig
	// Properties lists the declared properties in declaration order.
	Properties []Property
}

// ModelConfig is the model-level configuration of a class.
type ModelConfig struct {
	// Value overrides the external model name. Defaults to Class.Name.
	Value string `yaml:"value,omitempty" json:"value,omitempty"`
	// IDProperty names the identifier field.
	IDProperty string `yaml:"idProperty,omitempty" json:"idProperty,omitempty"`
	// Paging wraps read responses in a paged reader.
	Paging bool `yaml:"paging,omitempty" json:"paging,omitempty"`
	// ReadMethod, CreateMethod, UpdateMethod and DestroyMethod name the
	// endpoint functions bound to the client proxy. Empty values fall back to
	// "read", "create", "update" and "destroy".
	ReadMethod    string `yaml:"readMethod,omitempty" json:"readMethod,omitempty"`
	CreateMethod  string `yaml:"createMethod,omitempty" json:"createMethod,omitempty"`
	UpdateMethod  string `yaml:"updateMethod,omitempty" json:"updateMethod,omitempty"`
	DestroyMethod string `yaml:"destroyMethod,omitempty" json:"destroyMethod,omitempty"`
	// ReadOnly binds only the read method.
	ReadOnly bool `yaml:"readOnly,omitempty" json:"readOnly,omitempty"`
}

// Property is one declared property of a class.
type Property struct {
	Name string `yaml:"name" json:"name"`
	// Type is the source type name (e.g. "string", "int64", "time.Time",
	// "*Category"). It drives semantic type inference.
	Type string `yaml:"type,omitempty" json:"type,omitempty"`
	// Ignore excludes the property from the generated model.
	Ignore bool `yaml:"ignore,omitempty" json:"ignore,omitempty"`
	// ID marks the property as the model identifier.
	ID          bool               `yaml:"id,omitempty" json:"id,omitempty"`
	Field       *FieldConfig       `yaml:"field,omitempty" json:"field,omitempty"`
	Validations []ValidationConfig `yaml:"validations,omitempty" json:"validations,omitempty"`
	Association *AssociationConfig `yaml:"association,omitempty" json:"association,omitempty"`
}

// FieldConfig overrides the generated field of a property.
type FieldConfig struct {
	// Type overrides the inferred semantic type (auto, string, int, float,
	// boolean, date).
	Type         string `yaml:"type,omitempty" json:"type,omitempty"`
	DefaultValue any    `yaml:"defaultValue,omitempty" json:"defaultValue,omitempty"`
	DateFormat   string `yaml:"dateFormat,omitempty" json:"dateFormat,omitempty"`
	Mapping      string `yaml:"mapping,omitempty" json:"mapping,omitempty"`
	UseNull      bool   `yaml:"useNull,omitempty" json:"useNull,omitempty"`
	Persist      *bool  `yaml:"persist,omitempty" json:"persist,omitempty"`
}

// ValidationConfig attaches one validation rule to a property.
type ValidationConfig struct {
	Type    string   `yaml:"type" json:"type"`
	Min     *int     `yaml:"min,omitempty" json:"min,omitempty"`
	Max     *int     `yaml:"max,omitempty" json:"max,omitempty"`
	Matcher string   `yaml:"matcher,omitempty" json:"matcher,omitempty"`
	List    []string `yaml:"list,omitempty" json:"list,omitempty"`
}

// AssociationConfig declares a relationship from the owning class to another
// model. The target is given either by an explicit Model name or by a Class
// reference; Ref keeps the raw name of a reference an adapter could not
// resolve.
type AssociationConfig struct {
	Kind  string `yaml:"kind" json:"kind"`
	Model string `yaml:"model,omitempty" json:"model,omitempty"`
	Class *Class `yaml:"-" json:"-"`
	Ref   string `yaml:"class,omitempty" json:"class,omitempty"`

	AssociationKey string `yaml:"associationKey,omitempty" json:"associationKey,omitempty"`
	PrimaryKey     string `yaml:"primaryKey,omitempty" json:"primaryKey,omitempty"`
	ForeignKey     string `yaml:"foreignKey,omitempty" json:"foreignKey,omitempty"`
	GetterName     string `yaml:"getterName,omitempty" json:"getterName,omitempty"`
	SetterName     string `yaml:"setterName,omitempty" json:"setterName,omitempty"`
	// Name is the store accessor created by hasMany associations.
	Name           string `yaml:"name,omitempty" json:"name,omitempty"`
	AutoLoad       bool   `yaml:"autoLoad,omitempty" json:"autoLoad,omitempty"`
	FilterProperty string `yaml:"filterProperty,omitempty" json:"filterProperty,omitempty"`
}

// New constructs a Class with a fresh identity.
func New(name string, model ModelConfig, properties ...Property) *Class {
	return &Class{
		id:         uuid.New(),
		Name:       name,
		Model:      model,
		Properties: append([]Property(nil), properties...),
	}
}

// ID returns the identity token of the class. Classes built as struct
// literals have no identity and are never cached.
func (c *Class) ID() uuid.UUID {
	if c == nil {
		return uuid.Nil
	}
	return c.id
}

// Key returns the cache key for the class identity.
func (c *Class) Key() string {
	if c == nil || c.id == uuid.Nil {
		return ""
	}
	return c.id.String()
}

// ModelName resolves the external model name: the explicit Model.Value when
// set, otherwise the class name.
func (c *Class) ModelName() string {
	if c == nil {
		return ""
	}
	if value := strings.TrimSpace(c.Model.Value); value != "" {
		return value
	}
	return strings.TrimSpace(c.Name)
}

// HasOne returns a hasOne association config targeting model.
func HasOne(model string) *AssociationConfig {
	return &AssociationConfig{Kind: KindHasOne, Model: model}
}

// HasMany returns a hasMany association config targeting model.
func HasMany(model string) *AssociationConfig {
	return &AssociationConfig{Kind: KindHasMany, Model: model}
}

// BelongsTo returns a belongsTo association config targeting model.
func BelongsTo(model string) *AssociationConfig {
	return &AssociationConfig{Kind: KindBelongsTo, Model: model}
}

// To returns a copy of the association that targets class instead of an
// explicit model name.
func (a AssociationConfig) To(class *Class) *AssociationConfig {
	a.Class = class
	a.Model = ""
	return &a
}
