package model

import internalmodel "github.com/goliatone/go-modelgen/internal/model"

// FieldType re-exports the internal FieldType enumeration.
type FieldType = internalmodel.FieldType

const (
	FieldTypeAuto    = internalmodel.FieldTypeAuto
	FieldTypeString  = internalmodel.FieldTypeString
	FieldTypeInt     = internalmodel.FieldTypeInt
	FieldTypeFloat   = internalmodel.FieldTypeFloat
	FieldTypeBoolean = internalmodel.FieldTypeBoolean
	FieldTypeDate    = internalmodel.FieldTypeDate
)

const DefaultDateFormat = internalmodel.DefaultDateFormat

type AssociationKind = internalmodel.AssociationKind

const (
	AssociationHasOne    = internalmodel.AssociationHasOne
	AssociationHasMany   = internalmodel.AssociationHasMany
	AssociationBelongsTo = internalmodel.AssociationBelongsTo
)

const (
	ValidationPresence  = internalmodel.ValidationPresence
	ValidationLength    = internalmodel.ValidationLength
	ValidationEmail     = internalmodel.ValidationEmail
	ValidationFormat    = internalmodel.ValidationFormat
	ValidationInclusion = internalmodel.ValidationInclusion
	ValidationExclusion = internalmodel.ValidationExclusion
)

type Field = internalmodel.Field
type Association = internalmodel.Association
type HasOne = internalmodel.HasOne
type HasMany = internalmodel.HasMany
type BelongsTo = internalmodel.BelongsTo
type Param = internalmodel.Param
type ValidationRule = internalmodel.ValidationRule
type ModelDescriptor = internalmodel.ModelDescriptor

type MetadataError = internalmodel.MetadataError

var ErrInvalidMetadata = internalmodel.ErrInvalidMetadata

// IsMetadataError reports whether err wraps a *MetadataError.
func IsMetadataError(err error) bool {
	return internalmodel.IsMetadataError(err)
}

// Validate checks a descriptor that did not come from a Builder, such as one
// a caller assembled by hand or a decorator rewrote.
func Validate(desc ModelDescriptor) error {
	return internalmodel.Validate(desc)
}
