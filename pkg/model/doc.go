// Package model defines the dialect-neutral model descriptor consumed by the
// renderers. Builders reside in internal/model but return the types defined
// here.
//
// A ModelDescriptor carries the external model name, an optional identifier
// property, CRUD method bindings, a paging flag, the ordered field list,
// validation rules tagged with their target field, and associations. An
// Association is a tagged variant: Kind selects which of the HasOne, HasMany
// or BelongsTo payloads is populated. Association targets are plain model
// names resolved once at build time, so descriptors never hold live class
// references and self-referencing models need no special casing.
//
// Builders reject malformed class descriptors with a *MetadataError, which
// matches ErrInvalidMetadata through errors.Is.
package model
