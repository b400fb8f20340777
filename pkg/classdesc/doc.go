// Package classdesc describes the server-side data classes modelgen consumes.
// A Class is the explicit, annotation-free configuration of one data-bearing
// type: its declared properties in declaration order, per-property field,
// validation, and association configuration, plus model-level settings such
// as the external model name, CRUD method bindings, and paging.
//
// Classes can be assembled by hand with New, extracted from Go struct types
// with FromType (using `modelgen` struct tags and the ModelConfigurer
// interface), or produced by the format adapters under pkg/adapters, which
// normalise YAML and OpenAPI documents into a Catalog.
//
// Every Class carries an identity token assigned at construction. Caches key
// on that identity, never on the shape of the class.
package classdesc
