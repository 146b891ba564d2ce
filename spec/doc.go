// Package spec defines the in-memory OpenAPI 3.x document model consumed by
// the binder, along with YAML/JSON loading and local $ref resolution.
//
// The model is read-only input for the engine: no binder component mutates a
// Document after it is loaded or constructed. Specification extensions
// (fields starting with "x-") are captured verbatim in each node's Extra map
// and read back through the typed accessors in extensions.go.
//
// Only references into the local document ("#/components/...") are resolved.
// External and relative document references are out of scope; resolving one
// fails with a binderrors.ReferenceError.
package spec
