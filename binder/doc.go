// Package binder implements the schema classification, type-resolution, and
// policy-cascade engine of oasbind.
//
// Bind walks a spec.Document once, synchronously, and produces an immutable
// DescriptorSet: classified schema nodes, conflict-free type references,
// polymorphic union configurations, cascading cross-cutting policy
// configurations, and per-operation handler descriptors. The input document
// is never mutated and no I/O occurs; loading belongs to the spec package and
// rendering to an external emission layer.
//
// All decisions are deterministic: map traversals are sorted, declared
// property order is honored where the document recorded it, and naming
// conflicts resolve the same way on every run. Binding the same document
// twice yields identical descriptor sets.
//
// The conflict registry and per-policy-name caches are scoped to one Bind
// call. They are not shared across runs; concurrent Bind calls on separate
// documents need no coordination.
package binder
