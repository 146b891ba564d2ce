package binder

import (
	"sync"

	"github.com/erraggy/oasbind/binderrors"
	"github.com/erraggy/oasbind/internal/naming"
	"github.com/erraggy/oasbind/spec"
)

// Registry maps raw schema names to canonical, conflict-free type names for
// the duration of one bind run. The first occurrence of a raw name registers
// its canonical name; every later resolution of the same raw name returns the
// identical result (resolve is idempotent per run).
//
// The registry is the only mutable shared structure of the schema pipeline.
// A mutex serializes writes so callers may parallelize read-only document
// traversal without extra coordination.
type Registry struct {
	mu         sync.Mutex
	doc        *spec.Document
	typePrefix string
	canonical  map[string]string
	taken      map[string]bool
}

func newRegistry(doc *spec.Document, typePrefix string) *Registry {
	return &Registry{
		doc:        doc,
		typePrefix: typePrefix,
		canonical:  make(map[string]string),
		taken:      make(map[string]bool),
	}
}

// Resolve maps a raw schema name to a TypeReference with a canonical name.
// Nullability comes from the call site's required flag, never from the
// registry entry, so one raw name can serve both optional and required
// call sites.
func (r *Registry) Resolve(raw string, required bool) TypeReference {
	return TypeReference{
		Name:        r.canonicalName(raw),
		Nullable:    !required,
		IsReference: true,
	}
}

// ResolveRef dereferences a local schema reference and resolves its name.
// Fails with a binderrors.ReferenceError when the reference does not point at
// an existing component schema.
func (r *Registry) ResolveRef(ref string, required bool) (TypeReference, error) {
	name, ok := spec.SchemaRefName(ref)
	if !ok {
		return TypeReference{}, &binderrors.ReferenceError{Ref: ref, Message: "not a local schema reference"}
	}
	target, err := r.doc.ResolveSchema(ref)
	if err != nil {
		return TypeReference{}, err
	}
	// Follow alias chains so a reference that ultimately lands on an enum is
	// still treated as one.
	resolved, err := r.doc.DerefSchema(target)
	if err != nil {
		return TypeReference{}, err
	}
	result := r.Resolve(name, required)
	// Enum references keep their canonical name but are value types.
	if resolved != nil && len(resolved.Enum) > 0 {
		result.IsReference = false
	}
	return result, nil
}

// CanonicalName returns the canonical name for a raw schema name,
// registering it on first sight.
func (r *Registry) CanonicalName(raw string) string {
	return r.canonicalName(raw)
}

func (r *Registry) canonicalName(raw string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if name, ok := r.canonical[raw]; ok {
		return name
	}

	name := naming.SanitizeTypeName(raw)
	if naming.IsReservedTypeName(name) {
		// Shadowing a basic-type token would break emitted code; the
		// enclosing context name disambiguates.
		name = r.typePrefix + name
	}
	name = naming.Dedupe(name, r.taken)

	r.canonical[raw] = name
	r.taken[name] = true
	return name
}

// Claim reserves a canonical name that was not derived from a raw schema
// name, such as a promoted inline record. Returns the possibly suffixed name
// actually reserved.
func (r *Registry) Claim(name string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	name = naming.SanitizeTypeName(name)
	if naming.IsReservedTypeName(name) {
		name = r.typePrefix + name
	}
	name = naming.Dedupe(name, r.taken)
	r.taken[name] = true
	return name
}
