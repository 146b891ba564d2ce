package spec

import (
	"strings"

	"github.com/erraggy/oasbind/binderrors"
)

// MaxRefDepth is the maximum depth allowed for chained $ref resolution.
// This prevents unbounded loops on circular (or absurdly nested) references.
const MaxRefDepth = 100

// Local reference prefixes for the component collections the binder consumes.
const (
	schemaRefPrefix      = "#/components/schemas/"
	parameterRefPrefix   = "#/components/parameters/"
	requestBodyRefPrefix = "#/components/requestBodies/"
	responseRefPrefix    = "#/components/responses/"
)

// SchemaRefName extracts the schema name from a local schema reference.
// Returns false when ref does not point into #/components/schemas/.
func SchemaRefName(ref string) (string, bool) {
	if !strings.HasPrefix(ref, schemaRefPrefix) {
		return "", false
	}
	name := strings.TrimPrefix(ref, schemaRefPrefix)
	if name == "" || strings.Contains(name, "/") {
		return "", false
	}
	return name, true
}

// SchemaRef builds a local reference string for a named component schema.
func SchemaRef(name string) string {
	return schemaRefPrefix + name
}

// ResolveSchema resolves a local schema reference to its definition.
func (d *Document) ResolveSchema(ref string) (*Schema, error) {
	name, ok := SchemaRefName(ref)
	if !ok {
		return nil, &binderrors.ReferenceError{Ref: ref, Message: "not a local schema reference"}
	}
	if d == nil || d.Components == nil {
		return nil, &binderrors.ReferenceError{Ref: ref, Message: "document has no components"}
	}
	schema, ok := d.Components.Schemas[name]
	if !ok || schema == nil {
		return nil, &binderrors.ReferenceError{Ref: ref, Message: "no such schema"}
	}
	return schema, nil
}

// DerefSchema follows $ref chains until a concrete schema is reached.
// A nil schema resolves to nil; a broken or overly deep chain fails with a
// binderrors.ReferenceError.
func (d *Document) DerefSchema(s *Schema) (*Schema, error) {
	for depth := 0; s != nil && s.Ref != ""; depth++ {
		if depth >= MaxRefDepth {
			return nil, &binderrors.ReferenceError{Ref: s.Ref, Message: "reference chain too deep"}
		}
		resolved, err := d.ResolveSchema(s.Ref)
		if err != nil {
			return nil, err
		}
		s = resolved
	}
	return s, nil
}

// ResolveParameter resolves a local parameter reference to its definition.
func (d *Document) ResolveParameter(ref string) (*Parameter, error) {
	name, ok := componentName(ref, parameterRefPrefix)
	if !ok {
		return nil, &binderrors.ReferenceError{Ref: ref, Message: "not a local parameter reference"}
	}
	if d == nil || d.Components == nil || d.Components.Parameters[name] == nil {
		return nil, &binderrors.ReferenceError{Ref: ref, Message: "no such parameter"}
	}
	return d.Components.Parameters[name], nil
}

// DerefParameter resolves a parameter's $ref, if any.
func (d *Document) DerefParameter(p *Parameter) (*Parameter, error) {
	if p == nil || p.Ref == "" {
		return p, nil
	}
	return d.ResolveParameter(p.Ref)
}

// ResolveRequestBody resolves a local request body reference to its definition.
func (d *Document) ResolveRequestBody(ref string) (*RequestBody, error) {
	name, ok := componentName(ref, requestBodyRefPrefix)
	if !ok {
		return nil, &binderrors.ReferenceError{Ref: ref, Message: "not a local request body reference"}
	}
	if d == nil || d.Components == nil || d.Components.RequestBodies[name] == nil {
		return nil, &binderrors.ReferenceError{Ref: ref, Message: "no such request body"}
	}
	return d.Components.RequestBodies[name], nil
}

// DerefRequestBody resolves a request body's $ref, if any.
func (d *Document) DerefRequestBody(rb *RequestBody) (*RequestBody, error) {
	if rb == nil || rb.Ref == "" {
		return rb, nil
	}
	return d.ResolveRequestBody(rb.Ref)
}

// ResolveResponse resolves a local response reference to its definition.
func (d *Document) ResolveResponse(ref string) (*Response, error) {
	name, ok := componentName(ref, responseRefPrefix)
	if !ok {
		return nil, &binderrors.ReferenceError{Ref: ref, Message: "not a local response reference"}
	}
	if d == nil || d.Components == nil || d.Components.Responses[name] == nil {
		return nil, &binderrors.ReferenceError{Ref: ref, Message: "no such response"}
	}
	return d.Components.Responses[name], nil
}

// DerefResponse resolves a response's $ref, if any.
func (d *Document) DerefResponse(r *Response) (*Response, error) {
	if r == nil || r.Ref == "" {
		return r, nil
	}
	return d.ResolveResponse(r.Ref)
}

func componentName(ref, prefix string) (string, bool) {
	if !strings.HasPrefix(ref, prefix) {
		return "", false
	}
	name := strings.TrimPrefix(ref, prefix)
	if name == "" || strings.Contains(name, "/") {
		return "", false
	}
	return name, true
}
