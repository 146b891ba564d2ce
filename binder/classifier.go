package binder

import (
	"fmt"

	"github.com/erraggy/oasbind/internal/maputil"
	"github.com/erraggy/oasbind/internal/naming"
	"github.com/erraggy/oasbind/internal/schemautil"
	"github.com/erraggy/oasbind/spec"
)

// Classify assigns exactly one artifact kind to a schema. References are
// dereferenced first; a reference itself is never classified. The function is
// pure: the same document and schema always yield the same kind.
func Classify(doc *spec.Document, schema *spec.Schema) (SchemaKind, error) {
	schema, err := doc.DerefSchema(schema)
	if err != nil {
		return KindScalar, err
	}
	if schema == nil {
		return KindScalar, nil
	}

	switch {
	case len(schema.PrefixItems) > 0:
		return KindTuple, nil
	case isUnion(schema):
		return KindPolymorphic, nil
	case schemautil.PrimaryType(schema) == "array":
		return KindArray, nil
	case len(schema.Enum) > 0 && isStringy(schema):
		return KindEnum, nil
	case len(schema.Properties) > 0 || schemautil.PrimaryType(schema) == "object":
		return KindObject, nil
	default:
		return KindScalar, nil
	}
}

// isUnion reports whether the schema is a union-of-variants composition:
// a oneOf, or an anyOf of two or more alternatives.
func isUnion(schema *spec.Schema) bool {
	return len(schema.OneOf) > 0 || len(schema.AnyOf) >= 2
}

// isStringy reports whether the schema's literals are string-valued. Enums
// without an explicit type imply string.
func isStringy(schema *spec.Schema) bool {
	t := schemautil.PrimaryType(schema)
	return t == "" || t == "string"
}

// unionAlternatives returns the variant schemas of a union composition.
func unionAlternatives(schema *spec.Schema) []*spec.Schema {
	if len(schema.OneOf) > 0 {
		return schema.OneOf
	}
	return schema.AnyOf
}

// bindSchemas classifies every component schema and builds its SchemaNode.
// Union variants are claimed first so they nest under their base type instead
// of being emitted independently.
func (b *binding) bindSchemas() error {
	if b.doc.Components == nil || len(b.doc.Components.Schemas) == 0 {
		return nil
	}
	names := maputil.SortedKeys(b.doc.Components.Schemas)

	for _, name := range names {
		schema := b.doc.Components.Schemas[name]
		kind, err := Classify(b.doc, schema)
		if err != nil {
			return err
		}
		if kind != KindPolymorphic {
			continue
		}
		resolved, err := b.doc.DerefSchema(schema)
		if err != nil {
			return err
		}
		for _, alt := range unionAlternatives(resolved) {
			if variantName, ok := spec.SchemaRefName(alt.Ref); ok {
				b.claimed[variantName] = name
			}
		}
	}

	for _, name := range names {
		if base, ok := b.claimed[name]; ok {
			b.logger.Debug("schema claimed as union variant", "schema", name, "base", base)
			continue
		}
		schema := b.doc.Components.Schemas[name]
		if schema.Deprecated && !b.cfg.includeDeprecated {
			b.addIssue("components.schemas."+name, "deprecated schema skipped", SeverityInfo)
			continue
		}
		node, err := b.buildSchemaNode(name, schema)
		if err != nil {
			return err
		}
		b.set.Schemas = append(b.set.Schemas, node)
	}
	return nil
}

// buildSchemaNode builds the descriptor for one named component schema.
func (b *binding) buildSchemaNode(rawName string, schema *spec.Schema) (SchemaNode, error) {
	resolved, err := b.doc.DerefSchema(schema)
	if err != nil {
		return SchemaNode{}, err
	}
	kind, err := Classify(b.doc, resolved)
	if err != nil {
		return SchemaNode{}, err
	}

	node := SchemaNode{
		Name:        b.registry.CanonicalName(rawName),
		RawName:     rawName,
		Kind:        kind,
		Description: resolved.Description,
		Deprecated:  resolved.Deprecated,
	}
	b.logger.Debug("classified schema", "schema", rawName, "kind", kind.String())

	switch kind {
	case KindObject:
		err = b.fillObjectNode(&node, resolved)
	case KindEnum:
		node.Members = buildEnumMembers(resolved)
	case KindArray:
		err = b.fillArrayNode(&node, resolved)
	case KindTuple:
		err = b.fillTupleNode(&node, resolved)
	case KindPolymorphic:
		err = b.fillUnionNode(&node, resolved)
	case KindScalar:
		ref := scalarRef(resolved, true)
		node.Element = &ref
	}
	if err != nil {
		return SchemaNode{}, err
	}
	return node, nil
}

// fillObjectNode populates the ordered property list of an object node.
// Properties follow the schema's declared order when the source recorded one.
func (b *binding) fillObjectNode(node *SchemaNode, schema *spec.Schema) error {
	takenFields := make(map[string]bool)
	for _, propName := range schema.DeclaredPropertyOrder() {
		propSchema := schema.Properties[propName]
		required := schema.IsRequired(propName)

		fieldName := naming.Dedupe(naming.SanitizeFieldName(propName), takenFields)
		takenFields[fieldName] = true

		ref, err := b.typeRef(propSchema, required, node.Name+fieldName, &node.Nested)
		if err != nil {
			return err
		}

		prop := PropertyNode{
			Name:      propName,
			FieldName: fieldName,
			Type:      ref,
			Required:  required,
		}
		if resolved, err := b.doc.DerefSchema(propSchema); err == nil && resolved != nil {
			prop.Deprecated = resolved.Deprecated
			prop.Description = resolved.Description
		}
		node.Properties = append(node.Properties, prop)
	}
	return nil
}

// fillArrayNode resolves the element type, promoting inline object or enum
// items to a nested named type.
func (b *binding) fillArrayNode(node *SchemaNode, schema *spec.Schema) error {
	ref, err := b.typeRef(schema.Items, true, node.Name+"Item", &node.Nested)
	if err != nil {
		return err
	}
	node.Element = &ref
	return nil
}

// fillTupleNode resolves the fixed-position element types and, when a
// trailing items schema is present, the open-ended AdditionalItems list.
func (b *binding) fillTupleNode(node *SchemaNode, schema *spec.Schema) error {
	for i, item := range schema.PrefixItems {
		ref, err := b.typeRef(item, true, fmt.Sprintf("%sItem%d", node.Name, i+1), &node.Nested)
		if err != nil {
			return err
		}
		node.TupleElements = append(node.TupleElements, ref)
	}
	if schema.Items != nil {
		elem, err := b.typeRef(schema.Items, true, node.Name+"AdditionalItem", &node.Nested)
		if err != nil {
			return err
		}
		node.AdditionalItems = &TypeReference{Elem: &elem, IsReference: true}
	}
	return nil
}

// fillUnionNode analyzes the union composition and nests the claimed variant
// types under the base.
func (b *binding) fillUnionNode(node *SchemaNode, schema *spec.Schema) error {
	config, err := b.analyzeUnion(node.Name, schema)
	if err != nil {
		return err
	}
	b.set.Unions = append(b.set.Unions, config)

	for _, alt := range unionAlternatives(schema) {
		variantName, ok := spec.SchemaRefName(alt.Ref)
		if !ok {
			continue
		}
		variantSchema, err := b.doc.ResolveSchema(alt.Ref)
		if err != nil {
			return err
		}
		variantNode, err := b.buildSchemaNode(variantName, variantSchema)
		if err != nil {
			return err
		}
		node.Nested = append(node.Nested, variantNode)
	}
	return nil
}

// buildEnumMembers derives identifier-safe member names while preserving the
// exact wire literal, so decode(encode(value)) round-trips.
func buildEnumMembers(schema *spec.Schema) []EnumMember {
	taken := make(map[string]bool)
	members := make([]EnumMember, 0, len(schema.Enum))
	for _, literal := range schema.Enum {
		value := enumLiteralString(literal)
		name := naming.Dedupe(naming.EnumMemberName(value), taken)
		taken[name] = true
		members = append(members, EnumMember{Name: name, Value: value})
	}
	return members
}

func enumLiteralString(literal any) string {
	if s, ok := literal.(string); ok {
		return s
	}
	return fmt.Sprint(literal)
}

// typeRef resolves an arbitrary schema position (property, item, parameter,
// body) to a TypeReference. References resolve through the registry; inline
// objects and enums are promoted to nested named types under the given
// context name; everything else maps to a scalar token.
func (b *binding) typeRef(schema *spec.Schema, required bool, context string, nested *[]SchemaNode) (TypeReference, error) {
	if schema == nil {
		return TypeReference{Name: "any", Nullable: !required}, nil
	}

	if schema.Ref != "" {
		return b.registry.ResolveRef(schema.Ref, required)
	}

	kind, err := Classify(b.doc, schema)
	if err != nil {
		return TypeReference{}, err
	}

	switch kind {
	case KindArray:
		elem, err := b.typeRef(schema.Items, true, context+"Item", nested)
		if err != nil {
			return TypeReference{}, err
		}
		return TypeReference{Elem: &elem, Nullable: !required || schemautil.IsNullable(schema), IsReference: true}, nil

	case KindObject, KindEnum:
		name := b.registry.Claim(context)
		node := SchemaNode{
			Name:        name,
			Kind:        kind,
			Description: schema.Description,
			Deprecated:  schema.Deprecated,
		}
		if kind == KindObject {
			if err := b.fillObjectNode(&node, schema); err != nil {
				return TypeReference{}, err
			}
		} else {
			node.Members = buildEnumMembers(schema)
		}
		*nested = append(*nested, node)
		return TypeReference{
			Name:        name,
			Nullable:    !required || schemautil.IsNullable(schema),
			IsReference: kind == KindObject,
		}, nil

	default:
		return scalarRef(schema, required), nil
	}
}

// scalarRef maps a scalar schema to its language-neutral type token.
func scalarRef(schema *spec.Schema, required bool) TypeReference {
	nullable := !required || schemautil.IsNullable(schema)
	name := "any"

	switch schemautil.PrimaryType(schema) {
	case "string":
		switch schema.Format {
		case "date-time":
			name = "date-time"
		case "date":
			name = "date"
		case "byte", "binary":
			name = "binary"
		default:
			name = "string"
		}
	case "integer":
		if schema.Format == "int32" {
			name = "int32"
		} else {
			name = "int64"
		}
	case "number":
		if schema.Format == "float" {
			name = "float"
		} else {
			name = "double"
		}
	case "boolean":
		name = "boolean"
	}

	return TypeReference{Name: name, Nullable: nullable}
}
