package binder

import (
	"fmt"

	"github.com/erraggy/oasbind/internal/naming"
	"github.com/erraggy/oasbind/spec"
)

// analyzeUnion derives the decoding strategy for a union base type. The
// strategy ladder is fixed: an explicit discriminator declared on the base
// schema wins; otherwise a discriminator property is auto-detected from the
// variants; when neither applies, the union falls back to try-parse decoding
// with a custom converter.
func (b *binding) analyzeUnion(baseName string, schema *spec.Schema) (PolymorphicConfig, error) {
	config := PolymorphicConfig{BaseType: baseName}

	variants, err := b.unionVariants(baseName, schema)
	if err != nil {
		return PolymorphicConfig{}, err
	}

	if schema.Discriminator != nil && schema.Discriminator.PropertyName != "" {
		config.DiscriminatorProperty = schema.Discriminator.PropertyName
		config.IsDiscriminatorExplicit = true
		config.Variants = b.explicitVariants(schema, variants)
		return config, nil
	}

	if property, values, ok := b.detectDiscriminator(variants); ok {
		config.DiscriminatorProperty = property
		for i := range variants {
			variants[i].value = values[i]
		}
		config.Variants = descriptorVariants(variants)
		b.logger.Debug("auto-detected discriminator", "union", baseName, "property", property)
		return config, nil
	}

	config.UsesCustomConverter = true
	config.Variants = descriptorVariants(variants)
	b.addIssue("components.schemas."+baseName,
		"no discriminator property found, union decodes by trial", SeverityWarning)
	return config, nil
}

// unionVariant pairs a variant's resolved schema with its naming.
type unionVariant struct {
	rawName  string
	ref      string
	typeName string
	schema   *spec.Schema
	value    string
}

func (b *binding) unionVariants(baseName string, schema *spec.Schema) ([]unionVariant, error) {
	alternatives := unionAlternatives(schema)
	variants := make([]unionVariant, 0, len(alternatives))
	for i, alt := range alternatives {
		rawName, ok := spec.SchemaRefName(alt.Ref)
		if !ok {
			b.addIssue(fmt.Sprintf("components.schemas.%s[%d]", baseName, i),
				"union variant is not a component schema reference, skipped", SeverityWarning)
			continue
		}
		resolved, err := b.doc.ResolveSchema(alt.Ref)
		if err != nil {
			return nil, err
		}
		variants = append(variants, unionVariant{
			rawName:  rawName,
			ref:      alt.Ref,
			typeName: b.registry.CanonicalName(rawName),
			schema:   resolved,
		})
	}
	return variants, nil
}

// explicitVariants resolves discriminator values for a declared discriminator.
// The mapping wins when present; variants without a mapping entry derive their
// literal from the lower-snake form of the schema name. Mapping targets may be
// full references or bare component names, so both forms are indexed.
func (b *binding) explicitVariants(schema *spec.Schema, variants []unionVariant) []Variant {
	byRef := make(map[string]string, len(schema.Discriminator.Mapping))
	for value, ref := range schema.Discriminator.Mapping {
		byRef[ref] = value
		if name, ok := spec.SchemaRefName(ref); ok {
			byRef[name] = value
		}
	}

	result := make([]Variant, 0, len(variants))
	for _, v := range variants {
		value, ok := byRef[v.ref]
		if !ok {
			value, ok = byRef[v.rawName]
		}
		if !ok {
			value = naming.ToSnakeCase(v.rawName)
		}
		result = append(result, Variant{TypeName: v.typeName, DiscriminatorValue: value})
	}
	return result
}

// detectDiscriminator scans the first variant's properties in declared order
// and returns the first property that carries a distinct string literal in
// every variant. Literals come from const or a single-entry enum.
func (b *binding) detectDiscriminator(variants []unionVariant) (string, []string, bool) {
	if len(variants) == 0 {
		return "", nil, false
	}

	for _, property := range variants[0].schema.DeclaredPropertyOrder() {
		values := make([]string, 0, len(variants))
		seen := make(map[string]bool)
		qualifies := true
		for _, v := range variants {
			literal, ok := propertyLiteral(v.schema, property)
			if !ok || seen[literal] {
				qualifies = false
				break
			}
			seen[literal] = true
			values = append(values, literal)
		}
		if qualifies {
			return property, values, true
		}
	}
	return "", nil, false
}

// propertyLiteral extracts the fixed string literal of a property, from const
// or from an enum with exactly one entry.
func propertyLiteral(schema *spec.Schema, property string) (string, bool) {
	if schema == nil {
		return "", false
	}
	prop, ok := schema.Properties[property]
	if !ok || prop == nil {
		return "", false
	}
	if s, ok := prop.Const.(string); ok {
		return s, true
	}
	if len(prop.Enum) == 1 {
		if s, ok := prop.Enum[0].(string); ok {
			return s, true
		}
	}
	return "", false
}

func descriptorVariants(variants []unionVariant) []Variant {
	result := make([]Variant, 0, len(variants))
	for _, v := range variants {
		result = append(result, Variant{TypeName: v.typeName, DiscriminatorValue: v.value})
	}
	return result
}
