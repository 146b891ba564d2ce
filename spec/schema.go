package spec

import (
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasbind/internal/maputil"
)

// Schema represents a JSON Schema as used by OAS 3.0 and 3.1
// (JSON Schema Draft 2020-12 subset relevant to code generation).
type Schema struct {
	Ref string `yaml:"$ref,omitempty" json:"$ref,omitempty"`

	// Metadata
	Title       string `yaml:"title,omitempty" json:"title,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Default     any    `yaml:"default,omitempty" json:"default,omitempty"`

	// Type validation
	Type  any    `yaml:"type,omitempty" json:"type,omitempty"` // string or []string (OAS 3.1+)
	Enum  []any  `yaml:"enum,omitempty" json:"enum,omitempty"`
	Const any    `yaml:"const,omitempty" json:"const,omitempty"` // JSON Schema Draft 2020-12
	Format string `yaml:"format,omitempty" json:"format,omitempty"`

	// Array validation
	Items       *Schema   `yaml:"items,omitempty" json:"items,omitempty"`
	PrefixItems []*Schema `yaml:"prefixItems,omitempty" json:"prefixItems,omitempty"` // JSON Schema Draft 2020-12

	// Object validation
	Properties           map[string]*Schema `yaml:"properties,omitempty" json:"properties,omitempty"`
	Required             []string           `yaml:"required,omitempty" json:"required,omitempty"`
	AdditionalProperties any                `yaml:"additionalProperties,omitempty" json:"additionalProperties,omitempty"` // *Schema or bool

	// Schema composition
	AllOf []*Schema `yaml:"allOf,omitempty" json:"allOf,omitempty"`
	AnyOf []*Schema `yaml:"anyOf,omitempty" json:"anyOf,omitempty"`
	OneOf []*Schema `yaml:"oneOf,omitempty" json:"oneOf,omitempty"`
	Not   *Schema   `yaml:"not,omitempty" json:"not,omitempty"`

	// OAS specific
	Nullable      bool           `yaml:"nullable,omitempty" json:"nullable,omitempty"` // OAS 3.0 only (type: [T, "null"] in 3.1+)
	Discriminator *Discriminator `yaml:"discriminator,omitempty" json:"discriminator,omitempty"`
	ReadOnly      bool           `yaml:"readOnly,omitempty" json:"readOnly,omitempty"`
	WriteOnly     bool           `yaml:"writeOnly,omitempty" json:"writeOnly,omitempty"`
	Example       any            `yaml:"example,omitempty" json:"example,omitempty"`
	Deprecated    bool           `yaml:"deprecated,omitempty" json:"deprecated,omitempty"`

	// PropertyOrder records the declared order of the properties map as it
	// appeared in the source text. Documents constructed in code may leave it
	// empty; DeclaredPropertyOrder falls back to sorted names in that case.
	PropertyOrder []string `yaml:"-" json:"-"`

	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any `yaml:",inline" json:"-"`
}

// Discriminator represents a discriminator for polymorphism (OAS 3.0+)
type Discriminator struct {
	PropertyName string            `yaml:"propertyName" json:"propertyName"`
	Mapping      map[string]string `yaml:"mapping,omitempty" json:"mapping,omitempty"`
	Extra        map[string]any    `yaml:",inline" json:"-"`
}

// schemaAlias avoids recursing into UnmarshalYAML during node decoding.
type schemaAlias Schema

// UnmarshalYAML decodes the schema and records the declared property order
// from the mapping node, which plain struct decoding would discard.
func (s *Schema) UnmarshalYAML(node *yaml.Node) error {
	var alias schemaAlias
	if err := node.Decode(&alias); err != nil {
		return err
	}
	*s = Schema(alias)

	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value != "properties" {
			continue
		}
		props := node.Content[i+1]
		if props.Kind != yaml.MappingNode {
			break
		}
		for j := 0; j+1 < len(props.Content); j += 2 {
			s.PropertyOrder = append(s.PropertyOrder, props.Content[j].Value)
		}
		break
	}
	return nil
}

// DeclaredPropertyOrder returns the property names in declared order when the
// document was parsed from text, falling back to lexicographic order for
// documents constructed in code. Names without a matching property entry are
// dropped; properties missing from the recorded order are appended sorted so
// every property appears exactly once.
func (s *Schema) DeclaredPropertyOrder() []string {
	if s == nil || len(s.Properties) == 0 {
		return nil
	}
	if len(s.PropertyOrder) == 0 {
		return maputil.SortedKeys(s.Properties)
	}

	seen := make(map[string]bool, len(s.PropertyOrder))
	order := make([]string, 0, len(s.Properties))
	for _, name := range s.PropertyOrder {
		if _, ok := s.Properties[name]; ok && !seen[name] {
			order = append(order, name)
			seen[name] = true
		}
	}
	for _, name := range maputil.SortedKeys(s.Properties) {
		if !seen[name] {
			order = append(order, name)
		}
	}
	return order
}

// IsRequired reports whether the named property is listed in Required.
func (s *Schema) IsRequired(property string) bool {
	if s == nil {
		return false
	}
	for _, r := range s.Required {
		if r == property {
			return true
		}
	}
	return false
}

// AdditionalPropertiesSchema returns the additionalProperties schema when one
// is declared (nil for the boolean forms).
func (s *Schema) AdditionalPropertiesSchema() *Schema {
	if s == nil {
		return nil
	}
	if ap, ok := s.AdditionalProperties.(*Schema); ok {
		return ap
	}
	return nil
}
