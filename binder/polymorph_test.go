package binder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasbind/spec"
)

func TestUnionExplicitDiscriminator(t *testing.T) {
	set := bindSingle(t, map[string]*spec.Schema{
		"Pet": {
			OneOf: []*spec.Schema{
				{Ref: "#/components/schemas/Cat"},
				{Ref: "#/components/schemas/Dog"},
			},
			Discriminator: &spec.Discriminator{
				PropertyName: "petType",
				Mapping: map[string]string{
					"cat": "#/components/schemas/Cat",
					"dog": "#/components/schemas/Dog",
				},
			},
		},
		"Cat": {Type: "object", Properties: map[string]*spec.Schema{"petType": {Type: "string"}}},
		"Dog": {Type: "object", Properties: map[string]*spec.Schema{"petType": {Type: "string"}}},
	})

	union := set.Union("Pet")
	require.NotNil(t, union)
	assert.Equal(t, "petType", union.DiscriminatorProperty)
	assert.True(t, union.IsDiscriminatorExplicit)
	assert.False(t, union.UsesCustomConverter)
	assert.Equal(t, []Variant{
		{TypeName: "Cat", DiscriminatorValue: "cat"},
		{TypeName: "Dog", DiscriminatorValue: "dog"},
	}, union.Variants)
}

func TestUnionExplicitDiscriminatorBareNameMapping(t *testing.T) {
	set := bindSingle(t, map[string]*spec.Schema{
		"Pet": {
			OneOf: []*spec.Schema{
				{Ref: "#/components/schemas/Cat"},
				{Ref: "#/components/schemas/Dog"},
			},
			Discriminator: &spec.Discriminator{
				PropertyName: "petType",
				Mapping: map[string]string{
					"feline": "Cat",
					"canine": "#/components/schemas/Dog",
				},
			},
		},
		"Cat": {Type: "object", Properties: map[string]*spec.Schema{"petType": {Type: "string"}}},
		"Dog": {Type: "object", Properties: map[string]*spec.Schema{"petType": {Type: "string"}}},
	})

	union := set.Union("Pet")
	require.NotNil(t, union)
	// Mapping targets given as bare component names match the same as full
	// references.
	assert.Equal(t, []Variant{
		{TypeName: "Cat", DiscriminatorValue: "feline"},
		{TypeName: "Dog", DiscriminatorValue: "canine"},
	}, union.Variants)
}

func TestUnionExplicitDiscriminatorWithoutMapping(t *testing.T) {
	set := bindSingle(t, map[string]*spec.Schema{
		"Event": {
			OneOf: []*spec.Schema{
				{Ref: "#/components/schemas/UserCreated"},
				{Ref: "#/components/schemas/UserDeleted"},
			},
			Discriminator: &spec.Discriminator{PropertyName: "kind"},
		},
		"UserCreated": {Type: "object", Properties: map[string]*spec.Schema{"kind": {Type: "string"}}},
		"UserDeleted": {Type: "object", Properties: map[string]*spec.Schema{"kind": {Type: "string", Const: "deleted"}}},
	})

	union := set.Union("Event")
	require.NotNil(t, union)
	// Missing mapping entries derive the literal from the schema name.
	assert.Equal(t, []Variant{
		{TypeName: "UserCreated", DiscriminatorValue: "user_created"},
		{TypeName: "UserDeleted", DiscriminatorValue: "user_deleted"},
	}, union.Variants)
}

func TestUnionAutoDetectsDiscriminator(t *testing.T) {
	set := bindSingle(t, map[string]*spec.Schema{
		"Animal": {
			OneOf: []*spec.Schema{
				{Ref: "#/components/schemas/Cat"},
				{Ref: "#/components/schemas/Dog"},
				{Ref: "#/components/schemas/Bird"},
			},
		},
		"Cat": {
			Type: "object",
			Properties: map[string]*spec.Schema{
				"name": {Type: "string"},
				"kind": {Type: "string", Enum: []any{"cat"}},
			},
			PropertyOrder: []string{"name", "kind"},
		},
		"Dog": {
			Type: "object",
			Properties: map[string]*spec.Schema{
				"name": {Type: "string"},
				"kind": {Type: "string", Const: "dog"},
			},
			PropertyOrder: []string{"name", "kind"},
		},
		"Bird": {
			Type: "object",
			Properties: map[string]*spec.Schema{
				"name": {Type: "string"},
				"kind": {Type: "string", Enum: []any{"bird"}},
			},
			PropertyOrder: []string{"name", "kind"},
		},
	})

	union := set.Union("Animal")
	require.NotNil(t, union)
	assert.Equal(t, "kind", union.DiscriminatorProperty)
	assert.False(t, union.IsDiscriminatorExplicit)
	assert.False(t, union.UsesCustomConverter)
	assert.Equal(t, []Variant{
		{TypeName: "Cat", DiscriminatorValue: "cat"},
		{TypeName: "Dog", DiscriminatorValue: "dog"},
		{TypeName: "Bird", DiscriminatorValue: "bird"},
	}, union.Variants)
}

func TestUnionAutoDetectSkipsNonDistinctLiterals(t *testing.T) {
	set := bindSingle(t, map[string]*spec.Schema{
		"Shape": {
			OneOf: []*spec.Schema{
				{Ref: "#/components/schemas/Circle"},
				{Ref: "#/components/schemas/Square"},
			},
		},
		"Circle": {
			Type: "object",
			Properties: map[string]*spec.Schema{
				"version": {Type: "string", Const: "v1"},
				"shape":   {Type: "string", Const: "circle"},
			},
			PropertyOrder: []string{"version", "shape"},
		},
		"Square": {
			Type: "object",
			Properties: map[string]*spec.Schema{
				"version": {Type: "string", Const: "v1"},
				"shape":   {Type: "string", Const: "square"},
			},
			PropertyOrder: []string{"version", "shape"},
		},
	})

	union := set.Union("Shape")
	require.NotNil(t, union)
	// "version" is shared by both variants with the same literal, so the scan
	// moves on to "shape".
	assert.Equal(t, "shape", union.DiscriminatorProperty)
}

func TestUnionFallsBackToCustomConverter(t *testing.T) {
	set := bindSingle(t, map[string]*spec.Schema{
		"Value": {
			OneOf: []*spec.Schema{
				{Ref: "#/components/schemas/Left"},
				{Ref: "#/components/schemas/Right"},
			},
		},
		"Left":  {Type: "object", Properties: map[string]*spec.Schema{"left": {Type: "string"}}},
		"Right": {Type: "object", Properties: map[string]*spec.Schema{"right": {Type: "string"}}},
	})

	union := set.Union("Value")
	require.NotNil(t, union)
	assert.Empty(t, union.DiscriminatorProperty)
	assert.True(t, union.UsesCustomConverter)
	assert.Equal(t, []Variant{{TypeName: "Left"}, {TypeName: "Right"}}, union.Variants)
	assert.Equal(t, 1, set.WarningCount)
}

func TestUnionVariantsNestUnderBase(t *testing.T) {
	set := bindSingle(t, map[string]*spec.Schema{
		"Pet": {
			OneOf: []*spec.Schema{
				{Ref: "#/components/schemas/Cat"},
				{Ref: "#/components/schemas/Dog"},
			},
			Discriminator: &spec.Discriminator{PropertyName: "petType"},
		},
		"Cat": {Type: "object", Properties: map[string]*spec.Schema{"petType": {Type: "string", Const: "cat"}}},
		"Dog": {Type: "object", Properties: map[string]*spec.Schema{"petType": {Type: "string", Const: "dog"}}},
	})

	// Claimed variants are not emitted as top-level schemas.
	assert.Nil(t, set.Schema("Cat"))
	assert.Nil(t, set.Schema("Dog"))

	pet := set.Schema("Pet")
	require.NotNil(t, pet)
	assert.Equal(t, KindPolymorphic, pet.Kind)
	require.Len(t, pet.Nested, 2)
	assert.Equal(t, "Cat", pet.Nested[0].Name)
	assert.Equal(t, "Dog", pet.Nested[1].Name)
}
