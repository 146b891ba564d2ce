package binder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasbind/binderrors"
	"github.com/erraggy/oasbind/spec"
)

const petstoreYAML = `
openapi: 3.0.3
info:
  title: Petstore
  version: 1.0.0
x-cache-expiration: 300
paths:
  /pets:
    x-cache-policy: pets
    x-cache-expiration: 60
    get:
      operationId: listPets
      x-cache-tags: [hot]
      parameters:
        - name: limit
          in: query
          schema:
            type: integer
            format: int32
      responses:
        "200":
          description: pets
          content:
            application/json:
              schema:
                type: array
                items:
                  $ref: "#/components/schemas/Pet"
    post:
      operationId: createPet
      security:
        - oauth2: [write, read]
      requestBody:
        required: true
        content:
          application/json:
            schema:
              $ref: "#/components/schemas/Pet"
      responses:
        "201":
          description: created
          content:
            application/json:
              schema:
                $ref: "#/components/schemas/Pet"
components:
  securitySchemes:
    oauth2:
      type: oauth2
      flows:
        clientCredentials:
          tokenUrl: https://auth.example.com/token
          scopes:
            read: read pets
            write: write pets
  schemas:
    Pet:
      type: object
      required: [name]
      properties:
        name:
          type: string
        status:
          $ref: "#/components/schemas/Status"
    Status:
      type: string
      enum: [available, sold]
    Animal:
      oneOf:
        - $ref: "#/components/schemas/Cat"
        - $ref: "#/components/schemas/Dog"
    Cat:
      type: object
      properties:
        kind:
          type: string
          enum: [cat]
        whiskers:
          type: boolean
    Dog:
      type: object
      properties:
        kind:
          type: string
          enum: [dog]
        goodBoy:
          type: boolean
`

func TestBindPetstoreEndToEnd(t *testing.T) {
	doc, err := spec.LoadBytes([]byte(petstoreYAML))
	require.NoError(t, err)

	set, err := Bind(doc)
	require.NoError(t, err)
	assert.True(t, set.Success)
	assert.NotZero(t, set.BindTime)

	// Cat and Dog are claimed by the Animal union; Pet and Status stand alone.
	require.Len(t, set.Schemas, 3)
	assert.Equal(t, "Animal", set.Schemas[0].Name)
	assert.Equal(t, "Pet", set.Schemas[1].Name)
	assert.Equal(t, "Status", set.Schemas[2].Name)

	// Declared property order survives the YAML round trip.
	pet := set.Schema("Pet")
	require.Len(t, pet.Properties, 2)
	assert.Equal(t, "name", pet.Properties[0].Name)
	assert.Equal(t, "status", pet.Properties[1].Name)

	// The union discriminator is auto-detected from the variant literals.
	union := set.Union("Animal")
	require.NotNil(t, union)
	assert.Equal(t, "kind", union.DiscriminatorProperty)
	assert.False(t, union.IsDiscriminatorExplicit)

	// listPets: cache cascade picks the path expiration over the document one.
	list := set.Handler("ListPets")
	require.NotNil(t, list)
	assert.Equal(t, "pets", list.CachePolicy)
	require.Len(t, set.CachePolicies, 1)
	assert.Equal(t, 60, set.CachePolicies[0].ExpirationSeconds)
	assert.Equal(t, []string{"hot"}, set.CachePolicies[0].Tags)
	require.NotNil(t, list.ResultType.Elem)
	assert.Equal(t, "Pet", list.ResultType.Elem.Name)

	// createPet: scoped security aggregates combined plus single-scope policies.
	create := set.Handler("CreatePet")
	require.NotNil(t, create)
	require.Len(t, create.Security, 1)
	assert.Equal(t, "oauth2:read+write", create.Security[0].PolicyName)
	require.Len(t, set.SecurityPolicies, 3)

	require.Len(t, set.SecuritySchemes, 1)
	assert.Equal(t, "oauth2", set.SecuritySchemes[0].Type)
}

func TestBindIsRepeatable(t *testing.T) {
	doc, err := spec.LoadBytes([]byte(petstoreYAML))
	require.NoError(t, err)

	first, err := Bind(doc)
	require.NoError(t, err)
	second, err := Bind(doc)
	require.NoError(t, err)

	assert.Equal(t, first.Schemas, second.Schemas)
	assert.Equal(t, first.Unions, second.Unions)
	assert.Equal(t, first.Handlers, second.Handlers)
	assert.Equal(t, first.CachePolicies, second.CachePolicies)
	assert.Equal(t, first.SecurityPolicies, second.SecurityPolicies)
}

func TestBindNilDocument(t *testing.T) {
	_, err := Bind(nil)
	var inputErr *binderrors.InputError
	require.ErrorAs(t, err, &inputErr)
}

func TestBindOptionValidation(t *testing.T) {
	doc := &spec.Document{OpenAPI: "3.0.3"}

	_, err := Bind(doc, WithTypePrefix(""))
	var cfgErr *binderrors.ConfigError
	require.ErrorAs(t, err, &cfgErr)

	_, err = Bind(doc, WithLogger(nil))
	require.ErrorAs(t, err, &cfgErr)
}

func TestBindCustomTypePrefix(t *testing.T) {
	doc := &spec.Document{
		OpenAPI: "3.0.3",
		Components: &spec.Components{
			Schemas: map[string]*spec.Schema{
				"String": {Type: "object", Properties: map[string]*spec.Schema{"value": {Type: "string"}}},
			},
		},
	}

	set, err := Bind(doc, WithTypePrefix("Gen"))
	require.NoError(t, err)
	require.Len(t, set.Schemas, 1)
	assert.Equal(t, "GenString", set.Schemas[0].Name)
	assert.Equal(t, "String", set.Schemas[0].RawName)
}

func TestBindFailsOnBrokenReference(t *testing.T) {
	doc := &spec.Document{
		OpenAPI: "3.0.3",
		Components: &spec.Components{
			Schemas: map[string]*spec.Schema{
				"Pet": {
					Type: "object",
					Properties: map[string]*spec.Schema{
						"owner": {Ref: "#/components/schemas/Missing"},
					},
				},
			},
		},
	}

	_, err := Bind(doc)
	var refErr *binderrors.ReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "#/components/schemas/Missing", refErr.Ref)
}
