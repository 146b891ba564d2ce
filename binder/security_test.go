package binder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasbind/spec"
)

func TestSecurityScopeAggregation(t *testing.T) {
	doc := &spec.Document{
		OpenAPI: "3.0.3",
		Paths: spec.Paths{
			"/pets": {
				Post: &spec.Operation{
					OperationID: "createPet",
					Security: []spec.SecurityRequirement{
						{"oauth2": {"write", "read"}},
					},
				},
			},
		},
	}

	set := bindPaths(t, doc)

	// Combined policy plus one synthesized policy per scope, sorted by name.
	require.Len(t, set.SecurityPolicies, 3)
	assert.Equal(t, SecurityPolicy{Name: "oauth2:read", Scheme: "oauth2", Scopes: []string{"read"}}, set.SecurityPolicies[0])
	assert.Equal(t, SecurityPolicy{Name: "oauth2:read+write", Scheme: "oauth2", Scopes: []string{"read", "write"}}, set.SecurityPolicies[1])
	assert.Equal(t, SecurityPolicy{Name: "oauth2:write", Scheme: "oauth2", Scopes: []string{"write"}}, set.SecurityPolicies[2])

	handler := set.Handler("CreatePet")
	require.NotNil(t, handler)
	require.Len(t, handler.Security, 1)
	assert.Equal(t, "oauth2:read+write", handler.Security[0].PolicyName)
}

func TestSecurityDocumentDefaultApplies(t *testing.T) {
	doc := &spec.Document{
		OpenAPI:  "3.0.3",
		Security: []spec.SecurityRequirement{{"apiKey": nil}},
		Paths: spec.Paths{
			"/pets": {
				Get: &spec.Operation{OperationID: "listPets"},
			},
		},
	}

	set := bindPaths(t, doc)
	handler := set.Handler("ListPets")
	require.NotNil(t, handler)
	require.Len(t, handler.Security, 1)
	assert.Equal(t, "apiKey", handler.Security[0].Scheme)
	assert.Equal(t, "apiKey", handler.Security[0].PolicyName)
	assert.Empty(t, handler.Security[0].Scopes)
}

func TestSecurityOperationOverridesDocument(t *testing.T) {
	doc := &spec.Document{
		OpenAPI:  "3.0.3",
		Security: []spec.SecurityRequirement{{"apiKey": nil}},
		Paths: spec.Paths{
			"/public": {
				Get: &spec.Operation{
					OperationID: "getPublic",
					Security:    []spec.SecurityRequirement{},
				},
			},
			"/scoped": {
				Get: &spec.Operation{
					OperationID: "getScoped",
					Security:    []spec.SecurityRequirement{{"oauth2": {"read"}}},
				},
			},
		},
	}

	set := bindPaths(t, doc)

	// An explicit empty list opts the operation out of the document default.
	assert.Empty(t, set.Handler("GetPublic").Security)

	scoped := set.Handler("GetScoped")
	require.Len(t, scoped.Security, 1)
	assert.Equal(t, "oauth2:read", scoped.Security[0].PolicyName)
}

func TestSecurityDuplicateRequirementsDeduplicated(t *testing.T) {
	doc := &spec.Document{
		OpenAPI: "3.0.3",
		Paths: spec.Paths{
			"/a": {
				Get: &spec.Operation{
					OperationID: "getA",
					Security:    []spec.SecurityRequirement{{"oauth2": {"read"}}},
				},
			},
			"/b": {
				Get: &spec.Operation{
					OperationID: "getB",
					Security:    []spec.SecurityRequirement{{"oauth2": {"read"}}},
				},
			},
		},
	}

	set := bindPaths(t, doc)
	require.Len(t, set.SecurityPolicies, 1)
	assert.Equal(t, "oauth2:read", set.SecurityPolicies[0].Name)
}

func TestBindSecuritySchemes(t *testing.T) {
	doc := &spec.Document{
		OpenAPI: "3.0.3",
		Components: &spec.Components{
			SecuritySchemes: map[string]*spec.SecurityScheme{
				"bearerAuth": {Type: "http", Scheme: "bearer", BearerFormat: "JWT"},
				"apiKey":     {Type: "apiKey", In: "header", Name: "X-API-Key"},
			},
		},
	}

	set := bindPaths(t, doc)
	require.Len(t, set.SecuritySchemes, 2)
	assert.Equal(t, SecuritySchemeDescriptor{Name: "apiKey", Type: "apiKey", In: "header", ParamName: "X-API-Key"}, set.SecuritySchemes[0])
	assert.Equal(t, SecuritySchemeDescriptor{Name: "bearerAuth", Type: "http", Scheme: "bearer", BearerFormat: "JWT"}, set.SecuritySchemes[1])
}
