package binder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasbind/spec"
)

func bindPaths(t *testing.T, doc *spec.Document) *DescriptorSet {
	t.Helper()
	set, err := Bind(doc)
	require.NoError(t, err)
	return set
}

func TestCachePolicyCascadesPerField(t *testing.T) {
	doc := &spec.Document{
		OpenAPI: "3.0.3",
		Extra: map[string]any{
			"x-cache-expiration": 300,
		},
		Paths: spec.Paths{
			"/pets": {
				Extra: map[string]any{
					"x-cache-policy":     "pets",
					"x-cache-expiration": 60,
				},
				Get: &spec.Operation{
					OperationID: "listPets",
					Extra: map[string]any{
						"x-cache-tags": []any{"hot"},
					},
				},
			},
		},
	}

	set := bindPaths(t, doc)
	require.Len(t, set.CachePolicies, 1)
	policy := set.CachePolicies[0]

	// Each field resolves at its most specific declaring level.
	assert.Equal(t, "pets", policy.Name)
	assert.Equal(t, 60, policy.ExpirationSeconds)
	assert.Equal(t, []string{"hot"}, policy.Tags)
	assert.Equal(t, CacheTypeOutput, policy.Type)

	handler := set.Handler("ListPets")
	require.NotNil(t, handler)
	assert.Equal(t, "pets", handler.CachePolicy)
}

func TestCacheTagsUnionAcrossLevels(t *testing.T) {
	doc := &spec.Document{
		OpenAPI: "3.0.3",
		Extra: map[string]any{
			"x-cache-tags": []any{"b", "c"},
		},
		Paths: spec.Paths{
			"/pets": {
				Get: &spec.Operation{
					OperationID: "listPets",
					Extra: map[string]any{
						"x-cache-policy": "pets",
						"x-cache-tags":   []any{"a", "b"},
					},
				},
			},
		},
	}

	set := bindPaths(t, doc)
	require.Len(t, set.CachePolicies, 1)
	assert.Equal(t, []string{"a", "b", "c"}, set.CachePolicies[0].Tags)
}

func TestCacheVaryByMostSpecificWins(t *testing.T) {
	doc := &spec.Document{
		OpenAPI: "3.0.3",
		Extra: map[string]any{
			"x-cache-vary-by-header": []any{"X-Tenant"},
			"x-cache-vary-by-query":  []any{"page"},
		},
		Paths: spec.Paths{
			"/pets": {
				Get: &spec.Operation{
					OperationID: "listPets",
					Extra: map[string]any{
						"x-cache-policy":         "pets",
						"x-cache-vary-by-header": []any{"X-Locale"},
					},
				},
			},
		},
	}

	set := bindPaths(t, doc)
	require.Len(t, set.CachePolicies, 1)
	policy := set.CachePolicies[0]

	// Vary-by lists do not merge; the operation declaration replaces the
	// document one. Keys without a more specific declaration still cascade.
	assert.Equal(t, []string{"X-Locale"}, policy.VaryByHeader)
	assert.Equal(t, []string{"page"}, policy.VaryByQuery)
	assert.Empty(t, policy.VaryByRoute)
}

func TestCachePolicyInactiveWithoutName(t *testing.T) {
	doc := &spec.Document{
		OpenAPI: "3.0.3",
		Paths: spec.Paths{
			"/pets": {
				Get: &spec.Operation{
					OperationID: "listPets",
					Extra: map[string]any{
						"x-cache-expiration": 10,
					},
				},
			},
		},
	}

	set := bindPaths(t, doc)
	assert.Empty(t, set.CachePolicies)
	handler := set.Handler("ListPets")
	require.NotNil(t, handler)
	assert.Empty(t, handler.CachePolicy)
}

func TestCachePolicyDefaults(t *testing.T) {
	doc := &spec.Document{
		OpenAPI: "3.0.3",
		Paths: spec.Paths{
			"/pets": {
				Get: &spec.Operation{
					OperationID: "listPets",
					Extra:       map[string]any{"x-cache-policy": "pets"},
				},
			},
		},
	}

	set := bindPaths(t, doc)
	require.Len(t, set.CachePolicies, 1)
	assert.Equal(t, 60, set.CachePolicies[0].ExpirationSeconds)
	assert.Equal(t, CacheTypeOutput, set.CachePolicies[0].Type)
}

func TestRetryPolicyDefaultsAndOverrides(t *testing.T) {
	doc := &spec.Document{
		OpenAPI: "3.0.3",
		Extra: map[string]any{
			"x-retry-backoff": "linear",
		},
		Paths: spec.Paths{
			"/pets": {
				Get: &spec.Operation{
					OperationID: "listPets",
					Extra: map[string]any{
						"x-retry-policy":       "flaky",
						"x-retry-max-attempts": 5,
					},
				},
			},
		},
	}

	set := bindPaths(t, doc)
	require.Len(t, set.RetryPolicies, 1)
	policy := set.RetryPolicies[0]

	assert.Equal(t, "flaky", policy.Name)
	assert.Equal(t, 5, policy.MaxAttempts)
	assert.Equal(t, 2, policy.DelaySeconds)
	assert.Equal(t, BackoffLinear, policy.Backoff)
	assert.Equal(t, 30, policy.TimeoutSeconds)
	assert.False(t, policy.CircuitBreaker)
}

func TestRetryPolicyCircuitBreakerDefaults(t *testing.T) {
	doc := &spec.Document{
		OpenAPI: "3.0.3",
		Paths: spec.Paths{
			"/pets": {
				Get: &spec.Operation{
					OperationID: "listPets",
					Extra: map[string]any{
						"x-retry-policy":                  "guarded",
						"x-circuit-breaker":               true,
						"x-circuit-breaker-failure-ratio": 0.8,
					},
				},
			},
		},
	}

	set := bindPaths(t, doc)
	require.Len(t, set.RetryPolicies, 1)
	policy := set.RetryPolicies[0]

	assert.True(t, policy.CircuitBreaker)
	assert.Equal(t, 0.8, policy.FailureRatio)
	assert.Equal(t, 30, policy.SamplingDurationSeconds)
	assert.Equal(t, 5, policy.BreakDurationSeconds)
}

func TestRetryPolicyInvalidBackoffKeepsDefault(t *testing.T) {
	doc := &spec.Document{
		OpenAPI: "3.0.3",
		Paths: spec.Paths{
			"/pets": {
				Get: &spec.Operation{
					OperationID: "listPets",
					Extra: map[string]any{
						"x-retry-policy":  "flaky",
						"x-retry-backoff": "fibonacci",
					},
				},
			},
		},
	}

	set := bindPaths(t, doc)
	require.Len(t, set.RetryPolicies, 1)
	assert.Equal(t, BackoffExponential, set.RetryPolicies[0].Backoff)
}

func TestRetryPolicyMemoizedByName(t *testing.T) {
	doc := &spec.Document{
		OpenAPI: "3.0.3",
		Paths: spec.Paths{
			"/a": {
				Get: &spec.Operation{
					OperationID: "getA",
					Extra: map[string]any{
						"x-retry-policy":       "shared",
						"x-retry-max-attempts": 7,
					},
				},
			},
			"/b": {
				Get: &spec.Operation{
					OperationID: "getB",
					Extra: map[string]any{
						"x-retry-policy":       "shared",
						"x-retry-max-attempts": 9,
					},
				},
			},
		},
	}

	set := bindPaths(t, doc)
	// One policy, resolved at first reference ("/a" sorts first).
	require.Len(t, set.RetryPolicies, 1)
	assert.Equal(t, 7, set.RetryPolicies[0].MaxAttempts)
	assert.Equal(t, "shared", set.Handler("GetA").RetryPolicy)
	assert.Equal(t, "shared", set.Handler("GetB").RetryPolicy)
}

func TestRateLimitPolicy(t *testing.T) {
	doc := &spec.Document{
		OpenAPI: "3.0.3",
		Paths: spec.Paths{
			"/a": {
				Get: &spec.Operation{
					OperationID: "getA",
					Extra:       map[string]any{"x-rate-limit": true},
				},
			},
			"/b": {
				Get: &spec.Operation{
					OperationID: "getB",
					Extra:       map[string]any{"x-rate-limit-policy": "burst"},
				},
			},
			"/c": {
				Get: &spec.Operation{OperationID: "getC"},
			},
		},
	}

	set := bindPaths(t, doc)
	assert.Equal(t, []string{"burst", "default"}, set.RateLimiters)
	assert.Equal(t, "default", set.Handler("GetA").RateLimitPolicy)
	assert.Equal(t, "burst", set.Handler("GetB").RateLimitPolicy)
	assert.Empty(t, set.Handler("GetC").RateLimitPolicy)
}

func TestCascadeBooleanStringForms(t *testing.T) {
	doc := &spec.Document{
		OpenAPI: "3.0.3",
		Paths: spec.Paths{
			"/pets": {
				Get: &spec.Operation{
					OperationID: "listPets",
					Extra: map[string]any{
						"x-retry-policy": "flaky",
						"x-retry-jitter": "true",
					},
				},
			},
		},
	}

	set := bindPaths(t, doc)
	require.Len(t, set.RetryPolicies, 1)
	assert.True(t, set.RetryPolicies[0].UseJitter)
}
