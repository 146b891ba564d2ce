package binder

import (
	"sort"
	"strings"

	"github.com/erraggy/oasbind/internal/maputil"
	"github.com/erraggy/oasbind/spec"
)

// securityPolicyName builds the canonical policy name for a scheme and its
// scope set: "<scheme>:<scope>[+<scope>...]", or just the scheme name when
// the requirement carries no scopes.
func securityPolicyName(scheme string, scopes []string) string {
	if len(scopes) == 0 {
		return scheme
	}
	return scheme + ":" + strings.Join(scopes, "+")
}

// securityAggregator collects the distinct authorization policies referenced
// by document-level and operation-level security requirements. A multi-scope
// requirement produces one combined policy with AND semantics plus one
// synthesized single-scope policy per scope, so emitted authorization layers
// can attach either granularity.
type securityAggregator struct {
	policies map[string]SecurityPolicy
}

func newSecurityAggregator() *securityAggregator {
	return &securityAggregator{policies: make(map[string]SecurityPolicy)}
}

// requirements registers every scheme entry of a security requirement list
// and returns the per-handler descriptors in sorted scheme order.
func (a *securityAggregator) requirements(reqs []spec.SecurityRequirement) []SecurityRequirementDescriptor {
	var result []SecurityRequirementDescriptor
	for _, req := range reqs {
		for _, scheme := range maputil.SortedKeys(req) {
			scopes := append([]string(nil), req[scheme]...)
			sort.Strings(scopes)
			result = append(result, SecurityRequirementDescriptor{
				Scheme:     scheme,
				Scopes:     scopes,
				PolicyName: a.register(scheme, scopes),
			})
		}
	}
	return result
}

// register records the combined policy for a scope set plus a single-scope
// policy per scope, and returns the combined policy's name.
func (a *securityAggregator) register(scheme string, scopes []string) string {
	name := securityPolicyName(scheme, scopes)
	if _, ok := a.policies[name]; !ok {
		a.policies[name] = SecurityPolicy{Name: name, Scheme: scheme, Scopes: scopes}
	}
	for _, scope := range scopes {
		single := securityPolicyName(scheme, []string{scope})
		if _, ok := a.policies[single]; !ok {
			a.policies[single] = SecurityPolicy{Name: single, Scheme: scheme, Scopes: []string{scope}}
		}
	}
	return name
}

// all returns every registered policy sorted by name.
func (a *securityAggregator) all() []SecurityPolicy {
	result := make([]SecurityPolicy, 0, len(a.policies))
	for _, name := range maputil.SortedKeys(a.policies) {
		result = append(result, a.policies[name])
	}
	return result
}

// bindSecuritySchemes summarizes each declared security scheme for the
// emission layer, in sorted name order.
func (b *binding) bindSecuritySchemes() {
	if b.doc.Components == nil {
		return
	}
	for _, name := range maputil.SortedKeys(b.doc.Components.SecuritySchemes) {
		scheme := b.doc.Components.SecuritySchemes[name]
		if scheme == nil {
			continue
		}
		b.set.SecuritySchemes = append(b.set.SecuritySchemes, SecuritySchemeDescriptor{
			Name:             name,
			Type:             scheme.Type,
			Scheme:           scheme.Scheme,
			BearerFormat:     scheme.BearerFormat,
			In:               scheme.In,
			ParamName:        scheme.Name,
			OpenIDConnectURL: scheme.OpenIDConnectURL,
		})
	}
}
