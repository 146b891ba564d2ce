package binder

import (
	"sort"

	"github.com/erraggy/oasbind/spec"
)

// Extension keys recognized by the policy cascade. Cache and retry keys may
// appear at the document, path, or operation level; rate limit keys are
// operation-level only.
const (
	extRateLimit       = "x-rate-limit"
	extRateLimitPolicy = "x-rate-limit-policy"

	extCachePolicy       = "x-cache-policy"
	extCacheType         = "x-cache-type"
	extCacheExpiration   = "x-cache-expiration"
	extCacheTags         = "x-cache-tags"
	extCacheVaryByQuery  = "x-cache-vary-by-query"
	extCacheVaryByHeader = "x-cache-vary-by-header"
	extCacheVaryByRoute  = "x-cache-vary-by-route"

	extRetryPolicy      = "x-retry-policy"
	extRetryMaxAttempts = "x-retry-max-attempts"
	extRetryDelay       = "x-retry-delay"
	extRetryBackoff     = "x-retry-backoff"
	extRetryJitter      = "x-retry-jitter"
	extRetryTimeout     = "x-retry-timeout"

	extCircuitBreaker                 = "x-circuit-breaker"
	extCircuitBreakerFailureRatio     = "x-circuit-breaker-failure-ratio"
	extCircuitBreakerSamplingDuration = "x-circuit-breaker-sampling-duration"
	extCircuitBreakerBreakDuration    = "x-circuit-breaker-break-duration"

	extName = "x-name"
)

// Defaults applied when no level declares a value.
const (
	defaultCacheExpirationSeconds = 60
	defaultRetryMaxAttempts       = 3
	defaultRetryDelaySeconds      = 2
	defaultRetryTimeoutSeconds    = 30

	defaultBreakerFailureRatio           = 0.5
	defaultBreakerSamplingDurationSecond = 30
	defaultBreakerBreakDurationSeconds   = 5
)

// cascade is an ordered stack of extension maps, most specific first
// (operation, then path, then document). Each probe returns the value from
// the first level that declares the key; union merges list values across all
// levels instead.
type cascade struct {
	levels []map[string]any
}

func newCascade(op *spec.Operation, item *spec.PathItem, doc *spec.Document) cascade {
	c := cascade{levels: make([]map[string]any, 0, 3)}
	if op != nil && len(op.Extra) > 0 {
		c.levels = append(c.levels, op.Extra)
	}
	if item != nil && len(item.Extra) > 0 {
		c.levels = append(c.levels, item.Extra)
	}
	if doc != nil && len(doc.Extra) > 0 {
		c.levels = append(c.levels, doc.Extra)
	}
	return c
}

func (c cascade) str(key string) (string, bool) {
	for _, level := range c.levels {
		if v, ok := spec.StringExt(level, key); ok {
			return v, true
		}
	}
	return "", false
}

func (c cascade) integer(key string) (int, bool) {
	for _, level := range c.levels {
		if v, ok := spec.IntExt(level, key); ok {
			return v, true
		}
	}
	return 0, false
}

func (c cascade) boolean(key string) (bool, bool) {
	for _, level := range c.levels {
		if v, ok := spec.BoolExt(level, key); ok {
			return v, true
		}
	}
	return false, false
}

func (c cascade) float(key string) (float64, bool) {
	for _, level := range c.levels {
		if v, ok := spec.Float64Ext(level, key); ok {
			return v, true
		}
	}
	return 0, false
}

func (c cascade) strings(key string) ([]string, bool) {
	for _, level := range c.levels {
		if v, ok := spec.StringSliceExt(level, key); ok {
			return v, true
		}
	}
	return nil, false
}

// union merges the list values of every level that declares the key,
// deduplicated and sorted.
func (c cascade) union(key string) []string {
	seen := make(map[string]bool)
	var merged []string
	for _, level := range c.levels {
		values, ok := spec.StringSliceExt(level, key)
		if !ok {
			continue
		}
		for _, v := range values {
			if !seen[v] {
				seen[v] = true
				merged = append(merged, v)
			}
		}
	}
	sort.Strings(merged)
	return merged
}

// policyResolver accumulates the distinct policies referenced across all
// operations of a run. Each policy name is resolved once; later references
// reuse the memoized configuration.
type policyResolver struct {
	doc          *spec.Document
	cache        map[string]CachePolicy
	retry        map[string]RetryPolicy
	rateLimiters map[string]bool
}

func newPolicyResolver(doc *spec.Document) *policyResolver {
	return &policyResolver{
		doc:          doc,
		cache:        make(map[string]CachePolicy),
		retry:        make(map[string]RetryPolicy),
		rateLimiters: make(map[string]bool),
	}
}

// cachePolicy resolves the cache policy active for an operation, if any.
// A policy is active only when x-cache-policy names it at some level; once
// active, every field resolves independently across all levels.
func (p *policyResolver) cachePolicy(op *spec.Operation, item *spec.PathItem) (string, bool) {
	c := newCascade(op, item, p.doc)
	name, ok := c.str(extCachePolicy)
	if !ok || name == "" {
		return "", false
	}
	if _, done := p.cache[name]; done {
		return name, true
	}

	policy := CachePolicy{
		Name:              name,
		Type:              CacheTypeOutput,
		ExpirationSeconds: defaultCacheExpirationSeconds,
		Tags:              c.union(extCacheTags),
	}
	// Only tags merge across levels; vary-by lists resolve like every other
	// field, the most specific declaration winning outright.
	if v, ok := c.strings(extCacheVaryByQuery); ok {
		policy.VaryByQuery = v
	}
	if v, ok := c.strings(extCacheVaryByHeader); ok {
		policy.VaryByHeader = v
	}
	if v, ok := c.strings(extCacheVaryByRoute); ok {
		policy.VaryByRoute = v
	}
	if t, ok := c.str(extCacheType); ok && CachePolicyType(t) == CacheTypeHybrid {
		policy.Type = CacheTypeHybrid
	}
	if seconds, ok := c.integer(extCacheExpiration); ok {
		policy.ExpirationSeconds = seconds
	}

	p.cache[name] = policy
	return name, true
}

// retryPolicy resolves the resilience policy active for an operation, if any.
func (p *policyResolver) retryPolicy(op *spec.Operation, item *spec.PathItem) (string, bool) {
	c := newCascade(op, item, p.doc)
	name, ok := c.str(extRetryPolicy)
	if !ok || name == "" {
		return "", false
	}
	if _, done := p.retry[name]; done {
		return name, true
	}

	policy := RetryPolicy{
		Name:           name,
		MaxAttempts:    defaultRetryMaxAttempts,
		DelaySeconds:   defaultRetryDelaySeconds,
		Backoff:        BackoffExponential,
		TimeoutSeconds: defaultRetryTimeoutSeconds,
	}
	if attempts, ok := c.integer(extRetryMaxAttempts); ok {
		policy.MaxAttempts = attempts
	}
	if delay, ok := c.integer(extRetryDelay); ok {
		policy.DelaySeconds = delay
	}
	if backoff, ok := c.str(extRetryBackoff); ok {
		switch BackoffKind(backoff) {
		case BackoffConstant, BackoffLinear, BackoffExponential:
			policy.Backoff = BackoffKind(backoff)
		}
	}
	if jitter, ok := c.boolean(extRetryJitter); ok {
		policy.UseJitter = jitter
	}
	if timeout, ok := c.integer(extRetryTimeout); ok {
		policy.TimeoutSeconds = timeout
	}
	if breaker, ok := c.boolean(extCircuitBreaker); ok && breaker {
		policy.CircuitBreaker = true
		policy.FailureRatio = defaultBreakerFailureRatio
		policy.SamplingDurationSeconds = defaultBreakerSamplingDurationSecond
		policy.BreakDurationSeconds = defaultBreakerBreakDurationSeconds
		if ratio, ok := c.float(extCircuitBreakerFailureRatio); ok {
			policy.FailureRatio = ratio
		}
		if sampling, ok := c.integer(extCircuitBreakerSamplingDuration); ok {
			policy.SamplingDurationSeconds = sampling
		}
		if brk, ok := c.integer(extCircuitBreakerBreakDuration); ok {
			policy.BreakDurationSeconds = brk
		}
	}

	p.retry[name] = policy
	return name, true
}

// rateLimitPolicy resolves the rate limiter named by an operation. Rate
// limiting is operation-scoped only; path and document extensions are not
// consulted.
func (p *policyResolver) rateLimitPolicy(op *spec.Operation) (string, bool) {
	if op == nil {
		return "", false
	}
	enabled, _ := spec.BoolExt(op.Extra, extRateLimit)
	name, hasName := spec.StringExt(op.Extra, extRateLimitPolicy)
	if !enabled && !hasName {
		return "", false
	}
	if name == "" {
		name = "default"
	}
	p.rateLimiters[name] = true
	return name, true
}

// cachePolicies returns the resolved cache policies sorted by name.
func (p *policyResolver) cachePolicies() []CachePolicy {
	names := make([]string, 0, len(p.cache))
	for name := range p.cache {
		names = append(names, name)
	}
	sort.Strings(names)
	result := make([]CachePolicy, 0, len(names))
	for _, name := range names {
		result = append(result, p.cache[name])
	}
	return result
}

// retryPolicies returns the resolved retry policies sorted by name.
func (p *policyResolver) retryPolicies() []RetryPolicy {
	names := make([]string, 0, len(p.retry))
	for name := range p.retry {
		names = append(names, name)
	}
	sort.Strings(names)
	result := make([]RetryPolicy, 0, len(names))
	for _, name := range names {
		result = append(result, p.retry[name])
	}
	return result
}

// rateLimiterNames returns the distinct rate limiter names, sorted.
func (p *policyResolver) rateLimiterNames() []string {
	names := make([]string, 0, len(p.rateLimiters))
	for name := range p.rateLimiters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
