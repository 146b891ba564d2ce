package binder

import (
	"time"

	"github.com/erraggy/oasbind/binderrors"
	"github.com/erraggy/oasbind/spec"
)

// Option configures a Bind run.
type Option func(*bindConfig) error

type bindConfig struct {
	typePrefix        string
	includeDeprecated bool
	logger            spec.Logger
}

func defaultConfig() *bindConfig {
	return &bindConfig{
		typePrefix: "Api",
		logger:     spec.NopLogger{},
	}
}

// WithTypePrefix sets the prefix applied to canonical type names that would
// otherwise shadow a basic-type token. The default is "Api".
func WithTypePrefix(prefix string) Option {
	return func(cfg *bindConfig) error {
		if prefix == "" {
			return &binderrors.ConfigError{Option: "WithTypePrefix", Value: prefix, Message: "prefix must not be empty"}
		}
		cfg.typePrefix = prefix
		return nil
	}
}

// WithIncludeDeprecated binds deprecated schemas and operations instead of
// skipping them.
func WithIncludeDeprecated() Option {
	return func(cfg *bindConfig) error {
		cfg.includeDeprecated = true
		return nil
	}
}

// WithLogger sets the logger for binding progress. The default discards
// everything.
func WithLogger(logger spec.Logger) Option {
	return func(cfg *bindConfig) error {
		if logger == nil {
			return &binderrors.ConfigError{Option: "WithLogger", Message: "logger must not be nil"}
		}
		cfg.logger = logger
		return nil
	}
}

// binding holds the run-scoped state of one Bind call.
type binding struct {
	doc      *spec.Document
	cfg      *bindConfig
	logger   spec.Logger
	registry *Registry
	policies *policyResolver
	security *securityAggregator
	set      *DescriptorSet

	// claimed maps a union variant's raw schema name to its base schema name.
	claimed map[string]string
}

// Bind walks the document once and produces its DescriptorSet. The document
// is not mutated; all registry and cache state is scoped to this call.
func Bind(doc *spec.Document, opts ...Option) (*DescriptorSet, error) {
	start := time.Now()

	if doc == nil {
		return nil, &binderrors.InputError{Message: "document is nil"}
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	b := &binding{
		doc:      doc,
		cfg:      cfg,
		logger:   cfg.logger,
		registry: newRegistry(doc, cfg.typePrefix),
		policies: newPolicyResolver(doc),
		security: newSecurityAggregator(),
		set:      &DescriptorSet{},
		claimed:  make(map[string]string),
	}

	b.logger.Info("binding document",
		"schemas", doc.SchemaCount(), "operations", doc.OperationCount())

	if err := b.bindSchemas(); err != nil {
		return nil, err
	}
	if err := b.bindOperations(); err != nil {
		return nil, err
	}
	b.bindSecuritySchemes()

	b.set.CachePolicies = b.policies.cachePolicies()
	b.set.RetryPolicies = b.policies.retryPolicies()
	b.set.RateLimiters = b.policies.rateLimiterNames()
	b.set.SecurityPolicies = b.security.all()

	b.finalize(start)
	return b.set, nil
}

func (b *binding) addIssue(path, message string, sev Severity) {
	b.set.Issues = append(b.set.Issues, Issue{Path: path, Message: message, Severity: sev})
}

func (b *binding) finalize(start time.Time) {
	for _, issue := range b.set.Issues {
		switch issue.Severity {
		case SeverityInfo:
			b.set.InfoCount++
		case SeverityWarning:
			b.set.WarningCount++
		case SeverityCritical:
			b.set.CriticalCount++
		}
	}
	b.set.Success = b.set.CriticalCount == 0
	b.set.BindTime = time.Since(start)

	b.logger.Info("binding complete",
		"schemas", len(b.set.Schemas),
		"handlers", len(b.set.Handlers),
		"warnings", b.set.WarningCount,
		"duration", b.set.BindTime)
}
