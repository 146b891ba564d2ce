package binder

import (
	"time"

	"github.com/erraggy/oasbind/internal/issues"
	"github.com/erraggy/oasbind/internal/severity"
)

// Severity indicates the severity level of a binding issue
type Severity = severity.Severity

const (
	// SeverityInfo indicates informational messages about binding choices
	SeverityInfo = severity.SeverityInfo
	// SeverityWarning indicates constructs that bind imperfectly
	SeverityWarning = severity.SeverityWarning
	// SeverityError indicates invalid document constructs
	SeverityError = severity.SeverityError
	// SeverityCritical indicates constructs that could not be bound
	SeverityCritical = severity.SeverityCritical
)

// Issue represents a single binding issue or limitation
type Issue = issues.Issue

// SchemaKind is the artifact classification assigned to a schema.
// Exactly one kind is assigned per schema; assignment is pure and
// deterministic given the same input.
type SchemaKind int

const (
	// KindScalar is a primitive or a named alias of one.
	KindScalar SchemaKind = iota
	// KindObject is a named object with a property map.
	KindObject
	// KindEnum is a string type with a non-empty literal set.
	KindEnum
	// KindArray is a homogeneous list type.
	KindArray
	// KindTuple is a fixed-position item list ("prefix items"), optionally
	// followed by a homogeneous trailing element type.
	KindTuple
	// KindPolymorphic is a union-of-variants composition.
	KindPolymorphic
	// KindInlineRecord is an anonymous object promoted out of a request or
	// response rather than the shared schema collection.
	KindInlineRecord
)

// String returns the string representation of the schema kind.
func (k SchemaKind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindObject:
		return "object"
	case KindEnum:
		return "enum"
	case KindArray:
		return "array"
	case KindTuple:
		return "tuple"
	case KindPolymorphic:
		return "polymorphic"
	case KindInlineRecord:
		return "inline-record"
	default:
		return "unknown"
	}
}

// TypeReference is a resolved, conflict-free type name plus nullability and
// reference-type information. It never holds an unresolved $ref.
type TypeReference struct {
	// Name is the canonical type name, or a scalar token such as "string",
	// "int64", "double", "boolean", "date-time", or "binary". Empty when
	// Elem is set (the reference denotes a list of Elem).
	Name string `yaml:"name,omitempty" json:"name,omitempty"`
	// Nullable is derived from the call site's required flag and the
	// schema's own nullability; it is never stored in the registry.
	Nullable bool `yaml:"nullable,omitempty" json:"nullable,omitempty"`
	// IsReference is true for named object/union types and lists, false for
	// scalars and enums.
	IsReference bool `yaml:"isReference,omitempty" json:"isReference,omitempty"`
	// Elem is the element type for list references.
	Elem *TypeReference `yaml:"elem,omitempty" json:"elem,omitempty"`
}

// IsList reports whether the reference denotes a list type.
func (t TypeReference) IsList() bool { return t.Elem != nil }

// IsZero reports whether the reference is empty (no type at all).
func (t TypeReference) IsZero() bool { return t.Name == "" && t.Elem == nil }

// String renders the reference for display: "Pet", "Pet?", "string[]".
func (t TypeReference) String() string {
	s := t.Name
	if t.Elem != nil {
		s = t.Elem.String() + "[]"
	}
	if t.Nullable {
		s += "?"
	}
	return s
}

// PropertyNode describes one property of an object or inline record.
type PropertyNode struct {
	// Name is the wire name as declared in the document
	Name string `yaml:"name" json:"name"`
	// FieldName is the identifier-safe generated field name
	FieldName string `yaml:"fieldName" json:"fieldName"`
	// Type is the resolved property type
	Type TypeReference `yaml:"type" json:"type"`
	// Required mirrors the schema's required list
	Required bool `yaml:"required,omitempty" json:"required,omitempty"`
	// Deprecated mirrors the property schema's deprecated flag
	Deprecated bool `yaml:"deprecated,omitempty" json:"deprecated,omitempty"`
	// Description is the property description, if any
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// EnumMember describes one literal of an enum type. Name is always a valid
// identifier; Value is the exact wire literal so encoding round-trips even
// when the literal needed transformation to become an identifier.
type EnumMember struct {
	Name  string `yaml:"name" json:"name"`
	Value string `yaml:"value" json:"value"`
}

// SchemaNode is a classified, named type definition ready for emission.
type SchemaNode struct {
	// Name is the canonical (conflict-free) type name
	Name string `yaml:"name" json:"name"`
	// RawName is the schema name as it appeared in the document; empty for
	// promoted inline types
	RawName string `yaml:"rawName,omitempty" json:"rawName,omitempty"`
	// Kind is the artifact classification
	Kind SchemaKind `yaml:"kind" json:"kind"`
	// Description is the schema description, if any
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	// Deprecated mirrors the schema's deprecated flag
	Deprecated bool `yaml:"deprecated,omitempty" json:"deprecated,omitempty"`

	// Properties holds the ordered property list (object, inline record)
	Properties []PropertyNode `yaml:"properties,omitempty" json:"properties,omitempty"`
	// Element is the element type (array) or underlying type (scalar alias)
	Element *TypeReference `yaml:"element,omitempty" json:"element,omitempty"`
	// TupleElements are the fixed-position element types (tuple)
	TupleElements []TypeReference `yaml:"tupleElements,omitempty" json:"tupleElements,omitempty"`
	// AdditionalItems is the list type for trailing tuple items, nil when the
	// tuple is closed
	AdditionalItems *TypeReference `yaml:"additionalItems,omitempty" json:"additionalItems,omitempty"`
	// Members holds the literal set (enum)
	Members []EnumMember `yaml:"members,omitempty" json:"members,omitempty"`
	// Nested holds types promoted from inline item/property schemas and
	// union variants claimed by a polymorphic base
	Nested []SchemaNode `yaml:"nested,omitempty" json:"nested,omitempty"`
}

// Variant is one alternative of a polymorphic union.
type Variant struct {
	// TypeName is the canonical type name of the variant
	TypeName string `yaml:"typeName" json:"typeName"`
	// DiscriminatorValue is the literal identifying the variant; empty when
	// the union falls back to a custom converter
	DiscriminatorValue string `yaml:"discriminatorValue,omitempty" json:"discriminatorValue,omitempty"`
}

// PolymorphicConfig describes how a union-of-variants schema deserializes.
//
// Invariant: when DiscriminatorProperty is non-empty every variant has a
// non-empty DiscriminatorValue; when it is empty, UsesCustomConverter is true
// and variants carry type names only.
type PolymorphicConfig struct {
	// BaseType is the canonical name of the union type
	BaseType string `yaml:"baseType" json:"baseType"`
	// DiscriminatorProperty names the property whose value selects a
	// variant; empty when no discriminator exists
	DiscriminatorProperty string `yaml:"discriminatorProperty,omitempty" json:"discriminatorProperty,omitempty"`
	// IsDiscriminatorExplicit is true when the document declared the
	// discriminator, false when it was auto-detected
	IsDiscriminatorExplicit bool `yaml:"isDiscriminatorExplicit,omitempty" json:"isDiscriminatorExplicit,omitempty"`
	// UsesCustomConverter marks unions that need an ordered
	// try-each-variant deserialization strategy
	UsesCustomConverter bool `yaml:"usesCustomConverter,omitempty" json:"usesCustomConverter,omitempty"`
	// Variants in declaration order
	Variants []Variant `yaml:"variants" json:"variants"`
}

// CachePolicyType selects the cache backend family a policy targets.
type CachePolicyType string

const (
	// CacheTypeOutput is a response output cache
	CacheTypeOutput CachePolicyType = "output"
	// CacheTypeHybrid is a two-tier (memory + distributed) cache
	CacheTypeHybrid CachePolicyType = "hybrid"
)

// CachePolicy is a resolved cache policy configuration. Every field resolves
// independently across the operation, path, and document levels; tag and
// vary-by fields are unioned across levels rather than overridden.
type CachePolicy struct {
	Name string          `yaml:"name" json:"name"`
	Type CachePolicyType `yaml:"type" json:"type"`
	// ExpirationSeconds defaults to 60 when no level declares it
	ExpirationSeconds int      `yaml:"expirationSeconds" json:"expirationSeconds"`
	Tags              []string `yaml:"tags,omitempty" json:"tags,omitempty"`
	VaryByQuery       []string `yaml:"varyByQuery,omitempty" json:"varyByQuery,omitempty"`
	VaryByHeader      []string `yaml:"varyByHeader,omitempty" json:"varyByHeader,omitempty"`
	VaryByRoute       []string `yaml:"varyByRoute,omitempty" json:"varyByRoute,omitempty"`
}

// BackoffKind is the delay growth strategy between retry attempts.
type BackoffKind string

const (
	// BackoffConstant keeps the delay fixed
	BackoffConstant BackoffKind = "constant"
	// BackoffLinear grows the delay linearly
	BackoffLinear BackoffKind = "linear"
	// BackoffExponential doubles the delay per attempt
	BackoffExponential BackoffKind = "exponential"
)

// RetryPolicy is a resolved resilience pipeline configuration.
type RetryPolicy struct {
	Name string `yaml:"name" json:"name"`
	// MaxAttempts defaults to 3
	MaxAttempts int `yaml:"maxAttempts" json:"maxAttempts"`
	// DelaySeconds defaults to 2
	DelaySeconds int `yaml:"delaySeconds" json:"delaySeconds"`
	// Backoff defaults to exponential
	Backoff BackoffKind `yaml:"backoff" json:"backoff"`
	// UseJitter randomizes delays to avoid thundering herds
	UseJitter bool `yaml:"useJitter,omitempty" json:"useJitter,omitempty"`
	// TimeoutSeconds is the per-attempt timeout, default 30
	TimeoutSeconds int `yaml:"timeoutSeconds" json:"timeoutSeconds"`
	// CircuitBreaker enables the circuit breaker stage
	CircuitBreaker bool `yaml:"circuitBreaker,omitempty" json:"circuitBreaker,omitempty"`
	// FailureRatio defaults to 0.5 when the breaker is enabled
	FailureRatio float64 `yaml:"failureRatio,omitempty" json:"failureRatio,omitempty"`
	// SamplingDurationSeconds defaults to 30 when the breaker is enabled
	SamplingDurationSeconds int `yaml:"samplingDurationSeconds,omitempty" json:"samplingDurationSeconds,omitempty"`
	// BreakDurationSeconds defaults to 5 when the breaker is enabled
	BreakDurationSeconds int `yaml:"breakDurationSeconds,omitempty" json:"breakDurationSeconds,omitempty"`
}

// SecurityPolicy is one authorization policy derived from scope requirements.
// A multi-scope requirement yields a combined policy (AND semantics) plus a
// synthesized single-scope policy per scope.
type SecurityPolicy struct {
	// Name is "<scheme>:<scope>[+<scope>...]"
	Name string `yaml:"name" json:"name"`
	// Scheme is the security scheme the scopes belong to
	Scheme string `yaml:"scheme" json:"scheme"`
	// Scopes that must all be satisfied
	Scopes []string `yaml:"scopes" json:"scopes"`
}

// SecuritySchemeDescriptor summarizes a referenced security scheme for the
// emission layer.
type SecuritySchemeDescriptor struct {
	Name             string `yaml:"name" json:"name"`
	Type             string `yaml:"type" json:"type"`
	Scheme           string `yaml:"scheme,omitempty" json:"scheme,omitempty"`
	BearerFormat     string `yaml:"bearerFormat,omitempty" json:"bearerFormat,omitempty"`
	In               string `yaml:"in,omitempty" json:"in,omitempty"`
	ParamName        string `yaml:"paramName,omitempty" json:"paramName,omitempty"`
	OpenIDConnectURL string `yaml:"openIdConnectUrl,omitempty" json:"openIdConnectUrl,omitempty"`
}

// ParameterLocation is where a parameter is carried on the wire.
type ParameterLocation string

const (
	// LocationPath is a path template parameter
	LocationPath ParameterLocation = "path"
	// LocationQuery is a query string parameter
	LocationQuery ParameterLocation = "query"
	// LocationHeader is an HTTP header parameter
	LocationHeader ParameterLocation = "header"
	// LocationCookie is a cookie parameter
	LocationCookie ParameterLocation = "cookie"
)

// ParameterDescriptor describes one generated handler parameter.
type ParameterDescriptor struct {
	// RawName is the wire name as declared in the document
	RawName string `yaml:"rawName" json:"rawName"`
	// Name is the identifier-safe generated parameter name
	Name     string            `yaml:"name" json:"name"`
	Location ParameterLocation `yaml:"location" json:"location"`
	Type     TypeReference     `yaml:"type" json:"type"`
	Required bool              `yaml:"required,omitempty" json:"required,omitempty"`
	// HasDefault is true when the parameter schema declares a default value
	HasDefault bool `yaml:"hasDefault,omitempty" json:"hasDefault,omitempty"`
	// Default is the declared default value, nil otherwise
	Default    any  `yaml:"default,omitempty" json:"default,omitempty"`
	Deprecated bool `yaml:"deprecated,omitempty" json:"deprecated,omitempty"`
	// Description is the parameter description, if any
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// SecurityRequirementDescriptor ties a handler to one authorization policy.
type SecurityRequirementDescriptor struct {
	Scheme     string   `yaml:"scheme" json:"scheme"`
	Scopes     []string `yaml:"scopes,omitempty" json:"scopes,omitempty"`
	PolicyName string   `yaml:"policyName,omitempty" json:"policyName,omitempty"`
}

// HandlerDescriptor describes one operation's generated interface shape.
// Built once from the operation and its schemas; never mutated afterwards.
type HandlerDescriptor struct {
	// Name is the generated method name (from operationId, or derived from
	// method and path)
	Name    string `yaml:"name" json:"name"`
	Path    string `yaml:"path" json:"path"`
	Method  string `yaml:"method" json:"method"`
	Summary string `yaml:"summary,omitempty" json:"summary,omitempty"`

	// Parameters in required-before-optional order
	Parameters []ParameterDescriptor `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	// ParameterTypeName is the name of the generated parameter class
	ParameterTypeName string `yaml:"parameterTypeName" json:"parameterTypeName"`

	// HasBody is true when the operation carries a request body
	HasBody bool `yaml:"hasBody,omitempty" json:"hasBody,omitempty"`
	// BodyIsFile marks binary/multipart file payloads, modeled as a "File"
	// field instead of a typed "Request" field
	BodyIsFile bool `yaml:"bodyIsFile,omitempty" json:"bodyIsFile,omitempty"`
	// BodyType is the resolved body type when HasBody is true
	BodyType *TypeReference `yaml:"bodyType,omitempty" json:"bodyType,omitempty"`
	// BodyRequired mirrors the request body's required flag
	BodyRequired bool `yaml:"bodyRequired,omitempty" json:"bodyRequired,omitempty"`

	// ResultType is the success response type; zero when the operation
	// returns no payload
	ResultType TypeReference `yaml:"resultType,omitempty" json:"resultType,omitempty"`

	// Cross-cutting policy attachments
	CachePolicy     string                          `yaml:"cachePolicy,omitempty" json:"cachePolicy,omitempty"`
	RetryPolicy     string                          `yaml:"retryPolicy,omitempty" json:"retryPolicy,omitempty"`
	RateLimitPolicy string                          `yaml:"rateLimitPolicy,omitempty" json:"rateLimitPolicy,omitempty"`
	Security        []SecurityRequirementDescriptor `yaml:"security,omitempty" json:"security,omitempty"`

	Deprecated bool `yaml:"deprecated,omitempty" json:"deprecated,omitempty"`
}

// DescriptorSet is the complete output of one Bind run, handed to an external
// emission collaborator that performs no further semantic decisions.
type DescriptorSet struct {
	// Schemas are the classified named types in deterministic order
	Schemas []SchemaNode `yaml:"schemas,omitempty" json:"schemas,omitempty"`
	// Unions are the polymorphic configurations, one per KindPolymorphic schema
	Unions []PolymorphicConfig `yaml:"unions,omitempty" json:"unions,omitempty"`
	// Handlers are the per-operation descriptors in sorted path order
	Handlers []HandlerDescriptor `yaml:"handlers,omitempty" json:"handlers,omitempty"`

	CachePolicies    []CachePolicy              `yaml:"cachePolicies,omitempty" json:"cachePolicies,omitempty"`
	RetryPolicies    []RetryPolicy              `yaml:"retryPolicies,omitempty" json:"retryPolicies,omitempty"`
	SecurityPolicies []SecurityPolicy           `yaml:"securityPolicies,omitempty" json:"securityPolicies,omitempty"`
	RateLimiters     []string                   `yaml:"rateLimiters,omitempty" json:"rateLimiters,omitempty"`
	SecuritySchemes  []SecuritySchemeDescriptor `yaml:"securitySchemes,omitempty" json:"securitySchemes,omitempty"`

	// Issues contains all binding issues grouped by severity
	Issues []Issue `yaml:"-" json:"-"`
	// InfoCount is the total number of info messages
	InfoCount int `yaml:"-" json:"-"`
	// WarningCount is the total number of warnings
	WarningCount int `yaml:"-" json:"-"`
	// CriticalCount is the total number of critical issues
	CriticalCount int `yaml:"-" json:"-"`
	// Success is true if binding completed without critical issues
	Success bool `yaml:"-" json:"-"`
	// BindTime is the time taken to bind the document
	BindTime time.Duration `yaml:"-" json:"-"`
}

// HasCriticalIssues returns true if there are any critical issues
func (s *DescriptorSet) HasCriticalIssues() bool {
	return s.CriticalCount > 0
}

// HasWarnings returns true if there are any warnings
func (s *DescriptorSet) HasWarnings() bool {
	return s.WarningCount > 0
}

// Schema returns the schema node with the given canonical name, or nil.
func (s *DescriptorSet) Schema(name string) *SchemaNode {
	for i := range s.Schemas {
		if s.Schemas[i].Name == name {
			return &s.Schemas[i]
		}
	}
	return nil
}

// Handler returns the handler descriptor with the given name, or nil.
func (s *DescriptorSet) Handler(name string) *HandlerDescriptor {
	for i := range s.Handlers {
		if s.Handlers[i].Name == name {
			return &s.Handlers[i]
		}
	}
	return nil
}

// Union returns the polymorphic configuration for the given base type, or nil.
func (s *DescriptorSet) Union(baseType string) *PolymorphicConfig {
	for i := range s.Unions {
		if s.Unions[i].BaseType == baseType {
			return &s.Unions[i]
		}
	}
	return nil
}
