package spec

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasbind/binderrors"
)

// Option is a function that configures a load operation
type Option func(*loadConfig) error

type loadConfig struct {
	logger Logger
}

// WithLogger sets the logger used while loading.
// Default: NopLogger
func WithLogger(logger Logger) Option {
	return func(cfg *loadConfig) error {
		if logger == nil {
			return &binderrors.ConfigError{Option: "Logger", Message: "cannot be nil"}
		}
		cfg.logger = logger
		return nil
	}
}

// Load reads and decodes an OpenAPI document from a YAML or JSON file.
// YAML is a superset of JSON, so both formats decode through the same path.
func Load(path string, opts ...Option) (*Document, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &binderrors.InputError{Message: fmt.Sprintf("reading %s", path), Cause: err}
	}
	cfg.logger.Debug("loaded specification file", "path", path, "bytes", len(data))

	return loadBytes(data, cfg)
}

// LoadBytes decodes an OpenAPI document from in-memory YAML or JSON data.
func LoadBytes(data []byte, opts ...Option) (*Document, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}
	return loadBytes(data, cfg)
}

func applyOptions(opts ...Option) (*loadConfig, error) {
	cfg := &loadConfig{logger: NopLogger{}}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func loadBytes(data []byte, cfg *loadConfig) (*Document, error) {
	if len(data) == 0 {
		return nil, &binderrors.InputError{Message: "document is empty"}
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &binderrors.InputError{Message: "decoding document", Cause: err}
	}

	if doc.OpenAPI == "" {
		return nil, &binderrors.InputError{Message: "missing openapi version field"}
	}
	if !strings.HasPrefix(doc.OpenAPI, "3.") {
		return nil, &binderrors.InputError{Message: fmt.Sprintf("unsupported OpenAPI version %q", doc.OpenAPI)}
	}

	cfg.logger.Debug("decoded specification document",
		"openapi", doc.OpenAPI,
		"paths", len(doc.Paths),
		"schemas", doc.SchemaCount())
	return &doc, nil
}
