package template

import (
	"fmt"

	"github.com/erraggy/inputsets"
	"github.com/erraggy/inputsets/flatten"
	"github.com/erraggy/inputsets/placeholder"
)

// Option is a function that configures a template operation
type Option func(*templateConfig) error

// templateConfig holds configuration for a template operation
type templateConfig struct {
	matcher        placeholder.Matcher
	logger         inputsets.Logger
	flattenOptions []flatten.Option
	builder        *flatten.Builder
}

// applyOptions applies option functions and fills in defaults
func applyOptions(opts ...Option) (*templateConfig, error) {
	cfg := &templateConfig{
		matcher: placeholder.Default(),
		builder: &flatten.Builder{},
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	cfg.logger = inputsets.OrNop(cfg.logger)
	return cfg, nil
}

// WithMatcher sets the placeholder grammar.
// Returns an error if m is nil.
func WithMatcher(m placeholder.Matcher) Option {
	return func(cfg *templateConfig) error {
		if m == nil {
			return fmt.Errorf("template: matcher cannot be nil")
		}
		cfg.matcher = m
		return nil
	}
}

// WithLogger sets the logger for diagnostics.
// Default: no logging.
func WithLogger(l inputsets.Logger) Option {
	return func(cfg *templateConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithKeyResolvers replaces the identity precedence for lists of multi-key
// objects, for both flattening and rebuilding.
func WithKeyResolvers(resolvers ...flatten.KeyResolver) Option {
	return func(cfg *templateConfig) error {
		if len(resolvers) == 0 {
			return fmt.Errorf("template: at least one key resolver is required")
		}
		cfg.flattenOptions = append(cfg.flattenOptions, flatten.WithKeyResolvers(resolvers...))
		cfg.builder = &flatten.Builder{KeyResolvers: resolvers}
		return nil
	}
}

// WithMaxDepth bounds the nesting depth of accepted documents.
// A value of 0 means use the default.
func WithMaxDepth(depth int) Option {
	return func(cfg *templateConfig) error {
		cfg.flattenOptions = append(cfg.flattenOptions, flatten.WithMaxDepth(depth))
		return nil
	}
}

// WithSourceName names the document in error messages.
func WithSourceName(name string) Option {
	return func(cfg *templateConfig) error {
		cfg.flattenOptions = append(cfg.flattenOptions, flatten.WithSourceName(name))
		return nil
	}
}
