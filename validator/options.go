package validator

import (
	"fmt"

	"github.com/erraggy/inputsets"
	"github.com/erraggy/inputsets/flatten"
	"github.com/erraggy/inputsets/placeholder"
	"github.com/erraggy/inputsets/tree"
)

// Option is a function that configures a validation operation
type Option func(*validateConfig) error

// validateConfig holds configuration for a validation operation
type validateConfig struct {
	// Inputs (both required)
	template *tree.Node
	override *tree.Node

	// Configuration options
	includeWarnings bool
	matcher         placeholder.Matcher
	logger          inputsets.Logger
	keyResolvers    []flatten.KeyResolver
	sourceName      string
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*validateConfig, error) {
	cfg := &validateConfig{
		includeWarnings: true,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.template == nil {
		return nil, fmt.Errorf("must specify a template (use WithTemplate)")
	}
	if cfg.override == nil {
		return nil, fmt.Errorf("must specify an override document (use WithOverride)")
	}
	return cfg, nil
}

// WithTemplate specifies the runtime-input template to check against
func WithTemplate(doc *tree.Node) Option {
	return func(cfg *validateConfig) error {
		cfg.template = doc
		return nil
	}
}

// WithOverride specifies the override document to check
func WithOverride(doc *tree.Node) Option {
	return func(cfg *validateConfig) error {
		cfg.override = doc
		return nil
	}
}

// WithIncludeWarnings enables or disables warnings
// Default: true
func WithIncludeWarnings(enabled bool) Option {
	return func(cfg *validateConfig) error {
		cfg.includeWarnings = enabled
		return nil
	}
}

// WithMatcher sets the placeholder grammar
// Default: placeholder.Default()
func WithMatcher(m placeholder.Matcher) Option {
	return func(cfg *validateConfig) error {
		if m == nil {
			return fmt.Errorf("matcher cannot be nil")
		}
		cfg.matcher = m
		return nil
	}
}

// WithLogger sets the logger for diagnostics
// Default: no logging
func WithLogger(l inputsets.Logger) Option {
	return func(cfg *validateConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithKeyResolvers replaces the identity precedence for lists of multi-key objects
func WithKeyResolvers(resolvers ...flatten.KeyResolver) Option {
	return func(cfg *validateConfig) error {
		if len(resolvers) == 0 {
			return fmt.Errorf("at least one key resolver is required")
		}
		cfg.keyResolvers = resolvers
		return nil
	}
}

// WithSourceName names the override document in the result and its issues
func WithSourceName(name string) Option {
	return func(cfg *validateConfig) error {
		cfg.sourceName = name
		return nil
	}
}
