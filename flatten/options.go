package flatten

import (
	"fmt"

	"github.com/erraggy/inputsets/inputerrors"
)

// Option is a function that configures a flatten operation
type Option func(*flattenConfig) error

// flattenConfig holds configuration for a flatten operation
type flattenConfig struct {
	keyResolvers []KeyResolver
	maxDepth     int
	sourceName   string
}

// applyOptions applies option functions and returns the configuration
func applyOptions(opts ...Option) (*flattenConfig, error) {
	cfg := &flattenConfig{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// WithKeyResolvers replaces the identity precedence for lists of multi-key
// objects. Resolvers are tried in the given order.
// Returns an error if no resolver is given.
func WithKeyResolvers(resolvers ...KeyResolver) Option {
	return func(cfg *flattenConfig) error {
		if len(resolvers) == 0 {
			return fmt.Errorf("flatten: at least one key resolver is required")
		}
		cfg.keyResolvers = resolvers
		return nil
	}
}

// WithMaxDepth bounds the nesting depth of accepted documents.
// A value of 0 means use the default (1000).
// Returns an error if depth is negative.
func WithMaxDepth(depth int) Option {
	return func(cfg *flattenConfig) error {
		if depth < 0 {
			return fmt.Errorf("flatten: %w", &inputerrors.ConfigError{Option: "maxDepth", Value: depth, Message: "cannot be negative"})
		}
		cfg.maxDepth = depth
		return nil
	}
}

// WithSourceName names the document in error messages.
func WithSourceName(name string) Option {
	return func(cfg *flattenConfig) error {
		cfg.sourceName = name
		return nil
	}
}
