package merger

import (
	"fmt"

	"github.com/erraggy/inputsets"
	"github.com/erraggy/inputsets/flatten"
	"github.com/erraggy/inputsets/inputerrors"
	"github.com/erraggy/inputsets/placeholder"
	"github.com/erraggy/inputsets/scope"
)

// Option is a function that configures a merge operation
type Option func(*mergeConfig) error

// mergeConfig holds configuration for a merge operation
type mergeConfig struct {
	appendValidator bool
	matcher         placeholder.Matcher
	logger          inputsets.Logger
	keyResolvers    []flatten.KeyResolver
	maxDepth        int

	// Scope restriction (nil means no restriction)
	scope     scope.Set
	scopeMode scope.Mode
}

// applyOptions applies option functions and fills in defaults
func applyOptions(opts ...Option) (*mergeConfig, error) {
	cfg := &mergeConfig{
		matcher:   placeholder.Default(),
		scopeMode: scope.Outermost,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	cfg.logger = inputsets.OrNop(cfg.logger)
	return cfg, nil
}

func (cfg *mergeConfig) merger() *Merger {
	return &Merger{
		AppendValidator: cfg.appendValidator,
		Matcher:         cfg.matcher,
		Logger:          cfg.logger,
		KeyResolvers:    cfg.keyResolvers,
	}
}

// WithAppendValidator keeps the validator clause of a placeholder on the
// value that fills it.
// Default: false
func WithAppendValidator(enabled bool) Option {
	return func(cfg *mergeConfig) error {
		cfg.appendValidator = enabled
		return nil
	}
}

// WithScope restricts the merge to the list branches whose identity is one
// of ids, for example the identifiers of the stages to run. Paths without an
// identity segment are always kept.
// Returns an error if no id is given.
func WithScope(ids ...string) Option {
	return func(cfg *mergeConfig) error {
		if len(ids) == 0 {
			return fmt.Errorf("merger: scope requires at least one identity")
		}
		cfg.scope = scope.NewSet(ids...)
		return nil
	}
}

// WithScopeMode selects how WithScope treats nested identities.
// Default: scope.Outermost
func WithScopeMode(mode scope.Mode) Option {
	return func(cfg *mergeConfig) error {
		cfg.scopeMode = mode
		return nil
	}
}

// WithMatcher sets the placeholder grammar.
// Default: placeholder.Default()
func WithMatcher(m placeholder.Matcher) Option {
	return func(cfg *mergeConfig) error {
		if m == nil {
			return fmt.Errorf("merger: matcher cannot be nil")
		}
		cfg.matcher = m
		return nil
	}
}

// WithLogger sets the logger for diagnostics. Malformed validator clauses
// are reported at warn level.
// Default: no logging
func WithLogger(l inputsets.Logger) Option {
	return func(cfg *mergeConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithKeyResolvers replaces the identity precedence for lists of multi-key
// objects.
func WithKeyResolvers(resolvers ...flatten.KeyResolver) Option {
	return func(cfg *mergeConfig) error {
		if len(resolvers) == 0 {
			return fmt.Errorf("merger: at least one key resolver is required")
		}
		cfg.keyResolvers = resolvers
		return nil
	}
}

// WithMaxDepth bounds the nesting depth of accepted documents.
// A value of 0 means use the default.
// Returns an error if depth is negative.
func WithMaxDepth(depth int) Option {
	return func(cfg *mergeConfig) error {
		if depth < 0 {
			return fmt.Errorf("merger: %w", &inputerrors.ConfigError{Option: "maxDepth", Value: depth, Message: "cannot be negative"})
		}
		cfg.maxDepth = depth
		return nil
	}
}
