package mcpserver

import (
	"errors"
	"log/slog"
	"os"
	"reflect"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/erraggy/inputsets/flatten"
	"github.com/erraggy/inputsets/placeholder"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Cache settings.
	CacheEnabled       bool
	CacheMaxSize       int           `validate:"gte=1,lte=1000"`
	CacheFileTTL       time.Duration `validate:"gte=1s"`
	CacheURLTTL        time.Duration `validate:"gte=1s"`
	CacheContentTTL    time.Duration `validate:"gte=1s"`
	CacheSweepInterval time.Duration `validate:"gte=1s"`

	// Placeholder grammar.
	Marker string `validate:"required,startswith=<+,endswith=>"`

	// Merge tool defaults.
	AppendValidator bool
	MaxOverrides    int `validate:"gte=1,lte=100"`

	// Validate tool defaults.
	NoWarnings bool

	// Limits.
	MaxDepth        int   `validate:"gte=0,lte=100000"`
	MaxInlineSize   int64 `validate:"gte=1"`
	DefaultLimit    int   `validate:"gte=1"`
	MaxLimit        int   `validate:"gtefield=DefaultLimit"`
	AllowPrivateIPs bool
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// configValidate checks the value ranges of serverConfig.
var configValidate = validator.New(validator.WithRequiredStructEnabled())

// defaultConfig returns the hardcoded defaults.
func defaultConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:       true,
		CacheMaxSize:       10,
		CacheFileTTL:       15 * time.Minute,
		CacheURLTTL:        5 * time.Minute,
		CacheContentTTL:    15 * time.Minute,
		CacheSweepInterval: 60 * time.Second,
		Marker:             placeholder.DefaultMarker,
		MaxOverrides:       20,
		MaxDepth:           flatten.DefaultMaxDepth,
		MaxInlineSize:      10 * 1024 * 1024,
		DefaultLimit:       100,
		MaxLimit:           1000,
	}
}

// loadConfig reads configuration from INPUTSETS_* environment variables.
// Unparseable or out-of-range values log a warning and fall back to the
// hardcoded default.
func loadConfig() *serverConfig {
	d := defaultConfig()
	c := &serverConfig{
		CacheEnabled:       envBool("INPUTSETS_CACHE_ENABLED", d.CacheEnabled),
		CacheMaxSize:       envInt("INPUTSETS_CACHE_MAX_SIZE", d.CacheMaxSize),
		CacheFileTTL:       envDuration("INPUTSETS_CACHE_FILE_TTL", d.CacheFileTTL),
		CacheURLTTL:        envDuration("INPUTSETS_CACHE_URL_TTL", d.CacheURLTTL),
		CacheContentTTL:    envDuration("INPUTSETS_CACHE_CONTENT_TTL", d.CacheContentTTL),
		CacheSweepInterval: envDuration("INPUTSETS_CACHE_SWEEP_INTERVAL", d.CacheSweepInterval),
		Marker:             envString("INPUTSETS_MARKER", d.Marker),
		AppendValidator:    envBool("INPUTSETS_APPEND_VALIDATOR", d.AppendValidator),
		MaxOverrides:       envInt("INPUTSETS_MAX_OVERRIDES", d.MaxOverrides),
		NoWarnings:         envBool("INPUTSETS_NO_WARNINGS", d.NoWarnings),
		MaxDepth:           envInt("INPUTSETS_MAX_DEPTH", d.MaxDepth),
		MaxInlineSize:      int64(envInt("INPUTSETS_MAX_INLINE_SIZE", int(d.MaxInlineSize))),
		DefaultLimit:       envInt("INPUTSETS_DEFAULT_LIMIT", d.DefaultLimit),
		MaxLimit:           envInt("INPUTSETS_MAX_LIMIT", d.MaxLimit),
		AllowPrivateIPs:    envBool("INPUTSETS_ALLOW_PRIVATE_IPS", d.AllowPrivateIPs),
	}
	enforceRanges(c, d)
	return c
}

// enforceRanges resets every field of c that fails its validate tag to the
// value in defaults.
func enforceRanges(c, defaults *serverConfig) {
	err := configValidate.Struct(c)
	if err == nil {
		return
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		slog.Warn("invalid server configuration, using defaults", "error", err)
		*c = *defaults
		return
	}

	cv := reflect.ValueOf(c).Elem()
	dv := reflect.ValueOf(defaults).Elem()
	for _, fe := range fieldErrs {
		name := fe.StructField()
		slog.Warn("out of range config value, using default", //nolint:gosec // G706: values are structured log fields, not format strings
			"field", name,
			"value", fe.Value(),
			"rule", fe.Tag(),
			"default", dv.FieldByName(name).Interface(),
		)
		cv.FieldByName(name).Set(dv.FieldByName(name))
	}
}

// matcher returns the placeholder grammar for the configured marker.
func (c *serverConfig) matcher() placeholder.Grammar {
	return placeholder.Grammar{Marker: c.Marker}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return d
}
