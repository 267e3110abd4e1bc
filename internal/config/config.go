package config

import (
	"fmt"
	"os"

	"github.com/dyluth/perch/internal/catalog"
	"github.com/dyluth/perch/pkg/registry"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultPath is where the CLI looks for perch.yml
	DefaultPath = "perch.yml"

	// DefaultNamespace is used when cache.namespace is omitted
	DefaultNamespace = "default"
)

// PerchConfig represents the top-level perch.yml configuration
type PerchConfig struct {
	Version        string         `yaml:"version"`
	BuiltinCatalog *bool          `yaml:"builtin_catalog,omitempty"` // Register the built-in components first (default = true)
	Registrations  []Registration `yaml:"registrations,omitempty"`
	Cache          *CacheConfig   `yaml:"cache,omitempty"`
}

// Registration is a single handler registration declared in perch.yml.
// Registrations are applied in file order, after the built-in catalog.
type Registration struct {
	Handler  string `yaml:"handler"`
	Category string `yaml:"category"`
	Kinds    []int  `yaml:"kinds,omitempty"`
	Priority int    `yaml:"priority"`
	Fallback bool   `yaml:"fallback,omitempty"`
}

// CacheConfig specifies the Redis-backed replaceable event cache
type CacheConfig struct {
	RedisAddr string `yaml:"redis_addr"`
	Namespace string `yaml:"namespace,omitempty"`
}

// Validate performs strict validation on the configuration and applies defaults
func (c *PerchConfig) Validate() error {
	// Required: version
	if c.Version != "1.0" {
		return fmt.Errorf("unsupported version: %s (expected: 1.0)", c.Version)
	}

	for i, reg := range c.Registrations {
		if err := reg.Validate(); err != nil {
			return fmt.Errorf("registration %d: %w", i, err)
		}
	}

	if c.BuiltinCatalog == nil {
		enabled := true
		c.BuiltinCatalog = &enabled
	}

	if c.Cache != nil {
		if c.Cache.RedisAddr == "" {
			return fmt.Errorf("cache.redis_addr is required when cache is configured")
		}
		if c.Cache.Namespace == "" {
			c.Cache.Namespace = DefaultNamespace
		}
	}

	return nil
}

// Validate performs validation on a single registration
func (r *Registration) Validate() error {
	if r.Handler == "" {
		return fmt.Errorf("handler is required")
	}

	if err := registry.Category(r.Category).Validate(); err != nil {
		return fmt.Errorf("handler '%s': %w", r.Handler, err)
	}

	if r.Priority < 0 {
		return fmt.Errorf("handler '%s': priority must be >= 0, got %d", r.Handler, r.Priority)
	}

	if r.Fallback {
		if len(r.Kinds) > 0 {
			return fmt.Errorf("handler '%s': fallback registrations cannot list kinds", r.Handler)
		}
		return nil
	}

	if len(r.Kinds) == 0 {
		return fmt.Errorf("handler '%s': kinds are required (or set fallback: true)", r.Handler)
	}

	for _, kind := range r.Kinds {
		if kind < 0 {
			return fmt.Errorf("handler '%s': kind must be >= 0, got %d", r.Handler, kind)
		}
	}

	return nil
}

// Setup returns a SetupFunc that applies the configured registrations in file order.
func (c *PerchConfig) Setup() registry.SetupFunc {
	return func(r registry.Registrar) error {
		for i, reg := range c.Registrations {
			var err error
			if reg.Fallback {
				err = r.RegisterFallback(reg.Handler, reg.Priority, registry.Category(reg.Category))
			} else {
				err = r.RegisterKindHandler(reg.Kinds, reg.Handler, reg.Priority, registry.Category(reg.Category))
			}
			if err != nil {
				return fmt.Errorf("registration %d (%s): %w", i, reg.Handler, err)
			}
		}
		return nil
	}
}

// SetupFuncs returns the full setup sequence: the built-in catalog when
// enabled, followed by the configured registrations.
func (c *PerchConfig) SetupFuncs() []registry.SetupFunc {
	var setups []registry.SetupFunc
	if c.BuiltinCatalog == nil || *c.BuiltinCatalog {
		setups = append(setups, catalog.Default()...)
	}
	return append(setups, c.Setup())
}

// BuildRegistry builds a registry from the full setup sequence.
func (c *PerchConfig) BuildRegistry() (*registry.Registry, error) {
	reg, err := registry.Build(c.SetupFuncs()...)
	if err != nil {
		return nil, fmt.Errorf("failed to build registry: %w", err)
	}
	return reg, nil
}

// Default returns the configuration used when no perch.yml is present:
// the built-in catalog and nothing else.
func Default() *PerchConfig {
	enabled := true
	return &PerchConfig{
		Version:        "1.0",
		BuiltinCatalog: &enabled,
	}
}

// Load reads and validates perch.yml from the specified path
func Load(path string) (*PerchConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return Parse(data)
}

// Parse parses and validates perch.yml content
func Parse(data []byte) (*PerchConfig, error) {
	var config PerchConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}
