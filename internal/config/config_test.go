package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dyluth/perch/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ValidConfig(t *testing.T) {
	// Create temporary directory
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "perch.yml")

	validConfig := `version: "1.0"
registrations:
  - handler: "CustomNote"
    category: "full-card"
    kinds: [1]
    priority: 20
  - handler: "CustomMedia"
    category: "media"
    fallback: true
    priority: 12
cache:
  redis_addr: "localhost:6379"
`
	err := os.WriteFile(configPath, []byte(validConfig), 0644)
	require.NoError(t, err)

	config, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "1.0", config.Version)
	require.Len(t, config.Registrations, 2)
	assert.Equal(t, "CustomNote", config.Registrations[0].Handler)
	assert.Equal(t, []int{1}, config.Registrations[0].Kinds)
	assert.True(t, config.Registrations[1].Fallback)

	// Defaults applied during validation
	require.NotNil(t, config.BuiltinCatalog)
	assert.True(t, *config.BuiltinCatalog)
	assert.Equal(t, DefaultNamespace, config.Cache.Namespace)
}

func TestLoad_FileNotFound(t *testing.T) {
	config, err := Load("/nonexistent/perch.yml")
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "perch.yml")

	invalidYAML := `version: "1.0"
registrations:
  - this is invalid
    yaml syntax
`
	err := os.WriteFile(configPath, []byte(invalidYAML), 0644)
	require.NoError(t, err)

	config, err := Load(configPath)
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestValidate_UnsupportedVersion(t *testing.T) {
	config := &PerchConfig{Version: "2.0"}

	err := config.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported version: 2.0")
}

func TestValidate_BuiltinCatalogDisabled(t *testing.T) {
	config, err := Parse([]byte(`version: "1.0"
builtin_catalog: false
`))
	require.NoError(t, err)
	assert.False(t, *config.BuiltinCatalog)
}

func TestValidate_CacheRequiresAddr(t *testing.T) {
	config := &PerchConfig{Version: "1.0", Cache: &CacheConfig{Namespace: "x"}}

	err := config.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cache.redis_addr is required")
}

func TestRegistrationValidate(t *testing.T) {
	tests := []struct {
		name    string
		reg     Registration
		wantErr string
	}{
		{"valid kind handler", Registration{Handler: "H", Category: "full-card", Kinds: []int{1}, Priority: 1}, ""},
		{"valid fallback", Registration{Handler: "H", Category: "media", Fallback: true}, ""},
		{"missing handler", Registration{Category: "full-card", Kinds: []int{1}}, "handler is required"},
		{"unknown category", Registration{Handler: "H", Category: "sidebar", Kinds: []int{1}}, "unknown category"},
		{"negative priority", Registration{Handler: "H", Category: "link", Kinds: []int{1}, Priority: -1}, "priority must be >= 0"},
		{"missing kinds", Registration{Handler: "H", Category: "hashtag"}, "kinds are required"},
		{"negative kind", Registration{Handler: "H", Category: "hashtag", Kinds: []int{-1}}, "kind must be >= 0"},
		{"fallback with kinds", Registration{Handler: "H", Category: "media", Fallback: true, Kinds: []int{1}}, "cannot list kinds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.reg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_ReportsRegistrationIndex(t *testing.T) {
	_, err := Parse([]byte(`version: "1.0"
registrations:
  - handler: "Good"
    category: "full-card"
    kinds: [1]
  - handler: "Bad"
    category: "full-card"
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registration 1")
}

func TestBuildRegistry_ConfigOverridesCatalog(t *testing.T) {
	config, err := Parse([]byte(`version: "1.0"
registrations:
  - handler: "CustomNote"
    category: "full-card"
    kinds: [1]
    priority: 10
  - handler: "CustomMedia"
    category: "media"
    fallback: true
    priority: 12
`))
	require.NoError(t, err)

	reg, err := config.BuildRegistry()
	require.NoError(t, err)

	h, ok := reg.ResolveKind(1, registry.CategoryFullCard)
	require.True(t, ok)
	assert.Equal(t, "CustomNote", h, "equal priority registered later wins over the catalog")

	h, ok = reg.ResolveKind(1111, registry.CategoryFullCard)
	require.True(t, ok)
	assert.Equal(t, "NoteCard", h)

	h, ok = reg.ResolveKind(1, registry.CategoryMedia)
	require.True(t, ok)
	assert.Equal(t, "CustomMedia", h)
}

func TestBuildRegistry_WithoutCatalog(t *testing.T) {
	config, err := Parse([]byte(`version: "1.0"
builtin_catalog: false
registrations:
  - handler: "OnlyTag"
    category: "hashtag"
    kinds: [1]
    priority: 1
`))
	require.NoError(t, err)

	reg, err := config.BuildRegistry()
	require.NoError(t, err)
	assert.Equal(t, 1, reg.Len())

	_, ok := reg.ResolveKind(1, registry.CategoryFullCard)
	assert.False(t, ok)
}

func TestDefault(t *testing.T) {
	config := Default()
	require.NoError(t, config.Validate())

	reg, err := config.BuildRegistry()
	require.NoError(t, err)

	h, ok := reg.ResolveKind(1, registry.CategoryFullCard)
	require.True(t, ok)
	assert.Equal(t, "NoteCard", h)
}
