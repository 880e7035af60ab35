package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "fily.yml")

	validConfig := `version: "1.0"
data_dir: data
catalogue:
  title: "fily Importados"
  exchange_rate: 1250
publish:
  public:
    remote: "https://example.com/fily.git"
  private:
    dir: private
    remote: "https://example.com/fily_private.git"
log:
  level: debug
`
	err := os.WriteFile(configPath, []byte(validConfig), 0644)
	require.NoError(t, err)

	config, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "1.0", config.Version)
	assert.Equal(t, filepath.Join(tmpDir, "data"), config.DataDir)
	assert.Equal(t, BackendCSV, config.Store.Backend)
	assert.Equal(t, "fily Importados", config.Catalogue.Title)
	assert.Equal(t, int64(1250), config.Catalogue.ExchangeRate)
	assert.Equal(t, "ARS", config.Catalogue.LocalCurrency)
	assert.Equal(t, filepath.Join(tmpDir, "images"), config.Catalogue.ImagesDir)
	assert.Equal(t, filepath.Join(tmpDir, "fily_public"), config.Publish.Public.Dir)
	assert.Equal(t, filepath.Join(tmpDir, "private"), config.Publish.Private.Dir)
	assert.Equal(t, "main", config.Publish.Branch)
	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, filepath.Join(tmpDir, "fily.log"), config.Log.File)
	assert.NoError(t, config.Publish.Ready())
}

func TestLoad_FileNotFound(t *testing.T) {
	config, err := Load("/nonexistent/fily.yml")
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "fily.yml")

	invalidYAML := `version: "1.0"
store:
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

func TestLoadOrDefault(t *testing.T) {
	t.Run("missing file falls back to defaults", func(t *testing.T) {
		tmpDir := t.TempDir()
		config, err := LoadOrDefault(filepath.Join(tmpDir, "fily.yml"))
		require.NoError(t, err)
		assert.Equal(t, tmpDir, config.DataDir)
		assert.Equal(t, int64(1100), config.Catalogue.ExchangeRate)
	})

	t.Run("existing file is validated", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "fily.yml")
		require.NoError(t, os.WriteFile(configPath, []byte(`version: "2.0"`), 0644))

		_, err := LoadOrDefault(configPath)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported version")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  FilyConfig
		wantErr string
	}{
		{
			name:    "unsupported version",
			config:  FilyConfig{Version: "2.0"},
			wantErr: "unsupported version: 2.0",
		},
		{
			name:    "unknown backend",
			config:  FilyConfig{Version: "1.0", Store: &StoreConfig{Backend: "sqlite"}},
			wantErr: "invalid backend: sqlite",
		},
		{
			name:    "negative redis db",
			config:  FilyConfig{Version: "1.0", Store: &StoreConfig{Backend: BackendRedis, Redis: &RedisConfig{DB: -1}}},
			wantErr: "store.redis.db must be >= 0",
		},
		{
			name:    "negative exchange rate",
			config:  FilyConfig{Version: "1.0", Catalogue: &CatalogueConfig{ExchangeRate: -5}},
			wantErr: "exchange_rate must be > 0",
		},
		{
			name:    "unknown log level",
			config:  FilyConfig{Version: "1.0", Log: &LogConfig{Level: "verbose"}},
			wantErr: "invalid level: verbose",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_RedisDefaults(t *testing.T) {
	config := &FilyConfig{Version: "1.0", Store: &StoreConfig{Backend: BackendRedis}}
	require.NoError(t, config.Validate())
	assert.Equal(t, "localhost:6379", config.Store.Redis.Addr)
	assert.Equal(t, "default", config.Store.Redis.Namespace)
}

func TestPublishReady(t *testing.T) {
	config := Default()
	err := config.Publish.Ready()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "publish.public.remote")

	config.Publish.Public.Remote = "git@example.com:fily.git"
	err = config.Publish.Ready()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "publish.private.remote")
}
