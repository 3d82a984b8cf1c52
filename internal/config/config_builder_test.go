package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// requiredConfig returns the smallest config that passes validation once
// defaults are applied.
func requiredConfig() *StructuredConfig {
	return &StructuredConfig{
		Auth: Auth{
			AccessTokenSecret:  "access-secret",
			RefreshTokenSecret: "refresh-secret",
		},
		Storage: Storage{
			DB: DB{DSN: "mongodb://localhost:27017"},
		},
		Adapter: Adapter{
			Media: Media{
				Cloudinary: Cloudinary{CloudName: "demo", APIKey: "key", APISecret: "secret"},
			},
		},
	}
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and an empty configs slice.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_EmptyBuilder verifies that defaults alone do not make a valid
// config: secrets and DSN have no defaults.
func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrInvalidAuthConfigs)
}

// TestBuild_AppliesDefaults verifies that empty fields take default values.
func TestBuild_AppliesDefaults(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, requiredConfig())

	cfg, err := b.build()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.App.Version)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, 240*time.Hour, cfg.Auth.RefreshTokenTTL)
	assert.Equal(t, "go-user-service", cfg.Auth.TokenIssuer)
	assert.Equal(t, 10, cfg.Auth.PasswordHashCost)
	assert.Equal(t, DriverMongo, cfg.Storage.DB.Driver)
	assert.Equal(t, "users", cfg.Storage.DB.Name)
	assert.Equal(t, int64(32<<20), cfg.Storage.Uploads.MaxMemory)
	assert.NotEmpty(t, cfg.Storage.Uploads.TempDir)
	assert.Equal(t, ":8000", cfg.Server.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, MediaProviderCloudinary, cfg.Adapter.Media.Provider)
	assert.Equal(t, time.Minute, cfg.Adapter.Media.Timeout)
	assert.Equal(t, "user-events", cfg.Adapter.Events.Topic)
	assert.Equal(t, 10*time.Minute, cfg.Workers.UploadJanitorInterval)
	assert.Equal(t, time.Hour, cfg.Workers.UploadMaxAge)
}

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_LaterSourcesOverride verifies that a later source wins for
// non-zero fields while zero fields keep earlier values.
func TestBuild_LaterSourcesOverride(t *testing.T) {
	b := newConfigBuilder()
	first := requiredConfig()
	first.App.Version = "1.0.0"
	first.Auth.TokenIssuer = "env-issuer"

	b.configs = append(b.configs,
		first,
		&StructuredConfig{App: App{Version: "2.0.0"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "2.0.0", cfg.App.Version)
	assert.Equal(t, "env-issuer", cfg.Auth.TokenIssuer)
}

// ── withEnv ───────────────────────────────────────────────────────────────────

// TestWithEnv_ReturnsBuilder verifies the fluent interface.
func TestWithEnv_ReturnsBuilder(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withEnv())
}

// TestWithEnv_ReadsEnvVars verifies that environment variables are picked up.
func TestWithEnv_ReadsEnvVars(t *testing.T) {
	setEnvVars(t, map[string]string{
		"APP_VERSION":       "env-version",
		"AUTH_TOKEN_ISSUER": "env-issuer",
	})

	b := newConfigBuilder()
	b.withEnv()

	require.Len(t, b.configs, 1)
	assert.Equal(t, "env-version", b.configs[0].App.Version)
	assert.Equal(t, "env-issuer", b.configs[0].Auth.TokenIssuer)
}

// TestWithEnv_SetsErrorOnBadValue verifies that conversion failures are
// collected in b.err.
func TestWithEnv_SetsErrorOnBadValue(t *testing.T) {
	setEnvVars(t, map[string]string{"AUTH_ACCESS_TOKEN_TTL": "soon"})

	b := newConfigBuilder()
	b.withEnv()

	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// ── withFlags ─────────────────────────────────────────────────────────────────

// TestWithFlags_ReturnsBuilder verifies the fluent interface.
func TestWithFlags_ReturnsBuilder(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withFlags(nil))
}

// TestWithFlags_SetsErrorOnUnknownFlag verifies that parse errors are kept.
func TestWithFlags_SetsErrorOnUnknownFlag(t *testing.T) {
	b := newConfigBuilder()
	b.withFlags([]string{"-no-such-flag"})

	assert.Error(t, b.err)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

// TestWithJSON_NoOp_WhenNoPathSet verifies that withJSON does nothing when
// no config has a JSONFilePath.
func TestWithJSON_NoOp_WhenNoPathSet(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})
	b.withJSON()

	assert.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
}

// TestWithJSON_AppendsConfig_WhenValidFile verifies that a valid JSON file is
// parsed and appended.
func TestWithJSON_AppendsConfig_WhenValidFile(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.App.Version = "json-version"
	payload.Auth.TokenIssuer = "json-issuer"
	path := writeTempJSONConfig(t, payload)

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, "json-version", b.configs[1].App.Version)
	assert.Equal(t, "json-issuer", b.configs[1].Auth.TokenIssuer)
}

// TestWithJSON_SetsError_WhenFileNotFound verifies that a missing file path
// sets b.err.
func TestWithJSON_SetsError_WhenFileNotFound(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		JSONFilePath: "/nonexistent/config.json",
	})
	b.withJSON()

	assert.Error(t, b.err)
}

// TestWithJSON_UsesLastPath verifies that when multiple configs have a
// JSONFilePath, the last non-empty one wins.
func TestWithJSON_UsesLastPath(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.App.Version = "last-wins"
	path := writeTempJSONConfig(t, payload)

	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{JSONFilePath: "/nonexistent/first.json"},
		&StructuredConfig{JSONFilePath: path},
	)
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 3)
	assert.Equal(t, "last-wins", b.configs[2].App.Version)
}

// ── GetStructuredConfig ───────────────────────────────────────────────────────

// TestGetStructuredConfig_AllSources verifies the full pipeline: dotenv,
// env, flags and JSON, with JSON taking the highest priority.
func TestGetStructuredConfig_AllSources(t *testing.T) {
	clearEnvVars(t)

	dotenv := writeTempFile(t, "AUTH_REFRESH_TOKEN_SECRET=dotenv-refresh\nAPP_VERSION=dotenv-version\n")
	setEnvVars(t, map[string]string{
		"DOTENV":                              dotenv,
		"AUTH_ACCESS_TOKEN_SECRET":            "env-access",
		"STORAGE_DB_DATABASE_URI":             "mongodb://env:27017",
		"ADAPTER_MEDIA_CLOUDINARY_CLOUD_NAME": "demo",
		"ADAPTER_MEDIA_CLOUDINARY_API_KEY":    "key",
		"ADAPTER_MEDIA_CLOUDINARY_API_SECRET": "secret",
	})
	t.Cleanup(func() { _ = os.Unsetenv("AUTH_REFRESH_TOKEN_SECRET") })
	t.Cleanup(func() { _ = os.Unsetenv("APP_VERSION") })

	payload := StructuredJSONConfig{}
	payload.Server.HTTPAddress = "127.0.0.1:9000"
	path := writeTempJSONConfig(t, payload)

	cfg, err := GetStructuredConfig([]string{"-c", path, "-token-issuer", "flag-issuer"})
	require.NoError(t, err)

	assert.Equal(t, "dotenv-version", cfg.App.Version)
	assert.Equal(t, "dotenv-refresh", cfg.Auth.RefreshTokenSecret)
	assert.Equal(t, "env-access", cfg.Auth.AccessTokenSecret)
	assert.Equal(t, "flag-issuer", cfg.Auth.TokenIssuer)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.HTTPAddress)
	assert.Equal(t, "mongodb://env:27017", cfg.Storage.DB.DSN)
}
