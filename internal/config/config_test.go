package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
	"PORT", "GIN_MODE", "JWT_SECRET", "CORS_ORIGINS", "LOG_LEVEL", "LOG_FORMAT", "RESOURCE_DIR",
}

// clearEnv blanks every key Load reads; t.Setenv restores them after the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "debug", cfg.GinMode)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, []string{"http://localhost:5173", "http://127.0.0.1:5173"}, cfg.CORSOrigins)
	assert.Empty(t, cfg.ResourceDir)
}

func TestLoad_MissingEnvFileIsIgnored(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))

	assert.NoError(t, err)
}

func TestLoad_EnvFileDoesNotOverrideEnvironment(t *testing.T) {
	clearEnv(t)
	// godotenv only fills keys absent from the environment, even empty ones
	require.NoError(t, os.Unsetenv("DB_NAME"))
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DB_NAME=from_file\nPORT=9090\n"), 0644))
	t.Setenv("PORT", "7070")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from_file", cfg.DBName)
	assert.Equal(t, "7070", cfg.Port)
}

func TestLoad_ReleaseRequiresSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("GIN_MODE", "release")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")

	t.Setenv("JWT_SECRET", "s3cret")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, []byte("s3cret"), cfg.Secret())
}

func TestValidate_RejectsUnknownModes(t *testing.T) {
	cfg := &Config{GinMode: "production", LogFormat: "text"}
	assert.ErrorContains(t, cfg.Validate(), "GIN_MODE")

	cfg = &Config{GinMode: "debug", LogFormat: "xml"}
	assert.ErrorContains(t, cfg.Validate(), "LOG_FORMAT")
}

func TestDSN_EscapesCredentials(t *testing.T) {
	cfg := &Config{
		DBHost:     "db",
		DBPort:     "5433",
		DBUser:     "vat",
		DBPassword: "p@ss/word",
		DBName:     "erp",
		DBSSLMode:  "require",
	}

	assert.Equal(t, "postgres://vat:p%40ss%2Fword@db:5433/erp?sslmode=require", cfg.DSN())
}

func TestSecret_DevelopmentFallback(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, []byte("default_super_secret_key"), cfg.Secret())
}
