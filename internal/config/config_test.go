package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	valid := &Config{
		App:     AppConfig{Environment: "development"},
		Logger:  LoggerConfig{Level: "info"},
		Catalog: CatalogConfig{RecordStoreURL: "http://localhost:8800"},
		Data:    DataConfig{BasePath: "/tmp/shelfline"},
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty environment", func(c *Config) { c.App.Environment = "" }},
		{"unknown environment", func(c *Config) { c.App.Environment = "sandbox" }},
		{"bad log level", func(c *Config) { c.Logger.Level = "verbose" }},
		{"missing record store URL", func(c *Config) { c.Catalog.RecordStoreURL = "" }},
		{"missing data path", func(c *Config) { c.Data.BasePath = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := *valid
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestGetConfigValue_Precedence(t *testing.T) {
	t.Setenv("SHELFLINE_TEST_KEY", "from-env")

	assert.Equal(t, "from-flag", getConfigValue("from-flag", "SHELFLINE_TEST_KEY", "default"))
	assert.Equal(t, "from-env", getConfigValue("", "SHELFLINE_TEST_KEY", "default"))
	assert.Equal(t, "default", getConfigValue("", "SHELFLINE_TEST_MISSING", "default"))
}

func TestParseDurationValue(t *testing.T) {
	d, err := parseDurationValue("", "SHELFLINE_TEST_NO_SUCH_DURATION", "45s")
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, d)

	_, err = parseDurationValue("not-a-duration", "SHELFLINE_TEST_NO_SUCH_DURATION", "45s")
	assert.Error(t, err)
}

func TestSplitOrigins(t *testing.T) {
	assert.Equal(t, []string{"*"}, splitOrigins("*"))
	assert.Equal(t,
		[]string{"http://localhost:3000", "https://admin.example.com"},
		splitOrigins(" http://localhost:3000 , https://admin.example.com "))
}

func TestExpandPath(t *testing.T) {
	abs, err := expandPath("relative/dir", "")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(abs))

	got, err := expandPath("", "/fallback/path")
	require.NoError(t, err)
	assert.Equal(t, "/fallback/path", got)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	content := "# comment\nSHELFLINE_ENV_FILE_KEY=hello\nSHELFLINE_ENV_QUOTED=\"quoted\"\n"
	require.NoError(t, os.WriteFile(envPath, []byte(content), 0o600))

	t.Setenv("SHELFLINE_ENV_FILE_KEY", "")
	os.Unsetenv("SHELFLINE_ENV_FILE_KEY")
	os.Unsetenv("SHELFLINE_ENV_QUOTED")

	require.NoError(t, loadEnvFile(envPath))
	assert.Equal(t, "hello", os.Getenv("SHELFLINE_ENV_FILE_KEY"))
	assert.Equal(t, "quoted", os.Getenv("SHELFLINE_ENV_QUOTED"))

	// Missing file is reported, callers ignore it.
	assert.Error(t, loadEnvFile(filepath.Join(dir, "missing.env")))
}
