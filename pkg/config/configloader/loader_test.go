package configloader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Server struct {
		Port    int           `koanf:"port"`
		Timeout time.Duration `koanf:"timeout"`
	} `koanf:"server"`
	Log struct {
		Level string `koanf:"level"`
	} `koanf:"log"`
}

func (c *testConfig) Validate() error {
	if c.Server.Port <= 0 {
		return errors.New("port must be positive")
	}
	return nil
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func Test_Load_Precedence(t *testing.T) {
	// given
	dir := t.TempDir()
	yamlPath := writeFile(t, dir, "config.yaml", "server:\n  port: 8080\n  timeout: 5s\nlog:\n  level: info\n")
	envPath := writeFile(t, dir, ".env", "TESTSVC_LOG_LEVEL=warn\nOTHER_LOG_LEVEL=error\n")
	t.Setenv("TESTSVC_SERVER_PORT", "9090")

	// when
	cfg, err := Load[*testConfig]("testsvc", WithConfigFile(yamlPath), WithEnvFile(envPath))

	// then
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port, "process env wins over yaml")
	assert.Equal(t, 5*time.Second, cfg.Server.Timeout)
	assert.Equal(t, "warn", cfg.Log.Level, ".env wins over yaml, foreign prefixes are ignored")
}

func Test_Load_MissingFilesAreIgnored(t *testing.T) {
	// given
	dir := t.TempDir()
	t.Setenv("TESTSVC_SERVER_PORT", "7000")

	// when
	cfg, err := Load[*testConfig]("testsvc",
		WithConfigFile(filepath.Join(dir, "missing.yaml")),
		WithEnvFile(filepath.Join(dir, "missing.env")))

	// then
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Server.Port)
}

func Test_Load_ValidationError(t *testing.T) {
	// given
	dir := t.TempDir()
	yamlPath := writeFile(t, dir, "config.yaml", "server:\n  port: 0\n")

	// when
	_, err := Load[*testConfig]("testsvc", WithConfigFile(yamlPath), WithEnvFile(filepath.Join(dir, "none")))

	// then
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}
