package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	opts, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, "localhost:8080", opts.Port)
	assert.Equal(t, BackendFile, opts.Backend)
	assert.Equal(t, "data", opts.DataDir)
	assert.Equal(t, "bcrypt", opts.PasswordMode)
}

func TestParse_ConfigFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	cfg := filepath.Join(dir, "tranum.json")
	require.NoError(t, os.WriteFile(cfg, []byte(`{"port":":9000","admin_secret_code":"from-file","password_mode":"plain"}`), 0o600))
	t.Setenv("ADMIN_SECRET_CODE", "from-env")

	opts, err := Parse([]string{"-c", cfg, "-a", ":7000"})
	require.NoError(t, err)
	assert.Equal(t, ":9000", opts.Port, "file overrides flags")
	assert.Equal(t, "from-env", opts.AdminSecretCode, "env overrides file")
	assert.Equal(t, "plain", opts.PasswordMode)
}

func TestParse_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LOG_LEVEL=debug\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("LOG_LEVEL") })

	opts, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, "debug", opts.LogLevel)
}

func TestParse_Errors(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := Parse([]string{"-backend", "redis"})
	assert.ErrorContains(t, err, "unknown backend")

	_, err = Parse([]string{"-backend", "postgres"})
	assert.ErrorContains(t, err, "DSN")

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))
	_, err = Parse([]string{"-config", bad})
	assert.ErrorContains(t, err, "parsing config file")
}
