// SPDX-License-Identifier: MIT
package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/katalvlaran/percolate/config"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "percolate.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestDefault_IsValid(t *testing.T) {
	require.NoError(t, config.Default().Validate())
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := writeFile(t, `
data_dir: /tmp/percolate
backend: badger
compression: lz4
workers: 8
seed: 42
log:
  level: debug
  format: json
`)
	t.Setenv("PERCOLATE_WORKERS", "2")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "/tmp/percolate", cfg.DataDir)
	require.Equal(t, config.BackendBadger, cfg.Backend)
	require.Equal(t, "lz4", cfg.Compression)
	require.Equal(t, 2, cfg.Workers, "environment wins over the file")
	require.Equal(t, int64(42), cfg.Seed)
	require.Equal(t, "json", cfg.Log.Format)
	require.InDelta(t, 1e-10, cfg.EigenTol, 0, "unset keys keep defaults")
}

func TestLoad_NoFile(t *testing.T) {
	t.Setenv("PERCOLATE_BACKEND", "memory")
	t.Setenv("PERCOLATE_SEED", "-3")

	cfg, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, config.BackendMemory, cfg.Backend)
	require.Equal(t, int64(-3), cfg.Seed)
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = config.Load(writeFile(t, "unknown_key: 1\n"))
	require.Error(t, err, "unknown keys are rejected")

	_, err = config.Load(writeFile(t, "backend: tape\n"))
	require.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = config.Load(writeFile(t, "backend: minio\nminio:\n  endpoint: ''\n"))
	require.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = config.Load(writeFile(t, "data_dir: ''\n"))
	require.ErrorIs(t, err, config.ErrInvalidConfig)

	t.Setenv("PERCOLATE_WORKERS", "many")
	_, err = config.Load("")
	require.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestValidate_Domains(t *testing.T) {
	mutations := map[string]func(*config.Config){
		"workers":     func(c *config.Config) { c.Workers = 0 },
		"compression": func(c *config.Config) { c.Compression = "brotli" },
		"eigen_tol":   func(c *config.Config) { c.EigenTol = -1 },
		"log level":   func(c *config.Config) { c.Log.Level = "trace" },
		"log format":  func(c *config.Config) { c.Log.Format = "xml" },
	}
	for name, mutate := range mutations {
		cfg := config.Default()
		mutate(&cfg)
		require.ErrorIs(t, cfg.Validate(), config.ErrInvalidConfig, name)
	}
}
