package stone

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	m := cfg.Model()
	assert.Equal(t, Rtot, m.Rtot)
	assert.Equal(t, DefaultSolverConfig(), m.Solver)
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analysis.yaml")
	content := []byte(`
solver:
  tol: 1e-8
bootstrap:
  replicates: 200
  seed: 7
fit:
  start:
    scale: 0.2
    kd: 2e-9
    kx: 1e-4
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 1e-8, cfg.Solver.Tol)
	assert.Equal(t, 200, cfg.Bootstrap.Replicates)
	assert.Equal(t, int64(7), cfg.Bootstrap.Seed)
	assert.Equal(t, 0.2, cfg.Fit.Start.Scale)

	// Untouched fields keep their defaults.
	assert.Equal(t, DefaultSolverConfig().MaxIter, cfg.Solver.MaxIter)
	assert.Equal(t, DefaultBootstrapConfig().Confidence, cfg.Bootstrap.Confidence)
	assert.Equal(t, 13, cfg.Sensitivity.GridSize)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("bootstrap:\n  confidence: 2\n"), 0o600))

	_, err := LoadConfig(path)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestConfigValidateCases(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero solver tol", func(c *Config) { c.Solver.Tol = 0 }},
		{"zero solver iters", func(c *Config) { c.Solver.MaxIter = 0 }},
		{"zero replicates", func(c *Config) { c.Bootstrap.Replicates = 0 }},
		{"confidence too high", func(c *Config) { c.Bootstrap.Confidence = 1 }},
		{"tiny bootstrap grid", func(c *Config) { c.Bootstrap.GridSize = 1 }},
		{"tiny sensitivity grid", func(c *Config) { c.Sensitivity.GridSize = 1 }},
		{"bad fit start", func(c *Config) { c.Fit.Start.Kd = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			require.ErrorIs(t, cfg.Validate(), ErrInvalidInput)
		})
	}
}
