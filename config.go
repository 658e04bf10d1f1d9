package stone

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config bundles the tunables for a full analysis run.
type Config struct {
	Solver      SolverConfig    `yaml:"solver"`
	Fit         FitConfig       `yaml:"fit"`
	Bootstrap   BootstrapConfig `yaml:"bootstrap"`
	Sensitivity struct {
		GridSize int `yaml:"grid_size"`
	} `yaml:"sensitivity"`
}

// DefaultConfig returns the defaults used by the bundled analyses.
func DefaultConfig() Config {
	c := Config{
		Solver:    DefaultSolverConfig(),
		Fit:       DefaultFitConfig(),
		Bootstrap: DefaultBootstrapConfig(),
	}
	c.Sensitivity.GridSize = 13
	return c
}

// LoadConfig reads a YAML config file; fields absent from the file keep
// their defaults.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()

	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

// Validate rejects configurations that would make the solver or the
// analyses meaningless.
func (c Config) Validate() error {
	switch {
	case c.Solver.Tol <= 0:
		return fmt.Errorf("%w: solver tol = %g, must be positive", ErrInvalidInput, c.Solver.Tol)
	case c.Solver.MaxIter < 1:
		return fmt.Errorf("%w: solver max_iter = %d, must be at least 1", ErrInvalidInput, c.Solver.MaxIter)
	case c.Bootstrap.Replicates < 1:
		return fmt.Errorf("%w: bootstrap replicates = %d, must be at least 1", ErrInvalidInput, c.Bootstrap.Replicates)
	case c.Bootstrap.Confidence <= 0 || c.Bootstrap.Confidence >= 1:
		return fmt.Errorf("%w: bootstrap confidence = %g, must be in (0,1)", ErrInvalidInput, c.Bootstrap.Confidence)
	case c.Bootstrap.GridSize < 2:
		return fmt.Errorf("%w: bootstrap grid_size = %d, must be at least 2", ErrInvalidInput, c.Bootstrap.GridSize)
	case c.Sensitivity.GridSize < 2:
		return fmt.Errorf("%w: sensitivity grid_size = %d, must be at least 2", ErrInvalidInput, c.Sensitivity.GridSize)
	}
	return c.Fit.Start.Validate()
}

// Model returns a Model using the configured solver tolerances.
func (c Config) Model() Model {
	return Model{Rtot: Rtot, Solver: c.Solver}
}
