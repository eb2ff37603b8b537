package environment

import (
	"github.com/pkg/errors"
	"go.viam.com/utils"

	"go.viam.com/rrtplan/spatialmath"
)

// Config is the JSON description of an Environment.
type Config struct {
	Low       []float64                     `json:"low"`
	High      []float64                     `json:"high"`
	Obstacles []*spatialmath.GeometryConfig `json:"obstacles,omitempty"`
}

// Validate ensures all parts of the config are valid.
func (cfg *Config) Validate(path string) error {
	if len(cfg.Low) == 0 {
		return utils.NewConfigValidationFieldRequiredError(path, "low")
	}
	if len(cfg.High) == 0 {
		return utils.NewConfigValidationFieldRequiredError(path, "high")
	}
	for i, obs := range cfg.Obstacles {
		if obs == nil {
			return utils.NewConfigValidationError(path, errors.Errorf("obstacle %d is empty", i))
		}
		if len(obs.Center) == 0 {
			return utils.NewConfigValidationFieldRequiredError(path, "obstacles.center")
		}
	}
	return nil
}

// Build converts the config into an Environment.
func (cfg *Config) Build() (*Environment, error) {
	obstacles := make([]spatialmath.Geometry, 0, len(cfg.Obstacles))
	for i, obsCfg := range cfg.Obstacles {
		obs, err := obsCfg.ParseConfig()
		if err != nil {
			return nil, errors.Wrapf(err, "obstacle %d", i)
		}
		obstacles = append(obstacles, obs)
	}
	return NewEnvironment(cfg.Low, cfg.High, obstacles)
}

// NewConfig creates the configuration form of an Environment.
func NewConfig(env *Environment) (*Config, error) {
	cfg := &Config{Low: spatialmath.Clone(env.low), High: spatialmath.Clone(env.high)}
	for _, obs := range env.obstacles {
		obsCfg, err := spatialmath.NewGeometryConfig(obs)
		if err != nil {
			return nil, err
		}
		cfg.Obstacles = append(cfg.Obstacles, obsCfg)
	}
	return cfg, nil
}
