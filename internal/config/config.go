package config

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"snakegym/internal/env"
	"snakegym/internal/policy"
)

// Config is the root configuration structure
type Config struct {
	Seed    int64     `yaml:"seed"` // 0 is treated as unset and becomes 1337
	Env     EnvConfig `yaml:"env"`
	Run     RunConfig `yaml:"run"`
	Logging LogConfig `yaml:"logging"`
}

// EnvConfig defines environment parameters
type EnvConfig struct {
	Rows        int `yaml:"rows"`
	Cols        int `yaml:"cols"`
	StartLength int `yaml:"start_length"`
	MaxSteps    int `yaml:"max_steps"` // 0 = unlimited
}

// RunConfig defines how episodes are driven
type RunConfig struct {
	Episodes int    `yaml:"episodes"`
	Policy   string `yaml:"policy"` // straight|wall_avoid|random|greedy
	DelayMS  int    `yaml:"delay_ms"`
	Workers  int    `yaml:"workers"`
}

// LogConfig defines logging parameters
type LogConfig struct {
	Level  string `yaml:"level"`  // trace|debug|info|warn|error
	Format string `yaml:"format"` // console|json
}

// Load reads a YAML config file and returns a Config
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes YAML config data and applies defaults
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration used when no file is given
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Seed == 0 {
		cfg.Seed = 1337
	}
	if cfg.Env.Rows == 0 {
		cfg.Env.Rows = 12
	}
	if cfg.Env.Cols == 0 {
		cfg.Env.Cols = 12
	}
	if cfg.Env.StartLength == 0 {
		cfg.Env.StartLength = env.DefaultLength
	}
	if cfg.Run.Episodes == 0 {
		cfg.Run.Episodes = 10
	}
	if cfg.Run.Policy == "" {
		cfg.Run.Policy = policy.NameWallAvoid
	}
	if cfg.Run.DelayMS == 0 {
		cfg.Run.DelayMS = 100
	}
	if cfg.Run.Workers == 0 {
		cfg.Run.Workers = runtime.NumCPU()
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
}

// Validate rejects configurations the engine cannot run
func (c *Config) Validate() error {
	if c.Env.Rows < env.MinGridSize || c.Env.Cols < env.MinGridSize {
		return fmt.Errorf("env: %dx%d: %w", c.Env.Rows, c.Env.Cols, env.ErrInvalidDimensions)
	}
	if c.Env.StartLength < 1 {
		return fmt.Errorf("env: start_length %d: %w", c.Env.StartLength, env.ErrInvalidLength)
	}
	if c.Env.MaxSteps < 0 {
		return fmt.Errorf("env: max_steps must not be negative, got %d", c.Env.MaxSteps)
	}
	if c.Run.Episodes < 0 {
		return fmt.Errorf("run: episodes must not be negative, got %d", c.Run.Episodes)
	}
	if _, err := policy.ByName(c.Run.Policy, c.Seed); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging: unknown format %q", c.Logging.Format)
	}
	return nil
}

// EnvOptions returns engine options for the given seed
func (c *Config) EnvOptions(seed int64) env.Options {
	return env.Options{
		Rows:        c.Env.Rows,
		Cols:        c.Env.Cols,
		StartLength: c.Env.StartLength,
		MaxSteps:    c.Env.MaxSteps,
		Seed:        seed,
	}
}
