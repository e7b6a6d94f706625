// SPDX-License-Identifier: MIT

// Package config handles amc run configuration loading.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid configuration")

// Model names accepted by GenerateConfig.Model.
const (
	ModelDoubleWell = "double-well"
	ModelOU         = "ou"
)

// Config is the root configuration structure.
type Config struct {
	Input     InputConfig     `yaml:"input"`
	Generate  GenerateConfig  `yaml:"generate"`
	Chain     ChainConfig     `yaml:"chain"`
	Simulate  SimulateConfig  `yaml:"simulate"`
	Committor CommittorConfig `yaml:"committor"`
	Output    OutputConfig    `yaml:"output"`
	Log       LogConfig       `yaml:"log"`
}

// InputConfig selects an observed trajectory. An empty path means the
// trajectory is generated (see GenerateConfig).
type InputConfig struct {
	Trajectory string `yaml:"trajectory"`
	Header     bool   `yaml:"header"` // first CSV line holds column names
}

// GenerateConfig holds synthetic trajectory settings.
type GenerateConfig struct {
	Model    string    `yaml:"model"`
	Sigma    float64   `yaml:"sigma"`
	Theta    float64   `yaml:"theta"` // OU only
	Mu       float64   `yaml:"mu"`    // OU only
	X0       []float64 `yaml:"x0"`
	Samples  int       `yaml:"samples"`
	TimeStep float64   `yaml:"time_step"`
	Thinning int       `yaml:"thinning"`
	Seed     uint64    `yaml:"seed"`
}

// ChainConfig holds analogue chain settings.
type ChainConfig struct {
	K         int `yaml:"k"`
	MaxStates int `yaml:"max_states"`
}

// SimulateConfig holds analogue simulation settings.
type SimulateConfig struct {
	Steps int    `yaml:"steps"`
	Start int    `yaml:"start"`
	Seed  uint64 `yaml:"seed"`
}

// CommittorConfig defines A = {x : x[coordinate] <= a_below} and
// B = {x : x[coordinate] >= b_above}.
type CommittorConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Coordinate int     `yaml:"coordinate"`
	ABelow     float64 `yaml:"a_below"`
	BAbove     float64 `yaml:"b_above"`
}

// OutputConfig holds result destinations.
type OutputConfig struct {
	Dir   string `yaml:"dir"`
	Plots bool   `yaml:"plots"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Default returns the default configuration: a noisy double-well path,
// ten analogues, committor between the two wells.
func Default() *Config {
	return &Config{
		Generate: GenerateConfig{
			Model:    ModelDoubleWell,
			Sigma:    0.7,
			Theta:    1,
			X0:       []float64{-1},
			Samples:  2000,
			TimeStep: 0.01,
			Thinning: 10,
			Seed:     1,
		},
		Chain: ChainConfig{
			K:         10,
			MaxStates: 8192,
		},
		Simulate: SimulateConfig{
			Steps: 2000,
			Seed:  2,
		},
		Committor: CommittorConfig{
			Enabled: true,
			ABelow:  -0.8,
			BAbove:  0.8,
		},
		Output: OutputConfig{
			Dir:   "./amc-out",
			Plots: true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a file on top of Default and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads config from path, or returns default if not found.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// Save writes the configuration atomically.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if c.Input.Trajectory == "" {
		g := c.Generate
		switch g.Model {
		case ModelDoubleWell, ModelOU:
		default:
			bad("generate.model %q, want %q or %q", g.Model, ModelDoubleWell, ModelOU)
		}
		if len(g.X0) == 0 {
			bad("generate.x0 is empty")
		}
		if g.Sigma < 0 {
			bad("generate.sigma=%g < 0", g.Sigma)
		}
		if g.Samples < 1 {
			bad("generate.samples=%d < 1", g.Samples)
		}
		if g.TimeStep <= 0 {
			bad("generate.time_step=%g <= 0", g.TimeStep)
		}
		if g.Thinning < 1 {
			bad("generate.thinning=%d < 1", g.Thinning)
		}
	}
	if c.Chain.K < 1 {
		bad("chain.k=%d < 1", c.Chain.K)
	}
	if c.Chain.MaxStates < 1 {
		bad("chain.max_states=%d < 1", c.Chain.MaxStates)
	}
	if c.Simulate.Steps < 0 {
		bad("simulate.steps=%d < 0", c.Simulate.Steps)
	}
	if c.Simulate.Start < 0 {
		bad("simulate.start=%d < 0", c.Simulate.Start)
	}
	if c.Committor.Enabled {
		if c.Committor.Coordinate < 0 {
			bad("committor.coordinate=%d < 0", c.Committor.Coordinate)
		}
		if c.Committor.ABelow >= c.Committor.BAbove {
			bad("committor.a_below=%g must be below committor.b_above=%g", c.Committor.ABelow, c.Committor.BAbove)
		}
	}
	if c.Output.Dir == "" {
		bad("output.dir is empty")
	}
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// SlogLevel parses Log.Level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(c.Log.Level))); err != nil {
		return 0, fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level)
	}
	return lvl, nil
}
