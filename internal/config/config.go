package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/omni-webdev/svt/internal/field"
	"github.com/omni-webdev/svt/internal/sim"
)

const (
	DefaultFrames   = 60
	DefaultEpsilon  = 0.1
	DefaultGridN    = 300
	DefaultGridHalf = 5.0
)

// Config is the yaml-facing description of a field scenario.
type Config struct {
	Name        string         `yaml:"name"`
	Axes        []AxisConfig   `yaml:"axes"`
	Sources     []SourceConfig `yaml:"sources"`
	Frames      int            `yaml:"frames"`
	Epsilon     float64        `yaml:"epsilon"`
	ZDrift      float64        `yaml:"z_drift"`
	EnergyScale float64        `yaml:"energy_scale"`
}

type AxisConfig struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
	N   int     `yaml:"n"`
}

type SourceConfig struct {
	Kind      string  `yaml:"kind"`
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	Z         float64 `yaml:"z,omitempty"`
	Strength  float64 `yaml:"strength"`
	Amplitude float64 `yaml:"amplitude,omitempty"`
	Period    int     `yaml:"period,omitempty"`
}

func DefaultConfig() *Config {
	ax := AxisConfig{Min: -DefaultGridHalf, Max: DefaultGridHalf, N: DefaultGridN}
	return &Config{
		Name:    "custom",
		Axes:    []AxisConfig{ax, ax},
		Frames:  DefaultFrames,
		Epsilon: DefaultEpsilon,
	}
}

// Clone returns a copy with its own slices, so flag overrides on a
// preset never reach the shared map entry.
func (c *Config) Clone() *Config {
	out := *c
	out.Axes = append([]AxisConfig(nil), c.Axes...)
	out.Sources = append([]SourceConfig(nil), c.Sources...)
	return &out
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Build turns the declarative config into a validated scenario.
func (c *Config) Build() (*sim.Scenario, error) {
	axes := make([]field.Axis, len(c.Axes))
	for i, a := range c.Axes {
		axes[i] = field.Axis{Min: a.Min, Max: a.Max, N: a.N}
	}
	grid, err := field.NewGrid(axes...)
	if err != nil {
		return nil, err
	}

	sources := make([]field.Source, len(c.Sources))
	for i, s := range c.Sources {
		pos := []float64{s.X, s.Y}
		if grid.Dim() == 3 {
			pos = append(pos, s.Z)
		}
		src := field.Source{
			Pos:      pos,
			Kind:     field.Kind(s.Kind),
			Strength: s.Strength,
		}
		if s.Amplitude != 0 {
			period := s.Period
			if period == 0 {
				period = c.Frames
			}
			src.Mod = &field.Modulation{Amplitude: s.Amplitude, PeriodFrames: period}
		}
		sources[i] = src
	}

	eps := c.Epsilon
	if eps == 0 {
		eps = DefaultEpsilon
	}
	frames := c.Frames
	if frames == 0 {
		frames = 1
	}

	sc := &sim.Scenario{
		Name:        c.Name,
		Grid:        grid,
		Sources:     sources,
		Frames:      frames,
		Epsilon:     eps,
		ZDrift:      c.ZDrift,
		EnergyScale: c.EnergyScale,
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}
