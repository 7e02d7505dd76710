package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/torus/internal/palette"
	"github.com/san-kum/torus/internal/sim"
)

const (
	DefaultOutput = "pictures"
	DefaultFormat = "png"
	DefaultFPS    = 10
	DefaultScale  = 1
	DefaultData   = "data"
)

var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Height     int     `yaml:"height"`
	Frames     int     `yaml:"frames"`
	Seed       uint64  `yaml:"seed"`
	Colors     int     `yaml:"colors"`
	Saturation float64 `yaml:"saturation"`
	Value      float64 `yaml:"value"`
	Layer      string  `yaml:"layer"`
	Output     string  `yaml:"output"`
	Format     string  `yaml:"format"`
	Scale      int     `yaml:"scale"`
	GIF        string  `yaml:"gif,omitempty"`
	Video      string  `yaml:"video,omitempty"`
	Chart      string  `yaml:"chart,omitempty"`
	FPS        int     `yaml:"fps"`
	Save       bool    `yaml:"save"`
	DataDir    string  `yaml:"data_dir"`
}

func DefaultConfig() *Config {
	return &Config{
		Height:     sim.DefaultHeight,
		Frames:     sim.DefaultFrames,
		Seed:       sim.DefaultSeed,
		Colors:     palette.DefaultCount,
		Saturation: palette.DefaultSaturation,
		Value:      palette.DefaultValue,
		Layer:      string(sim.LayerTrace),
		Output:     DefaultOutput,
		Format:     DefaultFormat,
		Scale:      DefaultScale,
		FPS:        DefaultFPS,
		DataDir:    DefaultData,
	}
}

// Load reads a YAML file over the defaults; fields absent from the file keep
// their default value.
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

func (c *Config) Validate() error {
	switch {
	case c.Height <= 0:
		return fmt.Errorf("%w: height must be positive, got %d", ErrInvalid, c.Height)
	case c.Frames < 0:
		return fmt.Errorf("%w: frames must not be negative, got %d", ErrInvalid, c.Frames)
	case c.Colors <= 0 || c.Colors > 256:
		return fmt.Errorf("%w: colors must be in [1, 256], got %d", ErrInvalid, c.Colors)
	case c.Saturation < 0 || c.Saturation > 1:
		return fmt.Errorf("%w: saturation must be in [0, 1], got %g", ErrInvalid, c.Saturation)
	case c.Value < 0 || c.Value > 1:
		return fmt.Errorf("%w: value must be in [0, 1], got %g", ErrInvalid, c.Value)
	case c.Scale < 1:
		return fmt.Errorf("%w: scale must be at least 1, got %d", ErrInvalid, c.Scale)
	case c.FPS < 1:
		return fmt.Errorf("%w: fps must be at least 1, got %d", ErrInvalid, c.FPS)
	}
	if _, err := sim.ParseLayer(c.Layer); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Width is always twice the height.
func (c *Config) Width() int { return c.Height * 2 }

// SimConfig extracts the part of the configuration the simulation needs.
func (c *Config) SimConfig() (sim.Config, error) {
	layer, err := sim.ParseLayer(c.Layer)
	if err != nil {
		return sim.Config{}, err
	}
	return sim.Config{
		Height:     c.Height,
		Seed:       c.Seed,
		Colors:     c.Colors,
		Saturation: c.Saturation,
		Value:      c.Value,
		Layer:      layer,
	}, nil
}
