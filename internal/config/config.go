// Package config provides configuration loading for kmseg. Configuration
// comes from a YAML file with environment variable overrides; either layer
// is optional and defaults apply where both are silent.
package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/zeeshanabi97/kmseg/internal/errs"
	"github.com/zeeshanabi97/kmseg/internal/filter"
	"github.com/zeeshanabi97/kmseg/internal/segment"
)

// Config holds the tunable defaults for the segmentation pipeline. Command
// line flags still win over everything in here.
type Config struct {
	Segment struct {
		// Clusters is the default cluster count K.
		Clusters int `yaml:"clusters"`

		// SeedMode selects how the random seed is derived
		// (content, filepath, manual, random).
		SeedMode string `yaml:"seedMode"`
	} `yaml:"segment"`

	Filter struct {
		// Kind names the default preprocessing filter.
		Kind string `yaml:"kind"`

		KernelSize int     `yaml:"kernelSize"`
		Sigma      float64 `yaml:"sigma"`
		Diameter   int     `yaml:"diameter"`
		SigmaColor float64 `yaml:"sigmaColor"`
		SigmaSpace float64 `yaml:"sigmaSpace"`
		Amount     float64 `yaml:"amount"`
	} `yaml:"filter"`

	Image struct {
		// MaxPixels is the pixel count above which loaded images are
		// downsampled before processing.
		MaxPixels int `yaml:"maxPixels"`
	} `yaml:"image"`

	Output struct {
		// MasksDir is the default directory for exported cluster masks.
		MasksDir string `yaml:"masksDir"`

		// Verbose enables debug logging.
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// Default returns a configuration with built-in defaults.
func Default() *Config {
	cfg := &Config{}

	cfg.Segment.Clusters = 3
	cfg.Segment.SeedMode = string(segment.SeedRandom)

	p := filter.DefaultParams()
	cfg.Filter.Kind = string(filter.None)
	cfg.Filter.KernelSize = p.KernelSize
	cfg.Filter.Sigma = p.Sigma
	cfg.Filter.Diameter = p.Diameter
	cfg.Filter.SigmaColor = p.SigmaColor
	cfg.Filter.SigmaSpace = p.SigmaSpace
	cfg.Filter.Amount = p.Amount

	cfg.Image.MaxPixels = 12000000
	cfg.Output.MasksDir = "masks"
	cfg.Output.Verbose = false

	return cfg
}

// Load reads configuration from path, applying defaults for anything the
// file omits and environment overrides on top. A missing file is not an
// error; defaults plus environment apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, errs.IO("reading config file", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errs.IO("parsing config file", err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the loaded values against the pipeline's accepted ranges.
func (c *Config) Validate() error {
	if c.Segment.Clusters < segment.MinClusters || c.Segment.Clusters > segment.MaxClusters {
		return errs.InvalidInput("config: clusters must be between %d and %d, got %d",
			segment.MinClusters, segment.MaxClusters, c.Segment.Clusters)
	}
	if !segment.IsValidSeedMode(segment.SeedMode(c.Segment.SeedMode)) {
		return errs.InvalidInput("config: unknown seed mode %q", c.Segment.SeedMode)
	}
	kind, err := filter.ParseKind(c.Filter.Kind)
	if err != nil {
		return err
	}
	if err := c.FilterParams().Validate(kind); err != nil {
		return err
	}
	if c.Image.MaxPixels < 1 {
		return errs.InvalidInput("config: maxPixels must be positive, got %d", c.Image.MaxPixels)
	}
	return nil
}

// FilterParams converts the filter section into pipeline parameters.
func (c *Config) FilterParams() filter.Params {
	return filter.Params{
		KernelSize: c.Filter.KernelSize,
		Sigma:      c.Filter.Sigma,
		Diameter:   c.Filter.Diameter,
		SigmaColor: c.Filter.SigmaColor,
		SigmaSpace: c.Filter.SigmaSpace,
		Amount:     c.Filter.Amount,
	}
}

// Save writes the configuration to a YAML file.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errs.IO("marshaling config", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errs.IO("writing config file", err)
	}
	return nil
}

// applyEnv overlays KMSEG_* environment variables onto cfg.
func applyEnv(cfg *Config) {
	if v := os.Getenv("KMSEG_CLUSTERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Segment.Clusters = n
		}
	}
	if v := os.Getenv("KMSEG_SEED_MODE"); v != "" {
		cfg.Segment.SeedMode = v
	}
	if v := os.Getenv("KMSEG_FILTER"); v != "" {
		cfg.Filter.Kind = v
	}
	if v := os.Getenv("KMSEG_MASKS_DIR"); v != "" {
		cfg.Output.MasksDir = v
	}
	if v := os.Getenv("KMSEG_MAX_PIXELS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Image.MaxPixels = n
		}
	}
	if v := os.Getenv("KMSEG_VERBOSE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Output.Verbose = b
		}
	}
}
