// Package config loads the editor settings from YAML.
package config

import (
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/memmaker/voxedit/engine/util"
	"github.com/memmaker/voxedit/engine/voxel"
)

type Config struct {
	// MaxChangedBlocks caps the blocks one operation may change, -1 for
	// no cap.
	MaxChangedBlocks   int   `yaml:"max_changed_blocks"`
	FloodFillRadius    int   `yaml:"flood_fill_radius"`
	MaxFloodFillRadius int   `yaml:"max_flood_fill_radius"`
	WorldMaxHeight     int   `yaml:"world_max_height"`
	ProtectedBlocks    []int `yaml:"protected_blocks"`

	LogLevel      string   `yaml:"log_level"`
	LogCategories []string `yaml:"log_categories"`
	// Development switches the zap backend to human readable output.
	Development bool `yaml:"development"`
}

func Default() Config {
	return Config{
		MaxChangedBlocks:   -1,
		FloodFillRadius:    5,
		MaxFloodFillRadius: 32,
		WorldMaxHeight:     255,
		ProtectedBlocks:    []int{voxel.BEDROCK},
		LogLevel:           "warning",
		LogCategories:      []string{"voxel", "region", "traversal", "clipboard", "io", "config"},
	}
}

func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "read config")
	}
	cfg, err := Parse(raw)
	if err != nil {
		return Config{}, errors.Wrap(err, path)
	}
	util.LogConfigInfo("loaded config", zap.String("path", path))
	return cfg, nil
}

// Parse reads YAML on top of Default, so omitted keys keep their
// defaults.
func Parse(raw []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "config yaml")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.MaxChangedBlocks < -1 {
		return errors.Errorf("max_changed_blocks %d must be -1 or more", c.MaxChangedBlocks)
	}
	if c.MaxFloodFillRadius < 0 {
		return errors.Errorf("max_flood_fill_radius %d is negative", c.MaxFloodFillRadius)
	}
	if c.FloodFillRadius < 0 || c.FloodFillRadius > c.MaxFloodFillRadius {
		return errors.Errorf("flood_fill_radius %d outside of [0, %d]", c.FloodFillRadius, c.MaxFloodFillRadius)
	}
	if c.WorldMaxHeight < 0 {
		return errors.Errorf("world_max_height %d is negative", c.WorldMaxHeight)
	}
	if _, ok := util.ParseLogLevel(c.LogLevel); !ok {
		return errors.Errorf("unknown log_level %q", c.LogLevel)
	}
	for _, name := range c.LogCategories {
		if _, ok := util.ParseLogCategory(name); !ok {
			return errors.Errorf("unknown log category %q", name)
		}
	}
	return nil
}

// BuildLogger creates the zap backend. zap itself logs everything from
// debug up; filtering happens in util's level and category masks.
func (c *Config) BuildLogger() (*zap.Logger, error) {
	zapConfig := zap.NewProductionConfig()
	if c.Development {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	return zapConfig.Build()
}

// ApplyLogging installs the configured level, categories and backend.
func (c *Config) ApplyLogging() error {
	level, ok := util.ParseLogLevel(c.LogLevel)
	if !ok {
		return errors.Errorf("unknown log_level %q", c.LogLevel)
	}
	var categories util.LogCategory
	for _, name := range c.LogCategories {
		category, known := util.ParseLogCategory(name)
		if !known {
			return errors.Errorf("unknown log category %q", name)
		}
		categories |= category
	}
	logger, err := c.BuildLogger()
	if err != nil {
		return errors.Wrap(err, "build logger")
	}
	util.SetLogFilter(level, categories)
	util.SetLogger(logger)
	return nil
}
