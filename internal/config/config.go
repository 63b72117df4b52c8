// Package config loads the demo application's configuration: which named
// schedulers to boot, their worker counts, and logging parameters.
package config

import (
	"github.com/Je06jm/CrowFramework/internal/errs"
	"github.com/Je06jm/CrowFramework/internal/profile"
	"github.com/Je06jm/CrowFramework/pkg/glog"
)

// SchedulerConfig describes one scheduler to boot at startup.
type SchedulerConfig struct {
	// Name is a diagnostic label; the Attribute bound to the scheduler is
	// minted from it unless it matches one of the well-known names.
	Name string `yaml:"name"`
	// Workers is the total worker count, including the caller's own thread
	// when the scheduler is driven via Run.
	Workers int `yaml:"workers"`
}

// Config is the demo application's top-level configuration.
type Config struct {
	Glog       glog.Config       `yaml:"glog"`
	Schedulers []SchedulerConfig `yaml:"schedulers"`
}

// LogConfig implements logger.Env.
func (c *Config) LogConfig() *glog.Config { return &c.Glog }

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	return &Config{
		Glog: *glog.DefaultConfig(),
		Schedulers: []SchedulerConfig{
			{Name: "regular", Workers: 4},
			{Name: "rendering", Workers: 1},
		},
	}
}

// Load reads path (YAML) via the process-wide viper loader and unmarshals it
// into a Config seeded with Default().
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if err := profile.Load(path, cfg); err != nil {
		return nil, errs.ErrReadConfigFile(path, err)
	}
	return cfg, nil
}
