// Package config loads scan settings from a config file, environment
// variables, and defaults. Flags bound by the CLI take precedence over all
// three.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// configName is the config file name without extension.
const configName = ".treeline"

// configType is the config file format.
const configType = "yaml"

// envPrefix is the environment variable prefix for treeline settings.
const envPrefix = "TREELINE"

// Defaults.
const (
	DefaultFormat   = "yaml"
	DefaultBaseline = "HEAD"
	DefaultMaxFiles = 10000
	DefaultMaxDefs  = 50
)

// Config holds the effective scan settings.
type Config struct {
	Format    string   `mapstructure:"format"`
	Baseline  string   `mapstructure:"baseline"`
	Diff      bool     `mapstructure:"diff"`
	Languages []string `mapstructure:"languages"`
	MaxFiles  int      `mapstructure:"max_files"`
	MaxDefs   int      `mapstructure:"max_defs"`
	Workers   int      `mapstructure:"workers"`
}

// Validate rejects settings the scanner cannot honor.
func (c *Config) Validate() error {
	switch c.Format {
	case "yaml", "text":
	default:
		return fmt.Errorf("invalid format %q (want yaml or text)", c.Format)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	return nil
}

// Load reads configuration from file, env vars, and defaults. If configPath
// is non-empty it names the config file explicitly; otherwise the file is
// searched in CWD and $HOME. A missing config file is not an error.
func Load(configPath string) (*Config, error) {
	v := newViper()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && configPath == "" {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if configPath != "" && !os.IsNotExist(err) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config %s: %w", configPath, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	applyDefaults(v)
	v.SetConfigType(configType)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func applyDefaults(v *viper.Viper) {
	v.SetDefault("format", DefaultFormat)
	v.SetDefault("baseline", DefaultBaseline)
	v.SetDefault("diff", true)
	v.SetDefault("languages", []string{})
	v.SetDefault("max_files", DefaultMaxFiles)
	v.SetDefault("max_defs", DefaultMaxDefs)
	v.SetDefault("workers", 0)
}
