// Package config resolves runtime settings from defaults, an optional config
// file and NODEDEX_* environment variables, in that order. Command-line
// flags override all three.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"nodedex/internal/adapters/sqlite"
)

// Config carries the settings shared by every binary.
type Config struct {
	DatabasePath string
	LogLevel     string
	AutoSeed     bool
	SearchLimit  int
}

// Load reads the effective configuration. The config file is
// <user config dir>/nodedex/config.yaml and is optional.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("NODEDEX")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("database", sqlite.DefaultPath())
	v.SetDefault("log-level", "info")
	v.SetDefault("auto-seed", true)
	v.SetDefault("search-limit", 20)

	if dir, err := os.UserConfigDir(); err == nil {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(dir, "nodedex"))
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	return &Config{
		DatabasePath: v.GetString("database"),
		LogLevel:     v.GetString("log-level"),
		AutoSeed:     v.GetBool("auto-seed"),
		SearchLimit:  v.GetInt("search-limit"),
	}, nil
}

// ApplyFlags overrides settings with flags the user actually set.
func (c *Config) ApplyFlags(flags *pflag.FlagSet) {
	if f := flags.Lookup("database"); f != nil && f.Changed {
		c.DatabasePath = f.Value.String()
	}
	if f := flags.Lookup("log-level"); f != nil && f.Changed {
		c.LogLevel = f.Value.String()
	}
}
