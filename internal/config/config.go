// Copyright (c) 2026 Leasemaster Team
// Leasemaster - vehicle leasing management system
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config loads the Leasemaster settings from leasemaster.yaml, the
// LEASEMASTER_* environment and command-line flags, in increasing order of
// precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. LEASEMASTER_DATABASE_DSN.
const EnvPrefix = "leasemaster"

// Config is the application configuration.
type Config struct {
	Database struct {
		Type string `mapstructure:"type" yaml:"type"`
		Dsn  string `mapstructure:"dsn" yaml:"dsn"`
	} `mapstructure:"database" yaml:"database"`
	Language string `mapstructure:"language" yaml:"language"`
	Leasing  struct {
		// DeletePolicy is "restrict" or "cascade".
		DeletePolicy string `mapstructure:"delete_policy" yaml:"delete_policy"`
	} `mapstructure:"leasing" yaml:"leasing"`
	Auth struct {
		AdminUsername string `mapstructure:"admin_username" yaml:"admin_username"`
		BcryptCost    int    `mapstructure:"bcrypt_cost" yaml:"bcrypt_cost"`
	} `mapstructure:"auth" yaml:"auth"`
}

// Defaults returns the built-in values used when nothing else sets a key.
func Defaults() map[string]any {
	return map[string]any{
		"database.type":         "sqlite",
		"database.dsn":          "./leasemaster.db",
		"language":              "en",
		"leasing.delete_policy": "restrict",
		"auth.admin_username":   "admin",
		"auth.bcrypt_cost":      10,
	}
}

// GetConfigPath returns the full path for the configuration file.
func GetConfigPath(system bool) (string, error) {
	var configDir string
	if system {
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "Leasemaster")
		default:
			configDir = "/etc/leasemaster"
		}
	} else {
		dir, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(dir, "leasemaster")
	}
	return filepath.Join(configDir, "leasemaster.yaml"), nil
}

// LoadConfig merges defaults, the first leasemaster.yaml found (or the
// explicit file), LEASEMASTER_* variables and the flags of cmd into a T.
// A missing config file is reported as viper.ConfigFileNotFoundError
// together with the otherwise complete configuration.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, explicitPath *string) (T, error) {
	var c T
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("leasemaster")
	v.SetConfigType("yaml")
	if explicitPath != nil {
		v.SetConfigFile(*explicitPath)
	}
	v.AddConfigPath(".")
	if userConfigPath, err := GetConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(userConfigPath))
	}
	if systemConfigPath, err := GetConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(systemConfigPath))
	}

	var notFound error
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return c, err
		}
		notFound = err
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cmd != nil {
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return c, err
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	return c, notFound
}

// WriteConfigFile writes c as YAML to the user or system config path with
// owner-only permissions.
func WriteConfigFile[T any](c *T, system bool) (string, error) {
	path, err := GetConfigPath(system)
	if err != nil {
		return "", err
	}
	return path, WriteConfigFileTo(c, path)
}

// WriteConfigFileTo writes c as YAML to path.
func WriteConfigFileTo[T any](c *T, path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}
	return os.WriteFile(path, data, 0o600)
}
