// Package config resolves the CLI settings from $HOME/.sa/config.toml and
// SA_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	KeyStatePath  = "state.path"
	KeySecretsDir = "secrets.dir"
	KeyLogLevel   = "log.level"

	configName = "config"
	configType = "toml"
	configDir  = ".sa"
	envPrefix  = "SA"

	defaultStateFile  = "state.toml"
	defaultSecretsDir = "secrets"
	defaultLogLevel   = "warn"
)

// Load applies defaults, environment bindings and the optional config file to cfg.
func Load(cfg *viper.Viper) (*viper.Viper, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	baseDir := filepath.Join(homeDir, configDir)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(baseDir)
	cfg.SetDefault(KeyStatePath, filepath.Join(baseDir, defaultStateFile))
	cfg.SetDefault(KeySecretsDir, filepath.Join(baseDir, defaultSecretsDir))
	cfg.SetDefault(KeyLogLevel, defaultLogLevel)

	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	return cfg, nil
}

// LogLevel parses log.level, rejecting unknown names.
func LogLevel(cfg *viper.Viper) (logrus.Level, error) {
	level, err := logrus.ParseLevel(strings.TrimSpace(cfg.GetString(KeyLogLevel)))
	if err != nil {
		return logrus.WarnLevel, fmt.Errorf("parse %s: %w", KeyLogLevel, err)
	}
	return level, nil
}
