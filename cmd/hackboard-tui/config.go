package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/tinytelemetry/hackboard/internal/datasource"
	"github.com/tinytelemetry/hackboard/internal/model"
	"github.com/tinytelemetry/hackboard/internal/storage"
)

// cliConfig holds only TUI-relevant configuration.
type cliConfig struct {
	DataSource     string        `mapstructure:"data-source"`
	StorageBackend string        `mapstructure:"storage-backend"`
	StateDir       string        `mapstructure:"state-dir"`
	DeadlineKey    string        `mapstructure:"deadline-key"`
	TickInterval   time.Duration `mapstructure:"tick-interval"`
	FetchTimeout   time.Duration `mapstructure:"fetch-timeout"`
	LogFile        string        `mapstructure:"log-file"`
	LogLevel       string        `mapstructure:"log-level"`
	ConfigPath     string        `mapstructure:"-"`
}

func loadCLIConfig(configPath string) (cliConfig, error) {
	var cfg cliConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("loading .env: %w", err)
	}

	stateDir := filepath.Join(home, ".local", "state", "hackboard")

	v := viper.New()
	v.SetEnvPrefix("HACKBOARD")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("data-source", datasource.SourceBuiltin)
	v.SetDefault("storage-backend", storage.BackendFile)
	v.SetDefault("state-dir", stateDir)
	v.SetDefault("deadline-key", model.DefaultDeadlineKey)
	// Debug and test override; the board counts in whole seconds.
	v.SetDefault("tick-interval", model.DefaultTickInterval)
	v.SetDefault("fetch-timeout", model.DefaultFetchTimeout)
	v.SetDefault("log-file", filepath.Join(stateDir, "hackboard-tui.log"))
	v.SetDefault("log-level", "info")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(filepath.Join(home, ".config", "hackboard", "config.yml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	cfg.ConfigPath = v.ConfigFileUsed()

	if strings.HasPrefix(cfg.StateDir, "~/") {
		cfg.StateDir = filepath.Join(home, cfg.StateDir[2:])
	}
	if strings.HasPrefix(cfg.LogFile, "~/") {
		cfg.LogFile = filepath.Join(home, cfg.LogFile[2:])
	}
	if cfg.TickInterval <= 0 {
		return cfg, fmt.Errorf("invalid tick-interval: %s", cfg.TickInterval)
	}
	if cfg.DeadlineKey == "" {
		return cfg, fmt.Errorf("deadline-key must not be empty")
	}

	return cfg, nil
}
