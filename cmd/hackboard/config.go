package main

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/tinytelemetry/hackboard/internal/datasource"
	"github.com/tinytelemetry/hackboard/internal/model"
)

const (
	defaultBindHost     = "127.0.0.1"
	defaultPort         = 3000
	defaultFetchTimeout = model.DefaultFetchTimeout
)

// appConfig is the server runtime configuration.
type appConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Addr         string        `mapstructure:"addr"`
	DataSource   string        `mapstructure:"data-source"`
	FetchTimeout time.Duration `mapstructure:"fetch-timeout"`
	LogLevel     string        `mapstructure:"log-level"`
	ConfigPath   string        `mapstructure:"-"`
}

func loadConfig(configPath string) (appConfig, error) {
	var cfg appConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	// A .env in the working directory feeds the HACKBOARD_ variables below.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("HACKBOARD")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("host", defaultBindHost)
	v.SetDefault("port", defaultPort)
	v.SetDefault("addr", "")
	v.SetDefault("data-source", datasource.SourceBuiltin)
	v.SetDefault("fetch-timeout", defaultFetchTimeout)
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

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return cfg, fmt.Errorf("invalid port: %d", cfg.Port)
	}
	if cfg.Addr == "" {
		cfg.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	}

	return cfg, nil
}
