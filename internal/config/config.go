// Package config provides configuration management for the selenium-grid CLI.
//
// It implements the disciplined Viper pattern where Viper stays contained
// in this package and the rest of the codebase receives explicit Config structs.
// Configuration sources are resolved in this order: env > config file > defaults.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config is the explicit configuration struct
// This is what the rest of the codebase sees
type Config struct {
	Grid           GridConfig
	ComposeCommand string
	ComposeFile    string
	ProjectName    string
	StartupTimeout time.Duration
	PollInterval   time.Duration
	RequestTimeout time.Duration
	LogLevel       string
}

// GridConfig identifies where the grid status endpoint is queried
type GridConfig struct {
	Host string
	Port int
}

// Address returns host:port of the grid hub
func (g GridConfig) Address() string {
	return fmt.Sprintf("%s:%d", g.Host, g.Port)
}

// Init initializes viper with defaults and config file paths
func Init() error {
	// Set config file name and type
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Add config file search paths
	viper.AddConfigPath("$HOME/.selenium-grid")
	viper.AddConfigPath(".")

	setDefaults()

	// Bind environment variables with prefix, SELENIUM_GRID_COMPOSE_FILE etc.
	viper.SetEnvPrefix("SELENIUM_GRID")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// Read config file (ignore if not found)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return nil
}

func setDefaults() {
	viper.SetDefault("host", "localhost")
	viper.SetDefault("port", 4444)
	viper.SetDefault("compose-command", "docker-compose")
	viper.SetDefault("compose-file", "")
	viper.SetDefault("project-name", "selenium-grid")
	viper.SetDefault("startup-timeout", 2*time.Minute)
	viper.SetDefault("poll-interval", time.Second)
	viper.SetDefault("request-timeout", 2*time.Second)
	viper.SetDefault("log-level", "warn")
}

// Load reads from all sources and returns explicit Config
func Load() (*Config, error) {
	cfg := &Config{
		Grid: GridConfig{
			Host: viper.GetString("host"),
			Port: viper.GetInt("port"),
		},
		ComposeCommand: viper.GetString("compose-command"),
		ComposeFile:    viper.GetString("compose-file"),
		ProjectName:    viper.GetString("project-name"),
		StartupTimeout: viper.GetDuration("startup-timeout"),
		PollInterval:   viper.GetDuration("poll-interval"),
		RequestTimeout: viper.GetDuration("request-timeout"),
		LogLevel:       viper.GetString("log-level"),
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures config is sane
func (c *Config) Validate() error {
	if c.Grid.Host == "" {
		return fmt.Errorf("invalid host: must not be empty")
	}

	if c.Grid.Port < 1 || c.Grid.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Grid.Port)
	}

	if len(strings.Fields(c.ComposeCommand)) == 0 {
		return fmt.Errorf("invalid compose-command: must not be empty")
	}

	if c.ProjectName == "" {
		return fmt.Errorf("invalid project-name: must not be empty")
	}

	if c.StartupTimeout <= 0 {
		return fmt.Errorf("invalid startup-timeout: %s", c.StartupTimeout)
	}

	if c.PollInterval <= 0 {
		return fmt.Errorf("invalid poll-interval: %s", c.PollInterval)
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("invalid request-timeout: %s", c.RequestTimeout)
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log-level: %s", c.LogLevel)
	}

	return nil
}

// Logger builds the diagnostic logger for the configured level
func (c *Config) Logger() *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.WarnLevel
	}
	logger.SetLevel(level)

	return logger
}
