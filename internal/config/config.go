package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the top-level application configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Serper SerperConfig `yaml:"serper"`
	A2A    A2AConfig    `yaml:"a2a"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SerperConfig holds upstream provider settings.
type SerperConfig struct {
	BaseURL string        `yaml:"base_url"`
	APIKey  string        `yaml:"api_key"`
	Timeout time.Duration `yaml:"timeout"` // e.g. "30s"
}

// A2AConfig enables the A2A endpoints when BaseURL is set.
type A2AConfig struct {
	BaseURL string `yaml:"base_url"` // public URL advertised in the agent card
}

// LogConfig holds slog handler settings.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// defaults returns a Config populated with sensible default values.
func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Serper: SerperConfig{
			BaseURL: "https://google.serper.dev",
			Timeout: 30 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a YAML configuration file at path and returns a Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// LoadDefault loads path if it exists and falls back to defaults otherwise.
// Any other error (e.g. permission denied, malformed YAML) is returned.
func LoadDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaults(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// LoadDotenv loads KEY=VALUE pairs from the given files into the process
// environment. Missing files are skipped; variables already set win.
func LoadDotenv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv overlays environment variables onto cfg.
func ApplyEnv(cfg *Config, getenv func(string) string) error {
	if v := strings.TrimSpace(getenv("SERPER_API_KEY")); v != "" {
		cfg.Serper.APIKey = v
	}
	if v := strings.TrimSpace(getenv("SERPER_BASE_URL")); v != "" {
		cfg.Serper.BaseURL = v
	}
	if v := strings.TrimSpace(getenv("HOST")); v != "" {
		cfg.Server.Host = v
	}
	if v := strings.TrimSpace(getenv("PORT")); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return fmt.Errorf("invalid PORT %q", v)
		}
		cfg.Server.Port = port
	}
	if v := strings.TrimSpace(getenv("SEARCHGATE_A2A_BASE_URL")); v != "" {
		cfg.A2A.BaseURL = v
	}
	if v := strings.TrimSpace(getenv("LOG_LEVEL")); v != "" {
		cfg.Log.Level = v
	}
	return nil
}

// Resolve is the startup path: .env, then the YAML file, then the process
// environment.
func Resolve(path string) (*Config, error) {
	if err := LoadDotenv(".env"); err != nil {
		return nil, err
	}
	cfg, err := LoadDefault(path)
	if err != nil {
		return nil, err
	}
	if err := ApplyEnv(cfg, os.Getenv); err != nil {
		return nil, err
	}
	return cfg, nil
}
