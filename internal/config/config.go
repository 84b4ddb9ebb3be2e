package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrHomeDirUnavailable indicates the user's home directory could not be
// determined while expanding a "~" path.
var ErrHomeDirUnavailable = errors.New("home directory unavailable")

const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config defines server configuration.
type Config struct {
	Projects  ProjectsConfig  `yaml:"projects"`
	Transport TransportConfig `yaml:"transport"`
	Server    ServerConfig    `yaml:"server"`
	Auth      AuthConfig      `yaml:"auth"`
	DB        DBConfig        `yaml:"db"`
	Log       LogConfig       `yaml:"log"`
}

type ProjectsConfig struct {
	Root      string `yaml:"root"`
	Limit     int    `yaml:"limit"`
	Workers   int    `yaml:"workers"`
	Extension string `yaml:"extension"`
}

type TransportConfig struct {
	Mode string `yaml:"mode"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// AuthConfig enables bearer token checks in HTTP mode when Token is set.
type AuthConfig struct {
	Token string `yaml:"token"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Projects: ProjectsConfig{
			Root:      "~/.claude/projects",
			Limit:     30,
			Workers:   4,
			Extension: ".jsonl",
		},
		Transport: TransportConfig{
			Mode: TransportStdio,
		},
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8080,
		},
		DB: DBConfig{
			Path: ":memory:",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("CCSEARCH_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if root := os.Getenv("CCSEARCH_PROJECTS_ROOT"); root != "" {
		cfg.Projects.Root = root
	}
	if err := intFromEnv("CCSEARCH_PROJECT_LIMIT", &cfg.Projects.Limit); err != nil {
		return Config{}, err
	}
	if err := intFromEnv("CCSEARCH_WORKERS", &cfg.Projects.Workers); err != nil {
		return Config{}, err
	}
	if mode := os.Getenv("CCSEARCH_TRANSPORT"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if host := os.Getenv("CCSEARCH_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if err := intFromEnv("CCSEARCH_SERVER_PORT", &cfg.Server.Port); err != nil {
		return Config{}, err
	}
	if token := os.Getenv("CCSEARCH_AUTH_TOKEN"); token != "" {
		cfg.Auth.Token = token
	}
	if dbPath := os.Getenv("CCSEARCH_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("CCSEARCH_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if logPath := os.Getenv("CCSEARCH_LOG_PATH"); logPath != "" {
		cfg.Log.Path = logPath
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Projects.Limit < 0 {
		return fmt.Errorf("invalid projects.limit %d: must not be negative", c.Projects.Limit)
	}
	if c.Projects.Workers < 0 {
		return fmt.Errorf("invalid projects.workers %d: must not be negative", c.Projects.Workers)
	}
	switch c.Transport.Mode {
	case TransportStdio, TransportHTTP:
	default:
		return fmt.Errorf("invalid transport.mode %q: want %q or %q", c.Transport.Mode, TransportStdio, TransportHTTP)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}
	return nil
}

// ResolveRoot returns the projects root with a leading "~" expanded to the
// user's home directory.
func (c Config) ResolveRoot() (string, error) {
	return ExpandHome(c.Projects.Root)
}

// ExpandHome expands a leading "~" or "~/" in path.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		if err == nil {
			err = errors.New("empty home directory")
		}
		return "", fmt.Errorf("%w: %w", ErrHomeDirUnavailable, err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}

func intFromEnv(key string, dst *int) error {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = v
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
