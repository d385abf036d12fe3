package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config defines process configuration.
type Config struct {
	Transport TransportConfig `yaml:"transport"`
	Server    ServerConfig    `yaml:"server"`
	DB        DBConfig        `yaml:"db"`
	Log       LogConfig       `yaml:"log"`
	Pool      PoolConfig      `yaml:"pool"`
}

type TransportConfig struct {
	Mode string `yaml:"mode"` // "stdio" or "http"
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// PoolConfig holds a size for the worker pool internal/async offloads
// blocking storage calls to. cmd/wikicored loads it but builds no async
// pool, so the value has no effect on the running process.
type PoolConfig struct {
	Size int `yaml:"size"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	defaultDBPath := "wikicore.db"
	if exePath, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exePath)
		defaultDBPath = filepath.Join(exeDir, "wikicore.db")
	}

	cfg := Config{
		Transport: TransportConfig{
			Mode: "stdio", // default to stdio for local development
		},
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		DB: DBConfig{
			Path: defaultDBPath,
		},
		Log: LogConfig{
			Level: "info",
		},
		Pool: PoolConfig{
			Size: 4,
		},
	}

	if path := os.Getenv("WIKICORE_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if mode := os.Getenv("WIKICORE_TRANSPORT"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if host := os.Getenv("WIKICORE_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("WIKICORE_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid WIKICORE_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if dbPath := os.Getenv("WIKICORE_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("WIKICORE_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if poolSize := os.Getenv("WIKICORE_POOL_SIZE"); poolSize != "" {
		size, err := strconv.Atoi(poolSize)
		if err != nil {
			return Config{}, fmt.Errorf("invalid WIKICORE_POOL_SIZE: %w", err)
		}
		cfg.Pool.Size = size
	}

	return cfg, nil
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
