package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	DataDir       string        `yaml:"data_dir"`
	ServerPort    int           `yaml:"port"`
	LogLevel      string        `yaml:"log_level"`
	StorageDriver string        `yaml:"storage_driver"`
	DatabaseURL   string        `yaml:"database_url"`
	StaticDir     string        `yaml:"static_dir"`
	DeleteDelay   time.Duration `yaml:"delete_delay"`
}

func defaults() Config {
	return Config{
		DataDir:       "./data",
		ServerPort:    8080,
		LogLevel:      "info",
		StorageDriver: "sqlite",
		StaticDir:     "static",
		DeleteDelay:   500 * time.Millisecond,
	}
}

// Load starts from defaults, applies the YAML file named by CONFIG_FILE if
// set, then environment variables.
func Load() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %w", err)
		}
		cfg.ServerPort = port
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("STORAGE_DRIVER"); v != "" {
		cfg.StorageDriver = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("STATIC_DIR"); v != "" {
		cfg.StaticDir = v
	}
	if v := os.Getenv("DELETE_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid DELETE_DELAY: %w", err)
		}
		cfg.DeleteDelay = d
	}

	if cfg.ServerPort <= 0 || cfg.ServerPort > 65535 {
		return nil, fmt.Errorf("invalid port %d", cfg.ServerPort)
	}
	if cfg.DeleteDelay < 0 {
		return nil, fmt.Errorf("invalid delete delay %s", cfg.DeleteDelay)
	}
	return &cfg, nil
}
