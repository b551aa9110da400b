// Package config loads server configuration from an optional YAML file
// with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration, read once at startup.
type Config struct {
	Environment string        `yaml:"environment"`
	Server      ServerConfig  `yaml:"server"`
	Storage     StorageConfig `yaml:"storage"`
	Model       ModelConfig   `yaml:"model"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	ReadTimeout  int    `yaml:"readTimeoutSeconds"`
	WriteTimeout int    `yaml:"writeTimeoutSeconds"`
	IdleTimeout  int    `yaml:"idleTimeoutSeconds"`
}

// StorageConfig contains temporary upload storage settings.
type StorageConfig struct {
	UploadDir     string `yaml:"uploadDir"`
	MaxUploadSize string `yaml:"maxUploadSize"`
}

// ModelConfig points at the two serialized model artifacts.
type ModelConfig struct {
	VectorizerPath string `yaml:"vectorizerPath"`
	ClassifierPath string `yaml:"classifierPath"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  30,
			WriteTimeout: 30,
			IdleTimeout:  120,
		},
		Storage: StorageConfig{
			UploadDir:     "./data/uploads",
			MaxUploadSize: "16M",
		},
		Model: ModelConfig{
			VectorizerPath: "./artifacts/vectorizer.msgpack",
			ClassifierPath: "./artifacts/job_role_model.msgpack",
		},
	}
}

// Load reads the config file at path if it exists, then applies
// environment overrides. An empty path or a missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	if _, err := cfg.MaxUploadBytes(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	if host := os.Getenv("HOST"); host != "" {
		c.Server.Host = host
	}
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", port, err)
		}
		c.Server.Port = p
	}
	if env := os.Getenv("APP_ENV"); env != "" {
		c.Environment = env
	}
	if size := os.Getenv("MAX_UPLOAD_SIZE"); size != "" {
		c.Storage.MaxUploadSize = size
	}
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		c.Storage.UploadDir = dir
	}
	if path := os.Getenv("VECTORIZER_PATH"); path != "" {
		c.Model.VectorizerPath = path
	}
	if path := os.Getenv("MODEL_PATH"); path != "" {
		c.Model.ClassifierPath = path
	}
	return nil
}

// Addr returns the server bind address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// IsDevelopment reports whether the server runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment != "production"
}

// MaxUploadBytes parses the configured upload limit into bytes.
func (c *Config) MaxUploadBytes() (int64, error) {
	return parseSize(c.Storage.MaxUploadSize)
}

// EnsureDirectories creates the upload directory.
func (c *Config) EnsureDirectories() error {
	if err := os.MkdirAll(c.Storage.UploadDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", c.Storage.UploadDir, err)
	}
	return nil
}

// parseSize parses a size string like "16M", "512K", "1G" or a plain
// byte count.
func parseSize(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty size")
	}

	multiplier := int64(1)
	switch s[len(s)-1] {
	case 'K', 'k':
		multiplier = 1 << 10
		s = s[:len(s)-1]
	case 'M', 'm':
		multiplier = 1 << 20
		s = s[:len(s)-1]
	case 'G', 'g':
		multiplier = 1 << 30
		s = s[:len(s)-1]
	}

	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid size %q", s)
	}

	return n * multiplier, nil
}
