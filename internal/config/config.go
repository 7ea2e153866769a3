package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/caarlos0/env/v10"
	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/vecprovision/internal/domain"
)

// Config holds the provisioner configuration.
type Config struct {
	Weaviate    WeaviateConfig    `yaml:"weaviate"`
	Collections CollectionsConfig `yaml:"collections"`
	Embedding   EmbeddingConfig   `yaml:"embedding"`
	Metrics     MetricsConfig     `yaml:"metrics"`
	Logging     LoggingConfig     `yaml:"logging"`
	TimeoutSec  int               `yaml:"timeout_sec" env:"PROVISION_TIMEOUT_SEC"` // whole run (default: 120)
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL"` // debug, info, warn, error (default: determined by env)
}

// MetricsConfig holds Pushgateway settings. Empty URL disables pushing.
type MetricsConfig struct {
	PushgatewayURL string `yaml:"pushgateway_url" env:"METRICS_PUSHGATEWAY_URL"`
	Job            string `yaml:"job" env:"METRICS_JOB"`
}

// CollectionsConfig names the two provisioned collections.
type CollectionsConfig struct {
	Search string `yaml:"search" env:"SEARCH_COLLECTION_NAME"`
	Store  string `yaml:"store" env:"STORE_COLLECTION_NAME"`
}

// Load reads configuration for an environment name (local, dev, docker, prod).
// The YAML file is optional; environment variables override it.
func Load(envName string) (Config, error) {
	return LoadFrom(findConfigPath(envName))
}

// LoadFrom reads configuration from a specific YAML path, tolerating a missing file.
func LoadFrom(configPath string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(filepath.Clean(configPath))
	switch {
	case err == nil:
		// Substitute env variables of the form ${VAR}
		data = expandEnvVars(data)
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w: %w", configPath, domain.ErrInvalidConfig, err)
		}
	case errors.Is(err, fs.ErrNotExist):
		// environment only
	default:
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w: %w", domain.ErrInvalidConfig, err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if e := os.Getenv("ENV"); e != "" {
		return e
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.TimeoutSec <= 0 {
		c.TimeoutSec = 120
	}
	if c.Metrics.Job == "" {
		c.Metrics.Job = "vecprovision"
	}
	c.Weaviate.applyDefaults()
	c.Embedding.applyDefaults()
}

// Validate checks the configuration for correctness. Every failure wraps domain.ErrInvalidConfig.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Collections.Search) == "" {
		return invalid("collections.search is required (SEARCH_COLLECTION_NAME)")
	}
	if strings.TrimSpace(c.Collections.Store) == "" {
		return invalid("collections.store is required (STORE_COLLECTION_NAME)")
	}
	if err := c.Embedding.validate(); err != nil {
		return err
	}
	return c.Weaviate.validate()
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidConfig, fmt.Sprintf(format, args...))
}

// findConfigPath locates the config file.
func findConfigPath(envName string) string {
	filename := fmt.Sprintf("%s.yaml", envName)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
