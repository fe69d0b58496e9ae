package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the osdex demo configuration.
type Config struct {
	OpenSearch OpenSearchConfig `yaml:"opensearch"`
	Embedding  EmbeddingConfig  `yaml:"embedding"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// OpenSearchConfig holds connection settings for the remote engine.
type OpenSearchConfig struct {
	Scheme           string `yaml:"scheme"`
	Host             string `yaml:"host"`
	Port             int    `yaml:"port"`
	ConnectTimeoutMS int    `yaml:"connect_timeout_ms"`
	RequestTimeoutMS int    `yaml:"request_timeout_ms"`
	NumberOfShards   int    `yaml:"number_of_shards"`
	NumberOfReplicas int    `yaml:"number_of_replicas"`
	KNNDimension     int    `yaml:"knn_dimension"`
	KNNSpaceType     string `yaml:"knn_space_type"`
}

// EmbeddingConfig holds optional embedding provider settings for the demo.
type EmbeddingConfig struct {
	APIKey     string `yaml:"api_key"`
	BaseURL    string `yaml:"base_url"`
	Model      string `yaml:"model"`
	Dimensions int    `yaml:"dimensions"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values matching a local
// single-node OpenSearch.
func (c *Config) ApplyDefaults() {
	if c.OpenSearch.Scheme == "" {
		c.OpenSearch.Scheme = "http"
	}
	if c.OpenSearch.Host == "" {
		c.OpenSearch.Host = "localhost"
	}
	if c.OpenSearch.Port <= 0 {
		c.OpenSearch.Port = 9200
	}
	if c.OpenSearch.ConnectTimeoutMS <= 0 {
		c.OpenSearch.ConnectTimeoutMS = 5000
	}
	if c.OpenSearch.RequestTimeoutMS <= 0 {
		c.OpenSearch.RequestTimeoutMS = 60000
	}
	if c.OpenSearch.NumberOfShards <= 0 {
		c.OpenSearch.NumberOfShards = 1
	}
	if c.OpenSearch.NumberOfReplicas < 0 {
		c.OpenSearch.NumberOfReplicas = 0
	}
	if c.OpenSearch.KNNDimension <= 0 {
		c.OpenSearch.KNNDimension = 128
	}
	if c.OpenSearch.KNNSpaceType == "" {
		c.OpenSearch.KNNSpaceType = "l2"
	}
	if c.Embedding.Dimensions <= 0 {
		c.Embedding.Dimensions = c.OpenSearch.KNNDimension
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	switch c.OpenSearch.Scheme {
	case "http", "https":
	default:
		return fmt.Errorf("opensearch.scheme must be http or https, got %q", c.OpenSearch.Scheme)
	}
	if c.OpenSearch.Port <= 0 || c.OpenSearch.Port > 65535 {
		return fmt.Errorf("opensearch.port must be between 1 and 65535, got %d", c.OpenSearch.Port)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

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
