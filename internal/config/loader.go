package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the path checked for YAML configuration.
const DefaultConfigFile = "huntready.yaml"

// Load returns a Config using the hierarchy: defaults < YAML < ENV.
// YAML file is optional; missing file is not an error.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigFile)
}

// LoadFrom returns a Config loaded from the given YAML path using the
// hierarchy: defaults < YAML < ENV. The YAML file is optional.
func LoadFrom(yamlPath string) (*Config, error) {
	cfg := Defaults()

	if err := loadYAML(&cfg, yamlPath); err != nil {
		return nil, fmt.Errorf("config yaml: %w", err)
	}

	loadEnv(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validate: %w", err)
	}

	return &cfg, nil
}

// loadYAML reads the YAML file and unmarshals it over cfg.
// Returns nil if the file does not exist.
func loadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is validated by caller
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	return nil
}

// loadEnv overlays environment variables onto cfg.
// Only non-empty env values override the current config.
func loadEnv(cfg *Config) {
	setString(&cfg.Server.Port, "HUNTREADY_PORT")
	setString(&cfg.Server.CORSOrigin, "HUNTREADY_CORS_ORIGIN")
	setString(&cfg.NATS.URL, "NATS_URL")
	setString(&cfg.LiteLLM.URL, "LITELLM_URL")
	setString(&cfg.LiteLLM.MasterKey, "LITELLM_MASTER_KEY")
	setString(&cfg.LiteLLM.Model, "HUNTREADY_LLM_MODEL")
	setInt(&cfg.LiteLLM.MaxTokens, "HUNTREADY_LLM_MAX_TOKENS")
	setDuration(&cfg.LiteLLM.Timeout, "HUNTREADY_LLM_TIMEOUT")
	setString(&cfg.Logging.Level, "HUNTREADY_LOG_LEVEL")
	setString(&cfg.Logging.Service, "HUNTREADY_LOG_SERVICE")
	setBool(&cfg.Logging.Async, "HUNTREADY_LOG_ASYNC")
	setInt(&cfg.Logging.BufferSize, "HUNTREADY_LOG_BUFFER_SIZE")
	setInt(&cfg.Logging.Workers, "HUNTREADY_LOG_WORKERS")
	setInt(&cfg.Breaker.MaxFailures, "HUNTREADY_BREAKER_MAX_FAILURES")
	setDuration(&cfg.Breaker.Timeout, "HUNTREADY_BREAKER_TIMEOUT")
	setString(&cfg.Memory.Stream, "HUNTREADY_MEMORY_STREAM")
	setString(&cfg.Memory.HandleBucket, "HUNTREADY_MEMORY_HANDLE_BUCKET")
	setDuration(&cfg.Memory.HandleTTL, "HUNTREADY_MEMORY_HANDLE_TTL")
	setDuration(&cfg.Memory.Retention, "HUNTREADY_MEMORY_RETENTION")
	setInt(&cfg.Memory.QueryLimit, "HUNTREADY_MEMORY_QUERY_LIMIT")
	setDuration(&cfg.Memory.RetrievalTimeout, "HUNTREADY_MEMORY_RETRIEVAL_TIMEOUT")
	setInt64(&cfg.Cache.L1MaxSizeMB, "HUNTREADY_CACHE_L1_SIZE_MB")
	setBool(&cfg.Otel.Enabled, "HUNTREADY_OTEL_ENABLED")
	setString(&cfg.Otel.Endpoint, "OTEL_EXPORTER_OTLP_ENDPOINT")
}

// validate checks that required fields are set.
func validate(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server.port is required")
	}
	if cfg.NATS.URL == "" {
		return errors.New("nats.url is required")
	}
	if cfg.LiteLLM.URL == "" {
		return errors.New("litellm.url is required")
	}
	if cfg.Breaker.MaxFailures < 1 {
		return errors.New("breaker.max_failures must be >= 1")
	}
	if cfg.Memory.QueryLimit < 1 {
		return errors.New("memory.query_limit must be >= 1")
	}
	if cfg.Memory.Retention < time.Hour {
		return errors.New("memory.retention must be >= 1h")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
