// Package config provides hierarchical configuration loading for HuntReady.
// Precedence: defaults < YAML file < environment variables.
package config

import "time"

// Config holds all runtime configuration for the HuntReady core service.
type Config struct {
	Server  Server  `yaml:"server"`
	NATS    NATS    `yaml:"nats"`
	LiteLLM LiteLLM `yaml:"litellm"`
	Logging Logging `yaml:"logging"`
	Breaker Breaker `yaml:"breaker"`
	Memory  Memory  `yaml:"memory"`
	Cache   Cache   `yaml:"cache"`
	Otel    Otel    `yaml:"otel"`
}

// Server holds HTTP server configuration.
type Server struct {
	Port       string `yaml:"port"`
	CORSOrigin string `yaml:"cors_origin"`
}

// NATS holds NATS JetStream configuration.
type NATS struct {
	URL string `yaml:"url"`
}

// LiteLLM holds LiteLLM proxy configuration.
type LiteLLM struct {
	URL       string        `yaml:"url"`
	MasterKey string        `yaml:"master_key"`
	Model     string        `yaml:"model"`
	MaxTokens int           `yaml:"max_tokens"`
	Timeout   time.Duration `yaml:"timeout"`
}

// Logging holds structured logging configuration.
type Logging struct {
	Level      string `yaml:"level"`
	Service    string `yaml:"service"`
	Async      bool   `yaml:"async"`
	BufferSize int    `yaml:"buffer_size"`
	Workers    int    `yaml:"workers"`
}

// Breaker holds circuit breaker configuration.
type Breaker struct {
	MaxFailures int           `yaml:"max_failures"`
	Timeout     time.Duration `yaml:"timeout"`
}

// Memory holds durable memory store configuration.
type Memory struct {
	Stream           string        `yaml:"stream"`            // JetStream stream name
	HandleBucket     string        `yaml:"handle_bucket"`     // KV bucket for namespace handles
	HandleTTL        time.Duration `yaml:"handle_ttl"`        // L1 lifetime of a cached handle
	Retention        time.Duration `yaml:"retention"`         // record expiry window
	QueryLimit       int           `yaml:"query_limit"`       // records per namespace per retrieval
	RetrievalTimeout time.Duration `yaml:"retrieval_timeout"` // budget for pre-generation retrieval
}

// Cache holds in-process cache configuration.
type Cache struct {
	L1MaxSizeMB int64 `yaml:"l1_max_size_mb"`
}

// Otel holds OpenTelemetry export configuration.
type Otel struct {
	Enabled  bool   `yaml:"enabled"`
	Endpoint string `yaml:"endpoint"` // OTLP gRPC collector address
}

// Defaults returns a Config with sensible default values for local development.
func Defaults() Config {
	return Config{
		Server: Server{
			Port:       "8080",
			CORSOrigin: "http://localhost:3000",
		},
		NATS: NATS{
			URL: "nats://localhost:4222",
		},
		LiteLLM: LiteLLM{
			URL:       "http://localhost:4000",
			Model:     "openai/gpt-4o-mini",
			MaxTokens: 4096,
			Timeout:   60 * time.Second,
		},
		Logging: Logging{
			Level:      "info",
			Service:    "huntready-core",
			Async:      false,
			BufferSize: 1024,
			Workers:    1,
		},
		Breaker: Breaker{
			MaxFailures: 5,
			Timeout:     30 * time.Second,
		},
		Memory: Memory{
			Stream:           "MEMORY",
			HandleBucket:     "memory-handles",
			HandleTTL:        10 * time.Minute,
			Retention:        90 * 24 * time.Hour,
			QueryLimit:       20,
			RetrievalTimeout: 5 * time.Second,
		},
		Cache: Cache{
			L1MaxSizeMB: 64,
		},
		Otel: Otel{
			Enabled:  false,
			Endpoint: "localhost:4317",
		},
	}
}
