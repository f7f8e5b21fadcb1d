package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Service ServiceConfig `yaml:"service"`
	FAQ     FAQConfig     `yaml:"faq"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address      string        `yaml:"address"`
	ReadTimeout  time.Duration `yaml:"readTimeout"`
	WriteTimeout time.Duration `yaml:"writeTimeout"`
	CORSOrigins  []string      `yaml:"corsOrigins"`
}

// ServiceConfig names the deployment for the info endpoint.
type ServiceConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// FAQConfig controls matching behavior and the knowledge base backends.
type FAQConfig struct {
	SimilarityThreshold float64        `yaml:"similarityThreshold"`
	MaxMessageLength    int            `yaml:"maxMessageLength"`
	MaxVocabulary       int            `yaml:"maxVocabulary"`
	TopSearchResults    int            `yaml:"topSearchResults"`
	TrendingLimit       int            `yaml:"trendingLimit"`
	FallbackMessage     string         `yaml:"fallbackMessage"`
	FilePath            string         `yaml:"filePath"`
	MatchLogBuffer      int            `yaml:"matchLogBuffer"`
	Object              ObjectConfig   `yaml:"object"`
	Postgres            PostgresConfig `yaml:"postgres"`
	Valkey              ValkeyConfig   `yaml:"valkey"`
}

// ObjectConfig points at a knowledge base JSON in S3-compatible storage.
type ObjectConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Key       string `yaml:"key"`
	Region    string `yaml:"region"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// ValkeyConfig contains connection information for the trending store.
type ValkeyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Prefix  string `yaml:"prefix"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_CORS_ORIGINS"); v != "" {
		parts := strings.Split(v, ",")
		origins := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
		cfg.HTTP.CORSOrigins = origins
	}
	if v := os.Getenv("SERVICE_VERSION"); v != "" {
		cfg.Service.Version = v
	}
	if v := os.Getenv("FAQ_SIMILARITY_THRESHOLD"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.FAQ.SimilarityThreshold = parsed
		}
	}
	if v := os.Getenv("FAQ_MAX_MESSAGE_LENGTH"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.FAQ.MaxMessageLength = parsed
		}
	}
	if v := os.Getenv("FAQ_MAX_VOCABULARY"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.FAQ.MaxVocabulary = parsed
		}
	}
	if v := os.Getenv("FAQ_TOP_SEARCH_RESULTS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.FAQ.TopSearchResults = parsed
		}
	}
	if v := os.Getenv("FAQ_TRENDING_LIMIT"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.FAQ.TrendingLimit = parsed
		}
	}
	if v := os.Getenv("FAQ_FALLBACK_MESSAGE"); v != "" {
		cfg.FAQ.FallbackMessage = v
	}
	if v := os.Getenv("FAQ_FILE_PATH"); v != "" {
		cfg.FAQ.FilePath = v
	}
	if v := os.Getenv("FAQ_MATCH_LOG_BUFFER"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.FAQ.MatchLogBuffer = parsed
		}
	}
	if v := os.Getenv("FAQ_OBJECT_ENDPOINT"); v != "" {
		cfg.FAQ.Object.Endpoint = v
	}
	if v := os.Getenv("FAQ_OBJECT_ACCESS_KEY"); v != "" {
		cfg.FAQ.Object.AccessKey = v
	}
	if v := os.Getenv("FAQ_OBJECT_SECRET_KEY"); v != "" {
		cfg.FAQ.Object.SecretKey = v
	}
	if v := os.Getenv("FAQ_OBJECT_BUCKET"); v != "" {
		cfg.FAQ.Object.Bucket = v
	}
	if v := os.Getenv("FAQ_OBJECT_KEY"); v != "" {
		cfg.FAQ.Object.Key = v
	}
	if v := os.Getenv("FAQ_OBJECT_REGION"); v != "" {
		cfg.FAQ.Object.Region = v
	}
	if v := os.Getenv("FAQ_POSTGRES_DSN"); v != "" {
		cfg.FAQ.Postgres.DSN = v
	}
	if v := os.Getenv("FAQ_POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.FAQ.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("FAQ_POSTGRES_MIN_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.FAQ.Postgres.MinConns = int32(parsed)
		}
	}
	if v := os.Getenv("FAQ_VALKEY_ENABLED"); v != "" {
		cfg.FAQ.Valkey.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("FAQ_VALKEY_ADDR"); v != "" {
		cfg.FAQ.Valkey.Addr = v
	}
	if v := os.Getenv("FAQ_VALKEY_PREFIX"); v != "" {
		cfg.FAQ.Valkey.Prefix = v
	}
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8001",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
			CORSOrigins:  []string{"http://localhost:3000"},
		},
		Service: ServiceConfig{
			Name:    "FAQ Finance Chatbot",
			Version: "1.0.0",
		},
		FAQ: FAQConfig{
			SimilarityThreshold: 0.3,
			MaxMessageLength:    1000,
			MaxVocabulary:       5000,
			TopSearchResults:    5,
			TrendingLimit:       10,
			FallbackMessage:     "Sorry, I couldn't find a good answer to that in my knowledge base. Try rephrasing, or ask about EBITDA, margins, cash flow, or other financial indicators.",
			FilePath:            "data/faq.json",
			MatchLogBuffer:      256,
			Postgres: PostgresConfig{
				DSN:      "",
				MaxConns: 4,
				MinConns: 0,
			},
			Valkey: ValkeyConfig{
				Enabled: false,
				Addr:    "",
				Prefix:  "faqbot",
			},
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.FAQ.SimilarityThreshold < 0 || c.FAQ.SimilarityThreshold > 1 {
		return errors.New("faq.similarityThreshold must be between 0 and 1")
	}
	if c.FAQ.MaxMessageLength <= 0 {
		return errors.New("faq.maxMessageLength must be positive")
	}
	if c.FAQ.MaxVocabulary <= 0 {
		return errors.New("faq.maxVocabulary must be positive")
	}
	if c.FAQ.TopSearchResults <= 0 {
		return errors.New("faq.topSearchResults must be positive")
	}
	if c.FAQ.TrendingLimit <= 0 {
		return errors.New("faq.trendingLimit must be positive")
	}
	if c.FAQ.FallbackMessage == "" {
		return errors.New("faq.fallbackMessage cannot be empty")
	}
	hasObject := strings.TrimSpace(c.FAQ.Object.Endpoint) != ""
	hasPostgres := strings.TrimSpace(c.FAQ.Postgres.DSN) != ""
	if !hasObject && !hasPostgres && strings.TrimSpace(c.FAQ.FilePath) == "" {
		return errors.New("faq.filePath cannot be empty when no other knowledge base source is configured")
	}
	if hasObject {
		if strings.TrimSpace(c.FAQ.Object.Bucket) == "" {
			return errors.New("faq.object.bucket cannot be empty when an endpoint is set")
		}
		if strings.TrimSpace(c.FAQ.Object.Key) == "" {
			return errors.New("faq.object.key cannot be empty when an endpoint is set")
		}
	}
	if c.FAQ.Valkey.Enabled && strings.TrimSpace(c.FAQ.Valkey.Addr) == "" {
		return errors.New("faq.valkey.addr cannot be empty when valkey is enabled")
	}
	return nil
}
