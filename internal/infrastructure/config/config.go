package config

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Token store backends selectable with TOKEN_STORE.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
	StoreMongo  = "mongo"
)

type Config struct {
	Port       string `env:"PORT,        default=8080"`
	Env        string `env:"ENV,         default=development"`
	LogLevel   string `env:"LOG_LEVEL,   default=info"`
	TokenStore string `env:"TOKEN_STORE, default=memory"`

	API        APIConfig
	Mongo      MongoConfig
	Redis      RedisConfig
	DevBackend DevBackendConfig
}

// APIConfig describes the remote DonateHub API.
type APIConfig struct {
	BaseURL           string        `env:"API_BASE_URL,       default=http://localhost:5000"`
	Timeout           time.Duration `env:"HTTP_TIMEOUT,       default=10s"`
	RateLimit         float64       `env:"API_RATE_LIMIT,     default=0"`
	RateBurst         int           `env:"API_RATE_BURST,     default=10"`
	EnrichConcurrency int           `env:"ENRICH_CONCURRENCY, default=4"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=donatehub_client"`
}

type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR,      default=localhost:6379"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB,        default=0"`
	TokenTTL time.Duration `env:"REDIS_TOKEN_TTL, default=0s"`
}

// DevBackendConfig is read only by cmd/devbackend.
type DevBackendConfig struct {
	Port      string        `env:"DEV_BACKEND_PORT, default=5000"`
	JWTSecret string        `env:"DEV_JWT_SECRET,   default=dev-secret"`
	TokenTTL  time.Duration `env:"DEV_TOKEN_TTL,    default=24h"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// Pretty reports whether logs should be human readable.
func (c *Config) Pretty() bool {
	return c.Env == "development"
}

// EphemeralTokens reports whether a non-development deployment keeps the
// session token only in process memory, where a restart signs the user out.
func (c *Config) EphemeralTokens() bool {
	return c.TokenStore == StoreMemory && c.Env != "development"
}

func (c *Config) validate() error {
	switch c.TokenStore {
	case StoreMemory, StoreRedis, StoreMongo:
	default:
		return fmt.Errorf("TOKEN_STORE must be memory, redis or mongo, got %q", c.TokenStore)
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("API_BASE_URL must be an absolute http(s) URL, got %q", c.API.BaseURL)
	}
	if c.API.RateLimit < 0 {
		return fmt.Errorf("API_RATE_LIMIT must not be negative")
	}
	if c.API.RateLimit > 0 && c.API.RateBurst <= 0 {
		return fmt.Errorf("API_RATE_BURST must be positive when API_RATE_LIMIT is set")
	}
	return nil
}
