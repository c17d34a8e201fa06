package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth  AuthConfig
	Cron  CronConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type AuthConfig struct {
	SupabaseURL     string        `env:"SUPABASE_URL"`
	SupabaseAnonKey string        `env:"SUPABASE_ANON_KEY"`
	JWTSecret       string        `env:"SUPABASE_JWT_SECRET"`
	JWTAudience     string        `env:"SUPABASE_JWT_AUDIENCE, default=authenticated"`
	ProviderTimeout time.Duration `env:"AUTH_PROVIDER_TIMEOUT, default=5s"`
	CookieName      string        `env:"SESSION_COOKIE_NAME,   default=sb-access-token"`
	CookieSecure    bool          `env:"SESSION_COOKIE_SECURE, default=true"`
	// Verifier selects token verification: auto, hs256, jwks or remote.
	// auto uses hs256 when a JWT secret is set and remote otherwise.
	Verifier  string  `env:"AUTH_VERIFIER,   default=auto"`
	RateLimit float64 `env:"AUTH_RATE_LIMIT, default=5"`
	RateBurst int     `env:"AUTH_RATE_BURST, default=10"`
}

// VerifierMode resolves "auto" to the concrete verification mode.
func (a AuthConfig) VerifierMode() string {
	if a.Verifier != "auto" && a.Verifier != "" {
		return a.Verifier
	}
	if a.JWTSecret != "" {
		return "hs256"
	}
	return "remote"
}

type CronConfig struct {
	Secret               string        `env:"CRON_SECRET"`
	AllowUnauthenticated bool          `env:"CRON_ALLOW_UNAUTHENTICATED, default=false"`
	SyncWorkers          int           `env:"CRON_SYNC_WORKERS,          default=8"`
	LockTTL              time.Duration `env:"CRON_LOCK_TTL,              default=10m"`
	// Schedule enables the in-process sync trigger, e.g. "@every 1h". Empty disables it.
	Schedule string `env:"CRON_SCHEDULE"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=openaero"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks settings that cannot be expressed as struct tags.
func (c *Config) Validate() error {
	var errs []error
	switch c.Auth.VerifierMode() {
	case "hs256":
		if c.Auth.JWTSecret == "" {
			errs = append(errs, errors.New("SUPABASE_JWT_SECRET is required for AUTH_VERIFIER=hs256"))
		}
	case "jwks", "remote":
		if c.Auth.SupabaseURL == "" {
			errs = append(errs, fmt.Errorf("SUPABASE_URL is required for AUTH_VERIFIER=%s", c.Auth.VerifierMode()))
		}
	default:
		errs = append(errs, fmt.Errorf("AUTH_VERIFIER %q is not one of auto, hs256, jwks, remote", c.Auth.Verifier))
	}
	if c.Auth.SupabaseURL != "" && c.Auth.SupabaseAnonKey == "" {
		errs = append(errs, errors.New("SUPABASE_ANON_KEY is required with SUPABASE_URL"))
	}
	if c.Auth.ProviderTimeout <= 0 {
		errs = append(errs, errors.New("AUTH_PROVIDER_TIMEOUT must be positive"))
	}
	if c.Auth.RateLimit <= 0 || c.Auth.RateBurst <= 0 {
		errs = append(errs, errors.New("AUTH_RATE_LIMIT and AUTH_RATE_BURST must be positive"))
	}
	if c.Cron.SyncWorkers <= 0 {
		errs = append(errs, errors.New("CRON_SYNC_WORKERS must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// IsDevelopment reports whether the service runs locally.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
